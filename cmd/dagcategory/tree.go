package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"dagcategory/internal/hierarchy"
	"dagcategory/internal/models"
)

var treeCmd = &cobra.Command{
	Use:   "tree",
	Short: "Print the category forest",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		db, err := openDB(cfg)
		if err != nil {
			return err
		}
		defer db.Close()

		roots, err := newTree(db).Forest(cmd.Context())
		if err != nil {
			return err
		}
		printTree(cmd.OutOrStdout(), roots)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(treeCmd)
}

// printTree writes one line per category, indented by depth.
func printTree(w io.Writer, roots []*models.TreeNode) {
	for _, n := range hierarchy.Flatten(roots) {
		fmt.Fprintf(w, "%s%s (%s)\n", strings.Repeat("  ", n.Depth), n.Name, n.Path)
	}
}
