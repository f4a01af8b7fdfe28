package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"dagcategory/internal/hierarchy"
)

var resolveLimit int

var resolveCmd = &cobra.Command{
	Use:   "resolve <url-path>",
	Short: "Show which category a URL path resolves to",
	Example: `  dagcategory resolve books/fiction/42
  dagcategory resolve --limit -1 books/fiction/2024/05/some-post`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		limit := cfg.ResolveLimit
		if cmd.Flags().Changed("limit") {
			limit = resolveLimit
		}

		db, err := openDB(cfg)
		if err != nil {
			return err
		}
		defer db.Close()

		category, extras, err := newTree(db).SelectFromPath(cmd.Context(), args[0], limit)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		if category == nil {
			fmt.Fprintf(out, "no match (tried trimming: %s)\n", strings.Join(extras, "/"))
			return nil
		}
		fmt.Fprintf(out, "category: %s (%s)\n", category.Name, category.Path)
		fmt.Fprintf(out, "extras:   %s\n", strings.Join(extras, "/"))
		return nil
	},
}

func init() {
	resolveCmd.Flags().IntVar(&resolveLimit, "limit", 0,
		fmt.Sprintf("trailing segments that may be trimmed (%d for no limit; default RESOLVE_LIMIT)", hierarchy.Unlimited))
	rootCmd.AddCommand(resolveCmd)
}
