package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"dagcategory/internal/database"
)

var seedDemo bool

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Apply pending database migrations",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		db, err := openDB(cfg)
		if err != nil {
			return err
		}
		defer db.Close()

		if seedDemo {
			if err := database.Seed(cmd.Context(), db); err != nil {
				return err
			}
		}
		fmt.Fprintln(cmd.OutOrStdout(), "migrations applied")
		return nil
	},
}

func init() {
	migrateCmd.Flags().BoolVar(&seedDemo, "seed", false, "insert the demo category tree into an empty database")
	rootCmd.AddCommand(migrateCmd)
}
