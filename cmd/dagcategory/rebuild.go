package main

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"dagcategory/internal/store"
)

var rebuildCmd = &cobra.Command{
	Use:   "rebuild",
	Short: "Recompute every stored category path",
	Long: `Rebuild walks the forest from the roots down and rewrites every path
that does not match its parent chain. Use it after bulk imports that wrote
rows directly. Cached responses are cleared when anything changed.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		db, err := openDB(cfg)
		if err != nil {
			return err
		}
		defer db.Close()

		n, err := newTree(db).Rebuild(ctx)
		if err != nil {
			return err
		}

		if n > 0 {
			responseCache, closeCache, err := openCache(ctx, cfg)
			if err != nil {
				return err
			}
			defer closeCache()
			responseCache.InvalidateAll(ctx)
			store.NewCacheLogStore(db).Log(ctx, "category", uuid.Nil, store.ActionRebuild)
		}

		fmt.Fprintf(cmd.OutOrStdout(), "%d paths rewritten\n", n)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(rebuildCmd)
}
