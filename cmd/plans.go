package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/freightworks/loadplan/config"
	"github.com/freightworks/loadplan/core/planstore"
)

var plansCmd = &cobra.Command{
	Use:   "plans",
	Short: "List saved load plans",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(cfgPath)
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		if cfg.Store.Backend != "sqlite" {
			return fmt.Errorf("plans command requires the sqlite store backend")
		}
		store, err := planstore.NewSQLiteStore(cfg.Store.Path)
		if err != nil {
			return err
		}
		defer func() { _ = store.Close() }()
		list, err := store.List(context.Background())
		if err != nil {
			return err
		}
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(list)
	},
}

func init() {
	rootCmd.AddCommand(plansCmd)
}
