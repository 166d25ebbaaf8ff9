// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"pagecraft/internal/database"
	"pagecraft/internal/store"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Apply pending migrations to the SQL configuration store",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		// connect migrates the SQL stores on open.
		b, err := connect(cfg)
		if err != nil {
			return err
		}
		defer b.Close()

		if b.db == nil {
			fmt.Fprintf(cmd.OutOrStdout(), "store %q has no schema, nothing to migrate\n", cfg.StoreDriver)
			return nil
		}

		v, err := database.Version(b.db, b.driver)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s schema at version %d\n", b.driver, v)
		return nil
	},
}

var pruneOlderThan time.Duration

var pruneCmd = &cobra.Command{
	Use:   "prune",
	Short: "Delete configuration records not updated recently",
	Long: `Prune deletes SQL configuration records whose last update is older than
--older-than. Valkey records expire on their own and the memory store does
not outlive the process.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		if pruneOlderThan <= 0 {
			return fmt.Errorf("--older-than must be positive")
		}

		b, err := connect(cfg)
		if err != nil {
			return err
		}
		defer b.Close()

		configs, err := b.configStore(cfg)
		if err != nil {
			return err
		}
		sqlStore, ok := configs.(*store.SQLStore)
		if !ok {
			fmt.Fprintf(cmd.OutOrStdout(), "store %q does not need pruning\n", cfg.StoreDriver)
			return nil
		}

		n, err := sqlStore.Prune(cmd.Context(), time.Now().Add(-pruneOlderThan))
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "pruned %d configuration records\n", n)
		return nil
	},
}

func init() {
	pruneCmd.Flags().DurationVar(&pruneOlderThan, "older-than", 30*24*time.Hour, "age of the last update to prune")
	rootCmd.AddCommand(migrateCmd, pruneCmd)
}
