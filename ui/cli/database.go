// Copyright (c) 2026 Livetable Team
// Livetable - server-rendered data tables
// This source code is licensed under the MIT license found in the LICENSE file.

package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/toeirei/livetable/internal/db"
	"github.com/toeirei/livetable/internal/logging"
)

func (a *app) seedCmd() *cobra.Command {
	var count, offset int
	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Fill the demo contacts table",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			bdb, err := a.database()
			if err != nil {
				return err
			}
			if err := db.SeedContacts(cmd.Context(), bdb, offset, count); err != nil {
				return err
			}
			logging.Infof("seeded %d contacts into %s", count, a.cfg.Database.Type)
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "seeded %d contacts\n", count)
			return err
		},
	}
	cmd.Flags().IntVarP(&count, "count", "n", 100, "number of contacts to insert")
	cmd.Flags().IntVar(&offset, "offset", 0, "sequence number of the first contact")
	return cmd
}

func (a *app) maintainCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "maintain",
		Short: "Run database maintenance (VACUUM, optimize, integrity check)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := db.RunMaintenance(a.cfg.Database.Type, a.cfg.Database.Dsn); err != nil {
				return err
			}
			_, err := fmt.Fprintln(cmd.OutOrStdout(), "maintenance complete")
			return err
		},
	}
}
