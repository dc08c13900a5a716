// Copyright (c) 2026 Livetable Team
// Livetable - server-rendered data tables
// This source code is licensed under the MIT license found in the LICENSE file.

// Package cli wires the livetable commands together with cobra: rendering
// a table state, serving tables over HTTP, browsing them in the terminal
// and preparing the demo database.
package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/toeirei/livetable/internal/config"
	"github.com/toeirei/livetable/internal/db"
	"github.com/toeirei/livetable/internal/i18n"
	"github.com/toeirei/livetable/internal/logging"
	"github.com/uptrace/bun"
)

// app carries the state shared by the commands of one root command.
type app struct {
	cfgFile string
	verbose bool

	cfg config.Config
	bdb *bun.DB
}

// Execute runs the CLI entrypoint.
func Execute() error {
	return NewRootCmd().Execute()
}

// NewRootCmd creates a fresh root command. Tests call it once per case.
func NewRootCmd() *cobra.Command {
	a := &app{}
	cmd := &cobra.Command{
		Use:   "livetable",
		Short: "Livetable renders searchable, sortable, paginated data tables.",
		Long: `Livetable turns table definitions and rows from YAML files or a SQL
database into Bootstrap-styled HTML tables with search, sortable columns,
row selection and pagination. The same tables can be previewed over HTTP,
rendered once to stdout or browsed interactively in the terminal.`,
		SilenceUsage:       true,
		PersistentPreRunE:  a.setup,
		PersistentPostRunE: a.teardown,
	}
	cmd.Version = compositeVersion()

	cmd.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "Enable debug logging")
	cmd.PersistentFlags().StringVar(&a.cfgFile, "config", "", "config file")
	cmd.PersistentFlags().String("language", "en", `Output language ("en", "de")`)
	cmd.PersistentFlags().String("database.type", "sqlite", "Database type (sqlite, postgres, mysql)")
	cmd.PersistentFlags().String("database.dsn", "./livetable.db", "Database connection string (DSN)")

	cmd.AddCommand(
		a.renderCmd(),
		a.serveCmd(),
		a.browseCmd(),
		a.seedCmd(),
		a.maintainCmd(),
		a.configCmd(),
		versionCmd(),
	)
	return cmd
}

func (a *app) setup(cmd *cobra.Command, _ []string) error {
	logging.SetDebug(a.verbose)

	var path *string
	if cmd.Flags().Changed("config") && a.cfgFile != "" {
		if _, err := os.Stat(a.cfgFile); err != nil {
			return fmt.Errorf("config file specified via --config flag not found or is not accessible: %w", err)
		}
		path = &a.cfgFile
	}
	cfg, err := config.LoadConfig[config.Config](cmd, config.Defaults(), path)
	if err != nil {
		return fmt.Errorf("error loading config: %w", err)
	}
	a.cfg = cfg
	if cfg.Debug {
		logging.SetDebug(true)
	}
	i18n.Init(cfg.Language)
	logging.Debugf("config loaded: %d table(s), database %s", len(cfg.Tables), cfg.Database.Type)
	return nil
}

func (a *app) teardown(*cobra.Command, []string) error {
	if a.bdb == nil {
		return nil
	}
	err := a.bdb.Close()
	a.bdb = nil
	return err
}

// database opens the configured database on first use.
func (a *app) database() (*bun.DB, error) {
	if a.bdb != nil {
		return a.bdb, nil
	}
	bdb, err := db.Open(a.cfg.Database.Type, a.cfg.Database.Dsn)
	if err != nil {
		return nil, errors.New(i18n.TData("config.error_init_db", map[string]any{"Err": err}))
	}
	a.bdb = bdb
	return bdb, nil
}
