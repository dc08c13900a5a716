// Copyright (c) 2026 Livetable Team
// Livetable - server-rendered data tables
// This source code is licensed under the MIT license found in the LICENSE file.

package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/toeirei/livetable/internal/format"
	"github.com/toeirei/livetable/internal/i18n"
	"github.com/toeirei/livetable/internal/table"
	"github.com/toeirei/livetable/internal/tui"
)

func (a *app) browseCmd() *cobra.Command {
	var data string
	cmd := &cobra.Command{
		Use:   "browse [table]",
		Short: "Browse a table interactively in the terminal",
		Long: `Opens a table in an interactive terminal view. Keys of the rows selected
when leaving are printed to stdout, one per line.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			comp, err := a.pick(data, args)
			if err != nil {
				return err
			}
			loc := i18n.Default()
			final, err := tui.Run(cmd.Context(), comp,
				tui.WithTranslator(loc),
				tui.WithResolver(comp.Resolver(table.DefaultResolver{Formats: format.NewRegistry(loc.Tag())})),
			)
			if err != nil {
				return err
			}
			for _, key := range final.CheckboxValues {
				fmt.Fprintln(cmd.OutOrStdout(), key)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&data, "data", "", "browse the rows of this YAML file instead of a configured table")
	return cmd
}
