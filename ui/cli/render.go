// Copyright (c) 2026 Livetable Team
// Livetable - server-rendered data tables
// This source code is licensed under the MIT license found in the LICENSE file.

package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"github.com/toeirei/livetable/internal/format"
	"github.com/toeirei/livetable/internal/i18n"
	"github.com/toeirei/livetable/internal/state"
	"github.com/toeirei/livetable/internal/table"
	"github.com/toeirei/livetable/internal/termrender"
	"golang.org/x/term"
)

// Output formats of the render command.
const (
	outputAuto = "auto"
	outputHTML = "html"
	outputText = "text"
)

// terminal reports whether w is an interactive terminal and its width.
func terminal(w io.Writer) (bool, int) {
	f, ok := w.(*os.File)
	if !ok || !term.IsTerminal(int(f.Fd())) {
		return false, 0
	}
	width, _, err := term.GetSize(int(f.Fd()))
	if err != nil {
		return true, 0
	}
	return true, width
}

func (a *app) renderCmd() *cobra.Command {
	var (
		data, search, sortAttr, sortDir, output string
		page                                    int
		selectAll                               bool
		selected                                []string
	)
	cmd := &cobra.Command{
		Use:   "render [table]",
		Short: "Render one state of a table as HTML or text",
		Long: `Renders a configured table (or the rows of a YAML file given with --data)
for the requested search, sort, page and selection. HTML is written when
stdout is not a terminal; use --output to choose explicitly.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			switch output {
			case outputAuto, outputHTML, outputText:
			default:
				return fmt.Errorf("unknown output format %q", output)
			}

			comp, err := a.pick(data, args)
			if err != nil {
				return err
			}

			ctx := cmd.Context()
			st := stateFromFlags(comp.Definition().InitialState(), search, sortAttr, sortDir, page)
			switch {
			case selectAll:
				st, err = comp.Dispatch(ctx, st, state.CheckboxAllToggled{Checked: true})
			case len(selected) > 0:
				st, err = comp.Dispatch(ctx, st, state.CheckboxValuesChanged{Values: selected})
			}
			if err != nil {
				return err
			}

			vm, err := comp.ViewModel(ctx, st)
			if err != nil {
				return err
			}
			if vm.Page != nil {
				st.Page = vm.Page.Number
			}

			out := cmd.OutOrStdout()
			isTerm, width := terminal(out)
			if output == outputAuto {
				output = outputHTML
				if isTerm {
					output = outputText
				}
			}
			loc := i18n.Default()

			if output == outputHTML {
				r, err := a.htmlRenderer(ctx, comp, st, loc)
				if err != nil {
					return err
				}
				if err := r.RenderTo(out, vm); err != nil {
					return err
				}
				_, err = fmt.Fprintln(out)
				return err
			}
			text := termrender.Render(vm,
				termrender.WithTranslator(loc),
				termrender.WithResolver(comp.Resolver(table.DefaultResolver{Formats: format.NewRegistry(loc.Tag())})),
				termrender.WithWidth(width),
			)
			_, err = fmt.Fprint(out, text)
			return err
		},
	}
	f := cmd.Flags()
	f.StringVar(&data, "data", "", "render the rows of this YAML file instead of a configured table")
	f.StringVarP(&search, "search", "s", "", "search text")
	f.StringVar(&sortAttr, "sort", "", "attribute to sort by")
	f.StringVar(&sortDir, "direction", "", `sort direction ("asc" or "desc")`)
	f.IntVarP(&page, "page", "p", 0, "page number")
	f.BoolVar(&selectAll, "select-all", false, "select every matching row")
	f.StringSliceVar(&selected, "select", nil, "keys of selected rows")
	f.StringVarP(&output, "output", "o", outputAuto, `output format ("auto", "html", "text")`)
	return cmd
}
