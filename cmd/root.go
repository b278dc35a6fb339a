// Package cmd implements the tablekit CLI: build a column set from a
// project document and inspect or interactively preview it with a
// persisted per-user layout.
package cmd

import (
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	tea "charm.land/bubbletea/v2"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/oakwood-commons/tablekit/internal/ui"
	"github.com/oakwood-commons/tablekit/pkg/columns"
	"github.com/oakwood-commons/tablekit/pkg/layout"
	"github.com/oakwood-commons/tablekit/pkg/logger"
	"github.com/oakwood-commons/tablekit/pkg/settings"
)

var (
	runParams = settings.NewCliParams()

	schemaPath string
	layoutKey  string
	excludeIDs []string
	filterExpr string
	hierarchy  bool
)

var rootCmd = &cobra.Command{
	Use:   settings.CliBinaryName,
	Short: "Column configuration engine for entity tables",
	Long: `tablekit assembles an entity table's column set from an attribute
schema plus built-in columns, and keeps the per-user layout
(visibility, pinning, order, sizing) consistent as it is edited.`,
	Version:      settings.VersionInformation.BuildVersion,
	SilenceUsage: true,
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.Int8Var(&runParams.MinLogLevel, "log-level", 0, "minimum log level (zap levels; negative is more verbose)")
	pf.BoolVarP(&runParams.IsQuiet, "quiet", "q", false, "suppress non-essential output")
	pf.BoolVar(&runParams.NoColor, "no-color", false, "disable colored output")
	pf.StringVar(&runParams.StateDir, "state-dir", "", "directory for persisted layouts (default: in-memory)")
	pf.StringVar(&schemaPath, "schema", "", "project document (attributes + option catalogs); embedded demo when unset")
	pf.StringVar(&layoutKey, "layout-key", "default", "storage key for the persisted layout")
	pf.StringSliceVar(&excludeIDs, "exclude", nil, "column ids to exclude ("+columns.ExcludeBuiltinAttributes+" excludes all builtin attributes)")
	pf.StringVar(&filterExpr, "filter-expr", "", "CEL predicate over attributes (variable: attr)")
	pf.BoolVar(&hierarchy, "hierarchy", false, "sort the name column by full path instead of label")

	rootCmd.AddCommand(columnsCmd)
	rootCmd.AddCommand(previewCmd)
}

// buildSpecs assembles the column specs from the configured inputs.
func buildSpecs() ([]columns.Spec, error) {
	sch, catalogs, err := loadProject(schemaPath)
	if err != nil {
		return nil, err
	}
	log := logger.Get(runParams.MinLogLevel)
	return columns.BuildColumns(columns.BuilderOptions{
		Schema:        sch,
		Catalogs:      catalogs,
		ShowHierarchy: hierarchy,
		Exclude:       excludeIDs,
		FilterExpr:    filterExpr,
		Extra:         nil,
		Logger:        *log,
	})
}

var columnsCmd = &cobra.Command{
	Use:   "columns",
	Short: "Print the built column specifications",
	RunE: func(cmd *cobra.Command, args []string) error {
		specs, err := buildSpecs()
		if err != nil {
			return err
		}
		w := tabwriter.NewWriter(cmd.OutOrStdout(), 2, 4, 2, ' ', 0)
		fmt.Fprintln(w, "ID\tTITLE\tKIND\tSORTABLE\tPINNABLE\tHIDEABLE\tMIN\tSCOPE")
		for _, s := range specs {
			kind := "builtin"
			if s.Kind == columns.KindAttribute {
				kind = "attribute"
			}
			scope := "*"
			if len(s.Scope) > 0 {
				parts := make([]string, len(s.Scope))
				for i, et := range s.Scope {
					parts[i] = string(et)
				}
				scope = strings.Join(parts, ",")
			}
			fmt.Fprintf(w, "%s\t%s\t%s\t%v\t%v\t%v\t%d\t%s\n",
				s.ID, s.Title, kind, s.Sortable, s.Pinnable, s.Hideable, s.MinWidth, scope)
		}
		return w.Flush()
	},
}

var previewCmd = &cobra.Command{
	Use:   "preview",
	Short: "Interactively preview the column set with a persisted layout",
	RunE: func(cmd *cobra.Command, args []string) error {
		specs, err := buildSpecs()
		if err != nil {
			return err
		}
		docs, err := openLayoutStorage(runParams)
		if err != nil {
			return err
		}
		session, err := layout.OpenSession(cmd.Context(), docs, layoutKey,
			layout.WithLogger(*logger.Get(runParams.MinLogLevel)))
		if err != nil {
			return err
		}

		model := ui.NewModel(specs, sampleRows(), session)
		model.SetNoColor(runParams.NoColor)
		if w, h := detectTerminalSize(); w > 0 && h > 0 {
			_, _ = model.Update(tea.WindowSizeMsg{Width: w, Height: h})
		}

		p := tea.NewProgram(model)
		if _, err := p.Run(); err != nil {
			return fmt.Errorf("preview: %w", err)
		}
		return nil
	},
}

// detectTerminalSize returns the terminal dimensions, or zeros when
// stdout is not a terminal.
func detectTerminalSize() (int, int) {
	fd := int(os.Stdout.Fd())
	if !term.IsTerminal(fd) {
		return 0, 0
	}
	w, h, err := term.GetSize(fd)
	if err != nil {
		return 0, 0
	}
	return w, h
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}
