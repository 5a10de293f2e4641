package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/readmate/readmate/internal/app"
	"github.com/readmate/readmate/internal/config"
	"github.com/readmate/readmate/internal/logger"
	"github.com/spf13/cobra"
)

// openApp is replaced in tests.
var openApp = func() (*app.App, error) {
	cfg := config.Load()
	slog.SetDefault(logger.New(os.Stderr, cfg.IsDevelopment(), cfg.SentryDSN))
	return app.New(cfg)
}

var jsonOutput bool

func Root() *cobra.Command {
	root := &cobra.Command{
		Use:           "readmate",
		Short:         "Track books and reading goals from the terminal",
		SilenceUsage:  true,
		SilenceErrors: false,
	}
	root.PersistentFlags().BoolVar(&jsonOutput, "json", false, "output JSON")

	root.AddCommand(BooksCmd())
	root.AddCommand(GoalsCmd())
	root.AddCommand(MigrateCmd())
	return root
}

func withApp(fn func(a *app.App) error) error {
	a, err := openApp()
	if err != nil {
		return err
	}
	defer func() {
		closeErr := a.Close()
		if closeErr != nil {
			slog.Error("failed to close app", "error", closeErr)
		}
	}()
	return fn(a)
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func newTable(w io.Writer, header table.Row) table.Writer {
	tw := table.NewWriter()
	tw.SetOutputMirror(w)
	tw.SetStyle(table.StyleLight)
	tw.AppendHeader(header)
	return tw
}

func pct(p float64) string {
	return fmt.Sprintf("%.0f%%", p)
}
