// Package cmd implements the forcegraph command-line interface: load a
// snapshot, run the layout simulation, render it, and save the result.
package cmd

import (
	"context"
	"io"
	"os"

	charmlog "github.com/charmbracelet/log"
	"github.com/spf13/cobra"
)

var version = "0.1.0"

// Execute runs the forcegraph CLI and returns an error if any command fails.
// All commands support --verbose (-v) for debug-level logging; the logger is
// attached to the command context.
func Execute() error {
	var verbose bool

	root := &cobra.Command{
		Use:          "forcegraph",
		Short:        "forcegraph lays out graphs with force-directed simulation",
		Long:         `forcegraph runs a force-directed layout simulation over a graph snapshot and renders the result as SVG or ASCII art.`,
		Version:      version,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			level := charmlog.InfoLevel
			if verbose {
				level = charmlog.DebugLevel
			}
			ctx := withLogger(cmd.Context(), newLogger(os.Stderr, level))
			cmd.SetContext(ctx)
		},
	}

	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")

	root.AddCommand(newImportCmd())
	root.AddCommand(newLayoutCmd())
	root.AddCommand(newInspectCmd())

	return root.ExecuteContext(context.Background())
}

func newLogger(w io.Writer, level charmlog.Level) *charmlog.Logger {
	return charmlog.NewWithOptions(w, charmlog.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05.00",
		Level:           level,
	})
}

type ctxKey int

const loggerKey ctxKey = 0

func withLogger(ctx context.Context, l *charmlog.Logger) context.Context {
	return context.WithValue(ctx, loggerKey, l)
}

func loggerFromContext(ctx context.Context) *charmlog.Logger {
	if l, ok := ctx.Value(loggerKey).(*charmlog.Logger); ok {
		return l
	}
	return charmlog.Default()
}
