package cmd

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/TFMV/forcegraph/ingest"
	"github.com/TFMV/forcegraph/models"
)

func newImportCmd() *cobra.Command {
	var format, output, name string

	cmd := &cobra.Command{
		Use:   "import [edges.json|edges.csv]",
		Short: "Convert an edge list into a graph snapshot",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := loggerFromContext(cmd.Context())
			path := args[0]

			f := format
			if f == "" {
				f = strings.TrimPrefix(filepath.Ext(path), ".")
			}
			loader, err := ingest.ForFormat(f)
			if err != nil {
				return err
			}

			data, err := os.ReadFile(path)
			if err != nil {
				return err
			}
			g, err := loader.Load(data)
			if err != nil {
				return err
			}

			if name == "" {
				name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
			}
			snap := models.TakeSnapshot(g, name, "imported from "+loader.Name(), nil)
			if output == "" {
				output = name + ".snapshot.json"
			}
			if err := models.WriteSnapshotFile(snap, output); err != nil {
				return err
			}
			logger.Info("imported graph", "file", output,
				"nodes", g.NodeCount(), "edges", g.EdgeCount())
			return nil
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", "", "input format: json or csv (default from extension)")
	cmd.Flags().StringVarP(&output, "output", "o", "", "snapshot output file")
	cmd.Flags().StringVar(&name, "name", "", "snapshot name (default from filename)")

	return cmd
}
