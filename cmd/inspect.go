package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"gonum.org/v1/gonum/spatial/r2"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/TFMV/forcegraph/camera"
	"github.com/TFMV/forcegraph/models"
)

func newInspectCmd() *cobra.Command {
	var width, height float64

	cmd := &cobra.Command{
		Use:   "inspect [snapshot.json]",
		Short: "Print snapshot metadata and suggested camera placement",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInspect(cmd, args[0], width, height)
		},
	}

	cmd.Flags().Float64Var(&width, "width", 800, "viewport width")
	cmd.Flags().Float64Var(&height, "height", 600, "viewport height")

	return cmd
}

func runInspect(cmd *cobra.Command, path string, width, height float64) error {
	snap, err := models.ReadSnapshotFile[payload](path)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "id:          %s\n", snap.ID)
	fmt.Fprintf(out, "name:        %s\n", snap.Name)
	if snap.Description != "" {
		fmt.Fprintf(out, "description: %s\n", snap.Description)
	}
	fmt.Fprintf(out, "version:     %d\n", snap.Version)
	fmt.Fprintf(out, "timestamp:   %s\n", snap.Timestamp.Format("2006-01-02 15:04:05"))
	fmt.Fprintf(out, "nodes:       %d\n", snap.Metadata.NodeCount)
	fmt.Fprintf(out, "edges:       %d\n", snap.Metadata.EdgeCount)
	if snap.Viewport != nil {
		fmt.Fprintf(out, "viewport:    zoom %.3f at (%.1f, %.1f)\n",
			snap.Viewport.Zoom, snap.Viewport.Center.X, snap.Viewport.Center.Y)
	}

	if len(snap.Nodes) == 0 {
		return nil
	}

	vp := camera.Viewport{Width: width, Height: height}
	flat := make([]r2.Vec, 0, len(snap.Nodes))
	spatial := make([]r3.Vec, 0, len(snap.Nodes))
	for _, n := range snap.Nodes {
		flat = append(flat, r2.Vec{X: n.X, Y: n.Y})
		spatial = append(spatial, r3.Vec{X: n.X, Y: n.Y})
	}

	v2 := camera.FitView2D(flat, vp, camera.DefaultPadding)
	fmt.Fprintf(out, "fit 2d:      zoom %.3f at (%.1f, %.1f)\n", v2.Zoom, v2.Center.X, v2.Center.Y)

	v3 := camera.FitView3D(spatial, vp, camera.FitOptions{})
	fmt.Fprintf(out, "fit 3d:      camera (%.1f, %.1f, %.1f) looking at (%.1f, %.1f, %.1f)\n",
		v3.Position.X, v3.Position.Y, v3.Position.Z,
		v3.Target.X, v3.Target.Y, v3.Target.Z)
	return nil
}
