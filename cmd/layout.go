package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	charmlog "github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"gonum.org/v1/gonum/spatial/r2"

	"github.com/TFMV/forcegraph/camera"
	"github.com/TFMV/forcegraph/config"
	"github.com/TFMV/forcegraph/models"
	"github.com/TFMV/forcegraph/perf"
	"github.com/TFMV/forcegraph/physics"
	"github.com/TFMV/forcegraph/render"
)

// payload is the CLI's node/edge data type; the engine itself stays generic.
type payload = map[string]any

type layoutOpts struct {
	configPath string
	output     string
	format     string
	ticks      int
	seed       uint32
	save       string
	background bool
}

func newLayoutCmd() *cobra.Command {
	opts := layoutOpts{ticks: 300, seed: 1}

	cmd := &cobra.Command{
		Use:   "layout [snapshot.json]",
		Short: "Run the layout simulation over a snapshot and render it",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runLayout(cmd.Context(), args[0], &opts)
		},
	}

	cmd.Flags().StringVarP(&opts.configPath, "config", "c", "forcegraph.toml", "TOML configuration file")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "rendered output file (default derived from format)")
	cmd.Flags().StringVarP(&opts.format, "format", "f", "", "renderer: svg (default) or ascii")
	cmd.Flags().IntVar(&opts.ticks, "ticks", opts.ticks, "maximum simulation ticks")
	cmd.Flags().Uint32Var(&opts.seed, "seed", opts.seed, "scatter seed for unplaced nodes")
	cmd.Flags().StringVar(&opts.save, "save", "", "write the laid-out snapshot to this file")
	cmd.Flags().BoolVar(&opts.background, "background", false, "compute layout on a background worker")

	return cmd
}

func runLayout(ctx context.Context, path string, opts *layoutOpts) error {
	logger := loggerFromContext(ctx)

	cfg, err := config.Load(opts.configPath)
	if err != nil {
		return err
	}
	if opts.format != "" {
		cfg.Render.Kind = opts.format
		if err := cfg.Validate(); err != nil {
			return err
		}
	}

	snap, err := models.ReadSnapshotFile[payload](path)
	if err != nil {
		return err
	}
	g, err := models.RestoreSnapshot(snap)
	if err != nil {
		return err
	}
	logger.Info("loaded snapshot", "name", snap.Name, "nodes", g.NodeCount(), "edges", g.EdgeCount())

	physics.Scatter(g, cfg.Render.Width, cfg.Render.Height, opts.seed)

	if opts.background {
		if err := runOffloaded(ctx, logger.WithPrefix("worker"), g, cfg.Simulation, opts.ticks); err != nil {
			return err
		}
	} else {
		runSync(logger, g, cfg.Simulation, opts.ticks)
	}

	adapter, err := render.New[payload](render.Kind(cfg.Render.Kind))
	if err != nil {
		return err
	}
	container := render.NewContainer()
	if err := adapter.Init(container, cfg.Render.Width, cfg.Render.Height); err != nil {
		return err
	}
	defer adapter.Destroy()
	if err := adapter.Render(g, paletteConfig(g)); err != nil {
		return err
	}

	out := opts.output
	if out == "" {
		out = "layout.svg"
		if cfg.Render.Kind == "ascii" {
			out = "layout.txt"
		}
	}
	if err := os.WriteFile(out, container.Bytes(), 0644); err != nil {
		return fmt.Errorf("writing %s: %w", out, err)
	}
	logger.Info("rendered layout", "file", out, "kind", cfg.Render.Kind)

	if opts.save != "" {
		vp := fittedViewport(g, cfg.Render.Width, cfg.Render.Height)
		result := models.TakeSnapshot(g, snap.Name, snap.Description, vp)
		if err := models.WriteSnapshotFile(result, opts.save); err != nil {
			return err
		}
		logger.Info("saved snapshot", "file", opts.save, "id", result.ID)
	}
	return nil
}

// runSync ticks the simulation inline, feeding per-tick durations to the
// performance monitor so slow layouts surface in verbose output.
func runSync(logger *charmlog.Logger, g *models.Graph[payload], opts physics.Options, ticks int) {
	sim := physics.NewSimulationFromOptions(g, opts)
	mon := perf.NewMonitor()
	sim.Start()
	for i := 0; i < ticks && sim.State() == physics.StateRunning; i++ {
		start := time.Now()
		sim.Tick(1)
		if stats, fresh := mon.RecordFrame(time.Since(start)); fresh {
			logger.Debug("tick timing", "avg_ms", stats.Avg, "bucket", stats.Bucket)
		}
	}
	logger.Debug("simulation finished", "state", sim.State(), "alpha", sim.Alpha())
}

// runOffloaded dispatches the whole layout to the background worker and
// falls back to a synchronous run when the worker degrades.
func runOffloaded(ctx context.Context, logger *charmlog.Logger, g *models.Graph[payload], opts physics.Options, ticks int) error {
	off := physics.NewOffloader[payload](logger)
	job := physics.SnapshotJob(g, opts, ticks, 1)

	res := <-off.Dispatch(ctx, job)
	merged, err := off.Merge(g, res)
	if err != nil {
		if !errors.Is(err, physics.ErrSimulationDegraded) {
			return err
		}
		logger.Warn("background layout degraded, running synchronously", "err", err)
		physics.ApplyPatch(g, physics.ComputeSync(job))
		return nil
	}
	if merged {
		logger.Debug("merged background layout", "nodes", len(res.Patch))
	}
	return nil
}

// paletteConfig assigns each node and edge type a cycled palette color.
func paletteConfig(g *models.Graph[payload]) *render.VisualConfig[payload] {
	var nodeTypes, edgeTypes []string
	seenN, seenE := map[string]bool{}, map[string]bool{}
	for _, n := range g.Nodes() {
		if !seenN[n.Type] {
			seenN[n.Type] = true
			nodeTypes = append(nodeTypes, n.Type)
		}
	}
	for _, e := range g.Edges() {
		if !seenE[e.Type] {
			seenE[e.Type] = true
			edgeTypes = append(edgeTypes, e.Type)
		}
	}
	return render.Config[payload](render.DefaultPalette(), nodeTypes, edgeTypes)
}

// fittedViewport derives snapshot viewport metadata from a 2D fit over the
// final positions.
func fittedViewport(g *models.Graph[payload], w, h float64) *models.Viewport {
	nodes := g.Nodes()
	points := make([]r2.Vec, 0, len(nodes))
	for _, n := range nodes {
		points = append(points, r2.Vec{X: n.X, Y: n.Y})
	}
	view := camera.FitView2D(points, camera.Viewport{Width: w, Height: h}, camera.DefaultPadding)
	return &models.Viewport{
		Zoom:   view.Zoom,
		Center: models.Point{X: view.Center.X, Y: view.Center.Y},
	}
}
