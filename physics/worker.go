package physics

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sync/atomic"

	"github.com/charmbracelet/log"

	"github.com/TFMV/forcegraph/models"
)

// ErrSimulationDegraded reports that the background layout computation is
// unavailable (crash, timeout, cancellation race). Callers fall back to
// synchronous main-thread ticks rather than losing the view.
var ErrSimulationDegraded = errors.New("simulation degraded: background layout unavailable")

// NodeState and EdgeState are the serializable per-element snapshots sent to
// the worker. No pointers cross the boundary.
type NodeState struct {
	ID    string  `json:"id"`
	X     float64 `json:"x"`
	Y     float64 `json:"y"`
	VX    float64 `json:"vx"`
	VY    float64 `json:"vy"`
	Fixed bool    `json:"fixed,omitempty"`
}

type EdgeState struct {
	ID       string  `json:"id"`
	Source   string  `json:"source"`
	Target   string  `json:"target"`
	Strength float64 `json:"strength"`
	Distance float64 `json:"distance"`
}

// LayoutJob is one complete unit of background work: a snapshot of the
// graph, the force configuration, and how many ticks to run.
type LayoutJob struct {
	Nodes   []NodeState `json:"nodes"`
	Edges   []EdgeState `json:"edges"`
	Options Options     `json:"options"`
	Ticks   int         `json:"ticks"`
	DT      float64     `json:"dt"`
}

// Position is a computed coordinate pair.
type Position struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// PositionPatch maps node id to its updated position. Results merge as an
// incremental per-id patch: ids no longer present in the live graph are
// dropped silently.
type PositionPatch map[string]Position

// Result is delivered once per dispatched job.
type Result struct {
	Patch PositionPatch
	Err   error

	generation uint64
}

// SnapshotJob copies the graph into a serializable LayoutJob.
func SnapshotJob[T any](g *models.Graph[T], opts Options, ticks int, dt float64) LayoutJob {
	job := LayoutJob{Options: opts, Ticks: ticks, DT: dt}
	for _, n := range g.Nodes() {
		job.Nodes = append(job.Nodes, NodeState{ID: n.ID, X: n.X, Y: n.Y, VX: n.VX, VY: n.VY, Fixed: n.Fixed})
	}
	for _, e := range g.Edges() {
		job.Edges = append(job.Edges, EdgeState{ID: e.ID, Source: e.Source, Target: e.Target, Strength: e.Strength, Distance: e.Distance})
	}
	return job
}

// Offloader runs layout jobs on a background goroutine with message passing
// only. Every Dispatch supersedes the previous one: a generation token
// stamped onto each result lets Merge discard computations that finished
// after their graph was replaced.
type Offloader[T any] struct {
	logger     *log.Logger
	generation atomic.Uint64
}

// NewOffloader creates an offloader. A nil logger disables logging.
func NewOffloader[T any](logger *log.Logger) *Offloader[T] {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Offloader[T]{logger: logger}
}

// Dispatch starts the job in the background and returns a channel that
// yields exactly one Result. Cancelling ctx yields a degraded result
// immediately; the goroutine's late output is discarded. A panic inside the
// worker is caught at this boundary only and surfaced as degraded; the
// synchronous fallback will still crash loudly on a genuinely broken force.
func (o *Offloader[T]) Dispatch(ctx context.Context, job LayoutJob) <-chan Result {
	gen := o.generation.Add(1)
	out := make(chan Result, 1)
	inner := make(chan Result, 1)

	go func() {
		defer func() {
			if r := recover(); r != nil {
				o.logger.Error("layout worker crashed", "panic", r)
				inner <- Result{Err: fmt.Errorf("%w: worker panic: %v", ErrSimulationDegraded, r), generation: gen}
			}
		}()
		patch := runJob(job)
		inner <- Result{Patch: patch, generation: gen}
	}()

	go func() {
		select {
		case res := <-inner:
			out <- res
		case <-ctx.Done():
			o.logger.Debug("layout job cancelled", "generation", gen)
			out <- Result{Err: fmt.Errorf("%w: %v", ErrSimulationDegraded, ctx.Err()), generation: gen}
		}
	}()
	return out
}

// Merge applies a finished result to the live graph by copying positions
// per node id. It reports false when the result was stale (superseded by a
// later Dispatch) or errored; stale results are discarded, never merged.
func (o *Offloader[T]) Merge(g *models.Graph[T], res Result) (bool, error) {
	if res.Err != nil {
		return false, res.Err
	}
	if res.generation != o.generation.Load() {
		o.logger.Debug("discarding stale layout result", "generation", res.generation)
		return false, nil
	}
	ApplyPatch(g, res.Patch)
	return true, nil
}

// ApplyPatch copies patch positions onto the graph by node id. Unknown ids
// are dropped. Callers using the synchronous fallback apply their own patch
// with this; Merge uses it after the staleness check.
func ApplyPatch[T any](g *models.Graph[T], patch PositionPatch) {
	for id, pos := range patch {
		n := g.Node(id)
		if n == nil {
			continue
		}
		n.X, n.Y = pos.X, pos.Y
	}
}

// ComputeSync is the main-thread fallback: it runs the job inline without
// any panic recovery, preserving the fatal-force contract.
func ComputeSync(job LayoutJob) PositionPatch {
	return runJob(job)
}

// runJob rebuilds a private graph from the snapshot, simulates it, and
// extracts the position patch. Nothing from the caller's graph is shared.
func runJob(job LayoutJob) PositionPatch {
	g := models.NewGraph[struct{}]()
	for _, n := range job.Nodes {
		if err := g.AddNode(models.Node[struct{}]{ID: n.ID, X: n.X, Y: n.Y, VX: n.VX, VY: n.VY, Fixed: n.Fixed}); err != nil {
			panic(fmt.Sprintf("invalid worker snapshot: %v", err))
		}
	}
	for _, e := range job.Edges {
		if err := g.AddEdge(models.Edge[struct{}]{ID: e.ID, Source: e.Source, Target: e.Target, Strength: e.Strength, Distance: e.Distance}); err != nil {
			panic(fmt.Sprintf("invalid worker snapshot: %v", err))
		}
	}

	sim := NewSimulationFromOptions(g, job.Options)
	sim.Start()
	dt := job.DT
	if dt <= 0 {
		dt = 1
	}
	ticks := job.Ticks
	if ticks <= 0 {
		ticks = 300
	}
	for i := 0; i < ticks && sim.State() == StateRunning; i++ {
		sim.Tick(dt)
	}

	patch := make(PositionPatch, g.NodeCount())
	for _, n := range g.Nodes() {
		patch[n.ID] = Position{X: n.X, Y: n.Y}
	}
	return patch
}
