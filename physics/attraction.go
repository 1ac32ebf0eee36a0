package physics

import (
	"math"

	"github.com/TFMV/forcegraph/models"
)

// Attraction is the spring force: every edge pulls (or pushes) its endpoints
// toward the edge's ideal length with F = strength * (distance - ideal),
// applied equally and oppositely so the pair conserves momentum. Per-edge
// Strength and Distance override the graph-wide defaults carried on the
// edges themselves. Hidden edges still participate.
type Attraction[T any] struct {
	ForceConfig
	Iterations int
}

// NewAttraction returns an enabled spring force with a single relaxation
// pass per tick.
func NewAttraction[T any]() *Attraction[T] {
	return &Attraction[T]{
		ForceConfig: ForceConfig{Strength: 1, Enabled: true},
		Iterations:  DefaultSpringIterations,
	}
}

func (a *Attraction[T]) Apply(nodes []*models.Node[T], edges []*models.Edge[T], alpha float64) {
	if !a.Enabled || len(edges) == 0 {
		return
	}
	iters := a.Iterations
	if iters < 1 {
		iters = 1
	}
	idx := nodeIndex(nodes)

	for it := 0; it < iters; it++ {
		for _, e := range edges {
			src, tgt := idx[e.Source], idx[e.Target]
			if src == nil || tgt == nil {
				continue
			}
			dx := tgt.X - src.X
			dy := tgt.Y - src.Y
			dist := math.Sqrt(dx*dx + dy*dy)
			if dist == 0 {
				continue
			}
			// Positive when stretched past the ideal length: pull together.
			f := e.Strength * a.Strength * (dist - e.Distance) * alpha
			ux, uy := dx/dist, dy/dist
			if !src.Fixed {
				src.FX += ux * f / 2
				src.FY += uy * f / 2
			}
			if !tgt.Fixed {
				tgt.FX -= ux * f / 2
				tgt.FY -= uy * f / 2
			}
		}
	}
}
