// Package physics implements the force functions and the cooling-driven
// simulation engine that lays out a graph. Soft forces accumulate into each
// node's FX/FY; the engine integrates the accumulators into velocity and
// position once per tick, then applies the hard collision constraint.
//
// Forces run in registration order within a tick. A force that panics is a
// configuration error and is deliberately not recovered: a broken force
// silently corrupting the layout is worse than a visible crash.
package physics

import (
	"github.com/TFMV/forcegraph/models"
)

// Force is one soft force in the simulation. Apply must mutate only the
// FX/FY accumulators of unfixed nodes, scaled by alpha.
type Force[T any] interface {
	Apply(nodes []*models.Node[T], edges []*models.Edge[T], alpha float64)
}

// ForceFunc adapts a bare function to the Force interface.
type ForceFunc[T any] func(nodes []*models.Node[T], edges []*models.Edge[T], alpha float64)

func (f ForceFunc[T]) Apply(nodes []*models.Node[T], edges []*models.Edge[T], alpha float64) {
	f(nodes, edges, alpha)
}

// ForceConfig is the base configuration shared by every force.
type ForceConfig struct {
	Strength float64
	Enabled  bool
}

// Defaults for the individual forces. Theta sits inside the usual 0.7-0.9
// Barnes-Hut accuracy band; zero theta falls back to exact pairwise
// evaluation.
const (
	DefaultCharge              = -30.0
	DefaultTheta               = 0.81
	DefaultDistanceMin         = 1.0
	DefaultCollisionRadius     = 10.0
	DefaultCollisionIterations = 1
	DefaultSpringIterations    = 1
)

func nodeIndex[T any](nodes []*models.Node[T]) map[string]*models.Node[T] {
	idx := make(map[string]*models.Node[T], len(nodes))
	for _, n := range nodes {
		idx[n.ID] = n
	}
	return idx
}
