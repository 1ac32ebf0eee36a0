package physics

import (
	"github.com/TFMV/forcegraph/models"
)

// Repulsion is a Coulomb-style n-body force approximated with a Barnes-Hut
// quadtree. Charge defaults to a uniform negative magnitude; a negative
// charge repels, a positive one attracts. ChargeFunc overrides the charge
// per node when set.
type Repulsion[T any] struct {
	ForceConfig
	Charge      float64
	ChargeFunc  func(*models.Node[T]) float64
	DistanceMin float64
	DistanceMax float64 // 0 means unlimited
	Theta       float64

	tree           quadtree
	px, py, charge []float64
}

// NewRepulsion returns an enabled repulsion force with the package defaults.
func NewRepulsion[T any]() *Repulsion[T] {
	return &Repulsion[T]{
		ForceConfig: ForceConfig{Strength: 1, Enabled: true},
		Charge:      DefaultCharge,
		DistanceMin: DefaultDistanceMin,
		Theta:       DefaultTheta,
	}
}

// Apply rebuilds the spatial index and accumulates the approximated
// repulsion into every unfixed node. Fixed nodes still exert charge on
// their neighbors; they just receive nothing.
func (r *Repulsion[T]) Apply(nodes []*models.Node[T], _ []*models.Edge[T], alpha float64) {
	if !r.Enabled || len(nodes) < 2 {
		return
	}

	if cap(r.px) < len(nodes) {
		r.px = make([]float64, len(nodes))
		r.py = make([]float64, len(nodes))
		r.charge = make([]float64, len(nodes))
	}
	r.px = r.px[:len(nodes)]
	r.py = r.py[:len(nodes)]
	r.charge = r.charge[:len(nodes)]

	for i, n := range nodes {
		r.px[i] = n.X
		r.py[i] = n.Y
		c := r.Charge
		if r.ChargeFunc != nil {
			c = r.ChargeFunc(n)
		}
		r.charge[i] = c * r.Strength
	}

	// Rebuilt exactly once per tick, before any force query.
	r.tree.rebuild(r.px, r.py, r.charge)

	for i, n := range nodes {
		if n.Fixed {
			continue
		}
		fx, fy := r.tree.forceAt(int32(i), r.Theta, r.DistanceMin, r.DistanceMax, alpha)
		n.FX += fx
		n.FY += fy
	}
}
