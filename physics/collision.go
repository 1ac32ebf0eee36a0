package physics

import (
	"math"

	"github.com/TFMV/forcegraph/models"
)

// Collision is a hard positional constraint, not a soft accumulator force.
// The engine runs it after integration: overlapping pairs are pushed apart
// until their separation reaches the sum of their radii, repeated for
// Iterations passes per tick. Fixed nodes never move; their partner takes
// the whole correction.
type Collision[T any] struct {
	ForceConfig
	Radius     float64
	RadiusFunc func(*models.Node[T]) float64
	Iterations int
}

// NewCollision returns an enabled collision constraint with the default
// uniform radius.
func NewCollision[T any]() *Collision[T] {
	return &Collision[T]{
		ForceConfig: ForceConfig{Strength: 1, Enabled: true},
		Radius:      DefaultCollisionRadius,
		Iterations:  DefaultCollisionIterations,
	}
}

func (c *Collision[T]) radius(n *models.Node[T]) float64 {
	if c.RadiusFunc != nil {
		return c.RadiusFunc(n)
	}
	return c.Radius
}

// Resolve adjusts positions directly. Strength in (0,1] scales how much of
// the overlap is corrected per pass; 1 separates fully in a single pass.
func (c *Collision[T]) Resolve(nodes []*models.Node[T]) {
	if !c.Enabled || len(nodes) < 2 {
		return
	}
	iters := c.Iterations
	if iters < 1 {
		iters = 1
	}
	strength := c.Strength
	if strength <= 0 || strength > 1 {
		strength = 1
	}

	for it := 0; it < iters; it++ {
		for i := 0; i < len(nodes); i++ {
			for j := i + 1; j < len(nodes); j++ {
				a, b := nodes[i], nodes[j]
				if a.Fixed && b.Fixed {
					continue
				}
				minSep := c.radius(a) + c.radius(b)
				dx := b.X - a.X
				dy := b.Y - a.Y
				dist := math.Sqrt(dx*dx + dy*dy)
				if dist >= minSep {
					continue
				}

				var ux, uy float64
				if dist > 0 {
					ux, uy = dx/dist, dy/dist
				} else {
					// Coincident pair: separate along a fixed axis.
					ux, uy = 1, 0
				}
				push := (minSep - dist) * strength
				switch {
				case a.Fixed:
					b.X += ux * push
					b.Y += uy * push
				case b.Fixed:
					a.X -= ux * push
					a.Y -= uy * push
				default:
					a.X -= ux * push / 2
					a.Y -= uy * push / 2
					b.X += ux * push / 2
					b.Y += uy * push / 2
				}
			}
		}
	}
}
