package physics

import (
	"github.com/TFMV/forcegraph/models"
)

// Centering applies a weak pull on every unfixed node toward a fixed target
// point, which keeps a disconnected layout from drifting unbounded.
type Centering[T any] struct {
	ForceConfig
	X, Y float64
}

// NewCentering returns an enabled centering force aimed at the origin.
func NewCentering[T any]() *Centering[T] {
	return &Centering[T]{ForceConfig: ForceConfig{Strength: 0.05, Enabled: true}}
}

func (c *Centering[T]) Apply(nodes []*models.Node[T], _ []*models.Edge[T], alpha float64) {
	if !c.Enabled {
		return
	}
	for _, n := range nodes {
		if n.Fixed {
			continue
		}
		n.FX += (c.X - n.X) * c.Strength * alpha
		n.FY += (c.Y - n.Y) * c.Strength * alpha
	}
}
