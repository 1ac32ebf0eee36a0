package physics

import (
	"github.com/TFMV/forcegraph/models"
	opensimplex "github.com/ojrac/opensimplex-go"
)

// Noise adds a slow organic drift sampled from a simplex field, useful for
// ambient motion once a layout has settled. Disabled by default; purely
// cosmetic and safe to leave out of any physical configuration.
type Noise[T any] struct {
	ForceConfig
	Scale float64 // spatial frequency of the field
	Step  float64 // time advance per tick

	gen  opensimplex.Noise
	time float64
}

// NewNoise creates a disabled noise force seeded deterministically.
func NewNoise[T any](seed int64) *Noise[T] {
	return &Noise[T]{
		ForceConfig: ForceConfig{Strength: 1, Enabled: false},
		Scale:       0.03,
		Step:        0.01,
		gen:         opensimplex.New(seed),
	}
}

func (s *Noise[T]) Apply(nodes []*models.Node[T], _ []*models.Edge[T], alpha float64) {
	if !s.Enabled {
		return
	}
	for _, n := range nodes {
		if n.Fixed {
			continue
		}
		n.FX += s.gen.Eval3(n.X*s.Scale, n.Y*s.Scale, s.time) * s.Strength * alpha
		n.FY += s.gen.Eval3(n.X*s.Scale+100, n.Y*s.Scale+100, s.time) * s.Strength * alpha
	}
	s.time += s.Step
}
