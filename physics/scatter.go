package physics

import (
	"github.com/TFMV/forcegraph/models"
)

// scatterRand is a xorshift generator in [0,1). Deterministic for a given
// seed, which keeps layout runs reproducible without pulling in math/rand
// state.
type scatterRand struct{ state uint32 }

func (r *scatterRand) next() float64 {
	r.state ^= r.state << 13
	r.state ^= r.state >> 17
	r.state ^= r.state << 5
	return float64(r.state) / float64(1<<32)
}

// Scatter assigns an initial position inside width x height to every node
// still sitting at the origin. Nodes the caller positioned explicitly are
// left alone.
func Scatter[T any](g *models.Graph[T], width, height float64, seed uint32) {
	if seed == 0 {
		seed = 1234567890
	}
	rng := scatterRand{state: seed}
	for _, n := range g.Nodes() {
		if n.X != 0 || n.Y != 0 {
			continue
		}
		n.X = rng.next() * width
		n.Y = rng.next() * height
	}
}
