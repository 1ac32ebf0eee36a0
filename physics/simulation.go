package physics

import (
	"github.com/TFMV/forcegraph/models"
)

// State is the simulation lifecycle state.
type State int

const (
	StateIdle State = iota
	StateRunning
	StatePaused
	StateConverged
	StateStopped
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateRunning:
		return "running"
	case StatePaused:
		return "paused"
	case StateConverged:
		return "converged"
	case StateStopped:
		return "stopped"
	default:
		return "unknown"
	}
}

// Cooling parameter defaults. AlphaDecay matches a ~300-tick settle
// (1 - 0.001^(1/300)).
const (
	DefaultAlphaMin      = 0.001
	DefaultAlphaDecay    = 0.0228
	DefaultVelocityDecay = 0.6
)

// Simulation drives the tick loop over a graph: it resets force
// accumulators, applies the registered soft forces in registration order,
// integrates velocity and position for unfixed nodes, resolves the hard
// collision constraint, and cools alpha until convergence.
//
// The tick is single-threaded and cooperative: the caller invokes Tick once
// per frame and never re-entrantly, so the engine holds no locks.
// Pause/Stop/Resume only take effect at tick boundaries.
type Simulation[T any] struct {
	graph     *models.Graph[T]
	forces    []Force[T]
	collision *Collision[T]

	alpha         float64
	alphaMin      float64
	alphaDecay    float64
	velocityDecay float64

	state State
}

// NewSimulation creates an idle simulation over the graph with default
// cooling parameters and no forces registered.
func NewSimulation[T any](g *models.Graph[T]) *Simulation[T] {
	return &Simulation[T]{
		graph:         g,
		alpha:         1.0,
		alphaMin:      DefaultAlphaMin,
		alphaDecay:    DefaultAlphaDecay,
		velocityDecay: DefaultVelocityDecay,
		state:         StateIdle,
	}
}

// Use registers a soft force. Registration order is the application order
// within a tick; callers must validate force configuration up front, since
// a panicking force is not recovered.
func (s *Simulation[T]) Use(f Force[T]) *Simulation[T] {
	s.forces = append(s.forces, f)
	return s
}

// SetCollision installs the hard collision constraint, applied after
// integration and distinct from the soft forces.
func (s *Simulation[T]) SetCollision(c *Collision[T]) *Simulation[T] {
	s.collision = c
	return s
}

// SetAlphaMin overrides the convergence threshold.
func (s *Simulation[T]) SetAlphaMin(v float64) *Simulation[T] { s.alphaMin = v; return s }

// SetAlphaDecay overrides the per-tick cooling rate.
func (s *Simulation[T]) SetAlphaDecay(v float64) *Simulation[T] { s.alphaDecay = v; return s }

// SetVelocityDecay overrides the integrator's velocity damping factor.
func (s *Simulation[T]) SetVelocityDecay(v float64) *Simulation[T] { s.velocityDecay = v; return s }

// State returns the current lifecycle state.
func (s *Simulation[T]) State() State { return s.state }

// Alpha returns the current cooling value.
func (s *Simulation[T]) Alpha() float64 { return s.alpha }

// Graph returns the simulated graph.
func (s *Simulation[T]) Graph() *models.Graph[T] { return s.graph }

// Start moves an idle or stopped simulation to running. It is a no-op in
// any other state.
func (s *Simulation[T]) Start() {
	if s.state == StateIdle || s.state == StateStopped {
		s.state = StateRunning
	}
}

// Pause suspends a running simulation.
func (s *Simulation[T]) Pause() {
	if s.state == StateRunning {
		s.state = StatePaused
	}
}

// Resume continues a paused simulation.
func (s *Simulation[T]) Resume() {
	if s.state == StatePaused {
		s.state = StateRunning
	}
}

// Stop resets alpha to 1.0 and returns to the stopped state from anywhere.
func (s *Simulation[T]) Stop() {
	s.alpha = 1.0
	s.state = StateStopped
}

// SetAlpha re-raises (or lowers) the cooling value, clamped to [0,1].
func (s *Simulation[T]) SetAlpha(v float64) {
	if v < 0 {
		v = 0
	}
	if v > 1 {
		v = 1
	}
	s.alpha = v
}

// Reheat raises alpha back to 1.0 and resumes a converged simulation, e.g.
// after nodes were added and the layout needs to re-stabilize.
func (s *Simulation[T]) Reheat() {
	s.alpha = 1.0
	if s.state == StateConverged {
		s.state = StateRunning
	}
}

// NewSimulationFromOptions assembles a simulation from a serializable
// options bundle. Enabled forces register in the documented fixed order:
// repulsion, attraction, centering, noise; collision is installed as the
// post-integration constraint.
func NewSimulationFromOptions[T any](g *models.Graph[T], opts Options) *Simulation[T] {
	s := NewSimulation(g)
	if opts.AlphaMin > 0 {
		s.alphaMin = opts.AlphaMin
	}
	if opts.AlphaDecay > 0 {
		s.alphaDecay = opts.AlphaDecay
	}
	if opts.VelocityDecay > 0 {
		s.velocityDecay = opts.VelocityDecay
	}

	if opts.Repulsion.Enabled {
		r := NewRepulsion[T]()
		r.Strength = opts.Repulsion.Strength
		r.Charge = opts.Repulsion.Charge
		r.DistanceMin = opts.Repulsion.DistanceMin
		r.DistanceMax = opts.Repulsion.DistanceMax
		r.Theta = opts.Repulsion.Theta
		s.Use(r)
	}
	if opts.Attraction.Enabled {
		a := NewAttraction[T]()
		a.Strength = opts.Attraction.Strength
		a.Iterations = opts.Attraction.Iterations
		s.Use(a)
	}
	if opts.Centering.Enabled {
		c := NewCentering[T]()
		c.Strength = opts.Centering.Strength
		c.X, c.Y = opts.Centering.X, opts.Centering.Y
		s.Use(c)
	}
	if opts.Noise.Enabled {
		n := NewNoise[T](opts.Noise.Seed)
		n.Enabled = true
		n.Strength = opts.Noise.Strength
		n.Scale = opts.Noise.Scale
		n.Step = opts.Noise.Step
		s.Use(n)
	}
	if opts.Collision.Enabled {
		c := NewCollision[T]()
		c.Strength = opts.Collision.Strength
		c.Radius = opts.Collision.Radius
		c.Iterations = opts.Collision.Iterations
		s.SetCollision(c)
	}
	return s
}

// Tick advances the simulation by dt. It is a no-op unless running.
func (s *Simulation[T]) Tick(dt float64) {
	if s.state != StateRunning {
		return
	}

	nodes := s.graph.Nodes()
	edges := s.graph.Edges()

	for _, n := range nodes {
		n.FX, n.FY = 0, 0
	}
	for _, f := range s.forces {
		f.Apply(nodes, edges, s.alpha)
	}
	for _, n := range nodes {
		if n.Fixed {
			continue
		}
		n.VX = (n.VX + n.FX) * s.velocityDecay
		n.VY = (n.VY + n.FY) * s.velocityDecay
		n.X += n.VX * dt
		n.Y += n.VY * dt
	}
	if s.collision != nil {
		s.collision.Resolve(nodes)
	}

	s.alpha *= 1 - s.alphaDecay
	if s.alpha < s.alphaMin {
		s.state = StateConverged
	}
}
