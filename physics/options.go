package physics

// Options is the fully serializable force and cooling configuration. It is
// what crosses the worker boundary and what the TOML config file decodes
// into; per-node override functions are deliberately absent because they
// cannot be serialized.
type Options struct {
	AlphaMin      float64 `json:"alpha_min" toml:"alpha_min"`
	AlphaDecay    float64 `json:"alpha_decay" toml:"alpha_decay"`
	VelocityDecay float64 `json:"velocity_decay" toml:"velocity_decay"`

	Repulsion  RepulsionOptions  `json:"repulsion" toml:"repulsion"`
	Attraction AttractionOptions `json:"attraction" toml:"attraction"`
	Centering  CenteringOptions  `json:"centering" toml:"centering"`
	Collision  CollisionOptions  `json:"collision" toml:"collision"`
	Noise      NoiseOptions      `json:"noise" toml:"noise"`
}

type RepulsionOptions struct {
	Enabled     bool    `json:"enabled" toml:"enabled"`
	Strength    float64 `json:"strength" toml:"strength"`
	Charge      float64 `json:"charge" toml:"charge"`
	DistanceMin float64 `json:"distance_min" toml:"distance_min"`
	DistanceMax float64 `json:"distance_max" toml:"distance_max"`
	Theta       float64 `json:"theta" toml:"theta"`
}

type AttractionOptions struct {
	Enabled    bool    `json:"enabled" toml:"enabled"`
	Strength   float64 `json:"strength" toml:"strength"`
	Iterations int     `json:"iterations" toml:"iterations"`
}

type CenteringOptions struct {
	Enabled  bool    `json:"enabled" toml:"enabled"`
	Strength float64 `json:"strength" toml:"strength"`
	X        float64 `json:"x" toml:"x"`
	Y        float64 `json:"y" toml:"y"`
}

type CollisionOptions struct {
	Enabled    bool    `json:"enabled" toml:"enabled"`
	Strength   float64 `json:"strength" toml:"strength"`
	Radius     float64 `json:"radius" toml:"radius"`
	Iterations int     `json:"iterations" toml:"iterations"`
}

type NoiseOptions struct {
	Enabled  bool    `json:"enabled" toml:"enabled"`
	Strength float64 `json:"strength" toml:"strength"`
	Scale    float64 `json:"scale" toml:"scale"`
	Step     float64 `json:"step" toml:"step"`
	Seed     int64   `json:"seed" toml:"seed"`
}

// DefaultOptions returns the stock configuration: repulsion, attraction and
// centering on, collision on with the default radius, noise off.
func DefaultOptions() Options {
	return Options{
		AlphaMin:      DefaultAlphaMin,
		AlphaDecay:    DefaultAlphaDecay,
		VelocityDecay: DefaultVelocityDecay,
		Repulsion: RepulsionOptions{
			Enabled:     true,
			Strength:    1,
			Charge:      DefaultCharge,
			DistanceMin: DefaultDistanceMin,
			Theta:       DefaultTheta,
		},
		Attraction: AttractionOptions{Enabled: true, Strength: 1, Iterations: DefaultSpringIterations},
		Centering:  CenteringOptions{Enabled: true, Strength: 0.05},
		Collision:  CollisionOptions{Enabled: true, Strength: 1, Radius: DefaultCollisionRadius, Iterations: DefaultCollisionIterations},
		Noise:      NoiseOptions{Strength: 1, Scale: 0.03, Step: 0.01, Seed: 1},
	}
}
