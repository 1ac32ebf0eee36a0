package camera

import (
	"math"

	"gonum.org/v1/gonum/spatial/r2"
	"gonum.org/v1/gonum/spatial/r3"
)

// Bounds is the rendering container's rectangle in screen space.
type Bounds struct {
	Left   float64
	Top    float64
	Width  float64
	Height float64
}

// ScreenToNDC maps a pointer position to normalized device coordinates:
// container center maps to (0,0), top-left to (-1,1). Pointers outside the
// bounds return nil.
func ScreenToNDC(px, py float64, b Bounds) *r2.Vec {
	if b.Width <= 0 || b.Height <= 0 {
		return nil
	}
	if px < b.Left || px > b.Left+b.Width || py < b.Top || py > b.Top+b.Height {
		return nil
	}
	return &r2.Vec{
		X: ((px-b.Left)/b.Width)*2 - 1,
		Y: -(((py-b.Top)/b.Height)*2 - 1),
	}
}

// Ray is an origin and unit direction in world space.
type Ray struct {
	Origin    r3.Vec
	Direction r3.Vec
}

// Intersector resolves a ray against scene content, returning the nearest
// hit point or false for a miss.
type Intersector func(Ray) (r3.Vec, bool)

// Caster converts pointer positions into world positions through a camera
// view. The internal ray is reused across calls.
type Caster struct {
	view View3D

	// fallback plane distance along the view direction, used when no
	// intersector is set or the scene misses.
	PlaneDistance float64

	ray     Ray
	forward r3.Vec
}

// NewCaster returns a caster for the given view. planeDistance places the
// fallback plane; zero defaults to the camera-to-target distance.
func NewCaster(view View3D, planeDistance float64) *Caster {
	if planeDistance <= 0 {
		planeDistance = r3.Norm(r3.Sub(view.Target, view.Position))
		if planeDistance == 0 {
			planeDistance = DefaultMinDistance
		}
	}
	return &Caster{view: view, PlaneDistance: planeDistance}
}

// SetView repoints the caster at a new camera placement.
func (c *Caster) SetView(view View3D) { c.view = view }

// Pick converts a screen pointer to a world position. It returns nil when
// the pointer is outside the container. With an intersector the nearest
// scene hit wins; otherwise (or on a miss) the ray is projected onto the
// fallback plane, so empty space still yields a usable position.
func (c *Caster) Pick(px, py float64, b Bounds, hit Intersector) *r3.Vec {
	ndc := ScreenToNDC(px, py, b)
	if ndc == nil {
		return nil
	}
	c.castInto(*ndc)

	if hit != nil {
		if p, ok := hit(c.ray); ok {
			return &p
		}
	}
	// Intersect with the plane perpendicular to the view at PlaneDistance.
	t := c.PlaneDistance / r3.Dot(c.ray.Direction, c.forward)
	p := r3.Add(c.ray.Origin, r3.Scale(t, c.ray.Direction))
	return &p
}

// castInto rebuilds the reusable ray through an NDC point using the view
// basis. Half the viewport spans one NDC unit at the fallback plane.
func (c *Caster) castInto(ndc r2.Vec) {
	forward := r3.Sub(c.view.Target, c.view.Position)
	if r3.Norm(forward) == 0 {
		forward = r3.Scale(-1, defaultViewAxis)
	}
	forward = r3.Unit(forward)
	c.forward = forward

	up := c.view.Up
	if r3.Norm(up) == 0 {
		up = r3.Vec{Y: 1}
	}
	right := r3.Cross(forward, up)
	if r3.Norm(right) == 0 {
		right = r3.Vec{X: 1}
	}
	right = r3.Unit(right)
	trueUp := r3.Unit(r3.Cross(right, forward))

	half := c.PlaneDistance * math.Tan(math.Pi/8)
	target := r3.Add(c.view.Position, r3.Scale(c.PlaneDistance, forward))
	target = r3.Add(target, r3.Scale(ndc.X*half, right))
	target = r3.Add(target, r3.Scale(ndc.Y*half, trueUp))

	c.ray.Origin = c.view.Position
	c.ray.Direction = r3.Unit(r3.Sub(target, c.ray.Origin))
}
