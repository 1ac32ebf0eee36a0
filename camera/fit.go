// Package camera computes view placement and pointer geometry: fitting a
// camera to a node set in 2D and 3D, and casting cursor rays into the scene.
package camera

import (
	"math"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/spatial/r2"
	"gonum.org/v1/gonum/spatial/r3"
)

// Defaults for the fit-distance formula and PCA solver.
const (
	DefaultFOVFactor     = 1.2
	DefaultDistanceFloor = 50.0
	DefaultMinDistance   = 40.0
	DefaultPadding       = 40.0

	powerIterations = 20
)

// Viewport is the drawing surface size in pixels.
type Viewport struct {
	Width  float64
	Height float64
}

// View2D is a 2D camera placement: center the camera here at this zoom.
type View2D struct {
	Center r2.Vec
	Zoom   float64
}

// View3D is a 3D camera placement looking at Target from Position, with Up
// aligned to the viewport's vertical.
type View3D struct {
	Position r3.Vec
	Target   r3.Vec
	Up       r3.Vec
}

// FitOptions tunes the 3D fit-distance formula.
type FitOptions struct {
	FOVFactor     float64
	DistanceFloor float64
	MinDistance   float64
}

func (o FitOptions) withDefaults() FitOptions {
	if o.FOVFactor == 0 {
		o.FOVFactor = DefaultFOVFactor
	}
	if o.DistanceFloor == 0 {
		o.DistanceFloor = DefaultDistanceFloor
	}
	if o.MinDistance == 0 {
		o.MinDistance = DefaultMinDistance
	}
	return o
}

// FitView2D centers on the bounding box of points and zooms so the box plus
// padding fills the viewport. An empty set yields the identity view.
func FitView2D(points []r2.Vec, vp Viewport, padding float64) View2D {
	if len(points) == 0 {
		return View2D{Zoom: 1}
	}
	minX, maxX := points[0].X, points[0].X
	minY, maxY := points[0].Y, points[0].Y
	for _, p := range points[1:] {
		minX = math.Min(minX, p.X)
		maxX = math.Max(maxX, p.X)
		minY = math.Min(minY, p.Y)
		maxY = math.Max(maxY, p.Y)
	}
	center := r2.Vec{X: (minX + maxX) / 2, Y: (minY + maxY) / 2}

	spanX := (maxX - minX) + 2*padding
	spanY := (maxY - minY) + 2*padding
	zoom := 1.0
	if spanX > 0 && spanY > 0 && vp.Width > 0 && vp.Height > 0 {
		zoom = math.Min(vp.Width/spanX, vp.Height/spanY)
	}
	return View2D{Center: center, Zoom: zoom}
}

// defaultViewAxis is used when PCA is not applicable: camera pulled back
// along +Z, conventional screen-facing placement.
var defaultViewAxis = r3.Vec{X: 0, Y: 0, Z: 1}

// FitView3D places a camera to frame points. With fewer than 3 points the
// camera sits on the default axis; otherwise the viewing direction comes
// from PCA so the subset's largest cross-section faces the camera.
func FitView3D(points []r3.Vec, vp Viewport, opts FitOptions) View3D {
	opts = opts.withDefaults()
	if len(points) == 0 {
		return View3D{
			Position: r3.Scale(opts.MinDistance, defaultViewAxis),
			Up:       r3.Vec{Y: 1},
		}
	}

	centroid, maxDim := boundsOf(points)
	distance := math.Max(maxDim, opts.DistanceFloor)*opts.FOVFactor + opts.MinDistance

	dir := defaultViewAxis
	up := r3.Vec{Y: 1}
	if len(points) >= 3 {
		if axis1, axis2, ok := principalAxes(points, centroid); ok {
			// Least-spread direction; looking along it shows the widest face.
			dir = r3.Unit(r3.Cross(axis1, axis2))
			if dir.Y < 0 {
				dir = r3.Scale(-1, dir)
			}
			up = verticalAxis(axis1, axis2, vp)
		}
	}

	return View3D{
		Position: r3.Add(centroid, r3.Scale(distance, dir)),
		Target:   centroid,
		Up:       up,
	}
}

func boundsOf(points []r3.Vec) (centroid r3.Vec, maxDim float64) {
	min, max := points[0], points[0]
	for _, p := range points[1:] {
		min.X = math.Min(min.X, p.X)
		min.Y = math.Min(min.Y, p.Y)
		min.Z = math.Min(min.Z, p.Z)
		max.X = math.Max(max.X, p.X)
		max.Y = math.Max(max.Y, p.Y)
		max.Z = math.Max(max.Z, p.Z)
	}
	centroid = r3.Scale(0.5, r3.Add(min, max))
	maxDim = math.Max(max.X-min.X, math.Max(max.Y-min.Y, max.Z-min.Z))
	return centroid, maxDim
}

// principalAxes extracts the two directions of greatest spread from the 3x3
// covariance of points about the centroid, via power iteration with
// deflation. Returns ok=false for a degenerate (near-zero spread) cloud.
func principalAxes(points []r3.Vec, centroid r3.Vec) (first, second r3.Vec, ok bool) {
	cov := mat.NewSymDense(3, nil)
	n := float64(len(points))
	for _, p := range points {
		d := r3.Sub(p, centroid)
		v := [3]float64{d.X, d.Y, d.Z}
		for i := 0; i < 3; i++ {
			for j := i; j < 3; j++ {
				cov.SetSym(i, j, cov.At(i, j)+v[i]*v[j]/n)
			}
		}
	}

	a := mat.NewDense(3, 3, nil)
	a.Copy(cov)

	v1, l1 := powerIterate(a)
	if l1 < 1e-12 {
		return first, second, false
	}
	deflate(a, v1, l1)
	v2, l2 := powerIterate(a)
	if l2 < 1e-12 {
		return first, second, false
	}

	first = r3.Vec{X: v1.AtVec(0), Y: v1.AtVec(1), Z: v1.AtVec(2)}
	second = r3.Vec{X: v2.AtVec(0), Y: v2.AtVec(1), Z: v2.AtVec(2)}
	return first, second, true
}

// powerIterate runs a fixed number of power-method steps and returns the
// dominant eigenvector and its Rayleigh quotient.
func powerIterate(a *mat.Dense) (*mat.VecDense, float64) {
	// Asymmetric start keeps the iteration from landing orthogonal to the
	// dominant eigenvector on symmetric point clouds.
	v := mat.NewVecDense(3, []float64{1, 0.5, 0.25})
	tmp := mat.NewVecDense(3, nil)
	for i := 0; i < powerIterations; i++ {
		tmp.MulVec(a, v)
		norm := mat.Norm(tmp, 2)
		if norm < 1e-15 {
			return v, 0
		}
		tmp.ScaleVec(1/norm, tmp)
		v.CopyVec(tmp)
	}
	tmp.MulVec(a, v)
	return v, mat.Dot(tmp, v)
}

// deflate removes the contribution of eigenpair (v, lambda): A -= lambda*v*vT.
func deflate(a *mat.Dense, v *mat.VecDense, lambda float64) {
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			a.Set(i, j, a.At(i, j)-lambda*v.AtVec(i)*v.AtVec(j))
		}
	}
}

// verticalAxis picks which principal axis aligns with the viewport vertical:
// a landscape viewport keeps the widest spread horizontal, portrait keeps it
// vertical.
func verticalAxis(first, second r3.Vec, vp Viewport) r3.Vec {
	up := second
	if vp.Height > vp.Width {
		up = first
	}
	up = r3.Unit(up)
	if up.Y < 0 {
		up = r3.Scale(-1, up)
	}
	return up
}
