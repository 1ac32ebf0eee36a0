package camera

import (
	"math"
	"testing"

	"gonum.org/v1/gonum/spatial/r2"
	"gonum.org/v1/gonum/spatial/r3"
)

func TestFitView2D(t *testing.T) {
	points := []r2.Vec{
		{X: 0, Y: 0}, {X: 100, Y: 0}, {X: 100, Y: 50}, {X: 0, Y: 50},
	}
	vp := Viewport{Width: 800, Height: 600}

	view := FitView2D(points, vp, 0)
	if view.Center.X != 50 || view.Center.Y != 25 {
		t.Errorf("center = (%v, %v), want (50, 25)", view.Center.X, view.Center.Y)
	}
	// 800/100 = 8 horizontally, 600/50 = 12 vertically; the tighter axis wins.
	if view.Zoom != 8 {
		t.Errorf("zoom = %v, want 8", view.Zoom)
	}

	padded := FitView2D(points, vp, 40)
	if padded.Zoom >= view.Zoom {
		t.Errorf("padding should reduce zoom: %v >= %v", padded.Zoom, view.Zoom)
	}

	empty := FitView2D(nil, vp, 0)
	if empty.Zoom != 1 {
		t.Errorf("empty set zoom = %v, want identity", empty.Zoom)
	}
}

func TestFitView3DFlatSquarePCA(t *testing.T) {
	// Points in the z=0 plane: the least-spread axis is z, so the camera
	// must look along it.
	points := []r3.Vec{
		{X: -10, Y: -5}, {X: 10, Y: -5}, {X: 10, Y: 5}, {X: -10, Y: 5},
		{X: 0, Y: 0},
	}
	view := FitView3D(points, Viewport{Width: 800, Height: 600}, FitOptions{})

	dir := r3.Unit(r3.Sub(view.Position, view.Target))
	if math.Abs(math.Abs(dir.Z)-1) > 1e-6 {
		t.Errorf("view direction %v, want |z| close to 1", dir)
	}
	if view.Target.X != 0 || view.Target.Y != 0 {
		t.Errorf("target = %v, want the centroid", view.Target)
	}
}

func TestFitView3DDistanceFormula(t *testing.T) {
	points := []r3.Vec{{X: 0}, {X: 200}}
	opts := FitOptions{FOVFactor: 1.5, DistanceFloor: 50, MinDistance: 10}
	view := FitView3D(points, Viewport{Width: 800, Height: 600}, opts)

	// maxDim 200 above the floor: distance = 200*1.5 + 10.
	want := 200*1.5 + 10.0
	got := r3.Norm(r3.Sub(view.Position, view.Target))
	if math.Abs(got-want) > 1e-9 {
		t.Errorf("camera distance = %v, want %v", got, want)
	}
}

func TestFitView3DFloorApplies(t *testing.T) {
	points := []r3.Vec{{X: 0}, {X: 1}}
	opts := FitOptions{FOVFactor: 1, DistanceFloor: 50, MinDistance: 10}
	view := FitView3D(points, Viewport{Width: 800, Height: 600}, opts)

	got := r3.Norm(r3.Sub(view.Position, view.Target))
	if math.Abs(got-60) > 1e-9 {
		t.Errorf("camera distance = %v, want floor*fov+min = 60", got)
	}
}

func TestFitView3DFewPointsFallsBack(t *testing.T) {
	points := []r3.Vec{{X: 3, Y: 4, Z: 5}, {X: 6, Y: 7, Z: 8}}
	view := FitView3D(points, Viewport{Width: 800, Height: 600}, FitOptions{})

	dir := r3.Unit(r3.Sub(view.Position, view.Target))
	if math.Abs(dir.Z-1) > 1e-9 || math.Abs(dir.X) > 1e-9 {
		t.Errorf("with <3 points the camera should sit on the default axis, got %v", dir)
	}
}

func TestFitView3DVerticalNonNegative(t *testing.T) {
	// A plane tilted so the naive cross product points downward.
	points := []r3.Vec{
		{X: 0, Y: 0, Z: 0}, {X: 10, Y: 0, Z: 0}, {X: 0, Y: 1, Z: 5},
		{X: 10, Y: 1, Z: 5}, {X: 5, Y: 0.5, Z: 2.5},
	}
	view := FitView3D(points, Viewport{Width: 800, Height: 600}, FitOptions{})

	dir := r3.Unit(r3.Sub(view.Position, view.Target))
	if dir.Y < 0 {
		t.Errorf("view direction %v should have a non-negative vertical component", dir)
	}
}
