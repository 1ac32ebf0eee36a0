package camera

import (
	"math"
	"testing"

	"gonum.org/v1/gonum/spatial/r3"
)

func TestScreenToNDC(t *testing.T) {
	b := Bounds{Left: 0, Top: 0, Width: 800, Height: 600}

	tests := []struct {
		name   string
		px, py float64
		want   [2]float64
	}{
		{"center", 400, 300, [2]float64{0, 0}},
		{"top left", 0, 0, [2]float64{-1, 1}},
		{"bottom right", 800, 600, [2]float64{1, -1}},
		{"top center", 400, 0, [2]float64{0, 1}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ScreenToNDC(tt.px, tt.py, b)
			if got == nil {
				t.Fatal("ScreenToNDC() = nil, want a result")
			}
			if math.Abs(got.X-tt.want[0]) > 1e-12 || math.Abs(got.Y-tt.want[1]) > 1e-12 {
				t.Errorf("ScreenToNDC(%v, %v) = (%v, %v), want (%v, %v)",
					tt.px, tt.py, got.X, got.Y, tt.want[0], tt.want[1])
			}
		})
	}
}

func TestScreenToNDCOutOfBounds(t *testing.T) {
	b := Bounds{Left: 100, Top: 100, Width: 800, Height: 600}
	for _, p := range [][2]float64{{50, 300}, {950, 300}, {400, 50}, {400, 750}} {
		if got := ScreenToNDC(p[0], p[1], b); got != nil {
			t.Errorf("ScreenToNDC(%v, %v) = %v, want nil outside bounds", p[0], p[1], got)
		}
	}
	if got := ScreenToNDC(10, 10, Bounds{}); got != nil {
		t.Error("degenerate bounds should yield nil")
	}
}

func TestPickFallbackPlane(t *testing.T) {
	view := View3D{
		Position: r3.Vec{Z: 100},
		Target:   r3.Vec{},
		Up:       r3.Vec{Y: 1},
	}
	c := NewCaster(view, 0)
	b := Bounds{Width: 800, Height: 600}

	// Center of the screen: the ray runs straight down the view axis and
	// lands on the fallback plane at the target.
	got := c.Pick(400, 300, b, nil)
	if got == nil {
		t.Fatal("Pick() = nil for an in-bounds pointer")
	}
	if math.Abs(got.X) > 1e-9 || math.Abs(got.Y) > 1e-9 || math.Abs(got.Z) > 1e-9 {
		t.Errorf("Pick(center) = %v, want the target origin", got)
	}

	// Off-center pointers still land on the plane z=0.
	got = c.Pick(600, 200, b, nil)
	if got == nil {
		t.Fatal("Pick() = nil for an in-bounds pointer")
	}
	if math.Abs(got.Z) > 1e-9 {
		t.Errorf("Pick() fallback z = %v, want on the plane z=0", got.Z)
	}
	if got.X <= 0 || got.Y <= 0 {
		t.Errorf("Pick(right of and above center) = %v, want +x +y", got)
	}
}

func TestPickOutOfBounds(t *testing.T) {
	c := NewCaster(View3D{Position: r3.Vec{Z: 100}, Up: r3.Vec{Y: 1}}, 0)
	if got := c.Pick(-5, 300, Bounds{Width: 800, Height: 600}, nil); got != nil {
		t.Errorf("Pick() outside bounds = %v, want nil", got)
	}
}

func TestPickUsesIntersector(t *testing.T) {
	view := View3D{Position: r3.Vec{Z: 100}, Up: r3.Vec{Y: 1}}
	c := NewCaster(view, 0)
	b := Bounds{Width: 800, Height: 600}

	hit := r3.Vec{X: 1, Y: 2, Z: 3}
	var sawRay Ray
	got := c.Pick(400, 300, b, func(r Ray) (r3.Vec, bool) {
		sawRay = r
		return hit, true
	})
	if got == nil || *got != hit {
		t.Errorf("Pick() = %v, want intersector hit %v", got, hit)
	}
	if sawRay.Origin != view.Position {
		t.Errorf("ray origin = %v, want camera position", sawRay.Origin)
	}

	// A missing intersector result falls back to the plane.
	got = c.Pick(400, 300, b, func(Ray) (r3.Vec, bool) { return r3.Vec{}, false })
	if got == nil {
		t.Fatal("Pick() with a missing scene hit should fall back to the plane")
	}
}
