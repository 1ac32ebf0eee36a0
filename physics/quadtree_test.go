package physics

import (
	"math"
	"testing"
)

// exactForce computes the unapproximated pairwise force on body i with the
// same clamping rules the tree applies.
func exactForce(px, py, charge []float64, i int, distanceMin, distanceMax, alpha float64) (fx, fy float64) {
	for j := range px {
		if j == i {
			continue
		}
		dx := px[j] - px[i]
		dy := py[j] - py[i]
		dist := math.Sqrt(dx*dx + dy*dy)
		if dist == 0 {
			continue
		}
		if distanceMax > 0 && dist > distanceMax {
			continue
		}
		d := math.Max(dist, distanceMin)
		mag := charge[j] * alpha / (d * d)
		fx += dx / dist * mag
		fy += dy / dist * mag
	}
	return fx, fy
}

func clusterFixture() (px, py, charge []float64) {
	// Two clusters far apart plus a stray body, enough structure for the
	// approximation to matter.
	coords := [][2]float64{
		{0, 0}, {2, 1}, {1, 3}, {3, 2},
		{100, 100}, {102, 101}, {101, 103}, {99, 98},
		{50, -40},
	}
	for _, c := range coords {
		px = append(px, c[0])
		py = append(py, c[1])
		charge = append(charge, -30)
	}
	return px, py, charge
}

func TestQuadtreeThetaZeroIsExact(t *testing.T) {
	px, py, charge := clusterFixture()
	var tree quadtree
	tree.rebuild(px, py, charge)

	for i := range px {
		gotX, gotY := tree.forceAt(int32(i), 0, 1, 0, 1)
		wantX, wantY := exactForce(px, py, charge, i, 1, 0, 1)
		if math.Abs(gotX-wantX) > 1e-9 || math.Abs(gotY-wantY) > 1e-9 {
			t.Errorf("body %d: theta=0 force (%v, %v), exact (%v, %v)", i, gotX, gotY, wantX, wantY)
		}
	}
}

func TestQuadtreeApproximationClose(t *testing.T) {
	px, py, charge := clusterFixture()
	var tree quadtree
	tree.rebuild(px, py, charge)

	for i := range px {
		gotX, gotY := tree.forceAt(int32(i), DefaultTheta, 1, 0, 1)
		wantX, wantY := exactForce(px, py, charge, i, 1, 0, 1)
		gotMag := math.Hypot(gotX, gotY)
		wantMag := math.Hypot(wantX, wantY)
		if wantMag == 0 {
			continue
		}
		if math.Abs(gotMag-wantMag)/wantMag > 0.15 {
			t.Errorf("body %d: approximate magnitude %v deviates from exact %v by > 15%%", i, gotMag, wantMag)
		}
	}
}

func TestQuadtreeDistanceMaxCutoff(t *testing.T) {
	px := []float64{0, 1000}
	py := []float64{0, 0}
	charge := []float64{-30, -30}
	var tree quadtree
	tree.rebuild(px, py, charge)

	fx, fy := tree.forceAt(0, 0, 1, 100, 1)
	if fx != 0 || fy != 0 {
		t.Errorf("force beyond distanceMax = (%v, %v), want 0", fx, fy)
	}
	fx, _ = tree.forceAt(0, 0, 1, 2000, 1)
	if fx == 0 {
		t.Error("force within distanceMax should be nonzero")
	}
}

func TestQuadtreeDistanceMinClamp(t *testing.T) {
	px := []float64{0, 0.001}
	py := []float64{0, 0}
	charge := []float64{-30, -30}
	var tree quadtree
	tree.rebuild(px, py, charge)

	fx, _ := tree.forceAt(0, 0, 10, 0, 1)
	want := 30.0 / 100.0 // |charge| / distanceMin^2
	if math.Abs(math.Abs(fx)-want) > 1e-9 {
		t.Errorf("clamped force magnitude = %v, want %v", math.Abs(fx), want)
	}
}

func TestQuadtreeCoincidentBodies(t *testing.T) {
	// All bodies at the same point must not loop forever or produce NaN.
	px := []float64{5, 5, 5}
	py := []float64{5, 5, 5}
	charge := []float64{-30, -30, -30}
	var tree quadtree
	tree.rebuild(px, py, charge)

	fx, fy := tree.forceAt(0, DefaultTheta, 1, 0, 1)
	if math.IsNaN(fx) || math.IsNaN(fy) {
		t.Errorf("coincident bodies produced NaN force (%v, %v)", fx, fy)
	}
}

func TestQuadtreeRebuildReuses(t *testing.T) {
	px, py, charge := clusterFixture()
	var tree quadtree
	tree.rebuild(px, py, charge)
	first := cap(tree.cells)

	tree.rebuild(px, py, charge)
	if cap(tree.cells) != first {
		t.Errorf("rebuild reallocated arena: cap %d -> %d", first, cap(tree.cells))
	}
}
