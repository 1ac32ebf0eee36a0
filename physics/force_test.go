package physics

import (
	"math"
	"testing"

	"github.com/TFMV/forcegraph/models"
)

func twoNodeGraph(t *testing.T, sep float64) *models.Graph[struct{}] {
	t.Helper()
	g := models.NewGraph[struct{}]()
	if err := g.AddNode(models.Node[struct{}]{ID: "a", X: 0, Y: 0}); err != nil {
		t.Fatal(err)
	}
	if err := g.AddNode(models.Node[struct{}]{ID: "b", X: sep, Y: 0}); err != nil {
		t.Fatal(err)
	}
	return g
}

func separation(g *models.Graph[struct{}], a, b string) float64 {
	na, nb := g.Node(a), g.Node(b)
	return math.Hypot(nb.X-na.X, nb.Y-na.Y)
}

func TestRepulsionNewtonsThirdLaw(t *testing.T) {
	g := twoNodeGraph(t, 5)
	nodes := g.Nodes()

	r := NewRepulsion[struct{}]()
	r.Apply(nodes, nil, 1.0)

	a, b := nodes[0], nodes[1]
	if a.FX+b.FX != 0 || a.FY+b.FY != 0 {
		t.Errorf("forces not equal and opposite: a=(%v,%v) b=(%v,%v)", a.FX, a.FY, b.FX, b.FY)
	}
	if a.FX >= 0 || b.FX <= 0 {
		t.Errorf("negative charge should repel: a.FX=%v b.FX=%v", a.FX, b.FX)
	}
}

func TestAttractionNewtonsThirdLaw(t *testing.T) {
	g := twoNodeGraph(t, 50)
	if err := g.AddEdge(models.Edge[struct{}]{ID: "e", Source: "a", Target: "b"}); err != nil {
		t.Fatal(err)
	}
	nodes, edges := g.Nodes(), g.Edges()

	f := NewAttraction[struct{}]()
	f.Apply(nodes, edges, 1.0)

	a, b := nodes[0], nodes[1]
	if a.FX+b.FX != 0 || a.FY+b.FY != 0 {
		t.Errorf("forces not equal and opposite: a=(%v,%v) b=(%v,%v)", a.FX, a.FY, b.FX, b.FY)
	}
	// 50 apart with ideal 30: stretched, so the spring pulls together.
	if a.FX <= 0 || b.FX >= 0 {
		t.Errorf("stretched spring should pull together: a.FX=%v b.FX=%v", a.FX, b.FX)
	}
}

func TestMomentumConservedWithoutCentering(t *testing.T) {
	g := twoNodeGraph(t, 5)
	if err := g.AddEdge(models.Edge[struct{}]{ID: "e", Source: "a", Target: "b"}); err != nil {
		t.Fatal(err)
	}

	sim := NewSimulation(g).
		Use(NewRepulsion[struct{}]()).
		Use(NewAttraction[struct{}]())
	sim.Start()
	for i := 0; i < 50; i++ {
		sim.Tick(1)
	}

	var px, py float64
	for _, n := range g.Nodes() {
		px += n.VX
		py += n.VY
	}
	if math.Abs(px) > 1e-9 || math.Abs(py) > 1e-9 {
		t.Errorf("net momentum (%v, %v), want 0", px, py)
	}
}

func TestFixedNodesNeverMove(t *testing.T) {
	g := models.NewGraph[struct{}]()
	g.AddNode(models.Node[struct{}]{ID: "pin", X: 10, Y: 10, Fixed: true})
	g.AddNode(models.Node[struct{}]{ID: "free", X: 12, Y: 10})
	g.AddEdge(models.Edge[struct{}]{ID: "e", Source: "pin", Target: "free", Distance: 50})

	sim := NewSimulation(g).
		Use(NewRepulsion[struct{}]()).
		Use(NewAttraction[struct{}]()).
		Use(NewCentering[struct{}]()).
		SetCollision(NewCollision[struct{}]())
	sim.Start()
	for i := 0; i < 100; i++ {
		sim.Tick(1)
	}

	pin := g.Node("pin")
	if pin.X != 10 || pin.Y != 10 {
		t.Errorf("fixed node moved to (%v, %v), want (10, 10)", pin.X, pin.Y)
	}
	free := g.Node("free")
	if free.X == 12 && free.Y == 10 {
		t.Error("free node should have moved")
	}
}

func TestCollisionSeparatesOverlap(t *testing.T) {
	g := twoNodeGraph(t, 4)
	nodes := g.Nodes()

	c := NewCollision[struct{}]()
	c.RadiusFunc = func(n *models.Node[struct{}]) float64 {
		if n.ID == "a" {
			return 5
		}
		return 7
	}
	c.Resolve(nodes)

	if sep := separation(g, "a", "b"); sep < 12-1e-9 {
		t.Errorf("separation after collision = %v, want >= 12", sep)
	}
}

func TestCollisionFixedPartnerTakesFullPush(t *testing.T) {
	g := models.NewGraph[struct{}]()
	g.AddNode(models.Node[struct{}]{ID: "pin", X: 0, Y: 0, Fixed: true})
	g.AddNode(models.Node[struct{}]{ID: "free", X: 4, Y: 0})

	c := NewCollision[struct{}]()
	c.Radius = 6
	c.Resolve(g.Nodes())

	pin, free := g.Node("pin"), g.Node("free")
	if pin.X != 0 || pin.Y != 0 {
		t.Errorf("fixed node moved to (%v, %v)", pin.X, pin.Y)
	}
	if free.X < 12-1e-9 {
		t.Errorf("free node at x=%v, want >= 12", free.X)
	}
}

func TestCollisionCoincidentPair(t *testing.T) {
	g := twoNodeGraph(t, 0)
	c := NewCollision[struct{}]()
	c.Resolve(g.Nodes())

	if sep := separation(g, "a", "b"); sep < 2*DefaultCollisionRadius-1e-9 {
		t.Errorf("coincident pair separation = %v, want >= %v", sep, 2*DefaultCollisionRadius)
	}
}

func TestSpringChainConverges(t *testing.T) {
	g := models.NewGraph[struct{}]()
	g.AddNode(models.Node[struct{}]{ID: "a", X: 0, Y: 0})
	g.AddNode(models.Node[struct{}]{ID: "b", X: 10, Y: 0})
	g.AddNode(models.Node[struct{}]{ID: "c", X: 20, Y: 0})
	g.AddEdge(models.Edge[struct{}]{ID: "ab", Source: "a", Target: "b", Distance: 30, Strength: 0.1})
	g.AddEdge(models.Edge[struct{}]{ID: "bc", Source: "b", Target: "c", Distance: 30, Strength: 0.1})

	sim := NewSimulation(g).Use(NewAttraction[struct{}]())
	sim.Start()
	for i := 0; i < 300; i++ {
		sim.Tick(1)
	}

	for _, pair := range [][2]string{{"a", "b"}, {"b", "c"}} {
		sep := separation(g, pair[0], pair[1])
		if math.Abs(sep-30) > 3 {
			t.Errorf("separation(%s, %s) = %v, want 30 +/- 10%%", pair[0], pair[1], sep)
		}
	}
}

func TestRepulsionSeparationMonotonic(t *testing.T) {
	g := twoNodeGraph(t, 5)

	sim := NewSimulation(g).Use(NewRepulsion[struct{}]())
	sim.Start()

	prev := separation(g, "a", "b")
	for sim.State() == StateRunning && sim.Alpha() > 2*DefaultAlphaMin {
		sim.Tick(1)
		cur := separation(g, "a", "b")
		if cur <= prev {
			t.Fatalf("separation did not increase: %v -> %v at alpha %v", prev, cur, sim.Alpha())
		}
		prev = cur
	}
}

func TestHiddenEdgesStillPull(t *testing.T) {
	g := twoNodeGraph(t, 50)
	g.AddEdge(models.Edge[struct{}]{ID: "e", Source: "a", Target: "b", Hidden: true})

	f := NewAttraction[struct{}]()
	f.Apply(g.Nodes(), g.Edges(), 1.0)

	if g.Node("a").FX == 0 {
		t.Error("hidden edge should still exert spring force")
	}
}

func TestCenteringPullsTowardTarget(t *testing.T) {
	g := models.NewGraph[struct{}]()
	g.AddNode(models.Node[struct{}]{ID: "a", X: 100, Y: -40})

	c := NewCentering[struct{}]()
	c.Apply(g.Nodes(), nil, 1.0)

	n := g.Node("a")
	if n.FX >= 0 || n.FY <= 0 {
		t.Errorf("centering force (%v, %v) should point toward origin", n.FX, n.FY)
	}
}

func TestDisabledForceIsNoOp(t *testing.T) {
	g := twoNodeGraph(t, 5)
	r := NewRepulsion[struct{}]()
	r.Enabled = false
	r.Apply(g.Nodes(), nil, 1.0)

	for _, n := range g.Nodes() {
		if n.FX != 0 || n.FY != 0 {
			t.Errorf("disabled force wrote accumulators on %q", n.ID)
		}
	}
}

func TestScatterDeterministic(t *testing.T) {
	build := func() *models.Graph[struct{}] {
		g := models.NewGraph[struct{}]()
		g.AddNode(models.Node[struct{}]{ID: "a"})
		g.AddNode(models.Node[struct{}]{ID: "b"})
		g.AddNode(models.Node[struct{}]{ID: "placed", X: 33, Y: 44})
		return g
	}
	g1, g2 := build(), build()
	Scatter(g1, 800, 600, 42)
	Scatter(g2, 800, 600, 42)

	for _, id := range []string{"a", "b"} {
		n1, n2 := g1.Node(id), g2.Node(id)
		if n1.X != n2.X || n1.Y != n2.Y {
			t.Errorf("scatter not deterministic for %q: (%v,%v) vs (%v,%v)", id, n1.X, n1.Y, n2.X, n2.Y)
		}
		if n1.X == 0 && n1.Y == 0 {
			t.Errorf("node %q was not scattered", id)
		}
		if n1.X < 0 || n1.X > 800 || n1.Y < 0 || n1.Y > 600 {
			t.Errorf("node %q scattered out of bounds: (%v, %v)", id, n1.X, n1.Y)
		}
	}

	placed := g1.Node("placed")
	if placed.X != 33 || placed.Y != 44 {
		t.Error("explicitly placed node should not be scattered")
	}
}
