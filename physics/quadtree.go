package physics

import "math"

// quadtree is a Barnes-Hut spatial index. Cells live in a flat arena and
// reference each other by index, so a rebuild reuses the same backing array
// instead of churning the allocator once per tick.
type quadtree struct {
	cells []quadCell
	stack []int32

	px, py, charge []float64
}

type quadCell struct {
	children [4]int32
	body     int32 // particle index for single-body leaves
	count    int32 // bodies contained in this subtree
	leaf     bool
	charge   float64 // summed charge of contained bodies
	comX     float64 // |charge|-weighted center
	comY     float64
	weight   float64 // summed |charge|
	x, y     float64 // cell origin
	size     float64
}

const (
	noCell   int32 = -1
	maxDepth       = 24
)

// rebuild indexes the given positions and charges. Called once per tick at
// the head of the repulsion pass.
func (t *quadtree) rebuild(px, py, charge []float64) {
	t.cells = t.cells[:0]
	t.px, t.py, t.charge = px, py, charge
	if len(px) == 0 {
		return
	}

	minX, maxX := px[0], px[0]
	minY, maxY := py[0], py[0]
	for i := 1; i < len(px); i++ {
		minX = math.Min(minX, px[i])
		maxX = math.Max(maxX, px[i])
		minY = math.Min(minY, py[i])
		maxY = math.Max(maxY, py[i])
	}
	size := math.Max(maxX-minX, maxY-minY)
	if size == 0 {
		size = 1
	}
	// Pad so bodies on the max edge stay strictly inside.
	size *= 1.01

	t.newCell(minX, minY, size)
	for i := range px {
		t.insert(int32(i))
	}
}

func (t *quadtree) newCell(x, y, size float64) int32 {
	t.cells = append(t.cells, quadCell{
		children: [4]int32{noCell, noCell, noCell, noCell},
		body:     -1,
		leaf:     true,
		x:        x,
		y:        y,
		size:     size,
	})
	return int32(len(t.cells) - 1)
}

func (t *quadtree) insert(body int32) {
	x, y := t.px[body], t.py[body]
	w := math.Abs(t.charge[body])

	cur := int32(0)
	for depth := 0; ; depth++ {
		c := &t.cells[cur]

		// Aggregate on the way down.
		total := c.weight + w
		if total > 0 {
			c.comX = (c.comX*c.weight + x*w) / total
			c.comY = (c.comY*c.weight + y*w) / total
		}
		c.weight = total
		c.charge += t.charge[body]
		c.count++

		if c.leaf {
			if c.count == 1 {
				c.body = body
				return
			}
			if depth >= maxDepth {
				// Coincident bodies: keep aggregating into this leaf.
				return
			}
			// Split: push the resident body into its quadrant, then keep
			// descending with the new one.
			old := c.body
			c.leaf = false
			c.body = -1
			if old >= 0 {
				q := t.quadrant(cur, t.px[old], t.py[old])
				child := t.child(cur, q)
				ow := math.Abs(t.charge[old])
				cc := &t.cells[child]
				cc.body = old
				cc.count = 1
				cc.charge = t.charge[old]
				cc.weight = ow
				cc.comX, cc.comY = t.px[old], t.py[old]
			}
		}

		q := t.quadrant(cur, x, y)
		cur = t.child(cur, q)
	}
}

func (t *quadtree) quadrant(cell int32, x, y float64) int {
	c := &t.cells[cell]
	half := c.size / 2
	q := 0
	if x >= c.x+half {
		q |= 1
	}
	if y >= c.y+half {
		q |= 2
	}
	return q
}

// child returns the child cell for quadrant q, creating it on demand.
func (t *quadtree) child(cell int32, q int) int32 {
	if t.cells[cell].children[q] != noCell {
		return t.cells[cell].children[q]
	}
	half := t.cells[cell].size / 2
	x := t.cells[cell].x
	y := t.cells[cell].y
	if q&1 != 0 {
		x += half
	}
	if q&2 != 0 {
		y += half
	}
	idx := t.newCell(x, y, half)
	t.cells[cell].children[q] = idx
	return idx
}

// forceAt accumulates the Barnes-Hut approximated force on body i. A cell is
// treated as a single aggregate when size/distance < theta; theta = 0 makes
// the traversal exact pairwise. distanceMin clamps near-singular pairs and
// distanceMax (when positive) skips distant ones.
func (t *quadtree) forceAt(i int32, theta, distanceMin, distanceMax, alpha float64) (fx, fy float64) {
	if len(t.cells) == 0 {
		return 0, 0
	}
	x, y := t.px[i], t.py[i]

	t.stack = t.stack[:0]
	t.stack = append(t.stack, 0)
	for len(t.stack) > 0 {
		cur := t.stack[len(t.stack)-1]
		t.stack = t.stack[:len(t.stack)-1]
		c := &t.cells[cur]
		if c.count == 0 {
			continue
		}
		if c.leaf && c.count == 1 && c.body == i {
			continue
		}

		dx := c.comX - x
		dy := c.comY - y
		dist := math.Sqrt(dx*dx + dy*dy)

		if c.leaf || (dist > 0 && c.size/dist < theta) {
			if distanceMax > 0 && dist > distanceMax {
				continue
			}
			if dist == 0 {
				continue
			}
			d := math.Max(dist, distanceMin)
			// Negative aggregate charge pushes the body away from the cell.
			mag := c.charge * alpha / (d * d)
			fx += dx / dist * mag
			fy += dy / dist * mag
			continue
		}
		for _, ch := range c.children {
			if ch != noCell {
				t.stack = append(t.stack, ch)
			}
		}
	}
	return fx, fy
}
