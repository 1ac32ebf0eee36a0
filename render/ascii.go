package render

import (
	"fmt"
	"math"
	"strings"

	"github.com/TFMV/forcegraph/models"
)

// Minimum grid the ASCII backend can usefully draw into.
const (
	asciiMinWidth  = 16
	asciiMinHeight = 8
)

// ASCIIAdapter renders onto a character grid, one rune per cell, for
// terminal or log output. Edges are drawn with Bresenham lines; node glyphs
// depend on the resolved shape.
type ASCIIAdapter[T any] struct {
	dispatcher[T]

	container *Container
	cols      int
	rows      int
	destroyed bool

	// grid is row-major, grid[row][col]; hit geometry stays in world
	// coordinates so Dispatch works regardless of the grid scale.
	grid [][]rune
}

// NewASCIIAdapter returns an uninitialized ASCII adapter.
func NewASCIIAdapter[T any]() *ASCIIAdapter[T] { return &ASCIIAdapter[T]{} }

// Init attaches the adapter and allocates the character grid. Surfaces
// smaller than 16x8 cells are rejected with an InitializationError.
func (a *ASCIIAdapter[T]) Init(container *Container, width, height float64) error {
	if a.destroyed {
		return &InitializationError{Kind: KindASCII, Reason: "adapter was destroyed and must not be reused"}
	}
	if container == nil {
		return &InitializationError{Kind: KindASCII, Reason: "container is nil"}
	}
	cols, rows := int(width), int(height)
	if cols < asciiMinWidth || rows < asciiMinHeight {
		return &InitializationError{Kind: KindASCII, Reason: fmt.Sprintf("grid %dx%d below minimum %dx%d", cols, rows, asciiMinWidth, asciiMinHeight)}
	}
	if container.attached {
		return &InitializationError{Kind: KindASCII, Reason: "container already has an attached adapter"}
	}
	container.attached = true
	a.container = container
	a.cols, a.rows = cols, rows
	a.allocGrid()
	return nil
}

func (a *ASCIIAdapter[T]) allocGrid() {
	a.grid = make([][]rune, a.rows)
	for i := range a.grid {
		a.grid[i] = make([]rune, a.cols)
	}
}

// Resize reallocates the grid for subsequent renders.
func (a *ASCIIAdapter[T]) Resize(width, height float64) {
	cols, rows := int(width), int(height)
	if cols >= asciiMinWidth && rows >= asciiMinHeight {
		a.cols, a.rows = cols, rows
		a.allocGrid()
	}
}

// Clear removes rendered content without destroying the adapter.
func (a *ASCIIAdapter[T]) Clear() {
	if a.container != nil {
		a.container.buf.Reset()
	}
	a.resetScene()
}

// Destroy releases the grid and detaches from the container.
func (a *ASCIIAdapter[T]) Destroy() {
	if a.container != nil {
		a.container.buf.Reset()
		a.container.attached = false
		a.container = nil
	}
	a.grid = nil
	a.resetScene()
	a.destroyed = true
}

// Render rasterizes the graph: border, edges first, then node glyphs.
// World coordinates are fitted to the grid from the node bounding box, so
// any layout scale draws sensibly.
func (a *ASCIIAdapter[T]) Render(g *models.Graph[T], cfg *VisualConfig[T]) error {
	if a.container == nil || a.destroyed {
		return fmt.Errorf("ascii adapter is not initialized")
	}
	a.resetScene()
	for i := range a.grid {
		for j := range a.grid[i] {
			a.grid[i][j] = ' '
		}
	}
	a.drawBorder()

	minX, minY, maxX, maxY := worldBounds(g)
	spanX := maxX - minX
	spanY := maxY - minY
	if spanX == 0 {
		spanX = 1
	}
	if spanY == 0 {
		spanY = 1
	}
	toGrid := func(x, y float64) (int, int) {
		gx := int((x-minX)/spanX*float64(a.cols-3)) + 1
		gy := int((y-minY)/spanY*float64(a.rows-3)) + 1
		return clampInt(gx, 1, a.cols-2), clampInt(gy, 1, a.rows-2)
	}

	for _, e := range g.Edges() {
		if e.Hidden {
			continue
		}
		src, tgt := g.Node(e.Source), g.Node(e.Target)
		if src == nil || tgt == nil {
			continue
		}
		style := cfg.edgeStyle(e.Type)
		x1, y1 := toGrid(src.X, src.Y)
		x2, y2 := toGrid(tgt.X, tgt.Y)
		a.drawLine(x1, y1, x2, y2)
		a.addHitEdge(e, src.X, src.Y, tgt.X, tgt.Y, style.Width)
	}

	for _, n := range g.Nodes() {
		style := cfg.nodeStyle(n.Type)
		x, y := toGrid(n.X, n.Y)
		a.grid[y][x] = glyphFor(style.Shape)
		if style.Label != nil {
			if label := style.Label(n); label != "" {
				a.placeLabel(label, x, y+1)
			}
		}
		a.addHitNode(n, style.Size)
	}

	var sb strings.Builder
	for _, row := range a.grid {
		sb.WriteString(string(row))
		sb.WriteRune('\n')
	}
	a.container.buf.Reset()
	a.container.buf.WriteString(sb.String())
	return nil
}

func (a *ASCIIAdapter[T]) drawBorder() {
	for i := 0; i < a.cols; i++ {
		a.grid[0][i] = '-'
		a.grid[a.rows-1][i] = '-'
	}
	for i := 0; i < a.rows; i++ {
		a.grid[i][0] = '|'
		a.grid[i][a.cols-1] = '|'
	}
	a.grid[0][0], a.grid[0][a.cols-1] = '+', '+'
	a.grid[a.rows-1][0], a.grid[a.rows-1][a.cols-1] = '+', '+'
}

func (a *ASCIIAdapter[T]) placeLabel(label string, x, y int) {
	if y >= a.rows-1 {
		return
	}
	for i := 0; i < len(label) && x+i < a.cols-1; i++ {
		a.grid[y][x+i] = rune(label[i])
	}
}

func glyphFor(s Shape) rune {
	switch s {
	case ShapeSquare:
		return '#'
	case ShapeDiamond:
		return '*'
	default:
		return 'O'
	}
}

// drawLine plots a Bresenham line, leaving node glyphs untouched.
func (a *ASCIIAdapter[T]) drawLine(x1, y1, x2, y2 int) {
	dx := absInt(x2 - x1)
	dy := -absInt(y2 - y1)
	sx, sy := 1, 1
	if x1 >= x2 {
		sx = -1
	}
	if y1 >= y2 {
		sy = -1
	}
	err := dx + dy

	for {
		if x1 >= 0 && x1 < a.cols && y1 >= 0 && y1 < a.rows {
			switch a.grid[y1][x1] {
			case 'O', '#', '*':
			default:
				a.grid[y1][x1] = '.'
			}
		}
		if x1 == x2 && y1 == y2 {
			break
		}
		e2 := 2 * err
		if e2 >= dy {
			if x1 == x2 {
				break
			}
			err += dy
			x1 += sx
		}
		if e2 <= dx {
			if y1 == y2 {
				break
			}
			err += dx
			y1 += sy
		}
	}
}

func worldBounds[T any](g *models.Graph[T]) (minX, minY, maxX, maxY float64) {
	nodes := g.Nodes()
	if len(nodes) == 0 {
		return 0, 0, 1, 1
	}
	minX, maxX = nodes[0].X, nodes[0].X
	minY, maxY = nodes[0].Y, nodes[0].Y
	for _, n := range nodes[1:] {
		minX = math.Min(minX, n.X)
		maxX = math.Max(maxX, n.X)
		minY = math.Min(minY, n.Y)
		maxY = math.Max(maxY, n.Y)
	}
	return minX, minY, maxX, maxY
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func absInt(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
