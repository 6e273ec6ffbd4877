package grid

import (
	"fmt"
	"strings"
)

// Grid is a fixed-shape 2D array of tiles stored in row-major order.
// The shape is invariant for the lifetime of an episode; edits go
// through Set on a cloned grid so prior states stay untouched.
type Grid struct {
	H, W  int
	Cells []Tile
}

func New(h, w int) (*Grid, error) {
	if h <= 0 || w <= 0 {
		return nil, fmt.Errorf("invalid grid shape (%d, %d)", h, w)
	}
	return &Grid{H: h, W: w, Cells: make([]Tile, h*w)}, nil
}

func (g *Grid) At(y, x int) Tile {
	return g.Cells[y*g.W+x]
}

func (g *Grid) Set(y, x int, t Tile) {
	g.Cells[y*g.W+x] = t
}

func (g *Grid) InBounds(y, x int) bool {
	return y >= 0 && y < g.H && x >= 0 && x < g.W
}

func (g *Grid) Clone() *Grid {
	cells := make([]Tile, len(g.Cells))
	copy(cells, g.Cells)
	return &Grid{H: g.H, W: g.W, Cells: cells}
}

func (g *Grid) Eq(o *Grid) bool {
	if g.H != o.H || g.W != o.W {
		return false
	}
	for i, c := range g.Cells {
		if c != o.Cells[i] {
			return false
		}
	}
	return true
}

// Hash returns a deterministic string key for tabular policies.
func (g *Grid) Hash() string {
	var sb strings.Builder
	sb.Grow(len(g.Cells))
	for _, c := range g.Cells {
		sb.WriteByte('0' + byte(c))
	}
	return sb.String()
}

func (g *Grid) Count(t Tile) int {
	n := 0
	for _, c := range g.Cells {
		if c == t {
			n++
		}
	}
	return n
}

// Bool is a fixed-shape boolean grid, used for the static tile mask.
type Bool struct {
	H, W  int
	Cells []bool
}

func NewBool(h, w int) *Bool {
	return &Bool{H: h, W: w, Cells: make([]bool, h*w)}
}

func (b *Bool) At(y, x int) bool {
	return b.Cells[y*b.W+x]
}

func (b *Bool) Set(y, x int, v bool) {
	b.Cells[y*b.W+x] = v
}

func (b *Bool) Clone() *Bool {
	cells := make([]bool, len(b.Cells))
	copy(cells, b.Cells)
	return &Bool{H: b.H, W: b.W, Cells: cells}
}

func (b *Bool) CountTrue() int {
	n := 0
	for _, c := range b.Cells {
		if c {
			n++
		}
	}
	return n
}

// Int is a fixed-shape integer grid, used for distance fields.
type Int struct {
	H, W  int
	Cells []int
}

func NewInt(h, w int) *Int {
	return &Int{H: h, W: w, Cells: make([]int, h*w)}
}

func (g *Int) At(y, x int) int {
	return g.Cells[y*g.W+x]
}

func (g *Int) Set(y, x, v int) {
	g.Cells[y*g.W+x] = v
}

func (g *Int) Fill(v int) {
	for i := range g.Cells {
		g.Cells[i] = v
	}
}

func (g *Int) Clone() *Int {
	cells := make([]int, len(g.Cells))
	copy(cells, g.Cells)
	return &Int{H: g.H, W: g.W, Cells: cells}
}
