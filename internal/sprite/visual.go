// Package sprite procedurally builds the visual objects scenes draw:
// characters, platforms, collectibles, particle bursts, and feedback text.
// Everything is assembled from screen cells at construction time; nothing is
// loaded from assets. Constructors hand ownership to the caller and retain no
// state, and all animation advances only when the host ticks it.
package sprite

import (
	"gameforge/internal/core"
)

// placedCell is one cell of a composite visual, positioned relative to the
// visual's anchor. Cells are sparse: positions without a cell show whatever
// is underneath.
type placedCell struct {
	dx, dy int
	cell   core.Cell
}

// Visual is a composite drawable built from screen cells. Its position is
// the top-left anchor in world coordinates, exactly as passed to the
// constructor that built it.
type Visual struct {
	x, y  int
	w, h  int
	cells []placedCell
}

func newVisual(x, y int) *Visual {
	return &Visual{x: x, y: y}
}

// put adds a cell at an offset from the anchor, growing the recorded size.
func (v *Visual) put(dx, dy int, r rune, c core.Color) {
	v.cells = append(v.cells, placedCell{dx: dx, dy: dy, cell: core.Cell{Rune: r, Color: c}})
	if dx+1 > v.w {
		v.w = dx + 1
	}
	if dy+1 > v.h {
		v.h = dy + 1
	}
}

// Position returns the anchor position.
func (v *Visual) Position() (int, int) {
	return v.x, v.y
}

// SetPosition moves the anchor.
func (v *Visual) SetPosition(x, y int) {
	v.x = x
	v.y = y
}

// Move shifts the anchor by a delta.
func (v *Visual) Move(dx, dy int) {
	v.x += dx
	v.y += dy
}

// Size returns the width and height of the composite in cells.
func (v *Visual) Size() (int, int) {
	return v.w, v.h
}

// Bounds returns the bounding box at the current position, for collisions.
func (v *Visual) Bounds() core.Rect {
	return core.NewRect(v.x, v.y, v.w, v.h)
}

// Draw renders the composite at its current position.
func (v *Visual) Draw(dst *core.Screen) {
	v.DrawAt(dst, v.x, v.y)
}

// DrawAt renders the composite at an explicit screen position, used when a
// camera has already transformed world coordinates.
func (v *Visual) DrawAt(dst *core.Screen, x, y int) {
	for _, pc := range v.cells {
		dst.SetCell(x+pc.dx, y+pc.dy, pc.cell)
	}
}
