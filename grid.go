package svgslice

import (
	"errors"
	"fmt"
)

// ErrInvalidGrid is returned for non-positive grid or icon dimensions.
var ErrInvalidGrid = errors.New("svgslice: grid dimensions must be positive")

// Box is an axis aligned rectangle in source coordinates.
type Box struct {
	MinX, MinY float64
	MaxX, MaxY float64
}

// Contains reports whether (x, y) lies inside the box. The box is
// half-open: the minimum edges are inside, the maximum edges are not.
func (b Box) Contains(x, y float64) bool {
	return x >= b.MinX && x < b.MaxX && y >= b.MinY && y < b.MaxY
}

// Cell is one subdivision of the sprite sheet. Row and Col are 1-based,
// Index is the 1-based position in row-major order.
type Cell struct {
	Row, Col int
	Index    int
	Box      Box
	// Width and Height are the nominal cell dimensions used for the output viewBox.
	Width, Height float64
}

// Grid divides a viewBox into Columns x Rows equally sized cells.
type Grid struct {
	ViewBox ViewBox
	Columns int
	Rows    int
}

// NewGrid returns a grid over vb.
func NewGrid(vb ViewBox, columns, rows int) (*Grid, error) {
	if columns <= 0 || rows <= 0 {
		return nil, fmt.Errorf("%w: %dx%d", ErrInvalidGrid, columns, rows)
	}
	return &Grid{ViewBox: vb, Columns: columns, Rows: rows}, nil
}

// Len returns the number of cells.
func (g *Grid) Len() int {
	return g.Columns * g.Rows
}

// CellSize returns the width and height of every cell.
func (g *Grid) CellSize() (w, h float64) {
	return g.ViewBox.W / float64(g.Columns), g.ViewBox.H / float64(g.Rows)
}

// Cell returns the cell at the 0-based row and column.
// Adjacent cells share their edge coordinate exactly, so the cells tile the viewBox.
// Boxes are offset by the viewBox origin; for a sheet whose origin is not
// zero this differs from a grid anchored at 0,0.
func (g *Grid) Cell(row, col int) Cell {
	w, h := g.CellSize()
	return Cell{
		Row:   row + 1,
		Col:   col + 1,
		Index: row*g.Columns + col + 1,
		Box: Box{
			MinX: g.ViewBox.X + float64(col)*w,
			MinY: g.ViewBox.Y + float64(row)*h,
			MaxX: g.ViewBox.X + float64(col+1)*w,
			MaxY: g.ViewBox.Y + float64(row+1)*h,
		},
		Width:  w,
		Height: h,
	}
}

// Cells returns every cell in row-major order.
func (g *Grid) Cells() []Cell {
	cells := make([]Cell, 0, g.Len())
	for row := 0; row < g.Rows; row++ {
		for col := 0; col < g.Columns; col++ {
			cells = append(cells, g.Cell(row, col))
		}
	}
	return cells
}
