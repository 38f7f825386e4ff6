package tetris

import (
	"fmt"
	"strings"
)

// Field is the playfield grid, stored row-major. The left, right and bottom
// edges are walls for the lifetime of the field.
type Field struct {
	width  int
	height int
	cells  []Cell
}

// NewField returns an empty field surrounded by walls.
func NewField(width, height int) (*Field, error) {
	if width <= 4 || height <= 4 {
		return nil, fmt.Errorf("%w: %dx%d", ErrInvalidDimensions, width, height)
	}
	f := &Field{
		width:  width,
		height: height,
		cells:  make([]Cell, width*height),
	}
	f.Reset()
	return f, nil
}

// ParseField builds a field from the rows of its String form. Every row must
// have the same width and the border must be walls.
func ParseField(text string) (*Field, error) {
	rows := strings.Split(strings.Trim(text, "\n"), "\n")
	if len(rows) == 0 {
		return nil, fmt.Errorf("%w: no rows", ErrMalformedField)
	}

	f, err := NewField(len(rows[0]), len(rows))
	if err != nil {
		return nil, err
	}

	for y, row := range rows {
		if len(row) != f.width {
			return nil, fmt.Errorf("%w: row %d has width %d, want %d", ErrMalformedField, y, len(row), f.width)
		}
		for x, r := range row {
			cell, ok := parseCell(r)
			if !ok {
				return nil, fmt.Errorf("%w: unexpected %q at (%d,%d)", ErrMalformedField, r, x, y)
			}
			if f.isBorder(x, y) != cell.IsWall() {
				return nil, fmt.Errorf("%w: wall mismatch at (%d,%d)", ErrMalformedField, x, y)
			}
			f.cells[f.Index(x, y)] = cell
		}
	}
	return f, nil
}

func (f *Field) Width() int  { return f.width }
func (f *Field) Height() int { return f.height }

// Index returns the flat index of (x, y).
func (f *Field) Index(x, y int) int {
	return y*f.width + x
}

func (f *Field) InBounds(x, y int) bool {
	return x >= 0 && x < f.width && y >= 0 && y < f.height
}

func (f *Field) isBorder(x, y int) bool {
	return x == 0 || x == f.width-1 || y == f.height-1
}

// At returns the cell at (x, y). Anything outside the field reads as Wall.
func (f *Field) At(x, y int) Cell {
	if !f.InBounds(x, y) {
		return Wall
	}
	return f.cells[f.Index(x, y)]
}

// Set writes an interior cell. Border and out of range writes are ignored
// and reported as false.
func (f *Field) Set(x, y int, c Cell) bool {
	if !f.InBounds(x, y) || f.isBorder(x, y) || c.IsWall() {
		return false
	}
	f.cells[f.Index(x, y)] = c
	return true
}

// Cells returns a copy of the grid in row-major order.
func (f *Field) Cells() []Cell {
	out := make([]Cell, len(f.cells))
	copy(out, f.cells)
	return out
}

func (f *Field) Clone() *Field {
	return &Field{width: f.width, height: f.height, cells: f.Cells()}
}

// RowComplete reports whether every interior cell of row y is filled.
func (f *Field) RowComplete(y int) bool {
	if y < 0 || y >= f.height-1 {
		return false
	}
	for x := 1; x < f.width-1; x++ {
		if f.At(x, y).IsEmpty() {
			return false
		}
	}
	return true
}

// Reset empties the interior and redraws the walls.
func (f *Field) Reset() {
	for y := range f.height {
		for x := range f.width {
			if f.isBorder(x, y) {
				f.cells[f.Index(x, y)] = Wall
			} else {
				f.cells[f.Index(x, y)] = Empty
			}
		}
	}
}

func (f *Field) String() string {
	var sb strings.Builder
	sb.Grow((f.width + 1) * f.height)
	for y := range f.height {
		for x := range f.width {
			sb.WriteRune(f.At(x, y).rune())
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}

// Fits reports whether a shape at the given rotation and position overlaps
// nothing and stays inside the walls. Rows above the top of the field are
// allowed so pieces can spawn partially hidden.
func (f *Field) Fits(shape ShapeID, rotation, x, y int) bool {
	for ly := range 4 {
		for lx := range 4 {
			if !CellAt(shape, lx, ly, rotation).IsSolid() {
				continue
			}
			fx, fy := x+lx, y+ly
			if fx < 0 || fx >= f.width || fy >= f.height {
				return false
			}
			if fy < 0 {
				continue
			}
			if !f.cells[f.Index(fx, fy)].IsEmpty() {
				return false
			}
		}
	}
	return true
}
