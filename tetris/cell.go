package tetris

import "unicode"

type cellKind uint8

const (
	cellEmpty cellKind = iota
	cellWall
	cellLocked
)

// Cell is one square of the field. The zero value is Empty.
type Cell struct {
	kind      cellKind
	shape     ShapeID
	decorated bool
}

var (
	Empty = Cell{}
	Wall  = Cell{kind: cellWall}
)

// Locked returns the cell left behind by a locked piece of the given shape.
func Locked(shape ShapeID, decorated bool) Cell {
	return Cell{kind: cellLocked, shape: shape, decorated: decorated}
}

func (c Cell) IsEmpty() bool  { return c.kind == cellEmpty }
func (c Cell) IsWall() bool   { return c.kind == cellWall }
func (c Cell) IsLocked() bool { return c.kind == cellLocked }

// Shape returns the shape a locked cell came from.
func (c Cell) Shape() (ShapeID, bool) {
	return c.shape, c.kind == cellLocked
}

// Decorated reports whether the cell carries the shape's marker.
func (c Cell) Decorated() bool {
	return c.kind == cellLocked && c.decorated
}

// String renders the cell as a single character: '.' for empty, '#' for
// wall, the shape letter for a locked cell, lower case when decorated.
func (c Cell) String() string {
	return string(c.rune())
}

func (c Cell) rune() rune {
	switch c.kind {
	case cellWall:
		return '#'
	case cellLocked:
		r := rune(c.shape.String()[0])
		if c.decorated {
			return unicode.ToLower(r)
		}
		return r
	default:
		return '.'
	}
}

func parseCell(r rune) (Cell, bool) {
	switch r {
	case '.', ' ':
		return Empty, true
	case '#':
		return Wall, true
	}
	for id := range ShapeID(NumShapes) {
		letter := rune(id.String()[0])
		switch r {
		case letter:
			return Locked(id, false), true
		case unicode.ToLower(letter):
			return Locked(id, true), true
		}
	}
	return Empty, false
}
