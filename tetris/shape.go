package tetris

import "fmt"

// ShapeID identifies one of the seven tetrominoes.
type ShapeID uint8

const (
	ShapeI ShapeID = iota
	ShapeZ
	ShapeS
	ShapeO
	ShapeJ
	ShapeL
	ShapeT
)

// NumShapes is the number of distinct shapes.
const NumShapes = 7

// CellKind is the content of one cell of a shape template.
type CellKind uint8

const (
	Blank CellKind = iota
	Solid
	SolidDecorated
)

// IsSolid reports whether the cell is part of the piece.
func (k CellKind) IsSolid() bool {
	return k != Blank
}

var shapeNames = [NumShapes]string{"I", "Z", "S", "O", "J", "L", "T"}

var shapeNicknames = [NumShapes]string{"Larry", "Zulu", "Sully", "Stan", "Wah", "Luigi", "Terry"}

func (id ShapeID) String() string {
	if !id.Valid() {
		return fmt.Sprintf("ShapeID(%d)", id)
	}
	return shapeNames[id]
}

// Nickname is the shape's character name.
func (id ShapeID) Nickname() string {
	if !id.Valid() {
		return id.String()
	}
	return shapeNicknames[id]
}

func (id ShapeID) Valid() bool {
	return id < NumShapes
}

// Templates are 4x4 row-major. 'X' is solid, 'x' is solid and decorated.
var shapeTemplates = [NumShapes]string{
	"..X." + "..X." + "..X." + "..x.",
	"..x." + ".XX." + ".X.." + "....",
	".x.." + ".XX." + "..X." + "....",
	"...." + ".Xx." + ".XX." + "....",
	"...." + ".xX." + "..X." + "..X.",
	"...." + ".Xx." + ".X.." + ".X..",
	".x.." + ".XX." + ".X.." + "....",
}

var shapes = func() [NumShapes][16]CellKind {
	var out [NumShapes][16]CellKind
	for id, tmpl := range shapeTemplates {
		cells, err := ParseShapeTemplate(tmpl)
		if err != nil {
			panic(fmt.Sprintf("tetris: shape %s: %v", ShapeID(id), err))
		}
		out[id] = cells
	}
	return out
}()

// ParseShapeTemplate turns a 16 character template into cell kinds.
func ParseShapeTemplate(tmpl string) ([16]CellKind, error) {
	var cells [16]CellKind
	if len(tmpl) != 16 {
		return cells, fmt.Errorf("%w: want 16 cells, got %d", ErrMalformedShape, len(tmpl))
	}
	for i := range len(tmpl) {
		switch tmpl[i] {
		case '.':
			cells[i] = Blank
		case 'X':
			cells[i] = Solid
		case 'x':
			cells[i] = SolidDecorated
		default:
			return cells, fmt.Errorf("%w: unexpected %q at %d", ErrMalformedShape, tmpl[i], i)
		}
	}
	return cells, nil
}

// NormalizeRotation maps any rotation onto [0, 4).
func NormalizeRotation(r int) int {
	return ((r % 4) + 4) % 4
}

// RotatedIndex maps local coordinates under a rotation to a template index.
func RotatedIndex(lx, ly, rotation int) int {
	switch NormalizeRotation(rotation) {
	case 1:
		return 12 + ly - 4*lx
	case 2:
		return 15 - 4*ly - lx
	case 3:
		return 3 - ly + 4*lx
	default:
		return 4*ly + lx
	}
}

// CellAt returns the kind of the local cell (lx, ly) of a rotated shape.
// Coordinates outside the 4x4 box and unknown shapes are Blank.
func CellAt(id ShapeID, lx, ly, rotation int) CellKind {
	if !id.Valid() || lx < 0 || lx > 3 || ly < 0 || ly > 3 {
		return Blank
	}
	return shapes[id][RotatedIndex(lx, ly, rotation)]
}
