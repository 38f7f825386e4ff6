package tetris

// Piece is a shape placed on the field. X and Y locate the top-left corner
// of its 4x4 box.
type Piece struct {
	Shape    ShapeID
	Rotation int
	X, Y     int
}

// PieceCell is one solid cell of a placed piece in field coordinates.
type PieceCell struct {
	X, Y      int
	Decorated bool
}

// Cells lists the solid cells of the piece, row by row.
func (p Piece) Cells() []PieceCell {
	cells := make([]PieceCell, 0, 4)
	for ly := range 4 {
		for lx := range 4 {
			kind := CellAt(p.Shape, lx, ly, p.Rotation)
			if !kind.IsSolid() {
				continue
			}
			cells = append(cells, PieceCell{
				X:         p.X + lx,
				Y:         p.Y + ly,
				Decorated: kind == SolidDecorated,
			})
		}
	}
	return cells
}

// SpawnPiece returns shape at its spawn position for field.
func SpawnPiece(field *Field, shape ShapeID) Piece {
	return Piece{Shape: shape, X: field.Width()/2 - 2, Y: 1}
}

// Controller moves the active piece. It reads the field for collision but
// never writes to it.
type Controller struct {
	field *Field
	piece Piece
}

func NewController(field *Field) *Controller {
	return &Controller{field: field}
}

func (c *Controller) Field() *Field { return c.field }
func (c *Controller) Piece() Piece  { return c.piece }

// SetPiece replaces the active piece without any collision check.
func (c *Controller) SetPiece(p Piece) {
	c.piece = p
}

// Spawn places a new piece at the spawn position and reports whether it fits.
func (c *Controller) Spawn(shape ShapeID) bool {
	c.piece = SpawnPiece(c.field, shape)
	return c.Fits()
}

// Fits reports whether the active piece is in a legal position.
func (c *Controller) Fits() bool {
	p := c.piece
	return c.field.Fits(p.Shape, p.Rotation, p.X, p.Y)
}

// TryMove shifts the piece when the destination is free.
func (c *Controller) TryMove(dx, dy int) bool {
	p := c.piece
	if !c.field.Fits(p.Shape, p.Rotation, p.X+dx, p.Y+dy) {
		return false
	}
	c.piece.X += dx
	c.piece.Y += dy
	return true
}

// TryRotate turns the piece one step in dir (+1 clockwise, -1 back) in
// place. There is no kick search.
func (c *Controller) TryRotate(dir int) bool {
	p := c.piece
	next := NormalizeRotation(p.Rotation + dir)
	if !c.field.Fits(p.Shape, next, p.X, p.Y) {
		return false
	}
	c.piece.Rotation = next
	return true
}

// HardDrop moves the piece down until it rests and returns the rows descended.
func (c *Controller) HardDrop() int {
	rows := 0
	for c.TryMove(0, 1) {
		rows++
	}
	return rows
}

func (c *Controller) Cells() []PieceCell {
	return c.piece.Cells()
}

// Ghost is where the piece would land after a hard drop.
func (c *Controller) Ghost() Piece {
	g := c.piece
	for c.field.Fits(g.Shape, g.Rotation, g.X, g.Y+1) {
		g.Y++
	}
	return g
}
