package game

import (
	"slices"
	"strings"

	"github.com/plus3/pixitris/tetris"
)

// Snapshot is a read-only copy of a session for renderers. Nothing in it
// aliases the live session.
type Snapshot struct {
	Tick   uint64
	State  State
	Width  int
	Height int
	Field  []tetris.Cell

	// HasPiece is false before the first piece is dealt.
	HasPiece    bool
	Active      tetris.Piece
	ActiveCells []tetris.PieceCell
	Ghost       tetris.Piece

	Stash     tetris.ShapeID
	HasStash  bool
	StashUsed bool
	Next      []tetris.ShapeID

	Score           int
	HighScore       int
	GravityInterval int
	Pieces          int
	Lines           int
	Tetrises        int
	LastClear       int
	GameOver        bool
}

func takeSnapshot(s *Session, tick uint64) Snapshot {
	snap := Snapshot{
		Tick:            tick,
		State:           s.State,
		Width:           s.Field.Width(),
		Height:          s.Field.Height(),
		Field:           s.Field.Cells(),
		StashUsed:       s.Stash.Used(),
		Score:           s.Tally.Score,
		HighScore:       s.HighScore,
		GravityInterval: s.Progression.Interval,
		Pieces:          s.Tally.Pieces,
		Lines:           s.Tally.Lines,
		Tetrises:        s.Tally.Tetrises,
		LastClear:       s.LastClear,
		GameOver:        s.State == StateGameOver,
	}
	snap.Stash, snap.HasStash = s.Stash.Piece()
	if s.Queue != nil {
		snap.HasPiece = true
		snap.Active = s.Controller.Piece()
		snap.ActiveCells = s.Controller.Cells()
		snap.Ghost = s.Controller.Ghost()
		snap.Next = s.Queue.Preview(previewLen)
	}
	return snap
}

// Clone copies the slices so the result can be changed freely.
func (s Snapshot) Clone() Snapshot {
	s.Field = slices.Clone(s.Field)
	s.ActiveCells = slices.Clone(s.ActiveCells)
	s.Next = slices.Clone(s.Next)
	return s
}

// At returns the field cell at (x, y) without the active piece.
func (s Snapshot) At(x, y int) tetris.Cell {
	if x < 0 || x >= s.Width || y < 0 || y >= s.Height {
		return tetris.Wall
	}
	return s.Field[y*s.Width+x]
}

// Render draws the field with the active piece in the same text form as
// tetris.Field.String.
func (s Snapshot) Render() string {
	cells := make([]tetris.Cell, len(s.Field))
	copy(cells, s.Field)
	if s.HasPiece {
		for _, c := range s.ActiveCells {
			if c.X < 0 || c.X >= s.Width || c.Y < 0 || c.Y >= s.Height {
				continue
			}
			cells[c.Y*s.Width+c.X] = tetris.Locked(s.Active.Shape, c.Decorated)
		}
	}

	var sb strings.Builder
	for y := range s.Height {
		for x := range s.Width {
			sb.WriteString(cells[y*s.Width+x].String())
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}
