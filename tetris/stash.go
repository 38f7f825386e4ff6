package tetris

// HoldOutcome says what a hold request did.
type HoldOutcome int

const (
	HoldIgnored HoldOutcome = iota
	HoldStored
	HoldSwapped
)

func (o HoldOutcome) String() string {
	switch o {
	case HoldStored:
		return "stored"
	case HoldSwapped:
		return "swapped"
	default:
		return "ignored"
	}
}

// HoldResult is returned by Stash.Hold. Blocked is set when the piece that
// came into play does not fit at the spawn position, which ends the game.
type HoldResult struct {
	Outcome HoldOutcome
	Blocked bool
}

// Stash keeps one piece aside. It can be used once per active piece.
type Stash struct {
	piece ShapeID
	full  bool
	used  bool
}

// Hold stashes the active piece of ctrl. An empty stash takes the piece and
// a fresh one is drawn from next; a full stash swaps with the active piece.
// Either way the new active piece starts from the spawn position.
func (s *Stash) Hold(ctrl *Controller, next func() ShapeID) HoldResult {
	if s.used {
		return HoldResult{Outcome: HoldIgnored}
	}
	s.used = true

	active := ctrl.Piece().Shape
	if !s.full {
		s.piece, s.full = active, true
		fits := ctrl.Spawn(next())
		return HoldResult{Outcome: HoldStored, Blocked: !fits}
	}

	incoming := s.piece
	s.piece = active
	fits := ctrl.Spawn(incoming)
	return HoldResult{Outcome: HoldSwapped, Blocked: !fits}
}

// Release re-arms the stash after a lock.
func (s *Stash) Release() {
	s.used = false
}

func (s *Stash) Piece() (ShapeID, bool) {
	return s.piece, s.full
}

func (s *Stash) Used() bool {
	return s.used
}

func (s *Stash) Reset() {
	*s = Stash{}
}
