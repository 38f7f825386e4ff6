package tetris

import "fmt"

// PlacementBonus is awarded for every locked piece.
const PlacementBonus = 25

// LineClearBonus is the bonus for clearing n lines with one piece.
func LineClearBonus(n int) int {
	if n <= 0 {
		return 0
	}
	return (1 << n) * 100
}

// LockScore is the full score for one lock that cleared n lines.
func LockScore(n int) int {
	return PlacementBonus + LineClearBonus(n)
}

// Tally accumulates the score of a session.
type Tally struct {
	Score    int
	Pieces   int
	Lines    int
	Tetrises int
}

// Record adds one lock that cleared n lines and returns the score delta.
func (t *Tally) Record(lines int) int {
	delta := LockScore(lines)
	t.Score += delta
	t.Pieces++
	t.Lines += lines
	if lines >= 4 {
		t.Tetrises++
	}
	return delta
}

// ProgressionPolicy selects what drives the gravity speed-up.
type ProgressionPolicy string

const (
	ProgressPieces ProgressionPolicy = "pieces"
	ProgressLines  ProgressionPolicy = "lines"
)

func ParseProgressionPolicy(s string) (ProgressionPolicy, error) {
	switch p := ProgressionPolicy(s); p {
	case ProgressPieces, ProgressLines:
		return p, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownPolicy, s)
}

// Progression lowers the gravity interval as the session advances.
type Progression struct {
	Interval int
	Min      int
	Step     int
	Every    int
	Policy   ProgressionPolicy

	count int
}

// NewProgression starts a progression from cfg.
func NewProgression(cfg Config) *Progression {
	return &Progression{
		Interval: cfg.InitialGravity,
		Min:      cfg.MinGravity,
		Step:     cfg.GravityStep,
		Every:    cfg.ProgressEvery,
		Policy:   cfg.Policy,
	}
}

// Count is the number of pieces or lines recorded so far.
func (p *Progression) Count() int {
	return p.count
}

// Record accounts for one lock that cleared lines. The interval drops by Step
// for every multiple of Every crossed, never below Min. It reports whether
// the interval changed.
func (p *Progression) Record(lines int) bool {
	before := p.count
	if p.Policy == ProgressLines {
		p.count += lines
	} else {
		p.count++
	}
	if p.Every <= 0 {
		return false
	}

	old := p.Interval
	for range p.count/p.Every - before/p.Every {
		p.Interval = max(p.Interval-p.Step, p.Min)
	}
	return p.Interval != old
}
