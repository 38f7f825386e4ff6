package game

import "github.com/plus3/pixitris/tetris"

// previewLen is how many upcoming shapes a snapshot shows.
const previewLen = 3

// Session is the state of one game, from start to game over. It is stored as
// a singleton and owned by the tick systems.
type Session struct {
	State       State
	Rules       tetris.Config
	Field       *tetris.Field
	Controller  *tetris.Controller
	Stash       tetris.Stash
	Queue       *tetris.Queue
	Tally       tetris.Tally
	Progression *tetris.Progression
	HighScore   int

	// Ticks counts gravity ticks; grace ticks are not counted.
	Ticks     int
	Grace     int
	Landed    bool
	LastClear int

	events uint64
}

func newSession(rules tetris.Config, highScore int) (Session, error) {
	field, err := tetris.NewField(rules.Width, rules.Height)
	if err != nil {
		return Session{}, err
	}
	return Session{
		State:       StateTitle,
		Rules:       rules,
		Field:       field,
		Controller:  tetris.NewController(field),
		Progression: tetris.NewProgression(rules),
		HighScore:   highScore,
	}, nil
}

// begin deals the first piece. It reports false when it does not fit.
func (s *Session) begin(random tetris.Randomizer) bool {
	s.Queue = tetris.NewQueue(random)
	s.State = StatePlaying
	return s.Controller.Spawn(s.Queue.Next())
}

// EventKind classifies what happened during a tick.
type EventKind int

const (
	EventLocked EventKind = iota
	EventSpeedUp
	EventHeld
	EventGameOver
)

// Event is spawned as an entity by the tick systems and drained by the Game
// after the tick.
type Event struct {
	Seq      uint64
	Kind     EventKind
	Lines    int
	Delta    int
	Score    int
	Interval int
	Hold     tetris.HoldOutcome

	NewHighScore bool
}
