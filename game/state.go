// Package game drives a pixitris session one fixed tick at a time.
package game

import (
	"errors"
	"fmt"
)

// State is the phase of the game loop.
type State string

const (
	StateTitle    State = "TITLE"
	StatePlaying  State = "PLAYING"
	StatePaused   State = "PAUSED"
	StateGameOver State = "GAME_OVER"
)

var ErrInvalidTransition = errors.New("invalid state transition")

func (s State) String() string {
	return string(s)
}

// transition checks that from may move to to.
func transition(from, to State) error {
	ok := false
	switch from {
	case StateTitle:
		ok = to == StatePlaying
	case StatePlaying:
		ok = to == StatePaused || to == StateGameOver
	case StatePaused:
		ok = to == StatePlaying
	case StateGameOver:
		ok = to == StateTitle
	}
	if !ok {
		return fmt.Errorf("%w: %s to %s", ErrInvalidTransition, from, to)
	}
	return nil
}
