package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestActionQueueCoalesces(t *testing.T) {
	var q ActionQueue

	assert.True(t, q.Push(MoveLeft))
	assert.True(t, q.Push(Rotate))
	assert.False(t, q.Push(MoveLeft), "one pending action per kind")
	assert.True(t, q.Push(HardDrop))
	assert.False(t, q.Push(Action(42)))
	assert.Equal(t, 3, q.Len())
	assert.True(t, q.Pending(Rotate))

	var got []Action
	for {
		a, ok := q.Pop()
		if !ok {
			break
		}
		got = append(got, a)
	}
	assert.Equal(t, []Action{MoveLeft, Rotate, HardDrop}, got)
	assert.False(t, q.Pending(Rotate))

	assert.True(t, q.Push(MoveLeft), "consumed kinds can be queued again")
	q.Clear()
	assert.Zero(t, q.Len())
}

func TestActionQueueIsBounded(t *testing.T) {
	var q ActionQueue
	for range 5 {
		for a := range numActions {
			q.Push(a)
		}
	}
	assert.Equal(t, int(numActions), q.Len())
}

func TestParseAction(t *testing.T) {
	for in, want := range map[string]Action{
		"HARD_DROP":   HardDrop,
		"soft-drop":   SoftDrop,
		"moveleft":    MoveLeft,
		"Move_Right":  MoveRight,
		"rotate":      Rotate,
		"rotate back": RotateBack,
		"HOLD":        Hold,
	} {
		got, err := ParseAction(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}

	_, err := ParseAction("jump")
	assert.ErrorIs(t, err, ErrUnknownAction)

	assert.Equal(t, "ROTATE_BACK", RotateBack.String())
	assert.Equal(t, "Action(9)", Action(9).String())
}

func TestTransition(t *testing.T) {
	assert.NoError(t, transition(StateTitle, StatePlaying))
	assert.NoError(t, transition(StatePlaying, StatePaused))
	assert.NoError(t, transition(StatePaused, StatePlaying))
	assert.NoError(t, transition(StatePlaying, StateGameOver))
	assert.NoError(t, transition(StateGameOver, StateTitle))

	assert.ErrorIs(t, transition(StateTitle, StatePaused), ErrInvalidTransition)
	assert.ErrorIs(t, transition(StatePaused, StateTitle), ErrInvalidTransition)
	assert.ErrorIs(t, transition(StateGameOver, StatePlaying), ErrInvalidTransition)
}
