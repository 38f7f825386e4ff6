package game

import (
	"errors"
	"fmt"
	"strings"
)

// Action is one discrete player input.
type Action int

const (
	HardDrop Action = iota
	SoftDrop
	MoveLeft
	MoveRight
	Rotate
	RotateBack
	Hold

	numActions
)

var actionNames = [numActions]string{
	HardDrop:   "HARD_DROP",
	SoftDrop:   "SOFT_DROP",
	MoveLeft:   "MOVE_LEFT",
	MoveRight:  "MOVE_RIGHT",
	Rotate:     "ROTATE",
	RotateBack: "ROTATE_BACK",
	Hold:       "HOLD",
}

// ErrUnknownAction is returned by ParseAction.
var ErrUnknownAction = errors.New("unknown action")

func (a Action) Valid() bool {
	return a >= 0 && a < numActions
}

func (a Action) String() string {
	if !a.Valid() {
		return fmt.Sprintf("Action(%d)", int(a))
	}
	return actionNames[a]
}

// ParseAction accepts names like HARD_DROP, hard-drop or harddrop.
func ParseAction(s string) (Action, error) {
	norm := strings.NewReplacer("-", "", "_", "", " ", "").Replace(strings.ToUpper(s))
	for a, name := range actionNames {
		if strings.ReplaceAll(name, "_", "") == norm {
			return Action(a), nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownAction, s)
}

// ActionQueue holds at most one pending action of each kind, oldest first.
type ActionQueue struct {
	pending [numActions]bool
	order   []Action
}

// Push queues a. It reports false when a is already pending or invalid.
func (q *ActionQueue) Push(a Action) bool {
	if !a.Valid() || q.pending[a] {
		return false
	}
	q.pending[a] = true
	q.order = append(q.order, a)
	return true
}

// Pop removes the oldest pending action.
func (q *ActionQueue) Pop() (Action, bool) {
	if len(q.order) == 0 {
		return 0, false
	}
	a := q.order[0]
	q.order = q.order[1:]
	q.pending[a] = false
	return a, true
}

func (q *ActionQueue) Pending(a Action) bool {
	return a.Valid() && q.pending[a]
}

func (q *ActionQueue) Len() int {
	return len(q.order)
}

func (q *ActionQueue) Clear() {
	*q = ActionQueue{}
}
