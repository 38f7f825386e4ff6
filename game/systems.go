package game

import (
	"github.com/plus3/pixitris/ecs"
	"github.com/plus3/pixitris/tetris"
)

// InputSystem applies at most one pending action per tick.
type InputSystem struct {
	Session ecs.Singleton[Session]
	Inputs  ecs.Singleton[ActionQueue]
}

func (s *InputSystem) Execute(frame *ecs.UpdateFrame) {
	sess := s.Session.Get()
	inputs := s.Inputs.Get()
	if sess == nil || inputs == nil || sess.State != StatePlaying {
		return
	}

	action, ok := inputs.Pop()
	if !ok {
		return
	}

	ctrl := sess.Controller
	switch action {
	case MoveLeft:
		ctrl.TryMove(-1, 0)
	case MoveRight:
		ctrl.TryMove(1, 0)
	case SoftDrop:
		ctrl.TryMove(0, 1)
	case HardDrop:
		ctrl.HardDrop()
	case Rotate:
		ctrl.TryRotate(1)
	case RotateBack:
		ctrl.TryRotate(-1)
	case Hold:
		res := sess.Stash.Hold(ctrl, sess.Queue.Next)
		if res.Outcome == tetris.HoldIgnored {
			return
		}
		raise(sess, frame, Event{Kind: EventHeld, Hold: res.Outcome})
		if res.Blocked {
			endSession(sess, frame)
		}
	}
}

// GravitySystem moves the piece down every GravityInterval ticks and marks
// it landed when it cannot move.
type GravitySystem struct {
	Session ecs.Singleton[Session]
}

func (s *GravitySystem) Execute(frame *ecs.UpdateFrame) {
	sess := s.Session.Get()
	if sess == nil || sess.State != StatePlaying {
		return
	}

	if sess.Grace > 0 {
		sess.Grace--
		return
	}

	sess.Ticks++
	if sess.Ticks%sess.Progression.Interval != 0 {
		return
	}
	if !sess.Controller.TryMove(0, 1) {
		sess.Landed = true
	}
}

// LockSystem merges a landed piece into the field, scores it and deals the
// next piece.
type LockSystem struct {
	Session ecs.Singleton[Session]
}

func (s *LockSystem) Execute(frame *ecs.UpdateFrame) {
	sess := s.Session.Get()
	if sess == nil || sess.State != StatePlaying || !sess.Landed {
		return
	}
	sess.Landed = false

	locked := tetris.Lock(sess.Field, sess.Controller.Piece())
	lines := tetris.ClearLines(sess.Field, locked.Rows).Count()
	delta := sess.Tally.Record(lines)
	sess.LastClear = lines
	raise(sess, frame, Event{
		Kind:  EventLocked,
		Lines: lines,
		Delta: delta,
		Score: sess.Tally.Score,
	})

	if sess.Progression.Record(lines) {
		raise(sess, frame, Event{Kind: EventSpeedUp, Interval: sess.Progression.Interval})
	}

	sess.Stash.Release()
	if !sess.Controller.Spawn(sess.Queue.Next()) {
		endSession(sess, frame)
		return
	}
	sess.Grace = sess.Rules.GraceTicks
}

func endSession(sess *Session, frame *ecs.UpdateFrame) {
	sess.State = StateGameOver
	ev := Event{Kind: EventGameOver, Score: sess.Tally.Score}
	if sess.Tally.Score > sess.HighScore {
		sess.HighScore = sess.Tally.Score
		ev.NewHighScore = true
	}
	raise(sess, frame, ev)
}

// raise queues ev as an entity, numbered so the drain can restore the order
// events were raised in.
func raise(sess *Session, frame *ecs.UpdateFrame, ev Event) {
	sess.events++
	ev.Seq = sess.events
	frame.Commands.Spawn(ev)
}

// SnapshotSystem publishes the state at the end of every tick.
type SnapshotSystem struct {
	Session   ecs.Singleton[Session]
	Published ecs.Singleton[Snapshot]
}

func (s *SnapshotSystem) Execute(frame *ecs.UpdateFrame) {
	sess := s.Session.Get()
	if sess == nil {
		return
	}
	s.Published.Set(takeSnapshot(sess, frame.Frame))
}
