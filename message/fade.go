package message

import (
	"time"

	"github.com/plus3/pixitris/ecs"
)

type message struct {
	id   ID
	opts Options
}

// timeline tracks one message's age. hideAt is -1 for messages that stay
// until hidden.
type timeline struct {
	age       time.Duration
	hideAt    time.Duration
	hiding    bool
	fadeStart time.Duration
}

func (t *timeline) alpha(o Options) float64 {
	if t.hiding {
		if o.FadeOut <= 0 {
			return 0
		}
		return max(0, 1-float64(t.age-t.fadeStart)/float64(o.FadeOut))
	}
	if o.FadeIn > 0 && t.age < o.FadeIn {
		return float64(t.age) / float64(o.FadeIn)
	}
	return 1
}

func (t *timeline) done(o Options) bool {
	return t.hiding && t.age-t.fadeStart >= o.FadeOut
}

type item struct {
	ecs.EntityId
	*message
	*timeline
}

// FadeSystem ages messages, starts fade outs when their time is up and
// deletes them once faded.
type FadeSystem struct {
	Messages ecs.Query[item]

	board *Board
}

func (s *FadeSystem) Execute(frame *ecs.UpdateFrame) {
	dt := time.Duration(frame.DeltaTime * float64(time.Second))
	for it := range s.Messages.Iter() {
		t := it.timeline
		t.age += dt
		if !t.hiding && t.hideAt >= 0 && t.age >= t.hideAt {
			t.hiding = true
			t.fadeStart = t.hideAt
		}
		if t.done(it.message.opts) {
			id := it.message.id
			frame.Commands.Delete(it.EntityId)
			frame.Commands.Defer(func() {
				s.board.entities.Del(id)
			})
		}
	}
}
