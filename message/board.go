package message

import (
	"cmp"
	"slices"
	"time"

	"github.com/kamstrup/intmap"
	"github.com/plus3/pixitris/ecs"
)

// Board owns the live messages. It is not safe for concurrent use.
type Board struct {
	storage   *ecs.Storage
	scheduler *ecs.Scheduler
	entities  *intmap.Map[ID, ecs.EntityId]
	view      *ecs.View[item]
	nextID    ID
}

func NewBoard() *Board {
	registry := ecs.NewComponentRegistry()
	ecs.RegisterComponent[message](registry)
	ecs.RegisterComponent[timeline](registry)

	storage := ecs.NewStorage(registry)
	b := &Board{
		storage:   storage,
		scheduler: ecs.NewScheduler(storage),
		entities:  intmap.New[ID, ecs.EntityId](8),
		view:      ecs.NewView[item](storage),
	}
	b.scheduler.Register(&FadeSystem{board: b})
	return b
}

// Show displays text using preset adjusted by opts and returns its id.
func (b *Board) Show(text string, preset Options, opts ...Option) ID {
	o := preset
	o.Text = text
	for _, opt := range opts {
		opt(&o)
	}

	b.nextID++
	id := b.nextID
	b.entities.Put(id, b.storage.Spawn(
		message{id: id, opts: o},
		timeline{hideAt: hideAt(0, o)},
	))
	return id
}

func hideAt(age time.Duration, o Options) time.Duration {
	if o.Duration <= 0 {
		return -1
	}
	return age + max(o.Duration-o.FadeOut, 0)
}

func (b *Board) lookup(id ID) (item, bool) {
	eid, ok := b.entities.Get(id)
	if !ok {
		return item{}, false
	}
	it := b.view.Get(eid)
	if it == nil {
		return item{}, false
	}
	return *it, true
}

// Update replaces the text and restarts the timer to the full duration.
func (b *Board) Update(id ID, text string) bool {
	it, ok := b.lookup(id)
	if !ok {
		return false
	}
	it.message.opts.Text = text
	if !it.timeline.hiding {
		it.timeline.hideAt = hideAt(it.timeline.age, it.message.opts)
	}
	return true
}

// Hide starts the fade out now.
func (b *Board) Hide(id ID) bool {
	it, ok := b.lookup(id)
	if !ok {
		return false
	}
	if it.timeline.hiding {
		return true
	}
	if it.message.opts.FadeOut <= 0 {
		return b.Remove(id)
	}
	it.timeline.hiding = true
	it.timeline.fadeStart = it.timeline.age
	return true
}

// Remove drops the message immediately.
func (b *Board) Remove(id ID) bool {
	eid, ok := b.entities.Get(id)
	if !ok {
		return false
	}
	b.entities.Del(id)
	return b.storage.Delete(eid)
}

// Clear fades every message out.
func (b *Board) Clear() {
	for _, v := range b.Visible() {
		b.Hide(v.ID)
	}
}

// Len is the number of live messages.
func (b *Board) Len() int {
	return b.entities.Len()
}

// Frame advances every fade by dt.
func (b *Board) Frame(dt time.Duration) {
	b.scheduler.Once(dt.Seconds())
}

// Visible lists live messages in the order they were shown.
func (b *Board) Visible() []View {
	var out []View
	for it := range b.view.Iter() {
		out = append(out, View{
			ID:      it.message.id,
			Options: it.message.opts,
			Alpha:   it.timeline.alpha(it.message.opts),
		})
	}
	slices.SortFunc(out, func(a, b View) int {
		return cmp.Compare(a.ID, b.ID)
	})
	return out
}

// Storage exposes the board's ECS storage for debug tooling.
func (b *Board) Storage() *ecs.Storage {
	return b.storage
}

// Scheduler exposes the fade scheduler for debug tooling.
func (b *Board) Scheduler() *ecs.Scheduler {
	return b.scheduler
}
