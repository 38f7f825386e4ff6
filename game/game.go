package game

import (
	"cmp"
	"context"
	"fmt"
	"log"
	"os"
	"slices"
	"sync"
	"time"

	"github.com/plus3/pixitris/ecs"
	"github.com/plus3/pixitris/message"
	"github.com/plus3/pixitris/store"
	"github.com/plus3/pixitris/tetris"
)

type eventItem struct {
	ecs.EntityId
	*Event
}

// Game owns one session and the scheduler that ticks it. Its methods are
// safe to call from several goroutines; Storage and Scheduler are not.
type Game struct {
	mu sync.Mutex

	rules    tetris.Config
	store    store.Store
	random   tetris.Randomizer
	logger   *log.Logger
	messages *message.Board
	sink     func(Snapshot)

	storage   *ecs.Storage
	scheduler *ecs.Scheduler
	session   *ecs.Singleton[Session]
	inputs    *ecs.Singleton[ActionQueue]
	published *ecs.Singleton[Snapshot]
	events    *ecs.View[eventItem]

	pauseMsg message.ID
}

type Option func(*Game)

func WithLogger(logger *log.Logger) Option {
	return func(g *Game) { g.logger = logger }
}

// WithRandomizer replaces the randomizer named by the rules.
func WithRandomizer(r tetris.Randomizer) Option {
	return func(g *Game) { g.random = r }
}

// WithSnapshotSink calls fn with the snapshot of every tick. fn runs after
// the game lock is released, so it may call back into the Game.
func WithSnapshotSink(fn func(Snapshot)) Option {
	return func(g *Game) { g.sink = fn }
}

// WithMessages posts overlay messages for scores and state changes.
func WithMessages(board *message.Board) Option {
	return func(g *Game) { g.messages = board }
}

// New validates rules and returns a game on the title screen. A nil store
// keeps high scores in memory.
func New(ctx context.Context, rules tetris.Config, st store.Store, opts ...Option) (*Game, error) {
	if err := rules.Validate(); err != nil {
		return nil, fmt.Errorf("game config: %w", err)
	}
	if st == nil {
		st = store.NewMemory()
	}

	g := &Game{rules: rules, store: st}
	for _, opt := range opts {
		opt(g)
	}
	if g.logger == nil {
		g.logger = log.New(os.Stderr, "pixitris: ", log.LstdFlags)
	}
	if g.random == nil {
		r, err := tetris.NewRandomizer(rules.Randomizer, rules.Seed)
		if err != nil {
			return nil, fmt.Errorf("game randomizer: %w", err)
		}
		g.random = r
	}

	registry := ecs.NewComponentRegistry()
	ecs.RegisterComponent[Event](registry)
	g.storage = ecs.NewStorage(registry)

	sess, err := newSession(rules, g.loadHighScore(ctx))
	if err != nil {
		return nil, err
	}
	g.session = ecs.NewSingleton(g.storage, sess)
	g.inputs = ecs.NewSingleton[ActionQueue](g.storage)
	g.published = ecs.NewSingleton(g.storage, takeSnapshot(g.session.Get(), 0))
	g.events = ecs.NewView[eventItem](g.storage)

	g.scheduler = ecs.NewScheduler(g.storage)
	g.scheduler.Register(&InputSystem{})
	g.scheduler.Register(&GravitySystem{})
	g.scheduler.Register(&LockSystem{})
	g.scheduler.Register(&SnapshotSystem{})

	return g, nil
}

func (g *Game) loadHighScore(ctx context.Context) int {
	v, err := g.store.Get(ctx, g.rules.HighScoreKey)
	if err != nil {
		g.logger.Printf("load high score: %v", err)
		return 0
	}
	return v
}

// Start leaves the title screen and deals the first piece.
func (g *Game) Start(ctx context.Context) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	sess := g.session.Get()
	if err := transition(sess.State, StatePlaying); err != nil {
		return err
	}
	g.inputs.Get().Clear()
	g.clearMessages()

	if !sess.begin(g.random) {
		sess.State = StateGameOver
		g.logger.Printf("first piece does not fit on a %dx%d field", g.rules.Width, g.rules.Height)
	}
	g.publish()
	return nil
}

// Push queues an action for the next tick. Actions are only accepted while
// playing, and a kind that is already pending is dropped.
func (g *Game) Push(a Action) bool {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.session.Get().State != StatePlaying {
		return false
	}
	return g.inputs.Get().Push(a)
}

// Tick runs one simulation step and returns its snapshot.
func (g *Game) Tick(ctx context.Context) Snapshot {
	return g.step(ctx, 0, g.sink)
}

func (g *Game) step(ctx context.Context, dt float64, sink func(Snapshot)) Snapshot {
	snap := g.advance(ctx, dt)
	if sink != nil {
		sink(snap)
	}
	return snap
}

func (g *Game) advance(ctx context.Context, dt float64) Snapshot {
	g.mu.Lock()
	defer g.mu.Unlock()

	g.scheduler.Once(dt)
	g.drainEvents(ctx)
	return g.published.Get().Clone()
}

// drainEvents handles the tick's events in the order they were raised and
// deletes them.
func (g *Game) drainEvents(ctx context.Context) {
	var pending []eventItem
	for ev := range g.events.Iter() {
		pending = append(pending, ev)
	}
	slices.SortFunc(pending, func(a, b eventItem) int {
		return cmp.Compare(a.Seq, b.Seq)
	})
	for _, ev := range pending {
		g.handle(ctx, *ev.Event)
		g.storage.Delete(ev.EntityId)
	}
}

func (g *Game) handle(ctx context.Context, ev Event) {
	switch ev.Kind {
	case EventLocked:
		if ev.Lines == 0 {
			return
		}
		g.show(fmt.Sprintf("+%d", ev.Delta), message.Score, message.At(0.5, 0.4))
		if ev.Lines >= 4 {
			g.show("TETRIS!", message.Alert, message.At(0.5, 0.3))
		}
	case EventSpeedUp:
		g.logger.Printf("gravity interval now %d ticks", ev.Interval)
		g.show("SPEED UP", message.Info, message.At(0.5, 0.2))
	case EventGameOver:
		g.logger.Printf("game over with score %d", ev.Score)
		g.show("GAME OVER", message.Alert, message.Lasting(0))
		if !ev.NewHighScore {
			return
		}
		if err := g.store.Set(ctx, g.rules.HighScoreKey, ev.Score); err != nil {
			g.logger.Printf("save high score: %v", err)
		}
		g.show("NEW HIGH SCORE", message.Score, message.At(0.5, 0.6), message.Lasting(4*time.Second))
	}
}

func (g *Game) show(text string, preset message.Options, opts ...message.Option) message.ID {
	if g.messages == nil {
		return 0
	}
	return g.messages.Show(text, preset, opts...)
}

func (g *Game) clearMessages() {
	if g.messages != nil {
		g.messages.Clear()
	}
	g.pauseMsg = 0
}

// TogglePause switches between playing and paused. Pending actions are
// dropped when the game pauses.
func (g *Game) TogglePause() error {
	g.mu.Lock()
	defer g.mu.Unlock()

	sess := g.session.Get()
	switch sess.State {
	case StatePlaying:
		sess.State = StatePaused
		g.inputs.Get().Clear()
		g.pauseMsg = g.show("PAUSED", message.Info, message.Lasting(0))
	case StatePaused:
		sess.State = StatePlaying
		if g.messages != nil && g.pauseMsg != 0 {
			g.messages.Hide(g.pauseMsg)
		}
		g.pauseMsg = 0
	default:
		return transition(sess.State, StatePaused)
	}
	g.publish()
	return nil
}

// Reset returns a finished game to the title screen with a fresh session.
func (g *Game) Reset(ctx context.Context) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	if err := transition(g.session.Get().State, StateTitle); err != nil {
		return err
	}
	sess, err := newSession(g.rules, g.loadHighScore(ctx))
	if err != nil {
		return err
	}
	g.session.Set(sess)
	g.inputs.Get().Clear()
	g.clearMessages()
	g.publish()
	return nil
}

func (g *Game) publish() {
	g.published.Set(takeSnapshot(g.session.Get(), g.scheduler.Frame()))
}

// Snapshot returns the most recent snapshot.
func (g *Game) Snapshot() Snapshot {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.published.Get().Clone()
}

func (g *Game) State() State {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.session.Get().State
}

// Run ticks the game every interval until ctx is done. Each snapshot goes to
// sink, or to the WithSnapshotSink callback when sink is nil.
func (g *Game) Run(ctx context.Context, interval time.Duration, sink func(Snapshot)) {
	if sink == nil {
		sink = g.sink
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	lastTime := time.Now()

	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			dt := now.Sub(lastTime).Seconds()
			lastTime = now
			g.step(ctx, dt, sink)
		}
	}
}

// Storage exposes the ECS storage for debug tooling.
func (g *Game) Storage() *ecs.Storage {
	return g.storage
}

// Scheduler exposes the tick scheduler for debug tooling.
func (g *Game) Scheduler() *ecs.Scheduler {
	return g.scheduler
}

// Rules returns the validated rules of the game.
func (g *Game) Rules() tetris.Config {
	return g.rules
}
