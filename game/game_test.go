package game

import (
	"bytes"
	"context"
	"errors"
	"io"
	"log"
	"testing"
	"time"

	"github.com/plus3/pixitris/message"
	"github.com/plus3/pixitris/store"
	"github.com/plus3/pixitris/tetris"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// sequence deals its shapes in order, then starts over.
type sequence struct {
	shapes []tetris.ShapeID
	next   int
}

func (s *sequence) Next() tetris.ShapeID {
	shape := s.shapes[s.next%len(s.shapes)]
	s.next++
	return shape
}

func deal(shapes ...tetris.ShapeID) *sequence {
	return &sequence{shapes: shapes}
}

func quietLogger() *log.Logger {
	return log.New(io.Discard, "", 0)
}

// fastRules moves the piece down every tick with no grace period.
func fastRules() tetris.Config {
	rules := tetris.DefaultConfig()
	rules.InitialGravity = 1
	rules.MinGravity = 1
	rules.GraceTicks = 0
	return rules
}

func newTestGame(t *testing.T, rules tetris.Config, st store.Store, opts ...Option) *Game {
	t.Helper()
	opts = append([]Option{WithLogger(quietLogger())}, opts...)
	g, err := New(context.Background(), rules, st, opts...)
	require.NoError(t, err)
	return g
}

func started(t *testing.T, g *Game) {
	t.Helper()
	require.NoError(t, g.Start(context.Background()))
}

func TestNewRejectsBadRules(t *testing.T) {
	rules := tetris.DefaultConfig()
	rules.Width = 4

	_, err := New(context.Background(), rules, nil, WithLogger(quietLogger()))
	assert.ErrorIs(t, err, tetris.ErrInvalidDimensions)
}

func TestStateMachine(t *testing.T) {
	ctx := context.Background()
	g := newTestGame(t, tetris.DefaultConfig(), nil, WithRandomizer(deal(tetris.ShapeT)))

	assert.Equal(t, StateTitle, g.State())
	assert.False(t, g.Snapshot().HasPiece)
	assert.False(t, g.Push(MoveLeft), "input is ignored on the title screen")
	assert.ErrorIs(t, g.TogglePause(), ErrInvalidTransition)
	assert.ErrorIs(t, g.Reset(ctx), ErrInvalidTransition)

	require.NoError(t, g.Start(ctx))
	assert.Equal(t, StatePlaying, g.State())
	assert.ErrorIs(t, g.Start(ctx), ErrInvalidTransition)

	snap := g.Snapshot()
	require.True(t, snap.HasPiece)
	assert.Equal(t, tetris.Piece{Shape: tetris.ShapeT, X: 4, Y: 1}, snap.Active)

	require.NoError(t, g.TogglePause())
	assert.Equal(t, StatePaused, g.State())
	assert.False(t, g.Push(HardDrop))
	assert.ErrorIs(t, g.Reset(ctx), ErrInvalidTransition)

	require.NoError(t, g.TogglePause())
	assert.Equal(t, StatePlaying, g.State())
}

func TestGravityInterval(t *testing.T) {
	ctx := context.Background()
	rules := tetris.DefaultConfig()
	rules.InitialGravity = 3
	rules.MinGravity = 1
	g := newTestGame(t, rules, nil, WithRandomizer(deal(tetris.ShapeI)))
	started(t, g)

	assert.Equal(t, 1, g.Tick(ctx).Active.Y)
	assert.Equal(t, 1, g.Tick(ctx).Active.Y)
	snap := g.Tick(ctx)
	assert.Equal(t, 2, snap.Active.Y)
	assert.Equal(t, 3, snap.GravityInterval)
	assert.Equal(t, uint64(3), snap.Tick)
}

func TestPausedGameDoesNotMove(t *testing.T) {
	ctx := context.Background()
	g := newTestGame(t, fastRules(), nil, WithRandomizer(deal(tetris.ShapeI)))
	started(t, g)

	require.True(t, g.Push(MoveLeft))
	require.NoError(t, g.TogglePause())
	for range 5 {
		g.Tick(ctx)
	}
	snap := g.Snapshot()
	assert.Equal(t, StatePaused, snap.State)
	assert.Equal(t, tetris.Piece{Shape: tetris.ShapeI, X: 4, Y: 1}, snap.Active, "pending input was dropped on pause")

	require.NoError(t, g.TogglePause())
	assert.Equal(t, 2, g.Tick(ctx).Active.Y)
}

func TestOneActionPerTick(t *testing.T) {
	ctx := context.Background()
	rules := tetris.DefaultConfig()
	g := newTestGame(t, rules, nil, WithRandomizer(deal(tetris.ShapeT)))
	started(t, g)

	require.True(t, g.Push(MoveLeft))
	require.True(t, g.Push(Rotate))
	assert.False(t, g.Push(MoveLeft))

	snap := g.Tick(ctx)
	assert.Equal(t, 3, snap.Active.X)
	assert.Equal(t, 0, snap.Active.Rotation)

	snap = g.Tick(ctx)
	assert.Equal(t, 1, snap.Active.Rotation)

	require.True(t, g.Push(RotateBack))
	assert.Equal(t, 0, g.Tick(ctx).Active.Rotation)
}

func TestHardDropLocksOnGravity(t *testing.T) {
	ctx := context.Background()
	g := newTestGame(t, fastRules(), nil, WithRandomizer(deal(tetris.ShapeI, tetris.ShapeO)))
	started(t, g)

	require.True(t, g.Push(HardDrop))
	snap := g.Tick(ctx)

	assert.Equal(t, 1, snap.Pieces)
	assert.Equal(t, tetris.PlacementBonus, snap.Score)
	assert.Equal(t, tetris.ShapeO, snap.Active.Shape)
	for y := 17; y <= 20; y++ {
		shape, ok := snap.At(6, y).Shape()
		require.True(t, ok, "row %d", y)
		assert.Equal(t, tetris.ShapeI, shape)
	}
	assert.True(t, snap.At(6, 20).Decorated(), "the marker cell is the lowest one")
}

func TestFourLineClear(t *testing.T) {
	ctx := context.Background()
	board := message.NewBoard()
	g := newTestGame(t, fastRules(), nil,
		WithRandomizer(deal(tetris.ShapeI, tetris.ShapeT)),
		WithMessages(board),
	)
	started(t, g)

	field := g.session.Get().Field
	for y := 17; y <= 20; y++ {
		for x := 1; x < field.Width()-1; x++ {
			if x != 6 {
				field.Set(x, y, tetris.Locked(tetris.ShapeO, false))
			}
		}
	}
	field.Set(3, 16, tetris.Locked(tetris.ShapeZ, false))

	require.True(t, g.Push(HardDrop))
	snap := g.Tick(ctx)

	assert.Equal(t, 1625, snap.Score)
	assert.Equal(t, 4, snap.Lines)
	assert.Equal(t, 4, snap.LastClear)
	assert.Equal(t, 1, snap.Tetrises)

	shape, ok := snap.At(3, 20).Shape()
	require.True(t, ok, "the row above the clear drops to the floor")
	assert.Equal(t, tetris.ShapeZ, shape)
	for y := 17; y < 20; y++ {
		for x := 1; x < snap.Width-1; x++ {
			assert.True(t, snap.At(x, y).IsEmpty(), "(%d,%d)", x, y)
		}
	}

	var texts []string
	for _, v := range board.Visible() {
		texts = append(texts, v.Text)
	}
	assert.Equal(t, []string{"+1625", "TETRIS!"}, texts)
}

func TestGracePeriod(t *testing.T) {
	ctx := context.Background()
	rules := fastRules()
	rules.GraceTicks = 2
	g := newTestGame(t, rules, nil, WithRandomizer(deal(tetris.ShapeO)))
	started(t, g)

	require.True(t, g.Push(HardDrop))
	snap := g.Tick(ctx)
	require.Equal(t, 1, snap.Pieces)
	require.Equal(t, 1, snap.Active.Y)
	ticks := g.session.Get().Ticks

	assert.Equal(t, 1, g.Tick(ctx).Active.Y)
	assert.Equal(t, 1, g.Tick(ctx).Active.Y)
	assert.Equal(t, ticks, g.session.Get().Ticks, "grace ticks are not counted")
	assert.Equal(t, 2, g.Tick(ctx).Active.Y)
	assert.Equal(t, ticks+1, g.session.Get().Ticks, "counting resumes once grace is over")
}

func TestHoldOncePerPiece(t *testing.T) {
	ctx := context.Background()
	rules := tetris.DefaultConfig()
	rules.GraceTicks = 0
	g := newTestGame(t, rules, nil, WithRandomizer(deal(tetris.ShapeI, tetris.ShapeO, tetris.ShapeT)))
	started(t, g)

	require.True(t, g.Push(Hold))
	snap := g.Tick(ctx)
	require.True(t, snap.HasStash)
	assert.Equal(t, tetris.ShapeI, snap.Stash)
	assert.Equal(t, tetris.ShapeO, snap.Active.Shape)
	assert.Equal(t, 1, snap.Active.Y)
	assert.True(t, snap.StashUsed)

	require.True(t, g.Push(Hold))
	snap = g.Tick(ctx)
	assert.Equal(t, tetris.ShapeI, snap.Stash, "second hold is ignored")
	assert.Equal(t, tetris.ShapeO, snap.Active.Shape)

	for snap.Pieces == 0 {
		g.Push(HardDrop)
		snap = g.Tick(ctx)
	}
	assert.False(t, snap.StashUsed)
	assert.Equal(t, tetris.ShapeT, snap.Active.Shape)

	require.True(t, g.Push(Hold))
	snap = g.Tick(ctx)
	assert.Equal(t, tetris.ShapeI, snap.Active.Shape)
	assert.Equal(t, tetris.ShapeT, snap.Stash)
}

func TestProgressionFloor(t *testing.T) {
	ctx := context.Background()
	rules := fastRules()
	rules.InitialGravity = 3
	rules.MinGravity = 2
	rules.ProgressEvery = 1
	board := message.NewBoard()
	g := newTestGame(t, rules, nil, WithRandomizer(deal(tetris.ShapeO)), WithMessages(board))
	started(t, g)

	lockOne := func() Snapshot {
		pieces := g.Snapshot().Pieces
		for {
			g.Push(HardDrop)
			snap := g.Tick(ctx)
			if snap.Pieces > pieces {
				return snap
			}
		}
	}

	assert.Equal(t, 2, lockOne().GravityInterval)
	assert.Equal(t, 2, lockOne().GravityInterval)
	assert.Equal(t, 1, board.Len(), "one speed up message")
}

// tinyRules gives a 6x6 field where the second O piece cannot spawn.
func tinyRules() tetris.Config {
	rules := fastRules()
	rules.Width, rules.Height = 6, 6
	return rules
}

func TestGameOverPersistsHighScore(t *testing.T) {
	ctx := context.Background()
	st := store.NewMemory()
	board := message.NewBoard()
	g := newTestGame(t, tinyRules(), st, WithRandomizer(deal(tetris.ShapeO)), WithMessages(board))
	started(t, g)

	require.True(t, g.Push(HardDrop))
	snap := g.Tick(ctx)

	assert.Equal(t, StateGameOver, snap.State)
	assert.True(t, snap.GameOver)
	assert.Equal(t, 25, snap.Score)
	assert.Equal(t, 25, snap.HighScore)
	saved, err := st.Get(ctx, "highscore")
	require.NoError(t, err)
	assert.Equal(t, 25, saved)

	var texts []string
	for _, v := range board.Visible() {
		texts = append(texts, v.Text)
	}
	assert.Contains(t, texts, "GAME OVER")
	assert.Contains(t, texts, "NEW HIGH SCORE")

	before := g.Tick(ctx)
	assert.Equal(t, snap.Field, before.Field, "ticks after game over change nothing")
	assert.False(t, g.Push(MoveLeft))

	require.NoError(t, g.Reset(ctx))
	snap = g.Snapshot()
	assert.Equal(t, StateTitle, snap.State)
	assert.Zero(t, snap.Score)
	assert.Equal(t, 25, snap.HighScore)
	board.Frame(time.Second)
	assert.Zero(t, board.Len(), "messages fade out on reset")

	require.NoError(t, g.Start(ctx))
	assert.Equal(t, StatePlaying, g.State())
}

func TestLowerScoreKeepsHighScore(t *testing.T) {
	ctx := context.Background()
	st := store.NewMemory()
	require.NoError(t, st.Set(ctx, "highscore", 5000))

	g := newTestGame(t, tinyRules(), st, WithRandomizer(deal(tetris.ShapeO)))
	assert.Equal(t, 5000, g.Snapshot().HighScore)
	started(t, g)

	g.Push(HardDrop)
	snap := g.Tick(ctx)
	require.True(t, snap.GameOver)
	assert.Equal(t, 5000, snap.HighScore)

	saved, err := st.Get(ctx, "highscore")
	require.NoError(t, err)
	assert.Equal(t, 5000, saved)
}

type brokenStore struct{}

func (brokenStore) Get(context.Context, string) (int, error) { return 0, errors.New("disk gone") }
func (brokenStore) Set(context.Context, string, int) error   { return errors.New("disk gone") }
func (brokenStore) Close() error                              { return nil }

func TestStoreErrorsAreLogged(t *testing.T) {
	ctx := context.Background()
	var buf bytes.Buffer
	g, err := New(ctx, tinyRules(), brokenStore{},
		WithLogger(log.New(&buf, "", 0)),
		WithRandomizer(deal(tetris.ShapeO)),
	)
	require.NoError(t, err)
	started(t, g)

	g.Push(HardDrop)
	snap := g.Tick(ctx)
	assert.True(t, snap.GameOver)
	assert.Equal(t, 25, snap.HighScore)
	assert.Contains(t, buf.String(), "load high score: disk gone")
	assert.Contains(t, buf.String(), "save high score: disk gone")
}

func TestSnapshotIsACopy(t *testing.T) {
	ctx := context.Background()
	g := newTestGame(t, tetris.DefaultConfig(), nil, WithRandomizer(deal(tetris.ShapeL)))
	started(t, g)

	snap := g.Tick(ctx)
	snap.Field[snap.Width+1] = tetris.Locked(tetris.ShapeZ, false)
	snap.Next[0] = tetris.ShapeZ

	again := g.Snapshot()
	assert.True(t, again.At(1, 1).IsEmpty())
	assert.Equal(t, tetris.ShapeL, again.Next[0])
}

func TestSnapshotSink(t *testing.T) {
	ctx := context.Background()
	var ticks []uint64
	g := newTestGame(t, tetris.DefaultConfig(), nil, WithSnapshotSink(func(s Snapshot) {
		ticks = append(ticks, s.Tick)
	}))

	g.Tick(ctx)
	g.Tick(ctx)
	assert.Equal(t, []uint64{1, 2}, ticks)
}

func TestSinkMayCallBack(t *testing.T) {
	ctx := context.Background()
	var states []State
	var g *Game
	g = newTestGame(t, fastRules(), nil, WithSnapshotSink(func(s Snapshot) {
		states = append(states, g.State())
		g.Push(MoveLeft)
		assert.Equal(t, s.Tick, g.Snapshot().Tick)
	}))
	started(t, g)

	done := make(chan struct{})
	go func() {
		defer close(done)
		g.Tick(ctx)
		g.Tick(ctx)
	}()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("tick blocked on a sink that calls the game")
	}
	assert.Equal(t, []State{StatePlaying, StatePlaying}, states)
}

func TestRunUsesOneSink(t *testing.T) {
	optionCalls := 0
	g := newTestGame(t, tetris.DefaultConfig(), nil, WithSnapshotSink(func(Snapshot) { optionCalls++ }))
	started(t, g)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Millisecond)
	defer cancel()

	count := 0
	g.Run(ctx, time.Millisecond, func(Snapshot) { count++ })
	assert.Positive(t, count)
	assert.Zero(t, optionCalls, "the sink passed to Run replaces the option")

	ctx, cancel = context.WithTimeout(context.Background(), 30*time.Millisecond)
	defer cancel()
	g.Run(ctx, time.Millisecond, nil)
	assert.Positive(t, optionCalls)
}

func TestEventsDrainInRaiseOrder(t *testing.T) {
	board := message.NewBoard()
	g := newTestGame(t, tetris.DefaultConfig(), nil, WithMessages(board))

	// leave freed rows behind so new events reuse them out of order
	a := g.storage.Spawn(Event{})
	b := g.storage.Spawn(Event{})
	require.True(t, g.storage.Delete(a))
	require.True(t, g.storage.Delete(b))

	g.storage.Spawn(Event{Seq: 1, Kind: EventLocked, Lines: 1, Delta: 225, Score: 225})
	g.storage.Spawn(Event{Seq: 2, Kind: EventGameOver, Score: 225})
	g.drainEvents(context.Background())

	var texts []string
	for _, v := range board.Visible() {
		texts = append(texts, v.Text)
	}
	assert.Equal(t, []string{"+225", "GAME OVER"}, texts)
	assert.Zero(t, g.storage.Count())
}

func TestRun(t *testing.T) {
	g := newTestGame(t, tetris.DefaultConfig(), nil)
	started(t, g)

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	count := 0
	g.Run(ctx, time.Millisecond, func(Snapshot) { count++ })
	assert.Positive(t, count)
	assert.Equal(t, uint64(count), g.Scheduler().Frame())
}

func TestSchedulerRunsSystemsInOrder(t *testing.T) {
	g := newTestGame(t, tetris.DefaultConfig(), nil)
	g.Tick(context.Background())

	var names []string
	for _, s := range g.Scheduler().GetStats().Systems {
		names = append(names, s.Name)
		assert.Equal(t, int64(1), s.ExecutionCount)
	}
	assert.Equal(t, []string{"InputSystem", "GravitySystem", "LockSystem", "SnapshotSystem"}, names)
}
