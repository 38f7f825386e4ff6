package tetris_test

import (
	"testing"

	"github.com/plus3/pixitris/tetris"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLineClearBonus(t *testing.T) {
	assert.Equal(t, 0, tetris.LineClearBonus(0))
	assert.Equal(t, 200, tetris.LineClearBonus(1))
	assert.Equal(t, 400, tetris.LineClearBonus(2))
	assert.Equal(t, 800, tetris.LineClearBonus(3))
	assert.Equal(t, 1600, tetris.LineClearBonus(4))
	assert.Equal(t, 25, tetris.LockScore(0))
	assert.Equal(t, 1625, tetris.LockScore(4))
}

func TestTally(t *testing.T) {
	var tally tetris.Tally
	prev := 0
	for _, lines := range []int{0, 1, 0, 4, 2} {
		delta := tally.Record(lines)
		assert.Equal(t, tetris.LockScore(lines), delta)
		assert.GreaterOrEqual(t, tally.Score, prev)
		prev = tally.Score
	}
	assert.Equal(t, tetris.Tally{Score: 25*5 + 200 + 1600 + 400, Pieces: 5, Lines: 7, Tetrises: 1}, tally)
}

func TestProgressionByPieces(t *testing.T) {
	p := tetris.NewProgression(tetris.DefaultConfig())

	for i := 1; i <= 9; i++ {
		assert.False(t, p.Record(4))
	}
	assert.Equal(t, 50, p.Interval)
	assert.True(t, p.Record(0), "tenth piece")
	assert.Equal(t, 49, p.Interval)
	assert.Equal(t, 10, p.Count())
}

func TestProgressionByLines(t *testing.T) {
	cfg := tetris.DefaultConfig()
	cfg.Policy = tetris.ProgressLines
	cfg.GravityStep = 3
	p := tetris.NewProgression(cfg)

	assert.False(t, p.Record(0))
	assert.False(t, p.Record(4))
	assert.False(t, p.Record(4))
	assert.True(t, p.Record(4), "crossed 10 lines")
	assert.Equal(t, 47, p.Interval)

	for range 4 {
		p.Record(4)
	}
	assert.Equal(t, 28, p.Count())
	assert.Equal(t, 44, p.Interval)
}

func TestProgressionStepsOncePerThreshold(t *testing.T) {
	cfg := tetris.DefaultConfig()
	cfg.Policy = tetris.ProgressLines
	cfg.ProgressEvery = 1
	p := tetris.NewProgression(cfg)

	require.True(t, p.Record(4))
	assert.Equal(t, 46, p.Interval)
}

func TestProgressionFloor(t *testing.T) {
	cfg := tetris.DefaultConfig()
	cfg.InitialGravity = 13
	cfg.GravityStep = 2
	cfg.ProgressEvery = 1
	p := tetris.NewProgression(cfg)

	var changed []bool
	for range 1000 {
		changed = append(changed, p.Record(0))
		assert.GreaterOrEqual(t, p.Interval, cfg.MinGravity)
	}
	assert.Equal(t, []bool{true, true, false}, changed[:3])
	assert.Equal(t, 10, p.Interval)
}

func TestParseProgressionPolicy(t *testing.T) {
	p, err := tetris.ParseProgressionPolicy("lines")
	require.NoError(t, err)
	assert.Equal(t, tetris.ProgressLines, p)

	_, err = tetris.ParseProgressionPolicy("levels")
	assert.ErrorIs(t, err, tetris.ErrUnknownPolicy)
}
