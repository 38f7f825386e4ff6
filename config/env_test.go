package config

import (
	"testing"
	"time"

	"github.com/plus3/pixitris/store"
	"github.com/plus3/pixitris/tetris"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	e, err := Load()
	require.NoError(t, err)

	assert.Equal(t, tetris.DefaultConfig(), e.Game())
	assert.Equal(t, 16*time.Millisecond, e.Tick)
	assert.False(t, e.DebugUI)
	assert.Equal(t, store.Options{Kind: store.KindMemory, Path: "pixitris.json"}, e.StoreOptions())
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("PIXITRIS_WIDTH", "10")
	t.Setenv("PIXITRIS_GRAVITY", "30")
	t.Setenv("PIXITRIS_PROGRESSION", "lines")
	t.Setenv("PIXITRIS_RANDOMIZER", "bag")
	t.Setenv("PIXITRIS_SEED", "42")
	t.Setenv("PIXITRIS_TICK", "20ms")
	t.Setenv("PIXITRIS_STORE", "sqlite")
	t.Setenv("PIXITRIS_STORE_PATH", "/tmp/scores.db")
	t.Setenv("PIXITRIS_DEBUG_UI", "true")

	e, err := Load()
	require.NoError(t, err)

	g := e.Game()
	assert.Equal(t, 10, g.Width)
	assert.Equal(t, 30, g.InitialGravity)
	assert.Equal(t, tetris.ProgressLines, g.Policy)
	assert.Equal(t, tetris.RandomBag, g.Randomizer)
	assert.Equal(t, uint64(42), g.Seed)
	assert.Equal(t, 20*time.Millisecond, e.Tick)
	assert.True(t, e.DebugUI)
	assert.Equal(t, store.KindSQLite, e.StoreOptions().Kind)
	assert.Equal(t, "/tmp/scores.db", e.StoreOptions().Path)
}

func TestParseEnvError(t *testing.T) {
	t.Setenv("PIXITRIS_HEIGHT", "tall")

	_, err := Load()
	assert.ErrorContains(t, err, "parse env:")
}

func TestLoadRejectsBadRules(t *testing.T) {
	t.Setenv("PIXITRIS_MIN_GRAVITY", "80")
	t.Setenv("PIXITRIS_RANDOMIZER", "dice")

	_, err := Load()
	assert.ErrorIs(t, err, tetris.ErrInvalidConfig)
	assert.ErrorIs(t, err, tetris.ErrUnknownRandomizer)
}

func TestLoadRejectsTick(t *testing.T) {
	t.Setenv("PIXITRIS_TICK", "0s")

	_, err := Load()
	assert.ErrorIs(t, err, tetris.ErrInvalidConfig)
}
