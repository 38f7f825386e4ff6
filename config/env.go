// Package config loads pixitris settings from the environment.
package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/plus3/pixitris/store"
	"github.com/plus3/pixitris/tetris"
)

// ParseEnv loads configuration from environment variables.
func ParseEnv(target any) error {
	if err := env.Parse(target); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}

// Env is every setting the binaries read.
type Env struct {
	Width         int    `env:"PIXITRIS_WIDTH" envDefault:"12"`
	Height        int    `env:"PIXITRIS_HEIGHT" envDefault:"22"`
	Gravity       int    `env:"PIXITRIS_GRAVITY" envDefault:"50"`
	MinGravity    int    `env:"PIXITRIS_MIN_GRAVITY" envDefault:"10"`
	GravityStep   int    `env:"PIXITRIS_GRAVITY_STEP" envDefault:"1"`
	ProgressEvery int    `env:"PIXITRIS_PROGRESS_EVERY" envDefault:"10"`
	Progression   string `env:"PIXITRIS_PROGRESSION" envDefault:"pieces"`
	GraceTicks    int    `env:"PIXITRIS_GRACE_TICKS" envDefault:"5"`
	Seed          uint64 `env:"PIXITRIS_SEED"`
	Randomizer    string `env:"PIXITRIS_RANDOMIZER" envDefault:"uniform"`

	Tick time.Duration `env:"PIXITRIS_TICK" envDefault:"16ms"`

	Store        string `env:"PIXITRIS_STORE" envDefault:"memory"`
	StorePath    string `env:"PIXITRIS_STORE_PATH" envDefault:"pixitris.json"`
	DatabaseURL  string `env:"PIXITRIS_DATABASE_URL"`
	HighScoreKey string `env:"PIXITRIS_HIGHSCORE_KEY" envDefault:"highscore"`

	DebugUI bool `env:"PIXITRIS_DEBUG_UI"`
}

// Load parses Env and checks the game rules it describes.
func Load() (Env, error) {
	var e Env
	if err := ParseEnv(&e); err != nil {
		return Env{}, err
	}
	if e.Tick <= 0 {
		return Env{}, fmt.Errorf("%w: tick %s must be positive", tetris.ErrInvalidConfig, e.Tick)
	}
	if err := e.Game().Validate(); err != nil {
		return Env{}, fmt.Errorf("game config: %w", err)
	}
	return e, nil
}

// Game converts the environment into session rules.
func (e Env) Game() tetris.Config {
	return tetris.Config{
		Width:          e.Width,
		Height:         e.Height,
		InitialGravity: e.Gravity,
		MinGravity:     e.MinGravity,
		GravityStep:    e.GravityStep,
		ProgressEvery:  e.ProgressEvery,
		Policy:         tetris.ProgressionPolicy(e.Progression),
		GraceTicks:     e.GraceTicks,
		Seed:           e.Seed,
		Randomizer:     e.Randomizer,
		HighScoreKey:   e.HighScoreKey,
	}
}

func (e Env) StoreOptions() store.Options {
	return store.Options{
		Kind:        e.Store,
		Path:        e.StorePath,
		DatabaseURL: e.DatabaseURL,
	}
}
