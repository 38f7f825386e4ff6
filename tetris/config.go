package tetris

import (
	"errors"
	"fmt"
)

// Config holds the rules of a session.
type Config struct {
	Width          int
	Height         int
	InitialGravity int
	MinGravity     int
	GravityStep    int
	ProgressEvery  int
	Policy         ProgressionPolicy
	GraceTicks     int
	Seed           uint64
	Randomizer     string
	HighScoreKey   string
}

func DefaultConfig() Config {
	return Config{
		Width:          12,
		Height:         22,
		InitialGravity: 50,
		MinGravity:     10,
		GravityStep:    1,
		ProgressEvery:  10,
		Policy:         ProgressPieces,
		GraceTicks:     5,
		Randomizer:     RandomUniform,
		HighScoreKey:   "highscore",
	}
}

// Validate reports every problem with the config at once.
func (c Config) Validate() error {
	var errs []error
	if c.Width <= 4 || c.Height <= 4 {
		errs = append(errs, fmt.Errorf("%w: %dx%d", ErrInvalidDimensions, c.Width, c.Height))
	}
	if c.InitialGravity < 1 {
		errs = append(errs, fmt.Errorf("%w: initial gravity %d < 1", ErrInvalidConfig, c.InitialGravity))
	}
	if c.MinGravity < 1 {
		errs = append(errs, fmt.Errorf("%w: min gravity %d < 1", ErrInvalidConfig, c.MinGravity))
	}
	if c.MinGravity > c.InitialGravity {
		errs = append(errs, fmt.Errorf("%w: min gravity %d above initial %d", ErrInvalidConfig, c.MinGravity, c.InitialGravity))
	}
	if c.GravityStep < 1 {
		errs = append(errs, fmt.Errorf("%w: gravity step %d < 1", ErrInvalidConfig, c.GravityStep))
	}
	if c.ProgressEvery < 1 {
		errs = append(errs, fmt.Errorf("%w: progress every %d < 1", ErrInvalidConfig, c.ProgressEvery))
	}
	if c.GraceTicks < 0 {
		errs = append(errs, fmt.Errorf("%w: grace ticks %d < 0", ErrInvalidConfig, c.GraceTicks))
	}
	if _, err := ParseProgressionPolicy(string(c.Policy)); err != nil {
		errs = append(errs, err)
	}
	switch c.Randomizer {
	case RandomUniform, RandomBag:
	default:
		errs = append(errs, fmt.Errorf("%w: %q", ErrUnknownRandomizer, c.Randomizer))
	}
	if c.HighScoreKey == "" {
		errs = append(errs, fmt.Errorf("%w: empty high score key", ErrInvalidConfig))
	}
	return errors.Join(errs...)
}
