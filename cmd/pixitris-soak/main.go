// Command pixitris-soak plays random games headlessly and reports tick
// timings and play totals.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"math/rand/v2"
	"os"
	"runtime"
	"time"

	"github.com/plus3/pixitris/config"
	"github.com/plus3/pixitris/game"
	"github.com/plus3/pixitris/store"
	"github.com/plus3/pixitris/tetris"
)

func main() {
	duration := flag.Duration("duration", 10*time.Second, "The total duration the soak should run for.")
	maxTicks := flag.Int64("ticks", 0, "Stop after this many ticks (0 for no limit).")
	maxGames := flag.Int("games", 0, "Stop after this many finished games (0 for no limit).")
	seed := flag.Uint64("seed", 0, "Seed for pieces and actions (0 picks one).")
	verbose := flag.Bool("v", false, "Log game events.")
	gcPauseMetrics := flag.Bool("gc-pause-metrics", false, "Enable detailed GC pause metrics in the report.")
	flag.Parse()

	env, err := config.Load()
	if err != nil {
		config.Exitf("pixitris-soak: %v", err)
	}

	rules := env.Game()
	if *seed != 0 {
		rules.Seed = *seed
	}
	if rules.Seed == 0 {
		if rules.Seed, err = tetris.NewSeed(); err != nil {
			config.Exitf("pixitris-soak: %v", err)
		}
	}

	ctx, cancel := context.WithTimeout(context.Background(), *duration)
	defer cancel()

	st, err := store.Open(ctx, env.StoreOptions())
	if err != nil {
		config.Exitf("pixitris-soak: open %s store: %v", env.Store, err)
	}
	logger := log.New(io.Discard, "", 0)
	if *verbose {
		logger = log.New(os.Stderr, "pixitris: ", log.LstdFlags)
	}

	g, err := game.New(ctx, rules, st, game.WithLogger(logger))
	if err != nil {
		st.Close()
		config.Exitf("pixitris-soak: %v", err)
	}

	report := &Report{
		Duration:       *duration,
		MaxTicks:       *maxTicks,
		MaxGames:       *maxGames,
		Seed:           rules.Seed,
		Width:          rules.Width,
		Height:         rules.Height,
		Store:          env.Store,
		GCPauseMetrics: *gcPauseMetrics,
	}

	log.Printf("Running soak for %s with seed %d...\n", *duration, rules.Seed)
	runtime.ReadMemStats(&report.MemStatsStart)
	startTime := time.Now()

	soak(ctx, g, rand.New(rand.NewPCG(rules.Seed, rules.Seed>>1)), report)

	report.TotalTime = time.Since(startTime)
	report.TickTime.Finalize()
	report.Systems = g.Scheduler().GetStats().Systems
	report.HighScore = g.Snapshot().HighScore
	runtime.ReadMemStats(&report.MemStatsEnd)
	if err := st.Close(); err != nil {
		log.Printf("close store: %v", err)
	}

	log.Println("Soak finished.")

	fmt.Println("\n\n--- Soak Report ---")
	if err := report.Generate(os.Stdout); err != nil {
		log.Fatalf("Failed to generate report: %v", err)
	}
	fmt.Println("--- End of Report ---")
}

// soak drives g with random actions until ctx ends or a limit is reached.
func soak(ctx context.Context, g *game.Game, rng *rand.Rand, report *Report) {
	actions := []game.Action{
		game.HardDrop, game.SoftDrop, game.MoveLeft, game.MoveRight,
		game.Rotate, game.RotateBack, game.Hold,
	}

	for ctx.Err() == nil {
		if report.MaxTicks > 0 && report.TotalTicks >= report.MaxTicks {
			return
		}

		switch g.State() {
		case game.StateTitle:
			if err := g.Start(ctx); err != nil {
				log.Printf("start: %v", err)
				return
			}
		case game.StatePlaying:
			if rng.IntN(3) == 0 {
				g.Push(actions[rng.IntN(len(actions))])
			}
		}

		tickStart := time.Now()
		snap := g.Tick(ctx)
		report.TickTime.Samples = append(report.TickTime.Samples, time.Since(tickStart))
		report.TotalTicks++

		if snap.State != game.StateGameOver {
			continue
		}
		report.RecordGame(snap.Score, snap.Pieces, snap.Lines, snap.Tetrises)
		if report.MaxGames > 0 && report.Games >= report.MaxGames {
			return
		}
		if err := g.Reset(ctx); err != nil {
			log.Printf("reset: %v", err)
			return
		}
	}
}
