// Command pixitris plays pixitris in an Ebiten window.
package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/plus3/pixitris/config"
	"github.com/plus3/pixitris/ecs/debugui"
	debugui_ebiten "github.com/plus3/pixitris/ecs/debugui/ebiten"
	"github.com/plus3/pixitris/game"
	"github.com/plus3/pixitris/message"
	"github.com/plus3/pixitris/store"
)

const title = "pixitris"

func main() {
	env, err := config.Load()
	if err != nil {
		config.Exitf("pixitris: %v", err)
	}

	ctx := context.Background()
	board := message.NewBoard()
	g, st, err := setup(ctx, env, store.Open, game.WithMessages(board))
	if err != nil {
		config.Exitf("pixitris: %v", err)
	}

	app := &App{
		ctx:      ctx,
		game:     g,
		messages: board,
		snap:     g.Snapshot(),
	}
	app.width, app.height = screenSize(g.Rules())

	if env.DebugUI {
		app.backend = debugui_ebiten.NewImguiBackend(title, app.width, app.height)
		app.overlay = debugui.NewOverlay()
		app.overlay.Inspect("Game", g.Storage(), g.Scheduler())
		app.overlay.Inspect("Messages", board.Storage(), board.Scheduler())
	} else {
		ebiten.SetWindowSize(app.width, app.height)
		ebiten.SetWindowTitle(title)
	}
	ebiten.SetTPS(ticksPerSecond(env.Tick))

	log.Printf("pixitris: %dx%d field, %s store, tick %s", env.Width, env.Height, env.Store, env.Tick)
	err = ebiten.RunGame(app)
	if cerr := st.Close(); cerr != nil {
		log.Printf("pixitris: close store: %v", cerr)
	}
	if err != nil && !errors.Is(err, ebiten.Termination) {
		config.Exitf("pixitris: %v", err)
	}
}

type opener func(context.Context, store.Options) (store.Store, error)

// setup opens the high-score store and builds the game on it. The store is
// closed again when the game cannot be built.
func setup(ctx context.Context, env config.Env, open opener, opts ...game.Option) (*game.Game, store.Store, error) {
	st, err := open(ctx, env.StoreOptions())
	if err != nil {
		return nil, nil, fmt.Errorf("open %s store: %w", env.Store, err)
	}
	g, err := game.New(ctx, env.Game(), st, opts...)
	if err != nil {
		if cerr := st.Close(); cerr != nil {
			err = errors.Join(err, fmt.Errorf("close store: %w", cerr))
		}
		return nil, nil, err
	}
	return g, st, nil
}

func ticksPerSecond(tick time.Duration) int {
	return max(1, int(time.Second/tick))
}

func secondsToDuration(s float64) time.Duration {
	return time.Duration(s * float64(time.Second))
}
