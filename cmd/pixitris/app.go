package main

import (
	"context"
	"errors"
	"log"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/plus3/pixitris/ecs/debugui"
	debugui_ebiten "github.com/plus3/pixitris/ecs/debugui/ebiten"
	"github.com/plus3/pixitris/game"
	"github.com/plus3/pixitris/message"
)

// App adapts a game.Game to ebiten.Game. Input listeners are polled once per
// update and never re-registered.
type App struct {
	ctx      context.Context
	game     *game.Game
	messages *message.Board
	snap     game.Snapshot

	overlay *debugui.Overlay
	backend *debugui_ebiten.ImguiBackend

	width, height int
}

func (a *App) Update() error {
	dt := 1 / float64(ebiten.TPS())

	if err := a.command(pressedCommand(inpututil.IsKeyJustPressed)); err != nil {
		return err
	}

	if a.overlay == nil || !a.overlay.Input().WantCaptureKeyboard {
		for _, action := range pressedActions(inpututil.IsKeyJustPressed) {
			a.game.Push(action)
		}
	}

	a.snap = a.game.Tick(a.ctx)
	a.messages.Frame(secondsToDuration(dt))

	if a.backend != nil {
		a.backend.Update(a.overlay, dt)
	}
	return nil
}

func (a *App) command(cmd command) error {
	var err error
	switch cmd {
	case cmdConfirm:
		switch a.game.State() {
		case game.StateTitle:
			err = a.game.Start(a.ctx)
		case game.StateGameOver:
			err = a.game.Reset(a.ctx)
		}
	case cmdPause:
		switch a.game.State() {
		case game.StatePlaying, game.StatePaused:
			err = a.game.TogglePause()
		}
	case cmdDebug:
		if a.overlay != nil {
			a.overlay.Toggle()
		}
	case cmdQuit:
		return ebiten.Termination
	}
	if err != nil && !errors.Is(err, game.ErrInvalidTransition) {
		return err
	}
	if err != nil {
		log.Printf("ignored key: %v", err)
	}
	return nil
}

func (a *App) Draw(screen *ebiten.Image) {
	screen.Fill(emptyColor)

	drawField(screen, a.snap)
	drawPanel(screen, a.snap)

	switch a.snap.State {
	case game.StateTitle:
		drawScreenText(screen, "PIXITRIS", "", "ENTER to start", "arrows or A D S R Q E, SPACE drops", "P pauses, F1 debug")
	case game.StatePaused:
		drawScreenText(screen, "PAUSED", "", "P to resume")
	case game.StateGameOver:
		drawScreenText(screen, "", "", "", "ENTER for title")
	}

	for _, v := range a.messages.Visible() {
		drawMessage(screen, v)
	}

	if a.backend != nil && a.overlay.Visible() {
		a.backend.Draw(screen)
	}
}

func (a *App) Layout(outsideWidth, outsideHeight int) (int, int) {
	if a.backend != nil {
		a.backend.Layout(a.width, a.height)
	}
	return a.width, a.height
}
