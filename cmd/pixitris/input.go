package main

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/plus3/pixitris/game"
)

// binding maps a key to a game action.
type binding struct {
	Key    ebiten.Key
	Action game.Action
}

// bindings keeps the space/s/a/d/r/e layout next to the arrows.
var bindings = []binding{
	{ebiten.KeySpace, game.HardDrop},
	{ebiten.KeyS, game.SoftDrop},
	{ebiten.KeyArrowDown, game.SoftDrop},
	{ebiten.KeyA, game.MoveLeft},
	{ebiten.KeyArrowLeft, game.MoveLeft},
	{ebiten.KeyD, game.MoveRight},
	{ebiten.KeyArrowRight, game.MoveRight},
	{ebiten.KeyR, game.Rotate},
	{ebiten.KeyArrowUp, game.Rotate},
	{ebiten.KeyQ, game.RotateBack},
	{ebiten.KeyE, game.Hold},
	{ebiten.KeyC, game.Hold},
}

// pressedActions returns the actions whose keys were just pressed, in
// binding order and without duplicates.
func pressedActions(justPressed func(ebiten.Key) bool) []game.Action {
	var out []game.Action
	seen := make(map[game.Action]bool)
	for _, b := range bindings {
		if seen[b.Action] || !justPressed(b.Key) {
			continue
		}
		seen[b.Action] = true
		out = append(out, b.Action)
	}
	return out
}

// command is a key that drives the state machine rather than the piece.
type command int

const (
	cmdNone command = iota
	cmdConfirm
	cmdPause
	cmdDebug
	cmdQuit
)

func pressedCommand(justPressed func(ebiten.Key) bool) command {
	switch {
	case justPressed(ebiten.KeyF1):
		return cmdDebug
	case justPressed(ebiten.KeyEnter), justPressed(ebiten.KeyNumpadEnter):
		return cmdConfirm
	case justPressed(ebiten.KeyP), justPressed(ebiten.KeyEscape):
		return cmdPause
	case justPressed(ebiten.KeyF10):
		return cmdQuit
	}
	return cmdNone
}
