// Package ebiten connects the debug overlay to the Ebiten game engine.
package ebiten

import (
	ebitenbackend "github.com/AllenDang/cimgui-go/backend/ebiten-backend"
	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/plus3/pixitris/ecs/debugui"
)

// ImguiBackend wraps the Ebiten Dear ImGui backend.
type ImguiBackend struct {
	*ebitenbackend.EbitenBackend
}

// NewImguiBackend creates the backend and its Ebiten window, and turns off
// imgui.ini persistence.
func NewImguiBackend(title string, width, height int) *ImguiBackend {
	b := &ImguiBackend{EbitenBackend: ebitenbackend.NewEbitenBackend()}
	b.CreateWindow(title, width, height)
	imgui.CurrentIO().SetIniFilename("")
	return b
}

// Update runs one overlay frame inside an ImGui frame.
func (b *ImguiBackend) Update(overlay *debugui.Overlay, dt float64) {
	b.BeginFrame()
	overlay.Frame(dt)
	b.EndFrame()
}
