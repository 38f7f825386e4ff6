// Package debugui renders Dear ImGui windows that inspect an ecs.Storage and
// its Scheduler. Render functions are ECS components of the overlay's own
// storage, so windows can be added and removed like any entity.
package debugui

import (
	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/plus3/pixitris/ecs"
)

// ImguiItem is a component that holds a Dear ImGui render function.
type ImguiItem struct {
	Render func()
}

// ImguiInputState tracks whether ImGui wants the mouse or keyboard this frame.
type ImguiInputState struct {
	WantCaptureMouse    bool
	WantCaptureKeyboard bool
}

// ImguiSystem defers every ImguiItem's render function to the end of the
// frame and refreshes ImguiInputState.
type ImguiSystem struct {
	Items      ecs.Query[struct{ *ImguiItem }]
	InputState ecs.Singleton[ImguiInputState]
}

func (i *ImguiSystem) Execute(frame *ecs.UpdateFrame) {
	io := imgui.CurrentIO()
	i.InputState.Set(ImguiInputState{
		WantCaptureMouse:    io.WantCaptureMouse(),
		WantCaptureKeyboard: io.WantCaptureKeyboard(),
	})

	for item := range i.Items.Iter() {
		if item.Render != nil {
			frame.Commands.Defer(item.Render)
		}
	}
}

// Overlay owns the debug windows. Frame must be called between the ImGui
// backend's BeginFrame and EndFrame.
type Overlay struct {
	storage   *ecs.Storage
	scheduler *ecs.Scheduler
	input     *ecs.Singleton[ImguiInputState]
	history   *FrameHistory
	visible   bool
}

func NewOverlay() *Overlay {
	registry := ecs.NewComponentRegistry()
	ecs.RegisterComponent[ImguiItem](registry)

	storage := ecs.NewStorage(registry)
	o := &Overlay{
		storage:   storage,
		scheduler: ecs.NewScheduler(storage),
		input:     ecs.NewSingleton[ImguiInputState](storage),
		history:   NewFrameHistory(120),
	}
	o.scheduler.Register(&ImguiSystem{})
	return o
}

// Add registers a window. The returned id can be passed to Remove.
func (o *Overlay) Add(render func()) ecs.EntityId {
	return o.storage.Spawn(ImguiItem{Render: render})
}

func (o *Overlay) Remove(id ecs.EntityId) bool {
	return o.storage.Delete(id)
}

// Inspect adds the standard windows for target and the scheduler that
// drives it. title prefixes every window name.
func (o *Overlay) Inspect(title string, target *ecs.Storage, scheduler *ecs.Scheduler) {
	perf := &PerformanceWindow{Title: title + " Performance", Storage: target, History: o.history}
	arch := &ArchetypeWindow{Title: title + " Archetypes", Storage: target, sortColumn: ByEntities}
	sched := &SchedulerWindow{Title: title + " Systems", Scheduler: scheduler}
	singles := &SingletonWindow{Title: title + " Singletons", Storage: target}

	o.Add(perf.Render)
	o.Add(arch.Render)
	o.Add(sched.Render)
	o.Add(singles.Render)
}

func (o *Overlay) Toggle() {
	o.visible = !o.visible
}

func (o *Overlay) Visible() bool {
	return o.visible
}

// Frame records the frame time and, when visible, renders every window.
func (o *Overlay) Frame(dt float64) {
	o.history.Add(dt)
	if !o.visible {
		return
	}
	o.scheduler.Once(dt)
}

// Input reports what ImGui captured during the last visible frame.
func (o *Overlay) Input() ImguiInputState {
	if !o.visible {
		return ImguiInputState{}
	}
	return *o.input.Get()
}
