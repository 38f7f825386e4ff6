package ecs

// System is one step of a frame. Implementations are structs whose exported
// Query and Singleton fields are bound by Scheduler.Register; any other fields
// are plain state that survives between frames.
type System interface {
	Execute(frame *UpdateFrame)
}

// UpdateFrame is handed to every system during Scheduler.Once.
type UpdateFrame struct {
	// DeltaTime is the elapsed time in seconds since the previous frame.
	DeltaTime float64
	// Frame counts calls to Scheduler.Once, starting at 1.
	Frame    uint64
	Commands *Commands
	Storage  *Storage
}
