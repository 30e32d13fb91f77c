package graphics

// Context defines the interface the renderer expects from the windowing
// collaborator: a native window with an OpenGL context attached. The
// renderer never talks to GLFW directly; everything it needs from the
// window goes through this interface.
type Context interface {
	// MakeCurrent binds the context to the calling thread.
	MakeCurrent()
	// DetachCurrent makes no context current on the calling thread.
	DetachCurrent()
	// SwapBuffers presents the back buffer.
	SwapBuffers()
	// PollEvents pumps the native event queue. Must be called from the
	// main thread.
	PollEvents()
	ShouldClose() bool
	GetFramebufferSize() (int, int)
	// SetSizeCallback registers the function invoked with new pixel
	// dimensions whenever the framebuffer is resized.
	SetSizeCallback(func(width, height int))
	SetTitle(title string)
	Time() float64
	// Window returns the underlying native window handle, for overlay
	// collaborators that present their own content against this context.
	Window() interface{}
	Shutdown()
}
