package glfwcontext

import (
	"fmt"
	"log"
	"runtime"

	glfw "github.com/go-gl/glfw/v3.3/glfw"

	options "github.com/fennecgl/fennec/options"
)

// Context wraps a GLFW window carrying an OpenGL 4.5 core context.
type Context struct {
	window *glfw.Window
	// A map to store functions to be called on key presses.
	keyCallbacks     map[glfw.Key]func()
	sizeCallback     func(width, height int)
	keyEventCallback func(key glfw.Key, scancode int, action glfw.Action, mods glfw.ModifierKey) bool
}

// New creates a visible GLFW window with an attached GL 4.5 core context.
// The context is NOT made current here; the renderer owns currency.
func New(opts *options.RunOptions) (*Context, error) {
	glfw.WindowHint(glfw.ContextVersionMajor, 4)
	glfw.WindowHint(glfw.ContextVersionMinor, 5)
	glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)
	glfw.WindowHint(glfw.OpenGLForwardCompatible, glfw.True)
	glfw.WindowHint(glfw.Resizable, glfw.True)

	win, err := glfw.CreateWindow(*opts.Width, *opts.Height, *opts.Title, nil, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create window: %w", err)
	}

	c := &Context{
		window:       win,
		keyCallbacks: make(map[glfw.Key]func()),
	}

	win.SetKeyCallback(c.glfwKeyCallback)
	win.SetFramebufferSizeCallback(func(w *glfw.Window, width, height int) {
		if c.sizeCallback != nil {
			c.sizeCallback(width, height)
		}
	})

	if *opts.VSync {
		// Swap interval applies to the current context, so bracket it.
		win.MakeContextCurrent()
		glfw.SwapInterval(1)
		glfw.DetachCurrentContext()
	}

	return c, nil
}

// RegisterKeyCallback registers a function to be called when a specific key
// is pressed.
func (c *Context) RegisterKeyCallback(key glfw.Key, f func()) {
	c.keyCallbacks[key] = f
}

// SetKeyEventCallback registers a pass-through handler for raw key events.
// A handler returning true marks the event consumed (e.g. by a UI overlay);
// consumed events do not trigger the default Escape-close behavior or any
// registered key callbacks.
func (c *Context) SetKeyEventCallback(f func(key glfw.Key, scancode int, action glfw.Action, mods glfw.ModifierKey) bool) {
	c.keyEventCallback = f
}

func (c *Context) glfwKeyCallback(w *glfw.Window, key glfw.Key, scancode int, action glfw.Action, mods glfw.ModifierKey) {
	if c.keyEventCallback != nil && c.keyEventCallback(key, scancode, action, mods) {
		return
	}

	// Default Escape key behavior
	if key == glfw.KeyEscape && action == glfw.Press {
		w.SetShouldClose(true)
	}

	if action == glfw.Press {
		if callback, ok := c.keyCallbacks[key]; ok {
			callback()
		}
	}
}

// MakeCurrent makes the context current for the calling goroutine.
func (c *Context) MakeCurrent() {
	c.window.MakeContextCurrent()
}

// DetachCurrent makes no context current on the calling thread.
func (c *Context) DetachCurrent() {
	glfw.DetachCurrentContext()
}

func (c *Context) SwapBuffers() {
	c.window.SwapBuffers()
}

func (c *Context) PollEvents() {
	glfw.PollEvents()
}

func (c *Context) ShouldClose() bool {
	return c.window.ShouldClose()
}

func (c *Context) GetFramebufferSize() (int, int) {
	return c.window.GetFramebufferSize()
}

func (c *Context) SetSizeCallback(f func(width, height int)) {
	c.sizeCallback = f
}

func (c *Context) SetTitle(title string) {
	c.window.SetTitle(title)
}

func (c *Context) Time() float64 {
	return glfw.GetTime()
}

// Window returns the underlying *glfw.Window for overlay collaborators.
func (c *Context) Window() interface{} {
	return c.window
}

// Shutdown destroys the window.
func (c *Context) Shutdown() {
	c.window.Destroy()
}

// InitGraphics initializes the main graphics subsystem (GLFW). Must be
// called from the main thread.
func InitGraphics() error {
	runtime.LockOSThread()
	if err := glfw.Init(); err != nil {
		return err
	}
	log.Printf("GLFW Initialized")
	return nil
}

// TerminateGraphics shuts down the graphics subsystem. Must be called from
// the main thread.
func TerminateGraphics() {
	glfw.Terminate()
	log.Printf("GLFW Terminated")
}
