// Package fennec is a minimal real-time rendering runtime: one OpenGL
// context, lifetime-managed GPU resources and a cooperative frame loop.
package fennec

import (
	glfw "github.com/go-gl/glfw/v3.3/glfw"

	graphics "github.com/fennecgl/fennec/graphics"
	renderer "github.com/fennecgl/fennec/renderer"
)

// KeyEvent is a raw key event passed through to the application before any
// default handling.
type KeyEvent struct {
	Key      glfw.Key
	Scancode int
	Action   glfw.Action
	Mods     glfw.ModifierKey
}

// App is the per-iteration contract the frame loop drives. Event returning
// true marks the event consumed, suppressing default handling. Update runs
// with the context current but outside the frame bracket; Render runs
// between StartFrame and EndFrame.
type App interface {
	Event(ev KeyEvent) bool
	Update(ctx *Context)
	Render(ctx *Context)
	OnResize(width, height int)
}

// Shutdowner is implemented by apps that own GPU resources needing
// explicit teardown. It runs with the context current, before the context
// itself is destroyed.
type Shutdowner interface {
	Shutdown(ctx *Context)
}

// Context is the user-facing handle passed into every App callback. It
// embeds the Renderer, so resource constructors and frame operations are
// reachable directly.
type Context struct {
	*renderer.Renderer
	win graphics.Context
}

// SetWindowTitle changes the native window title.
func (c *Context) SetWindowTitle(title string) {
	c.win.SetTitle(title)
}

// Time returns seconds since graphics initialization.
func (c *Context) Time() float64 {
	return c.win.Time()
}
