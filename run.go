package fennec

import (
	"fmt"
	"log"

	glfw "github.com/go-gl/glfw/v3.3/glfw"

	glfwcontext "github.com/fennecgl/fennec/glfwcontext"
	options "github.com/fennecgl/fennec/options"
	renderer "github.com/fennecgl/fennec/renderer"
)

// Run owns the whole lifecycle: graphics init, window and renderer
// creation, the frame loop and teardown. newApp is invoked once with the
// context current, so it can create GPU resources. Run must be called from
// the main goroutine and does not return until the window closes.
func Run(opts *options.RunOptions, newApp func(ctx *Context) App) error {
	if err := glfwcontext.InitGraphics(); err != nil {
		return fmt.Errorf("failed to initialize graphics: %w", err)
	}
	defer glfwcontext.TerminateGraphics()

	win, err := glfwcontext.New(opts)
	if err != nil {
		return err
	}

	r, err := renderer.NewRenderer(win)
	if err != nil {
		return err
	}
	ctx := &Context{Renderer: r, win: win}

	var app App
	win.SetSizeCallback(func(width, height int) {
		r.MakeCurrent()
		r.Resize(width, height)
		app.OnResize(width, height)
		r.MakeNotCurrent()
	})
	win.SetKeyEventCallback(func(key glfw.Key, scancode int, action glfw.Action, mods glfw.ModifierKey) bool {
		return app.Event(KeyEvent{Key: key, Scancode: scancode, Action: action, Mods: mods})
	})

	// The context is current here, courtesy of NewRenderer.
	app = newApp(ctx)
	r.MakeNotCurrent()

	for !win.ShouldClose() {
		win.PollEvents()

		r.MakeCurrent()
		app.Update(ctx)
		r.MakeNotCurrent()

		if err := r.StartFrame(); err != nil {
			log.Printf("Skipping frame: %v", err)
			continue
		}
		app.Render(ctx)
		if err := r.EndFrame(); err != nil {
			log.Printf("Failed to present frame: %v", err)
		}
	}

	r.MakeCurrent()
	if s, ok := app.(Shutdowner); ok {
		s.Shutdown(ctx)
	}
	r.Shutdown()
	return nil
}
