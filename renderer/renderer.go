package renderer

import (
	"fmt"
	"log"

	gl "github.com/go-gl/gl/v4.5-core/gl"

	graphics "github.com/fennecgl/fennec/graphics"
)

const fallbackVertexShader = `#version 450 core
layout (location = 0) in vec3 in_pos;
layout (location = 1) in vec3 in_color;
layout (location = 2) in vec2 in_uv;
out vec3 frag_color;
out vec2 frag_uv;
void main() {
    frag_color = in_color;
    frag_uv = in_uv;
    gl_Position = vec4(in_pos, 1.0);
}
`

const fallbackBlitFragmentShader = `#version 450 core
in vec3 frag_color;
in vec2 frag_uv;
out vec4 fragColor;
uniform sampler2D u_texture;
void main() { fragColor = texture(u_texture, frag_uv); }
`

// FrameError is the recoverable error type returned by StartFrame/EndFrame.
// The frame loop logs it and skips presenting that frame instead of
// crashing.
type FrameError struct {
	Op   string
	Code uint32
}

func (e *FrameError) Error() string {
	return fmt.Sprintf("%s: GL error %d (%s)", e.Op, e.Code, glErrorString(e.Code))
}

func glErrorString(code uint32) string {
	switch code {
	case gl.INVALID_ENUM:
		return "invalid enum"
	case gl.INVALID_VALUE:
		return "invalid value"
	case gl.INVALID_OPERATION:
		return "invalid operation"
	case gl.STACK_OVERFLOW:
		return "stack overflow"
	case gl.STACK_UNDERFLOW:
		return "stack underflow"
	case gl.OUT_OF_MEMORY:
		return "out of memory"
	case gl.INVALID_FRAMEBUFFER_OPERATION:
		return "invalid framebuffer operation"
	default:
		return "unknown OpenGL error"
	}
}

// glError drains and logs pending GL errors. Resource constructors call it
// after their setup sequences.
func glError(where string) {
	for {
		err := gl.GetError()
		if err == gl.NO_ERROR {
			return
		}
		log.Printf("[%s] GL error %d: %s", where, err, glErrorString(err))
	}
}

// Renderer owns the single OpenGL context of the process. It tracks whether
// the context is current on the render thread, brackets frames and creates
// every GPU resource. All resources hold a reference back to it, so it must
// outlive them.
type Renderer struct {
	context graphics.Context
	width   int
	height  int
	current bool
	binds   *BindState

	defaultFBShader *Shader
}

// NewRenderer loads the GL function table against the supplied window
// context and compiles the built-in fallback blit shader. The context is
// current on the calling thread when NewRenderer returns. A context or
// function-loading failure is unrecoverable; callers are expected to treat
// the returned error as fatal.
func NewRenderer(ctx graphics.Context) (*Renderer, error) {
	ctx.MakeCurrent()
	if err := gl.Init(); err != nil {
		return nil, fmt.Errorf("failed to load OpenGL function table: %w", err)
	}
	log.Printf("OpenGL version: %s", gl.GoStr(gl.GetString(gl.VERSION)))

	width, height := ctx.GetFramebufferSize()
	gl.Viewport(0, 0, int32(width), int32(height))

	r := &Renderer{
		context: ctx,
		width:   width,
		height:  height,
		current: true,
		binds:   &BindState{},
	}
	r.defaultFBShader = NewShader(r,
		ShaderSource{Name: "fallback_vs", Source: fallbackVertexShader},
		ShaderSource{Name: "fallback_fs", Source: fallbackBlitFragmentShader})
	return r, nil
}

// MakeCurrent binds the context to the calling thread. Calling it while
// already current is a no-op.
func (r *Renderer) MakeCurrent() {
	r.context.MakeCurrent()
	r.current = true
}

// MakeNotCurrent releases the context from the calling thread.
func (r *Renderer) MakeNotCurrent() {
	r.context.DetachCurrent()
	r.current = false
}

// IsCurrent reports whether the context is current on the render thread.
func (r *Renderer) IsCurrent() bool {
	return r.current
}

// BindState returns the shared shader-bind token. Overlay collaborators may
// poll it; resources receive it at construction.
func (r *Renderer) BindState() *BindState {
	return r.binds
}

// Window exposes the native window handle for overlay collaborators that
// present their own content against this context. The GL function table is
// process-global once loaded, so the handle is all an overlay needs.
func (r *Renderer) Window() interface{} {
	return r.context.Window()
}

// Size returns the tracked framebuffer size in pixels.
func (r *Renderer) Size() (int, int) {
	return r.width, r.height
}

// Resize updates the stored size and the GL viewport. Zero or negative
// dimensions are ignored to keep the viewport valid through window
// minimization.
func (r *Renderer) Resize(width, height int) {
	if width <= 0 || height <= 0 {
		return
	}
	r.width = width
	r.height = height
	gl.Viewport(0, 0, int32(width), int32(height))
}

// Fence issues a full memory barrier. Required between a pass that writes
// shared storage (compute) and a pass that reads it back.
func (r *Renderer) Fence() {
	gl.MemoryBarrier(gl.ALL_BARRIER_BITS)
}

// StartFrame makes the context current and clears the color buffer. On
// failure the caller skips the frame; EndFrame must not run for a frame
// whose StartFrame failed.
func (r *Renderer) StartFrame() error {
	r.MakeCurrent()
	gl.ClearColor(0.2, 0.2, 0.2, 1.0)
	gl.Clear(gl.COLOR_BUFFER_BIT)
	if code := gl.GetError(); code != gl.NO_ERROR {
		return &FrameError{Op: "start_frame", Code: code}
	}
	return nil
}

// EndFrame presents the back buffer and releases the context.
func (r *Renderer) EndFrame() error {
	if code := gl.GetError(); code != gl.NO_ERROR {
		return &FrameError{Op: "end_frame", Code: code}
	}
	r.context.SwapBuffers()
	r.MakeNotCurrent()
	return nil
}

// Shutdown releases the fallback shader and the window context. Resources
// created against this renderer must be destroyed before calling it.
func (r *Renderer) Shutdown() {
	r.MakeCurrent()
	r.defaultFBShader.Destroy()
	r.context.Shutdown()
}
