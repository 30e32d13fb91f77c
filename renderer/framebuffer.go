package renderer

import (
	"fmt"
	"log"

	gl "github.com/go-gl/gl/v4.5-core/gl"
)

// Framebuffer is an off-screen render target with one or more color
// attachments and a built-in full-screen quad for compositing its output.
// Drawing it with no shader bound transparently uses the renderer's
// fallback blit shader, so a Framebuffer is always drawable.
type Framebuffer struct {
	fbo    uint32
	tex    []uint32
	width  int
	height int
	bound  bool

	binds           *BindState
	defaultFBShader *Shader
	mesh            *Mesh
}

func createAttachments(width, height, layers int) (uint32, []uint32) {
	var fbo uint32
	gl.GenFramebuffers(1, &fbo)
	gl.BindFramebuffer(gl.FRAMEBUFFER, fbo)

	tex := make([]uint32, layers)
	gl.GenTextures(int32(layers), &tex[0])
	for i := 0; i < layers; i++ {
		gl.BindTexture(gl.TEXTURE_2D, tex[i])
		gl.TexImage2D(gl.TEXTURE_2D, 0, gl.RGBA32F, int32(width), int32(height),
			0, gl.RGBA, gl.FLOAT, nil)
		gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.NEAREST)
		gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.NEAREST)
		gl.FramebufferTexture2D(gl.FRAMEBUFFER, gl.COLOR_ATTACHMENT0+uint32(i),
			gl.TEXTURE_2D, tex[i], 0)
	}
	gl.BindTexture(gl.TEXTURE_2D, 0)

	drawBuffers := make([]uint32, layers)
	for i := range drawBuffers {
		drawBuffers[i] = gl.COLOR_ATTACHMENT0 + uint32(i)
	}
	gl.DrawBuffers(int32(layers), &drawBuffers[0])

	if status := gl.CheckFramebufferStatus(gl.FRAMEBUFFER); status != gl.FRAMEBUFFER_COMPLETE {
		log.Printf("Incomplete framebuffer! Code: %d", status)
		panic(fmt.Sprintf("incomplete framebuffer! (status %d)", status))
	}
	gl.BindFramebuffer(gl.FRAMEBUFFER, 0)
	return fbo, tex
}

// NewFramebuffer creates a framebuffer sized to the renderer's current
// framebuffer with the given number of color attachments.
func NewFramebuffer(r *Renderer, layers int) *Framebuffer {
	width, height := r.Size()
	return NewFramebufferWithResolution(r, width, height, layers)
}

// NewFramebufferWithResolution creates a framebuffer at an explicit size.
func NewFramebufferWithResolution(r *Renderer, width, height, layers int) *Framebuffer {
	if layers < 1 {
		layers = 1
	}
	fbo, tex := createAttachments(width, height, layers)
	glError("framebuffer.NewFramebufferWithResolution")
	return &Framebuffer{
		fbo:             fbo,
		tex:             tex,
		width:           width,
		height:          height,
		binds:           r.binds,
		defaultFBShader: r.defaultFBShader,
		mesh:            NewQuad(r),
	}
}

// Size returns the attachment dimensions in pixels.
func (f *Framebuffer) Size() (int, int) {
	return f.width, f.height
}

// Layers returns the number of color attachments.
func (f *Framebuffer) Layers() int {
	return len(f.tex)
}

// Resize destroys the old attachments and creates a fresh set at the new
// size. Dimensions are validated before anything is destroyed; zero or
// negative sizes are a logged no-op, so a valid framebuffer always exists.
func (f *Framebuffer) Resize(width, height int) {
	if width <= 0 || height <= 0 {
		log.Printf("Ignoring framebuffer resize to %dx%d", width, height)
		return
	}
	gl.DeleteFramebuffers(1, &f.fbo)
	gl.DeleteTextures(int32(len(f.tex)), &f.tex[0])

	fbo, tex := createAttachments(width, height, len(f.tex))
	glError("framebuffer.Resize")
	f.fbo = fbo
	f.tex = tex
	f.width = width
	f.height = height
}

func (f *Framebuffer) bindAttachments() {
	for i := range f.tex {
		gl.ActiveTexture(gl.TEXTURE0 + uint32(i))
		gl.BindTexture(gl.TEXTURE_2D, f.tex[i])
	}
}

func (f *Framebuffer) unbindAttachments() {
	gl.BindTexture(gl.TEXTURE_2D, 0)
}

// Draw composites the framebuffer's color output as a full-screen quad. If
// a shader is bound it is used as-is; otherwise the fallback blit shader is
// bound for the duration of the draw, leaving the bind state as it was.
func (f *Framebuffer) Draw() error {
	if f.binds.ShaderBound() {
		f.bindAttachments()
		defer f.unbindAttachments()
		return f.mesh.Draw()
	}
	return f.defaultFBShader.WhileBound(func(u *UniformInterface) error {
		f.bindAttachments()
		defer f.unbindAttachments()
		return f.mesh.Draw()
	})
}

// Bind makes the framebuffer the active render target.
func (f *Framebuffer) Bind() {
	f.bound = true
	gl.BindFramebuffer(gl.FRAMEBUFFER, f.fbo)
}

// Unbind restores the default render target; unbinding an unbound
// framebuffer is a recoverable no-op.
func (f *Framebuffer) Unbind() {
	if !f.bound {
		log.Printf("Attempting to unbind unbound framebuffer!")
		return
	}
	gl.BindFramebuffer(gl.FRAMEBUFFER, 0)
	f.bound = false
}

// Clear clears the currently bound render target's color, depth and
// stencil buffers.
func (f *Framebuffer) Clear() {
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT | gl.STENCIL_BUFFER_BIT)
}

// WhileBound runs f with the framebuffer bound and the viewport matched to
// its resolution. The previous viewport and render target are restored on
// every exit path.
func (f *Framebuffer) WhileBound(fn func() error) error {
	var viewport [4]int32
	gl.GetIntegerv(gl.VIEWPORT, &viewport[0])
	gl.Viewport(0, 0, int32(f.width), int32(f.height))
	f.Bind()
	defer func() {
		f.Unbind()
		gl.Viewport(viewport[0], viewport[1], viewport[2], viewport[3])
	}()
	return fn()
}

// Destroy releases the framebuffer, its attachments and the internal quad.
func (f *Framebuffer) Destroy() {
	if f.fbo != 0 {
		gl.DeleteFramebuffers(1, &f.fbo)
		gl.DeleteTextures(int32(len(f.tex)), &f.tex[0])
		f.fbo = 0
	}
	f.mesh.Destroy()
}
