package renderer

import (
	"log"
	"unsafe"

	gl "github.com/go-gl/gl/v4.5-core/gl"
)

// TextureFormat selects the channel layout of a texture. Storage is always
// 32-bit float per channel.
type TextureFormat int

const (
	FormatR TextureFormat = iota
	FormatRG
	FormatRGB
	FormatRGBA
)

func (f TextureFormat) glFormat() uint32 {
	switch f {
	case FormatR:
		return gl.RED
	case FormatRG:
		return gl.RG
	case FormatRGB:
		return gl.RGB
	default:
		return gl.RGBA
	}
}

func (f TextureFormat) glInternalFormat() int32 {
	switch f {
	case FormatR:
		return gl.R32F
	case FormatRG:
		return gl.RG32F
	case FormatRGB:
		return gl.RGB32F
	default:
		return gl.RGBA32F
	}
}

// Components returns the number of float channels per pixel.
func (f TextureFormat) Components() int {
	switch f {
	case FormatR:
		return 1
	case FormatRG:
		return 2
	case FormatRGB:
		return 3
	default:
		return 4
	}
}

// TextureFiltering selects the sampling filter.
type TextureFiltering int

const (
	FilterNearest TextureFiltering = iota
	FilterLinear
)

func (f TextureFiltering) glFilter() int32 {
	if f == FilterLinear {
		return gl.LINEAR
	}
	return gl.NEAREST
}

func (f TextureFiltering) glMipmapFilter() int32 {
	if f == FilterLinear {
		return gl.LINEAR_MIPMAP_LINEAR
	}
	return gl.NEAREST_MIPMAP_NEAREST
}

// TextureSettings is the full configuration of a 2D texture.
type TextureSettings struct {
	Width     int
	Height    int
	Format    TextureFormat
	Filtering TextureFiltering
	Mipmap    bool
}

// Texture is a 2D float texture. It can be bound as a sampled texture
// (requires an active shader) or as a read/write image for compute access.
type Texture struct {
	tex      uint32
	settings TextureSettings
	binds    *BindState
	bound    bool
}

// NewTexture allocates a texture, optionally uploading initial pixel data
// (settings.Format.Components() floats per pixel, row-major).
func NewTexture(r *Renderer, settings TextureSettings, pixels []float32) *Texture {
	t := &Texture{
		settings: settings,
		binds:    r.binds,
	}
	gl.GenTextures(1, &t.tex)
	t.uploadStorage(pixels)
	glError("texture.NewTexture")
	return t
}

// uploadStorage (re)allocates the texture storage at the current settings
// and applies the filtering parameters.
func (t *Texture) uploadStorage(pixels []float32) {
	var data unsafe.Pointer
	if len(pixels) > 0 {
		data = gl.Ptr(pixels)
	}

	s := &t.settings
	gl.BindTexture(gl.TEXTURE_2D, t.tex)
	gl.TexImage2D(gl.TEXTURE_2D, 0, s.Format.glInternalFormat(),
		int32(s.Width), int32(s.Height), 0, s.Format.glFormat(), gl.FLOAT, data)
	if s.Mipmap {
		gl.GenerateMipmap(gl.TEXTURE_2D)
		gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, s.Filtering.glMipmapFilter())
	} else {
		gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, s.Filtering.glFilter())
	}
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, s.Filtering.glFilter())
	gl.BindTexture(gl.TEXTURE_2D, 0)
}

// Size returns the texture dimensions in pixels.
func (t *Texture) Size() (int, int) {
	return t.settings.Width, t.settings.Height
}

// Resize reallocates the storage in place at the new size, optionally with
// new pixel data. Zero or negative dimensions are ignored.
func (t *Texture) Resize(width, height int, pixels []float32) {
	if width <= 0 || height <= 0 {
		log.Printf("Ignoring texture resize to %dx%d", width, height)
		return
	}
	t.settings.Width = width
	t.settings.Height = height
	t.uploadStorage(pixels)
}

// Bind attaches the texture to a sampler slot. Sampling only happens from
// shaders, so binding with no shader bound panics.
func (t *Texture) Bind(location uint32) {
	t.binds.requireShader("bind a texture")
	t.bound = true
	gl.ActiveTexture(gl.TEXTURE0 + location)
	gl.BindTexture(gl.TEXTURE_2D, t.tex)
}

// Unbind detaches the texture; unbinding an unbound texture is a
// recoverable no-op.
func (t *Texture) Unbind() {
	if !t.bound {
		log.Printf("Attempting to unbind unbound texture!")
		return
	}
	gl.BindTexture(gl.TEXTURE_2D, 0)
	t.bound = false
}

// BindImage attaches the texture to an image unit for load/store access
// from a compute or fragment stage.
func (t *Texture) BindImage(location uint32, read, write bool) {
	t.binds.requireShader("bind an image texture")
	t.bound = true
	var access uint32
	switch {
	case read && write:
		access = gl.READ_WRITE
	case write:
		access = gl.WRITE_ONLY
	default:
		access = gl.READ_ONLY
	}
	gl.BindImageTexture(location, t.tex, 0, false, 0, access,
		uint32(t.settings.Format.glInternalFormat()))
}

// WhileBound runs f with the texture attached to a sampler slot.
func (t *Texture) WhileBound(location uint32, f func() error) error {
	t.Bind(location)
	defer t.Unbind()
	return f()
}

// WhileBoundImage runs f with the texture attached to an image unit.
func (t *Texture) WhileBoundImage(location uint32, read, write bool, f func() error) error {
	t.BindImage(location, read, write)
	defer t.Unbind()
	return f()
}

// Destroy releases the texture object.
func (t *Texture) Destroy() {
	if t.tex != 0 {
		gl.DeleteTextures(1, &t.tex)
		t.tex = 0
	}
}
