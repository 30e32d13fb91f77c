package renderer

import (
	"testing"

	gl "github.com/go-gl/gl/v4.5-core/gl"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTextureFormatMappings(t *testing.T) {
	assert.Equal(t, uint32(gl.RED), FormatR.glFormat())
	assert.Equal(t, uint32(gl.RG), FormatRG.glFormat())
	assert.Equal(t, uint32(gl.RGB), FormatRGB.glFormat())
	assert.Equal(t, uint32(gl.RGBA), FormatRGBA.glFormat())

	assert.Equal(t, int32(gl.R32F), FormatR.glInternalFormat())
	assert.Equal(t, int32(gl.RGBA32F), FormatRGBA.glInternalFormat())

	assert.Equal(t, 1, FormatR.Components())
	assert.Equal(t, 2, FormatRG.Components())
	assert.Equal(t, 3, FormatRGB.Components())
	assert.Equal(t, 4, FormatRGBA.Components())
}

func TestTextureFilteringMappings(t *testing.T) {
	assert.Equal(t, int32(gl.NEAREST), FilterNearest.glFilter())
	assert.Equal(t, int32(gl.LINEAR), FilterLinear.glFilter())
	assert.Equal(t, int32(gl.NEAREST_MIPMAP_NEAREST), FilterNearest.glMipmapFilter())
	assert.Equal(t, int32(gl.LINEAR_MIPMAP_LINEAR), FilterLinear.glMipmapFilter())
}

func TestTextureBindWithoutShaderPanics(t *testing.T) {
	tex := &Texture{binds: &BindState{}}
	require.Panics(t, func() { tex.Bind(0) })
	require.Panics(t, func() { tex.BindImage(0, true, false) })
}

func TestTextureResizeIgnoresInvalidSize(t *testing.T) {
	tex := &Texture{
		binds:    &BindState{},
		settings: TextureSettings{Width: 64, Height: 64},
	}

	tex.Resize(0, 128, nil)
	tex.Resize(128, -1, nil)

	w, h := tex.Size()
	assert.Equal(t, 64, w)
	assert.Equal(t, 64, h)
}

func TestTextureDoubleUnbindIsANoOp(t *testing.T) {
	tex := &Texture{binds: &BindState{}}
	require.NotPanics(t, func() { tex.Unbind() })
	require.NotPanics(t, func() { tex.Unbind() })
}
