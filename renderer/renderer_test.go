package renderer

import (
	"testing"

	gl "github.com/go-gl/gl/v4.5-core/gl"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResizeIgnoresInvalidSize(t *testing.T) {
	r := &Renderer{width: 1280, height: 720}

	r.Resize(0, 720)
	r.Resize(1280, 0)
	r.Resize(-10, -10)

	w, h := r.Size()
	assert.Equal(t, 1280, w)
	assert.Equal(t, 720, h)
}

func TestFrameErrorMessage(t *testing.T) {
	err := &FrameError{Op: "start_frame", Code: gl.OUT_OF_MEMORY}
	assert.Equal(t, "start_frame: GL error 1285 (out of memory)", err.Error())

	var target *FrameError
	require.ErrorAs(t, error(err), &target)
}

func TestGLErrorStrings(t *testing.T) {
	assert.Equal(t, "invalid enum", glErrorString(gl.INVALID_ENUM))
	assert.Equal(t, "invalid operation", glErrorString(gl.INVALID_OPERATION))
	assert.Equal(t, "invalid framebuffer operation", glErrorString(gl.INVALID_FRAMEBUFFER_OPERATION))
	assert.Equal(t, "unknown OpenGL error", glErrorString(0xdead))
}
