package renderer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFramebufferResizeValidatesBeforeDestroying(t *testing.T) {
	// The old attachments must survive an invalid resize untouched, so size
	// validation has to run before any deletion. With no GL context loaded,
	// reaching a GL call would crash the test.
	fb := &Framebuffer{width: 1280, height: 720, tex: []uint32{1}}

	fb.Resize(0, 720)
	fb.Resize(1280, 0)
	fb.Resize(-1, -1)

	w, h := fb.Size()
	assert.Equal(t, 1280, w)
	assert.Equal(t, 720, h)
	assert.Equal(t, 1, fb.Layers())
}

func TestFramebufferDoubleUnbindIsANoOp(t *testing.T) {
	fb := &Framebuffer{}
	require.NotPanics(t, func() { fb.Unbind() })
	require.NotPanics(t, func() { fb.Unbind() })
	assert.False(t, fb.bound)
}
