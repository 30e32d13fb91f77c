package renderer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBindStateDefaultsToUnbound(t *testing.T) {
	s := &BindState{}
	assert.False(t, s.ShaderBound())
}

func TestBindStateTransitions(t *testing.T) {
	s := &BindState{}

	s.setShaderBound(true)
	assert.True(t, s.ShaderBound())

	s.setShaderBound(false)
	assert.False(t, s.ShaderBound())

	// Clearing an already-clear flag must stay a no-op.
	s.setShaderBound(false)
	assert.False(t, s.ShaderBound())
}

func TestRequireShaderPanicsWhenUnbound(t *testing.T) {
	s := &BindState{}
	require.PanicsWithValue(t,
		"no shader bound, but you are trying to draw a mesh! Use Shader.WhileBound or similar",
		func() { s.requireShader("draw a mesh") })
}

func TestRequireShaderPassesWhenBound(t *testing.T) {
	s := &BindState{}
	s.setShaderBound(true)
	require.NotPanics(t, func() { s.requireShader("draw a mesh") })
}
