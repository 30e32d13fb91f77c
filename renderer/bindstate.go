package renderer

import "sync/atomic"

// BindState is the shared capability token recording whether a shader
// program is currently bound. The renderer owns exactly one BindState and
// hands a reference to every resource whose operations are only valid under
// an active program. It is the one piece of state an overlay running on the
// same context may read from another goroutine, so it is atomic.
type BindState struct {
	shaderBound atomic.Bool
}

// ShaderBound reports whether a shader program is currently bound.
func (s *BindState) ShaderBound() bool {
	return s.shaderBound.Load()
}

func (s *BindState) setShaderBound(bound bool) {
	s.shaderBound.Store(bound)
}

// requireShader panics unless a shader program is bound. Drawing or sampling
// without one is a programming error, not a runtime condition.
func (s *BindState) requireShader(what string) {
	if !s.shaderBound.Load() {
		panic("no shader bound, but you are trying to " + what + "! Use Shader.WhileBound or similar")
	}
}
