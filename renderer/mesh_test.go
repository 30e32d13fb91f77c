package renderer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMeshDrawWithoutShaderPanics(t *testing.T) {
	m := &Mesh{binds: &BindState{}}
	require.Panics(t, func() { m.Draw() })
}

func TestCircleVerticesLayout(t *testing.T) {
	verts := circleVertices(8)
	assert.Len(t, verts, 8*3*floatsPerVertex)

	// Every third vertex fans from the center.
	tri := verts[:3*floatsPerVertex]
	assert.Equal(t, float32(0), tri[0])
	assert.Equal(t, float32(0), tri[1])

	// UVs stay inside 0..1.
	for i := 0; i < len(verts); i += floatsPerVertex {
		u, v := verts[i+6], verts[i+7]
		assert.GreaterOrEqual(t, u, float32(0))
		assert.LessOrEqual(t, u, float32(1))
		assert.GreaterOrEqual(t, v, float32(0))
		assert.LessOrEqual(t, v, float32(1))
	}
}

func TestCircleVerticesClampsSegments(t *testing.T) {
	assert.Len(t, circleVertices(1), 3*3*floatsPerVertex)
}
