package renderer

import (
	math32 "github.com/chewxy/math32"
	gl "github.com/go-gl/gl/v4.5-core/gl"
)

// floatsPerVertex is the interleaved layout every mesh uses:
// position (3), color (3), uv (2).
const floatsPerVertex = 8

// Mesh owns a vertex array with an interleaved vertex buffer and an
// optional index buffer. Drawing requires an active shader; a draw with no
// shader bound is a programming error and panics.
type Mesh struct {
	vao        uint32
	vbo        uint32
	ebo        uint32
	vertCount  int32
	indexCount int32
	indexed    bool
	binds      *BindState
}

// NewQuad builds a unit quad spanning clip space, white, with 0..1 uv.
func NewQuad(r *Renderer) *Mesh {
	quadVertices := []float32{
		// Position    // Color     // UV
		-1.0, -1.0, 0.0, 1.0, 1.0, 1.0, 0.0, 0.0,
		1.0, -1.0, 0.0, 1.0, 1.0, 1.0, 1.0, 0.0,
		-1.0, 1.0, 0.0, 1.0, 1.0, 1.0, 0.0, 1.0,
		1.0, 1.0, 0.0, 1.0, 1.0, 1.0, 1.0, 1.0,
	}
	quadIndices := []uint32{
		0, 1, 3,
		0, 3, 2,
	}
	return NewIndexedMesh(r, quadVertices, quadIndices)
}

// NewCircle builds a non-indexed unit disc triangulated around the origin.
func NewCircle(r *Renderer, segments int) *Mesh {
	return NewMesh(r, circleVertices(segments))
}

func circleVertices(segments int) []float32 {
	if segments < 3 {
		segments = 3
	}
	vertex := func(angle float32) []float32 {
		x, y := math32.Cos(angle), math32.Sin(angle)
		return []float32{x, y, 0.0, 1.0, 1.0, 1.0, x*0.5 + 0.5, y*0.5 + 0.5}
	}
	center := []float32{0.0, 0.0, 0.0, 1.0, 1.0, 1.0, 0.5, 0.5}

	verts := make([]float32, 0, segments*3*floatsPerVertex)
	step := 2 * math32.Pi / float32(segments)
	for i := 0; i < segments; i++ {
		verts = append(verts, center...)
		verts = append(verts, vertex(float32(i)*step)...)
		verts = append(verts, vertex(float32(i+1)*step)...)
	}
	return verts
}

// NewMesh builds a non-indexed mesh from interleaved vertex data.
func NewMesh(r *Renderer, vertexData []float32) *Mesh {
	m := setupMesh(r, vertexData)
	return m
}

// NewIndexedMesh builds a mesh drawn through an index buffer.
func NewIndexedMesh(r *Renderer, vertexData []float32, indexData []uint32) *Mesh {
	m := setupMesh(r, vertexData)

	gl.BindVertexArray(m.vao)
	gl.GenBuffers(1, &m.ebo)
	gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, m.ebo)
	gl.BufferData(gl.ELEMENT_ARRAY_BUFFER, len(indexData)*4, gl.Ptr(indexData), gl.STATIC_DRAW)
	gl.BindVertexArray(0)

	m.indexCount = int32(len(indexData))
	m.indexed = true
	return m
}

func setupMesh(r *Renderer, vertexData []float32) *Mesh {
	var vao, vbo uint32
	gl.GenVertexArrays(1, &vao)
	gl.BindVertexArray(vao)

	gl.GenBuffers(1, &vbo)
	gl.BindBuffer(gl.ARRAY_BUFFER, vbo)
	gl.BufferData(gl.ARRAY_BUFFER, len(vertexData)*4, gl.Ptr(vertexData), gl.STATIC_DRAW)

	stride := int32(floatsPerVertex * 4)
	gl.EnableVertexAttribArray(0)
	gl.VertexAttribPointer(0, 3, gl.FLOAT, false, stride, gl.PtrOffset(0))
	gl.EnableVertexAttribArray(1)
	gl.VertexAttribPointer(1, 3, gl.FLOAT, false, stride, gl.PtrOffset(3*4))
	gl.EnableVertexAttribArray(2)
	gl.VertexAttribPointer(2, 2, gl.FLOAT, false, stride, gl.PtrOffset(6*4))

	gl.BindBuffer(gl.ARRAY_BUFFER, 0)
	gl.BindVertexArray(0)
	glError("mesh.setupMesh")

	return &Mesh{
		vao:       vao,
		vbo:       vbo,
		vertCount: int32(len(vertexData) / floatsPerVertex),
		binds:     r.binds,
	}
}

// Draw issues an indexed or non-indexed draw depending on how the mesh was
// built. Panics if no shader is bound.
func (m *Mesh) Draw() error {
	m.binds.requireShader("draw a mesh")
	gl.BindVertexArray(m.vao)
	if m.indexed {
		gl.DrawElements(gl.TRIANGLES, m.indexCount, gl.UNSIGNED_INT, gl.PtrOffset(0))
	} else {
		gl.DrawArrays(gl.TRIANGLES, 0, m.vertCount)
	}
	gl.BindVertexArray(0)
	return nil
}

// Destroy releases the vertex array and its buffers.
func (m *Mesh) Destroy() {
	if m.vao != 0 {
		gl.DeleteVertexArrays(1, &m.vao)
		gl.DeleteBuffers(1, &m.vbo)
		if m.indexed {
			gl.DeleteBuffers(1, &m.ebo)
		}
		m.vao = 0
	}
}
