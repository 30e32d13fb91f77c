package renderer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// The tests here construct buffers directly instead of through NewBuffer:
// everything under test is gated before the first GL call, so no context is
// needed.

func TestBufferWritePastBoundsPanics(t *testing.T) {
	b := &Buffer[float32]{size: 16 * 4}

	require.Panics(t, func() { b.Write(0, make([]float32, 17)) })
	require.Panics(t, func() { b.Write(16, make([]float32, 1)) })
	require.Panics(t, func() { b.Write(1, make([]float32, 16)) })
	require.Panics(t, func() { b.Write(-1, nil) })
}

func TestBufferWriteBoundaryIsAccepted(t *testing.T) {
	b := &Buffer[float32]{size: 16 * 4}

	// Zero-length writes return before touching the GPU, so an exact-fit
	// offset check can run without a context.
	require.NotPanics(t, func() { b.Write(16, nil) })
	require.NotPanics(t, func() { b.Write(0, nil) })
}

func TestBufferWriteEachPastBoundsPanics(t *testing.T) {
	b := &Buffer[uint64]{size: 8 * 8}

	require.Panics(t, func() {
		b.WriteEach([]ElementWrite[uint64]{{Index: 8, Value: 1}})
	})
	require.NotPanics(t, func() { b.WriteEach(nil) })
}

func TestBufferReadPastBoundsPanics(t *testing.T) {
	b := &Buffer[uint32]{size: 4 * 4}

	require.Panics(t, func() { b.Read(0, make([]uint32, 5)) })
	require.NotPanics(t, func() { b.Read(4, nil) })
}

func TestBufferSizeIsBytes(t *testing.T) {
	b := &Buffer[uint64]{size: 8 * 32}
	assert.Equal(t, 256, b.Size())
}

func TestBufferDoubleUnbindIsANoOp(t *testing.T) {
	b := &Buffer[float32]{size: 4}
	require.NotPanics(t, func() { b.Unbind() })
	require.NotPanics(t, func() { b.Unbind() })
	assert.False(t, b.bound)
}

func TestElemSize(t *testing.T) {
	assert.Equal(t, 4, elemSize[float32]())
	assert.Equal(t, 8, elemSize[uint64]())
	type particle struct {
		Pos [4]float32
		Vel [4]float32
	}
	assert.Equal(t, 32, elemSize[particle]())
}
