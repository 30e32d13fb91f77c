package renderer

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestAtomicCounterDoubleUnbindIsANoOp(t *testing.T) {
	c := &AtomicCounter{}
	require.NotPanics(t, func() { c.Unbind() })
	require.NotPanics(t, func() { c.Unbind() })
}
