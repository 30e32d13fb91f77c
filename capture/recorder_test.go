package capture

import (
	"testing"

	"github.com/stretchr/testify/require"

	options "github.com/fennecgl/fennec/options"
)

func TestNewRecorderRejectsTooSmallRing(t *testing.T) {
	opts := options.Default()
	*opts.NumPBOs = 1

	_, err := NewRecorder(opts)
	require.Error(t, err)
	require.Contains(t, err.Error(), "at least 2")
}
