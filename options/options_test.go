package options

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultPopulatesEveryField(t *testing.T) {
	opts := Default()

	require.NotNil(t, opts.Title)
	require.NotNil(t, opts.Width)
	require.NotNil(t, opts.Height)
	require.NotNil(t, opts.VSync)
	require.NotNil(t, opts.Record)
	require.NotNil(t, opts.Duration)
	require.NotNil(t, opts.FPS)
	require.NotNil(t, opts.OutputFile)
	require.NotNil(t, opts.FFMPEGPath)
	require.NotNil(t, opts.NumPBOs)

	assert.Equal(t, 1280, *opts.Width)
	assert.Equal(t, 720, *opts.Height)
	assert.False(t, *opts.Record)
	assert.Equal(t, 3, *opts.NumPBOs)
}
