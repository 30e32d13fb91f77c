package options

// RunOptions carries the runtime configuration shared between the window
// context, the renderer and the demo binary. Fields are pointers so they can
// be wired straight to flag.String/Int/etc. in cmd.
type RunOptions struct {
	Title      *string
	Width      *int
	Height     *int
	VSync      *bool
	Record     *bool    // Stream rendered frames to an encoder instead of only presenting them.
	Duration   *float64 // Seconds to record when Record is set.
	FPS        *int
	OutputFile *string
	FFMPEGPath *string
	NumPBOs    *int // Size of the pixel-readback ring used while recording.
}

func ptr[T any](v T) *T { return &v }

// Default returns a RunOptions with every field populated, suitable for
// programs and tests that do not go through flag parsing.
func Default() *RunOptions {
	return &RunOptions{
		Title:      ptr("fennec"),
		Width:      ptr(1280),
		Height:     ptr(720),
		VSync:      ptr(true),
		Record:     ptr(false),
		Duration:   ptr(10.0),
		FPS:        ptr(60),
		OutputFile: ptr("output.mp4"),
		FFMPEGPath: ptr(""),
		NumPBOs:    ptr(3),
	}
}
