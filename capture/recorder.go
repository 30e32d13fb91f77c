// Package capture streams rendered frames into an ffmpeg encode pipeline.
// Readback goes through a ring of pixel-pack buffers so the GPU can drain
// one frame while the next is still rendering.
package capture

import (
	"fmt"
	"io"
	"log"

	gl "github.com/go-gl/gl/v4.5-core/gl"
	ffmpeg "github.com/u2takey/ffmpeg-go"

	options "github.com/fennecgl/fennec/options"
	renderer "github.com/fennecgl/fennec/renderer"
)

const bytesPerPixel = 4 // RGBA8 readback

// Frame is one rendered frame's pixel data, ready for encoding.
type Frame struct {
	Pixels []byte
	PTS    int64
}

// Recorder reads frames back from a Framebuffer and pipes them to ffmpeg
// as rawvideo. Capture must be called on the render thread with the
// context current; encoding runs on its own goroutine.
type Recorder struct {
	width  int
	height int

	pbos        []uint32
	pboIndex    int
	frames      int64
	totalFrames int64 // 0 means unbounded

	frameChan chan *Frame
	doneChan  chan error
}

// NewRecorder allocates the readback ring and starts the encoder. The GL
// context must be current on the calling thread.
func NewRecorder(opts *options.RunOptions) (*Recorder, error) {
	if *opts.NumPBOs < 2 {
		return nil, fmt.Errorf("number of PBOs must be at least 2")
	}

	rec := &Recorder{
		width:       *opts.Width,
		height:      *opts.Height,
		pbos:        make([]uint32, *opts.NumPBOs),
		totalFrames: int64(*opts.Duration * float64(*opts.FPS)),
		frameChan:   make(chan *Frame, *opts.NumPBOs),
		doneChan:    make(chan error, 1),
	}

	bufferSize := rec.width * rec.height * bytesPerPixel
	gl.GenBuffers(int32(len(rec.pbos)), &rec.pbos[0])
	for i := 0; i < len(rec.pbos); i++ {
		gl.BindBuffer(gl.PIXEL_PACK_BUFFER, rec.pbos[i])
		gl.BufferData(gl.PIXEL_PACK_BUFFER, bufferSize, nil, gl.STREAM_READ)
	}
	gl.BindBuffer(gl.PIXEL_PACK_BUFFER, 0)

	go rec.runEncoder(opts)
	return rec, nil
}

// runEncoder is the consumer: it feeds frames from frameChan into an
// ffmpeg rawvideo pipe until the channel closes.
func (rec *Recorder) runEncoder(opts *options.RunOptions) {
	inputArgs := ffmpeg.KwArgs{
		"f":         "rawvideo",
		"pix_fmt":   "rgba",
		"s":         fmt.Sprintf("%dx%d", rec.width, rec.height),
		"framerate": *opts.FPS,
	}
	outputArgs := ffmpeg.KwArgs{
		"c:v":     "libx264",
		"pix_fmt": "yuv420p",
		// GL reads back bottom-up
		"vf":  "vflip",
		"b:v": "25M",
	}

	pipeReader, pipeWriter := io.Pipe()
	ffmpegCmd := ffmpeg.Input("pipe:", inputArgs).
		Output(*opts.OutputFile, outputArgs).
		OverWriteOutput().WithInput(pipeReader).ErrorToStdOut()
	if *opts.FFMPEGPath != "" {
		ffmpegCmd = ffmpegCmd.SetFfmpegPath(*opts.FFMPEGPath)
	}

	errc := make(chan error, 1)
	go func() {
		errc <- ffmpegCmd.Run()
	}()

	for frame := range rec.frameChan {
		if _, err := pipeWriter.Write(frame.Pixels); err != nil {
			log.Printf("Error writing pixel data on frame %d: %v", frame.PTS, err)
			break
		}
	}
	pipeWriter.Close()
	rec.doneChan <- <-errc
}

// readPixelsAsync kicks off a readback into the current ring slot and
// drains the oldest slot. The first len(pbos)-1 frames returned are the
// ring warming up and contain zeroes.
func (rec *Recorder) readPixelsAsync() ([]byte, error) {
	bufferSize := rec.width * rec.height * bytesPerPixel
	nextPboIndex := (rec.pboIndex + 1) % len(rec.pbos)

	gl.ReadBuffer(gl.COLOR_ATTACHMENT0)
	gl.BindBuffer(gl.PIXEL_PACK_BUFFER, rec.pbos[rec.pboIndex])
	gl.ReadPixels(0, 0, int32(rec.width), int32(rec.height), gl.RGBA, gl.UNSIGNED_BYTE, nil)

	gl.BindBuffer(gl.PIXEL_PACK_BUFFER, rec.pbos[nextPboIndex])
	ptr := gl.MapBufferRange(gl.PIXEL_PACK_BUFFER, 0, bufferSize, gl.MAP_READ_BIT)
	if ptr == nil {
		gl.BindBuffer(gl.PIXEL_PACK_BUFFER, 0)
		return nil, fmt.Errorf("failed to map PBO %d", nextPboIndex)
	}

	pixels := make([]byte, bufferSize)
	copy(pixels, (*[1 << 30]byte)(ptr)[:bufferSize:bufferSize])
	gl.UnmapBuffer(gl.PIXEL_PACK_BUFFER)
	gl.BindBuffer(gl.PIXEL_PACK_BUFFER, 0)

	rec.pboIndex = nextPboIndex
	return pixels, nil
}

// Capture reads the framebuffer's first color attachment and queues it for
// encoding. A full encoder queue drops the frame with a warning rather
// than stalling the render loop.
func (rec *Recorder) Capture(fb *renderer.Framebuffer) error {
	if rec.totalFrames > 0 && rec.frames >= rec.totalFrames {
		if rec.frames == rec.totalFrames {
			log.Printf("Recording duration reached after %d frames", rec.frames)
			rec.frames++
		}
		return nil
	}
	fb.Bind()
	pixels, err := rec.readPixelsAsync()
	fb.Unbind()
	if err != nil {
		return err
	}

	frame := &Frame{Pixels: pixels, PTS: rec.frames}
	rec.frames++
	select {
	case rec.frameChan <- frame:
	default:
		log.Println("Warning: Frame channel is full. Dropping frame.")
	}
	return nil
}

// Close stops accepting frames, waits for the encoder to finish and
// releases the readback ring.
func (rec *Recorder) Close() error {
	close(rec.frameChan)
	err := <-rec.doneChan
	gl.DeleteBuffers(int32(len(rec.pbos)), &rec.pbos[0])
	return err
}
