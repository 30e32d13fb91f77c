package main

import (
	"flag"
	"log"
	"runtime"

	math32 "github.com/chewxy/math32"

	fennec "github.com/fennecgl/fennec"
	capture "github.com/fennecgl/fennec/capture"
	options "github.com/fennecgl/fennec/options"
	renderer "github.com/fennecgl/fennec/renderer"
)

const demoVS = `
layout (location = 0) in vec3 in_pos;
layout (location = 1) in vec3 in_color;
layout (location = 2) in vec2 in_uv;
out vec3 frag_color;
out vec2 frag_uv;
void main() {
    frag_color = in_color;
    frag_uv = in_uv;
    gl_Position = vec4(in_pos, 1.0);
}
`

const demoFS = `
in vec3 frag_color;
in vec2 frag_uv;
out vec4 fragColor;
uniform float u_time;
uniform vec3 u_pulse;
void main() {
    vec3 tint = vec3(frag_uv, 0.5 + 0.5 * sin(u_time));
    fragColor = vec4(frag_color * tint * u_pulse, 1.0);
}
`

type demo struct {
	quad        *renderer.Mesh
	disc        *renderer.Mesh
	shader      *renderer.Shader
	framebuffer *renderer.Framebuffer
	recorder    *capture.Recorder
	pulse       float32
}

func newDemo(ctx *fennec.Context, opts *options.RunOptions) *demo {
	ctx.SetWindowTitle("fennec demo")
	d := &demo{
		quad:        renderer.NewQuad(ctx.Renderer),
		disc:        renderer.NewCircle(ctx.Renderer, 64),
		shader:      renderer.NewShader(ctx.Renderer, renderer.ShaderSource{Name: "demo_vs", Source: demoVS}, renderer.ShaderSource{Name: "demo_fs", Source: demoFS}),
		framebuffer: renderer.NewFramebuffer(ctx.Renderer, 1),
	}
	if *opts.Record {
		rec, err := capture.NewRecorder(opts)
		if err != nil {
			log.Fatalf("Failed to create recorder: %v", err)
		}
		d.recorder = rec
	}
	return d
}

func (d *demo) Event(ev fennec.KeyEvent) bool { return false }

func (d *demo) Update(ctx *fennec.Context) {
	d.pulse = math32.Abs(math32.Sin(float32(ctx.Time())))
}

func (d *demo) Render(ctx *fennec.Context) {
	err := d.framebuffer.WhileBound(func() error {
		d.framebuffer.Clear()
		return d.shader.WhileBound(func(u *renderer.UniformInterface) error {
			u.SetFloat("u_time", float32(ctx.Time()))
			u.SetVec3("u_pulse", [3]float32{d.pulse, d.pulse, d.pulse})
			if err := d.quad.Draw(); err != nil {
				return err
			}
			return d.disc.Draw()
		})
	})
	if err != nil {
		log.Printf("Render pass failed: %v", err)
		return
	}

	// Composite to the screen with the built-in fallback blit.
	if err := d.framebuffer.Draw(); err != nil {
		log.Printf("Composite failed: %v", err)
	}

	if d.recorder != nil {
		if err := d.recorder.Capture(d.framebuffer); err != nil {
			log.Printf("Capture failed: %v", err)
		}
	}
}

func (d *demo) OnResize(width, height int) {
	d.framebuffer.Resize(width, height)
}

func (d *demo) Shutdown(ctx *fennec.Context) {
	if d.recorder != nil {
		if err := d.recorder.Close(); err != nil {
			log.Printf("Encoder finished with error: %v", err)
		}
	}
	d.quad.Destroy()
	d.disc.Destroy()
	d.shader.Destroy()
	d.framebuffer.Destroy()
}

func init() {
	runtime.LockOSThread()
}

func main() {
	opts := &options.RunOptions{
		Title:      flag.String("title", "fennec", "Window title"),
		Width:      flag.Int("width", 1280, "Width of the window"),
		Height:     flag.Int("height", 720, "Height of the window"),
		VSync:      flag.Bool("vsync", true, "Enable vertical sync"),
		Record:     flag.Bool("record", false, "Enable recording mode"),
		Duration:   flag.Float64("duration", 10.0, "Duration to record in seconds"),
		FPS:        flag.Int("fps", 60, "Frames per second for recording"),
		OutputFile: flag.String("output", "output.mp4", "Output file name for recording"),
		FFMPEGPath: flag.String("ffmpeg", "", "Path to ffmpeg executable"),
		NumPBOs:    flag.Int("pbos", 3, "Number of pixel readback buffers"),
	}
	flag.Parse()

	err := fennec.Run(opts, func(ctx *fennec.Context) fennec.App {
		return newDemo(ctx, opts)
	})
	if err != nil {
		log.Fatalf("Failed to run: %v", err)
	}
}
