package renderer

import (
	"fmt"
	"log"
	"strings"

	gl "github.com/go-gl/gl/v4.5-core/gl"
)

// stagePreface is prepended to stage sources that do not declare a GLSL
// version themselves. Diagnostics are mapped back to user line numbers
// before being printed.
const stagePreface = "#version 450 core\n"

// ShaderSource is one stage of GLSL source text plus the name reported in
// compile diagnostics.
type ShaderSource struct {
	Name   string
	Source string
}

// prefaceSource returns the source actually handed to the compiler and the
// number of preface lines prepended to it.
func prefaceSource(src string) (string, int) {
	if strings.HasPrefix(strings.TrimLeft(src, " \t\n"), "#version") {
		return src, 0
	}
	return stagePreface + src, strings.Count(stagePreface, "\n")
}

func compileStage(name string, stage uint32, src string) uint32 {
	full, prefaceLines := prefaceSource(src)

	shader := gl.CreateShader(stage)
	csources, free := gl.Strs(full + "\x00")
	gl.ShaderSource(shader, 1, csources, nil)
	free()
	gl.CompileShader(shader)

	var status int32
	gl.GetShaderiv(shader, gl.COMPILE_STATUS, &status)
	if status == gl.FALSE {
		var logLength int32
		gl.GetShaderiv(shader, gl.INFO_LOG_LENGTH, &logLength)
		infoLog := strings.Repeat("\x00", int(logLength+1))
		gl.GetShaderInfoLog(shader, logLength, nil, gl.Str(infoLog))
		infoLog = strings.TrimRight(infoLog, "\x00")
		log.Printf("Shader compile error: %s", infoLog)
		panic(fmt.Sprintf("failed to compile shader (`%s`)! Errors:\n%s",
			name, formatShaderLog(src, prefaceLines, infoLog)))
	}
	return shader
}

func linkProgram(name string, stages ...uint32) uint32 {
	program := gl.CreateProgram()
	for _, s := range stages {
		gl.AttachShader(program, s)
	}
	gl.LinkProgram(program)

	var status int32
	gl.GetProgramiv(program, gl.LINK_STATUS, &status)
	if status == gl.FALSE {
		var logLength int32
		gl.GetProgramiv(program, gl.INFO_LOG_LENGTH, &logLength)
		infoLog := strings.Repeat("\x00", int(logLength+1))
		gl.GetProgramInfoLog(program, logLength, nil, gl.Str(infoLog))
		log.Printf("Program link error: %s", strings.TrimRight(infoLog, "\x00"))
		panic(fmt.Sprintf("failed to link program (`%s`)!", name))
	}
	for _, s := range stages {
		gl.DetachShader(program, s)
		gl.DeleteShader(s)
	}
	return program
}

// UniformInterface sets uniforms by name on the program bound by the
// enclosing WhileBound scope. A name that does not resolve (commonly a
// uniform the compiler optimized out) is silently ignored.
type UniformInterface struct {
	program uint32
}

func (u *UniformInterface) location(name string) int32 {
	return gl.GetUniformLocation(u.program, gl.Str(name+"\x00"))
}

func (u *UniformInterface) SetFloat(name string, val float32) {
	gl.Uniform1f(u.location(name), val)
}

func (u *UniformInterface) SetVec2(name string, val [2]float32) {
	gl.Uniform2f(u.location(name), val[0], val[1])
}

func (u *UniformInterface) SetVec3(name string, val [3]float32) {
	gl.Uniform3f(u.location(name), val[0], val[1], val[2])
}

func (u *UniformInterface) SetVec4(name string, val [4]float32) {
	gl.Uniform4f(u.location(name), val[0], val[1], val[2], val[3])
}

func (u *UniformInterface) SetUint(name string, val uint32) {
	gl.Uniform1ui(u.location(name), val)
}

func (u *UniformInterface) SetUVec2(name string, val [2]uint32) {
	gl.Uniform2ui(u.location(name), val[0], val[1])
}

func (u *UniformInterface) SetUVec3(name string, val [3]uint32) {
	gl.Uniform3ui(u.location(name), val[0], val[1], val[2])
}

func (u *UniformInterface) SetUVec4(name string, val [4]uint32) {
	gl.Uniform4ui(u.location(name), val[0], val[1], val[2], val[3])
}

func (u *UniformInterface) SetMat2(name string, val [2 * 2]float32) {
	gl.UniformMatrix2fv(u.location(name), 1, false, &val[0])
}

func (u *UniformInterface) SetMat3(name string, val [3 * 3]float32) {
	gl.UniformMatrix3fv(u.location(name), 1, false, &val[0])
}

func (u *UniformInterface) SetMat4(name string, val [4 * 4]float32) {
	gl.UniformMatrix4fv(u.location(name), 1, false, &val[0])
}

// Shader is a linked vertex+fragment program. Compile or link failure is a
// build-configuration error and panics with a source-mapped diagnostic.
type Shader struct {
	program uint32
	binds   *BindState
}

func NewShader(r *Renderer, vs, fs ShaderSource) *Shader {
	vsShader := compileStage(vs.Name, gl.VERTEX_SHADER, vs.Source)
	fsShader := compileStage(fs.Name, gl.FRAGMENT_SHADER, fs.Source)
	program := linkProgram(vs.Name+"+"+fs.Name, vsShader, fsShader)
	return &Shader{
		program: program,
		binds:   r.binds,
	}
}

func (s *Shader) bind() {
	gl.UseProgram(s.program)
	s.binds.setShaderBound(true)
}

func (s *Shader) unbind() {
	gl.UseProgram(0)
	s.binds.setShaderBound(false)
}

// WhileBound runs f with the program bound. The bind flag is restored on
// every exit path, including a panic inside f. Nesting two WhileBound
// scopes is a bug: exactly one shader may be bound at a time.
func (s *Shader) WhileBound(f func(u *UniformInterface) error) error {
	s.bind()
	defer s.unbind()
	return f(&UniformInterface{program: s.program})
}

// Destroy releases the program object. Safe to call once; the Shader is
// unusable afterwards.
func (s *Shader) Destroy() {
	if s.program != 0 {
		gl.DeleteProgram(s.program)
		s.program = 0
	}
}

// ComputeShader is a linked compute program.
type ComputeShader struct {
	program uint32
	binds   *BindState
}

func NewComputeShader(r *Renderer, cs ShaderSource) *ComputeShader {
	csShader := compileStage(cs.Name, gl.COMPUTE_SHADER, cs.Source)
	program := linkProgram(cs.Name, csShader)
	return &ComputeShader{
		program: program,
		binds:   r.binds,
	}
}

func (s *ComputeShader) bind() {
	gl.UseProgram(s.program)
	s.binds.setShaderBound(true)
}

func (s *ComputeShader) unbind() {
	gl.UseProgram(0)
	s.binds.setShaderBound(false)
}

// SetUniforms binds the program just long enough for f to set uniforms.
func (s *ComputeShader) SetUniforms(f func(u *UniformInterface)) {
	s.bind()
	defer s.unbind()
	f(&UniformInterface{program: s.program})
}

// WhileBound runs f with the program bound; see Shader.WhileBound.
func (s *ComputeShader) WhileBound(f func(u *UniformInterface) error) error {
	s.bind()
	defer s.unbind()
	return f(&UniformInterface{program: s.program})
}

// Dispatch launches the compute program with the given work group counts.
// Call Renderer.Fence before reading back anything it wrote.
func (s *ComputeShader) Dispatch(x, y, z uint32) {
	gl.DispatchCompute(x, y, z)
}

func (s *ComputeShader) Destroy() {
	if s.program != 0 {
		gl.DeleteProgram(s.program)
		s.program = 0
	}
}
