package renderer

import (
	"fmt"
	"log"
	"unsafe"

	gl "github.com/go-gl/gl/v4.5-core/gl"
)

// Buffer is a fixed-size shader storage buffer holding count elements of T.
// The GPU store is immutable in size; writes past the allocated length are a
// programming error and panic before mutating anything.
type Buffer[T any] struct {
	buf      uint32
	size     int // bytes
	bound    bool
	boundLoc uint32
}

// ElementWrite is one scattered element write for Buffer.WriteEach.
type ElementWrite[T any] struct {
	Index int
	Value T
}

func elemSize[T any]() int {
	var zero T
	return int(unsafe.Sizeof(zero))
}

// NewBuffer allocates a zero-filled storage buffer for count elements of T.
func NewBuffer[T any](r *Renderer, count int) *Buffer[T] {
	size := elemSize[T]() * count
	log.Printf("Allocating buffer with size: %db/%dkb/%dmb", size, size/1024, size/1024/1024)

	var buf uint32
	gl.GenBuffers(1, &buf)
	gl.BindBuffer(gl.SHADER_STORAGE_BUFFER, buf)
	gl.BufferStorage(gl.SHADER_STORAGE_BUFFER, size, nil,
		gl.DYNAMIC_STORAGE_BIT|gl.MAP_WRITE_BIT)
	zero := make([]byte, size)
	gl.BufferSubData(gl.SHADER_STORAGE_BUFFER, 0, size, gl.Ptr(zero))
	gl.BindBuffer(gl.SHADER_STORAGE_BUFFER, 0)
	glError("buffer.NewBuffer")

	return &Buffer[T]{buf: buf, size: size}
}

// checkBounds panics when a write or read of n bytes at byte offset off
// would run past the allocated store.
func (b *Buffer[T]) checkBounds(off, n int) {
	if off < 0 || off+n > b.size {
		panic(fmt.Sprintf("cannot access past buffer bounds! (offset %d + %d bytes > %d bytes)",
			off, n, b.size))
	}
}

// Write uploads data starting at the given element offset.
func (b *Buffer[T]) Write(offset int, data []T) {
	es := elemSize[T]()
	b.checkBounds(offset*es, len(data)*es)
	if len(data) == 0 {
		return
	}
	gl.BindBuffer(gl.SHADER_STORAGE_BUFFER, b.buf)
	gl.BufferSubData(gl.SHADER_STORAGE_BUFFER, offset*es, len(data)*es,
		unsafe.Pointer(&data[0]))
	gl.BindBuffer(gl.SHADER_STORAGE_BUFFER, 0)
}

// WriteEach uploads scattered single-element writes under one bind.
func (b *Buffer[T]) WriteEach(writes []ElementWrite[T]) {
	es := elemSize[T]()
	for _, w := range writes {
		b.checkBounds(w.Index*es, es)
	}
	gl.BindBuffer(gl.SHADER_STORAGE_BUFFER, b.buf)
	for _, w := range writes {
		v := w.Value
		gl.BufferSubData(gl.SHADER_STORAGE_BUFFER, w.Index*es, es,
			unsafe.Pointer(&v))
	}
	gl.BindBuffer(gl.SHADER_STORAGE_BUFFER, 0)
}

// Read copies len(out) elements starting at the given element offset back
// from the GPU store. Call Renderer.Fence first if another pass wrote the
// buffer.
func (b *Buffer[T]) Read(offset int, out []T) {
	es := elemSize[T]()
	b.checkBounds(offset*es, len(out)*es)
	if len(out) == 0 {
		return
	}
	gl.BindBuffer(gl.SHADER_STORAGE_BUFFER, b.buf)
	gl.GetBufferSubData(gl.SHADER_STORAGE_BUFFER, offset*es, len(out)*es,
		unsafe.Pointer(&out[0]))
	gl.BindBuffer(gl.SHADER_STORAGE_BUFFER, 0)
}

// Clear zeroes the whole store.
func (b *Buffer[T]) Clear() {
	zero := make([]byte, b.size)
	gl.BindBuffer(gl.SHADER_STORAGE_BUFFER, b.buf)
	gl.BufferSubData(gl.SHADER_STORAGE_BUFFER, 0, b.size, gl.Ptr(zero))
	gl.BindBuffer(gl.SHADER_STORAGE_BUFFER, 0)
}

// Size returns the allocated length in bytes.
func (b *Buffer[T]) Size() int {
	return b.size
}

// Bind attaches the buffer to a storage binding slot. It stays attached
// until Unbind.
func (b *Buffer[T]) Bind(location uint32) {
	b.bound = true
	b.boundLoc = location
	gl.BindBufferBase(gl.SHADER_STORAGE_BUFFER, location, b.buf)
}

// Unbind detaches the buffer from its slot. Unbinding an unbound buffer is
// a recoverable no-op.
func (b *Buffer[T]) Unbind() {
	if !b.bound {
		log.Printf("Attempting to unbind unbound buffer!")
		return
	}
	gl.BindBufferBase(gl.SHADER_STORAGE_BUFFER, b.boundLoc, 0)
	b.bound = false
}

// WhileBound attaches the buffer to a slot, runs f and detaches it again on
// every exit path.
func (b *Buffer[T]) WhileBound(location uint32, f func() error) error {
	b.Bind(location)
	defer b.Unbind()
	return f()
}

// Destroy releases the GPU buffer object.
func (b *Buffer[T]) Destroy() {
	if b.buf != 0 {
		gl.DeleteBuffers(1, &b.buf)
		b.buf = 0
	}
}
