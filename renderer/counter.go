package renderer

import (
	"log"
	"unsafe"

	gl "github.com/go-gl/gl/v4.5-core/gl"
)

// AtomicCounter wraps a single GL atomic counter buffer, for compute
// shaders that count across invocations.
type AtomicCounter struct {
	buf      uint32
	bound    bool
	boundLoc uint32
}

func NewAtomicCounter(r *Renderer) *AtomicCounter {
	var buf uint32
	gl.GenBuffers(1, &buf)
	gl.BindBuffer(gl.ATOMIC_COUNTER_BUFFER, buf)
	var zero uint32
	gl.BufferData(gl.ATOMIC_COUNTER_BUFFER, 4, unsafe.Pointer(&zero), gl.DYNAMIC_DRAW)
	gl.BindBuffer(gl.ATOMIC_COUNTER_BUFFER, 0)
	glError("counter.NewAtomicCounter")
	return &AtomicCounter{buf: buf}
}

// Reset sets the counter to value.
func (c *AtomicCounter) Reset(value uint32) {
	gl.BindBuffer(gl.ATOMIC_COUNTER_BUFFER, c.buf)
	gl.BufferData(gl.ATOMIC_COUNTER_BUFFER, 4, unsafe.Pointer(&value), gl.DYNAMIC_DRAW)
	gl.BindBuffer(gl.ATOMIC_COUNTER_BUFFER, 0)
}

// Read returns the current counter value. Call Renderer.Fence first if a
// dispatch incremented it.
func (c *AtomicCounter) Read() uint32 {
	var value uint32
	gl.BindBuffer(gl.ATOMIC_COUNTER_BUFFER, c.buf)
	gl.GetBufferSubData(gl.ATOMIC_COUNTER_BUFFER, 0, 4, unsafe.Pointer(&value))
	gl.BindBuffer(gl.ATOMIC_COUNTER_BUFFER, 0)
	return value
}

func (c *AtomicCounter) Bind(location uint32) {
	c.bound = true
	c.boundLoc = location
	gl.BindBufferBase(gl.ATOMIC_COUNTER_BUFFER, location, c.buf)
}

// Unbind detaches the counter from its slot; unbinding an unbound counter
// is a recoverable no-op.
func (c *AtomicCounter) Unbind() {
	if !c.bound {
		log.Printf("Attempting to unbind unbound atomic counter!")
		return
	}
	gl.BindBufferBase(gl.ATOMIC_COUNTER_BUFFER, c.boundLoc, 0)
	c.bound = false
}

func (c *AtomicCounter) Destroy() {
	if c.buf != 0 {
		gl.DeleteBuffers(1, &c.buf)
		c.buf = 0
	}
}
