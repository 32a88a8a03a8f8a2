// Package recycle defers the deletion of GPU objects until a GL context
// is current.
//
// Handles are queued from wherever ownership ends, which is frequently a
// property-change notification that fires outside any rendering pass.
// Deleting there would require a context switch per change, and deleting
// against the wrong context is undefined. Owners therefore queue handles
// on a Bin and the render path flushes it at the start of every program
// build and draw, the only points where the context is known current.
package recycle

import (
	"github.com/go-gl/gl/v4.1-core/gl"
)

// Bin accumulates GPU object handles pending deletion. A Bin is not safe
// for concurrent use; like every other GL-facing type in this module it
// belongs to the single goroutine that owns the context.
type Bin struct {
	programs []uint32
	shaders  []uint32
	buffers  []uint32
	textures []uint32
}

func NewBin() *Bin {
	return &Bin{}
}

// AddProgram queues a program object for deletion. Handle 0 is ignored.
func (b *Bin) AddProgram(handle uint32) {
	if handle != 0 {
		b.programs = append(b.programs, handle)
	}
}

// AddShader queues a shader object for deletion. Handle 0 is ignored.
func (b *Bin) AddShader(handle uint32) {
	if handle != 0 {
		b.shaders = append(b.shaders, handle)
	}
}

// AddBuffer queues a buffer object for deletion. Handle 0 is ignored.
func (b *Bin) AddBuffer(handle uint32) {
	if handle != 0 {
		b.buffers = append(b.buffers, handle)
	}
}

// AddTexture queues a texture object for deletion. Handle 0 is ignored.
func (b *Bin) AddTexture(handle uint32) {
	if handle != 0 {
		b.textures = append(b.textures, handle)
	}
}

// Pending returns the number of handles queued for deletion.
func (b *Bin) Pending() int {
	return len(b.programs) + len(b.shaders) + len(b.buffers) + len(b.textures)
}

// Flush deletes every queued handle and empties the bin. The GL context
// that owns the queued objects must be current.
func (b *Bin) Flush() {
	for _, h := range b.programs {
		gl.DeleteProgram(h)
	}
	b.programs = b.programs[:0]
	for _, h := range b.shaders {
		gl.DeleteShader(h)
	}
	b.shaders = b.shaders[:0]
	if len(b.buffers) > 0 {
		gl.DeleteBuffers(int32(len(b.buffers)), &b.buffers[0])
		b.buffers = b.buffers[:0]
	}
	if len(b.textures) > 0 {
		gl.DeleteTextures(int32(len(b.textures)), &b.textures[0])
		b.textures = b.textures[:0]
	}
}
