// Package cuda provides the public device-side collaborator surface: the
// interfaces the sort dispatch layer consumes for memory allocation,
// stream handles and capability queries.
//
// Two implementations ship with the module:
//   - backend/host: in-process simulated device (testing, CPU fallback)
//   - backend/webgpu: real GPU buffers via go-webgpu
package cuda

import (
	"github.com/fundou/cupy/internal/cuda"
)

// DevicePtr is an opaque device address. The zero value is null.
type DevicePtr = cuda.DevicePtr

// Null is the sentinel address for zero-size allocations.
const Null DevicePtr = cuda.Null

// Stream is an opaque handle to an ordered sequence of device operations.
type Stream = cuda.Stream

// Buffer is one owned device allocation.
type Buffer = cuda.Buffer

// Allocator hands out device memory.
type Allocator = cuda.Allocator

// Device is the capability surface the dispatch layer needs from the
// active device.
type Device = cuda.Device

// ErrOutOfMemory is returned by allocators when a request cannot be
// satisfied.
var ErrOutOfMemory = cuda.ErrOutOfMemory

// NewBuffer wraps an allocation handed out by an Allocator; free runs
// once, when the buffer is released.
func NewBuffer(ptr DevicePtr, size int, free func()) *Buffer {
	return cuda.NewBuffer(ptr, size, free)
}
