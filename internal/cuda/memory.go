// Package cuda defines the device-side collaborator interfaces the sort
// dispatch layer is built against: device memory allocation, stream handles,
// and capability queries. Concrete implementations live under
// internal/backend (an in-process simulated device and a WebGPU-backed one).
package cuda

import (
	"errors"
	"sync"
)

// ErrOutOfMemory is returned by allocators when a request cannot be
// satisfied. The dispatch layer never retries or translates it.
var ErrOutOfMemory = errors.New("cuda: out of device memory")

// DevicePtr is an opaque device address. The zero value is the null
// pointer and never refers to a live allocation.
type DevicePtr uintptr

// Null is the sentinel address returned for zero-size allocations.
const Null DevicePtr = 0

// Buffer is one owned device allocation: an address, its size, and the
// release hook that returns the memory to its allocator's accounting.
type Buffer struct {
	ptr  DevicePtr
	size int

	once sync.Once
	free func()
}

// NewBuffer wraps an allocation handed out by an Allocator. free may be
// nil for memory the allocator does not reclaim.
func NewBuffer(ptr DevicePtr, size int, free func()) *Buffer {
	return &Buffer{ptr: ptr, size: size, free: free}
}

// Ptr returns the starting device address of the allocation.
func (b *Buffer) Ptr() DevicePtr { return b.ptr }

// Size returns the allocation size in bytes.
func (b *Buffer) Size() int { return b.size }

// Free returns the memory to the owning allocator. Safe to call more
// than once; only the first call releases.
func (b *Buffer) Free() {
	b.once.Do(func() {
		if b.free != nil {
			b.free()
		}
	})
}

// Allocator hands out device memory. Implementations must be safe for
// concurrent use; the dispatch layer shares one allocator across calls.
type Allocator interface {
	// Allocate returns an owned buffer of at least size bytes, or an
	// error (typically wrapping ErrOutOfMemory) when it cannot.
	Allocate(size int) (*Buffer, error)
}
