package thrust

import "github.com/fundou/cupy/internal/cuda"

// ScratchAllocator is the contract a backend kernel sees for temporary
// device memory. One instance is bound to one top-level call; the kernel
// never learns where the memory actually comes from.
type ScratchAllocator interface {
	// Malloc returns the address of a fresh scratch buffer of at least
	// size bytes. A zero size yields cuda.Null without consulting the
	// underlying allocator. Allocation failures propagate unchanged.
	Malloc(size int) (cuda.DevicePtr, error)

	// Free releases the scratch buffer starting at ptr. Freeing
	// cuda.Null or an address this allocator never handed out is a
	// no-op, mirroring zero-size allocations that were never recorded.
	Free(ptr cuda.DevicePtr)
}

// Kernel call signatures. Each value in a kernel table is one backend
// instantiation, specialized to a single element kind; the dispatcher
// threads through the stream handle and the per-call scratch allocator.
type (
	// SortFunc sorts shape-described data along the last axis in place.
	// keys receives the backend's 64-bit segment/permutation bookkeeping.
	SortFunc func(data, keys cuda.DevicePtr, shape []int, stream cuda.Stream, scratch ScratchAllocator) error

	// LexsortFunc writes to idx the permutation of n records ordered by
	// k interleaved key rows at keys, row 0 being the primary key.
	LexsortFunc func(idx, keys cuda.DevicePtr, k, n int, stream cuda.Stream, scratch ScratchAllocator) error

	// ArgsortFunc writes to idx the permutation that sorts data along
	// the last axis, using keys as backend scratch space.
	ArgsortFunc func(idx, data, keys cuda.DevicePtr, shape []int, stream cuda.Stream, scratch ScratchAllocator) error
)

// Kernels is a backend's dispatch table: one instantiation per element
// kind per operation, indexed by DataType. A nil entry means the backend
// has no instantiation for that kind.
type Kernels struct {
	Sort    [NumDataTypes]SortFunc
	Lexsort [NumDataTypes]LexsortFunc
	Argsort [NumDataTypes]ArgsortFunc
}

// Backend is the device-resident sorting capability behind the
// dispatchers. The kernel table is fixed for the backend's lifetime.
type Backend interface {
	// Kernels returns the backend's dispatch table.
	Kernels() *Kernels

	// BuildVersion returns the backend's build-time version as a single
	// integer. Idempotent, no side effects.
	BuildVersion() int
}
