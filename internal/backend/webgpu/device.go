// Package webgpu adapts a WebGPU device to the cuda.Device surface so GPU
// sort backends can draw scratch memory from real device buffers. Uses
// go-webgpu (github.com/go-webgpu/webgpu) for zero-CGO WebGPU bindings.
//
// WebGPU has no notion of raw device addresses, so allocations are handed
// out as synthetic handles; backends resolve a handle to its wgpu.Buffer
// through Lookup.
package webgpu

import (
	"fmt"
	"sync"

	"github.com/go-webgpu/webgpu/wgpu"

	"github.com/fundou/cupy/internal/cuda"
)

// Reported capability defaults. WebGPU does not expose CUDA-style version
// numbers, so these sit exactly at the float16 gate minimum; override
// them when the adapter is known to lack (or exceed) half support.
const (
	defaultComputeCapability = 53
	defaultRuntimeVersion    = 9020
)

// Base value for synthetic buffer handles. Nonzero so cuda.Null never
// collides with a live handle.
const baseHandle = 0x10000

// Option configures a Device.
type Option func(*Device)

// WithComputeCapability sets the reported compute capability.
func WithComputeCapability(cc int) Option {
	return func(d *Device) { d.computeCap = cc }
}

// WithRuntimeVersion sets the reported runtime version.
func WithRuntimeVersion(v int) Option {
	return func(d *Device) { d.runtimeVer = v }
}

// Device implements cuda.Device over a wgpu.Device. Scratch allocations
// come from a size-bucketed buffer pool; each live allocation is mapped
// from its synthetic handle to the backing wgpu.Buffer.
type Device struct {
	device *wgpu.Device
	pool   *bufferPool

	computeCap int
	runtimeVer int

	mu   sync.Mutex
	next uintptr
	live map[cuda.DevicePtr]*liveBuffer
}

type liveBuffer struct {
	buffer *wgpu.Buffer
	// capacity is the pooled buffer's real size, which may exceed the
	// requested size; the pool needs it back on release.
	capacity uint64
}

var (
	_ cuda.Device    = (*Device)(nil)
	_ cuda.Allocator = (*Device)(nil)
)

// NewDevice wraps an already-acquired wgpu.Device.
func NewDevice(device *wgpu.Device, opts ...Option) (*Device, error) {
	if device == nil {
		return nil, fmt.Errorf("webgpu: nil device")
	}
	d := &Device{
		device:     device,
		pool:       newBufferPool(device),
		computeCap: defaultComputeCapability,
		runtimeVer: defaultRuntimeVersion,
		next:       baseHandle,
		live:       make(map[cuda.DevicePtr]*liveBuffer),
	}
	for _, opt := range opts {
		opt(d)
	}
	return d, nil
}

// ComputeCapability implements cuda.Device.
func (d *Device) ComputeCapability() int { return d.computeCap }

// RuntimeVersion implements cuda.Device.
func (d *Device) RuntimeVersion() int { return d.runtimeVer }

// CurrentStream implements cuda.Device. All work goes through the
// device's single queue, exposed as one stream handle.
func (d *Device) CurrentStream() cuda.Stream { return 1 }

// Allocator implements cuda.Device.
func (d *Device) Allocator() cuda.Allocator { return d }

// Allocate implements cuda.Allocator: a pooled wgpu buffer behind a fresh
// synthetic handle. Handles are never reissued.
func (d *Device) Allocate(size int) (*cuda.Buffer, error) {
	if size < 0 {
		return nil, fmt.Errorf("webgpu: negative allocation size %d", size)
	}
	buffer, capacity := d.pool.acquire(uint64(size))

	d.mu.Lock()
	ptr := cuda.DevicePtr(d.next)
	// Zero-size allocations still get distinct handles.
	d.next += uintptr(max(capacity, 1))
	d.live[ptr] = &liveBuffer{buffer: buffer, capacity: capacity}
	d.mu.Unlock()

	return cuda.NewBuffer(ptr, size, func() { d.release(ptr) }), nil
}

func (d *Device) release(ptr cuda.DevicePtr) {
	d.mu.Lock()
	lb, ok := d.live[ptr]
	if ok {
		delete(d.live, ptr)
	}
	d.mu.Unlock()
	if ok {
		d.pool.release(lb.buffer, lb.capacity)
	}
}

// Lookup resolves a handle returned by Allocate to its wgpu.Buffer.
func (d *Device) Lookup(ptr cuda.DevicePtr) (*wgpu.Buffer, bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	lb, ok := d.live[ptr]
	if !ok {
		return nil, false
	}
	return lb.buffer, true
}

// PoolStats returns the scratch pool's creation/reuse counters.
func (d *Device) PoolStats() (created, returned, hits, misses uint64, pooled int) {
	return d.pool.stats()
}

// Release destroys all pooled buffers. Live allocations stay valid until
// their own Free.
func (d *Device) Release() {
	d.pool.clear()
}
