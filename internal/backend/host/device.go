// Package host provides an in-process simulated device: map-backed device
// memory, ordered stream queues with explicit synchronization, and a
// reference kernel set for every supported element kind. It exists so the
// dispatch layer can run end to end without GPU hardware, and doubles as
// the CPU fallback.
package host

import (
	"fmt"
	"sync"

	"github.com/fundou/cupy/internal/cuda"
)

// Defaults chosen so the float16 path is enabled out of the box.
const (
	defaultComputeCapability = 70
	defaultRuntimeVersion    = 11000
)

// First address handed out. Nonzero so cuda.Null never collides with a
// live allocation.
const baseAddress = 0x1000

// Option configures a simulated device.
type Option func(*Device)

// WithComputeCapability sets the reported compute capability
// (major*10 + minor).
func WithComputeCapability(cc int) Option {
	return func(d *Device) { d.computeCap = cc }
}

// WithRuntimeVersion sets the reported toolkit/runtime version.
func WithRuntimeVersion(v int) Option {
	return func(d *Device) { d.runtimeVer = v }
}

// WithMemoryLimit caps total live device memory in bytes. Zero means
// unlimited.
func WithMemoryLimit(bytes int) Option {
	return func(d *Device) { d.limit = bytes }
}

// Device simulates one device. Memory is a map from base address to
// backing storage; streams are ordered queues drained by Synchronize.
// All methods are safe for concurrent use.
type Device struct {
	computeCap int
	runtimeVer int
	limit      int

	mu   sync.Mutex
	mem  map[cuda.DevicePtr][]byte
	next uintptr
	used int

	// Allocation statistics
	allocCount uint64
	freeCount  uint64

	defaultStream *stream
}

var (
	_ cuda.Device    = (*Device)(nil)
	_ cuda.Allocator = (*Device)(nil)
)

// NewDevice creates a simulated device.
func NewDevice(opts ...Option) *Device {
	d := &Device{
		computeCap:    defaultComputeCapability,
		runtimeVer:    defaultRuntimeVersion,
		mem:           make(map[cuda.DevicePtr][]byte),
		next:          baseAddress,
		defaultStream: newStream(),
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// ComputeCapability implements cuda.Device.
func (d *Device) ComputeCapability() int { return d.computeCap }

// RuntimeVersion implements cuda.Device.
func (d *Device) RuntimeVersion() int { return d.runtimeVer }

// CurrentStream implements cuda.Device. The simulated device has a single
// default stream.
func (d *Device) CurrentStream() cuda.Stream { return defaultStreamHandle }

// Allocator implements cuda.Device.
func (d *Device) Allocator() cuda.Allocator { return d }

// Allocate implements cuda.Allocator. Addresses are unique for the life
// of the device; freed addresses are never reissued, so a stale pointer
// can be diagnosed instead of aliasing a newer allocation.
func (d *Device) Allocate(size int) (*cuda.Buffer, error) {
	if size < 0 {
		return nil, fmt.Errorf("host: negative allocation size %d", size)
	}
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.limit > 0 && d.used+size > d.limit {
		return nil, fmt.Errorf("%w: %d bytes requested, %d of %d in use",
			cuda.ErrOutOfMemory, size, d.used, d.limit)
	}

	ptr := cuda.DevicePtr(d.next)
	// Zero-size allocations still get distinct addresses.
	d.next += uintptr(roundUp(max(size, 1), 64))
	d.mem[ptr] = make([]byte, size)
	d.used += size
	d.allocCount++

	return cuda.NewBuffer(ptr, size, func() { d.release(ptr) }), nil
}

func (d *Device) release(ptr cuda.DevicePtr) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if b, ok := d.mem[ptr]; ok {
		d.used -= len(b)
		d.freeCount++
		delete(d.mem, ptr)
	}
}

// Stats returns allocation counters and live byte count.
func (d *Device) Stats() (allocs, frees uint64, liveBytes int) {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.allocCount, d.freeCount, d.used
}

// Write copies p into device memory starting at ptr.
func (d *Device) Write(ptr cuda.DevicePtr, p []byte) error {
	b, err := d.slice(ptr, len(p))
	if err != nil {
		return err
	}
	copy(b, p)
	return nil
}

// Read copies len(p) bytes of device memory starting at ptr into p.
func (d *Device) Read(ptr cuda.DevicePtr, p []byte) error {
	b, err := d.slice(ptr, len(p))
	if err != nil {
		return err
	}
	copy(p, b)
	return nil
}

// slice returns the backing storage for [ptr, ptr+n). Interior pointers
// are resolved by scanning, which is fine at simulation scale.
func (d *Device) slice(ptr cuda.DevicePtr, n int) ([]byte, error) {
	if ptr == cuda.Null {
		return nil, fmt.Errorf("host: null device pointer")
	}
	d.mu.Lock()
	defer d.mu.Unlock()

	if b, ok := d.mem[ptr]; ok && n <= len(b) {
		return b[:n], nil
	}
	for base, b := range d.mem {
		if ptr >= base && uintptr(ptr)+uintptr(n) <= uintptr(base)+uintptr(len(b)) {
			off := int(ptr - base)
			return b[off : off+n], nil
		}
	}
	return nil, fmt.Errorf("host: no allocation covers [%#x, %#x)", uintptr(ptr), uintptr(ptr)+uintptr(n))
}

func roundUp(n, multiple int) int {
	return (n + multiple - 1) / multiple * multiple
}
