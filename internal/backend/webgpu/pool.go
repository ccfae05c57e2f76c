package webgpu

import (
	"sync"

	"github.com/go-webgpu/webgpu/wgpu"
)

// Scratch buffers are generic storage: the sort backend reads, writes and
// copies through them.
const scratchUsage = wgpu.BufferUsageStorage | wgpu.BufferUsageCopySrc | wgpu.BufferUsageCopyDst

// Size thresholds for pool buckets, and the cap per bucket.
const (
	smallThreshold  = 4 * 1024    // 4KB
	mediumThreshold = 1024 * 1024 // 1MB
	maxPoolSize     = 100
)

type bucket int

const (
	smallBucket bucket = iota
	mediumBucket
	largeBucket
)

// pooledBuffer wraps a GPU buffer with the size it was created at.
type pooledBuffer struct {
	buffer *wgpu.Buffer
	size   uint64
}

// bufferPool reuses GPU buffers across scratch allocations so short-lived
// sort temporaries do not hammer the driver. Buckets are keyed by size
// class; a pooled buffer satisfies any request it is large enough for.
type bufferPool struct {
	device *wgpu.Device

	mu      sync.Mutex
	buckets [3][]*pooledBuffer

	// Statistics
	created  uint64
	returned uint64
	hits     uint64
	misses   uint64
}

func newBufferPool(device *wgpu.Device) *bufferPool {
	return &bufferPool{device: device}
}

// acquire returns a buffer of at least size bytes, reusing a pooled one
// when possible. The returned size is the buffer's actual capacity.
func (p *bufferPool) acquire(size uint64) (*wgpu.Buffer, uint64) {
	p.mu.Lock()
	defer p.mu.Unlock()

	c := categorize(size)
	for i, pb := range p.buckets[c] {
		if pb.size >= size {
			p.buckets[c] = append(p.buckets[c][:i], p.buckets[c][i+1:]...)
			p.hits++
			return pb.buffer, pb.size
		}
	}

	p.misses++
	p.created++
	buffer := p.device.CreateBuffer(&wgpu.BufferDescriptor{
		Usage: scratchUsage,
		Size:  size,
	})
	return buffer, size
}

// release returns a buffer to its bucket, or destroys it when the bucket
// is full.
func (p *bufferPool) release(buffer *wgpu.Buffer, size uint64) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.returned++
	c := categorize(size)
	if len(p.buckets[c]) >= maxPoolSize {
		buffer.Release()
		return
	}
	p.buckets[c] = append(p.buckets[c], &pooledBuffer{buffer: buffer, size: size})
}

// clear destroys every pooled buffer.
func (p *bufferPool) clear() {
	p.mu.Lock()
	defer p.mu.Unlock()

	for c := range p.buckets {
		for _, pb := range p.buckets[c] {
			pb.buffer.Release()
		}
		p.buckets[c] = p.buckets[c][:0]
	}
}

// stats returns creation/reuse counters and the pooled buffer count.
func (p *bufferPool) stats() (created, returned, hits, misses uint64, pooled int) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.created, p.returned, p.hits, p.misses,
		len(p.buckets[smallBucket]) + len(p.buckets[mediumBucket]) + len(p.buckets[largeBucket])
}

func categorize(size uint64) bucket {
	if size < smallThreshold {
		return smallBucket
	}
	if size < mediumThreshold {
		return mediumBucket
	}
	return largeBucket
}
