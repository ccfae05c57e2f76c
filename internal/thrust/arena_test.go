package thrust

import (
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fundou/cupy/internal/cuda"
)

// stubAllocator counts allocations and releases, handing out fake
// addresses 0x100 apart.
type stubAllocator struct {
	mu     sync.Mutex
	allocs int
	frees  int
	next   uintptr

	err error // when set, Allocate fails with it
}

func (s *stubAllocator) Allocate(size int) (*cuda.Buffer, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return nil, s.err
	}
	s.allocs++
	s.next += 0x100
	ptr := cuda.DevicePtr(s.next)
	return cuda.NewBuffer(ptr, size, func() {
		s.mu.Lock()
		s.frees++
		s.mu.Unlock()
	}), nil
}

func (s *stubAllocator) counts() (allocs, frees int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.allocs, s.frees
}

func TestArenaMallocZeroSize(t *testing.T) {
	alloc := &stubAllocator{}
	ar := newArena(alloc)

	ptr, err := ar.Malloc(0)
	require.NoError(t, err)
	assert.Equal(t, cuda.Null, ptr, "zero-size allocation should return the null sentinel")

	allocs, _ := alloc.counts()
	assert.Equal(t, 0, allocs, "zero-size allocation must not consult the allocator")
	assert.Equal(t, 0, ar.liveCount())
}

func TestArenaMallocFree(t *testing.T) {
	alloc := &stubAllocator{}
	ar := newArena(alloc)

	ptr, err := ar.Malloc(256)
	require.NoError(t, err)
	require.NotEqual(t, cuda.Null, ptr)
	assert.Equal(t, 1, ar.liveCount())

	ar.Free(ptr)
	assert.Equal(t, 0, ar.liveCount())

	allocs, frees := alloc.counts()
	assert.Equal(t, 1, allocs)
	assert.Equal(t, 1, frees)
}

func TestArenaFreeUnknownAddress(t *testing.T) {
	alloc := &stubAllocator{}
	ar := newArena(alloc)

	// Neither may panic or touch the allocator.
	ar.Free(cuda.Null)
	ar.Free(cuda.DevicePtr(0xdead))

	allocs, frees := alloc.counts()
	assert.Equal(t, 0, allocs)
	assert.Equal(t, 0, frees)
}

func TestArenaDoubleFree(t *testing.T) {
	alloc := &stubAllocator{}
	ar := newArena(alloc)

	ptr, err := ar.Malloc(64)
	require.NoError(t, err)

	ar.Free(ptr)
	ar.Free(ptr) // already released, must be a no-op

	_, frees := alloc.counts()
	assert.Equal(t, 1, frees)
}

func TestArenaReleaseBackstop(t *testing.T) {
	alloc := &stubAllocator{}
	ar := newArena(alloc)

	// Backend allocates twice, frees once.
	a, err := ar.Malloc(128)
	require.NoError(t, err)
	_, err = ar.Malloc(128)
	require.NoError(t, err)
	ar.Free(a)

	allocs, frees := alloc.counts()
	require.Equal(t, 2, allocs)
	require.Equal(t, 1, frees)

	// Teardown releases exactly the one residual allocation.
	ar.release()
	_, frees = alloc.counts()
	assert.Equal(t, 2, frees)
	assert.Equal(t, 0, ar.liveCount())

	// A second teardown finds nothing to do.
	ar.release()
	_, frees = alloc.counts()
	assert.Equal(t, 2, frees)
}

func TestArenaAllocatorErrorPropagates(t *testing.T) {
	boom := errors.New("device memory exhausted")
	alloc := &stubAllocator{err: boom}
	ar := newArena(alloc)

	_, err := ar.Malloc(1024)
	assert.ErrorIs(t, err, boom, "allocator failures must propagate unchanged")
	assert.Equal(t, 0, ar.liveCount())
}
