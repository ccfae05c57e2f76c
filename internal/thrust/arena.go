package thrust

import (
	"sync"

	"github.com/fundou/cupy/internal/cuda"
)

// arena is the per-call scratch allocator bridge. It satisfies backend
// Malloc/Free callbacks out of the device allocator and tracks every
// address it hands out, so that whatever the backend leaves unfreed is
// released when the owning call returns.
//
// One arena belongs to exactly one Sort/Lexsort/Argsort call and is never
// reused. Invariant: every address ever returned by Malloc is either in
// live or was removed by a matching Free.
type arena struct {
	alloc cuda.Allocator

	mu   sync.Mutex
	live map[cuda.DevicePtr]*cuda.Buffer
}

var _ ScratchAllocator = (*arena)(nil)

func newArena(alloc cuda.Allocator) *arena {
	return &arena{
		alloc: alloc,
		live:  make(map[cuda.DevicePtr]*cuda.Buffer),
	}
}

// Malloc implements ScratchAllocator. Zero-size requests return cuda.Null
// without touching the device allocator, keeping the live map free of
// degenerate entries. Allocator errors propagate unchanged.
func (a *arena) Malloc(size int) (cuda.DevicePtr, error) {
	if size == 0 {
		return cuda.Null, nil
	}
	buf, err := a.alloc.Allocate(size)
	if err != nil {
		return cuda.Null, err
	}
	a.mu.Lock()
	a.live[buf.Ptr()] = buf
	a.mu.Unlock()
	return buf.Ptr(), nil
}

// Free implements ScratchAllocator. Unknown addresses are treated as
// already released: a zero-size allocation never entered the map yet the
// backend may still "free" it.
func (a *arena) Free(ptr cuda.DevicePtr) {
	if ptr == cuda.Null {
		return
	}
	a.mu.Lock()
	buf, ok := a.live[ptr]
	if ok {
		delete(a.live, ptr)
	}
	a.mu.Unlock()
	if ok {
		buf.Free()
	}
}

// release frees every allocation the backend left live. Called on every
// exit path of the owning dispatch call, including error returns; this is
// the leak backstop.
func (a *arena) release() {
	a.mu.Lock()
	bufs := make([]*cuda.Buffer, 0, len(a.live))
	for ptr, buf := range a.live {
		bufs = append(bufs, buf)
		delete(a.live, ptr)
	}
	a.mu.Unlock()
	for _, buf := range bufs {
		buf.Free()
	}
}

// liveCount reports how many scratch buffers are still tracked.
func (a *arena) liveCount() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return len(a.live)
}
