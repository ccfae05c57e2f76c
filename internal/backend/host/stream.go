package host

import (
	"sync"

	"github.com/fundou/cupy/internal/cuda"
)

// Handle of the device's default stream. Nonzero so callers passing the
// zero handle (meaning "default") can be told apart from it.
const defaultStreamHandle cuda.Stream = 1

// stream is an ordered work queue. Kernels submit closures; nothing runs
// until the queue is drained, which models submission-synchronous,
// execution-asynchronous device work.
type stream struct {
	mu      sync.Mutex
	pending []func()
}

func newStream() *stream {
	return &stream{}
}

func (st *stream) submit(fn func()) {
	st.mu.Lock()
	st.pending = append(st.pending, fn)
	st.mu.Unlock()
}

// drain runs everything submitted so far, in submission order. Work
// submitted while draining runs too.
func (st *stream) drain() {
	for {
		st.mu.Lock()
		if len(st.pending) == 0 {
			st.mu.Unlock()
			return
		}
		fn := st.pending[0]
		st.pending = st.pending[1:]
		st.mu.Unlock()
		fn()
	}
}

// stream resolves a handle to its queue. Only the default stream exists;
// the zero handle aliases it.
func (d *Device) stream(cuda.Stream) *stream {
	return d.defaultStream
}

// Synchronize drains the device's streams, completing all submitted work.
func (d *Device) Synchronize() {
	d.defaultStream.drain()
}

// Pending reports how many submitted operations have not completed.
func (d *Device) Pending() int {
	d.defaultStream.mu.Lock()
	defer d.defaultStream.mu.Unlock()
	return len(d.defaultStream.pending)
}
