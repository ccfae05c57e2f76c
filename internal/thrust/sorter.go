package thrust

import (
	"fmt"

	"github.com/fundou/cupy/internal/cuda"
)

// Minimum device/toolkit capability for the float16 kernels.
const (
	minHalfComputeCapability = 53
	minHalfRuntimeVersion    = 9020
)

// Sorter dispatches sort, lexsort and argsort requests to the backend
// instantiation matching a runtime DataType. Calls return once the work
// has been submitted to the device's current stream; completion is the
// stream's business.
//
// A Sorter holds no mutable state of its own. Each call builds a fresh
// scratch arena, so concurrent calls are safe as long as the device's
// allocator and stream are.
type Sorter struct {
	dev     cuda.Device
	backend Backend
}

// New returns a Sorter dispatching to backend on dev.
func New(dev cuda.Device, backend Backend) *Sorter {
	return &Sorter{dev: dev, backend: backend}
}

// BuildVersion returns the backend's build-time version.
func (s *Sorter) BuildVersion() int {
	return s.backend.BuildVersion()
}

// checkHalf gates the float16 path. Runs before any allocation; other
// element kinds never pay for it.
func (s *Sorter) checkHalf() error {
	if cc := s.dev.ComputeCapability(); cc < minHalfComputeCapability {
		return fmt.Errorf("%w: device compute capability %d is below the required %d",
			ErrHalfUnsupported, cc, minHalfComputeCapability)
	}
	if rv := s.dev.RuntimeVersion(); rv < minHalfRuntimeVersion {
		return fmt.Errorf("%w: runtime version %d is below the required %d",
			ErrHalfUnsupported, rv, minHalfRuntimeVersion)
	}
	return nil
}

// Sort sorts shape-described data at data along the last axis, in place.
// keys receives the backend's 64-bit bookkeeping (conventionally the
// applied permutation) and must hold one element per data element.
func (s *Sorter) Sort(dt DataType, data, keys cuda.DevicePtr, shape []int) error {
	var kernel SortFunc
	if dt.Valid() {
		kernel = s.kernels().Sort[dt]
	}
	if kernel == nil {
		return fmt.Errorf("%w: sorting arrays with dtype %s is not supported", ErrNotImplemented, dt)
	}
	if dt == Float16 {
		if err := s.checkHalf(); err != nil {
			return err
		}
	}
	ar := newArena(s.dev.Allocator())
	defer ar.release()
	return kernel(data, keys, shape, s.dev.CurrentStream(), ar)
}

// Lexsort writes to idx the permutation of n records ordered by k
// interleaved key rows starting at keys, with row 0 as the primary key.
func (s *Sorter) Lexsort(dt DataType, idx, keys cuda.DevicePtr, k, n int) error {
	var kernel LexsortFunc
	if dt.Valid() {
		kernel = s.kernels().Lexsort[dt]
	}
	if kernel == nil {
		return fmt.Errorf("%w: %s", ErrKeyTypeUnsupported, dt)
	}
	if dt == Float16 {
		if err := s.checkHalf(); err != nil {
			return err
		}
	}
	ar := newArena(s.dev.Allocator())
	defer ar.release()
	return kernel(idx, keys, k, n, s.dev.CurrentStream(), ar)
}

// Argsort writes to idx the permutation that sorts data along the last
// axis; data itself is left untouched. keys is backend scratch space
// sized like data.
func (s *Sorter) Argsort(dt DataType, idx, data, keys cuda.DevicePtr, shape []int) error {
	var kernel ArgsortFunc
	if dt.Valid() {
		kernel = s.kernels().Argsort[dt]
	}
	if kernel == nil {
		return fmt.Errorf("%w: sorting arrays with dtype %s is not supported", ErrNotImplemented, dt)
	}
	if dt == Float16 {
		if err := s.checkHalf(); err != nil {
			return err
		}
	}
	ar := newArena(s.dev.Allocator())
	defer ar.release()
	return kernel(idx, data, keys, shape, s.dev.CurrentStream(), ar)
}

func (s *Sorter) kernels() *Kernels {
	return s.backend.Kernels()
}
