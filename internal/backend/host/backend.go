package host

import (
	"cmp"
	"fmt"
	"sort"
	"unsafe"

	"github.com/fundou/cupy/internal/cuda"
	"github.com/fundou/cupy/internal/parallel"
	"github.com/fundou/cupy/internal/thrust"
)

// buildVersion identifies the reference kernel set, encoded the Thrust
// way: major*100000 + minor*100 + patch.
const buildVersion = 100908

// Backend is the reference sorting backend: one generic kernel
// instantiation per element kind, operating on the simulated device's
// memory. The kernel table is built once at construction.
type Backend struct {
	dev     *Device
	kernels thrust.Kernels
}

var _ thrust.Backend = (*Backend)(nil)

// NewBackend builds the kernel table for dev.
func NewBackend(dev *Device) *Backend {
	b := &Backend{dev: dev}

	register(b, thrust.Int8, cmp.Less[int8])
	register(b, thrust.Uint8, cmp.Less[uint8])
	register(b, thrust.Int16, cmp.Less[int16])
	register(b, thrust.Uint16, cmp.Less[uint16])
	register(b, thrust.Int32, cmp.Less[int32])
	register(b, thrust.Uint32, cmp.Less[uint32])
	register(b, thrust.Int64, cmp.Less[int64])
	register(b, thrust.Uint64, cmp.Less[uint64])
	register(b, thrust.Float16, halfLess)
	register(b, thrust.Float32, cmp.Less[float32])
	register(b, thrust.Float64, cmp.Less[float64])
	register(b, thrust.Complex64, complex64Less)
	register(b, thrust.Complex128, complex128Less)
	register(b, thrust.Bool, boolLess)

	return b
}

// Kernels implements thrust.Backend.
func (b *Backend) Kernels() *thrust.Kernels { return &b.kernels }

// BuildVersion implements thrust.Backend.
func (b *Backend) BuildVersion() int { return buildVersion }

// register fills all three table slots for one element kind with kernels
// monomorphized to T. Float16 registers with T = uint16; ordering is the
// only place its float semantics matter.
func register[T any](b *Backend, dt thrust.DataType, less func(T, T) bool) {
	b.kernels.Sort[dt] = makeSort(b, less)
	b.kernels.Lexsort[dt] = makeLexsort(b, less)
	b.kernels.Argsort[dt] = makeArgsort(b, less)
}

// makeSort builds the in-place segmented sort kernel for T. Values are
// reordered along the last axis; keys receives the applied permutation as
// original flat indices.
func makeSort[T any](b *Backend, less func(T, T) bool) thrust.SortFunc {
	return func(data, keys cuda.DevicePtr, shape []int, stream cuda.Stream, scratch thrust.ScratchAllocator) error {
		n, w, err := volume(shape)
		if err != nil || n == 0 {
			return err
		}
		vals, err := deviceSlice[T](b.dev, data, n)
		if err != nil {
			return err
		}
		ks, err := deviceSlice[uint64](b.dev, keys, n)
		if err != nil {
			return err
		}
		var zero T
		tmp, err := scratch.Malloc(n * int(unsafe.Sizeof(zero)))
		if err != nil {
			return err
		}
		// Scratch is handed back when submission returns; the simulated
		// stream keeps the Go backing storage reachable until the work runs.
		defer scratch.Free(tmp)
		sorted, err := deviceSlice[T](b.dev, tmp, n)
		if err != nil {
			return err
		}
		b.dev.stream(stream).submit(func() {
			perm := stablePerm(n, w, func(i, j int) bool { return less(vals[i], vals[j]) })
			for out, src := range perm {
				sorted[out] = vals[src]
				ks[out] = uint64(src)
			}
			copy(vals, sorted)
		})
		return nil
	}
}

// makeArgsort builds the argsort kernel for T. idx receives row-local
// index permutations, keys a sorted copy of the values; data is untouched.
func makeArgsort[T any](b *Backend, less func(T, T) bool) thrust.ArgsortFunc {
	return func(idx, data, keys cuda.DevicePtr, shape []int, stream cuda.Stream, _ thrust.ScratchAllocator) error {
		n, w, err := volume(shape)
		if err != nil || n == 0 {
			return err
		}
		vals, err := deviceSlice[T](b.dev, data, n)
		if err != nil {
			return err
		}
		out, err := deviceSlice[int64](b.dev, idx, n)
		if err != nil {
			return err
		}
		sorted, err := deviceSlice[T](b.dev, keys, n)
		if err != nil {
			return err
		}
		b.dev.stream(stream).submit(func() {
			perm := stablePerm(n, w, func(i, j int) bool { return less(vals[i], vals[j]) })
			for pos, src := range perm {
				out[pos] = int64(src % w)
				sorted[pos] = vals[src]
			}
		})
		return nil
	}
}

// makeLexsort builds the lexsort kernel for T. Records are ordered by k
// interleaved key rows at keys (row 0 primary), ties resolved by original
// position.
func makeLexsort[T any](b *Backend, less func(T, T) bool) thrust.LexsortFunc {
	return func(idx, keys cuda.DevicePtr, k, n int, stream cuda.Stream, scratch thrust.ScratchAllocator) error {
		if k < 0 || n < 0 {
			return fmt.Errorf("host: invalid lexsort dimensions k=%d n=%d", k, n)
		}
		if n == 0 {
			return nil
		}
		out, err := deviceSlice[int64](b.dev, idx, n)
		if err != nil {
			return err
		}
		rows, err := deviceSlice[T](b.dev, keys, k*n)
		if err != nil {
			return err
		}
		tmp, err := scratch.Malloc(n * 8)
		if err != nil {
			return err
		}
		defer scratch.Free(tmp)
		work, err := deviceSlice[int64](b.dev, tmp, n)
		if err != nil {
			return err
		}
		b.dev.stream(stream).submit(func() {
			for i := range work {
				work[i] = int64(i)
			}
			sort.SliceStable(work, func(x, y int) bool {
				a, bb := int(work[x]), int(work[y])
				for r := 0; r < k; r++ {
					ka, kb := rows[r*n+a], rows[r*n+bb]
					if less(ka, kb) {
						return true
					}
					if less(kb, ka) {
						return false
					}
				}
				return false
			})
			copy(out, work)
		})
		return nil
	}
}

// stablePerm returns the stable permutation ordering n elements grouped
// into segments of width w. Segments never exchange elements, so they are
// sorted independently, in parallel when there are enough of them.
func stablePerm(n, w int, less func(i, j int) bool) []int {
	perm := make([]int, n)
	for i := range perm {
		perm[i] = i
	}
	segments := (n + w - 1) / w
	parallel.For(segments, func(s int) {
		lo := s * w
		hi := min(lo+w, n)
		seg := perm[lo:hi]
		sort.SliceStable(seg, func(x, y int) bool { return less(seg[x], seg[y]) })
	}, parallel.DefaultConfig())
	return perm
}

// volume interprets a shape as (total elements, last-axis width). An
// empty shape is a scalar.
func volume(shape []int) (n, w int, err error) {
	n, w = 1, 1
	for _, dim := range shape {
		if dim < 0 {
			return 0, 0, fmt.Errorf("host: negative dimension %d in shape %v", dim, shape)
		}
		n *= dim
	}
	if len(shape) > 0 {
		w = shape[len(shape)-1]
	}
	if w == 0 {
		w = 1
	}
	return n, w, nil
}

// deviceSlice views n elements of device memory at ptr as []T.
func deviceSlice[T any](d *Device, ptr cuda.DevicePtr, n int) ([]T, error) {
	if n == 0 {
		return nil, nil
	}
	var zero T
	b, err := d.slice(ptr, n*int(unsafe.Sizeof(zero)))
	if err != nil {
		return nil, err
	}
	return unsafe.Slice((*T)(unsafe.Pointer(&b[0])), n), nil
}

func complex64Less(a, b complex64) bool {
	if real(a) != real(b) {
		return real(a) < real(b)
	}
	return imag(a) < imag(b)
}

func complex128Less(a, b complex128) bool {
	if real(a) != real(b) {
		return real(a) < real(b)
	}
	return imag(a) < imag(b)
}

func boolLess(a, b bool) bool { return !a && b }
