// Package thrust provides the public API of the sort dispatch bridge:
// runtime element-kind resolution, capability gating for float16, and the
// Sort/Lexsort/Argsort entry points.
//
// Example:
//
//	dev := host.NewDevice()
//	sorter := thrust.New(dev, host.NewBackend(dev))
//	if err := sorter.Sort(thrust.Int32, data, keys, []int{4}); err != nil {
//	    log.Fatal(err)
//	}
//	dev.Synchronize()
package thrust

import (
	"github.com/fundou/cupy/internal/cuda"
	"github.com/fundou/cupy/internal/thrust"
)

// DataType identifies the element kind of a device buffer.
type DataType = thrust.DataType

// Supported element kinds.
const (
	Int8       DataType = thrust.Int8
	Uint8      DataType = thrust.Uint8
	Int16      DataType = thrust.Int16
	Uint16     DataType = thrust.Uint16
	Int32      DataType = thrust.Int32
	Uint32     DataType = thrust.Uint32
	Int64      DataType = thrust.Int64
	Uint64     DataType = thrust.Uint64
	Float16    DataType = thrust.Float16
	Float32    DataType = thrust.Float32
	Float64    DataType = thrust.Float64
	Complex64  DataType = thrust.Complex64
	Complex128 DataType = thrust.Complex128
	Bool       DataType = thrust.Bool
)

// NumDataTypes is the number of supported element kinds.
const NumDataTypes = thrust.NumDataTypes

// Error kinds surfaced by the dispatchers; branch with errors.Is.
var (
	ErrNotImplemented     = thrust.ErrNotImplemented
	ErrKeyTypeUnsupported = thrust.ErrKeyTypeUnsupported
	ErrHalfUnsupported    = thrust.ErrHalfUnsupported
)

// Sorter dispatches sort, lexsort and argsort requests to the backend
// instantiation matching a runtime DataType.
type Sorter = thrust.Sorter

// Backend is the device-resident sorting capability behind a Sorter.
type Backend = thrust.Backend

// Kernels is a backend's dispatch table, indexed by DataType.
type Kernels = thrust.Kernels

// ScratchAllocator is the per-call scratch memory contract kernels see.
type ScratchAllocator = thrust.ScratchAllocator

// Kernel call signatures.
type (
	SortFunc    = thrust.SortFunc
	LexsortFunc = thrust.LexsortFunc
	ArgsortFunc = thrust.ArgsortFunc
)

// New returns a Sorter dispatching to backend on dev.
func New(dev cuda.Device, backend Backend) *Sorter {
	return thrust.New(dev, backend)
}

// ParseDType resolves an external type descriptor (a dtype name such as
// "int32", or a NumPy letter code such as "i") to its DataType.
func ParseDType(s string) (DataType, error) {
	return thrust.ParseDType(s)
}
