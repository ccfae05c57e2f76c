// Package thrust bridges a host-side array library to a device-resident
// sort backend. It resolves runtime element kinds to per-type backend
// instantiations, gates the float16 path on device capability, and feeds
// the backend scratch memory through a per-call allocator bridge.
package thrust

import "fmt"

// DataType identifies the element kind of a device buffer. It is the tag
// the dispatchers branch on; every tag selects a distinct backend
// instantiation.
type DataType int

// Supported element kinds.
const (
	Int8 DataType = iota
	Uint8
	Int16
	Uint16
	Int32
	Uint32
	Int64
	Uint64
	Float16
	Float32
	Float64
	Complex64
	Complex128
	Bool

	numDataTypes
)

// NumDataTypes is the number of supported element kinds. Kernel tables
// are indexed by DataType and sized to this.
const NumDataTypes = int(numDataTypes)

// Size returns the byte size of one element of the data type.
func (dt DataType) Size() int {
	switch dt {
	case Int8, Uint8, Bool:
		return 1
	case Int16, Uint16, Float16:
		return 2
	case Int32, Uint32, Float32:
		return 4
	case Int64, Uint64, Float64, Complex64:
		return 8
	case Complex128:
		return 16
	default:
		panic("unknown data type")
	}
}

// String returns a human-readable name for the data type.
func (dt DataType) String() string {
	switch dt {
	case Int8:
		return "int8"
	case Uint8:
		return "uint8"
	case Int16:
		return "int16"
	case Uint16:
		return "uint16"
	case Int32:
		return "int32"
	case Uint32:
		return "uint32"
	case Int64:
		return "int64"
	case Uint64:
		return "uint64"
	case Float16:
		return "float16"
	case Float32:
		return "float32"
	case Float64:
		return "float64"
	case Complex64:
		return "complex64"
	case Complex128:
		return "complex128"
	case Bool:
		return "bool"
	default:
		return fmt.Sprintf("DataType(%d)", int(dt))
	}
}

// Valid reports whether dt is one of the supported element kinds.
func (dt DataType) Valid() bool {
	return dt >= 0 && dt < numDataTypes
}

// dtypeNames maps external type descriptors to tags. Both spelled-out
// names and NumPy single-letter codes are accepted; the mapping is exact,
// no kind is widened or coerced to another.
var dtypeNames = map[string]DataType{
	"int8":       Int8,
	"uint8":      Uint8,
	"int16":      Int16,
	"uint16":     Uint16,
	"int32":      Int32,
	"uint32":     Uint32,
	"int64":      Int64,
	"uint64":     Uint64,
	"float16":    Float16,
	"float32":    Float32,
	"float64":    Float64,
	"complex64":  Complex64,
	"complex128": Complex128,
	"bool":       Bool,

	"b": Int8,
	"B": Uint8,
	"h": Int16,
	"H": Uint16,
	"i": Int32,
	"I": Uint32,
	"q": Int64,
	"Q": Uint64,
	"l": Int64,
	"L": Uint64,
	"e": Float16,
	"f": Float32,
	"d": Float64,
	"F": Complex64,
	"D": Complex128,
	"?": Bool,
}

// ParseDType resolves an external type descriptor (a dtype name such as
// "int32", or a NumPy letter code such as "i") to its DataType.
func ParseDType(s string) (DataType, error) {
	dt, ok := dtypeNames[s]
	if !ok {
		return 0, fmt.Errorf("%w: unknown dtype %q", ErrNotImplemented, s)
	}
	return dt, nil
}
