package thrust

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDTypeNames(t *testing.T) {
	want := map[string]DataType{
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
	}
	for name, dt := range want {
		got, err := ParseDType(name)
		require.NoError(t, err, name)
		assert.Equal(t, dt, got, name)
		assert.Equal(t, name, got.String())
	}
}

func TestParseDTypeLetterCodes(t *testing.T) {
	want := map[string]DataType{
		"b": Int8, "B": Uint8,
		"h": Int16, "H": Uint16,
		"i": Int32, "I": Uint32,
		"q": Int64, "Q": Uint64,
		"l": Int64, "L": Uint64,
		"e": Float16, "f": Float32, "d": Float64,
		"F": Complex64, "D": Complex128,
		"?": Bool,
	}
	for code, dt := range want {
		got, err := ParseDType(code)
		require.NoError(t, err, code)
		assert.Equal(t, dt, got, code)
	}
}

func TestParseDTypeUnknown(t *testing.T) {
	for _, s := range []string{"", "float128", "int", "x", "Int32"} {
		_, err := ParseDType(s)
		assert.ErrorIs(t, err, ErrNotImplemented, s)
	}
}

func TestDataTypeSize(t *testing.T) {
	sizes := map[DataType]int{
		Int8: 1, Uint8: 1, Bool: 1,
		Int16: 2, Uint16: 2, Float16: 2,
		Int32: 4, Uint32: 4, Float32: 4,
		Int64: 8, Uint64: 8, Float64: 8, Complex64: 8,
		Complex128: 16,
	}
	require.Len(t, sizes, NumDataTypes)
	for dt, size := range sizes {
		assert.Equal(t, size, dt.Size(), dt.String())
	}
}

func TestDataTypeValid(t *testing.T) {
	for dt := Int8; dt < DataType(NumDataTypes); dt++ {
		assert.True(t, dt.Valid(), dt.String())
	}
	assert.False(t, DataType(-1).Valid())
	assert.False(t, DataType(NumDataTypes).Valid())
	assert.False(t, DataType(99).Valid())
}
