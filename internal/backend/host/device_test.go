package host

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fundou/cupy/internal/cuda"
)

func TestAllocateWriteRead(t *testing.T) {
	d := NewDevice()

	buf, err := d.Allocate(8)
	require.NoError(t, err)
	require.NotEqual(t, cuda.Null, buf.Ptr())
	assert.Equal(t, 8, buf.Size())

	require.NoError(t, d.Write(buf.Ptr(), []byte{1, 2, 3, 4, 5, 6, 7, 8}))

	got := make([]byte, 8)
	require.NoError(t, d.Read(buf.Ptr(), got))
	assert.Equal(t, []byte{1, 2, 3, 4, 5, 6, 7, 8}, got)
}

func TestInteriorPointerResolution(t *testing.T) {
	d := NewDevice()

	buf, err := d.Allocate(16)
	require.NoError(t, err)
	require.NoError(t, d.Write(buf.Ptr(), []byte{0, 1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12, 13, 14, 15}))

	got := make([]byte, 4)
	require.NoError(t, d.Read(buf.Ptr()+4, got))
	assert.Equal(t, []byte{4, 5, 6, 7}, got)

	// Past the end of the allocation.
	assert.Error(t, d.Read(buf.Ptr()+13, got))
}

func TestAddressesNeverReissued(t *testing.T) {
	d := NewDevice()

	a, err := d.Allocate(32)
	require.NoError(t, err)
	ptr := a.Ptr()
	a.Free()

	b, err := d.Allocate(32)
	require.NoError(t, err)
	assert.NotEqual(t, ptr, b.Ptr())

	// The stale pointer no longer resolves.
	assert.Error(t, d.Read(ptr, make([]byte, 1)))
}

func TestMemoryLimit(t *testing.T) {
	d := NewDevice(WithMemoryLimit(100))

	buf, err := d.Allocate(80)
	require.NoError(t, err)

	_, err = d.Allocate(40)
	assert.ErrorIs(t, err, cuda.ErrOutOfMemory)

	// Freeing makes room again.
	buf.Free()
	_, err = d.Allocate(40)
	assert.NoError(t, err)
}

func TestStats(t *testing.T) {
	d := NewDevice()

	a, err := d.Allocate(10)
	require.NoError(t, err)
	b, err := d.Allocate(20)
	require.NoError(t, err)

	allocs, frees, live := d.Stats()
	assert.Equal(t, uint64(2), allocs)
	assert.Equal(t, uint64(0), frees)
	assert.Equal(t, 30, live)

	a.Free()
	a.Free() // second free is a no-op
	b.Free()

	allocs, frees, live = d.Stats()
	assert.Equal(t, uint64(2), allocs)
	assert.Equal(t, uint64(2), frees)
	assert.Equal(t, 0, live)
}

func TestCapabilityOptions(t *testing.T) {
	d := NewDevice(WithComputeCapability(52), WithRuntimeVersion(9010))
	assert.Equal(t, 52, d.ComputeCapability())
	assert.Equal(t, 9010, d.RuntimeVersion())

	d = NewDevice()
	assert.GreaterOrEqual(t, d.ComputeCapability(), 53)
	assert.GreaterOrEqual(t, d.RuntimeVersion(), 9020)
}

func TestStreamOrdering(t *testing.T) {
	d := NewDevice()
	st := d.stream(d.CurrentStream())

	var order []int
	st.submit(func() { order = append(order, 1) })
	st.submit(func() { order = append(order, 2) })
	assert.Equal(t, 2, d.Pending())
	assert.Empty(t, order, "nothing runs before synchronization")

	d.Synchronize()
	assert.Equal(t, []int{1, 2}, order)
	assert.Equal(t, 0, d.Pending())
}
