// Package host provides the simulated-device backend: map-backed device
// memory, an ordered stream with explicit synchronization, and reference
// kernels for every supported element kind.
//
// Example:
//
//	dev := host.NewDevice()
//	sorter := thrust.New(dev, host.NewBackend(dev))
package host

import (
	internalhost "github.com/fundou/cupy/internal/backend/host"
	"github.com/fundou/cupy/thrust"
)

// Device is the simulated device implementation.
type Device = internalhost.Device

// Backend is the reference sorting backend for a simulated device.
type Backend = internalhost.Backend

// Compile-time check that Backend implements thrust.Backend.
var _ thrust.Backend = (*Backend)(nil)

// Option configures a simulated device.
type Option = internalhost.Option

// WithComputeCapability sets the reported compute capability
// (major*10 + minor).
func WithComputeCapability(cc int) Option {
	return internalhost.WithComputeCapability(cc)
}

// WithRuntimeVersion sets the reported toolkit/runtime version.
func WithRuntimeVersion(v int) Option {
	return internalhost.WithRuntimeVersion(v)
}

// WithMemoryLimit caps total live device memory in bytes.
func WithMemoryLimit(bytes int) Option {
	return internalhost.WithMemoryLimit(bytes)
}

// NewDevice creates a simulated device.
func NewDevice(opts ...Option) *Device {
	return internalhost.NewDevice(opts...)
}

// NewBackend builds the reference kernel table for dev.
func NewBackend(dev *Device) *Backend {
	return internalhost.NewBackend(dev)
}
