// Package webgpu provides the WebGPU-backed device: real GPU buffers for
// sort backend scratch memory, drawn from a size-bucketed pool.
//
// Sort kernels for WebGPU are supplied externally; this package only
// implements the device surface (allocation, stream handle, capability
// reporting).
//
// Example:
//
//	dev, err := webgpu.NewDevice(wgpuDevice)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer dev.Release()
//	sorter := thrust.New(dev, gpuBackend)
package webgpu

import (
	"github.com/go-webgpu/webgpu/wgpu"

	internalwebgpu "github.com/fundou/cupy/internal/backend/webgpu"
)

// Device adapts a wgpu.Device to the device surface the dispatch layer
// consumes.
type Device = internalwebgpu.Device

// Option configures a Device.
type Option = internalwebgpu.Option

// WithComputeCapability sets the reported compute capability.
func WithComputeCapability(cc int) Option {
	return internalwebgpu.WithComputeCapability(cc)
}

// WithRuntimeVersion sets the reported runtime version.
func WithRuntimeVersion(v int) Option {
	return internalwebgpu.WithRuntimeVersion(v)
}

// NewDevice wraps an already-acquired wgpu.Device.
func NewDevice(device *wgpu.Device, opts ...Option) (*Device, error) {
	return internalwebgpu.NewDevice(device, opts...)
}
