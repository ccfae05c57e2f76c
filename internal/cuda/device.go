package cuda

// Device is the capability surface the dispatch layer needs from the
// active device: where scratch memory comes from, which stream new work
// lands on, and the version numbers the float16 gate compares against.
//
// Implementations:
//   - host: in-process simulated device (testing, CPU fallback)
//   - webgpu: wgpu.Device-backed allocation via go-webgpu
type Device interface {
	// ComputeCapability returns the device's compute capability as a
	// single comparable integer (major*10 + minor, e.g. 53 for sm_53).
	ComputeCapability() int

	// RuntimeVersion returns the installed toolkit/runtime version as a
	// comparable integer (e.g. 9020 for 9.2).
	RuntimeVersion() int

	// CurrentStream returns the handle new work is submitted on.
	CurrentStream() Stream

	// Allocator returns the device's memory allocator.
	Allocator() Allocator
}
