package cuda

// Stream is an opaque handle to an ordered sequence of device operations.
// Work submitted to the same stream executes in submission order; the
// dispatch layer only threads the handle through to the backend and never
// interprets it. The zero value is the device's default stream.
type Stream uintptr
