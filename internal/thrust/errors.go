package thrust

import "errors"

// Error kinds surfaced by the dispatchers. Callers branch with errors.Is.
var (
	// ErrNotImplemented is returned by Sort and Argsort when the element
	// kind has no backend instantiation.
	ErrNotImplemented = errors.New("thrust: not implemented")

	// ErrKeyTypeUnsupported is returned by Lexsort for the same
	// condition. Lexsort historically reports a type error where Sort
	// and Argsort report not-implemented; the two kinds are kept
	// distinct because callers may branch on which one they catch.
	ErrKeyTypeUnsupported = errors.New("thrust: unsupported key type")

	// ErrHalfUnsupported is returned when a float16 operation is
	// requested on a device or toolkit below the minimum capability.
	// The wrapped message names which of the two is deficient.
	ErrHalfUnsupported = errors.New("thrust: float16 sort not supported")
)
