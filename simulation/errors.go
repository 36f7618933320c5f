package simulation

import "errors"

// Sentinel errors for simulation construction, following the same
// validate-at-the-boundary convention as package marble.
var (
	// ErrNonPositiveExtent indicates width or height was <= 0.
	ErrNonPositiveExtent = errors.New("simulation: width and height must be positive")
)
