package marble

import "errors"

// Sentinel errors for marble construction. Algorithms elsewhere in this
// module never see these once a Marble is built: validation happens once,
// at New, matching the teacher's convention of validating at the
// construction boundary rather than scattering checks through later calls.
var (
	// ErrNonPositiveRadius indicates a radius <= 0 was supplied to New.
	ErrNonPositiveRadius = errors.New("marble: radius must be positive")

	// ErrNegativeMass indicates a negative mass was supplied to New.
	// Zero mass is allowed (test probes, see collision.ResolveElastic).
	ErrNegativeMass = errors.New("marble: mass must not be negative")
)
