package angle

import "errors"

// ErrUnknownStrategy is returned when a strategy name cannot be parsed
var ErrUnknownStrategy = errors.New("unknown angle strategy")

// Strategy selects how the two-argument arc tangent is computed. It is bound
// once, when a ruler is built, and never chosen per call.
type Strategy uint8

const (
	// Exact uses math.Atan2
	Exact Strategy = iota
	// Deg3 uses a degree-3 minimax polynomial, fastest with the largest error
	Deg3
	// Deg5 uses a degree-5 minimax polynomial
	Deg5
)

// Maximum absolute error against math.Atan2 over the whole circle, in radians
const (
	MaxErrorDeg3 = 0.011
	MaxErrorDeg5 = 0.0007
)
