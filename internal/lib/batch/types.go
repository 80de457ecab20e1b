package batch

import (
	"errors"

	"github.com/dpup/georuler/internal/lib/num"
)

// ErrLengthMismatch is returned when the longitude and latitude slices differ in length
var ErrLengthMismatch = errors.New("longitude and latitude sequences differ in length")

// MaxLanes bounds the number of accumulators a Vectorized kernel keeps
const MaxLanes = 16

// Kernel sums the lengths of consecutive segments of a polyline given as
// parallel longitude and latitude slices in degrees.
//
// Each segment is measured with the scale factors of its own origin latitude,
// so long tracks that cross many degrees of latitude stay accurate at the cost
// of one cos and one sqrt per segment. Fewer than two points have length 0.
type Kernel[T num.Float] interface {
	Length(lons, lats []T) (T, error)
}
