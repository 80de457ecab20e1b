package ruler

import (
	"iter"
	"math"
)

// SampleCount returns the number of equal steps PointsAlongLine divides the
// segment from a to b into: ceil(distance/maxSpacing), and never less than 1.
// A non-positive or NaN spacing, or a non-finite distance, gives 1.
func (r Ruler[T]) SampleCount(a, b Coordinate[T], maxSpacing T) int {
	if !(maxSpacing > 0) {
		return 1
	}
	steps := math.Ceil(float64(r.Distance(a, b)) / float64(maxSpacing))
	if math.IsNaN(steps) || math.IsInf(steps, 0) || steps < 1 {
		return 1
	}
	if steps > math.MaxInt32 {
		return math.MaxInt32
	}
	return int(steps)
}

// PointsAlongLine yields points spaced at most maxSpacing meters apart along
// the segment from a to b, at ratios i/n with n = SampleCount(a, b, maxSpacing).
//
// With includeEndpoints the sequence is i = 0..n: n+1 points, the first exactly
// a and the last exactly b. Without it only the interior i = 1..n-1 is
// yielded, which is empty when n = 1. Nothing is computed until the sequence is
// ranged over, and every range starts again from the beginning.
func (r Ruler[T]) PointsAlongLine(a, b Coordinate[T], maxSpacing T, includeEndpoints bool) iter.Seq[Coordinate[T]] {
	return func(yield func(Coordinate[T]) bool) {
		n := r.SampleCount(a, b, maxSpacing)

		first, last := 1, n-1
		if includeEndpoints {
			first, last = 0, n
		}

		for i := first; i <= last; i++ {
			var p Coordinate[T]
			switch i {
			case 0:
				p = a
			case n:
				p = b
			default:
				p = r.InterpolateRatio(a, b, T(i)/T(n))
			}
			if !yield(p) {
				return
			}
		}
	}
}
