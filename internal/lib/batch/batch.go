package batch

import (
	"fmt"

	"github.com/dpup/georuler/internal/lib/ellipsoid"
	"github.com/dpup/georuler/internal/lib/num"
	"github.com/dpup/georuler/internal/lib/ruler"
)

// New returns the Vectorized kernel when the CPU reports a vector unit wide
// enough for more than one T, and the Sequential kernel otherwise.
func New[T num.Float](model ellipsoid.Model) Kernel[T] {
	if lanes := LanesFor[T](VectorWidth()); lanes > 1 {
		return NewVectorized[T](model, lanes)
	}
	return NewSequential[T](model)
}

// Length measures a WGS84 polyline with the kernel New selects
func Length[T num.Float](lons, lats []T) (T, error) {
	return New[T](ellipsoid.WGS84()).Length(lons, lats)
}

// Sequential sums segments one after another. It is the reference the
// Vectorized kernel is tested against.
type Sequential[T num.Float] struct {
	model ellipsoid.Model
}

// NewSequential creates a Sequential kernel for model
func NewSequential[T num.Float](model ellipsoid.Model) Sequential[T] {
	return Sequential[T]{model: model}
}

// Length implements Kernel
func (s Sequential[T]) Length(lons, lats []T) (T, error) {
	if err := checkLengths(lons, lats); err != nil {
		return 0, err
	}

	var total T
	for i := 1; i < len(lons); i++ {
		total += segment(s.model, lons[i-1], lats[i-1], lons[i], lats[i])
	}
	return total, nil
}

// Vectorized splits the segments into groups of Lanes and keeps one partial
// sum per lane, so the lanes carry no dependency on each other inside a group.
// A trailing partial group only touches its leading lanes. The partial sums
// are added together at the end.
type Vectorized[T num.Float] struct {
	model ellipsoid.Model
	lanes int
}

// NewVectorized creates a Vectorized kernel with the given lane count, clamped to [1, MaxLanes]
func NewVectorized[T num.Float](model ellipsoid.Model, lanes int) Vectorized[T] {
	return Vectorized[T]{model: model, lanes: min(max(lanes, 1), MaxLanes)}
}

// Lanes returns the number of partial sums the kernel keeps
func (v Vectorized[T]) Lanes() int { return v.lanes }

// Length implements Kernel
func (v Vectorized[T]) Length(lons, lats []T) (T, error) {
	if err := checkLengths(lons, lats); err != nil {
		return 0, err
	}
	if len(lons) < 2 {
		return 0, nil
	}

	var acc [MaxLanes]T
	lanes := v.lanes
	segments := len(lons) - 1

	i := 0
	for ; i+lanes <= segments; i += lanes {
		for l := range lanes {
			j := i + l
			acc[l] += segment(v.model, lons[j], lats[j], lons[j+1], lats[j+1])
		}
	}
	for l := 0; i+l < segments; l++ {
		j := i + l
		acc[l] += segment(v.model, lons[j], lats[j], lons[j+1], lats[j+1])
	}

	var total T
	for _, partial := range acc[:lanes] {
		total += partial
	}
	return total, nil
}

// segment is Ruler.Distance with a ruler local to the segment's origin
func segment[T num.Float](model ellipsoid.Model, lon0, lat0, lon1, lat1 T) T {
	kx, ky := ruler.Factors(model, float64(lat0))
	dx := (lon1 - lon0) * T(kx)
	dy := (lat1 - lat0) * T(ky)
	return num.Sqrt(dx*dx + dy*dy)
}

func checkLengths[T num.Float](lons, lats []T) error {
	if len(lons) != len(lats) {
		return fmt.Errorf("%w: %d longitudes, %d latitudes", ErrLengthMismatch, len(lons), len(lats))
	}
	return nil
}
