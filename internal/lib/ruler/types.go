package ruler

import (
	"errors"

	"github.com/dpup/georuler/internal/lib/angle"
	"github.com/dpup/georuler/internal/lib/ellipsoid"
	"github.com/dpup/georuler/internal/lib/num"
)

var (
	// ErrInvalidLatitude is returned when a reference latitude is outside [-90, 90]
	ErrInvalidLatitude = errors.New("reference latitude must be in [-90, 90]")

	// ErrDegenerateInput is returned by BearingStrict when both points coincide
	ErrDegenerateInput = errors.New("bearing is undefined for coincident points")
)

// Float is the set of floating-point types a Ruler can compute in
type Float = num.Float

// Coordinate is a longitude/latitude pair in degrees
type Coordinate[T Float] struct {
	Lon T `json:"lon"`
	Lat T `json:"lat"`
}

// LonLat is any coordinate type that can report its longitude and latitude in degrees
type LonLat[T Float] interface {
	Lon() T
	Lat() T
}

// Ruler holds the scale factors of one reference latitude on one ellipsoid.
//
// The zero Ruler has zero factors and is not useful; build one with New.
// A Ruler is an immutable value and can be shared between goroutines.
type Ruler[T Float] struct {
	model    ellipsoid.Model
	lat      T
	kx       T // meters per degree of longitude
	ky       T // meters per degree of latitude
	strategy angle.Strategy
}

// Option configures a Ruler at construction time
type Option func(*options)

type options struct {
	strategy angle.Strategy
}

// WithStrategy binds the arc tangent approximation used by Bearing
func WithStrategy(s angle.Strategy) Option {
	return func(o *options) {
		o.strategy = s
	}
}
