// Package georuler measures short distances on an ellipsoid with a cheap ruler:
// a flat-Earth approximation whose meters-per-degree factors are derived once
// for a reference latitude.
package georuler

import (
	"iter"

	"github.com/dpup/georuler/internal/lib/angle"
	"github.com/dpup/georuler/internal/lib/batch"
	"github.com/dpup/georuler/internal/lib/ellipsoid"
	"github.com/dpup/georuler/internal/lib/num"
	"github.com/dpup/georuler/internal/lib/ruler"
)

// Float is the set of floating-point types rulers compute in
type Float = num.Float

// Model is a reference ellipsoid
type Model = ellipsoid.Model

// Strategy selects the arc tangent used for bearings
type Strategy = angle.Strategy

// Ruler holds the scale factors of one reference latitude
type Ruler[T Float] = ruler.Ruler[T]

// Coordinate is a longitude/latitude pair in degrees
type Coordinate[T Float] = ruler.Coordinate[T]

// LonLat is any coordinate type that reports its longitude and latitude
type LonLat[T Float] = ruler.LonLat[T]

// Option configures a Ruler
type Option = ruler.Option

const (
	Exact = angle.Exact
	Deg3  = angle.Deg3
	Deg5  = angle.Deg5

	// DefaultStrategy is the strategy picked by build tags
	DefaultStrategy = angle.Default
)

var (
	ErrInvalidModel    = ellipsoid.ErrInvalidModel
	ErrInvalidLatitude = ruler.ErrInvalidLatitude
	ErrDegenerateInput = ruler.ErrDegenerateInput
	ErrLengthMismatch  = batch.ErrLengthMismatch
	ErrUnknownStrategy = angle.ErrUnknownStrategy
)

// WGS84 returns the GPS ellipsoid
func WGS84() Model { return ellipsoid.WGS84() }

// GRS80 returns the Geodetic Reference System 1980 ellipsoid
func GRS80() Model { return ellipsoid.GRS80() }

// Mars returns the IAU reference ellipsoid for Mars
func Mars() Model { return ellipsoid.Mars() }

// WithStrategy binds the arc tangent approximation used by Bearing
func WithStrategy(s Strategy) Option { return ruler.WithStrategy(s) }

// NewModel validates a semi-major axis in meters and a flattening in [0, 1)
func NewModel(a, f float64) (Model, error) {
	return ellipsoid.New(a, f)
}

// NewRuler derives the scale factors for latitudeDeg on model
func NewRuler[T Float](model Model, latitudeDeg T, opts ...Option) (Ruler[T], error) {
	return ruler.New(model, latitudeDeg, opts...)
}

// From converts any LonLat implementation to a Coordinate
func From[T Float](p LonLat[T]) Coordinate[T] {
	return ruler.From(p)
}

// Distance returns the approximate distance in meters from a to b
func Distance[T Float](r Ruler[T], a, b Coordinate[T]) T {
	return r.Distance(a, b)
}

// Bearing returns the initial bearing from a to b in degrees clockwise from
// north, in [0, 360). Coincident points give 0.
func Bearing[T Float](r Ruler[T], a, b Coordinate[T]) T {
	return r.Bearing(a, b)
}

// Destination moves meters from a along bearingDeg
func Destination[T Float](r Ruler[T], a Coordinate[T], bearingDeg, meters T) Coordinate[T] {
	return r.Destination(a, bearingDeg, meters)
}

// InterpolateRatio returns a + t(b - a); t outside [0, 1] extrapolates
func InterpolateRatio[T Float](r Ruler[T], a, b Coordinate[T], t T) Coordinate[T] {
	return r.InterpolateRatio(a, b, t)
}

// InterpolateDistance returns the point meters along the segment from a to b
func InterpolateDistance[T Float](r Ruler[T], a, b Coordinate[T], meters T) Coordinate[T] {
	return r.InterpolateDistance(a, b, meters)
}

// PointsAlongLine lazily yields points at most maxSpacing meters apart from a to b
func PointsAlongLine[T Float](r Ruler[T], a, b Coordinate[T], maxSpacing T, includeEndpoints bool) iter.Seq[Coordinate[T]] {
	return r.PointsAlongLine(a, b, maxSpacing, includeEndpoints)
}

// BatchLength sums the WGS84 lengths of consecutive segments, each measured at
// its own origin latitude
func BatchLength[T Float](lons, lats []T) (T, error) {
	return batch.Length(lons, lats)
}

// BatchLengthOn is BatchLength on any model
func BatchLengthOn[T Float](model Model, lons, lats []T) (T, error) {
	return batch.New[T](model).Length(lons, lats)
}
