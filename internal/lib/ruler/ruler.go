package ruler

import (
	"fmt"
	"math"

	"github.com/dpup/georuler/internal/lib/angle"
	"github.com/dpup/georuler/internal/lib/ellipsoid"
	"github.com/dpup/georuler/internal/lib/num"
)

// New derives the scale factors for latitudeDeg on model.
//
// At ±90° the longitude factor is exactly 0. That is not an error, but any
// result that depends on longitude (Bearing, Destination) is meaningless there.
func New[T Float](model ellipsoid.Model, latitudeDeg T, opts ...Option) (Ruler[T], error) {
	if model.IsZero() {
		return Ruler[T]{}, fmt.Errorf("%w: zero model", ellipsoid.ErrInvalidModel)
	}
	// NaN fails both comparisons
	if !(latitudeDeg >= -90 && latitudeDeg <= 90) {
		return Ruler[T]{}, fmt.Errorf("%w: got %v", ErrInvalidLatitude, latitudeDeg)
	}

	o := options{strategy: angle.Default}
	for _, opt := range opts {
		opt(&o)
	}
	if !o.strategy.Valid() {
		return Ruler[T]{}, fmt.Errorf("%w: %v", angle.ErrUnknownStrategy, o.strategy)
	}

	kx, ky := Factors(model, float64(latitudeDeg))
	return Ruler[T]{
		model:    model,
		lat:      latitudeDeg,
		kx:       T(kx),
		ky:       T(ky),
		strategy: o.strategy,
	}, nil
}

// WGS84 builds a Ruler on the WGS84 ellipsoid
func WGS84[T Float](latitudeDeg T, opts ...Option) (Ruler[T], error) {
	return New(ellipsoid.WGS84(), latitudeDeg, opts...)
}

// Factors returns meters per degree of longitude (kx) and latitude (ky) at
// latitudeDeg on model. It does not validate its inputs.
func Factors(model ellipsoid.Model, latitudeDeg float64) (kx, ky float64) {
	phi := latitudeDeg * math.Pi / 180
	m, n := model.RadiiOfCurvature(phi)

	cos := math.Cos(phi)
	if math.Abs(latitudeDeg) == 90 {
		cos = 0 // math.Cos(pi/2) is 6e-17, not 0
	}

	ky = math.Pi / 180 * m
	kx = math.Pi / 180 * n * cos
	return kx, ky
}

// From converts any LonLat implementation to a Coordinate
func From[T Float](p LonLat[T]) Coordinate[T] {
	return Coordinate[T]{Lon: p.Lon(), Lat: p.Lat()}
}

// Factors returns the ruler's meters per degree of longitude and latitude
func (r Ruler[T]) Factors() (kx, ky T) { return r.kx, r.ky }

// Latitude returns the reference latitude in degrees
func (r Ruler[T]) Latitude() T { return r.lat }

// Model returns the ellipsoid the ruler was built on
func (r Ruler[T]) Model() ellipsoid.Model { return r.model }

// Strategy returns the arc tangent strategy bound to the ruler
func (r Ruler[T]) Strategy() angle.Strategy { return r.strategy }

// delta converts the displacement from a to b into meters east (dx) and north (dy)
func (r Ruler[T]) delta(a, b Coordinate[T]) (dx, dy T) {
	return (b.Lon - a.Lon) * r.kx, (b.Lat - a.Lat) * r.ky
}

// Distance returns the distance in meters between a and b
func (r Ruler[T]) Distance(a, b Coordinate[T]) T {
	dx, dy := r.delta(a, b)
	return num.Sqrt(dx*dx + dy*dy)
}

// Bearing returns the bearing from a to b in degrees, clockwise from north, in [0, 360).
// Coincident points have no direction; Bearing returns 0 for them.
func (r Ruler[T]) Bearing(a, b Coordinate[T]) T {
	dx, dy := r.delta(a, b)
	if dx == 0 && dy == 0 {
		return 0
	}
	return num.Wrap360(num.Degrees(angle.Atan2(r.strategy, dx, dy)))
}

// BearingStrict is Bearing, but fails with ErrDegenerateInput for coincident points
func (r Ruler[T]) BearingStrict(a, b Coordinate[T]) (T, error) {
	dx, dy := r.delta(a, b)
	if dx == 0 && dy == 0 {
		return 0, ErrDegenerateInput
	}
	return num.Wrap360(num.Degrees(angle.Atan2(r.strategy, dx, dy))), nil
}

// Destination returns the point reached from a after meters along bearingDeg.
// With kx = 0 (a polar ruler) the longitude is ±Inf or NaN; it is not clamped.
func (r Ruler[T]) Destination(a Coordinate[T], bearingDeg, meters T) Coordinate[T] {
	sin, cos := num.Sincos(num.Radians(bearingDeg))
	return Coordinate[T]{
		Lon: a.Lon + meters*sin/r.kx,
		Lat: a.Lat + meters*cos/r.ky,
	}
}

// InterpolateRatio returns the point at ratio t along the segment from a to b.
// Values of t outside [0, 1] extrapolate along the same line.
func (r Ruler[T]) InterpolateRatio(a, b Coordinate[T], t T) Coordinate[T] {
	return Coordinate[T]{
		Lon: a.Lon + (b.Lon-a.Lon)*t,
		Lat: a.Lat + (b.Lat-a.Lat)*t,
	}
}

// InterpolateDistance returns the point meters along the segment from a to b.
// Distances beyond the segment, or negative ones, extrapolate like InterpolateRatio.
func (r Ruler[T]) InterpolateDistance(a, b Coordinate[T], meters T) Coordinate[T] {
	total := r.Distance(a, b)
	if total == 0 {
		return a
	}
	return r.InterpolateRatio(a, b, meters/total)
}
