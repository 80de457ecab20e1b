package ellipsoid

import (
	"fmt"
	"math"
	"strings"
)

// New creates a custom model from a semi-major axis in meters and a flattening in [0, 1)
func New(a, f float64) (Model, error) {
	return newNamed("custom", a, f)
}

// FromAxes creates a custom model from the equatorial and polar semi-axes in meters
func FromAxes(a, b float64) (Model, error) {
	if !(b > 0) || math.IsInf(b, 0) {
		return Model{}, fmt.Errorf("%w: semi-minor axis %v must be positive and finite", ErrInvalidModel, b)
	}
	if !(a > 0) {
		return Model{}, fmt.Errorf("%w: semi-major axis %v must be positive", ErrInvalidModel, a)
	}
	return newNamed("custom", a, (a-b)/a)
}

func newNamed(name string, a, f float64) (Model, error) {
	if !(a > 0) || math.IsInf(a, 0) {
		return Model{}, fmt.Errorf("%w: semi-major axis %v must be positive and finite", ErrInvalidModel, a)
	}
	// NaN fails both comparisons
	if !(f >= 0 && f < 1) {
		return Model{}, fmt.Errorf("%w: flattening %v must be in [0, 1)", ErrInvalidModel, f)
	}
	return Model{name: name, a: a, f: f, e2: f * (2 - f)}, nil
}

func mustPreset(name string, a, f float64) Model {
	m, err := newNamed(name, a, f)
	if err != nil {
		panic(err)
	}
	return m
}

// WGS84 returns the World Geodetic System 1984 ellipsoid used by GPS
func WGS84() Model {
	return mustPreset("wgs84", wgs84SemiMajor, 1/wgs84InvFlat)
}

// GRS80 returns the Geodetic Reference System 1980 ellipsoid
func GRS80() Model {
	return mustPreset("grs80", grs80SemiMajor, 1/grs80InvFlat)
}

// Mars returns the IAU reference ellipsoid for Mars
func Mars() Model {
	return mustPreset("mars", marsEquatorial, (marsEquatorial-marsPolar)/marsEquatorial)
}

// Lookup resolves a preset by case-insensitive name
func Lookup(name string) (Model, bool) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "wgs84", "wgs-84":
		return WGS84(), true
	case "grs80", "grs-80":
		return GRS80(), true
	case "mars":
		return Mars(), true
	}
	return Model{}, false
}

// Name returns the preset name, or "custom"
func (m Model) Name() string { return m.name }

// A returns the semi-major axis in meters
func (m Model) A() float64 { return m.a }

// F returns the flattening
func (m Model) F() float64 { return m.f }

// E2 returns the first eccentricity squared, f(2-f)
func (m Model) E2() float64 { return m.e2 }

// B returns the semi-minor axis in meters
func (m Model) B() float64 { return m.a * (1 - m.f) }

// IsZero reports whether m is the zero Model, which is not a valid ellipsoid
func (m Model) IsZero() bool { return m.a == 0 }

// RadiiOfCurvature returns the meridional (m) and prime-vertical (n) radii of
// curvature in meters at geodetic latitude phi, given in radians.
func (m Model) RadiiOfCurvature(phi float64) (meridional, primeVertical float64) {
	s := math.Sin(phi)
	w := 1 - m.e2*s*s
	primeVertical = m.a / math.Sqrt(w)
	meridional = m.a * (1 - m.e2) / (w * math.Sqrt(w))
	return meridional, primeVertical
}

func (m Model) String() string {
	return fmt.Sprintf("%s(a=%.1f, f=1/%.6f)", m.name, m.a, inverse(m.f))
}

func inverse(f float64) float64 {
	if f == 0 {
		return math.Inf(1)
	}
	return 1 / f
}
