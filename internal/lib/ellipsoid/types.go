package ellipsoid

import "errors"

// ErrInvalidModel is returned when ellipsoid parameters do not describe a physical body
var ErrInvalidModel = errors.New("invalid ellipsoid model")

// Model describes a reference ellipsoid by its semi-major axis and flattening
type Model struct {
	name string
	a    float64 // semi-major axis in meters
	f    float64 // flattening
	e2   float64 // first eccentricity squared
}

// Preset literals
const (
	wgs84SemiMajor = 6_378_137.0
	wgs84InvFlat   = 298.257223563

	grs80SemiMajor = 6_378_137.0
	grs80InvFlat   = 298.257222101

	// IAU values for Mars
	marsEquatorial = 3_396_200.0
	marsPolar      = 3_376_200.0
)
