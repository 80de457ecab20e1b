// Package num is the floating-point capability the ruler formulas are written
// against. Every function is generic over Float; transcendental functions are
// evaluated by the math package in float64 and narrowed back to T.
package num

import "math"

// Float is any floating-point type the engine can compute in
type Float interface {
	~float32 | ~float64
}

const (
	degToRad = math.Pi / 180
	radToDeg = 180 / math.Pi
)

// Sqrt returns the square root of x
func Sqrt[T Float](x T) T { return T(math.Sqrt(float64(x))) }

// Sincos returns sin(x) and cos(x)
func Sincos[T Float](x T) (sin, cos T) {
	s, c := math.Sincos(float64(x))
	return T(s), T(c)
}

// Cos returns cos(x)
func Cos[T Float](x T) T { return T(math.Cos(float64(x))) }

// Atan2 returns the arc tangent of y/x using the signs of both to pick the quadrant
func Atan2[T Float](y, x T) T { return T(math.Atan2(float64(y), float64(x))) }

// Abs returns |x|
func Abs[T Float](x T) T { return T(math.Abs(float64(x))) }

// Signbit reports whether x is negative or negative zero
func Signbit[T Float](x T) bool { return math.Signbit(float64(x)) }

// Copysign returns a value with the magnitude of f and the sign of sign
func Copysign[T Float](f, sign T) T { return T(math.Copysign(float64(f), float64(sign))) }

// IsFinite reports whether x is neither infinite nor NaN
func IsFinite[T Float](x T) bool {
	f := float64(x)
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}

// Radians converts degrees to radians
func Radians[T Float](deg T) T { return T(float64(deg) * degToRad) }

// Degrees converts radians to degrees
func Degrees[T Float](rad T) T { return T(float64(rad) * radToDeg) }

// Wrap360 normalises an angle in degrees into [0, 360)
func Wrap360[T Float](deg T) T {
	d := math.Mod(float64(deg), 360)
	if d < 0 {
		d += 360
	} else if d == 0 {
		return 0 // drops the sign of -0
	}
	// Rounding in d+360 or in the narrowing to T can land exactly on 360
	if T(d) >= 360 {
		return 0
	}
	return T(d)
}
