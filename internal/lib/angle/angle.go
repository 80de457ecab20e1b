package angle

import (
	"fmt"
	"math"
	"strings"

	"github.com/dpup/georuler/internal/lib/num"
)

// Atan2 computes the arc tangent of y/x with the strategy's approximation
func Atan2[T num.Float](s Strategy, y, x T) T {
	switch s {
	case Deg3:
		return Poly3(y, x)
	case Deg5:
		return Poly5(y, x)
	default:
		return num.Atan2(y, x)
	}
}

// MaxError returns the documented error bound of the strategy in radians
func (s Strategy) MaxError() float64 {
	switch s {
	case Deg3:
		return MaxErrorDeg3
	case Deg5:
		return MaxErrorDeg5
	default:
		return 0
	}
}

func (s Strategy) String() string {
	switch s {
	case Exact:
		return "exact"
	case Deg3:
		return "deg3"
	case Deg5:
		return "deg5"
	default:
		return fmt.Sprintf("Strategy(%d)", uint8(s))
	}
}

// Valid reports whether s is one of the known strategies
func (s Strategy) Valid() bool { return s <= Deg5 }

// ParseStrategy resolves "exact", "deg3" or "deg5". An empty name selects Default.
func ParseStrategy(name string) (Strategy, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "":
		return Default, nil
	case "exact", "atan2":
		return Exact, nil
	case "deg3", "atan2_deg3":
		return Deg3, nil
	case "deg5", "atan2_deg5":
		return Deg5, nil
	}
	return Exact, fmt.Errorf("%w: %q", ErrUnknownStrategy, name)
}

// Poly3 approximates atan2(y, x) with a degree-3 polynomial on the octant ratio.
// Inputs must be finite.
func Poly3[T num.Float](y, x T) T {
	if y == 0 {
		return axis(y, x)
	}

	const (
		a1 = 0.9817
		a3 = 0.1963
	)

	yf, xf := float64(y), float64(x)
	absY := math.Abs(yf)

	var r, base float64
	if xf < 0 {
		r = (xf + absY) / (absY - xf)
		base = 3 * math.Pi / 4
	} else {
		r = (xf - absY) / (xf + absY)
		base = math.Pi / 4
	}

	res := base + (a3*r*r-a1)*r
	if yf < 0 {
		res = -res
	}
	return T(res)
}

// Poly5 approximates atan2(y, x) with a degree-5 polynomial on min(|x|,|y|)/max(|x|,|y|).
func Poly5[T num.Float](y, x T) T {
	if y == 0 {
		return axis(y, x)
	}

	yf, xf := float64(y), float64(x)
	absY, absX := math.Abs(yf), math.Abs(xf)

	var res float64
	if absX < absY {
		res = math.Pi/2 - atan5(absX/absY)
	} else {
		res = atan5(absY / absX)
	}

	if xf < 0 {
		res = math.Pi - res
	}
	if yf < 0 {
		res = -res
	}
	return T(res)
}

// atan5 approximates atan(t) for t in [0, 1]
func atan5(t float64) float64 {
	const (
		a1 = 0.995354
		a3 = -0.288679
		a5 = 0.079331
	)
	t2 := t * t
	return t * (a1 + t2*(a3+t2*a5))
}

// axis returns math.Atan2's exact result on the x axis (y = ±0), so both
// polynomials agree with it on signed zeros and never evaluate 0/0.
func axis[T num.Float](y, x T) T {
	if x != x {
		return x
	}
	if x > 0 || (x == 0 && !num.Signbit(x)) {
		return y // ±0
	}
	return num.Copysign(T(math.Pi), y)
}
