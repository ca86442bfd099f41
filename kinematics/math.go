package kinematics

import (
	"math"

	"go.viam.com/rdk/utils"
)

// LimitAngle returns the canonical representative of a in (-180, 180].
func LimitAngle(a float64) float64 {
	wrapped := mod(a, 360)
	if wrapped < 0 {
		wrapped += 360
	}
	if wrapped > 180 {
		wrapped -= 360
	}
	return wrapped
}

// ShortestAngleDiff returns the signed smallest rotation taking b to a,
// in [-180, 180].
func ShortestAngleDiff(a, b float64) float64 {
	diff := math.Mod(a-b, 360)
	if abs(diff) <= 180 {
		return diff
	}
	if diff > 0 {
		return -(360 - diff)
	}
	return 360 + diff
}

// Clamp saturates x to [-m, m].
func Clamp(x, m float64) float64 {
	if m < 0 {
		m = -m
	}
	if x > m {
		return m
	}
	if x < -m {
		return -m
	}
	return x
}

func degToRad(deg float64) float64 { return utils.DegToRad(deg) }
func radToDeg(rad float64) float64 { return utils.RadToDeg(rad) }

func mod(a, b float64) float64 {
	r := a - b*float64(int(a/b))
	return r
}

func abs(a float64) float64 {
	if a < 0 {
		return -a
	}
	return a
}
