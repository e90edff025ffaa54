package moment

import "math"

func floorDiv(a, b int64) int64 {
	q := a / b
	if a%b != 0 && (a < 0) != (b < 0) {
		q--
	}
	return q
}

func mod(a, b int64) int64 {
	r := a % b
	if r != 0 && (r < 0) != (b < 0) {
		r += b
	}
	return r
}

// absFloor rounds towards zero.
func absFloor(x float64) float64 {
	if x < 0 {
		return math.Ceil(x) + 0 // no negative zero
	}
	return math.Floor(x)
}

// absCeil rounds away from zero.
func absCeil(x float64) float64 {
	if x < 0 {
		return math.Floor(x)
	}
	return math.Ceil(x)
}

// absRound rounds half away from zero.
func absRound(x float64) float64 {
	if x < 0 {
		return -math.Round(-x)
	}
	return math.Round(x)
}

// roundHalfUp rounds half towards positive infinity.
func roundHalfUp(x float64) float64 {
	return math.Floor(x + 0.5)
}

func toInt(x float64) int64 {
	if math.IsNaN(x) || math.IsInf(x, 0) {
		return 0
	}
	return int64(absFloor(x))
}
