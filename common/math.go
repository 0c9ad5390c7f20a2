package common

import "math"

func Lerp(a, b, t float64) float64 {
	return a + t*(b-a)
}

// Sign returns -1, 0 or 1.
func Sign(v float64) float64 {
	switch {
	case v > 0:
		return 1
	case v < 0:
		return -1
	default:
		return 0
	}
}

func Clamp(v, lo, hi float64) float64 {
	if lo > hi {
		lo, hi = hi, lo
	}
	return math.Max(lo, math.Min(hi, v))
}

// PingPong bounces t between 0 and length.
func PingPong(t, length float64) float64 {
	if length <= 0 {
		return 0
	}
	t = math.Mod(math.Abs(t), length*2)
	if t > length {
		return length*2 - t
	}
	return t
}
