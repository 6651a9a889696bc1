package terrain

import "math"

// Hash arithmetic runs on unsigned values while heights are signed.
// Every crossing between the two goes through these helpers, which fall back
// to a default instead of failing.

// signed converts u to a height when it fits the 32-bit height range.
func signed(u uint64) (int, bool) {
	if u > math.MaxInt32 {
		return 0, false
	}
	return int(u), true
}

// signedOr converts u to a height, or returns def when it does not fit.
func signedOr(u uint64, def int) int {
	if v, ok := signed(u); ok {
		return v
	}
	return def
}

// unsignedOr converts v to a hash input, or returns def when v is negative.
func unsignedOr(v int, def uint64) uint64 {
	if v < 0 {
		return def
	}
	return uint64(v)
}

// divisor guards a division by a computed range or population.
func divisor(v int) int {
	if v == 0 {
		return 1
	}
	return v
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
