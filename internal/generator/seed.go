package generator

import "strings"

// NormalizeSeedText strips the line terminator a reader leaves on the seed.
func NormalizeSeedText(text string) string {
	text = strings.TrimSuffix(text, "\n")
	return strings.TrimSuffix(text, "\r")
}

// SeedFromText derives the integer seed as the sum of each byte weighted by
// its position (the first byte has weight 0). The sum wraps on overflow.
// Collisions between inputs are expected. The text is used as given; callers
// strip line terminators with NormalizeSeedText first.
func SeedFromText(text string) uint64 {
	var total uint64
	for i := 0; i < len(text); i++ {
		total += uint64(i) * uint64(text[i])
	}
	return total
}
