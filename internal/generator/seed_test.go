package generator

import "testing"

func TestSeedFromText(t *testing.T) {
	testCases := []struct {
		text     string
		expected uint64
	}{
		{"", 0},
		{"1", 0}, // first byte has weight 0
		{"1\n", 10},
		{"1\r\n", 1*'\r' + 2*'\n'},
		{"ab", 98},
		{"abc", 98 + 2*99},
		{"hello", 1*'e' + 2*'l' + 3*'l' + 4*'o'},
	}

	for _, tc := range testCases {
		if got := SeedFromText(tc.text); got != tc.expected {
			t.Errorf("SeedFromText(%q): expected %d, got %d", tc.text, tc.expected, got)
		}
	}
}

func TestNormalizeSeedText(t *testing.T) {
	testCases := map[string]string{
		"seed\n":   "seed",
		"seed\r\n": "seed",
		"seed":     "seed",
		"seed\n\n": "seed\n",
	}
	for in, expected := range testCases {
		if got := NormalizeSeedText(in); got != expected {
			t.Errorf("NormalizeSeedText(%q): expected %q, got %q", in, expected, got)
		}
	}
}
