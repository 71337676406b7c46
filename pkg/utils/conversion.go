package utils

import (
	"math"
	"strings"
)

// NormalizeCode trims a user code and upper-cases it, the canonical stored form.
func NormalizeCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

// RoundTo rounds v half away from zero to the given number of decimals.
func RoundTo(v float64, decimals int) float64 {
	p := math.Pow(10, float64(decimals))
	return math.Round(v*p) / p
}

// ContainsFold reports whether substr is within s, ignoring case.
func ContainsFold(s, substr string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(substr))
}
