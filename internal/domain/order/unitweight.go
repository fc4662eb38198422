package order

import (
	"regexp"
	"strconv"
	"strings"
)

// Unit weight resolution order: explicit declared value, else a weight parsed
// from the packaging label, else the category default.
func ResolveUnitWeightKg(declared *float64, packagingLabel string, categoryDefaultKg float64) float64 {
	if declared != nil && *declared > 0 {
		return *declared
	}
	if kg := ParsePackagingWeightKg(packagingLabel); kg > 0 {
		return kg
	}
	return categoryDefaultKg
}

// Matches "500g", "1.5 kg", "75cl", "0,75 l" and multi-pack labels such as
// "6 x 250g". Comma decimal separators are accepted.
var packagingRe = regexp.MustCompile(`(?i)(?:(\d+)\s*[x×]\s*)?(\d+(?:[.,]\d+)?)\s*(kg|g|l|cl|ml)\b`)

// ParsePackagingWeightKg extracts a weight in kg from a packaging label.
// Volumes are converted 1:1 (a litre counts as a kilogram for apportioning
// delivery cost). Returns 0 when nothing parseable is found.
func ParsePackagingWeightKg(label string) float64 {
	m := packagingRe.FindStringSubmatch(label)
	if m == nil {
		return 0
	}

	count := 1.0
	if m[1] != "" {
		if c, err := strconv.ParseFloat(m[1], 64); err == nil && c > 0 {
			count = c
		}
	}

	value, err := strconv.ParseFloat(strings.ReplaceAll(m[2], ",", "."), 64)
	if err != nil || value <= 0 {
		return 0
	}

	switch strings.ToLower(m[3]) {
	case "kg", "l":
		return count * value
	case "g", "ml":
		return count * value / 1000
	case "cl":
		return count * value / 100
	default:
		return 0
	}
}
