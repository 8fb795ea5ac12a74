// Package util provides common helper functions used across the geo-report engine.
package util

import (
	"math"
	"strconv"
	"strings"
)

// TrimQuotes removes leading and trailing double quotes from a string.
func TrimQuotes(s string) string {
	return strings.Trim(s, `"`)
}

// FixEscapeQuotes replaces escaped double quotes ("") with single double quotes (").
func FixEscapeQuotes(s string) string {
	return strings.ReplaceAll(s, `""`, `"`)
}

// ParseDegrees parses a dispatcher argument into whole degrees.
// Accepts integer or float strings and an optional trailing degree sign;
// float values are rounded to the nearest integer.
func ParseDegrees(s string) (int, error) {
	s = strings.TrimSuffix(strings.TrimSpace(TrimQuotes(s)), "°")
	if i, err := strconv.Atoi(s); err == nil {
		return i, nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, err
	}
	return int(math.Round(f)), nil
}

// FormatDegrees builds the textual readout for a rotation value, e.g. "45°".
func FormatDegrees(v int) string {
	return strconv.Itoa(v) + "°"
}
