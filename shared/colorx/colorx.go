// Package colorx provides WCAG contrast math used to pick readable badge text
// colors for event categories.
package colorx

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

const (
	TextDark  = "#000000"
	TextLight = "#FFFFFF"
)

// RelativeLuminance returns the WCAG relative luminance of a "#RRGGBB" color.
// Malformed input yields 0 (treated as black).
func RelativeLuminance(hex string) float64 {
	r, g, b, err := parseHex(hex)
	if err != nil {
		return 0
	}

	return 0.2126*linearize(r) + 0.7152*linearize(g) + 0.0722*linearize(b)
}

// ContrastRatio returns the WCAG contrast ratio between two colors, in the
// range [1, 21].
func ContrastRatio(hexA, hexB string) float64 {
	lumA := RelativeLuminance(hexA)
	lumB := RelativeLuminance(hexB)

	lighter := math.Max(lumA, lumB)
	darker := math.Min(lumA, lumB)

	return (lighter + 0.05) / (darker + 0.05)
}

// TextColorFor returns black or white, whichever contrasts more against the
// given background color.
func TextColorFor(backgroundHex string) string {
	if ContrastRatio(backgroundHex, TextDark) >= ContrastRatio(backgroundHex, TextLight) {
		return TextDark
	}

	return TextLight
}

func parseHex(hex string) (r, g, b float64, err error) {
	cleaned := strings.TrimPrefix(strings.TrimSpace(hex), "#")
	if len(cleaned) != 6 {
		return 0, 0, 0, fmt.Errorf("invalid hex color: %q", hex)
	}

	value, err := strconv.ParseUint(cleaned, 16, 32)
	if err != nil {
		return 0, 0, 0, fmt.Errorf("invalid hex color: %q", hex)
	}

	r = float64(value>>16&0xFF) / 255
	g = float64(value>>8&0xFF) / 255
	b = float64(value&0xFF) / 255

	return r, g, b, nil
}

func linearize(channel float64) float64 {
	if channel <= 0.04045 {
		return channel / 12.92
	}

	return math.Pow((channel+0.055)/1.055, 2.4)
}
