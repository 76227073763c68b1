package colorx_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"carnaval/shared/colorx"
)

func TestRelativeLuminance(t *testing.T) {
	tests := []struct {
		name     string
		hex      string
		expected float64
	}{
		{
			name:     "black",
			hex:      "#000000",
			expected: 0,
		},
		{
			name:     "white",
			hex:      "#FFFFFF",
			expected: 1,
		},
		{
			name:     "malformed input treated as black",
			hex:      "not-a-color",
			expected: 0,
		},
		{
			name:     "missing hash prefix still parses",
			hex:      "FFFFFF",
			expected: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := colorx.RelativeLuminance(tt.hex)

			assert.InDelta(t, tt.expected, got, 0.001)
		})
	}
}

func TestContrastRatio(t *testing.T) {
	tests := []struct {
		name     string
		hexA     string
		hexB     string
		expected float64
		delta    float64
	}{
		{
			name: "black on white is maximal",
			hexA: "#000000", hexB: "#FFFFFF",
			expected: 21, delta: 0.01,
		},
		{
			name: "identical colors have no contrast",
			hexA: "#3366CC", hexB: "#3366CC",
			expected: 1, delta: 0.01,
		},
		{
			name: "order does not matter",
			hexA: "#FFFFFF", hexB: "#000000",
			expected: 21, delta: 0.01,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := colorx.ContrastRatio(tt.hexA, tt.hexB)

			assert.InDelta(t, tt.expected, got, tt.delta)
		})
	}
}

func TestTextColorFor(t *testing.T) {
	tests := []struct {
		name       string
		background string
		expected   string
	}{
		{
			name:       "dark background takes light text",
			background: "#1A1A2E",
			expected:   colorx.TextLight,
		},
		{
			name:       "light background takes dark text",
			background: "#FFD700",
			expected:   colorx.TextDark,
		},
		{
			name:       "white background takes dark text",
			background: "#FFFFFF",
			expected:   colorx.TextDark,
		},
		{
			name:       "malformed background falls back to light text",
			background: "??",
			expected:   colorx.TextLight,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, colorx.TextColorFor(tt.background))
		})
	}
}
