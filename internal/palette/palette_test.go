package palette

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestColorAtPureBands(t *testing.T) {
	tests := []struct {
		name       string
		normalized float64
		want       Color
	}{
		{"floor of range", 0.0, DeepWater},
		{"deep water", 0.10, DeepWater},
		{"shallow water", 0.25, ShallowWater},
		{"sand", 0.35, Sand},
		{"grass", 0.50, Grass},
		{"mountain", 0.70, Mountain},
		{"snow", 0.90, Snow},
		{"ceiling of range", 1.0, Snow},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ColorAt(tt.normalized))
		})
	}
}

func TestColorAtBlendBoundaries(t *testing.T) {
	// At the edges of every blend zone the color must equal the adjacent
	// pure band color exactly, and the zone midpoint must average them.
	for i, th := range thresholds {
		lower, upper := bandColors[i], bandColors[i+1]

		assert.Equal(t, lower, ColorAt(th-BlendWidth), "lower edge of threshold %g", th)
		assert.Equal(t, upper, ColorAt(th+BlendWidth), "upper edge of threshold %g", th)

		mid := ColorAt(th)
		assert.InDelta(t, (lower.R+upper.R)/2, mid.R, 1e-12)
		assert.InDelta(t, (lower.G+upper.G)/2, mid.G, 1e-12)
		assert.InDelta(t, (lower.B+upper.B)/2, mid.B, 1e-12)
	}
}

func TestColorAtContinuity(t *testing.T) {
	// Sweep the whole range in small steps; adjacent samples must never jump
	// by more than the blend slope allows.
	const step = 1e-4
	prev := ColorAt(0)
	for x := step; x <= 1.0; x += step {
		c := ColorAt(x)
		maxDelta := math.Max(math.Abs(c.R-prev.R), math.Max(math.Abs(c.G-prev.G), math.Abs(c.B-prev.B)))
		if maxDelta > step/(2*BlendWidth)*1.01 {
			t.Fatalf("color discontinuity at normalized height %g: delta %g", x, maxDelta)
		}
		prev = c
	}
}

func TestScaleNormalize(t *testing.T) {
	s := NewScale(-2.0, 2.0)
	assert.Equal(t, 0.0, s.Normalize(-2.0))
	assert.Equal(t, 1.0, s.Normalize(2.0))
	assert.Equal(t, 0.5, s.Normalize(0.0))
}

func TestScaleDegenerateFlatGrid(t *testing.T) {
	// A flat grid must classify deterministically instead of propagating NaN.
	s := NewScale(3.0, 3.0)
	n := s.Normalize(3.0)
	assert.False(t, math.IsNaN(n))
	assert.Equal(t, 0.5, n)
	assert.Equal(t, Grass, s.HeightColor(3.0))
}

func TestHeightColorExtremes(t *testing.T) {
	s := NewScale(-1.5, 4.25)
	assert.Equal(t, DeepWater, s.HeightColor(-1.5))
	assert.Equal(t, Snow, s.HeightColor(4.25))
}

func TestBandName(t *testing.T) {
	assert.Equal(t, "deep water", BandName(0.0))
	assert.Equal(t, "shallow water", BandName(0.25))
	assert.Equal(t, "sand", BandName(0.35))
	assert.Equal(t, "grass", BandName(0.5))
	assert.Equal(t, "mountain", BandName(0.7))
	assert.Equal(t, "snow", BandName(0.95))
}
