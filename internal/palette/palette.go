// Package palette classifies terrain heights into colors. Heights are
// normalized against the full range of a grid, then mapped through six fixed
// elevation bands with blended transitions so that band boundaries read as
// gradients rather than hard lines.
package palette

// Color is an RGB triple with components in [0, 1].
type Color struct {
	R, G, B float64
}

// Band colors, lowest to highest elevation.
var (
	DeepWater    = Color{0.0, 0.0, 0.5}
	ShallowWater = Color{0.0, 0.0, 0.8}
	Sand         = Color{0.76, 0.7, 0.5}
	Grass        = Color{0.0, 0.6, 0.0}
	Mountain     = Color{0.5, 0.35, 0.05}
	Snow         = Color{1.0, 1.0, 1.0}
)

// Band thresholds on the normalized height and the half-width of the blend
// zone around each threshold.
const (
	DeepWaterThreshold    = 0.20
	ShallowWaterThreshold = 0.30
	SandThreshold         = 0.40
	GrassThreshold        = 0.60
	MountainThreshold     = 0.80
	BlendWidth            = 0.03
)

var (
	bandColors = []Color{DeepWater, ShallowWater, Sand, Grass, Mountain, Snow}
	bandNames  = []string{"deep water", "shallow water", "sand", "grass", "mountain", "snow"}
	thresholds = []float64{
		DeepWaterThreshold,
		ShallowWaterThreshold,
		SandThreshold,
		GrassThreshold,
		MountainThreshold,
	}
)

// Scale normalizes raw heights into [0, 1]. Compute it once per grid from the
// scanned min/max and pass it to every classification call; the classifier
// itself holds no state.
type Scale struct {
	Min, Max float64
}

// NewScale returns a Scale spanning the given height range.
func NewScale(min, max float64) Scale {
	return Scale{Min: min, Max: max}
}

// Normalize maps h into [0, 1]. A flat grid (Max == Min) has no meaningful
// ordering, so every height normalizes to the band midpoint 0.5 instead of
// dividing by zero.
func (s Scale) Normalize(h float64) float64 {
	if s.Max == s.Min {
		return 0.5
	}
	return (h - s.Min) / (s.Max - s.Min)
}

// HeightColor classifies a raw height against the scale.
func (s Scale) HeightColor(h float64) Color {
	return ColorAt(s.Normalize(h))
}

// ColorAt returns the color for a normalized height. Inside a band the pure
// band color is returned; within BlendWidth of a threshold the two adjacent
// band colors are interpolated linearly across the zone, so the mapping is
// continuous from deep water through snow.
func ColorAt(normalized float64) Color {
	for i, th := range thresholds {
		if normalized < th-BlendWidth {
			return bandColors[i]
		}
		if normalized < th+BlendWidth {
			t := (normalized - (th - BlendWidth)) / (2 * BlendWidth)
			return lerpColor(t, bandColors[i], bandColors[i+1])
		}
	}
	return Snow
}

// BandName returns the name of the band a normalized height falls in. Blend
// zones are split at the threshold itself.
func BandName(normalized float64) string {
	for i, th := range thresholds {
		if normalized < th {
			return bandNames[i]
		}
	}
	return bandNames[len(bandNames)-1]
}

// BandNames lists the band names from lowest to highest elevation.
func BandNames() []string {
	out := make([]string, len(bandNames))
	copy(out, bandNames)
	return out
}

func lerpColor(t float64, a, b Color) Color {
	return Color{
		R: lerp(t, a.R, b.R),
		G: lerp(t, a.G, b.G),
		B: lerp(t, a.B, b.B),
	}
}

func lerp(t, a, b float64) float64 {
	return a + t*(b-a)
}
