// Package analysis computes summary statistics over generated height fields
// and renders diagnostic plots. The roughness metric exists to make the
// fractal dimension observable: higher-dimension terrain keeps more
// displacement amplitude at fine scales and so shows a larger variance of
// adjacent-cell height differences.
package analysis

import (
	"math"

	"gonum.org/v1/gonum/stat"

	"github.com/banshee-data/terrain.report/internal/palette"
	"github.com/banshee-data/terrain.report/internal/synth"
)

// Summary captures the statistics recorded for a generation run.
type Summary struct {
	Min       float64 `json:"min_height"`
	Max       float64 `json:"max_height"`
	Mean      float64 `json:"mean_height"`
	StdDev    float64 `json:"stddev_height"`
	Roughness float64 `json:"roughness"`
}

// Summarize computes the run summary for a generated grid.
func Summarize(g *synth.Grid) Summary {
	heights := g.Heights()
	min, max := g.MinMax()
	mean := stat.Mean(heights, nil)
	return Summary{
		Min:       min,
		Max:       max,
		Mean:      mean,
		StdDev:    math.Sqrt(stat.Variance(heights, nil)),
		Roughness: Roughness(g),
	}
}

// Roughness is the variance of height differences between horizontally and
// vertically adjacent cells.
func Roughness(g *synth.Grid) float64 {
	size := g.Size()
	diffs := make([]float64, 0, 2*size*(size-1))
	for i := 0; i < size; i++ {
		for j := 0; j < size-1; j++ {
			diffs = append(diffs, g.At(i, j+1)-g.At(i, j))
			diffs = append(diffs, g.At(j+1, i)-g.At(j, i))
		}
	}
	return stat.Variance(diffs, nil)
}

// BandCount is the number of grid cells classified into one terrain band.
type BandCount struct {
	Band  string `json:"band"`
	Cells int    `json:"cells"`
}

// BandHistogram counts grid cells per terrain band, ordered from lowest to
// highest elevation.
func BandHistogram(g *synth.Grid, scale palette.Scale) []BandCount {
	counts := make(map[string]int)
	for _, h := range g.Heights() {
		counts[palette.BandName(scale.Normalize(h))]++
	}

	names := palette.BandNames()
	out := make([]BandCount, 0, len(names))
	for _, name := range names {
		out = append(out, BandCount{Band: name, Cells: counts[name]})
	}
	return out
}
