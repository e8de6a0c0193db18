// Package report renders an HTML summary of a generation run: the terrain
// band distribution and the raw height histogram.
package report

import (
	"fmt"
	"io"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/go-echarts/go-echarts/v2/opts"

	"github.com/banshee-data/terrain.report/internal/analysis"
	"github.com/banshee-data/terrain.report/internal/catalog"
	"github.com/banshee-data/terrain.report/internal/palette"
	"github.com/banshee-data/terrain.report/internal/synth"
)

const histogramBins = 20

// Render writes the HTML report for a run to w. The grid must be the one
// regenerated from the run's recorded parameters.
func Render(w io.Writer, run *catalog.Run, g *synth.Grid, scale palette.Scale) error {
	page := components.NewPage()
	page.PageTitle = fmt.Sprintf("Terrain Run %s", run.RunID)
	page.AddCharts(bandChart(g, scale), heightChart(g))

	if err := page.Render(w); err != nil {
		return fmt.Errorf("render report for run %s: %w", run.RunID, err)
	}
	return nil
}

func bandChart(g *synth.Grid, scale palette.Scale) *charts.Bar {
	bar := charts.NewBar()
	bar.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{
			Title:    "Terrain Band Distribution",
			Subtitle: "Grid cells per classifier band",
		}),
	)

	hist := analysis.BandHistogram(g, scale)
	names := make([]string, len(hist))
	cells := make([]opts.BarData, len(hist))
	for i, bc := range hist {
		names[i] = bc.Band
		cells[i] = opts.BarData{Value: bc.Cells}
	}

	bar.SetXAxis(names).AddSeries("cells", cells)
	return bar
}

func heightChart(g *synth.Grid) *charts.Bar {
	bar := charts.NewBar()
	bar.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{
			Title:    "Height Histogram",
			Subtitle: fmt.Sprintf("%d equal-width bins over the height range", histogramBins),
		}),
	)

	min, max := g.MinMax()
	width := (max - min) / histogramBins
	counts := make([]int, histogramBins)
	for _, h := range g.Heights() {
		bin := histogramBins - 1
		if width > 0 {
			bin = int((h - min) / width)
			if bin >= histogramBins {
				bin = histogramBins - 1
			}
		}
		counts[bin]++
	}

	labels := make([]string, histogramBins)
	data := make([]opts.BarData, histogramBins)
	for i, c := range counts {
		labels[i] = fmt.Sprintf("%.2f", min+(float64(i)+0.5)*width)
		data[i] = opts.BarData{Value: c}
	}

	bar.SetXAxis(labels).AddSeries("cells", data)
	return bar
}
