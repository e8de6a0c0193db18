package analysis

import (
	"fmt"
	"image/color"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"github.com/banshee-data/terrain.report/internal/palette"
	"github.com/banshee-data/terrain.report/internal/synth"
)

// heightGrid adapts a Grid to gonum/plot's heat map data interface.
type heightGrid struct {
	g *synth.Grid
}

func (h heightGrid) Dims() (c, r int)   { return h.g.Size(), h.g.Size() }
func (h heightGrid) Z(c, r int) float64 { return h.g.At(r, c) }
func (h heightGrid) X(c int) float64    { return float64(c) }
func (h heightGrid) Y(r int) float64    { return float64(r) }

// bandPalette samples the terrain classifier so the heat map shows the same
// band colors as the exported mesh.
type bandPalette struct {
	colors []color.Color
}

func (p bandPalette) Colors() []color.Color { return p.colors }

func newBandPalette(stops int) bandPalette {
	colors := make([]color.Color, stops)
	for i := range colors {
		c := palette.ColorAt(float64(i) / float64(stops-1))
		colors[i] = color.RGBA{
			R: uint8(c.R * 255),
			G: uint8(c.G * 255),
			B: uint8(c.B * 255),
			A: 255,
		}
	}
	return bandPalette{colors: colors}
}

// SaveHeightmap renders the grid as a terrain-colored heat map PNG.
func SaveHeightmap(g *synth.Grid, path string) error {
	p := plot.New()
	p.Title.Text = "Terrain Height Field"
	p.X.Label.Text = "Column"
	p.Y.Label.Text = "Row"

	p.Add(plotter.NewHeatMap(heightGrid{g: g}, newBandPalette(64)))

	if err := p.Save(8*vg.Inch, 8*vg.Inch, path); err != nil {
		return fmt.Errorf("save heightmap: %w", err)
	}
	return nil
}

// SaveProfile renders the elevation along the main diagonal as a line plot.
func SaveProfile(g *synth.Grid, path string) error {
	size := g.Size()
	pts := make(plotter.XYs, size)
	for i := 0; i < size; i++ {
		pts[i] = plotter.XY{X: float64(i), Y: g.At(i, i)}
	}

	p := plot.New()
	p.Title.Text = "Diagonal Elevation Profile"
	p.X.Label.Text = "Cell"
	p.Y.Label.Text = "Height"

	line, err := plotter.NewLine(pts)
	if err != nil {
		return fmt.Errorf("profile line: %w", err)
	}
	line.Width = vg.Points(1)
	p.Add(line)

	if err := p.Save(14*vg.Inch, 6*vg.Inch, path); err != nil {
		return fmt.Errorf("save profile: %w", err)
	}
	return nil
}
