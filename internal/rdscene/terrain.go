package rdscene

import (
	"fmt"
	"strings"

	"github.com/banshee-data/terrain.report/internal/mesh"
	"github.com/banshee-data/terrain.report/internal/synth"
)

// TerrainFilename derives the conventional output filename from the
// generation parameters so scene files are traceable to the run that made
// them. Example: n=7, D=2.5, seed=123 -> "t7d2_5s123.rd". The decimal point
// in D becomes an underscore and the seed is truncated to its last three
// digits.
func TerrainFilename(p synth.Params) string {
	d := strings.ReplaceAll(fmt.Sprintf("%.1f", p.Dimension), ".", "_")
	return fmt.Sprintf("t%dd%ss%d.rd", p.N, d, p.Seed%1000)
}

// TerrainScene serializes the complete terrain scene: parameter header,
// display and camera setup, lighting, a matte surface, and the mesh as a
// PolySet.
func TerrainScene(p synth.Params, m *mesh.Mesh) *Writer {
	w := NewWriter()

	w.Commentf("Fractal Terrain PolySet")
	w.Commentf("Generated with parameters: n=%d D=%g seed=%d sigma=%g", p.N, p.Dimension, p.Seed, p.Sigma)
	w.Blank()

	w.Display("Fractal Terrain", "Screen", "rgbdouble")
	w.Format(800, 600)
	w.Blank()

	w.Commentf("Camera Settings")
	w.CameraEye(150, 150, 50)
	w.CameraAt(50, 50, -18)
	w.CameraUp(0, 0, 1)
	w.CameraFOV(38)
	w.Blank()

	w.WorldBegin()

	w.Commentf("Lighting Settings")
	w.AmbientLight(0.6, 0.6, 0.6, 1.0)
	w.FarLight(0, 0, 1, 1.0, 1.0, 1.0, 1.0)
	w.FarLight(1, 1, -1, 0.7, 0.7, 0.7, 0.5)
	w.Blank()

	w.Commentf("Surface settings")
	w.Surface("matte")
	w.Ka(0.8)
	w.Kd(0.7)
	w.Blank()

	w.PolySet(m)
	w.WorldEnd()

	return w
}

// ExportTerrain serializes the terrain scene and writes it to path
// atomically with respect to partial output.
func ExportTerrain(path string, p synth.Params, m *mesh.Mesh) error {
	return TerrainScene(p, m).WriteFile(path)
}
