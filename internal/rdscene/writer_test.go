package rdscene

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/banshee-data/terrain.report/internal/mesh"
	"github.com/banshee-data/terrain.report/internal/palette"
	"github.com/banshee-data/terrain.report/internal/synth"
)

func TestTerrainFilename(t *testing.T) {
	tests := []struct {
		name   string
		params synth.Params
		want   string
	}{
		{"one decimal place", synth.Params{N: 7, Dimension: 2.5, Seed: 123}, "t7d2_5s123.rd"},
		{"dimension rounds to one decimal", synth.Params{N: 3, Dimension: 2.25, Seed: 7}, "t3d2_2s7.rd"},
		{"integer dimension keeps decimal", synth.Params{N: 2, Dimension: 3.0, Seed: 42}, "t2d3_0s42.rd"},
		{"seed truncated to three digits", synth.Params{N: 5, Dimension: 2.0, Seed: 98765}, "t5d2_0s765.rd"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, TerrainFilename(tt.params))
		})
	}
}

func generateMesh(t *testing.T, p synth.Params) *mesh.Mesh {
	t.Helper()
	g, err := synth.Generate(p)
	require.NoError(t, err)
	min, max := g.MinMax()
	return mesh.Build(g, palette.NewScale(min, max))
}

func TestTerrainSceneStructure(t *testing.T) {
	p := synth.Params{N: 2, Dimension: 2.5, Seed: 42, Sigma: 1.0}
	m := generateMesh(t, p)

	scene := string(TerrainScene(p, m).Bytes())
	lines := strings.Split(strings.TrimRight(scene, "\n"), "\n")

	assert.Equal(t, "# Fractal Terrain PolySet", lines[0])
	assert.Contains(t, lines[1], "n=2 D=2.5 seed=42 sigma=1")

	// Directives appear in render order.
	idxDisplay := strings.Index(scene, "Display \"Fractal Terrain\" \"Screen\" \"rgbdouble\"")
	idxWorldBegin := strings.Index(scene, "WorldBegin")
	idxPolySet := strings.Index(scene, "PolySet \"PC\"")
	idxWorldEnd := strings.Index(scene, "WorldEnd")
	require.True(t, idxDisplay >= 0 && idxWorldBegin >= 0 && idxPolySet >= 0 && idxWorldEnd >= 0)
	assert.Less(t, idxDisplay, idxWorldBegin)
	assert.Less(t, idxWorldBegin, idxPolySet)
	assert.Less(t, idxPolySet, idxWorldEnd)

	// Counts line: 25 vertices, 32 triangles for a 5x5 grid.
	assert.Contains(t, scene, "PolySet \"PC\"\n25 32\n")
}

func TestTerrainSceneGeometryLines(t *testing.T) {
	p := synth.Params{N: 2, Dimension: 2.5, Seed: 42, Sigma: 1.0}
	m := generateMesh(t, p)

	scene := string(TerrainScene(p, m).Bytes())
	_, body, found := strings.Cut(scene, "25 32\n")
	require.True(t, found)

	lines := strings.Split(body, "\n")
	require.GreaterOrEqual(t, len(lines), 25+32)

	// One "x y z r g b" line per vertex.
	for i := 0; i < 25; i++ {
		fields := strings.Fields(lines[i])
		assert.Len(t, fields, 6, "vertex line %d: %q", i, lines[i])
	}

	// One "-1"-terminated index line per triangle.
	for i := 25; i < 25+32; i++ {
		fields := strings.Fields(lines[i])
		require.Len(t, fields, 4, "triangle line %d: %q", i, lines[i])
		assert.Equal(t, "-1", fields[3])
	}
}

func TestExportTerrainWritesFile(t *testing.T) {
	p := synth.Params{N: 2, Dimension: 2.5, Seed: 42, Sigma: 1.0}
	m := generateMesh(t, p)

	path := filepath.Join(t.TempDir(), TerrainFilename(p))
	require.NoError(t, ExportTerrain(path, p, m))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "WorldEnd")
}

func TestExportTerrainFailsAtomically(t *testing.T) {
	p := synth.Params{N: 1, Dimension: 2.5, Seed: 1, Sigma: 1.0}
	m := generateMesh(t, p)

	// Writing into a missing directory must fail and leave nothing behind.
	missing := filepath.Join(t.TempDir(), "does", "not", "exist", "scene.rd")
	err := ExportTerrain(missing, p, m)
	require.Error(t, err)
	_, statErr := os.Stat(missing)
	assert.True(t, os.IsNotExist(statErr))
}

func TestWriterDirectives(t *testing.T) {
	w := NewWriter()
	w.XformPush()
	w.Translate(1, 2, 3)
	w.Rotate("X", 45)
	w.Scale(2, 2, 2)
	w.Color(0.5, 0.25, 0.125)
	w.SqSphere(1, 0.3, 0.3, -1, 1, 360)
	w.SqTorus(0.8, 0.4, 1, 0.2, -180, 180, 360)
	w.PointLight(0, 0, 0, 1, 1, 0.7, 12)
	w.XformPop()

	want := fmt.Sprintf("XformPush\n"+
		"Translate 1 2 3\n"+
		"Rotate %q 45\n"+
		"Scale 2 2 2\n"+
		"Color 0.5 0.25 0.125\n"+
		"SqSphere 1 0.3 0.3 -1 1 360\n"+
		"SqTorus 0.8 0.4 1 0.2 -180 180 360\n"+
		"PointLight 0 0 0 1 1 0.7 12\n"+
		"XformPop\n", "X")
	assert.Equal(t, want, string(w.Bytes()))
}
