// Package mesh flattens a generated height field into renderable geometry:
// a row-major vertex list with per-vertex colors and a triangle index list,
// two triangles per grid cell. The mesh is built fully in memory so the
// geometry can be inspected and tested independently of any serialization.
package mesh

import (
	"github.com/banshee-data/terrain.report/internal/palette"
	"github.com/banshee-data/terrain.report/internal/synth"
)

// WorldExtent is the world-space footprint of the terrain: the far grid
// corner lands at (WorldExtent, WorldExtent) regardless of grid resolution.
const WorldExtent = 100.0

// Vertex is one mesh vertex: a world-space position and its terrain color.
type Vertex struct {
	X, Y, Z float64
	Color   palette.Color
}

// Triangle indexes three vertices in the mesh vertex list.
type Triangle [3]int

// Mesh is the triangulated terrain. For a grid of size S it holds S^2
// vertices and 2*(S-1)^2 triangles.
type Mesh struct {
	Vertices  []Vertex
	Triangles []Triangle
}

// Build flattens the grid into a mesh. Grid coordinates are scaled by
// WorldExtent/(S-1), heights become the z coordinate unchanged, and colors
// come from classifying each height against the scale. Triangles wind
// {bottom-left, bottom-right, top-left} then {bottom-right, top-right,
// top-left} for every cell.
func Build(g *synth.Grid, scale palette.Scale) *Mesh {
	size := g.Size()
	worldScale := WorldExtent / float64(size-1)

	m := &Mesh{
		Vertices:  make([]Vertex, 0, size*size),
		Triangles: make([]Triangle, 0, 2*(size-1)*(size-1)),
	}

	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			z := g.At(y, x)
			m.Vertices = append(m.Vertices, Vertex{
				X:     float64(x) * worldScale,
				Y:     float64(y) * worldScale,
				Z:     z,
				Color: scale.HeightColor(z),
			})
		}
	}

	for y := 0; y < size-1; y++ {
		for x := 0; x < size-1; x++ {
			bl := y*size + x
			br := y*size + x + 1
			tl := (y+1)*size + x
			tr := (y+1)*size + x + 1
			m.Triangles = append(m.Triangles, Triangle{bl, br, tl}, Triangle{br, tr, tl})
		}
	}

	return m
}
