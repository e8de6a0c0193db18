package main

import (
	"math"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateTrack(t *testing.T) {
	s := newSource(1)
	tr := generateTrack(s)

	// The first point is always active and starts inside the source sphere.
	require.True(t, tr.points[0].active)
	p := tr.points[0].pos
	dist := math.Sqrt(p[0]*p[0] + p[1]*p[1] + p[2]*p[2])
	assert.LessOrEqual(t, dist, sourceRadius)
	assert.Equal(t, coreColor, tr.points[0].color)

	// Active points form one prefix: no gaps after termination.
	ended := false
	for i := 0; i < pointsPerTrack; i++ {
		if !tr.points[i].active {
			ended = true
		} else {
			assert.False(t, ended, "active point %d after track ended", i)
		}
	}
}

func TestRegionOf(t *testing.T) {
	tests := []struct {
		name           string
		pos            [3]float64
		wantColor      [3]float64
		wantAbsorption float64
	}{
		{"origin is core", [3]float64{0, 0, 0}, coreColor, coreAbsorption},
		{"mid radius is reflector", [3]float64{0, 4.5, 0}, reflectorColor, reflectorAbsorption},
		{"outside reflector", [3]float64{7, 0, 0}, outerColor, outerAbsorption},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			color, absorption := regionOf(tt.pos)
			assert.Equal(t, tt.wantColor, color)
			assert.Equal(t, tt.wantAbsorption, absorption)
		})
	}
}

func TestBuildSceneDeterministic(t *testing.T) {
	gen := func(seed int64) []byte {
		s := newSource(seed)
		tracks := make([]track, 25)
		for i := range tracks {
			tracks[i] = generateTrack(s)
		}
		return buildScene(tracks).Bytes()
	}

	assert.Equal(t, gen(7), gen(7))
	assert.NotEqual(t, gen(7), gen(8))
}

func TestBuildSceneContents(t *testing.T) {
	s := newSource(1)
	tracks := make([]track, 25)
	segments := 0
	for i := range tracks {
		tracks[i] = generateTrack(s)
		segments += tracks[i].segments()
	}

	scene := string(buildScene(tracks).Bytes())
	require.True(t, strings.HasPrefix(scene, "# Neutron Tracks Visualization Scene"))
	assert.Contains(t, scene, "Display \"Neutron Tracks Visualization\" \"Screen\" \"rgbsingle\"")

	// Both region boundaries are drawn as wireframes.
	assert.Equal(t, 2, strings.Count(scene, "OptionBool \"Wireframe\" true"))
	assert.Equal(t, 2, strings.Count(scene, "OptionBool \"Wireframe\" false"))

	// One tube per counted segment, announced in the header comment.
	assert.Equal(t, segments, strings.Count(scene, "Tube "))
	assert.Contains(t, scene, "WorldEnd\n")
}
