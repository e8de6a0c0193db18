package main

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateCounts(t *testing.T) {
	tests := []struct {
		name                       string
		total, sq, light           int
		wantTotal, wantSq, wantLit int
	}{
		{"defaults pass through", 40, 8, 5, 40, 8, 5},
		{"zero total falls back", 0, 8, 5, 40, 8, 5},
		{"negative superquadric falls back", 40, -1, 5, 40, 8, 5},
		{"counts over total are rebalanced", 10, 8, 5, 10, 5, 5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			total, sq, light := validateCounts(tt.total, tt.sq, tt.light)
			assert.Equal(t, tt.wantTotal, total)
			assert.Equal(t, tt.wantSq, sq)
			assert.LessOrEqual(t, sq+light, total)
		})
	}
}

func TestBuildSceneDeterministic(t *testing.T) {
	a := buildScene(20, 4, 3, newField(7)).Bytes()
	b := buildScene(20, 4, 3, newField(7)).Bytes()
	assert.Equal(t, a, b)

	c := buildScene(20, 4, 3, newField(8)).Bytes()
	assert.NotEqual(t, a, c)
}

func TestBuildSceneContents(t *testing.T) {
	scene := string(buildScene(20, 4, 3, newField(1)).Bytes())

	require.True(t, strings.HasPrefix(scene, "# Superquadrics Demonstration Scene"))
	assert.Contains(t, scene, "WorldBegin\n")
	assert.Contains(t, scene, "WorldEnd\n")
	assert.Contains(t, scene, "SqTorus")
	assert.Contains(t, scene, "Background 0.02 0.02 0.06")

	// 13 regular stars as plain spheres.
	assert.Equal(t, 13, strings.Count(scene, "Sphere 1 -1 1 360"))
	// 3 light stars plus the sun light.
	assert.Equal(t, 4, strings.Count(scene, "PointLight"))
	// Every transform push is popped.
	assert.Equal(t, strings.Count(scene, "XformPush"), strings.Count(scene, "XformPop"))
}
