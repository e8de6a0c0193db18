package synth

import (
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParamsValidate(t *testing.T) {
	tests := []struct {
		name    string
		params  Params
		wantErr bool
	}{
		{"valid mid-range", Params{N: 3, Dimension: 2.5, Seed: 1, Sigma: 1.0}, false},
		{"valid lower dimension bound", Params{N: 1, Dimension: 2.0, Seed: 0, Sigma: 0.1}, false},
		{"valid upper dimension bound", Params{N: 1, Dimension: 3.0, Seed: -5, Sigma: 2.0}, false},
		{"n too small", Params{N: 0, Dimension: 2.5, Seed: 1, Sigma: 1.0}, true},
		{"dimension below range", Params{N: 3, Dimension: 1.99, Seed: 1, Sigma: 1.0}, true},
		{"dimension above range", Params{N: 3, Dimension: 3.01, Seed: 1, Sigma: 1.0}, true},
		{"zero sigma", Params{N: 3, Dimension: 2.5, Seed: 1, Sigma: 0}, true},
		{"negative sigma", Params{N: 3, Dimension: 2.5, Seed: 1, Sigma: -1.0}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.params.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestParamsSize(t *testing.T) {
	assert.Equal(t, 3, Params{N: 1}.Size())
	assert.Equal(t, 5, Params{N: 2}.Size())
	assert.Equal(t, 129, Params{N: 7}.Size())
}

func TestGenerateRejectsInvalidParams(t *testing.T) {
	_, err := Generate(Params{N: 3, Dimension: 3.5, Seed: 1, Sigma: 1.0})
	require.Error(t, err)
}

func TestGenerateDeterminism(t *testing.T) {
	p := Params{N: 5, Dimension: 2.4, Seed: 1234, Sigma: 1.0}

	a, err := Generate(p)
	require.NoError(t, err)
	b, err := Generate(p)
	require.NoError(t, err)

	if diff := cmp.Diff(a.Heights(), b.Heights()); diff != "" {
		t.Errorf("two runs with identical parameters diverged (-first +second):\n%s", diff)
	}
}

func TestGenerateSeedChangesCorners(t *testing.T) {
	base := Params{N: 3, Dimension: 2.5, Seed: 42, Sigma: 1.0}
	other := base
	other.Seed = 43

	a, err := Generate(base)
	require.NoError(t, err)
	b, err := Generate(other)
	require.NoError(t, err)

	// The corners consume the first four draws, so a different seed changes
	// all of them with overwhelming probability.
	n := a.Size() - 1
	assert.NotEqual(t, a.At(0, 0), b.At(0, 0))
	assert.NotEqual(t, a.At(0, n), b.At(0, n))
	assert.NotEqual(t, a.At(n, 0), b.At(n, 0))
	assert.NotEqual(t, a.At(n, n), b.At(n, n))
}

func TestGenerateCompleteness(t *testing.T) {
	for _, n := range []int{1, 2, 3, 4, 5} {
		p := Params{N: n, Dimension: 2.5, Seed: 7, Sigma: 1.0}
		g, err := Generate(p)
		require.NoError(t, err)
		require.Equal(t, p.Size(), g.Size())

		for i := 0; i < g.Size(); i++ {
			for j := 0; j < g.Size(); j++ {
				if math.IsNaN(g.At(i, j)) {
					t.Fatalf("n=%d: cell (%d,%d) never written", n, i, j)
				}
			}
		}
	}
}

func TestGridMinMax(t *testing.T) {
	g, err := Generate(Params{N: 4, Dimension: 2.5, Seed: 99, Sigma: 1.0})
	require.NoError(t, err)

	min, max := g.MinMax()
	assert.Less(t, min, max)
	for _, h := range g.Heights() {
		assert.GreaterOrEqual(t, h, min)
		assert.LessOrEqual(t, h, max)
	}
}

func TestGridHeightsIsACopy(t *testing.T) {
	g, err := Generate(Params{N: 2, Dimension: 2.5, Seed: 1, Sigma: 1.0})
	require.NoError(t, err)

	heights := g.Heights()
	heights[0] = 1e9
	assert.NotEqual(t, 1e9, g.At(0, 0))
}
