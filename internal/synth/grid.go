// Package synth generates self-affine fractal height fields by recursive
// midpoint displacement (the diamond-square algorithm). Generation is fully
// deterministic for a given parameter set: the sampler is drawn from in a
// fixed iteration order, so equal seeds reproduce identical terrain.
package synth

import (
	"fmt"
	"math"
)

// Params are the four generation inputs. They are immutable once generation
// starts.
type Params struct {
	N         int     `json:"n"`         // grid exponent; the grid is (2^N + 1) on a side
	Dimension float64 `json:"dimension"` // fractal dimension D, must lie in [2.0, 3.0]
	Seed      int64   `json:"seed"`      // equal seeds reproduce identical terrain
	Sigma     float64 `json:"sigma"`     // initial displacement standard deviation
}

// Validate rejects parameter values outside the generation contract. A
// fractal dimension outside [2.0, 3.0] is never silently clamped.
func (p Params) Validate() error {
	if p.N < 1 {
		return fmt.Errorf("n must be at least 1, got %d", p.N)
	}
	if p.Dimension < 2.0 || p.Dimension > 3.0 {
		return fmt.Errorf("fractal dimension must be between 2.0 and 3.0, got %g", p.Dimension)
	}
	if p.Sigma <= 0 {
		return fmt.Errorf("sigma must be positive, got %g", p.Sigma)
	}
	return nil
}

// Size returns the grid edge length, 2^N + 1.
func (p Params) Size() int {
	return (1 << p.N) + 1
}

// Hurst returns the Hurst exponent H = 3 - D. The displacement amplitude
// decays by 0.5^(0.5*H) before each of the two refinement passes of a stage,
// giving a total decay of 0.5^H per resolution doubling.
func (p Params) Hurst() float64 {
	return 3.0 - p.Dimension
}

// Grid is a square fractal height field. It is mutated only during
// generation and read-only afterwards.
type Grid struct {
	size  int
	cells []float64
}

// newGrid allocates a size x size grid with every cell set to NaN so that
// unwritten cells are detectable after generation.
func newGrid(size int) *Grid {
	cells := make([]float64, size*size)
	for i := range cells {
		cells[i] = math.NaN()
	}
	return &Grid{size: size, cells: cells}
}

// Size returns the grid edge length.
func (g *Grid) Size() int {
	return g.size
}

// At returns the height at (i, j). Both indices must be in [0, Size).
func (g *Grid) At(i, j int) float64 {
	return g.cells[i*g.size+j]
}

func (g *Grid) set(i, j int, v float64) {
	g.cells[i*g.size+j] = v
}

func (g *Grid) add(i, j int, v float64) {
	g.cells[i*g.size+j] += v
}

// Heights returns a copy of all cell heights in row-major order.
func (g *Grid) Heights() []float64 {
	out := make([]float64, len(g.cells))
	copy(out, g.cells)
	return out
}

// MinMax scans the grid once and returns the extreme heights.
func (g *Grid) MinMax() (min, max float64) {
	min, max = g.cells[0], g.cells[0]
	for _, v := range g.cells[1:] {
		if v < min {
			min = v
		}
		if v > max {
			max = v
		}
	}
	return min, max
}

// Generate runs the full midpoint-displacement refinement and returns the
// populated grid.
//
// Each stage halves the active step size and runs, in strict order: amplitude
// decay, the diamond step (cell centers from their four diagonal corners),
// re-randomization of the coarse lattice, a second amplitude decay, the
// square step (boundary edge midpoints from three neighbors, interior edge
// midpoints from four), and a second re-randomization of both the coarse
// lattice and the freshly computed centers. The cumulative jitter applied to
// already-set points every stage keeps coarse features from reading as flat
// blocks once the fine detail arrives.
func Generate(p Params) (*Grid, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}

	n := 1 << p.N // highest grid index
	g := newGrid(n + 1)
	rng := NewSampler(p.Seed)

	decay := math.Pow(0.5, 0.5*p.Hurst())
	delta := p.Sigma

	g.set(0, 0, delta*rng.Next())
	g.set(0, n, delta*rng.Next())
	g.set(n, 0, delta*rng.Next())
	g.set(n, n, delta*rng.Next())

	full, half := n, n/2
	for stage := 1; stage <= p.N; stage++ {
		delta *= decay

		// Diamond step: the center of every full-step cell averages its
		// four diagonal corners plus a fresh displacement.
		for x := half; x < n; x += full {
			for y := half; y < n; y += full {
				avg := (g.At(x+half, y+half) + g.At(x+half, y-half) +
					g.At(x-half, y+half) + g.At(x-half, y-half)) / 4.0
				g.set(x, y, avg+delta*rng.Next())
			}
		}

		// Re-randomize every point already on the coarse lattice.
		for x := 0; x <= n; x += full {
			for y := 0; y <= n; y += full {
				g.add(x, y, delta*rng.Next())
			}
		}

		delta *= decay

		// Square step, boundary case: edge midpoints on the grid border
		// average their three in-grid neighbors.
		for x := half; x < n; x += full {
			g.set(x, 0, avg3(g.At(x+half, 0), g.At(x-half, 0), g.At(x, half))+delta*rng.Next())
			g.set(x, n, avg3(g.At(x+half, n), g.At(x-half, n), g.At(x, n-half))+delta*rng.Next())
			g.set(0, x, avg3(g.At(0, x+half), g.At(0, x-half), g.At(half, x))+delta*rng.Next())
			g.set(n, x, avg3(g.At(n, x+half), g.At(n, x-half), g.At(n-half, x))+delta*rng.Next())
		}

		// Square step, interior case: two passes over the edge midpoints,
		// first those offset along the first axis, then the second.
		for x := half; x < n; x += full {
			for y := full; y < n; y += full {
				avg := (g.At(x, y+half) + g.At(x, y-half) +
					g.At(x+half, y) + g.At(x-half, y)) / 4.0
				g.set(x, y, avg+delta*rng.Next())
			}
		}
		for x := full; x < n; x += full {
			for y := half; y < n; y += full {
				avg := (g.At(x, y+half) + g.At(x, y-half) +
					g.At(x+half, y) + g.At(x-half, y)) / 4.0
				g.set(x, y, avg+delta*rng.Next())
			}
		}

		// Second re-randomization: the coarse lattice again, then the cell
		// centers computed by this stage's diamond step.
		for x := 0; x <= n; x += full {
			for y := 0; y <= n; y += full {
				g.add(x, y, delta*rng.Next())
			}
		}
		for x := half; x < n; x += full {
			for y := half; y < n; y += full {
				g.add(x, y, delta*rng.Next())
			}
		}

		full, half = half, half/2
	}

	return g, nil
}

func avg3(a, b, c float64) float64 {
	return (a + b + c) / 3.0
}
