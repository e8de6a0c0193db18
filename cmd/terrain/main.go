// Command terrain generates one fractal terrain and exports it as an RD
// scene file. Parameters come from flags, or interactively with -interactive.
package main

import (
	"bufio"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"

	"github.com/banshee-data/terrain.report/internal/analysis"
	"github.com/banshee-data/terrain.report/internal/catalog"
	"github.com/banshee-data/terrain.report/internal/mesh"
	"github.com/banshee-data/terrain.report/internal/palette"
	"github.com/banshee-data/terrain.report/internal/rdscene"
	"github.com/banshee-data/terrain.report/internal/synth"
)

var (
	n           = flag.Int("n", 7, "Subdivision count, grid size will be 2^n + 1")
	dimension   = flag.Float64("d", 2.5, "Fractal dimension, 2.0 to 3.0")
	seed        = flag.Int64("seed", 1, "Seed for the Gaussian sampler")
	sigma       = flag.Float64("sigma", 1.0, "Initial standard deviation")
	outDir      = flag.String("out", ".", "Directory for the exported scene file")
	plots       = flag.Bool("plots", false, "Also write heightmap and profile PNGs next to the scene")
	dbPath      = flag.String("db", "", "Record the run in this catalog database (optional)")
	interactive = flag.Bool("interactive", false, "Prompt for parameters instead of using flags")
)

// promptParams reads the generation parameters interactively. An
// out-of-range fractal dimension is re-prompted until valid.
func promptParams(in io.Reader, out io.Writer) (synth.Params, error) {
	r := bufio.NewReader(in)
	var p synth.Params

	fmt.Fprint(out, "Enter n (grid size will be 2^n + 1): ")
	if _, err := fmt.Fscan(r, &p.N); err != nil {
		return p, fmt.Errorf("read n: %w", err)
	}

	fmt.Fprint(out, "Enter D (fractal dimension 2.0-3.0): ")
	if _, err := fmt.Fscan(r, &p.Dimension); err != nil {
		return p, fmt.Errorf("read D: %w", err)
	}
	for p.Dimension < 2.0 || p.Dimension > 3.0 {
		fmt.Fprint(out, "D must be between 2.0 and 3.0. Try again: ")
		if _, err := fmt.Fscan(r, &p.Dimension); err != nil {
			return p, fmt.Errorf("read D: %w", err)
		}
	}

	fmt.Fprint(out, "Enter seed value: ")
	if _, err := fmt.Fscan(r, &p.Seed); err != nil {
		return p, fmt.Errorf("read seed: %w", err)
	}

	fmt.Fprint(out, "Enter sigma (initial standard deviation): ")
	if _, err := fmt.Fscan(r, &p.Sigma); err != nil {
		return p, fmt.Errorf("read sigma: %w", err)
	}

	return p, p.Validate()
}

func main() {
	flag.Parse()

	p := synth.Params{N: *n, Dimension: *dimension, Seed: *seed, Sigma: *sigma}
	if *interactive {
		var err error
		p, err = promptParams(os.Stdin, os.Stdout)
		if err != nil {
			log.Fatalf("Failed to read parameters: %v", err)
		}
	}

	if err := p.Validate(); err != nil {
		log.Fatalf("Invalid parameters: %v", err)
	}

	log.Printf("Generating fractal terrain (n=%d D=%g seed=%d sigma=%g)...", p.N, p.Dimension, p.Seed, p.Sigma)
	g, err := synth.Generate(p)
	if err != nil {
		log.Fatalf("Failed to generate terrain: %v", err)
	}

	min, max := g.MinMax()
	scale := palette.NewScale(min, max)
	m := mesh.Build(g, scale)

	scenePath := filepath.Join(*outDir, rdscene.TerrainFilename(p))
	if err := rdscene.ExportTerrain(scenePath, p, m); err != nil {
		log.Fatalf("Failed to export scene: %v", err)
	}
	log.Printf("Terrain successfully exported to %s", scenePath)

	summary := analysis.Summarize(g)
	log.Printf("Heights: min=%.4f max=%.4f mean=%.4f stddev=%.4f roughness=%.6f",
		summary.Min, summary.Max, summary.Mean, summary.StdDev, summary.Roughness)

	if *plots {
		base := scenePath[:len(scenePath)-len(filepath.Ext(scenePath))]
		if err := analysis.SaveHeightmap(g, base+"_heightmap.png"); err != nil {
			log.Fatalf("Failed to write heightmap: %v", err)
		}
		if err := analysis.SaveProfile(g, base+"_profile.png"); err != nil {
			log.Fatalf("Failed to write profile: %v", err)
		}
		log.Printf("Wrote plots next to %s", scenePath)
	}

	if *dbPath != "" {
		db, err := catalog.NewDB(*dbPath)
		if err != nil {
			log.Fatalf("Failed to open run catalog: %v", err)
		}
		defer db.Close()

		run := catalog.NewRun(p, summary, scenePath)
		if err := db.InsertRun(&run); err != nil {
			log.Fatalf("Failed to record run: %v", err)
		}
		log.Printf("Recorded run %s in %s", run.RunID, *dbPath)
	}
}
