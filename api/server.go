// Package api exposes terrain generation over HTTP: trigger a run, list the
// catalog, and view a run report.
package api

import (
	"database/sql"
	"errors"
	"fmt"
	"log"
	"net/http"
	"path/filepath"
	"strconv"

	"github.com/banshee-data/terrain.report/internal/analysis"
	"github.com/banshee-data/terrain.report/internal/catalog"
	"github.com/banshee-data/terrain.report/internal/httputil"
	"github.com/banshee-data/terrain.report/internal/mesh"
	"github.com/banshee-data/terrain.report/internal/palette"
	"github.com/banshee-data/terrain.report/internal/rdscene"
	"github.com/banshee-data/terrain.report/internal/report"
	"github.com/banshee-data/terrain.report/internal/security"
	"github.com/banshee-data/terrain.report/internal/synth"
)

type Server struct {
	db        *catalog.DB
	outputDir string
}

func NewServer(db *catalog.DB, outputDir string) *Server {
	return &Server{
		db:        db,
		outputDir: outputDir,
	}
}

func (s *Server) homeHandler(w http.ResponseWriter, r *http.Request) {
	// Handle the home page
	w.Write([]byte("Welcome to the Terrain Server!"))
}

func (s *Server) ServeMux() *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("/generate", s.generateHandler)
	mux.HandleFunc("/runs", s.listRunsHandler)
	mux.HandleFunc("/report", s.reportHandler)
	mux.HandleFunc("/", s.homeHandler)
	return mux
}

// generateHandler runs one terrain generation from form parameters, exports
// the scene file under the output directory and records the run.
func (s *Server) generateHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		httputil.MethodNotAllowed(w)
		return
	}

	p, err := paramsFromForm(r)
	if err != nil {
		httputil.BadRequest(w, err.Error())
		return
	}

	g, err := synth.Generate(p)
	if err != nil {
		httputil.BadRequest(w, err.Error())
		return
	}

	min, max := g.MinMax()
	scale := palette.NewScale(min, max)
	m := mesh.Build(g, scale)

	scenePath := filepath.Join(s.outputDir, rdscene.TerrainFilename(p))
	if err := security.ValidatePathWithinDirectory(scenePath, s.outputDir); err != nil {
		httputil.BadRequest(w, fmt.Sprintf("invalid scene path: %v", err))
		return
	}
	if err := rdscene.ExportTerrain(scenePath, p, m); err != nil {
		httputil.InternalServerError(w, fmt.Sprintf("failed to export scene: %v", err))
		return
	}

	run := catalog.NewRun(p, analysis.Summarize(g), scenePath)
	if err := s.db.InsertRun(&run); err != nil {
		httputil.InternalServerError(w, fmt.Sprintf("failed to record run: %v", err))
		return
	}

	log.Printf("Generated terrain run %s (n=%d D=%g seed=%d) -> %s", run.RunID, p.N, p.Dimension, p.Seed, scenePath)
	httputil.WriteJSONOK(w, run)
}

func (s *Server) listRunsHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		httputil.MethodNotAllowed(w)
		return
	}

	limit := 100
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			httputil.BadRequest(w, "limit must be a positive integer")
			return
		}
		limit = n
	}

	runs, err := s.db.ListRuns(limit)
	if err != nil {
		httputil.InternalServerError(w, fmt.Sprintf("failed to list runs: %v", err))
		return
	}
	if runs == nil {
		runs = []catalog.Run{}
	}

	httputil.WriteJSONOK(w, runs)
}

// reportHandler regenerates the grid from the run's recorded parameters and
// renders the HTML report. Regeneration is deterministic, so the report
// always matches the exported scene.
func (s *Server) reportHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		httputil.MethodNotAllowed(w)
		return
	}

	runID := r.URL.Query().Get("run_id")
	if runID == "" {
		httputil.BadRequest(w, "run_id is required")
		return
	}

	run, err := s.db.GetRun(runID)
	if errors.Is(err, sql.ErrNoRows) {
		httputil.NotFound(w, "run not found")
		return
	}
	if err != nil {
		httputil.InternalServerError(w, fmt.Sprintf("failed to load run: %v", err))
		return
	}

	g, err := synth.Generate(run.Params())
	if err != nil {
		httputil.InternalServerError(w, fmt.Sprintf("failed to regenerate terrain: %v", err))
		return
	}

	min, max := g.MinMax()
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := report.Render(w, run, g, palette.NewScale(min, max)); err != nil {
		log.Printf("Failed to render report for run %s: %v", runID, err)
	}
}

func paramsFromForm(r *http.Request) (synth.Params, error) {
	var p synth.Params

	n, err := strconv.Atoi(r.FormValue("n"))
	if err != nil {
		return p, fmt.Errorf("invalid n: %w", err)
	}
	d, err := strconv.ParseFloat(r.FormValue("d"), 64)
	if err != nil {
		return p, fmt.Errorf("invalid d: %w", err)
	}
	seed, err := strconv.ParseInt(r.FormValue("seed"), 10, 64)
	if err != nil {
		return p, fmt.Errorf("invalid seed: %w", err)
	}

	sigma := 1.0
	if v := r.FormValue("sigma"); v != "" {
		sigma, err = strconv.ParseFloat(v, 64)
		if err != nil {
			return p, fmt.Errorf("invalid sigma: %w", err)
		}
	}

	p = synth.Params{N: n, Dimension: d, Seed: seed, Sigma: sigma}
	return p, p.Validate()
}
