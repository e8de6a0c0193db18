// Command neutron writes a neutron transport visualization scene: scattering
// tracks traced from a central source through core and reflector regions,
// drawn as colored tube segments.
package main

import (
	"flag"
	"log"
	"math"
	"math/rand/v2"

	"gonum.org/v1/gonum/stat/distuv"

	"github.com/banshee-data/terrain.report/internal/rdscene"
)

var (
	numTracks = flag.Int("tracks", 250, "Number of neutron tracks")
	seed      = flag.Int64("seed", 1, "Seed for track generation")
	out       = flag.String("out", "neutron.rd", "Output scene file")
)

const (
	pointsPerTrack = 20
	maxTrackLength = 15.0
	sourceRadius   = 0.5
	coreRadius     = 3.0
	reflectorRad   = 6.0
	curvature      = 0.4
	lineThickness  = 1.5

	coreAbsorption      = 0.1
	reflectorAbsorption = 0.4
	outerAbsorption     = 0.8
)

var (
	coreColor      = [3]float64{1.0, 0.3, 0.3}
	reflectorColor = [3]float64{0.3, 0.7, 1.0}
	outerColor     = [3]float64{1.0, 1.0, 0.3}
)

type trackPoint struct {
	pos    [3]float64
	color  [3]float64
	active bool
}

type track struct {
	points [pointsPerTrack]trackPoint
}

// source draws the uniform variates driving the simulation from one seeded
// generator so the scene reproduces from the seed.
type source struct {
	dist distuv.Uniform
}

func newSource(seed int64) *source {
	return &source{dist: distuv.Uniform{
		Min: 0, Max: 1,
		Src: rand.NewPCG(uint64(seed), uint64(seed)+1),
	}}
}

func (s *source) uniform() float64 { return s.dist.Rand() }

// regionOf classifies a position by its distance from the origin and returns
// the region color and absorption probability there.
func regionOf(pos [3]float64) ([3]float64, float64) {
	dist := math.Sqrt(pos[0]*pos[0] + pos[1]*pos[1] + pos[2]*pos[2])
	switch {
	case dist < coreRadius:
		return coreColor, coreAbsorption
	case dist < reflectorRad:
		return reflectorColor, reflectorAbsorption
	default:
		return outerColor, outerAbsorption
	}
}

func normalize(v *[3]float64) {
	length := math.Sqrt(v[0]*v[0] + v[1]*v[1] + v[2]*v[2])
	v[0] /= length
	v[1] /= length
	v[2] /= length
}

// generateTrack traces one neutron from a random point inside the source.
// Each step perturbs the direction to simulate scattering, and the track
// terminates probabilistically on the absorption rate of the current region.
func generateTrack(s *source) track {
	var t track

	phi := s.uniform() * 2 * math.Pi
	costheta := 2*s.uniform() - 1
	sintheta := math.Sqrt(1 - costheta*costheta)
	r := sourceRadius * math.Cbrt(s.uniform())

	pos := [3]float64{
		r * sintheta * math.Cos(phi),
		r * sintheta * math.Sin(phi),
		r * costheta,
	}
	dir := [3]float64{
		sintheta*math.Cos(phi) + (s.uniform()-0.5)*0.5,
		sintheta*math.Sin(phi) + (s.uniform()-0.5)*0.5,
		costheta + (s.uniform()-0.5)*0.5,
	}
	normalize(&dir)

	color, _ := regionOf(pos)
	t.points[0] = trackPoint{pos: pos, color: color, active: true}

	const step = maxTrackLength / pointsPerTrack
	for i := 1; i < pointsPerTrack; i++ {
		dir[0] += (s.uniform()*2 - 1) * curvature
		dir[1] += (s.uniform()*2 - 1) * curvature
		dir[2] += (s.uniform()*2 - 1) * curvature
		normalize(&dir)

		pos[0] += dir[0] * step
		pos[1] += dir[1] * step
		pos[2] += dir[2] * step

		color, absorption := regionOf(pos)
		t.points[i] = trackPoint{pos: pos, color: color, active: true}

		if s.uniform() < absorption {
			break
		}
	}

	return t
}

// segments counts the tube segments the track will draw: one per pair of
// consecutive active points.
func (t *track) segments() int {
	n := 0
	for i := 1; i < pointsPerTrack; i++ {
		if t.points[i].active && t.points[i-1].active {
			n++
		}
	}
	return n
}

func renderRegionBoundary(w *rdscene.Writer, comment string, color [3]float64, radius, ka, kd, specExp float64) {
	w.Commentf("%s", comment)
	w.XformPush()
	w.Color(color[0], color[1], color[2])
	w.Surface("metal")
	w.Ka(ka)
	w.Kd(kd)
	w.Ks(1.0)
	w.Specular(1.0, 1.0, 1.0, specExp)
	w.OptionBool("Wireframe", true)
	w.Sphere(radius, -radius, radius, 360)
	w.OptionBool("Wireframe", false)
	w.XformPop()
	w.Blank()
}

func renderTrack(w *rdscene.Writer, t track) {
	for i := 1; i < pointsPerTrack; i++ {
		p, prev := t.points[i], t.points[i-1]
		if !p.active || !prev.active {
			continue
		}
		w.XformPush()
		w.Color(p.color[0], p.color[1], p.color[2])
		w.Surface("plastic")
		w.Ka(0.8)
		w.Kd(0.8)
		w.Ks(0.3)
		w.Tube(prev.pos[0], prev.pos[1], prev.pos[2], p.pos[0], p.pos[1], p.pos[2], lineThickness/40)
		w.XformPop()
	}
}

func buildScene(tracks []track) *rdscene.Writer {
	w := rdscene.NewWriter()

	w.Commentf("Neutron Tracks Visualization Scene")
	w.Display("Neutron Tracks Visualization", "Screen", "rgbsingle")
	w.Format(800, 600)
	w.OptionReal("Divisions", 20)
	w.Blank()

	w.CameraEye(0, 15, 15)
	w.CameraAt(0, 0, 0)
	w.CameraUp(0, 1, 0)
	w.CameraFOV(40)
	w.Clipping(0.1, 1000)
	w.Blank()

	w.Background(0.05, 0.05, 0.12)
	w.Blank()

	w.WorldBegin()

	w.Commentf("Base ambient light to illuminate everything")
	w.AmbientLight(0.6, 0.6, 0.65, 1.0)
	w.Commentf("Primary directional light")
	w.FarLight(1, 1, 1, 1.0, 1.0, 1.0, 1.5)
	w.Commentf("Point lights to highlight areas")
	w.PointLight(10, 15, 10, 1.0, 1.0, 1.0, 1.8)
	w.PointLight(-10, 15, -10, 0.9, 0.9, 1.0, 1.8)
	w.PointLight(0, 15, 0, 1.0, 1.0, 0.9, 2.0)
	w.Commentf("Source light at the center")
	w.PointLight(0, 0, 0, 1.0, 0.8, 0.6, 1.5)
	w.Blank()

	renderRegionBoundary(w, "Core region boundary - wireframe for transparency",
		coreColor, coreRadius, 1.0, 0.7, 20)
	renderRegionBoundary(w, "Reflector region boundary - wireframe for transparency",
		reflectorColor, reflectorRad, 0.7, 0.0, 15)

	w.Commentf("Source point at center")
	w.XformPush()
	w.Color(1.0, 0.9, 0.5)
	w.Translate(0, 0, 0)
	w.Scale(0.3, 0.3, 0.3)
	w.Sphere(1, -1, 1, 360)
	w.XformPop()
	w.Blank()

	totalSegments := 0
	for i := range tracks {
		totalSegments += tracks[i].segments()
	}
	w.Commentf("Neutron track tubes (%d tube segments)", totalSegments)
	for _, t := range tracks {
		renderTrack(w, t)
	}

	w.WorldEnd()
	return w
}

func main() {
	flag.Parse()

	if *numTracks <= 0 {
		log.Fatalf("Track count must be positive, got %d", *numTracks)
	}

	s := newSource(*seed)
	tracks := make([]track, *numTracks)
	for i := range tracks {
		tracks[i] = generateTrack(s)
	}

	w := buildScene(tracks)
	if err := w.WriteFile(*out); err != nil {
		log.Fatalf("Failed to write scene: %v", err)
	}
	log.Printf("Wrote %s (%d tracks)", *out, len(tracks))
}
