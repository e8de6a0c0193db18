// Command skyfield writes a superquadric starfield scene: a central sun,
// planets, rings and a seeded random field of stars.
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
	numStars      = flag.Int("stars", 40, "Total number of stars")
	numSqStars    = flag.Int("sqstars", 8, "Number of superquadric stars")
	numLightStars = flag.Int("lightstars", 5, "Number of light-emitting stars")
	seed          = flag.Int64("seed", 1, "Seed for star placement")
	out           = flag.String("out", "skyfield.rd", "Output scene file")
)

const (
	regularStarMinScale = 0.03
	regularStarMaxScale = 0.08
	sqStarMinScale      = 0.08
	sqStarMaxScale      = 0.15
	lightStarScale      = 0.25
)

// field draws uniform variates for star placement from one seeded source so
// the whole scene reproduces from the seed.
type field struct {
	src *rand.PCG
}

func newField(seed int64) *field {
	return &field{src: rand.NewPCG(uint64(seed), uint64(seed)+1)}
}

func (f *field) uniform(min, max float64) float64 {
	return distuv.Uniform{Min: min, Max: max, Src: f.src}.Rand()
}

// star is one object in the field. Zero rotation and unit scale are omitted
// from the output.
type star struct {
	x, y, z             float64
	rotX, rotY, rotZ    float64
	scale               float64
	north, east         float64
	r, g, b             float64
	superquadric        bool
	lightIntensity      float64
	ka, kd, ks, specExp float64
}

func spherical(radius, theta, phi float64) (x, y, z float64) {
	return radius * math.Sin(theta) * math.Cos(phi),
		radius * math.Sin(theta) * math.Sin(phi),
		radius * math.Cos(theta)
}

func regularStars(f *field, count int) []star {
	stars := make([]star, 0, count)
	for i := 0; i < count; i++ {
		var s star
		phi := f.uniform(0, 2*math.Pi)
		theta := f.uniform(0, math.Pi)
		s.x, s.y, s.z = spherical(f.uniform(8, 15), theta, phi)

		s.scale = f.uniform(regularStarMinScale, regularStarMaxScale)
		brightness := f.uniform(0.7, 1.0)
		s.r, s.g, s.b = brightness, brightness, brightness
		s.ka, s.kd, s.ks = 0.8, 0.9, 0.0
		stars = append(stars, s)
	}
	return stars
}

func superquadricStars(f *field, count int) []star {
	colors := [][3]float64{
		{0.7, 0.7, 1.0},
		{1.0, 0.7, 0.7},
		{1.0, 1.0, 0.8},
	}
	stars := make([]star, 0, count)
	for i := 0; i < count; i++ {
		var s star
		phi := f.uniform(0, 2*math.Pi)
		theta := f.uniform(0, math.Pi)
		s.x, s.y, s.z = spherical(f.uniform(7, 13), theta, phi)

		c := colors[i%3]
		s.r, s.g, s.b = c[0], c[1], c[2]

		s.scale = f.uniform(sqStarMinScale, sqStarMaxScale)
		// Parameters below 1 make pointy, star-like shapes.
		s.north = f.uniform(0.2, 0.5)
		s.east = f.uniform(0.2, 0.5)
		s.superquadric = true

		s.rotX = f.uniform(0, 90)
		s.rotY = f.uniform(0, 90)
		s.rotZ = f.uniform(0, 90)

		s.ka, s.kd, s.ks, s.specExp = 0.3, 0.9, 0.5, 10
		stars = append(stars, s)
	}
	return stars
}

func lightStars(f *field, count int) []star {
	colors := [][3]float64{
		{0.6, 0.6, 1.0},
		{1.0, 0.6, 0.6},
		{1.0, 1.0, 0.8},
	}
	stars := make([]star, 0, count)
	for i := 0; i < count; i++ {
		var s star
		// Spread light stars evenly around the sky, concentrated mid-height.
		phi := 2 * math.Pi * float64(i) / float64(count)
		theta := math.Pi * (0.3 + 0.4*f.uniform(0, 1))
		s.x, s.y, s.z = spherical(10+f.uniform(-1, 1), theta, phi)

		c := colors[i%3]
		s.r, s.g, s.b = c[0], c[1], c[2]

		s.scale = lightStarScale
		s.north, s.east = 1.0, 1.0
		s.superquadric = true
		s.lightIntensity = 0.3
		s.ka, s.kd, s.ks, s.specExp = 0.3, 0.9, 0.5, 10
		stars = append(stars, s)
	}
	return stars
}

func renderStar(w *rdscene.Writer, s star) {
	if s.lightIntensity > 0 {
		w.Commentf("Light source at position %g, %g, %g", s.x, s.y, s.z)
		w.PointLight(s.x, s.y, s.z, s.r, s.g, s.b, s.lightIntensity)
		w.Blank()
	}

	w.XformPush()
	w.Translate(s.x, s.y, s.z)
	w.Color(s.r, s.g, s.b)
	if s.superquadric {
		w.Surface("plastic")
	} else {
		w.Surface("matte")
	}
	w.Ka(s.ka)
	w.Kd(s.kd)
	w.Ks(s.ks)
	if s.specExp > 0 {
		w.Specular(0.8, 0.8, 0.8, s.specExp)
	}

	if s.rotX != 0 {
		w.Rotate("X", s.rotX)
	}
	if s.rotY != 0 {
		w.Rotate("Y", s.rotY)
	}
	if s.rotZ != 0 {
		w.Rotate("Z", s.rotZ)
	}
	if s.scale != 1 {
		w.Scale(s.scale, s.scale, s.scale)
	}

	if s.superquadric {
		w.SqSphere(1, s.north, s.east, -1, 1, 360)
	} else {
		w.Sphere(1.0, -1.0, 1.0, 360)
	}
	w.XformPop()
	w.Blank()
}

type fixedBody struct {
	comment             string
	x, y, z             float64
	rotX, rotY          float64
	sx, sy, sz          float64
	north, east         float64
	r, g, b             float64
	surface             string
	ka, kd, ks          float64
	sr, sg, sb, specExp float64
	torus               bool
	radius1, radius2    float64
}

func renderBody(w *rdscene.Writer, b fixedBody) {
	w.Commentf("%s", b.comment)
	w.XformPush()
	w.Translate(b.x, b.y, b.z)
	w.Color(b.r, b.g, b.b)
	w.Surface(b.surface)
	w.Ka(b.ka)
	w.Kd(b.kd)
	w.Ks(b.ks)
	w.Specular(b.sr, b.sg, b.sb, b.specExp)
	if b.rotX != 0 {
		w.Rotate("X", b.rotX)
	}
	if b.rotY != 0 {
		w.Rotate("Y", b.rotY)
	}
	if b.sx != 1 || b.sy != 1 || b.sz != 1 {
		w.Scale(b.sx, b.sy, b.sz)
	}
	if b.torus {
		w.SqTorus(b.radius1, b.radius2, b.north, b.east, -180, 180, 360)
	} else {
		w.SqSphere(1, b.north, b.east, -1, 1, 360)
	}
	w.XformPop()
	w.Blank()
}

func fixedBodies() []fixedBody {
	return []fixedBody{
		{comment: "Central sun", x: 0, y: 0, z: 0, sx: 1, sy: 1, sz: 1,
			north: 0.3, east: 0.3, r: 1.0, g: 0.9, b: 0.4,
			surface: "matte", ka: 1.0, kd: 1.0, ks: 0.3, sr: 1.0, sg: 0.9, sb: 0.5, specExp: 5},
		{comment: "Inner planet, cube-like", x: -3, y: 0, z: 3, sx: 0.8, sy: 0.8, sz: 0.8,
			north: 2.0, east: 2.0, r: 0.4, g: 0.4, b: 0.8,
			surface: "plastic", ka: 0.3, kd: 0.9, ks: 0.5, sr: 0.8, sg: 0.8, sb: 0.8, specExp: 10},
		{comment: "Outer planet, pinched sphere", x: 4, y: -1, z: -2, sx: 1.2, sy: 1.2, sz: 1.2,
			north: 0.5, east: 2.0, r: 0.3, g: 0.8, b: 0.3,
			surface: "plastic", ka: 0.3, kd: 0.9, ks: 0.5, sr: 0.8, sg: 0.8, sb: 0.8, specExp: 10},
		{comment: "Moon, squashed sphere", x: 5.5, y: 0, z: -3, sx: 0.4, sy: 0.4, sz: 0.4,
			north: 2.0, east: 0.5, r: 0.8, g: 0.8, b: 0.8,
			surface: "plastic", ka: 0.3, kd: 0.9, ks: 0.5, sr: 0.8, sg: 0.8, sb: 0.8, specExp: 10},
		{comment: "Asteroid, elongated along Z", x: -3, y: -1, z: -3, rotX: 15, rotY: 20,
			sx: 0.3, sy: 0.3, sz: 1.0, north: 0.3, east: 0.3, r: 0.7, g: 0.6, b: 0.5,
			surface: "plastic", ka: 0.2, kd: 0.9, ks: 0.3, sr: 0.5, sg: 0.5, sb: 0.5, specExp: 5},
		{comment: "Gear-like planet", x: -4, y: 2, z: -3, rotX: 75, sx: 1, sy: 1, sz: 1,
			north: 1.0, east: 0.2, r: 0.9, g: 0.7, b: 0.5,
			surface: "plastic", ka: 0.2, kd: 0.9, ks: 0.4, sr: 0.6, sg: 0.6, sb: 0.6, specExp: 5,
			torus: true, radius1: 0.8, radius2: 0.4},
		{comment: "First orbital ring", x: 0, y: 0, z: 0, rotX: 30, sx: 1, sy: 1, sz: 1,
			north: 1.0, east: 0.2, r: 0.5, g: 0.5, b: 0.8,
			surface: "plastic", ka: 0.15, kd: 0.7, ks: 0.3, sr: 0.4, sg: 0.4, sb: 0.6, specExp: 8,
			torus: true, radius1: 4.0, radius2: 0.1},
		{comment: "Second orbital ring", x: 0, y: 0, z: 0, rotY: 45, sx: 1, sy: 1, sz: 1,
			north: 2.0, east: 2.0, r: 0.5, g: 0.5, b: 0.5,
			surface: "plastic", ka: 0.15, kd: 0.7, ks: 0.3, sr: 0.4, sg: 0.4, sb: 0.6, specExp: 8,
			torus: true, radius1: 5.5, radius2: 0.2},
	}
}

// validateCounts clamps the star type counts the same way bad command-line
// input is handled: warn and fall back rather than fail.
func validateCounts(total, sq, light int) (int, int, int) {
	if total <= 0 {
		log.Printf("Warning: Invalid star count, using default value: 40")
		total = 40
	}
	if sq < 0 || sq > total {
		log.Printf("Warning: Invalid superquadric star count, using default value: 8")
		sq = 8
	}
	if light < 0 || light > total-sq {
		log.Printf("Warning: Invalid light-emitting star count, using default value: 5")
		light = 5
	}
	if sq+light > total {
		sq = total / 2
		light = total - sq
		log.Printf("Warning: Adjusted star counts to match total. Superquadric: %d, Light-emitting: %d", sq, light)
	}
	return total, sq, light
}

func buildScene(total, sq, light int, f *field) *rdscene.Writer {
	w := rdscene.NewWriter()
	w.Commentf("Superquadrics Demonstration Scene with Star and Sun Lighting")
	w.Display("Superquadrics Demo", "Screen", "rgbdouble")
	w.Format(800, 600)
	w.OptionReal("Divisions", 20)
	w.Blank()

	w.CameraEye(9, 7, 12)
	w.CameraAt(0, 1, 0)
	w.CameraUp(0, 1, 0)
	w.CameraFOV(45)
	w.Clipping(0.1, 1000)
	w.Blank()

	w.Background(0.02, 0.02, 0.06)
	w.Blank()

	w.WorldBegin()

	w.Commentf("Ambient light for base illumination")
	w.AmbientLight(0.08, 0.08, 0.12, 0.3)
	w.Commentf("Special ambient light to make sun visible")
	w.AmbientLight(0.3, 0.3, 0.2, 0.5)
	w.Commentf("Main sun light source at the center")
	w.PointLight(0, 0, 0, 1.0, 1.0, 0.7, 12.0)
	w.Blank()

	w.Commentf("Star field with %d stars", total)
	for _, s := range regularStars(f, total-sq-light) {
		renderStar(w, s)
	}
	for _, s := range superquadricStars(f, sq) {
		renderStar(w, s)
	}
	for _, s := range lightStars(f, light) {
		renderStar(w, s)
	}

	for _, b := range fixedBodies() {
		renderBody(w, b)
	}

	w.WorldEnd()
	return w
}

func main() {
	flag.Parse()

	total, sq, light := validateCounts(*numStars, *numSqStars, *numLightStars)

	w := buildScene(total, sq, light, newField(*seed))
	if err := w.WriteFile(*out); err != nil {
		log.Fatalf("Failed to write scene: %v", err)
	}
	log.Printf("Wrote %s (%d stars, %d superquadric, %d light-emitting)", *out, total, sq, light)
}
