// Package rdscene serializes scenes in the text format consumed by the
// rd_view renderer. A scene is accumulated fully in memory and written in a
// single call, so a failed export never leaves a partial file behind.
package rdscene

import (
	"bytes"
	"fmt"
	"os"
	"strconv"

	"github.com/banshee-data/terrain.report/internal/mesh"
)

// Writer accumulates scene directives.
type Writer struct {
	buf bytes.Buffer
}

// NewWriter returns an empty scene writer.
func NewWriter() *Writer {
	return &Writer{}
}

func fnum(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}

// directive writes a directive name followed by numeric arguments.
func (w *Writer) directive(name string, args ...float64) {
	w.buf.WriteString(name)
	for _, a := range args {
		w.buf.WriteByte(' ')
		w.buf.WriteString(fnum(a))
	}
	w.buf.WriteByte('\n')
}

// Commentf writes a "#" comment line.
func (w *Writer) Commentf(format string, args ...any) {
	fmt.Fprintf(&w.buf, "# "+format+"\n", args...)
}

// Blank writes an empty line.
func (w *Writer) Blank() {
	w.buf.WriteByte('\n')
}

// Display names the scene and selects the output device and pixel mode.
func (w *Writer) Display(name, device, mode string) {
	fmt.Fprintf(&w.buf, "Display %q %q %q\n", name, device, mode)
}

// Format sets the output resolution in pixels.
func (w *Writer) Format(width, height int) {
	fmt.Fprintf(&w.buf, "Format %d %d\n", width, height)
}

func (w *Writer) CameraEye(x, y, z float64) { w.directive("CameraEye", x, y, z) }
func (w *Writer) CameraAt(x, y, z float64)  { w.directive("CameraAt", x, y, z) }
func (w *Writer) CameraUp(x, y, z float64)  { w.directive("CameraUp", x, y, z) }
func (w *Writer) CameraFOV(deg float64)     { w.directive("CameraFOV", deg) }

func (w *Writer) Clipping(near, far float64)  { w.directive("Clipping", near, far) }
func (w *Writer) Background(r, g, b float64)  { w.directive("Background", r, g, b) }
func (w *Writer) OptionReal(name string, v float64) {
	fmt.Fprintf(&w.buf, "OptionReal %q %s\n", name, fnum(v))
}

func (w *Writer) OptionBool(name string, v bool) {
	fmt.Fprintf(&w.buf, "OptionBool %q %t\n", name, v)
}

func (w *Writer) WorldBegin() { w.buf.WriteString("WorldBegin\n") }
func (w *Writer) WorldEnd()   { w.buf.WriteString("WorldEnd\n") }

func (w *Writer) AmbientLight(r, g, b, intensity float64) {
	w.directive("AmbientLight", r, g, b, intensity)
}

// FarLight is a directional light: direction, color, intensity.
func (w *Writer) FarLight(dx, dy, dz, r, g, b, intensity float64) {
	w.directive("FarLight", dx, dy, dz, r, g, b, intensity)
}

// PointLight is a positional light: position, color, intensity.
func (w *Writer) PointLight(x, y, z, r, g, b, intensity float64) {
	w.directive("PointLight", x, y, z, r, g, b, intensity)
}

// Surface selects a shader by name ("matte", "plastic", "metal").
func (w *Writer) Surface(kind string) {
	fmt.Fprintf(&w.buf, "Surface %q\n", kind)
}

func (w *Writer) Ka(v float64) { w.directive("Ka", v) }
func (w *Writer) Kd(v float64) { w.directive("Kd", v) }
func (w *Writer) Ks(v float64) { w.directive("Ks", v) }

func (w *Writer) Specular(r, g, b, exponent float64) {
	w.directive("Specular", r, g, b, exponent)
}

func (w *Writer) Color(r, g, b float64) { w.directive("Color", r, g, b) }

func (w *Writer) XformPush() { w.buf.WriteString("XformPush\n") }
func (w *Writer) XformPop()  { w.buf.WriteString("XformPop\n") }

func (w *Writer) Translate(x, y, z float64) { w.directive("Translate", x, y, z) }
func (w *Writer) Scale(x, y, z float64)     { w.directive("Scale", x, y, z) }

// Rotate rotates about a named axis ("X", "Y" or "Z") by degrees.
func (w *Writer) Rotate(axis string, deg float64) {
	fmt.Fprintf(&w.buf, "Rotate %q %s\n", axis, fnum(deg))
}

// Sphere emits a sphere primitive: radius, z extent and sweep angle.
func (w *Writer) Sphere(radius, zmin, zmax, sweep float64) {
	w.directive("Sphere", radius, zmin, zmax, sweep)
}

// SqSphere emits a superquadric sphere with north/south and east/west shape
// exponents.
func (w *Writer) SqSphere(radius, north, east, zmin, zmax, sweep float64) {
	w.directive("SqSphere", radius, north, east, zmin, zmax, sweep)
}

// Tube emits a cylinder segment between two points with the given radius.
func (w *Writer) Tube(x1, y1, z1, x2, y2, z2, radius float64) {
	w.directive("Tube", x1, y1, z1, x2, y2, z2, radius)
}

// SqTorus emits a superquadric torus: main radius, tube radius, shape
// exponents, phi extent and sweep angle.
func (w *Writer) SqTorus(r1, r2, north, east, phimin, phimax, sweep float64) {
	w.directive("SqTorus", r1, r2, north, east, phimin, phimax, sweep)
}

// PolySet emits a "PC" (position + color) polygon set: the vertex and
// triangle counts, one line per vertex, then one -1-terminated index line
// per triangle.
func (w *Writer) PolySet(m *mesh.Mesh) {
	fmt.Fprintf(&w.buf, "PolySet %q\n", "PC")
	fmt.Fprintf(&w.buf, "%d %d\n", len(m.Vertices), len(m.Triangles))
	for _, v := range m.Vertices {
		fmt.Fprintf(&w.buf, "%s %s %s %s %s %s\n",
			fnum(v.X), fnum(v.Y), fnum(v.Z),
			fnum(v.Color.R), fnum(v.Color.G), fnum(v.Color.B))
	}
	for _, t := range m.Triangles {
		fmt.Fprintf(&w.buf, "%d %d %d -1\n", t[0], t[1], t[2])
	}
}

// Bytes returns the serialized scene.
func (w *Writer) Bytes() []byte {
	return w.buf.Bytes()
}

// WriteFile writes the full scene to path in one call. If the file cannot be
// opened or written the error is returned and no partial scene is flushed.
func (w *Writer) WriteFile(path string) error {
	if err := os.WriteFile(path, w.buf.Bytes(), 0644); err != nil {
		return fmt.Errorf("write scene %s: %w", path, err)
	}
	return nil
}
