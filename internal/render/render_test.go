package render

import (
	"bytes"
	"image/color"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/disintegration/imaging"
	"github.com/google/go-cmp/cmp"
	"github.com/lucasb-eyer/go-colorful"

	"honnef.co/go/xyedge"
	"honnef.co/go/xyedge/internal/scene"
)

var (
	white = colorful.Color{R: 1, G: 1, B: 1}
	black = colorful.Color{}
	gray  = colorful.Color{R: 0.5, G: 0.5, B: 0.5}
)

// holedLine is a 100 unit horizontal edge at y = 10 with a hole over
// x ∈ [40, 60], on a 100×20 canvas.
func holedLine() scene.Diagram {
	edge := xyedge.NewLine(xyedge.Pt(0, 10), xyedge.Pt(100, 10))
	hole := xyedge.NewRectFrame(xyedge.Pt(50, 10), 10, 10, 5, 5)
	box := xyedge.NewRectFrame(xyedge.Pt(85, 3), 5, 5, 2, 2)
	return scene.Diagram{
		Width:      100,
		Height:     20,
		Background: white,
		Nodes: []scene.PlacedNode{
			{Name: "box", Frame: box, Color: black, Fill: gray},
		},
		Edges: []scene.PlacedEdge{{
			From:  "a",
			To:    "b",
			Shape: xyedge.NewCurveShape(edge).SliceHole(hole, 0.5),
			Color: black,
			Width: 2,
		}},
	}
}

func rgba(c color.Color) color.RGBA {
	r, g, b, a := c.RGBA()
	return color.RGBA{uint8(r >> 8), uint8(g >> 8), uint8(b >> 8), uint8(a >> 8)}
}

func TestRaster(t *testing.T) {
	img := Raster(holedLine(), Options{})
	if got := img.Bounds().Size(); got.X != 100 || got.Y != 20 {
		t.Fatalf("got size %v, want 100x20", got)
	}
	// y = 10 in the scene is the boundary between device rows 9 and 10.
	for _, x := range []int{5, 30, 70, 95} {
		if got := img.RGBAAt(x, 9); got != rgba(black) {
			t.Errorf("pixel (%d, 9): got %v, want edge color", x, got)
		}
	}
	for _, x := range []int{45, 50, 55} {
		if got := img.RGBAAt(x, 9); got != rgba(white) {
			t.Errorf("pixel (%d, 9): got %v, want background in hole", x, got)
		}
	}
	// Inside the box, away from its outline.
	if got := img.RGBAAt(85, 17); got != rgba(gray) {
		t.Errorf("box interior: got %v, want fill", got)
	}
}

func TestRasterScale(t *testing.T) {
	img := Raster(holedLine(), Options{Scale: 2})
	if got := img.Bounds().Size(); got.X != 200 || got.Y != 40 {
		t.Fatalf("got size %v, want 200x40", got)
	}
}

func TestSVG(t *testing.T) {
	d := holedLine()
	d.Edges = append(d.Edges, scene.PlacedEdge{From: "x", To: "y", Skipped: true, Reason: "overlap"})
	var buf bytes.Buffer
	if err := SVG(&buf, d); err != nil {
		t.Fatal(err)
	}
	out := buf.String()
	for _, want := range []string{
		`viewBox="0 -20 100 20"`,
		`d="M0,-10 L40,-10"`,
		`d="M60,-10 L100,-10"`,
		`d="M90,-1 L90,-5 L80,-5 L80,-1 Z"`,
		"<!-- x -> y skipped: overlap -->",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("missing %q in:\n%s", want, out)
		}
	}
}

func TestMeasureLabel(t *testing.T) {
	w, h := MeasureLabel("abc")
	if diff := cmp.Diff([2]float64{21, 13}, [2]float64{w, h}); diff != "" {
		t.Error(diff)
	}
	if w, _ := MeasureLabel(""); w != 0 {
		t.Errorf("empty label has width %v", w)
	}
}

func TestSave(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "out.png")
	if err := Save(path, Raster(holedLine(), Options{})); err != nil {
		t.Fatal(err)
	}
	img, err := imaging.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	if got := img.Bounds().Size(); got.X != 100 || got.Y != 20 {
		t.Errorf("got size %v", got)
	}

	if err := Save(filepath.Join(dir, "out.xyz"), img); err == nil {
		t.Error("expected error for unknown extension")
	}
	if _, err := os.Stat(filepath.Join(dir, "out.xyz")); err == nil {
		t.Error("file with unknown extension was written")
	}
}
