// Package render draws laid out diagrams as raster images or SVG documents.
//
// The raster renderer is a debugging aid: strokes are flattened into
// polylines and drawn without joins.
package render

import (
	"image"
	"image/color"
	"image/draw"
	"iter"

	"github.com/lucasb-eyer/go-colorful"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
	"golang.org/x/image/vector"

	"honnef.co/go/xyedge"
	"honnef.co/go/xyedge/internal/scene"
)

// Options configures raster rendering.
type Options struct {
	// Scale is the number of pixels per scene unit.
	Scale float64
	// Flatness is the largest distance, in scene units, between the vertices
	// of the polylines that approximate curves.
	Flatness float64
	// OutlineWidth is the stroke width of node outlines.
	OutlineWidth float64
	// PointRadius is the radius of the dots drawn for point nodes and edge
	// crossings.
	PointRadius float64
}

// DefaultOptions returns the options used for zero fields.
func DefaultOptions() Options {
	return Options{
		Scale:        1,
		Flatness:     2,
		OutlineWidth: 1,
		PointRadius:  2,
	}
}

func (o Options) withDefaults() Options {
	def := DefaultOptions()
	if o.Scale <= 0 {
		o.Scale = def.Scale
	}
	if o.Flatness <= 0 {
		o.Flatness = def.Flatness
	}
	if o.OutlineWidth <= 0 {
		o.OutlineWidth = def.OutlineWidth
	}
	if o.PointRadius <= 0 {
		o.PointRadius = def.PointRadius
	}
	return o
}

var crossingColor = colorful.Color{R: 0.83, G: 0.18, B: 0.18}

// labelFace is the face used for all labels.
var labelFace font.Face = basicfont.Face7x13

// MeasureLabel returns the size of text set in the label face. It is a
// [scene.MeasureFunc].
func MeasureLabel(text string) (w, h float64) {
	m := labelFace.Metrics()
	return float64(font.MeasureString(labelFace, text).Round()), float64((m.Ascent + m.Descent).Round())
}

// canvas maps y-up scene coordinates onto an image.
type canvas struct {
	img    *image.RGBA
	ras    *vector.Rasterizer
	origin xyedge.Point
	height float64
	opts   Options
}

func (cv *canvas) device(p xyedge.Point) (float32, float32) {
	s := cv.opts.Scale
	return float32((p.X - cv.origin.X) * s), float32((cv.height - (p.Y - cv.origin.Y)) * s)
}

func (cv *canvas) begin() {
	b := cv.img.Bounds()
	cv.ras.Reset(b.Dx(), b.Dy())
	cv.ras.DrawOp = draw.Over
}

func (cv *canvas) paint(c color.Color) {
	cv.ras.Draw(cv.img, cv.img.Bounds(), image.NewUniform(c), image.Point{})
}

// path adds a path to the rasterizer.
func (cv *canvas) path(seq iter.Seq[xyedge.PathElement]) {
	for el := range seq {
		switch el.Kind {
		case xyedge.MoveToKind:
			cv.ras.MoveTo(cv.device(el.P0))
		case xyedge.LineToKind:
			cv.ras.LineTo(cv.device(el.P0))
		case xyedge.QuadToKind:
			x1, y1 := cv.device(el.P0)
			x2, y2 := cv.device(el.P1)
			cv.ras.QuadTo(x1, y1, x2, y2)
		case xyedge.CubicToKind:
			x1, y1 := cv.device(el.P0)
			x2, y2 := cv.device(el.P1)
			x3, y3 := cv.device(el.P2)
			cv.ras.CubeTo(x1, y1, x2, y2, x3, y3)
		case xyedge.ClosePathKind:
			cv.ras.ClosePath()
		}
	}
}

func (cv *canvas) fill(seq iter.Seq[xyedge.PathElement], c color.Color) {
	cv.begin()
	cv.path(seq)
	cv.paint(c)
}

// stroke draws the curves with the given width. Every polyline segment
// becomes a quad extended by half the width at both ends. All quads share
// the same orientation, so overlapping quads don't cancel out.
func (cv *canvas) stroke(curves []xyedge.Curve, width float64, c color.Color) {
	cv.begin()
	half := width / 2
	for _, crv := range curves {
		var prev xyedge.Point
		first := true
		for p := range xyedge.Flatten(crv, cv.opts.Flatness) {
			if first {
				prev, first = p, false
				continue
			}
			d := p.Sub(prev)
			if d.Hypot2() == 0 {
				continue
			}
			d = d.Normalize().Mul(half)
			n := d.Perp()
			a, b := prev.Translate(d.Negate()), p.Translate(d)
			cv.ras.MoveTo(cv.device(a.Translate(n)))
			cv.ras.LineTo(cv.device(b.Translate(n)))
			cv.ras.LineTo(cv.device(b.Translate(n.Negate())))
			cv.ras.LineTo(cv.device(a.Translate(n.Negate())))
			cv.ras.ClosePath()
			prev = p
		}
	}
	cv.paint(c)
}

func (cv *canvas) dot(p xyedge.Point, c color.Color) {
	cv.fill(xyedge.NewCircleFrame(p, cv.opts.PointRadius).PathElements(), c)
}

func (cv *canvas) text(center xyedge.Point, s string, c color.Color) {
	if s == "" {
		return
	}
	x, y := cv.device(center)
	m := labelFace.Metrics()
	w := font.MeasureString(labelFace, s)
	d := &font.Drawer{
		Dst:  cv.img,
		Src:  image.NewUniform(c),
		Face: labelFace,
		Dot: fixed.Point26_6{
			X: fixed.I(int(x)) - w/2,
			Y: fixed.I(int(y)) + (m.Ascent-m.Descent)/2,
		},
	}
	d.DrawString(s)
}

// outlineCurves converts a frame outline into curves that can be stroked.
func outlineCurves(seq iter.Seq[xyedge.PathElement]) []xyedge.Curve {
	var out []xyedge.Curve
	var start, cur xyedge.Point
	for el := range seq {
		switch el.Kind {
		case xyedge.MoveToKind:
			start, cur = el.P0, el.P0
		case xyedge.LineToKind:
			out = append(out, xyedge.NewLine(cur, el.P0))
			cur = el.P0
		case xyedge.QuadToKind:
			out = append(out, xyedge.NewQuadBez(cur, el.P0, el.P1))
			cur = el.P1
		case xyedge.CubicToKind:
			out = append(out, xyedge.NewCubicBez(cur, el.P0, el.P1, el.P2))
			cur = el.P2
		case xyedge.ClosePathKind:
			if cur != start {
				out = append(out, xyedge.NewLine(cur, start))
			}
			cur = start
		}
	}
	return out
}

// Raster draws the diagram onto a new image.
func Raster(d scene.Diagram, opts Options) *image.RGBA {
	opts = opts.withDefaults()
	w := int(d.Width*opts.Scale + 0.5)
	h := int(d.Height*opts.Scale + 0.5)
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.Draw(img, img.Bounds(), image.NewUniform(d.Background), image.Point{}, draw.Src)

	cv := &canvas{
		img:    img,
		ras:    vector.NewRasterizer(w, h),
		origin: d.Origin,
		height: d.Height,
		opts:   opts,
	}

	for _, n := range d.Nodes {
		if n.Frame.IsPoint() {
			cv.dot(n.Frame.Center(), n.Color)
			continue
		}
		cv.fill(n.Frame.PathElements(), n.Fill)
		cv.stroke(outlineCurves(n.Frame.PathElements()), opts.OutlineWidth, n.Color)
		cv.text(n.Frame.Center(), n.Label, n.Color)
	}

	for _, e := range d.Edges {
		if e.Skipped {
			continue
		}
		cv.stroke(e.Shape.VisibleCurves(), e.Width, e.Color)
		if len(e.Arrow) > 0 {
			cv.fill(polygon(e.Arrow), e.Color)
		}
		for _, l := range e.Labels {
			cv.text(l.Frame.Center(), l.Text, e.Color)
		}
	}

	for _, p := range d.Crossings {
		cv.dot(p, crossingColor)
	}
	return img
}

// polygon returns the closed path through pts.
func polygon(pts []xyedge.Point) iter.Seq[xyedge.PathElement] {
	return func(yield func(xyedge.PathElement) bool) {
		for i, p := range pts {
			el := xyedge.LineTo(p)
			if i == 0 {
				el = xyedge.MoveTo(p)
			}
			if !yield(el) {
				return
			}
		}
		yield(xyedge.ClosePath())
	}
}
