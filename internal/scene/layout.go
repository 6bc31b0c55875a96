package scene

import (
	"fmt"
	"math"

	"github.com/lucasb-eyer/go-colorful"

	"honnef.co/go/xyedge"
)

// MeasureFunc returns the width and height of a label's text.
type MeasureFunc func(text string) (w, h float64)

type PlacedNode struct {
	Name  string
	Frame xyedge.Frame
	Label string
	Color colorful.Color
	Fill  colorful.Color
}

type PlacedLabel struct {
	Text  string
	Frame xyedge.Frame
	// At is the curve parameter the label is centered on.
	At float64
	// Exact is false for labels placed on the closest approach of two edges
	// that don't cross.
	Exact bool
}

type PlacedEdge struct {
	Name     string
	From, To string
	// Skipped is set for edges with nothing left to draw after shaving, such
	// as edges between overlapping nodes. Only Name, From, To and Reason are
	// set for skipped edges.
	Skipped bool
	Reason  string
	Shape   xyedge.CurveShape
	Labels  []PlacedLabel
	// Arrow is the arrowhead triangle at the end of the edge, tip first.
	Arrow []xyedge.Point
	Color colorful.Color
	Width float64
}

// Diagram is a laid out scene.
type Diagram struct {
	Width, Height float64
	// Origin is the scene point at the lower left corner of the canvas.
	Origin     xyedge.Point
	Background colorful.Color
	Nodes      []PlacedNode
	Edges      []PlacedEdge
	// Crossings are the points where two edges cross, if requested.
	Crossings []xyedge.Point
	// Bounds covers every node and edge.
	Bounds xyedge.Frame
}

// Layout places the scene's nodes and edges. Edges are shaved against the
// outlines of the nodes they connect, and labels cut holes into the edges
// they sit on. measure sizes label text; a nil measure treats labels as
// empty.
//
// The scene must be valid.
func (s Scene) Layout(measure MeasureFunc) (Diagram, error) {
	if measure == nil {
		measure = func(string) (float64, float64) { return 0, 0 }
	}
	d := Diagram{Background: mustColor(s.Background)}

	frames := make(map[string]xyedge.Frame, len(s.Nodes))
	for _, n := range s.Nodes {
		f := n.frame(measure)
		frames[n.Name] = f
		d.Nodes = append(d.Nodes, PlacedNode{
			Name:  n.Name,
			Frame: f,
			Label: n.Label,
			Color: mustColor(n.Color),
			Fill:  mustColor(n.Fill),
		})
		d.Bounds = d.Bounds.Combine(f)
	}

	curves := make(map[string]xyedge.Curve, len(s.Edges))
	for i, e := range s.Edges {
		pe := PlacedEdge{Name: e.Name, From: e.From, To: e.To}
		c, err := e.curve(frames[e.From], frames[e.To])
		if err != nil {
			return Diagram{}, fmt.Errorf("%s: %w", e.describe(i), err)
		}
		if c == nil {
			pe.Skipped = true
			pe.Reason = "nothing visible between the node outlines"
			d.Edges = append(d.Edges, pe)
			continue
		}
		if e.Name != "" {
			curves[e.Name] = c
		}
		pe.Shape = xyedge.NewCurveShape(c)
		pe.Color = mustColor(e.Color)
		pe.Width = e.Width
		if e.Arrow {
			pe.Arrow = arrowhead(c, e.Width)
		}
		d.Edges = append(d.Edges, pe)
		d.Bounds = d.Bounds.Combine(c.BoundingFrame(e.Width / 2))
	}

	// Labels go in a second pass so that they can refer to edges declared
	// after their own.
	for i, e := range s.Edges {
		pe := &d.Edges[i]
		if pe.Skipped {
			continue
		}
		c := pe.Shape.Curve()
		for _, l := range e.Labels {
			at, exact := 0.5, true
			if l.At != nil {
				at = *l.At
			}
			if l.Cross != "" {
				other, ok := curves[l.Cross]
				if !ok {
					// The other edge was skipped.
					continue
				}
				at, _, exact = xyedge.Intercept(c, other)
			}
			w, h := measure(l.Text)
			f := xyedge.NewRectFrame(c.Position(at), w/2, w/2, h/2, h/2).Grow(l.Margin, l.Margin)
			pe.Shape = pe.Shape.SliceHole(f, at)
			pe.Labels = append(pe.Labels, PlacedLabel{Text: l.Text, Frame: f, At: at, Exact: exact})
			d.Bounds = d.Bounds.Combine(f)
		}
	}

	if s.MarkCrossings {
		d.Crossings = crossings(d.Edges)
	}

	lo, hi := d.Bounds.Bounds()
	d.Width, d.Height = s.Width, s.Height
	d.Origin = xyedge.Pt(0, 0)
	if d.Width == 0 || d.Height == 0 {
		d.Origin = xyedge.Pt(lo.X-s.Padding, lo.Y-s.Padding)
		if d.Width == 0 {
			d.Width = hi.X - lo.X + 2*s.Padding
		}
		if d.Height == 0 {
			d.Height = hi.Y - lo.Y + 2*s.Padding
		}
	}
	return d, nil
}

func (n Node) frame(measure MeasureFunc) xyedge.Frame {
	c := xyedge.Pt(n.X, n.Y)
	w, h := n.Width/2, n.Height/2
	var f xyedge.Frame
	switch n.Shape {
	case ShapePoint:
		return xyedge.NewPointFrame(c)
	case ShapeRect:
		f = xyedge.NewRectFrame(c, w, w, h, h)
	case ShapeEllipse:
		f = xyedge.NewEllipseFrame(c, w, w, h, h)
	case ShapeCircle:
		r := max(w, h)
		f = xyedge.NewCircleFrame(c, r)
	default:
		panic(fmt.Sprintf("unknown shape %q", n.Shape))
	}
	if n.Label != "" {
		lw, lh := measure(n.Label)
		pad := 2.0 * DefaultLabelMargin
		switch n.Shape {
		case ShapeCircle:
			d := math.Hypot(lw, lh) + pad
			f = f.GrowTo(d, d)
		case ShapeEllipse:
			// The ellipse through the corners of the label box with the
			// box's aspect ratio is √2 times as large.
			f = f.GrowTo(math.Sqrt2*lw+pad, math.Sqrt2*lh+pad)
		default:
			f = f.GrowTo(lw+pad, lh+pad)
		}
	}
	if n.Rotate != 0 {
		f = f.Rotate(n.Rotate * math.Pi / 180)
	}
	return f
}

// curve builds the visible part of the edge between the frames. It returns
// nil if nothing is visible.
func (e Edge) curve(from, to xyedge.Frame) (xyedge.Curve, error) {
	ctrls := make([]xyedge.Point, len(e.Controls))
	for i, p := range e.Controls {
		ctrls[i] = xyedge.Pt(p.X, p.Y)
	}

	p0, p1 := from.Center(), to.Center()
	if e.Anchor == AnchorProportional {
		first, last := p1, p0
		if len(ctrls) > 0 {
			first, last = ctrls[0], ctrls[len(ctrls)-1]
		}
		p0 = from.ProportionalEdgePoint(first)
		p1 = to.ProportionalEdgePoint(last)
	}

	var c xyedge.Curve
	switch e.Kind {
	case KindLine:
		c = xyedge.NewLine(p0, p1)
	case KindQuadratic:
		c = xyedge.NewQuadBez(p0, ctrls[0], p1)
	case KindCubic:
		c = xyedge.NewCubicBez(p0, ctrls[0], ctrls[1], p1)
	case KindSpline:
		bs, err := xyedge.NewCubicBSpline(p0, ctrls, p1)
		if err != nil {
			return nil, err
		}
		c = bs
	default:
		return nil, fmt.Errorf("unknown kind %q", e.Kind)
	}

	if e.Anchor == AnchorProportional {
		if p0 == p1 {
			return nil, nil
		}
		return c, nil
	}
	visible, ok := xyedge.Shave(c, from, to)
	if !ok {
		return nil, nil
	}
	return visible, nil
}

// arrowhead returns the triangle of an arrow pointing along the end of c.
func arrowhead(c xyedge.Curve, width float64) []xyedge.Point {
	length := 4 + 3*width
	half := length / 3
	tip := c.End()
	dir := xyedge.VecFromAngle(c.TangentAngle(1))
	base := tip.Translate(dir.Mul(-length))
	side := dir.Perp().Mul(half)
	return []xyedge.Point{tip, base.Translate(side), base.Translate(side.Negate())}
}

// crossings returns the points where the visible parts of two edges cross.
func crossings(edges []PlacedEdge) []xyedge.Point {
	var out []xyedge.Point
	for i := range edges {
		if edges[i].Skipped {
			continue
		}
		for j := i + 1; j < len(edges); j++ {
			if edges[j].Skipped {
				continue
			}
			a, b := edges[i].Shape.Curve(), edges[j].Shape.Curve()
			for _, hit := range xyedge.IntersectCurves(a, b) {
				out = append(out, a.Position(hit.T1))
			}
		}
	}
	return out
}

func mustColor(s string) colorful.Color {
	c, err := parseColor(s)
	if err != nil {
		panic(err)
	}
	return c
}
