// Package scene describes diagrams of nodes connected by curved edges, as
// read from YAML scene files, and lays them out with the xyedge geometry.
//
// A scene file looks like this:
//
//	width: 400
//	height: 200
//	nodes:
//	  - {name: a, shape: rect, x: 50, y: 100, width: 60, height: 30, label: start}
//	  - {name: b, shape: ellipse, x: 350, y: 100, width: 60, height: 40}
//	edges:
//	  - from: a
//	    to: b
//	    kind: quadratic
//	    controls: [{x: 200, y: 180}]
//	    arrow: true
//	    labels: [{text: go, at: 0.5}]
//
// Coordinates are y-up.
package scene

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
	"gopkg.in/yaml.v3"
)

// Node shapes.
const (
	ShapePoint   = "point"
	ShapeRect    = "rect"
	ShapeEllipse = "ellipse"
	ShapeCircle  = "circle"
)

// Edge kinds.
const (
	KindLine      = "line"
	KindQuadratic = "quadratic"
	KindCubic     = "cubic"
	KindSpline    = "spline"
)

// Edge anchors.
const (
	// AnchorCenter runs the edge between node centers and shaves it against
	// the node outlines.
	AnchorCenter = "center"
	// AnchorProportional attaches the edge to the nodes' proportional edge
	// points.
	AnchorProportional = "proportional"
)

type Point struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
}

type Node struct {
	Name   string  `yaml:"name"`
	Shape  string  `yaml:"shape"`
	X      float64 `yaml:"x"`
	Y      float64 `yaml:"y"`
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
	// Rotate turns rectangular nodes by the given number of degrees. The
	// node's frame is the bounding box of the rotated rectangle.
	Rotate float64 `yaml:"rotate"`
	Label  string  `yaml:"label"`
	Color  string  `yaml:"color"`
	Fill   string  `yaml:"fill"`
}

type Label struct {
	Text string `yaml:"text"`
	// At is the curve parameter the label is centered on, 0.5 if unset.
	At *float64 `yaml:"at"`
	// Cross names another edge. If set, the label sits where the two edges
	// meet, or as close to that as they get, and At is ignored.
	Cross  string  `yaml:"cross"`
	Margin float64 `yaml:"margin"`
}

type Edge struct {
	Name     string  `yaml:"name"`
	From     string  `yaml:"from"`
	To       string  `yaml:"to"`
	Kind     string  `yaml:"kind"`
	Anchor   string  `yaml:"anchor"`
	Controls []Point `yaml:"controls"`
	Color    string  `yaml:"color"`
	Width    float64 `yaml:"width"`
	Arrow    bool    `yaml:"arrow"`
	Labels   []Label `yaml:"labels"`
}

// Scene is a diagram description. A zero Width or Height sizes the canvas to
// the diagram's contents.
type Scene struct {
	Width      float64 `yaml:"width"`
	Height     float64 `yaml:"height"`
	Padding    float64 `yaml:"padding"`
	Background string  `yaml:"background"`
	// MarkCrossings marks the points where two edges cross.
	MarkCrossings bool   `yaml:"mark_crossings"`
	Nodes         []Node `yaml:"nodes"`
	Edges         []Edge `yaml:"edges"`
}

// Defaults for fields left empty in scene files.
const (
	DefaultBackground  = "#ffffff"
	DefaultColor       = "#333333"
	DefaultFill        = "#f5f5f5"
	DefaultEdgeWidth   = 1.5
	DefaultLabelMargin = 2.0
	DefaultPadding     = 10
)

// Parse decodes a scene from YAML and fills in defaults. It does not
// validate the scene.
func Parse(r io.Reader) (Scene, error) {
	var s Scene
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&s); err != nil {
		if errors.Is(err, io.EOF) {
			return Scene{}, errors.New("empty scene")
		}
		return Scene{}, fmt.Errorf("decode scene: %w", err)
	}
	s.applyDefaults()
	return s, nil
}

// Load reads and validates the scene file at path.
func Load(path string) (Scene, error) {
	f, err := os.Open(path)
	if err != nil {
		return Scene{}, err
	}
	defer f.Close()
	s, err := Parse(f)
	if err != nil {
		return Scene{}, fmt.Errorf("%s: %w", path, err)
	}
	if err := s.Validate(); err != nil {
		return Scene{}, fmt.Errorf("%s: %w", path, err)
	}
	return s, nil
}

func (s *Scene) applyDefaults() {
	if s.Background == "" {
		s.Background = DefaultBackground
	}
	if s.Padding == 0 {
		s.Padding = DefaultPadding
	}
	for i := range s.Nodes {
		n := &s.Nodes[i]
		if n.Shape == "" {
			n.Shape = ShapeRect
		}
		if n.Color == "" {
			n.Color = DefaultColor
		}
		if n.Fill == "" {
			n.Fill = DefaultFill
		}
	}
	for i := range s.Edges {
		e := &s.Edges[i]
		if e.Kind == "" {
			e.Kind = KindLine
		}
		if e.Anchor == "" {
			e.Anchor = AnchorCenter
		}
		if e.Color == "" {
			e.Color = DefaultColor
		}
		if e.Width == 0 {
			e.Width = DefaultEdgeWidth
		}
		for j := range e.Labels {
			l := &e.Labels[j]
			if l.At == nil && l.Cross == "" {
				mid := 0.5
				l.At = &mid
			}
			if l.Margin == 0 {
				l.Margin = DefaultLabelMargin
			}
		}
	}
}

// Validate checks names, shapes, kinds, control point counts and colors.
// All problems are reported together.
func (s Scene) Validate() error {
	var errs []error
	if s.Width < 0 || s.Height < 0 {
		errs = append(errs, fmt.Errorf("negative canvas size %gx%g", s.Width, s.Height))
	}
	if _, err := parseColor(s.Background); err != nil {
		errs = append(errs, fmt.Errorf("background: %w", err))
	}

	nodes := make(map[string]bool, len(s.Nodes))
	for i, n := range s.Nodes {
		where := fmt.Sprintf("node %d", i)
		if n.Name != "" {
			where = fmt.Sprintf("node %q", n.Name)
		}
		switch {
		case n.Name == "":
			errs = append(errs, fmt.Errorf("%s: missing name", where))
		case nodes[n.Name]:
			errs = append(errs, fmt.Errorf("%s: duplicate name", where))
		}
		nodes[n.Name] = true
		switch n.Shape {
		case ShapePoint, ShapeRect, ShapeEllipse, ShapeCircle:
		default:
			errs = append(errs, fmt.Errorf("%s: unknown shape %q", where, n.Shape))
		}
		if n.Width < 0 || n.Height < 0 {
			errs = append(errs, fmt.Errorf("%s: negative size %gx%g", where, n.Width, n.Height))
		}
		for _, c := range []string{n.Color, n.Fill} {
			if _, err := parseColor(c); err != nil {
				errs = append(errs, fmt.Errorf("%s: %w", where, err))
			}
		}
	}

	edges := make(map[string]bool, len(s.Edges))
	for _, e := range s.Edges {
		if e.Name != "" {
			edges[e.Name] = true
		}
	}
	for i, e := range s.Edges {
		where := e.describe(i)
		for _, end := range []string{e.From, e.To} {
			if !nodes[end] {
				errs = append(errs, fmt.Errorf("%s: unknown node %q", where, end))
			}
		}
		if want, ok := controlCount[e.Kind]; !ok {
			errs = append(errs, fmt.Errorf("%s: unknown kind %q", where, e.Kind))
		} else if (want < 0 && len(e.Controls) == 0) || (want >= 0 && len(e.Controls) != want) {
			errs = append(errs, fmt.Errorf("%s: %s edge with %d control points", where, e.Kind, len(e.Controls)))
		}
		switch e.Anchor {
		case AnchorCenter, AnchorProportional:
		default:
			errs = append(errs, fmt.Errorf("%s: unknown anchor %q", where, e.Anchor))
		}
		if e.Width < 0 {
			errs = append(errs, fmt.Errorf("%s: negative width %g", where, e.Width))
		}
		if _, err := parseColor(e.Color); err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", where, err))
		}
		for j, l := range e.Labels {
			if l.Cross != "" && !edges[l.Cross] {
				errs = append(errs, fmt.Errorf("%s: label %d: unknown edge %q", where, j, l.Cross))
			}
			if l.Cross == "" && l.At != nil && (*l.At < 0 || *l.At > 1) {
				errs = append(errs, fmt.Errorf("%s: label %d: position %g outside [0, 1]", where, j, *l.At))
			}
		}
	}
	return errors.Join(errs...)
}

// controlCount is the number of control points each edge kind takes; -1
// means at least one.
var controlCount = map[string]int{
	KindLine:      0,
	KindQuadratic: 1,
	KindCubic:     2,
	KindSpline:    -1,
}

func (e Edge) describe(i int) string {
	if e.Name != "" {
		return fmt.Sprintf("edge %q", e.Name)
	}
	return fmt.Sprintf("edge %d (%s -> %s)", i, e.From, e.To)
}

func parseColor(s string) (colorful.Color, error) {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "#") {
		s = "#" + s
	}
	c, err := colorful.Hex(s)
	if err != nil {
		return colorful.Color{}, fmt.Errorf("invalid color %q", s)
	}
	return c, nil
}
