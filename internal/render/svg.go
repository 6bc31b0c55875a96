package render

import (
	"bufio"
	"fmt"
	"html"
	"io"
	"iter"
	"strconv"

	"honnef.co/go/xyedge"
	"honnef.co/go/xyedge/internal/scene"
)

var svgPathOptions = xyedge.SVGOptions{MaxPrecision: 3, FlipY: true}

func num(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

// SVG writes the diagram as a standalone SVG document. Scene coordinates are
// kept, with y negated to turn them y-down.
func SVG(w io.Writer, d scene.Diagram) error {
	bw := bufio.NewWriter(w)
	var err error
	printf := func(format string, args ...any) {
		if err != nil {
			return
		}
		_, err = fmt.Fprintf(bw, format, args...)
	}
	path := func(seq iter.Seq[xyedge.PathElement]) {
		if err != nil {
			return
		}
		err = xyedge.WriteSVG(bw, seq, svgPathOptions)
	}

	minX, minY := d.Origin.X, -(d.Origin.Y + d.Height)
	printf(`<svg xmlns="http://www.w3.org/2000/svg" width="%s" height="%s" viewBox="%s %s %s %s">`+"\n",
		num(d.Width), num(d.Height), num(minX), num(minY), num(d.Width), num(d.Height))
	printf(`<rect x="%s" y="%s" width="%s" height="%s" fill="%s"/>`+"\n",
		num(minX), num(minY), num(d.Width), num(d.Height), d.Background.Hex())

	text := func(p xyedge.Point, s, color string) {
		if s == "" {
			return
		}
		printf(`<text x="%s" y="%s" fill="%s" font-family="monospace" font-size="13" text-anchor="middle" dominant-baseline="central">%s</text>`+"\n",
			num(p.X), num(-p.Y), color, html.EscapeString(s))
	}

	for _, n := range d.Nodes {
		if n.Frame.IsPoint() {
			c := n.Frame.Center()
			printf(`<circle cx="%s" cy="%s" r="2" fill="%s"/>`+"\n", num(c.X), num(-c.Y), n.Color.Hex())
			continue
		}
		printf(`<path class="node" id="node-%s" fill="%s" stroke="%s" d="`, html.EscapeString(n.Name), n.Fill.Hex(), n.Color.Hex())
		path(n.Frame.PathElements())
		printf("\"/>\n")
		text(n.Frame.Center(), n.Label, n.Color.Hex())
	}

	for _, e := range d.Edges {
		if e.Skipped {
			printf("<!-- %s -> %s skipped: %s -->\n", html.EscapeString(e.From), html.EscapeString(e.To), e.Reason)
			continue
		}
		for _, c := range e.Shape.VisibleCurves() {
			printf(`<path class="edge" fill="none" stroke="%s" stroke-width="%s" d="`, e.Color.Hex(), num(e.Width))
			path(c.PathElements())
			printf("\"/>\n")
		}
		if len(e.Arrow) > 0 {
			printf(`<path class="arrow" fill="%s" d="`, e.Color.Hex())
			path(polygon(e.Arrow))
			printf("\"/>\n")
		}
		for _, l := range e.Labels {
			text(l.Frame.Center(), l.Text, e.Color.Hex())
		}
	}

	for _, p := range d.Crossings {
		printf(`<circle class="crossing" cx="%s" cy="%s" r="2" fill="%s"/>`+"\n", num(p.X), num(-p.Y), crossingColor.Hex())
	}
	printf("</svg>\n")
	if err != nil {
		return err
	}
	return bw.Flush()
}
