package xyedge

import (
	"fmt"
	"io"
	"iter"
	"strconv"
	"strings"
)

type PathElementKind int

const (
	// Move directly to the point without drawing anything, starting a new
	// subpath.
	MoveToKind PathElementKind = iota + 1
	// Draw a line from the current location to the point.
	LineToKind
	// Draw a quadratic Bézier using the current location and the two points.
	QuadToKind
	// Draw a cubic Bézier using the current location and the three points.
	CubicToKind
	// Draw a line back to the start of the current subpath.
	ClosePathKind
)

// PathElement is a drawing command. A path starts with a MoveTo element.
type PathElement struct {
	Kind PathElementKind
	P0   Point
	P1   Point
	P2   Point
}

func (el PathElement) String() string {
	switch el.Kind {
	case MoveToKind:
		return fmt.Sprintf("MoveTo(%v)", el.P0)
	case LineToKind:
		return fmt.Sprintf("LineTo(%v)", el.P0)
	case QuadToKind:
		return fmt.Sprintf("QuadTo(%v, %v)", el.P0, el.P1)
	case CubicToKind:
		return fmt.Sprintf("CubicTo(%v, %v, %v)", el.P0, el.P1, el.P2)
	case ClosePathKind:
		return "ClosePath()"
	default:
		return "InvalidPathElement"
	}
}

func MoveTo(pt Point) PathElement {
	return PathElement{Kind: MoveToKind, P0: pt}
}

func LineTo(pt Point) PathElement {
	return PathElement{Kind: LineToKind, P0: pt}
}

func QuadTo(p1, p2 Point) PathElement {
	return PathElement{Kind: QuadToKind, P0: p1, P1: p2}
}

func CubicTo(p1, p2, p3 Point) PathElement {
	return PathElement{Kind: CubicToKind, P0: p1, P1: p2, P2: p3}
}

func ClosePath() PathElement {
	return PathElement{Kind: ClosePathKind}
}

// SVGOptions specifies optional settings for [SVG] and [WriteSVG].
type SVGOptions struct {
	// The maximum precision with which to format coordinates. A value of 0
	// chooses the highest precision necessary to unambiguously represent any
	// given coordinate.
	MaxPrecision int
	// FlipY negates y coordinates, converting from the y-up convention of
	// frames to SVG's y-down space.
	FlipY bool
}

// SVG converts a sequence of path elements to a string of SVG path commands.
func SVG(seq iter.Seq[PathElement], opts SVGOptions) string {
	sb := &strings.Builder{}
	WriteSVG(sb, seq, opts)
	return sb.String()
}

// WriteSVG converts a sequence of path elements to a string of SVG path
// commands and writes it to w.
func WriteSVG(w io.Writer, seq iter.Seq[PathElement], opts SVGOptions) error {
	var err error
	write := func(s string, v ...any) {
		if err != nil {
			return
		}
		_, err = fmt.Fprintf(w, s, v...)
	}
	format := func(n float64) string {
		maxPrec := opts.MaxPrecision
		if maxPrec <= 0 {
			return strconv.FormatFloat(n, 'f', -1, 64)
		}
		s := strconv.FormatFloat(n, 'f', maxPrec, 64)
		s = strings.TrimRight(s, "0")
		return strings.TrimSuffix(s, ".")
	}
	pt := func(p Point) string {
		y := p.Y
		if opts.FlipY && y != 0 {
			y = -y
		}
		return format(p.X) + "," + format(y)
	}
	first := true
	for el := range seq {
		if err != nil {
			return err
		}
		if !first {
			write(" ")
		}
		first = false
		switch el.Kind {
		case MoveToKind:
			write("M%s", pt(el.P0))
		case LineToKind:
			write("L%s", pt(el.P0))
		case QuadToKind:
			write("Q%s %s", pt(el.P0), pt(el.P1))
		case CubicToKind:
			write("C%s %s %s", pt(el.P0), pt(el.P1), pt(el.P2))
		case ClosePathKind:
			write("Z")
		default:
			panic("unreachable")
		}
	}
	return err
}
