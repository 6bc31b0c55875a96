// Package xyedge provides the geometry behind the edges of diagrams: curves
// drawn between objects, the outlines of those objects, and the gaps cut into
// curves where labels sit on top of them.
//
// # Frames
//
// Every object of a diagram has a [Frame], its bounding outline. A frame is a
// point, an axis-aligned rectangle or an ellipse, described by its center and
// four offsets l, r, u and d toward −x, +x, +y and −y. Frames use a y-up
// coordinate system; see [SVGOptions.FlipY] for converting to y-down output.
//
// Point frames are special: they have no outline and contain nothing, not
// even their own center. Curves cannot be shaved against them, and they never
// cut holes.
//
// # Curves
//
// [Curve] describes curves parametrized by t ∈ [0, 1]. This package includes
// the following curves:
//   - [Line]
//   - [QuadBez]
//   - [CubicBez]
//   - [PiecewiseCubicBez]
//   - [CubicBSpline]
//
// Curves compute their arc length from a table built with Simpson's rule on
// first use, and can map arc lengths back to parameters, which lets drawing
// code sample curves at even spacing.
//
// An edge between two objects starts and ends at their centers. [Shave] cuts
// it down to the visible part between the two outlines, using the curve's
// [Curve.Crossings] with the frames.
//
// # Intersections
//
// [IntersectSegments] intersects two [Segment] values, which are Bézier curves
// or circular arcs, with Bézier clipping: each segment in turn supplies a fat
// line that bounds it, and the other segment is narrowed to the parameter
// range whose convex hull lies within that band. The search is breadth first
// and bounded by [MaxClipIterations]. [IntersectCurves] applies it to whole
// curves. Crossings with ellipses are found this way, after mapping each
// quarter of the ellipse onto the unit circle.
//
// # Holes
//
// [CurveShape] is a curve with holes. [CurveShape.SliceHole] cuts out the
// part of the curve inside a frame, such as the frame of a label placed on
// the curve, and [CurveShape.VisibleCurves] returns what is left to draw.
//
// # Literature
//
// This package makes use of the following ideas:
//   - [A Primer on Bézier Curves]
//   - [Curve intersection using Bézier clipping] by Sederberg and Nishita
//   - [Computing the minimum distance between two Bézier curves] by Chen et al.
//
// [A Primer on Bézier Curves]: https://pomax.github.io/bezierinfo/
// [Curve intersection using Bézier clipping]: https://doi.org/10.1016/0010-4485(90)90039-F
// [Computing the minimum distance between two Bézier curves]: https://doi.org/10.1016/j.cam.2008.10.014
package xyedge
