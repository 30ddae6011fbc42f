// Package geometry resolves where a relationship line leaves a class box.
//
// The line between two boxes runs from center to center; the visible part
// starts where it crosses the source box's perimeter and ends where it
// crosses the target's. [Endpoints] returns that pair.
//
// The exit side is chosen by the dominant axis of the center-to-center
// angle. The offset along that side is computed from the box's half-width
// (left/right exits) or half-height (top/bottom exits), which matches the
// true intersection only when the box is square. [ResolveBoundaryPoint]
// clamps the offset to the side's half-extent so the result always lies on
// the perimeter; [RawBoundaryPoint] returns the unclamped value, which can
// land outside the box for wide or tall rectangles at diagonal angles.
package geometry

import (
	"math"

	"github.com/matzehuels/classlink/pkg/diagram"
)

// ResolveBoundaryPoint returns the point on subject's perimeter on the ray
// from subject's center toward other's center, clamped to the exit side.
func ResolveBoundaryPoint(subject, other diagram.Node) diagram.Point {
	return boundaryPoint(subject, other, true)
}

// RawBoundaryPoint is [ResolveBoundaryPoint] without clamping.
func RawBoundaryPoint(subject, other diagram.Node) diagram.Point {
	return boundaryPoint(subject, other, false)
}

// Endpoints returns the start point on from's perimeter and the end point
// on to's perimeter.
func Endpoints(from, to diagram.Node) (start, end diagram.Point) {
	return ResolveBoundaryPoint(from, to), ResolveBoundaryPoint(to, from)
}

// Angle returns the direction from a to b in radians.
func Angle(a, b diagram.Point) float64 {
	return math.Atan2(b.Y-a.Y, b.X-a.X)
}

func boundaryPoint(subject, other diagram.Node, clamp bool) diagram.Point {
	c := subject.Center()
	angle := Angle(c, other.Center())
	cos, sin, tan := math.Cos(angle), math.Sin(angle), math.Tan(angle)

	halfW, halfH := subject.Width/2, subject.Height/2

	if math.Abs(cos) > math.Abs(sin) {
		dy := halfW * tan
		if clamp {
			dy = clampAbs(dy, halfH)
		}
		if cos > 0 {
			return diagram.Point{X: subject.X + subject.Width, Y: c.Y + dy}
		}
		return diagram.Point{X: subject.X, Y: c.Y - dy}
	}

	dx := halfH / tan
	if clamp {
		dx = clampAbs(dx, halfW)
	}
	if sin > 0 {
		return diagram.Point{X: c.X + dx, Y: subject.Y + subject.Height}
	}
	return diagram.Point{X: c.X - dx, Y: subject.Y}
}

// clampAbs limits v to [-limit, limit]. NaN collapses to 0.
func clampAbs(v, limit float64) float64 {
	switch {
	case math.IsNaN(v):
		return 0
	case v > limit:
		return limit
	case v < -limit:
		return -limit
	}
	return v
}

// OnPerimeter reports whether p lies on n's boundary within tol.
func OnPerimeter(n diagram.Node, p diagram.Point, tol float64) bool {
	left, right := n.X, n.X+n.Width
	top, bottom := n.Y, n.Y+n.Height

	withinX := p.X >= left-tol && p.X <= right+tol
	withinY := p.Y >= top-tol && p.Y <= bottom+tol
	if !withinX || !withinY {
		return false
	}
	return math.Abs(p.X-left) <= tol || math.Abs(p.X-right) <= tol ||
		math.Abs(p.Y-top) <= tol || math.Abs(p.Y-bottom) <= tol
}
