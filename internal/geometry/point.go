// Package geometry implements 2D point and shape transformations for the
// geometry playground: translation, rotation about a centre, reflection
// across five fixed axes and independent x/y scaling.
//
// Transforms are functional: they return a new value and never mutate
// their input.
package geometry

import (
	"fmt"
	"math"
	"strings"
)

// Point is a 2D coordinate.
type Point struct {
	X float64 `json:"x" yaml:"x"`
	Y float64 `json:"y" yaml:"y"`
}

func (p Point) String() string {
	return fmt.Sprintf("(%s, %s)", FormatCoord(p.X), FormatCoord(p.Y))
}

// Axis is one of the fixed reflection lines.
type Axis int

const (
	AxisX     Axis = iota // y = 0
	AxisY                 // x = 0
	Origin                // point reflection through (0, 0)
	LineYX                // y = x
	LineYNegX             // y = -x
)

var axisNames = map[Axis]string{
	AxisX:     "x-axis",
	AxisY:     "y-axis",
	Origin:    "origin",
	LineYX:    "y=x",
	LineYNegX: "y=-x",
}

func (a Axis) String() string {
	if n, ok := axisNames[a]; ok {
		return n
	}
	return "unknown"
}

// ParseAxis accepts the names printed by Axis.String plus a few short forms.
func ParseAxis(s string) (Axis, error) {
	switch strings.ToLower(strings.ReplaceAll(s, " ", "")) {
	case "x", "x-axis", "xaxis":
		return AxisX, nil
	case "y", "y-axis", "yaxis":
		return AxisY, nil
	case "o", "origin":
		return Origin, nil
	case "y=x", "yx":
		return LineYX, nil
	case "y=-x", "y-x", "ynegx":
		return LineYNegX, nil
	}
	return 0, fmt.Errorf("%w: unknown axis %q", ErrInvalidTransform, s)
}

// TranslatePoint shifts p by (dx, dy).
func TranslatePoint(p Point, dx, dy float64) Point {
	return Point{X: p.X + dx, Y: p.Y + dy}
}

// RotatePoint rotates p counter-clockwise by deg degrees about center:
// translate to the origin, rotate, translate back.
func RotatePoint(p Point, deg float64, center Point) Point {
	rad := deg * math.Pi / 180
	sin, cos := math.Sincos(rad)
	x := p.X - center.X
	y := p.Y - center.Y
	return Point{
		X: x*cos - y*sin + center.X,
		Y: x*sin + y*cos + center.Y,
	}
}

// ReflectPoint mirrors p across axis. Every case is a sign flip and/or a
// coordinate swap, so the result is exact.
func ReflectPoint(p Point, axis Axis) Point {
	switch axis {
	case AxisX:
		return Point{X: p.X, Y: -p.Y}
	case AxisY:
		return Point{X: -p.X, Y: p.Y}
	case Origin:
		return Point{X: -p.X, Y: -p.Y}
	case LineYX:
		return Point{X: p.Y, Y: p.X}
	case LineYNegX:
		return Point{X: -p.Y, Y: -p.X}
	}
	return p
}

// ScalePoint multiplies p's coordinates by sx and sy about the origin.
func ScalePoint(p Point, sx, sy float64) Point {
	return Point{X: p.X * sx, Y: p.Y * sy}
}

// Centroid returns the arithmetic mean of points, or the origin for none.
func Centroid(points []Point) Point {
	if len(points) == 0 {
		return Point{}
	}
	var c Point
	for _, p := range points {
		c.X += p.X
		c.Y += p.Y
	}
	n := float64(len(points))
	return Point{X: c.X / n, Y: c.Y / n}
}

// FormatCoord renders v with at most four decimals and no trailing zeros.
func FormatCoord(v float64) string {
	s := strings.TrimRight(strings.TrimRight(fmt.Sprintf("%.4f", v), "0"), ".")
	if s == "-0" || s == "" {
		return "0"
	}
	return s
}
