package geometry

import (
	"fmt"
	"math"
	"strings"
)

func mapPoints(s Shape, f func(Point) Point) Shape {
	out := s
	out.Points = make([]Point, len(s.Points))
	for i, p := range s.Points {
		out.Points[i] = f(p)
	}
	return out
}

// Translate returns s shifted by (dx, dy).
func Translate(s Shape, dx, dy float64) Shape {
	return mapPoints(s, func(p Point) Point { return TranslatePoint(p, dx, dy) })
}

// Rotate returns s rotated counter-clockwise by deg degrees about center.
func Rotate(s Shape, deg float64, center Point) Shape {
	return mapPoints(s, func(p Point) Point { return RotatePoint(p, deg, center) })
}

// Reflect returns s mirrored across axis.
func Reflect(s Shape, axis Axis) Shape {
	return mapPoints(s, func(p Point) Point { return ReflectPoint(p, axis) })
}

// Scale returns s with x and y scaled independently about the origin.
func Scale(s Shape, sx, sy float64) Shape {
	return mapPoints(s, func(p Point) Point { return ScalePoint(p, sx, sy) })
}

// Transform describes one transformation for Apply and MatrixString.
type Transform interface {
	Apply(s Shape) Shape
	fmt.Stringer
}

// Translation shifts by (DX, DY).
type Translation struct{ DX, DY float64 }

// Rotation turns counter-clockwise by Degrees about Center.
type Rotation struct {
	Degrees float64
	Center  Point
}

// Reflection mirrors across Axis.
type Reflection struct{ Axis Axis }

// Scaling multiplies x by SX and y by SY.
type Scaling struct{ SX, SY float64 }

func (t Translation) Apply(s Shape) Shape { return Translate(s, t.DX, t.DY) }
func (t Rotation) Apply(s Shape) Shape    { return Rotate(s, t.Degrees, t.Center) }
func (t Reflection) Apply(s Shape) Shape  { return Reflect(s, t.Axis) }
func (t Scaling) Apply(s Shape) Shape     { return Scale(s, t.SX, t.SY) }

func (t Translation) String() string {
	return fmt.Sprintf("translate by (%s, %s)", FormatCoord(t.DX), FormatCoord(t.DY))
}

func (t Rotation) String() string {
	return fmt.Sprintf("rotate %s° about %s", FormatCoord(t.Degrees), t.Center)
}

func (t Reflection) String() string { return "reflect across " + t.Axis.String() }

func (t Scaling) String() string {
	return fmt.Sprintf("scale by (%s, %s)", FormatCoord(t.SX), FormatCoord(t.SY))
}

// Chain applies transforms left to right.
func Chain(s Shape, ts ...Transform) Shape {
	for _, t := range ts {
		s = t.Apply(s)
	}
	return s
}

// Matrix returns the 2x2 linear part of t, or false for a translation.
func Matrix(t Transform) ([2][2]float64, bool) {
	switch t := t.(type) {
	case Rotation:
		sin, cos := math.Sincos(t.Degrees * math.Pi / 180)
		return [2][2]float64{{cos, -sin}, {sin, cos}}, true
	case Reflection:
		switch t.Axis {
		case AxisX:
			return [2][2]float64{{1, 0}, {0, -1}}, true
		case AxisY:
			return [2][2]float64{{-1, 0}, {0, 1}}, true
		case Origin:
			return [2][2]float64{{-1, 0}, {0, -1}}, true
		case LineYX:
			return [2][2]float64{{0, 1}, {1, 0}}, true
		case LineYNegX:
			return [2][2]float64{{0, -1}, {-1, 0}}, true
		}
	case Scaling:
		return [2][2]float64{{t.SX, 0}, {0, t.SY}}, true
	}
	return [2][2]float64{}, false
}

// MatrixString renders t's matrix for display: a 2x2 matrix for linear
// transforms and a 2x1 column for translations. It is never used to compute
// coordinates.
func MatrixString(t Transform) string {
	if tr, ok := t.(Translation); ok {
		return column(FormatCoord(tr.DX), FormatCoord(tr.DY))
	}
	m, ok := Matrix(t)
	if !ok {
		return ""
	}
	cells := [2][2]string{
		{FormatCoord(round(m[0][0])), FormatCoord(round(m[0][1]))},
		{FormatCoord(round(m[1][0])), FormatCoord(round(m[1][1]))},
	}
	w0 := max(len(cells[0][0]), len(cells[1][0]))
	w1 := max(len(cells[0][1]), len(cells[1][1]))
	var sb strings.Builder
	for i, row := range cells {
		fmt.Fprintf(&sb, "[ %*s  %*s ]", w0, row[0], w1, row[1])
		if i == 0 {
			sb.WriteByte('\n')
		}
	}
	return sb.String()
}

func column(a, b string) string {
	w := max(len(a), len(b))
	return fmt.Sprintf("[ %*s ]\n[ %*s ]", w, a, w, b)
}

// round snaps values within 1e-12 of an integer, so cos 90° prints as 0.
func round(v float64) float64 {
	if r := math.Round(v); math.Abs(v-r) < 1e-12 {
		return r
	}
	return v
}
