package geometry

import (
	"errors"
	"fmt"
	"math"

	"github.com/google/uuid"
)

var (
	ErrInvalidShape     = errors.New("invalid shape")
	ErrInvalidTransform = errors.New("invalid transform")
)

// Kind names the shape family.
type Kind string

const (
	KindCircle    Kind = "circle"
	KindRectangle Kind = "rectangle"
	KindTriangle  Kind = "triangle"
	KindPolygon   Kind = "polygon"
)

// Params is implemented by the per-kind parameter structs.
type Params interface {
	Kind() Kind
	Points(center Point) ([]Point, error)
}

// DefaultCircleSegments is used when Circle.Segments is zero.
const DefaultCircleSegments = 36

// Circle is approximated by a regular polygon with Segments vertices.
type Circle struct {
	Radius   float64 `json:"radius" yaml:"radius"`
	Segments int     `json:"segments,omitempty" yaml:"segments,omitempty"`
}

// Rectangle is axis-aligned and centred on the construction point.
type Rectangle struct {
	Width  float64 `json:"width" yaml:"width"`
	Height float64 `json:"height" yaml:"height"`
}

// Triangle is isosceles: a horizontal base with the apex above its midpoint.
type Triangle struct {
	Base   float64 `json:"base" yaml:"base"`
	Height float64 `json:"height" yaml:"height"`
}

// Polygon is a regular polygon whose vertices lie Size away from the centre.
type Polygon struct {
	Sides int     `json:"sides" yaml:"sides"`
	Size  float64 `json:"size" yaml:"size"`
}

func (Circle) Kind() Kind    { return KindCircle }
func (Rectangle) Kind() Kind { return KindRectangle }
func (Triangle) Kind() Kind  { return KindTriangle }
func (Polygon) Kind() Kind   { return KindPolygon }

func (c Circle) Points(center Point) ([]Point, error) {
	segs := c.Segments
	if segs == 0 {
		segs = DefaultCircleSegments
	}
	return CirclePoints(center, c.Radius, segs)
}

func (r Rectangle) Points(center Point) ([]Point, error) {
	return RectanglePoints(center, r.Width, r.Height)
}

func (t Triangle) Points(center Point) ([]Point, error) {
	return TrianglePoints(center, t.Base, t.Height)
}

func (p Polygon) Points(center Point) ([]Point, error) {
	return PolygonPoints(center, p.Sides, p.Size)
}

// Shape is an identified, coloured point list built from Params.
type Shape struct {
	ID     string  `json:"id" yaml:"id"`
	Kind   Kind    `json:"kind" yaml:"kind"`
	Points []Point `json:"points" yaml:"points"`
	Color  string  `json:"color" yaml:"color"`
	Params Params  `json:"params" yaml:"params"`
}

// NewShape builds the points for params around center and assigns a fresh ID.
func NewShape(params Params, center Point, color string) (Shape, error) {
	if params == nil {
		return Shape{}, fmt.Errorf("%w: nil params", ErrInvalidShape)
	}
	pts, err := params.Points(center)
	if err != nil {
		return Shape{}, err
	}
	return Shape{
		ID:     uuid.New().String(),
		Kind:   params.Kind(),
		Points: pts,
		Color:  color,
		Params: params,
	}, nil
}

// RectanglePoints returns the four corners counter-clockwise from bottom-left.
func RectanglePoints(center Point, width, height float64) ([]Point, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: rectangle needs positive width and height, got %gx%g", ErrInvalidShape, width, height)
	}
	hw, hh := width/2, height/2
	return []Point{
		{X: center.X - hw, Y: center.Y - hh},
		{X: center.X + hw, Y: center.Y - hh},
		{X: center.X + hw, Y: center.Y + hh},
		{X: center.X - hw, Y: center.Y + hh},
	}, nil
}

// TrianglePoints returns base-left, base-right and apex. The base sits
// height/2 below center and the apex height/2 above it.
func TrianglePoints(center Point, base, height float64) ([]Point, error) {
	if base <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: triangle needs positive base and height, got %g and %g", ErrInvalidShape, base, height)
	}
	hb, hh := base/2, height/2
	return []Point{
		{X: center.X - hb, Y: center.Y - hh},
		{X: center.X + hb, Y: center.Y - hh},
		{X: center.X, Y: center.Y + hh},
	}, nil
}

// PolygonPoints returns the vertices of a regular n-gon, counter-clockwise,
// starting straight above center.
func PolygonPoints(center Point, sides int, size float64) ([]Point, error) {
	if sides < 3 {
		return nil, fmt.Errorf("%w: polygon needs at least 3 sides, got %d", ErrInvalidShape, sides)
	}
	if size <= 0 {
		return nil, fmt.Errorf("%w: polygon needs a positive size, got %g", ErrInvalidShape, size)
	}
	pts := make([]Point, sides)
	for i := range pts {
		theta := math.Pi/2 + 2*math.Pi*float64(i)/float64(sides)
		pts[i] = Point{
			X: center.X + size*math.Cos(theta),
			Y: center.Y + size*math.Sin(theta),
		}
	}
	return pts, nil
}

// CirclePoints approximates a circle with segments vertices starting at
// angle zero.
func CirclePoints(center Point, radius float64, segments int) ([]Point, error) {
	if radius <= 0 {
		return nil, fmt.Errorf("%w: circle needs a positive radius, got %g", ErrInvalidShape, radius)
	}
	if segments < 3 {
		return nil, fmt.Errorf("%w: circle needs at least 3 segments, got %d", ErrInvalidShape, segments)
	}
	pts := make([]Point, segments)
	for i := range pts {
		theta := 2 * math.Pi * float64(i) / float64(segments)
		pts[i] = Point{
			X: center.X + radius*math.Cos(theta),
			Y: center.Y + radius*math.Sin(theta),
		}
	}
	return pts, nil
}
