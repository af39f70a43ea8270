package main

import (
	"fmt"
	"strconv"
	"strings"

	"numlab/cmd/numlab/ui"
	"numlab/internal/geometry"
	"numlab/internal/logging"

	"github.com/spf13/cobra"
)

// shapeOptions holds the construction flags shared by the shape commands.
type shapeOptions struct {
	radius   float64
	segments int
	width    float64
	height   float64
	base     float64
	sides    int
	size     float64
	center   string
	color    string
}

var shapeOpts shapeOptions

var shapeCmd = &cobra.Command{
	Use:   "shape",
	Short: "Build 2D shapes and apply geometric transforms",
}

var shapeNewCmd = &cobra.Command{
	Use:       "new [circle|rectangle|triangle|polygon]",
	Short:     "Build a shape and print its vertices",
	Args:      cobra.ExactArgs(1),
	ValidArgs: []string{"circle", "rectangle", "triangle", "polygon"},
	RunE:      runShapeNew,
}

var shapeTransformCmd = &cobra.Command{
	Use:   "transform [kind] [op...]",
	Short: "Build a shape and apply a chain of transforms",
	Long: `Builds a shape from the construction flags and applies each operation in
order, printing the matrix of every step and the resulting vertices.

Operations:
  translate:DX,DY      shift by (DX, DY)
  rotate:DEG[@X,Y]     rotate counter-clockwise about (X, Y), default origin
  reflect:AXIS         x, y, origin, y=x, y=-x
  scale:SX,SY          scale relative to the origin`,
	Example: `  numlab shape transform rectangle --width 4 --height 2 rotate:90 translate:1,1
  numlab shape transform triangle reflect:y=x scale:2,2`,
	Args: cobra.MinimumNArgs(1),
	RunE: runShapeTransform,
}

func init() {
	for _, c := range []*cobra.Command{shapeNewCmd, shapeTransformCmd} {
		f := c.Flags()
		f.Float64Var(&shapeOpts.radius, "radius", 1, "Circle radius")
		f.IntVar(&shapeOpts.segments, "segments", geometry.DefaultCircleSegments, "Circle segments")
		f.Float64Var(&shapeOpts.width, "width", 2, "Rectangle width")
		f.Float64Var(&shapeOpts.height, "height", 2, "Rectangle or triangle height")
		f.Float64Var(&shapeOpts.base, "base", 2, "Triangle base")
		f.IntVar(&shapeOpts.sides, "sides", 5, "Polygon sides")
		f.Float64Var(&shapeOpts.size, "size", 1, "Polygon circumradius")
		f.StringVar(&shapeOpts.center, "center", "0,0", "Centre as X,Y")
		f.StringVar(&shapeOpts.color, "color", "#4DB6AC", "Display colour")
	}
	shapeCmd.AddCommand(shapeNewCmd)
	shapeCmd.AddCommand(shapeTransformCmd)
}

func (o shapeOptions) params(kind string) (geometry.Params, error) {
	switch geometry.Kind(strings.ToLower(kind)) {
	case geometry.KindCircle:
		return geometry.Circle{Radius: o.radius, Segments: o.segments}, nil
	case geometry.KindRectangle:
		return geometry.Rectangle{Width: o.width, Height: o.height}, nil
	case geometry.KindTriangle:
		return geometry.Triangle{Base: o.base, Height: o.height}, nil
	case geometry.KindPolygon:
		return geometry.Polygon{Sides: o.sides, Size: o.size}, nil
	}
	return nil, fmt.Errorf("%w: unknown kind %q", geometry.ErrInvalidShape, kind)
}

func (o shapeOptions) build(kind string) (geometry.Shape, error) {
	p, err := o.params(kind)
	if err != nil {
		return geometry.Shape{}, err
	}
	cx, cy, err := pair(o.center)
	if err != nil {
		return geometry.Shape{}, fmt.Errorf("--center: %w", err)
	}
	return geometry.NewShape(p, geometry.Point{X: cx, Y: cy}, o.color)
}

// parseTransform parses one "op:value" argument.
func parseTransform(arg string) (geometry.Transform, error) {
	op, val, ok := strings.Cut(arg, ":")
	if !ok {
		return nil, fmt.Errorf("%w: expected op:value, got %q", geometry.ErrInvalidTransform, arg)
	}
	switch strings.ToLower(op) {
	case "translate", "t":
		dx, dy, err := pair(val)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", geometry.ErrInvalidTransform, err)
		}
		return geometry.Translation{DX: dx, DY: dy}, nil
	case "rotate", "r":
		degStr, about, hasCenter := strings.Cut(val, "@")
		deg, err := strconv.ParseFloat(degStr, 64)
		if err != nil {
			return nil, fmt.Errorf("%w: bad angle %q", geometry.ErrInvalidTransform, degStr)
		}
		rot := geometry.Rotation{Degrees: deg}
		if hasCenter {
			x, y, err := pair(about)
			if err != nil {
				return nil, fmt.Errorf("%w: %v", geometry.ErrInvalidTransform, err)
			}
			rot.Center = geometry.Point{X: x, Y: y}
		}
		return rot, nil
	case "reflect", "f":
		axis, err := geometry.ParseAxis(val)
		if err != nil {
			return nil, err
		}
		return geometry.Reflection{Axis: axis}, nil
	case "scale", "s":
		sx, sy, err := pair(val)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", geometry.ErrInvalidTransform, err)
		}
		return geometry.Scaling{SX: sx, SY: sy}, nil
	}
	return nil, fmt.Errorf("%w: unknown operation %q", geometry.ErrInvalidTransform, op)
}

func runShapeNew(cmd *cobra.Command, args []string) error {
	s, err := shapeOpts.build(args[0])
	if err != nil {
		return err
	}
	logging.Get(logging.CategoryGeometry).Debugw("shape built", "id", s.ID, "kind", string(s.Kind), "points", len(s.Points))
	return emit(s, func() { printShape(s) })
}

type transformStep struct {
	Transform string           `json:"transform" yaml:"transform"`
	Matrix    string           `json:"matrix" yaml:"matrix"`
	Points    []geometry.Point `json:"points" yaml:"points"`
}

type transformOutput struct {
	Original geometry.Shape  `json:"original" yaml:"original"`
	Steps    []transformStep `json:"steps" yaml:"steps"`
	Result   geometry.Shape  `json:"result" yaml:"result"`
}

func runShapeTransform(cmd *cobra.Command, args []string) error {
	s, err := shapeOpts.build(args[0])
	if err != nil {
		return err
	}
	ts := make([]geometry.Transform, 0, len(args)-1)
	for _, a := range args[1:] {
		t, err := parseTransform(a)
		if err != nil {
			return err
		}
		ts = append(ts, t)
	}

	out := transformOutput{Original: s, Steps: make([]transformStep, 0, len(ts))}
	cur := s
	for _, t := range ts {
		cur = geometry.Chain(cur, t)
		out.Steps = append(out.Steps, transformStep{Transform: t.String(), Matrix: geometry.MatrixString(t), Points: cur.Points})
	}
	out.Result = cur
	logging.Get(logging.CategoryGeometry).Debugw("transformed", "id", s.ID, "transforms", len(ts))

	return emit(out, func() {
		printShape(out.Original)
		for i, st := range out.Steps {
			fmt.Println()
			fmt.Println(styles.Title.Render(fmt.Sprintf("%d. %s", i+1, st.Transform)))
			fmt.Println(styles.Box.Render(st.Matrix))
			fmt.Println(pointList(st.Points))
		}
	})
}

func printShape(s geometry.Shape) {
	fmt.Printf("%s %s\n", styles.Badge.Render(string(s.Kind)), styles.Muted.Render(s.ID))
	table := ui.NewSimpleTable("", []string{"#", "x", "y"})
	for i, p := range s.Points {
		table.AddRow(strconv.Itoa(i), geometry.FormatCoord(p.X), geometry.FormatCoord(p.Y))
	}
	fmt.Print(table.View(styles))
	fmt.Printf("%s %s\n", styles.Bold.Render("centroid:"), geometry.Centroid(s.Points))
}

func pointList(pts []geometry.Point) string {
	parts := make([]string, len(pts))
	for i, p := range pts {
		parts[i] = p.String()
	}
	return strings.Join(parts, " ")
}
