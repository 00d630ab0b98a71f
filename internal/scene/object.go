package scene

import (
	"image/color"
	"math"

	"github.com/google/uuid"
)

// Point is a position in canvas coordinates.
type Point struct {
	X float32 `json:"x"`
	Y float32 `json:"y"`
}

func Dist(a, b Point) float32 {
	dx := float64(a.X - b.X)
	dy := float64(a.Y - b.Y)
	return float32(math.Hypot(dx, dy))
}

func Midpoint(a, b Point) Point {
	return Point{X: (a.X + b.X) / 2, Y: (a.Y + b.Y) / 2}
}

// Style is fixed at creation time; objects are restyled by drawing new ones.
type Style struct {
	Color       color.NRGBA
	StrokeWidth float32
	Opacity     float32
}

const (
	MinScale = 0.1
	MaxScale = 5.0
)

// Transform holds the manipulation state of an object. The rotation and
// scale centers are set lazily on the first rotate/resize gesture and then
// stay fixed for the object's lifetime, even if the object is later dragged.
type Transform struct {
	Rotation       float64
	RotationCenter *Point
	Scale          float32
	ScaleCenter    *Point
}

// Apply maps a raw geometry point into screen space: rotation about the
// rotation center first, then scaling about the scale center.
func (t *Transform) Apply(p Point) Point {
	if t.Rotation != 0 && t.RotationCenter != nil {
		c := *t.RotationCenter
		sin, cos := math.Sincos(t.Rotation)
		dx := float64(p.X - c.X)
		dy := float64(p.Y - c.Y)
		p = Point{
			X: c.X + float32(dx*cos-dy*sin),
			Y: c.Y + float32(dx*sin+dy*cos),
		}
	}
	if t.Scale != 1 && t.ScaleCenter != nil {
		c := *t.ScaleCenter
		p = Point{
			X: c.X + (p.X-c.X)*t.Scale,
			Y: c.Y + (p.Y-c.Y)*t.Scale,
		}
	}
	return p
}

// ClampScale keeps requested scales inside the supported range instead of
// rejecting them.
func ClampScale(s float32) float32 {
	if s < MinScale {
		return MinScale
	}
	if s > MaxScale {
		return MaxScale
	}
	return s
}

type ShapeKind int

const (
	KindRectangle ShapeKind = iota
	KindCircle
	KindOval
	KindStar
)

func (k ShapeKind) String() string {
	switch k {
	case KindRectangle:
		return "rectangle"
	case KindCircle:
		return "circle"
	case KindOval:
		return "oval"
	case KindStar:
		return "star"
	}
	return "unknown"
}

type FillMode int

const (
	FillOutline FillMode = iota
	FillSolid
)

// Object is the drawable variant type. The concrete variants are *Line,
// *Path and *Shape; hitObject, outline and geometry copying each switch
// exhaustively over them.
type Object interface {
	ID() string
	Style() Style
	Transform() *Transform

	isObject()
}

type attrs struct {
	id    string
	style Style
	tf    Transform
}

func newAttrs(style Style) attrs {
	return attrs{id: uuid.NewString(), style: style, tf: Transform{Scale: 1}}
}

func (a *attrs) ID() string            { return a.id }
func (a *attrs) Style() Style          { return a.style }
func (a *attrs) Transform() *Transform { return &a.tf }
func (a *attrs) isObject()             {}

// Line is a straight segment between two endpoints.
type Line struct {
	attrs
	Start, End Point
}

func NewLine(start, end Point, style Style) *Line {
	return &Line{attrs: newAttrs(style), Start: start, End: end}
}

// Path is a free-hand polyline; points are append-only while the gesture is
// active.
type Path struct {
	attrs
	Points []Point
}

func NewPath(start Point, style Style) *Path {
	return &Path{attrs: newAttrs(style), Points: []Point{start}}
}

// Shape is a parametric figure stretched between two bounding corners. The
// corners are stored as captured from the gesture and may be unordered.
type Shape struct {
	attrs
	Kind   ShapeKind
	Fill   FillMode
	P1, P2 Point
}

func NewShape(kind ShapeKind, fill FillMode, corner Point, style Style) *Shape {
	return &Shape{attrs: newAttrs(style), Kind: kind, Fill: fill, P1: corner, P2: corner}
}

// Center returns the geometric center of an object's raw (untransformed)
// geometry. It seeds lazy rotation/scale centers.
func Center(o Object) Point {
	min, max := rawBounds(o)
	return Midpoint(min, max)
}

func rawBounds(o Object) (min, max Point) {
	var pts []Point
	switch v := o.(type) {
	case *Line:
		pts = []Point{v.Start, v.End}
	case *Path:
		pts = v.Points
	case *Shape:
		pts = []Point{v.P1, v.P2}
	}
	if len(pts) == 0 {
		return Point{}, Point{}
	}
	min, max = pts[0], pts[0]
	for _, p := range pts[1:] {
		min.X = minf(min.X, p.X)
		min.Y = minf(min.Y, p.Y)
		max.X = maxf(max.X, p.X)
		max.Y = maxf(max.Y, p.Y)
	}
	return min, max
}

// CloneObject deep-copies an object, preserving its id, so command
// snapshots restore the store bit-for-bit.
func CloneObject(o Object) Object {
	switch v := o.(type) {
	case *Line:
		c := *v
		c.tf = cloneTransform(v.tf)
		return &c
	case *Path:
		c := *v
		c.tf = cloneTransform(v.tf)
		c.Points = append([]Point(nil), v.Points...)
		return &c
	case *Shape:
		c := *v
		c.tf = cloneTransform(v.tf)
		return &c
	}
	return nil
}

func cloneTransform(t Transform) Transform {
	if t.RotationCenter != nil {
		c := *t.RotationCenter
		t.RotationCenter = &c
	}
	if t.ScaleCenter != nil {
		c := *t.ScaleCenter
		t.ScaleCenter = &c
	}
	return t
}

// CopyGeometry restores dst's raw geometry from a snapshot of the same
// variant. Used by the drag tool to re-apply the captured geometry before
// each translation so deltas never accumulate drift.
func CopyGeometry(dst, src Object) {
	switch d := dst.(type) {
	case *Line:
		s := src.(*Line)
		d.Start, d.End = s.Start, s.End
	case *Path:
		s := src.(*Path)
		d.Points = append(d.Points[:0], s.Points...)
	case *Shape:
		s := src.(*Shape)
		d.P1, d.P2 = s.P1, s.P2
	}
}

func translateObject(o Object, dx, dy float32) {
	switch v := o.(type) {
	case *Line:
		v.Start = shift(v.Start, dx, dy)
		v.End = shift(v.End, dx, dy)
	case *Path:
		for i := range v.Points {
			v.Points[i] = shift(v.Points[i], dx, dy)
		}
	case *Shape:
		v.P1 = shift(v.P1, dx, dy)
		v.P2 = shift(v.P2, dx, dy)
	}
}

func shift(p Point, dx, dy float32) Point {
	return Point{X: p.X + dx, Y: p.Y + dy}
}

func minf(a, b float32) float32 {
	if a < b {
		return a
	}
	return b
}

func maxf(a, b float32) float32 {
	if a > b {
		return a
	}
	return b
}
