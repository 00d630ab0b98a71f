package scene

import "math"

const ellipseSegments = 32

// Outline returns the screen-space polylines describing an object, with its
// rotation and scale applied. Renderers and exporters walk these; closed
// figures repeat their first point at the end.
func Outline(o Object) [][]Point {
	tf := o.Transform()
	switch v := o.(type) {
	case *Line:
		return [][]Point{{tf.Apply(v.Start), tf.Apply(v.End)}}
	case *Path:
		pts := make([]Point, len(v.Points))
		for i, p := range v.Points {
			pts[i] = tf.Apply(p)
		}
		return [][]Point{pts}
	case *Shape:
		return [][]Point{shapeOutline(v)}
	}
	return nil
}

func shapeOutline(s *Shape) []Point {
	min, max := rawBounds(s)
	var raw []Point
	switch s.Kind {
	case KindRectangle:
		raw = []Point{
			min,
			{X: max.X, Y: min.Y},
			max,
			{X: min.X, Y: max.Y},
			min,
		}
	case KindCircle:
		c := Midpoint(min, max)
		r := minf(max.X-min.X, max.Y-min.Y) / 2
		raw = ellipsePoints(c, r, r)
	case KindOval:
		c := Midpoint(min, max)
		raw = ellipsePoints(c, (max.X-min.X)/2, (max.Y-min.Y)/2)
	case KindStar:
		raw = starPoints(min, max)
	}
	tf := s.Transform()
	for i := range raw {
		raw[i] = tf.Apply(raw[i])
	}
	return raw
}

func ellipsePoints(c Point, rx, ry float32) []Point {
	pts := make([]Point, 0, ellipseSegments+1)
	for i := 0; i <= ellipseSegments; i++ {
		a := 2 * math.Pi * float64(i) / ellipseSegments
		pts = append(pts, Point{
			X: c.X + rx*float32(math.Cos(a)),
			Y: c.Y + ry*float32(math.Sin(a)),
		})
	}
	return pts
}

// starPoints builds a five-pointed star inscribed in the bounding corners,
// alternating outer and inner vertices.
func starPoints(min, max Point) []Point {
	c := Midpoint(min, max)
	rx := (max.X - min.X) / 2
	ry := (max.Y - min.Y) / 2
	pts := make([]Point, 0, 11)
	for i := 0; i < 10; i++ {
		a := -math.Pi/2 + float64(i)*math.Pi/5
		fx, fy := rx, ry
		if i%2 == 1 {
			fx, fy = rx*0.4, ry*0.4
		}
		pts = append(pts, Point{
			X: c.X + fx*float32(math.Cos(a)),
			Y: c.Y + fy*float32(math.Sin(a)),
		})
	}
	return append(pts, pts[0])
}

// CircleGeom reports the transformed center and scaled radius of a circle
// shape. ok is false for any other object.
func CircleGeom(o Object) (center Point, radius float32, ok bool) {
	s, isShape := o.(*Shape)
	if !isShape || s.Kind != KindCircle {
		return Point{}, 0, false
	}
	min, max := rawBounds(s)
	c := Midpoint(min, max)
	r := minf(max.X-min.X, max.Y-min.Y) / 2
	tf := s.Transform()
	if tf.Scale != 1 && tf.ScaleCenter != nil {
		r *= tf.Scale
	}
	return tf.Apply(c), r, true
}

// Bounds returns the axis-aligned bounding box of an object's transformed
// outline.
func Bounds(o Object) (min, max Point) {
	first := true
	for _, poly := range Outline(o) {
		for _, p := range poly {
			if first {
				min, max = p, p
				first = false
				continue
			}
			min.X = minf(min.X, p.X)
			min.Y = minf(min.Y, p.Y)
			max.X = maxf(max.X, p.X)
			max.Y = maxf(max.Y, p.Y)
		}
	}
	return min, max
}
