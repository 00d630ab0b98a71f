// Package export renders the committed scene to files: a raster PNG
// snapshot and a line-segment PDF. Both are pure reads of the object
// list; in-progress drawings and highlights are never included.
package export

import (
	"image"
	"image/color"
	"image/png"
	"io"
	"math"

	"golang.org/x/image/vector"

	"AirCanvas/internal/scene"
)

var background = color.NRGBA{R: 245, G: 246, B: 248, A: 255}

// PNG rasterizes the objects against a neutral background, honoring
// style, opacity, rotation and scale.
func PNG(w io.Writer, objects []scene.Object, width, height int) error {
	dst := image.NewRGBA(image.Rect(0, 0, width, height))
	fillRect(dst, background)

	for _, o := range objects {
		drawObject(dst, o)
	}
	return png.Encode(w, dst)
}

func fillRect(dst *image.RGBA, c color.NRGBA) {
	b := dst.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			dst.SetRGBA(x, y, color.RGBA{R: c.R, G: c.G, B: c.B, A: c.A})
		}
	}
}

func drawObject(dst *image.RGBA, o scene.Object) {
	style := o.Style()
	col := withOpacity(style.Color, style.Opacity)

	if s, ok := o.(*scene.Shape); ok && s.Fill == scene.FillSolid {
		for _, poly := range scene.Outline(o) {
			fillPolygon(dst, poly, col)
		}
		return
	}
	for _, poly := range scene.Outline(o) {
		strokePolyline(dst, poly, style.StrokeWidth, col)
	}
}

func withOpacity(c color.NRGBA, opacity float32) color.NRGBA {
	if opacity <= 0 || opacity >= 1 {
		return c
	}
	c.A = uint8(float32(c.A) * opacity)
	return c
}

func fillPolygon(dst *image.RGBA, poly []scene.Point, col color.NRGBA) {
	if len(poly) < 3 {
		return
	}
	b := dst.Bounds()
	r := vector.NewRasterizer(b.Dx(), b.Dy())
	r.MoveTo(poly[0].X, poly[0].Y)
	for _, p := range poly[1:] {
		r.LineTo(p.X, p.Y)
	}
	r.ClosePath()
	r.Draw(dst, b, image.NewUniform(col), image.Point{})
}

// strokePolyline stamps each segment as a filled quad of the stroke
// width. Joints are left unmitred; at drawing stroke widths the overlap
// is invisible.
func strokePolyline(dst *image.RGBA, poly []scene.Point, width float32, col color.NRGBA) {
	if width < 1 {
		width = 1
	}
	b := dst.Bounds()
	for i := 1; i < len(poly); i++ {
		a, c := poly[i-1], poly[i]
		nx, ny := normal(a, c, width/2)
		r := vector.NewRasterizer(b.Dx(), b.Dy())
		r.MoveTo(a.X+nx, a.Y+ny)
		r.LineTo(c.X+nx, c.Y+ny)
		r.LineTo(c.X-nx, c.Y-ny)
		r.LineTo(a.X-nx, a.Y-ny)
		r.ClosePath()
		r.Draw(dst, b, image.NewUniform(col), image.Point{})
	}
}

func normal(a, b scene.Point, half float32) (float32, float32) {
	dx := float64(b.X - a.X)
	dy := float64(b.Y - a.Y)
	length := math.Hypot(dx, dy)
	if length == 0 {
		return 0, half
	}
	return float32(-dy / length * float64(half)), float32(dx / length * float64(half))
}
