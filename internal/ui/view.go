package ui

import (
	"image/color"

	"AirCanvas/internal/scene"
)

// item is one renderable object snapshot. The widget renders from these
// rather than touching engine state, so the UI thread never races the
// engine goroutine.
type item struct {
	polys [][]scene.Point
	col   color.NRGBA
	width float32

	// Axis-aligned fill fast paths; only set while the shape is
	// unrotated, since Fyne canvas primitives cannot rotate. Rotated
	// filled shapes fall back to their outline.
	fillRect bool
	fillOval bool
	min, max scene.Point

	highlight bool
}

// View is a full snapshot of everything the board should draw.
type View struct {
	items []item
}

// BuildView converts committed objects, in-progress drawings and the
// captured-object highlight set into renderable items.
func BuildView(objects, pending []scene.Object, captured map[string]bool) View {
	var v View
	for _, o := range objects {
		v.items = append(v.items, buildItem(o, captured[o.ID()]))
	}
	for _, o := range pending {
		v.items = append(v.items, buildItem(o, false))
	}
	return v
}

func buildItem(o scene.Object, highlight bool) item {
	style := o.Style()
	it := item{
		polys:     scene.Outline(o),
		col:       withOpacity(style.Color, style.Opacity),
		width:     style.StrokeWidth,
		highlight: highlight,
	}
	if s, ok := o.(*scene.Shape); ok && s.Fill == scene.FillSolid && canFillAligned(s) {
		it.min, it.max = scene.Bounds(s)
		switch s.Kind {
		case scene.KindRectangle:
			it.fillRect = true
		case scene.KindCircle, scene.KindOval:
			it.fillOval = true
		}
	}
	return it
}

func canFillAligned(s *scene.Shape) bool {
	if s.Kind == scene.KindStar {
		return false
	}
	return s.Transform().Rotation == 0
}

func withOpacity(c color.NRGBA, opacity float32) color.NRGBA {
	if opacity <= 0 || opacity >= 1 {
		return c
	}
	c.A = uint8(float32(c.A) * opacity)
	return c
}
