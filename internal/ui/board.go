package ui

import (
	"image/color"
	"sync"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/widget"

	"AirCanvas/internal/scene"
)

var highlightColor = color.NRGBA{R: 255, G: 140, B: 0, A: 255}

// BoardWidget is the render surface. It draws the latest View snapshot and
// forwards mouse input as the pointer-fallback source.
type BoardWidget struct {
	widget.BaseWidget
	mu   sync.RWMutex
	view View

	drawing bool

	// OnPointer receives board-space position and raw pressed state.
	OnPointer func(pos scene.Point, pressed bool)
}

var _ fyne.Widget = (*BoardWidget)(nil)
var _ fyne.Draggable = (*BoardWidget)(nil)
var _ desktop.Mouseable = (*BoardWidget)(nil)

func NewBoardWidget() *BoardWidget {
	b := &BoardWidget{}
	b.ExtendBaseWidget(b)
	return b
}

// SetView swaps in a new snapshot and repaints. Safe to call from any
// goroutine.
func (b *BoardWidget) SetView(v View) {
	b.mu.Lock()
	b.view = v
	b.mu.Unlock()
	fyne.Do(func() { b.Refresh() })
}

func (b *BoardWidget) pointer(pos fyne.Position, pressed bool) {
	if b.OnPointer != nil {
		b.OnPointer(scene.Point{X: pos.X, Y: pos.Y}, pressed)
	}
}

func (b *BoardWidget) MouseDown(e *desktop.MouseEvent) {
	if e.Button == desktop.MouseButtonPrimary {
		b.drawing = true
		b.pointer(e.Position, true)
	}
}

func (b *BoardWidget) MouseUp(e *desktop.MouseEvent) {
	if e.Button == desktop.MouseButtonPrimary && b.drawing {
		b.drawing = false
		b.pointer(e.Position, false)
	}
}

func (b *BoardWidget) Dragged(e *fyne.DragEvent) {
	if b.drawing {
		b.pointer(e.Position, true)
	}
}

func (b *BoardWidget) DragEnd() {}

func (b *BoardWidget) MouseIn(*desktop.MouseEvent) {}

func (b *BoardWidget) MouseOut() {}

func (b *BoardWidget) MouseMoved(*desktop.MouseEvent) {}

func (b *BoardWidget) CreateRenderer() fyne.WidgetRenderer {
	r := &boardRenderer{board: b}
	r.background = canvas.NewRectangle(color.NRGBA{R: 245, G: 246, B: 248, A: 255})
	return r
}

type boardRenderer struct {
	board      *BoardWidget
	background *canvas.Rectangle
}

func (r *boardRenderer) Objects() []fyne.CanvasObject {
	r.board.mu.RLock()
	view := r.board.view
	r.board.mu.RUnlock()

	objects := []fyne.CanvasObject{r.background}
	for _, it := range view.items {
		objects = append(objects, renderItem(it)...)
	}
	return objects
}

func renderItem(it item) []fyne.CanvasObject {
	var out []fyne.CanvasObject

	switch {
	case it.fillRect:
		rect := canvas.NewRectangle(it.col)
		rect.Move(fyne.NewPos(it.min.X, it.min.Y))
		rect.Resize(fyne.NewSize(it.max.X-it.min.X, it.max.Y-it.min.Y))
		out = append(out, rect)
	case it.fillOval:
		oval := canvas.NewCircle(it.col)
		oval.Position1 = fyne.NewPos(it.min.X, it.min.Y)
		oval.Position2 = fyne.NewPos(it.max.X, it.max.Y)
		out = append(out, oval)
	default:
		for _, poly := range it.polys {
			for i := 1; i < len(poly); i++ {
				seg := canvas.NewLine(it.col)
				seg.StrokeWidth = it.width
				seg.Position1 = fyne.NewPos(poly[i-1].X, poly[i-1].Y)
				seg.Position2 = fyne.NewPos(poly[i].X, poly[i].Y)
				out = append(out, seg)
			}
		}
	}

	if it.highlight {
		out = append(out, highlightBox(it)...)
	}
	return out
}

// highlightBox marks a captured object. Presentation only.
func highlightBox(it item) []fyne.CanvasObject {
	min, max := it.min, it.max
	if !it.fillRect && !it.fillOval {
		first := true
		for _, poly := range it.polys {
			for _, p := range poly {
				if first {
					min, max = p, p
					first = false
					continue
				}
				if p.X < min.X {
					min.X = p.X
				}
				if p.Y < min.Y {
					min.Y = p.Y
				}
				if p.X > max.X {
					max.X = p.X
				}
				if p.Y > max.Y {
					max.Y = p.Y
				}
			}
		}
	}
	box := canvas.NewRectangle(color.Transparent)
	box.StrokeColor = highlightColor
	box.StrokeWidth = 2
	box.Move(fyne.NewPos(min.X-4, min.Y-4))
	box.Resize(fyne.NewSize(max.X-min.X+8, max.Y-min.Y+8))
	return []fyne.CanvasObject{box}
}

func (r *boardRenderer) Refresh() {
	canvas.Refresh(r.board)
}

func (r *boardRenderer) Layout(size fyne.Size) {
	r.background.Resize(size)
}

func (r *boardRenderer) MinSize() fyne.Size {
	return fyne.NewSize(640, 360)
}

func (r *boardRenderer) Destroy() {}
