package ui

import (
	"image/color"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/widget"

	"AirCanvas/internal/gesture"
	"AirCanvas/internal/scene"
)

// Controls are the callbacks the toolbar invokes. They are routed through
// the engine's operation queue by the caller, so tapping a button never
// mutates core state from the UI thread.
type Controls struct {
	SelectTool func(name string)
	SetColor   func(c color.NRGBA)
	SetStroke  func(w float32)
	SetOpacity func(o float32)
	SetShape   func(kind scene.ShapeKind)
	SetFill    func(filled bool)

	Undo      func()
	Redo      func()
	Clear     func()
	ExportPNG func()
	ExportPDF func()
}

// --- Color swatches ---

type colorSwatch struct {
	widget.BaseWidget
	Color    color.NRGBA
	OnTapped func(color.NRGBA)
}

func newColorSwatch(c color.NRGBA, tapped func(color.NRGBA)) *colorSwatch {
	s := &colorSwatch{Color: c, OnTapped: tapped}
	s.ExtendBaseWidget(s)
	return s
}

func (s *colorSwatch) CreateRenderer() fyne.WidgetRenderer {
	rect := canvas.NewRectangle(s.Color)
	rect.SetMinSize(fyne.NewSize(24, 24))

	border := canvas.NewRectangle(color.Transparent)
	border.StrokeColor = color.Gray{Y: 150}
	border.StrokeWidth = 1

	return widget.NewSimpleRenderer(container.NewStack(rect, border))
}

func (s *colorSwatch) Tapped(_ *fyne.PointEvent) {
	if s.OnTapped != nil {
		s.OnTapped(s.Color)
	}
}

var shapeNames = []string{"rectangle", "circle", "oval", "star"}

func shapeKindByName(name string) scene.ShapeKind {
	switch name {
	case "circle":
		return scene.KindCircle
	case "oval":
		return scene.KindOval
	case "star":
		return scene.KindStar
	}
	return scene.KindRectangle
}

// NewToolbar assembles the tool, shape, color and size controls.
func NewToolbar(c Controls) fyne.CanvasObject {
	toolNames := []string{
		gesture.ToolDraw, gesture.ToolLine, gesture.ToolShape,
		gesture.ToolDrag, gesture.ToolRotate, gesture.ToolResize,
	}
	toolBox := container.NewHBox()
	for _, name := range toolNames {
		name := name
		toolBox.Add(widget.NewButton(name, func() { c.SelectTool(name) }))
	}

	shapeSelect := widget.NewSelect(shapeNames, func(name string) {
		c.SetShape(shapeKindByName(name))
	})
	shapeSelect.SetSelected("rectangle")

	fillCheck := widget.NewCheck("filled", func(on bool) { c.SetFill(on) })

	colorBox := container.NewHBox(
		newColorSwatch(color.NRGBA{A: 255}, c.SetColor),
		newColorSwatch(color.NRGBA{R: 255, A: 255}, c.SetColor),
		newColorSwatch(color.NRGBA{G: 200, A: 255}, c.SetColor),
		newColorSwatch(color.NRGBA{B: 255, A: 255}, c.SetColor),
		newColorSwatch(color.NRGBA{R: 255, G: 200, A: 255}, c.SetColor),
	)

	strokeSlider := widget.NewSlider(1, 30)
	strokeSlider.SetValue(3)
	strokeSlider.OnChanged = func(v float64) { c.SetStroke(float32(v)) }

	opacitySlider := widget.NewSlider(0.1, 1.0)
	opacitySlider.Step = 0.05
	opacitySlider.SetValue(1.0)
	opacitySlider.OnChanged = func(v float64) { c.SetOpacity(float32(v)) }

	actions := container.NewHBox(
		widget.NewButton("undo", c.Undo),
		widget.NewButton("redo", c.Redo),
		widget.NewButton("clear", c.Clear),
		widget.NewButton("png", c.ExportPNG),
		widget.NewButton("pdf", c.ExportPDF),
	)

	sliders := container.New(layout.NewGridWrapLayout(fyne.NewSize(120, 35)),
		strokeSlider, opacitySlider)

	return container.NewVBox(
		container.NewHBox(
			widget.NewLabel("Tool:"), toolBox,
			widget.NewSeparator(),
			shapeSelect, fillCheck,
		),
		container.NewHBox(
			widget.NewLabel("Color:"), colorBox,
			widget.NewSeparator(),
			widget.NewLabel("Size/Opacity:"), sliders,
			layout.NewSpacer(),
			actions,
		),
	)
}
