package export

import (
	"github.com/jung-kurt/gofpdf"

	"AirCanvas/internal/scene"
)

// PDF writes the committed objects as line segments, walking the same
// transformed outlines the renderer uses.
func PDF(path string, objects []scene.Object, canvasWidth, canvasHeight float32) error {
	p := gofpdf.New("L", "mm", "A4", "")
	p.AddPage()
	p.SetLineWidth(0.5)

	// A4 landscape is 297x210mm; fit the canvas inside it.
	sx := 297 / float64(canvasWidth)
	sy := 210 / float64(canvasHeight)
	s := sx
	if sy < s {
		s = sy
	}

	for _, o := range objects {
		c := o.Style().Color
		p.SetDrawColor(int(c.R), int(c.G), int(c.B))
		for _, poly := range scene.Outline(o) {
			for i := 1; i < len(poly); i++ {
				p.Line(
					float64(poly[i-1].X)*s, float64(poly[i-1].Y)*s,
					float64(poly[i].X)*s, float64(poly[i].Y)*s,
				)
			}
		}
	}
	return p.OutputFileAndClose(path)
}
