package ui

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"
)

// RunApp lays out the toolbar, board and status bar and blocks until the
// window closes.
func RunApp(board *BoardWidget, toolbar fyne.CanvasObject, status *widget.Label) {
	myApp := app.New()
	myWindow := myApp.NewWindow("AirCanvas")
	myWindow.Resize(fyne.NewSize(1280, 800))

	content := container.NewBorder(toolbar, status, nil, nil, board)
	myWindow.SetContent(content)
	myWindow.ShowAndRun()
}
