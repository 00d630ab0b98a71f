package main

import (
	"context"
	"fmt"
	"image/color"
	"net"
	"os"
	"strconv"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/widget"
	"github.com/rs/zerolog"

	"AirCanvas/internal/config"
	"AirCanvas/internal/engine"
	"AirCanvas/internal/export"
	"AirCanvas/internal/gesture"
	"AirCanvas/internal/history"
	"AirCanvas/internal/input"
	"AirCanvas/internal/scene"
	"AirCanvas/internal/track"
	"AirCanvas/internal/ui"
)

func main() {
	log := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()

	cfg, err := config.LoadDefaultPath()
	if err != nil {
		log.Warn().Err(err).Msg("config load failed, using defaults")
	}

	store := scene.NewStore(cfg.HitTolerance)
	hist := history.New(store)
	machine := gesture.NewMachine(store, hist, log)
	machine.Settings = gesture.Settings{
		Style: scene.Style{Color: color.NRGBA{A: 255}, StrokeWidth: 3, Opacity: 1},
		Shape: scene.KindRectangle,
		Fill:  scene.FillOutline,
	}

	norm := input.NewNormalizer(cfg.SmoothingWindow, cfg.ReleaseDelay())
	disp := engine.New(engine.Config{
		CanvasWidth:    cfg.CanvasWidth,
		CanvasHeight:   cfg.CanvasHeight,
		ConfidenceMin:  cfg.ConfidenceMin,
		PinchThreshold: cfg.PinchThreshold,
		ReleaseDelay:   cfg.ReleaseDelay(),
	}, norm, machine, log)

	board := ui.NewBoardWidget()
	status := widget.NewLabel("Ready")
	setStatus := func(text string) {
		fyne.Do(func() { status.SetText(text) })
	}

	board.OnPointer = disp.HandlePointer
	disp.OnRender(func() {
		board.SetView(ui.BuildView(store.Objects(), machine.Pending(), machine.CapturedIDs()))
	})

	controls := ui.Controls{
		SelectTool: func(name string) {
			disp.Do(func() {
				machine.SelectTool(name)
				if t := machine.ActiveTool(); t != "" {
					setStatus("Tool: " + t)
				} else {
					setStatus("No tool selected")
				}
			})
		},
		SetColor: func(c color.NRGBA) {
			disp.Do(func() { machine.Settings.Style.Color = c })
		},
		SetStroke: func(w float32) {
			disp.Do(func() { machine.Settings.Style.StrokeWidth = w })
		},
		SetOpacity: func(o float32) {
			disp.Do(func() { machine.Settings.Style.Opacity = o })
		},
		SetShape: func(kind scene.ShapeKind) {
			disp.Do(func() { machine.Settings.Shape = kind })
		},
		SetFill: func(filled bool) {
			disp.Do(func() {
				if filled {
					machine.Settings.Fill = scene.FillSolid
				} else {
					machine.Settings.Fill = scene.FillOutline
				}
			})
		},
		Undo: func() {
			disp.Do(func() {
				if !machine.History().Undo() {
					setStatus("Nothing to undo")
				}
			})
		},
		Redo: func() {
			disp.Do(func() {
				if !machine.History().Redo() {
					setStatus("Nothing to redo")
				}
			})
		},
		Clear: func() {
			disp.Do(machine.EraseAll)
		},
		ExportPNG: func() {
			disp.Do(func() {
				name := fmt.Sprintf("aircanvas-%s.png", time.Now().Format("20060102-150405"))
				f, err := os.Create(name)
				if err != nil {
					log.Error().Err(err).Msg("png export failed")
					return
				}
				defer f.Close()
				err = export.PNG(f, store.Objects(), int(cfg.CanvasWidth), int(cfg.CanvasHeight))
				if err != nil {
					log.Error().Err(err).Msg("png export failed")
					return
				}
				setStatus("Exported " + name)
			})
		},
		ExportPDF: func() {
			disp.Do(func() {
				name := fmt.Sprintf("aircanvas-%s.pdf", time.Now().Format("20060102-150405"))
				if err := export.PDF(name, store.Objects(), cfg.CanvasWidth, cfg.CanvasHeight); err != nil {
					log.Error().Err(err).Msg("pdf export failed")
					return
				}
				setStatus("Exported " + name)
			})
		},
	}
	toolbar := ui.NewToolbar(controls)

	tracker := track.NewServer(disp.Frames(), log)
	go func() {
		if err := tracker.Listen(cfg.ListenAddr); err != nil {
			log.Error().Err(err).Msg("tracking ingest stopped")
		}
	}()

	if port := listenPort(cfg.ListenAddr); port > 0 {
		if server, err := track.Advertise(port); err != nil {
			log.Warn().Err(err).Msg("mDNS advertise failed")
		} else {
			defer server.Shutdown()
		}
		if ip, err := track.OutgoingIP(); err == nil {
			log.Info().Msgf("point the tracking client at ws://%s:%d/track", ip, port)
		}
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go disp.Run(ctx)

	ui.RunApp(board, toolbar, status)
}

func listenPort(addr string) int {
	_, portStr, err := net.SplitHostPort(addr)
	if err != nil {
		return 0
	}
	port, err := strconv.Atoi(portStr)
	if err != nil {
		return 0
	}
	return port
}
