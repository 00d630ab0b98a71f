// Package engine drives the core once per tracking frame: confidence
// filtering, source lifecycle, normalization, gesture evaluation and the
// render callback, all on a single goroutine.
package engine

import (
	"context"
	"math"
	"sort"
	"time"

	"github.com/rs/zerolog"

	"AirCanvas/internal/gesture"
	"AirCanvas/internal/input"
	"AirCanvas/internal/scene"
	"AirCanvas/internal/track"
)

// Config is the dispatcher tuning derived from the app config.
type Config struct {
	CanvasWidth   float32
	CanvasHeight  float32
	ConfidenceMin float64
	// PinchThreshold is the normalized thumb-index distance below which a
	// hand counts as raw-pressed.
	PinchThreshold float64
	// ReleaseDelay mirrors the normalizer's debounce delay; the pointer
	// path uses it to re-deliver a release once the hysteresis can elapse.
	ReleaseDelay time.Duration
}

// pointerSpread is the constant ambient spread reported for the pointer
// fallback, making resize a no-op for pointer input.
const pointerSpread = 1.0

type pointerEvent struct {
	pos     scene.Point
	pressed bool

	// replay marks the scheduled re-delivery of a raw release; gen is the
	// pointer sequence it was scheduled under.
	replay bool
	gen    uint64
}

// Dispatcher serializes tracking frames, pointer events and control
// operations onto one processing loop.
type Dispatcher struct {
	cfg     Config
	norm    *input.Normalizer
	machine *gesture.Machine
	log     zerolog.Logger

	known    map[string]bool
	frames   chan track.Frame
	pointers chan pointerEvent
	ops      chan func()
	render   func()

	// seq counts real pointer events, so a scheduled release replay can be
	// invalidated by anything that arrived after it. Touched only on the
	// processing loop.
	seq uint64
}

func New(cfg Config, norm *input.Normalizer, machine *gesture.Machine, log zerolog.Logger) *Dispatcher {
	return &Dispatcher{
		cfg:      cfg,
		norm:     norm,
		machine:  machine,
		log:      log,
		known:    make(map[string]bool),
		frames:   make(chan track.Frame, 4),
		pointers: make(chan pointerEvent, 16),
		ops:      make(chan func(), 16),
	}
}

// Frames is the channel the tracking server feeds.
func (d *Dispatcher) Frames() chan<- track.Frame { return d.frames }

// OnRender sets the callback invoked after every processed frame or event.
func (d *Dispatcher) OnRender(fn func()) { d.render = fn }

// HandlePointer queues a pointer-fallback event from the UI thread.
func (d *Dispatcher) HandlePointer(pos scene.Point, pressed bool) {
	d.pointers <- pointerEvent{pos: pos, pressed: pressed}
}

// Do queues fn onto the processing loop; the UI uses this for tool
// selection, undo/redo and erase-all so the core stays single-threaded.
func (d *Dispatcher) Do(fn func()) {
	d.ops <- fn
}

// Run processes queued work until ctx is cancelled. Each item runs to
// completion before the next starts.
func (d *Dispatcher) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case f := <-d.frames:
			d.processFrame(f)
		case ev := <-d.pointers:
			d.processPointer(ev)
		case fn := <-d.ops:
			fn()
			d.redraw()
		}
	}
}

func (d *Dispatcher) redraw() {
	if d.render != nil {
		d.render()
	}
}

// processFrame evaluates every qualified source in the frame in a stable
// order and tears down sources that vanished or fell below the confidence
// threshold.
func (d *Dispatcher) processFrame(f track.Frame) {
	present := make(map[string]track.Hand)
	for _, h := range f.Hands {
		if h.Score < d.cfg.ConfidenceMin || !h.Valid() {
			continue
		}
		present[h.SourceID()] = h
	}

	for id := range d.known {
		if id == track.PointerSource {
			continue
		}
		if _, ok := present[id]; !ok {
			d.teardown(id)
		}
	}

	ids := make([]string, 0, len(present))
	for id := range present {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	for _, id := range ids {
		d.evaluateHand(id, present[id])
	}
	d.redraw()
}

func (d *Dispatcher) evaluateHand(id string, h track.Hand) {
	if !d.known[id] {
		d.known[id] = true
		d.log.Info().Str("source", id).Msg("source appeared")
	}

	thumb := h.Landmarks[track.ThumbTip]
	index := h.Landmarks[track.IndexTip]
	pinch := math.Hypot(thumb.X-index.X, thumb.Y-index.Y)
	rawPressed := pinch < d.cfg.PinchThreshold

	pos := d.toCanvas(track.Landmark{
		X: (thumb.X + index.X) / 2,
		Y: (thumb.Y + index.Y) / 2,
	})
	d.norm.Observe(id, pos)
	pressed := d.norm.UpdatePress(id, rawPressed)

	smoothed, ok := d.norm.Smoothed(id)
	if !ok {
		// Not enough history yet; skip this source for the frame.
		return
	}

	d.machine.Step(gesture.Input{
		Source: id,
		Pos:    smoothed,
		Angle:  d.ambientAngle(h),
		Spread: d.ambientSpread(h),
	}, pressed)
}

// processPointer feeds the synthetic pointer source through the same
// normalize-and-step path as tracked hands, with degenerate ambient
// signals.
func (d *Dispatcher) processPointer(ev pointerEvent) {
	id := track.PointerSource
	if ev.replay {
		// A replayed release is stale once any real pointer event has
		// arrived after it was scheduled, or once the source is no longer
		// debounce-pressed. It must never act as a fresh raw sample.
		if ev.gen != d.seq || !d.norm.Pressed(id) {
			return
		}
	} else {
		d.seq++
		d.norm.Observe(id, ev.pos)
	}
	if !d.known[id] {
		d.known[id] = true
	}
	pressed := d.norm.UpdatePress(id, ev.pressed)
	smoothed, ok := d.norm.Smoothed(id)
	if !ok {
		return
	}
	d.machine.Step(gesture.Input{
		Source: id,
		Pos:    smoothed,
		Angle:  0,
		Spread: pointerSpread,
	}, pressed)
	d.redraw()

	// Hand tracking delivers frames continuously, so the debounce delay is
	// re-evaluated for free. Pointer events stop when the mouse goes
	// quiet; replay the release once the delay can have elapsed so the
	// gesture actually completes. The replay carries the current sequence
	// so anything real arriving in between invalidates it.
	if !ev.pressed && pressed {
		replay := pointerEvent{pos: ev.pos, replay: true, gen: d.seq}
		time.AfterFunc(d.cfg.ReleaseDelay+10*time.Millisecond, func() {
			d.pointers <- replay
		})
	}
}

// teardown treats a vanished source as an implicit release edge so no
// in-progress gesture is silently abandoned.
func (d *Dispatcher) teardown(id string) {
	d.machine.ForceRelease(id)
	d.norm.Drop(id)
	delete(d.known, id)
	d.log.Info().Str("source", id).Msg("source lost")
}

func (d *Dispatcher) toCanvas(l track.Landmark) scene.Point {
	return scene.Point{
		X: float32(l.X) * d.cfg.CanvasWidth,
		Y: float32(l.Y) * d.cfg.CanvasHeight,
	}
}

// ambientAngle is the orientation of the wrist-to-middle-knuckle axis.
func (d *Dispatcher) ambientAngle(h track.Hand) float64 {
	w := h.Landmarks[track.Wrist]
	k := h.Landmarks[track.MiddleKnuckle]
	return math.Atan2(k.Y-w.Y, k.X-w.X)
}

// ambientSpread is the mean fingertip distance from the fingertip
// centroid, in canvas units.
func (d *Dispatcher) ambientSpread(h track.Hand) float32 {
	var cx, cy float64
	for _, i := range track.FingertipIndices {
		cx += h.Landmarks[i].X
		cy += h.Landmarks[i].Y
	}
	n := float64(len(track.FingertipIndices))
	cx /= n
	cy /= n

	var sum float64
	for _, i := range track.FingertipIndices {
		sum += math.Hypot(h.Landmarks[i].X-cx, h.Landmarks[i].Y-cy)
	}
	return float32(sum/n) * d.cfg.CanvasWidth
}
