// Package input turns raw per-frame point-source samples into stable
// positions and crisp press/release edges. Raw pinch detection flickers
// near the threshold distance, so releases only take effect after the
// fingers have stayed apart for a full hysteresis delay.
package input

import (
	"time"

	"AirCanvas/internal/scene"
)

type sourceState struct {
	pressed      bool
	pendingSince time.Time
	hasPending   bool
	history      []scene.Point
}

// Normalizer smooths positions with a bounded moving average and debounces
// the press state, independently per source id.
type Normalizer struct {
	window  int
	delay   time.Duration
	now     func() time.Time
	sources map[string]*sourceState
}

func NewNormalizer(window int, releaseDelay time.Duration) *Normalizer {
	if window < 1 {
		window = 1
	}
	return &Normalizer{
		window:  window,
		delay:   releaseDelay,
		now:     time.Now,
		sources: make(map[string]*sourceState),
	}
}

func (n *Normalizer) state(id string) *sourceState {
	st, ok := n.sources[id]
	if !ok {
		st = &sourceState{}
		n.sources[id] = st
	}
	return st
}

// Observe appends a raw position to the source's bounded history, evicting
// the oldest sample on overflow.
func (n *Normalizer) Observe(id string, p scene.Point) {
	st := n.state(id)
	st.history = append(st.history, p)
	if len(st.history) > n.window {
		st.history = st.history[1:]
	}
}

// Smoothed returns the mean of the source's current history. ok is false
// until at least one sample has been observed; callers must treat that as
// "not ready", never as the origin.
func (n *Normalizer) Smoothed(id string) (scene.Point, bool) {
	st, exists := n.sources[id]
	if !exists || len(st.history) == 0 {
		return scene.Point{}, false
	}
	var sx, sy float32
	for _, p := range st.history {
		sx += p.X
		sy += p.Y
	}
	c := float32(len(st.history))
	return scene.Point{X: sx / c, Y: sy / c}, true
}

// UpdatePress folds one raw pressed sample into the debounced state and
// returns it. A raw press takes effect immediately and cancels any pending
// release; a raw release only flips the state after the delay has elapsed
// without interruption.
func (n *Normalizer) UpdatePress(id string, raw bool) bool {
	st := n.state(id)
	if raw {
		st.pressed = true
		st.hasPending = false
		return true
	}
	if !st.pressed {
		return false
	}
	now := n.now()
	if !st.hasPending {
		st.hasPending = true
		st.pendingSince = now
		return true
	}
	if now.Sub(st.pendingSince) >= n.delay {
		st.pressed = false
		st.hasPending = false
		return false
	}
	return true
}

// Pressed reports the current debounced state without folding a sample.
func (n *Normalizer) Pressed(id string) bool {
	st, ok := n.sources[id]
	return ok && st.pressed
}

// Drop deletes a source's history and debounce state entirely; a later
// reappearance of the id starts fresh.
func (n *Normalizer) Drop(id string) {
	delete(n.sources, id)
}
