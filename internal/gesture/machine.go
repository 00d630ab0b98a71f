// Package gesture routes debounced press/position events through the
// active tool, mutating the scene and recording commands on release.
package gesture

import (
	"github.com/rs/zerolog"

	"AirCanvas/internal/history"
	"AirCanvas/internal/scene"
)

// Input is one evaluation's worth of normalized signal for a source.
// Angle and Spread are the ambient rotate/resize drivers; pointer sources
// carry degenerate constants for both.
type Input struct {
	Source string
	Pos    scene.Point
	Angle  float64
	Spread float32
}

// Tool is the per-tool interaction strategy. A press edge may begin a
// gesture; held evaluations advance it; the release edge commits or
// discards it.
type Tool interface {
	Name() string
	PressEdge(m *Machine, g *active, in Input)
	Held(m *Machine, g *active, in Input)
	ReleaseEdge(m *Machine, g *active, in Input)
}

// active is the per-source state of one in-flight gesture. A new press
// always starts a fresh instance.
type active struct {
	pending scene.Object // uncommitted drawing (draw tools)

	target   scene.Object // captured object (manipulation tools)
	snapshot scene.Object // geometry at capture time
	anchor   scene.Point
	dx, dy   float32

	baseAngle    float64
	baseRotation float64
	baseSpread   float32
	baseScale    float32
	center       scene.Point
}

func (g *active) engaged() bool {
	return g.pending != nil || g.target != nil
}

// Settings are the creation-time attributes applied to newly drawn
// objects.
type Settings struct {
	Style scene.Style
	Shape scene.ShapeKind
	Fill  scene.FillMode
}

// Machine evaluates one source per call against the selected tool. All
// calls happen on the engine goroutine.
type Machine struct {
	store   *scene.Store
	history *history.History
	log     zerolog.Logger

	Settings Settings

	tool    Tool
	active  map[string]*active
	pressed map[string]bool
	last    map[string]Input
}

func NewMachine(store *scene.Store, hist *history.History, log zerolog.Logger) *Machine {
	return &Machine{
		store:   store,
		history: hist,
		log:     log,
		active:  make(map[string]*active),
		pressed: make(map[string]bool),
		last:    make(map[string]Input),
	}
}

func (m *Machine) Store() *scene.Store       { return m.store }
func (m *Machine) History() *history.History { return m.history }

// SelectTool activates the named tool. Selecting the already-active tool
// deactivates it. Any in-flight gestures are discarded on a change.
func (m *Machine) SelectTool(name string) {
	if m.tool != nil && m.tool.Name() == name {
		m.tool = nil
	} else {
		m.tool = toolByName(name)
	}
	for id := range m.active {
		delete(m.active, id)
	}
	m.log.Debug().Str("tool", m.ActiveTool()).Msg("tool selected")
}

// ActiveTool reports the active tool name, or "" when none is selected.
func (m *Machine) ActiveTool() string {
	if m.tool == nil {
		return ""
	}
	return m.tool.Name()
}

// Step evaluates one source for the frame, deriving press/release edges
// from the debounced pressed state.
func (m *Machine) Step(in Input, pressed bool) {
	was := m.pressed[in.Source]
	m.pressed[in.Source] = pressed
	m.last[in.Source] = in

	if m.tool == nil {
		return
	}
	switch {
	case pressed && !was:
		g := &active{}
		m.tool.PressEdge(m, g, in)
		if g.engaged() {
			m.active[in.Source] = g
		}
	case pressed && was:
		if g := m.active[in.Source]; g != nil {
			m.tool.Held(m, g, in)
		}
	case !pressed && was:
		if g := m.active[in.Source]; g != nil {
			m.tool.ReleaseEdge(m, g, in)
			delete(m.active, in.Source)
		}
	}
}

// ForceRelease ends any in-flight gesture for a disappearing source as if
// a release edge had occurred at its last known input, so nothing partial
// is left in the store and no active state leaks.
func (m *Machine) ForceRelease(source string) {
	g := m.active[source]
	if g != nil && m.tool != nil {
		m.tool.ReleaseEdge(m, g, m.last[source])
	}
	delete(m.active, source)
	delete(m.pressed, source)
	delete(m.last, source)
}

// Pending returns the uncommitted in-progress objects, for rendering only.
func (m *Machine) Pending() []scene.Object {
	var out []scene.Object
	for _, g := range m.active {
		if g.pending != nil {
			out = append(out, g.pending)
		}
	}
	return out
}

// CapturedIDs lists objects currently held by a manipulation gesture, so
// the renderer can highlight them. The highlight carries no state.
func (m *Machine) CapturedIDs() map[string]bool {
	out := make(map[string]bool)
	for _, g := range m.active {
		if g.target != nil {
			out[g.target.ID()] = true
		}
	}
	return out
}

// EraseAll clears the scene and records the destroyed objects. An already
// empty scene records nothing.
func (m *Machine) EraseAll() {
	if m.store.Len() == 0 {
		return
	}
	prior := m.store.EraseAll()
	snapshot := make([]scene.Object, len(prior))
	for i, o := range prior {
		snapshot[i] = scene.CloneObject(o)
	}
	m.history.Push(history.EraseAll{Snapshot: snapshot})
	m.log.Info().Int("objects", len(prior)).Msg("scene cleared")
}

func (m *Machine) commit(o scene.Object) {
	m.store.Commit(o)
	m.history.Push(history.Draw{Snapshot: scene.CloneObject(o)})
	m.log.Info().Str("id", o.ID()).Msg("object committed")
}
