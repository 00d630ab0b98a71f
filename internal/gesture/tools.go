package gesture

import (
	"math"

	"AirCanvas/internal/history"
	"AirCanvas/internal/scene"
)

// Tool names, as selected by the toolbar.
const (
	ToolDraw   = "draw"
	ToolLine   = "line"
	ToolShape  = "shape"
	ToolDrag   = "drag"
	ToolRotate = "rotate"
	ToolResize = "resize"
)

// Gestures whose net effect stays below these thresholds are treated as
// accidental and reverted instead of recorded.
const (
	moveEpsilon   = 2.0
	rotateEpsilon = 0.01
	scaleEpsilon  = 0.01
)

func toolByName(name string) Tool {
	switch name {
	case ToolDraw:
		return freehandTool{}
	case ToolLine:
		return lineTool{}
	case ToolShape:
		return shapeTool{}
	case ToolDrag:
		return dragTool{}
	case ToolRotate:
		return rotateTool{}
	case ToolResize:
		return resizeTool{}
	}
	return nil
}

// freehandTool accumulates an append-only path while pressed.
type freehandTool struct{}

func (freehandTool) Name() string { return ToolDraw }

func (freehandTool) PressEdge(m *Machine, g *active, in Input) {
	g.pending = scene.NewPath(in.Pos, m.Settings.Style)
}

func (freehandTool) Held(m *Machine, g *active, in Input) {
	p := g.pending.(*scene.Path)
	p.Points = append(p.Points, in.Pos)
}

func (freehandTool) ReleaseEdge(m *Machine, g *active, in Input) {
	p := g.pending.(*scene.Path)
	if len(p.Points) < 2 {
		return
	}
	m.commit(p)
}

// lineTool rubber-bands a segment from the press position.
type lineTool struct{}

func (lineTool) Name() string { return ToolLine }

func (lineTool) PressEdge(m *Machine, g *active, in Input) {
	g.pending = scene.NewLine(in.Pos, in.Pos, m.Settings.Style)
}

func (lineTool) Held(m *Machine, g *active, in Input) {
	g.pending.(*scene.Line).End = in.Pos
}

func (lineTool) ReleaseEdge(m *Machine, g *active, in Input) {
	l := g.pending.(*scene.Line)
	if scene.Dist(l.Start, l.End) < moveEpsilon {
		return
	}
	m.commit(l)
}

// shapeTool stretches the machine's current shape kind between the press
// corner and the live position.
type shapeTool struct{}

func (shapeTool) Name() string { return ToolShape }

func (shapeTool) PressEdge(m *Machine, g *active, in Input) {
	g.pending = scene.NewShape(m.Settings.Shape, m.Settings.Fill, in.Pos, m.Settings.Style)
}

func (shapeTool) Held(m *Machine, g *active, in Input) {
	g.pending.(*scene.Shape).P2 = in.Pos
}

func (shapeTool) ReleaseEdge(m *Machine, g *active, in Input) {
	s := g.pending.(*scene.Shape)
	if scene.Dist(s.P1, s.P2) < moveEpsilon {
		return
	}
	m.commit(s)
}

// dragTool translates a captured object by the displacement from the drag
// anchor. Each evaluation restores the captured geometry before applying
// the fresh delta so error never accumulates across frames.
type dragTool struct{}

func (dragTool) Name() string { return ToolDrag }

func (dragTool) PressEdge(m *Machine, g *active, in Input) {
	target := m.store.FindTopmostAt(in.Pos)
	if target == nil {
		return
	}
	g.target = target
	g.snapshot = scene.CloneObject(target)
	g.anchor = in.Pos
}

func (dragTool) Held(m *Machine, g *active, in Input) {
	g.dx = in.Pos.X - g.anchor.X
	g.dy = in.Pos.Y - g.anchor.Y
	scene.CopyGeometry(g.target, g.snapshot)
	m.store.Translate(g.target.ID(), g.dx, g.dy)
}

func (dragTool) ReleaseEdge(m *Machine, g *active, in Input) {
	if math.Hypot(float64(g.dx), float64(g.dy)) < moveEpsilon {
		scene.CopyGeometry(g.target, g.snapshot)
		return
	}
	m.history.Push(history.Move{ID: g.target.ID(), DX: g.dx, DY: g.dy})
}

// rotateTool sets rotation = captured rotation + (ambient angle - captured
// ambient angle). The pivot is the object's established rotation center,
// seeded from its geometric center on the first rotate.
type rotateTool struct{}

func (rotateTool) Name() string { return ToolRotate }

func (rotateTool) PressEdge(m *Machine, g *active, in Input) {
	target := m.store.FindTopmostAt(in.Pos)
	if target == nil {
		return
	}
	g.target = target
	g.baseAngle = in.Angle
	g.baseRotation = target.Transform().Rotation
	if c := target.Transform().RotationCenter; c != nil {
		g.center = *c
	} else {
		g.center = scene.Center(target)
	}
}

func (rotateTool) Held(m *Machine, g *active, in Input) {
	delta := in.Angle - g.baseAngle
	m.store.SetRotation(g.target.ID(), g.baseRotation+delta, g.center)
}

func (rotateTool) ReleaseEdge(m *Machine, g *active, in Input) {
	next := g.target.Transform().Rotation
	if math.Abs(next-g.baseRotation) < rotateEpsilon {
		m.store.SetRotation(g.target.ID(), g.baseRotation, g.center)
		return
	}
	m.history.Push(history.Rotate{
		ID:     g.target.ID(),
		Prev:   g.baseRotation,
		Next:   next,
		Center: g.center,
	})
}

// resizeTool scales multiplicatively by the ratio of the live ambient
// spread to the spread captured at the press edge.
type resizeTool struct{}

func (resizeTool) Name() string { return ToolResize }

func (resizeTool) PressEdge(m *Machine, g *active, in Input) {
	target := m.store.FindTopmostAt(in.Pos)
	if target == nil {
		return
	}
	g.target = target
	g.baseSpread = in.Spread
	g.baseScale = target.Transform().Scale
	if c := target.Transform().ScaleCenter; c != nil {
		g.center = *c
	} else {
		g.center = scene.Center(target)
	}
}

func (resizeTool) Held(m *Machine, g *active, in Input) {
	if g.baseSpread <= 0 || in.Spread <= 0 {
		return
	}
	next := g.baseScale * (in.Spread / g.baseSpread)
	m.store.SetScale(g.target.ID(), next, g.center)
}

func (resizeTool) ReleaseEdge(m *Machine, g *active, in Input) {
	next := g.target.Transform().Scale
	if math.Abs(float64(next-g.baseScale)) < scaleEpsilon {
		m.store.SetScale(g.target.ID(), g.baseScale, g.center)
		return
	}
	m.history.Push(history.Resize{
		ID:     g.target.ID(),
		Prev:   g.baseScale,
		Next:   next,
		Center: g.center,
	})
}
