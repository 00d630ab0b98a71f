package gesture

import (
	"image/color"
	"testing"

	"github.com/rs/zerolog"

	"AirCanvas/internal/history"
	"AirCanvas/internal/scene"
)

var testStyle = scene.Style{Color: color.NRGBA{A: 255}, StrokeWidth: 3, Opacity: 1}

func newTestMachine() *Machine {
	store := scene.NewStore(10)
	m := NewMachine(store, history.New(store), zerolog.Nop())
	m.Settings = Settings{Style: testStyle, Shape: scene.KindRectangle, Fill: scene.FillOutline}
	return m
}

func step(m *Machine, source string, x, y float32, pressed bool) {
	m.Step(Input{Source: source, Pos: scene.Point{X: x, Y: y}, Spread: 1}, pressed)
}

func TestToolToggle(t *testing.T) {
	m := newTestMachine()
	m.SelectTool(ToolDraw)
	if m.ActiveTool() != ToolDraw {
		t.Fatalf("active tool = %q", m.ActiveTool())
	}
	m.SelectTool(ToolDraw)
	if m.ActiveTool() != "" {
		t.Fatal("reselecting the active tool should deactivate it")
	}
	m.SelectTool(ToolDraw)
	m.SelectTool(ToolDrag)
	if m.ActiveTool() != ToolDrag {
		t.Fatal("selecting another tool should switch directly")
	}
}

func TestFreehandDrawScenario(t *testing.T) {
	m := newTestMachine()
	m.SelectTool(ToolDraw)

	step(m, "a", 100, 100, true)
	for y := float32(110); y <= 160; y += 10 {
		step(m, "a", 100, y, true)
	}
	if len(m.Pending()) != 1 {
		t.Fatalf("pending = %d, want 1 while held", len(m.Pending()))
	}
	step(m, "a", 100, 160, false)

	objs := m.Store().Objects()
	if len(objs) != 1 {
		t.Fatalf("committed = %d objects, want 1", len(objs))
	}
	p, ok := objs[0].(*scene.Path)
	if !ok {
		t.Fatalf("committed object is %T, want *scene.Path", objs[0])
	}
	if len(p.Points) < 2 {
		t.Fatalf("path has %d points", len(p.Points))
	}
	if p.Points[0] != (scene.Point{X: 100, Y: 100}) {
		t.Errorf("first point = %v", p.Points[0])
	}
	if p.Points[len(p.Points)-1] != (scene.Point{X: 100, Y: 160}) {
		t.Errorf("last point = %v", p.Points[len(p.Points)-1])
	}
	applied, undone := m.History().Depths()
	if applied != 1 || undone != 0 {
		t.Errorf("stacks = (%d, %d), want (1, 0)", applied, undone)
	}
	if len(m.Pending()) != 0 {
		t.Error("pending should be empty after release")
	}
}

func TestLineTool(t *testing.T) {
	m := newTestMachine()
	m.SelectTool(ToolLine)

	step(m, "a", 10, 10, true)
	step(m, "a", 90, 40, true)
	step(m, "a", 90, 40, false)

	objs := m.Store().Objects()
	if len(objs) != 1 {
		t.Fatalf("committed = %d, want 1", len(objs))
	}
	l := objs[0].(*scene.Line)
	if l.Start != (scene.Point{X: 10, Y: 10}) || l.End != (scene.Point{X: 90, Y: 40}) {
		t.Errorf("line = %v -> %v", l.Start, l.End)
	}
}

func TestDegenerateLineDiscarded(t *testing.T) {
	m := newTestMachine()
	m.SelectTool(ToolLine)

	step(m, "a", 10, 10, true)
	step(m, "a", 10, 10, false)

	if m.Store().Len() != 0 {
		t.Fatal("a zero-length line should not be committed")
	}
	if applied, _ := m.History().Depths(); applied != 0 {
		t.Fatal("no command should be recorded")
	}
}

func TestShapeTool(t *testing.T) {
	m := newTestMachine()
	m.Settings.Shape = scene.KindStar
	m.Settings.Fill = scene.FillSolid
	m.SelectTool(ToolShape)

	step(m, "a", 20, 20, true)
	step(m, "a", 120, 100, true)
	step(m, "a", 120, 100, false)

	objs := m.Store().Objects()
	if len(objs) != 1 {
		t.Fatalf("committed = %d, want 1", len(objs))
	}
	s := objs[0].(*scene.Shape)
	if s.Kind != scene.KindStar || s.Fill != scene.FillSolid {
		t.Errorf("shape = %v/%v", s.Kind, s.Fill)
	}
	if s.P1 != (scene.Point{X: 20, Y: 20}) || s.P2 != (scene.Point{X: 120, Y: 100}) {
		t.Errorf("corners = %v, %v", s.P1, s.P2)
	}
}

func drawLine(t *testing.T, m *Machine, x1, y1, x2, y2 float32) *scene.Line {
	t.Helper()
	m.SelectTool(ToolLine)
	step(m, "setup", x1, y1, true)
	step(m, "setup", x2, y2, true)
	step(m, "setup", x2, y2, false)
	m.SelectTool(ToolLine) // deselect
	objs := m.Store().Objects()
	return objs[len(objs)-1].(*scene.Line)
}

func TestDragScenario(t *testing.T) {
	m := newTestMachine()
	l := drawLine(t, m, 10, 50, 110, 50)
	origStart, origEnd := l.Start, l.End

	m.SelectTool(ToolDrag)
	step(m, "a", 60, 50, true)  // inside the line
	step(m, "a", 70, 50, true)  // intermediate
	step(m, "a", 80, 50, true)  // net +20
	step(m, "a", 80, 50, false) // release

	if l.Start != (scene.Point{X: 30, Y: 50}) || l.End != (scene.Point{X: 130, Y: 50}) {
		t.Fatalf("line = %v -> %v, want both shifted by (+20,+0)", l.Start, l.End)
	}
	applied, _ := m.History().Depths()
	if applied != 2 { // draw + move
		t.Fatalf("applied = %d, want 2", applied)
	}

	if !m.History().Undo() {
		t.Fatal("undo should succeed")
	}
	if l.Start != origStart || l.End != origEnd {
		t.Errorf("undo did not restore original coordinates: %v -> %v", l.Start, l.End)
	}
}

func TestDragNoHitIsNoop(t *testing.T) {
	m := newTestMachine()
	drawLine(t, m, 10, 50, 110, 50)

	m.SelectTool(ToolDrag)
	step(m, "a", 500, 500, true)
	step(m, "a", 520, 500, true)
	step(m, "a", 520, 500, false)

	applied, _ := m.History().Depths()
	if applied != 1 { // just the draw
		t.Fatalf("applied = %d, want 1", applied)
	}
}

func TestDragBelowEpsilonReverted(t *testing.T) {
	m := newTestMachine()
	l := drawLine(t, m, 10, 50, 110, 50)

	m.SelectTool(ToolDrag)
	step(m, "a", 60, 50, true)
	step(m, "a", 61, 50, true) // sub-epsilon wiggle
	step(m, "a", 61, 50, false)

	if l.Start != (scene.Point{X: 10, Y: 50}) {
		t.Errorf("sub-epsilon drag should restore geometry, start = %v", l.Start)
	}
	if applied, _ := m.History().Depths(); applied != 1 {
		t.Errorf("no Move command expected, applied = %d", applied)
	}
}

func TestRotateScenario(t *testing.T) {
	m := newTestMachine()
	l := drawLine(t, m, 10, 50, 110, 50)

	m.SelectTool(ToolRotate)
	m.Step(Input{Source: "a", Pos: scene.Point{X: 60, Y: 50}, Angle: 0.2, Spread: 1}, true)
	m.Step(Input{Source: "a", Pos: scene.Point{X: 60, Y: 50}, Angle: 1.0, Spread: 1}, true)
	m.Step(Input{Source: "a", Pos: scene.Point{X: 60, Y: 50}, Angle: 1.0, Spread: 1}, false)

	tf := l.Transform()
	if diff := tf.Rotation - 0.8; diff > 1e-6 || diff < -1e-6 {
		t.Errorf("rotation = %v, want 0.8", tf.Rotation)
	}
	if tf.RotationCenter == nil || *tf.RotationCenter != (scene.Point{X: 60, Y: 50}) {
		t.Errorf("rotation center = %v, want the object center", tf.RotationCenter)
	}
	applied, _ := m.History().Depths()
	if applied != 2 {
		t.Fatalf("applied = %d, want draw + rotate", applied)
	}
}

func TestRotatePointerDegenerate(t *testing.T) {
	m := newTestMachine()
	l := drawLine(t, m, 10, 50, 110, 50)

	// Pointer input always reports angle 0, so rotation never moves.
	m.SelectTool(ToolRotate)
	m.Step(Input{Source: "pointer", Pos: scene.Point{X: 60, Y: 50}, Angle: 0, Spread: 1}, true)
	m.Step(Input{Source: "pointer", Pos: scene.Point{X: 80, Y: 60}, Angle: 0, Spread: 1}, true)
	m.Step(Input{Source: "pointer", Pos: scene.Point{X: 80, Y: 60}, Angle: 0, Spread: 1}, false)

	if l.Transform().Rotation != 0 {
		t.Errorf("rotation = %v, want 0", l.Transform().Rotation)
	}
	if applied, _ := m.History().Depths(); applied != 1 {
		t.Errorf("no Rotate command expected, applied = %d", applied)
	}
}

func TestResizeScenario(t *testing.T) {
	m := newTestMachine()
	l := drawLine(t, m, 10, 50, 110, 50)

	m.SelectTool(ToolResize)
	m.Step(Input{Source: "a", Pos: scene.Point{X: 60, Y: 50}, Spread: 2}, true)
	m.Step(Input{Source: "a", Pos: scene.Point{X: 60, Y: 50}, Spread: 3}, true)
	m.Step(Input{Source: "a", Pos: scene.Point{X: 60, Y: 50}, Spread: 3}, false)

	if got := l.Transform().Scale; got != 1.5 {
		t.Errorf("scale = %v, want 1.5", got)
	}
	applied, _ := m.History().Depths()
	if applied != 2 {
		t.Fatalf("applied = %d, want draw + resize", applied)
	}
}

func TestResizeClampedDuringGesture(t *testing.T) {
	m := newTestMachine()
	l := drawLine(t, m, 10, 50, 110, 50)

	m.SelectTool(ToolResize)
	m.Step(Input{Source: "a", Pos: scene.Point{X: 60, Y: 50}, Spread: 1}, true)
	m.Step(Input{Source: "a", Pos: scene.Point{X: 60, Y: 50}, Spread: 100}, true)
	m.Step(Input{Source: "a", Pos: scene.Point{X: 60, Y: 50}, Spread: 100}, false)

	if got := l.Transform().Scale; got != scene.MaxScale {
		t.Errorf("scale = %v, want clamp at %v", got, scene.MaxScale)
	}
}

func TestEraseAllScenario(t *testing.T) {
	m := newTestMachine()
	drawLine(t, m, 0, 0, 10, 0)
	drawLine(t, m, 0, 10, 10, 10)
	drawLine(t, m, 0, 20, 10, 20)

	m.EraseAll()
	if m.Store().Len() != 0 {
		t.Fatal("store should be empty")
	}
	applied, _ := m.History().Depths()
	if applied != 4 { // 3 draws + erase-all
		t.Fatalf("applied = %d, want 4", applied)
	}

	if !m.History().Undo() {
		t.Fatal("undo should succeed")
	}
	if m.Store().Len() != 3 {
		t.Fatalf("restored %d objects, want 3", m.Store().Len())
	}
}

func TestEraseAllEmptyRecordsNothing(t *testing.T) {
	m := newTestMachine()
	m.EraseAll()
	if applied, _ := m.History().Depths(); applied != 0 {
		t.Fatal("erasing an empty scene should record nothing")
	}
}

func TestForceReleaseCommitsSufficientPath(t *testing.T) {
	m := newTestMachine()
	m.SelectTool(ToolDraw)

	step(m, "a", 10, 10, true)
	step(m, "a", 40, 40, true)
	m.ForceRelease("a")

	if m.Store().Len() != 1 {
		t.Fatal("a path with enough content should be committed on tracking loss")
	}
	if len(m.Pending()) != 0 {
		t.Fatal("no pending state may survive a forced release")
	}
}

func TestForceReleaseDiscardsSinglePoint(t *testing.T) {
	m := newTestMachine()
	m.SelectTool(ToolDraw)

	step(m, "a", 10, 10, true)
	m.ForceRelease("a")

	if m.Store().Len() != 0 {
		t.Fatal("a single-point path should be discarded on tracking loss")
	}
	if len(m.Pending()) != 0 {
		t.Fatal("no pending state may survive a forced release")
	}
}

func TestSourcesDrawIndependently(t *testing.T) {
	m := newTestMachine()
	m.SelectTool(ToolDraw)

	step(m, "a", 10, 10, true)
	step(m, "b", 200, 200, true)
	step(m, "a", 20, 20, true)
	step(m, "b", 210, 210, true)
	step(m, "a", 20, 20, false)
	step(m, "b", 210, 210, false)

	if m.Store().Len() != 2 {
		t.Fatalf("committed = %d, want one path per source", m.Store().Len())
	}
}
