package history

import (
	"image/color"
	"reflect"
	"testing"

	"AirCanvas/internal/scene"
)

var testStyle = scene.Style{Color: color.NRGBA{R: 200, A: 255}, StrokeWidth: 3, Opacity: 1}

func snapshotStore(st *scene.Store) []scene.Object {
	objs := st.Objects()
	out := make([]scene.Object, len(objs))
	for i, o := range objs {
		out[i] = scene.CloneObject(o)
	}
	return out
}

func storesEqual(a, b []scene.Object) bool {
	return reflect.DeepEqual(a, b)
}

// roundTrip checks forward∘inverse == identity for a command against the
// current store state.
func roundTrip(t *testing.T, st *scene.Store, c Command) {
	t.Helper()
	before := snapshotStore(st)

	c.Revert(st)
	c.Apply(st)
	if !storesEqual(before, snapshotStore(st)) {
		t.Errorf("%s: revert+apply is not the identity", c.Name())
	}
}

func TestDrawRoundTrip(t *testing.T) {
	st := scene.NewStore(10)
	l := scene.NewLine(scene.Point{X: 1, Y: 2}, scene.Point{X: 3, Y: 4}, testStyle)
	st.Commit(l)
	roundTrip(t, st, Draw{Snapshot: scene.CloneObject(l)})
}

func TestMoveRoundTrip(t *testing.T) {
	st := scene.NewStore(10)
	p := scene.NewPath(scene.Point{X: 5, Y: 5}, testStyle)
	p.Points = append(p.Points, scene.Point{X: 9, Y: 9})
	st.Commit(p)
	st.Translate(p.ID(), 10, -4)
	roundTrip(t, st, Move{ID: p.ID(), DX: 10, DY: -4})
}

func TestRotateRoundTrip(t *testing.T) {
	st := scene.NewStore(10)
	l := scene.NewLine(scene.Point{X: 0, Y: 0}, scene.Point{X: 10, Y: 0}, testStyle)
	st.Commit(l)
	center := scene.Center(l)
	st.SetRotation(l.ID(), 1.2, center)
	roundTrip(t, st, Rotate{ID: l.ID(), Prev: 0, Next: 1.2, Center: center})
}

func TestResizeRoundTrip(t *testing.T) {
	st := scene.NewStore(10)
	s := scene.NewShape(scene.KindRectangle, scene.FillSolid, scene.Point{X: 0, Y: 0}, testStyle)
	s.P2 = scene.Point{X: 40, Y: 40}
	st.Commit(s)
	center := scene.Center(s)
	st.SetScale(s.ID(), 2.5, center)
	roundTrip(t, st, Resize{ID: s.ID(), Prev: 1, Next: 2.5, Center: center})
}

func TestEraseAllRoundTrip(t *testing.T) {
	st := scene.NewStore(10)
	for i := 0; i < 3; i++ {
		st.Commit(scene.NewLine(scene.Point{X: float32(i)}, scene.Point{X: float32(i + 10)}, testStyle))
	}
	snapshot := snapshotStore(st)
	st.EraseAll()
	roundTrip(t, st, EraseAll{Snapshot: snapshot})
}

func TestUndoRedoSymmetry(t *testing.T) {
	st := scene.NewStore(10)
	h := New(st)

	// Build up a mixed history the way gestures do: mutate live, then push.
	l := scene.NewLine(scene.Point{X: 0, Y: 0}, scene.Point{X: 100, Y: 0}, testStyle)
	st.Commit(l)
	h.Push(Draw{Snapshot: scene.CloneObject(l)})

	p := scene.NewPath(scene.Point{X: 10, Y: 10}, testStyle)
	p.Points = append(p.Points, scene.Point{X: 20, Y: 20})
	st.Commit(p)
	h.Push(Draw{Snapshot: scene.CloneObject(p)})

	st.Translate(l.ID(), 20, 0)
	h.Push(Move{ID: l.ID(), DX: 20, DY: 0})

	center := scene.Center(p)
	st.SetRotation(p.ID(), 0.7, center)
	h.Push(Rotate{ID: p.ID(), Prev: 0, Next: 0.7, Center: center})

	final := snapshotStore(st)

	for h.Undo() {
	}
	if st.Len() != 0 {
		t.Fatalf("after undoing everything the store has %d objects", st.Len())
	}
	for h.Redo() {
	}
	if !storesEqual(final, snapshotStore(st)) {
		t.Fatal("undo-all then redo-all did not reproduce the final state")
	}
}

func TestUndoRestoresExactCoordinates(t *testing.T) {
	st := scene.NewStore(10)
	h := New(st)

	l := scene.NewLine(scene.Point{X: 5, Y: 6}, scene.Point{X: 50, Y: 6}, testStyle)
	st.Commit(l)
	h.Push(Draw{Snapshot: scene.CloneObject(l)})

	st.Translate(l.ID(), 20, 0)
	h.Push(Move{ID: l.ID(), DX: 20, DY: 0})

	if !h.Undo() {
		t.Fatal("undo should succeed")
	}
	if l.Start != (scene.Point{X: 5, Y: 6}) || l.End != (scene.Point{X: 50, Y: 6}) {
		t.Errorf("line = %v -> %v, want original coordinates", l.Start, l.End)
	}
}

func TestEmptyStacksAreBenign(t *testing.T) {
	h := New(scene.NewStore(10))
	if h.Undo() {
		t.Error("undo on empty history should report false")
	}
	if h.Redo() {
		t.Error("redo on empty history should report false")
	}
}

func TestPushDiscardsRedoBranch(t *testing.T) {
	st := scene.NewStore(10)
	h := New(st)

	a := scene.NewLine(scene.Point{}, scene.Point{X: 1}, testStyle)
	st.Commit(a)
	h.Push(Draw{Snapshot: scene.CloneObject(a)})

	h.Undo()
	if _, undone := h.Depths(); undone != 1 {
		t.Fatal("expected one undone command")
	}

	b := scene.NewLine(scene.Point{}, scene.Point{X: 2}, testStyle)
	st.Commit(b)
	h.Push(Draw{Snapshot: scene.CloneObject(b)})

	applied, undone := h.Depths()
	if applied != 1 || undone != 0 {
		t.Fatalf("depths = (%d, %d), want (1, 0)", applied, undone)
	}
	if h.Redo() {
		t.Error("redo branch should have been discarded")
	}
}

func TestEraseAllUndoRestoresIdentities(t *testing.T) {
	st := scene.NewStore(10)
	h := New(st)

	var ids []string
	for i := 0; i < 3; i++ {
		l := scene.NewLine(scene.Point{X: float32(i * 10)}, scene.Point{X: float32(i*10 + 5)}, testStyle)
		st.Commit(l)
		h.Push(Draw{Snapshot: scene.CloneObject(l)})
		ids = append(ids, l.ID())
	}

	snapshot := snapshotStore(st)
	st.EraseAll()
	h.Push(EraseAll{Snapshot: snapshot})
	if st.Len() != 0 {
		t.Fatal("store should be empty")
	}

	if !h.Undo() {
		t.Fatal("undo should succeed")
	}
	objs := st.Objects()
	if len(objs) != 3 {
		t.Fatalf("restored %d objects, want 3", len(objs))
	}
	for i, o := range objs {
		if o.ID() != ids[i] {
			t.Errorf("object %d id = %s, want %s", i, o.ID(), ids[i])
		}
	}
}
