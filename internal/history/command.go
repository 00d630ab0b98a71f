package history

import (
	"AirCanvas/internal/scene"
)

// Command is an invertible scene mutation. Apply replays the forward
// effect (used by redo), Revert applies the exact inverse (used by undo).
// Each variant carries only the fields its two effects need.
type Command interface {
	Apply(st *scene.Store)
	Revert(st *scene.Store)
	Name() string
}

// Draw records the commit of a newly drawn object.
type Draw struct {
	Snapshot scene.Object
}

func (c Draw) Apply(st *scene.Store)  { st.Commit(scene.CloneObject(c.Snapshot)) }
func (c Draw) Revert(st *scene.Store) { st.RemoveByID(c.Snapshot.ID()) }
func (c Draw) Name() string           { return "draw" }

// EraseAll records a bulk clear together with everything it destroyed.
type EraseAll struct {
	Snapshot []scene.Object
}

func (c EraseAll) Apply(st *scene.Store) { st.EraseAll() }

func (c EraseAll) Revert(st *scene.Store) {
	restored := make([]scene.Object, len(c.Snapshot))
	for i, o := range c.Snapshot {
		restored[i] = scene.CloneObject(o)
	}
	st.ReplaceAll(restored)
}

func (c EraseAll) Name() string { return "erase-all" }

// Move records a completed drag as a net translation.
type Move struct {
	ID     string
	DX, DY float32
}

func (c Move) Apply(st *scene.Store)  { st.Translate(c.ID, c.DX, c.DY) }
func (c Move) Revert(st *scene.Store) { st.Translate(c.ID, -c.DX, -c.DY) }
func (c Move) Name() string           { return "move" }

// Rotate records a completed rotate gesture.
type Rotate struct {
	ID         string
	Prev, Next float64
	Center     scene.Point
}

func (c Rotate) Apply(st *scene.Store)  { st.SetRotation(c.ID, c.Next, c.Center) }
func (c Rotate) Revert(st *scene.Store) { st.SetRotation(c.ID, c.Prev, c.Center) }
func (c Rotate) Name() string           { return "rotate" }

// Resize records a completed resize gesture.
type Resize struct {
	ID         string
	Prev, Next float32
	Center     scene.Point
}

func (c Resize) Apply(st *scene.Store)  { st.SetScale(c.ID, c.Next, c.Center) }
func (c Resize) Revert(st *scene.Store) { st.SetScale(c.ID, c.Prev, c.Center) }
func (c Resize) Name() string           { return "resize" }
