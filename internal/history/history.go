// Package history records every scene mutation as an invertible command
// and replays the inverses for undo and the forward effects for redo.
package history

import "AirCanvas/internal/scene"

// History is a linear undo/redo pair of stacks over one Store. Pushing a
// new command discards any redo branch.
type History struct {
	store   *scene.Store
	applied []Command
	undone  []Command
}

func New(store *scene.Store) *History {
	return &History{store: store}
}

// Push records a command whose forward effect has already happened live
// during the gesture; it is not re-applied here.
func (h *History) Push(c Command) {
	h.applied = append(h.applied, c)
	h.undone = h.undone[:0]
}

// Undo reverts the most recent command. It reports false when there is
// nothing to undo; that is a benign condition, not an error.
func (h *History) Undo() bool {
	if len(h.applied) == 0 {
		return false
	}
	c := h.applied[len(h.applied)-1]
	h.applied = h.applied[:len(h.applied)-1]
	c.Revert(h.store)
	h.undone = append(h.undone, c)
	return true
}

// Redo re-applies the most recently undone command, if any.
func (h *History) Redo() bool {
	if len(h.undone) == 0 {
		return false
	}
	c := h.undone[len(h.undone)-1]
	h.undone = h.undone[:len(h.undone)-1]
	c.Apply(h.store)
	h.applied = append(h.applied, c)
	return true
}

// Depths reports the sizes of the applied and undone stacks.
func (h *History) Depths() (applied, undone int) {
	return len(h.applied), len(h.undone)
}
