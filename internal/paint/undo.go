package paint

import (
	"spritemap/internal/engine"
	"spritemap/internal/tilegrid"
)

// UndoActionType represents the type of action that can be undone
type UndoActionType int

const (
	UndoPaint UndoActionType = iota
	UndoResize
	UndoDelete
)

// CellEdit is one cell's tile before and after a paint.
type CellEdit struct {
	Cell   int
	Before int
	After  int
}

// removal is one object taken out by a delete, with the parent it had.
type removal struct {
	Object *engine.GameObject
	Parent *engine.GameObject
}

// UndoState captures one undoable edit.
type UndoState struct {
	Type   UndoActionType
	Object *engine.GameObject

	// UndoPaint: the grid painted and every cell it touched, in order.
	Grid  *tilegrid.Grid
	Edits []CellEdit

	// UndoResize: the instance replaced and its replacement.
	Before *tilegrid.Grid
	After  *tilegrid.Grid

	// UndoDelete: the deleted subtree, parents before children.
	removed []removal
}

// History is a capped undo stack with redo.
type History struct {
	depth int
	undo  []UndoState
	redo  []UndoState
}

func NewHistory(depth int) *History {
	if depth < 1 {
		depth = 1
	}
	return &History{depth: depth}
}

// Push records a new edit and forgets anything that could be redone.
func (h *History) Push(state UndoState) {
	// Cap stack size
	if len(h.undo) >= h.depth {
		h.undo = h.undo[1:]
	}
	h.undo = append(h.undo, state)
	h.redo = nil
}

func (h *History) CanUndo() bool { return len(h.undo) > 0 }
func (h *History) CanRedo() bool { return len(h.redo) > 0 }
func (h *History) Len() int      { return len(h.undo) }

func (h *History) popUndo() (UndoState, bool) {
	if len(h.undo) == 0 {
		return UndoState{}, false
	}
	state := h.undo[len(h.undo)-1]
	h.undo = h.undo[:len(h.undo)-1]
	return state, true
}

func (h *History) popRedo() (UndoState, bool) {
	if len(h.redo) == 0 {
		return UndoState{}, false
	}
	state := h.redo[len(h.redo)-1]
	h.redo = h.redo[:len(h.redo)-1]
	return state, true
}

// applyUndo reverts state. It returns false when the edit no longer applies,
// e.g. its grid was replaced by a scene reload.
func (s *Session) applyUndo(state UndoState) bool {
	switch state.Type {
	case UndoPaint:
		if !s.owns(state.Object, state.Grid) {
			return false
		}
		for i := len(state.Edits) - 1; i >= 0; i-- {
			e := state.Edits[i]
			if err := state.Grid.ChangeTile(e.Cell, e.Before); err != nil {
				return false
			}
		}

	case UndoResize:
		if !s.owns(state.Object, state.After) {
			return false
		}
		state.Before.Revive()
		state.After.Replace(state.Before)
		s.overlay.Refresh()

	case UndoDelete:
		if state.Object.Scene != nil {
			return false
		}
		for _, r := range state.removed {
			s.scene.AddGameObject(r.Object)
			if r.Parent != nil {
				r.Parent.AddChild(r.Object)
			}
			if g := engine.GetComponent[*tilegrid.Grid](r.Object); g != nil {
				g.Revive()
			}
		}
		s.notifyf("Restored %s", state.Object.Name)
	}
	s.Select(state.Object)
	return true
}

func (s *Session) applyRedo(state UndoState) bool {
	switch state.Type {
	case UndoPaint:
		if !s.owns(state.Object, state.Grid) {
			return false
		}
		for _, e := range state.Edits {
			if err := state.Grid.ChangeTile(e.Cell, e.After); err != nil {
				return false
			}
		}

	case UndoResize:
		if !s.owns(state.Object, state.Before) {
			return false
		}
		state.After.Revive()
		state.Before.Replace(state.After)
		s.overlay.Refresh()

	case UndoDelete:
		if state.Object.Scene != s.scene {
			return false
		}
		s.scene.RemoveGameObject(state.Object)
		return true
	}
	s.Select(state.Object)
	return true
}

// owns reports whether g is still the live grid on obj in this scene.
func (s *Session) owns(obj *engine.GameObject, g *tilegrid.Grid) bool {
	return obj != nil && obj.Scene == s.scene && engine.GetComponent[*tilegrid.Grid](obj) == g
}
