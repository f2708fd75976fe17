// Package paint is the editing session: what is selected, which tile is
// the brush, and the undo history of the edits made with it.
package paint

import (
	"fmt"

	"spritemap/internal/engine"
	"spritemap/internal/errs"
	"spritemap/internal/tilegrid"
	"spritemap/internal/world"

	rl "github.com/gen2brain/raylib-go/raylib"
)

type Session struct {
	ShowGrid bool

	// Changed fires after every edit to the scene, including undo and redo.
	Changed engine.Event

	scene    *engine.Scene
	overlay  *tilegrid.Overlay
	notifier Notifier
	history  *History

	selected *engine.GameObject
	// brush is the selected tile per sprite map object id. It survives
	// resizes, which swap the grid instance.
	brush  map[string]int
	stroke *UndoState
}

func NewSession(scene *engine.Scene, overlay *tilegrid.Overlay, notifier Notifier, undoDepth int) *Session {
	s := &Session{
		ShowGrid: true,
		scene:    scene,
		overlay:  overlay,
		notifier: notifier,
		history:  NewHistory(undoDepth),
		brush:    make(map[string]int),
	}
	scene.Removed.AddListener(s.onRemoved)
	return s
}

func (s *Session) History() *History          { return s.history }
func (s *Session) Overlay() *tilegrid.Overlay { return s.overlay }
func (s *Session) Selected() *engine.GameObject {
	return s.selected
}

// SelectedGrid is the live grid on the selection, or nil.
func (s *Session) SelectedGrid() *tilegrid.Grid {
	g := engine.GetComponent[*tilegrid.Grid](s.selected)
	if g == nil || g.Disposed() {
		return nil
	}
	return g
}

// Select makes obj the selection; nil clears it. The grid overlay follows
// the selection while ShowGrid is on.
func (s *Session) Select(obj *engine.GameObject) {
	s.EndStroke()
	s.selected = obj
	if s.ShowGrid && s.SelectedGrid() != nil {
		s.overlay.ShowGrid(obj)
		return
	}
	s.overlay.HideGrid()
}

// ToggleGrid flips grid display for the selection.
func (s *Session) ToggleGrid() bool {
	s.ShowGrid = !s.ShowGrid
	s.Select(s.selected)
	return s.ShowGrid
}

func (s *Session) onRemoved(obj *engine.GameObject) {
	if s.overlay.Owner() == obj {
		s.overlay.HideGrid()
	}
	if s.selected == obj {
		s.EndStroke()
		s.selected = nil
	}
}

// --- Brush ---

// SelectedTile is the brush for the selection, if one was picked.
func (s *Session) SelectedTile() (int, bool) {
	if s.selected == nil {
		return 0, false
	}
	t, ok := s.brush[s.selected.ID]
	return t, ok
}

func (s *Session) SelectTile(tile int) error {
	g := s.SelectedGrid()
	if g == nil {
		return errs.Precondition("SelectTile", "no sprite map selected")
	}
	if tile < 0 || tile >= g.Atlas().Len() {
		return errs.Precondition("SelectTile", fmt.Sprintf("tile %d not in atlas of %d", tile, g.Atlas().Len()))
	}
	s.brush[s.selected.ID] = tile
	return nil
}

// SelectTileByName picks the brush by atlas frame filename. An unknown name
// is reported and leaves the brush as it was.
func (s *Session) SelectTileByName(name string) error {
	g := s.SelectedGrid()
	if g == nil {
		return errs.Precondition("SelectTileByName", "no sprite map selected")
	}
	idx, ok := g.TileIndexByName(name)
	if !ok {
		s.notifyf("No tile named %q in atlas", name)
		return errs.Invalid("tile name", "", fmt.Sprintf("%q not in atlas", name))
	}
	s.brush[s.selected.ID] = idx
	return nil
}

// --- Picking ---

// HoverAt outlines the cell under a world-space pick point. Points off the
// grid clear the outline.
func (s *Session) HoverAt(point rl.Vector3) bool {
	if s.overlay.Owner() == nil || s.overlay.Owner() != s.selected {
		return false
	}
	return s.overlay.HighlightAt(point)
}

// PaintAt sets the cell under a world-space point to the brush. It reports
// whether a cell changed. Missing the grid is not an error.
func (s *Session) PaintAt(point rl.Vector3) (bool, error) {
	g := s.SelectedGrid()
	if g == nil {
		return false, nil
	}
	tile, ok := s.SelectedTile()
	if !ok {
		s.notifyf("Select a tile first")
		return false, nil
	}
	cell, ok := g.CellAt(point)
	if !ok {
		return false, nil
	}
	before := g.Tile(cell)
	if before == tile {
		return false, nil
	}
	if err := g.ChangeTile(cell, tile); err != nil {
		return false, err
	}
	s.Changed.Invoke()

	edit := CellEdit{Cell: cell, Before: before, After: tile}
	if s.stroke != nil && s.stroke.Grid == g {
		s.stroke.Edits = append(s.stroke.Edits, edit)
		return true, nil
	}
	state := UndoState{Type: UndoPaint, Object: s.selected, Grid: g, Edits: []CellEdit{edit}}
	if s.stroke != nil {
		s.stroke = &state
		return true, nil
	}
	s.history.Push(state)
	return true, nil
}

// BeginStroke groups the following paints into one undo step until
// EndStroke.
func (s *Session) BeginStroke() {
	s.EndStroke()
	s.stroke = &UndoState{Type: UndoPaint}
}

func (s *Session) EndStroke() {
	if s.stroke == nil {
		return
	}
	if len(s.stroke.Edits) > 0 {
		s.history.Push(*s.stroke)
	}
	s.stroke = nil
}

// FillSelected sets every cell of the selected grid to the brush as one
// undo step.
func (s *Session) FillSelected() error {
	g := s.SelectedGrid()
	if g == nil {
		return errs.Precondition("FillSelected", "no sprite map selected")
	}
	tile, ok := s.SelectedTile()
	if !ok {
		s.notifyf("Select a tile first")
		return nil
	}
	s.EndStroke()
	before := g.Tiles()
	if err := g.Fill(tile); err != nil {
		return err
	}
	state := UndoState{Type: UndoPaint, Object: s.selected, Grid: g}
	for cell, t := range before {
		if t != tile {
			state.Edits = append(state.Edits, CellEdit{Cell: cell, Before: t, After: tile})
		}
	}
	if len(state.Edits) > 0 {
		s.history.Push(state)
		s.Changed.Invoke()
	}
	return nil
}

// --- Structure ---

// ResizeSelected rebuilds the selected grid at a new stage size. Invalid
// sizes are reported and leave the grid untouched.
func (s *Session) ResizeSelected(stage tilegrid.StageSize) error {
	g := s.SelectedGrid()
	if g == nil {
		return errs.Precondition("ResizeSelected", "no sprite map selected")
	}
	if g.Options().StageSize == stage {
		return nil
	}
	s.EndStroke()
	next, err := g.Resize(stage)
	if err != nil {
		s.notifyf("Cannot resize: %v", err)
		return err
	}
	s.history.Push(UndoState{Type: UndoResize, Object: s.selected, Before: g, After: next})
	s.overlay.Refresh()
	s.Changed.Invoke()
	return nil
}

// DeleteSelected removes the selection and its children from the scene.
func (s *Session) DeleteSelected() {
	obj := s.selected
	if obj == nil {
		return
	}
	s.EndStroke()
	state := UndoState{Type: UndoDelete, Object: obj}
	var walk func(o *engine.GameObject)
	walk = func(o *engine.GameObject) {
		state.removed = append(state.removed, removal{Object: o, Parent: o.Parent})
		for _, c := range o.Children {
			walk(c)
		}
	}
	walk(obj)
	s.scene.RemoveGameObject(obj)
	s.history.Push(state)
	s.Changed.Invoke()
	s.notifyf("Deleted %s", obj.Name)
}

// Import adds a new sprite map built from an atlas and its sheet, and
// selects it. A bad atlas is reported and nothing is added.
func (s *Session) Import(res world.Resources, atlasPath, texturePath string) (*engine.GameObject, error) {
	cfg := tilegrid.DefaultConfig()
	rec := world.SpriteMapRecord{
		ID:          engine.NewID(),
		Name:        s.unusedName("SpriteMap"),
		Type:        world.SpriteMapMeshType,
		AtlasPath:   atlasPath,
		TexturePath: texturePath,
		Options: &world.SpriteMapOptions{
			StageSize:  [2]int{cfg.StageSize.Cols, cfg.StageSize.Rows},
			OutputSize: [2]float32{cfg.OutputSize.X, cfg.OutputSize.Y},
		},
	}
	obj, err := world.DeserializeSpriteMap(s.scene, rec, res)
	if err != nil {
		s.notifyf("Import failed: %v", err)
		return nil, err
	}
	s.Select(obj)
	s.Changed.Invoke()
	s.notifyf("Imported %s", atlasPath)
	return obj, nil
}

// unusedName returns base, or base followed by the first free number.
func (s *Session) unusedName(base string) string {
	name := base
	for n := 2; s.scene.FindByName(name) != nil; n++ {
		name = fmt.Sprintf("%s %d", base, n)
	}
	return name
}

// --- History ---

// Reset forgets the selection, brushes and history, e.g. after the scene
// was reloaded from disk.
func (s *Session) Reset() {
	s.stroke = nil
	s.Select(nil)
	s.brush = make(map[string]int)
	s.history = NewHistory(s.history.depth)
}

// Undo reverts the latest edit that still applies, skipping edits whose
// object has since left the scene.
func (s *Session) Undo() bool {
	s.EndStroke()
	for {
		state, ok := s.history.popUndo()
		if !ok {
			return false
		}
		if s.applyUndo(state) {
			s.history.redo = append(s.history.redo, state)
			s.Changed.Invoke()
			return true
		}
	}
}

func (s *Session) Redo() bool {
	s.EndStroke()
	for {
		state, ok := s.history.popRedo()
		if !ok {
			return false
		}
		if s.applyRedo(state) {
			s.history.undo = append(s.history.undo, state)
			s.Changed.Invoke()
			return true
		}
	}
}
