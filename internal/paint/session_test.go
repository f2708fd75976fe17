package paint

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"spritemap/internal/assets"
	"spritemap/internal/atlas"
	"spritemap/internal/engine"
	"spritemap/internal/errs"
	"spritemap/internal/tilegrid"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func atlasDoc(n int) string {
	frames := make([]string, n)
	for i := range frames {
		frames[i] = fmt.Sprintf(`{"filename": "tile%d.png", "frame": {"x": %d, "y": 0, "w": 16, "h": 16},
			"rotated": false, "trimmed": false, "spriteSourceSize": {"x": 0, "y": 0, "w": 16, "h": 16},
			"sourceSize": {"w": 16, "h": 16}}`, i, i*16)
	}
	return `{"frames": [` + strings.Join(frames, ",") + `]}`
}

type fixture struct {
	scene    *engine.Scene
	session  *Session
	messages []string
}

func newFixture(t *testing.T, depth int) *fixture {
	t.Helper()
	f := &fixture{scene: engine.NewScene("test")}
	f.session = NewSession(f.scene, tilegrid.NewOverlay(), NotifierFunc(func(msg string) {
		f.messages = append(f.messages, msg)
	}), depth)
	return f
}

func (f *fixture) addMap(t *testing.T, name string, cols, rows int) *engine.GameObject {
	t.Helper()
	d, err := atlas.Validate([]byte(atlasDoc(4)))
	require.NoError(t, err)
	cfg := tilegrid.DefaultConfig()
	cfg.StageSize = tilegrid.StageSize{Cols: cols, Rows: rows}
	g, err := tilegrid.New(name, d, nil, cfg)
	require.NoError(t, err)
	obj := engine.NewGameObject(name)
	obj.Kind = engine.KindSpriteMapMesh
	obj.AddComponent(g)
	f.scene.AddGameObject(obj)
	return obj
}

func gridOf(obj *engine.GameObject) *tilegrid.Grid {
	return engine.GetComponent[*tilegrid.Grid](obj)
}

// at is the world point at the centre of a cell of a grid at the origin.
func at(col, row int, stage tilegrid.StageSize) rl.Vector3 {
	return tilegrid.CellCenter(tilegrid.Cell{Col: col, Row: row}, stage)
}

func TestSelectShowsOverlay(t *testing.T) {
	f := newFixture(t, 10)
	a := f.addMap(t, "a", 2, 2)
	plain := engine.NewGameObject("plain")
	f.scene.AddGameObject(plain)

	f.session.Select(a)
	assert.Same(t, a, f.session.Overlay().Owner())

	f.session.Select(plain)
	assert.False(t, f.session.Overlay().Visible())
	assert.Nil(t, f.session.SelectedGrid())

	f.session.Select(a)
	assert.False(t, f.session.ToggleGrid())
	assert.False(t, f.session.Overlay().Visible())
	assert.True(t, f.session.ToggleGrid())
	assert.Same(t, a, f.session.Overlay().Owner())
}

func TestSelectTileByName(t *testing.T) {
	f := newFixture(t, 10)
	var pre *errs.PreconditionError
	assert.True(t, errors.As(f.session.SelectTileByName("tile1.png"), &pre))

	f.session.Select(f.addMap(t, "a", 2, 2))
	require.NoError(t, f.session.SelectTileByName("tile2.png"))
	tile, ok := f.session.SelectedTile()
	require.True(t, ok)
	assert.Equal(t, 2, tile)

	var verr *errs.ValidationError
	assert.True(t, errors.As(f.session.SelectTileByName("nope.png"), &verr))
	tile, _ = f.session.SelectedTile()
	assert.Equal(t, 2, tile, "unknown name keeps the brush")
	assert.Len(t, f.messages, 1)

	assert.True(t, errors.As(f.session.SelectTile(4), &pre))
}

func TestBrushIsPerObject(t *testing.T) {
	f := newFixture(t, 10)
	a := f.addMap(t, "a", 2, 2)
	b := f.addMap(t, "b", 2, 2)

	f.session.Select(a)
	require.NoError(t, f.session.SelectTile(3))
	f.session.Select(b)
	_, ok := f.session.SelectedTile()
	assert.False(t, ok)
	f.session.Select(a)
	tile, _ := f.session.SelectedTile()
	assert.Equal(t, 3, tile)
}

func TestPaintAtAndUndoRedo(t *testing.T) {
	f := newFixture(t, 10)
	stage := tilegrid.StageSize{Cols: 4, Rows: 4}
	obj := f.addMap(t, "a", 4, 4)
	f.session.Select(obj)

	changed, err := f.session.PaintAt(at(1, 2, stage))
	require.NoError(t, err)
	assert.False(t, changed, "no brush yet")
	assert.Equal(t, []string{"Select a tile first"}, f.messages)

	require.NoError(t, f.session.SelectTile(3))
	changed, err = f.session.PaintAt(at(1, 2, stage))
	require.NoError(t, err)
	assert.True(t, changed)
	assert.Equal(t, 3, gridOf(obj).Tile(9))

	changed, _ = f.session.PaintAt(at(1, 2, stage))
	assert.False(t, changed, "same tile again is a no-op")
	changed, _ = f.session.PaintAt(rl.Vector3{X: 3})
	assert.False(t, changed, "off the grid")
	assert.Equal(t, 1, f.session.History().Len())

	require.True(t, f.session.Undo())
	assert.Equal(t, 0, gridOf(obj).Tile(9))
	assert.False(t, f.session.Undo())

	require.True(t, f.session.Redo())
	assert.Equal(t, 3, gridOf(obj).Tile(9))
	assert.False(t, f.session.Redo())
}

func TestStrokeIsOneUndoStep(t *testing.T) {
	f := newFixture(t, 10)
	stage := tilegrid.StageSize{Cols: 3, Rows: 1}
	obj := f.addMap(t, "a", 3, 1)
	f.session.Select(obj)
	require.NoError(t, f.session.SelectTile(1))

	f.session.BeginStroke()
	for col := 0; col < 3; col++ {
		_, err := f.session.PaintAt(at(col, 0, stage))
		require.NoError(t, err)
	}
	f.session.EndStroke()

	assert.Equal(t, []int{1, 1, 1}, gridOf(obj).Tiles())
	assert.Equal(t, 1, f.session.History().Len())
	require.True(t, f.session.Undo())
	assert.Equal(t, []int{0, 0, 0}, gridOf(obj).Tiles())

	f.session.BeginStroke()
	f.session.EndStroke()
	assert.Equal(t, 0, f.session.History().Len(), "empty strokes are dropped")
}

func TestFillSelected(t *testing.T) {
	f := newFixture(t, 10)
	obj := f.addMap(t, "a", 2, 2)
	f.session.Select(obj)
	require.NoError(t, gridOf(obj).ChangeTile(0, 2))
	require.NoError(t, f.session.SelectTile(2))

	require.NoError(t, f.session.FillSelected())
	assert.Equal(t, []int{2, 2, 2, 2}, gridOf(obj).Tiles())
	require.True(t, f.session.Undo())
	assert.Equal(t, []int{2, 0, 0, 0}, gridOf(obj).Tiles())
}

func TestHistoryCap(t *testing.T) {
	f := newFixture(t, 2)
	stage := tilegrid.StageSize{Cols: 3, Rows: 1}
	obj := f.addMap(t, "a", 3, 1)
	f.session.Select(obj)
	require.NoError(t, f.session.SelectTile(1))

	for col := 0; col < 3; col++ {
		_, err := f.session.PaintAt(at(col, 0, stage))
		require.NoError(t, err)
	}
	assert.Equal(t, 2, f.session.History().Len())
	assert.True(t, f.session.Undo())
	assert.True(t, f.session.Undo())
	assert.False(t, f.session.Undo())
	assert.Equal(t, []int{1, 0, 0}, gridOf(obj).Tiles())
}

func TestNewEditClearsRedo(t *testing.T) {
	f := newFixture(t, 10)
	stage := tilegrid.StageSize{Cols: 2, Rows: 1}
	f.session.Select(f.addMap(t, "a", 2, 1))
	require.NoError(t, f.session.SelectTile(1))

	_, _ = f.session.PaintAt(at(0, 0, stage))
	require.True(t, f.session.Undo())
	assert.True(t, f.session.History().CanRedo())
	_, _ = f.session.PaintAt(at(1, 0, stage))
	assert.False(t, f.session.History().CanRedo())
}

func TestResizeSelectedUndoRedo(t *testing.T) {
	f := newFixture(t, 10)
	obj := f.addMap(t, "a", 2, 2)
	f.session.Select(obj)
	before := gridOf(obj)
	require.NoError(t, before.ChangeTile(3, 2))
	require.NoError(t, f.session.SelectTile(1))

	require.NoError(t, f.session.ResizeSelected(tilegrid.StageSize{Cols: 3, Rows: 3}))
	after := gridOf(obj)
	assert.NotSame(t, before, after)
	assert.True(t, before.Disposed())
	assert.Equal(t, 2, after.Tile(tilegrid.CellToFlatIndex(1, 1, 3)))
	grid, _ := f.session.Overlay().Lines()
	assert.Len(t, grid, 8, "overlay rebuilt for 3x3")
	tile, _ := f.session.SelectedTile()
	assert.Equal(t, 1, tile, "brush survives resize")

	require.True(t, f.session.Undo())
	assert.Same(t, before, gridOf(obj))
	assert.False(t, before.Disposed())
	assert.True(t, after.Disposed())
	assert.Equal(t, 2, before.Tile(3))
	grid, _ = f.session.Overlay().Lines()
	assert.Len(t, grid, 6)

	require.True(t, f.session.Redo())
	assert.Same(t, after, gridOf(obj))
	assert.Len(t, obj.Components(), 1)
}

func TestResizeRejectsBadStage(t *testing.T) {
	f := newFixture(t, 10)
	obj := f.addMap(t, "a", 2, 2)
	f.session.Select(obj)
	g := gridOf(obj)

	err := f.session.ResizeSelected(tilegrid.StageSize{Cols: 0, Rows: 2})
	var verr *errs.ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Same(t, g, gridOf(obj))
	assert.False(t, g.Disposed())
	assert.Equal(t, 0, f.session.History().Len())
	assert.Len(t, f.messages, 1)

	require.NoError(t, f.session.ResizeSelected(tilegrid.StageSize{Cols: 2, Rows: 2}))
	assert.Equal(t, 0, f.session.History().Len(), "same size is a no-op")
}

func TestUndoPaintAfterResizeUndo(t *testing.T) {
	f := newFixture(t, 10)
	stage := tilegrid.StageSize{Cols: 2, Rows: 2}
	obj := f.addMap(t, "a", 2, 2)
	f.session.Select(obj)
	require.NoError(t, f.session.SelectTile(3))

	_, err := f.session.PaintAt(at(0, 0, stage))
	require.NoError(t, err)
	require.NoError(t, f.session.ResizeSelected(tilegrid.StageSize{Cols: 1, Rows: 1}))

	require.True(t, f.session.Undo())
	require.True(t, f.session.Undo())
	assert.Equal(t, []int{0, 0, 0, 0}, gridOf(obj).Tiles())
}

func TestRemovalClearsSelectionAndOverlay(t *testing.T) {
	f := newFixture(t, 10)
	obj := f.addMap(t, "a", 2, 2)
	f.session.Select(obj)
	f.session.HoverAt(at(0, 0, tilegrid.StageSize{Cols: 2, Rows: 2}))

	f.scene.RemoveGameObject(obj)
	assert.Nil(t, f.session.Selected())
	assert.False(t, f.session.Overlay().Visible())
	_, highlighted := f.session.Overlay().HighlightedCell()
	assert.False(t, highlighted)
}

func TestDeleteSelectedUndo(t *testing.T) {
	f := newFixture(t, 10)
	parent := engine.NewGameObject("parent")
	f.scene.AddGameObject(parent)
	obj := f.addMap(t, "a", 2, 2)
	parent.AddChild(obj)

	f.session.Select(parent)
	f.session.DeleteSelected()
	assert.Empty(t, f.scene.GameObjects)
	assert.True(t, gridOf(obj).Disposed())

	require.True(t, f.session.Undo())
	assert.Len(t, f.scene.GameObjects, 2)
	assert.Same(t, parent, obj.Parent)
	assert.False(t, gridOf(obj).Disposed())
	assert.Same(t, parent, f.session.Selected())
	assert.Equal(t, "Restored parent", f.messages[len(f.messages)-1])

	require.True(t, f.session.Redo())
	assert.Empty(t, f.scene.GameObjects)
}

func TestUndoSkipsEditsOnRemovedObjects(t *testing.T) {
	f := newFixture(t, 10)
	stage := tilegrid.StageSize{Cols: 2, Rows: 2}
	a := f.addMap(t, "a", 2, 2)
	b := f.addMap(t, "b", 2, 2)

	f.session.Select(a)
	require.NoError(t, f.session.SelectTile(1))
	_, _ = f.session.PaintAt(at(0, 0, stage))
	f.session.Select(b)
	require.NoError(t, f.session.SelectTile(1))
	_, _ = f.session.PaintAt(at(0, 0, stage))

	f.scene.RemoveGameObject(b)
	require.True(t, f.session.Undo())
	assert.Equal(t, 0, gridOf(a).Tile(0))
	assert.False(t, f.session.Undo())
}

func TestHoverAt(t *testing.T) {
	f := newFixture(t, 10)
	stage := tilegrid.StageSize{Cols: 4, Rows: 4}
	assert.False(t, f.session.HoverAt(rl.Vector3{}))

	f.session.Select(f.addMap(t, "a", 4, 4))
	require.True(t, f.session.HoverAt(at(3, 1, stage)))
	cell, ok := f.session.Overlay().HighlightedCell()
	require.True(t, ok)
	assert.Equal(t, tilegrid.Cell{Col: 3, Row: 1}, cell)

	assert.False(t, f.session.HoverAt(rl.Vector3{X: 2}))
	_, ok = f.session.Overlay().HighlightedCell()
	assert.False(t, ok)
}

type fakeLoader struct{}

func (fakeLoader) LoadTexture(path string) (rl.Texture2D, error) {
	if _, err := os.Stat(path); err != nil {
		return rl.Texture2D{}, err
	}
	return rl.Texture2D{ID: 1, Width: 64, Height: 16}, nil
}

func (fakeLoader) UnloadTexture(rl.Texture2D) {}

func TestImport(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "tiles.json"), []byte(atlasDoc(4)), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "bad.json"), []byte(`{"frames": []}`), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "tiles.png"), []byte("png"), 0644))
	mgr := assets.NewManager(dir, fakeLoader{})

	f := newFixture(t, 10)
	obj, err := f.session.Import(mgr, "tiles.json", "tiles.png")
	require.NoError(t, err)
	assert.Same(t, obj, f.session.Selected())
	assert.Equal(t, engine.KindSpriteMapMesh, obj.Kind)
	assert.Equal(t, tilegrid.StageSize{Cols: 10, Rows: 10}, gridOf(obj).Options().StageSize)
	assert.Same(t, obj, f.session.Overlay().Owner())

	_, err = f.session.Import(mgr, "bad.json", "tiles.png")
	var verr *errs.ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Len(t, f.scene.GameObjects, 1)
	assert.Same(t, obj, f.session.Selected(), "failed import keeps the selection")
}

func TestImportPicksUnusedNames(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "tiles.json"), []byte(atlasDoc(4)), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "tiles.png"), []byte("png"), 0644))
	mgr := assets.NewManager(dir, fakeLoader{})

	f := newFixture(t, 10)
	var names []string
	for i := 0; i < 3; i++ {
		obj, err := f.session.Import(mgr, "tiles.json", "tiles.png")
		require.NoError(t, err)
		names = append(names, obj.Name)
	}
	assert.Equal(t, []string{"SpriteMap", "SpriteMap 2", "SpriteMap 3"}, names)
}

func TestChangedFiresOnEdits(t *testing.T) {
	f := newFixture(t, 10)
	obj := f.addMap(t, "a", 2, 2)
	stage := tilegrid.StageSize{Cols: 2, Rows: 2}
	changes := 0
	f.session.Changed.AddListener(func() { changes++ })

	f.session.Select(obj)
	require.NoError(t, f.session.SelectTile(1))
	assert.Zero(t, changes, "selection is not an edit")

	painted, err := f.session.PaintAt(at(0, 0, stage))
	require.NoError(t, err)
	require.True(t, painted)
	assert.Equal(t, 1, changes)

	_, _ = f.session.PaintAt(at(0, 0, stage))
	assert.Equal(t, 1, changes, "painting the same tile again changes nothing")

	require.NoError(t, f.session.FillSelected())
	assert.Equal(t, 2, changes)
	require.NoError(t, f.session.ResizeSelected(tilegrid.StageSize{Cols: 3, Rows: 3}))
	assert.Equal(t, 3, changes)

	require.True(t, f.session.Undo())
	assert.Equal(t, 4, changes)
	require.True(t, f.session.Redo())
	assert.Equal(t, 5, changes)

	f.session.DeleteSelected()
	assert.Equal(t, 6, changes)
	assert.False(t, f.session.Redo())
	assert.Equal(t, 6, changes)
}

func TestReset(t *testing.T) {
	f := newFixture(t, 10)
	obj := f.addMap(t, "a", 2, 2)
	f.session.Select(obj)
	require.NoError(t, f.session.SelectTile(1))
	_, _ = f.session.PaintAt(at(0, 0, tilegrid.StageSize{Cols: 2, Rows: 2}))

	f.session.Reset()
	assert.Nil(t, f.session.Selected())
	assert.False(t, f.session.History().CanUndo())
	f.session.Select(obj)
	_, ok := f.session.SelectedTile()
	assert.False(t, ok)
}
