package game

import (
	"fmt"

	"spritemap/internal/camera"
	"spritemap/internal/tilegrid"

	gui "github.com/gen2brain/raylib-go/raygui"
	rl "github.com/gen2brain/raylib-go/raylib"
)

const (
	inspectorW = 310
	maxStage   = 256
)

// inspectorState is the widget state that outlives one frame.
type inspectorState struct {
	grid *tilegrid.Grid // the grid the fields below were read from

	cols, rows         int32
	colsEdit, rowsEdit bool

	search     string
	searchEdit bool
	listScroll int32
}

func newInspectorState() inspectorState {
	return inspectorState{cols: 10, rows: 10}
}

func (s *inspectorState) editingText() bool {
	return s.searchEdit || s.colsEdit || s.rowsEdit
}

// sync reloads the fields when a different grid instance is shown.
func (s *inspectorState) sync(g *tilegrid.Grid) {
	if g == s.grid {
		return
	}
	s.grid = g
	s.colsEdit, s.rowsEdit = false, false
	s.listScroll = 0
	if g != nil {
		stage := g.Options().StageSize
		s.cols, s.rows = int32(stage.Cols), int32(stage.Rows)
	}
}

func (g *Game) drawInspector() {
	screenW := float32(rl.GetScreenWidth())
	panel := g.claim(rl.Rectangle{
		X:      screenW - inspectorW,
		Y:      toolbarH,
		Width:  inspectorW,
		Height: float32(rl.GetScreenHeight()) - toolbarH,
	})
	rl.DrawRectangleRec(panel, colorBgPanel)
	rl.DrawRectangle(int32(panel.X), int32(panel.Y), 2, int32(panel.Height), colorBorder)

	x := panel.X + 12
	w := panel.Width - 24
	y := panel.Y + 8

	sel := g.Session.Selected()
	grid := g.Session.SelectedGrid()
	g.inspector.sync(grid)

	switch {
	case sel == nil:
		drawTextEx(editorFont, "Nothing selected", int32(x), int32(y), 18, colorTextMuted)
		y += 28
	case grid == nil:
		drawTextEx(editorFont, sel.Name, int32(x), int32(y), 18, colorTextPrimary)
		y += 24
		p := sel.Transform.Position
		drawTextEx(editorFont, fmt.Sprintf("Position %.2f, %.2f, %.2f", p.X, p.Y, p.Z), int32(x), int32(y), 15, colorTextSecondary)
		y += 28
	default:
		drawTextEx(editorFont, sel.Name, int32(x), int32(y), 18, colorTextPrimary)
		y += 26
		y = g.drawSpriteMapInspector(grid, x, y, w)
	}

	g.drawPipelineInspector(x, max(y+10, panel.Y+panel.Height-170), w)
}

func (g *Game) drawSpriteMapInspector(grid *tilegrid.Grid, x, y, w float32) float32 {
	st := &g.inspector

	drawTextEx(editorFont, grid.Atlas().Summary(), int32(x), int32(y), 15, colorTextSecondary)
	y += 20
	if grid.Source != nil {
		drawTextEx(editorFont, grid.Source.AtlasPath, int32(x), int32(y), 14, colorTextMuted)
		y += 20
	}

	// Stage size
	gui.Label(rl.Rectangle{X: x, Y: y, Width: 60, Height: 24}, "Stage")
	half := (w - 60 - 70) / 2
	if gui.Spinner(rl.Rectangle{X: x + 60, Y: y, Width: half - 4, Height: 24}, "", &st.cols, 1, maxStage, st.colsEdit) {
		st.colsEdit = !st.colsEdit
	}
	if gui.Spinner(rl.Rectangle{X: x + 60 + half, Y: y, Width: half - 4, Height: 24}, "", &st.rows, 1, maxStage, st.rowsEdit) {
		st.rowsEdit = !st.rowsEdit
	}
	if gui.Button(rl.Rectangle{X: x + w - 66, Y: y, Width: 66, Height: 24}, "Apply") {
		st.colsEdit, st.rowsEdit = false, false
		// Errors were already reported by the session.
		_ = g.Session.ResizeSelected(tilegrid.StageSize{Cols: int(st.cols), Rows: int(st.rows)})
		return y + 30
	}
	y += 30

	opts := grid.Options()
	if flip := gui.CheckBox(rl.Rectangle{X: x, Y: y + 4, Width: 16, Height: 16}, "Flip U", opts.FlipU); flip != opts.FlipU {
		grid.SetFlipU(flip)
	}
	y += 28

	size := opts.OutputSize
	gui.Label(rl.Rectangle{X: x, Y: y, Width: 60, Height: 20}, "Size")
	size.X = gui.Slider(rl.Rectangle{X: x + 60, Y: y, Width: w - 110, Height: 20}, "", fmt.Sprintf("%.1f", size.X), size.X, 0.1, 20)
	y += 24
	size.Y = gui.Slider(rl.Rectangle{X: x + 60, Y: y, Width: w - 110, Height: 20}, "", fmt.Sprintf("%.1f", size.Y), size.Y, 0.1, 20)
	y += 28
	if size != opts.OutputSize {
		if err := grid.SetOutput(size, opts.OutputPosition); err != nil {
			g.toastErr("%v", err)
		}
	}

	// Tile picker
	drawTextEx(editorFont, "Tiles", int32(x), int32(y), 16, colorTextSecondary)
	y += 20
	if gui.TextBox(rl.Rectangle{X: x, Y: y, Width: w, Height: 24}, &st.search, 64, st.searchEdit) {
		st.searchEdit = !st.searchEdit
	}
	y += 30

	indices, text := tileList(grid.Atlas(), st.search)
	current, hasBrush := g.Session.SelectedTile()
	active := int32(-1)
	if hasBrush {
		active = rowOf(indices, current)
	}
	listH := float32(200)
	picked := gui.ListView(rl.Rectangle{X: x, Y: y, Width: w, Height: listH}, text, &st.listScroll, active)
	if picked >= 0 && picked < int32(len(indices)) && picked != active {
		if err := g.Session.SelectTile(indices[picked]); err != nil {
			g.toastErr("%v", err)
		}
	}
	y += listH + 8

	if hasBrush {
		g.drawTilePreview(grid, current, x, y)
		drawTextEx(editorFont, grid.Atlas().Frames[current].Filename, int32(x+56), int32(y+16), 15, colorAccentLight)
	} else {
		drawTextEx(editorFont, "Pick a tile to paint", int32(x), int32(y+16), 15, colorTextMuted)
	}
	y += 56

	if gui.Button(rl.Rectangle{X: x, Y: y, Width: 100, Height: 24}, "Fill [F]") {
		if err := g.Session.FillSelected(); err != nil {
			g.toastErr("Fill: %v", err)
		}
	}
	return y + 30
}

func (g *Game) drawTilePreview(grid *tilegrid.Grid, tile int, x, y float32) {
	tex := grid.Texture()
	dst := rl.Rectangle{X: x, Y: y, Width: 48, Height: 48}
	rl.DrawRectangleRec(dst, colorBgElement)
	if tex == nil || tex.Handle.ID == 0 {
		return
	}
	rl.DrawTexturePro(tex.Handle, grid.SourceRect(tile), dst, rl.Vector2{}, 0, rl.White)
}

func (g *Game) drawPipelineInspector(x, y, w float32) {
	cam := g.Cameras.Active()
	gui.GroupBox(rl.Rectangle{X: x, Y: y, Width: w, Height: 150}, "Camera "+cam.Name)
	y += 12
	drawTextEx(editorFont, "Saved per camera, not applied to the preview", int32(x+8), int32(y), 13, colorTextMuted)
	y += 18
	for i, e := range cam.Pipeline.Effects() {
		e.Enabled = gui.CheckBox(rl.Rectangle{X: x + 8, Y: y + 4, Width: 14, Height: 14}, camera.EffectNames[i], e.Enabled)
		e.Strength = gui.Slider(rl.Rectangle{X: x + w - 130, Y: y + 2, Width: 90, Height: 18}, "", fmt.Sprintf("%.2f", e.Strength), e.Strength, 0, 2)
		y += 28
	}
}

// switchCamera activates a camera and reports what its pipeline turns on.
func (g *Game) switchCamera(name string) {
	p, err := g.Cameras.Switch(name)
	if err != nil {
		g.toastErr("%v", err)
		return
	}
	g.toast(fmt.Sprintf("Camera %s (%d effect(s) on)", name, p.Enabled()))
}
