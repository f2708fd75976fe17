package game

import (
	"log"
	"path/filepath"

	gui "github.com/gen2brain/raylib-go/raygui"
	rl "github.com/gen2brain/raylib-go/raylib"
)

const toolbarH = 36

var editorFont rl.Font // falls back to the raylib default when missing

// Theme colors - dark with an indigo accent
var (
	colorBgDark    = rl.NewColor(10, 10, 15, 255)
	colorBgPanel   = rl.NewColor(18, 18, 24, 245)
	colorBgElement = rl.NewColor(28, 28, 38, 255)
	colorBgHover   = rl.NewColor(38, 38, 52, 255)

	colorAccent      = rl.NewColor(108, 99, 255, 255)
	colorAccentLight = rl.NewColor(167, 139, 250, 255)

	colorTextPrimary   = rl.NewColor(255, 255, 255, 255)
	colorTextSecondary = rl.NewColor(200, 200, 208, 255)
	colorTextMuted     = rl.NewColor(119, 119, 119, 255)

	colorBorder    = rl.NewColor(255, 255, 255, 13)
	colorSelection = rl.NewColor(108, 99, 255, 60)

	colorOK    = rl.NewColor(100, 220, 100, 255)
	colorError = rl.NewColor(255, 120, 120, 255)
)

func initRayguiStyle(assetDir string) {
	fontPath := filepath.Join(assetDir, "fonts", "editor.ttf")
	editorFont = rl.LoadFontEx(fontPath, 48, nil)
	if editorFont.Texture.ID > 0 {
		rl.SetTextureFilter(editorFont.Texture, rl.FilterBilinear)
		gui.SetFont(editorFont)
		log.Printf("Loaded font %s", fontPath)
	} else {
		log.Printf("No editor font at %s, using default", fontPath)
	}

	gui.SetStyle(gui.DEFAULT, gui.BACKGROUND_COLOR, gui.NewColorPropertyValue(colorBgDark))
	gui.SetStyle(gui.DEFAULT, gui.BASE_COLOR_NORMAL, gui.NewColorPropertyValue(colorBgElement))
	gui.SetStyle(gui.DEFAULT, gui.BASE_COLOR_FOCUSED, gui.NewColorPropertyValue(colorBgHover))
	gui.SetStyle(gui.DEFAULT, gui.BASE_COLOR_PRESSED, gui.NewColorPropertyValue(colorAccent))

	gui.SetStyle(gui.DEFAULT, gui.TEXT_COLOR_NORMAL, gui.NewColorPropertyValue(colorTextSecondary))
	gui.SetStyle(gui.DEFAULT, gui.TEXT_COLOR_FOCUSED, gui.NewColorPropertyValue(colorTextPrimary))
	gui.SetStyle(gui.DEFAULT, gui.TEXT_COLOR_PRESSED, gui.NewColorPropertyValue(colorTextPrimary))

	gui.SetStyle(gui.DEFAULT, gui.BORDER_COLOR_NORMAL, gui.NewColorPropertyValue(rl.NewColor(50, 50, 65, 255)))
	gui.SetStyle(gui.DEFAULT, gui.BORDER_COLOR_FOCUSED, gui.NewColorPropertyValue(colorAccent))
	gui.SetStyle(gui.DEFAULT, gui.LINE_COLOR, gui.NewColorPropertyValue(rl.NewColor(40, 40, 55, 255)))

	gui.SetStyle(gui.DEFAULT, gui.TEXT_SIZE, 15)
}

// drawTextEx draws text using the specified font scaled to the requested size
func drawTextEx(font rl.Font, text string, x, y int32, size float32, color rl.Color) {
	if font.Texture.ID > 0 {
		rl.DrawTextEx(font, text, rl.Vector2{X: float32(x), Y: float32(y)}, size, 0, color)
	} else {
		rl.DrawText(text, x, y, int32(size), color)
	}
}

// claim records r as UI so clicks inside it do not reach the viewport.
func (g *Game) claim(r rl.Rectangle) rl.Rectangle {
	g.panels = append(g.panels, r)
	return r
}

func (g *Game) drawToolbar() {
	w := float32(rl.GetScreenWidth())
	bar := g.claim(rl.Rectangle{Width: w, Height: toolbarH})
	rl.DrawRectangleRec(bar, colorBgPanel)
	rl.DrawRectangle(0, toolbarH-1, int32(w), 1, colorBorder)

	x := float32(8)
	button := func(label string, width float32) bool {
		r := rl.Rectangle{X: x, Y: 6, Width: width, Height: 24}
		x += width + 6
		return gui.Button(r, label)
	}
	if button("Open", 60) {
		g.openSceneDialog()
	}
	if button("Save", 60) {
		g.saveScene(false)
	}
	if button("Import", 70) {
		g.importDialog()
	}
	x += 10
	if button("Undo", 56) {
		g.Session.Undo()
	}
	if button("Redo", 56) {
		g.Session.Redo()
	}
	x += 10
	gridLabel := "Grid: off"
	if g.Session.ShowGrid {
		gridLabel = "Grid: on"
	}
	if button(gridLabel, 80) {
		g.Session.ToggleGrid()
	}
	if button("Camera: "+g.Cameras.Active().Name, 120) {
		g.switchCamera(g.Cameras.Next().Name)
	}

	help := "RMB+WASD: fly  |  LMB: select/paint  |  F: fill  |  G: grid  |  Ctrl+Z/Y: undo/redo"
	drawTextEx(editorFont, help, int32(x)+10, 10, 16, colorTextMuted)
}

func (g *Game) drawToast() {
	if g.msg == "" || rl.GetTime()-g.msgTime > 2.5 {
		return
	}
	color := colorOK
	if g.msgErr {
		color = colorError
	}
	width := rl.MeasureText(g.msg, 16)
	drawTextEx(editorFont, g.msg, (int32(rl.GetScreenWidth())-width)/2, toolbarH+10, 16, color)
}
