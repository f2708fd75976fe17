package game

import (
	"fmt"

	"spritemap/internal/engine"

	rl "github.com/gen2brain/raylib-go/raylib"
)

const hierarchyW = 210

// drawHierarchy draws the scene hierarchy panel on the left.
func (g *Game) drawHierarchy() {
	panelX := int32(0)
	panelY := int32(toolbarH)
	panelW := int32(hierarchyW)
	panelH := int32(rl.GetScreenHeight()) - panelY

	g.claim(rl.Rectangle{X: float32(panelX), Y: float32(panelY), Width: float32(panelW), Height: float32(panelH)})
	rl.DrawRectangle(panelX, panelY, panelW, panelH, colorBgPanel)
	rl.DrawRectangle(panelX+panelW-2, panelY, 2, panelH, colorBorder)
	drawTextEx(editorFont, "Hierarchy", panelX+12, panelY+8, 18, colorTextSecondary)
	maps := fmt.Sprintf("%d maps", len(g.World.Scene.FindByKind(engine.KindSpriteMapMesh)))
	drawTextEx(editorFont, maps, panelX+panelW-12-rl.MeasureText(maps, 14), panelY+11, 14, colorTextMuted)

	mousePos := rl.GetMousePosition()
	itemH := int32(22)
	y := panelY + 32

	rl.BeginScissorMode(panelX, y, panelW, panelH-32)
	defer rl.EndScissorMode()

	row := 0
	var walk func(obj *engine.GameObject, depth int32)
	walk = func(obj *engine.GameObject, depth int32) {
		itemY := y + int32(row)*itemH
		row++

		hovered := mousePos.X < float32(panelW) && mousePos.Y >= float32(itemY) && mousePos.Y < float32(itemY+itemH)
		selected := g.Session.Selected() == obj
		if selected {
			rl.DrawRectangle(panelX, itemY, panelW, itemH, colorSelection)
			rl.DrawRectangle(panelX, itemY, 3, itemH, colorAccent) // Left accent bar
		} else if hovered {
			rl.DrawRectangle(panelX, itemY, panelW, itemH, colorBgHover)
		}
		if hovered && rl.IsMouseButtonPressed(rl.MouseButtonLeft) {
			g.Session.Select(obj)
		}

		txtColor := colorTextSecondary
		if selected {
			txtColor = colorTextPrimary
		}
		label := obj.Name
		if g.World.Unresolved(obj) {
			label += " (missing)"
			txtColor = colorError
		} else if obj.Kind == engine.KindSpriteMapMesh {
			label += "  [map]"
		}
		drawTextEx(editorFont, label, panelX+12+depth*16, itemY+3, 16, txtColor)

		for _, c := range obj.Children {
			walk(c, depth+1)
		}
	}
	for _, obj := range g.World.Scene.GameObjects {
		if obj.Parent == nil {
			walk(obj, 0)
		}
	}
}
