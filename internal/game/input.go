package game

import (
	"spritemap/internal/camera"
	"spritemap/internal/physics"

	rl "github.com/gen2brain/raylib-go/raylib"
)

func ctrlDown() bool {
	return rl.IsKeyDown(rl.KeyLeftControl) || rl.IsKeyDown(rl.KeyRightControl) || rl.IsKeyDown(rl.KeyLeftSuper)
}

func (g *Game) Update() {
	deltaTime := rl.GetFrameTime()

	g.handleFileDrop()
	g.handleShortcuts()

	// Camera only flies while the right button is held, so WASD stays free
	// for shortcuts otherwise.
	if !g.inspector.editingText() && rl.IsMouseButtonDown(rl.MouseButtonRight) {
		g.Cameras.Active().Update(camera.ReadInput(), deltaTime)
	}

	// Scroll wheel + Shift adjusts fly speed
	if scroll := rl.GetMouseWheelMove(); scroll != 0 && rl.IsKeyDown(rl.KeyLeftShift) {
		cam := g.Cameras.Active()
		cam.MoveSpeed = max(1, min(100, cam.MoveSpeed+scroll*2))
	}

	g.handlePointer()
}

func (g *Game) handleShortcuts() {
	if g.inspector.editingText() {
		return
	}
	if ctrlDown() {
		switch {
		case rl.IsKeyPressed(rl.KeyZ) && rl.IsKeyDown(rl.KeyLeftShift), rl.IsKeyPressed(rl.KeyY):
			g.Session.Redo()
		case rl.IsKeyPressed(rl.KeyZ):
			g.Session.Undo()
		case rl.IsKeyPressed(rl.KeyS):
			g.saveScene(rl.IsKeyDown(rl.KeyLeftShift))
		case rl.IsKeyPressed(rl.KeyO):
			g.openSceneDialog()
		case rl.IsKeyPressed(rl.KeyI):
			g.importDialog()
		}
		return
	}
	if rl.IsKeyPressed(rl.KeyG) {
		g.Session.ToggleGrid()
	}
	if rl.IsKeyPressed(rl.KeyTab) {
		g.switchCamera(g.Cameras.Next().Name)
	}
	if rl.IsKeyPressed(rl.KeyDelete) {
		g.Session.DeleteSelected()
	}
	if rl.IsKeyPressed(rl.KeyF) {
		if err := g.Session.FillSelected(); err != nil {
			g.toastErr("Fill: %v", err)
		}
	}
}

// overUI reports whether the mouse is over a panel drawn last frame.
func (g *Game) overUI() bool {
	mouse := rl.GetMousePosition()
	for _, r := range g.panels {
		if rl.CheckCollisionPointRec(mouse, r) {
			return true
		}
	}
	return false
}

func (g *Game) handlePointer() {
	if rl.IsMouseButtonReleased(rl.MouseButtonLeft) {
		g.Session.EndStroke()
	}
	if g.overUI() || rl.IsMouseButtonDown(rl.MouseButtonRight) {
		g.Session.Overlay().ClearHighlight()
		return
	}

	ray := rl.GetScreenToWorldRay(rl.GetMousePosition(), g.Cameras.Active().GetRaylibCamera())

	hit, onGrid := physics.PickGrid(g.World.Scene, ray, pickDistance)
	onSelected := onGrid && hit.GameObject == g.Session.Selected()
	if onSelected {
		g.Session.HoverAt(hit.Point)
	} else {
		g.Session.Overlay().ClearHighlight()
	}

	if rl.IsMouseButtonPressed(rl.MouseButtonLeft) {
		if onSelected {
			g.Session.BeginStroke()
		} else if obj, ok := physics.PickObject(g.World.Scene, ray, pickDistance); ok {
			g.Session.Select(obj.GameObject)
			return
		} else {
			g.Session.Select(nil)
			return
		}
	}

	if onSelected && rl.IsMouseButtonDown(rl.MouseButtonLeft) {
		if _, err := g.Session.PaintAt(hit.Point); err != nil {
			g.toastErr("Paint: %v", err)
		}
	}
}
