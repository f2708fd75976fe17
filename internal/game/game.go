// Package game is the editor front end: the raylib window, input handling
// and the raygui panels around the sprite map session.
package game

import (
	"fmt"
	"log"
	"path/filepath"

	"spritemap/internal/assets"
	"spritemap/internal/camera"
	"spritemap/internal/config"
	"spritemap/internal/paint"
	"spritemap/internal/tilegrid"
	"spritemap/internal/world"

	rl "github.com/gen2brain/raylib-go/raylib"
)

const pickDistance = 1000

type Game struct {
	World   *world.World
	Session *paint.Session
	Cameras camera.Rig
	Config  config.Config

	configPath string
	scenePath  string
	dirty      bool // unsaved edits

	// Toast
	msg     string
	msgTime float64
	msgErr  bool

	inspector inspectorState
	panels    []rl.Rectangle // screen areas owned by UI this frame
}

func New(cfg config.Config, configPath string) *Game {
	w := world.New(assets.NewManager(cfg.AssetDir, assets.RaylibLoader{}))

	overlay := tilegrid.NewOverlay()
	overlay.GridColor = cfg.GridColor
	overlay.HighlightColor = cfg.HighlightColor

	g := &Game{
		World:      w,
		Config:     cfg,
		configPath: configPath,
	}
	g.Session = paint.NewSession(w.Scene, overlay, paint.NotifierFunc(g.toast), cfg.UndoDepth)
	g.Session.ShowGrid = cfg.ShowGrid
	g.Session.Changed.AddListener(func() { g.setDirty(true) })
	g.inspector = newInspectorState()

	main := camera.New("Main", rl.Vector3{X: 0, Y: 2, Z: 6})
	main.MoveSpeed = cfg.CameraSpeed
	top := camera.New("Top", rl.Vector3{X: 0, Y: 10, Z: 0.01})
	top.Pitch = -89
	top.MoveSpeed = cfg.CameraSpeed
	for _, c := range []*camera.Camera{main, top} {
		if err := g.Cameras.Add(c); err != nil {
			log.Printf("Camera: %v", err)
		}
	}
	return g
}

// Run opens the window and blocks until it is closed. scenePath, when set,
// is opened first.
func (g *Game) Run(scenePath string) {
	rl.SetConfigFlags(rl.FlagWindowHighdpi | rl.FlagWindowResizable | rl.FlagMsaa4xHint)
	rl.InitWindow(int32(g.Config.WindowWidth), int32(g.Config.WindowHeight), windowTitle("", false))
	defer rl.CloseWindow()

	rl.SetTargetFPS(int32(g.Config.TargetFPS))
	rl.SetExitKey(0)
	initRayguiStyle(g.Config.AssetDir)

	if scenePath != "" {
		g.openScene(scenePath)
	}
	defer g.shutdown()

	for !rl.WindowShouldClose() {
		g.Update()
		g.Draw()
	}
}

func (g *Game) shutdown() {
	g.World.Renderer.Unload(g.World)
	g.Config.LastScene = g.scenePath
	g.Config.ShowGrid = g.Session.ShowGrid
	if active := g.Cameras.Active(); active != nil {
		g.Config.CameraSpeed = active.MoveSpeed
	}
	if err := config.Save(g.configPath, g.Config); err != nil {
		log.Printf("Config: %v", err)
	}
}

func (g *Game) Draw() {
	active := g.Cameras.Active()
	cam := active.GetRaylibCamera()

	rl.BeginDrawing()
	rl.ClearBackground(colorBgDark)

	rl.BeginMode3D(cam)
	rl.DrawGrid(20, 1)
	g.World.Renderer.Draw(g.World.Scene)
	g.Session.Overlay().Draw()
	if sel := g.Session.Selected(); sel != nil && g.Session.SelectedGrid() == nil {
		rl.DrawCubeWires(sel.WorldPosition(), world.NodeMarkerSize*1.2, world.NodeMarkerSize*1.2, world.NodeMarkerSize*1.2, colorAccent)
	}
	rl.EndMode3D()

	g.panels = g.panels[:0]
	g.drawToolbar()
	g.drawHierarchy()
	g.drawInspector()
	g.drawToast()
	rl.EndDrawing()
}

// toast shows msg under the toolbar for a couple of seconds.
func (g *Game) toast(msg string) {
	g.msg = msg
	g.msgTime = rl.GetTime()
	g.msgErr = false
	log.Println(msg)
}

// windowTitle names the open scene, with a star while there are unsaved
// edits.
func windowTitle(scenePath string, dirty bool) string {
	name := "untitled"
	if scenePath != "" {
		name = filepath.Base(scenePath)
	}
	if dirty {
		name += " *"
	}
	return name + " - Sprite Map Editor"
}

func (g *Game) setDirty(dirty bool) {
	g.dirty = dirty
	if rl.IsWindowReady() {
		rl.SetWindowTitle(windowTitle(g.scenePath, g.dirty))
	}
}

func (g *Game) toastErr(format string, args ...any) {
	g.toast(fmt.Sprintf(format, args...))
	g.msgErr = true
}
