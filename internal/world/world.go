package world

import (
	"encoding/json"

	"spritemap/internal/assets"
	"spritemap/internal/engine"
)

// World is one open scene plus the assets its objects reference.
type World struct {
	Scene    *engine.Scene
	Assets   *assets.Manager
	Renderer *Renderer

	// Metadata holds the scene file's metadata object. Keys this editor does
	// not own are written back untouched.
	Metadata json.RawMessage

	// unresolved holds sprite map records that failed to load, by object id.
	unresolved map[string]json.RawMessage
	// orphans are failed records with no owning object.
	orphans []json.RawMessage
}

func New(mgr *assets.Manager) *World {
	return &World{
		Scene:      engine.NewScene("Main"),
		Assets:     mgr,
		Renderer:   NewRenderer(),
		unresolved: make(map[string]json.RawMessage),
	}
}

// Clear removes every object from the scene. Listeners on Scene.Removed see
// each one go.
func (w *World) Clear() {
	for len(w.Scene.GameObjects) > 0 {
		w.Scene.RemoveGameObject(w.Scene.GameObjects[len(w.Scene.GameObjects)-1])
	}
	w.Metadata = nil
	w.unresolved = make(map[string]json.RawMessage)
	w.orphans = nil
}

// Unresolved reports whether obj carries a sprite map record that failed to
// load and will be saved back unchanged.
func (w *World) Unresolved(obj *engine.GameObject) bool {
	_, ok := w.unresolved[obj.ID]
	return ok
}
