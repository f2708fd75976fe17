package game

import (
	"os"
	"path/filepath"
	"strings"

	"spritemap/internal/atlas"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/tidwall/gjson"
)

type dropKind int

const (
	dropUnsupported dropKind = iota
	dropAtlas
	dropScene
)

// classifyDrop tells an atlas manifest from a scene file by content; both
// are .json.
func classifyDrop(path string, data []byte) dropKind {
	if !strings.EqualFold(filepath.Ext(path), ".json") {
		return dropUnsupported
	}
	if atlas.IsValid(data) {
		return dropAtlas
	}
	if gjson.GetBytes(data, "objects").IsArray() {
		return dropScene
	}
	return dropUnsupported
}

// handleFileDrop checks for dropped files and imports supported assets
func (g *Game) handleFileDrop() {
	if !rl.IsFileDropped() {
		return
	}

	files := rl.LoadDroppedFiles()
	defer rl.UnloadDroppedFiles()

	for _, file := range files {
		data, err := os.ReadFile(file)
		if err != nil {
			g.toastErr("Cannot read %s", filepath.Base(file))
			continue
		}
		switch classifyDrop(file, data) {
		case dropAtlas:
			g.importAtlas(file)
		case dropScene:
			g.openScene(file)
		default:
			g.toastErr("Unsupported file: %s", filepath.Base(file))
		}
	}
}
