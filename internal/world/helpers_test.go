package world

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"spritemap/internal/assets"
	"spritemap/internal/engine"
	"spritemap/internal/tilegrid"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/stretchr/testify/require"
)

type fakeLoader struct {
	loads    int
	unloaded int
}

func (f *fakeLoader) LoadTexture(path string) (rl.Texture2D, error) {
	if _, err := os.Stat(path); err != nil {
		return rl.Texture2D{}, err
	}
	f.loads++
	return rl.Texture2D{ID: uint32(f.loads), Width: 64, Height: 16}, nil
}

func (f *fakeLoader) UnloadTexture(rl.Texture2D) { f.unloaded++ }

// writeProject lays out a scene directory holding a four-frame atlas and
// a placeholder sheet image.
func writeProject(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	frames := make([]string, 4)
	for i := range frames {
		frames[i] = fmt.Sprintf(`{"filename": "tile%d.png", "frame": {"x": %d, "y": 0, "w": 16, "h": 16},
			"rotated": false, "trimmed": false, "spriteSourceSize": {"x": 0, "y": 0, "w": 16, "h": 16},
			"sourceSize": {"w": 16, "h": 16}}`, i, i*16)
	}
	doc := fmt.Sprintf(`{"frames": [%s], "meta": {"image": "tiles.png", "size": {"w": 64, "h": 16}}}`,
		strings.Join(frames, ","))
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "sprites"), 0755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "sprites", "tiles.json"), []byte(doc), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "sprites", "tiles.png"), []byte("png"), 0644))
	return dir
}

func newTestWorld(t *testing.T, root string) (*World, *fakeLoader) {
	t.Helper()
	loader := &fakeLoader{}
	return New(assets.NewManager(root, loader)), loader
}

func testRecord(id string) SpriteMapRecord {
	return SpriteMapRecord{
		ID:          id,
		Name:        "Floor",
		Type:        SpriteMapMeshType,
		AtlasPath:   "sprites/tiles.json",
		TexturePath: "sprites/tiles.png",
		Options: &SpriteMapOptions{
			StageSize:      [2]int{3, 2},
			BaseTile:       1,
			OutputSize:     [2]float32{2, 1},
			OutputPosition: [3]float32{0.5, 0, -1},
		},
	}
}

func gridOf(t *testing.T, obj *engine.GameObject) *tilegrid.Grid {
	t.Helper()
	g := engine.GetComponent[*tilegrid.Grid](obj)
	require.NotNil(t, g)
	return g
}
