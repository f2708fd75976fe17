package tilegrid

import (
	"fmt"
	"strings"
	"testing"

	"spritemap/internal/atlas"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/stretchr/testify/require"
)

// testAtlas builds an atlas of n 16x16 frames laid out in one row, named
// tile0.png, tile1.png, ...
func testAtlas(t *testing.T, n int) *atlas.Descriptor {
	t.Helper()
	frames := make([]string, n)
	for i := range frames {
		frames[i] = fmt.Sprintf(`{"filename": "tile%d.png", "frame": {"x": %d, "y": 0, "w": 16, "h": 16},
			"rotated": false, "trimmed": false, "spriteSourceSize": {"x": 0, "y": 0, "w": 16, "h": 16},
			"sourceSize": {"w": 16, "h": 16}}`, i, i*16)
	}
	doc := fmt.Sprintf(`{"frames": [%s], "meta": {"image": "tiles.png", "size": {"w": %d, "h": 16}}}`,
		strings.Join(frames, ","), n*16)
	d, err := atlas.Validate([]byte(doc))
	require.NoError(t, err)
	return d
}

func testConfig(cols, rows int) Config {
	cfg := DefaultConfig()
	cfg.StageSize = StageSize{Cols: cols, Rows: rows}
	return cfg
}

func nearVec(t *testing.T, want, got rl.Vector3) {
	t.Helper()
	const eps = 1e-5
	require.InDelta(t, want.X, got.X, eps)
	require.InDelta(t, want.Y, got.Y, eps)
	require.InDelta(t, want.Z, got.Z, eps)
}
