package physics

import (
	"fmt"
	"strings"
	"testing"

	"spritemap/internal/atlas"
	"spritemap/internal/engine"
	"spritemap/internal/tilegrid"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testAtlas(t *testing.T, n int) *atlas.Descriptor {
	t.Helper()
	frames := make([]string, n)
	for i := range frames {
		frames[i] = fmt.Sprintf(`{"filename": "t%d", "frame": {"x": %d, "y": 0, "w": 8, "h": 8},
			"rotated": false, "trimmed": false, "spriteSourceSize": {"x": 0, "y": 0, "w": 8, "h": 8},
			"sourceSize": {"w": 8, "h": 8}}`, i, i*8)
	}
	d, err := atlas.Validate([]byte(`{"frames": [` + strings.Join(frames, ",") + `]}`))
	require.NoError(t, err)
	return d
}

// addGrid places a cols x rows grid of the given size facing +Z at pos.
func addGrid(t *testing.T, scene *engine.Scene, name string, pos rl.Vector3, size float32, cols, rows int) *engine.GameObject {
	t.Helper()
	cfg := tilegrid.DefaultConfig()
	cfg.StageSize = tilegrid.StageSize{Cols: cols, Rows: rows}
	cfg.OutputSize = rl.Vector2{X: size, Y: size}
	g, err := tilegrid.New(name, testAtlas(t, 2), nil, cfg)
	require.NoError(t, err)
	obj := engine.NewGameObject(name)
	obj.Kind = engine.KindSpriteMapMesh
	obj.Transform.Position = pos
	obj.AddComponent(g)
	scene.AddGameObject(obj)
	return obj
}

func towards(from, to rl.Vector3) rl.Ray {
	return rl.Ray{Position: from, Direction: rl.Vector3Subtract(to, from)}
}

func TestPickGridFindsCell(t *testing.T) {
	scene := engine.NewScene("test")
	obj := addGrid(t, scene, "floor", rl.Vector3{}, 4, 4, 4)

	// Local (-0.25+0.01, 0.25-0.01) is column 1, row 2.
	target := rl.Vector3{X: -0.96, Y: 0.96}
	hit, ok := PickGrid(scene, towards(rl.Vector3{X: -0.96, Y: 0.96, Z: 10}, target), 100)
	require.True(t, ok)
	assert.Same(t, obj, hit.GameObject)
	assert.Equal(t, 9, hit.Cell)
	assert.InDelta(t, 10, hit.Distance, 1e-4)
	assert.InDelta(t, 1, hit.Normal.Z, 1e-5)
}

func TestPickGridRotatedOwner(t *testing.T) {
	scene := engine.NewScene("test")
	obj := addGrid(t, scene, "floor", rl.Vector3{Y: -1}, 2, 2, 2)
	obj.Transform.Rotation.X = -90 // lay the plane flat, facing up

	hit, ok := PickGrid(scene, towards(rl.Vector3{X: 0.5, Y: 5, Z: -0.5}, rl.Vector3{X: 0.5, Y: -1, Z: -0.5}), 100)
	require.True(t, ok)
	assert.InDelta(t, -1, hit.Point.Y, 1e-4)
	assert.InDelta(t, 6, hit.Distance, 1e-4)
	assert.InDelta(t, 1, hit.Normal.Y, 1e-4)

	cell, ok := hit.Grid.CellAt(hit.Point)
	require.True(t, ok)
	assert.Equal(t, cell, hit.Cell)
}

func TestPickGridMisses(t *testing.T) {
	scene := engine.NewScene("test")
	addGrid(t, scene, "floor", rl.Vector3{}, 1, 2, 2)

	tests := map[string]rl.Ray{
		"outside":     towards(rl.Vector3{X: 2, Z: 5}, rl.Vector3{X: 2}),
		"parallel":    {Position: rl.Vector3{Z: 1}, Direction: rl.Vector3{X: 1}},
		"behind":      {Position: rl.Vector3{Z: 1}, Direction: rl.Vector3{Z: 1}},
		"too far":     towards(rl.Vector3{Z: 500}, rl.Vector3{}),
		"edge beyond": towards(rl.Vector3{X: 0.5001, Z: 5}, rl.Vector3{X: 0.5001}),
	}
	for name, ray := range tests {
		t.Run(name, func(t *testing.T) {
			_, ok := PickGrid(scene, ray, 100)
			assert.False(t, ok)
		})
	}
}

func TestPickGridClosestWins(t *testing.T) {
	scene := engine.NewScene("test")
	far := addGrid(t, scene, "far", rl.Vector3{Z: -3}, 2, 1, 1)
	near := addGrid(t, scene, "near", rl.Vector3{Z: 1}, 2, 1, 1)

	ray := towards(rl.Vector3{Z: 10}, rl.Vector3{})
	hit, ok := PickGrid(scene, ray, 100)
	require.True(t, ok)
	assert.Same(t, near, hit.GameObject)

	near.Visible = false
	hit, ok = PickGrid(scene, ray, 100)
	require.True(t, ok)
	assert.Same(t, far, hit.GameObject)

	far.Pickable = false
	_, ok = PickGrid(scene, ray, 100)
	assert.False(t, ok)
}

func TestPickGridSkipsDisposed(t *testing.T) {
	scene := engine.NewScene("test")
	obj := addGrid(t, scene, "floor", rl.Vector3{}, 1, 1, 1)
	engine.GetComponent[*tilegrid.Grid](obj).Dispose()

	_, ok := PickGrid(scene, towards(rl.Vector3{Z: 5}, rl.Vector3{}), 100)
	assert.False(t, ok)
}

func TestPickObjectHitsMarkers(t *testing.T) {
	scene := engine.NewScene("test")
	node := engine.NewGameObject("node")
	node.Transform.Position = rl.Vector3{X: 3}
	scene.AddGameObject(node)
	addGrid(t, scene, "floor", rl.Vector3{Z: -2}, 1, 1, 1)

	hit, ok := PickObject(scene, towards(rl.Vector3{X: 3, Z: 5}, rl.Vector3{X: 3}), 100)
	require.True(t, ok)
	assert.Same(t, node, hit.GameObject)
	assert.Nil(t, hit.Grid)
	assert.InDelta(t, 5-MarkerSize/2, hit.Distance, 1e-3)

	hit, ok = PickObject(scene, towards(rl.Vector3{Z: 5}, rl.Vector3{Z: -2}), 100)
	require.True(t, ok)
	assert.NotNil(t, hit.Grid)
}

func TestGridBounds(t *testing.T) {
	scene := engine.NewScene("test")
	obj := addGrid(t, scene, "floor", rl.Vector3{X: 1, Y: 2, Z: 3}, 2, 1, 1)
	box := GridBounds(engine.GetComponent[*tilegrid.Grid](obj))

	assert.InDelta(t, 0, box.Min.X, 1e-5)
	assert.InDelta(t, 2, box.Max.X, 1e-5)
	assert.InDelta(t, 1, box.Min.Y, 1e-5)
	assert.InDelta(t, 3, box.Max.Y, 1e-5)
	assert.InDelta(t, 3, box.Min.Z, 1e-5)
	assert.InDelta(t, 3, box.Max.Z, 1e-5)
}
