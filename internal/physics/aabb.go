package physics

import (
	"spritemap/internal/tilegrid"

	rl "github.com/gen2brain/raylib-go/raylib"
)

type AABB struct {
	Min rl.Vector3
	Max rl.Vector3
}

// NewAABBFromCenter creates an AABB from a center point and full size dimensions.
func NewAABBFromCenter(center, size rl.Vector3) AABB {
	half := rl.Vector3{X: abs(size.X) / 2, Y: abs(size.Y) / 2, Z: abs(size.Z) / 2}
	return AABB{
		Min: rl.Vector3Subtract(center, half),
		Max: rl.Vector3Add(center, half),
	}
}

// Enclose returns the smallest box holding every point.
func Enclose(points ...rl.Vector3) AABB {
	if len(points) == 0 {
		return AABB{}
	}
	box := AABB{Min: points[0], Max: points[0]}
	for _, p := range points[1:] {
		box.Min = rl.Vector3Min(box.Min, p)
		box.Max = rl.Vector3Max(box.Max, p)
	}
	return box
}

// GridBounds is the world-space box around a grid's plane. A flat grid gives
// a box with zero thickness on one axis, which the slab test still hits.
func GridBounds(g *tilegrid.Grid) AABB {
	m := g.WorldMatrix()
	return Enclose(
		rl.Vector3Transform(rl.Vector3{X: -0.5, Y: -0.5}, m),
		rl.Vector3Transform(rl.Vector3{X: 0.5, Y: -0.5}, m),
		rl.Vector3Transform(rl.Vector3{X: 0.5, Y: 0.5}, m),
		rl.Vector3Transform(rl.Vector3{X: -0.5, Y: 0.5}, m),
	)
}
