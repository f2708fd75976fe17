// Package physics answers pick-ray queries against the scene: which sprite
// map cell, or which plain object, sits under the cursor.
package physics

import (
	"math"

	"spritemap/internal/engine"
	"spritemap/internal/tilegrid"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// MarkerSize is the edge of the pick box around objects that have no grid.
const MarkerSize float32 = 0.25

type RaycastHit struct {
	GameObject *engine.GameObject
	Grid       *tilegrid.Grid // nil when a plain object was hit
	Cell       int            // flat cell index, valid when Grid is set
	Point      rl.Vector3
	Normal     rl.Vector3
	Distance   float32
}

// PickGrid returns the closest sprite map cell the ray passes through.
func PickGrid(scene *engine.Scene, ray rl.Ray, maxDistance float32) (RaycastHit, bool) {
	ray.Direction = rl.Vector3Normalize(ray.Direction)
	var closestHit RaycastHit
	closestHit.Distance = maxDistance
	hit := false

	for _, obj := range scene.GameObjects {
		if !obj.Visible || !obj.Pickable {
			continue
		}
		grid := engine.GetComponent[*tilegrid.Grid](obj)
		if grid == nil || grid.Disposed() {
			continue
		}
		if hitInfo, ok := raycastGrid(ray, grid, maxDistance); ok && hitInfo.Distance < closestHit.Distance {
			closestHit = hitInfo
			closestHit.GameObject = obj
			hit = true
		}
	}

	return closestHit, hit
}

// PickObject is PickGrid widened to plain objects, which are hit through a
// small box around their position. Used to change the selection.
func PickObject(scene *engine.Scene, ray rl.Ray, maxDistance float32) (RaycastHit, bool) {
	closestHit, hit := PickGrid(scene, ray, maxDistance)
	if !hit {
		closestHit.Distance = maxDistance
	}
	ray.Direction = rl.Vector3Normalize(ray.Direction)

	for _, obj := range scene.GameObjects {
		if !obj.Visible || !obj.Pickable || engine.GetComponent[*tilegrid.Grid](obj) != nil {
			continue
		}
		box := NewAABBFromCenter(obj.WorldPosition(), rl.Vector3{X: MarkerSize, Y: MarkerSize, Z: MarkerSize})
		if hitInfo, ok := raycastBox(ray.Position, ray.Direction, box, maxDistance); ok && hitInfo.Distance < closestHit.Distance {
			closestHit = hitInfo
			closestHit.GameObject = obj
			hit = true
		}
	}

	return closestHit, hit
}

// raycastGrid intersects the ray with the grid plane in grid-local space,
// where the plane is z=0 and spans [-0.5, 0.5].
func raycastGrid(ray rl.Ray, grid *tilegrid.Grid, maxDistance float32) (RaycastHit, bool) {
	if _, ok := raycastBox(ray.Position, ray.Direction, GridBounds(grid), maxDistance); !ok {
		return RaycastHit{}, false
	}

	world := grid.WorldMatrix()
	inv := rl.MatrixInvert(world)
	origin := rl.Vector3Transform(ray.Position, inv)
	ahead := rl.Vector3Transform(rl.Vector3Add(ray.Position, ray.Direction), inv)
	dir := rl.Vector3Subtract(ahead, origin)

	if abs(dir.Z) < 1e-9 {
		return RaycastHit{}, false
	}
	t := -origin.Z / dir.Z
	if t < 0 {
		return RaycastHit{}, false
	}
	local := rl.Vector3Add(origin, rl.Vector3Scale(dir, t))
	local.Z = 0

	stage := grid.Options().StageSize
	cell, ok := tilegrid.LocalPointToCell(local, stage)
	if !ok {
		return RaycastHit{}, false
	}

	point := rl.Vector3Transform(local, world)
	distance := rl.Vector3Distance(ray.Position, point)
	if distance > maxDistance {
		return RaycastHit{}, false
	}

	normal := rl.Vector3Subtract(rl.Vector3Transform(rl.Vector3{Z: 1}, world), rl.Vector3Transform(rl.Vector3{}, world))
	normal = rl.Vector3Normalize(normal)
	if rl.Vector3DotProduct(normal, ray.Direction) > 0 {
		normal = rl.Vector3Negate(normal)
	}

	return RaycastHit{
		Grid:     grid,
		Cell:     tilegrid.CellToFlatIndex(cell.Col, cell.Row, stage.Cols),
		Point:    point,
		Normal:   normal,
		Distance: distance,
	}, true
}

// slabEpsilon widens the box so a grid lying exactly on an axis plane is
// not missed by rounding.
const slabEpsilon = 1e-4

func raycastBox(origin, direction rl.Vector3, box AABB, maxDistance float32) (RaycastHit, bool) {
	min := rl.Vector3SubtractValue(box.Min, slabEpsilon)
	max := rl.Vector3AddValue(box.Max, slabEpsilon)

	tmin := float32(-math.MaxFloat32)
	tmax := float32(math.MaxFloat32)
	axes := [3][4]float32{
		{origin.X, direction.X, min.X, max.X},
		{origin.Y, direction.Y, min.Y, max.Y},
		{origin.Z, direction.Z, min.Z, max.Z},
	}
	for _, a := range axes {
		o, d, lo, hi := a[0], a[1], a[2], a[3]
		if d == 0 {
			if o < lo || o > hi {
				return RaycastHit{}, false
			}
			continue
		}
		t1 := (lo - o) / d
		t2 := (hi - o) / d
		if t1 > t2 {
			t1, t2 = t2, t1
		}
		if t1 > tmin {
			tmin = t1
		}
		if t2 < tmax {
			tmax = t2
		}
		if tmin > tmax {
			return RaycastHit{}, false
		}
	}

	if tmax < 0 || tmin > maxDistance {
		return RaycastHit{}, false
	}

	t := tmin
	if t < 0 {
		t = tmax
	}
	if t > maxDistance {
		return RaycastHit{}, false
	}

	point := rl.Vector3Add(origin, rl.Vector3Scale(direction, t))

	// Calculate normal based on which face was hit
	var normal rl.Vector3
	epsilon := float32(0.001)
	if abs(point.X-min.X) < epsilon {
		normal = rl.Vector3{X: -1, Y: 0, Z: 0}
	} else if abs(point.X-max.X) < epsilon {
		normal = rl.Vector3{X: 1, Y: 0, Z: 0}
	} else if abs(point.Y-min.Y) < epsilon {
		normal = rl.Vector3{X: 0, Y: -1, Z: 0}
	} else if abs(point.Y-max.Y) < epsilon {
		normal = rl.Vector3{X: 0, Y: 1, Z: 0}
	} else if abs(point.Z-min.Z) < epsilon {
		normal = rl.Vector3{X: 0, Y: 0, Z: -1}
	} else {
		normal = rl.Vector3{X: 0, Y: 0, Z: 1}
	}

	return RaycastHit{Point: point, Normal: normal, Distance: t}, true
}

func abs(x float32) float32 {
	if x < 0 {
		return -x
	}
	return x
}
