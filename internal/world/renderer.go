package world

import (
	"spritemap/internal/engine"
	"spritemap/internal/tilegrid"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// NodeMarkerSize is the edge of the wire cube drawn for objects without a grid.
const NodeMarkerSize float32 = 0.25

// Renderer draws the scene: sprite maps as textured quads, plain nodes as
// small wire markers.
type Renderer struct {
	Tint        rl.Color
	MarkerColor rl.Color
	ShowMarkers bool

	// quads is reused between frames
	quads []tilegrid.Quad
}

func NewRenderer() *Renderer {
	return &Renderer{
		Tint:        rl.White,
		MarkerColor: rl.Gray,
		ShowMarkers: true,
	}
}

// WorldQuads returns every cell of g as a quad in world space, row-major.
func WorldQuads(g *tilegrid.Grid, dst []tilegrid.Quad) []tilegrid.Quad {
	dst = dst[:0]
	if g == nil || g.Disposed() {
		return dst
	}
	m := g.WorldMatrix()
	cells := g.Options().StageSize.Cells()
	for i := 0; i < cells; i++ {
		q := g.CellQuad(i)
		for c := range q.Corners {
			q.Corners[c] = rl.Vector3Transform(q.Corners[c], m)
		}
		dst = append(dst, q)
	}
	return dst
}

func (r *Renderer) Draw(scene *engine.Scene) {
	for _, g := range scene.GameObjects {
		if !g.Visible {
			continue
		}
		if grid := engine.GetComponent[*tilegrid.Grid](g); grid != nil && !grid.Disposed() {
			r.drawGrid(grid)
			continue
		}
		if r.ShowMarkers {
			rl.DrawCubeWires(g.WorldPosition(), NodeMarkerSize, NodeMarkerSize, NodeMarkerSize, r.MarkerColor)
		}
	}
}

func (r *Renderer) drawGrid(g *tilegrid.Grid) {
	tex := g.Texture()
	if tex == nil || tex.Handle.ID == 0 {
		return
	}
	r.quads = WorldQuads(g, r.quads)

	// Both faces, so the map stays visible from behind.
	rl.DisableBackfaceCulling()
	rl.SetTexture(tex.Handle.ID)
	rl.Begin(rl.Quads)
	rl.Color4ub(r.Tint.R, r.Tint.G, r.Tint.B, r.Tint.A)
	for _, q := range r.quads {
		for i := range q.Corners {
			rl.TexCoord2f(q.UVs[i].X, q.UVs[i].Y)
			rl.Vertex3f(q.Corners[i].X, q.Corners[i].Y, q.Corners[i].Z)
		}
	}
	rl.End()
	rl.SetTexture(0)
	rl.EnableBackfaceCulling()
}

// Unload releases every texture and atlas the world's objects reference.
// Grids are disposed first so nothing draws from a dead texture.
func (r *Renderer) Unload(w *World) {
	for _, g := range w.Scene.GameObjects {
		if grid := engine.GetComponent[*tilegrid.Grid](g); grid != nil {
			grid.Dispose()
		}
	}
	w.Assets.Unload()
	r.quads = nil
}
