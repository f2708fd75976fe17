package tilegrid

import rl "github.com/gen2brain/raylib-go/raylib"

// Quad is one cell's geometry in grid-local space with sheet UVs, corners in
// counter-clockwise order starting bottom-left.
type Quad struct {
	Corners [4]rl.Vector3
	UVs     [4]rl.Vector2
}

// sheetSize prefers the loaded texture's real size over the manifest's.
func (g *Grid) sheetSize() (w, h float32) {
	if g.texture != nil && g.texture.Handle.Width > 0 && g.texture.Handle.Height > 0 {
		return g.texture.Width(), g.texture.Height()
	}
	s := g.atlas.SheetSize()
	return s.W, s.H
}

// CellQuad builds the textured quad for the cell at flat index cell.
func (g *Grid) CellQuad(cell int) Quad {
	stage := g.cfg.StageSize
	x0, y0, x1, y1 := CellBounds(FlatIndexToCell(cell, stage.Cols), stage)

	w, h := g.sheetSize()
	f := g.atlas.Frames[g.tiles[cell]].Frame
	u0, u1 := f.X/w, (f.X+f.W)/w
	v0, v1 := f.Y/h, (f.Y+f.H)/h
	if g.cfg.FlipU {
		u0, u1 = u1, u0
	}

	// Image rows grow downward, grid rows grow upward.
	return Quad{
		Corners: [4]rl.Vector3{
			{X: x0, Y: y0},
			{X: x1, Y: y0},
			{X: x1, Y: y1},
			{X: x0, Y: y1},
		},
		UVs: [4]rl.Vector2{
			{X: u0, Y: v1},
			{X: u1, Y: v1},
			{X: u1, Y: v0},
			{X: u0, Y: v0},
		},
	}
}
