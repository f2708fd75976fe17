package tilegrid

import (
	"math"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// Cell addresses a grid cell by column and row; row 0 is at local y = -0.5.
type Cell struct {
	Col, Row int
}

// WorldPointToCell maps a world-space pick point onto the grid whose world
// transform is world. The grid spans [-0.5, 0.5] on local X and Y. ok is
// false when the point lands outside; that is a no-op for callers, not an
// error.
func WorldPointToCell(point rl.Vector3, world rl.Matrix, stage StageSize) (cell Cell, ok bool) {
	local := rl.Vector3Transform(point, rl.MatrixInvert(world))
	return LocalPointToCell(local, stage)
}

func LocalPointToCell(local rl.Vector3, stage StageSize) (cell Cell, ok bool) {
	if stage.Cols < 1 || stage.Rows < 1 {
		return Cell{}, false
	}
	xn := float64(local.X) + 0.5
	yn := float64(local.Y) + 0.5
	// written so NaN fails too
	if !(xn >= 0 && xn < 1 && yn >= 0 && yn < 1) {
		return Cell{}, false
	}
	cell = Cell{
		Col: int(math.Floor(xn * float64(stage.Cols))),
		Row: int(math.Floor(yn * float64(stage.Rows))),
	}
	if cell.Col >= stage.Cols || cell.Row >= stage.Rows {
		return Cell{}, false
	}
	return cell, true
}

// CellToFlatIndex is col + row*cols. The cell must be inside the grid.
func CellToFlatIndex(col, row, cols int) int {
	return col + row*cols
}

func FlatIndexToCell(index, cols int) Cell {
	return Cell{Col: index % cols, Row: index / cols}
}

// Contains reports whether c lies inside the grid.
func (s StageSize) Contains(c Cell) bool {
	return c.Col >= 0 && c.Col < s.Cols && c.Row >= 0 && c.Row < s.Rows
}

// CellBounds is the local-space rectangle covered by c.
func CellBounds(c Cell, stage StageSize) (x0, y0, x1, y1 float32) {
	cols, rows := float32(stage.Cols), float32(stage.Rows)
	x0 = -0.5 + float32(c.Col)/cols
	x1 = -0.5 + float32(c.Col+1)/cols
	y0 = -0.5 + float32(c.Row)/rows
	y1 = -0.5 + float32(c.Row+1)/rows
	return x0, y0, x1, y1
}

// CellCenter is the local-space midpoint of c.
func CellCenter(c Cell, stage StageSize) rl.Vector3 {
	x0, y0, x1, y1 := CellBounds(c, stage)
	return rl.Vector3{X: (x0 + x1) / 2, Y: (y0 + y1) / 2}
}
