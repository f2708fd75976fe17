package tilegrid

import (
	"spritemap/internal/engine"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// HighlightZ lifts the cell outline off the grid plane so the two do not
// z-fight.
const HighlightZ float32 = 0.02

// Segment is a line in grid-local space.
type Segment struct {
	Start, End rl.Vector3
}

// BuildGridLines returns cols+1 vertical and rows+1 horizontal segments
// covering the unit plane.
func BuildGridLines(stage StageSize) []Segment {
	if stage.Cols < 1 || stage.Rows < 1 {
		return nil
	}
	lines := make([]Segment, 0, stage.Cols+stage.Rows+2)
	for i := 0; i <= stage.Cols; i++ {
		x := -0.5 + float32(i)/float32(stage.Cols)
		lines = append(lines, Segment{
			Start: rl.Vector3{X: x, Y: -0.5},
			End:   rl.Vector3{X: x, Y: 0.5},
		})
	}
	for i := 0; i <= stage.Rows; i++ {
		y := -0.5 + float32(i)/float32(stage.Rows)
		lines = append(lines, Segment{
			Start: rl.Vector3{X: -0.5, Y: y},
			End:   rl.Vector3{X: 0.5, Y: y},
		})
	}
	return lines
}

// BuildCellOutline returns the closed rectangle around one cell.
func BuildCellOutline(col, row, cols, rows int) [4]Segment {
	x0, y0, x1, y1 := CellBounds(Cell{Col: col, Row: row}, StageSize{Cols: cols, Rows: rows})
	a := rl.Vector3{X: x0, Y: y0, Z: HighlightZ}
	b := rl.Vector3{X: x1, Y: y0, Z: HighlightZ}
	c := rl.Vector3{X: x1, Y: y1, Z: HighlightZ}
	d := rl.Vector3{X: x0, Y: y1, Z: HighlightZ}
	return [4]Segment{{a, b}, {b, c}, {c, d}, {d, a}}
}

// Overlay holds the grid lines and hovered-cell outline of one viewport.
// There is at most one of each; building a new one always drops the old.
type Overlay struct {
	GridColor      rl.Color
	HighlightColor rl.Color

	owner     *engine.GameObject
	bound     *Grid  // owner's grid when shown
	unhook    func() // stops following bound's edits
	stage     StageSize
	grid      []Segment
	highlight []Segment
	cell      Cell
}

func NewOverlay() *Overlay {
	return &Overlay{
		GridColor:      rl.NewColor(0, 255, 0, 128),
		HighlightColor: rl.Yellow,
	}
}

// Owner is the object whose grid is shown, or nil.
func (o *Overlay) Owner() *engine.GameObject { return o.owner }

func (o *Overlay) Visible() bool { return o.owner != nil }

// Lines returns the current geometry, for drawing and inspection.
func (o *Overlay) Lines() (grid, highlight []Segment) {
	return o.grid, o.highlight
}

// HighlightedCell is the outlined cell, if any.
func (o *Overlay) HighlightedCell() (Cell, bool) {
	return o.cell, o.highlight != nil
}

// ShowGrid replaces any current overlay with one for owner. It does nothing
// and returns false when owner carries no grid.
func (o *Overlay) ShowGrid(owner *engine.GameObject) bool {
	o.HideGrid()
	g := engine.GetComponent[*Grid](owner)
	if g == nil {
		return false
	}
	o.owner = owner
	o.bound = g
	o.unhook = g.TileChanged.Listen(o.onTileChanged)
	o.stage = g.Options().StageSize
	o.grid = BuildGridLines(o.stage)
	return true
}

// onTileChanged moves the outline to a cell that was just rewritten, so an
// edit made without the pointer (undo, redo, fill) shows where it landed.
func (o *Overlay) onTileChanged(c TileChange) {
	if c.Grid != o.bound {
		return
	}
	o.Highlight(FlatIndexToCell(c.Cell, o.stage.Cols))
}

// HideGrid drops the grid and the highlight.
func (o *Overlay) HideGrid() {
	o.ClearHighlight()
	if o.unhook != nil {
		o.unhook()
		o.unhook = nil
	}
	o.owner = nil
	o.bound = nil
	o.grid = nil
	o.stage = StageSize{}
}

// Toggle shows the grid for owner, or hides it when already shown for owner.
func (o *Overlay) Toggle(owner *engine.GameObject) bool {
	if o.owner == owner && o.owner != nil {
		o.HideGrid()
		return false
	}
	return o.ShowGrid(owner)
}

// Refresh rebuilds after the owner's grid was swapped or changed stage size.
func (o *Overlay) Refresh() {
	if o.owner == nil {
		return
	}
	g := engine.GetComponent[*Grid](o.owner)
	if g == nil {
		o.HideGrid()
		return
	}
	if g != o.bound || g.Options().StageSize != o.stage {
		o.ShowGrid(o.owner)
	}
}

// Highlight outlines cell on the shown grid.
func (o *Overlay) Highlight(cell Cell) bool {
	o.ClearHighlight()
	if o.owner == nil || !o.stage.Contains(cell) {
		return false
	}
	outline := BuildCellOutline(cell.Col, cell.Row, o.stage.Cols, o.stage.Rows)
	o.highlight = outline[:]
	o.cell = cell
	return true
}

// HighlightAt outlines the cell under a world-space point, clearing the
// outline when the point misses the grid.
func (o *Overlay) HighlightAt(point rl.Vector3) bool {
	g := engine.GetComponent[*Grid](o.owner)
	if g == nil {
		o.ClearHighlight()
		return false
	}
	cell, ok := WorldPointToCell(point, g.WorldMatrix(), o.stage)
	if !ok {
		o.ClearHighlight()
		return false
	}
	return o.Highlight(cell)
}

func (o *Overlay) ClearHighlight() {
	o.highlight = nil
	o.cell = Cell{}
}

// Draw renders the overlay in world space. Call between BeginMode3D and
// EndMode3D.
func (o *Overlay) Draw() {
	g := engine.GetComponent[*Grid](o.owner)
	if g == nil {
		return
	}
	world := g.WorldMatrix()
	for _, s := range o.grid {
		rl.DrawLine3D(rl.Vector3Transform(s.Start, world), rl.Vector3Transform(s.End, world), o.GridColor)
	}
	for _, s := range o.highlight {
		rl.DrawLine3D(rl.Vector3Transform(s.Start, world), rl.Vector3Transform(s.End, world), o.HighlightColor)
	}
}
