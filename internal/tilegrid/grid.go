package tilegrid

import (
	"fmt"

	"spritemap/internal/assets"
	"spritemap/internal/atlas"
	"spritemap/internal/engine"
	"spritemap/internal/errs"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// Source records where the atlas and sheet were loaded from. A grid without
// a Source cannot be written to a scene file.
type Source struct {
	AtlasPath   string
	TexturePath string
}

// TileChange is published after a cell's tile is replaced.
type TileChange struct {
	Grid     *Grid
	Cell     int
	Previous int
	Tile     int
}

// Grid is a live sprite map attached to the GameObject that renders it.
type Grid struct {
	engine.BaseComponent

	Name   string
	Source *Source

	TileChanged engine.EventWithArg[TileChange]

	atlas    *atlas.Descriptor
	texture  *assets.Texture
	cfg      Config
	tiles    []int
	disposed bool
}

// New builds a grid with every cell set to cfg.BaseTile. texture may be nil
// when nothing will be drawn.
func New(name string, a *atlas.Descriptor, texture *assets.Texture, cfg Config) (*Grid, error) {
	if a == nil {
		return nil, errs.Precondition("tilegrid.New", "nil atlas")
	}
	if err := cfg.Validate(a.Len()); err != nil {
		return nil, err
	}
	tiles := make([]int, cfg.StageSize.Cells())
	for i := range tiles {
		tiles[i] = cfg.BaseTile
	}
	return &Grid{
		Name:    name,
		atlas:   a,
		texture: texture,
		cfg:     cfg,
		tiles:   tiles,
	}, nil
}

func (g *Grid) Atlas() *atlas.Descriptor { return g.atlas }
func (g *Grid) Texture() *assets.Texture { return g.texture }
func (g *Grid) Options() Config          { return g.cfg }
func (g *Grid) Sprites() []atlas.Frame   { return g.atlas.Frames }
func (g *Grid) Disposed() bool           { return g.disposed }

// Tile returns the atlas index shown in cell.
func (g *Grid) Tile(cell int) int {
	return g.tiles[cell]
}

// Tiles returns a copy of the per-cell assignment in flat-index order.
func (g *Grid) Tiles() []int {
	return append([]int(nil), g.tiles...)
}

// TileIndexByName maps an atlas frame filename to its tile index.
func (g *Grid) TileIndexByName(filename string) (int, bool) {
	return g.atlas.IndexByName(filename)
}

// ChangeTile shows atlas frame tile in the cell at flat index cell.
func (g *Grid) ChangeTile(cell, tile int) error {
	if g.disposed {
		return errs.Precondition("ChangeTile", "grid disposed")
	}
	if cell < 0 || cell >= len(g.tiles) {
		return errs.Precondition("ChangeTile", fmt.Sprintf("cell %d outside %v grid", cell, g.cfg.StageSize))
	}
	if tile < 0 || tile >= g.atlas.Len() {
		return errs.Precondition("ChangeTile", fmt.Sprintf("tile %d not in atlas of %d", tile, g.atlas.Len()))
	}
	prev := g.tiles[cell]
	if prev == tile {
		return nil
	}
	g.tiles[cell] = tile
	g.TileChanged.Invoke(TileChange{Grid: g, Cell: cell, Previous: prev, Tile: tile})
	return nil
}

// SetTiles replaces the whole assignment, e.g. when loading a scene.
func (g *Grid) SetTiles(tiles []int) error {
	if len(tiles) != len(g.tiles) {
		return errs.Invalid("sprite map tiles", "", fmt.Sprintf("have %d cells, want %d", len(tiles), len(g.tiles)))
	}
	for i, t := range tiles {
		if t < 0 || t >= g.atlas.Len() {
			return errs.Invalid("sprite map tiles", fmt.Sprintf("tiles.%d", i), fmt.Sprintf("tile %d not in atlas", t))
		}
	}
	copy(g.tiles, tiles)
	return nil
}

// Fill sets every cell to tile.
func (g *Grid) Fill(tile int) error {
	for i := range g.tiles {
		if err := g.ChangeTile(i, tile); err != nil {
			return err
		}
	}
	return nil
}

func (g *Grid) SetFlipU(flip bool) {
	g.cfg.FlipU = flip
}

// SetOutput moves and resizes the grid plane without rebuilding it.
func (g *Grid) SetOutput(size rl.Vector2, pos rl.Vector3) error {
	cfg := g.cfg
	cfg.OutputSize = size
	cfg.OutputPosition = pos
	if err := cfg.Validate(g.atlas.Len()); err != nil {
		return err
	}
	g.cfg = cfg
	return nil
}

// Resize replaces g with a grid of a different stage size sharing the same
// atlas and texture. Tiles in the overlapping region carry over. If g is
// attached, the replacement takes its place on the owner and g is disposed.
func (g *Grid) Resize(stage StageSize) (*Grid, error) {
	if g.disposed {
		return nil, errs.Precondition("Resize", "grid disposed")
	}
	cfg := g.cfg
	cfg.StageSize = stage
	next, err := New(g.Name, g.atlas, g.texture, cfg)
	if err != nil {
		return nil, err
	}
	next.Source = g.Source

	old := g.cfg.StageSize
	for row := 0; row < min(old.Rows, stage.Rows); row++ {
		for col := 0; col < min(old.Cols, stage.Cols); col++ {
			next.tiles[CellToFlatIndex(col, row, stage.Cols)] = g.tiles[CellToFlatIndex(col, row, old.Cols)]
		}
	}

	g.Replace(next)
	return next, nil
}

// Replace swaps g for next on g's owner and disposes g. Undo uses it to put
// a previous instance back.
func (g *Grid) Replace(next *Grid) {
	if owner := g.GetGameObject(); owner != nil {
		owner.RemoveComponent(g)
		owner.AddComponent(next)
		return
	}
	g.Dispose()
}

// Revive makes a disposed grid usable again. Grids own no GPU resources of
// their own, so an instance kept on the undo stack can be reattached.
func (g *Grid) Revive() {
	g.disposed = false
}

// Dispose detaches listeners. The texture belongs to the asset manager.
func (g *Grid) Dispose() {
	if g.disposed {
		return
	}
	g.disposed = true
	g.TileChanged.RemoveAllListeners()
}

// LocalMatrix places the unit grid plane inside its owner: scaled to the
// output size, then moved to the output position.
func (g *Grid) LocalMatrix() rl.Matrix {
	scale := rl.MatrixScale(g.cfg.OutputSize.X, g.cfg.OutputSize.Y, 1)
	pos := g.cfg.OutputPosition
	return rl.MatrixMultiply(scale, rl.MatrixTranslate(pos.X, pos.Y, pos.Z))
}

// WorldMatrix maps grid-local space, where the plane spans [-0.5, 0.5], to
// world space.
func (g *Grid) WorldMatrix() rl.Matrix {
	if owner := g.GetGameObject(); owner != nil {
		return rl.MatrixMultiply(g.LocalMatrix(), owner.WorldMatrix())
	}
	return g.LocalMatrix()
}

// CellAt resolves a world-space pick point to a flat cell index.
func (g *Grid) CellAt(point rl.Vector3) (int, bool) {
	cell, ok := WorldPointToCell(point, g.WorldMatrix(), g.cfg.StageSize)
	if !ok {
		return 0, false
	}
	return CellToFlatIndex(cell.Col, cell.Row, g.cfg.StageSize.Cols), true
}

// SourceRect is the sheet rectangle for tile, mirrored when FlipU is set.
func (g *Grid) SourceRect(tile int) rl.Rectangle {
	f := g.atlas.Frames[tile].Frame
	r := rl.Rectangle{X: f.X, Y: f.Y, Width: f.W, Height: f.H}
	if g.cfg.FlipU {
		r.Width = -r.Width
	}
	return r
}
