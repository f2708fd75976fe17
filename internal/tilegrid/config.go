// Package tilegrid implements sprite maps: a planar grid of cols x rows cells,
// each showing one frame of a shared atlas.
package tilegrid

import (
	"fmt"

	"spritemap/internal/errs"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// StageSize is the grid resolution in cells.
type StageSize struct {
	Cols, Rows int
}

func (s StageSize) Cells() int {
	return s.Cols * s.Rows
}

func (s StageSize) String() string {
	return fmt.Sprintf("%dx%d", s.Cols, s.Rows)
}

// Config parameterizes one grid. The geometry is derived from StageSize when
// the grid is built, so a new StageSize means a new Grid (see Grid.Resize).
type Config struct {
	StageSize      StageSize
	OutputSize     rl.Vector2 // world units
	OutputPosition rl.Vector3
	BaseTile       int
	FlipU          bool
}

func DefaultConfig() Config {
	return Config{
		StageSize:  StageSize{Cols: 10, Rows: 10},
		OutputSize: rl.Vector2{X: 1, Y: 1},
	}
}

// Validate checks cfg against an atlas holding tileCount frames.
func (c Config) Validate(tileCount int) error {
	const what = "sprite map options"
	if c.StageSize.Cols < 1 || c.StageSize.Rows < 1 {
		return errs.Invalid(what, "stageSize", fmt.Sprintf("%v: both dimensions must be at least 1", c.StageSize))
	}
	if c.OutputSize.X <= 0 || c.OutputSize.Y <= 0 {
		return errs.Invalid(what, "outputSize", "must be positive")
	}
	if c.BaseTile < 0 || c.BaseTile >= tileCount {
		return errs.Invalid(what, "baseTile", fmt.Sprintf("%d not in atlas of %d tiles", c.BaseTile, tileCount))
	}
	return nil
}
