package world

import (
	"fmt"

	"spritemap/internal/assets"
	"spritemap/internal/atlas"
	"spritemap/internal/engine"
	"spritemap/internal/errs"
	"spritemap/internal/tilegrid"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// SpriteMapMeshType tags sprite map records. It is the only record schema
// this editor reads or writes.
const SpriteMapMeshType = "SpriteMapMesh"

// SpriteMapRecord is how one sprite map is stored in the scene metadata.
type SpriteMapRecord struct {
	ID          string            `json:"id"`
	Name        string            `json:"name"`
	Type        string            `json:"type"`
	AtlasPath   string            `json:"atlasPath"`
	TexturePath string            `json:"texturePath"`
	Options     *SpriteMapOptions `json:"options"`
	Tiles       []int             `json:"tiles,omitempty"`
}

// SpriteMapOptions is tilegrid.Config flattened to plain arrays.
type SpriteMapOptions struct {
	StageSize      [2]int     `json:"stageSize"`
	FlipU          bool       `json:"flipU"`
	BaseTile       int        `json:"baseTile"`
	OutputSize     [2]float32 `json:"outputSize"`
	OutputPosition [3]float32 `json:"outputPosition"`
}

func optionsFromConfig(c tilegrid.Config) *SpriteMapOptions {
	return &SpriteMapOptions{
		StageSize:      [2]int{c.StageSize.Cols, c.StageSize.Rows},
		FlipU:          c.FlipU,
		BaseTile:       c.BaseTile,
		OutputSize:     [2]float32{c.OutputSize.X, c.OutputSize.Y},
		OutputPosition: [3]float32{c.OutputPosition.X, c.OutputPosition.Y, c.OutputPosition.Z},
	}
}

func (o *SpriteMapOptions) config() tilegrid.Config {
	c := tilegrid.Config{
		StageSize:      tilegrid.StageSize{Cols: o.StageSize[0], Rows: o.StageSize[1]},
		FlipU:          o.FlipU,
		BaseTile:       o.BaseTile,
		OutputSize:     rl.Vector2{X: o.OutputSize[0], Y: o.OutputSize[1]},
		OutputPosition: rl.Vector3{X: o.OutputPosition[0], Y: o.OutputPosition[1], Z: o.OutputPosition[2]},
	}
	// Older files leave outputSize out; the engine default is a unit plane.
	if o.OutputSize == [2]float32{} {
		c.OutputSize = rl.Vector2{X: 1, Y: 1}
	}
	return c
}

// SerializeSpriteMap flattens the grid on obj into a record. A sprite map
// object without a grid, without source paths, or without the sprite map
// kind is a broken invariant and fails with *errs.PreconditionError.
func SerializeSpriteMap(obj *engine.GameObject) (SpriteMapRecord, error) {
	const op = "serialize sprite map"
	if obj == nil {
		return SpriteMapRecord{}, errs.Precondition(op, "nil object")
	}
	g := engine.GetComponent[*tilegrid.Grid](obj)
	if g == nil {
		return SpriteMapRecord{}, errs.Precondition(op, fmt.Sprintf("object %s has no sprite map", obj.ID))
	}
	if g.Source == nil {
		return SpriteMapRecord{}, errs.Precondition(op, fmt.Sprintf("object %s: sprite map has no source paths", obj.ID))
	}
	if obj.Kind != engine.KindSpriteMapMesh {
		return SpriteMapRecord{}, errs.Precondition(op, fmt.Sprintf("object %s has kind %v", obj.ID, obj.Kind))
	}

	rec := SpriteMapRecord{
		ID:          obj.ID,
		Name:        g.Name,
		Type:        SpriteMapMeshType,
		AtlasPath:   g.Source.AtlasPath,
		TexturePath: g.Source.TexturePath,
		Options:     optionsFromConfig(g.Options()),
	}
	base := g.Options().BaseTile
	for _, t := range g.Tiles() {
		if t != base {
			rec.Tiles = g.Tiles()
			break
		}
	}
	return rec, nil
}

// Resources loads what a record points at. *assets.Manager implements it.
type Resources interface {
	LoadAtlas(path string) (*atlas.Descriptor, error)
	LoadTexture(path string) (*assets.Texture, error)
}

// DeserializeSpriteMap rebuilds the grid described by rec and attaches it to
// the scene object with rec.ID, creating the object if the scene lacks it.
// Any grid already on that object is replaced.
func DeserializeSpriteMap(scene *engine.Scene, rec SpriteMapRecord, res Resources) (*engine.GameObject, error) {
	const what = "sprite map record"
	switch {
	case rec.Type != SpriteMapMeshType:
		return nil, errs.Invalid(what, "type", fmt.Sprintf("%q, want %q", rec.Type, SpriteMapMeshType))
	case rec.AtlasPath == "":
		return nil, errs.Invalid(what, "atlasPath", "missing")
	case rec.TexturePath == "":
		return nil, errs.Invalid(what, "texturePath", "missing")
	case rec.Options == nil:
		return nil, errs.Invalid(what, "options", "missing")
	}

	a, err := res.LoadAtlas(rec.AtlasPath)
	if err != nil {
		return nil, fmt.Errorf("sprite map %s: %w", rec.ID, err)
	}
	tex, err := res.LoadTexture(rec.TexturePath)
	if err != nil {
		return nil, fmt.Errorf("sprite map %s: %w", rec.ID, err)
	}

	name := rec.Name
	if name == "" {
		name = "SpriteMap"
	}
	g, err := tilegrid.New(name, a, tex, rec.Options.config())
	if err != nil {
		return nil, fmt.Errorf("sprite map %s: %w", rec.ID, err)
	}
	g.Source = &tilegrid.Source{AtlasPath: rec.AtlasPath, TexturePath: rec.TexturePath}
	if rec.Tiles != nil {
		if err := g.SetTiles(rec.Tiles); err != nil {
			return nil, fmt.Errorf("sprite map %s: %w", rec.ID, err)
		}
	}

	obj := scene.FindByID(rec.ID)
	if obj == nil {
		id := rec.ID
		if id == "" {
			id = engine.NewID()
		}
		obj = engine.NewGameObjectWithID(id, name)
		scene.AddGameObject(obj)
	}
	if old := engine.GetComponent[*tilegrid.Grid](obj); old != nil {
		obj.RemoveComponent(old)
	}
	if rec.Name != "" {
		obj.Name = rec.Name
	}
	obj.Kind = engine.KindSpriteMapMesh
	obj.AddComponent(g)
	return obj, nil
}
