package world

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"spritemap/internal/engine"
	"spritemap/internal/tilegrid"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"
)

// spriteMapsKey is where sprite map records live inside the scene metadata.
const spriteMapsKey = "spriteMaps"

// --- JSON types ---

type SceneFile struct {
	Objects  []ObjectDef     `json:"objects"`
	Metadata json.RawMessage `json:"metadata,omitempty"`
}

type ObjectDef struct {
	ID       string     `json:"id"`
	Name     string     `json:"name"`
	Kind     string     `json:"kind,omitempty"`
	Parent   string     `json:"parent,omitempty"`
	Tags     []string   `json:"tags,omitempty"`
	Position [3]float32 `json:"position"`
	Rotation [3]float32 `json:"rotation"`
	Scale    [3]float32 `json:"scale"`
	Hidden   bool       `json:"hidden,omitempty"`
}

var kindByName = map[string]engine.Kind{
	"Node":            engine.KindNode,
	SpriteMapMeshType: engine.KindSpriteMapMesh,
}

// LoadReport lists what LoadScene managed and what it skipped.
type LoadReport struct {
	Objects    int
	SpriteMaps int
	Failed     []error
}

// --- Loading ---

// LoadScene replaces the contents of w with a scene file. A sprite map
// record that cannot be restored is reported in LoadReport.Failed and its
// object stays in the scene without a grid. The record itself is kept so the
// next save writes it back, including records with no usable id.
func (w *World) LoadScene(path string) (*LoadReport, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read scene: %w", err)
	}

	var sf SceneFile
	if err := json.Unmarshal(data, &sf); err != nil {
		return nil, fmt.Errorf("parse scene: %w", err)
	}

	w.Clear()
	if root := filepath.Dir(path); w.Assets.Root != root {
		w.Assets.Unload()
		w.Assets.Root = root
	}

	report := &LoadReport{}
	type link struct {
		child    *engine.GameObject
		parentID string
	}
	var links []link
	for _, def := range sf.Objects {
		id := def.ID
		if id == "" {
			id = engine.NewID()
		}
		g := engine.NewGameObjectWithID(id, def.Name)
		g.Kind = kindByName[def.Kind]
		g.Tags = def.Tags
		g.Visible = !def.Hidden
		g.Transform.Position = rl.Vector3{X: def.Position[0], Y: def.Position[1], Z: def.Position[2]}
		g.Transform.Rotation = rl.Vector3{X: def.Rotation[0], Y: def.Rotation[1], Z: def.Rotation[2]}

		// Default scale to 1 if zero
		if def.Scale != [3]float32{} {
			g.Transform.Scale = rl.Vector3{X: def.Scale[0], Y: def.Scale[1], Z: def.Scale[2]}
		}

		if def.Parent != "" {
			links = append(links, link{g, def.Parent})
		}
		w.Scene.AddGameObject(g)
		report.Objects++
	}
	for _, l := range links {
		p := w.Scene.FindByID(l.parentID)
		switch {
		case p == nil:
			log.Printf("Scene: %s references missing parent %s", l.child.ID, l.parentID)
		case !p.AddChild(l.child):
			log.Printf("Scene: %s cannot be parented to %s, it would form a cycle", l.child.ID, l.parentID)
		}
	}

	w.Metadata = sf.Metadata
	records := gjson.GetBytes(sf.Metadata, spriteMapsKey)
	records.ForEach(func(_, value gjson.Result) bool {
		var rec SpriteMapRecord
		if err := json.Unmarshal([]byte(value.Raw), &rec); err != nil {
			log.Printf("Scene: skipping undecodable sprite map record: %v", err)
			report.Failed = append(report.Failed, fmt.Errorf("sprite map record: %w", err))
			w.orphans = append(w.orphans, json.RawMessage(value.Raw))
			return true
		}
		if _, err := DeserializeSpriteMap(w.Scene, rec, w.Assets); err != nil {
			log.Printf("Scene: skipping sprite map %s: %v", rec.ID, err)
			report.Failed = append(report.Failed, err)
			w.keepUnresolved(rec, value.Raw)
			return true
		}
		report.SpriteMaps++
		return true
	})

	return report, nil
}

// --- Saving ---

// SaveScene writes the scene to path. Asset paths in sprite map records are
// rewritten relative to the directory of path, so a scene saved elsewhere
// still finds its atlases when loaded back.
func (w *World) SaveScene(path string) error {
	dir := filepath.Dir(path)
	var sf SceneFile
	var records []json.RawMessage

	for _, g := range w.Scene.GameObjects {
		def := ObjectDef{
			ID:       g.ID,
			Name:     g.Name,
			Tags:     g.Tags,
			Hidden:   !g.Visible,
			Position: [3]float32{g.Transform.Position.X, g.Transform.Position.Y, g.Transform.Position.Z},
			Rotation: [3]float32{g.Transform.Rotation.X, g.Transform.Rotation.Y, g.Transform.Rotation.Z},
			Scale:    [3]float32{g.Transform.Scale.X, g.Transform.Scale.Y, g.Transform.Scale.Z},
		}
		if g.Kind != engine.KindNode {
			def.Kind = g.Kind.String()
		}
		if g.Parent != nil {
			def.Parent = g.Parent.ID
		}
		sf.Objects = append(sf.Objects, def)

		if g.Kind == engine.KindSpriteMapMesh {
			raw, ok, err := w.spriteMapRecord(g, dir)
			if err != nil {
				return fmt.Errorf("save scene: %w", err)
			}
			if ok {
				records = append(records, raw)
			}
		}
	}
	for _, raw := range w.orphans {
		records = append(records, w.rebaseRecord(raw, dir))
	}

	meta, err := w.metadataWith(records)
	if err != nil {
		return fmt.Errorf("save scene: %w", err)
	}
	sf.Metadata = meta

	data, err := json.MarshalIndent(sf, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal scene: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write scene: %w", err)
	}

	w.Metadata = meta
	return nil
}

// metadataWith patches the sprite map records into the current metadata,
// leaving every other key as it was loaded.
func (w *World) metadataWith(records []json.RawMessage) (json.RawMessage, error) {
	meta := []byte(w.Metadata)
	if !gjson.ValidBytes(meta) || !gjson.ParseBytes(meta).IsObject() {
		meta = []byte("{}")
	}
	var err error
	if len(records) == 0 {
		meta, err = sjson.DeleteBytes(meta, spriteMapsKey)
	} else {
		meta, err = sjson.SetRawBytes(meta, spriteMapsKey, joinArray(records))
	}
	if err != nil {
		return nil, err
	}
	return json.RawMessage(meta), nil
}

// spriteMapRecord encodes the record for a sprite map object. An object with
// neither a grid nor a kept record has nothing to save and reports false.
func (w *World) spriteMapRecord(g *engine.GameObject, dir string) (json.RawMessage, bool, error) {
	if engine.GetComponent[*tilegrid.Grid](g) == nil {
		raw, ok := w.unresolved[g.ID]
		if !ok {
			log.Printf("Scene: sprite map %s has no grid, saving it as a plain object", g.ID)
			return nil, false, nil
		}
		return w.rebaseRecord(raw, dir), true, nil
	}
	rec, err := SerializeSpriteMap(g)
	if err != nil {
		return nil, false, err
	}
	rec.AtlasPath = w.rebase(rec.AtlasPath, dir)
	rec.TexturePath = w.rebase(rec.TexturePath, dir)
	raw, err := json.Marshal(rec)
	return raw, err == nil, err
}

// rebase turns a path stored relative to the asset root into one relative
// to dir. Absolute paths are left alone.
func (w *World) rebase(p, dir string) string {
	if p == "" || filepath.IsAbs(filepath.FromSlash(p)) {
		return p
	}
	full, err := filepath.Abs(w.Assets.Resolve(filepath.FromSlash(p)))
	if err != nil {
		return p
	}
	base, err := filepath.Abs(dir)
	if err != nil {
		return p
	}
	rel, err := filepath.Rel(base, full)
	if err != nil {
		return filepath.ToSlash(full)
	}
	return filepath.ToSlash(rel)
}

// rebaseRecord applies rebase to the path fields of a raw record, leaving
// the bytes alone when nothing moves.
func (w *World) rebaseRecord(raw json.RawMessage, dir string) json.RawMessage {
	out := []byte(raw)
	for _, key := range [...]string{"atlasPath", "texturePath"} {
		v := gjson.GetBytes(out, key)
		if v.Type != gjson.String {
			continue
		}
		moved := w.rebase(v.String(), dir)
		if moved == v.String() {
			continue
		}
		if patched, err := sjson.SetBytes(out, key, moved); err == nil {
			out = patched
		}
	}
	return out
}

// keepUnresolved remembers a record that failed to load. Its object is
// created if the scene file did not list it, so the record has an owner.
// A record without an id has no owner and is kept on its own.
func (w *World) keepUnresolved(rec SpriteMapRecord, raw string) {
	if rec.ID == "" {
		w.orphans = append(w.orphans, json.RawMessage(raw))
		return
	}
	obj := w.Scene.FindByID(rec.ID)
	if obj == nil {
		obj = engine.NewGameObjectWithID(rec.ID, rec.Name)
		w.Scene.AddGameObject(obj)
	}
	obj.Kind = engine.KindSpriteMapMesh
	w.unresolved[rec.ID] = json.RawMessage(raw)
}

func joinArray(items []json.RawMessage) []byte {
	out := []byte{'['}
	for i, item := range items {
		if i > 0 {
			out = append(out, ',')
		}
		out = append(out, item...)
	}
	return append(out, ']')
}
