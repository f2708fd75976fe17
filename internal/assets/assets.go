// Package assets caches textures and atlases by path so every grid sharing a
// sheet shares one GPU texture.
package assets

import (
	"fmt"
	"os"
	"path/filepath"

	"spritemap/internal/atlas"
	"spritemap/internal/errs"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// Texture is a loaded sheet. Path is the path it was requested with, which is
// also what gets written back to scene files.
type Texture struct {
	Path   string
	Handle rl.Texture2D
}

func (t *Texture) Width() float32  { return float32(t.Handle.Width) }
func (t *Texture) Height() float32 { return float32(t.Handle.Height) }

// TextureLoader creates GPU textures. The editor uses RaylibLoader; tests
// substitute their own.
type TextureLoader interface {
	LoadTexture(path string) (rl.Texture2D, error)
	UnloadTexture(tex rl.Texture2D)
}

// RaylibLoader needs an open window: raylib textures live on the GL thread.
type RaylibLoader struct{}

func (RaylibLoader) LoadTexture(path string) (rl.Texture2D, error) {
	if _, err := os.Stat(path); err != nil {
		return rl.Texture2D{}, err
	}
	tex := rl.LoadTexture(path)
	if tex.ID == 0 {
		return rl.Texture2D{}, fmt.Errorf("raylib could not decode %s", filepath.Base(path))
	}
	rl.SetTextureFilter(tex, rl.FilterPoint)
	return tex, nil
}

func (RaylibLoader) UnloadTexture(tex rl.Texture2D) {
	rl.UnloadTexture(tex)
}

type Manager struct {
	// Root resolves relative paths; normally the directory of the scene file.
	Root string

	loader   TextureLoader
	textures map[string]*Texture
	atlases  map[string]*atlas.Descriptor
}

func NewManager(root string, loader TextureLoader) *Manager {
	return &Manager{
		Root:     root,
		loader:   loader,
		textures: make(map[string]*Texture),
		atlases:  make(map[string]*atlas.Descriptor),
	}
}

// Resolve turns a stored path into a filesystem path.
func (m *Manager) Resolve(path string) string {
	if filepath.IsAbs(path) || m.Root == "" {
		return path
	}
	return filepath.Join(m.Root, path)
}

// Relative is the inverse of Resolve, used when a user picks a file in a
// dialog and the path is about to be persisted.
func (m *Manager) Relative(path string) string {
	if m.Root == "" || !filepath.IsAbs(path) {
		return filepath.ToSlash(path)
	}
	rel, err := filepath.Rel(m.Root, path)
	if err != nil {
		return filepath.ToSlash(path)
	}
	return filepath.ToSlash(rel)
}

func (m *Manager) LoadTexture(path string) (*Texture, error) {
	if tex, exists := m.textures[path]; exists {
		return tex, nil
	}

	handle, err := m.loader.LoadTexture(m.Resolve(path))
	if err != nil {
		return nil, &errs.IOError{Path: path, Err: err}
	}
	tex := &Texture{Path: path, Handle: handle}
	m.textures[path] = tex
	return tex, nil
}

// LoadAtlas reads and validates an atlas manifest, caching the result.
func (m *Manager) LoadAtlas(path string) (*atlas.Descriptor, error) {
	if d, exists := m.atlases[path]; exists {
		return d, nil
	}

	d, err := atlas.Load(m.Resolve(path))
	if err != nil {
		return nil, err
	}
	m.atlases[path] = d
	return d, nil
}

// TextureCount is the number of distinct textures resident.
func (m *Manager) TextureCount() int {
	return len(m.textures)
}

func (m *Manager) Unload() {
	for _, tex := range m.textures {
		m.loader.UnloadTexture(tex.Handle)
	}

	m.textures = make(map[string]*Texture)
	m.atlases = make(map[string]*atlas.Descriptor)
}
