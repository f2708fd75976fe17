package game

import (
	"errors"
	"path/filepath"
	"strings"

	"spritemap/internal/atlas"
	"spritemap/internal/errs"

	"github.com/sqweek/dialog"
)

func (g *Game) openSceneDialog() {
	filename, err := dialog.File().
		Filter("Scene Files", "json").
		Title("Open Scene").
		Load()
	if err != nil || filename == "" {
		return
	}
	g.openScene(filename)
}

// openScene loads path into the world. Failed sprite maps are reported but
// do not stop the rest of the scene from loading.
func (g *Game) openScene(path string) {
	report, err := g.World.LoadScene(path)
	g.Session.Reset()
	if err != nil {
		g.toastErr("Open failed: %v", err)
		return
	}
	g.scenePath = path
	g.setDirty(false)
	if len(report.Failed) > 0 {
		g.toastErr("Opened %s: %d sprite map(s) failed to load", filepath.Base(path), len(report.Failed))
		return
	}
	g.toast("Opened " + filepath.Base(path))
}

// saveScene writes to the current path, asking for one when there is none
// or when saveAs is set.
func (g *Game) saveScene(saveAs bool) {
	path := g.scenePath
	if path == "" || saveAs {
		filename, err := dialog.File().
			Filter("Scene Files", "json").
			Title("Save Scene").
			Save()
		if err != nil || filename == "" {
			return
		}
		path = ensureExt(filename, ".json")
	}
	if err := g.World.SaveScene(path); err != nil {
		g.toastErr("Save failed: %v", err)
		return
	}
	g.scenePath = path
	g.setDirty(false)
	g.toast("Scene saved!")
}

// importDialog asks for an atlas, finds its sheet image and adds a new
// sprite map. Paths are stored relative to the asset root.
func (g *Game) importDialog() {
	atlasFile, err := dialog.File().
		Filter("Atlas Files", "json").
		Title("Import Sprite Atlas").
		Load()
	if err != nil || atlasFile == "" {
		return
	}
	g.importAtlas(atlasFile)
}

func (g *Game) importAtlas(atlasFile string) {
	desc, err := atlas.Load(atlasFile)
	if err != nil {
		g.reportLoadError("Import", err)
		return
	}
	textureFile, ok := sheetFor(atlasFile, desc)
	if !ok {
		textureFile, err = dialog.File().
			Filter("Images", "png", "jpg", "bmp", "tga").
			Title("Select Sprite Sheet").
			Load()
		if err != nil || textureFile == "" {
			return
		}
	}

	mgr := g.World.Assets
	if _, err := g.Session.Import(mgr, mgr.Relative(atlasFile), mgr.Relative(textureFile)); err != nil {
		g.reportLoadError("Import", err)
	}
}

// reportLoadError picks a message by error kind; the previous state is
// untouched either way.
func (g *Game) reportLoadError(op string, err error) {
	var verr *errs.ValidationError
	var ioErr *errs.IOError
	switch {
	case errors.As(err, &verr):
		g.toastErr("%s: not a valid atlas (%s)", op, verr.Reason)
	case errors.As(err, &ioErr):
		g.toastErr("%s: cannot read %s", op, filepath.Base(ioErr.Path))
	default:
		g.toastErr("%s: %v", op, err)
	}
}

// sheetFor locates the image an atlas describes, next to the atlas file.
func sheetFor(atlasFile string, desc *atlas.Descriptor) (string, bool) {
	if desc.Meta == nil || desc.Meta.Image == "" {
		return "", false
	}
	image := filepath.FromSlash(desc.Meta.Image)
	if filepath.IsAbs(image) {
		return image, true
	}
	return filepath.Join(filepath.Dir(atlasFile), image), true
}

func ensureExt(path, ext string) string {
	if strings.EqualFold(filepath.Ext(path), ext) {
		return path
	}
	return path + ext
}
