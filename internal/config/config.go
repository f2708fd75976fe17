// Package config loads and saves the editor's ini settings file.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"

	rl "github.com/gen2brain/raylib-go/raylib"
	"gopkg.in/ini.v1"
)

const DefaultFile = "spritemap.ini"

type Config struct {
	WindowWidth  int
	WindowHeight int
	TargetFPS    int

	UndoDepth int
	AssetDir  string
	LastScene string
	ShowGrid  bool

	CameraSpeed float32

	GridColor      rl.Color
	HighlightColor rl.Color
}

func Default() Config {
	return Config{
		WindowWidth:    1600,
		WindowHeight:   900,
		TargetFPS:      60,
		UndoDepth:      50,
		AssetDir:       ".",
		ShowGrid:       true,
		CameraSpeed:    8,
		GridColor:      rl.NewColor(255, 255, 255, 160),
		HighlightColor: rl.NewColor(255, 200, 0, 255),
	}
}

var loadOptions = ini.LoadOptions{
	InsensitiveSections:     true,
	SkipUnrecognizableLines: true,
}

// Load reads path over the defaults. A missing file is not an error.
// Keys that fail to parse keep their default.
func Load(path string) (Config, error) {
	cfg := Default()
	if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
		return cfg, nil
	}

	f, err := ini.LoadSources(loadOptions, path)
	if err != nil {
		return cfg, fmt.Errorf("load config %s: %w", path, err)
	}

	win := f.Section("window")
	cfg.WindowWidth = win.Key("width").MustInt(cfg.WindowWidth)
	cfg.WindowHeight = win.Key("height").MustInt(cfg.WindowHeight)
	cfg.TargetFPS = win.Key("fps").MustInt(cfg.TargetFPS)

	ed := f.Section("editor")
	cfg.UndoDepth = ed.Key("undo_depth").MustInt(cfg.UndoDepth)
	cfg.AssetDir = ed.Key("asset_dir").MustString(cfg.AssetDir)
	cfg.LastScene = ed.Key("last_scene").MustString(cfg.LastScene)
	cfg.ShowGrid = ed.Key("show_grid").MustBool(cfg.ShowGrid)
	cfg.CameraSpeed = float32(ed.Key("camera_speed").MustFloat64(float64(cfg.CameraSpeed)))

	colors := f.Section("colors")
	cfg.GridColor = parseColor(colors.Key("grid").String(), cfg.GridColor)
	cfg.HighlightColor = parseColor(colors.Key("highlight").String(), cfg.HighlightColor)

	if cfg.UndoDepth < 1 {
		cfg.UndoDepth = 1
	}
	return cfg, nil
}

func Save(path string, cfg Config) error {
	f := ini.Empty()

	win := f.Section("window")
	win.Key("width").SetValue(strconv.Itoa(cfg.WindowWidth))
	win.Key("height").SetValue(strconv.Itoa(cfg.WindowHeight))
	win.Key("fps").SetValue(strconv.Itoa(cfg.TargetFPS))

	ed := f.Section("editor")
	ed.Key("undo_depth").SetValue(strconv.Itoa(cfg.UndoDepth))
	ed.Key("asset_dir").SetValue(cfg.AssetDir)
	ed.Key("last_scene").SetValue(cfg.LastScene)
	ed.Key("show_grid").SetValue(strconv.FormatBool(cfg.ShowGrid))
	ed.Key("camera_speed").SetValue(strconv.FormatFloat(float64(cfg.CameraSpeed), 'g', -1, 32))

	colors := f.Section("colors")
	colors.Key("grid").SetValue(formatColor(cfg.GridColor))
	colors.Key("highlight").SetValue(formatColor(cfg.HighlightColor))

	if err := f.SaveTo(path); err != nil {
		return fmt.Errorf("save config %s: %w", path, err)
	}
	return nil
}

// parseColor reads "r,g,b" or "r,g,b,a".
func parseColor(s string, def rl.Color) rl.Color {
	parts := strings.Split(s, ",")
	if len(parts) != 3 && len(parts) != 4 {
		return def
	}
	var c [4]uint8
	c[3] = 255
	for i, p := range parts {
		v, err := strconv.ParseUint(strings.TrimSpace(p), 10, 8)
		if err != nil {
			return def
		}
		c[i] = uint8(v)
	}
	return rl.NewColor(c[0], c[1], c[2], c[3])
}

func formatColor(c rl.Color) string {
	return fmt.Sprintf("%d,%d,%d,%d", c.R, c.G, c.B, c.A)
}
