// Package atlas reads sprite atlas manifests: one packed image sheet plus a
// JSON list of named frames (the TexturePacker "array" layout).
package atlas

import (
	"fmt"
	"os"
	"strings"

	"spritemap/internal/errs"
)

// Rect is a pixel rectangle inside the sheet.
type Rect struct {
	X float32 `json:"x"`
	Y float32 `json:"y"`
	W float32 `json:"w"`
	H float32 `json:"h"`
}

type Size struct {
	W float32 `json:"w"`
	H float32 `json:"h"`
}

// Frame is one sprite's placement within the sheet.
type Frame struct {
	Filename         string `json:"filename"`
	Frame            Rect   `json:"frame"`
	Rotated          bool   `json:"rotated"`
	Trimmed          bool   `json:"trimmed"`
	SpriteSourceSize Rect   `json:"spriteSourceSize"`
	SourceSize       Size   `json:"sourceSize"`
}

type Meta struct {
	Image string `json:"image"`
	Size  Size   `json:"size"`
}

// Descriptor is a validated atlas. Frames is never empty and filenames are
// unique. Build one with Validate or Load.
type Descriptor struct {
	Frames []Frame `json:"frames"`
	Meta   *Meta   `json:"meta,omitempty"`

	byName map[string]int
}

// Load reads and validates the atlas at path.
func Load(path string) (*Descriptor, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &errs.IOError{Path: path, Err: err}
	}
	d, err := Validate(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return d, nil
}

func (d *Descriptor) Len() int {
	return len(d.Frames)
}

// IndexByName returns the atlas index of the frame called name.
func (d *Descriptor) IndexByName(name string) (int, bool) {
	i, ok := d.byName[name]
	return i, ok
}

func (d *Descriptor) Names() []string {
	names := make([]string, len(d.Frames))
	for i, f := range d.Frames {
		names[i] = f.Filename
	}
	return names
}

// Filter returns the indices of frames whose filename contains substr,
// ignoring case. An empty substr matches every frame.
func (d *Descriptor) Filter(substr string) []int {
	needle := strings.ToLower(substr)
	var out []int
	for i, f := range d.Frames {
		if strings.Contains(strings.ToLower(f.Filename), needle) {
			out = append(out, i)
		}
	}
	return out
}

// SheetSize is the meta size when present, otherwise the bounding box of
// all frames.
func (d *Descriptor) SheetSize() Size {
	if d.Meta != nil {
		return d.Meta.Size
	}
	var s Size
	for _, f := range d.Frames {
		s.W = max(s.W, f.Frame.X+f.Frame.W)
		s.H = max(s.H, f.Frame.Y+f.Frame.H)
	}
	return s
}

// Summary is a one-line description for logs and the inspector header.
func (d *Descriptor) Summary() string {
	size := d.SheetSize()
	image := "(no image)"
	if d.Meta != nil {
		image = d.Meta.Image
	}
	return fmt.Sprintf("%s: %d tiles, %gx%g", image, len(d.Frames), size.W, size.H)
}

func (d *Descriptor) index() {
	d.byName = make(map[string]int, len(d.Frames))
	for i, f := range d.Frames {
		d.byName[f.Filename] = i
	}
}
