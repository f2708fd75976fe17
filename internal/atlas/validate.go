package atlas

import (
	"fmt"

	"spritemap/internal/errs"

	"github.com/tidwall/gjson"
)

const what = "atlas"

// IsValid reports whether data is an acceptable atlas manifest.
func IsValid(data []byte) bool {
	_, err := Validate(data)
	return err == nil
}

// Validate checks the shape of an untrusted atlas document and decodes it.
// Any problem is reported as an *errs.ValidationError; it never panics.
// Values are taken from the same parse the checks ran on, so a document with
// repeated keys decodes to exactly what was checked.
func Validate(data []byte) (*Descriptor, error) {
	if !gjson.ValidBytes(data) {
		return nil, errs.Invalid(what, "", "not valid JSON")
	}
	root := gjson.ParseBytes(data)
	if !root.IsObject() {
		return nil, errs.Invalid(what, "", "top level must be an object")
	}

	frames := root.Get("frames")
	if !frames.Exists() {
		return nil, errs.Invalid(what, "frames", "missing")
	}
	if !frames.IsArray() {
		return nil, errs.Invalid(what, "frames", "must be an array")
	}
	list := frames.Array()
	if len(list) == 0 {
		return nil, errs.Invalid(what, "frames", "empty")
	}

	var d Descriptor
	if meta := root.Get("meta"); meta.Exists() {
		m, err := checkMeta(meta)
		if err != nil {
			return nil, err
		}
		d.Meta = m
	}

	d.Frames = make([]Frame, 0, len(list))
	for i, f := range list {
		frame, err := checkFrame(f, fmt.Sprintf("frames.%d", i))
		if err != nil {
			return nil, err
		}
		d.Frames = append(d.Frames, frame)
	}

	if err := checkInvariants(&d); err != nil {
		return nil, err
	}
	d.index()
	return &d, nil
}

func checkMeta(meta gjson.Result) (*Meta, error) {
	if !meta.IsObject() {
		return nil, errs.Invalid(what, "meta", "must be an object")
	}
	image := meta.Get("image")
	if image.Type != gjson.String {
		return nil, errs.Invalid(what, "meta.image", "must be a string")
	}
	size, err := checkSize(meta.Get("size"), "meta.size")
	if err != nil {
		return nil, err
	}
	return &Meta{Image: image.String(), Size: size}, nil
}

func checkFrame(f gjson.Result, path string) (Frame, error) {
	var out Frame
	if !f.IsObject() {
		return out, errs.Invalid(what, path, "must be an object")
	}
	name := f.Get("filename")
	if name.Type != gjson.String {
		return out, errs.Invalid(what, path+".filename", "must be a string")
	}
	out.Filename = name.String()

	var err error
	if out.Frame, err = checkRect(f.Get("frame"), path+".frame"); err != nil {
		return out, err
	}
	rotated, trimmed := f.Get("rotated"), f.Get("trimmed")
	if !isBool(rotated) {
		return out, errs.Invalid(what, path+".rotated", "must be a boolean")
	}
	if !isBool(trimmed) {
		return out, errs.Invalid(what, path+".trimmed", "must be a boolean")
	}
	out.Rotated, out.Trimmed = rotated.Bool(), trimmed.Bool()
	if out.SpriteSourceSize, err = checkRect(f.Get("spriteSourceSize"), path+".spriteSourceSize"); err != nil {
		return out, err
	}
	out.SourceSize, err = checkSize(f.Get("sourceSize"), path+".sourceSize")
	return out, err
}

func checkRect(r gjson.Result, path string) (Rect, error) {
	if !r.IsObject() {
		return Rect{}, errs.Invalid(what, path, "must be an object")
	}
	var v [4]float32
	for i, k := range [...]string{"x", "y", "w", "h"} {
		n := r.Get(k)
		if n.Type != gjson.Number {
			return Rect{}, errs.Invalid(what, path+"."+k, "must be a number")
		}
		v[i] = float32(n.Float())
	}
	return Rect{X: v[0], Y: v[1], W: v[2], H: v[3]}, nil
}

func checkSize(s gjson.Result, path string) (Size, error) {
	if !s.IsObject() {
		return Size{}, errs.Invalid(what, path, "must be an object")
	}
	var v [2]float32
	for i, k := range [...]string{"w", "h"} {
		n := s.Get(k)
		if n.Type != gjson.Number {
			return Size{}, errs.Invalid(what, path+"."+k, "must be a number")
		}
		v[i] = float32(n.Float())
	}
	return Size{W: v[0], H: v[1]}, nil
}

func isBool(r gjson.Result) bool {
	return r.Type == gjson.True || r.Type == gjson.False
}

// checkInvariants runs the checks that need the decoded values: no negative
// geometry, frames inside the sheet, unique filenames.
func checkInvariants(d *Descriptor) error {
	if len(d.Frames) == 0 {
		return errs.Invalid(what, "frames", "empty")
	}
	if d.Meta != nil && (d.Meta.Size.W < 0 || d.Meta.Size.H < 0) {
		return errs.Invalid(what, "meta.size", "negative dimension")
	}
	seen := make(map[string]int, len(d.Frames))
	for i, f := range d.Frames {
		path := fmt.Sprintf("frames.%d", i)
		if prev, dup := seen[f.Filename]; dup {
			return errs.Invalid(what, path+".filename", fmt.Sprintf("%q already used by frames.%d", f.Filename, prev))
		}
		seen[f.Filename] = i

		if negativeRect(f.Frame) || negativeRect(f.SpriteSourceSize) || f.SourceSize.W < 0 || f.SourceSize.H < 0 {
			return errs.Invalid(what, path, "negative geometry")
		}
		if d.Meta != nil {
			size := d.Meta.Size
			if f.Frame.X+f.Frame.W > size.W || f.Frame.Y+f.Frame.H > size.H {
				return errs.Invalid(what, path+".frame", "outside the sheet")
			}
		}
	}
	return nil
}

func negativeRect(r Rect) bool {
	return r.X < 0 || r.Y < 0 || r.W < 0 || r.H < 0
}
