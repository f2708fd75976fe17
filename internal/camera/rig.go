package camera

import (
	"fmt"

	"spritemap/internal/errs"
)

// Rig holds the editor's cameras; exactly one is active once any is added.
type Rig struct {
	cameras []*Camera
	active  int
}

func (r *Rig) Add(c *Camera) error {
	if c.Pipeline == nil {
		c.Pipeline = DefaultPipeline()
	}
	if r.Find(c.Name) != nil {
		return errs.Precondition("camera.Rig.Add", fmt.Sprintf("duplicate camera %q", c.Name))
	}
	r.cameras = append(r.cameras, c)
	return nil
}

func (r *Rig) Find(name string) *Camera {
	for _, c := range r.cameras {
		if c.Name == name {
			return c
		}
	}
	return nil
}

// Active returns nil while the rig is empty.
func (r *Rig) Active() *Camera {
	if len(r.cameras) == 0 {
		return nil
	}
	return r.cameras[r.active]
}

func (r *Rig) Names() []string {
	names := make([]string, len(r.cameras))
	for i, c := range r.cameras {
		names[i] = c.Name
	}
	return names
}

// Switch activates the named camera and returns the pipeline to apply.
// The outgoing camera keeps whatever edits were made to its own pipeline.
func (r *Rig) Switch(name string) (*Pipeline, error) {
	for i, c := range r.cameras {
		if c.Name == name {
			r.active = i
			return c.Pipeline, nil
		}
	}
	return nil, errs.Precondition("camera.Rig.Switch", fmt.Sprintf("no camera %q", name))
}

// Next cycles to the following camera.
func (r *Rig) Next() *Camera {
	if len(r.cameras) == 0 {
		return nil
	}
	r.active = (r.active + 1) % len(r.cameras)
	return r.cameras[r.active]
}
