package engine

import (
	"strconv"
	"sync/atomic"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// Kind says what a GameObject is for. Code that needs to know whether an
// object renders a sprite map checks Kind, never the component list.
type Kind int

const (
	KindNode Kind = iota
	KindSpriteMapMesh
)

func (k Kind) String() string {
	switch k {
	case KindSpriteMapMesh:
		return "SpriteMapMesh"
	default:
		return "Node"
	}
}

type Transform struct {
	Position rl.Vector3
	Rotation rl.Vector3 // Euler angles in degrees
	Scale    rl.Vector3
}

// Matrix composes scale, then rotation (X, Y, Z), then translation.
func (t Transform) Matrix() rl.Matrix {
	scale := rl.MatrixScale(t.Scale.X, t.Scale.Y, t.Scale.Z)
	rotX := rl.MatrixRotateX(t.Rotation.X * rl.Deg2rad)
	rotY := rl.MatrixRotateY(t.Rotation.Y * rl.Deg2rad)
	rotZ := rl.MatrixRotateZ(t.Rotation.Z * rl.Deg2rad)
	rot := rl.MatrixMultiply(rl.MatrixMultiply(rotX, rotY), rotZ)
	trans := rl.MatrixTranslate(t.Position.X, t.Position.Y, t.Position.Z)
	return rl.MatrixMultiply(rl.MatrixMultiply(scale, rot), trans)
}

type GameObject struct {
	ID         string
	Name       string
	Kind       Kind
	Tags       []string
	Transform  Transform
	Visible    bool
	Pickable   bool
	Scene      *Scene
	Parent     *GameObject
	Children   []*GameObject
	components []Component
}

var lastID atomic.Uint64

// NewID returns a process-unique object id.
func NewID() string {
	return strconv.FormatUint(lastID.Add(1), 10)
}

func NewGameObject(name string) *GameObject {
	return NewGameObjectWithID(NewID(), name)
}

// NewGameObjectWithID is used when the id comes from a scene file.
func NewGameObjectWithID(id, name string) *GameObject {
	return &GameObject{
		ID:       id,
		Name:     name,
		Visible:  true,
		Pickable: true,
		Transform: Transform{
			Scale: rl.Vector3{X: 1, Y: 1, Z: 1},
		},
		components: make([]Component, 0),
		Children:   make([]*GameObject, 0),
	}
}

func (g *GameObject) AddComponent(c Component) {
	c.SetGameObject(g)
	g.components = append(g.components, c)
}

// RemoveComponent detaches c, disposing it if it holds resources.
func (g *GameObject) RemoveComponent(c Component) {
	for i, existing := range g.components {
		if existing == c {
			g.components = append(g.components[:i], g.components[i+1:]...)
			if d, ok := c.(Disposer); ok {
				d.Dispose()
			}
			c.SetGameObject(nil)
			return
		}
	}
}

// GetComponent returns the first component of type T, or the zero value.
func GetComponent[T Component](g *GameObject) T {
	var zero T
	if g == nil {
		return zero
	}
	for _, c := range g.components {
		if typed, ok := c.(T); ok {
			return typed
		}
	}
	return zero
}

func (g *GameObject) Components() []Component {
	return g.components
}

func (g *GameObject) HasTag(tag string) bool {
	for _, t := range g.Tags {
		if t == tag {
			return true
		}
	}
	return false
}

// AddChild reparents child under g. It refuses, returning false, when child
// is g or one of g's ancestors, since the hierarchy must stay a tree.
func (g *GameObject) AddChild(child *GameObject) bool {
	if child == g || g.IsDescendantOf(child) {
		return false
	}
	if child.Parent != nil {
		child.Parent.RemoveChild(child)
	}
	child.Parent = g
	g.Children = append(g.Children, child)
	return true
}

// IsDescendantOf reports whether ancestor appears above g in the hierarchy.
func (g *GameObject) IsDescendantOf(ancestor *GameObject) bool {
	for p := g.Parent; p != nil; p = p.Parent {
		if p == ancestor {
			return true
		}
	}
	return false
}

func (g *GameObject) RemoveChild(child *GameObject) {
	for i, c := range g.Children {
		if c == child {
			g.Children = append(g.Children[:i], g.Children[i+1:]...)
			child.Parent = nil
			return
		}
	}
}

// WorldMatrix is the local transform followed by every ancestor's.
func (g *GameObject) WorldMatrix() rl.Matrix {
	m := g.Transform.Matrix()
	for p := g.Parent; p != nil; p = p.Parent {
		m = rl.MatrixMultiply(m, p.Transform.Matrix())
	}
	return m
}

func (g *GameObject) WorldPosition() rl.Vector3 {
	return rl.Vector3Transform(rl.Vector3{}, g.WorldMatrix())
}

func (g *GameObject) dispose() {
	for _, c := range g.components {
		if d, ok := c.(Disposer); ok {
			d.Dispose()
		}
	}
}
