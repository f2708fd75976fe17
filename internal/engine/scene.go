package engine

type Scene struct {
	Name        string
	GameObjects []*GameObject

	// Removed fires after an object (and each of its descendants) leaves
	// the scene and its components have been disposed.
	Removed EventWithArg[*GameObject]

	byID map[string]*GameObject
}

func NewScene(name string) *Scene {
	return &Scene{
		Name:        name,
		GameObjects: make([]*GameObject, 0),
		byID:        make(map[string]*GameObject),
	}
}

func (s *Scene) AddGameObject(g *GameObject) {
	if s.byID == nil {
		s.byID = make(map[string]*GameObject)
	}
	g.Scene = s
	s.GameObjects = append(s.GameObjects, g)
	s.byID[g.ID] = g
}

// RemoveGameObject removes g and its children, disposing their components.
func (s *Scene) RemoveGameObject(g *GameObject) {
	for len(g.Children) > 0 {
		s.RemoveGameObject(g.Children[len(g.Children)-1])
	}
	if g.Parent != nil {
		g.Parent.RemoveChild(g)
	}
	for i, obj := range s.GameObjects {
		if obj == g {
			s.GameObjects = append(s.GameObjects[:i], s.GameObjects[i+1:]...)
			break
		}
	}
	if s.byID[g.ID] == g {
		delete(s.byID, g.ID)
	}
	g.dispose()
	g.Scene = nil
	s.Removed.Invoke(g)
}

// FindByID is the O(1) lookup used when resolving ids from scene files.
func (s *Scene) FindByID(id string) *GameObject {
	return s.byID[id]
}

func (s *Scene) FindByName(name string) *GameObject {
	for _, g := range s.GameObjects {
		if g.Name == name {
			return g
		}
	}
	return nil
}

func (s *Scene) FindByKind(kind Kind) []*GameObject {
	var result []*GameObject
	for _, g := range s.GameObjects {
		if g.Kind == kind {
			result = append(result, g)
		}
	}
	return result
}
