package engine

// Component is state carried by one GameObject, like the tile grid of a
// sprite map. GetComponent finds it again by concrete type.
type Component interface {
	SetGameObject(g *GameObject)
	GetGameObject() *GameObject
}

// Disposer is implemented by components that must let go of listeners or
// shared assets when they stop being used: on RemoveComponent, when their
// object leaves the scene, or when a resize swaps in a new instance.
type Disposer interface {
	Dispose()
}

// BaseComponent stores the owner; embed it to satisfy Component.
type BaseComponent struct {
	gameObject *GameObject
}

func (b *BaseComponent) SetGameObject(g *GameObject) {
	b.gameObject = g
}

func (b *BaseComponent) GetGameObject() *GameObject {
	return b.gameObject
}
