package engine

// Event is a multi-cast notification with no payload. The editing session
// fires one whenever the open scene changes.
type Event struct {
	listeners []func()
}

func (e *Event) AddListener(callback func()) {
	if callback == nil {
		return
	}
	e.listeners = append(e.listeners, callback)
}

func (e *Event) RemoveAllListeners() {
	e.listeners = nil
}

func (e *Event) Invoke() {
	for _, listener := range e.listeners {
		listener()
	}
}

// EventWithArg carries one value to each listener, e.g. the object that
// left a scene or the cell a grid just changed.
type EventWithArg[T any] struct {
	listeners []*func(T)
}

func (e *EventWithArg[T]) AddListener(callback func(T)) {
	e.Listen(callback)
}

// Listen adds callback and returns a func that removes it again. Calling
// the remover twice, or after RemoveAllListeners, does nothing.
func (e *EventWithArg[T]) Listen(callback func(T)) (remove func()) {
	if callback == nil {
		return func() {}
	}
	p := &callback
	e.listeners = append(e.listeners, p)
	return func() {
		for i, l := range e.listeners {
			if l == p {
				// Copy so an Invoke in progress keeps its snapshot.
				e.listeners = append(e.listeners[:i:i], e.listeners[i+1:]...)
				return
			}
		}
	}
}

func (e *EventWithArg[T]) RemoveAllListeners() {
	e.listeners = nil
}

func (e *EventWithArg[T]) Invoke(arg T) {
	for _, listener := range e.listeners {
		(*listener)(arg)
	}
}
