package container

import "github.com/xianghaizheng/Navix-UI-Navigator/pkg/navix/routing"

// Ref is a typed handle to one (route, key) slot in the store. It
// replaces dynamic attribute access with compile-time typed accessors:
//
//	title := container.NewRef[string](store, RouteAssetBrowser, "title")
//	title.Set("Asset Browser")
//	s, ok := title.Get()
type Ref[T any] struct {
	manager *Manager
	route   routing.Route
	key     string
}

// NewRef binds a typed reference to a (route, key) slot.
func NewRef[T any](manager *Manager, route routing.Route, key string) Ref[T] {
	return Ref[T]{manager: manager, route: route, key: key}
}

// Get returns the slot's value. ok is false when the slot is unset or
// holds a value of a different type.
func (r Ref[T]) Get() (T, bool) {
	var zero T
	v := r.manager.Container(r.route).Get(r.key, nil)
	if v == nil {
		return zero, false
	}
	typed, ok := v.(T)
	if !ok {
		return zero, false
	}
	return typed, true
}

// GetOr returns the slot's value, or def when unset or mistyped.
func (r Ref[T]) GetOr(def T) T {
	if v, ok := r.Get(); ok {
		return v
	}
	return def
}

// Set writes the slot.
func (r Ref[T]) Set(value T) {
	r.manager.Container(r.route).Set(r.key, value)
}

// Key returns the bound property key.
func (r Ref[T]) Key() string { return r.key }
