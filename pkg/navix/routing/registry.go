// Package routing maps route keys to UI factories and their metadata.
//
// A route key is a string of the form "module.component". Applications
// typically declare routes as typed constants:
//
//	const (
//	    RouteAssetBrowser = routing.Key("asset.browser")
//	    RouteAssetDetail  = routing.Key("asset.detail")
//	)
//
// Any type with a RouteKey() string method works wherever a Route is
// expected; the registry always normalizes to the string key internally.
package routing

import (
	"errors"
	"fmt"
	"strings"

	"github.com/xianghaizheng/Navix-UI-Navigator/pkg/navix/widget"
)

// Route identifies a navigable destination.
type Route interface {
	RouteKey() string
}

// Key is a raw route key. It is the simplest Route implementation and
// the type applications use for route constants.
type Key string

// RouteKey returns the key itself.
func (k Key) RouteKey() string { return string(k) }

// KeyOf normalizes a Route to its string key.
func KeyOf(route Route) string { return route.RouteKey() }

// Module returns the module prefix of a route key (the segment before
// the first dot), or the whole key if it has no dot.
func Module(routeKey string) string {
	if i := strings.IndexByte(routeKey, '.'); i >= 0 {
		return routeKey[:i]
	}
	return routeKey
}

// ErrNotFound indicates a lookup for a route that was never registered.
var ErrNotFound = errors.New("route not registered")

// ConflictError is returned when a route key is registered twice.
// The first registration stays in effect.
type ConflictError struct {
	Route string
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("route %q already registered", e.Route)
}

// Entry describes one registered route. Entries are immutable after
// registration.
type Entry struct {
	Factory   widget.Factory
	Module    string
	Lazy      bool
	Singleton bool
	Meta      map[string]any
}

// RegisterOption configures a registration.
type RegisterOption func(*Entry)

// Singleton marks the route as single-instance: at most one default-slot
// instance may be live at a time and navigation reuses it while visible.
func Singleton() RegisterOption {
	return func(e *Entry) { e.Singleton = true }
}

// Eager disables lazy creation for the route. Lazy is the default.
func Eager() RegisterOption {
	return func(e *Entry) { e.Lazy = false }
}

// WithMeta attaches static metadata merged into the creation parameters
// on every navigation. Caller-supplied parameters win on key collision.
func WithMeta(key string, value any) RegisterOption {
	return func(e *Entry) {
		if e.Meta == nil {
			e.Meta = make(map[string]any)
		}
		e.Meta[key] = value
	}
}

// Registry is the route table: an insertion-ordered map from route key
// to Entry. It is an explicitly constructed, injected dependency, not
// process-global state, so tests can run against isolated instances.
//
// Registry is not safe for concurrent use; it shares the single
// GUI-thread execution model of the navigator.
type Registry struct {
	entries map[string]*Entry
	order   []string
}

// NewRegistry returns an empty route registry.
func NewRegistry() *Registry {
	return &Registry{
		entries: make(map[string]*Entry),
	}
}

// Register adds a route with its UI factory. Registering an existing key
// returns a *ConflictError and leaves the first registration untouched.
func (r *Registry) Register(route Route, factory widget.Factory, opts ...RegisterOption) error {
	key := KeyOf(route)

	if _, exists := r.entries[key]; exists {
		return &ConflictError{Route: key}
	}
	if factory == nil {
		return fmt.Errorf("route %q: nil factory", key)
	}

	entry := &Entry{
		Factory: factory,
		Module:  Module(key),
		Lazy:    true,
	}
	for _, opt := range opts {
		opt(entry)
	}

	r.entries[key] = entry
	r.order = append(r.order, key)
	return nil
}

// Lookup returns the entry for a route, or ErrNotFound.
func (r *Registry) Lookup(route Route) (*Entry, error) {
	entry, ok := r.entries[KeyOf(route)]
	if !ok {
		return nil, fmt.Errorf("%q: %w", KeyOf(route), ErrNotFound)
	}
	return entry, nil
}

// Contains reports whether the route is registered.
func (r *Registry) Contains(route Route) bool {
	_, ok := r.entries[KeyOf(route)]
	return ok
}

// List returns all registered route keys in registration order.
func (r *Registry) List() []string {
	keys := make([]string, len(r.order))
	copy(keys, r.order)
	return keys
}

// Len returns the number of registered routes.
func (r *Registry) Len() int { return len(r.entries) }

// Reset clears every registration. Routes are otherwise permanent for
// the registry's lifetime; Reset exists for test isolation.
func (r *Registry) Reset() {
	r.entries = make(map[string]*Entry)
	r.order = r.order[:0]
}
