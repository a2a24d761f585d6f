// Package container implements the shared data store that passes state
// between windows: one RouteContainer of key/value entries per route,
// grouped under module containers, with a lifecycle status derived from
// the liveness of the route's UI instance.
package container

import (
	"time"

	"go.uber.org/atomic"
)

// Status is the derived lifecycle state of a route's data container.
type Status string

const (
	// StatusEmpty: no data and no attached UI.
	StatusEmpty Status = "empty"
	// StatusPrepared: data present, UI never attached.
	StatusPrepared Status = "prepared"
	// StatusActive: data present and a live UI attached.
	StatusActive Status = "active"
	// StatusOrphaned: data remains after a previously attached UI was
	// detached. Distinguishes "was shown, now detached" from "never
	// shown".
	StatusOrphaned Status = "orphaned"
)

// Data is one stored value with its metadata. Access counts use an
// atomic counter so observers may read them from monitoring goroutines
// without tearing.
type Data struct {
	value       any
	createdAt   time.Time
	updatedAt   time.Time
	accessCount *atomic.Int64
}

func newData() *Data {
	now := time.Now()
	return &Data{
		createdAt:   now,
		updatedAt:   now,
		accessCount: atomic.NewInt64(0),
	}
}

// Value returns the stored value without touching the access count.
func (d *Data) Value() any { return d.value }

// CreatedAt returns when the entry was first created.
func (d *Data) CreatedAt() time.Time { return d.createdAt }

// UpdatedAt returns when the entry was last written.
func (d *Data) UpdatedAt() time.Time { return d.updatedAt }

// AccessCount returns how many times the entry was read or written.
func (d *Data) AccessCount() int64 { return d.accessCount.Load() }

func (d *Data) update(value any) {
	d.value = value
	d.updatedAt = time.Now()
	d.accessCount.Inc()
}

// RouteContainer owns the key/value entries of one route.
//
// The attached UI instance is a liveness marker, not an owned resource:
// the navigator attaches it on show and detaches it on close, and the
// container never keeps a destroyed widget alive. Status is computed
// from data presence and UI liveness, except for the active-to-orphaned
// transition, which is remembered across UI loss.
type RouteContainer struct {
	routeKey  string
	data      map[string]*Data
	ui        any
	wasActive bool
}

// NewRouteContainer returns an empty container for a route. Most code
// obtains containers through Manager.Container instead.
func NewRouteContainer(routeKey string) *RouteContainer {
	return &RouteContainer{
		routeKey: routeKey,
		data:     make(map[string]*Data),
	}
}

// RouteKey returns the owning route's key.
func (c *RouteContainer) RouteKey() string { return c.routeKey }

// Status derives the container's lifecycle state.
func (c *RouteContainer) Status() Status {
	hasUI := c.ui != nil
	hasData := len(c.data) > 0

	switch {
	case hasData && hasUI:
		return StatusActive
	case hasData:
		if c.wasActive {
			return StatusOrphaned
		}
		return StatusPrepared
	default:
		return StatusEmpty
	}
}

// SetUIInstance attaches or detaches (nil) the route's UI instance.
func (c *RouteContainer) SetUIInstance(instance any) {
	c.ui = instance
	if instance != nil && len(c.data) > 0 {
		c.wasActive = true
	}
}

// UIInstance returns the attached UI instance, or nil.
func (c *RouteContainer) UIInstance() any { return c.ui }

// Set creates or updates an entry, bumping its update timestamp and
// access count.
func (c *RouteContainer) Set(key string, value any) {
	entry, ok := c.data[key]
	if !ok {
		entry = newData()
		c.data[key] = entry
	}
	entry.update(value)

	if c.ui != nil {
		c.wasActive = true
	}
}

// Get returns the value for key, or def when absent. A hit bumps the
// entry's access count.
func (c *RouteContainer) Get(key string, def any) any {
	if entry, ok := c.data[key]; ok {
		entry.accessCount.Inc()
		return entry.value
	}
	return def
}

// Contains reports whether the key has an entry.
func (c *RouteContainer) Contains(key string) bool {
	_, ok := c.data[key]
	return ok
}

// Metadata returns the full entry for a key, or nil.
func (c *RouteContainer) Metadata(key string) *Data {
	return c.data[key]
}

// Update sets multiple entries.
func (c *RouteContainer) Update(values map[string]any) {
	for k, v := range values {
		c.Set(k, v)
	}
}

// Delete removes one entry.
func (c *RouteContainer) Delete(key string) {
	delete(c.data, key)
}

// Clear removes every entry. With no UI attached the container drops
// back to empty, including its orphaned memory.
func (c *RouteContainer) Clear() {
	c.data = make(map[string]*Data)
	if c.ui == nil {
		c.wasActive = false
	}
}

// Keys returns all entry keys.
func (c *RouteContainer) Keys() []string {
	keys := make([]string, 0, len(c.data))
	for k := range c.data {
		keys = append(keys, k)
	}
	return keys
}

// Items returns a snapshot of key to value, without bumping access
// counts.
func (c *RouteContainer) Items() map[string]any {
	items := make(map[string]any, len(c.data))
	for k, d := range c.data {
		items[k] = d.value
	}
	return items
}

// Len returns the number of entries.
func (c *RouteContainer) Len() int { return len(c.data) }
