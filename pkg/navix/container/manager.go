package container

import (
	"log/slog"

	"github.com/xianghaizheng/Navix-UI-Navigator/pkg/navix/internal"
	"github.com/xianghaizheng/Navix-UI-Navigator/pkg/navix/routing"
)

// ModuleContainer groups the route containers of one module prefix.
// Created lazily on first reference.
type ModuleContainer struct {
	name   string
	routes map[string]*RouteContainer
}

func newModuleContainer(name string) *ModuleContainer {
	return &ModuleContainer{
		name:   name,
		routes: make(map[string]*RouteContainer),
	}
}

// Name returns the module prefix.
func (m *ModuleContainer) Name() string { return m.name }

// RouteContainer returns the container for a route key, creating it on
// first access.
func (m *ModuleContainer) RouteContainer(routeKey string) *RouteContainer {
	c, ok := m.routes[routeKey]
	if !ok {
		c = NewRouteContainer(routeKey)
		m.routes[routeKey] = c
	}
	return c
}

// Routes returns the route keys tracked under this module.
func (m *ModuleContainer) Routes() []string {
	keys := make([]string, 0, len(m.routes))
	for k := range m.routes {
		keys = append(keys, k)
	}
	return keys
}

// ClearRoute empties one route's container.
func (m *ModuleContainer) ClearRoute(routeKey string) {
	if c, ok := m.routes[routeKey]; ok {
		c.Clear()
	}
}

// Manager is the root of the data container store. It owns all module
// containers, keeps a flat route index for O(1) access, and records the
// route-to-module association established at route registration time.
//
// Like the navigator, the manager assumes single GUI-thread execution
// and does no locking.
type Manager struct {
	modules      map[string]*ModuleContainer
	routeModules map[string]string
	containers   map[string]*RouteContainer
	log          *slog.Logger
}

// NewManager returns an empty container store.
func NewManager() *Manager {
	return &Manager{
		modules:      make(map[string]*ModuleContainer),
		routeModules: make(map[string]string),
		containers:   make(map[string]*RouteContainer),
		log:          internal.GetFrameworkLogger(),
	}
}

// RegisterRoute establishes the route-to-module association. An empty
// module name infers the module from the route key's prefix. The route's
// container is created eagerly so enumeration sees declared routes even
// before first use.
func (m *Manager) RegisterRoute(route routing.Route, module string) {
	routeKey := routing.KeyOf(route)
	if module == "" {
		module = routing.Module(routeKey)
	}
	m.routeModules[routeKey] = module

	mod, ok := m.modules[module]
	if !ok {
		mod = newModuleContainer(module)
		m.modules[module] = mod
	}
	if _, ok := m.containers[routeKey]; !ok {
		m.containers[routeKey] = mod.RouteContainer(routeKey)
	}
}

// Container returns the data container for a route, creating it (and
// its module container) on first access.
func (m *Manager) Container(route routing.Route) *RouteContainer {
	routeKey := routing.KeyOf(route)

	if c, ok := m.containers[routeKey]; ok {
		return c
	}

	module, ok := m.routeModules[routeKey]
	if !ok {
		module = routing.Module(routeKey)
	}
	mod, ok := m.modules[module]
	if !ok {
		mod = newModuleContainer(module)
		m.modules[module] = mod
	}

	c := mod.RouteContainer(routeKey)
	m.containers[routeKey] = c
	return c
}

// Module returns the module container for a prefix, creating it on
// first access.
func (m *Manager) Module(name string) *ModuleContainer {
	mod, ok := m.modules[name]
	if !ok {
		mod = newModuleContainer(name)
		m.modules[name] = mod
	}
	return mod
}

// SetUIInstance attaches the route's live UI instance (nil detaches),
// recomputing the container's status.
func (m *Manager) SetUIInstance(route routing.Route, instance any) {
	m.Container(route).SetUIInstance(instance)
}

// RemoveUIInstance detaches the route's UI instance. A container that
// was active and still holds data becomes orphaned.
func (m *Manager) RemoveUIInstance(route routing.Route) {
	m.SetUIInstance(route, nil)
}

// Modules lists all known module prefixes.
func (m *Manager) Modules() []string {
	names := make([]string, 0, len(m.modules))
	for name := range m.modules {
		names = append(names, name)
	}
	return names
}

// Routes lists every tracked route key.
func (m *Manager) Routes() []string {
	keys := make([]string, 0, len(m.containers))
	for k := range m.containers {
		keys = append(keys, k)
	}
	return keys
}

// StatusReport maps each module to its routes and their current status.
func (m *Manager) StatusReport() map[string]map[string]Status {
	report := make(map[string]map[string]Status, len(m.modules))
	for name, mod := range m.modules {
		report[name] = make(map[string]Status, len(mod.routes))
		for routeKey, c := range mod.routes {
			report[name][routeKey] = c.Status()
		}
	}
	return report
}

// CleanupOrphaned clears the data of every orphaned container.
func (m *Manager) CleanupOrphaned() {
	for routeKey, c := range m.containers {
		if c.Status() == StatusOrphaned {
			c.Clear()
			m.log.Debug("cleared orphaned container", "route", routeKey)
		}
	}
}

// Reset drops the whole store. Intended for test isolation.
func (m *Manager) Reset() {
	m.modules = make(map[string]*ModuleContainer)
	m.routeModules = make(map[string]string)
	m.containers = make(map[string]*RouteContainer)
}
