// Package rbac implements role-based access control for route-level
// permissions: users hold roles, roles hold permissions and may inherit
// from parent roles, and routes require permission sets.
//
// The navigator's security gate consumes a Manager through the narrow
// IsAllowed capability; the rest of the API is administrative surface
// for applications that manage their own role graphs.
package rbac

import (
	"log/slog"

	"github.com/xianghaizheng/Navix-UI-Navigator/pkg/navix/internal"
)

// Hook observes RBAC mutations ("role_added", "user_role_assigned",
// ...). Hooks run synchronously; a panicking hook is recovered and
// logged so it cannot corrupt the role graph mid-update.
type Hook func(fields map[string]any)

// Manager owns the role graph. It is not safe for concurrent use; like
// the navigator it belongs to the GUI thread.
type Manager struct {
	roles            map[string]map[string]struct{} // role -> permissions
	roleParents      map[string]map[string]struct{} // role -> parent roles
	users            map[string]map[string]struct{} // user -> roles
	routePermissions map[string]map[string]struct{} // route -> required permissions
	hooks            map[string][]Hook

	log *slog.Logger
}

// NewManager returns an empty RBAC manager.
func NewManager() *Manager {
	return &Manager{
		roles:            make(map[string]map[string]struct{}),
		roleParents:      make(map[string]map[string]struct{}),
		users:            make(map[string]map[string]struct{}),
		routePermissions: make(map[string]map[string]struct{}),
		hooks:            make(map[string][]Hook),
		log:              internal.GetFrameworkLogger(),
	}
}

// AddRole declares a role with optional permissions and parent roles.
// Declaring an existing role extends it.
func (m *Manager) AddRole(role string, permissions []string, parents []string) {
	if m.roles[role] == nil {
		m.roles[role] = make(map[string]struct{})
	}
	for _, p := range permissions {
		m.roles[role][p] = struct{}{}
	}
	if len(parents) > 0 {
		if m.roleParents[role] == nil {
			m.roleParents[role] = make(map[string]struct{})
		}
		for _, p := range parents {
			m.roleParents[role][p] = struct{}{}
		}
	}
	m.trigger("role_added", map[string]any{"role": role})
}

// RemoveRole deletes a role, its inheritance links, and every user
// assignment of it.
func (m *Manager) RemoveRole(role string) {
	delete(m.roles, role)
	delete(m.roleParents, role)
	for _, roles := range m.users {
		delete(roles, role)
	}
	m.trigger("role_removed", map[string]any{"role": role})
}

// SetRolePermissions replaces a role's direct permission set.
func (m *Manager) SetRolePermissions(role string, permissions []string) {
	set := make(map[string]struct{}, len(permissions))
	for _, p := range permissions {
		set[p] = struct{}{}
	}
	m.roles[role] = set
	m.trigger("role_permissions_updated", map[string]any{"role": role})
}

// RolePermissions returns a role's permissions, including permissions
// inherited from parent roles. Inheritance cycles are tolerated: each
// role is visited once.
func (m *Manager) RolePermissions(role string) []string {
	perms := make(map[string]struct{})
	m.collectRolePermissions(role, perms, make(map[string]struct{}))
	return setToSlice(perms)
}

func (m *Manager) collectRolePermissions(role string, perms, visited map[string]struct{}) {
	if _, seen := visited[role]; seen {
		return
	}
	visited[role] = struct{}{}

	for p := range m.roles[role] {
		perms[p] = struct{}{}
	}
	for parent := range m.roleParents[role] {
		m.collectRolePermissions(parent, perms, visited)
	}
}

// Roles lists all declared role names.
func (m *Manager) Roles() []string {
	return mapKeys(m.roles)
}

// AssignRole grants a role to a user.
func (m *Manager) AssignRole(userID, role string) {
	if m.users[userID] == nil {
		m.users[userID] = make(map[string]struct{})
	}
	m.users[userID][role] = struct{}{}
	m.trigger("user_role_assigned", map[string]any{"user": userID, "role": role})
}

// RevokeRole removes a role from a user.
func (m *Manager) RevokeRole(userID, role string) {
	if roles, ok := m.users[userID]; ok {
		delete(roles, role)
		m.trigger("user_role_revoked", map[string]any{"user": userID, "role": role})
	}
}

// SetUserRoles replaces a user's role set.
func (m *Manager) SetUserRoles(userID string, roles []string) {
	set := make(map[string]struct{}, len(roles))
	for _, r := range roles {
		set[r] = struct{}{}
	}
	m.users[userID] = set
	m.trigger("user_roles_updated", map[string]any{"user": userID})
}

// UserRoles returns the roles directly assigned to a user.
func (m *Manager) UserRoles(userID string) []string {
	return setToSlice(m.users[userID])
}

// Users lists all user ids with role assignments.
func (m *Manager) Users() []string {
	return mapKeys(m.users)
}

// UserPermissions returns every permission a user holds through their
// roles, inherited permissions included.
func (m *Manager) UserPermissions(userID string) []string {
	perms := make(map[string]struct{})
	visited := make(map[string]struct{})
	for role := range m.users[userID] {
		m.collectRolePermissions(role, perms, visited)
	}
	return setToSlice(perms)
}

// SetRoutePermissions replaces the permission set required to navigate
// to a route. A route with no required permissions is open to everyone.
func (m *Manager) SetRoutePermissions(routeKey string, permissions []string) {
	set := make(map[string]struct{}, len(permissions))
	for _, p := range permissions {
		set[p] = struct{}{}
	}
	m.routePermissions[routeKey] = set
	m.trigger("route_permissions_updated", map[string]any{"route": routeKey})
}

// RoutePermissions returns the permissions required by a route.
func (m *Manager) RoutePermissions(routeKey string) []string {
	return setToSlice(m.routePermissions[routeKey])
}

// ProtectedRoutes lists all routes with required permissions.
func (m *Manager) ProtectedRoutes() []string {
	return mapKeys(m.routePermissions)
}

// IsAllowed reports whether the user may navigate to the route: allowed
// when the route requires no permissions, or when the intersection of
// required and held permissions is non-empty. This is the capability
// the security gate consumes.
func (m *Manager) IsAllowed(userID, routeKey string) bool {
	required := m.routePermissions[routeKey]
	if len(required) == 0 {
		return true
	}

	held := make(map[string]struct{})
	visited := make(map[string]struct{})
	for role := range m.users[userID] {
		m.collectRolePermissions(role, held, visited)
	}

	for p := range required {
		if _, ok := held[p]; ok {
			return true
		}
	}
	return false
}

// WhoCanAccess returns the user ids allowed to navigate to the route.
func (m *Manager) WhoCanAccess(routeKey string) []string {
	var allowed []string
	for userID := range m.users {
		if m.IsAllowed(userID, routeKey) {
			allowed = append(allowed, userID)
		}
	}
	return allowed
}

// RoutesForUser returns every protected route the user may navigate to.
func (m *Manager) RoutesForUser(userID string) []string {
	var routes []string
	for routeKey := range m.routePermissions {
		if m.IsAllowed(userID, routeKey) {
			routes = append(routes, routeKey)
		}
	}
	return routes
}

// BatchAssignRoles replaces role sets for multiple users.
func (m *Manager) BatchAssignRoles(userRoles map[string][]string) {
	for userID, roles := range userRoles {
		m.SetUserRoles(userID, roles)
	}
}

// BatchSetRoutePermissions replaces permission sets for multiple routes.
func (m *Manager) BatchSetRoutePermissions(routePerms map[string][]string) {
	for routeKey, perms := range routePerms {
		m.SetRoutePermissions(routeKey, perms)
	}
}

// AddHook registers an observer for an RBAC mutation event.
func (m *Manager) AddHook(event string, hook Hook) {
	m.hooks[event] = append(m.hooks[event], hook)
}

// Clear resets the whole role graph, including hooks.
func (m *Manager) Clear() {
	m.roles = make(map[string]map[string]struct{})
	m.roleParents = make(map[string]map[string]struct{})
	m.users = make(map[string]map[string]struct{})
	m.routePermissions = make(map[string]map[string]struct{})
	m.hooks = make(map[string][]Hook)
}

func (m *Manager) trigger(event string, fields map[string]any) {
	for _, hook := range m.hooks[event] {
		func() {
			defer func() {
				if r := recover(); r != nil {
					m.log.Error("rbac hook panicked", "event", event, "panic", r)
				}
			}()
			hook(fields)
		}()
	}
}

func setToSlice(set map[string]struct{}) []string {
	out := make([]string, 0, len(set))
	for k := range set {
		out = append(out, k)
	}
	return out
}

func mapKeys[V any](m map[string]V) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	return out
}
