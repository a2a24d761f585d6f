package validation

import (
	"fmt"
	"log/slog"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/xianghaizheng/Navix-UI-Navigator/pkg/navix/internal"
	"github.com/xianghaizheng/Navix-UI-Navigator/pkg/navix/routing"
)

// DefaultIdentityParam is the navigation parameter carrying the user
// identity when no custom parameter names are configured.
const DefaultIdentityParam = "user_id"

// SecurityDeniedError reports a navigation rejected by the security
// gate.
type SecurityDeniedError struct {
	Route  string
	Reason string
}

func (e *SecurityDeniedError) Error() string {
	return fmt.Sprintf("security denied for route %q: %s", e.Route, e.Reason)
}

// PermissionChecker is a custom permission callback. When set on a gate
// it is authoritative: its result decides the navigation and the RBAC
// fallback never runs. identityParams lists the configured parameter
// names that carry user identity.
type PermissionChecker func(routeKey string, params map[string]any, identityParams []string) bool

// AccessController is the externally owned RBAC capability consumed by
// the gate's fallback check. See the rbac package for the bundled
// implementation.
type AccessController interface {
	IsAllowed(userID, routeKey string) bool
}

// SecurityGate performs route-level permission checks. Two mutually
// exclusive modes: a custom PermissionChecker when one is set, otherwise
// a role-based fallback through an AccessController, keyed on the
// identity parameter (default "user_id").
//
// Independent of the mode, the gate first applies its blocked-pattern
// list (doublestar globs such as "system.*") and, when configured, its
// module allowlist.
type SecurityGate struct {
	checker        PermissionChecker
	identityParams []string
	access         AccessController

	blockedPatterns []string
	allowedModules  map[string]struct{}

	log *slog.Logger
}

// NewSecurityGate returns a gate with no checker, no access controller,
// and no pattern restrictions. Such a gate allows everything.
func NewSecurityGate() *SecurityGate {
	return &SecurityGate{
		identityParams: []string{DefaultIdentityParam},
		log:            internal.GetFrameworkLogger(),
	}
}

// SetPermissionChecker installs the custom permission callback. Passing
// nil removes it, re-enabling the RBAC fallback.
func (g *SecurityGate) SetPermissionChecker(checker PermissionChecker) {
	g.checker = checker
}

// SetIdentityParams configures which parameter names carry user
// identity. The first configured name present in the parameters is used
// for the RBAC fallback.
func (g *SecurityGate) SetIdentityParams(names ...string) {
	if len(names) == 0 {
		names = []string{DefaultIdentityParam}
	}
	g.identityParams = names
}

// SetAccessController installs the RBAC capability used when no custom
// checker is set.
func (g *SecurityGate) SetAccessController(access AccessController) {
	g.access = access
}

// AddBlockedPattern blocks every route whose key matches the glob
// pattern, e.g. "system.*" or "admin.*_internal". Invalid patterns are
// rejected.
func (g *SecurityGate) AddBlockedPattern(pattern string) error {
	if !doublestar.ValidatePattern(pattern) {
		return fmt.Errorf("blocked pattern %q: malformed glob", pattern)
	}
	g.blockedPatterns = append(g.blockedPatterns, pattern)
	return nil
}

// AllowModules restricts navigation to routes whose module prefix is in
// the given set. Calling it more than once extends the allowlist. An
// empty allowlist (never called) imposes no restriction.
func (g *SecurityGate) AllowModules(modules ...string) {
	if g.allowedModules == nil {
		g.allowedModules = make(map[string]struct{})
	}
	for _, m := range modules {
		g.allowedModules[m] = struct{}{}
	}
}

// Validate checks the route and parameters against the gate. It returns
// a *SecurityDeniedError on rejection.
func (g *SecurityGate) Validate(route routing.Route, params map[string]any) error {
	key := routing.KeyOf(route)

	for _, pattern := range g.blockedPatterns {
		if ok, _ := doublestar.Match(pattern, key); ok {
			g.log.Warn("blocked route pattern matched", "route", key, "pattern", pattern)
			return &SecurityDeniedError{Route: key, Reason: "route is blocked"}
		}
	}

	if len(g.allowedModules) > 0 {
		if _, ok := g.allowedModules[routing.Module(key)]; !ok {
			g.log.Warn("module not in allowlist", "route", key)
			return &SecurityDeniedError{Route: key, Reason: "module not allowed"}
		}
	}

	if g.checker != nil {
		if !g.checker(key, params, g.identityParams) {
			return &SecurityDeniedError{Route: key, Reason: "permission checker rejected"}
		}
		return nil
	}

	if g.access != nil {
		userID := g.identity(params)
		if !g.access.IsAllowed(userID, key) {
			g.log.Warn("rbac denied navigation", "route", key, "user", userID)
			return &SecurityDeniedError{Route: key, Reason: "rbac denied"}
		}
	}

	return nil
}

func (g *SecurityGate) identity(params map[string]any) string {
	for _, name := range g.identityParams {
		if v, ok := params[name]; ok {
			if s, ok := v.(string); ok {
				return s
			}
			return fmt.Sprint(v)
		}
	}
	return ""
}
