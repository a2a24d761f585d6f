// Package validation enforces route-naming rules, a reserved-route
// blocklist, per-parameter predicate rules, and route-level security
// checks before the navigator creates any UI instance.
package validation

import (
	"fmt"
	"regexp"

	"github.com/xianghaizheng/Navix-UI-Navigator/pkg/navix/routing"
)

// DefaultRoutePattern is the naming convention applied when no custom
// patterns are added: exactly one pair of lowercase/underscore segments,
// e.g. "module_name.component_name".
const DefaultRoutePattern = `^[a-z_]+\.[a-z_]+$`

// Reserved system routes blocked by default.
var defaultReservedRoutes = []string{
	"system.error",
	"system.loading",
	"system.unauthorized",
}

// RouteInvalidError reports a route that is reserved or does not match
// any configured naming pattern.
type RouteInvalidError struct {
	Route  string
	Reason string
}

func (e *RouteInvalidError) Error() string {
	return fmt.Sprintf("invalid route %q: %s", e.Route, e.Reason)
}

// ParameterInvalidError reports a navigation parameter rejected by its
// registered predicate.
type ParameterInvalidError struct {
	Name  string
	Value any
}

func (e *ParameterInvalidError) Error() string {
	return fmt.Sprintf("parameter %q rejected for value %v", e.Name, e.Value)
}

// Rule is a per-parameter predicate. It reports whether the supplied
// value is acceptable.
type Rule func(value any) bool

// Validator checks routes against naming patterns and a reserved-route
// blocklist, and navigation parameters against registered predicates.
// Patterns and rules are additive and cumulative for the validator's
// lifetime.
type Validator struct {
	routePatterns  []*regexp.Regexp
	parameterRules map[string]Rule
	reservedRoutes map[string]struct{}
}

// NewValidator returns a validator with the default naming convention
// and reserved system routes installed.
func NewValidator() *Validator {
	v := &Validator{
		parameterRules: make(map[string]Rule),
		reservedRoutes: make(map[string]struct{}),
	}
	// Cannot fail: the default pattern is a constant.
	_ = v.AddRoutePattern(DefaultRoutePattern)
	v.ReserveRoutes(defaultReservedRoutes...)
	return v
}

// AddRoutePattern registers an additional accepted naming pattern. A
// route is valid when it matches any registered pattern.
func (v *Validator) AddRoutePattern(pattern string) error {
	re, err := regexp.Compile(pattern)
	if err != nil {
		return fmt.Errorf("route pattern %q: %w", pattern, err)
	}
	v.routePatterns = append(v.routePatterns, re)
	return nil
}

// AddParameterRule registers a predicate for a parameter name. A later
// registration for the same name replaces the earlier one.
func (v *Validator) AddParameterRule(name string, rule Rule) {
	v.parameterRules[name] = rule
}

// ReserveRoutes adds route keys to the reserved blocklist.
func (v *Validator) ReserveRoutes(routes ...string) {
	for _, r := range routes {
		v.reservedRoutes[r] = struct{}{}
	}
}

// ValidateRoute checks the route against the reserved blocklist and the
// configured naming patterns.
func (v *Validator) ValidateRoute(route routing.Route) error {
	key := routing.KeyOf(route)

	if _, reserved := v.reservedRoutes[key]; reserved {
		return &RouteInvalidError{Route: key, Reason: "reserved for system use"}
	}

	for _, pattern := range v.routePatterns {
		if pattern.MatchString(key) {
			return nil
		}
	}
	return &RouteInvalidError{Route: key, Reason: "does not match naming conventions"}
}

// ValidateParams runs every parameter with a registered rule through its
// predicate. Parameters without a rule pass unchecked.
func (v *Validator) ValidateParams(params map[string]any) error {
	for name, value := range params {
		rule, ok := v.parameterRules[name]
		if !ok {
			continue
		}
		if !rule(value) {
			return &ParameterInvalidError{Name: name, Value: value}
		}
	}
	return nil
}
