package navix

import (
	"errors"

	"github.com/xianghaizheng/Navix-UI-Navigator/pkg/navix/config"
	"github.com/xianghaizheng/Navix-UI-Navigator/pkg/navix/eventbus"
	"github.com/xianghaizheng/Navix-UI-Navigator/pkg/navix/intercept"
	"github.com/xianghaizheng/Navix-UI-Navigator/pkg/navix/routing"
	"github.com/xianghaizheng/Navix-UI-Navigator/pkg/navix/validation"
	"github.com/xianghaizheng/Navix-UI-Navigator/pkg/navix/widget"
)

// AppBuilder assembles a Navigator fluently. It only accumulates
// configuration; nothing touches the toolkit until Build.
//
//	nav, err := navix.NewApp("asset-studio").
//	    Toolkit(sdl.New()).
//	    MaxHistory(100).
//	    Route(RouteAssetBrowser, newBrowser, routing.Singleton()).
//	    Route(RouteAssetDetail, newDetail).
//	    ParameterRule("admin_level", func(v any) bool { ... }).
//	    InterceptorFunc(audit).
//	    Build()
type AppBuilder struct {
	name string
	opts Options

	routes []pendingRoute
	errs   []error

	patterns       []string
	paramRules     map[string]validation.Rule
	reserved       []string
	blocked        []string
	allowedModules []string
	checker        validation.PermissionChecker
	identityParams []string
	access         validation.AccessController

	interceptors []intercept.Interceptor
	handlers     map[string][]eventbus.Handler
}

type pendingRoute struct {
	route   routing.Route
	factory widget.Factory
	opts    []routing.RegisterOption
}

// NewApp starts a builder for a named application.
func NewApp(name string) *AppBuilder {
	return &AppBuilder{
		name:       name,
		paramRules: make(map[string]validation.Rule),
		handlers:   make(map[string][]eventbus.Handler),
	}
}

// Toolkit sets the GUI toolkit adapter. Required.
func (b *AppBuilder) Toolkit(t widget.Toolkit) *AppBuilder {
	b.opts.Toolkit = t
	return b
}

// FromSettings applies loaded configuration to the builder.
func (b *AppBuilder) FromSettings(s config.Settings) *AppBuilder {
	b.opts.MaxHistory = s.Navigation.MaxHistory
	b.opts.DisableValidation = !s.Navigation.EnableValidation
	b.opts.DisableSecurity = !s.Navigation.EnableSecurity
	b.opts.LogPath = s.Logging.Path
	b.opts.LogLevel = s.Logging.Level
	if s.Security.IdentityParam != "" {
		b.identityParams = []string{s.Security.IdentityParam}
	}
	b.reserved = append(b.reserved, s.Security.ReservedRoutes...)
	b.blocked = append(b.blocked, s.Security.BlockedPatterns...)
	return b
}

// MaxHistory bounds the navigation history.
func (b *AppBuilder) MaxHistory(n int) *AppBuilder {
	b.opts.MaxHistory = n
	return b
}

// DisableValidation turns off route and parameter validation.
func (b *AppBuilder) DisableValidation() *AppBuilder {
	b.opts.DisableValidation = true
	return b
}

// DisableSecurity turns off the security gate.
func (b *AppBuilder) DisableSecurity() *AppBuilder {
	b.opts.DisableSecurity = true
	return b
}

// LogPath routes the JSON log to a file in addition to stdout.
func (b *AppBuilder) LogPath(path string) *AppBuilder {
	b.opts.LogPath = path
	return b
}

// Route queues a route registration.
func (b *AppBuilder) Route(route routing.Route, factory widget.Factory, opts ...routing.RegisterOption) *AppBuilder {
	b.routes = append(b.routes, pendingRoute{route: route, factory: factory, opts: opts})
	return b
}

// RoutePattern adds an accepted route naming pattern.
func (b *AppBuilder) RoutePattern(pattern string) *AppBuilder {
	b.patterns = append(b.patterns, pattern)
	return b
}

// ParameterRule adds a parameter predicate.
func (b *AppBuilder) ParameterRule(name string, rule validation.Rule) *AppBuilder {
	b.paramRules[name] = rule
	return b
}

// ReserveRoutes adds reserved route keys.
func (b *AppBuilder) ReserveRoutes(routes ...string) *AppBuilder {
	b.reserved = append(b.reserved, routes...)
	return b
}

// BlockPattern blocks routes matching a glob pattern at the security
// gate.
func (b *AppBuilder) BlockPattern(pattern string) *AppBuilder {
	b.blocked = append(b.blocked, pattern)
	return b
}

// AllowModules restricts navigation to the given module prefixes.
func (b *AppBuilder) AllowModules(modules ...string) *AppBuilder {
	b.allowedModules = append(b.allowedModules, modules...)
	return b
}

// PermissionChecker installs a custom permission callback, optionally
// with the parameter names carrying user identity.
func (b *AppBuilder) PermissionChecker(checker validation.PermissionChecker, identityParams ...string) *AppBuilder {
	b.checker = checker
	if len(identityParams) > 0 {
		b.identityParams = identityParams
	}
	return b
}

// AccessController installs the RBAC capability used when no custom
// checker is set.
func (b *AppBuilder) AccessController(access validation.AccessController) *AppBuilder {
	b.access = access
	return b
}

// Interceptor adds a prioritized interceptor.
func (b *AppBuilder) Interceptor(i intercept.Interceptor) *AppBuilder {
	b.interceptors = append(b.interceptors, i)
	return b
}

// InterceptorFunc adds a bare predicate interceptor (lowest priority).
func (b *AppBuilder) InterceptorFunc(f intercept.Func) *AppBuilder {
	b.interceptors = append(b.interceptors, f)
	return b
}

// Subscribe queues an event subscription.
func (b *AppBuilder) Subscribe(event string, handler eventbus.Handler) *AppBuilder {
	b.handlers[event] = append(b.handlers[event], handler)
	return b
}

// Build assembles the Navigator, applying every queued registration and
// setting. The first configuration error aborts the build.
func (b *AppBuilder) Build() (*Navigator, error) {
	if b.name == "" {
		return nil, errors.New("navix: application name is required")
	}

	nav, err := New(b.opts)
	if err != nil {
		return nil, err
	}

	for _, p := range b.patterns {
		if err := nav.AddRoutePattern(p); err != nil {
			return nil, err
		}
	}
	for name, rule := range b.paramRules {
		nav.AddParameterRule(name, rule)
	}
	nav.Validator().ReserveRoutes(b.reserved...)

	for _, pattern := range b.blocked {
		if err := nav.SecurityGate().AddBlockedPattern(pattern); err != nil {
			return nil, err
		}
	}
	if len(b.allowedModules) > 0 {
		nav.SecurityGate().AllowModules(b.allowedModules...)
	}
	if len(b.identityParams) > 0 {
		nav.SecurityGate().SetIdentityParams(b.identityParams...)
	}
	if b.checker != nil {
		nav.SecurityGate().SetPermissionChecker(b.checker)
	}
	if b.access != nil {
		nav.SecurityGate().SetAccessController(b.access)
	}

	for _, i := range b.interceptors {
		nav.Interceptors().Add(i)
	}
	for event, handlers := range b.handlers {
		for _, h := range handlers {
			nav.Events().Subscribe(event, h)
		}
	}

	for _, p := range b.routes {
		if err := nav.Register(p.route, p.factory, p.opts...); err != nil {
			return nil, err
		}
	}

	nav.log.Info("application assembled", "app", b.name, "routes", nav.Registry().Len())
	return nav, nil
}
