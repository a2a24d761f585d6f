package navix

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/xianghaizheng/Navix-UI-Navigator/pkg/navix/container"
	"github.com/xianghaizheng/Navix-UI-Navigator/pkg/navix/eventbus"
	"github.com/xianghaizheng/Navix-UI-Navigator/pkg/navix/intercept"
	"github.com/xianghaizheng/Navix-UI-Navigator/pkg/navix/internal"
	"github.com/xianghaizheng/Navix-UI-Navigator/pkg/navix/routing"
	"github.com/xianghaizheng/Navix-UI-Navigator/pkg/navix/validation"
	"github.com/xianghaizheng/Navix-UI-Navigator/pkg/navix/widget"
)

// defaultSlot is the fleet slot used when no instance id is given.
const defaultSlot = "default"

// reservedParams are consumed by the validation and security layers and
// never reach UI factories.
var reservedParams = map[string]struct{}{
	"user_id": {},
	"token":   {},
	"session": {},
}

// Navigator resolves routes into live, tracked UI instances. It owns the
// fleet of active instances and the navigation history, and coordinates
// validation, security, interceptors, the event bus, and the shared data
// container store around every navigation.
//
// A Navigator is confined to the GUI event-loop thread. All navigation
// steps run to completion on the calling goroutine; there is no internal
// locking and no suspension point.
type Navigator struct {
	registry   *routing.Registry
	validator  *validation.Validator
	security   *validation.SecurityGate
	chain      *intercept.Chain
	bus        *eventbus.Bus
	containers *container.Manager
	toolkit    widget.Toolkit

	fleet        map[string]map[string]widget.Handle // route key -> slot -> handle
	history      *History
	currentRoute string

	enableValidation bool
	enableSecurity   bool

	log *slog.Logger
}

// New builds a Navigator from Options. It fails when no toolkit adapter
// is supplied.
func New(opts Options) (*Navigator, error) {
	if opts.Toolkit == nil {
		return nil, errors.New("navix: no toolkit adapter configured")
	}
	opts.applyDefaults()

	if opts.LogPath != "" {
		internal.SetLogPath(opts.LogPath)
	}
	if opts.LogLevel != "" {
		internal.SetRawLogLevel(opts.LogLevel)
	}

	n := &Navigator{
		registry:         opts.Registry,
		validator:        opts.Validator,
		security:         opts.SecurityGate,
		chain:            opts.Interceptors,
		bus:              opts.Events,
		containers:       opts.Containers,
		toolkit:          opts.Toolkit,
		fleet:            make(map[string]map[string]widget.Handle),
		history:          NewHistory(opts.MaxHistory),
		enableValidation: !opts.DisableValidation,
		enableSecurity:   !opts.DisableSecurity,
		log:              internal.GetFrameworkLogger(),
	}

	n.log.Info("navigator initialized", "toolkit", opts.Toolkit.Name())
	return n, nil
}

// Register declares a route with its UI factory and registers it with
// the data container store. Registering an existing key fails with
// *routing.ConflictError, synchronously and outside the navigation
// pipeline.
func (n *Navigator) Register(route routing.Route, factory widget.Factory, opts ...routing.RegisterOption) error {
	if err := n.registry.Register(route, factory, opts...); err != nil {
		return err
	}
	n.containers.RegisterRoute(route, "")
	n.log.Debug("registered route", "route", routing.KeyOf(route))
	return nil
}

// Registry returns the navigator's route table.
func (n *Navigator) Registry() *routing.Registry { return n.registry }

// Validator returns the navigator's route/parameter validator.
func (n *Navigator) Validator() *validation.Validator { return n.validator }

// SecurityGate returns the navigator's security gate.
func (n *Navigator) SecurityGate() *validation.SecurityGate { return n.security }

// Interceptors returns the navigator's interceptor chain.
func (n *Navigator) Interceptors() *intercept.Chain { return n.chain }

// Events returns the navigator's event bus.
func (n *Navigator) Events() *eventbus.Bus { return n.bus }

// Containers returns the shared data container store.
func (n *Navigator) Containers() *container.Manager { return n.containers }

// ToolkitName returns the name of the configured toolkit adapter.
func (n *Navigator) ToolkitName() string { return n.toolkit.Name() }

// ConfigureValidation toggles route/parameter validation and security
// checks at runtime.
func (n *Navigator) ConfigureValidation(enableValidation, enableSecurity bool) {
	n.enableValidation = enableValidation
	n.enableSecurity = enableSecurity
	n.log.Info("validation configured",
		"validation", enableValidation, "security", enableSecurity)
}

// Navigate resolves the route through the full pipeline (validation,
// security, interceptors, registry lookup, singleton reuse, creation,
// container registration, fleet insertion) and returns the live UI
// instance. Every failure is surfaced as a *NavigationError wrapping the
// specific cause and published as a navigation_failed event.
func (n *Navigator) Navigate(route routing.Route, opts ...NavigateOption) (any, error) {
	var cfg navigateConfig
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.params == nil {
		cfg.params = make(map[string]any)
	}

	routeKey := routing.KeyOf(route)
	fleetKey := makeFleetKey(routeKey, cfg.instanceID, cfg.endpoint)

	n.bus.Publish(eventbus.EventBeforeNavigate, eventbus.Fields{
		"route":  routeKey,
		"params": cfg.params,
	})

	instance, err := n.navigate(route, routeKey, fleetKey, &cfg)
	if err != nil {
		n.bus.Publish(eventbus.EventNavigationFailed, eventbus.Fields{
			"route":  routeKey,
			"params": cfg.params,
			"error":  err,
		})
		n.log.Error("navigation failed", "route", routeKey, "error", err)
		return nil, &NavigationError{Route: routeKey, Err: err}
	}
	return instance, nil
}

func (n *Navigator) navigate(route routing.Route, routeKey, fleetKey string, cfg *navigateConfig) (any, error) {
	if n.enableValidation {
		if err := n.validator.ValidateRoute(route); err != nil {
			return nil, err
		}
		if err := n.validator.ValidateParams(cfg.params); err != nil {
			return nil, err
		}
	}

	if n.enableSecurity {
		if err := n.security.Validate(route, cfg.params); err != nil {
			return nil, err
		}
	}

	if !n.chain.Run(routeKey, cfg.params) {
		n.log.Debug("navigation intercepted", "route", routeKey)
		return nil, ErrInterceptorBlocked
	}

	entry, err := n.registry.Lookup(route)
	if err != nil {
		return nil, err
	}

	// Singleton reuse: a visible default-slot instance short-circuits
	// the rest of the pipeline. The mirrored check covers explicitly
	// addressed instance slots.
	if entry.Singleton && !cfg.forceNew && cfg.instanceID == "" {
		if existing := n.visibleHandle(routeKey, defaultSlot); existing != nil {
			existing.BringToFront()
			n.touch(fleetKey)
			return existing.NativeWidget(), nil
		}
	}
	if !cfg.forceNew && cfg.instanceID != "" {
		if existing := n.visibleHandle(routeKey, cfg.instanceID); existing != nil {
			existing.BringToFront()
			n.touch(fleetKey)
			return existing.NativeWidget(), nil
		}
	}

	instance, err := n.createInstance(routeKey, entry, cfg.params)
	if err != nil {
		return nil, err
	}

	handle, err := n.toolkit.Wrap(instance)
	if err != nil {
		return nil, &CreationError{Route: routeKey, Err: err}
	}

	if cfg.parent != nil {
		handle.SetParent(cfg.parent)
	}

	n.containers.SetUIInstance(route, instance)

	slot := cfg.instanceID
	if slot == "" {
		slot = defaultSlot
	}
	if n.fleet[routeKey] == nil {
		n.fleet[routeKey] = make(map[string]widget.Handle)
	}
	n.fleet[routeKey][slot] = handle

	handle.Show()
	n.touch(fleetKey)

	n.bus.Publish(eventbus.EventAfterNavigate, eventbus.Fields{
		"route":    routeKey,
		"params":   cfg.params,
		"instance": instance,
	})
	n.log.Debug("navigated", "route", routeKey, "fleet_key", fleetKey)
	return instance, nil
}

// createInstance merges the entry's static metadata with the caller's
// parameters (reserved identity parameters filtered out) and invokes the
// factory through the toolkit. A panicking factory is converted into a
// CreationError rather than unwinding through the event loop.
func (n *Navigator) createInstance(routeKey string, entry *routing.Entry, params map[string]any) (instance any, err error) {
	creation := make(map[string]any, len(entry.Meta)+len(params))
	for k, v := range entry.Meta {
		creation[k] = v
	}
	for k, v := range params {
		if _, reserved := reservedParams[k]; reserved {
			continue
		}
		creation[k] = v
	}

	defer func() {
		if r := recover(); r != nil {
			instance = nil
			err = &CreationError{Route: routeKey, Err: fmt.Errorf("factory panicked: %v", r)}
		}
	}()

	instance, err = n.toolkit.Create(entry.Factory, creation)
	if err != nil {
		return nil, &CreationError{Route: routeKey, Err: err}
	}
	return instance, nil
}

func (n *Navigator) visibleHandle(routeKey, slot string) widget.Handle {
	h := n.fleet[routeKey][slot]
	if h != nil && !h.IsHidden() {
		return h
	}
	return nil
}

func (n *Navigator) touch(fleetKey string) {
	n.history.Touch(fleetKey)
	n.currentRoute = fleetKey
}

// Close removes the route's fleet entry, detaches the data container's
// UI reference, closes the widget handle, and publishes the close
// events. It reports false when no matching instance exists.
func (n *Navigator) Close(route routing.Route, opts ...NavigateOption) bool {
	var cfg navigateConfig
	for _, opt := range opts {
		opt(&cfg)
	}

	routeKey := routing.KeyOf(route)
	slot := cfg.instanceID
	if slot == "" {
		slot = defaultSlot
	}

	n.bus.Publish(eventbus.EventBeforeClose, eventbus.Fields{"route": routeKey})

	handle := n.fleet[routeKey][slot]
	if handle == nil {
		return false
	}

	n.containers.RemoveUIInstance(route)
	handle.Close()

	delete(n.fleet[routeKey], slot)
	if len(n.fleet[routeKey]) == 0 {
		delete(n.fleet, routeKey)
	}

	fleetKey := makeFleetKey(routeKey, cfg.instanceID, cfg.endpoint)
	n.history.Remove(fleetKey)
	if n.currentRoute == fleetKey {
		n.currentRoute = ""
		if top, ok := n.history.Peek(); ok {
			n.currentRoute = top
		}
	}

	n.log.Debug("closed navigation", "route", routeKey, "slot", slot)
	n.bus.Publish(eventbus.EventAfterClose, eventbus.Fields{"route": routeKey})
	return true
}

// NavigateBack pops the most recent history entry and re-navigates to
// the new top of history. With fewer than two entries it does nothing
// and returns nil.
func (n *Navigator) NavigateBack() (any, error) {
	if n.history.Len() < 2 {
		return nil, nil
	}

	n.history.Pop()
	previous, _ := n.history.Peek()

	route, instanceID, endpoint := parseFleetKey(previous)
	var opts []NavigateOption
	if instanceID != "" {
		opts = append(opts, WithInstanceID(instanceID))
	}
	if endpoint != "" {
		opts = append(opts, WithEndpoint(endpoint))
	}
	return n.Navigate(routing.Key(route), opts...)
}

// Instance returns the live UI instance for a route's slot without
// navigating, or nil when none is tracked.
func (n *Navigator) Instance(route routing.Route, opts ...NavigateOption) any {
	var cfg navigateConfig
	for _, opt := range opts {
		opt(&cfg)
	}
	slot := cfg.instanceID
	if slot == "" {
		slot = defaultSlot
	}
	if h := n.fleet[routing.KeyOf(route)][slot]; h != nil {
		return h.NativeWidget()
	}
	return nil
}

// ActiveNavigations returns every currently visible fleet entry, keyed
// "route#slot".
func (n *Navigator) ActiveNavigations() map[string]any {
	active := make(map[string]any)
	for routeKey, slots := range n.fleet {
		for slot, handle := range slots {
			if handle != nil && !handle.IsHidden() {
				active[routeKey+"#"+slot] = handle.NativeWidget()
			}
		}
	}
	return active
}

// Release removes the navigator's bookkeeping (fleet and history) for a
// route without closing the underlying widgets, handing lifecycle
// control back to the caller. It reports false when the route has no
// tracked instances.
func (n *Navigator) Release(route routing.Route) bool {
	routeKey := routing.KeyOf(route)
	if _, ok := n.fleet[routeKey]; !ok {
		return false
	}

	delete(n.fleet, routeKey)
	n.history.RemoveFunc(func(fleetKey string) bool {
		r, _, _ := parseFleetKey(fleetKey)
		return r == routeKey
	})
	if r, _, _ := parseFleetKey(n.currentRoute); r == routeKey {
		n.currentRoute = ""
		if top, ok := n.history.Peek(); ok {
			n.currentRoute = top
		}
	}

	n.log.Debug("released route from fleet", "route", routeKey)
	return true
}

// ClearFleet closes every visible instance and resets fleet, history,
// and the current-route pointer.
func (n *Navigator) ClearFleet() {
	for _, slots := range n.fleet {
		for _, handle := range slots {
			if handle != nil && !handle.IsHidden() {
				handle.Close()
			}
		}
	}
	n.fleet = make(map[string]map[string]widget.Handle)
	n.history.Clear()
	n.currentRoute = ""
	n.log.Debug("fleet cleared")
}

// CurrentRoute returns the fleet key of the most recent navigation, or
// "" before any navigation.
func (n *Navigator) CurrentRoute() string { return n.currentRoute }

// NavigationHistory returns a copy of the history, oldest first.
func (n *Navigator) NavigationHistory() []string { return n.history.Entries() }

// AddRoutePattern registers an additional route naming pattern on the
// navigator's validator.
func (n *Navigator) AddRoutePattern(pattern string) error {
	return n.validator.AddRoutePattern(pattern)
}

// AddParameterRule registers a parameter predicate on the navigator's
// validator.
func (n *Navigator) AddParameterRule(name string, rule validation.Rule) {
	n.validator.AddParameterRule(name, rule)
}

// SetPermissionChecker installs a custom permission callback on the
// security gate, optionally with the parameter names that carry user
// identity.
func (n *Navigator) SetPermissionChecker(checker validation.PermissionChecker, identityParams ...string) {
	if len(identityParams) > 0 {
		n.security.SetIdentityParams(identityParams...)
	}
	n.security.SetPermissionChecker(checker)
}

// makeFleetKey derives the key identifying one live instance among
// possibly many for the same route: route[@endpoint][#instance].
func makeFleetKey(routeKey, instanceID, endpoint string) string {
	key := routeKey
	if endpoint != "" {
		key += "@" + endpoint
	}
	if instanceID != "" {
		key += "#" + instanceID
	}
	return key
}

// parseFleetKey splits a fleet key back into route, instance id, and
// endpoint.
func parseFleetKey(fleetKey string) (routeKey, instanceID, endpoint string) {
	routeKey = fleetKey
	if i := strings.IndexByte(routeKey, '#'); i >= 0 {
		instanceID = routeKey[i+1:]
		routeKey = routeKey[:i]
	}
	if i := strings.IndexByte(routeKey, '@'); i >= 0 {
		endpoint = routeKey[i+1:]
		routeKey = routeKey[:i]
	}
	return routeKey, instanceID, endpoint
}
