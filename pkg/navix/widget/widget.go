// Package widget defines the toolkit-neutral capability surface that the
// navigator depends on. The core never touches a GUI toolkit directly; it
// creates UI instances through a Factory, drives their lifecycle through a
// Toolkit, and tracks them behind Handle.
//
// One Toolkit adapter exists per GUI toolkit and is selected once at
// startup (see platform/sdl for the SDL2 adapter). Tests supply their own
// in-memory implementations.
package widget

// Factory constructs a UI instance from creation parameters. It is the
// Go analogue of registering a UI class with a route: applications
// register a Factory per route and the navigator invokes it during
// navigation with the route's static metadata merged with the caller's
// parameters.
type Factory func(params map[string]any) (any, error)

// Handle wraps one live UI instance behind a toolkit-neutral API.
// The navigator's fleet stores Handles, never raw toolkit objects.
type Handle interface {
	Show()
	Hide()
	Close()
	IsHidden() bool
	SetParent(parent any)
	BringToFront()

	// NativeWidget returns the unwrapped toolkit instance.
	NativeWidget() any
}

// Toolkit is the UI-lifecycle capability: it creates instances and maps
// them onto Handles. Implementations adapt exactly one GUI toolkit.
type Toolkit interface {
	// Create invokes the factory. Adapters may perform toolkit-side setup
	// around construction (object registration, thread affinity checks).
	Create(factory Factory, params map[string]any) (any, error)

	// Wrap adapts a created instance to the Handle capability set.
	// Wrap fails if the instance is not a widget of this toolkit.
	Wrap(instance any) (Handle, error)

	// Name identifies the toolkit ("sdl2", "headless", ...).
	Name() string
}
