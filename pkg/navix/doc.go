// Package navix provides route-based window navigation for desktop GUI
// applications: routes map to UI factories, and a central Navigator
// creates, shows, and tracks the resulting instances through a pipeline
// of validation, security checks, and interceptors, with navigation
// history and a shared data-container store for passing state between
// windows.
//
// # Basic Usage
//
//	// Declare routes as typed constants
//	const (
//	    RouteAssetBrowser = routing.Key("asset.browser")
//	    RouteAssetDetail  = routing.Key("asset.detail")
//	)
//
//	// Build a navigator against a toolkit adapter
//	nav, err := navix.New(navix.Options{Toolkit: sdl.New()})
//	if err != nil {
//	    return err
//	}
//
//	// Register routes with their UI factories
//	nav.Register(RouteAssetBrowser, newBrowserWindow, routing.Singleton())
//	nav.Register(RouteAssetDetail, newDetailWindow)
//
//	// Navigate
//	instance, err := nav.Navigate(RouteAssetBrowser,
//	    navix.WithParam("collection", "textures"))
//
// Navigate runs the full pipeline (validation, security, interceptors,
// registry lookup, singleton reuse, creation) and returns the live UI
// instance. Every failure surfaces as a *NavigationError wrapping the
// specific cause; inspect it with errors.Is and errors.As:
//
//	_, err = nav.Navigate(routing.Key("no.such_route"))
//	var nf *navix.NavigationError
//	if errors.As(err, &nf) && errors.Is(err, routing.ErrNotFound) {
//	    // unknown route
//	}
//
// # Multi-Instance Navigation
//
// A route may have several live instances, addressed by instance id and
// optionally tagged with an endpoint:
//
//	nav.Navigate(RouteAssetDetail, navix.WithInstanceID("tex-41"))
//	nav.Navigate(RouteAssetDetail, navix.WithInstanceID("tex-42"))
//	nav.ActiveNavigations() // two entries
//
// # Shared State
//
// Each route owns a data container that outlives its windows. Windows
// exchange state through it, and its status tracks the UI lifecycle
// (empty, prepared, active, orphaned):
//
//	c := nav.Containers().Container(RouteAssetDetail)
//	c.Set("selected", assetID)
//
// See the container package for typed references and persistence.
package navix
