package navix

import (
	"errors"
	"fmt"
)

// ErrInterceptorBlocked indicates the interceptor chain vetoed a
// navigation. This is normal flow control, not an infrastructure
// failure.
var ErrInterceptorBlocked = errors.New("navigation blocked by interceptor")

// NavigationError is the single error type surfaced by Navigate. It
// wraps the specific cause (a *validation.RouteInvalidError,
// *validation.ParameterInvalidError, *validation.SecurityDeniedError,
// routing.ErrNotFound, ErrInterceptorBlocked, or *CreationError), which
// callers inspect with errors.Is and errors.As rather than matching on
// NavigationError subtypes.
type NavigationError struct {
	Route string // Route key the navigation targeted
	Err   error  // Underlying cause
}

func (e *NavigationError) Error() string {
	return fmt.Sprintf("navix: navigate to %q: %v", e.Route, e.Err)
}

func (e *NavigationError) Unwrap() error {
	return e.Err
}

// CreationError indicates a route's UI factory failed or panicked.
type CreationError struct {
	Route string
	Err   error
}

func (e *CreationError) Error() string {
	return fmt.Sprintf("navix: create instance for %q: %v", e.Route, e.Err)
}

func (e *CreationError) Unwrap() error {
	return e.Err
}

// IsNavigationError checks if an error is a navigation error.
func IsNavigationError(err error) bool {
	var navErr *NavigationError
	return errors.As(err, &navErr)
}

// IsBlocked checks if an error indicates an interceptor veto.
func IsBlocked(err error) bool {
	return errors.Is(err, ErrInterceptorBlocked)
}
