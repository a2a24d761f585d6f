package navix

import (
	"log/slog"

	"github.com/xianghaizheng/Navix-UI-Navigator/pkg/navix/container"
	"github.com/xianghaizheng/Navix-UI-Navigator/pkg/navix/eventbus"
	"github.com/xianghaizheng/Navix-UI-Navigator/pkg/navix/intercept"
	"github.com/xianghaizheng/Navix-UI-Navigator/pkg/navix/internal"
	"github.com/xianghaizheng/Navix-UI-Navigator/pkg/navix/routing"
	"github.com/xianghaizheng/Navix-UI-Navigator/pkg/navix/validation"
	"github.com/xianghaizheng/Navix-UI-Navigator/pkg/navix/widget"
)

// Options configures a Navigator. Only Toolkit is required; every other
// collaborator is created with defaults when nil, and the zero values of
// the flags keep validation and security enabled.
type Options struct {
	Toolkit widget.Toolkit // GUI toolkit adapter (required)

	Registry     *routing.Registry        // route table (default: new empty registry)
	Validator    *validation.Validator    // route/parameter validation (default: standard rules)
	SecurityGate *validation.SecurityGate // permission checks (default: allow-all gate)
	Interceptors *intercept.Chain         // pre-navigation gates (default: empty chain)
	Events       *eventbus.Bus            // lifecycle pub/sub (default: new bus)
	Containers   *container.Manager       // shared data store (default: new store)

	MaxHistory        int  // navigation history bound (default 50)
	DisableValidation bool // skip route/parameter validation
	DisableSecurity   bool // skip the security gate

	LogPath  string // log file path; empty means stdout only
	LogLevel string // "debug", "info", "warn", "error"; empty means info
}

func (o *Options) applyDefaults() {
	if o.Registry == nil {
		o.Registry = routing.NewRegistry()
	}
	if o.Validator == nil {
		o.Validator = validation.NewValidator()
	}
	if o.SecurityGate == nil {
		o.SecurityGate = validation.NewSecurityGate()
	}
	if o.Interceptors == nil {
		o.Interceptors = intercept.NewChain()
	}
	if o.Events == nil {
		o.Events = eventbus.NewBus()
	}
	if o.Containers == nil {
		o.Containers = container.NewManager()
	}
	if o.MaxHistory <= 0 {
		o.MaxHistory = defaultMaxHistory
	}
}

// SetLogPath sets the full path for the log file, including filename.
// Creates all necessary parent directories. Call before the first
// logging call to take effect.
func SetLogPath(path string) {
	internal.SetLogPath(path)
}

// GetLogger returns the application logger for structured logging.
func GetLogger() *slog.Logger {
	return internal.GetLogger()
}

// SetLogLevel sets the minimum log level for the application logger.
func SetLogLevel(level slog.Level) {
	internal.SetLogLevel(level)
}

// SetRawLogLevel parses and sets the log level from a string (e.g.
// "debug", "info", "error").
func SetRawLogLevel(level string) {
	internal.SetRawLogLevel(level)
}

// navigateConfig collects per-call navigation settings.
type navigateConfig struct {
	parent     any
	instanceID string
	endpoint   string
	forceNew   bool
	params     map[string]any
}

// NavigateOption configures a single Navigate call.
type NavigateOption func(*navigateConfig)

// WithParent attaches the created widget to a parent.
func WithParent(parent any) NavigateOption {
	return func(c *navigateConfig) { c.parent = parent }
}

// WithInstanceID addresses a named instance slot, enabling several live
// instances of one route.
func WithInstanceID(id string) NavigateOption {
	return func(c *navigateConfig) { c.instanceID = id }
}

// WithEndpoint tags the navigation with an endpoint discriminator that
// becomes part of the fleet key.
func WithEndpoint(endpoint string) NavigateOption {
	return func(c *navigateConfig) { c.endpoint = endpoint }
}

// ForceNew skips instance reuse and always creates a fresh instance.
func ForceNew() NavigateOption {
	return func(c *navigateConfig) { c.forceNew = true }
}

// WithParam adds one navigation parameter.
func WithParam(name string, value any) NavigateOption {
	return func(c *navigateConfig) {
		if c.params == nil {
			c.params = make(map[string]any)
		}
		c.params[name] = value
	}
}

// WithParams merges navigation parameters.
func WithParams(params map[string]any) NavigateOption {
	return func(c *navigateConfig) {
		if c.params == nil {
			c.params = make(map[string]any, len(params))
		}
		for k, v := range params {
			c.params[k] = v
		}
	}
}
