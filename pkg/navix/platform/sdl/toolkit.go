// Package sdl adapts SDL2 windows to the navix widget capability
// interfaces. It is the reference toolkit adapter; factories registered
// with a navigator using this toolkit must produce *sdl.Window values
// (or types exposing one through a Window() method).
package sdl

import (
	"fmt"
	"log/slog"

	"github.com/veandco/go-sdl2/sdl"

	"github.com/xianghaizheng/Navix-UI-Navigator/pkg/navix/internal"
	"github.com/xianghaizheng/Navix-UI-Navigator/pkg/navix/widget"
)

// WindowProvider is implemented by application widget types that embed
// an SDL window rather than being one.
type WindowProvider interface {
	Window() *sdl.Window
}

// Toolkit implements widget.Toolkit over SDL2.
type Toolkit struct {
	log *slog.Logger
}

// New returns the SDL2 toolkit adapter. SDL video must be initialized
// before the first navigation.
func New() *Toolkit {
	return &Toolkit{log: internal.GetFrameworkLogger()}
}

// Name identifies the adapter.
func (*Toolkit) Name() string { return "sdl2" }

// Create invokes the factory on the calling goroutine. SDL requires all
// window operations on the main thread; the navigator's single-threaded
// model satisfies that as long as navigation runs on the event loop.
func (*Toolkit) Create(factory widget.Factory, params map[string]any) (any, error) {
	return factory(params)
}

// Wrap adapts a created instance to the Handle capability set.
func (t *Toolkit) Wrap(instance any) (widget.Handle, error) {
	switch w := instance.(type) {
	case *sdl.Window:
		return &windowHandle{instance: instance, window: w, log: t.log}, nil
	case WindowProvider:
		return &windowHandle{instance: instance, window: w.Window(), log: t.log}, nil
	default:
		return nil, fmt.Errorf("sdl: %T is not an SDL window", instance)
	}
}

// windowHandle wraps one SDL window.
type windowHandle struct {
	instance any
	window   *sdl.Window
	log      *slog.Logger
}

func (h *windowHandle) Show() { h.window.Show() }

func (h *windowHandle) Hide() { h.window.Hide() }

func (h *windowHandle) Close() { h.window.Destroy() }

func (h *windowHandle) IsHidden() bool {
	return h.window.GetFlags()&sdl.WINDOW_SHOWN == 0
}

// SetParent is a no-op: SDL2 has no window reparenting.
func (h *windowHandle) SetParent(parent any) {
	h.log.Debug("sdl: window reparenting not supported", "parent", fmt.Sprintf("%T", parent))
}

func (h *windowHandle) BringToFront() { h.window.Raise() }

func (h *windowHandle) NativeWidget() any { return h.instance }
