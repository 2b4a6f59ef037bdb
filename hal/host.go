package hal

import (
	"log/slog"
	"time"
)

type hostHAL struct {
	logger *slog.Logger
	fb     *hostFramebuffer
	kbd    *hostKeyboard
	ptr    *hostPointer
	clock  Clock
}

// New returns a host HAL implementation with a wall clock.
func New(logger *slog.Logger) HAL {
	return newHost(logger, &wallClock{start: time.Now()})
}

func newHost(logger *slog.Logger, clock Clock) *hostHAL {
	if logger == nil {
		logger = slog.Default()
	}
	return &hostHAL{
		logger: logger,
		fb:     newHostFramebuffer(1, 1),
		kbd:    &hostKeyboard{ch: make(chan KeyEvent, 64)},
		ptr:    &hostPointer{ch: make(chan PointerEvent, 256)},
		clock:  clock,
	}
}

func (h *hostHAL) Logger() *slog.Logger { return h.logger }
func (h *hostHAL) Display() Display     { return hostDisplay{fb: h.fb} }
func (h *hostHAL) Input() Input         { return hostInput{kbd: h.kbd, ptr: h.ptr} }
func (h *hostHAL) Clock() Clock         { return h.clock }

type hostDisplay struct {
	fb *hostFramebuffer
}

func (d hostDisplay) Framebuffer() Framebuffer { return d.fb }

type hostInput struct {
	kbd *hostKeyboard
	ptr *hostPointer
}

func (in hostInput) Keyboard() Keyboard { return in.kbd }
func (in hostInput) Pointer() Pointer   { return in.ptr }

type hostKeyboard struct {
	ch chan KeyEvent
}

func (k *hostKeyboard) Events() <-chan KeyEvent { return k.ch }

func (k *hostKeyboard) emit(ev KeyEvent) {
	select {
	case k.ch <- ev:
	default:
	}
}

type hostPointer struct {
	ch chan PointerEvent
}

func (p *hostPointer) Events() <-chan PointerEvent { return p.ch }

func (p *hostPointer) emit(ev PointerEvent) {
	select {
	case p.ch <- ev:
	default:
	}
}
