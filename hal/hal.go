package hal

import (
	"image"
	"log/slog"
	"time"
)

// Framebuffer is an RGBA pixel buffer in device pixels plus a "present" hook.
type Framebuffer interface {
	Width() int
	Height() int
	// Image returns the pixels to draw into. The image is replaced by Resize.
	Image() *image.RGBA
	Resize(width, height int)
	Present() error
}

// Viewport describes the drawing surface in logical (CSS) pixels.
type Viewport struct {
	Width, Height int
	// DeviceScale is device pixels per logical pixel.
	DeviceScale float64
}

// KeyCode is a minimal key identifier for keys that produce no text.
type KeyCode uint16

const (
	KeyUnknown KeyCode = iota
	KeyEnter
	KeyEscape
	KeyBackspace
)

// KeyEvent is a keyboard event. Text input arrives with Code KeyUnknown and a
// non-zero Rune.
type KeyEvent struct {
	Code  KeyCode
	Press bool
	Rune  rune
}

// PointerKind classifies pointer events.
type PointerKind uint8

const (
	PointerDown PointerKind = iota
	PointerMove
	PointerUp
	PointerWheel
)

// Button identifies a mouse button. Touches report ButtonLeft.
type Button uint8

const (
	ButtonLeft Button = iota
	ButtonRight
	ButtonMiddle
)

// PointerEvent is a mouse, wheel or touch event in framebuffer pixels.
type PointerEvent struct {
	Kind   PointerKind
	ID     int // 0 for the mouse, the touch ID otherwise
	Touch  bool
	X, Y   float64
	Button Button
	Shift  bool
	// WheelY is positive when scrolling away from the user.
	WheelX, WheelY float64
}

// Keyboard provides key events (best-effort on each platform).
type Keyboard interface {
	Events() <-chan KeyEvent
}

// Pointer provides mouse, wheel and touch events.
type Pointer interface {
	Events() <-chan PointerEvent
}

// Display provides access to the framebuffer.
type Display interface {
	Framebuffer() Framebuffer
}

// Input provides access to input devices.
type Input interface {
	Keyboard() Keyboard
	Pointer() Pointer
}

// Clock reports time since the program started.
type Clock interface {
	Elapsed() time.Duration
}

// HAL provides the only contact point between the program and the host.
type HAL interface {
	Logger() *slog.Logger
	Display() Display
	Input() Input
	Clock() Clock
}

// Program is what the runners drive. Resize runs before the first Step and
// whenever the viewport changes; both run on the runner's goroutine.
type Program interface {
	Resize(v Viewport)
	Step() error
}
