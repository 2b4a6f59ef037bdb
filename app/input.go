package app

import (
	"math"

	"earthscene/hal"
)

type dragMode uint8

const (
	dragNone dragMode = iota
	dragRotate
	dragPan
)

type point struct{ x, y float64 }

// inputState tracks mouse drags and active touches between events.
type inputState struct {
	mode dragMode
	last point

	touches map[int]point
	// pinch is the distance and midpoint of the last two-finger sample.
	pinchDist float64
	pinchMid  point
}

// drainInput hands queued events to the panel first and the orbit controls
// second.
func (a *App) drainInput() {
	in := a.h.Input()
	if in == nil {
		return
	}
	if kb := in.Keyboard(); kb != nil {
	keys:
		for {
			select {
			case ev := <-kb.Events():
				a.panel.HandleKey(ev)
			default:
				break keys
			}
		}
	}
	if ptr := in.Pointer(); ptr != nil {
		for {
			select {
			case ev := <-ptr.Events():
				a.handlePointer(ev)
			default:
				return
			}
		}
	}
}

func (a *App) handlePointer(ev hal.PointerEvent) {
	consumed := a.panel.HandlePointer(ev)
	if consumed && ev.Kind != hal.PointerUp {
		return
	}
	if ev.Touch {
		a.handleTouch(ev)
		return
	}

	h := a.surfaceHeight()
	s := &a.input
	p := point{ev.X, ev.Y}
	switch ev.Kind {
	case hal.PointerDown:
		switch {
		case ev.Button == hal.ButtonLeft && !ev.Shift:
			s.mode = dragRotate
		default:
			s.mode = dragPan
		}
		s.last = p
	case hal.PointerMove:
		dx, dy := float32(p.x-s.last.x), float32(p.y-s.last.y)
		switch s.mode {
		case dragRotate:
			a.controls.Rotate(dx, dy, h)
		case dragPan:
			a.controls.Pan(dx, dy, h)
		}
		s.last = p
	case hal.PointerUp:
		s.mode = dragNone
	case hal.PointerWheel:
		switch {
		case ev.WheelY > 0:
			a.controls.Dolly(1)
		case ev.WheelY < 0:
			a.controls.Dolly(-1)
		}
	}
}

// handleTouch rotates with one finger and pinches and pans with two.
func (a *App) handleTouch(ev hal.PointerEvent) {
	s := &a.input
	if s.touches == nil {
		s.touches = make(map[int]point)
	}
	h := a.surfaceHeight()
	p := point{ev.X, ev.Y}

	switch ev.Kind {
	case hal.PointerDown:
		s.touches[ev.ID] = p
		s.resetPinch()
	case hal.PointerUp:
		delete(s.touches, ev.ID)
		s.resetPinch()
	case hal.PointerMove:
		prev, ok := s.touches[ev.ID]
		if !ok {
			return
		}
		s.touches[ev.ID] = p
		switch len(s.touches) {
		case 1:
			a.controls.Rotate(float32(p.x-prev.x), float32(p.y-prev.y), h)
		case 2:
			dist, mid := s.pinch()
			if s.pinchDist > 0 && dist > 0 {
				a.controls.DollyScale(float32(dist / s.pinchDist))
			}
			a.controls.Pan(float32(mid.x-s.pinchMid.x), float32(mid.y-s.pinchMid.y), h)
			s.pinchDist, s.pinchMid = dist, mid
		}
	}
}

func (s *inputState) resetPinch() {
	s.pinchDist, s.pinchMid = 0, point{}
	if len(s.touches) == 2 {
		s.pinchDist, s.pinchMid = s.pinch()
	}
}

// pinch returns the distance and midpoint of the first two touches.
func (s *inputState) pinch() (float64, point) {
	var pts []point
	for _, p := range s.touches {
		pts = append(pts, p)
		if len(pts) == 2 {
			break
		}
	}
	if len(pts) < 2 {
		return 0, point{}
	}
	dx, dy := pts[1].x-pts[0].x, pts[1].y-pts[0].y
	return math.Hypot(dx, dy), point{(pts[0].x + pts[1].x) / 2, (pts[0].y + pts[1].y) / 2}
}

func (a *App) surfaceHeight() int {
	if d := a.h.Display(); d != nil {
		if fb := d.Framebuffer(); fb != nil {
			return fb.Height()
		}
	}
	return 0
}
