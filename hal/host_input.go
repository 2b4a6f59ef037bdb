//go:build js || cgo

package hal

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

var mouseButtons = [...]struct {
	eb ebiten.MouseButton
	b  Button
}{
	{ebiten.MouseButtonLeft, ButtonLeft},
	{ebiten.MouseButtonRight, ButtonRight},
	{ebiten.MouseButtonMiddle, ButtonMiddle},
}

func (g *hostGame) pollInput() {
	g.pollPointer()
	g.pollTouches()
	g.pollKeyboard()
}

func (g *hostGame) pollPointer() {
	p := g.h.ptr
	x, y := ebiten.CursorPosition()
	shift := ebiten.IsKeyPressed(ebiten.KeyShift)
	at := func(kind PointerKind, b Button) PointerEvent {
		return PointerEvent{Kind: kind, X: float64(x), Y: float64(y), Button: b, Shift: shift}
	}

	if x != g.cursorX || y != g.cursorY {
		g.cursorX, g.cursorY = x, y
		p.emit(at(PointerMove, ButtonLeft))
	}
	for _, mb := range mouseButtons {
		if inpututil.IsMouseButtonJustPressed(mb.eb) {
			p.emit(at(PointerDown, mb.b))
		}
		if inpututil.IsMouseButtonJustReleased(mb.eb) {
			p.emit(at(PointerUp, mb.b))
		}
	}
	if wx, wy := ebiten.Wheel(); wx != 0 || wy != 0 {
		ev := at(PointerWheel, ButtonLeft)
		ev.WheelX, ev.WheelY = wx, wy
		p.emit(ev)
	}
}

func (g *hostGame) pollTouches() {
	p := g.h.ptr
	if g.touches == nil {
		g.touches = make(map[ebiten.TouchID][2]int)
	}
	touch := func(kind PointerKind, id ebiten.TouchID, x, y int) {
		p.emit(PointerEvent{Kind: kind, ID: int(id) + 1, Touch: true, X: float64(x), Y: float64(y)})
	}

	for _, id := range inpututil.AppendJustReleasedTouchIDs(nil) {
		x, y := inpututil.TouchPositionInPreviousTick(id)
		delete(g.touches, id)
		touch(PointerUp, id, x, y)
	}
	for _, id := range inpututil.AppendJustPressedTouchIDs(nil) {
		x, y := ebiten.TouchPosition(id)
		g.touches[id] = [2]int{x, y}
		touch(PointerDown, id, x, y)
	}
	g.touchBuf = ebiten.AppendTouchIDs(g.touchBuf[:0])
	for _, id := range g.touchBuf {
		x, y := ebiten.TouchPosition(id)
		if last, ok := g.touches[id]; ok && last != [2]int{x, y} {
			g.touches[id] = [2]int{x, y}
			touch(PointerMove, id, x, y)
		}
	}
}

func (g *hostGame) pollKeyboard() {
	k := g.h.kbd
	for _, r := range ebiten.AppendInputChars(nil) {
		k.emit(KeyEvent{Press: true, Rune: r})
	}
	for _, key := range [...]struct {
		eb   ebiten.Key
		code KeyCode
	}{
		{ebiten.KeyEnter, KeyEnter},
		{ebiten.KeyEscape, KeyEscape},
		{ebiten.KeyBackspace, KeyBackspace},
	} {
		if inpututil.IsKeyJustPressed(key.eb) {
			k.emit(KeyEvent{Code: key.code, Press: true})
		}
		if inpututil.IsKeyJustReleased(key.eb) {
			k.emit(KeyEvent{Code: key.code})
		}
	}
}
