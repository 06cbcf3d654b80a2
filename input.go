package brainmap

import (
	"math"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
)

// Pointer slot 0 is the mouse; slots 1-2 are the first two touches. Touches
// beyond the first two carry no defined gesture meaning and are ignored.
const maxPointers = 3

// MouseButton identifies a mouse button for pointer processing.
type MouseButton uint8

const (
	MouseButtonLeft  MouseButton = iota // primary: pan, tap, double-click
	MouseButtonRight                    // secondary: context menu
)

// pointerState tracks one pointer through a press-move-release cycle.
// Coordinates are logical canvas units.
type pointerState struct {
	down   bool
	button MouseButton

	startX, startY float64
	lastX, lastY   float64
	pressedAt      time.Time

	// moved flips once movement exceeds the tolerance; it cancels any
	// pending tap or long-press and arms the pan.
	moved bool
	// menuFired marks that this press already opened the long-press menu.
	menuFired bool
	// consumed marks a press that was spent on UI (menu activation, edit
	// commit) and must not pan, tap or long-press.
	consumed bool

	// panBase is the viewport offset when the press started; pan recomputes
	// from it so intermediate deltas never accumulate error.
	panBaseX, panBaseY float64

	// hitID is the node under the pointer at press time, if any.
	hitID string
}

// pinchState is the anchor state of an in-flight two-touch gesture.
type pinchState struct {
	active           bool
	startCX, startCY float64
	startDist        float64
	refZoom          float64
	refOffX, refOffY float64
}

type tapState struct {
	at   time.Time
	x, y float64
}

type syntheticEvent struct {
	pointer int
	x, y    float64
	pressed bool
	button  MouseButton
}

// gestures is per-diagram input state. Two diagrams on one screen never
// share it.
type gestures struct {
	pointers [maxPointers]pointerState
	pinch    pinchState
	lastTap  *tapState

	touchMap    [maxPointers]ebiten.TouchID
	touchUsed   [maxPointers]bool
	touchIDsBuf []ebiten.TouchID
	charBuf     []rune

	// now is the clock used for tap and long-press timing; tests swap it.
	now func() time.Time

	inject []syntheticEvent
}

// --- Synthetic input ---
//
// Injected events run through the exact pointer state machine that real
// input does, one event per Update, so scripted interaction and headless
// tests behave like a user. Coordinates are logical canvas units.

// InjectPress queues a pointer press for the given slot (0 = mouse,
// 1-2 = touches).
func (d *Diagram) InjectPress(pointer int, x, y float64, button MouseButton) {
	d.g.inject = append(d.g.inject, syntheticEvent{pointer: pointer, x: x, y: y, pressed: true, button: button})
}

// InjectMove queues a pointer move with the button held down.
func (d *Diagram) InjectMove(pointer int, x, y float64) {
	d.g.inject = append(d.g.inject, syntheticEvent{pointer: pointer, x: x, y: y, pressed: true})
}

// InjectRelease queues a pointer release.
func (d *Diagram) InjectRelease(pointer int, x, y float64) {
	d.g.inject = append(d.g.inject, syntheticEvent{pointer: pointer, x: x, y: y, pressed: false})
}

// InjectTap queues a press immediately followed by a release.
func (d *Diagram) InjectTap(pointer int, x, y float64) {
	d.InjectPress(pointer, x, y, MouseButtonLeft)
	d.InjectRelease(pointer, x, y)
}

// --- Polling ---

// processInput handles one frame of input. Synthetic events take the frame
// over from real device polling so scripted input cannot interleave with a
// live mouse.
func (d *Diagram) processInput() {
	if d.processInjected() {
		d.detectPinch()
		d.updateLongPress()
		return
	}
	d.pollMouse()
	d.pollTouches()
	d.detectPinch()
	d.updateLongPress()
}

func (d *Diagram) processInjected() bool {
	if len(d.g.inject) == 0 {
		return false
	}
	evt := d.g.inject[0]
	copy(d.g.inject, d.g.inject[1:])
	d.g.inject = d.g.inject[:len(d.g.inject)-1]
	if evt.pointer < 0 || evt.pointer >= maxPointers {
		return true
	}
	d.processPointer(evt.pointer, evt.x, evt.y, evt.pressed, evt.button)
	return true
}

func (d *Diagram) pollMouse() {
	mx, my := ebiten.CursorPosition()
	lx, ly := d.view.ScreenToLogical(float64(mx), float64(my))

	if _, wy := ebiten.Wheel(); wy != 0 {
		d.handleWheel(wy)
	}

	ps := &d.g.pointers[0]
	left := ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft)
	right := ebiten.IsMouseButtonPressed(ebiten.MouseButtonRight)

	switch {
	case ps.down:
		// Keep the button captured at press time for the whole interaction.
		d.processPointer(0, lx, ly, left || right, ps.button)
	case right:
		d.processPointer(0, lx, ly, true, MouseButtonRight)
	default:
		d.processPointer(0, lx, ly, left, MouseButtonLeft)
	}
}

func (d *Diagram) pollTouches() {
	d.g.touchIDsBuf = ebiten.AppendTouchIDs(d.g.touchIDsBuf[:0])

	var active [maxPointers]bool
	for _, tid := range d.g.touchIDsBuf {
		slot := d.touchSlot(tid)
		if slot < 0 {
			continue
		}
		active[slot] = true
		tx, ty := ebiten.TouchPosition(tid)
		lx, ly := d.view.ScreenToLogical(float64(tx), float64(ty))
		d.processPointer(slot, lx, ly, true, MouseButtonLeft)
	}

	for i := 1; i < maxPointers; i++ {
		if d.g.touchUsed[i] && !active[i] {
			ps := &d.g.pointers[i]
			if ps.down {
				d.processPointer(i, ps.lastX, ps.lastY, false, MouseButtonLeft)
			}
			d.g.touchUsed[i] = false
			d.g.touchMap[i] = 0
		}
	}
}

// touchSlot maps an ebiten.TouchID to slot 1 or 2. Returns the existing
// mapping, allocates a free slot, or -1 when both slots are taken.
func (d *Diagram) touchSlot(tid ebiten.TouchID) int {
	for i := 1; i < maxPointers; i++ {
		if d.g.touchUsed[i] && d.g.touchMap[i] == tid {
			return i
		}
	}
	for i := 1; i < maxPointers; i++ {
		if !d.g.touchUsed[i] {
			d.g.touchUsed[i] = true
			d.g.touchMap[i] = tid
			return i
		}
	}
	return -1
}

// --- Pointer state machine ---

func (d *Diagram) handleWheel(wy float64) {
	if d.ed.state == editEditing {
		return
	}
	if wy > 0 {
		d.view.ZoomStep(d.opts.ZoomStep)
	} else {
		d.view.ZoomStep(1 / d.opts.ZoomStep)
	}
}

func (d *Diagram) processPointer(id int, lx, ly float64, pressed bool, button MouseButton) {
	ps := &d.g.pointers[id]
	switch {
	case pressed && !ps.down:
		d.pointerDown(ps, lx, ly, button)
	case !pressed && ps.down:
		d.pointerUp(ps, lx, ly)
	case pressed && ps.down:
		d.pointerMove(ps, lx, ly)
	}
	ps.lastX, ps.lastY = lx, ly
}

func (d *Diagram) pointerDown(ps *pointerState, lx, ly float64, button MouseButton) {
	ps.down = true
	ps.button = button
	ps.startX, ps.startY = lx, ly
	ps.lastX, ps.lastY = lx, ly
	ps.pressedAt = d.g.now()
	ps.moved = false
	ps.menuFired = false
	ps.consumed = false
	ps.panBaseX, ps.panBaseY = d.view.OffsetX, d.view.OffsetY
	ps.hitID = d.nodeAtLogical(lx, ly)

	// An active inline edit owns the input: a press on the edited node is
	// ignored, a press anywhere else commits it. Either way the press is
	// spent — it never starts a pan or another gesture.
	if d.ed.state == editEditing {
		if ps.hitID != d.ed.editID {
			d.commitEdit()
		}
		ps.consumed = true
		return
	}

	// An open menu routes the press: a hit on an item activates it, a press
	// anywhere else closes the menu and the press is swallowed.
	if d.ed.state == editMenuOpen {
		action, hit := d.menuActionAt(lx, ly)
		if hit {
			d.activateMenu(action)
		} else {
			d.closeMenu()
		}
		ps.consumed = true
		return
	}

	if button == MouseButtonRight {
		if ps.hitID != "" {
			d.openMenu(ps.hitID, lx, ly)
		}
		ps.consumed = true
	}
}

func (d *Diagram) pointerMove(ps *pointerState, lx, ly float64) {
	if ps.consumed {
		return
	}
	if !ps.moved && math.Hypot(lx-ps.startX, ly-ps.startY) > d.opts.MoveTolerance {
		ps.moved = true
	}
	// Single-pointer pan is off while the two pinch pointers drive the view.
	if d.g.pinch.active {
		return
	}
	if ps.moved {
		d.view.stopAnim()
		d.view.OffsetX = ps.panBaseX + (lx - ps.startX)
		d.view.OffsetY = ps.panBaseY + (ly - ps.startY)
	}
}

func (d *Diagram) pointerUp(ps *pointerState, lx, ly float64) {
	down := *ps
	ps.down = false
	ps.consumed = false

	if down.consumed || down.moved || down.menuFired {
		return
	}
	if d.g.now().Sub(down.pressedAt) > d.opts.TapWindow {
		return // held too long to count as a tap
	}
	d.registerTap(lx, ly)
}

// registerTap turns two quick taps on the same spot into an inline edit.
func (d *Diagram) registerTap(lx, ly float64) {
	now := d.g.now()
	if t := d.g.lastTap; t != nil &&
		now.Sub(t.at) <= d.opts.TapWindow &&
		math.Hypot(lx-t.x, ly-t.y) <= d.opts.MoveTolerance {
		d.g.lastTap = nil
		if id := d.nodeAtLogical(lx, ly); id != "" {
			d.beginEdit(id)
		}
		return
	}
	d.g.lastTap = &tapState{at: now, x: lx, y: ly}
}

// updateLongPress opens the context menu for a touch that has stayed put
// long enough. Mouse users reach the menu through the right button instead.
func (d *Diagram) updateLongPress() {
	for i := 1; i < maxPointers; i++ {
		ps := &d.g.pointers[i]
		if !ps.down || ps.consumed || ps.moved || ps.menuFired {
			continue
		}
		if d.g.pinch.active {
			continue
		}
		if d.g.now().Sub(ps.pressedAt) < d.opts.LongPressDelay {
			continue
		}
		ps.menuFired = true
		if ps.hitID != "" {
			d.openMenu(ps.hitID, ps.lastX, ps.lastY)
		}
	}
}

// detectPinch drives the viewport while exactly two touch pointers are down
// and hands pan control back cleanly when one lifts.
func (d *Diagram) detectPinch() {
	p1 := &d.g.pointers[1]
	p2 := &d.g.pointers[2]
	twoDown := p1.down && !p1.consumed && p2.down && !p2.consumed

	if twoDown {
		cx := (p1.lastX + p2.lastX) / 2
		cy := (p1.lastY + p2.lastY) / 2
		dist := math.Hypot(p2.lastX-p1.lastX, p2.lastY-p1.lastY)

		pin := &d.g.pinch
		if !pin.active {
			pin.active = true
			pin.startCX, pin.startCY = cx, cy
			pin.startDist = dist
			pin.refZoom = d.view.Zoom
			pin.refOffX, pin.refOffY = d.view.OffsetX, d.view.OffsetY
			// The pinch claims both pointers: no taps or long-presses.
			p1.moved = true
			p2.moved = true
		} else if pin.startDist > 0 {
			scale := dist / pin.startDist
			d.view.applyPinch(pin.refZoom, pin.refOffX, pin.refOffY,
				pin.startCX, pin.startCY, cx, cy, scale)
		}
		return
	}

	if d.g.pinch.active {
		d.g.pinch.active = false
		// Two-touch → one-touch: restart the survivor's pan from the current
		// offset so the view does not snap.
		for i := 1; i < maxPointers; i++ {
			ps := &d.g.pointers[i]
			if ps.down && !ps.consumed {
				ps.startX, ps.startY = ps.lastX, ps.lastY
				ps.panBaseX, ps.panBaseY = d.view.OffsetX, d.view.OffsetY
				ps.moved = true
			}
		}
	}
}
