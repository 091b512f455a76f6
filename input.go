package evergreen

import (
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// --- Constants ---

const (
	maxPointers         = 10  // pointer 0 = mouse, 1-9 = touch
	defaultDragDeadZone = 4.0 // pixels

	// orbitSensitivity is the camera rotation in radians per dragged pixel.
	orbitSensitivity = 0.005
	// wheelZoomStep is the distance factor applied per wheel notch.
	wheelZoomStep = 0.9
	// pickSlack enlarges the particle disc used for tap picking.
	pickSlack = 1.5
)

// pointerTarget is what a press landed on.
type pointerTarget uint8

const (
	targetSurface pointerTarget = iota
	targetButton
)

// --- Per-pointer state ---

type pointerState struct {
	down     bool
	startX   float64
	startY   float64
	lastX    float64
	lastY    float64
	target   pointerTarget
	dragging bool
	button   MouseButton // button captured at press time
}

// --- Pinch state ---

type pinchState struct {
	active   bool
	pointer0 int
	pointer1 int
	prevDist float64
}

// SetDragDeadZone sets the minimum movement in pixels before a drag starts.
func (s *Scene) SetDragDeadZone(pixels float64) {
	s.dragDeadZone = pixels
}

// --- Input processing ---

// processInput is called from Scene.Update() to handle keyboard, mouse and
// touch input. Handlers only flip shell flags or move the camera; nothing
// here steps the animation.
func (s *Scene) processInput() {
	s.processKeys()
	if !s.processInjectedInput() {
		s.processMousePointer()
	}
	s.processTouchPointers()
	s.detectPinch()
}

// processKeys handles the keyboard shortcuts: Space toggles the mode and R
// eases the camera back to its initial orbit.
func (s *Scene) processKeys() {
	if inpututil.IsKeyJustPressed(ebiten.KeySpace) {
		s.Toggle()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyR) {
		s.camera.Reset(1)
	}
}

// processMousePointer handles mouse input (pointer 0) and the wheel.
func (s *Scene) processMousePointer() {
	mx, my := ebiten.CursorPosition()
	sx, sy := float64(mx), float64(my)

	var pressed bool
	var button MouseButton
	left := ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft)
	right := ebiten.IsMouseButtonPressed(ebiten.MouseButtonRight)
	middle := ebiten.IsMouseButtonPressed(ebiten.MouseButtonMiddle)
	if left || right || middle {
		pressed = true
		if left {
			button = MouseButtonLeft
		} else if right {
			button = MouseButtonRight
		} else {
			button = MouseButtonMiddle
		}
	}

	if _, wy := ebiten.Wheel(); wy != 0 {
		s.camera.Zoom(math.Pow(wheelZoomStep, wy))
	}
	s.processPointer(0, sx, sy, pressed, button)
}

// processTouchPointers handles touch input (pointers 1-9).
func (s *Scene) processTouchPointers() {
	touchIDs := ebiten.AppendTouchIDs(s.prevTouchIDs[:0])
	s.prevTouchIDs = touchIDs

	var activeSlots [maxPointers]bool
	for _, tid := range touchIDs {
		slot := s.touchSlot(tid)
		if slot < 0 {
			continue
		}
		activeSlots[slot] = true
		tx, ty := ebiten.TouchPosition(tid)
		s.processPointer(slot, float64(tx), float64(ty), true, MouseButtonLeft)
	}

	for i := 1; i < maxPointers; i++ {
		if s.touchUsed[i] && !activeSlots[i] {
			ps := &s.pointers[i]
			if ps.down {
				s.processPointer(i, ps.lastX, ps.lastY, false, MouseButtonLeft)
			}
			s.touchUsed[i] = false
			s.touchMap[i] = 0
		}
	}
}

// touchSlot maps an ebiten.TouchID to a pointer slot (1-9).
// Returns the existing slot or allocates a new one. Returns -1 if full.
func (s *Scene) touchSlot(tid ebiten.TouchID) int {
	for i := 1; i < maxPointers; i++ {
		if s.touchUsed[i] && s.touchMap[i] == tid {
			return i
		}
	}
	for i := 1; i < maxPointers; i++ {
		if !s.touchUsed[i] {
			s.touchUsed[i] = true
			s.touchMap[i] = tid
			return i
		}
	}
	return -1
}

// processPointer runs the pointer state machine for a single pointer.
// A press on the button becomes a toggle when released over it; a press
// elsewhere becomes an orbit drag once it leaves the dead zone, or a surface
// tap when it does not.
func (s *Scene) processPointer(pointerID int, sx, sy float64, pressed bool, button MouseButton) {
	ps := &s.pointers[pointerID]
	if pointerID == 0 {
		s.button.SetHovered(s.button.Contains(sx, sy))
	}

	switch {
	case pressed && !ps.down:
		ps.down = true
		ps.button = button
		ps.startX, ps.startY = sx, sy
		ps.lastX, ps.lastY = sx, sy
		ps.dragging = false
		ps.target = targetSurface
		if s.button.Contains(sx, sy) {
			ps.target = targetButton
			s.button.SetPressed(true)
		}

	case !pressed && ps.down:
		switch {
		case ps.target == targetButton:
			s.button.SetPressed(false)
			if s.button.Contains(sx, sy) {
				s.Toggle()
			}
		case !ps.dragging && ps.button == MouseButtonLeft:
			s.surfaceTap(sx, sy)
		}
		ps.down = false
		ps.dragging = false

	case pressed && ps.down:
		if sx == ps.lastX && sy == ps.lastY {
			break
		}
		if ps.target == targetSurface && !s.pinch.active {
			if !ps.dragging {
				dx, dy := sx-ps.startX, sy-ps.startY
				if math.Sqrt(dx*dx+dy*dy) > s.dragDeadZone {
					ps.dragging = true
				}
			}
			if ps.dragging {
				s.camera.Orbit(-(sx-ps.lastX)*orbitSensitivity, -(sy-ps.lastY)*orbitSensitivity)
			}
		}
		ps.lastX, ps.lastY = sx, sy

	default:
		ps.lastX, ps.lastY = sx, sy
	}
}

// surfaceTap forwards a tap that hit a particle to the shell.
func (s *Scene) surfaceTap(sx, sy float64) {
	idx := s.PickParticle(sx, sy)
	if idx < 0 {
		return
	}
	s.logger.Debug("surface tap", "particle", idx, "x", sx, "y", sy)
	s.shell.SurfaceTap()
}

// PickParticle returns the index of the nearest particle under the screen
// point (sx, sy), or -1.
func (s *Scene) PickParticle(sx, sy float64) int {
	return s.camera.Pick(s.arena.Positions, s.arena.Scales, particleRadius*pickSlack, sx, sy)
}

// --- Pinch detection ---

// detectPinch zooms the camera by the change in distance between the first
// two touch pointers.
func (s *Scene) detectPinch() {
	p0, p1 := -1, -1
	for i := 1; i < maxPointers; i++ {
		if s.pointers[i].down {
			if p0 < 0 {
				p0 = i
			} else {
				p1 = i
				break
			}
		}
	}
	if p1 < 0 {
		s.pinch.active = false
		return
	}

	a, b := &s.pointers[p0], &s.pointers[p1]
	dist := math.Hypot(b.lastX-a.lastX, b.lastY-a.lastY)
	if !s.pinch.active || s.pinch.pointer0 != p0 || s.pinch.pointer1 != p1 {
		s.pinch = pinchState{active: true, pointer0: p0, pointer1: p1, prevDist: dist}
		// A second finger cancels any pending tap or drag.
		a.dragging, b.dragging = true, true
		return
	}
	if dist > 0 && s.pinch.prevDist > 0 {
		s.camera.Zoom(s.pinch.prevDist / dist)
	}
	s.pinch.prevDist = dist
}
