package main

import (
	"slices"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/milk9111/pathpaint/interact"
)

// PointerInput polls the mouse and the first touch each frame and turns them
// into gesture events. Positions are normalized to the grid rectangle by the
// caller-supplied function.
type PointerInput struct {
	mouse interact.Tracker
	touch interact.Tracker

	touchIDs []ebiten.TouchID
	pressed  []ebiten.TouchID
	touchID  ebiten.TouchID
}

func NewPointerInput() *PointerInput {
	return &PointerInput{}
}

// Update samples this frame. Only a fresh press outside blocked (the control
// panel) starts a gesture; a press that began on the grid keeps tracking
// wherever the pointer goes. Leaving the window releases the mouse, and coming
// back with the button held does not start a new gesture.
func (in *PointerInput) Update(screen Rect, blocked Rect, normalize func(x, y float64) (float64, float64)) []interact.Event {
	if evs := in.updateTouch(blocked, normalize); evs != nil || in.touch.Down() {
		return evs
	}

	cx, cy := ebiten.CursorPosition()
	x, y := float64(cx), float64(cy)
	held := ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft) && screen.Contains(x, y)
	pressed := held && inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) && !blocked.Contains(x, y)
	nx, ny := normalize(x, y)
	return in.mouse.Sample(pressed, held, nx, ny)
}

func (in *PointerInput) updateTouch(blocked Rect, normalize func(x, y float64) (float64, float64)) []interact.Event {
	in.touchIDs = ebiten.AppendTouchIDs(in.touchIDs[:0])

	pressed := false
	if !in.touch.Down() {
		in.pressed = inpututil.AppendJustPressedTouchIDs(in.pressed[:0])
		for _, id := range in.pressed {
			tx, ty := ebiten.TouchPosition(id)
			if !blocked.Contains(float64(tx), float64(ty)) {
				in.touchID = id
				pressed = true
				break
			}
		}
		if !pressed {
			return nil
		}
	}

	if !slices.Contains(in.touchIDs, in.touchID) {
		return in.touch.Sample(false, false, 0, 0)
	}
	tx, ty := ebiten.TouchPosition(in.touchID)
	nx, ny := normalize(float64(tx), float64(ty))
	return in.touch.Sample(pressed, true, nx, ny)
}
