package app

import (
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"

	"coffee-edition/internal/overlay"
	"coffee-edition/internal/ui"
)

// pointer tracks the mouse between frames.
type pointer struct {
	x, y     float64
	dragging bool
	onScreen bool
}

func uiPoint(x, y float64) ui.Rect { return ui.Rect{X: x, Y: y} }

// handlePointer turns raylib mouse state into overlay clicks or scene drag events. A
// press that lands on an overlay control never starts a drag.
func (a *App) handlePointer() {
	pos := rl.GetMousePosition()
	x, y := float64(pos.X), float64(pos.Y)
	moved := x != a.input.x || y != a.input.y
	a.input.x, a.input.y = x, y
	now := time.Since(a.start)

	on := rl.IsCursorOnScreen()
	if a.input.onScreen && !on {
		a.scene.PointerLeave()
		a.input.dragging = false
	}
	a.input.onScreen = on

	switch {
	case rl.IsMouseButtonPressed(rl.MouseButtonLeft):
		if act := a.overlay.Click(x, y); act.Kind != overlay.ActionNone {
			a.dispatch(act)
			return
		}
		a.scene.PointerDown(x, now)
		a.input.dragging = true
	case rl.IsMouseButtonReleased(rl.MouseButtonLeft):
		if a.input.dragging {
			a.scene.PointerUp()
			a.input.dragging = false
		}
	case a.input.dragging && !rl.IsMouseButtonDown(rl.MouseButtonLeft):
		a.cancelDrag()
	case a.input.dragging && moved:
		a.scene.PointerMove(x, now)
	}
}

// cancelDrag ends a drag whose release this loop did not see.
func (a *App) cancelDrag() {
	if a.input.dragging {
		a.scene.PointerCancel()
		a.input.dragging = false
	}
}

func (a *App) dispatch(act overlay.Action) {
	var err error
	switch act.Kind {
	case overlay.ActionOpen:
		a.log.Info("app: opening %s", act.Item.URL)
		rl.OpenURL(act.Item.URL)
	case overlay.ActionToggle:
		err = a.player.Toggle()
	case overlay.ActionNext:
		err = a.player.Next()
	case overlay.ActionPrev:
		err = a.player.Prev()
	}
	if err != nil {
		a.log.Warn("app: %v", err)
	}
}
