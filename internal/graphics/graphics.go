package graphics

import (
	"image/color"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// Window describes the window Run opens.
type Window struct {
	Title      string
	Width      int32
	Height     int32
	TargetFPS  int32
	Background color.RGBA
}

// Run opens the window and drives the main loop. Each frame it calls update with the frame
// time in seconds, clears to the background and calls draw. ESC is reserved for the
// console, so the window closes only through its close button.
func Run(w Window, update func(dt float64), draw func()) {
	rl.SetConfigFlags(rl.FlagWindowResizable | rl.FlagMsaa4xHint | rl.FlagVsyncHint)
	rl.InitWindow(w.Width, w.Height, w.Title)
	defer rl.CloseWindow()

	rl.SetExitKey(rl.KeyNull)
	if w.TargetFPS > 0 {
		rl.SetTargetFPS(w.TargetFPS)
	}

	for !rl.WindowShouldClose() {
		update(float64(rl.GetFrameTime()))

		rl.BeginDrawing()
		rl.ClearBackground(w.Background)
		draw()
		rl.EndDrawing()
	}
}
