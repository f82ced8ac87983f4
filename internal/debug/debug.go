package debug

import (
	"fmt"
	"runtime"

	"github.com/dustin/go-humanize"
	rl "github.com/gen2brain/raylib-go/raylib"
)

const (
	fontSize   = 18
	padding    = 12
	lineHeight = fontSize + 4
	// updateInterval: only refresh FPS/Mem text every N frames to reduce allocations.
	updateInterval = 30
)

var textColor = rl.NewColor(0xe0, 0xb9, 0x94, 255)

// Debug draws the FPS and heap overlays in the top-right corner. Both are off by default.
type Debug struct {
	ShowFPS      bool
	ShowMemAlloc bool
	font         rl.Font // optional; zero texture ID = raylib default font
	frameCount   uint32
	fpsText      string
	memText      string
	memStats     runtime.MemStats
}

// New returns a Debug system with all overlays hidden.
func New() *Debug {
	return &Debug{}
}

// SetFont sets the overlay font.
func (d *Debug) SetFont(font rl.Font) {
	d.font = font
}

// Draw renders the enabled overlays. Text is recomputed every updateInterval frames.
func (d *Debug) Draw() {
	d.frameCount++
	update := d.frameCount%updateInterval == 0 ||
		(d.ShowFPS && d.fpsText == "") ||
		(d.ShowMemAlloc && d.memText == "")

	y := float32(padding)
	if d.ShowFPS {
		if update {
			d.fpsText = fmt.Sprintf("FPS: %d", rl.GetFPS())
		}
		d.drawRight(d.fpsText, y)
		y += lineHeight
	}
	if d.ShowMemAlloc {
		if update {
			runtime.ReadMemStats(&d.memStats)
			d.memText = "Mem: " + humanize.IBytes(d.memStats.Alloc)
		}
		d.drawRight(d.memText, y)
	}
}

func (d *Debug) drawRight(text string, y float32) {
	if text == "" {
		return
	}
	font := d.font
	if font.Texture.ID == 0 {
		font = rl.GetFontDefault()
	}
	w := rl.MeasureTextEx(font, text, fontSize, 1).X
	x := float32(rl.GetScreenWidth()) - w - padding
	rl.DrawTextEx(font, text, rl.NewVector2(x, y), fontSize, 1, textColor)
}
