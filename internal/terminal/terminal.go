package terminal

import (
	"unicode/utf8"

	rl "github.com/gen2brain/raylib-go/raylib"

	"coffee-edition/internal/commands"
	"coffee-edition/internal/logger"
)

const (
	BarHeight = 36
	prompt    = "> "
	fontSize  = 18
	padding   = 8
	// Number of log lines drawn above the input bar when the console is open.
	maxLinesOnScreen = 12
	lineHeight       = fontSize + 4
	maxLineLen       = 200
)

var (
	// Reused every frame to avoid per-frame color allocations.
	barColor     = rl.NewColor(0x2a, 0x20, 0x1e, 245)
	edgeColor    = rl.NewColor(0xe0, 0xb9, 0x94, 90)
	historyColor = rl.NewColor(0x1e, 0x17, 0x15, 230)
	logColor     = rl.NewColor(0xc4, 0xa4, 0x84, 255)
	inputColor   = rl.NewColor(0xf6, 0xe6, 0xc8, 255)
)

// Terminal is the ESC console at the top of the window. While open it captures the
// keyboard and the pointer; lines starting with "cmd " run through the registry, anything
// else is just logged.
type Terminal struct {
	log      *logger.Logger
	reg      *commands.Registry
	inputBuf string
	open     bool
	font     rl.Font
}

// New returns a closed console that logs to log and runs commands through reg.
func New(log *logger.Logger, reg *commands.Registry) *Terminal {
	return &Terminal{log: log, reg: reg}
}

// IsOpen reports whether the console is visible and capturing input.
func (t *Terminal) IsOpen() bool {
	return t.open
}

// SetFont sets the console font. Zero texture ID = raylib default.
func (t *Terminal) SetFont(font rl.Font) {
	t.font = font
}

// Update handles ESC and, while open, typing, paste, backspace and enter. Call once per frame.
func (t *Terminal) Update() {
	if rl.IsKeyPressed(rl.KeyEscape) {
		t.open = !t.open
	}
	if !t.open {
		return
	}
	// Paste: Ctrl+V (Windows/Linux) or Cmd+V (macOS)
	if rl.IsKeyPressed(rl.KeyV) && (rl.IsKeyDown(rl.KeyLeftControl) || rl.IsKeyDown(rl.KeyRightControl) || rl.IsKeyDown(rl.KeyLeftSuper) || rl.IsKeyDown(rl.KeyRightSuper)) {
		if pasted := rl.GetClipboardText(); pasted != "" {
			t.inputBuf += pasted
		}
	} else {
		for {
			c := rl.GetCharPressed()
			if c == 0 {
				break
			}
			t.inputBuf += string(rune(c))
		}
	}
	if rl.IsKeyPressed(rl.KeyBackspace) && len(t.inputBuf) > 0 {
		_, size := utf8.DecodeLastRuneInString(t.inputBuf)
		t.inputBuf = t.inputBuf[:len(t.inputBuf)-size]
	}
	if (rl.IsKeyPressed(rl.KeyEnter) || rl.IsKeyPressed(rl.KeyKpEnter)) && t.inputBuf != "" {
		t.submit(t.inputBuf)
		t.inputBuf = ""
	}
}

func (t *Terminal) submit(line string) {
	t.log.Log(prompt + line)
	args, isCmd, err := commands.Parse(line)
	if !isCmd {
		return
	}
	if err == nil {
		err = t.reg.Execute(args)
	}
	if err != nil {
		t.log.Error("%v", err)
	}
}

// Draw draws the input bar and the recent log lines under it when open.
func (t *Terminal) Draw() {
	if !t.open {
		return
	}
	screenW := int32(rl.GetScreenWidth())
	screenH := int32(rl.GetScreenHeight())

	lines := t.log.Lines()
	start := max(0, len(lines)-maxLinesOnScreen)
	historyH := min(int32(maxLinesOnScreen*lineHeight+padding), screenH-BarHeight)

	rl.DrawRectangle(0, 0, screenW, BarHeight, barColor)
	rl.DrawRectangle(0, BarHeight-1, screenW, 1, edgeColor)
	t.text(prompt+t.inputBuf+"|", padding, padding, inputColor)

	if historyH <= 0 {
		return
	}
	rl.DrawRectangle(0, BarHeight, screenW, historyH, historyColor)
	for i := start; i < len(lines); i++ {
		line := lines[i]
		if len(line) > maxLineLen {
			line = line[:maxLineLen-3] + "..."
		}
		y := BarHeight + int32((i-start)*lineHeight) + padding/2
		t.text(line, padding, y, logColor)
	}
}

func (t *Terminal) text(s string, x, y int32, c rl.Color) {
	if t.font.Texture.ID != 0 {
		rl.DrawTextEx(t.font, s, rl.NewVector2(float32(x), float32(y)), fontSize, 1, c)
		return
	}
	rl.DrawText(s, x, y, fontSize, c)
}
