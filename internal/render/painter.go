package render

import (
	"fmt"
	"image"
	"image/color"
	"os"

	rl "github.com/gen2brain/raylib-go/raylib"

	"coffee-edition/internal/ui"
)

const (
	fontBaseSize  = 64
	textSpacing   = 1
	roundSegments = 8
)

// ImageSource returns the decoded image for a texture key, or nil when there is none.
type ImageSource func(key string) *image.RGBA

// Painter draws ui nodes with raylib. Fonts are looked up by role; images are uploaded to
// the GPU on first use and cached by key.
type Painter struct {
	images   ImageSource
	fonts    map[string]rl.Font
	textures map[string]rl.Texture2D
}

// NewPainter returns a painter that pulls images from src.
func NewPainter(src ImageSource) *Painter {
	return &Painter{
		images:   src,
		fonts:    make(map[string]rl.Font),
		textures: make(map[string]rl.Texture2D),
	}
}

// LoadFont loads a TTF for role. The default font is used for roles without one.
func (p *Painter) LoadFont(role, path string) error {
	if _, err := os.Stat(path); err != nil {
		return fmt.Errorf("render: font %s: %w", role, err)
	}
	f := rl.LoadFontEx(path, fontBaseSize, nil, 0)
	if !rl.IsFontValid(f) {
		return fmt.Errorf("render: font %s: cannot load %s", role, path)
	}
	rl.SetTextureFilter(f.Texture, rl.FilterBilinear)
	if old, ok := p.fonts[role]; ok {
		rl.UnloadFont(old)
	}
	p.fonts[role] = f
	return nil
}

// Font returns the font for role, or raylib's default font.
func (p *Painter) Font(role string) rl.Font {
	if f, ok := p.fonts[role]; ok {
		return f
	}
	return rl.GetFontDefault()
}

func rect(r ui.Rect) rl.Rectangle {
	return rl.NewRectangle(float32(r.X), float32(r.Y), float32(r.W), float32(r.H))
}

// roundness converts a pixel radius to raylib's 0..1 roundness.
func roundness(r ui.Rect, radius float64) float32 {
	short := min(r.W, r.H)
	if short <= 0 {
		return 0
	}
	return float32(min(1, 2*radius/short))
}

func (p *Painter) FillRect(r ui.Rect, c color.RGBA, radius float64) {
	if radius > 0 {
		rl.DrawRectangleRounded(rect(r), roundness(r, radius), roundSegments, c)
		return
	}
	rl.DrawRectangleRec(rect(r), c)
}

func (p *Painter) StrokeRect(r ui.Rect, c color.RGBA, radius float64) {
	if radius > 0 {
		rl.DrawRectangleRoundedLines(rect(r), roundness(r, radius), roundSegments, c)
		return
	}
	rl.DrawRectangleLinesEx(rect(r), 1, c)
}

func (p *Painter) Text(s string, x, y float64, font string, size float64, c color.RGBA) {
	rl.DrawTextEx(p.Font(font), s, rl.NewVector2(float32(x), float32(y)), float32(size), textSpacing, c)
}

func (p *Painter) MeasureText(s string, font string, size float64) float64 {
	return float64(rl.MeasureTextEx(p.Font(font), s, float32(size), textSpacing).X)
}

func (p *Painter) Image(key string, r ui.Rect, tint color.RGBA) {
	tex, ok := p.texture(key)
	if !ok {
		return
	}
	src := rl.NewRectangle(0, 0, float32(tex.Width), float32(tex.Height))
	rl.DrawTexturePro(tex, src, rect(r), rl.NewVector2(0, 0), 0, tint)
}

// texture uploads the image for key once. A missing image is remembered so the source is
// not asked again every frame.
func (p *Painter) texture(key string) (rl.Texture2D, bool) {
	if tex, ok := p.textures[key]; ok {
		return tex, tex.ID != 0
	}
	var tex rl.Texture2D
	if p.images != nil {
		if img := p.images(key); img != nil {
			tex = rl.LoadTextureFromImage(rl.NewImageFromImage(img))
			rl.SetTextureFilter(tex, rl.FilterBilinear)
		}
	}
	p.textures[key] = tex
	return tex, tex.ID != 0
}

// Unload frees fonts and textures.
func (p *Painter) Unload() {
	for k, f := range p.fonts {
		rl.UnloadFont(f)
		delete(p.fonts, k)
	}
	for k, t := range p.textures {
		if t.ID != 0 {
			rl.UnloadTexture(t)
		}
		delete(p.textures, k)
	}
}
