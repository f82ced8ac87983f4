package ui

import (
	"image/color"
	"strconv"
	"strings"
)

// Rule is a single CSS rule: one selector and a set of property values (raw strings).
type Rule struct {
	Selector string            // e.g. ".panel" or "#title"
	Props    map[string]string // e.g. "background" -> "rgba(0,0,0,0.46)"
}

// Stylesheet is a list of rules (order matters: later overrides earlier).
type Stylesheet struct {
	Rules []Rule
}

// Align is horizontal text alignment inside a node.
type Align int

const (
	AlignLeft Align = iota
	AlignCenter
	AlignRight
)

// ComputedStyle holds resolved values used for drawing.
// LeftPct/TopPct: 0–100 for percentage positioning; -1 means use Left/Top as pixels.
// Right/Bottom, when set (>= 0), anchor the node to the opposite screen edge instead.
// Padding is the offset (in pixels) from the node's left/top when drawing text.
type ComputedStyle struct {
	Background color.RGBA
	Color      color.RGBA
	Border     color.RGBA
	HasBorder  bool
	Radius     float64
	Width      float64
	Height     float64
	Left       float64
	Top        float64
	Right      float64 // -1 = not set
	Bottom     float64 // -1 = not set
	LeftPct    float64 // -1 = not set
	TopPct     float64 // -1 = not set
	Padding    float64
	Font       string // font role, e.g. "display"
	FontSize   float64
	Align      Align
	Opacity    float64
}

// DefaultComputedStyle returns a minimal style (transparent background, white text, no border, zero size).
func DefaultComputedStyle() ComputedStyle {
	return ComputedStyle{
		Color:    color.RGBA{255, 255, 255, 255},
		Border:   color.RGBA{0, 0, 0, 255},
		Right:    -1,
		Bottom:   -1,
		LeftPct:  -1,
		TopPct:   -1,
		Padding:  4,
		FontSize: 20,
		Opacity:  1,
	}
}

// ParseColor parses #RGB, #RRGGBB, #RRGGBBAA, rgb(r,g,b), rgba(r,g,b,a) and "transparent".
// rgba alpha is a fraction in [0, 1]. Returns opaque black and false on parse error.
func ParseColor(s string) (color.RGBA, bool) {
	s = strings.ToLower(strings.TrimSpace(s))
	black := color.RGBA{0, 0, 0, 255}
	switch {
	case s == "transparent":
		return color.RGBA{}, true
	case strings.HasPrefix(s, "#"):
		return parseHex(s[1:])
	case strings.HasPrefix(s, "rgba(") && strings.HasSuffix(s, ")"):
		return parseFunc(s[len("rgba("):len(s)-1], 4)
	case strings.HasPrefix(s, "rgb(") && strings.HasSuffix(s, ")"):
		return parseFunc(s[len("rgb("):len(s)-1], 3)
	}
	return black, false
}

func parseHex(hex string) (color.RGBA, bool) {
	for i := 0; i < len(hex); i++ {
		if _, ok := hexDigit(hex[i]); !ok {
			return color.RGBA{0, 0, 0, 255}, false
		}
	}
	pair := func(i int) uint8 {
		hi, _ := hexDigit(hex[i])
		lo, _ := hexDigit(hex[i+1])
		return hi<<4 + lo
	}
	switch len(hex) {
	case 3:
		// #RGB -> RR GG BB
		r, _ := hexDigit(hex[0])
		g, _ := hexDigit(hex[1])
		b, _ := hexDigit(hex[2])
		return color.RGBA{r * 17, g * 17, b * 17, 255}, true
	case 6:
		return color.RGBA{pair(0), pair(2), pair(4), 255}, true
	case 8:
		return color.RGBA{pair(0), pair(2), pair(4), pair(6)}, true
	}
	return color.RGBA{0, 0, 0, 255}, false
}

func parseFunc(args string, n int) (color.RGBA, bool) {
	parts := strings.Split(args, ",")
	if len(parts) != n {
		return color.RGBA{0, 0, 0, 255}, false
	}
	var ch [4]uint8
	ch[3] = 255
	for i, p := range parts {
		f, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil {
			return color.RGBA{0, 0, 0, 255}, false
		}
		if i == 3 {
			f *= 255
		}
		ch[i] = uint8(min(max(f, 0), 255) + 0.5)
	}
	return color.RGBA{ch[0], ch[1], ch[2], ch[3]}, true
}

func hexDigit(c byte) (uint8, bool) {
	switch {
	case c >= '0' && c <= '9':
		return c - '0', true
	case c >= 'a' && c <= 'f':
		return c - 'a' + 10, true
	case c >= 'A' && c <= 'F':
		return c - 'A' + 10, true
	}
	return 0, false
}

// ParsePx parses a number, with optional "px" suffix. Unitless is treated as pixels.
func ParsePx(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	s = strings.TrimSuffix(s, "px")
	n, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0, false
	}
	return n, true
}

// ParsePct parses "N%" (0–100). Used for left/top percentage positioning.
func ParsePct(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	if len(s) < 2 || s[len(s)-1] != '%' {
		return 0, false
	}
	n, err := strconv.ParseFloat(s[:len(s)-1], 64)
	if err != nil || n < 0 || n > 100 {
		return 0, false
	}
	return n, true
}

// ResolveProps builds a ComputedStyle from a merged property map (e.g. from matching rules).
func ResolveProps(props map[string]string) ComputedStyle {
	out := DefaultComputedStyle()
	for k, v := range props {
		v = strings.TrimSpace(v)
		switch k {
		case "background":
			if c, ok := ParseColor(v); ok {
				out.Background = c
			}
		case "color":
			if c, ok := ParseColor(v); ok {
				out.Color = c
			}
		case "border":
			if c, ok := ParseColor(v); ok {
				out.Border = c
				out.HasBorder = true
			}
		case "border-radius", "radius":
			if n, ok := ParsePx(v); ok && n >= 0 {
				out.Radius = n
			}
		case "width":
			if n, ok := ParsePx(v); ok {
				out.Width = n
			}
		case "height":
			if n, ok := ParsePx(v); ok {
				out.Height = n
			}
		case "left", "x":
			if pct, ok := ParsePct(v); ok {
				out.LeftPct = pct
			} else if n, ok := ParsePx(v); ok {
				out.Left = n
			}
		case "top", "y":
			if pct, ok := ParsePct(v); ok {
				out.TopPct = pct
			} else if n, ok := ParsePx(v); ok {
				out.Top = n
			}
		case "right":
			if n, ok := ParsePx(v); ok {
				out.Right = n
			}
		case "bottom":
			if n, ok := ParsePx(v); ok {
				out.Bottom = n
			}
		case "padding":
			if n, ok := ParsePx(v); ok && n >= 0 {
				out.Padding = n
			}
		case "font", "font-family":
			out.Font = strings.Trim(v, `"'`)
		case "font-size":
			if n, ok := ParsePx(v); ok && n > 0 {
				out.FontSize = n
			}
		case "text-align":
			switch v {
			case "center":
				out.Align = AlignCenter
			case "right":
				out.Align = AlignRight
			default:
				out.Align = AlignLeft
			}
		case "opacity":
			if n, err := strconv.ParseFloat(v, 64); err == nil {
				out.Opacity = min(max(n, 0), 1)
			}
		}
	}
	return out
}

// Fade scales c's alpha by opacity.
func Fade(c color.RGBA, opacity float64) color.RGBA {
	if opacity >= 1 {
		return c
	}
	c.A = uint8(float64(c.A)*max(opacity, 0) + 0.5)
	return c
}
