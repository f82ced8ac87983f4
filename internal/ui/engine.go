package ui

import (
	"fmt"
	"image/color"
	"os"
)

// Painter draws primitives for the engine. The render package implements it with raylib;
// tests use a recorder.
type Painter interface {
	FillRect(r Rect, c color.RGBA, radius float64)
	StrokeRect(r Rect, c color.RGBA, radius float64)
	Text(s string, x, y float64, font string, size float64, c color.RGBA)
	MeasureText(s string, font string, size float64) float64
	Image(key string, r Rect, tint color.RGBA)
}

// Engine holds the current stylesheet and nodes, and draws them through a Painter.
// Draw order is node order (first node drawn first, then on top the next).
// Resolved styles are cached and only recomputed when sheet or nodes change to avoid per-frame allocations.
type Engine struct {
	sheet        *Stylesheet
	nodes        []*Node
	cachedStyles []ComputedStyle
	cacheValid   bool
}

// New creates an empty UI engine (no stylesheet, no nodes).
func New() *Engine {
	return &Engine{}
}

// LoadCSS loads and parses a CSS file from path. Replaces the current stylesheet.
func (e *Engine) LoadCSS(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("ui: %w", err)
	}
	return e.LoadCSSString(string(data))
}

// LoadCSSString parses CSS source and replaces the current stylesheet.
func (e *Engine) LoadCSSString(src string) error {
	sheet, err := ParseCSS(src)
	if err != nil {
		return fmt.Errorf("ui: %w", err)
	}
	e.SetStylesheet(sheet)
	return nil
}

// SetStylesheet sets the stylesheet directly (e.g. from embedded or merged CSS).
func (e *Engine) SetStylesheet(sheet *Stylesheet) {
	e.sheet = sheet
	e.cacheValid = false
}

// AddNode appends a node. Nodes are drawn in order.
func (e *Engine) AddNode(n *Node) {
	e.nodes = append(e.nodes, n)
	e.cacheValid = false
}

// SetNodes replaces all nodes.
func (e *Engine) SetNodes(nodes []*Node) {
	e.nodes = nodes
	e.cacheValid = false
}

// Nodes returns the node list (not a copy).
func (e *Engine) Nodes() []*Node { return e.nodes }

// resolveProps returns merged properties for a node (class then id matched; last wins).
func (e *Engine) resolveProps(n *Node) map[string]string {
	merged := make(map[string]string)
	if e.sheet == nil {
		return merged
	}
	for _, rule := range e.sheet.Rules {
		sel := rule.Selector
		matches := false
		switch sel[0] {
		case '.':
			matches = n.Class != "" && n.Class == sel[1:]
		case '#':
			matches = n.ID != "" && n.ID == sel[1:]
		}
		if matches {
			for k, v := range rule.Props {
				merged[k] = v
			}
		}
	}
	return merged
}

func (e *Engine) ensureStyles() {
	if e.cacheValid {
		return
	}
	e.cachedStyles = make([]ComputedStyle, len(e.nodes))
	for i, n := range e.nodes {
		e.cachedStyles[i] = ResolveProps(e.resolveProps(n))
	}
	e.cacheValid = true
}

// Style returns the computed style of n, or the default style if n is not in the engine.
func (e *Engine) Style(n *Node) ComputedStyle {
	e.ensureStyles()
	for i, m := range e.nodes {
		if m == n {
			return e.cachedStyles[i]
		}
	}
	return DefaultComputedStyle()
}

// Layout sets Bounds of every non-fixed node from its style for a screen of the given size.
func (e *Engine) Layout(screenW, screenH float64) {
	e.ensureStyles()
	for i, n := range e.nodes {
		if n.Fixed {
			continue
		}
		n.Bounds = resolveBounds(e.cachedStyles[i], screenW, screenH)
	}
}

// resolveBounds positions a node: percentages center within the free space, right/bottom
// anchor to the far edges, plain left/top are pixels.
func resolveBounds(style ComputedStyle, screenW, screenH float64) Rect {
	r := Rect{X: style.Left, Y: style.Top, W: style.Width, H: style.Height}
	switch {
	case style.LeftPct >= 0:
		r.X = (screenW - r.W) * style.LeftPct / 100
	case style.Right >= 0:
		r.X = screenW - r.W - style.Right
	}
	switch {
	case style.TopPct >= 0:
		r.Y = (screenH - r.H) * style.TopPct / 100
	case style.Bottom >= 0:
		r.Y = screenH - r.H - style.Bottom
	}
	return r
}

// Draw draws all visible nodes: background, border, image, then text.
func (e *Engine) Draw(p Painter) {
	e.ensureStyles()
	for i, n := range e.nodes {
		if n.Hidden {
			continue
		}
		style := e.cachedStyles[i]
		b := n.Bounds

		if style.Background.A > 0 {
			p.FillRect(b, Fade(style.Background, style.Opacity), style.Radius)
		}
		if n.Image != "" {
			p.Image(n.Image, b, Fade(color.RGBA{255, 255, 255, 255}, style.Opacity))
		}
		if style.HasBorder && b.W > 0 && b.H > 0 {
			p.StrokeRect(b, Fade(style.Border, style.Opacity), style.Radius)
		}
		if n.Text != "" {
			x, y := textOrigin(p, n, style)
			p.Text(n.Text, x, y, style.Font, style.FontSize, Fade(style.Color, style.Opacity))
		}
	}
}

func textOrigin(p Painter, n *Node, style ComputedStyle) (float64, float64) {
	b := n.Bounds
	x := b.X + style.Padding
	switch style.Align {
	case AlignCenter:
		x = b.X + (b.W-p.MeasureText(n.Text, style.Font, style.FontSize))/2
	case AlignRight:
		x = b.X + b.W - style.Padding - p.MeasureText(n.Text, style.Font, style.FontSize)
	}
	return x, b.Y + style.Padding
}

// HitTest returns the topmost visible node with an action under (x, y), or nil.
func (e *Engine) HitTest(x, y float64) *Node {
	for i := len(e.nodes) - 1; i >= 0; i-- {
		n := e.nodes[i]
		if n.Hidden || n.Action == "" {
			continue
		}
		if n.Bounds.Contains(x, y) {
			return n
		}
	}
	return nil
}

// HasStylesheet returns whether a stylesheet with rules has been loaded.
func (e *Engine) HasStylesheet() bool {
	return e.sheet != nil && len(e.sheet.Rules) > 0
}

// Stylesheet returns the current stylesheet (may be nil).
func (e *Engine) Stylesheet() *Stylesheet {
	return e.sheet
}
