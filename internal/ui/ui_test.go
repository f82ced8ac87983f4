package ui

import (
	"image/color"
	"strings"
	"testing"
)

func TestParseCSS(t *testing.T) {
	src := `
/* overlay */
.panel, #special { background: rgba(0, 0, 0, 0.46); border: #ffffff14; border-radius: 6px; }
:root { color: red; }
#title { color: #c4a48c; font: display; font-size: 44; left: 10%; top: 12% }
`
	sheet, err := ParseCSS(src)
	if err != nil {
		t.Fatal(err)
	}
	if len(sheet.Rules) != 3 {
		t.Fatalf("rules = %d, want 3", len(sheet.Rules))
	}
	if sheet.Rules[0].Selector != ".panel" || sheet.Rules[1].Selector != "#special" {
		t.Fatalf("selectors = %q, %q", sheet.Rules[0].Selector, sheet.Rules[1].Selector)
	}
	if got := sheet.Rules[0].Props["background"]; got != "rgba(0, 0, 0, 0.46)" {
		t.Fatalf("background = %q", got)
	}
	if got := sheet.Rules[2].Props["top"]; got != "12%" {
		t.Fatalf("last declaration without ';' = %q", got)
	}
}

func TestParseCSSErrors(t *testing.T) {
	for _, src := range []string{".a { color: red;", ".a { color: red; } }"} {
		if _, err := ParseCSS(src); err == nil {
			t.Fatalf("ParseCSS(%q) should fail", src)
		}
	}
}

func TestParseColor(t *testing.T) {
	tests := []struct {
		in   string
		want color.RGBA
		ok   bool
	}{
		{"#fff", color.RGBA{255, 255, 255, 255}, true},
		{"#3b2f2f", color.RGBA{0x3b, 0x2f, 0x2f, 255}, true},
		{"#E0B99480", color.RGBA{0xe0, 0xb9, 0x94, 0x80}, true},
		{"rgba(224, 185, 148, 0.5)", color.RGBA{224, 185, 148, 128}, true},
		{"rgb(1,2,3)", color.RGBA{1, 2, 3, 255}, true},
		{"transparent", color.RGBA{}, true},
		{"#12345", color.RGBA{0, 0, 0, 255}, false},
		{"#ggg", color.RGBA{0, 0, 0, 255}, false},
		{"rgba(1,2,3)", color.RGBA{0, 0, 0, 255}, false},
		{"mocha", color.RGBA{0, 0, 0, 255}, false},
	}
	for _, tt := range tests {
		got, ok := ParseColor(tt.in)
		if got != tt.want || ok != tt.ok {
			t.Fatalf("ParseColor(%q) = %v, %v; want %v, %v", tt.in, got, ok, tt.want, tt.ok)
		}
	}
}

func TestResolveProps(t *testing.T) {
	s := ResolveProps(map[string]string{
		"width":      "80px",
		"height":     "64",
		"bottom":     "24px",
		"left":       "50%",
		"font-size":  "11px",
		"font":       "'mono'",
		"text-align": "center",
		"opacity":    "2",
		"padding":    "-3",
		"background": "nonsense",
		"radius":     "6",
	})
	if s.Width != 80 || s.Height != 64 || s.Bottom != 24 || s.LeftPct != 50 {
		t.Fatalf("geometry = %+v", s)
	}
	if s.FontSize != 11 || s.Font != "mono" || s.Align != AlignCenter || s.Radius != 6 {
		t.Fatalf("text = %+v", s)
	}
	if s.Opacity != 1 || s.Padding != 4 || s.Background.A != 0 {
		t.Fatalf("invalid values should keep defaults: %+v", s)
	}
}

func TestLayout(t *testing.T) {
	e := New()
	if err := e.LoadCSSString(`
.bar { width: 400; height: 60; left: 50%; bottom: 24; }
.corner { width: 100; height: 20; right: 10; top: 5; }
`); err != nil {
		t.Fatal(err)
	}
	bar := NewNode("bar", "bar", "", "")
	corner := NewNode("label", "corner", "", "")
	fixed := NewNode("panel", "bar", "", "")
	fixed.Place(Rect{X: 1, Y: 2, W: 3, H: 4})
	e.SetNodes([]*Node{bar, corner, fixed})
	e.Layout(1280, 720)

	if bar.Bounds != (Rect{X: 440, Y: 636, W: 400, H: 60}) {
		t.Fatalf("bar = %+v", bar.Bounds)
	}
	if corner.Bounds != (Rect{X: 1170, Y: 5, W: 100, H: 20}) {
		t.Fatalf("corner = %+v", corner.Bounds)
	}
	if fixed.Bounds != (Rect{X: 1, Y: 2, W: 3, H: 4}) {
		t.Fatalf("fixed node moved: %+v", fixed.Bounds)
	}
}

type call struct {
	op   string
	text string
	x, y float64
	c    color.RGBA
}

type recorder struct{ calls []call }

func (r *recorder) FillRect(b Rect, c color.RGBA, _ float64) {
	r.calls = append(r.calls, call{op: "fill", x: b.X, y: b.Y, c: c})
}
func (r *recorder) StrokeRect(b Rect, c color.RGBA, _ float64) {
	r.calls = append(r.calls, call{op: "stroke", x: b.X, y: b.Y, c: c})
}
func (r *recorder) Text(s string, x, y float64, _ string, _ float64, c color.RGBA) {
	r.calls = append(r.calls, call{op: "text", text: s, x: x, y: y, c: c})
}
func (r *recorder) MeasureText(s string, _ string, size float64) float64 {
	return float64(len(s)) * size / 2
}
func (r *recorder) Image(key string, b Rect, _ color.RGBA) {
	r.calls = append(r.calls, call{op: "image", text: key, x: b.X, y: b.Y})
}

func (r *recorder) ops() string {
	var parts []string
	for _, c := range r.calls {
		parts = append(parts, c.op)
	}
	return strings.Join(parts, ",")
}

func TestDraw(t *testing.T) {
	e := New()
	_ = e.LoadCSSString(`
.panel { background: #000000; border: #ffffff; opacity: 0.5; }
.id { color: #e0b994; font-size: 10; text-align: center; padding: 2; }
`)
	panel := NewNode("panel", "panel", "", "")
	panel.Place(Rect{X: 10, Y: 20, W: 80, H: 64})
	panel.Image = "JKT-01"
	label := NewNode("label", "id", "", "JKT-01")
	label.Place(Rect{X: 10, Y: 64, W: 80, H: 20})
	hidden := NewNode("label", "id", "", "nope")
	hidden.Hidden = true
	e.SetNodes([]*Node{panel, label, hidden})

	rec := &recorder{}
	e.Draw(rec)
	if got := rec.ops(); got != "fill,image,stroke,text" {
		t.Fatalf("ops = %s", got)
	}
	if rec.calls[0].c.A != 128 {
		t.Fatalf("faded alpha = %d", rec.calls[0].c.A)
	}
	txt := rec.calls[3]
	// 6 chars * 10 / 2 = 30 wide, centered in 80.
	if txt.x != 35 || txt.y != 66 {
		t.Fatalf("text origin = %v,%v", txt.x, txt.y)
	}
}

func TestHitTestTopmostWithAction(t *testing.T) {
	e := New()
	under := NewNode("panel", "", "", "")
	under.Place(Rect{X: 0, Y: 0, W: 100, H: 100})
	under.Action = "under"
	over := NewNode("button", "", "", "")
	over.Place(Rect{X: 10, Y: 10, W: 20, H: 20})
	over.Action = "over"
	decor := NewNode("label", "", "", "decor")
	decor.Place(Rect{X: 0, Y: 0, W: 100, H: 100})
	e.SetNodes([]*Node{under, over, decor})

	if n := e.HitTest(15, 15); n == nil || n.Action != "over" {
		t.Fatalf("hit = %+v", n)
	}
	if n := e.HitTest(50, 50); n == nil || n.Action != "under" {
		t.Fatalf("hit = %+v", n)
	}
	over.Hidden = true
	if n := e.HitTest(15, 15); n == nil || n.Action != "under" {
		t.Fatalf("hidden node should not be hit, got %+v", n)
	}
	if e.HitTest(500, 500) != nil {
		t.Fatal("miss expected")
	}
}

func TestStyleOfUnknownNode(t *testing.T) {
	e := New()
	if e.HasStylesheet() {
		t.Fatal("no stylesheet yet")
	}
	if got := e.Style(NewNode("x", "", "", "")); got != DefaultComputedStyle() {
		t.Fatalf("style = %+v", got)
	}
}

func TestInspector(t *testing.T) {
	in := NewInspector()
	if got := in.AppendNodes(nil, false, Selection{}, Rect{}); len(got) != 0 {
		t.Fatal("hidden inspector should add nothing")
	}
	nodes := in.AppendNodes(nil, true, Selection{
		ID: "WCH-04", Label: "AURORA TIMEPIECE",
		URL:     "https://www.armani.com/en-wx/emporio-armani/man/accessories/watches/",
		ScreenX: 640.4, ScreenY: 300.6, OnModel: true,
	}, Rect{X: 100, Y: 50, W: 80, H: 64})
	if len(nodes) != 5 {
		t.Fatalf("nodes = %d", len(nodes))
	}
	if nodes[0].Bounds.X != 188 || !nodes[0].Fixed {
		t.Fatalf("panel = %+v", nodes[0])
	}
	want := []string{"", "AURORA TIMEPIECE", "ID: WCH-04", "Shop: www.armani.com", "Marker: 640, 301"}
	for i, w := range want {
		if nodes[i].Text != w {
			t.Fatalf("node %d text = %q, want %q", i, nodes[i].Text, w)
		}
	}
	nodes = in.AppendNodes(nil, true, Selection{ID: "X"}, Rect{})
	if nodes[3].Text != "Shop: none" || nodes[4].Text != "Marker: off view" {
		t.Fatalf("texts = %q, %q", nodes[3].Text, nodes[4].Text)
	}
}
