package overlay

import (
	"image/color"
	"testing"

	"coffee-edition/internal/catalog"
	"coffee-edition/internal/layout"
	"coffee-edition/internal/projector"
	"coffee-edition/internal/ui"
)

type nopPainter struct{ texts []string }

func (p *nopPainter) FillRect(ui.Rect, color.RGBA, float64)   {}
func (p *nopPainter) StrokeRect(ui.Rect, color.RGBA, float64) {}
func (p *nopPainter) Text(s string, _, _ float64, _ string, _ float64, _ color.RGBA) {
	p.texts = append(p.texts, s)
}
func (p *nopPainter) MeasureText(s string, _ string, size float64) float64 {
	return float64(len(s)) * size / 2
}
func (p *nopPainter) Image(string, ui.Rect, color.RGBA) {}

func newOverlay(t *testing.T) (*Overlay, *catalog.Catalog) {
	t.Helper()
	cat := catalog.Default()
	o, err := New(cat.Items, 60)
	if err != nil {
		t.Fatal(err)
	}
	return o, cat
}

func state(cat *catalog.Catalog) State {
	vp := projector.Viewport{Width: 1280, Height: 720}
	pl := layout.DefaultStack().Place(layout.Point{X: 640, Y: 360}, vp, len(cat.Items))
	return State{Placement: pl, Track: cat.Tracks[0], Mouse: ui.Rect{X: -1, Y: -1}}
}

func TestStylesheetParses(t *testing.T) {
	o, _ := newOverlay(t)
	if !o.Engine().HasStylesheet() {
		t.Fatal("embedded stylesheet has no rules")
	}
}

func TestPanelThumbAndIDStrip(t *testing.T) {
	o, cat := newOverlay(t)
	st := state(cat)
	o.Update(st, 1280, 720)

	for i, r := range st.Placement.Panels {
		th, id := o.thumbs[i], o.ids[i]
		if th.Image != cat.Items[i].Image {
			t.Fatalf("thumb %d image = %q", i, th.Image)
		}
		if th.Bounds.Y != r.Y || th.Bounds.H != r.H-idStrip || th.Bounds.W != r.W {
			t.Fatalf("thumb %d bounds = %+v, panel %+v", i, th.Bounds, r)
		}
		if id.Bounds.Y != r.Y+r.H-idStrip || id.Text != cat.Items[i].ID {
			t.Fatalf("id %d = %q at %+v", i, id.Text, id.Bounds)
		}
	}
}

func TestPanelClickOpensItem(t *testing.T) {
	o, cat := newOverlay(t)
	st := state(cat)
	o.Update(st, 1280, 720)

	r := st.Placement.Panels[2]
	a := o.Click(r.X+5, r.Y+5)
	if a.Kind != ActionOpen || a.Item.ID != cat.Items[2].ID {
		t.Fatalf("action = %+v", a)
	}
	if a := o.Click(1, 1); a.Kind != ActionNone {
		t.Fatalf("empty area action = %+v", a)
	}
}

func TestSoundBarButtons(t *testing.T) {
	o, cat := newOverlay(t)
	o.Update(state(cat), 1280, 720)

	center := func(n *ui.Node) (float64, float64) {
		return n.Bounds.X + n.Bounds.W/2, n.Bounds.Y + n.Bounds.H/2
	}
	for _, tc := range []struct {
		node *ui.Node
		want ActionKind
	}{
		{o.prev, ActionPrev},
		{o.play, ActionToggle},
		{o.next, ActionNext},
	} {
		if a := o.Click(center(tc.node)); a.Kind != tc.want {
			t.Fatalf("click on %s = %v, want %v", tc.node.ID, a.Kind, tc.want)
		}
	}

	bar := o.soundbar.Bounds
	if bar.X != (1280-bar.W)/2 || bar.Y+bar.H != 720-24 {
		t.Fatalf("sound bar = %+v", bar)
	}
	if o.next.Bounds.X+o.next.Bounds.W > o.viz[0].Bounds.X {
		t.Fatal("next button overlaps the visualizer")
	}
	if o.trackName.Text != cat.Tracks[0].Name || o.cover.Image != cat.Tracks[0].Cover {
		t.Fatalf("track = %q, %q", o.trackName.Text, o.cover.Image)
	}
}

func TestVisualizerBarsBottomAligned(t *testing.T) {
	o, cat := newOverlay(t)
	st := state(cat)
	st.Bars = [4]float64{32, 4, 0, 16}
	o.Update(st, 1280, 720)

	bottom := o.viz[0].Bounds.Y + o.viz[0].Bounds.H
	for i, v := range o.viz {
		if got := v.Bounds.Y + v.Bounds.H; got != bottom {
			t.Fatalf("bar %d bottom = %v, want %v", i, got, bottom)
		}
		if v.Bounds.W != 5 {
			t.Fatalf("bar %d width = %v", i, v.Bounds.W)
		}
	}
	if o.viz[2].Bounds.H != 4 {
		t.Fatalf("silent bar height = %v, want 4", o.viz[2].Bounds.H)
	}
	if gap := o.viz[1].Bounds.X - (o.viz[0].Bounds.X + 5); gap != 2 {
		t.Fatalf("gap = %v", gap)
	}
}

func TestHoverShowsInspector(t *testing.T) {
	o, cat := newOverlay(t)
	st := state(cat)
	o.Update(st, 1280, 720)
	if o.Hovered() != -1 {
		t.Fatalf("hovered = %d", o.Hovered())
	}

	r := st.Placement.Panels[3]
	st.Mouse = ui.Rect{X: r.X + 1, Y: r.Y + 1}
	st.Frame.Points[projector.Watch] = projector.ScreenPoint{X: 600, Y: 300, Valid: true}
	o.Update(st, 1280, 720)
	if o.Hovered() != 3 || o.panels[3].Class != "panel-hover" {
		t.Fatalf("hovered = %d class %q", o.Hovered(), o.panels[3].Class)
	}

	p := &nopPainter{}
	o.Draw(p)
	found := false
	for _, s := range p.texts {
		if s == "Marker: 600, 300" {
			found = true
		}
	}
	if !found {
		t.Fatalf("inspector marker text missing in %q", p.texts)
	}
}

func TestLoadingLabel(t *testing.T) {
	o, cat := newOverlay(t)
	st := state(cat)
	st.Loading = true
	o.Update(st, 1280, 720)

	p := &nopPainter{}
	o.Draw(p)
	seen := map[string]bool{}
	for _, s := range p.texts {
		seen[s] = true
	}
	for _, want := range []string{Title, Tag, BlurbLine, BlurbTail, Loading, "JKT-01"} {
		if !seen[want] {
			t.Fatalf("missing %q in %q", want, p.texts)
		}
	}

	st.Loading = false
	o.Update(st, 1280, 720)
	p = &nopPainter{}
	o.Draw(p)
	for _, s := range p.texts {
		if s == Loading {
			t.Fatal("loading label drawn after the model resolved")
		}
	}
}

func TestPlayMorphEases(t *testing.T) {
	o, cat := newOverlay(t)
	st := state(cat)
	st.Playing = true
	o.Update(st, 1280, 720)
	first := o.PlayMorph()
	if first <= 0 || first >= 1 {
		t.Fatalf("first step = %v, want strictly between 0 and 1", first)
	}
	for range 120 {
		o.Update(st, 1280, 720)
	}
	if m := o.PlayMorph(); m < 0.95 || m > 1.05 {
		t.Fatalf("settled morph = %v", m)
	}
	if o.play.Text != "||" {
		t.Fatalf("play text = %q", o.play.Text)
	}
}

func TestItemWithoutURLIsNotClickable(t *testing.T) {
	items := []catalog.Item{{Marker: "jacket", ID: "A"}}
	o, err := New(items, 60)
	if err != nil {
		t.Fatal(err)
	}
	vp := projector.Viewport{Width: 800, Height: 600}
	st := State{Placement: layout.DefaultStack().Place(layout.Point{X: 300, Y: 300}, vp, 1)}
	o.Update(st, 800, 600)
	r := st.Placement.Panels[0]
	if a := o.Click(r.X+2, r.Y+2); a.Kind != ActionNone {
		t.Fatalf("action = %+v", a)
	}
}
