// Package overlay builds the 2D layer drawn over the model: title block, item panels with
// the hover inspector, the sound bar and the loading label. It lays nodes out with the ui
// engine and turns clicks into actions; it never draws on its own.
package overlay

import (
	_ "embed"
	"fmt"
	"strings"

	"github.com/charmbracelet/harmonica"

	"coffee-edition/internal/catalog"
	"coffee-edition/internal/layout"
	"coffee-edition/internal/projector"
	"coffee-edition/internal/sound"
	"coffee-edition/internal/ui"
)

//go:embed overlay.css
var stylesheet string

const (
	Title     = "COFFEE EDITION"
	Tag       = "OWNERS' CLUB"
	BlurbLine = "Introducing the Owners' Club , a realm for fashion-Art-tech creatives"
	BlurbTail = "powered by enthusiasts"
	Loading   = "Brewing the look..."
)

// Sound bar geometry, relative to the bar's own bounds.
const (
	barPad    = 12.0
	buttonW   = 32.0
	coverSize = 44.0
	vizWidth  = 5.0
	vizGap    = 2.0
	// idStrip is the label band under each thumbnail.
	idStrip = 20.0
)

// State is what the overlay needs from the rest of the viewer for one frame.
type State struct {
	Placement layout.Placement
	Frame     projector.Frame
	Track     catalog.Track
	Playing   bool
	Bars      [sound.Bars]float64 // pixel heights
	Loading   bool
	Mouse     ui.Rect // only X and Y are read
}

// Overlay owns the ui engine and every overlay node.
type Overlay struct {
	engine *ui.Engine
	items  []catalog.Item

	title, tag        *ui.Node
	blurbBox          *ui.Node
	blurb             [2]*ui.Node
	loading           *ui.Node
	panels            []*ui.Node
	thumbs            []*ui.Node
	ids               []*ui.Node
	inspector         *ui.Inspector
	soundbar          *ui.Node
	prev, play, next  *ui.Node
	cover             *ui.Node
	trackName, artist *ui.Node
	viz               [sound.Bars]*ui.Node

	hover int

	spring harmonica.Spring
	morph  float64
	morphV float64
}

// New returns an overlay for items, with transitions stepped fps times per second.
func New(items []catalog.Item, fps int) (*Overlay, error) {
	e := ui.New()
	if err := e.LoadCSSString(stylesheet); err != nil {
		return nil, fmt.Errorf("overlay: %w", err)
	}
	if fps <= 0 {
		fps = 60
	}
	o := &Overlay{
		engine:    e,
		items:     items,
		title:     ui.NewNode("label", "", "title", Title),
		tag:       ui.NewNode("label", "", "tag", Tag),
		blurbBox:  ui.NewNode("panel", "blurb-box", "", ""),
		loading:   ui.NewNode("label", "", "loading", Loading),
		inspector: ui.NewInspector(),
		soundbar:  ui.NewNode("bar", "", "soundbar", ""),
		prev:      ui.NewNode("button", "sound-btn", "prev", "<<"),
		play:      ui.NewNode("button", "sound-btn", "play", ">"),
		next:      ui.NewNode("button", "sound-btn", "next", ">>"),
		cover:     ui.NewNode("image", "cover", "", ""),
		trackName: ui.NewNode("label", "track-name", "", ""),
		artist:    ui.NewNode("label", "track-artist", "", ""),
		hover:     -1,
		spring:    harmonica.NewSpring(harmonica.FPS(fps), 10.0, 0.7),
	}
	o.blurb[0] = ui.NewNode("label", "blurb", "", BlurbLine)
	o.blurb[1] = ui.NewNode("label", "blurb", "", BlurbTail)
	o.prev.Action = "prev"
	o.play.Action = "toggle"
	o.next.Action = "next"
	for i := range o.viz {
		o.viz[i] = ui.NewNode("bar", "viz-bar", "", "")
	}
	for _, it := range items {
		p := ui.NewNode("panel", "panel", "", "")
		if it.HasURL() {
			p.Action = "open:" + it.ID
		}
		th := ui.NewNode("image", "thumb", "", "")
		th.Image = it.Image
		o.panels = append(o.panels, p)
		o.thumbs = append(o.thumbs, th)
		o.ids = append(o.ids, ui.NewNode("label", "panel-id", "", it.ID))
	}
	return o, nil
}

// Engine exposes the ui engine, e.g. for the console to reload styles.
func (o *Overlay) Engine() *ui.Engine { return o.engine }

// Hovered returns the index of the panel under the mouse after the last Update, or -1.
func (o *Overlay) Hovered() int { return o.hover }

// PlayMorph is the eased play-button state: 0 paused, 1 playing.
func (o *Overlay) PlayMorph() float64 { return o.morph }

// Update rebuilds the node list for one frame on a screen of the given size.
func (o *Overlay) Update(st State, screenW, screenH float64) {
	target := 0.0
	if st.Playing {
		target = 1
	}
	o.morph, o.morphV = o.spring.Update(o.morph, o.morphV, target)

	nodes := []*ui.Node{o.title, o.tag, o.blurbBox, o.blurb[0], o.blurb[1], o.soundbar}
	o.loading.Hidden = !st.Loading
	nodes = append(nodes, o.loading)
	o.engine.SetNodes(nodes)
	o.engine.Layout(screenW, screenH)

	o.placeBlurb()
	o.placeSoundBar(st)
	nodes = append(nodes, o.prev, o.cover, o.trackName, o.artist, o.play, o.next)
	for _, v := range o.viz {
		nodes = append(nodes, v)
	}

	o.hover = st.Placement.Hit(st.Mouse.X, st.Mouse.Y)
	for i, p := range o.panels {
		if i >= len(st.Placement.Panels) {
			continue
		}
		r := st.Placement.Panels[i]
		p.Class = "panel"
		if i == o.hover {
			p.Class = "panel-hover"
		}
		p.Place(ui.Rect{X: r.X, Y: r.Y, W: r.W, H: r.H})
		o.thumbs[i].Place(ui.Rect{X: r.X, Y: r.Y, W: r.W, H: r.H - idStrip})
		o.ids[i].Place(ui.Rect{X: r.X, Y: r.Y + r.H - idStrip, W: r.W, H: idStrip})
		nodes = append(nodes, p, o.thumbs[i], o.ids[i])
	}
	if o.hover >= 0 && o.hover < len(o.items) {
		anchor := o.panels[o.hover].Bounds
		nodes = o.inspector.AppendNodes(nodes, true, o.selection(o.items[o.hover], st.Frame), anchor)
	}
	o.engine.SetNodes(nodes)
}

func (o *Overlay) selection(it catalog.Item, f projector.Frame) ui.Selection {
	sel := ui.Selection{ID: it.ID, Label: it.Label, URL: it.URL}
	if m, ok := projector.ParseMarker(it.Marker); ok && f.Points[m].Valid {
		sel.ScreenX, sel.ScreenY, sel.OnModel = f.Points[m].X, f.Points[m].Y, true
	}
	return sel
}

func (o *Overlay) placeBlurb() {
	b := o.blurbBox.Bounds
	o.blurb[0].Place(ui.Rect{X: b.X + 12, Y: b.Y + 12, W: b.W - 24, H: 16})
	o.blurb[1].Place(ui.Rect{X: b.X + 12, Y: b.Y + 32, W: b.W - 24, H: 16})
}

func (o *Overlay) placeSoundBar(st State) {
	b := o.soundbar.Bounds
	midY := b.Y + b.H/2
	x := b.X + barPad

	o.prev.Place(ui.Rect{X: x, Y: midY - buttonW/2, W: buttonW, H: buttonW})
	x += buttonW + 8
	o.cover.Place(ui.Rect{X: x, Y: midY - coverSize/2, W: coverSize, H: coverSize})
	o.cover.Image = st.Track.Cover
	x += coverSize + 10
	o.trackName.Place(ui.Rect{X: x, Y: b.Y + 13, W: 180, H: 20})
	o.trackName.Text = st.Track.Name
	o.artist.Place(ui.Rect{X: x, Y: b.Y + 35, W: 180, H: 14})
	o.artist.Text = st.Track.Artist

	vizW := float64(sound.Bars)*vizWidth + float64(sound.Bars-1)*vizGap
	right := b.X + b.W - barPad
	vizX := right - vizW
	for i, v := range o.viz {
		h := st.Bars[i]
		if h < sound.MinBarHeight {
			h = sound.MinBarHeight
		}
		v.Place(ui.Rect{X: vizX + float64(i)*(vizWidth+vizGap), Y: midY + sound.MaxBarHeight/2 - h, W: vizWidth, H: h})
	}

	nextX := vizX - 14 - buttonW
	o.next.Place(ui.Rect{X: nextX, Y: midY - buttonW/2, W: buttonW, H: buttonW})
	size := buttonW + 4*o.morph
	o.play.Place(ui.Rect{X: nextX - 8 - size, Y: midY - size/2, W: size, H: size})
	if st.Playing {
		o.play.Text = "||"
	} else {
		o.play.Text = ">"
	}
}

// Draw paints the overlay with p.
func (o *Overlay) Draw(p ui.Painter) { o.engine.Draw(p) }

// ActionKind says what a click asks for.
type ActionKind int

const (
	ActionNone ActionKind = iota
	ActionOpen
	ActionPrev
	ActionNext
	ActionToggle
)

// Action is the result of a click.
type Action struct {
	Kind ActionKind
	Item catalog.Item // set for ActionOpen
}

// Click hit-tests (x, y) against the nodes of the last Update.
func (o *Overlay) Click(x, y float64) Action {
	n := o.engine.HitTest(x, y)
	if n == nil {
		return Action{}
	}
	switch {
	case n.Action == "prev":
		return Action{Kind: ActionPrev}
	case n.Action == "next":
		return Action{Kind: ActionNext}
	case n.Action == "toggle":
		return Action{Kind: ActionToggle}
	case strings.HasPrefix(n.Action, "open:"):
		id := strings.TrimPrefix(n.Action, "open:")
		for _, it := range o.items {
			if it.ID == id && it.HasURL() {
				return Action{Kind: ActionOpen, Item: it}
			}
		}
	}
	return Action{}
}
