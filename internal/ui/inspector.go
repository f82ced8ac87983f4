package ui

import (
	"fmt"
	"net/url"
)

// Inspector is a small card that shows the hovered item: label, id, shop host and the
// projected position of its marker. It owns its nodes and updates their text when
// AppendNodes is called with visible true.
type Inspector struct {
	panel  *Node
	title  *Node
	id     *Node
	link   *Node
	marker *Node
}

// NewInspector creates an Inspector with nodes styled by the engine's CSS (.inspector, .inspector-title, etc.).
func NewInspector() *Inspector {
	return &Inspector{
		panel:  NewNode("panel", "inspector", "", ""),
		title:  NewNode("label", "inspector-title", "", ""),
		id:     NewNode("label", "inspector-id", "", ""),
		link:   NewNode("label", "inspector-link", "", ""),
		marker: NewNode("label", "inspector-marker", "", ""),
	}
}

// Selection holds the data shown in the inspector. Pass this from the overlay; ui does not
// depend on the catalog or the projector.
type Selection struct {
	ID      string
	Label   string
	URL     string
	ScreenX float64
	ScreenY float64
	OnModel bool // false when the marker has no valid projection
}

// AppendNodes appends inspector nodes to dst when visible is true, after updating labels from sel.
// The card is placed to the right of anchor. When visible is false, dst is returned unchanged.
func (in *Inspector) AppendNodes(dst []*Node, visible bool, sel Selection, anchor Rect) []*Node {
	if !visible {
		return dst
	}
	x := anchor.X + anchor.W + 8
	in.panel.Place(Rect{X: x, Y: anchor.Y, W: 180, H: 76})
	in.title.Place(Rect{X: x, Y: anchor.Y, W: 180, H: 20})
	in.id.Place(Rect{X: x, Y: anchor.Y + 18, W: 180, H: 18})
	in.link.Place(Rect{X: x, Y: anchor.Y + 36, W: 180, H: 18})
	in.marker.Place(Rect{X: x, Y: anchor.Y + 54, W: 180, H: 18})

	in.title.Text = sel.Label
	in.id.Text = "ID: " + sel.ID
	in.link.Text = "Shop: " + hostOf(sel.URL)
	if sel.OnModel {
		in.marker.Text = fmt.Sprintf("Marker: %.0f, %.0f", sel.ScreenX, sel.ScreenY)
	} else {
		in.marker.Text = "Marker: off view"
	}
	return append(dst, in.panel, in.title, in.id, in.link, in.marker)
}

func hostOf(raw string) string {
	if raw == "" {
		return "none"
	}
	u, err := url.Parse(raw)
	if err != nil || u.Host == "" {
		return "none"
	}
	return u.Host
}
