package ui

// Rect is a node's screen rectangle in pixels.
type Rect struct {
	X, Y, W, H float64
}

// Contains reports whether (x, y) lies inside r.
func (r Rect) Contains(x, y float64) bool {
	return x >= r.X && x < r.X+r.W && y >= r.Y && y < r.Y+r.H
}

// Node is a single UI element: panel, label, image, button. It has optional class and id for CSS matching,
// bounds (position and size), optional text for labels and an optional action fired on click.
type Node struct {
	Type   string // "panel", "label", "image", "button", "bar"
	Class  string // e.g. "panel" for .panel
	ID     string // e.g. "title" for #title
	Bounds Rect
	Text   string // for label-type nodes
	Image  string // texture key for image nodes
	Action string // dispatched by HitTest, e.g. "open:JKT-01"

	// Fixed nodes keep the Bounds set in code; the stylesheet only styles them.
	Fixed  bool
	Hidden bool
}

// NewNode creates a node with type and optional class, id, and text.
func NewNode(typ, class, id, text string) *Node {
	return &Node{
		Type:  typ,
		Class: class,
		ID:    id,
		Text:  text,
	}
}

// Place fixes the node at r.
func (n *Node) Place(r Rect) {
	n.Bounds = r
	n.Fixed = true
}
