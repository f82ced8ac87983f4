package projector

import "github.com/go-gl/mathgl/mgl64"

// Marker identifies a point of interest on the model.
type Marker int

const (
	Jacket Marker = iota
	Pants
	Shoes
	Watch

	// MarkerCount is the number of markers; arrays indexed by Marker have this length.
	MarkerCount
)

var markerKeys = [MarkerCount]string{"jacket", "pants", "shoes", "watch"}

// Markers lists every marker in display order.
func Markers() [MarkerCount]Marker {
	return [MarkerCount]Marker{Jacket, Pants, Shoes, Watch}
}

// Key returns the catalog key for the marker ("jacket", ...).
func (m Marker) Key() string {
	if m < 0 || m >= MarkerCount {
		return ""
	}
	return markerKeys[m]
}

func (m Marker) String() string { return m.Key() }

// ParseMarker maps a catalog key back to its marker.
func ParseMarker(key string) (Marker, bool) {
	for i, k := range markerKeys {
		if k == key {
			return Marker(i), true
		}
	}
	return 0, false
}

// MarkerSet holds each marker's position in model-local space.
type MarkerSet [MarkerCount]mgl64.Vec3

// DefaultMarkers are the anchor points on the Coffee Edition model.
func DefaultMarkers() MarkerSet {
	return MarkerSet{
		Jacket: {0, 1.35, 0.15},
		Pants:  {0.08, 0.05, 0.18},
		Shoes:  {0.32, 0.02, 0.32}, // lowered toward the feet
		Watch:  {0.32, 1.05, 0.12},
	}
}

// World returns the marker's world-space position under model.
func (s MarkerSet) World(m Marker, model mgl64.Mat4) mgl64.Vec3 {
	w := model.Mul4x1(s[m].Vec4(1))
	return mgl64.Vec3{w[0], w[1], w[2]}
}
