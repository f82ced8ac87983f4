package assets

import (
	"image"

	"coffee-edition/internal/catalog"
	"coffee-edition/internal/thumbs"
)

// CoverSize is the square size of a track cover in the sound bar.
const CoverSize = 44

// Images serves overlay textures by catalog key: item images become panel thumbnails and
// track covers become square covers. Unknown keys have no image.
type Images struct {
	Catalog *catalog.Catalog
	Dir     string
	Log     thumbs.Warner
}

// Image returns the decoded image for key, or a labelled placeholder when the file is
// missing or unreadable.
func (im *Images) Image(key string) *image.RGBA {
	w, h, label, ok := im.lookup(key)
	if !ok {
		return nil
	}
	path, err := catalog.LocalPath(im.Dir, key)
	if err != nil {
		if im.Log != nil {
			im.Log.Warn("assets: %v", err)
		}
		return thumbs.Placeholder(w, h, label)
	}
	img, _ := thumbs.LoadOrPlaceholder(path, w, h, label, im.Log)
	return img
}

func (im *Images) lookup(key string) (w, h int, label string, ok bool) {
	if im.Catalog == nil || key == "" {
		return 0, 0, "", false
	}
	for _, it := range im.Catalog.Items {
		if it.Image == key {
			return thumbs.Width, thumbs.Height, it.ID, true
		}
	}
	for _, tr := range im.Catalog.Tracks {
		if tr.Cover == key {
			return CoverSize, CoverSize, tr.ID, true
		}
	}
	return 0, 0, "", false
}

// Locator maps catalog asset paths (track sources) onto dir. Paths outside the asset
// root are returned unchanged so the audio backend reports them.
func Locator(dir string) func(src string) string {
	return func(src string) string {
		p, err := catalog.LocalPath(dir, src)
		if err != nil {
			return src
		}
		return p
	}
}
