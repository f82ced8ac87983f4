// Package catalog holds the static item and track data shipped with the viewer.
package catalog

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"io"
	"net/url"
	"path"
	"path/filepath"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"gopkg.in/yaml.v3"

	"coffee-edition/internal/projector"
)

//go:embed catalog.yaml
var defaultYAML []byte

// assetPrefix is the web root every asset path in the catalog starts with.
const assetPrefix = "/assets/"

// Item is one fashion piece shown in the panel stack.
type Item struct {
	Marker string `yaml:"marker"`
	ID     string `yaml:"id"`
	Label  string `yaml:"label"`
	Image  string `yaml:"image"`
	URL    string `yaml:"url,omitempty"`
}

// HasURL reports whether clicking the item opens a page.
func (it Item) HasURL() bool { return it.URL != "" }

// Track is one entry of the sound bar's playlist.
type Track struct {
	ID     string `yaml:"id"`
	Name   string `yaml:"name"`
	Artist string `yaml:"artist"`
	Cover  string `yaml:"cover"`
	Src    string `yaml:"src"`
}

// Catalog is the full static dataset.
type Catalog struct {
	Items  []Item  `yaml:"items"`
	Tracks []Track `yaml:"tracks"`
}

var upper = cases.Upper(language.English)

// Default returns the embedded catalog. It panics if the embedded file is invalid, which
// the package tests rule out.
func Default() *Catalog {
	c, err := Load(bytes.NewReader(defaultYAML))
	if err != nil {
		panic(err)
	}
	return c
}

// Load decodes and validates a catalog. Item labels are upper-cased.
func Load(r io.Reader) (*Catalog, error) {
	var c Catalog
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&c); err != nil {
		return nil, fmt.Errorf("catalog: decode: %w", err)
	}
	for i := range c.Items {
		c.Items[i].Label = upper.String(c.Items[i].Label)
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return &c, nil
}

// Validate checks ids are unique, markers are known and URLs are absolute.
func (c *Catalog) Validate() error {
	var errs []error
	seen := make(map[string]bool)
	for _, it := range c.Items {
		if it.ID == "" {
			errs = append(errs, errors.New("item with empty id"))
			continue
		}
		if seen[it.ID] {
			errs = append(errs, fmt.Errorf("duplicate item id %q", it.ID))
		}
		seen[it.ID] = true
		if _, ok := projector.ParseMarker(it.Marker); !ok {
			errs = append(errs, fmt.Errorf("item %s: unknown marker %q", it.ID, it.Marker))
		}
		if it.URL != "" {
			u, err := url.Parse(it.URL)
			if err != nil || !u.IsAbs() {
				errs = append(errs, fmt.Errorf("item %s: url %q is not absolute", it.ID, it.URL))
			}
		}
	}
	for _, tr := range c.Tracks {
		if tr.ID == "" || tr.Src == "" {
			errs = append(errs, fmt.Errorf("track %q: id and src are required", tr.Name))
			continue
		}
		if seen[tr.ID] {
			errs = append(errs, fmt.Errorf("duplicate id %q", tr.ID))
		}
		seen[tr.ID] = true
	}
	if len(errs) > 0 {
		return fmt.Errorf("catalog: %w", errors.Join(errs...))
	}
	return nil
}

// Item returns the item with the given id.
func (c *Catalog) Item(id string) (Item, bool) {
	for _, it := range c.Items {
		if it.ID == id {
			return it, true
		}
	}
	return Item{}, false
}

// ForMarker returns the item attached to marker m.
func (c *Catalog) ForMarker(m projector.Marker) (Item, bool) {
	for _, it := range c.Items {
		if it.Marker == m.Key() {
			return it, true
		}
	}
	return Item{}, false
}

// LocalPath maps a catalog asset path such as "/assets/images/jacket.jpg" onto dir.
// Paths outside the asset root are rejected.
func LocalPath(dir, assetPath string) (string, error) {
	clean := path.Clean("/" + assetPath)
	if !strings.HasPrefix(clean, assetPrefix) {
		return "", fmt.Errorf("catalog: %q is not under %s", assetPath, assetPrefix)
	}
	return filepath.Join(dir, filepath.FromSlash(strings.TrimPrefix(clean, assetPrefix))), nil
}
