package fonts

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"coffee-edition/internal/archive"
)

// Extensions we consider as font files.
var Exts = []string{".ttf", ".otf"}

// Role is what a font is used for on screen.
type Role int

const (
	Display Role = iota // title and panel ids
	Script              // blurb and loading label
	Mono                // console and debug overlay
)

// Families maps each role to its Google Fonts family.
var Families = map[Role]string{
	Display: "Anton",
	Script:  "Caveat",
	Mono:    "Space Mono",
}

func (r Role) String() string {
	switch r {
	case Display:
		return "display"
	case Script:
		return "script"
	case Mono:
		return "mono"
	}
	return fmt.Sprintf("role(%d)", int(r))
}

// Locator finds fonts under a set of directories.
type Locator struct {
	Dirs []string
}

// NewLocator searches dir and, for runs from a nested package directory, ../../dir.
func NewLocator(dir string) *Locator {
	if dir == "" {
		dir = "assets/fonts"
	}
	return &Locator{Dirs: []string{dir, filepath.Join("..", "..", dir)}}
}

// ScanDir returns relative paths of all font files under dir (e.g. "Anton/Anton-Regular.ttf").
// Paths use forward slashes. Only .ttf and .otf are included.
func ScanDir(dir string) ([]string, error) {
	var out []string
	dir = filepath.Clean(dir)
	err := filepath.Walk(dir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			if os.IsNotExist(err) {
				return nil
			}
			return err
		}
		if info.IsDir() {
			return nil
		}
		if !IsFontFile(path) {
			return nil
		}
		rel, err := filepath.Rel(dir, path)
		if err != nil {
			return err
		}
		out = append(out, filepath.ToSlash(rel))
		return nil
	})
	return out, err
}

// normalizeForMatch lowercases and removes spaces, dashes, and underscores for fuzzy matching.
func normalizeForMatch(s string) string {
	s = strings.ToLower(s)
	s = strings.ReplaceAll(s, " ", "")
	s = strings.ReplaceAll(s, "-", "")
	s = strings.ReplaceAll(s, "_", "")
	return s
}

// Find searches the locator's directories for a font file whose path matches search,
// e.g. "Anton", "Space Mono" or "Caveat-Regular". Returns the full path of the best
// match. When multiple files match, prefers one whose path contains "Regular".
func (l *Locator) Find(search string) (string, error) {
	norm := normalizeForMatch(search)
	if norm == "" {
		return "", os.ErrNotExist
	}
	var candidates []string
	for _, base := range l.Dirs {
		list, walkErr := ScanDir(base)
		if walkErr != nil || len(list) == 0 {
			continue
		}
		for _, rel := range list {
			if strings.Contains(normalizeForMatch(rel), norm) {
				candidates = append(candidates, filepath.Join(base, filepath.FromSlash(rel)))
			}
		}
	}
	if len(candidates) == 0 {
		return "", os.ErrNotExist
	}
	for _, c := range candidates {
		if strings.Contains(strings.ToLower(filepath.Base(c)), "regular") {
			return c, nil
		}
	}
	return candidates[0], nil
}

// Source resolves a family to a download URL.
type Source interface {
	FetchDownloadURLByFamily(ctx context.Context, family string) (string, error)
}

// Fetcher saves a URL into a directory and returns the file path.
type Fetcher interface {
	Fetch(ctx context.Context, url, destDir string) (string, error)
}

// Ensure returns a local file for role, downloading the family into the locator's first
// directory when no local copy exists.
func (l *Locator) Ensure(ctx context.Context, role Role, src Source, fetch Fetcher) (string, error) {
	family, ok := Families[role]
	if !ok {
		return "", fmt.Errorf("fonts: no family for %v", role)
	}
	if p, err := l.Find(family); err == nil {
		return p, nil
	}
	if src == nil || fetch == nil || len(l.Dirs) == 0 {
		return "", fmt.Errorf("fonts: %s not installed", family)
	}
	u, err := src.FetchDownloadURLByFamily(ctx, family)
	if err != nil {
		return "", fmt.Errorf("fonts: %s: %w", family, err)
	}
	dest := filepath.Join(l.Dirs[0], strings.ReplaceAll(family, " ", ""))
	p, err := fetch.Fetch(ctx, u, dest)
	if err != nil {
		return "", fmt.Errorf("fonts: %s: %w", family, err)
	}
	if !archive.IsZip(p) {
		return p, nil
	}
	if _, err := archive.Extract(p, dest, IsFontFile); err != nil {
		return "", fmt.Errorf("fonts: %s: %w", family, err)
	}
	_ = os.Remove(p)
	return (&Locator{Dirs: []string{dest}}).Find(family)
}

// IsFontFile reports whether name has one of Exts.
func IsFontFile(name string) bool {
	ext := strings.ToLower(filepath.Ext(name))
	for _, e := range Exts {
		if ext == e {
			return true
		}
	}
	return false
}
