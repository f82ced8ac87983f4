package download

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"coffee-edition/internal/telemetry"
)

const defaultUserAgent = "coffee-edition/1.0 (+https://github.com/coffee-edition)"

// Client downloads remote assets (models, fonts, images) into local directories so raylib
// can load them from disk.
type Client struct {
	HTTP *http.Client
}

// New returns a client with a 60s timeout.
func New() *Client {
	return &Client{HTTP: &http.Client{Timeout: 60 * time.Second}}
}

// Download fetches url and saves it under destDir. Filename is derived from the URL path
// or Content-Disposition; extension from URL or Content-Type. Returns the path to the saved file
// (destDir + filename). destDir is created if needed.
func (c *Client) Download(ctx context.Context, url string, destDir string) (savedPath string, err error) {
	ctx, span := telemetry.Tracer("coffee-edition/download").Start(ctx, "download.Download")
	defer span.End()
	span.SetAttributes(attribute.String("download.url", url))
	defer func() {
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}
	}()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", fmt.Errorf("download: %w", err)
	}
	req.Header.Set("User-Agent", defaultUserAgent)
	resp, err := c.httpClient().Do(req)
	if err != nil {
		return "", fmt.Errorf("download: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("download: %s: HTTP %d", url, resp.StatusCode)
	}
	savedPath = filepath.Join(destDir, TargetName(url, resp.Header))
	if err := os.MkdirAll(destDir, 0755); err != nil {
		return "", fmt.Errorf("download: %w", err)
	}

	// Write to a temp file first so an interrupted download never looks cached.
	tmp, err := os.CreateTemp(destDir, ".part-*")
	if err != nil {
		return "", fmt.Errorf("download: %w", err)
	}
	n, err := io.Copy(tmp, resp.Body)
	if cerr := tmp.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		_ = os.Remove(tmp.Name())
		return "", fmt.Errorf("download: %w", err)
	}
	if err := os.Rename(tmp.Name(), savedPath); err != nil {
		_ = os.Remove(tmp.Name())
		return "", fmt.Errorf("download: %w", err)
	}
	span.SetAttributes(attribute.Int64("download.bytes", n))
	return savedPath, nil
}

// Cached returns the file a previous Download of url left in destDir, if any. Only the
// URL is consulted, so servers that rename files through Content-Disposition miss the cache.
func Cached(url, destDir string) (string, bool) {
	p := filepath.Join(destDir, TargetName(url, nil))
	if info, err := os.Stat(p); err == nil && !info.IsDir() && info.Size() > 0 {
		return p, true
	}
	return "", false
}

// Fetch returns the cached copy of url when present, otherwise downloads it.
func (c *Client) Fetch(ctx context.Context, url, destDir string) (string, error) {
	if p, ok := Cached(url, destDir); ok {
		return p, nil
	}
	return c.Download(ctx, url, destDir)
}

func (c *Client) httpClient() *http.Client {
	if c == nil || c.HTTP == nil {
		return http.DefaultClient
	}
	return c.HTTP
}

// TargetName picks the local file name for url given the response headers (nil when
// there is no response yet).
func TargetName(url string, h http.Header) string {
	var ct, cd string
	if h != nil {
		ct, cd = h.Get("Content-Type"), h.Get("Content-Disposition")
	}
	ext := extensionFromURL(url)
	if ext == "" {
		ext = extensionFromContentType(ct)
	}
	if ext == "" {
		ext = ".bin"
	}
	name := filenameFromContentDisposition(cd)
	if name == "" {
		name = filenameFromURL(url)
	}
	name = sanitizeFilename(name)
	if !strings.HasSuffix(strings.ToLower(name), ext) {
		name = name + ext
	}
	return name
}

func filenameFromContentDisposition(cd string) string {
	cd = strings.TrimSpace(cd)
	// filename="..."; or filename*=UTF-8''...
	if i := strings.Index(cd, "filename*=UTF-8''"); i >= 0 {
		s := cd[i+len("filename*=UTF-8''"):]
		if j := strings.IndexAny(s, ";\r\n"); j >= 0 {
			s = s[:j]
		}
		return strings.Trim(s, "\"")
	}
	if i := strings.Index(cd, "filename="); i >= 0 {
		s := cd[i+len("filename="):]
		s = strings.Trim(s, "\" ")
		if j := strings.IndexAny(s, ";\r\n"); j >= 0 {
			s = s[:j]
		}
		return strings.Trim(s, "\" ")
	}
	return ""
}

func extensionFromContentType(ct string) string {
	ct = strings.ToLower(strings.TrimSpace(ct))
	if idx := strings.Index(ct, ";"); idx >= 0 {
		ct = ct[:idx]
	}
	switch {
	case ct == "model/gltf-binary":
		return ".glb"
	case ct == "model/gltf+json":
		return ".gltf"
	case strings.Contains(ct, "font") || strings.Contains(ct, "ttf"):
		return ".ttf"
	case strings.Contains(ct, "otf"):
		return ".otf"
	case strings.Contains(ct, "png"):
		return ".png"
	case strings.Contains(ct, "jpeg"), strings.Contains(ct, "jpg"):
		return ".jpg"
	case strings.Contains(ct, "webp"):
		return ".webp"
	case strings.Contains(ct, "mpeg"):
		return ".mp3"
	}
	return ""
}

var knownExts = map[string]bool{
	".glb": true, ".gltf": true, ".ttf": true, ".otf": true, ".png": true,
	".jpg": true, ".jpeg": true, ".webp": true, ".tga": true, ".mp3": true, ".ogg": true,
}

func extensionFromURL(url string) string {
	path := url
	if idx := strings.IndexAny(path, "?#"); idx >= 0 {
		path = path[:idx]
	}
	ext := strings.ToLower(filepath.Ext(path))
	if knownExts[ext] {
		return ext
	}
	return ""
}

func filenameFromURL(url string) string {
	path := url
	if idx := strings.IndexAny(path, "?#"); idx >= 0 {
		path = path[:idx]
	}
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

var safeNameRe = regexp.MustCompile(`[^a-zA-Z0-9_.-]+`)

func sanitizeFilename(name string) string {
	if name == "" || name == "." || name == "/" {
		return "download"
	}
	name = safeNameRe.ReplaceAllString(name, "_")
	name = strings.TrimLeft(name, ".")
	if name == "" {
		return "download"
	}
	if len(name) > 96 {
		name = name[:96]
	}
	return name
}
