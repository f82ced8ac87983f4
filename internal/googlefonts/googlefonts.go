package googlefonts

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const (
	// DefaultAPIBase lists the OFL families of the google/fonts repository.
	DefaultAPIBase = "https://api.github.com/repos/google/fonts/contents/ofl"
	// DefaultRawPrefix is the only download host accepted by default.
	DefaultRawPrefix = "https://raw.githubusercontent.com/google/fonts/"
)

// ErrNotFound is returned when the family has no folder in the repository.
var ErrNotFound = errors.New("google fonts: family not found")

type githubFile struct {
	Name        string `json:"name"`
	Type        string `json:"type"`
	DownloadURL string `json:"download_url"`
}

// Client looks up raw TTF/OTF URLs. Download URLs outside RawPrefix are ignored.
type Client struct {
	HTTP      *http.Client
	APIBase   string
	RawPrefix string
}

// New returns a client for the public google/fonts repository.
func New() *Client {
	return &Client{
		HTTP:      &http.Client{Timeout: 15 * time.Second},
		APIBase:   DefaultAPIBase,
		RawPrefix: DefaultRawPrefix,
	}
}

// NormalizeFamily converts a display name to a folder name used in google/fonts ofl.
// e.g. "Anton" -> "anton", "JetBrains Mono" -> "jetbrainsmono". Also try "jetbrains-mono" if needed.
func NormalizeFamily(name string) []string {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil
	}
	lower := strings.ToLower(name)
	noSpaces := strings.ReplaceAll(lower, " ", "")
	withHyphens := strings.ReplaceAll(lower, " ", "-")
	out := []string{noSpaces}
	if withHyphens != noSpaces {
		out = append(out, withHyphens)
	}
	return out
}

// FetchDownloadURL returns the raw download URL for a font file in the given folder.
// Prefers a file whose name does not contain "Italic".
func (c *Client) FetchDownloadURL(ctx context.Context, folder string) (downloadURL string, err error) {
	u := strings.TrimSuffix(c.APIBase, "/") + "/" + url.PathEscape(folder)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return "", fmt.Errorf("google fonts: %w", err)
	}
	req.Header.Set("Accept", "application/vnd.github.v3+json")
	client := c.HTTP
	if client == nil {
		client = http.DefaultClient
	}
	resp, err := client.Do(req)
	if err != nil {
		return "", fmt.Errorf("google fonts: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode == http.StatusNotFound {
		return "", fmt.Errorf("%w: %q", ErrNotFound, folder)
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("google fonts: HTTP %d", resp.StatusCode)
	}
	var files []githubFile
	if err := json.NewDecoder(resp.Body).Decode(&files); err != nil {
		return "", fmt.Errorf("google fonts: %w", err)
	}
	var preferred, fallback string
	for _, f := range files {
		if f.Type != "file" || f.DownloadURL == "" {
			continue
		}
		lower := strings.ToLower(f.Name)
		if !strings.HasSuffix(lower, ".ttf") && !strings.HasSuffix(lower, ".otf") {
			continue
		}
		if !strings.HasPrefix(f.DownloadURL, c.RawPrefix) {
			continue
		}
		if strings.Contains(lower, "italic") {
			if fallback == "" {
				fallback = f.DownloadURL
			}
			continue
		}
		preferred = f.DownloadURL
		break
	}
	if preferred != "" {
		return preferred, nil
	}
	if fallback != "" {
		return fallback, nil
	}
	return "", fmt.Errorf("google fonts: no .ttf/.otf file for %q", folder)
}

// FetchDownloadURLByFamily tries NormalizeFamily(name) variants and returns the first successful download URL.
func (c *Client) FetchDownloadURLByFamily(ctx context.Context, name string) (downloadURL string, err error) {
	candidates := NormalizeFamily(name)
	if len(candidates) == 0 {
		return "", fmt.Errorf("google fonts: invalid font name %q", name)
	}
	var lastErr error
	for _, folder := range candidates {
		u, err := c.FetchDownloadURL(ctx, folder)
		if err == nil {
			return u, nil
		}
		lastErr = err
	}
	return "", lastErr
}
