// Package probe finds which model asset is reachable. Each candidate is checked with a
// HEAD request (or a stat, for local assets) and the first success wins.
package probe

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"strings"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"coffee-edition/internal/telemetry"
)

// ErrUnavailable means no candidate asset could be reached.
var ErrUnavailable = errors.New("probe: no model asset is reachable")

const tracerName = "coffee-edition/probe"

// StatusError is a non-2xx answer to a HEAD request.
type StatusError struct {
	URL  string
	Code int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("probe: HEAD %s: HTTP %d", e.URL, e.Code)
}

// Asset is a resolved model location.
type Asset struct {
	Ref   string // the candidate as configured
	URL   string // absolute URL or local path
	Local bool
}

// Warner receives per-candidate failures.
type Warner interface {
	Warn(format string, args ...any)
}

// Prober resolves model candidates. Relative references are resolved against BaseURL,
// or looked up under LocalDir when BaseURL is empty.
type Prober struct {
	Client   *http.Client
	BaseURL  string
	LocalDir string
	Log      Warner

	tracer trace.Tracer
}

// New returns a prober whose requests end only with the network stack or ctx; there is
// no client timeout and no retry.
func New(baseURL, localDir string) *Prober {
	return &Prober{
		Client:   &http.Client{},
		BaseURL:  baseURL,
		LocalDir: localDir,
		tracer:   telemetry.Tracer(tracerName),
	}
}

// Resolve checks candidates in order and returns the first reachable one. When none
// answers, the returned error wraps ErrUnavailable and every candidate's failure.
func (p *Prober) Resolve(ctx context.Context, candidates ...string) (Asset, error) {
	tracer := p.tracer
	if tracer == nil {
		tracer = telemetry.Tracer(tracerName)
	}
	ctx, span := tracer.Start(ctx, "probe.Resolve")
	defer span.End()

	errs := []error{ErrUnavailable}
	for i, ref := range candidates {
		if ref == "" {
			continue
		}
		asset, err := p.check(ctx, ref)
		span.SetAttributes(attribute.Bool(fmt.Sprintf("probe.candidate.%d.ok", i), err == nil))
		if err == nil {
			span.SetAttributes(attribute.String("probe.url", asset.URL))
			return asset, nil
		}
		if ctx.Err() != nil {
			span.SetStatus(codes.Error, "canceled")
			return Asset{}, ctx.Err()
		}
		if p.Log != nil {
			p.Log.Warn("probe: %s unavailable: %v", ref, err)
		}
		errs = append(errs, err)
	}
	span.SetStatus(codes.Error, ErrUnavailable.Error())
	return Asset{}, errors.Join(errs...)
}

func (p *Prober) check(ctx context.Context, ref string) (Asset, error) {
	abs, local, err := p.Locate(ref)
	if err != nil {
		return Asset{}, err
	}
	if local {
		info, err := os.Stat(abs)
		if err != nil {
			return Asset{}, fmt.Errorf("probe: %w", err)
		}
		if info.IsDir() {
			return Asset{}, fmt.Errorf("probe: %s is a directory", abs)
		}
		return Asset{Ref: ref, URL: abs, Local: true}, nil
	}
	if err := p.Head(ctx, abs); err != nil {
		return Asset{}, err
	}
	return Asset{Ref: ref, URL: abs}, nil
}

// Locate turns ref into an absolute URL, or into a local path when no base URL is set.
func (p *Prober) Locate(ref string) (string, bool, error) {
	u, err := url.Parse(ref)
	if err != nil {
		return "", false, fmt.Errorf("probe: parse %q: %w", ref, err)
	}
	if u.IsAbs() {
		return u.String(), false, nil
	}
	if p.BaseURL == "" {
		rel := strings.TrimPrefix(path.Clean("/"+u.Path), "/")
		return filepath.Join(p.LocalDir, filepath.FromSlash(rel)), true, nil
	}
	base, err := url.Parse(p.BaseURL)
	if err != nil {
		return "", false, fmt.Errorf("probe: parse base %q: %w", p.BaseURL, err)
	}
	if !strings.HasSuffix(base.Path, "/") {
		base.Path += "/"
	}
	u.Path = strings.TrimPrefix(u.Path, "/")
	return base.ResolveReference(u).String(), false, nil
}

// Head issues one HEAD request. Any 2xx status is success.
func (p *Prober) Head(ctx context.Context, rawURL string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodHead, rawURL, nil)
	if err != nil {
		return fmt.Errorf("probe: %w", err)
	}
	client := p.Client
	if client == nil {
		client = http.DefaultClient
	}
	resp, err := client.Do(req)
	if err != nil {
		return fmt.Errorf("probe: %w", err)
	}
	resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &StatusError{URL: rawURL, Code: resp.StatusCode}
	}
	return nil
}
