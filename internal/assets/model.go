// Package assets connects the catalog and the network helpers to the rest of the viewer:
// it resolves the model in the background, serves thumbnails by key and makes sure the
// overlay fonts are on disk.
package assets

import (
	"context"
	"fmt"

	"coffee-edition/internal/download"
	"coffee-edition/internal/probe"
	"coffee-edition/internal/scene"
)

// Logger is the subset of the viewer log this package writes to.
type Logger interface {
	Info(format string, args ...any)
	Warn(format string, args ...any)
}

// Resolver finds the model asset and makes a local copy of it.
type Resolver struct {
	Probe    *probe.Prober
	Download *download.Client
	CacheDir string
	Log      Logger
}

// Resolve probes the candidates in order and fetches the winner into the cache. Local
// assets are used in place. Every failure ends in a result with Err set; the scene treats
// that as "keep the placeholder".
func (r *Resolver) Resolve(ctx context.Context, candidates ...string) scene.ModelResult {
	asset, err := r.Probe.Resolve(ctx, candidates...)
	if err != nil {
		r.warn("assets: model unavailable, keeping placeholder: %v", err)
		return scene.ModelResult{Err: err}
	}
	if asset.Local {
		r.info("assets: model %s", asset.URL)
		return scene.ModelResult{URL: asset.URL, Path: asset.URL}
	}
	path, err := r.Download.Fetch(ctx, asset.URL, r.CacheDir)
	if err != nil {
		err = fmt.Errorf("assets: fetch model: %w", err)
		r.warn("%v", err)
		return scene.ModelResult{URL: asset.URL, Err: err}
	}
	r.info("assets: model %s cached at %s", asset.URL, path)
	return scene.ModelResult{URL: asset.URL, Path: path}
}

// Start runs Resolve on its own goroutine. The channel receives exactly one result and is
// then closed.
func (r *Resolver) Start(ctx context.Context, candidates ...string) <-chan scene.ModelResult {
	ch := make(chan scene.ModelResult, 1)
	go func() {
		defer close(ch)
		ch <- r.Resolve(ctx, candidates...)
	}()
	return ch
}

func (r *Resolver) warn(format string, args ...any) {
	if r.Log != nil {
		r.Log.Warn(format, args...)
	}
}

func (r *Resolver) info(format string, args ...any) {
	if r.Log != nil {
		r.Log.Info(format, args...)
	}
}
