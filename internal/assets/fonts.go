package assets

import (
	"context"
	"sync"

	"golang.org/x/sync/errgroup"

	"coffee-edition/internal/fonts"
)

// EnsureFonts makes sure every font role has a local file, downloading missing families
// concurrently. Roles that fail are logged and left out of the result; the renderer falls
// back to its default font for them.
func EnsureFonts(ctx context.Context, loc *fonts.Locator, src fonts.Source, fetch fonts.Fetcher, log Logger) map[fonts.Role]string {
	var (
		mu  sync.Mutex
		out = make(map[fonts.Role]string)
	)
	g, ctx := errgroup.WithContext(ctx)
	for _, role := range []fonts.Role{fonts.Display, fonts.Script, fonts.Mono} {
		g.Go(func() error {
			p, err := loc.Ensure(ctx, role, src, fetch)
			if err != nil {
				if log != nil {
					log.Warn("assets: font %v: %v", role, err)
				}
				return nil
			}
			mu.Lock()
			out[role] = p
			mu.Unlock()
			return nil
		})
	}
	_ = g.Wait()
	return out
}
