package probe

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"
)

type headLog struct {
	mu    sync.Mutex
	paths []string
}

func (h *headLog) add(p string) {
	h.mu.Lock()
	h.paths = append(h.paths, p)
	h.mu.Unlock()
}

func newServer(t *testing.T, status map[string]int) (*httptest.Server, *headLog) {
	t.Helper()
	log := &headLog{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodHead {
			t.Errorf("method = %s, want HEAD", r.Method)
		}
		log.add(r.URL.Path)
		code, ok := status[r.URL.Path]
		if !ok {
			code = http.StatusNotFound
		}
		w.WriteHeader(code)
	}))
	t.Cleanup(srv.Close)
	return srv, log
}

func TestResolvePrefersPrimary(t *testing.T) {
	srv, log := newServer(t, map[string]int{
		"/models/primary.glb":  http.StatusOK,
		"/models/fallback.glb": http.StatusOK,
	})
	p := New(srv.URL, "")

	got, err := p.Resolve(context.Background(), "/models/primary.glb", "/models/fallback.glb")
	if err != nil {
		t.Fatal(err)
	}
	if got.URL != srv.URL+"/models/primary.glb" || got.Local {
		t.Fatalf("asset = %+v", got)
	}
	if len(log.paths) != 1 {
		t.Fatalf("fallback should not be probed, requests = %v", log.paths)
	}
}

func TestResolveFallsBack(t *testing.T) {
	srv, log := newServer(t, map[string]int{
		"/models/primary.glb":  http.StatusNotFound,
		"/models/fallback.glb": http.StatusNoContent,
	})
	p := New(srv.URL, "")

	got, err := p.Resolve(context.Background(), "/models/primary.glb", "/models/fallback.glb")
	if err != nil {
		t.Fatal(err)
	}
	if got.Ref != "/models/fallback.glb" {
		t.Fatalf("asset = %+v", got)
	}
	if len(log.paths) != 2 {
		t.Fatalf("requests = %v", log.paths)
	}
}

func TestResolveBothFail(t *testing.T) {
	srv, _ := newServer(t, map[string]int{"/models/primary.glb": http.StatusInternalServerError})
	p := New(srv.URL, "")

	_, err := p.Resolve(context.Background(), "/models/primary.glb", "/models/fallback.glb")
	if !errors.Is(err, ErrUnavailable) {
		t.Fatalf("err = %v, want ErrUnavailable", err)
	}
	var se *StatusError
	if !errors.As(err, &se) || se.Code != http.StatusInternalServerError {
		t.Fatalf("err = %v should carry the primary's status", err)
	}
}

func TestResolveUnreachableServer(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	base := srv.URL
	srv.Close()

	_, err := New(base, "").Resolve(context.Background(), "/a.glb")
	if !errors.Is(err, ErrUnavailable) {
		t.Fatalf("err = %v", err)
	}
}

func TestResolveCanceled(t *testing.T) {
	srv, _ := newServer(t, nil)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := New(srv.URL, "").Resolve(ctx, "/a.glb", "/b.glb")
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("err = %v, want context.Canceled", err)
	}
}

func TestResolveLocal(t *testing.T) {
	dir := t.TempDir()
	if err := os.MkdirAll(filepath.Join(dir, "models"), 0755); err != nil {
		t.Fatal(err)
	}
	want := filepath.Join(dir, "models", "fashion+model+3d+model.glb")
	if err := os.WriteFile(want, []byte("glTF"), 0644); err != nil {
		t.Fatal(err)
	}

	got, err := New("", dir).Resolve(context.Background(), "/models/ian_coffee.glb", "/models/fashion+model+3d+model.glb")
	if err != nil {
		t.Fatal(err)
	}
	if !got.Local || got.URL != want {
		t.Fatalf("asset = %+v", got)
	}
}

type warnings struct{ n int }

func (w *warnings) Warn(string, ...any) { w.n++ }

func TestResolveLogsEachFailure(t *testing.T) {
	w := &warnings{}
	p := New("", t.TempDir())
	p.Log = w
	if _, err := p.Resolve(context.Background(), "/a.glb", "", "/b.glb"); err == nil {
		t.Fatal("expected error")
	}
	if w.n != 2 {
		t.Fatalf("warnings = %d", w.n)
	}
}

func TestLocate(t *testing.T) {
	tests := []struct {
		name  string
		base  string
		ref   string
		want  string
		local bool
	}{
		{"absolute ref", "https://cdn.example", "https://other.example/m.glb", "https://other.example/m.glb", false},
		{"base without slash", "https://cdn.example/site", "/models/a.glb", "https://cdn.example/site/models/a.glb", false},
		{"base with slash", "https://cdn.example/site/", "models/a.glb", "https://cdn.example/site/models/a.glb", false},
		{"plus signs kept", "https://cdn.example", "/models/fashion+model.glb", "https://cdn.example/models/fashion+model.glb", false},
		{"local", "", "/models/../models/a.glb", filepath.Join("assets", "models", "a.glb"), true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := &Prober{BaseURL: tt.base, LocalDir: "assets"}
			got, local, err := p.Locate(tt.ref)
			if err != nil {
				t.Fatal(err)
			}
			if got != tt.want || local != tt.local {
				t.Fatalf("Locate = %q, %v; want %q, %v", got, local, tt.want, tt.local)
			}
		})
	}
}

func TestStatusErrorMessage(t *testing.T) {
	err := &StatusError{URL: "https://cdn.example/a.glb", Code: 404}
	if !strings.Contains(err.Error(), "HTTP 404") {
		t.Fatalf("Error() = %q", err.Error())
	}
}

func TestResolveHasNoClientTimeout(t *testing.T) {
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
		w.WriteHeader(http.StatusOK)
	}))
	t.Cleanup(srv.Close)
	t.Cleanup(func() { close(release) })

	p := New(srv.URL, "")
	if p.Client.Timeout != 0 {
		t.Fatalf("client timeout = %v, want none", p.Client.Timeout)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	if _, err := p.Resolve(ctx, "/models/slow.glb"); !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("err = %v, the context should end the request", err)
	}
}
