package prefs

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadMissingReturnsDefaults(t *testing.T) {
	s := NewStore(filepath.Join(t.TempDir(), "viewer.json"))
	if got := s.Load(); got != Default() {
		t.Fatalf("Load = %+v", got)
	}
	if _, err := os.Stat(s.Path); !os.IsNotExist(err) {
		t.Fatal("Load must not create the file")
	}
}

func TestSaveRoundTrip(t *testing.T) {
	s := NewStore(filepath.Join(t.TempDir(), "config", "viewer.json"))
	want := Prefs{ShowFPS: true, ShowLines: false, Muted: true}
	if err := s.Save(want); err != nil {
		t.Fatal(err)
	}
	if got := s.Load(); got != want {
		t.Fatalf("Load = %+v, want %+v", got, want)
	}
}

func TestPartialFileKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "viewer.json")
	if err := os.WriteFile(path, []byte(`{"show_fps": true}`), 0644); err != nil {
		t.Fatal(err)
	}
	got := NewStore(path).Load()
	if !got.ShowFPS || !got.ShowLines || !got.AutoRotate {
		t.Fatalf("Load = %+v", got)
	}
}

func TestInvalidFileReturnsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "viewer.json")
	if err := os.WriteFile(path, []byte(`{not json`), 0644); err != nil {
		t.Fatal(err)
	}
	if got := NewStore(path).Load(); got != Default() {
		t.Fatalf("Load = %+v", got)
	}
}

func TestNewStoreDefaultPath(t *testing.T) {
	if NewStore("").Path != DefaultPath {
		t.Fatal("empty path should use DefaultPath")
	}
}
