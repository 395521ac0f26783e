package storage

import (
	"errors"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/jwebster45206/dungeon-engine/pkg/world"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func writeFile(t *testing.T, path, body string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("MkdirAll: %v", err)
	}
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
}

func TestWorldStore_ListWorlds(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "woods.json"), `{"name":"Dark Woods","start":"a","rooms":[{"id":"a","name":"A"}]}`)
	writeFile(t, filepath.Join(dir, "caves", "deep.json"), `{"name":"Deep Caves","start":"b","rooms":[{"id":"b","name":"B"}]}`)
	writeFile(t, filepath.Join(dir, "broken.json"), `{"name":"Broken","start":"nowhere","rooms":[{"id":"a","name":"A"}]}`)
	writeFile(t, filepath.Join(dir, "notes.txt"), "not a world")
	writeFile(t, filepath.Join(dir, "garbage.json"), "{")

	store := NewWorldStore(dir, testLogger())
	worlds, err := store.ListWorlds()
	if err != nil {
		t.Fatalf("ListWorlds: %v", err)
	}

	if len(worlds) != 2 {
		t.Fatalf("expected 2 worlds, got %v", worlds)
	}
	if worlds["Dark Woods"] != "woods.json" {
		t.Errorf("expected woods.json, got %q", worlds["Dark Woods"])
	}
	if worlds["Deep Caves"] != filepath.Join("caves", "deep.json") {
		t.Errorf("expected caves/deep.json, got %q", worlds["Deep Caves"])
	}
}

func TestWorldStore_ListWorlds_MissingDir(t *testing.T) {
	store := NewWorldStore(filepath.Join(t.TempDir(), "missing"), testLogger())
	if _, err := store.ListWorlds(); err == nil {
		t.Error("expected an error for a missing directory")
	}
}

func TestWorldStore_LoadWorld(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "woods.json"), `{"name":"Dark Woods","start":"a","rooms":[{"id":"a","name":"A"}]}`)
	writeFile(t, filepath.Join(dir, "broken.json"), `{"name":"Broken","start":"nowhere","rooms":[{"id":"a","name":"A"}]}`)
	store := NewWorldStore(dir, testLogger())

	w, err := store.LoadWorld("woods.json")
	if err != nil {
		t.Fatalf("LoadWorld: %v", err)
	}
	if w.Name() != "Dark Woods" || w.Start().Name() != "A" {
		t.Errorf("unexpected world: %s starting in %s", w.Name(), w.Start().Name())
	}

	if _, err := store.LoadWorld("nonexistent.json"); err == nil {
		t.Error("expected error for a missing world")
	}

	_, err = store.LoadWorld("broken.json")
	if !errors.Is(err, world.ErrInvalidWorld) {
		t.Errorf("expected ErrInvalidWorld, got %v", err)
	}
}
