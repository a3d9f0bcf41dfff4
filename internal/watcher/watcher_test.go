package watcher

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/charmbracelet/log"
)

func writeFile(t *testing.T, path string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(`{"name":"x"}`), 0644); err != nil {
		t.Fatal(err)
	}
}

func TestScan(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "output_20250101000000.json"))
	writeFile(t, filepath.Join(dir, "output_20250101000004.json"))
	writeFile(t, filepath.Join(dir, "output_20250101000002.json"))
	writeFile(t, filepath.Join(dir, "other.json"))

	w, err := New(filepath.Join(dir, "output_*.json"), nil, log.New(io.Discard))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if _, ok := w.Latest(); ok {
		t.Error("expected no latest file before scanning")
	}
	if err := w.Scan(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	latest, ok := w.Latest()
	if !ok || latest != filepath.Join(dir, "output_20250101000004.json") {
		t.Errorf("expected newest output file, got %q", latest)
	}
}

func TestNewRejectsBadPattern(t *testing.T) {
	if _, err := New(filepath.Join(t.TempDir(), "output_[.json"), nil, nil); err == nil {
		t.Error("expected error for malformed pattern")
	}
}

func TestWatchReportsNewFiles(t *testing.T) {
	dir := t.TempDir()
	changed := make(chan string, 4)
	w, err := New(filepath.Join(dir, "snap_*.json"), func(path string) { changed <- path }, log.New(io.Discard))
	if err != nil {
		t.Fatal(err)
	}
	w.WithDebounce(10 * time.Millisecond)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	done := make(chan error, 1)
	go func() { done <- w.Watch(ctx) }()

	// give the watcher time to register the directory
	time.Sleep(100 * time.Millisecond)

	writeFile(t, filepath.Join(dir, "ignored.txt"))
	want := filepath.Join(dir, "snap_20250101120000.json")
	writeFile(t, want)

	select {
	case got := <-changed:
		if got != want {
			t.Errorf("expected %s, got %s", want, got)
		}
	case <-time.After(3 * time.Second):
		t.Fatal("no change reported")
	}

	if latest, _ := w.Latest(); latest != want {
		t.Errorf("expected latest %s, got %s", want, latest)
	}

	cancel()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("watcher did not stop")
	}
}

func TestDebounceReleasesTimers(t *testing.T) {
	dir := t.TempDir()
	changed := make(chan string, 8)
	w, err := New(filepath.Join(dir, "snap_*.json"), func(path string) { changed <- path }, log.New(io.Discard))
	if err != nil {
		t.Fatal(err)
	}
	w.WithDebounce(20 * time.Millisecond)
	w.timers = make(map[string]*time.Timer)

	paths := []string{
		filepath.Join(dir, "snap_20250101120000.json"),
		filepath.Join(dir, "snap_20250101120002.json"),
		filepath.Join(dir, "snap_20250101120004.json"),
	}
	for _, p := range paths {
		w.debounced(p)
		w.debounced(p)
	}

	for range paths {
		select {
		case <-changed:
		case <-time.After(2 * time.Second):
			t.Fatal("debounced change not reported")
		}
	}

	select {
	case extra := <-changed:
		t.Errorf("expected one report per path, got an extra one for %s", extra)
	case <-time.After(50 * time.Millisecond):
	}
	if n := w.pending(); n != 0 {
		t.Errorf("expected no pending timers after they fired, got %d", n)
	}
	if latest, _ := w.Latest(); latest != paths[2] {
		t.Errorf("expected latest %s, got %s", paths[2], latest)
	}
}
