package watch

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/google/go-cmp/cmp"
)

func newTestWatcher(t *testing.T, paths ...string) *Watcher {
	t.Helper()

	w, err := New(paths, WithDebounce(20*time.Millisecond))
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}
	t.Cleanup(func() { _ = w.watcher.Close() })
	return w
}

func TestNew_NoPaths(t *testing.T) {
	t.Parallel()

	_, err := New(nil)
	if !errors.Is(err, ErrNoPaths) {
		t.Errorf("error = %v, want ErrNoPaths", err)
	}
}

func TestNew_MissingDirectory(t *testing.T) {
	t.Parallel()

	_, err := New([]string{filepath.Join(t.TempDir(), "missing", "articles.txt")})
	if err == nil {
		t.Fatal("expected error for missing directory")
	}
}

func TestWithDebounce(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	w, err := New([]string{filepath.Join(dir, "a.txt")}, WithDebounce(-1))
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}
	defer w.watcher.Close()

	if w.debounce != DefaultDebounce {
		t.Errorf("debounce = %v, want %v", w.debounce, DefaultDebounce)
	}
}

func TestHandleEvent(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	watched := filepath.Join(dir, "articles.txt")
	w := newTestWatcher(t, watched)
	now := time.Now()

	tests := []struct {
		name  string
		event fsnotify.Event
		want  bool
	}{
		{name: "write to watched file", event: fsnotify.Event{Name: watched, Op: fsnotify.Write}, want: true},
		{name: "rename over watched file", event: fsnotify.Event{Name: watched, Op: fsnotify.Create}, want: true},
		{name: "remove watched file", event: fsnotify.Event{Name: watched, Op: fsnotify.Remove}, want: true},
		{name: "chmod is ignored", event: fsnotify.Event{Name: watched, Op: fsnotify.Chmod}, want: false},
		{name: "other file is ignored", event: fsnotify.Event{Name: filepath.Join(dir, "articles.html"), Op: fsnotify.Write}, want: false},
		{name: "temp file is ignored", event: fsnotify.Event{Name: filepath.Join(dir, ".htmlsplice-1.tmp"), Op: fsnotify.Create}, want: false},
	}

	for _, tt := range tests {
		if got := w.handleEvent(tt.event, now); got != tt.want {
			t.Errorf("%s: handleEvent() = %v, want %v", tt.name, got, tt.want)
		}
	}
}

func TestSettled_Debounces(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	a := filepath.Join(dir, "a.txt")
	b := filepath.Join(dir, "b.txt")
	w := newTestWatcher(t, a, b)

	start := time.Now()
	w.handleEvent(fsnotify.Event{Name: b, Op: fsnotify.Write}, start)
	w.handleEvent(fsnotify.Event{Name: a, Op: fsnotify.Write}, start.Add(10*time.Millisecond))
	w.handleEvent(fsnotify.Event{Name: b, Op: fsnotify.Write}, start.Add(15*time.Millisecond))

	if got := w.settled(start.Add(30 * time.Millisecond)); got != nil {
		t.Errorf("settled() inside debounce window = %v, want nil", got)
	}

	got := w.settled(start.Add(40 * time.Millisecond))
	if diff := cmp.Diff([]string{a, b}, got); diff != "" {
		t.Errorf("settled() mismatch (-want +got):\n%s", diff)
	}

	if again := w.settled(start.Add(time.Second)); again != nil {
		t.Errorf("settled() after drain = %v, want nil", again)
	}

	stats := w.Stats()
	if stats.Events != 3 || stats.Triggers != 1 {
		t.Errorf("Stats() = %+v, want 3 events and 1 trigger", stats)
	}
}

func TestFiles(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	w := newTestWatcher(t, filepath.Join(dir, "b.txt"), filepath.Join(dir, "a.txt"))

	want := []string{filepath.Join(dir, "a.txt"), filepath.Join(dir, "b.txt")}
	if diff := cmp.Diff(want, w.Files()); diff != "" {
		t.Errorf("Files() mismatch (-want +got):\n%s", diff)
	}
}

func TestRun_TriggersOnWrite(t *testing.T) {
	dir := t.TempDir()
	source := filepath.Join(dir, "tourdates.txt")
	if err := os.WriteFile(source, []byte("old"), 0o644); err != nil {
		t.Fatalf("setup: %v", err)
	}

	w, err := New([]string{source}, WithDebounce(20*time.Millisecond))
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var mu sync.Mutex
	var calls [][]string
	fired := make(chan struct{}, 1)

	done := make(chan error, 1)
	go func() {
		done <- w.Run(ctx, func(_ context.Context, changed []string) {
			mu.Lock()
			calls = append(calls, changed)
			mu.Unlock()
			select {
			case fired <- struct{}{}:
			default:
			}
		})
	}()

	// Several quick writes collapse into one call.
	for i := 0; i < 3; i++ {
		if err := os.WriteFile(source, []byte("new"), 0o644); err != nil {
			t.Fatalf("write: %v", err)
		}
	}
	if err := os.WriteFile(filepath.Join(dir, "tourdates.html"), []byte("<p>"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	select {
	case <-fired:
	case <-time.After(5 * time.Second):
		t.Fatal("onChange was not called")
	}

	cancel()
	if err := <-done; err != nil {
		t.Errorf("Run() = %v, want nil after cancel", err)
	}

	mu.Lock()
	defer mu.Unlock()
	if len(calls) != 1 {
		t.Fatalf("onChange called %d times, want 1: %v", len(calls), calls)
	}
	if diff := cmp.Diff([]string{source}, calls[0]); diff != "" {
		t.Errorf("changed files mismatch (-want +got):\n%s", diff)
	}
}

func TestRun_StopsOnCancel(t *testing.T) {
	w := newTestWatcher(t, filepath.Join(t.TempDir(), "a.txt"))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if err := w.Run(ctx, func(context.Context, []string) {
		t.Error("onChange should not be called")
	}); err != nil {
		t.Errorf("Run() = %v, want nil", err)
	}
}
