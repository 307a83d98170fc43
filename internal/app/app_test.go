package app

import (
	"bytes"
	"context"
	"errors"
	"image"
	"os"
	"path/filepath"
	"regexp"
	"sync"
	"testing"
	"time"

	"github.com/rook-computer/drawstring/internal/render"
	"github.com/rook-computer/drawstring/internal/state"
	"github.com/rook-computer/drawstring/internal/system"
)

type fakeDisplay struct {
	mu       sync.Mutex
	startErr error
	screen   render.Screen
	redraws  []uint64
	stopped  bool
}

func (d *fakeDisplay) Start(ctx context.Context) error { return d.startErr }

func (d *fakeDisplay) Stop() error {
	d.mu.Lock()
	d.stopped = true
	d.mu.Unlock()
	return nil
}

func (d *fakeDisplay) SetScreen(screen render.Screen) { d.screen = screen }

func (d *fakeDisplay) RedrawWithState(snap state.State) {
	d.mu.Lock()
	d.redraws = append(d.redraws, snap.Version)
	d.mu.Unlock()
}

func (d *fakeDisplay) RunLoop(ctx context.Context, store *state.Store) {
	<-ctx.Done()
}

type nullScreen struct{}

func (nullScreen) Frame(state.State) (*image.RGBA, error) { return image.NewRGBA(image.Rect(0, 0, 1, 1)), nil }

func TestAppRunsUntilExit(t *testing.T) {
	store := state.NewStore()
	store.SetPanels([]state.Panel{{Name: "a", Script: "fill,red"}})
	display := &fakeDisplay{}
	a := New(store, display, nullScreen{})

	done := make(chan error, 1)
	go func() { done <- a.Start(context.Background()) }()

	wantErr := errors.New("bye")
	// Exit may race with Start; the buffered channel keeps the request.
	a.Exit(wantErr)
	a.Exit(errors.New("ignored"))

	select {
	case err := <-done:
		if err != wantErr {
			t.Errorf("Start returned %v, want %v", err, wantErr)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("app did not stop")
	}
	display.mu.Lock()
	defer display.mu.Unlock()
	if !display.stopped || len(display.redraws) != 1 || display.screen == nil {
		t.Errorf("display = %+v", display)
	}
	if store.Snapshot().Phase != state.READY {
		t.Errorf("phase = %v", store.Snapshot().Phase)
	}
}

func TestAppStopsOnContextCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	a := New(state.NewStore(), &fakeDisplay{}, nullScreen{})
	done := make(chan error, 1)
	go func() { done <- a.Start(ctx) }()
	cancel()
	select {
	case err := <-done:
		if !errors.Is(err, context.Canceled) {
			t.Errorf("Start returned %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("app did not stop")
	}
}

func TestAppDisplayStartFailure(t *testing.T) {
	store := state.NewStore()
	a := New(store, &fakeDisplay{startErr: errors.New("no fb")}, nullScreen{})
	if err := a.Start(context.Background()); err == nil {
		t.Fatal("expected error")
	}
	if snap := store.Snapshot(); snap.Phase != state.ERROR || snap.Err != "no fb" {
		t.Errorf("state = %+v", snap)
	}
}

func TestWatcherPicksUpChanges(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "clock.ds")
	if err := os.WriteFile(path, []byte("fill,red"), 0o644); err != nil {
		t.Fatal(err)
	}
	panels, err := LoadPanels([]string{path})
	if err != nil {
		t.Fatal(err)
	}
	if panels[0].Name != "clock" || panels[0].Script != "fill,red" || panels[0].Source != path {
		t.Fatalf("panels = %+v", panels)
	}
	store := state.NewStore()
	store.SetPanels(panels)
	w := NewWatcher(store)

	if n := w.Poll(); n != 0 {
		t.Errorf("first poll changed %d panels", n)
	}
	if err := os.WriteFile(path, []byte("fill,blue"), 0o644); err != nil {
		t.Fatal(err)
	}
	// Make sure the modification time moves even on coarse filesystems.
	later := time.Now().Add(2 * time.Second)
	if err := os.Chtimes(path, later, later); err != nil {
		t.Fatal(err)
	}
	if n := w.Poll(); n != 1 {
		t.Errorf("poll after edit changed %d panels", n)
	}
	if got := store.Snapshot().Panels[0].Script; got != "fill,blue" {
		t.Errorf("script = %q", got)
	}
	if n := w.Poll(); n != 0 {
		t.Errorf("idle poll changed %d panels", n)
	}

	if _, err := LoadPanels([]string{filepath.Join(dir, "missing.ds")}); err == nil {
		t.Error("missing file loaded")
	}
}

func TestWatcherReloadIgnoresModTime(t *testing.T) {
	path := filepath.Join(t.TempDir(), "gauge.ds")
	if err := os.WriteFile(path, []byte("fill,red"), 0o644); err != nil {
		t.Fatal(err)
	}
	info, err := os.Stat(path)
	if err != nil {
		t.Fatal(err)
	}
	panels, err := LoadPanels([]string{path})
	if err != nil {
		t.Fatal(err)
	}
	store := state.NewStore()
	store.SetPanels(panels)
	w := NewWatcher(store)
	w.Interval = time.Hour
	w.Poll()

	// Same modification time: a plain poll cannot see the edit.
	if err := os.WriteFile(path, []byte("fill,green"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.Chtimes(path, info.ModTime(), info.ModTime()); err != nil {
		t.Fatal(err)
	}
	if n := w.Poll(); n != 0 {
		t.Fatalf("poll with unchanged mtime changed %d panels", n)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go w.Run(ctx)
	w.Reload()
	w.Reload()

	deadline := time.Now().Add(2 * time.Second)
	for store.Snapshot().Panels[0].Script != "fill,green" {
		if time.Now().After(deadline) {
			t.Fatal("reload did not re-read the script")
		}
		time.Sleep(10 * time.Millisecond)
	}
}

func TestAppKeyActions(t *testing.T) {
	store := state.NewStore()
	a := New(store, &fakeDisplay{}, nullScreen{})
	if actions := a.keyActions(); len(actions) != 1 || actions[system.KeyF4] == nil {
		t.Fatalf("actions without watcher = %v", actions)
	}

	a.Watcher = NewWatcher(store)
	actions := a.keyActions()
	for _, key := range []uint16{system.KeyF4, system.KeyR, system.KeyF5} {
		if actions[key] == nil {
			t.Errorf("no action for key %d", key)
		}
	}
	actions[system.KeyR]()
	actions[system.KeyF5]()
	if len(a.Watcher.reload) != 1 {
		t.Errorf("pending reloads = %d, want 1", len(a.Watcher.reload))
	}

	actions[system.KeyF4]()
	select {
	case err := <-a.exitCh:
		if err != nil {
			t.Errorf("exit error = %v", err)
		}
	default:
		t.Error("F4 did not request exit")
	}
}

func TestFileLoggerFormat(t *testing.T) {
	var buf bytes.Buffer
	l := NewFileLogger(&buf)
	l.Infof("main", "hello %d", 1)
	l.Errorf("drawstring", "line %d failed", 2)
	re := regexp.MustCompile(`^\S+ \[INFO\] main: hello 1\n\S+ \[ERROR\] drawstring: line 2 failed\n$`)
	if !re.MatchString(buf.String()) {
		t.Errorf("log = %q", buf.String())
	}
	NoopLogger{}.Infof("x", "y")
}
