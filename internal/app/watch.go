package app

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/rook-computer/drawstring/internal/state"
)

// DefaultPollInterval is how often script files are checked for changes.
const DefaultPollInterval = 500 * time.Millisecond

// LoadPanels reads one panel per script file, named after the file.
func LoadPanels(paths []string) ([]state.Panel, error) {
	panels := make([]state.Panel, 0, len(paths))
	for _, p := range paths {
		data, err := os.ReadFile(p)
		if err != nil {
			return nil, fmt.Errorf("load script: %w", err)
		}
		panels = append(panels, state.Panel{
			Name:   strings.TrimSuffix(filepath.Base(p), filepath.Ext(p)),
			Script: string(data),
			Source: p,
		})
	}
	return panels, nil
}

// Watcher re-reads panel source files and pushes changed scripts into the store.
type Watcher struct {
	Store    *state.Store
	Interval time.Duration
	Logger   Logger

	modTimes map[string]time.Time
	reload   chan struct{}
}

func NewWatcher(store *state.Store) *Watcher {
	return &Watcher{Store: store, Interval: DefaultPollInterval, Logger: NoopLogger{}, reload: make(chan struct{}, 1)}
}

// Reload asks Run to re-read every source file on its next iteration, whether or not
// the modification time changed. It never blocks and is safe to call from any goroutine.
func (w *Watcher) Reload() {
	select {
	case w.reload <- struct{}{}:
	default:
	}
}

// Poll checks every panel with a source file once and returns how many changed.
func (w *Watcher) Poll() int {
	if w.modTimes == nil {
		w.modTimes = map[string]time.Time{}
	}
	changed := 0
	for i, p := range w.Store.Snapshot().Panels {
		if p.Source == "" {
			continue
		}
		info, err := os.Stat(p.Source)
		if err != nil {
			w.Logger.Errorf("watch", "stat %s: %v", p.Source, err)
			continue
		}
		if last, ok := w.modTimes[p.Source]; ok && info.ModTime().Equal(last) {
			continue
		}
		data, err := os.ReadFile(p.Source)
		if err != nil {
			w.Logger.Errorf("watch", "read %s: %v", p.Source, err)
			continue
		}
		w.modTimes[p.Source] = info.ModTime()
		updated, err := w.Store.UpdateScript(i, string(data))
		if err != nil {
			w.Logger.Errorf("watch", "update panel %d: %v", i, err)
			continue
		}
		if updated {
			w.Logger.Infof("watch", "%s changed", p.Source)
			changed++
		}
	}
	return changed
}

// Run polls until ctx is done.
func (w *Watcher) Run(ctx context.Context) {
	interval := w.Interval
	if interval <= 0 {
		interval = DefaultPollInterval
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			w.Poll()
		case <-w.reload:
			w.modTimes = nil
			w.Logger.Infof("watch", "reload requested, %d panel(s) changed", w.Poll())
		}
	}
}
