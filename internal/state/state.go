package state

import (
	"fmt"
	"sync"
)

type Phase int

const (
	BOOTING Phase = iota
	READY
	RENDERING
	ERROR
)

func (p Phase) String() string {
	switch p {
	case BOOTING:
		return "booting"
	case READY:
		return "ready"
	case RENDERING:
		return "rendering"
	case ERROR:
		return "error"
	default:
		return fmt.Sprintf("phase(%d)", int(p))
	}
}

// Panel is one drawing panel: a script and, when loaded from disk, its source path.
type Panel struct {
	Name   string
	Script string
	Source string
}

// State is a snapshot of the host: the panels in display order plus a version that
// changes whenever any panel changes.
type State struct {
	Phase   Phase
	Version uint64
	Panels  []Panel
	Err     string
}

type Store struct {
	mu    sync.RWMutex
	state State
}

func NewStore() *Store {
	return &Store{state: State{Phase: BOOTING}}
}

// Snapshot returns a copy that is safe to use after the store changes.
func (store *Store) Snapshot() State {
	store.mu.RLock()
	defer store.mu.RUnlock()
	snap := store.state
	snap.Panels = append([]Panel(nil), store.state.Panels...)
	return snap
}

func (store *Store) SetPhase(phase Phase) {
	store.mu.Lock()
	store.state.Phase = phase
	store.mu.Unlock()
}

func (store *Store) SetError(err error) {
	store.mu.Lock()
	store.state.Phase = ERROR
	store.state.Err = ""
	if err != nil {
		store.state.Err = err.Error()
	}
	store.mu.Unlock()
}

// SetPanels replaces all panels.
func (store *Store) SetPanels(panels []Panel) {
	store.mu.Lock()
	store.state.Panels = append([]Panel(nil), panels...)
	store.state.Version++
	store.mu.Unlock()
}

// UpdateScript replaces the script of panel i. The version only changes when the
// script text differs, so unchanged files do not trigger a redraw.
func (store *Store) UpdateScript(i int, script string) (bool, error) {
	store.mu.Lock()
	defer store.mu.Unlock()
	if i < 0 || i >= len(store.state.Panels) {
		return false, fmt.Errorf("panel %d out of range (have %d)", i, len(store.state.Panels))
	}
	if store.state.Panels[i].Script == script {
		return false, nil
	}
	store.state.Panels[i].Script = script
	store.state.Version++
	return true, nil
}
