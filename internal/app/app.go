package app

import (
	"context"
	"sync"
	"sync/atomic"

	"github.com/rook-computer/drawstring/internal/render"
	"github.com/rook-computer/drawstring/internal/state"
	"github.com/rook-computer/drawstring/internal/system"
)

// Display shows frames produced by a screen. *render.FBDisplay implements it.
type Display interface {
	Start(ctx context.Context) error
	Stop() error
	SetScreen(screen render.Screen)
	RedrawWithState(snap state.State)
	RunLoop(ctx context.Context, store *state.Store)
}

// App drives a display from the panel store until it is told to exit.
type App struct {
	Store   *state.Store
	Display Display
	Screen  render.Screen
	Watcher *Watcher
	Logger  Logger
	// Console switches the VT to graphics mode while the display runs.
	Console bool

	exitOnce atomic.Bool
	exitCh   chan error
}

func New(store *state.Store, display Display, screen render.Screen) *App {
	return &App{Store: store, Display: display, Screen: screen, Logger: NoopLogger{}, exitCh: make(chan error, 1)}
}

// Exit requests the app to stop running.
func (app *App) Exit(err error) {
	if app.exitCh == nil {
		return
	}
	if !app.exitOnce.CompareAndSwap(false, true) {
		return
	}
	select {
	case app.exitCh <- err:
	default:
	}
}

// keyActions binds F4 to Exit and, with a watcher, R and F5 to a forced reload.
func (app *App) keyActions() system.KeyActions {
	actions := system.KeyActions{system.KeyF4: func() { app.Exit(nil) }}
	if app.Watcher != nil {
		actions[system.KeyR] = app.Watcher.Reload
		actions[system.KeyF5] = app.Watcher.Reload
	}
	return actions
}

// Start runs the display loop and blocks until ctx is done or Exit is called.
func (app *App) Start(ctx context.Context) error {
	if app.exitCh == nil {
		app.exitCh = make(chan error, 1)
	}
	app.exitOnce.Store(false)

	if fb, ok := app.Display.(*render.FBDisplay); ok {
		fb.Logger = app.Logger
	}
	if err := app.Display.Start(ctx); err != nil {
		app.Logger.Errorf("app", "display start error: %v", err)
		app.Store.SetError(err)
		return err
	}
	defer app.Display.Stop()

	loopCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	if app.Console {
		restore := system.EnterGraphics(app.Logger)
		defer restore()
		system.WatchKeys(loopCtx, app.Logger, app.keyActions())
	}

	app.Store.SetPhase(state.READY)
	app.Display.SetScreen(app.Screen)
	app.Display.RedrawWithState(app.Store.Snapshot())

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		app.Display.RunLoop(loopCtx, app.Store)
	}()
	if app.Watcher != nil {
		wg.Add(1)
		go func() {
			defer wg.Done()
			app.Watcher.Run(loopCtx)
		}()
	}

	var err error
	select {
	case <-ctx.Done():
		err = ctx.Err()
	case err = <-app.exitCh:
	}
	cancel()
	wg.Wait()
	app.Logger.Infof("app", "display loop stopped: %v", err)
	return err
}
