package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/rook-computer/drawstring/internal/app"
	"github.com/rook-computer/drawstring/internal/assets"
	"github.com/rook-computer/drawstring/internal/render"
	"github.com/rook-computer/drawstring/internal/state"
	"github.com/rook-computer/drawstring/internal/web"
)

func main() {
	defaults, err := web.DefaultServerConfigFromEnv(":8080")
	if err != nil {
		fmt.Println("server config error:", err)
		os.Exit(2)
	}

	listenAddr := flag.String("listen", defaults.ListenAddr, "http listen address; also configurable via "+web.EnvListenAddr)
	devMode := flag.Bool("dev", defaults.DevMode, "enable dev mode (CORS); also configurable via "+web.EnvDevMode)
	fontDir := flag.String("font-dir", defaults.FontDir, "load .ttf/.otf fonts from this directory; also configurable via "+web.EnvFontDir)
	staticDir := flag.String("static-dir", "", "serve static UI from this directory (optional); when empty, the embedded preview page is served")
	verbose := flag.Bool("v", false, "log to stderr")
	flag.Parse()

	var logger app.Logger = app.NoopLogger{}
	if *verbose {
		logger = app.NewFileLogger(os.Stderr)
	}

	processCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Scripts given on the command line become editable panels; otherwise the examples do.
	panels, err := app.LoadPanels(flag.Args())
	if err != nil {
		fmt.Println("load scripts error:", err)
		os.Exit(2)
	}
	if len(panels) == 0 {
		panels = examplePanels()
	}
	store := state.NewStore()
	store.SetPanels(panels)
	store.SetPhase(state.READY)

	watcher := app.NewWatcher(store)
	watcher.Logger = logger
	go watcher.Run(processCtx)

	cfg := web.ServerConfig{ListenAddr: *listenAddr, DevMode: *devMode, FontDir: *fontDir, StaticDir: *staticDir}
	server, err := web.NewHTTPServer(cfg, web.APIV1Deps{Fonts: render.NewFontBook(), Store: store, Logger: logger})
	if err != nil {
		fmt.Println("server init error:", err)
		os.Exit(2)
	}
	if err := server.Start(processCtx); err != nil {
		fmt.Println("server start error:", err)
		os.Exit(1)
	}

	fmt.Println("drawstring preview listening on", server.Addr())
	fmt.Println("Panels:", len(panels))
	fmt.Println("API: http://" + displayAddr(server.Addr()) + "/api/v1/")

	<-processCtx.Done()
	_ = server.Stop()
}

func examplePanels() []state.Panel {
	names := assets.ExampleNames()
	panels := make([]state.Panel, 0, len(names))
	for _, name := range names {
		script, err := assets.Example(name)
		if err != nil {
			continue
		}
		panels = append(panels, state.Panel{Name: name, Script: script})
	}
	return panels
}

// displayAddr turns a listen address into something a browser can open.
func displayAddr(addr string) string {
	switch {
	case addr == "":
		return "127.0.0.1:8080"
	case addr[0] == ':':
		return "127.0.0.1" + addr
	case len(addr) > 5 && addr[:5] == "[::]:":
		return "127.0.0.1" + addr[4:]
	default:
		return addr
	}
}
