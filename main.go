package main

import (
	"bytes"
	"context"
	"errors"
	"flag"
	"fmt"
	"image/png"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/rook-computer/drawstring/internal/app"
	"github.com/rook-computer/drawstring/internal/app/screens"
	"github.com/rook-computer/drawstring/internal/assets"
	"github.com/rook-computer/drawstring/internal/drawstring"
	"github.com/rook-computer/drawstring/internal/render"
	"github.com/rook-computer/drawstring/internal/state"
	"github.com/rook-computer/drawstring/internal/system"
	"github.com/rook-computer/drawstring/internal/web"
)

const envStdioLog = "DRAWSTRING_STDIO_LOG"

type options struct {
	output   string
	format   string
	width    int
	height   int
	columns  int
	examples []string
	trace    bool
	fbDevice string
	listen   string
	fontDir  string
}

func main() {
	var opts options
	flag.StringVar(&opts.output, "o", "-", "output file; - writes to stdout")
	flag.StringVar(&opts.format, "format", "", "output format: png | svg (default: from -o extension, else png)")
	flag.IntVar(&opts.width, "width", render.PanelWidth, "panel width in pixels")
	flag.IntVar(&opts.height, "height", render.PanelHeight, "panel height in pixels")
	flag.IntVar(&opts.columns, "columns", 3, "panels per sheet row")
	flag.Func("example", "render an embedded example (repeatable): "+strings.Join(assets.ExampleNames(), ", "), func(s string) error {
		opts.examples = append(opts.examples, s)
		return nil
	})
	flag.BoolVar(&opts.trace, "trace", false, "print the surface call log of each script instead of rendering")
	flag.StringVar(&opts.fbDevice, "fb", "", "show the scripts on this framebuffer device (e.g. /dev/fb0) and re-render on change")
	flag.StringVar(&opts.listen, "listen", "", "with -fb, also serve the preview API on this address")
	flag.StringVar(&opts.fontDir, "font-dir", os.Getenv(web.EnvFontDir), "load .ttf/.otf fonts from this directory; also configurable via "+web.EnvFontDir)
	debug := flag.Bool("debug", false, "enable debug logging to ./drawstring-debug.log")
	stdioLog := flag.String("stdio-log", "", "redirect stdout+stderr (including panics) to this file; also configurable via "+envStdioLog)
	flag.Parse()

	// Best-effort: with the console in graphics mode, panics are only visible in a file.
	logPath := *stdioLog
	if logPath == "" {
		logPath = os.Getenv(envStdioLog)
	}
	if logPath != "" {
		if err := system.RedirectStdIO(logPath); err != nil {
			fmt.Fprintln(os.Stderr, "stdio log redirect error:", err)
		}
	}

	var logger app.Logger = app.NoopLogger{}
	if *debug {
		f, err := os.OpenFile("./drawstring-debug.log", os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
		if err == nil {
			defer f.Close()
			logger = app.NewFileLogger(f)
			logger.Infof("main", "debug logging enabled")
		} else {
			fmt.Fprintln(os.Stderr, "debug log open error:", err)
		}
	}

	fonts := render.NewFontBook()
	if opts.fontDir != "" {
		n, err := fonts.LoadDir(opts.fontDir)
		if err != nil {
			fmt.Fprintln(os.Stderr, "font dir:", err)
		}
		logger.Infof("main", "loaded %d font(s) from %s", n, opts.fontDir)
	}

	panels, err := loadPanels(flag.Args(), opts.examples, os.Stdin)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	switch {
	case opts.fbDevice != "":
		err = runDisplay(ctx, opts, panels, fonts, logger)
	case opts.trace:
		err = writeTrace(os.Stdout, panels, opts.width, opts.height)
	default:
		err = renderToOutput(opts, panels, fonts, logger)
	}
	if err != nil && !errors.Is(err, context.Canceled) {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// loadPanels reads script files and embedded examples in argument order. With neither,
// one script is read from stdin.
func loadPanels(paths, examples []string, stdin io.Reader) ([]state.Panel, error) {
	panels, err := app.LoadPanels(paths)
	if err != nil {
		return nil, err
	}
	for _, name := range examples {
		script, err := assets.Example(name)
		if err != nil {
			return nil, err
		}
		panels = append(panels, state.Panel{Name: name, Script: script})
	}
	if len(panels) > 0 {
		return panels, nil
	}
	data, err := io.ReadAll(stdin)
	if err != nil {
		return nil, fmt.Errorf("read stdin: %w", err)
	}
	return []state.Panel{{Name: "stdin", Script: string(data)}}, nil
}

func outputFormat(format, output string) (string, error) {
	if format == "" {
		if strings.EqualFold(filepath.Ext(output), ".svg") {
			return "svg", nil
		}
		return "png", nil
	}
	switch f := strings.ToLower(format); f {
	case "png", "svg":
		return f, nil
	default:
		return "", fmt.Errorf("unknown format %q (want png or svg)", format)
	}
}

func newSheet(opts options, fonts *render.FontBook, logger app.Logger) *screens.Sheet {
	sheet := screens.NewSheet(fonts)
	sheet.PanelWidth, sheet.PanelHeight = opts.width, opts.height
	sheet.Columns = opts.columns
	sheet.Logger = logger
	return sheet
}

// renderToOutput writes a single panel as is, or several panels as one sheet.
// Instruction errors are reported on stderr and turn into a non-zero exit once the
// image is written.
func renderToOutput(opts options, panels []state.Panel, fonts *render.FontBook, logger app.Logger) error {
	format, err := outputFormat(opts.format, opts.output)
	if err != nil {
		return err
	}

	var buf bytes.Buffer
	var results []screens.PanelResult
	switch {
	case len(panels) == 1:
		var res drawstring.Result
		res, err = renderPanel(&buf, format, panels[0].Script, opts.width, opts.height, fonts, logger)
		results = []screens.PanelResult{{Name: panels[0].Name, Result: res}}
	case format == "svg":
		results, err = newSheet(opts, fonts, logger).WriteSVG(&buf, panels)
	default:
		img, res, rerr := newSheet(opts, fonts, logger).Render(panels)
		if rerr == nil {
			rerr = png.Encode(&buf, img)
		}
		results, err = res, rerr
	}
	if err != nil {
		return err
	}

	if opts.output == "-" || opts.output == "" {
		_, err = os.Stdout.Write(buf.Bytes())
	} else {
		err = os.WriteFile(opts.output, buf.Bytes(), 0o644)
	}
	if err != nil {
		return err
	}
	return reportResults(os.Stderr, results)
}

// renderPanel runs script on one width x height surface and encodes it to w.
func renderPanel(w io.Writer, format, script string, width, height int, fonts *render.FontBook, logger app.Logger) (drawstring.Result, error) {
	var surface render.Surface
	var encode func(io.Writer) error
	if format == "svg" {
		s, err := render.NewSVGSurface(width, height, fonts)
		if err != nil {
			return drawstring.Result{}, err
		}
		surface, encode = s, s.Encode
	} else {
		s, err := render.NewRasterSurface(width, height, fonts)
		if err != nil {
			return drawstring.Result{}, err
		}
		s.Logger = logger
		surface, encode = s, s.EncodePNG
	}
	in, err := drawstring.New(surface)
	if err != nil {
		return drawstring.Result{}, err
	}
	in.Logger = logger
	res := in.Render(script)
	return res, encode(w)
}

func reportResults(w io.Writer, results []screens.PanelResult) error {
	failed := 0
	for _, r := range results {
		for _, inst := range r.Result.Skipped {
			fmt.Fprintf(w, "%s: line %d: unknown command %q skipped\n", r.Name, inst.Line, inst.Name)
		}
		for _, e := range r.Result.Errors {
			fmt.Fprintf(w, "%s: %v\n", r.Name, e)
		}
		failed += len(r.Result.Errors)
	}
	if failed > 0 {
		return fmt.Errorf("%d instruction(s) failed", failed)
	}
	return nil
}

func writeTrace(w io.Writer, panels []state.Panel, width, height int) error {
	results := make([]screens.PanelResult, 0, len(panels))
	for _, p := range panels {
		calls, res := drawstring.Trace(p.Script, width, height)
		if len(panels) > 1 {
			fmt.Fprintf(w, "# %s\n", p.Name)
		}
		for _, c := range calls {
			fmt.Fprintln(w, c.String())
		}
		results = append(results, screens.PanelResult{Name: p.Name, Result: res})
	}
	return reportResults(os.Stderr, results)
}

// runDisplay shows the panels on the framebuffer until F4, SIGINT or SIGTERM. Panels
// loaded from files are re-rendered when the file changes.
func runDisplay(ctx context.Context, opts options, panels []state.Panel, fonts *render.FontBook, logger app.Logger) error {
	store := state.NewStore()
	store.SetPanels(panels)

	a := app.New(store, render.NewFBDisplay(opts.fbDevice), newSheet(opts, fonts, logger))
	a.Logger = logger
	a.Console = true
	a.Watcher = app.NewWatcher(store)
	a.Watcher.Logger = logger

	if opts.listen != "" {
		server, err := web.NewHTTPServer(web.ServerConfig{ListenAddr: opts.listen}, web.APIV1Deps{Fonts: fonts, Store: store, Logger: logger})
		if err != nil {
			return err
		}
		if err := server.Start(ctx); err != nil {
			return err
		}
		defer server.Stop()
	}

	return a.Start(ctx)
}
