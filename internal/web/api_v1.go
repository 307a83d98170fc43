package web

import (
	"bytes"
	"encoding/json"
	"errors"
	"image/color"
	"image/png"
	"io"
	"io/fs"
	"net/http"
	"strconv"
	"strings"

	"github.com/rook-computer/drawstring/internal/app/screens"
	"github.com/rook-computer/drawstring/internal/assets"
	"github.com/rook-computer/drawstring/internal/drawstring"
	"github.com/rook-computer/drawstring/internal/render"
	"github.com/rook-computer/drawstring/internal/state"
)

const (
	maxScriptBytes = 1 << 20
	maxSurfaceSide = 4096

	headerErrors  = "X-Drawstring-Errors"
	headerSkipped = "X-Drawstring-Skipped"
)

type apiError struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

type okResponse struct {
	OK      bool `json:"ok"`
	Changed bool `json:"changed"`
}

type instructionErrorJSON struct {
	Line    int    `json:"line"`
	Command string `json:"command"`
	Error   string `json:"error"`
}

type skippedJSON struct {
	Line    int    `json:"line"`
	Command string `json:"command"`
}

type traceResponse struct {
	Instructions int                    `json:"instructions"`
	Executed     int                    `json:"executed"`
	Calls        []string               `json:"calls"`
	Errors       []instructionErrorJSON `json:"errors"`
	Skipped      []skippedJSON          `json:"skipped"`
}

type panelJSON struct {
	Index  int    `json:"index"`
	Name   string `json:"name"`
	Script string `json:"script"`
	Source string `json:"source,omitempty"`
}

type panelsResponse struct {
	Phase   string      `json:"phase"`
	Version uint64      `json:"version"`
	Error   string      `json:"error,omitempty"`
	Panels  []panelJSON `json:"panels"`
}

type renderOptions struct {
	format        string
	width, height int
}

func apiV1Router(deps APIV1Deps) http.Handler {
	deps = deps.withDefaults()
	mux := http.NewServeMux()
	mux.HandleFunc("/render", func(w http.ResponseWriter, r *http.Request) { handleRender(w, r, deps) })
	mux.HandleFunc("/trace", func(w http.ResponseWriter, r *http.Request) { handleTrace(w, r) })
	mux.HandleFunc("/fonts", func(w http.ResponseWriter, r *http.Request) { handleFonts(w, r, deps) })
	mux.HandleFunc("/examples", func(w http.ResponseWriter, r *http.Request) { handleExamples(w, r, deps) })
	mux.HandleFunc("/examples/", func(w http.ResponseWriter, r *http.Request) { handleExamples(w, r, deps) })
	mux.HandleFunc("/panels", func(w http.ResponseWriter, r *http.Request) { handlePanels(w, r, deps) })
	mux.HandleFunc("/panels/", func(w http.ResponseWriter, r *http.Request) { handlePanels(w, r, deps) })
	mux.HandleFunc("/sheet", func(w http.ResponseWriter, r *http.Request) { handleSheet(w, r, deps) })
	return mux
}

// handleRender renders the posted script as one panel.
func handleRender(w http.ResponseWriter, r *http.Request, deps APIV1Deps) {
	if r.Method != http.MethodPost {
		writeAPIError(w, http.StatusMethodNotAllowed, "method_not_allowed", "method not allowed")
		return
	}
	opts, err := parseRenderOptions(r)
	if err != nil {
		writeAPIError(w, http.StatusBadRequest, "invalid_options", err.Error())
		return
	}
	script, ok := readScript(w, r)
	if !ok {
		return
	}
	writePanels(w, deps, []state.Panel{{Name: "script", Script: script}}, opts, false)
}

func handleTrace(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeAPIError(w, http.StatusMethodNotAllowed, "method_not_allowed", "method not allowed")
		return
	}
	opts, err := parseRenderOptions(r)
	if err != nil {
		writeAPIError(w, http.StatusBadRequest, "invalid_options", err.Error())
		return
	}
	script, ok := readScript(w, r)
	if !ok {
		return
	}
	calls, res := drawstring.Trace(script, opts.width, opts.height)
	resp := traceResponse{
		Instructions: res.Instructions,
		Executed:     res.Executed,
		Calls:        make([]string, len(calls)),
		Errors:       []instructionErrorJSON{},
		Skipped:      []skippedJSON{},
	}
	for i, c := range calls {
		resp.Calls[i] = c.String()
	}
	for _, e := range res.Errors {
		resp.Errors = append(resp.Errors, instructionErrorJSON{Line: e.Line, Command: e.Command, Error: e.Err.Error()})
	}
	for _, s := range res.Skipped {
		resp.Skipped = append(resp.Skipped, skippedJSON{Line: s.Line, Command: s.Name})
	}
	writeJSON(w, http.StatusOK, resp)
}

func handleFonts(w http.ResponseWriter, r *http.Request, deps APIV1Deps) {
	if r.Method != http.MethodGet {
		writeAPIError(w, http.StatusMethodNotAllowed, "method_not_allowed", "method not allowed")
		return
	}
	writeJSON(w, http.StatusOK, deps.Fonts.Families())
}

// handleExamples serves GET /examples, /examples/{name} and /examples/{name}/render.
func handleExamples(w http.ResponseWriter, r *http.Request, deps APIV1Deps) {
	if r.Method != http.MethodGet {
		writeAPIError(w, http.StatusMethodNotAllowed, "method_not_allowed", "method not allowed")
		return
	}
	rel := strings.Trim(strings.TrimPrefix(r.URL.Path, "/examples"), "/")
	if rel == "" {
		writeJSON(w, http.StatusOK, assets.ExampleNames())
		return
	}
	parts := strings.Split(rel, "/")
	if len(parts) > 2 || (len(parts) == 2 && parts[1] != "render") {
		writeAPIError(w, http.StatusNotFound, "not_found", "not found")
		return
	}
	script, err := assets.Example(parts[0])
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			writeAPIError(w, http.StatusNotFound, "example_not_found", "example not found")
			return
		}
		writeAPIError(w, http.StatusInternalServerError, "read_failed", err.Error())
		return
	}
	if len(parts) == 1 {
		writeText(w, script)
		return
	}
	opts, err := parseRenderOptions(r)
	if err != nil {
		writeAPIError(w, http.StatusBadRequest, "invalid_options", err.Error())
		return
	}
	writePanels(w, deps, []state.Panel{{Name: parts[0], Script: script}}, opts, false)
}

// handlePanels serves the live panel store:
// GET /panels, GET|PUT /panels/{i} and GET /panels/{i}/render.
func handlePanels(w http.ResponseWriter, r *http.Request, deps APIV1Deps) {
	if deps.Store == nil {
		writeAPIError(w, http.StatusNotImplemented, "not_implemented", "no panel store configured")
		return
	}
	snap := deps.Store.Snapshot()
	rel := strings.Trim(strings.TrimPrefix(r.URL.Path, "/panels"), "/")
	if rel == "" {
		if r.Method != http.MethodGet {
			writeAPIError(w, http.StatusMethodNotAllowed, "method_not_allowed", "method not allowed")
			return
		}
		resp := panelsResponse{Phase: snap.Phase.String(), Version: snap.Version, Error: snap.Err, Panels: []panelJSON{}}
		for i, p := range snap.Panels {
			resp.Panels = append(resp.Panels, panelJSON{Index: i, Name: p.Name, Script: p.Script, Source: p.Source})
		}
		writeJSON(w, http.StatusOK, resp)
		return
	}

	parts := strings.Split(rel, "/")
	idx, err := strconv.Atoi(parts[0])
	if err != nil || idx < 0 || idx >= len(snap.Panels) || len(parts) > 2 || (len(parts) == 2 && parts[1] != "render") {
		writeAPIError(w, http.StatusNotFound, "panel_not_found", "panel not found")
		return
	}
	panel := snap.Panels[idx]

	if len(parts) == 2 {
		if r.Method != http.MethodGet {
			writeAPIError(w, http.StatusMethodNotAllowed, "method_not_allowed", "method not allowed")
			return
		}
		opts, err := parseRenderOptions(r)
		if err != nil {
			writeAPIError(w, http.StatusBadRequest, "invalid_options", err.Error())
			return
		}
		writePanels(w, deps, []state.Panel{panel}, opts, false)
		return
	}

	switch r.Method {
	case http.MethodGet:
		writeText(w, panel.Script)
	case http.MethodPut:
		script, ok := readScript(w, r)
		if !ok {
			return
		}
		changed, err := deps.Store.UpdateScript(idx, script)
		if err != nil {
			writeAPIError(w, http.StatusConflict, "update_failed", err.Error())
			return
		}
		if changed {
			deps.Logger.Infof("web", "panel %d (%s) updated", idx, panel.Name)
		}
		writeJSON(w, http.StatusOK, okResponse{OK: true, Changed: changed})
	default:
		writeAPIError(w, http.StatusMethodNotAllowed, "method_not_allowed", "method not allowed")
	}
}

// handleSheet renders every live panel into one sheet.
func handleSheet(w http.ResponseWriter, r *http.Request, deps APIV1Deps) {
	if r.Method != http.MethodGet {
		writeAPIError(w, http.StatusMethodNotAllowed, "method_not_allowed", "method not allowed")
		return
	}
	if deps.Store == nil {
		writeAPIError(w, http.StatusNotImplemented, "not_implemented", "no panel store configured")
		return
	}
	opts, err := parseRenderOptions(r)
	if err != nil {
		writeAPIError(w, http.StatusBadRequest, "invalid_options", err.Error())
		return
	}
	panels := deps.Store.Snapshot().Panels
	if len(panels) == 0 {
		writeAPIError(w, http.StatusNotFound, "no_panels", "no panels loaded")
		return
	}
	writePanels(w, deps, panels, opts, true)
}

func parseRenderOptions(r *http.Request) (renderOptions, error) {
	q := r.URL.Query()
	opts := renderOptions{format: "png", width: render.PanelWidth, height: render.PanelHeight}
	if f := strings.ToLower(q.Get("format")); f != "" {
		if f != "png" && f != "svg" {
			return opts, errors.New("format must be png or svg")
		}
		opts.format = f
	}
	for _, dim := range []struct {
		name string
		dst  *int
	}{{"width", &opts.width}, {"height", &opts.height}} {
		raw := q.Get(dim.name)
		if raw == "" {
			continue
		}
		v, err := strconv.Atoi(raw)
		if err != nil || v <= 0 || v > maxSurfaceSide {
			return opts, errors.New(dim.name + " must be between 1 and " + strconv.Itoa(maxSurfaceSide))
		}
		*dim.dst = v
	}
	return opts, nil
}

func readScript(w http.ResponseWriter, r *http.Request) (string, bool) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxScriptBytes))
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeAPIError(w, http.StatusRequestEntityTooLarge, "script_too_large", err.Error())
			return "", false
		}
		writeAPIError(w, http.StatusBadRequest, "read_failed", err.Error())
		return "", false
	}
	return string(body), true
}

// writePanels renders panels and writes the image. sheet selects the multi-panel
// layout with gaps and background; otherwise panels are drawn edge to edge on a
// transparent background.
func writePanels(w http.ResponseWriter, deps APIV1Deps, panels []state.Panel, opts renderOptions, sheet bool) {
	s := screens.NewSheet(deps.Fonts)
	s.Logger = deps.Logger
	s.PanelWidth, s.PanelHeight = opts.width, opts.height
	if !sheet {
		s.Gap = 0
		s.Background = color.RGBA{}
	}

	var buf bytes.Buffer
	var results []screens.PanelResult
	contentType := "image/png"
	if opts.format == "svg" {
		contentType = "image/svg+xml"
		var err error
		if results, err = s.WriteSVG(&buf, panels); err != nil {
			writeAPIError(w, http.StatusInternalServerError, "render_failed", err.Error())
			return
		}
	} else {
		img, res, err := s.Render(panels)
		if err != nil {
			writeAPIError(w, http.StatusInternalServerError, "render_failed", err.Error())
			return
		}
		results = res
		if err := png.Encode(&buf, img); err != nil {
			writeAPIError(w, http.StatusInternalServerError, "encode_failed", err.Error())
			return
		}
	}

	errCount, skipCount := 0, 0
	for _, r := range results {
		errCount += len(r.Result.Errors)
		skipCount += len(r.Result.Skipped)
	}
	w.Header().Set("Content-Type", contentType)
	w.Header().Set(headerErrors, strconv.Itoa(errCount))
	w.Header().Set(headerSkipped, strconv.Itoa(skipCount))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(buf.Bytes())
}

func writeText(w http.ResponseWriter, text string) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = io.WriteString(w, text)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeAPIError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, apiError{Error: code, Message: message})
}
