// Package screens produces display frames from the panel store.
package screens

import (
	"fmt"
	"image"
	"image/color"
	"io"

	svg "github.com/ajstarks/svgo"
	xdraw "golang.org/x/image/draw"

	"github.com/rook-computer/drawstring/internal/drawstring"
	"github.com/rook-computer/drawstring/internal/render"
	"github.com/rook-computer/drawstring/internal/render/layout"
	"github.com/rook-computer/drawstring/internal/state"
)

type logger interface {
	Infof(string, string, ...interface{})
	Errorf(string, string, ...interface{})
}

// PanelResult is the interpreter result for one panel.
type PanelResult struct {
	Name   string
	Result drawstring.Result
}

// Sheet renders panels side by side, wrapping after Columns panels. Each panel gets
// its own surface and interpreter. A Sheet keeps its raster surfaces between frames
// and must not be used from several goroutines at once.
type Sheet struct {
	Fonts       *render.FontBook
	PanelWidth  int
	PanelHeight int
	Columns     int
	Gap         int
	// Background fills the sheet behind the panels; a zero alpha leaves it transparent.
	Background color.RGBA
	Logger     logger

	panels []*rasterPanel
}

type rasterPanel struct {
	surface *render.RasterSurface
	interp  *drawstring.Interpreter
}

// NewSheet returns a sheet with the default panel geometry.
func NewSheet(fonts *render.FontBook) *Sheet {
	if fonts == nil {
		fonts = render.NewFontBook()
	}
	return &Sheet{
		Fonts:       fonts,
		PanelWidth:  render.PanelWidth,
		PanelHeight: render.PanelHeight,
		Columns:     3,
		Gap:         render.SheetGap,
		Background:  render.SheetBackground,
	}
}

// Size returns the sheet size for n panels.
func (s *Sheet) Size(n int) (int, int) {
	return layout.SheetSize(n, s.Columns, s.PanelWidth, s.PanelHeight, s.Gap)
}

func (s *Sheet) cells(n int) []image.Rectangle {
	w, h := s.Size(n)
	return layout.Grid(layout.Inset(image.Rect(0, 0, w, h), s.Gap), n, s.Columns, s.PanelWidth, s.PanelHeight, s.Gap)
}

// Render draws every panel into a new RGBA sheet.
func (s *Sheet) Render(panels []state.Panel) (*image.RGBA, []PanelResult, error) {
	if len(panels) == 0 {
		return nil, nil, fmt.Errorf("no panels to render")
	}
	w, h := s.Size(len(panels))
	sheet := image.NewRGBA(image.Rect(0, 0, w, h))
	if s.Background.A != 0 {
		xdraw.Draw(sheet, sheet.Bounds(), image.NewUniform(s.Background), image.Point{}, xdraw.Src)
	}
	results := make([]PanelResult, len(panels))
	for i, cell := range s.cells(len(panels)) {
		p, err := s.rasterPanel(i)
		if err != nil {
			return nil, nil, err
		}
		results[i] = PanelResult{Name: panels[i].Name, Result: p.interp.Render(panels[i].Script)}
		s.logResult(results[i])
		xdraw.Draw(sheet, cell, p.surface.Image(), image.Point{}, xdraw.Over)
	}
	return sheet, results, nil
}

func (s *Sheet) rasterPanel(i int) (*rasterPanel, error) {
	for len(s.panels) <= i {
		s.panels = append(s.panels, nil)
	}
	if p := s.panels[i]; p != nil {
		if w, h := p.surface.Size(); w == s.PanelWidth && h == s.PanelHeight {
			return p, nil
		}
	}
	surface, err := render.NewRasterSurface(s.PanelWidth, s.PanelHeight, s.Fonts)
	if err != nil {
		return nil, err
	}
	surface.Logger = s.Logger
	interp, err := drawstring.New(surface)
	if err != nil {
		return nil, err
	}
	if s.Logger != nil {
		interp.Logger = s.Logger
	}
	p := &rasterPanel{surface: surface, interp: interp}
	s.panels[i] = p
	return p, nil
}

// WriteSVG renders every panel as vector output into one SVG document.
func (s *Sheet) WriteSVG(w io.Writer, panels []state.Panel) ([]PanelResult, error) {
	if len(panels) == 0 {
		return nil, fmt.Errorf("no panels to render")
	}
	width, height := s.Size(len(panels))
	canvas := svg.New(w)
	canvas.Start(width, height)
	if s.Background.A != 0 {
		bg := s.Background
		canvas.Rect(0, 0, width, height, fmt.Sprintf("fill:#%02x%02x%02x", bg.R, bg.G, bg.B))
	}
	results := make([]PanelResult, len(panels))
	for i, cell := range s.cells(len(panels)) {
		surface, err := render.NewSVGSurface(s.PanelWidth, s.PanelHeight, s.Fonts)
		if err != nil {
			return nil, err
		}
		interp, err := drawstring.New(surface)
		if err != nil {
			return nil, err
		}
		if s.Logger != nil {
			interp.Logger = s.Logger
		}
		results[i] = PanelResult{Name: panels[i].Name, Result: interp.Render(panels[i].Script)}
		s.logResult(results[i])

		clipID := fmt.Sprintf("panel%d", i)
		canvas.Def()
		canvas.ClipPath(fmt.Sprintf(`id="%s"`, clipID))
		canvas.Rect(0, 0, s.PanelWidth, s.PanelHeight)
		canvas.ClipEnd()
		canvas.DefEnd()
		canvas.Gtransform(fmt.Sprintf("translate(%d,%d)", cell.Min.X, cell.Min.Y))
		canvas.Group(fmt.Sprintf(`clip-path="url(#%s)"`, clipID))
		if _, err := canvas.Writer.Write(surface.Body()); err != nil {
			return nil, err
		}
		canvas.Gend()
		canvas.Gend()
	}
	canvas.End()
	return results, nil
}

// Frame renders the panels of st for the display, or a status panel when there is
// nothing to show.
func (s *Sheet) Frame(st state.State) (*image.RGBA, error) {
	panels := st.Panels
	if st.Phase == state.ERROR || len(panels) == 0 {
		panels = []state.Panel{{Name: "status", Script: StatusScript(st, s.PanelWidth, s.PanelHeight)}}
	}
	img, _, err := s.Render(panels)
	return img, err
}

func (s *Sheet) logResult(r PanelResult) {
	if s.Logger == nil {
		return
	}
	if n := len(r.Result.Skipped); n > 0 {
		s.Logger.Infof("sheet", "panel %q: skipped %d unknown instruction(s)", r.Name, n)
	}
	if n := len(r.Result.Errors); n > 0 {
		s.Logger.Errorf("sheet", "panel %q: %d instruction(s) failed", r.Name, n)
	}
}
