package drawstring

import (
	"math"

	"github.com/rook-computer/drawstring/internal/render"
)

const (
	// maxFitSize bounds the starting size of fitted text.
	maxFitSize = 4096
	// capHeight approximates the cap height as a fraction of the font size; fitted
	// text is centered on it.
	capHeight = 0.7
	// backgroundDrop moves the text background below the baseline.
	backgroundDrop = 4
)

func (in *Interpreter) text(p params) error {
	txt, err := p.text(0, "text")
	if err != nil {
		return err
	}
	return in.drawText(txt, p.num(1), p.num(2), in.state.FontSize, in.state.Align)
}

// textCentered draws centered text without touching the persistent alignment.
func (in *Interpreter) textCentered(p params) error {
	txt, err := p.text(0, "text")
	if err != nil {
		return err
	}
	in.surface.SetTextAlign(render.TextAlignCenter)
	defer in.surface.SetTextAlign(in.state.Align)
	return in.drawText(txt, p.num(1), p.num(2), in.state.FontSize, render.TextAlignCenter)
}

// textFitted shrinks the font one pixel at a time from the box height until the text
// fits the box width, then centers it in the box. The state's font is untouched.
func (in *Interpreter) textFitted(p params) error {
	txt, err := p.text(0, "text")
	if err != nil {
		return err
	}
	x, y, w, h := p.num(1), p.num(2), p.num(3), p.num(4)
	s := in.surface

	defer func() {
		s.SetTextAlign(in.state.Align)
		if err := in.applyFont(); err != nil && in.Logger != nil {
			in.Logger.Errorf("drawstring", "restore font: %v", err)
		}
	}()

	size := FitStartSize(h)
	if err := s.SetFont(in.state.FontFamily, size); err != nil {
		return err
	}
	s.SetTextAlign(render.TextAlignLeft)
	measured := s.MeasureText(txt)
	for measured > w && size > 1 {
		size = math.Max(size-1, 1)
		if err := s.SetFont(in.state.FontFamily, size); err != nil {
			return err
		}
		measured = s.MeasureText(txt)
	}

	tx := x + (w-measured)/2
	ty := y + h/2 + size*capHeight/2
	return in.drawText(txt, tx, ty, size, render.TextAlignLeft)
}

// FitStartSize is the first size tried for text fitted into a box of height h. It is
// never below 1, so the shrink loop takes at most ceil(size-1) steps.
func FitStartSize(h float64) float64 {
	if !(h >= 1) {
		return 1
	}
	return math.Min(h, maxFitSize)
}

// drawText paints the optional background then the text. The surface font and
// alignment must already match size and align.
func (in *Interpreter) drawText(txt string, x, y, size float64, align render.TextAlign) error {
	s := in.surface
	if in.state.HasBackground() {
		if err := s.SetFillColor(in.state.BackColor); err != nil {
			return err
		}
		w := s.MeasureText(txt)
		s.FillRect(x-render.AlignOffset(align, w), y-size+backgroundDrop, w, size)
	}
	if err := s.SetFillColor(in.state.FontColor); err != nil {
		return err
	}
	s.FillText(txt, x, y)
	return nil
}
