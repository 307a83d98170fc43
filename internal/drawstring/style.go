package drawstring

import (
	"fmt"
	"math"
)

func (in *Interpreter) fill(p params) error {
	c, err := p.color(0, "color")
	if err != nil {
		return err
	}
	if err := in.surface.SetFillColor(c); err != nil {
		return err
	}
	w, h := in.surface.Size()
	in.surface.FillRect(0, 0, float64(w), float64(h))
	return nil
}

func (in *Interpreter) setFont(p params) error {
	code, _ := p.str(0)
	in.state.FontFamily = fontFamilyFor(code)
	return in.applyFont()
}

func (in *Interpreter) setFontSize(p params) error {
	size := p.num(0)
	if !(size > 0) || math.IsInf(size, 0) {
		return fmt.Errorf("%w: %v", ErrInvalidFontSize, size)
	}
	in.state.FontSize = size
	return in.applyFont()
}

func (in *Interpreter) setFontAlign(p params) error {
	code, _ := p.str(0)
	in.state.Align = alignFor(code)
	in.surface.SetTextAlign(in.state.Align)
	return nil
}

func (in *Interpreter) setFontColor(p params) error {
	c, err := p.color(0, "color")
	if err != nil {
		return err
	}
	if err := in.checkColor(c); err != nil {
		return err
	}
	in.state.FontColor = c
	return nil
}

// setFontBackColor sets the text background; no parameter disables it.
func (in *Interpreter) setFontBackColor(p params) error {
	c, ok := p.str(0)
	if !ok || c == "" {
		in.state.BackColor = "transparent"
		return nil
	}
	c = ResolveColor(c)
	if err := in.checkColor(c); err != nil {
		return err
	}
	in.state.BackColor = c
	return nil
}

// checkColor checks that the surface accepts c without changing the state on failure.
func (in *Interpreter) checkColor(c string) error {
	return in.surface.SetFillColor(c)
}
