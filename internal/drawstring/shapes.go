package drawstring

import "math"

func (in *Interpreter) line(p params) error {
	c, err := p.color(4, "color")
	if err != nil {
		return err
	}
	s := in.surface
	s.BeginPath()
	if err := s.SetStrokeColor(c); err != nil {
		return err
	}
	s.MoveTo(p.num(0), p.num(1))
	s.LineTo(p.num(2), p.num(3))
	s.Stroke()
	return nil
}

func (in *Interpreter) circle(p params) error {
	c, err := p.color(3, "color")
	if err != nil {
		return err
	}
	s := in.surface
	s.BeginPath()
	if err := s.SetStrokeColor(c); err != nil {
		return err
	}
	s.Arc(p.num(0), p.num(1), p.num(2), 0, 2*math.Pi)
	s.Stroke()
	return nil
}

func (in *Interpreter) fillCircle(p params) error {
	c, err := p.color(3, "color")
	if err != nil {
		return err
	}
	s := in.surface
	s.BeginPath()
	if err := s.SetFillColor(c); err != nil {
		return err
	}
	s.Arc(p.num(0), p.num(1), p.num(2), 0, 2*math.Pi)
	s.Fill()
	return nil
}

func (in *Interpreter) rectangle(p params) error {
	c, err := p.color(4, "color")
	if err != nil {
		return err
	}
	if err := in.surface.SetStrokeColor(c); err != nil {
		return err
	}
	in.surface.StrokeRect(p.num(0), p.num(1), p.num(2), p.num(3))
	return nil
}

func (in *Interpreter) fillRectangle(p params) error {
	c, err := p.color(4, "color")
	if err != nil {
		return err
	}
	if err := in.surface.SetFillColor(c); err != nil {
		return err
	}
	in.surface.FillRect(p.num(0), p.num(1), p.num(2), p.num(3))
	return nil
}

func (in *Interpreter) triangle(p params) error {
	c, err := p.color(6, "color")
	if err != nil {
		return err
	}
	if err := in.surface.SetStrokeColor(c); err != nil {
		return err
	}
	in.trianglePath(p)
	in.surface.Stroke()
	return nil
}

func (in *Interpreter) fillTriangle(p params) error {
	c, err := p.color(6, "color")
	if err != nil {
		return err
	}
	if err := in.surface.SetFillColor(c); err != nil {
		return err
	}
	in.trianglePath(p)
	in.surface.Fill()
	return nil
}

func (in *Interpreter) trianglePath(p params) {
	s := in.surface
	s.BeginPath()
	s.MoveTo(p.num(0), p.num(1))
	s.LineTo(p.num(2), p.num(3))
	s.LineTo(p.num(4), p.num(5))
	s.ClosePath()
}
