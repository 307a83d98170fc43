package drawstring

import "math"

const (
	defaultSegments = 60
	maxSegments     = 10000
)

// Point is a sampled position on a smooth arc.
type Point struct {
	X, Y float64
}

func degToRad(deg float64) float64 { return deg * math.Pi / 180 }

// arc draws with the surface's native arc. A fill color paints the pie slice under
// the outline first.
func (in *Interpreter) arc(p params) error {
	c, err := p.color(6, "color")
	if err != nil {
		return err
	}
	s := in.surface
	if err := s.SetStrokeColor(c); err != nil {
		return err
	}
	cx, cy, r := p.num(0), p.num(1), p.num(2)
	start, end := degToRad(p.num(3)), degToRad(p.num(4))

	if fc, ok := p.optColor(7); ok {
		if err := s.SetFillColor(fc); err != nil {
			return err
		}
		s.BeginPath()
		s.MoveTo(cx, cy)
		s.Arc(cx, cy, r, start, end)
		s.ClosePath()
		s.Fill()
	}

	s.SetLineWidth(p.lineWidth(5))
	defer s.SetLineWidth(1)
	s.BeginPath()
	s.Arc(cx, cy, r, start, end)
	s.Stroke()
	return nil
}

// smoothArc approximates the arc with straight segments between evenly spaced samples.
func (in *Interpreter) smoothArc(p params) error {
	c, err := p.color(6, "color")
	if err != nil {
		return err
	}
	s := in.surface
	if err := s.SetStrokeColor(c); err != nil {
		return err
	}
	pts := ArcPoints(p.num(0), p.num(1), p.num(2), p.num(3), p.num(4), segmentCount(p.optNum(8)))

	if fc, ok := p.optColor(7); ok {
		if err := s.SetFillColor(fc); err != nil {
			return err
		}
		in.polyline(pts)
		s.Fill()
	}

	s.SetLineWidth(p.lineWidth(5))
	defer s.SetLineWidth(1)
	in.polyline(pts)
	s.Stroke()
	return nil
}

func (in *Interpreter) polyline(pts []Point) {
	s := in.surface
	s.BeginPath()
	for i, pt := range pts {
		if i == 0 {
			s.MoveTo(pt.X, pt.Y)
			continue
		}
		s.LineTo(pt.X, pt.Y)
	}
}

// segmentCount turns the optional segment parameter into a usable count. NaN means
// the default; otherwise fractions are truncated and the result is kept in
// [1, maxSegments].
func segmentCount(v float64) int {
	if math.IsNaN(v) {
		return defaultSegments
	}
	v = math.Trunc(v)
	if v < 1 {
		return 1
	}
	if v > maxSegments {
		return maxSegments
	}
	return int(v)
}

// ArcPoints samples segments+1 evenly spaced points from startDeg to endDeg on the
// circle at (cx, cy) with radius r. segments below 1 is treated as 1.
func ArcPoints(cx, cy, r, startDeg, endDeg float64, segments int) []Point {
	if segments < 1 {
		segments = 1
	}
	start, end := degToRad(startDeg), degToRad(endDeg)
	step := (end - start) / float64(segments)
	pts := make([]Point, segments+1)
	for i := range pts {
		a := start + step*float64(i)
		pts[i] = Point{X: cx + math.Cos(a)*r, Y: cy + math.Sin(a)*r}
	}
	return pts
}
