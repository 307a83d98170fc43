package render

import "math"

// point is a path vertex in surface pixels.
type point struct{ X, Y float64 }

type subpath struct {
	pts    []point
	closed bool
}

// path accumulates canvas-style subpaths with arcs flattened to line segments.
type path struct {
	subs []subpath
}

func (p *path) reset() { p.subs = p.subs[:0] }

func (p *path) current() *subpath {
	if len(p.subs) == 0 {
		return nil
	}
	return &p.subs[len(p.subs)-1]
}

func (p *path) moveTo(x, y float64) {
	p.subs = append(p.subs, subpath{pts: []point{{x, y}}})
}

func (p *path) lineTo(x, y float64) {
	sp := p.current()
	if sp == nil || sp.closed {
		p.moveTo(x, y)
		return
	}
	sp.pts = append(sp.pts, point{x, y})
}

func (p *path) closePath() {
	sp := p.current()
	if sp == nil || len(sp.pts) == 0 {
		return
	}
	sp.closed = true
	// Drawing after a close starts at the subpath's first point.
	first := sp.pts[0]
	p.subs = append(p.subs, subpath{pts: []point{first}})
}

// arc appends a clockwise arc. Like a canvas, it connects from the current point to the
// arc's start, or starts a new subpath when there is none.
func (p *path) arc(cx, cy, r, start, end float64) {
	sweep := ArcSweep(start, end)
	n := arcSteps(r, sweep)
	for i := 0; i <= n; i++ {
		a := start + sweep*float64(i)/float64(n)
		x, y := cx+math.Cos(a)*r, cy+math.Sin(a)*r
		if i == 0 {
			sp := p.current()
			if sp == nil || sp.closed || len(sp.pts) == 0 {
				p.moveTo(x, y)
				continue
			}
		}
		p.lineTo(x, y)
	}
}

// ArcSweep returns the clockwise angular extent between start and end in [0, 2π],
// following canvas arc normalization.
func ArcSweep(start, end float64) float64 {
	d := end - start
	if d >= 2*math.Pi {
		return 2 * math.Pi
	}
	d = math.Mod(d, 2*math.Pi)
	if d < 0 {
		d += 2 * math.Pi
	}
	return d
}

// arcSteps picks a flattening resolution that keeps chord error under a quarter pixel.
func arcSteps(r, sweep float64) int {
	r = math.Abs(r)
	if !finite(r, sweep) || r < 1 || sweep == 0 {
		return 1
	}
	step := 2 * math.Acos(1-0.25/r)
	n := int(math.Ceil(sweep / step))
	if n < 4 {
		n = 4
	}
	if n > 4096 {
		n = 4096
	}
	return n
}

func (p *path) finite() bool {
	for _, sp := range p.subs {
		for _, pt := range sp.pts {
			if !finite(pt.X, pt.Y) {
				return false
			}
		}
	}
	return true
}

func rectPath(x, y, w, h float64) *path {
	p := &path{}
	p.moveTo(x, y)
	p.lineTo(x+w, y)
	p.lineTo(x+w, y+h)
	p.lineTo(x, y+h)
	p.closePath()
	return p
}
