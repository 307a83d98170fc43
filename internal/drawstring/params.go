package drawstring

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// params are an instruction's raw fields. Accessors never fail on a short list;
// numeric parsing degrades to NaN instead of returning errors.
type params []string

// str returns field i, or "" and false when it is absent.
func (p params) str(i int) (string, bool) {
	if i < 0 || i >= len(p) {
		return "", false
	}
	return p[i], true
}

// num parses field i as a number: absent or unparsable fields are NaN and an empty
// field is 0.
func (p params) num(i int) float64 {
	s, ok := p.str(i)
	if !ok {
		return math.NaN()
	}
	return parseNumber(s)
}

// optNum is num for optional fields: an empty field counts as absent.
func (p params) optNum(i int) float64 {
	if s, ok := p.str(i); !ok || strings.TrimSpace(s) == "" {
		return math.NaN()
	}
	return p.num(i)
}

// text returns field i, which must be present.
func (p params) text(i int, name string) (string, error) {
	s, ok := p.str(i)
	if !ok {
		return "", fmt.Errorf("%w: %s", ErrMissingParameter, name)
	}
	return s, nil
}

// color resolves field i, which must be present.
func (p params) color(i int, name string) (string, error) {
	s, ok := p.str(i)
	if !ok {
		return "", fmt.Errorf("%w: %s", ErrMissingParameter, name)
	}
	return ResolveColor(s), nil
}

// optColor resolves field i when it is present and non-empty.
func (p params) optColor(i int) (string, bool) {
	s, ok := p.str(i)
	if !ok || s == "" {
		return "", false
	}
	return ResolveColor(s), true
}

func parseNumber(s string) float64 {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0
	}
	if strings.HasPrefix(s, "0x") || strings.HasPrefix(s, "0X") {
		v, err := strconv.ParseUint(s[2:], 16, 64)
		if err != nil {
			return math.NaN()
		}
		return float64(v)
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		// ParseFloat reports out-of-range values with ±Inf and an error; keep those.
		if ne, ok := err.(*strconv.NumError); ok && ne.Err == strconv.ErrRange {
			return v
		}
		return math.NaN()
	}
	return v
}

// lineWidth reads an optional stroke thickness; missing, zero, negative or
// non-finite values mean 1.
func (p params) lineWidth(i int) float64 {
	w := p.num(i)
	if !(w > 0) || math.IsInf(w, 0) {
		return 1
	}
	return w
}
