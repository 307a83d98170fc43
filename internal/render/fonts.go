package render

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/font/gofont/gomedium"
	"golang.org/x/image/font/gofont/gomono"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
)

// DefaultFamily is used for any family the book does not know.
const DefaultFamily = "sans-serif"

// FontBook maps family names to parsed fonts. Parsed fonts are shared; faces are not,
// so every surface builds its own faces through NewFace.
type FontBook struct {
	mu       sync.RWMutex
	families map[string]fontEntry
}

type fontEntry struct {
	otf *opentype.Font
	ttf *truetype.Font
}

// NewFontBook returns a book preloaded with the Go font families under the generic
// and common names scripts use.
func NewFontBook() *FontBook {
	book := &FontBook{families: map[string]fontEntry{}}
	builtin := []struct {
		data  []byte
		names []string
	}{
		{goregular.TTF, []string{DefaultFamily, "arial", "helvetica", "serif"}},
		{gomedium.TTF, []string{"roboto"}},
		{gomono.TTF, []string{"monospace", "courier", "courier new"}},
	}
	for _, b := range builtin {
		for _, name := range b.names {
			// The Go fonts are known-good; a failure here means x/image is broken.
			if err := book.Register(name, b.data); err != nil {
				panic(err)
			}
		}
	}
	return book
}

// Register parses data as OpenType, falling back to the freetype TrueType parser, and
// stores it under family.
func (b *FontBook) Register(family string, data []byte) error {
	var entry fontEntry
	otf, err := opentype.Parse(data)
	if err == nil {
		entry.otf = otf
	} else {
		ttf, terr := truetype.Parse(data)
		if terr != nil {
			return fmt.Errorf("parse font %q: %w", family, err)
		}
		entry.ttf = ttf
	}
	b.mu.Lock()
	b.families[strings.ToLower(family)] = entry
	b.mu.Unlock()
	return nil
}

// LoadDir registers every .ttf/.otf file in dir under its base name without extension
// (e.g. DSEG7.ttf becomes family "DSEG7"). It returns the number of fonts registered.
func (b *FontBook) LoadDir(dir string) (int, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return 0, fmt.Errorf("read font dir: %w", err)
	}
	n := 0
	var errs []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		ext := strings.ToLower(filepath.Ext(e.Name()))
		if ext != ".ttf" && ext != ".otf" {
			continue
		}
		data, err := os.ReadFile(filepath.Join(dir, e.Name()))
		if err != nil {
			errs = append(errs, err.Error())
			continue
		}
		if err := b.Register(strings.TrimSuffix(e.Name(), filepath.Ext(e.Name())), data); err != nil {
			errs = append(errs, err.Error())
			continue
		}
		n++
	}
	if len(errs) > 0 {
		return n, fmt.Errorf("load fonts: %s", strings.Join(errs, "; "))
	}
	return n, nil
}

// Has reports whether family is registered.
func (b *FontBook) Has(family string) bool {
	b.mu.RLock()
	defer b.mu.RUnlock()
	_, ok := b.families[strings.ToLower(family)]
	return ok
}

// Families lists registered family names, sorted.
func (b *FontBook) Families() []string {
	b.mu.RLock()
	defer b.mu.RUnlock()
	out := make([]string, 0, len(b.families))
	for name := range b.families {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

// NewFace builds a face for family at size pixels. Unknown families resolve to
// DefaultFamily. If the face cannot be built, basicfont is returned with the error.
func (b *FontBook) NewFace(family string, size float64) (font.Face, error) {
	if !ValidFontSize(size) {
		return nil, fmt.Errorf("%w: font size %v", ErrInvalidSize, size)
	}
	b.mu.RLock()
	entry, ok := b.families[strings.ToLower(family)]
	if !ok {
		entry, ok = b.families[DefaultFamily]
	}
	b.mu.RUnlock()
	if !ok {
		return basicfont.Face7x13, fmt.Errorf("no font for family %q", family)
	}

	// DPI 72 makes Size a pixel size, matching canvas "16px" fonts.
	if entry.otf != nil {
		face, err := opentype.NewFace(entry.otf, &opentype.FaceOptions{Size: size, DPI: 72, Hinting: font.HintingNone})
		if err != nil {
			return basicfont.Face7x13, fmt.Errorf("font face %q: %w", family, err)
		}
		return face, nil
	}
	return truetype.NewFace(entry.ttf, &truetype.Options{Size: size, DPI: 72, Hinting: font.HintingNone}), nil
}
