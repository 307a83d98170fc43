package render

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"golang.org/x/image/font/gofont/gomono"
)

func TestFontBookBuiltins(t *testing.T) {
	b := NewFontBook()
	for _, family := range []string{DefaultFamily, "Arial", "Roboto", "monospace", "Courier New"} {
		if !b.Has(family) {
			t.Errorf("missing family %q", family)
		}
	}
	if b.Has("DSEG7") {
		t.Error("DSEG7 registered without a font file")
	}

	mono, err := b.NewFace("monospace", 10)
	if err != nil {
		t.Fatal(err)
	}
	// Fixed width: every glyph advances the same.
	i, _ := mono.GlyphAdvance('i')
	m, _ := mono.GlyphAdvance('m')
	if i != m {
		t.Errorf("monospace advances differ: %v vs %v", i, m)
	}

	if _, err := b.NewFace("monospace", -1); !errors.Is(err, ErrInvalidSize) {
		t.Errorf("negative size error = %v", err)
	}
	if face, err := b.NewFace("unknown", 10); err != nil || face == nil {
		t.Errorf("unknown family: %v, %v", face, err)
	}
}

func TestFontBookLoadDir(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "DSEG7.ttf"), gomono.TTF, 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("not a font"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "broken.otf"), []byte("garbage"), 0o644); err != nil {
		t.Fatal(err)
	}

	b := NewFontBook()
	n, err := b.LoadDir(dir)
	if n != 1 {
		t.Errorf("loaded %d fonts, want 1", n)
	}
	if err == nil {
		t.Error("broken font did not report an error")
	}
	if !b.Has("dseg7") {
		t.Errorf("families = %v", b.Families())
	}
	if _, err := b.LoadDir(filepath.Join(dir, "missing")); err == nil {
		t.Error("missing dir did not fail")
	}
}

func TestFontBookFamiliesSorted(t *testing.T) {
	want := []string{"arial", "courier", "courier new", "helvetica", "monospace", "roboto", "sans-serif", "serif"}
	if got := NewFontBook().Families(); !reflect.DeepEqual(got, want) {
		t.Errorf("Families() = %v, want %v", got, want)
	}
}
