package layout

import (
	"image"
	"reflect"
	"testing"
)

func TestSheetSizeAndGrid(t *testing.T) {
	tests := []struct {
		name          string
		n, maxCols    int
		width, height int
		cells         []image.Rectangle
	}{
		{
			name: "single", n: 1, maxCols: 3, width: 30, height: 20,
			cells: []image.Rectangle{image.Rect(5, 5, 25, 15)},
		},
		{
			name: "wraps rows", n: 3, maxCols: 2, width: 55, height: 35,
			cells: []image.Rectangle{
				image.Rect(5, 5, 25, 15),
				image.Rect(30, 5, 50, 15),
				image.Rect(5, 20, 25, 30),
			},
		},
		{
			name: "unbounded columns", n: 2, maxCols: 0, width: 55, height: 20,
			cells: []image.Rectangle{
				image.Rect(5, 5, 25, 15),
				image.Rect(30, 5, 50, 15),
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w, h := SheetSize(tt.n, tt.maxCols, 20, 10, 5)
			if w != tt.width || h != tt.height {
				t.Fatalf("SheetSize = %dx%d, want %dx%d", w, h, tt.width, tt.height)
			}
			cells := Grid(Inset(image.Rect(0, 0, w, h), 5), tt.n, tt.maxCols, 20, 10, 5)
			if !reflect.DeepEqual(cells, tt.cells) {
				t.Errorf("Grid = %v, want %v", cells, tt.cells)
			}
		})
	}
}

func TestSplitClamps(t *testing.T) {
	r := image.Rect(0, 0, 10, 10)
	left, right := SplitVertical(r, 20)
	if left != r || !right.Empty() {
		t.Errorf("SplitVertical = %v, %v", left, right)
	}
	top, bottom := SplitHorizontal(r, -5)
	if !top.Empty() || bottom != r {
		t.Errorf("SplitHorizontal = %v, %v", top, bottom)
	}
	if got := Normalize(image.Rectangle{Min: image.Pt(5, 5), Max: image.Pt(1, 1)}); got != image.Rect(1, 1, 5, 5) {
		t.Errorf("Normalize = %v", got)
	}
	if got := Inset(r, 0); got != r {
		t.Errorf("Inset(0) = %v", got)
	}
}

func TestColumns(t *testing.T) {
	for _, tt := range []struct{ n, max, want int }{{0, 3, 0}, {5, 3, 3}, {2, 3, 2}, {4, 0, 4}} {
		if got := Columns(tt.n, tt.max); got != tt.want {
			t.Errorf("Columns(%d, %d) = %d, want %d", tt.n, tt.max, got, tt.want)
		}
	}
}
