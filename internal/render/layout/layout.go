package layout

import "image"

// Inset shrinks rect by paddingPx on all sides.
func Inset(rect image.Rectangle, paddingPx int) image.Rectangle {
	if paddingPx <= 0 {
		return rect
	}
	out := image.Rect(rect.Min.X+paddingPx, rect.Min.Y+paddingPx, rect.Max.X-paddingPx, rect.Max.Y-paddingPx)
	return Normalize(out)
}

// Normalize ensures Min is <= Max on both axes.
func Normalize(rect image.Rectangle) image.Rectangle {
	if rect.Min.X > rect.Max.X {
		rect.Min.X, rect.Max.X = rect.Max.X, rect.Min.X
	}
	if rect.Min.Y > rect.Max.Y {
		rect.Min.Y, rect.Max.Y = rect.Max.Y, rect.Min.Y
	}
	return rect
}

// SplitVertical splits rect into left and right parts.
// leftWidthPx is clamped to [0, rect.Dx()].
func SplitVertical(rect image.Rectangle, leftWidthPx int) (left image.Rectangle, right image.Rectangle) {
	rect = Normalize(rect)
	leftWidthPx = clamp(leftWidthPx, 0, rect.Dx())
	left = image.Rect(rect.Min.X, rect.Min.Y, rect.Min.X+leftWidthPx, rect.Max.Y)
	right = image.Rect(rect.Min.X+leftWidthPx, rect.Min.Y, rect.Max.X, rect.Max.Y)
	return left, right
}

// SplitHorizontal splits rect into top and bottom parts.
// topHeightPx is clamped to [0, rect.Dy()].
func SplitHorizontal(rect image.Rectangle, topHeightPx int) (top image.Rectangle, bottom image.Rectangle) {
	rect = Normalize(rect)
	topHeightPx = clamp(topHeightPx, 0, rect.Dy())
	top = image.Rect(rect.Min.X, rect.Min.Y, rect.Max.X, rect.Min.Y+topHeightPx)
	bottom = image.Rect(rect.Min.X, rect.Min.Y+topHeightPx, rect.Max.X, rect.Max.Y)
	return top, bottom
}

// Columns returns the column count for n panels with at most maxCols per row.
func Columns(n, maxCols int) int {
	if n <= 0 {
		return 0
	}
	if maxCols <= 0 || maxCols > n {
		return n
	}
	return maxCols
}

// SheetSize returns the size of a sheet holding n cells of cellW x cellH in rows of at
// most maxCols, with gapPx between cells and around the border.
func SheetSize(n, maxCols, cellW, cellH, gapPx int) (width, height int) {
	cols := Columns(n, maxCols)
	if cols == 0 {
		return 2 * gapPx, 2 * gapPx
	}
	rows := (n + cols - 1) / cols
	width = cols*cellW + (cols+1)*gapPx
	height = rows*cellH + (rows+1)*gapPx
	return width, height
}

// Grid places n cells of cellW x cellH inside rect, row-major, separated by gapPx.
// rect is expected to be a sheet returned by SheetSize already inset by gapPx.
func Grid(rect image.Rectangle, n, maxCols, cellW, cellH, gapPx int) []image.Rectangle {
	cols := Columns(n, maxCols)
	cells := make([]image.Rectangle, 0, n)
	rest := Normalize(rect)
	for len(cells) < n {
		var row image.Rectangle
		row, rest = SplitHorizontal(rest, cellH)
		_, rest = SplitHorizontal(rest, gapPx)
		for c := 0; c < cols && len(cells) < n; c++ {
			var cell image.Rectangle
			cell, row = SplitVertical(row, cellW)
			_, row = SplitVertical(row, gapPx)
			cells = append(cells, cell)
		}
	}
	return cells
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
