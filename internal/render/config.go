package render

import (
	"image/color"
	"time"
)

// Render defaults for panels and sheets.
var (
	// PanelWidth and PanelHeight match the host's drawing panels.
	PanelWidth  = 240
	PanelHeight = 240

	// SheetGap separates panels and pads the sheet border.
	SheetGap = 16

	// SheetBackground fills the sheet behind the panels.
	SheetBackground = color.RGBA{R: 0x20, G: 0x22, B: 0x28, A: 0xFF}

	// FrameInterval is how often the display loop polls for a new state.
	FrameInterval = time.Second / 30
)
