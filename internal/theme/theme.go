package theme

import (
	"image/color"
)

// Theme defines the color palette for the application UI.
type Theme struct {
	Name string

	// General
	Background color.RGBA // Main window background (behind toolbar/canvas)
	Foreground color.RGBA // Main text color

	// Toolbar
	ToolbarBackground     color.RGBA
	ButtonBackground      color.RGBA
	ButtonBackgroundHover color.RGBA
	ButtonBackgroundPress color.RGBA
	ButtonText            color.RGBA
	ButtonTextHover       color.RGBA
	ButtonTextPress       color.RGBA
	ButtonBorder          color.RGBA

	// Canvas
	CheckerLight     color.RGBA
	CheckerDark      color.RGBA
	SelectionOutline color.RGBA // Dashed outline around the selected shape
	HandleFill       color.RGBA
	HandleBorder     color.RGBA
	PreviewOutline   color.RGBA // In-progress drawing outline

	// Status bar
	StatusBackground color.RGBA
	StatusText       color.RGBA
}

// Default returns the hardcoded default light theme (fallback).
func Default() *Theme {
	return &Theme{
		Name:                  "Default",
		Background:            color.RGBA{220, 220, 220, 255},
		Foreground:            color.RGBA{0, 0, 0, 255},
		ToolbarBackground:     color.RGBA{220, 220, 220, 255},
		ButtonBackground:      color.RGBA{200, 200, 200, 255},
		ButtonBackgroundHover: color.RGBA{180, 180, 180, 255},
		ButtonBackgroundPress: color.RGBA{150, 150, 150, 255},
		ButtonText:            color.RGBA{0, 0, 0, 255},
		ButtonTextHover:       color.RGBA{0, 0, 0, 255},
		ButtonTextPress:       color.RGBA{0, 0, 0, 255},
		ButtonBorder:          color.RGBA{0, 0, 0, 255},
		CheckerLight:          color.RGBA{220, 220, 220, 255},
		CheckerDark:           color.RGBA{192, 192, 192, 255},
		SelectionOutline:      color.RGBA{255, 255, 255, 255},
		HandleFill:            color.RGBA{255, 255, 255, 255},
		HandleBorder:          color.RGBA{0, 0, 0, 255},
		PreviewOutline:        color.RGBA{0, 200, 255, 255},
		StatusBackground:      color.RGBA{200, 200, 200, 255},
		StatusText:            color.RGBA{0, 0, 0, 255},
	}
}
