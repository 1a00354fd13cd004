// Package theme supplies the editor's color palette: window chrome, toolbar
// buttons, the canvas backdrop checker, and the selection marquee colors.
// Themes load from simple key/value files; unknown keys are ignored so old
// binaries read newer theme files.
package theme

import (
	"image/color"
)

// Theme is one named palette.
type Theme struct {
	Name string

	// Window
	Background color.RGBA
	Foreground color.RGBA

	// Toolbar
	ToolbarBackground     color.RGBA
	ButtonBackground      color.RGBA
	ButtonBackgroundHover color.RGBA
	ButtonBackgroundPress color.RGBA
	ButtonText            color.RGBA
	ButtonBorder          color.RGBA

	// Canvas backdrop checker
	CheckerLight color.RGBA
	CheckerDark  color.RGBA

	// Selection marquee dash pair and handle fill
	SelectionDashA color.RGBA
	SelectionDashB color.RGBA
	HandleFill     color.RGBA
}

// Default returns the built-in light palette used when no theme is
// configured or a lookup fails.
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
		ButtonBorder:          color.RGBA{0, 0, 0, 255},
		CheckerLight:          color.RGBA{220, 220, 220, 255},
		CheckerDark:           color.RGBA{192, 192, 192, 255},
		SelectionDashA:        color.RGBA{255, 255, 255, 255},
		SelectionDashB:        color.RGBA{0, 0, 0, 255},
		HandleFill:            color.RGBA{255, 255, 255, 255},
	}
}
