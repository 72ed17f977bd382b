package core

// Color represents a foreground color for a screen cell.
// Uses ANSI 256-color codes for terminal compatibility.
type Color uint8

// Predefined colors for game elements. The bright half doubles as the
// synthwave palette the artillery renderer leans on.
const (
	ColorDefault Color = iota
	ColorRed
	ColorGreen
	ColorYellow
	ColorBlue
	ColorMagenta
	ColorCyan
	ColorWhite
	ColorBrightRed
	ColorBrightGreen
	ColorBrightYellow
	ColorBrightBlue
	ColorBrightMagenta
	ColorBrightCyan
	ColorBrightWhite
	ColorOrange
	ColorGray
)

// ColorByName resolves a style name from the weapon catalog to a cell color.
// Unknown names fall back to the default color.
func ColorByName(name string) Color {
	switch name {
	case "red":
		return ColorBrightRed
	case "green":
		return ColorBrightGreen
	case "yellow":
		return ColorBrightYellow
	case "blue":
		return ColorBrightBlue
	case "magenta":
		return ColorBrightMagenta
	case "cyan":
		return ColorBrightCyan
	case "white":
		return ColorBrightWhite
	case "orange":
		return ColorOrange
	case "gray":
		return ColorGray
	default:
		return ColorDefault
	}
}
