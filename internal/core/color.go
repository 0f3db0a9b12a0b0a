package core

// Color is the foreground color of a screen cell.
// The platform maps it to a terminal color.
type Color uint8

const (
	ColorDefault Color = iota
	ColorRed
	ColorGreen
	ColorYellow
	ColorBlue
	ColorMagenta
	ColorCyan
	ColorWhite
	ColorOrange
	ColorGray
	ColorBrightWhite
	ColorBrightYellow
)

var colorNames = [...]string{
	"default", "red", "green", "yellow", "blue", "magenta",
	"cyan", "white", "orange", "gray", "bright-white", "bright-yellow",
}

func (c Color) String() string {
	if int(c) < len(colorNames) {
		return colorNames[c]
	}
	return "unknown"
}
