package core

// Color is an ANSI 256-color code for a screen cell.
// ColorDefault leaves the terminal's own color in place.
type Color uint8

// Palette used by the shell and the games. Values are ANSI 256 codes.
const (
	ColorDefault    Color = 0
	ColorBlack      Color = 16
	ColorNavy       Color = 17  // 3 HP brick
	ColorDeepBlue   Color = 18  // 3 HP brick shade
	ColorOcean      Color = 25  // 2 HP brick
	ColorSteelBlue  Color = 24  // 2 HP brick shade
	ColorCerulean   Color = 38  // 1 HP brick
	ColorSkyBlue    Color = 117 // background bottom
	ColorLightBlue  Color = 153 // background top
	ColorSilver     Color = 250
	ColorGray       Color = 245
	ColorWhite      Color = 231
	ColorOrange     Color = 208
	ColorScreenTint Color = 194 // LCD green-ish tint of the menu screen
)
