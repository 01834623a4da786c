package console

import "image/color"

// Color is one of the 16 colors supported by the EGA text mode. Only the low
// nibble of a Color is meaningful to the hardware.
type Color uint8

// The hardware text mode colors.
const (
	Black Color = iota
	Blue
	Green
	Cyan
	Red
	Magenta
	Brown
	LightGrey
	DarkGrey
	LightBlue
	LightGreen
	LightCyan
	LightRed
	LightMagenta
	LightBrown
	White
)

var colorNames = [...]string{
	"black", "blue", "green", "cyan", "red", "magenta", "brown", "light grey",
	"dark grey", "light blue", "light green", "light cyan", "light red",
	"light magenta", "light brown", "white",
}

// String implements fmt.Stringer for Color.
func (c Color) String() string {
	if int(c) < len(colorNames) {
		return colorNames[c]
	}

	return "invalid"
}

// Attr is a packed color byte: the foreground color occupies the low nibble
// and the background color the high nibble.
type Attr uint8

// MakeColor packs a foreground and a background color into an Attr. The
// arguments are combined as (bg << 4) | fg without masking.
func MakeColor(fg, bg Color) Attr {
	return Attr(bg)<<4 | Attr(fg)
}

// Fg returns the foreground color encoded in the attribute.
func (a Attr) Fg() Color {
	return Color(a & 0xf)
}

// Bg returns the background color encoded in the attribute.
func (a Attr) Bg() Color {
	return Color(a >> 4)
}

// DefaultPalette contains the RGB values that the VGA DAC is programmed with
// for each of the 16 text mode colors after a mode 0x3 switch.
var DefaultPalette = color.Palette{
	color.RGBA{R: 0, G: 0, B: 0, A: 255},       /* black */
	color.RGBA{R: 0, G: 0, B: 170, A: 255},     /* blue */
	color.RGBA{R: 0, G: 170, B: 0, A: 255},     /* green */
	color.RGBA{R: 0, G: 170, B: 170, A: 255},   /* cyan */
	color.RGBA{R: 170, G: 0, B: 0, A: 255},     /* red */
	color.RGBA{R: 170, G: 0, B: 170, A: 255},   /* magenta */
	color.RGBA{R: 170, G: 85, B: 0, A: 255},    /* brown */
	color.RGBA{R: 170, G: 170, B: 170, A: 255}, /* light grey */
	color.RGBA{R: 85, G: 85, B: 85, A: 255},    /* dark grey */
	color.RGBA{R: 85, G: 85, B: 255, A: 255},   /* light blue */
	color.RGBA{R: 85, G: 255, B: 85, A: 255},   /* light green */
	color.RGBA{R: 85, G: 255, B: 255, A: 255},  /* light cyan */
	color.RGBA{R: 255, G: 85, B: 85, A: 255},   /* light red */
	color.RGBA{R: 255, G: 85, B: 255, A: 255},  /* light magenta */
	color.RGBA{R: 255, G: 255, B: 85, A: 255},  /* light brown */
	color.RGBA{R: 255, G: 255, B: 255, A: 255}, /* white */
}
