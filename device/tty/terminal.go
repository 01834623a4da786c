// Package tty implements the kernel terminal on top of the EGA text mode
// framebuffer.
//
// A Terminal is not safe for concurrent use. Updates to the cursor, the
// current color and the framebuffer are not atomic, so a Terminal that is
// written to from an interrupt handler as well as from normal execution
// needs external mutual exclusion, e.g. by disabling interrupts around each
// print call.
package tty

import (
	"io"

	"github.com/atextor/embrace/device/video/console"
	"github.com/atextor/embrace/kernel"
	"github.com/atextor/embrace/kernel/kfmt"
)

// escapeChar introduces an inline color escape. The character that follows
// it selects the new foreground color.
const escapeChar = '^'

var errNoFramebuffer = &kernel.Error{Module: "tty", Message: "text framebuffer not available"}

// Terminal writes text to a console.Grid. It tracks a cursor, wraps long
// lines, scrolls when a line feed is written on the last row and interprets
// the ^X color escapes embedded in strings.
//
// The default color is light grey on black. The current color starts out as
// the default and changes via SetColor or inline escapes.
type Terminal struct {
	grid *console.Grid

	column, row  uint32
	color        console.Attr
	defaultColor console.Attr
}

// NewTerminal creates a terminal that is not yet attached to a grid. Init or
// DriverInit must be called before writing to it.
func NewTerminal() *Terminal {
	defaultColor := console.MakeColor(DefaultFg, DefaultBg)
	return &Terminal{
		color:        defaultColor,
		defaultColor: defaultColor,
	}
}

// Init attaches the terminal to grid, moves the cursor to the top-left
// corner, resets the current color to the default color and clears the grid.
// The terminal assumes exclusive access to grid from then on.
func (t *Terminal) Init(grid *console.Grid) {
	t.grid = grid
	t.column, t.row = 0, 0
	t.defaultColor = console.MakeColor(DefaultFg, DefaultBg)
	t.color = t.defaultColor

	var x, y uint32
	for y = 0; y < console.Height; y++ {
		for x = 0; x < console.Width; x++ {
			t.PutCharAt(' ', t.color, x, y)
		}
	}
}

// SetColor sets the color used for subsequent writes. Cells that are
// already on screen keep their color.
func (t *Terminal) SetColor(attr console.Attr) {
	t.color = attr
}

// Color returns the current color.
func (t *Terminal) Color() console.Attr {
	return t.color
}

// DefaultColor returns the color the terminal was initialized with.
func (t *Terminal) DefaultColor() console.Attr {
	return t.defaultColor
}

// CursorPosition returns the 0-based column and row where the next
// character will be written.
func (t *Terminal) CursorPosition() (uint32, uint32) {
	return t.column, t.row
}

// PutCharAt writes ch with the given color at (x, y) without moving the
// cursor. The caller must ensure x < console.Width and y < console.Height.
func (t *Terminal) PutCharAt(ch byte, attr console.Attr, x, y uint32) {
	t.grid.Set(x, y, console.MakeCell(ch, attr))
}

// Scroll moves every row up by one and clears the last row using the
// default color, regardless of the current color.
func (t *Terminal) Scroll() {
	t.grid.Scroll(1)

	var x uint32
	for x = 0; x < console.Width; x++ {
		t.PutCharAt(' ', t.defaultColor, x, console.Height-1)
	}
}

// PutChar writes ch at the cursor position using the current color and
// advances the cursor.
//
// A line feed moves the cursor to the start of the next row; on the last row
// it scrolls the grid instead. Any other character that fills up the last
// column wraps the cursor to the next row, and filling up the last row wraps
// the cursor back to the top-left corner without scrolling.
func (t *Terminal) PutChar(ch byte) {
	if ch == '\n' {
		t.column = 0
		if t.row == console.Height-1 {
			t.Scroll()
		} else {
			t.row++
		}
		return
	}

	t.PutCharAt(ch, t.color, t.column, t.row)
	if t.column++; t.column == console.Width {
		t.column = 0
		if t.row++; t.row == console.Height {
			t.row = 0
		}
	}
}

// WriteString writes s to the terminal, interpreting color escapes.
//
// A '^' followed by a character in the range '0'..'A' is consumed together
// with that character and sets the current color to foreground
// (char - '0') on a black background. A '^' at the end of s or followed by
// any other character is written as is. WriteString returns
// io.ErrClosedPipe if the terminal is not attached to a grid.
func (t *Terminal) WriteString(s string) (int, error) {
	if t.grid == nil {
		return 0, io.ErrClosedPipe
	}

	writeEscaped(t, s)
	return len(s), nil
}

// Write implements io.Writer. Color escapes are interpreted the same way as
// in WriteString; an escape that is split between two Write calls is not
// recognized. kfmt.Fprintf emits the literal parts of its format string one
// byte per Write, so escapes only take effect when written through
// WriteString or as part of a single Write buffer.
func (t *Terminal) Write(data []byte) (int, error) {
	if t.grid == nil {
		return 0, io.ErrClosedPipe
	}

	writeEscaped(t, data)
	return len(data), nil
}

// writeEscaped scans s once from left to right, applying color escapes and
// printing everything else. It is generic so that strings are scanned
// without being copied into a byte slice.
func writeEscaped[T string | []byte](t *Terminal, s T) {
	for i := 0; i < len(s); i++ {
		if s[i] == escapeChar && i+1 < len(s) && t.applyEscape(s[i+1]) {
			i++
			continue
		}

		t.PutChar(s[i])
	}
}

// WriteByte implements io.ByteWriter. Single bytes are never treated as
// color escapes.
func (t *Terminal) WriteByte(b byte) error {
	if t.grid == nil {
		return io.ErrClosedPipe
	}

	t.PutChar(b)
	return nil
}

// applyEscape switches the current color if sel is a valid escape selector.
// The range check compares raw character codes, so ':' through '@' are
// accepted too and 'A' selects color 17, which spills into the background
// nibble.
func (t *Terminal) applyEscape(sel byte) bool {
	if sel < '0' || sel > 'A' {
		return false
	}

	t.SetColor(console.MakeColor(console.Color(sel-'0'), console.Black))
	return true
}

// DriverName returns the name of this driver.
func (t *Terminal) DriverName() string {
	return "vga_text_tty"
}

// DriverVersion returns the version of this driver.
func (t *Terminal) DriverVersion() (uint16, uint16, uint16) {
	return 0, 1, 0
}

// DriverInit overlays the text framebuffer and initializes the terminal.
func (t *Terminal) DriverInit(w io.Writer) *kernel.Error {
	grid := mapGridFn(console.FramebufferAddr)
	if grid == nil {
		return errNoFramebuffer
	}

	t.Init(grid)
	kfmt.Fprintf(w, "text framebuffer at 0x%x (%dx%d)\n", console.FramebufferAddr, console.Width, console.Height)

	return nil
}
