package tty

import (
	"bytes"
	"io"
	"strings"
	"testing"

	"github.com/atextor/embrace/device"
	"github.com/atextor/embrace/device/video/console"
	"github.com/atextor/embrace/kernel/kfmt"
)

var defaultAttr = console.MakeColor(console.LightGrey, console.Black)

func newTestTerminal() (*Terminal, *console.Grid) {
	var grid console.Grid
	term := NewTerminal()
	term.Init(&grid)
	return term, &grid
}

// rowText returns the characters of row y with trailing blanks removed.
func rowText(g *console.Grid, y uint32) string {
	var buf bytes.Buffer
	for _, v := range g.Row(y) {
		buf.WriteByte(byte(v))
	}
	return strings.TrimRight(buf.String(), " ")
}

func TestTerminalInit(t *testing.T) {
	var grid console.Grid
	for i := range grid {
		grid[i] = 0xdead
	}

	term := NewTerminal()
	term.Init(&grid)

	blank := console.MakeCell(' ', defaultAttr)
	for i, v := range grid {
		if v != blank {
			t.Fatalf("expected cell %d to be cleared to 0x%04x; got 0x%04x", i, blank, v)
		}
	}

	if x, y := term.CursorPosition(); x != 0 || y != 0 {
		t.Fatalf("expected cursor to be at (0, 0); got (%d, %d)", x, y)
	}

	if term.Color() != defaultAttr || term.DefaultColor() != defaultAttr {
		t.Fatalf("expected current and default color to be 0x%02x; got 0x%02x and 0x%02x", defaultAttr, term.Color(), term.DefaultColor())
	}
}

func TestTerminalSetColor(t *testing.T) {
	term, grid := newTestTerminal()
	attr := console.MakeColor(console.White, console.Blue)

	before := *grid
	term.SetColor(attr)
	if *grid != before {
		t.Fatal("expected SetColor not to touch the grid")
	}

	term.PutChar('a')
	if got := grid.Cell(0, 0); got != (console.Cell{Ch: 'a', Fg: console.White, Bg: console.Blue}) {
		t.Fatalf("expected written cell to use the current color; got %+v", got)
	}
}

func TestTerminalPutCharAt(t *testing.T) {
	term, grid := newTestTerminal()
	attr := console.MakeColor(console.Red, console.Black)

	term.PutCharAt('!', attr, 79, 24)

	if got, exp := grid[console.Width*console.Height-1], console.MakeCell('!', attr); got != exp {
		t.Fatalf("expected bottom-right cell to be 0x%04x; got 0x%04x", exp, got)
	}

	if x, y := term.CursorPosition(); x != 0 || y != 0 {
		t.Fatalf("expected PutCharAt not to move the cursor; got (%d, %d)", x, y)
	}
}

func TestTerminalPutCharLineFeed(t *testing.T) {
	term, _ := newTestTerminal()

	term.WriteString("ab\ncd")
	if x, y := term.CursorPosition(); x != 2 || y != 1 {
		t.Fatalf("expected cursor to be at (2, 1); got (%d, %d)", x, y)
	}
}

func TestTerminalWrapWithoutScroll(t *testing.T) {
	t.Run("last column", func(t *testing.T) {
		term, grid := newTestTerminal()
		term.WriteString("top\n")
		top := rowText(grid, 0)

		term.WriteString(strings.Repeat("x", console.Width))

		if x, y := term.CursorPosition(); x != 0 || y != 2 {
			t.Fatalf("expected writing a full row to move the cursor to (0, 2); got (%d, %d)", x, y)
		}

		if got := rowText(grid, 0); got != top {
			t.Fatalf("expected row 0 to be unchanged; got %q", got)
		}

		if got := rowText(grid, 1); got != strings.Repeat("x", console.Width) {
			t.Fatalf("expected row 1 to be filled; got %q", got)
		}
	})

	t.Run("last row", func(t *testing.T) {
		term, grid := newTestTerminal()
		term.WriteString("first")
		for i := 1; i < console.Height; i++ {
			term.PutChar('\n')
		}

		if _, y := term.CursorPosition(); y != console.Height-1 {
			t.Fatalf("expected cursor on the last row; got row %d", y)
		}

		term.WriteString(strings.Repeat("y", console.Width))

		if x, y := term.CursorPosition(); x != 0 || y != 0 {
			t.Fatalf("expected the cursor to wrap to (0, 0); got (%d, %d)", x, y)
		}

		if got := rowText(grid, 0); got != "first" {
			t.Fatalf("expected no scroll when wrapping past the last row; row 0 is %q", got)
		}

		term.PutChar('z')
		if got := rowText(grid, 0); got != "zirst" {
			t.Fatalf("expected the next write to overwrite the top row; got %q", got)
		}
	})
}

func TestTerminalScrollOnLineFeed(t *testing.T) {
	term, grid := newTestTerminal()

	var y uint32
	for y = 0; y < console.Height; y++ {
		term.WriteString("row ")
		term.PutByte(byte(y))
		if y != console.Height-1 {
			term.PutChar('\n')
		}
	}

	term.WriteString("^4")
	term.PutChar('\n')

	for y = 0; y < console.Height-1; y++ {
		exp := "row " + string(hexDigits[(y+1)>>4]) + string(hexDigits[(y+1)&0xf])
		if got := rowText(grid, y); got != exp {
			t.Fatalf("expected row %d to contain %q; got %q", y, exp, got)
		}
	}

	blank := console.MakeCell(' ', defaultAttr)
	for _, v := range grid.Row(console.Height - 1) {
		if v != blank {
			t.Fatalf("expected last row to be cleared with the default color (0x%04x); got 0x%04x", blank, v)
		}
	}

	if x, y := term.CursorPosition(); x != 0 || y != console.Height-1 {
		t.Fatalf("expected cursor to stay on the last row; got (%d, %d)", x, y)
	}

	if exp := console.MakeColor(console.Red, console.Black); term.Color() != exp {
		t.Fatalf("expected scrolling to keep the current color 0x%02x; got 0x%02x", exp, term.Color())
	}
}

func TestTerminalColorEscapes(t *testing.T) {
	specs := []struct {
		input    string
		expText  string
		expColor console.Attr
	}{
		{"plain", "plain", defaultAttr},
		{"^4kernel^7", "kernel", console.MakeColor(console.LightGrey, console.Black)},
		{"^", "^", defaultAttr},
		{"a^", "a^", defaultAttr},
		{"^z", "^z", defaultAttr},
		{"^/", "^/", defaultAttr},
		{"^^1", "^", console.MakeColor(console.Blue, console.Black)},
		{"^9", "", console.MakeColor(console.LightBlue, console.Black)},
		{"^:", "", console.MakeColor(console.LightGreen, console.Black)},
		{"^?", "", console.MakeColor(console.White, console.Black)},
		{"^@", "", console.Attr(0x10)},
		{"^A", "", console.Attr(0x11)},
		{"^B", "^B", defaultAttr},
		{"Hello, ^4kernel^7 World!", "Hello, kernel World!", defaultAttr},
	}

	for specIndex, spec := range specs {
		term, grid := newTestTerminal()

		n, err := term.WriteString(spec.input)
		if err != nil || n != len(spec.input) {
			t.Errorf("[spec %d] expected WriteString to return (%d, nil); got (%d, %v)", specIndex, len(spec.input), n, err)
		}

		if got := rowText(grid, 0); got != spec.expText {
			t.Errorf("[spec %d] expected %q to display %q; got %q", specIndex, spec.input, spec.expText, got)
		}

		if x, _ := term.CursorPosition(); x != uint32(len(spec.expText)) {
			t.Errorf("[spec %d] expected cursor at column %d; got %d", specIndex, len(spec.expText), x)
		}

		if got := term.Color(); got != spec.expColor {
			t.Errorf("[spec %d] expected current color 0x%02x; got 0x%02x", specIndex, spec.expColor, got)
		}

		byteTerm, byteGrid := newTestTerminal()
		byteTerm.Write([]byte(spec.input))

		if *byteGrid != *grid || byteTerm.Color() != term.Color() {
			t.Errorf("[spec %d] expected Write and WriteString to produce the same screen for %q", specIndex, spec.input)
		}
	}
}

func TestTerminalEscapesThroughFprintf(t *testing.T) {
	term, grid := newTestTerminal()

	// Format bytes reach the terminal one Write at a time; a []byte argument
	// arrives as a single buffer.
	kfmt.Fprintf(term, "^4a%s", []byte("^2b"))

	if got, exp := rowText(grid, 0), "^4ab"; got != exp {
		t.Fatalf("expected row 0 to contain %q; got %q", exp, got)
	}

	if got := grid.Cell(2, 0).Fg; got != console.LightGrey {
		t.Fatalf("expected escape in the format string to be printed as is; got color %s", got)
	}

	if got := grid.Cell(3, 0).Fg; got != console.Green {
		t.Fatalf("expected escape in a []byte argument to set the color to green; got %s", got)
	}
}

func TestTerminalEscapeColorsText(t *testing.T) {
	term, grid := newTestTerminal()
	term.WriteString("^4kernel^7")

	for x := uint32(0); x < 6; x++ {
		if got := grid.Cell(x, 0); got.Fg != console.Red || got.Bg != console.Black {
			t.Fatalf("expected cell %d to be red on black; got %s on %s", x, got.Fg, got.Bg)
		}
	}

	if got := grid.Cell(6, 0); got != (console.Cell{Ch: ' ', Fg: console.LightGrey, Bg: console.Black}) {
		t.Fatalf("expected no extra characters after the escapes; got %+v", got)
	}
}

func TestTerminalHex(t *testing.T) {
	specs := []struct {
		fn  func(*Terminal)
		exp string
	}{
		{func(t *Terminal) { t.PutByte(0xa5) }, "A5"},
		{func(t *Terminal) { t.PutByte(0x00) }, "00"},
		{func(t *Terminal) { t.PutByte(0x0f) }, "0F"},
		{func(t *Terminal) { t.WritePointer(0) }, "0x0000000000000000"},
		{func(t *Terminal) { t.WritePointer(0xb8000) }, "0x00000000000B8000"},
		{func(t *Terminal) { t.WritePointer(^uintptr(0)) }, "0xFFFFFFFFFFFFFFFF"},
	}

	for specIndex, spec := range specs {
		term, grid := newTestTerminal()
		spec.fn(term)

		if got := rowText(grid, 0); got != spec.exp {
			t.Errorf("[spec %d] expected %q; got %q", specIndex, spec.exp, got)
		}
	}
}

func TestTerminalWriter(t *testing.T) {
	t.Run("detached terminal", func(t *testing.T) {
		term := NewTerminal()

		if _, err := term.Write([]byte("foo")); err != io.ErrClosedPipe {
			t.Fatalf("expected Write on a detached terminal to return ErrClosedPipe; got %v", err)
		}

		if _, err := term.WriteString("foo"); err != io.ErrClosedPipe {
			t.Fatalf("expected WriteString on a detached terminal to return ErrClosedPipe; got %v", err)
		}

		if err := term.WriteByte('f'); err != io.ErrClosedPipe {
			t.Fatalf("expected WriteByte on a detached terminal to return ErrClosedPipe; got %v", err)
		}
	})

	t.Run("attached terminal", func(t *testing.T) {
		term, grid := newTestTerminal()
		var dev Device = term

		data := []byte("^2ok\n")
		n, err := dev.Write(data)
		if err != nil || n != len(data) {
			t.Fatalf("expected Write to return (%d, nil); got (%d, %v)", len(data), n, err)
		}

		if err := dev.WriteByte('^'); err != nil {
			t.Fatal(err)
		}
		dev.WriteByte('3')

		if got := rowText(grid, 0); got != "ok" {
			t.Fatalf("expected row 0 to contain %q; got %q", "ok", got)
		}

		if got := rowText(grid, 1); got != "^3" {
			t.Fatalf("expected bytes written via WriteByte to be printed as is; got %q", got)
		}

		if got := grid.Cell(0, 0).Fg; got != console.Green {
			t.Fatalf("expected escape in Write to set the color to green; got %s", got)
		}
	})
}

func TestTerminalDriverInterface(t *testing.T) {
	defer func() {
		mapGridFn = console.MapGrid
	}()

	var drv device.Driver = probeForVgaText()

	if exp, got := "vga_text_tty", drv.DriverName(); got != exp {
		t.Fatalf("expected DriverName() to return %q; got %q", exp, got)
	}

	if major, minor, patch := drv.DriverVersion(); major != 0 || minor != 1 || patch != 0 {
		t.Fatalf("expected driver version to be 0.1.0; got %d.%d.%d", major, minor, patch)
	}

	t.Run("framebuffer unavailable", func(t *testing.T) {
		mapGridFn = func(uintptr) *console.Grid { return nil }

		if err := drv.DriverInit(io.Discard); err != errNoFramebuffer {
			t.Fatalf("expected DriverInit to return errNoFramebuffer; got %v", err)
		}
	})

	t.Run("success", func(t *testing.T) {
		var (
			grid    console.Grid
			log     bytes.Buffer
			mapAddr uintptr
		)

		mapGridFn = func(addr uintptr) *console.Grid {
			mapAddr = addr
			return &grid
		}

		if err := drv.DriverInit(&log); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if mapAddr != console.FramebufferAddr {
			t.Fatalf("expected DriverInit to map 0x%x; got 0x%x", console.FramebufferAddr, mapAddr)
		}

		if exp := "text framebuffer at 0xb8000 (80x25)\n"; log.String() != exp {
			t.Fatalf("expected DriverInit to log %q; got %q", exp, log.String())
		}

		if grid[0] != console.MakeCell(' ', defaultAttr) {
			t.Fatal("expected DriverInit to clear the grid")
		}

		if _, ok := drv.(Device); !ok {
			t.Fatal("expected the driver to implement tty.Device")
		}
	})
}

func TestTerminalRegistersProbe(t *testing.T) {
	for _, info := range device.DriverList() {
		if info.Order != device.DetectOrderEarly || info.Probe == nil {
			continue
		}

		if _, ok := info.Probe().(*Terminal); ok {
			return
		}
	}

	t.Fatal("expected the tty package to register an early probe for the text terminal")
}
