package main

import (
	"image/color"

	"github.com/gdamore/tcell/v2"

	"github.com/atextor/embrace/device/video/console"
)

// paletteColor converts a text mode color to the matching RGB tcell color.
func paletteColor(c console.Color) tcell.Color {
	rgba := color.RGBAModel.Convert(console.DefaultPalette[c&0xf]).(color.RGBA)
	return tcell.NewRGBColor(int32(rgba.R), int32(rgba.G), int32(rgba.B))
}

// render copies the grid to the screen and places the screen cursor at the
// terminal cursor.
func render(s tcell.Screen, g *console.Grid, cursorX, cursorY uint32, ascii bool) {
	var x, y uint32
	for y = 0; y < console.Height; y++ {
		for x = 0; x < console.Width; x++ {
			cell := g.Cell(x, y)
			style := tcell.StyleDefault.
				Foreground(paletteColor(cell.Fg)).
				Background(paletteColor(cell.Bg))
			s.SetContent(int(x), int(y), glyph(cell.Ch, ascii), nil, style)
		}
	}

	s.ShowCursor(int(cursorX), int(cursorY))
}

// isQuitKey reports whether ev should close the viewer.
func isQuitKey(ev *tcell.EventKey) bool {
	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyEnter, tcell.KeyCtrlC:
		return true
	case tcell.KeyRune:
		return ev.Rune() == 'q'
	}

	return false
}

// show displays the grid on s until a quit key is pressed. The caller owns
// s and is responsible for calling Fini.
func show(s tcell.Screen, g *console.Grid, cursorX, cursorY uint32, ascii bool) {
	s.SetStyle(tcell.StyleDefault)
	s.Clear()
	render(s, g, cursorX, cursorY, ascii)
	s.Show()

	for {
		switch ev := s.PollEvent().(type) {
		case nil:
			return
		case *tcell.EventResize:
			s.Sync()
		case *tcell.EventKey:
			if isQuitKey(ev) {
				return
			}
		}
	}
}
