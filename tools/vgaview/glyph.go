package main

import (
	"github.com/mattn/go-runewidth"
	"golang.org/x/text/encoding/charmap"
)

// lowGlyphs holds the symbols the VGA character ROM draws for the control
// character range.
var lowGlyphs = []rune(" ☺☻♥♦♣♠•◘○◙♂♀♪♫☼►◄↕‼¶§▬↨↑↓→←∟↔▲▼")

// narrow measures glyphs the way a western terminal does, treating East Asian
// ambiguous characters as single width.
var narrow = &runewidth.Condition{EastAsianWidth: false}

// glyph maps a cell character to the rune shown for it. The character ROM
// uses code page 437. Glyphs that would not occupy exactly one terminal
// column are replaced with '?'. In ascii mode every byte outside the
// printable ASCII range is shown as '.'.
func glyph(ch byte, ascii bool) rune {
	if ascii {
		if ch < 0x20 || ch > 0x7e {
			return '.'
		}
		return rune(ch)
	}

	var r rune
	switch {
	case ch < 0x20:
		r = lowGlyphs[ch]
	case ch == 0x7f:
		r = '⌂'
	default:
		r = charmap.CodePage437.DecodeByte(ch)
	}

	if narrow.RuneWidth(r) != 1 {
		return '?'
	}

	return r
}
