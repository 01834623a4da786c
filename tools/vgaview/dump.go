package main

import (
	"bufio"
	"io"
	"strings"

	"github.com/atextor/embrace/device/video/console"
)

// dump writes the grid contents to w as text, one line per row, with
// trailing blanks removed.
func dump(w io.Writer, g *console.Grid, ascii bool) error {
	bw := bufio.NewWriter(w)

	var line strings.Builder
	for y := uint32(0); y < console.Height; y++ {
		line.Reset()
		for _, v := range g.Row(y) {
			line.WriteRune(glyph(console.DecodeCell(v).Ch, ascii))
		}

		if _, err := bw.WriteString(strings.TrimRight(line.String(), " ")); err != nil {
			return err
		}
		if err := bw.WriteByte('\n'); err != nil {
			return err
		}
	}

	return bw.Flush()
}
