package tty

import (
	"io"

	"github.com/atextor/embrace/device/video/console"
)

const (
	// DefaultFg is the foreground color of a freshly initialized terminal.
	DefaultFg = console.LightGrey

	// DefaultBg is the background color of a freshly initialized terminal.
	DefaultBg = console.Black
)

// Device is implemented by objects that can be used as a terminal device.
type Device interface {
	io.Writer
	io.ByteWriter
	io.StringWriter

	// SetColor sets the color attribute for subsequent writes.
	SetColor(console.Attr)

	// CursorPosition returns the current cursor column and row. Both
	// coordinates are 0-based.
	CursorPosition() (uint32, uint32)

	// PutByte writes b as two upper-case hex digits.
	PutByte(b byte)

	// WritePointer writes p as 0x followed by 16 upper-case hex digits.
	WritePointer(p uintptr)
}

var _ Device = (*Terminal)(nil)
