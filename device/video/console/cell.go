package console

// Cell is the unpacked form of a single character cell of the text console.
type Cell struct {
	Ch byte
	Fg Color
	Bg Color
}

// MakeCell packs a character and a color attribute into the 16-bit value
// expected by the hardware: the character lives in the low byte and the
// attribute in the high byte.
func MakeCell(ch byte, attr Attr) uint16 {
	return uint16(attr)<<8 | uint16(ch)
}

// Encode returns the packed hardware representation of c.
func (c Cell) Encode() uint16 {
	return MakeCell(c.Ch, MakeColor(c.Fg&0xf, c.Bg&0xf))
}

// DecodeCell unpacks a hardware cell value.
func DecodeCell(v uint16) Cell {
	attr := Attr(v >> 8)
	return Cell{
		Ch: byte(v),
		Fg: attr.Fg(),
		Bg: attr.Bg(),
	}
}
