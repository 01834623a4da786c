package tty

const hexDigits = "0123456789ABCDEF"

// PutByte writes b as two upper-case hex digits, high nibble first.
func (t *Terminal) PutByte(b byte) {
	t.PutChar(hexDigits[b>>4])
	t.PutChar(hexDigits[b&0xf])
}

// WritePointer writes p as "0x" followed by exactly 16 upper-case hex digits,
// most significant nibble first. Leading zeroes are always printed.
func (t *Terminal) WritePointer(p uintptr) {
	t.PutChar('0')
	t.PutChar('x')

	v := uint64(p)
	for i := 0; i < 16; i++ {
		t.PutChar(hexDigits[v>>60])
		v <<= 4
	}
}
