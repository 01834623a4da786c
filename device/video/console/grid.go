package console

import "unsafe"

const (
	// Width is the number of character columns of the text console.
	Width = 80

	// Height is the number of character rows of the text console.
	Height = 25

	// FramebufferAddr is the physical address where the EGA text mode
	// framebuffer is mapped.
	FramebufferAddr uintptr = 0xb8000
)

// Grid is the text mode framebuffer: Width*Height packed cells stored in
// row-major order. The cell at (x, y) lives at index y*Width + x.
type Grid [Width * Height]uint16

// MapGrid overlays a Grid on top of the memory region starting at addr. The
// caller must ensure that the region is mapped and writable and that it is
// not accessed through any other reference while the returned Grid is in use.
func MapGrid(addr uintptr) *Grid {
	if addr == 0 {
		return nil
	}

	return (*Grid)(unsafe.Pointer(addr))
}

// Index returns the offset of the cell at (x, y).
func Index(x, y uint32) uint32 {
	return y*Width + x
}

// Set stores the packed cell value v at (x, y).
func (g *Grid) Set(x, y uint32, v uint16) {
	g[Index(x, y)] = v
}

// At returns the packed cell value at (x, y).
func (g *Grid) At(x, y uint32) uint16 {
	return g[Index(x, y)]
}

// Cell returns the unpacked cell at (x, y).
func (g *Grid) Cell(x, y uint32) Cell {
	return DecodeCell(g[Index(x, y)])
}

// Row returns the cells of row y.
func (g *Grid) Row(y uint32) []uint16 {
	start := Index(0, y)
	return g[start : start+Width]
}

// Fill sets every cell of the grid to v.
func (g *Grid) Fill(v uint16) {
	for i := range g {
		g[i] = v
	}
}

// Scroll moves the grid contents up by the requested number of lines. The
// bottom rows exposed by the scroll keep their previous contents; the caller
// is responsible for clearing them.
func (g *Grid) Scroll(lines uint32) {
	if lines == 0 || lines > Height {
		return
	}

	copy(g[:], g[lines*Width:])
}
