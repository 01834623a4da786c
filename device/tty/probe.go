package tty

import (
	"github.com/atextor/embrace/device"
	"github.com/atextor/embrace/device/video/console"
)

var (
	// mapGridFn is mocked by tests.
	mapGridFn = console.MapGrid
)

// probeForVgaText returns a terminal driver for the EGA text framebuffer.
// The framebuffer lives at a fixed address on every PC-compatible machine
// so there is nothing to probe for.
func probeForVgaText() device.Driver {
	return NewTerminal()
}

func init() {
	device.RegisterDriver(&device.DriverInfo{
		Order: device.DetectOrderEarly,
		Probe: probeForVgaText,
	})
}
