// Package hal discovers the available hardware and connects the kernel's
// output to it.
package hal

import (
	"bytes"
	"io"
	"sort"

	"github.com/atextor/embrace/device"
	"github.com/atextor/embrace/device/tty"
	"github.com/atextor/embrace/kernel/cpu"
	"github.com/atextor/embrace/kernel/kfmt"
)

// managedDevices contains the devices discovered by the HAL.
type managedDevices struct {
	activeTTY tty.Device
}

var (
	devices managedDevices
	strBuf  bytes.Buffer

	// mocked by tests
	interruptsEnabledFn = cpu.InterruptsEnabled
	disableInterruptsFn = cpu.DisableInterrupts
	enableInterruptsFn  = cpu.EnableInterrupts
)

// ActiveTTY returns the currently active TTY or nil if no TTY was found.
func ActiveTTY() tty.Device {
	return devices.activeTTY
}

// DetectHardware probes for hardware devices and initializes the appropriate
// drivers.
func DetectHardware() {
	drivers := device.DriverList()
	sort.Sort(drivers)

	probe(drivers)
}

// probe executes the probe function for each driver and invokes
// onDriverInit for each successfully initialized driver.
func probe(driverInfoList device.DriverInfoList) {
	w := kfmt.PrefixWriter{Sink: kfmt.Writer()}

	for _, info := range driverInfoList {
		drv := info.Probe()
		if drv == nil {
			continue
		}

		strBuf.Reset()
		major, minor, patch := drv.DriverVersion()
		kfmt.Fprintf(&strBuf, "[hal] %s(%d.%d.%d): ", drv.DriverName(), major, minor, patch)
		w.Prefix = strBuf.Bytes()

		if err := drv.DriverInit(&w); err != nil {
			kfmt.Fprintf(&w, "init failed: %s\n", err.Message)
			continue
		}

		kfmt.Fprintf(&w, "initialized\n")
		onDriverInit(drv)
	}
}

// onDriverInit is invoked by probe() whenever a piece of hardware is
// detected and successfully initialized. The first TTY becomes the active
// TTY and the target of kfmt.Printf.
func onDriverInit(drv device.Driver) {
	dev, ok := drv.(tty.Device)
	if !ok || devices.activeTTY != nil {
		return
	}

	devices.activeTTY = dev
	kfmt.SetOutputSink(irqSafeWriter{dev: dev})
}

// irqSafeWriter serializes writes to a TTY with interrupt handlers by
// disabling interrupts for the duration of each write. The previous
// interrupt state is restored afterwards.
type irqSafeWriter struct {
	dev io.Writer
}

func (w irqSafeWriter) Write(p []byte) (int, error) {
	if interruptsEnabledFn() {
		disableInterruptsFn()
		defer enableInterruptsFn()
	}

	return w.dev.Write(p)
}
