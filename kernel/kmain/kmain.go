package kmain

import (
	"github.com/atextor/embrace/kernel"
	"github.com/atextor/embrace/kernel/cpu"
	"github.com/atextor/embrace/kernel/hal"
	"github.com/atextor/embrace/kernel/kfmt"
)

// Boot error codes. The early boot code reports failed checks using these
// values as an index into bootErrors.
const (
	ErrNotMultiboot uint8 = iota
	ErrNoCPUID
	ErrNoLongMode
)

const banner = "Hello, ^4kernel^7 World!\n"

var (
	bootErrors = [...]string{
		ErrNotMultiboot: "Kernel was not booted by multiboot2-compliant bootloader",
		ErrNoCPUID:      "CPUID instruction not supported",
		ErrNoLongMode:   "Long mode not available",
	}

	errNoTTY      = &kernel.Error{Module: "kmain", Message: "no terminal available"}
	errNoBootInfo = &kernel.Error{Module: "kmain", Message: "missing multiboot info"}

	// mocked by tests
	detectHardwareFn = hal.DetectHardware
	activeTTYFn      = hal.ActiveTTY
	cpuHaltFn        = cpu.Halt
	panicFn          = kfmt.Panic
)

// Kmain is the only Go symbol that is visible (exported) from the rt0
// initialization code. The rt0 code passes the address of the multiboot info
// payload provided by the bootloader; Kmain only prints it.
//
// Kmain is not expected to return. Boot failures go through kfmt.Panic; after
// a successful boot Kmain halts the CPU.
//
//go:noinline
func Kmain(bootInfoPtr uintptr) {
	detectHardwareFn()

	term := activeTTYFn()
	if term == nil {
		panicFn(errNoTTY)
		return
	}

	if bootInfoPtr == 0 {
		ReportError(ErrNotMultiboot)
		panicFn(errNoBootInfo)
		return
	}

	term.WriteString(banner)
	term.WriteString("boot info: ")
	term.WritePointer(bootInfoPtr)
	term.WriteByte('\n')

	cpuHaltFn()
}

// ReportError writes the message for a boot error code to the active TTY.
func ReportError(code uint8) {
	term := activeTTYFn()
	if term == nil {
		return
	}

	term.WriteString("Error: ")
	if int(code) < len(bootErrors) {
		term.WriteString(bootErrors[code])
	} else {
		term.WriteString("unknown error")
	}
}
