// Package cpu exposes the handful of privileged x86_64 instructions that the
// kernel needs. All functions are implemented in assembly.
package cpu

// EnableInterrupts enables interrupt handling.
func EnableInterrupts()

// DisableInterrupts disables interrupt handling.
func DisableInterrupts()

// InterruptsEnabled reports whether the interrupt flag is set in RFLAGS.
func InterruptsEnabled() bool

// Halt disables interrupts and stops instruction execution.
func Halt()
