package kernel

// Error describes a kernel error. Kernel code runs before the Go allocator is
// available so errors.New cannot be used; instead, every error is declared as
// a package-level *Error value and returned by reference.
type Error struct {
	// The module where the error occurred.
	Module string

	// The error message.
	Message string
}

// Error implements the error interface.
func (e *Error) Error() string {
	return e.Message
}
