package device

import (
	"io"

	"github.com/atextor/embrace/kernel"
)

// Driver is an interface implemented by all drivers.
type Driver interface {
	// DriverName returns the name of the driver.
	DriverName() string

	// DriverVersion returns the driver version.
	DriverVersion() (major uint16, minor uint16, patch uint16)

	// DriverInit initializes the device driver. If the driver init code
	// needs to log some output, it can use the supplied io.Writer in
	// conjunction with a call to kfmt.Fprintf.
	DriverInit(io.Writer) *kernel.Error
}

// ProbeFn is a function that scans for the presence of a particular
// piece of hardware and returns a driver for it. It returns nil if the
// hardware is not present.
type ProbeFn func() Driver

// DetectOrder specifies when a driver gets probed relative to the other
// registered drivers. Lower values are probed first.
type DetectOrder int8

const (
	// DetectOrderEarly is used by drivers that provide console output
	// and must be available before anything else logs.
	DetectOrderEarly DetectOrder = -64

	// DetectOrderNormal is the default detection order.
	DetectOrderNormal DetectOrder = 0

	// DetectOrderLast is used by drivers that depend on everything else.
	DetectOrderLast DetectOrder = 127
)

// DriverInfo describes a registered driver.
type DriverInfo struct {
	// Order controls when the driver is probed.
	Order DetectOrder

	// Probe checks for the hardware and returns a driver for it.
	Probe ProbeFn
}

// DriverInfoList is a list of registered drivers that implements
// sort.Interface by DetectOrder.
type DriverInfoList []*DriverInfo

// Len returns the length of the driver info list.
func (l DriverInfoList) Len() int { return len(l) }

// Swap exchanges 2 elements in the driver info list.
func (l DriverInfoList) Swap(i, j int) { l[i], l[j] = l[j], l[i] }

// Less compares 2 elements of the driver info list.
func (l DriverInfoList) Less(i, j int) bool { return l[i].Order < l[j].Order }

var registeredDrivers DriverInfoList

// RegisterDriver adds the supplied driver info to the list of drivers that
// are probed at boot. Drivers call it from an init() block.
func RegisterDriver(info *DriverInfo) {
	registeredDrivers = append(registeredDrivers, info)
}

// DriverList returns the registered drivers. The list starts out in
// registration order and shares its storage with the registry, so sorting it
// reorders the registry as well.
func DriverList() DriverInfoList {
	return registeredDrivers
}
