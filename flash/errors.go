package flash

import (
	"errors"
	"fmt"
)

// Error describes a flash operation that did not complete.
type Error struct {
	// Op is the operation that failed ("erase page", "program half-word")
	Op string

	// Addr is the flash address the operation targeted
	Addr uint32

	// Status is the status reported by the driver
	Status Status
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s at 0x%08X failed: %s", e.Op, e.Addr, e.Status)
}

// IsError returns true if err is or wraps an *Error.
func IsError(err error) bool {
	var fe *Error
	return errors.As(err, &fe)
}

// AddressError indicates a read outside the device address range.
type AddressError struct {
	Addr int64
	Len  int
	Min  uint32
	Max  uint32
}

func (e *AddressError) Error() string {
	return fmt.Sprintf("address range 0x%08X+%d is outside flash 0x%08X-0x%08X",
		e.Addr, e.Len, e.Min, e.Max)
}
