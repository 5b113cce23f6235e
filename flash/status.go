package flash

import "fmt"

// Status is the completion status reported by erase and program operations.
// Values follow the STM32F1 standard peripheral library FLASH_Status.
type Status uint8

// Flash operation status values.
const (
	// StatusBusy indicates the controller is still busy
	StatusBusy Status = iota + 1

	// StatusErrorPG indicates a programming error (bad address or cell not erased)
	StatusErrorPG

	// StatusErrorWRP indicates a write protection error (controller locked)
	StatusErrorWRP

	// StatusComplete indicates the operation finished successfully
	StatusComplete

	// StatusTimeout indicates the operation did not finish in time
	StatusTimeout
)

// String returns a human-readable name for the status.
func (s Status) String() string {
	switch s {
	case StatusBusy:
		return "busy"
	case StatusErrorPG:
		return "programming error"
	case StatusErrorWRP:
		return "write protection error"
	case StatusComplete:
		return "complete"
	case StatusTimeout:
		return "timeout"
	default:
		return fmt.Sprintf("unknown status %d", uint8(s))
	}
}

// OK reports whether the status means the operation completed.
func (s Status) OK() bool {
	return s == StatusComplete
}
