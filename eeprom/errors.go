package eeprom

import (
	"errors"
	"fmt"

	"github.com/moffa90/go-flashee/flash"
)

var (
	// ErrSessionClosed is returned by accessors called outside Start/Finish
	ErrSessionClosed = errors.New("eeprom: no open session")

	// ErrShortBuffer is returned when the caller's buffer is smaller than size
	ErrShortBuffer = errors.New("eeprom: buffer shorter than size")
)

// CommitResult is the outcome of writing the mirror to flash.
type CommitResult int

// Commit results.
const (
	ResultOK CommitResult = iota
	ResultEraseFailed
	ResultProgramFailed
)

func (r CommitResult) String() string {
	switch r {
	case ResultOK:
		return "ok"
	case ResultEraseFailed:
		return "erase failed"
	case ResultProgramFailed:
		return "program failed"
	default:
		return fmt.Sprintf("CommitResult(%d)", int(r))
	}
}

// CommitError indicates that Finish aborted the commit.
// After a program failure the words from WordsWritten on are left erased.
type CommitError struct {
	Result       CommitResult
	Addr         uint32
	Status       flash.Status
	WordsWritten int
}

func (e *CommitError) Error() string {
	return fmt.Sprintf("commit %s at 0x%08X: %s (%d words written)",
		e.Result, e.Addr, e.Status, e.WordsWritten)
}

// Unwrap exposes the underlying flash failure.
func (e *CommitError) Unwrap() error {
	op := "program half-word"
	if e.Result == ResultEraseFailed {
		op = "erase page"
	}
	return &flash.Error{Op: op, Addr: e.Addr, Status: e.Status}
}

// OutOfRangeError indicates an accessor call that would leave the store.
type OutOfRangeError struct {
	Pos      int
	Size     int
	Capacity int
}

func (e *OutOfRangeError) Error() string {
	return fmt.Sprintf("eeprom: range %d+%d is out of range: capacity is %d",
		e.Pos, e.Size, e.Capacity)
}

// ConfigError indicates an unusable store configuration.
type ConfigError struct {
	Reason string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("eeprom: invalid configuration: %s", e.Reason)
}
