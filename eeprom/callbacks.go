package eeprom

import "time"

// Commit phases reported through CommitCallback.
const (
	PhaseErasing     = "erasing"
	PhaseProgramming = "programming"
	PhaseComplete    = "complete"
)

// CommitProgress describes how far a commit has got.
// Passed to CommitCallback while Finish writes the mirror to flash.
type CommitProgress struct {
	// Phase is one of PhaseErasing, PhaseProgramming or PhaseComplete
	Phase string

	// WordsWritten is the number of half-words programmed so far
	WordsWritten int

	// TotalWords is the number of half-words the commit programs
	TotalWords int

	// Percentage is the completion percentage (0.0 to 100.0)
	Percentage float64

	// Elapsed is the time since the commit started
	Elapsed time.Duration
}

// CommitCallback is called during a commit to report progress.
// Implementations should return quickly; the flash controller stays unlocked
// until the commit ends.
//
// Example:
//
//	store, _ := eeprom.New(drv,
//	    eeprom.WithCommitCallback(func(p eeprom.CommitProgress) {
//	        fmt.Printf("[%s] %.0f%%\n", p.Phase, p.Percentage)
//	    }),
//	)
type CommitCallback func(CommitProgress)

// Logger is an optional logging interface that can be provided to the store.
// *slog.Logger satisfies it.
//
// Example:
//
//	store, _ := eeprom.New(drv, eeprom.WithLogger(slog.Default()))
type Logger interface {
	// Debug logs a debug message with optional key-value pairs
	Debug(msg string, keysAndValues ...any)

	// Info logs an info message with optional key-value pairs
	Info(msg string, keysAndValues ...any)

	// Error logs an error message with optional key-value pairs
	Error(msg string, keysAndValues ...any)
}
