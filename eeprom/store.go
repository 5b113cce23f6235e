package eeprom

import (
	"context"
	"encoding/binary"
	"fmt"
	"time"

	"github.com/moffa90/go-flashee/flash"
)

// Store emulates a byte-addressable EEPROM on two reserved flash pages.
//
// All reads and writes go to a RAM mirror of the store. Start loads the
// mirror, Finish writes it back to flash when it was modified.
//
// Store is not safe for concurrent use; one caller owns a session at a time.
type Store struct {
	driver flash.Driver
	config Config

	mirror []byte
	dirty  bool
	open   bool
}

// New creates a Store over the given flash driver.
// The mirror is allocated zeroed; call Start before accessing it.
//
// Example:
//
//	mem := flash.NewMemory(flash.DefaultGeometry())
//	store, err := eeprom.New(mem,
//	    eeprom.WithEndAddress(0x1FF),
//	    eeprom.WithLogger(slog.Default()),
//	)
func New(driver flash.Driver, opts ...Option) (*Store, error) {
	if driver == nil {
		panic("driver cannot be nil")
	}

	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return &Store{
		driver: driver,
		config: cfg,
		mirror: make([]byte, cfg.Capacity()),
	}, nil
}

func (c Config) validate() error {
	capacity := c.Capacity()
	switch {
	case c.PageSize <= 0 || c.PageSize%4 != 0:
		return &ConfigError{Reason: fmt.Sprintf("page size %d must be a positive multiple of 4", c.PageSize)}
	case capacity%flash.HalfWordSize != 0:
		return &ConfigError{Reason: fmt.Sprintf("capacity %d must be a whole number of half-words", capacity)}
	case c.ActiveBase%flash.HalfWordSize != 0:
		return &ConfigError{Reason: fmt.Sprintf("active base 0x%08X is not half-word aligned", c.ActiveBase)}
	case !c.covers(c.ActiveBase, capacity):
		return &ConfigError{Reason: fmt.Sprintf("store 0x%08X+%d does not fit in the reserved pages", c.ActiveBase, capacity)}
	}
	return nil
}

// covers reports whether [addr, addr+n) lies entirely in the reserved pages.
func (c Config) covers(addr uint32, n int) bool {
	end := uint64(addr) + uint64(n)
	for a := uint64(addr); a < end; {
		next := uint64(0)
		for _, base := range []uint32{c.Page0Base, c.Page1Base} {
			if a >= uint64(base) && a < uint64(base)+uint64(c.PageSize) {
				next = uint64(base) + uint64(c.PageSize)
			}
		}
		if next == 0 {
			return false
		}
		a = next
	}
	return true
}

// Capacity returns the usable store size in bytes.
func (s *Store) Capacity() int {
	return s.config.Capacity()
}

// Dirty reports whether the mirror was written since the last commit.
func (s *Store) Dirty() bool {
	return s.dirty
}

// Open reports whether a session is in progress.
func (s *Store) Open() bool {
	return s.open
}

// Mirror returns a copy of the mirror contents.
func (s *Store) Mirror() []byte {
	out := make([]byte, len(s.mirror))
	copy(out, s.mirror)
	return out
}

// ProbePages runs the page validity probe over both reserved pages.
func (s *Store) ProbePages() ([2]PageStatus, error) {
	var result [2]PageStatus
	for i, base := range s.pages() {
		status, err := CheckPage(s.driver, base, s.config.PageSize)
		if err != nil {
			return result, err
		}
		result[i] = status
	}
	return result, nil
}

// Start opens a session.
//
// If either reserved page is not blank the mirror is loaded from flash at the
// active base address. If both are blank the mirror is filled with the erase
// byte. The dirty flag is cleared. Starting while a session is open discards
// uncommitted writes.
func (s *Store) Start(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("cancelled: %w", err)
	}

	if s.open && s.dirty {
		s.logDebug("restarting session, discarding uncommitted writes")
	}

	status, err := s.ProbePages()
	if err != nil {
		return fmt.Errorf("probe pages: %w", err)
	}

	if status[0] != PageOK || status[1] != PageOK {
		if _, err := s.driver.ReadAt(s.mirror, int64(s.config.ActiveBase)); err != nil {
			return fmt.Errorf("load mirror: %w", err)
		}
		s.logDebug("loaded mirror from flash",
			"base", fmt.Sprintf("0x%08X", s.config.ActiveBase),
			"page0", status[0].String(),
			"page1", status[1].String(),
		)
	} else {
		for i := range s.mirror {
			s.mirror[i] = s.config.EraseByte
		}
		s.logDebug("reserved pages blank, mirror reset",
			"erase_byte", fmt.Sprintf("0x%02X", s.config.EraseByte),
		)
	}

	s.dirty = false
	s.open = true
	return nil
}

// Finish closes the session, writing the mirror to flash if it was modified.
//
// A commit unlocks the controller, erases both reserved pages and programs
// the mirror half-word by half-word from the active base address. The first
// failing erase or program aborts the commit and returns a *CommitError; the
// session then stays open and dirty so Finish can be retried. The controller
// is locked again on every path.
//
// With WithLegacyFinishStatus(true) a failed commit is only logged and Finish
// returns nil.
func (s *Store) Finish(ctx context.Context) error {
	if !s.open {
		return nil
	}
	if !s.dirty {
		s.open = false
		s.logDebug("session finished, nothing to commit")
		return nil
	}
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("cancelled: %w", err)
	}

	if err := s.commit(); err != nil {
		s.logError("commit failed", "error", err.Error())
		if s.config.LegacyFinishStatus {
			s.open = false
			return nil
		}
		return err
	}

	s.dirty = false
	s.open = false
	return nil
}

func (s *Store) commit() error {
	startTime := time.Now()
	totalWords := len(s.mirror) / flash.HalfWordSize

	s.driver.Unlock()
	defer s.driver.Lock()

	s.reportProgress(CommitProgress{
		Phase:      PhaseErasing,
		TotalWords: totalWords,
	})

	for _, base := range s.pages() {
		if status := s.driver.ErasePage(base); !status.OK() {
			return &CommitError{Result: ResultEraseFailed, Addr: base, Status: status}
		}
	}

	// Report once per page worth of words.
	reportEvery := s.config.PageSize / flash.HalfWordSize
	for i := 0; i < totalWords; i++ {
		addr := s.config.ActiveBase + uint32(i*flash.HalfWordSize)
		value := binary.LittleEndian.Uint16(s.mirror[i*flash.HalfWordSize:])
		if status := s.driver.ProgramHalfWord(addr, value); !status.OK() {
			return &CommitError{
				Result:       ResultProgramFailed,
				Addr:         addr,
				Status:       status,
				WordsWritten: i,
			}
		}

		if written := i + 1; written%reportEvery == 0 && written < totalWords {
			s.reportProgress(CommitProgress{
				Phase:        PhaseProgramming,
				WordsWritten: written,
				TotalWords:   totalWords,
				Percentage:   float64(written) / float64(totalWords) * 100,
				Elapsed:      time.Since(startTime),
			})
		}
	}

	s.reportProgress(CommitProgress{
		Phase:        PhaseComplete,
		WordsWritten: totalWords,
		TotalWords:   totalWords,
		Percentage:   100,
		Elapsed:      time.Since(startTime),
	})

	s.logInfo("mirror committed",
		"base", fmt.Sprintf("0x%08X", s.config.ActiveBase),
		"words", totalWords,
		"elapsed", time.Since(startTime).String(),
	)
	return nil
}

// Clear fills the mirror with the erase byte and marks it dirty, so the next
// Finish leaves the store blank.
func (s *Store) Clear() error {
	if !s.open {
		return ErrSessionClosed
	}
	for i := range s.mirror {
		s.mirror[i] = s.config.EraseByte
	}
	s.dirty = true
	return nil
}

func (s *Store) pages() [2]uint32 {
	return [2]uint32{s.config.Page0Base, s.config.Page1Base}
}

// reportProgress calls the commit callback if configured.
func (s *Store) reportProgress(progress CommitProgress) {
	if s.config.CommitCallback != nil {
		s.config.CommitCallback(progress)
	}
}

// logDebug logs a debug message if a logger is configured.
func (s *Store) logDebug(msg string, keysAndValues ...any) {
	if s.config.Logger != nil {
		s.config.Logger.Debug(msg, keysAndValues...)
	}
}

// logInfo logs an info message if a logger is configured.
func (s *Store) logInfo(msg string, keysAndValues ...any) {
	if s.config.Logger != nil {
		s.config.Logger.Info(msg, keysAndValues...)
	}
}

// logError logs an error message if a logger is configured.
func (s *Store) logError(msg string, keysAndValues ...any) {
	if s.config.Logger != nil {
		s.config.Logger.Error(msg, keysAndValues...)
	}
}
