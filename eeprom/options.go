package eeprom

import "github.com/moffa90/go-flashee/flash"

// DefaultEndAddress is the inclusive end address of the default 4 KiB store,
// which spans both default reserved pages.
const DefaultEndAddress = 0xFFF

// Config holds the store configuration.
type Config struct {
	// Logger is used for logging operations (optional)
	Logger Logger

	// CommitCallback is called while Finish writes flash (optional)
	CommitCallback CommitCallback

	// Page0Base and Page1Base are the base addresses of the reserved pages.
	// Both are probed at Start and erased at Finish.
	Page0Base uint32
	Page1Base uint32

	// PageSize is the size of one reserved page in bytes
	PageSize int

	// ActiveBase is the address the mirror is loaded from and committed to.
	// It follows Page0Base unless set with WithActiveBase.
	ActiveBase uint32

	activeBaseSet bool

	// EndAddress is the inclusive end address of the logical store;
	// the capacity is EndAddress+1
	EndAddress int

	// EraseByte fills the mirror when the reserved pages are blank
	EraseByte byte

	// LegacyFinishStatus makes Finish log a failed commit and return nil,
	// like firmware that cannot tell a failed commit from a good one.
	// Default is false: Finish returns a *CommitError.
	LegacyFinishStatus bool
}

// defaultConfig returns the default configuration.
func defaultConfig() Config {
	return Config{
		Page0Base:  flash.DefaultPage0Base,
		Page1Base:  flash.DefaultPage1Base,
		PageSize:   flash.DefaultPageSize,
		ActiveBase: flash.DefaultPage0Base,
		EndAddress: DefaultEndAddress,
		EraseByte:  flash.ErasedByte,
	}
}

// Capacity returns the usable store size in bytes.
func (c Config) Capacity() int {
	return c.EndAddress + 1
}

// Option is a functional option for configuring the Store.
type Option func(*Config)

// WithLogger sets a logger for store operations.
//
// Example:
//
//	store, _ := eeprom.New(drv, eeprom.WithLogger(slog.Default()))
func WithLogger(logger Logger) Option {
	return func(c *Config) {
		c.Logger = logger
	}
}

// WithCommitCallback sets a callback to track commit progress.
func WithCommitCallback(callback CommitCallback) Option {
	return func(c *Config) {
		c.CommitCallback = callback
	}
}

// WithPages sets the two reserved pages. The first page becomes the active
// base address unless WithActiveBase is given, in any order.
//
// Example:
//
//	store, _ := eeprom.New(drv, eeprom.WithPages(0x0801F800, 0x0801FC00, 0x400))
func WithPages(page0, page1 uint32, pageSize int) Option {
	return func(c *Config) {
		if pageSize > 0 {
			c.Page0Base = page0
			c.Page1Base = page1
			c.PageSize = pageSize
			if !c.activeBaseSet {
				c.ActiveBase = page0
			}
		}
	}
}

// WithGeometry reserves the first two pages of geom.
func WithGeometry(geom flash.Geometry) Option {
	return func(c *Config) {
		if geom.PageCount >= 2 {
			WithPages(geom.PageBase(0), geom.PageBase(1), geom.PageSize)(c)
		}
	}
}

// WithActiveBase sets the address the mirror is loaded from and committed to.
// WithPages and WithGeometry do not override it.
func WithActiveBase(addr uint32) Option {
	return func(c *Config) {
		c.ActiveBase = addr
		c.activeBaseSet = true
	}
}

// WithEndAddress sets the inclusive end address of the store.
//
// Example:
//
//	store, _ := eeprom.New(drv, eeprom.WithEndAddress(0x7FF)) // 2 KiB
func WithEndAddress(end int) Option {
	return func(c *Config) {
		if end >= 0 {
			c.EndAddress = end
		}
	}
}

// WithCapacity sets the store size in bytes.
func WithCapacity(size int) Option {
	return func(c *Config) {
		if size > 0 {
			c.EndAddress = size - 1
		}
	}
}

// WithEraseByte sets the value used to fill the mirror of a blank store.
// Default is 0xFF.
func WithEraseByte(b byte) Option {
	return func(c *Config) {
		c.EraseByte = b
	}
}

// WithLegacyFinishStatus makes Finish report success even when the commit
// failed. The failure is still logged. The session is closed but Dirty keeps
// reporting true, so callers can still tell the mirror was never committed.
func WithLegacyFinishStatus(legacy bool) Option {
	return func(c *Config) {
		c.LegacyFinishStatus = legacy
	}
}
