package eeprom

import "github.com/moffa90/go-flashee/checksum"

// Cursor walks the store sequentially, threading a CRC16 through every call.
// It is what a settings serializer keeps between its reads or writes.
//
// Example:
//
//	c := store.NewCursor(0)
//	_ = c.Write(version[:])
//	_ = c.Write(payload)
//	sum := c.CRC.Sum16()
type Cursor struct {
	store *Store

	// Pos is the next offset to access
	Pos int

	// CRC accumulates every byte read or written through the cursor
	CRC checksum.CRC16
}

// NewCursor returns a cursor positioned at pos with a zero checksum.
func (s *Store) NewCursor(pos int) *Cursor {
	return &Cursor{store: s, Pos: pos}
}

// Write writes p at the cursor position.
func (c *Cursor) Write(p []byte) error {
	return c.store.WriteData(&c.Pos, p, len(p), &c.CRC)
}

// Read fills p from the cursor position.
func (c *Cursor) Read(p []byte) error {
	return c.store.ReadData(&c.Pos, p, len(p), &c.CRC, true)
}

// Verify folds the next n bytes into the checksum without copying them out.
func (c *Cursor) Verify(n int) error {
	return c.store.ReadData(&c.Pos, nil, n, &c.CRC, false)
}

// Reset moves the cursor to pos and zeroes the checksum.
func (c *Cursor) Reset(pos int) {
	c.Pos = pos
	c.CRC.Reset()
}
