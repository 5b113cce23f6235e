package flash

import (
	"encoding/binary"
	"fmt"
)

// Stats counts the driver calls a Memory has served.
type Stats struct {
	Unlocks  int
	Locks    int
	Erases   int
	Programs int
}

// Memory is a simulated page-erasable flash device.
//
// A new Memory is locked and fully erased. Half-words are little-endian, as on
// the Cortex-M3 parts it models. Memory is not safe for concurrent use.
type Memory struct {
	geom   Geometry
	data   []byte
	locked bool
	stats  Stats

	eraseFaults   map[uint32]Status
	programFailAt int
	programFault  Status

	sync  func() error
	close func() error
}

// NewMemory creates an erased, locked device with the given geometry.
func NewMemory(geom Geometry) *Memory {
	if !geom.Valid() {
		panic(fmt.Sprintf("invalid flash geometry: %+v", geom))
	}
	data := make([]byte, geom.Size())
	fill(data, ErasedByte)
	return newMemory(geom, data)
}

func newMemory(geom Geometry, data []byte) *Memory {
	return &Memory{
		geom:          geom,
		data:          data,
		locked:        true,
		eraseFaults:   make(map[uint32]Status),
		programFailAt: -1,
	}
}

// Geometry returns the device geometry.
func (m *Memory) Geometry() Geometry {
	return m.geom
}

// Unlock removes write protection.
func (m *Memory) Unlock() {
	m.stats.Unlocks++
	m.locked = false
}

// Lock restores write protection.
func (m *Memory) Lock() {
	m.stats.Locks++
	m.locked = true
}

// Locked reports whether the controller is write protected.
func (m *Memory) Locked() bool {
	return m.locked
}

// ErasePage sets every byte of the page at addr to ErasedByte.
func (m *Memory) ErasePage(addr uint32) Status {
	m.stats.Erases++

	if status, ok := m.eraseFaults[addr]; ok {
		return status
	}
	if m.locked {
		return StatusErrorWRP
	}
	if !m.geom.IsPageAligned(addr) {
		return StatusErrorPG
	}

	off := int(addr - m.geom.Base)
	fill(m.data[off:off+m.geom.PageSize], ErasedByte)
	return StatusComplete
}

// ProgramHalfWord programs value at the even address addr.
// The target half-word must be erased unless value is zero.
func (m *Memory) ProgramHalfWord(addr uint32, value uint16) Status {
	m.stats.Programs++

	if m.programFailAt >= 0 {
		if m.programFailAt == 0 {
			return m.programFault
		}
		m.programFailAt--
	}
	if m.locked {
		return StatusErrorWRP
	}
	if addr%HalfWordSize != 0 || !m.geom.Contains(int64(addr), HalfWordSize) {
		return StatusErrorPG
	}

	off := int(addr - m.geom.Base)
	current := binary.LittleEndian.Uint16(m.data[off:])
	if current != ErasedHalfWord && value != 0 {
		return StatusErrorPG
	}
	binary.LittleEndian.PutUint16(m.data[off:], value)
	return StatusComplete
}

// ReadAt reads len(p) bytes starting at the absolute address addr.
func (m *Memory) ReadAt(p []byte, addr int64) (int, error) {
	if !m.geom.Contains(addr, len(p)) {
		return 0, &AddressError{Addr: addr, Len: len(p), Min: m.geom.Base, Max: m.geom.End() - 1}
	}
	off := int(addr - int64(m.geom.Base))
	return copy(p, m.data[off:]), nil
}

// Stats returns the call counters.
func (m *Memory) Stats() Stats {
	return m.stats
}

// ResetStats zeroes the call counters.
func (m *Memory) ResetStats() {
	m.stats = Stats{}
}

// FailErase makes every erase of the page at addr report status.
func (m *Memory) FailErase(addr uint32, status Status) {
	m.eraseFaults[addr] = status
}

// FailProgramAfter lets n more half-word programs succeed, then makes every
// following program report status.
func (m *Memory) FailProgramAfter(n int, status Status) {
	m.programFailAt = n
	m.programFault = status
}

// ClearFaults removes all injected faults.
func (m *Memory) ClearFaults() {
	m.eraseFaults = make(map[uint32]Status)
	m.programFailAt = -1
}

// Bytes returns a copy of the device contents.
func (m *Memory) Bytes() []byte {
	out := make([]byte, len(m.data))
	copy(out, m.data)
	return out
}

// Load overwrites the device contents starting at the first page, bypassing
// the erase/program rules. It is meant for preparing fixtures.
func (m *Memory) Load(data []byte) error {
	if len(data) > len(m.data) {
		return fmt.Errorf("image of %d bytes does not fit in %d bytes of flash", len(data), len(m.data))
	}
	copy(m.data, data)
	return nil
}

// Sync flushes the contents to the backing store, if any.
func (m *Memory) Sync() error {
	if m.sync == nil {
		return nil
	}
	return m.sync()
}

// Close syncs and releases the backing store, if any.
func (m *Memory) Close() error {
	if m.close == nil {
		return nil
	}
	err := m.close()
	m.close = nil
	m.sync = nil
	return err
}

func fill(p []byte, b byte) {
	for i := range p {
		p[i] = b
	}
}
