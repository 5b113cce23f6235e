package flash

// Driver is the low-level flash controller used by the EEPROM emulation layer.
//
// Implementations are expected to be synchronous: ErasePage and ProgramHalfWord
// return once the controller reports completion or an error.
type Driver interface {
	// Unlock removes write protection from the flash controller
	Unlock()

	// Lock restores write protection
	Lock()

	// ErasePage erases the page starting at addr
	ErasePage(addr uint32) Status

	// ProgramHalfWord programs a 16-bit value at the even address addr
	ProgramHalfWord(addr uint32, value uint16) Status

	// ReadAt reads len(p) bytes starting at the absolute flash address addr
	ReadAt(p []byte, addr int64) (int, error)
}
