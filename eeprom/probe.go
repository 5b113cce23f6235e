package eeprom

import (
	"encoding/binary"
	"fmt"
	"io"

	"github.com/moffa90/go-flashee/flash"
)

// PageStatus is the result of probing a reserved page.
type PageStatus int

// Page probe results.
const (
	// PageOK means the page is blank emulation storage
	PageOK PageStatus = iota

	// PageBad means the page holds data (or garbage)
	PageBad
)

func (s PageStatus) String() string {
	if s == PageOK {
		return "blank"
	}
	return "in use"
}

// CheckPage reports whether the page of size bytes at base looks like blank
// emulation storage: the first half-word is the erased marker and every word
// from offset 4 to the end of the page is erased. Bytes 2 and 3 are not
// inspected.
func CheckPage(r io.ReaderAt, base uint32, size int) (PageStatus, error) {
	if size < 4 {
		return PageBad, fmt.Errorf("page size %d is too small to probe", size)
	}

	page := make([]byte, size)
	if _, err := r.ReadAt(page, int64(base)); err != nil {
		return PageBad, fmt.Errorf("read page 0x%08X: %w", base, err)
	}

	if binary.LittleEndian.Uint16(page) != flash.ErasedHalfWord {
		return PageBad, nil
	}
	for off := 4; off+4 <= size; off += 4 {
		if binary.LittleEndian.Uint32(page[off:]) != flash.ErasedWord {
			return PageBad, nil
		}
	}
	return PageOK, nil
}
