package eeprom

import "github.com/moffa90/go-flashee/checksum"

// WriteData copies size bytes from value into the mirror at *pos, marks the
// store dirty, folds the written bytes into crc and advances *pos by size.
// crc may be nil.
//
// Out-of-range positions return an *OutOfRangeError and leave the mirror,
// *pos and crc untouched.
//
// Example:
//
//	pos := 0
//	var crc checksum.CRC16
//	err := store.WriteData(&pos, []byte{1, 2, 3, 4}, 4, &crc)
func (s *Store) WriteData(pos *int, value []byte, size int, crc checksum.Folder) error {
	if err := s.checkAccess(*pos, size); err != nil {
		return err
	}
	if len(value) < size {
		return ErrShortBuffer
	}

	written := value[:size]
	copy(s.mirror[*pos:], written)
	s.dirty = true
	if crc != nil {
		crc.Fold(written)
	}
	*pos += size
	return nil
}

// ReadData folds size bytes of the mirror at *pos into crc and advances *pos
// by size. When transfer is true the bytes are first copied into value; when
// false value is not touched (it may be nil), which verifies previously
// loaded data without copying it. crc may be nil.
//
// Errors leave *pos, value and crc untouched.
func (s *Store) ReadData(pos *int, value []byte, size int, crc checksum.Folder, transfer bool) error {
	if err := s.checkAccess(*pos, size); err != nil {
		return err
	}
	if transfer && len(value) < size {
		return ErrShortBuffer
	}

	region := s.mirror[*pos : *pos+size]
	if transfer {
		copy(value, region)
		region = value[:size]
	}
	if crc != nil {
		crc.Fold(region)
	}
	*pos += size
	return nil
}

func (s *Store) checkAccess(pos, size int) error {
	if !s.open {
		return ErrSessionClosed
	}
	if pos < 0 || size < 0 || pos > len(s.mirror)-size {
		return &OutOfRangeError{Pos: pos, Size: size, Capacity: len(s.mirror)}
	}
	return nil
}
