//go:build unix

package flash

import (
	"errors"
	"fmt"
	"os"

	"golang.org/x/sys/unix"
)

// OpenMapped maps the flash image file at path read/write into memory.
// The file is created or extended to the geometry size; bytes that did not
// exist before are erased. Writes reach the file on Sync and Close.
func OpenMapped(path string, geom Geometry) (*Memory, error) {
	if !geom.Valid() {
		return nil, fmt.Errorf("invalid flash geometry: %+v", geom)
	}

	f, err := os.OpenFile(path, os.O_RDWR|os.O_CREATE, 0o644)
	if err != nil {
		return nil, fmt.Errorf("open image: %w", err)
	}
	defer f.Close() // the mapping keeps the pages alive

	info, err := f.Stat()
	if err != nil {
		return nil, fmt.Errorf("stat image: %w", err)
	}
	size := int64(geom.Size())
	existing := info.Size()
	if existing > size {
		return nil, fmt.Errorf("image %s is %d bytes, flash is %d bytes", path, existing, size)
	}
	if existing < size {
		if err := f.Truncate(size); err != nil {
			return nil, fmt.Errorf("extend image: %w", err)
		}
	}

	data, err := unix.Mmap(int(f.Fd()), 0, int(size), unix.PROT_READ|unix.PROT_WRITE, unix.MAP_SHARED)
	if err != nil {
		return nil, fmt.Errorf("mmap image: %w", err)
	}
	fill(data[existing:], ErasedByte)

	m := newMemory(geom, data)
	m.sync = func() error {
		return unix.Msync(data, unix.MS_SYNC)
	}
	m.close = func() error {
		syncErr := unix.Msync(data, unix.MS_SYNC)
		err := unix.Munmap(data)
		if errors.Is(err, unix.EINVAL) {
			err = nil
		}
		return errors.Join(syncErr, err)
	}
	return m, nil
}
