package flash

import (
	"errors"
	"fmt"
	"io/fs"

	"github.com/spf13/afero"
)

// LoadImage reads a flash image file into a new Memory.
// A missing file yields an erased device. A file shorter than the geometry is
// padded with ErasedByte; a longer one is rejected.
func LoadImage(fsys afero.Fs, path string, geom Geometry) (*Memory, error) {
	m := NewMemory(geom)

	data, err := afero.ReadFile(fsys, path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return m, nil
		}
		return nil, fmt.Errorf("read image: %w", err)
	}
	if err := m.Load(data); err != nil {
		return nil, fmt.Errorf("load image %s: %w", path, err)
	}
	return m, nil
}

// SaveImage writes the contents of m to path.
func SaveImage(fsys afero.Fs, path string, m *Memory) error {
	if err := afero.WriteFile(fsys, path, m.Bytes(), 0o644); err != nil {
		return fmt.Errorf("write image: %w", err)
	}
	return nil
}

// OpenImage loads the image at path and arranges for Sync and Close to write
// it back through fsys.
func OpenImage(fsys afero.Fs, path string, geom Geometry) (*Memory, error) {
	m, err := LoadImage(fsys, path, geom)
	if err != nil {
		return nil, err
	}
	m.sync = func() error { return SaveImage(fsys, path, m) }
	m.close = m.sync
	return m, nil
}
