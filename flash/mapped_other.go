//go:build !unix

package flash

import "github.com/spf13/afero"

// OpenMapped loads the image file at path into memory when mmap is not
// available. Sync and Close write the whole image back.
func OpenMapped(path string, geom Geometry) (*Memory, error) {
	return OpenImage(afero.NewOsFs(), path, geom)
}
