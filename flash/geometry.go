package flash

// Geometry describes a contiguous run of equally sized flash pages.
type Geometry struct {
	// Base is the address of the first page
	Base uint32

	// PageSize is the size of one page in bytes
	PageSize int

	// PageCount is the number of pages
	PageCount int
}

// DefaultGeometry returns the two reserved 2 KiB pages at the top of a 512 KiB part.
func DefaultGeometry() Geometry {
	return Geometry{
		Base:      DefaultPage0Base,
		PageSize:  DefaultPageSize,
		PageCount: DefaultPageCount,
	}
}

// Size returns the total size in bytes.
func (g Geometry) Size() int {
	return g.PageSize * g.PageCount
}

// End returns the first address past the last page.
func (g Geometry) End() uint32 {
	return g.Base + uint32(g.Size())
}

// PageBase returns the base address of page i.
func (g Geometry) PageBase(i int) uint32 {
	return g.Base + uint32(i*g.PageSize)
}

// Contains reports whether [addr, addr+n) lies inside the geometry.
func (g Geometry) Contains(addr int64, n int) bool {
	if n < 0 || addr < int64(g.Base) {
		return false
	}
	return addr+int64(n) <= int64(g.End())
}

// IsPageAligned reports whether addr is the base address of one of the pages.
func (g Geometry) IsPageAligned(addr uint32) bool {
	if addr < g.Base || addr >= g.End() || g.PageSize <= 0 {
		return false
	}
	return (addr-g.Base)%uint32(g.PageSize) == 0
}

// Valid reports whether the geometry describes at least one non-empty page
// with an even page size.
func (g Geometry) Valid() bool {
	return g.PageSize > 0 && g.PageSize%4 == 0 && g.PageCount > 0
}
