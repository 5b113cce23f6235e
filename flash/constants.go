package flash

// Erased cell values. Flash erases to all ones.
const (
	// ErasedByte is the value of every byte of an erased page
	ErasedByte = 0xFF

	// ErasedHalfWord is the page status marker of an erased page
	ErasedHalfWord = 0xFFFF

	// ErasedWord is the value of every 4-byte word of an erased page
	ErasedWord = 0xFFFFFFFF
)

// Default geometry: the last two 2 KiB pages of a 512 KiB STM32F1 high-density part.
const (
	// DefaultPageSize is the erase granularity in bytes
	DefaultPageSize = 0x800

	// DefaultPage0Base is the base address of the first reserved page
	DefaultPage0Base = 0x0807F000

	// DefaultPage1Base is the base address of the second reserved page
	DefaultPage1Base = DefaultPage0Base + DefaultPageSize

	// DefaultPageCount is the number of reserved pages
	DefaultPageCount = 2
)

// HalfWordSize is the program granularity in bytes.
const HalfWordSize = 2
