// Package checksum provides the running checksum folded through every EEPROM
// read and write.
//
// The settings serializer owns a CRC16 accumulator, passes it to each accessor
// call, and compares the final value with the one stored next to the data:
//
//	var crc checksum.CRC16
//	crc.Fold(header)
//	crc.Fold(payload)
//	if crc.Sum16() != stored {
//	    // settings are corrupt
//	}
package checksum

// CRC-16 algorithm constants.
const (
	// CRC16Polynomial is the CRC-16-CCITT polynomial (0x1021)
	CRC16Polynomial = 0x1021

	// CRC16HighBitMask is the high bit mask for CRC-16 calculations
	CRC16HighBitMask = 0x8000

	// BitsPerByte is the number of bits per byte
	BitsPerByte = 8
)

// Folder folds a byte range into a running checksum.
type Folder interface {
	Fold(p []byte)
}

// CRC16 is a caller-owned 16-bit CRC accumulator. The zero value is ready to use.
type CRC16 uint16

// Fold folds p into the accumulator.
func (c *CRC16) Fold(p []byte) {
	*c = CRC16(Update(uint16(*c), p))
}

// Sum16 returns the current value.
func (c CRC16) Sum16() uint16 {
	return uint16(c)
}

// Reset sets the accumulator back to zero.
func (c *CRC16) Reset() {
	*c = 0
}

// Update folds p into crc and returns the new value.
//
// Parameters:
//   - Polynomial: CRC16Polynomial, MSB first
//   - Initial value: supplied by the caller (the serializer starts at 0)
//   - No final XOR
//
// Folding is chunk-independent: Update(Update(c, a), b) == Update(c, a+b).
func Update(crc uint16, p []byte) uint16 {
	for _, b := range p {
		crc ^= uint16(b) << BitsPerByte
		for i := 0; i < BitsPerByte; i++ {
			if crc&CRC16HighBitMask != 0 {
				crc = (crc << 1) ^ CRC16Polynomial
			} else {
				crc <<= 1
			}
		}
	}
	return crc
}

// Sum8 returns the 8-bit two's complement of the byte sum of p.
// Adding Sum8(p) to the sum of p yields zero.
func Sum8(p []byte) byte {
	var sum byte
	for _, b := range p {
		sum += b
	}
	return ^sum + 1
}
