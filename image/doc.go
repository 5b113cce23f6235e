// Package image reads and writes text dumps of an emulated EEPROM.
//
// # Dump Format
//
// A dump is a header line followed by record lines, all hex-encoded.
//
// Header Format (14 hex characters):
//
//	[Capacity(8)][EraseByte(2)][CRC16(4)]
//
// Capacity and CRC16 are big-endian. CRC16 covers the whole store contents
// and is computed with checksum.Update starting from zero.
//
// Example header:
//
//	00000200FF8261
//	  00000200 = Capacity (512 bytes)
//	  FF = Erase byte
//	  8261 = CRC16 of the 512 bytes
//
// Record Format (variable length):
//
//	[Offset(4)][DataLen(4)][Data(variable)][Checksum(2)]
//
// Offset and DataLen are little-endian. Checksum is the 8-bit two's
// complement of the sum of all preceding record bytes.
//
// Example record:
//
//	0000040001020304F2
//	  0000 = Offset
//	  0400 = Data Length (4 bytes)
//	  01020304 = Data
//	  F2 = Checksum
//
// Ranges that hold only the erase byte are not written; Bytes fills them back in.
//
// # Usage
//
//	var buf bytes.Buffer
//	err := image.Encode(&buf, store.Mirror(), 0xFF, image.DefaultRecordSize)
//
//	img, err := image.ParseReader(&buf)
//	data, err := img.Bytes()
package image
