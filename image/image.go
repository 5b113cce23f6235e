package image

import (
	"bytes"
	"encoding/binary"
	"encoding/hex"
	"fmt"
	"io"
	"strings"

	"github.com/moffa90/go-flashee/checksum"
)

// Image is a parsed or encoded store dump.
type Image struct {
	// Capacity is the store size in bytes
	Capacity uint32

	// EraseByte is the value of bytes not covered by a record
	EraseByte byte

	// CRC is the CRC16 of the full store contents
	CRC uint16

	// Records holds the non-blank ranges in ascending offset order
	Records []*Record
}

// Record is one line of store data.
type Record struct {
	// Offset is the store offset of the first byte
	Offset uint16

	// Data is the record payload
	Data []byte

	// Checksum is the record checksum
	Checksum byte
}

// FromBytes splits data into records of at most recordSize bytes, dropping
// records that only hold eraseByte.
func FromBytes(data []byte, eraseByte byte, recordSize int) (*Image, error) {
	if len(data) > MaxCapacity {
		return nil, fmt.Errorf("store of %d bytes exceeds the %d byte dump limit", len(data), MaxCapacity)
	}
	if recordSize <= 0 || recordSize > MaxRecordSize {
		return nil, fmt.Errorf("record size %d must be between 1 and %d", recordSize, MaxRecordSize)
	}

	img := &Image{
		Capacity:  uint32(len(data)),
		EraseByte: eraseByte,
		CRC:       checksum.Update(0, data),
	}

	for off := 0; off < len(data); off += recordSize {
		end := min(off+recordSize, len(data))
		chunk := data[off:end]
		if isBlank(chunk, eraseByte) {
			continue
		}

		rec := &Record{
			Offset: uint16(off),
			Data:   make([]byte, len(chunk)),
		}
		copy(rec.Data, chunk)
		rec.Checksum = checksum.Sum8(append(rec.header(), rec.Data...))
		img.Records = append(img.Records, rec)
	}

	return img, nil
}

// Encode writes data as a dump to w.
func Encode(w io.Writer, data []byte, eraseByte byte, recordSize int) error {
	img, err := FromBytes(data, eraseByte, recordSize)
	if err != nil {
		return err
	}
	_, err = img.WriteTo(w)
	return err
}

// WriteTo writes the dump text to w.
func (img *Image) WriteTo(w io.Writer) (int64, error) {
	var buf bytes.Buffer

	header := make([]byte, HeaderSize)
	binary.BigEndian.PutUint32(header[0:4], img.Capacity)
	header[4] = img.EraseByte
	binary.BigEndian.PutUint16(header[5:7], img.CRC)
	writeHexLine(&buf, header)

	for _, rec := range img.Records {
		line := append(rec.header(), rec.Data...)
		line = append(line, rec.Checksum)
		writeHexLine(&buf, line)
	}

	return buf.WriteTo(w)
}

// Bytes assembles the store contents and verifies the CRC.
func (img *Image) Bytes() ([]byte, error) {
	data := make([]byte, img.Capacity)
	for i := range data {
		data[i] = img.EraseByte
	}

	for _, rec := range img.Records {
		end := int(rec.Offset) + len(rec.Data)
		if end > len(data) {
			return nil, fmt.Errorf("record at offset %d (len %d) exceeds capacity %d",
				rec.Offset, len(rec.Data), img.Capacity)
		}
		copy(data[rec.Offset:], rec.Data)
	}

	if crc := checksum.Update(0, data); crc != img.CRC {
		return nil, fmt.Errorf("content CRC mismatch: got 0x%04X, expected 0x%04X", crc, img.CRC)
	}
	return data, nil
}

func (r *Record) header() []byte {
	h := make([]byte, RecordHeaderSize, RecordHeaderSize+len(r.Data)+RecordChecksumSize)
	binary.LittleEndian.PutUint16(h[0:2], r.Offset)
	binary.LittleEndian.PutUint16(h[2:4], uint16(len(r.Data)))
	return h
}

func writeHexLine(buf *bytes.Buffer, data []byte) {
	buf.WriteString(strings.ToUpper(hex.EncodeToString(data)))
	buf.WriteByte('\n')
}

func isBlank(p []byte, b byte) bool {
	for _, c := range p {
		if c != b {
			return false
		}
	}
	return true
}
