package image

import (
	"bufio"
	"encoding/binary"
	"encoding/hex"
	"fmt"
	"io"

	"github.com/spf13/afero"

	"github.com/moffa90/go-flashee/checksum"
)

// Constants for dump parsing.
const (
	// HeaderSize is the size of the decoded header in bytes
	HeaderSize = 7

	// HeaderLength is the expected length of the header line in hex characters
	HeaderLength = HeaderSize * 2

	// RecordHeaderSize is the size of record metadata (offset + dataLen)
	RecordHeaderSize = 4

	// RecordChecksumSize is the size of the record checksum field
	RecordChecksumSize = 1

	// MinimumRecordLength is the minimum length for a record line in hex characters
	MinimumRecordLength = (RecordHeaderSize + RecordChecksumSize) * 2

	// DefaultRecordSize is the payload size Encode callers normally use
	DefaultRecordSize = 32

	// MaxRecordSize is the largest payload a record can carry
	MaxRecordSize = 0xFFFF

	// MaxCapacity is the largest store a dump can describe
	MaxCapacity = 0x10000
)

// ParseFile parses a dump file from fsys.
//
// Example:
//
//	img, err := image.ParseFile(afero.NewOsFs(), "settings.hex")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Printf("Capacity: %d\n", img.Capacity)
func ParseFile(fsys afero.Fs, path string) (*Image, error) {
	f, err := fsys.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer func() { _ = f.Close() }()

	return ParseReader(f)
}

// ParseReader parses a dump from any io.Reader.
func ParseReader(r io.Reader) (*Image, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 2*(RecordHeaderSize+MaxRecordSize+RecordChecksumSize)+1)

	if !scanner.Scan() {
		if err := scanner.Err(); err != nil {
			return nil, fmt.Errorf("failed to read header: %w", err)
		}
		return nil, fmt.Errorf("empty file")
	}

	img, err := parseHeader(scanner.Text())
	if err != nil {
		return nil, fmt.Errorf("failed to parse header: %w", err)
	}

	lineNum := 1
	next := 0
	for scanner.Scan() {
		lineNum++
		line := scanner.Text()

		if line == "" {
			continue
		}

		rec, err := parseRecord(line)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", lineNum, err)
		}
		if int(rec.Offset) < next {
			return nil, fmt.Errorf("line %d: record at offset %d overlaps the previous record", lineNum, rec.Offset)
		}
		next = int(rec.Offset) + len(rec.Data)
		if next > int(img.Capacity) {
			return nil, fmt.Errorf("line %d: record ends at %d, capacity is %d", lineNum, next, img.Capacity)
		}

		img.Records = append(img.Records, rec)
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}

	return img, nil
}

// parseHeader parses the dump header.
//
// Header format (14 hex characters):
//
//	[Capacity(4 bytes)][EraseByte(1 byte)][CRC16(2 bytes)]
func parseHeader(line string) (*Image, error) {
	if len(line) != HeaderLength {
		return nil, fmt.Errorf("invalid header length: got %d characters, expected %d", len(line), HeaderLength)
	}

	data, err := hex.DecodeString(line)
	if err != nil {
		return nil, fmt.Errorf("invalid hex data: %w", err)
	}

	img := &Image{
		Capacity:  binary.BigEndian.Uint32(data[0:4]),
		EraseByte: data[4],
		CRC:       binary.BigEndian.Uint16(data[5:7]),
	}

	if img.Capacity > MaxCapacity {
		return nil, fmt.Errorf("capacity %d exceeds the %d byte limit", img.Capacity, MaxCapacity)
	}

	return img, nil
}

// parseRecord parses a single record line.
//
// Record format:
//
//	[Offset(2 bytes)][DataLen(2 bytes)][Data(N bytes)][Checksum(1 byte)]
//
// Offset and DataLen are little-endian.
func parseRecord(line string) (*Record, error) {
	if len(line) < MinimumRecordLength {
		return nil, fmt.Errorf("record too short: got %d characters, minimum is %d", len(line), MinimumRecordLength)
	}

	data, err := hex.DecodeString(line)
	if err != nil {
		return nil, fmt.Errorf("invalid hex data: %w", err)
	}

	offset := binary.LittleEndian.Uint16(data[0:2])
	dataLen := binary.LittleEndian.Uint16(data[2:4])

	expectedLen := RecordHeaderSize + int(dataLen) + RecordChecksumSize
	if len(data) != expectedLen {
		return nil, fmt.Errorf("data length mismatch: got %d bytes, expected %d (header=%d + data=%d + checksum=%d)",
			len(data), expectedLen, RecordHeaderSize, dataLen, RecordChecksumSize)
	}

	sum := data[len(data)-1]
	if calculated := checksum.Sum8(data[:len(data)-1]); sum != calculated {
		return nil, fmt.Errorf("checksum mismatch: got 0x%02X, expected 0x%02X", sum, calculated)
	}

	rec := &Record{
		Offset:   offset,
		Data:     make([]byte, dataLen),
		Checksum: sum,
	}
	copy(rec.Data, data[RecordHeaderSize:RecordHeaderSize+int(dataLen)])

	return rec, nil
}
