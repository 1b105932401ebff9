package cfb

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
)

// signature is the 8-byte magic that opens every compound file.
var signature = []byte{0xD0, 0xCF, 0x11, 0xE0, 0xA1, 0xB1, 0x1A, 0xE1}

var (
	// ErrFormat is returned when the input is not a structurally valid
	// compound file: wrong signature, impossible sector geometry, or
	// allocation structures that point outside the file.
	ErrFormat = errors.New("cfb: not a valid compound file")

	// ErrStreamNotFound is returned by Stream when no directory entry
	// matches the requested path.
	ErrStreamNotFound = errors.New("cfb: stream not found")
)

// Special sector values used in FAT, mini FAT and DIFAT chains.
const (
	secDIFAT      = 0xFFFFFFFC
	secFAT        = 0xFFFFFFFD
	secEndOfChain = 0xFFFFFFFE
	secFree       = 0xFFFFFFFF
)

const (
	headerSize    = 512
	difatInHeader = 109
	dirEntrySize  = 128
)

// Container is a validated, read-only view over one compound file. It owns
// the raw byte buffer for its lifetime and resolves named streams on demand.
type Container struct {
	data []byte

	sectorSize     int
	miniSectorSize int
	miniCutoff     uint32

	fat     []uint32
	miniFAT []uint32

	entries []DirEntry
	byPath  map[string]int

	// miniStream is the root entry's stream, which backs all mini sectors.
	miniStream []byte
}

// Open parses and validates a compound file held entirely in memory.
// The returned Container keeps a reference to data; the caller must not
// mutate it while the Container is in use.
//
// Open fails with an error wrapping [ErrFormat] when the signature does not
// match or when the allocation table or directory is structurally
// inconsistent (for example, a sector index out of range).
func Open(data []byte) (*Container, error) {
	if len(data) < headerSize {
		return nil, fmt.Errorf("%w: %d bytes is smaller than the header", ErrFormat, len(data))
	}
	if !bytes.Equal(data[:8], signature) {
		return nil, fmt.Errorf("%w: bad signature", ErrFormat)
	}

	sectorShift := binary.LittleEndian.Uint16(data[30:32])
	miniShift := binary.LittleEndian.Uint16(data[32:34])
	if sectorShift < 7 || sectorShift > 15 || miniShift >= sectorShift {
		return nil, fmt.Errorf("%w: sector shift %d/%d", ErrFormat, sectorShift, miniShift)
	}

	c := &Container{
		data:           data,
		sectorSize:     1 << sectorShift,
		miniSectorSize: 1 << miniShift,
		miniCutoff:     binary.LittleEndian.Uint32(data[56:60]),
		byPath:         make(map[string]int),
	}

	numFAT := binary.LittleEndian.Uint32(data[44:48])
	firstDir := binary.LittleEndian.Uint32(data[48:52])
	firstMiniFAT := binary.LittleEndian.Uint32(data[60:64])
	numMiniFAT := binary.LittleEndian.Uint32(data[64:68])
	firstDIFAT := binary.LittleEndian.Uint32(data[68:72])
	numDIFAT := binary.LittleEndian.Uint32(data[72:76])

	if err := c.loadFAT(numFAT, firstDIFAT, numDIFAT); err != nil {
		return nil, err
	}
	if err := c.loadDirectory(firstDir); err != nil {
		return nil, err
	}
	if err := c.loadMiniFAT(firstMiniFAT, numMiniFAT); err != nil {
		return nil, err
	}

	// The mini stream is the root entry's data, read through the main FAT.
	if len(c.entries) > 0 {
		root := c.entries[0]
		c.miniStream = c.readChain(root.start, root.Size)
	}

	return c, nil
}

// sectorCount is the number of whole sectors present after the header.
func (c *Container) sectorCount() uint32 {
	return uint32((len(c.data) - headerSize) / c.sectorSize)
}

// sector returns the bytes of one sector, or nil when the index is out of
// range or a special value.
func (c *Container) sector(index uint32) []byte {
	if index >= c.sectorCount() {
		return nil
	}
	off := headerSize + int(index)*c.sectorSize
	return c.data[off : off+c.sectorSize]
}

// readChain collects a stream of up to size bytes by following a FAT chain.
// Damaged chains (out-of-range links, cycles, premature free sectors) yield
// the bytes gathered so far; the decoders downstream tolerate truncation.
func (c *Container) readChain(start uint32, size uint64) []byte {
	out := make([]byte, 0, size)
	sect := start
	for steps := uint32(0); sect != secEndOfChain && steps <= c.sectorCount(); steps++ {
		buf := c.sector(sect)
		if buf == nil {
			break
		}
		remain := size - uint64(len(out))
		if remain == 0 {
			break
		}
		if uint64(len(buf)) > remain {
			buf = buf[:remain]
		}
		out = append(out, buf...)
		if sect >= uint32(len(c.fat)) {
			break
		}
		sect = c.fat[sect]
	}
	return out
}

// readMiniChain collects a small stream by following a mini FAT chain
// through the root entry's mini stream.
func (c *Container) readMiniChain(start uint32, size uint64) []byte {
	out := make([]byte, 0, size)
	sect := start
	limit := uint32(len(c.miniFAT)) + 1
	for steps := uint32(0); sect != secEndOfChain && steps <= limit; steps++ {
		off := int(sect) * c.miniSectorSize
		if off >= len(c.miniStream) {
			break
		}
		end := off + c.miniSectorSize
		if end > len(c.miniStream) {
			end = len(c.miniStream)
		}
		buf := c.miniStream[off:end]
		remain := size - uint64(len(out))
		if remain == 0 {
			break
		}
		if uint64(len(buf)) > remain {
			buf = buf[:remain]
		}
		out = append(out, buf...)
		if sect >= uint32(len(c.miniFAT)) {
			break
		}
		sect = c.miniFAT[sect]
	}
	return out
}
