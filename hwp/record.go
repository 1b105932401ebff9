package hwp

import (
	"encoding/binary"
	"time"
)

// Record tags for the body-text streams. Document-data tags start at 0x10;
// the section tags the decoder acts on are listed here.
const (
	TagParaHeader    = 0x42
	TagParaText      = 0x43
	TagParaCharShape = 0x44
	TagParaLineSeg   = 0x45
	TagCtrlHeader    = 0x47
	TagListHeader    = 0x48
	TagPageDef       = 0x49
	TagFootnoteShape = 0x4A
	TagTable         = 0x4D
	TagEqEdit        = 0x58
	TagMemoList      = 0x5C
)

// tagBegin is the first document-data tag; anything below it in a body
// stream is structurally implausible.
const tagBegin = 0x10

// extendedSize is the sentinel in the 12-bit size field meaning the true
// payload size follows as a separate uint32.
const extendedSize = 0xFFF

// Record is one tagged unit of a body stream. Data is a view into the
// scanned buffer, valid as long as the buffer is; callers that retain text
// must copy it out (decoding to string does).
type Record struct {
	Tag   uint16
	Level int
	Data  []byte
}

// Limits bounds a record scan over pathological inputs. The zero value
// means unlimited. Exceeding either limit ends the sequence early, exactly
// like a truncated buffer.
type Limits struct {
	MaxRecords int
	Deadline   time.Time
}

// RecordScanner is a forward-only cursor over the records of one
// decompressed body stream. It follows the bufio.Scanner shape:
//
//	sc := hwp.NewRecordScanner(buf, hwp.Limits{})
//	for sc.Scan() {
//	    rec := sc.Record()
//	    ...
//	}
//
// There is no Err method because a malformed record is not an error here:
// the header declares a payload that runs past the buffer, the scan simply
// stops. A scanner is not restartable; decode the buffer again with a fresh
// one.
type RecordScanner struct {
	buf    []byte
	off    int
	rec    Record
	count  int
	limits Limits
}

// NewRecordScanner returns a scanner positioned before the first record.
func NewRecordScanner(buf []byte, limits Limits) *RecordScanner {
	return &RecordScanner{buf: buf, limits: limits}
}

// Scan advances to the next record. It returns false at the end of the
// buffer, at the first record whose declared size overruns the buffer, or
// once a limit is exceeded.
func (s *RecordScanner) Scan() bool {
	if s.limits.MaxRecords > 0 && s.count >= s.limits.MaxRecords {
		return false
	}
	if !s.limits.Deadline.IsZero() && time.Now().After(s.limits.Deadline) {
		return false
	}
	if s.off+4 > len(s.buf) {
		return false
	}

	head := binary.LittleEndian.Uint32(s.buf[s.off:])
	tag := uint16(head & 0x3FF)
	level := int(head >> 10 & 0x3FF)
	size := int(head >> 20 & 0xFFF)
	s.off += 4

	if size == extendedSize {
		if s.off+4 > len(s.buf) {
			return false
		}
		size = int(binary.LittleEndian.Uint32(s.buf[s.off:]))
		s.off += 4
	}

	if size < 0 || size > len(s.buf)-s.off {
		return false
	}

	s.rec = Record{Tag: tag, Level: level, Data: s.buf[s.off : s.off+size]}
	s.off += size
	s.count++
	return true
}

// Record returns the record produced by the last successful Scan.
func (s *RecordScanner) Record() Record {
	return s.rec
}
