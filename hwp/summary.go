package hwp

import (
	"bytes"
	"encoding/binary"
	"strings"
	"time"
	"unicode/utf16"

	"golang.org/x/text/encoding/korean"

	"github.com/hanjilab/hanji/cfb"
)

// summaryStreamName is the property-set stream carrying document metadata.
// The leading \x05 byte is part of the name.
const summaryStreamName = "\x05HwpSummaryInformation"

// Property identifiers within the summary set.
const (
	propTitle    = 2
	propSubject  = 3
	propAuthor   = 4
	propKeywords = 5
	propCreated  = 12
	propModified = 13
)

// Property value types.
const (
	vtLPSTR    = 30
	vtLPWSTR   = 31
	vtFiletime = 64
)

// Metadata carries the optional document properties recovered from the
// summary-information stream. Absent fields stay zero; absence is never an
// error.
type Metadata struct {
	Title    string
	Subject  string
	Author   string
	Keywords string
	Created  time.Time
	Modified time.Time
}

// IsZero reports whether no property was recovered at all.
func (m Metadata) IsZero() bool {
	return m == Metadata{}
}

// readSummary pulls metadata out of the container's summary stream. A
// missing or undecodable stream yields zero metadata.
func readSummary(c *cfb.Container) Metadata {
	raw, err := c.Stream(summaryStreamName)
	if err != nil {
		return Metadata{}
	}
	return parseSummary(raw)
}

// parseSummary decodes a single-section property set. The layout is a
// byte-order mark and header, a section list (format id + offset), then per
// section a property count and (id, offset) pairs pointing at typed values.
// Anything structurally off is skipped property by property; partial
// metadata beats none.
func parseSummary(b []byte) Metadata {
	var m Metadata
	if len(b) < 48 || binary.LittleEndian.Uint16(b[0:2]) != 0xFFFE {
		return m
	}
	if binary.LittleEndian.Uint32(b[24:28]) < 1 {
		return m
	}

	section := int(binary.LittleEndian.Uint32(b[44:48]))
	if section < 0 || section+8 > len(b) {
		return m
	}
	count := int(binary.LittleEndian.Uint32(b[section+4 : section+8]))
	if count < 0 || count > 64 {
		return m
	}

	for i := 0; i < count; i++ {
		pair := section + 8 + i*8
		if pair+8 > len(b) {
			break
		}
		id := binary.LittleEndian.Uint32(b[pair : pair+4])
		off := section + int(binary.LittleEndian.Uint32(b[pair+4:pair+8]))
		if off < 0 || off+4 > len(b) {
			continue
		}

		switch id {
		case propTitle:
			m.Title = propString(b, off)
		case propSubject:
			m.Subject = propString(b, off)
		case propAuthor:
			m.Author = propString(b, off)
		case propKeywords:
			m.Keywords = propString(b, off)
		case propCreated:
			m.Created = propTime(b, off)
		case propModified:
			m.Modified = propTime(b, off)
		}
	}
	return m
}

// propString decodes a VT_LPWSTR or VT_LPSTR value at off. Narrow strings
// are assumed EUC-KR, which covers plain ASCII as well.
func propString(b []byte, off int) string {
	typ := binary.LittleEndian.Uint32(b[off : off+4])
	if off+8 > len(b) {
		return ""
	}
	n := int(binary.LittleEndian.Uint32(b[off+4 : off+8]))
	if n <= 0 {
		return ""
	}
	val := b[off+8:]

	switch typ {
	case vtLPWSTR:
		if n > len(val)/2 {
			n = len(val) / 2
		}
		units := make([]uint16, 0, n)
		for i := 0; i < n; i++ {
			u := binary.LittleEndian.Uint16(val[i*2:])
			if u == 0 {
				break
			}
			units = append(units, u)
		}
		return strings.TrimSpace(string(utf16.Decode(units)))
	case vtLPSTR:
		if n > len(val) {
			n = len(val)
		}
		raw := val[:n]
		if i := bytes.IndexByte(raw, 0); i >= 0 {
			raw = raw[:i]
		}
		decoded, err := korean.EUCKR.NewDecoder().Bytes(raw)
		if err != nil {
			return strings.TrimSpace(string(raw))
		}
		return strings.TrimSpace(string(decoded))
	}
	return ""
}

// filetimeEpochDelta is the 100-nanosecond span between the FILETIME epoch
// (1601-01-01) and the Unix epoch.
const filetimeEpochDelta = 116444736000000000

// propTime decodes a VT_FILETIME value at off.
func propTime(b []byte, off int) time.Time {
	if binary.LittleEndian.Uint32(b[off:off+4]) != vtFiletime || off+12 > len(b) {
		return time.Time{}
	}
	ft := binary.LittleEndian.Uint64(b[off+4 : off+12])
	if ft == 0 {
		return time.Time{}
	}
	return time.Unix(0, (int64(ft)-filetimeEpochDelta)*100).UTC()
}
