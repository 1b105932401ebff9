package hwptest

import (
	"bytes"
	"compress/flate"
	"encoding/binary"
	"time"
	"unicode/utf16"

	"golang.org/x/text/encoding/korean"
)

// Body-text record tags, mirroring the values the decoder keys on.
const (
	tagParaHeader = 0x42
	tagParaText   = 0x43
	tagCtrlHeader = 0x47
	tagListHeader = 0x48
	tagTable      = 0x4D
)

// Utf16LE encodes a string as little-endian UTF-16 without a BOM, the
// encoding of paragraph-text payloads and the PrvText stream.
func Utf16LE(s string) []byte {
	units := utf16.Encode([]rune(s))
	b := make([]byte, len(units)*2)
	for i, u := range units {
		binary.LittleEndian.PutUint16(b[i*2:], u)
	}
	return b
}

// EncodeEUCKR encodes a string as EUC-KR for preview-fallback fixtures.
func EncodeEUCKR(s string) []byte {
	out, err := korean.EUCKR.NewEncoder().Bytes([]byte(s))
	if err != nil {
		panic("hwptest: string not representable in EUC-KR: " + s)
	}
	return out
}

// Record encodes one tagged record: a 4-byte header holding tag, level and
// size, with the size spilled into a trailing uint32 when it does not fit
// the 12-bit field.
func Record(tag uint16, level int, payload []byte) []byte {
	head := uint32(tag)&0x3FF | uint32(level&0x3FF)<<10
	if len(payload) >= 0xFFF {
		b := make([]byte, 8+len(payload))
		binary.LittleEndian.PutUint32(b, head|0xFFF<<20)
		binary.LittleEndian.PutUint32(b[4:], uint32(len(payload)))
		copy(b[8:], payload)
		return b
	}
	b := make([]byte, 4+len(payload))
	binary.LittleEndian.PutUint32(b, head|uint32(len(payload))<<20)
	copy(b[4:], payload)
	return b
}

// ParagraphRecords emits a paragraph-header record at level followed by its
// text record one level deeper.
func ParagraphRecords(level int, text string) []byte {
	units := utf16.Encode([]rune(text))
	ph := make([]byte, 24)
	binary.LittleEndian.PutUint32(ph, uint32(len(units)))
	out := Record(tagParaHeader, level, ph)
	return append(out, Record(tagParaText, level+1, Utf16LE(text))...)
}

// SectionBytes builds an uncompressed body-text section holding the given
// paragraphs.
func SectionBytes(paragraphs ...string) []byte {
	var out []byte
	for _, p := range paragraphs {
		out = append(out, ParagraphRecords(0, p)...)
	}
	return out
}

// TableRecords builds the record run for one table: an anchor paragraph
// whose text carries the extended object control, the table control header,
// the table definition with row and column counts, and one list header plus
// paragraph per cell in row-major order.
func TableRecords(rows [][]string) []byte {
	cols := 0
	for _, r := range rows {
		if len(r) > cols {
			cols = len(r)
		}
	}

	ph := make([]byte, 24)
	binary.LittleEndian.PutUint32(ph, 8)
	out := Record(tagParaHeader, 0, ph)

	// Extended controls occupy eight code units with the control char
	// repeated at both ends.
	anchor := make([]byte, 16)
	binary.LittleEndian.PutUint16(anchor[0:], 0x0B)
	binary.LittleEndian.PutUint16(anchor[14:], 0x0B)
	out = append(out, Record(tagParaText, 1, anchor)...)

	ctrl := append([]byte(" lbt"), 0, 0, 0, 0)
	out = append(out, Record(tagCtrlHeader, 1, ctrl)...)

	tbl := make([]byte, 16)
	binary.LittleEndian.PutUint16(tbl[4:], uint16(len(rows)))
	binary.LittleEndian.PutUint16(tbl[6:], uint16(cols))
	out = append(out, Record(tagTable, 2, tbl)...)

	for _, row := range rows {
		for _, cell := range row {
			out = append(out, Record(tagListHeader, 2, make([]byte, 8))...)
			out = append(out, ParagraphRecords(3, cell)...)
		}
	}
	return out
}

// FileHeader builds a FileHeader stream for a version 5.0.3.0 document.
func FileHeader(compressed bool) []byte {
	var flags uint32
	if compressed {
		flags = 1
	}
	return FileHeaderFlags(flags)
}

// FileHeaderFlags builds a FileHeader stream with the exact property flags
// given (bit 0 compressed, bit 1 password, bit 2 distribution).
func FileHeaderFlags(flags uint32) []byte {
	b := make([]byte, 256)
	copy(b, "HWP Document File")
	binary.LittleEndian.PutUint32(b[32:], 0x05000300)
	binary.LittleEndian.PutUint32(b[36:], flags)
	return b
}

// DeflateRaw compresses data as a headerless deflate stream, the scheme
// compressed body sections use.
func DeflateRaw(data []byte) []byte {
	var buf bytes.Buffer
	w, err := flate.NewWriter(&buf, flate.BestSpeed)
	if err != nil {
		panic(err)
	}
	if _, err := w.Write(data); err != nil {
		panic(err)
	}
	if err := w.Close(); err != nil {
		panic(err)
	}
	return buf.Bytes()
}

// BuildDocument assembles a minimal compressed document: a FileHeader and a
// single body section holding the given paragraphs.
func BuildDocument(paragraphs ...string) []byte {
	return BuildContainer(map[string][]byte{
		"FileHeader":        FileHeader(true),
		"BodyText/Section0": DeflateRaw(SectionBytes(paragraphs...)),
	})
}

// SummaryProps holds the fields the summary-information builder can emit.
// Zero values are omitted from the property set.
type SummaryProps struct {
	Title    string
	Subject  string
	Author   string
	Keywords string
	Created  time.Time
	Modified time.Time
}

// summaryFMTID is the standard SummaryInformation format identifier,
// F29F85E0-4FF9-1068-AB91-08002B27B3D9, in its on-disk byte order.
var summaryFMTID = [16]byte{
	0xE0, 0x85, 0x9F, 0xF2, 0xF9, 0x4F, 0x68, 0x10,
	0xAB, 0x91, 0x08, 0x00, 0x2B, 0x27, 0xB3, 0xD9,
}

// SummaryStream serializes a single-section property set the way the
// \x05HwpSummaryInformation stream stores document metadata. Strings are
// written as VT_LPWSTR, times as VT_FILETIME.
func SummaryStream(p SummaryProps) []byte {
	type prop struct {
		id  uint32
		val []byte
	}
	var props []prop
	str := func(id uint32, s string) {
		if s != "" {
			props = append(props, prop{id, lpwstr(s)})
		}
	}
	ft := func(id uint32, t time.Time) {
		if !t.IsZero() {
			props = append(props, prop{id, filetime(t)})
		}
	}
	str(2, p.Title)
	str(3, p.Subject)
	str(4, p.Author)
	str(5, p.Keywords)
	ft(12, p.Created)
	ft(13, p.Modified)

	headerLen := 8 + 8*len(props)
	var body bytes.Buffer
	offsets := make([]uint32, len(props))
	for i, pr := range props {
		offsets[i] = uint32(headerLen + body.Len())
		body.Write(pr.val)
	}

	section := make([]byte, 8, headerLen+body.Len())
	binary.LittleEndian.PutUint32(section[0:], uint32(headerLen+body.Len()))
	binary.LittleEndian.PutUint32(section[4:], uint32(len(props)))
	for i, pr := range props {
		section = binary.LittleEndian.AppendUint32(section, pr.id)
		section = binary.LittleEndian.AppendUint32(section, offsets[i])
	}
	section = append(section, body.Bytes()...)

	out := make([]byte, 48)
	binary.LittleEndian.PutUint16(out[0:], 0xFFFE)
	binary.LittleEndian.PutUint32(out[24:], 1)
	copy(out[28:44], summaryFMTID[:])
	binary.LittleEndian.PutUint32(out[44:], 48)
	return append(out, section...)
}

// lpwstr encodes a VT_LPWSTR property value: type, character count including
// the terminator, then null-terminated UTF-16LE padded to four bytes.
func lpwstr(s string) []byte {
	units := utf16.Encode([]rune(s))
	b := make([]byte, 8+len(units)*2+2)
	binary.LittleEndian.PutUint32(b[0:], 31)
	binary.LittleEndian.PutUint32(b[4:], uint32(len(units)+1))
	for i, u := range units {
		binary.LittleEndian.PutUint16(b[8+i*2:], u)
	}
	return pad(b, 4)
}

// filetime encodes a VT_FILETIME property value in 100-nanosecond intervals
// since 1601-01-01.
func filetime(t time.Time) []byte {
	b := make([]byte, 12)
	binary.LittleEndian.PutUint32(b[0:], 64)
	ft := uint64(t.UTC().UnixNano()/100) + 116444736000000000
	binary.LittleEndian.PutUint64(b[4:], ft)
	return b
}
