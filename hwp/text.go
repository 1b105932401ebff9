package hwp

import (
	"encoding/binary"
	"strings"
	"unicode/utf16"
)

// controlClass describes one of the 32 control code points that can appear
// in paragraph text: how many code units it occupies and what it renders as.
type controlClass struct {
	Units int  // total code units to consume, including the control itself
	Emit  rune // rendered character, 0 to drop
	Break bool // ends the current paragraph
}

// controlTable is the skip table for inline controls. One-unit character
// controls carry no payload; inline and extended controls occupy eight code
// units (the control char, six units of data, the control char again).
var controlTable = [32]controlClass{
	0x00: {Units: 1},
	0x01: {Units: 8},
	0x02: {Units: 8},
	0x03: {Units: 8},
	0x04: {Units: 8},
	0x05: {Units: 8},
	0x06: {Units: 8},
	0x07: {Units: 8},
	0x08: {Units: 8},
	0x09: {Units: 8, Emit: '\t'},
	0x0A: {Units: 1, Emit: '\n'},
	0x0B: {Units: 8}, // object anchor; the control header that follows carries the object
	0x0C: {Units: 8},
	0x0D: {Units: 1, Break: true},
	0x0E: {Units: 8},
	0x0F: {Units: 8},
	0x10: {Units: 8},
	0x11: {Units: 8},
	0x12: {Units: 8},
	0x13: {Units: 8},
	0x14: {Units: 8},
	0x15: {Units: 8},
	0x16: {Units: 8},
	0x17: {Units: 8},
	0x18: {Units: 1},
	0x19: {Units: 1},
	0x1A: {Units: 1},
	0x1B: {Units: 1},
	0x1C: {Units: 1},
	0x1D: {Units: 1},
	0x1E: {Units: 1},
	0x1F: {Units: 1},
}

// paragraphAssembler accumulates code units of the paragraph being decoded
// and flushes completed paragraphs. Decoding to runes happens once per
// paragraph so surrogate pairs split across records survive.
type paragraphAssembler struct {
	paras   []string
	pending []uint16
}

// writeUnits decodes one paragraph-text payload, applying the control skip
// table. An odd trailing byte is dropped.
func (a *paragraphAssembler) writeUnits(payload []byte) {
	n := len(payload) / 2
	for i := 0; i < n; {
		u := binary.LittleEndian.Uint16(payload[i*2:])
		switch {
		case u < 0x20:
			c := controlTable[u]
			if c.Break {
				a.flush()
			} else if c.Emit != 0 {
				a.pending = append(a.pending, uint16(c.Emit))
			}
			if c.Units < 1 {
				i++
			} else {
				i += c.Units
			}
		case u == 0xFFFE || u == 0xFFFF:
			i++
		default:
			a.pending = append(a.pending, u)
			i++
		}
	}
}

// flush completes the current paragraph. Whitespace-only paragraphs are
// dropped; they carry layout, not content.
func (a *paragraphAssembler) flush() {
	if len(a.pending) == 0 {
		return
	}
	s := strings.TrimSpace(string(utf16.Decode(a.pending)))
	a.pending = a.pending[:0]
	if s != "" {
		a.paras = append(a.paras, s)
	}
}

// decodeSection walks one decompressed body section and assembles its
// paragraphs, and, when withTables is set, its tables. Records nested under
// an open table control feed the table's cells instead of the body flow, so
// cell text is never duplicated into the paragraph stream.
func decodeSection(buf []byte, limits Limits, withTables bool) ([]string, [][][]string) {
	sc := NewRecordScanner(buf, limits)
	asm := &paragraphAssembler{}

	var tables [][][]string
	var tb *tableBuilder

	for sc.Scan() {
		rec := sc.Record()

		if tb != nil {
			if rec.Level > tb.ctrlLevel {
				tb.consume(rec)
				continue
			}
			if grid := tb.finish(); grid != nil {
				tables = append(tables, grid)
			}
			tb = nil
		}

		switch rec.Tag {
		case TagParaHeader:
			asm.flush()
		case TagParaText:
			asm.writeUnits(rec.Data)
		case TagCtrlHeader:
			if withTables && isTableCtrl(rec.Data) {
				tb = newTableBuilder(rec.Level)
			}
		}
	}

	if tb != nil {
		if grid := tb.finish(); grid != nil {
			tables = append(tables, grid)
		}
	}
	asm.flush()
	return asm.paras, tables
}
