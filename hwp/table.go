package hwp

import (
	"encoding/binary"
	"strings"
)

// tableCtrlID is the four-character control identifier for tables. Control
// IDs are stored byte-reversed in the control header payload.
var tableCtrlID = []byte{' ', 'l', 'b', 't'}

func isTableCtrl(payload []byte) bool {
	return len(payload) >= 4 && string(payload[:4]) == string(tableCtrlID)
}

// tableBuilder assembles one table from the records nested under its
// control header: the table definition supplies the grid dimensions, each
// list header opens the next cell, and paragraph text below it fills the
// cell. Cells arrive in row-major order; a short cell run leaves the
// trailing cells empty rather than failing the table.
type tableBuilder struct {
	ctrlLevel int
	rows      int
	cols      int
	cells     []string
	cur       *paragraphAssembler
	defined   bool
}

func newTableBuilder(ctrlLevel int) *tableBuilder {
	return &tableBuilder{ctrlLevel: ctrlLevel}
}

// consume routes one record nested under the table control.
func (b *tableBuilder) consume(rec Record) {
	switch rec.Tag {
	case TagTable:
		if rec.Level == b.ctrlLevel+1 && len(rec.Data) >= 8 {
			b.rows = int(binary.LittleEndian.Uint16(rec.Data[4:]))
			b.cols = int(binary.LittleEndian.Uint16(rec.Data[6:]))
			b.defined = true
		}
	case TagListHeader:
		if rec.Level == b.ctrlLevel+1 {
			b.closeCell()
			b.cur = &paragraphAssembler{}
		}
	case TagParaHeader:
		if b.cur != nil {
			b.cur.flush()
		}
	case TagParaText:
		if b.cur != nil {
			b.cur.writeUnits(rec.Data)
		}
	}
}

func (b *tableBuilder) closeCell() {
	if b.cur == nil {
		return
	}
	b.cur.flush()
	b.cells = append(b.cells, strings.Join(b.cur.paras, "\n"))
	b.cur = nil
}

// finish returns the assembled grid, or nil when no usable table definition
// arrived before the control ended.
func (b *tableBuilder) finish() [][]string {
	b.closeCell()
	if !b.defined || b.rows <= 0 || b.cols <= 0 {
		return nil
	}

	grid := make([][]string, b.rows)
	for r := range grid {
		grid[r] = make([]string, b.cols)
	}
	for i, cell := range b.cells {
		if i >= b.rows*b.cols {
			break
		}
		grid[i/b.cols][i%b.cols] = cell
	}
	return grid
}
