package hwp

import (
	"reflect"
	"testing"

	"github.com/hanjilab/hanji/internal/hwptest"
)

func TestDecodeSectionTable(t *testing.T) {
	rows := [][]string{{"항목", "값"}, {"가", "10"}}
	section := hwptest.SectionBytes("표 앞 문단")
	section = append(section, hwptest.TableRecords(rows)...)
	section = append(section, hwptest.ParagraphRecords(0, "표 뒤 문단")...)

	paras, tables := decodeSection(section, Limits{}, true)

	wantParas := []string{"표 앞 문단", "표 뒤 문단"}
	if !reflect.DeepEqual(paras, wantParas) {
		t.Errorf("paragraphs = %q, want %q", paras, wantParas)
	}
	if len(tables) != 1 {
		t.Fatalf("len(tables) = %d, want 1", len(tables))
	}
	if !reflect.DeepEqual(tables[0], rows) {
		t.Errorf("table = %q, want %q", tables[0], rows)
	}
}

func TestDecodeSectionTableAtEnd(t *testing.T) {
	// Nothing follows the table, so the builder is finalized by the end of
	// the stream rather than by a sibling record.
	rows := [][]string{{"하나", "둘"}}
	section := hwptest.TableRecords(rows)

	_, tables := decodeSection(section, Limits{}, true)
	if len(tables) != 1 {
		t.Fatalf("len(tables) = %d, want 1", len(tables))
	}
	if !reflect.DeepEqual(tables[0], rows) {
		t.Errorf("table = %q, want %q", tables[0], rows)
	}
}

func TestDecodeSectionTableShortCellRun(t *testing.T) {
	// Three cells against a 2x2 definition: the last cell stays empty.
	section := hwptest.TableRecords([][]string{{"a", "b"}, {"c"}})

	_, tables := decodeSection(section, Limits{}, true)
	if len(tables) != 1 {
		t.Fatalf("len(tables) = %d, want 1", len(tables))
	}
	want := [][]string{{"a", "b"}, {"c", ""}}
	if !reflect.DeepEqual(tables[0], want) {
		t.Errorf("table = %q, want %q", tables[0], want)
	}
}

func TestDecodeSectionTableMultiParagraphCell(t *testing.T) {
	section := hwptest.ParagraphRecords(0, "본문")
	section = append(section, hwptest.Record(TagCtrlHeader, 1, append([]byte(" lbt"), 0, 0, 0, 0))...)
	tbl := make([]byte, 16)
	tbl[4], tbl[6] = 1, 1
	section = append(section, hwptest.Record(TagTable, 2, tbl)...)
	section = append(section, hwptest.Record(TagListHeader, 2, make([]byte, 8))...)
	section = append(section, hwptest.ParagraphRecords(3, "첫 줄")...)
	section = append(section, hwptest.ParagraphRecords(3, "둘째 줄")...)

	_, tables := decodeSection(section, Limits{}, true)
	if len(tables) != 1 {
		t.Fatalf("len(tables) = %d, want 1", len(tables))
	}
	want := [][]string{{"첫 줄\n둘째 줄"}}
	if !reflect.DeepEqual(tables[0], want) {
		t.Errorf("table = %q, want %q", tables[0], want)
	}
}

func TestDecodeSectionTableWithoutDefinition(t *testing.T) {
	// A table control whose definition record never arrives yields no table.
	section := hwptest.ParagraphRecords(0, "본문")
	section = append(section, hwptest.Record(TagCtrlHeader, 1, append([]byte(" lbt"), 0, 0, 0, 0))...)
	section = append(section, hwptest.Record(TagListHeader, 2, make([]byte, 8))...)
	section = append(section, hwptest.ParagraphRecords(3, "버려질 텍스트")...)

	paras, tables := decodeSection(section, Limits{}, true)
	if len(tables) != 0 {
		t.Errorf("tables = %d, want none", len(tables))
	}
	want := []string{"본문"}
	if !reflect.DeepEqual(paras, want) {
		t.Errorf("paragraphs = %q, want %q", paras, want)
	}
}

func TestDecodeSectionIgnoresOtherControls(t *testing.T) {
	section := hwptest.ParagraphRecords(0, "가")
	section = append(section, hwptest.Record(TagCtrlHeader, 1, append([]byte("dces"), 0, 0, 0, 0))...)
	section = append(section, hwptest.ParagraphRecords(0, "나")...)

	paras, tables := decodeSection(section, Limits{}, true)
	if len(tables) != 0 {
		t.Errorf("tables = %d, want none", len(tables))
	}
	want := []string{"가", "나"}
	if !reflect.DeepEqual(paras, want) {
		t.Errorf("paragraphs = %q, want %q", paras, want)
	}
}

func TestDecodeSectionTablesDisabled(t *testing.T) {
	// With table assembly off the control is ignored and cell text joins
	// the body flow instead of being lost.
	section := hwptest.TableRecords([][]string{{"셀 내용"}})

	paras, tables := decodeSection(section, Limits{}, false)
	if tables != nil {
		t.Errorf("tables = %q, want nil", tables)
	}
	want := []string{"셀 내용"}
	if !reflect.DeepEqual(paras, want) {
		t.Errorf("paragraphs = %q, want %q", paras, want)
	}
}

func TestIsTableCtrl(t *testing.T) {
	tests := []struct {
		name    string
		payload []byte
		want    bool
	}{
		{"table control", append([]byte(" lbt"), 0, 0, 0, 0), true},
		{"bare id", []byte(" lbt"), true},
		{"section definition", append([]byte("dces"), 0, 0, 0, 0), false},
		{"too short", []byte(" lb"), false},
		{"empty", nil, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := isTableCtrl(tt.payload); got != tt.want {
				t.Errorf("isTableCtrl = %v, want %v", got, tt.want)
			}
		})
	}
}
