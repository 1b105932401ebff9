package hwp

import (
	"bytes"
	"testing"
	"time"

	"github.com/hanjilab/hanji/internal/hwptest"
)

func TestRecordScannerSequence(t *testing.T) {
	want := []Record{
		{Tag: TagParaHeader, Level: 0, Data: make([]byte, 24)},
		{Tag: TagParaText, Level: 1, Data: hwptest.Utf16LE("기록 순서")},
		{Tag: TagCtrlHeader, Level: 1, Data: []byte(" lbt")},
	}
	var buf []byte
	for _, r := range want {
		buf = append(buf, hwptest.Record(r.Tag, r.Level, r.Data)...)
	}

	sc := NewRecordScanner(buf, Limits{})
	for i, w := range want {
		if !sc.Scan() {
			t.Fatalf("Scan() = false at record %d", i)
		}
		got := sc.Record()
		if got.Tag != w.Tag || got.Level != w.Level || !bytes.Equal(got.Data, w.Data) {
			t.Errorf("record %d = tag %#x level %d (%d bytes), want tag %#x level %d (%d bytes)",
				i, got.Tag, got.Level, len(got.Data), w.Tag, w.Level, len(w.Data))
		}
	}
	if sc.Scan() {
		t.Error("Scan() = true after the last record")
	}
}

func TestRecordScannerPayloadSizes(t *testing.T) {
	// 0xFFF is the boundary where the size spills into a trailing uint32.
	for _, n := range []int{0, 1, 0xFFE, 0xFFF, 0x1234} {
		payload := bytes.Repeat([]byte{0x5A}, n)
		sc := NewRecordScanner(hwptest.Record(TagParaText, 3, payload), Limits{})
		if !sc.Scan() {
			t.Fatalf("size %d: Scan() = false", n)
		}
		rec := sc.Record()
		if rec.Tag != TagParaText || rec.Level != 3 {
			t.Errorf("size %d: record = tag %#x level %d, want tag %#x level 3", n, rec.Tag, rec.Level, TagParaText)
		}
		if !bytes.Equal(rec.Data, payload) {
			t.Errorf("size %d: payload = %d bytes, want %d", n, len(rec.Data), n)
		}
		if sc.Scan() {
			t.Errorf("size %d: Scan() = true after the only record", n)
		}
	}
}

func TestRecordScannerOverrunStops(t *testing.T) {
	good := hwptest.Record(TagParaHeader, 0, make([]byte, 8))
	bad := hwptest.Record(TagParaText, 1, make([]byte, 64))
	buf := append(good, bad[:20]...)

	sc := NewRecordScanner(buf, Limits{})
	if !sc.Scan() {
		t.Fatal("Scan() = false on the intact record")
	}
	if sc.Scan() {
		t.Error("Scan() = true for a record overrunning the buffer")
	}
}

func TestRecordScannerTruncatedHeader(t *testing.T) {
	buf := append(hwptest.Record(TagParaHeader, 0, nil), 0x42, 0x00, 0x00)
	sc := NewRecordScanner(buf, Limits{})
	if !sc.Scan() {
		t.Fatal("Scan() = false on the intact record")
	}
	if sc.Scan() {
		t.Error("Scan() = true on a 3-byte header fragment")
	}
}

func TestRecordScannerEmpty(t *testing.T) {
	if NewRecordScanner(nil, Limits{}).Scan() {
		t.Error("Scan() = true on an empty buffer")
	}
}

func TestRecordScannerMaxRecords(t *testing.T) {
	var buf []byte
	for i := 0; i < 10; i++ {
		buf = append(buf, hwptest.Record(TagParaHeader, 0, nil)...)
	}

	sc := NewRecordScanner(buf, Limits{MaxRecords: 3})
	n := 0
	for sc.Scan() {
		n++
	}
	if n != 3 {
		t.Errorf("scanned %d records, want 3", n)
	}
}

func TestRecordScannerDeadline(t *testing.T) {
	buf := hwptest.Record(TagParaHeader, 0, nil)
	sc := NewRecordScanner(buf, Limits{Deadline: time.Now().Add(-time.Second)})
	if sc.Scan() {
		t.Error("Scan() = true past the deadline")
	}
}
