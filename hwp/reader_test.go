package hwp

import (
	"bytes"
	"errors"
	"reflect"
	"strings"
	"testing"

	"github.com/hanjilab/hanji/internal/hwptest"
)

func TestParseFileHeader(t *testing.T) {
	tests := []struct {
		name    string
		data    []byte
		want    fileHeader
		wantErr bool
	}{
		{
			name: "compressed",
			data: hwptest.FileHeader(true),
			want: fileHeader{version: 0x05000300, compressed: true},
		},
		{
			name: "stored",
			data: hwptest.FileHeader(false),
			want: fileHeader{version: 0x05000300},
		},
		{
			name: "password protected",
			data: hwptest.FileHeaderFlags(0x3),
			want: fileHeader{version: 0x05000300, compressed: true, password: true},
		},
		{
			name: "distribution",
			data: hwptest.FileHeaderFlags(0x5),
			want: fileHeader{version: 0x05000300, compressed: true, distribution: true},
		},
		{
			name:    "too short",
			data:    []byte("HWP Document File"),
			wantErr: true,
		},
		{
			name:    "wrong signature",
			data:    make([]byte, 256),
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseFileHeader(tt.data)
			if tt.wantErr {
				if err == nil {
					t.Fatal("parseFileHeader() error = nil, want error")
				}
				return
			}
			if err != nil {
				t.Fatalf("parseFileHeader() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("parseFileHeader() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestOpenDocumentMissingFileHeader(t *testing.T) {
	data := hwptest.BuildContainer(map[string][]byte{
		"BodyText/Section0": hwptest.SectionBytes("본문"),
	})
	if _, err := openDocument(data); err == nil {
		t.Fatal("openDocument() error = nil for a container without FileHeader")
	}
}

func TestSectionNamesNumericOrder(t *testing.T) {
	data := hwptest.BuildContainer(map[string][]byte{
		"FileHeader":         hwptest.FileHeader(false),
		"DocInfo":            {1, 2, 3},
		"BodyText/Section0":  hwptest.SectionBytes("영"),
		"BodyText/Section2":  hwptest.SectionBytes("이"),
		"BodyText/Section10": hwptest.SectionBytes("십"),
		"BodyText/SectionX":  []byte("junk"),
	})
	doc, err := openDocument(data)
	if err != nil {
		t.Fatalf("openDocument() error = %v", err)
	}

	// Numeric order, not lexical: Section2 before Section10.
	want := []string{"BodyText/Section0", "BodyText/Section2", "BodyText/Section10"}
	if got := doc.sectionNames(); !reflect.DeepEqual(got, want) {
		t.Errorf("sectionNames() = %q, want %q", got, want)
	}
}

func TestSectionBytesStored(t *testing.T) {
	body := hwptest.SectionBytes("압축 없는 본문")
	data := hwptest.BuildContainer(map[string][]byte{
		"FileHeader":        hwptest.FileHeader(false),
		"BodyText/Section0": body,
	})
	doc, err := openDocument(data)
	if err != nil {
		t.Fatalf("openDocument() error = %v", err)
	}

	got, complete, err := doc.sectionBytes("BodyText/Section0")
	if err != nil {
		t.Fatalf("sectionBytes() error = %v", err)
	}
	if !complete {
		t.Error("complete = false for a stored section")
	}
	if !bytes.Equal(got, body) {
		t.Errorf("sectionBytes() = %d bytes, want %d", len(got), len(body))
	}
}

func TestSectionBytesCompressed(t *testing.T) {
	body := hwptest.SectionBytes("압축된 본문")
	data := hwptest.BuildContainer(map[string][]byte{
		"FileHeader":        hwptest.FileHeader(true),
		"BodyText/Section0": hwptest.DeflateRaw(body),
	})
	doc, err := openDocument(data)
	if err != nil {
		t.Fatalf("openDocument() error = %v", err)
	}

	got, complete, err := doc.sectionBytes("BodyText/Section0")
	if err != nil {
		t.Fatalf("sectionBytes() error = %v", err)
	}
	if !complete {
		t.Error("complete = false for an intact section")
	}
	if !bytes.Equal(got, body) {
		t.Errorf("sectionBytes() = %d bytes, want %d", len(got), len(body))
	}
}

func TestSectionBytesTruncated(t *testing.T) {
	body := hwptest.SectionBytes(strings.Repeat("잘린 압축 스트림 복구 ", 100))
	comp := hwptest.DeflateRaw(body)
	data := hwptest.BuildContainer(map[string][]byte{
		"FileHeader":        hwptest.FileHeader(true),
		"BodyText/Section0": comp[:len(comp)/2],
	})
	doc, err := openDocument(data)
	if err != nil {
		t.Fatalf("openDocument() error = %v", err)
	}

	got, complete, err := doc.sectionBytes("BodyText/Section0")
	if err != nil {
		t.Fatalf("sectionBytes() error = %v", err)
	}
	if complete {
		t.Error("complete = true for a truncated section")
	}
	if len(got) == 0 {
		t.Error("sectionBytes() recovered nothing from the truncated stream")
	}
	if !bytes.Equal(got, body[:len(got)]) {
		t.Error("recovered bytes are not a prefix of the original section")
	}
}

func TestRequireReadableBody(t *testing.T) {
	tests := []struct {
		name    string
		flags   uint32
		wantErr error
	}{
		{"plain", 0x1, nil},
		{"password", 0x3, errPasswordProtected},
		{"distribution", 0x5, errDistribution},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data := hwptest.BuildContainer(map[string][]byte{
				"FileHeader": hwptest.FileHeaderFlags(tt.flags),
			})
			doc, err := openDocument(data)
			if err != nil {
				t.Fatalf("openDocument() error = %v", err)
			}
			if err := doc.requireReadableBody(); !errors.Is(err, tt.wantErr) {
				t.Errorf("requireReadableBody() = %v, want %v", err, tt.wantErr)
			}
		})
	}
}
