package cfb

import (
	"bytes"
	"encoding/binary"
	"errors"
	"testing"

	"github.com/hanjilab/hanji/internal/hwptest"
)

// buildFixture assembles a container with the given streams
func buildFixture(t *testing.T, streams map[string][]byte) []byte {
	t.Helper()
	return hwptest.BuildContainer(streams)
}

// TestOpenRejectsShortInput tests that inputs smaller than a header fail
func TestOpenRejectsShortInput(t *testing.T) {
	_, err := Open([]byte{0xD0, 0xCF, 0x11, 0xE0})
	if !errors.Is(err, ErrFormat) {
		t.Errorf("expected ErrFormat, got %v", err)
	}
}

// TestOpenRejectsBadSignature tests that a wrong magic fails
func TestOpenRejectsBadSignature(t *testing.T) {
	data := buildFixture(t, map[string][]byte{"S": []byte("x")})
	data[0] = 0x00

	_, err := Open(data)
	if !errors.Is(err, ErrFormat) {
		t.Errorf("expected ErrFormat, got %v", err)
	}
}

// TestOpenRejectsBadSectorShift tests that impossible sector geometry fails
func TestOpenRejectsBadSectorShift(t *testing.T) {
	data := buildFixture(t, map[string][]byte{"S": []byte("x")})
	binary.LittleEndian.PutUint16(data[30:], 16)

	_, err := Open(data)
	if !errors.Is(err, ErrFormat) {
		t.Errorf("expected ErrFormat, got %v", err)
	}
}

// TestStreamRoundTrip tests that streams of every size class read back
// exactly: mini stream, multi-sector mini stream, the cutoff boundary, and
// multi-sector main chains
func TestStreamRoundTrip(t *testing.T) {
	tests := []struct {
		name string
		size int
	}{
		{"tiny mini stream", 10},
		{"multi sector mini stream", 200},
		{"cutoff boundary", 4096},
		{"multi sector main stream", 5000},
	}

	streams := make(map[string][]byte)
	for i, tt := range tests {
		data := bytes.Repeat([]byte{byte('A' + i)}, tt.size)
		streams[tt.name] = data
	}

	c, err := Open(buildFixture(t, streams))
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := c.Stream(tt.name)
			if err != nil {
				t.Fatalf("Stream failed: %v", err)
			}
			if !bytes.Equal(got, streams[tt.name]) {
				t.Errorf("stream data mismatch: got %d bytes, want %d", len(got), len(streams[tt.name]))
			}
		})
	}
}

// TestStreamNestedPath tests slash-joined lookup through a storage
func TestStreamNestedPath(t *testing.T) {
	streams := map[string][]byte{
		"FileHeader":        []byte("header"),
		"BodyText/Section0": []byte("section zero"),
		"BodyText/Section1": []byte("section one"),
	}

	c, err := Open(buildFixture(t, streams))
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}

	for path, want := range streams {
		got, err := c.Stream(path)
		if err != nil {
			t.Fatalf("Stream(%q) failed: %v", path, err)
		}
		if !bytes.Equal(got, want) {
			t.Errorf("Stream(%q) = %q, want %q", path, got, want)
		}
	}

	if c.HasStream("BodyText") {
		t.Error("storage BodyText should not resolve as a stream")
	}
}

// TestStreamControlCharacterName tests the summary stream's \x05 name
func TestStreamControlCharacterName(t *testing.T) {
	name := "\x05HwpSummaryInformation"
	c, err := Open(buildFixture(t, map[string][]byte{name: []byte("props")}))
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}

	got, err := c.Stream(name)
	if err != nil {
		t.Fatalf("Stream failed: %v", err)
	}
	if string(got) != "props" {
		t.Errorf("Stream = %q, want %q", got, "props")
	}
}

// TestStreamNotFound tests the sentinel for unknown paths
func TestStreamNotFound(t *testing.T) {
	c, err := Open(buildFixture(t, map[string][]byte{"S": []byte("x")}))
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}

	_, err = c.Stream("Missing")
	if !errors.Is(err, ErrStreamNotFound) {
		t.Errorf("expected ErrStreamNotFound, got %v", err)
	}
}

// TestStreams tests the sorted stream listing
func TestStreams(t *testing.T) {
	c, err := Open(buildFixture(t, map[string][]byte{
		"FileHeader":        []byte("h"),
		"BodyText/Section0": []byte("s"),
		"PrvText":           []byte("p"),
	}))
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}

	got := c.Streams()
	want := []string{"BodyText/Section0", "FileHeader", "PrvText"}
	if len(got) != len(want) {
		t.Fatalf("Streams() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Streams()[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}

// TestEntrySize tests that directory sizes survive the parse
func TestEntrySize(t *testing.T) {
	data := bytes.Repeat([]byte{0x42}, 777)
	c, err := Open(buildFixture(t, map[string][]byte{"S": data}))
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}

	e, ok := c.Entry("S")
	if !ok {
		t.Fatal("Entry(S) not found")
	}
	if e.Size != 777 {
		t.Errorf("Size = %d, want 777", e.Size)
	}
	if e.Type != TypeStream {
		t.Errorf("Type = %d, want TypeStream", e.Type)
	}
}

// TestZeroLengthStream tests that an empty stream reads back empty
func TestZeroLengthStream(t *testing.T) {
	c, err := Open(buildFixture(t, map[string][]byte{
		"Empty": nil,
		"Full":  []byte("data"),
	}))
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}

	got, err := c.Stream("Empty")
	if err != nil {
		t.Fatalf("Stream failed: %v", err)
	}
	if len(got) != 0 {
		t.Errorf("expected empty stream, got %d bytes", len(got))
	}
}

// TestDamagedChainTruncates tests that a stream chain cut mid-way yields the
// readable prefix instead of an error
func TestDamagedChainTruncates(t *testing.T) {
	want := bytes.Repeat([]byte("0123456789abcdef"), 320) // 5120 bytes, ten sectors

	data := buildFixture(t, map[string][]byte{"Big": want})

	c, err := Open(data)
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	e, ok := c.Entry("Big")
	if !ok {
		t.Fatal("Entry(Big) not found")
	}

	// End the chain after its first sector. The allocation table is
	// sector 0, starting at byte 512, four bytes per entry.
	binary.LittleEndian.PutUint32(data[512+4*e.start:], secEndOfChain)

	c, err = Open(data)
	if err != nil {
		t.Fatalf("Open after patch failed: %v", err)
	}
	got, err := c.Stream("Big")
	if err != nil {
		t.Fatalf("Stream failed: %v", err)
	}
	if len(got) != 512 {
		t.Fatalf("truncated stream length = %d, want 512", len(got))
	}
	if !bytes.Equal(got, want[:512]) {
		t.Error("truncated stream is not a prefix of the original")
	}
}

// TestDirectoryCycleFails tests that a self-referencing directory chain is
// rejected at Open
func TestDirectoryCycleFails(t *testing.T) {
	data := buildFixture(t, map[string][]byte{"S": []byte("x")})

	// The directory begins at sector 1; point its chain entry at itself.
	binary.LittleEndian.PutUint32(data[512+4*1:], 1)

	_, err := Open(data)
	if !errors.Is(err, ErrFormat) {
		t.Errorf("expected ErrFormat, got %v", err)
	}
}
