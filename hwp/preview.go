package hwp

import (
	"encoding/binary"
	"strings"
	"unicode/utf16"
	"unicode/utf8"

	"golang.org/x/text/encoding/korean"
	"golang.org/x/text/encoding/unicode"

	"github.com/hanjilab/hanji/text"
)

// previewStreamName is the uncompressed plain-text preview stream.
const previewStreamName = "PrvText"

// decodePreview decodes the preview stream, whose encoding third-party
// writers get wrong in well-known ways. The ladder tries UTF-16LE (the
// documented encoding), UTF-8, then EUC-KR, accepting
// the first decode free of replacement characters. x/text's EUC-KR tables
// already cover Code Page 949, so the legacy CP949 rung folds into the
// EUC-KR one. When every rung rejects, a lenient UTF-16LE decode with the
// undecodable units dropped is better than nothing.
func decodePreview(raw []byte) (string, float64) {
	if len(raw) == 0 {
		return "", 0
	}

	if s, ok := decodeUTF16Strict(raw); ok {
		return finishPreview(s)
	}
	if utf8.Valid(raw) {
		return finishPreview(string(raw))
	}
	if decoded, err := korean.EUCKR.NewDecoder().Bytes(raw); err == nil {
		if s := string(decoded); !strings.ContainsRune(s, utf8.RuneError) {
			return finishPreview(s)
		}
	}

	return finishPreview(decodeUTF16Lenient(raw))
}

// decodeUTF16Strict decodes raw as UTF-16LE, rejecting odd lengths and any
// input with unpaired surrogates. Rejection means the stream is probably in
// one of the other encodings, not that it is unreadable.
func decodeUTF16Strict(raw []byte) (string, bool) {
	if len(raw)%2 != 0 {
		return "", false
	}
	units := make([]uint16, len(raw)/2)
	for i := range units {
		units[i] = binary.LittleEndian.Uint16(raw[i*2:])
	}
	runes := utf16.Decode(units)
	for _, r := range runes {
		if r == utf8.RuneError {
			return "", false
		}
	}
	return string(runes), true
}

// decodeUTF16Lenient decodes raw as UTF-16LE and drops whatever did not
// decode.
func decodeUTF16Lenient(raw []byte) string {
	dec := unicode.UTF16(unicode.LittleEndian, unicode.IgnoreBOM).NewDecoder()
	out, err := dec.Bytes(raw)
	if err != nil {
		return ""
	}
	return strings.Map(func(r rune) rune {
		if r == utf8.RuneError {
			return -1
		}
		return r
	}, string(out))
}

// finishPreview applies the preview line filter (a line is kept when more
// than half of it is printable) and the character-level cleanup.
func finishPreview(s string) (string, float64) {
	var kept []string
	for _, line := range strings.FieldsFunc(s, isLineBreak) {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if printableFraction(line) > 0.5 {
			kept = append(kept, line)
		}
	}
	return text.Clean(strings.Join(kept, "\n"))
}

func isLineBreak(r rune) bool {
	return r == '\n' || r == '\r'
}

func printableFraction(s string) float64 {
	total, printable := 0, 0
	for _, r := range s {
		total++
		if text.IsPrintable(r) {
			printable++
		}
	}
	if total == 0 {
		return 0
	}
	return float64(printable) / float64(total)
}
