package filters

import (
	"bytes"
	"compress/flate"
	"compress/zlib"
	"io"
)

// InflateRaw decompresses headerless (raw) deflate data, the compression HWP
// applies to body-text sections. It never fails: truncated or corrupted input
// yields whatever bytes inflated before the failure point, flagged with
// complete=false. A partially decompressed section is more useful to the
// fallback strategies than an aborted extraction.
//
// A stream may hold several concatenated deflate chunks; each is inflated
// independently and the results concatenated in order. Truncation in one
// chunk short-circuits only the chunks after it.
func InflateRaw(data []byte) ([]byte, bool) {
	var out bytes.Buffer

	br := bytes.NewReader(data)
	for br.Len() > 0 {
		before := br.Len()

		r := flate.NewReader(br)
		_, err := io.Copy(&out, r)
		r.Close()

		if err != nil {
			return out.Bytes(), false
		}
		if br.Len() == before {
			// No progress; avoid spinning on a degenerate chunk.
			return out.Bytes(), false
		}
	}

	return out.Bytes(), true
}

// Inflate decompresses an HWP stream that may be raw deflate, zlib-wrapped,
// or not compressed at all, trying each in that order. The uncompressed
// passthrough is last: a stream that inflates to nothing under both schemes
// is assumed to be stored plain.
func Inflate(data []byte) ([]byte, bool) {
	if len(data) == 0 {
		return nil, true
	}

	if out, complete := InflateRaw(data); len(out) > 0 {
		return out, complete
	}

	if out, err := zlibDecompress(data); err == nil && len(out) > 0 {
		return out, true
	}

	return data, true
}

// zlibDecompress decompresses zlib-wrapped data using the standard library.
// Partial output on a truncated stream is kept.
func zlibDecompress(data []byte) ([]byte, error) {
	reader, err := zlib.NewReader(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	defer reader.Close()

	var buf bytes.Buffer
	if _, err := io.Copy(&buf, reader); err != nil && buf.Len() == 0 {
		return nil, err
	}
	return buf.Bytes(), nil
}
