package hanji

import (
	"encoding/hex"

	"github.com/zeebo/blake3"
)

// Fingerprint returns a stable identity for the configured extraction: the
// blake3-256 hash, hex encoded, of the document bytes plus the canonicalized
// options. Extraction is deterministic, so equal fingerprints mean
// byte-identical results; callers layering a cache over the library can use
// the fingerprint as the cache key.
//
// Example:
//
//	key, err := hanji.Open("document.hwp").MinTextLength(200).Fingerprint()
func (e *Extractor) Fingerprint() (string, error) {
	if e.err != nil {
		return "", e.err
	}
	if err := e.ensureData(); err != nil {
		return "", err
	}

	canon := e.options.canonical()
	buf := make([]byte, 0, len(e.data)+1+len(canon))
	buf = append(buf, e.data...)
	buf = append(buf, 0)
	buf = append(buf, canon...)

	sum := blake3.Sum256(buf)
	return hex.EncodeToString(sum[:]), nil
}
