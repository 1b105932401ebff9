package text

import "strings"

// Clean removes characters that cannot come from readable document text and
// returns the fraction of runes removed. Full-width ASCII variants are
// normalized to their half-width forms before filtering, so a full-width
// exclamation mark survives as "!" rather than counting as noise.
//
// Structural whitespace (newline, tab, carriage return) is always kept. The
// ratio is 0 for empty input.
func Clean(s string) (string, float64) {
	if s == "" {
		return "", 0
	}

	var b strings.Builder
	b.Grow(len(s))

	total := 0
	dropped := 0
	for _, r := range s {
		total++
		r = normalizeWidth(r)
		if !IsPrintable(r) {
			dropped++
			continue
		}
		b.WriteRune(r)
	}

	return b.String(), float64(dropped) / float64(total)
}

// normalizeWidth maps full-width ASCII variants to their half-width
// equivalents: the ideographic space to a plain space, and the
// U+FF01-U+FF5E block onto U+0021-U+007E.
func normalizeWidth(r rune) rune {
	switch {
	case r == 0x3000:
		return ' '
	case r >= 0xFF01 && r <= 0xFF5E:
		return r - 0xFEE0
	}
	return r
}

// IsPrintable reports whether r belongs to one of the character ranges that
// legitimately appear in Korean document text.
//
// The accepted ranges are:
//   - structural whitespace: newline, tab, carriage return
//   - printable ASCII: U+0020-U+007E
//   - Latin-1 supplement: U+00A0-U+00FF
//   - Hangul jamo: U+1100-U+11FF
//   - CJK symbols and punctuation: U+3000-U+303F
//   - Hiragana and Katakana: U+3040-U+30FF
//   - Hangul compatibility jamo: U+3130-U+318F
//   - CJK unified ideographs: U+4E00-U+9FFF
//   - Hangul syllables: U+AC00-U+D7A3
//   - full-width and half-width forms: U+FF00-U+FFEF
func IsPrintable(r rune) bool {
	switch r {
	case '\n', '\t', '\r':
		return true
	}
	switch {
	case r >= 0x20 && r <= 0x7E:
		return true
	case r >= 0xA0 && r <= 0xFF:
		return true
	case r >= 0x1100 && r <= 0x11FF:
		return true
	case r >= 0x3000 && r <= 0x303F:
		return true
	case r >= 0x3040 && r <= 0x30FF:
		return true
	case r >= 0x3130 && r <= 0x318F:
		return true
	case r >= 0x4E00 && r <= 0x9FFF:
		return true
	case r >= 0xAC00 && r <= 0xD7A3:
		return true
	case r >= 0xFF00 && r <= 0xFFEF:
		return true
	}
	return false
}
