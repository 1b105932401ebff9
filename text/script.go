package text

// Script represents the writing script of a character.
// It drives the per-script composition ratios reported for a document.
type Script int

const (
	// Hangul for Korean syllables and jamo.
	Hangul Script = iota
	// Latin for ASCII letters.
	Latin
	// Han for CJK unified ideographs (hanja in Korean text).
	Han
	// Kana for Japanese hiragana and katakana.
	Kana
	// Other for everything that is none of the above.
	Other
)

// String returns the ratio key used for the script ("ko", "en", "han", "ja",
// or "other").
func (s Script) String() string {
	switch s {
	case Hangul:
		return "ko"
	case Latin:
		return "en"
	case Han:
		return "han"
	case Kana:
		return "ja"
	default:
		return "other"
	}
}

// ClassifyRune returns the script of a single character. Whitespace has no
// script; callers skip it before counting.
func ClassifyRune(r rune) Script {
	switch {
	case isHangul(r):
		return Hangul
	case isLatinLetter(r):
		return Latin
	case isHan(r):
		return Han
	case isKana(r):
		return Kana
	}
	return Other
}

// ScriptRatios returns the per-script fraction of the non-whitespace runes
// in s. All five keys ("ko", "en", "han", "ja", "other") are always present
// so the output shape does not depend on the input.
func ScriptRatios(s string) map[string]float64 {
	counts := make(map[Script]int)
	total := 0

	for _, r := range s {
		if isWhitespace(r) {
			continue
		}
		counts[ClassifyRune(r)]++
		total++
	}

	ratios := map[string]float64{
		Hangul.String(): 0,
		Latin.String():  0,
		Han.String():    0,
		Kana.String():   0,
		Other.String():  0,
	}
	if total == 0 {
		return ratios
	}
	for script, n := range counts {
		ratios[script.String()] = float64(n) / float64(total)
	}
	return ratios
}

// DominantLanguage reduces the script ratios to a document language hint:
// "ko" or "en" when that script covers more than 30% of the text, otherwise
// the empty string. Only hangul and latin drive the hint; a hanja-heavy
// Korean document still reports "ko".
func DominantLanguage(s string) string {
	ratios := ScriptRatios(s)
	ko := ratios[Hangul.String()]
	en := ratios[Latin.String()]

	switch {
	case ko >= en && ko > 0.3:
		return "ko"
	case en > ko && en > 0.3:
		return "en"
	}
	return ""
}

func isWhitespace(r rune) bool {
	switch r {
	case ' ', '\t', '\n', '\r', 0x3000, 0xA0:
		return true
	}
	return false
}

// isHangul reports whether r is in a Hangul Unicode block.
// This includes:
//   - Hangul Jamo: U+1100-U+11FF
//   - Hangul Compatibility Jamo: U+3130-U+318F
//   - Hangul Syllables: U+AC00-U+D7A3
func isHangul(r rune) bool {
	return (r >= 0x1100 && r <= 0x11FF) ||
		(r >= 0x3130 && r <= 0x318F) ||
		(r >= 0xAC00 && r <= 0xD7A3)
}

// isLatinLetter reports whether r is an ASCII letter. Digits and punctuation
// are script-neutral and do not count toward any script.
func isLatinLetter(r rune) bool {
	return (r >= 'A' && r <= 'Z') || (r >= 'a' && r <= 'z')
}

// isHan reports whether r is in a CJK ideograph block.
// This includes:
//   - CJK Unified Ideographs: U+4E00-U+9FFF
//   - CJK Extension A: U+3400-U+4DBF
func isHan(r rune) bool {
	return (r >= 0x4E00 && r <= 0x9FFF) ||
		(r >= 0x3400 && r <= 0x4DBF)
}

// isKana reports whether r is in a Japanese kana block.
// This includes:
//   - Hiragana: U+3040-U+309F
//   - Katakana: U+30A0-U+30FF
func isKana(r rune) bool {
	return (r >= 0x3040 && r <= 0x309F) ||
		(r >= 0x30A0 && r <= 0x30FF)
}
