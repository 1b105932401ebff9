// Package text provides character-level cleanup and script classification
// for recovered document text.
//
// Text pulled out of a damaged or partially decoded binary stream carries
// noise: control bytes misread as characters, garbage from wrong-encoding
// decodes, unassigned code points. This package separates renderable text
// from that noise and measures how much had to be removed.
//
// # Cleaning
//
// [Clean] normalizes full-width ASCII variants to their half-width forms,
// drops characters outside the accepted ranges, and reports the fraction
// removed:
//
//	cleaned, noise := text.Clean(raw)
//
// The noise ratio feeds the caller's encoding-recovery heuristics: a high
// ratio means the source bytes were probably decoded with the wrong charset.
//
// # Script Classification
//
// The [Script] type classifies runes into the scripts that matter for
// Korean documents:
//
//   - Hangul - Korean syllables and jamo
//   - Latin - ASCII letters
//   - Han - CJK ideographs (hanja)
//   - Kana - Japanese hiragana and katakana
//   - Other - everything else
//
// [ScriptRatios] aggregates per-script fractions over a string, and
// [DominantLanguage] reduces them to a document language hint.
package text
