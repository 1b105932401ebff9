// Package layout classifies extracted paragraphs and derives content tags.
//
// Classification is purely lexical. The source format carries per-paragraph
// nesting levels, but real documents use them too inconsistently for them to
// be authoritative, so the paragraph text itself decides: section-opening
// patterns (제1장, 1., Chapter 3, roman numerals) mark headings, leading
// bullets mark list items, and short all-caps lines mark titles.
//
// # Classification
//
//	c := layout.NewClassifier()
//	c.Classify("제1장 서론")   // model.ParagraphHeading
//	c.Classify("• 항목 하나")  // model.ParagraphListItem
//
// [ClassifyAll] additionally promotes a short opening paragraph to the
// document title, which single-paragraph classification cannot decide.
//
// # Tagging
//
// [Tag] derives content tags from pattern checks: dates, email addresses,
// URLs, phone numbers, currency amounts, plus "short" and "long" word-count
// tags.
//
// Both the classifier patterns and the tag patterns are configuration, not
// constants; the defaults are calibrated on Korean government and academic
// documents.
package layout
