package layout

import (
	"regexp"
	"strings"
)

// TagPattern pairs a content tag with the pattern that triggers it.
type TagPattern struct {
	Name    string
	Pattern *regexp.Regexp
}

// TagConfig controls content tagging.
type TagConfig struct {
	// Patterns run in order; each match appends its tag once.
	Patterns []TagPattern

	// ShortWordLimit tags paragraphs with fewer words as "short".
	// Default: 10
	ShortWordLimit int

	// LongWordThreshold tags paragraphs with more words as "long".
	// Default: 100
	LongWordThreshold int
}

// DefaultTagConfig returns the default content patterns: Korean and ISO
// dates, email addresses, URLs, Korean phone numbers, and currency amounts.
func DefaultTagConfig() TagConfig {
	return TagConfig{
		Patterns: []TagPattern{
			{"contains-date", regexp.MustCompile(`\d{4}[-/년]\s*\d{1,2}[-/월]\s*\d{1,2}`)},
			{"contains-email", regexp.MustCompile(`[\w.-]+@[\w.-]+`)},
			{"contains-url", regexp.MustCompile(`https?://\S+`)},
			{"contains-phone", regexp.MustCompile(`\d{2,3}-\d{3,4}-\d{4}`)},
			{"contains-currency", regexp.MustCompile(`[₩$¥€£]\s*[\d,]+`)},
		},
		ShortWordLimit:    10,
		LongWordThreshold: 100,
	}
}

// Tagger derives content tags from paragraph text.
type Tagger struct {
	config TagConfig
}

// NewTagger creates a tagger with the default configuration.
func NewTagger() *Tagger {
	return &Tagger{config: DefaultTagConfig()}
}

// NewTaggerWithConfig creates a tagger with custom configuration.
func NewTaggerWithConfig(config TagConfig) *Tagger {
	return &Tagger{config: config}
}

// Tag returns the tags for one paragraph, in configuration order with the
// length tag last. The result is never nil, keeping serialized output
// stable.
func (t *Tagger) Tag(s string) []string {
	tags := make([]string, 0, 2)
	for _, p := range t.config.Patterns {
		if p.Pattern.MatchString(s) {
			tags = append(tags, p.Name)
		}
	}
	switch words := len(strings.Fields(s)); {
	case words < t.config.ShortWordLimit:
		tags = append(tags, "short")
	case words > t.config.LongWordThreshold:
		tags = append(tags, "long")
	}
	return tags
}

var defaultTagger = NewTagger()

// Tag returns the content tags of s under the default configuration.
func Tag(s string) []string {
	return defaultTagger.Tag(s)
}
