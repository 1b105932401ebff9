package layout

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/hanjilab/hanji/model"
)

// ClassifyConfig controls paragraph classification.
type ClassifyConfig struct {
	// HeadingPatterns match paragraphs that open a section. Checked first,
	// so a numbered heading ("1. 개요") never falls through to the
	// numbered-list rule.
	HeadingPatterns []*regexp.Regexp

	// ListPattern matches bulleted list items.
	ListPattern *regexp.Regexp

	// NumberedPattern matches ordered list items not already claimed by a
	// heading pattern.
	NumberedPattern *regexp.Regexp

	// TitleMaxRunes caps how long a title can be.
	// Default: 50
	TitleMaxRunes int
}

// DefaultClassifyConfig returns the default pattern set.
func DefaultClassifyConfig() ClassifyConfig {
	return ClassifyConfig{
		HeadingPatterns: []*regexp.Regexp{
			regexp.MustCompile(`^제\s*\d+\s*[장절조항]`), // 제1장, 제 2 절
			regexp.MustCompile(`^\d+\.\s+`),
			regexp.MustCompile(`^[가-힣]\.\s+`), // 가. 나. 다.
			regexp.MustCompile(`^(?i)(chapter|section|part)\s+\d+`),
			regexp.MustCompile(`^<[ⅠⅡⅢⅣⅤⅥⅦⅧⅨⅩⅪⅫⅰⅱⅲⅳⅴⅵⅶⅷⅸⅹ]+>`),
			regexp.MustCompile(`^[ⅠⅡⅢⅣⅤⅥⅦⅧⅨⅩⅪⅫⅰⅱⅲⅳⅴⅵⅶⅷⅸⅹ]+[.\s]`),
		},
		ListPattern:     regexp.MustCompile(`^\s*[•·▪▫◦‣⁃\-\*]\s+`),
		NumberedPattern: regexp.MustCompile(`^\s*\d+[.\)]\s+`),
		TitleMaxRunes:   50,
	}
}

// Classifier assigns a ParagraphType to paragraphs of extracted text.
type Classifier struct {
	config ClassifyConfig
}

// NewClassifier creates a classifier with the default configuration.
func NewClassifier() *Classifier {
	return &Classifier{config: DefaultClassifyConfig()}
}

// NewClassifierWithConfig creates a classifier with custom configuration.
func NewClassifierWithConfig(config ClassifyConfig) *Classifier {
	return &Classifier{config: config}
}

// Classify reports the type of a single paragraph.
func (c *Classifier) Classify(s string) model.ParagraphType {
	s = strings.TrimSpace(s)
	if s == "" {
		return model.ParagraphNormal
	}

	for _, p := range c.config.HeadingPatterns {
		if p.MatchString(s) {
			return model.ParagraphHeading
		}
	}
	if c.config.ListPattern.MatchString(s) {
		return model.ParagraphListItem
	}
	if c.config.NumberedPattern.MatchString(s) {
		return model.ParagraphNumberedList
	}
	if utf8.RuneCountInString(s) < c.config.TitleMaxRunes && isAllCaps(s) {
		return model.ParagraphTitle
	}
	return model.ParagraphNormal
}

// ClassifyAll classifies a paragraph sequence. On top of the per-paragraph
// rules, a short unclassified opening paragraph of a multi-paragraph
// document is promoted to the title, which single-paragraph classification
// cannot decide.
func (c *Classifier) ClassifyAll(paras []string) []model.ParagraphType {
	types := make([]model.ParagraphType, len(paras))
	for i, p := range paras {
		types[i] = c.Classify(p)
	}
	if len(types) > 1 && types[0] == model.ParagraphNormal &&
		utf8.RuneCountInString(paras[0]) < c.config.TitleMaxRunes {
		types[0] = model.ParagraphTitle
	}
	return types
}

// isAllCaps reports whether s contains cased letters with none of them
// lowercase. Scripts without case never qualify.
func isAllCaps(s string) bool {
	return s != strings.ToLower(s) && s == strings.ToUpper(s)
}

var defaultClassifier = NewClassifier()

// Classify reports the paragraph type of s under the default configuration.
func Classify(s string) model.ParagraphType {
	return defaultClassifier.Classify(s)
}

// ClassifyAll classifies paras under the default configuration.
func ClassifyAll(paras []string) []model.ParagraphType {
	return defaultClassifier.ClassifyAll(paras)
}
