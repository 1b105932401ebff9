package model

// ParagraphType classifies a paragraph's role in the document flow.
type ParagraphType string

const (
	ParagraphNormal       ParagraphType = "normal"
	ParagraphTitle        ParagraphType = "title"
	ParagraphHeading      ParagraphType = "heading"
	ParagraphListItem     ParagraphType = "list-item"
	ParagraphNumberedList ParagraphType = "numbered-list"
)

func (t ParagraphType) isList() bool {
	return t == ParagraphListItem || t == ParagraphNumberedList
}

// bulletMarkers are the list-marker characters stripped when rendering a
// bulleted item to markdown.
const bulletMarkers = "―•▪▫◦‣⁃·ㆍ-* \t"

// Paragraph is one paragraph of extracted text with its derived signals.
type Paragraph struct {
	Index     int           `json:"index"`
	Text      string        `json:"text"`
	Type      ParagraphType `json:"type"`
	CharCount int           `json:"char_count"`
	WordCount int           `json:"word_count"`
	Tags      []string      `json:"tags"`
}
