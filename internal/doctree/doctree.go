package doctree

// DefaultSectionTitle names the section created for content that appears
// before any "# " heading.
const DefaultSectionTitle = "Notes"

// Document is the structured form of a block of generated notes.
type Document struct {
	Sections []Section `json:"sections"`
}

// Section is a top-level "# " heading and everything under it.
type Section struct {
	ID          int          `json:"id"`    // 1-based position within the document
	Title       string       `json:"title"` // Heading text, trimmed
	Content     []string     `json:"content"`
	Subsections []Subsection `json:"subsections"`
}

// Subsection is a "## " heading nested under a section.
type Subsection struct {
	ID      string   `json:"id"` // "{sectionID}.{n}", n restarting at 1 per section
	Title   string   `json:"title"`
	Content []string `json:"content"`
}

// BlockKind tags a ContentBlock.
type BlockKind string

const (
	KindParagraph BlockKind = "paragraph"
	KindList      BlockKind = "list"
)

// ContentBlock is a displayable unit of a node's content: either a single
// paragraph line or a run of list items.
type ContentBlock struct {
	Kind  BlockKind `json:"kind"`
	Text  string    `json:"text,omitempty"`  // Paragraph only
	Items []string  `json:"items,omitempty"` // List only
}

// Paragraph returns a paragraph block.
func Paragraph(text string) ContentBlock {
	return ContentBlock{Kind: KindParagraph, Text: text}
}

// List returns a list block holding items.
func List(items []string) ContentBlock {
	return ContentBlock{Kind: KindList, Items: items}
}

// TranscriptLine is one non-blank transcript line with its timecode, if any.
type TranscriptLine struct {
	Timestamp string `json:"timestamp"` // Empty when the line has no timecode
	Text      string `json:"text"`
}

// SectionCount returns the number of sections.
func (d Document) SectionCount() int {
	return len(d.Sections)
}

// SubsectionCount returns the number of subsections across all sections.
func (d Document) SubsectionCount() int {
	n := 0
	for _, s := range d.Sections {
		n += len(s.Subsections)
	}
	return n
}
