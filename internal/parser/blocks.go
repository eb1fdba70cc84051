package parser

import (
	"regexp"
	"strings"

	"github.com/dgallion1/vidnotes/internal/doctree"
)

// listItemRe matches a list marker ("-", "*" or "N.") and the whitespace
// character that must follow it. The class covers the Unicode space
// separators, vertical tab, BOM and line/paragraph separators as well as
// ASCII whitespace.
var listItemRe = regexp.MustCompile(`^(-|\*|\d+\.)[\s\v\p{Zs}\x{FEFF}\x{2028}\x{2029}]`)

// Classify groups a node's raw content lines into paragraphs and lists.
// Each contiguous run of list items becomes one List block; every other
// non-blank line becomes its own Paragraph. Blank lines end a list run.
func Classify(lines []string) []doctree.ContentBlock {
	blocks := []doctree.ContentBlock{}
	var items []string

	flush := func() {
		if len(items) > 0 {
			blocks = append(blocks, doctree.List(items))
			items = nil
		}
	}

	for _, line := range lines {
		trimmed := strings.TrimSpace(line)
		if loc := listItemRe.FindStringIndex(trimmed); loc != nil {
			items = append(items, trimmed[loc[1]:])
			continue
		}
		flush()
		if trimmed != "" {
			blocks = append(blocks, doctree.Paragraph(line))
		}
	}
	flush()

	return blocks
}
