package parser

import (
	"strconv"
	"strings"

	"github.com/dgallion1/vidnotes/internal/doctree"
)

const (
	sectionPrefix    = "# "
	subsectionPrefix = "## "
	fenceMarker      = "```"
)

// notesState is the scanner state threaded through ParseNotes. The open
// section is owned here until it is closed into sections.
type notesState struct {
	sections []doctree.Section
	open     *doctree.Section
	pushed   bool // open has already been appended to sections
	sub      int  // index of the open subsection in open.Subsections, or -1
	inFence  bool
}

// ParseNotes converts generated notes into a Document. Only lines starting
// with exactly "# " or "## " are headings; deeper levels stay content. Lines
// inside a ``` fence are never read as headings.
func ParseNotes(text string) doctree.Document {
	st := &notesState{sub: -1}
	for _, line := range splitLines(text) {
		st.step(line)
	}
	st.closeSection()

	if st.sections == nil {
		st.sections = []doctree.Section{}
	}
	return doctree.Document{Sections: st.sections}
}

func (st *notesState) step(line string) {
	trimmed := strings.TrimSpace(line)

	if strings.HasPrefix(trimmed, fenceMarker) {
		st.inFence = !st.inFence
		st.appendContent(line)
		return
	}
	if st.inFence {
		st.appendContent(line)
		return
	}

	switch {
	case strings.HasPrefix(line, sectionPrefix):
		st.closeSection()
		st.openSection(strings.TrimSpace(strings.TrimPrefix(line, sectionPrefix)))
	case strings.HasPrefix(line, subsectionPrefix):
		if st.open == nil {
			st.openSection(doctree.DefaultSectionTitle)
		}
		st.open.Subsections = append(st.open.Subsections, doctree.Subsection{
			ID:      subsectionID(st.open.ID, len(st.open.Subsections)+1),
			Title:   strings.TrimSpace(strings.TrimPrefix(line, subsectionPrefix)),
			Content: []string{},
		})
		st.sub = len(st.open.Subsections) - 1
	case trimmed != "":
		st.appendContent(line)
	}
}

// appendContent adds a line to the deepest open node, opening the default
// section first when nothing is open.
func (st *notesState) appendContent(line string) {
	if st.open == nil {
		st.openSection(doctree.DefaultSectionTitle)
	}
	if st.sub >= 0 {
		sub := &st.open.Subsections[st.sub]
		sub.Content = append(sub.Content, line)
		return
	}
	st.open.Content = append(st.open.Content, line)
}

func (st *notesState) openSection(title string) {
	st.open = &doctree.Section{
		ID:          len(st.sections) + 1,
		Title:       title,
		Content:     []string{},
		Subsections: []doctree.Subsection{},
	}
	st.pushed = false
	st.sub = -1
}

func (st *notesState) closeSection() {
	if st.open == nil || st.pushed {
		return
	}
	st.sections = append(st.sections, *st.open)
	st.pushed = true
}

func subsectionID(sectionID, n int) string {
	return strconv.Itoa(sectionID) + "." + strconv.Itoa(n)
}
