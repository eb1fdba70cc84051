// Package notesview assembles the structured notes page: parsed sections with
// their content classified into blocks, plus the timestamped transcript.
package notesview

import (
	"fmt"

	"github.com/dgallion1/vidnotes/internal/doctree"
	"github.com/dgallion1/vidnotes/internal/parser"
)

// DefaultPreviewLines is how many transcript lines a collapsed view shows.
const DefaultPreviewLines = 13

// Options controls how much of the transcript a View carries.
type Options struct {
	PreviewLines   int  // Lines kept when FullTranscript is false; <= 0 keeps all
	FullTranscript bool
}

// View is a render-ready notes page.
type View struct {
	Sections        []SectionView            `json:"sections"`
	Outline         []string                 `json:"outline"`
	Transcript      []doctree.TranscriptLine `json:"transcript"`
	TranscriptTotal int                      `json:"transcript_total"`
	Truncated       bool                     `json:"truncated"`
}

// SectionView is a section with its content classified into blocks.
type SectionView struct {
	ID          int                    `json:"id"`
	Title       string                 `json:"title"`
	Blocks      []doctree.ContentBlock `json:"blocks"`
	Subsections []SubsectionView       `json:"subsections"`
}

// SubsectionView is a subsection with its content classified into blocks.
type SubsectionView struct {
	ID     string                 `json:"id"`
	Title  string                 `json:"title"`
	Blocks []doctree.ContentBlock `json:"blocks"`
}

// Build parses notes and transcript and classifies every node's content.
// Structure is fixed by ParseNotes before any block is classified.
func Build(notes, transcript string, opts Options) View {
	doc := parser.ParseNotes(notes)
	lines := parser.ParseTranscript(transcript)

	v := View{
		Sections:        make([]SectionView, 0, len(doc.Sections)),
		Outline:         Outline(doc),
		TranscriptTotal: len(lines),
	}
	for _, sec := range doc.Sections {
		sv := SectionView{
			ID:          sec.ID,
			Title:       sec.Title,
			Blocks:      parser.Classify(sec.Content),
			Subsections: make([]SubsectionView, 0, len(sec.Subsections)),
		}
		for _, sub := range sec.Subsections {
			sv.Subsections = append(sv.Subsections, SubsectionView{
				ID:     sub.ID,
				Title:  sub.Title,
				Blocks: parser.Classify(sub.Content),
			})
		}
		v.Sections = append(v.Sections, sv)
	}

	v.Transcript = lines
	if !opts.FullTranscript && opts.PreviewLines > 0 && len(lines) > opts.PreviewLines {
		v.Transcript = lines[:opts.PreviewLines]
		v.Truncated = true
	}

	return v
}

// Outline lists heading labels in document order: "1. Title" for sections
// and "1.1 Title" for subsections.
func Outline(doc doctree.Document) []string {
	out := make([]string, 0, doc.SectionCount()+doc.SubsectionCount())
	for _, sec := range doc.Sections {
		out = append(out, fmt.Sprintf("%d. %s", sec.ID, sec.Title))
		for _, sub := range sec.Subsections {
			out = append(out, fmt.Sprintf("%s %s", sub.ID, sub.Title))
		}
	}
	return out
}
