package parser

import (
	"regexp"
	"strings"

	"github.com/dgallion1/vidnotes/internal/doctree"
)

// timecodeRe matches HH:MM:SS or MM:SS. The longer form is listed first so
// it wins when both start at the same position.
var timecodeRe = regexp.MustCompile(`\d{2}:\d{2}:\d{2}|\d{2}:\d{2}`)

// ParseTranscript splits a transcript into non-blank lines and pulls the
// first timecode out of each. Lines without a timecode are kept as-is.
func ParseTranscript(text string) []doctree.TranscriptLine {
	lines := []doctree.TranscriptLine{}
	for _, line := range splitLines(text) {
		if strings.TrimSpace(line) == "" {
			continue
		}
		lines = append(lines, parseTranscriptLine(line))
	}
	return lines
}

func parseTranscriptLine(line string) doctree.TranscriptLine {
	ts := timecodeRe.FindString(line)
	if ts == "" {
		return doctree.TranscriptLine{Text: line}
	}
	return doctree.TranscriptLine{
		Timestamp: ts,
		Text:      strings.TrimSpace(strings.Replace(line, ts, "", 1)),
	}
}
