package video

import (
	"strings"
	"unicode/utf8"
)

// MaxPromptTranscriptChars caps how much transcript goes into a prompt.
const MaxPromptTranscriptChars = 30000

const truncationMarker = "... (transcript truncated due to length)"

// NotesPrompt instructs the model to write notes in the heading layout
// parser.ParseNotes reads: "# " sections, "## " subsections and list items.
const NotesPrompt = `Create comprehensive, well-structured notes from the following video transcript.

Rules:
- Break the notes into sections. Start each section with a line "# Title".
- Use "## Title" lines for subsections inside a section. Do not use deeper heading levels.
- Summarize the main ideas and keep them related to the topic of the video
- Include examples that make the material easier to learn
- Use "- " bullet lines for lists, one item per line
- Put code in fenced blocks opened and closed with a line of three backticks

Format the response in markdown.`

// BuildNotesPrompt returns the prompt asking a language model to write notes
// for transcript.
func BuildNotesPrompt(transcript string) string {
	var sb strings.Builder
	sb.WriteString(NotesPrompt)
	sb.WriteString("\n\nTRANSCRIPT:\n")
	sb.WriteString(TruncateTranscript(transcript))
	return sb.String()
}

// TruncateTranscript shortens transcript to MaxPromptTranscriptChars
// characters and marks the cut.
func TruncateTranscript(transcript string) string {
	if utf8.RuneCountInString(transcript) <= MaxPromptTranscriptChars {
		return transcript
	}
	runes := []rune(transcript)
	return string(runes[:MaxPromptTranscriptChars]) + truncationMarker
}
