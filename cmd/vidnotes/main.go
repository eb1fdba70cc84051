// Command vidnotes structures generated video notes and transcripts from the
// command line. Every subcommand prints indented JSON.
package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/alecthomas/kong"

	"github.com/dgallion1/vidnotes/internal/notesview"
	"github.com/dgallion1/vidnotes/internal/parser"
	"github.com/dgallion1/vidnotes/internal/video"
)

const maxInputBytes = 32 << 20

// CLI defines the command-line interface for vidnotes.
var CLI struct {
	Notes      NotesCmd      `cmd:"" help:"Parse generated notes into sections"`
	Blocks     BlocksCmd     `cmd:"" help:"Parse notes and classify each section into paragraphs and lists"`
	Transcript TranscriptCmd `cmd:"" help:"Split a transcript into timestamped lines"`
	View       ViewCmd       `cmd:"" help:"Build the full notes view from notes and transcript"`
	Prompt     PromptCmd     `cmd:"" help:"Print the notes-generation prompt for a transcript"`
	VideoID    VideoIDCmd    `cmd:"" name:"video-id" help:"Extract the YouTube video id from a URL"`
}

type NotesCmd struct {
	File string `arg:"" help:"Notes file, or - for stdin" default:"-"`
}

func (c *NotesCmd) Run(out io.Writer) error {
	text, err := readInput(c.File)
	if err != nil {
		return err
	}
	return printJSON(out, parser.ParseNotes(text))
}

type BlocksCmd struct {
	File string `arg:"" help:"Notes file, or - for stdin" default:"-"`
}

func (c *BlocksCmd) Run(out io.Writer) error {
	text, err := readInput(c.File)
	if err != nil {
		return err
	}
	v := notesview.Build(text, "", notesview.Options{})
	return printJSON(out, v.Sections)
}

type TranscriptCmd struct {
	File string `arg:"" help:"Transcript file, or - for stdin" default:"-"`
}

func (c *TranscriptCmd) Run(out io.Writer) error {
	text, err := readInput(c.File)
	if err != nil {
		return err
	}
	return printJSON(out, parser.ParseTranscript(text))
}

type ViewCmd struct {
	Notes      string `required:"" help:"Notes file" type:"existingfile"`
	Transcript string `required:"" help:"Transcript file" type:"existingfile"`
	Full       bool   `help:"Include the whole transcript instead of the preview"`
	Preview    int    `help:"Transcript lines in the preview" default:"13"`
}

func (c *ViewCmd) Run(out io.Writer) error {
	notes, err := readInput(c.Notes)
	if err != nil {
		return err
	}
	transcript, err := readInput(c.Transcript)
	if err != nil {
		return err
	}
	return printJSON(out, notesview.Build(notes, transcript, notesview.Options{
		PreviewLines:   c.Preview,
		FullTranscript: c.Full,
	}))
}

type PromptCmd struct {
	File string `arg:"" help:"Transcript file, or - for stdin" default:"-"`
}

func (c *PromptCmd) Run(out io.Writer) error {
	text, err := readInput(c.File)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(out, video.BuildNotesPrompt(text))
	return err
}

type VideoIDCmd struct {
	URL string `arg:"" help:"YouTube URL"`
}

func (c *VideoIDCmd) Run(out io.Writer) error {
	id, ok := video.ExtractID(c.URL)
	if !ok {
		return fmt.Errorf("no YouTube video id in %q", c.URL)
	}
	return printJSON(out, map[string]string{"video_id": id})
}

func readInput(path string) (string, error) {
	if path == "-" {
		return parser.ReadText(os.Stdin, maxInputBytes)
	}
	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()
	return parser.ReadText(f, maxInputBytes)
}

func printJSON(out io.Writer, v any) error {
	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func main() {
	ctx := kong.Parse(&CLI,
		kong.Name("vidnotes"),
		kong.Description("Structure generated video notes and transcripts."),
		kong.UsageOnError(),
		kong.BindTo(os.Stdout, (*io.Writer)(nil)),
	)
	ctx.FatalIfErrorf(ctx.Run())
}
