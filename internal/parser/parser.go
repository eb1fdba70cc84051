// Package parser turns the raw texts produced upstream (generated notes and
// video transcripts) into the structures in package doctree. Every function
// here is total: malformed input yields degenerate output, never an error.
package parser

import (
	"fmt"
	"io"
	"strings"
)

// splitLines splits on "\n" only, keeping empty lines and any "\r".
func splitLines(text string) []string {
	return strings.Split(text, "\n")
}

// ReadText reads at most maxBytes from r as text.
func ReadText(r io.Reader, maxBytes int64) (string, error) {
	data, err := io.ReadAll(io.LimitReader(r, maxBytes+1))
	if err != nil {
		return "", fmt.Errorf("read text: %w", err)
	}
	if int64(len(data)) > maxBytes {
		return "", fmt.Errorf("input exceeds max size (%d bytes)", maxBytes)
	}
	return string(data), nil
}
