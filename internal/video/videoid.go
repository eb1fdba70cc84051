// Package video holds the pure helpers around a source video: pulling the
// YouTube id out of a URL and composing the notes prompt for a transcript.
package video

import "regexp"

// idPatterns are tried in order; the first capture group is the id.
var idPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?:youtube\.com/watch\?v=|youtu\.be/|youtube\.com/embed/|youtube\.com/v/|youtube\.com/user/\S+/\S+/\S+|youtube\.com/user/\S+/\S+|youtube\.com/\S+/\S+/\S+|youtube\.com/\S+/\S+|youtube\.com/\S+)([^"&?/\s]{11})`),
	regexp.MustCompile(`(?:youtube\.com.*(?:v=|/v/|/embed/)|youtu\.be/)([^"&?/\s]{11})`),
}

// ExtractID returns the 11-character YouTube video id in url.
func ExtractID(url string) (string, bool) {
	for _, re := range idPatterns {
		if m := re.FindStringSubmatch(url); len(m) > 1 && m[1] != "" {
			return m[1], true
		}
	}
	return "", false
}
