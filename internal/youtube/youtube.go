// Package youtube normalizes the various YouTube link formats users paste
// into a pin down to the bare 11-character video id.
package youtube

import "regexp"

var (
	urlPattern  = regexp.MustCompile(`(?:youtube\.com/watch\?v=|youtu\.be/|youtube\.com/embed/)([^&\n?#]+)`)
	barePattern = regexp.MustCompile(`^[a-zA-Z0-9_-]{11}$`)
)

// ExtractID returns the video id embedded in a watch, short or embed URL, or
// the input itself when it already is a bare 11-character id. The second
// return value is false when nothing matches.
func ExtractID(input string) (string, bool) {
	if m := urlPattern.FindStringSubmatch(input); m != nil {
		return m[1], true
	}
	if barePattern.MatchString(input) {
		return input, true
	}
	return "", false
}
