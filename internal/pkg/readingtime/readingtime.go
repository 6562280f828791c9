// Package readingtime estimates how long a post takes to read.
package readingtime

import "strings"

// WordsPerMinute is the assumed reading speed for estimates.
const WordsPerMinute = 200

// StripHTML removes markup from rendered post content so only the readable
// text is counted.
func StripHTML(html string) string {
	var result strings.Builder
	var inTag bool
	for _, r := range html {
		if r == '<' {
			inTag = true
			continue
		}
		if r == '>' {
			inTag = false
			result.WriteRune(' ')
			continue
		}
		if !inTag {
			result.WriteRune(r)
		}
	}
	return result.String()
}

// Estimate returns the reading time of the given content in whole minutes.
// Non-empty content never estimates below one minute.
func Estimate(content string) int {
	words := len(strings.Fields(StripHTML(content)))
	if words == 0 {
		return 0
	}

	minutes := words / WordsPerMinute
	if words%WordsPerMinute != 0 {
		minutes++
	}
	return minutes
}
