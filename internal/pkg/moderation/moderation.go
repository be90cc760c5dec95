package moderation

import (
	"strings"
)

// bannedWords is the word list checked against user-submitted text
// (announcement descriptions, messages). Matching is case-insensitive
// substring, same as the moderation rules the frontend documents.
var bannedWords = []string{
	"insulte1",
	"insulte2",
	"spam",
	"interdit",
	"arnaque",
}

// Check returns the first banned word found in text, or "" if the content is
// acceptable.
func Check(text string) string {
	lower := strings.ToLower(text)
	for _, w := range bannedWords {
		if strings.Contains(lower, w) {
			return w
		}
	}
	return ""
}

// IsSafe reports whether text contains no banned words.
func IsSafe(text string) bool {
	return Check(text) == ""
}
