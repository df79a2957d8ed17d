package youtube

import (
	"regexp"
	"strings"
)

// Patterns stripped from raw caption text before any LLM sees it: non-speech
// markers, filler words, and the usual outro boilerplate.
var noisePatterns = []*regexp.Regexp{
	regexp.MustCompile(`\[.*?\]`), // [Music], [Applause]
	regexp.MustCompile(`\(.*?\)`),
	regexp.MustCompile(`(?i)\b(um|uh|ah|er|hmm|you know|i mean|basically|actually|literally)\b`),
	regexp.MustCompile(`(?i)\b(sponsored|advertisement|promotion)\b`),
	regexp.MustCompile(`(?i)please like and subscribe.*`),
	regexp.MustCompile(`(?i)thanks for watching.*`),
	regexp.MustCompile(`(?i)hit the bell icon.*`),
	regexp.MustCompile(`(?i)comment below.*`),
}

var whitespaceRe = regexp.MustCompile(`\s+`)

// Normalize strips caption noise and collapses whitespace.
func Normalize(transcript string) string {
	cleaned := transcript
	for _, pattern := range noisePatterns {
		cleaned = pattern.ReplaceAllString(cleaned, "")
	}
	return strings.TrimSpace(whitespaceRe.ReplaceAllString(cleaned, " "))
}

// WordCount counts whitespace-separated words.
func WordCount(text string) int {
	return len(strings.Fields(text))
}
