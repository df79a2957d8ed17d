package wikilink

import (
	"regexp"
	"sort"
	"strings"
	"unicode/utf8"
)

const minKeywordLen = 3

// ParseKeywords splits a comma-separated model response into usable wikilink
// terms, dropping empties and very short fragments.
func ParseKeywords(csv string) []string {
	var keywords []string
	for _, part := range strings.Split(csv, ",") {
		kw := strings.TrimSpace(part)
		if utf8.RuneCountInString(kw) >= minKeywordLen {
			keywords = append(keywords, kw)
		}
	}
	return keywords
}

// AddLinks rewrites every case-insensitive whole-word occurrence of each
// keyword as [[keyword]]. Keywords are processed longest first so a shorter
// term never matches inside a longer one that was already linked, and
// occurrences already inside [[...]] are left alone, which makes the pass
// idempotent for a fixed keyword set.
func AddLinks(text string, keywords []string) string {
	sorted := append([]string(nil), keywords...)
	sort.Slice(sorted, func(i, j int) bool { return len(sorted[i]) > len(sorted[j]) })

	linked := text
	for _, keyword := range sorted {
		pattern, err := regexp.Compile(`(?i)\b` + regexp.QuoteMeta(keyword) + `\b`)
		if err != nil {
			continue
		}
		linked = replaceOutsideLinks(linked, pattern)
	}
	return linked
}

// replaceOutsideLinks wraps matches of pattern in [[...]], skipping any match
// that overlaps an existing [[...]] span.
func replaceOutsideLinks(text string, pattern *regexp.Regexp) string {
	spans := linkSpans(text)
	matches := pattern.FindAllStringIndex(text, -1)
	if len(matches) == 0 {
		return text
	}

	var out strings.Builder
	out.Grow(len(text) + 4*len(matches))
	prev := 0
	for _, m := range matches {
		if insideSpan(spans, m[0], m[1]) {
			continue
		}
		out.WriteString(text[prev:m[0]])
		out.WriteString("[[")
		out.WriteString(text[m[0]:m[1]])
		out.WriteString("]]")
		prev = m[1]
	}
	out.WriteString(text[prev:])
	return out.String()
}

var linkSpanRe = regexp.MustCompile(`\[\[[^\[\]]*\]\]`)

func linkSpans(text string) [][]int {
	return linkSpanRe.FindAllStringIndex(text, -1)
}

func insideSpan(spans [][]int, start, end int) bool {
	for _, span := range spans {
		if start < span[1] && end > span[0] {
			return true
		}
	}
	return false
}
