package report

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

const (
	maxKeywords        = 10
	maxKeywordLineLen  = 100
	maxWordsPerLine    = 3
	minKeywordWordRune = 3
)

var (
	hashtagRE   = regexp.MustCompile(`#\w+`)
	wordSplitRE = regexp.MustCompile(`[\s,]+`)

	// markerWords flag description lines that tend to list topics.
	markerWords = []string{"Code", "Tips", "Tricks"}
)

// ExtractKeywords derives up to ten keywords from a video description: every
// hashtag, plus a few words from short lines mentioning a marker word.
// Order is first-seen and duplicates are dropped.
func ExtractKeywords(description string) []string {
	var candidates []string

	for _, tag := range hashtagRE.FindAllString(description, -1) {
		candidates = append(candidates, tag[1:])
	}

	for _, line := range strings.Split(description, "\n") {
		if utf8.RuneCountInString(line) >= maxKeywordLineLen || !hasMarkerWord(line) {
			continue
		}
		kept := 0
		for _, word := range wordSplitRE.Split(line, -1) {
			if kept == maxWordsPerLine {
				break
			}
			if isKeywordWord(word) {
				candidates = append(candidates, word)
				kept++
			}
		}
	}

	return dedupe(candidates, maxKeywords)
}

func hasMarkerWord(line string) bool {
	for _, marker := range markerWords {
		if strings.Contains(line, marker) {
			return true
		}
	}
	return false
}

func isKeywordWord(word string) bool {
	if utf8.RuneCountInString(word) < minKeywordWordRune {
		return false
	}
	return !strings.Contains(word, "http") &&
		!strings.Contains(word, "@") &&
		!strings.Contains(word, ".")
}

func dedupe(items []string, limit int) []string {
	seen := make(map[string]bool, len(items))
	out := make([]string, 0, limit)
	for _, item := range items {
		if seen[item] {
			continue
		}
		seen[item] = true
		out = append(out, item)
		if len(out) == limit {
			break
		}
	}
	return out
}
