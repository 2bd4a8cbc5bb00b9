// Package analysis derives statistics and structured entities from extracted
// document text. Everything here is a pure function of its input.
package analysis

import (
	"strings"
	"unicode/utf8"
)

// WordsPerMinute is the reading speed used for ReadingTime.
const WordsPerMinute = 200

type Stats struct {
	WordCount      int `json:"wordCount"`
	CharacterCount int `json:"characterCount"`
	ReadingTime    int `json:"readingTime"`
	Pages          int `json:"pages"`
}

// ComputeStats counts whitespace-separated words and characters in text.
// ReadingTime is in whole minutes, rounded up.
func ComputeStats(text string, pageCount int) Stats {
	words := len(strings.Fields(text))
	if pageCount < 0 {
		pageCount = 0
	}
	return Stats{
		WordCount:      words,
		CharacterCount: utf8.RuneCountInString(text),
		ReadingTime:    (words + WordsPerMinute - 1) / WordsPerMinute,
		Pages:          pageCount,
	}
}
