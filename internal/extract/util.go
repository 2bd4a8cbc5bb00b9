package extract

import (
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"
)

var whitespaceRun = regexp.MustCompile(`\s+`)

// normalizeText collapses every whitespace run to a single space and trims.
func normalizeText(s string) string {
	return strings.TrimSpace(whitespaceRun.ReplaceAllString(s, " "))
}

func sufficient(s string, min int) bool {
	return s != "" && utf8.RuneCountInString(s) >= min
}

func pageMarker(n int) string {
	return fmt.Sprintf("--- Page %d ---", n)
}

func pageBlock(n int, text string) string {
	return pageMarker(n) + "\n" + text + "\n"
}

var sizeUnits = []string{"Bytes", "KB", "MB", "GB"}

// FormatFileSize renders a byte count with base-1024 units and two decimals,
// e.g. "30.00 MB".
func FormatFileSize(bytes int64) string {
	if bytes <= 0 {
		return "0 Bytes"
	}
	i := 0
	div := int64(1)
	for i < len(sizeUnits)-1 && bytes >= div*1024 {
		div *= 1024
		i++
	}
	return fmt.Sprintf("%.2f %s", float64(bytes)/float64(div), sizeUnits[i])
}
