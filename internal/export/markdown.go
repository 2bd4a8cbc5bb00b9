// Package export writes extracted document text to Markdown files.
package export

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"

	"github.com/thywilljoshua/pdf-chat/internal/analysis"
)

type PageText struct {
	Page int
	Text string
}

var pageMarkerRe = regexp.MustCompile(`(?m)^--- Page (\d+) ---$`)

// SplitPages cuts page-marked text back into its per-page blocks. Text before
// the first marker is dropped.
func SplitPages(text string) []PageText {
	locs := pageMarkerRe.FindAllStringSubmatchIndex(text, -1)
	out := make([]PageText, 0, len(locs))
	for i, loc := range locs {
		n, _ := strconv.Atoi(text[loc[2]:loc[3]])
		end := len(text)
		if i+1 < len(locs) {
			end = locs[i+1][0]
		}
		out = append(out, PageText{Page: n, Text: strings.TrimSpace(text[loc[1]:end])})
	}
	return out
}

// Render builds a Markdown document with front matter and one section per page.
func Render(title, text string, stats analysis.Stats) string {
	var b strings.Builder
	fmt.Fprintf(&b, "---\ntitle: \"%s\"\npages: %d\nwords: %d\nreading_time_minutes: %d\n---\n\n",
		escapeQuotes(title), stats.Pages, stats.WordCount, stats.ReadingTime)
	b.WriteString("# ")
	b.WriteString(title)
	b.WriteString("\n\n")
	for _, pt := range SplitPages(text) {
		if pt.Text == "" {
			continue
		}
		fmt.Fprintf(&b, "## Page %d\n\n%s\n\n", pt.Page, pt.Text)
	}
	return strings.TrimRight(b.String(), "\n") + "\n"
}

// Write renders the document into outDir/<slug>.md and returns the path.
func Write(outDir, title, text string, stats analysis.Stats) (string, error) {
	if outDir == "" {
		outDir = "."
	}
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return "", err
	}
	slug := slugify(strings.TrimSuffix(title, filepath.Ext(title)))
	if slug == "" {
		slug = "document"
	}
	file := filepath.Join(outDir, slug+".md")
	if err := os.WriteFile(file, []byte(Render(title, text, stats)), 0o644); err != nil {
		return "", err
	}
	return file, nil
}

func escapeQuotes(s string) string { return strings.ReplaceAll(s, "\"", "\\\"") }

var nonSlug = regexp.MustCompile(`[^a-z0-9\-]+`)

func slugify(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	s = strings.NewReplacer(" ", "-", "/", "-", ".", "-", "_", "-").Replace(s)
	s = nonSlug.ReplaceAllString(s, "-")
	for strings.Contains(s, "--") {
		s = strings.ReplaceAll(s, "--", "-")
	}
	return strings.Trim(s, "-")
}
