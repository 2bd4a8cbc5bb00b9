package analysis

import (
	"regexp"
	"strings"
)

var (
	emailRe = regexp.MustCompile(`\b[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}\b`)
	phoneRe = regexp.MustCompile(`(\+?\d{1,3}[-.\s]?)?\(?\d{3}\)?[-.\s]?\d{3}[-.\s]?\d{4}`)
	urlRe   = regexp.MustCompile(`https?://[^\s]+`)
	dateRe  = regexp.MustCompile(`\b\d{1,2}[/\-.]\d{1,2}[/\-.]\d{2,4}\b|\b\d{4}[/\-.]\d{1,2}[/\-.]\d{1,2}\b`)
)

// urlTrailing is punctuation that usually ends a sentence rather than a URL.
const urlTrailing = `.,;:!?'">`

var closingBracket = map[byte]byte{')': '(', ']': '[', '}': '{'}

type KeyInfo struct {
	Emails []string `json:"emails"`
	Phones []string `json:"phones"`
	URLs   []string `json:"urls"`
	Dates  []string `json:"dates"`
}

// ExtractKeyInfo finds emails, phone numbers, http(s) URLs and numeric dates
// in text. Each list holds distinct values in order of first appearance.
func ExtractKeyInfo(text string) KeyInfo {
	urls := urlRe.FindAllString(text, -1)
	for i, u := range urls {
		urls[i] = trimURL(u)
	}
	return KeyInfo{
		Emails: dedupe(emailRe.FindAllString(text, -1)),
		Phones: dedupe(phoneRe.FindAllString(text, -1)),
		URLs:   dedupe(urls),
		Dates:  dedupe(dateRe.FindAllString(text, -1)),
	}
}

// trimURL drops trailing sentence punctuation. A closing bracket is kept when
// the URL opened a matching one, as in wiki/Go_(programming_language).
func trimURL(u string) string {
	for u != "" {
		last := u[len(u)-1]
		if strings.IndexByte(urlTrailing, last) >= 0 {
			u = u[:len(u)-1]
			continue
		}
		open, ok := closingBracket[last]
		if !ok || strings.Count(u, string(open)) >= strings.Count(u, string(last)) {
			break
		}
		u = u[:len(u)-1]
	}
	return u
}

func dedupe(in []string) []string {
	out := make([]string, 0, len(in))
	seen := make(map[string]struct{}, len(in))
	for _, v := range in {
		if v == "" {
			continue
		}
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	return out
}
