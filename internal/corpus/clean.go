package corpus

import (
	"html"
	"regexp"
	"strings"
	"unicode"
)

var tagPattern = regexp.MustCompile(`<[^>]*>`)

// CleanText decodes HTML entities, drops markup and collapses whitespace.
func CleanText(s string) string {
	if s == "" {
		return ""
	}
	s = html.UnescapeString(s)
	s = tagPattern.ReplaceAllString(s, " ")
	return strings.Join(strings.Fields(s), " ")
}

// DetectLang returns "ko" when s contains Hangul, otherwise "en".
func DetectLang(s string) string {
	for _, r := range s {
		if unicode.Is(unicode.Hangul, r) {
			return "ko"
		}
	}
	return "en"
}

// CleanStats summarizes a Clean run.
type CleanStats struct {
	In         int
	Out        int
	Empty      int
	Duplicates int
}

// Clean normalizes raw records for publication. Records missing a title or
// description are dropped, as are later duplicates by URL (or by title when the
// URL is empty). Order is preserved.
func Clean(raw []Record) ([]Record, CleanStats) {
	stats := CleanStats{In: len(raw)}
	seen := make(map[string]struct{}, len(raw))
	out := make([]Record, 0, len(raw))

	for _, r := range raw {
		rec := Record{
			Title:       CleanText(r.Title),
			Description: CleanText(r.Description),
			URL:         strings.TrimSpace(r.URL),
		}
		if rec.Title == "" || rec.Description == "" {
			stats.Empty++
			continue
		}

		key := "url:" + rec.URL
		if rec.URL == "" {
			key = "title:" + strings.ToLower(rec.Title)
		}
		if _, dup := seen[key]; dup {
			stats.Duplicates++
			continue
		}
		seen[key] = struct{}{}

		rec.Lang = DetectLang(rec.Title + " " + rec.Description)
		out = append(out, rec)
	}

	stats.Out = len(out)
	return out, stats
}
