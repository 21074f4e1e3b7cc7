package recommend

import (
	"math"
	"slices"
	"strings"
	"unicode/utf8"

	"paperrec/internal/corpus"
)

const (
	titleWeight       = 2.0
	descriptionWeight = 1.0
	lexicalBase       = 0.70
	lexicalStep       = 0.05
	maxLexicalScore   = 0.95
)

// LexicalMatch is the scorer's output for one record.
type LexicalMatch struct {
	Raw             float64
	Score           float64
	MatchedKeywords []string
	MatchedFields   MatchedFields
}

// Tokenize lowercases query, splits on whitespace and drops single-rune tokens.
func Tokenize(query string) []string {
	fields := strings.Fields(strings.ToLower(query))
	tokens := make([]string, 0, len(fields))
	for _, f := range fields {
		if utf8.RuneCountInString(f) > 1 {
			tokens = append(tokens, f)
		}
	}
	return tokens
}

// Score computes the title/description keyword overlap between rec and tokens.
// Tokens are expected to come from Tokenize. Raw is zero when nothing matched.
func Score(rec corpus.Record, tokens []string) LexicalMatch {
	title := strings.ToLower(rec.Title)
	description := strings.ToLower(rec.Description)

	var m LexicalMatch
	for _, tok := range tokens {
		inTitle := strings.Contains(title, tok)
		inDescription := strings.Contains(description, tok)
		if inTitle {
			m.Raw += titleWeight
			m.MatchedFields.Title = true
		}
		if inDescription {
			m.Raw += descriptionWeight
			m.MatchedFields.Description = true
		}
		if (inTitle || inDescription) && !slices.Contains(m.MatchedKeywords, tok) {
			m.MatchedKeywords = append(m.MatchedKeywords, tok)
		}
	}

	if m.Raw > 0 {
		m.Score = math.Min(maxLexicalScore, lexicalBase+m.Raw*lexicalStep)
	}
	return m
}
