// Package clarify decides whether a query is too generic to rank and, if so,
// which follow-up question to ask.
package clarify

import (
	"fmt"
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"
)

// Result is the classifier's decision.
type Result struct {
	NeedsClarify bool
	Question     string
	Options      []string
}

type ambiguousEntry struct {
	pattern *regexp.Regexp
	entry   Entry
}

// Classifier applies a Table to queries. It is immutable and safe for concurrent use.
type Classifier struct {
	clear     []string
	ambiguous []ambiguousEntry
	generic   Generic
}

// NewClassifier compiles t.
func NewClassifier(t Table) (*Classifier, error) {
	if err := t.Validate(); err != nil {
		return nil, err
	}

	c := &Classifier{generic: t.Generic}
	for _, kw := range t.ClearKeywords {
		c.clear = append(c.clear, strings.ToLower(strings.TrimSpace(kw)))
	}
	for _, e := range t.Ambiguous {
		re, err := regexp.Compile(`(?i)\b` + regexp.QuoteMeta(strings.TrimSpace(e.Keyword)) + `\b`)
		if err != nil {
			return nil, fmt.Errorf("failed to compile keyword %q: %w", e.Keyword, err)
		}
		c.ambiguous = append(c.ambiguous, ambiguousEntry{pattern: re, entry: e})
	}
	return c, nil
}

// Classify inspects the raw query. The checks run in a fixed order and the
// clear-keyword check always wins; the heuristic makes no linguistic guarantees.
func (c *Classifier) Classify(query string) Result {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return Result{}
	}

	for _, kw := range c.clear {
		if strings.Contains(q, kw) {
			return Result{}
		}
	}

	tokens := strings.Fields(q)
	if len(tokens) <= 2 {
		for _, a := range c.ambiguous {
			if a.pattern.MatchString(q) {
				return Result{
					NeedsClarify: true,
					Question:     a.entry.Question,
					Options:      append([]string(nil), a.entry.Options...),
				}
			}
		}
	}

	if len(tokens) != 1 {
		return Result{}
	}
	if utf8.RuneCountInString(q) <= 2 {
		return Result{}
	}

	topic := capitalize(q)
	options := make([]string, 0, len(c.generic.Options))
	for _, o := range c.generic.Options {
		options = append(options, strings.ReplaceAll(o, TopicPlaceholder, topic))
	}
	return Result{
		NeedsClarify: true,
		Question:     strings.ReplaceAll(c.generic.Question, TopicPlaceholder, topic),
		Options:      options,
	}
}

func capitalize(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}
	return string(unicode.ToUpper(r)) + s[size:]
}
