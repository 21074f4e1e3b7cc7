package clarify

import (
	"embed"
	"fmt"
	"os"
	"strings"

	"go.yaml.in/yaml/v3"
)

//go:embed tables/*.yaml
var tablesFS embed.FS

// TopicPlaceholder is replaced by the capitalized query in generic prompts.
const TopicPlaceholder = "{topic}"

// Entry maps one overloaded keyword to its clarifying question.
type Entry struct {
	Keyword  string   `yaml:"keyword"`
	Question string   `yaml:"question"`
	Options  []string `yaml:"options"`
}

// Generic is the prompt synthesized for unknown single-word queries.
type Generic struct {
	Question string   `yaml:"question"`
	Options  []string `yaml:"options"`
}

// Table is the locale-specific data driving the classifier.
type Table struct {
	ClearKeywords []string `yaml:"clear_keywords"`
	Ambiguous     []Entry  `yaml:"ambiguous"`
	Generic       Generic  `yaml:"generic"`
}

// Validate checks the structural rules the classifier relies on.
func (t Table) Validate() error {
	for i, kw := range t.ClearKeywords {
		if strings.TrimSpace(kw) == "" {
			return fmt.Errorf("clear_keywords[%d] is empty", i)
		}
	}
	for i, e := range t.Ambiguous {
		if strings.TrimSpace(e.Keyword) == "" {
			return fmt.Errorf("ambiguous[%d].keyword is empty", i)
		}
		if e.Question == "" {
			return fmt.Errorf("ambiguous[%d].question is empty", i)
		}
		if n := len(e.Options); n < 3 || n > 5 {
			return fmt.Errorf("ambiguous[%d] (%s) has %d options, want 3-5", i, e.Keyword, n)
		}
	}
	if t.Generic.Question == "" {
		return fmt.Errorf("generic.question is empty")
	}
	if n := len(t.Generic.Options); n < 3 || n > 5 {
		return fmt.Errorf("generic has %d options, want 3-5", n)
	}
	return nil
}

// ParseTable decodes and validates a YAML table.
func ParseTable(data []byte) (Table, error) {
	var t Table
	if err := yaml.Unmarshal(data, &t); err != nil {
		return Table{}, fmt.Errorf("failed to parse clarification table: %w", err)
	}
	if err := t.Validate(); err != nil {
		return Table{}, fmt.Errorf("invalid clarification table: %w", err)
	}
	return t, nil
}

// LoadTable reads a table from path.
func LoadTable(path string) (Table, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Table{}, fmt.Errorf("failed to read clarification table: %w", err)
	}
	return ParseTable(data)
}

// BuiltinTable returns the embedded table for locale ("en" or "ko").
func BuiltinTable(locale string) (Table, error) {
	data, err := tablesFS.ReadFile("tables/" + locale + ".yaml")
	if err != nil {
		return Table{}, fmt.Errorf("no built-in clarification table for locale %q", locale)
	}
	return ParseTable(data)
}
