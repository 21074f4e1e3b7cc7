package recommend

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"paperrec/internal/corpus"
)

const (
	// DefaultYear is used when a corpus record carries no year.
	DefaultYear = 2023

	descriptionLimit       = 200
	descriptionPlaceholder = "A related research paper."

	fallbackJournal = "NDSL"
	fallbackAuthor  = "Research Authors"
	seedAuthor      = "Research Team"

	// Synthetic scores in units of 1/scoreScale.
	padStart  = 8800
	padStep   = 100
	seedStart = 9500
	seedStep  = 80
	// Seeds alternate with a dataset every seedDatasetEvery entries.
	seedDatasetEvery = 5

	minCitations   = 50
	citationSpread = 500
)

// Rand is the pseudo-random source for synthetic citation counts.
// *math/rand/v2.Rand satisfies it.
type Rand interface {
	IntN(n int) int
}

// Fallback ranks the corpus lexically and fills the batch with synthetic entries
// when the corpus yields too few matches: real matches first, then the rest of
// the corpus in original order, then replicated seed papers.
type Fallback struct {
	target int
	floor  float64
}

// NewFallback creates a generator for batches of target records. Synthetic
// padding scores descend toward, but stay above, floor.
func NewFallback(target int, floor float64) *Fallback {
	return &Fallback{target: target, floor: floor}
}

type scoredRecord struct {
	index int
	match LexicalMatch
}

// Generate builds target recommendations for query with distinct normalized
// titles. Titles in exclude, typically the model's own results, are not repeated.
func (f *Fallback) Generate(query string, records []corpus.Record, rng Rand, exclude ...string) []Recommendation {
	tokens := Tokenize(query)

	seen := make(map[string]struct{}, f.target+len(exclude))
	for _, title := range exclude {
		seen[NormalizeTitle(title)] = struct{}{}
	}
	claim := func(title string) bool {
		key := NormalizeTitle(title)
		if _, dup := seen[key]; dup {
			return false
		}
		seen[key] = struct{}{}
		return true
	}

	matches := make([]scoredRecord, 0, len(records))
	for i, rec := range records {
		m := Score(rec, tokens)
		if m.Raw > 0 {
			matches = append(matches, scoredRecord{index: i, match: m})
		}
	}
	sort.SliceStable(matches, func(a, b int) bool {
		return matches[a].match.Score > matches[b].match.Score
	})

	out := make([]Recommendation, 0, f.target)
	used := make(map[int]struct{}, len(matches))
	for _, sr := range matches {
		if len(out) == f.target {
			break
		}
		used[sr.index] = struct{}{}
		if !claim(records[sr.index].Title) {
			continue
		}
		out = append(out, f.fromMatch(query, tokens, records[sr.index], sr.match, rng))
	}

	step := stepUnits(padStart, padStep, f.floor, f.target)
	for i, n := 0, 0; i < len(records) && len(out) < f.target; i++ {
		if _, ok := used[i]; ok {
			continue
		}
		if !claim(records[i].Title) {
			continue
		}
		score := float64(padStart-n*step) / scoreScale
		out = append(out, f.fromPadding(query, tokens, records[i], score, rng))
		n++
	}

	step = stepUnits(seedStart, seedStep, f.floor, f.target)
	for i, n := 0, 0; len(out) < f.target; i++ {
		s := seed(query, tokens, i, float64(seedStart-n*step)/scoreScale)
		if !claim(s.Title) {
			continue
		}
		out = append(out, s)
		n++
	}

	return out
}

func (f *Fallback) fromMatch(query string, tokens []string, rec corpus.Record, m LexicalMatch, rng Rand) Recommendation {
	r := NewPaper(rec.Title, truncateDescription(rec.Description), rec.URL, DefaultYear, m.Score, PaperInfo{
		Journal:       fallbackJournal,
		Authors:       []string{fallbackAuthor},
		CitationCount: minCitations + rng.IntN(citationSpread),
	})
	r.MatchedKeywords = m.MatchedKeywords
	r.MatchedFields = m.MatchedFields
	r.Keywords = m.MatchedKeywords
	if len(r.Keywords) == 0 {
		r.Keywords = tokens
	}
	r.Reason = matchReason(query, m.MatchedKeywords)
	return r
}

func (f *Fallback) fromPadding(query string, tokens []string, rec corpus.Record, score float64, rng Rand) Recommendation {
	r := NewPaper(rec.Title, truncateDescription(rec.Description), rec.URL, DefaultYear, score, PaperInfo{
		Journal:       fallbackJournal,
		Authors:       []string{fallbackAuthor},
		CitationCount: minCitations + rng.IntN(citationSpread),
	})
	r.Keywords = tokens
	r.MatchedKeywords = []string{}
	r.Reason = fmt.Sprintf("Recommended as research related to %q.", query)
	return r
}

func seed(query string, tokens []string, i int, score float64) Recommendation {
	suffix := fmt.Sprintf(" - Related Study %d", i/seedDatasetEvery+1)

	var r Recommendation
	if i%seedDatasetEvery == 0 {
		d := seedDatasets[(i/seedDatasetEvery)%len(seedDatasets)]
		r = NewDataset(d.title+suffix, prefixQuery(query, d.description), d.url, d.year, score, DatasetInfo{
			Publisher: d.publisher,
			DataSize:  d.dataSize,
			Format:    d.format,
		})
	} else {
		p := seedPapers[(i-i/seedDatasetEvery-1)%len(seedPapers)]
		r = NewPaper(p.title+suffix, prefixQuery(query, p.description), p.url, p.year, score, PaperInfo{
			Journal:       p.journal,
			Authors:       []string{seedAuthor},
			CitationCount: p.citationCount,
		})
	}
	r.Keywords = tokens
	r.MatchedKeywords = []string{}
	r.Reason = fmt.Sprintf("Recommended as foundational work for research on %q.", query)
	return r
}

// stepUnits returns the per-item score decrement so that count items starting at
// start stay above floor, capped at def and never below one unit.
func stepUnits(start, def int, floor float64, count int) int {
	if count <= 0 {
		return def
	}
	step := (start - floorUnits(floor)) / count
	if step > def {
		step = def
	}
	if step < 1 {
		step = 1
	}
	return step
}

func floorUnits(floor float64) int {
	return int(math.Round(floor * scoreScale))
}

// PaddingStart is the score of the first padded corpus record. Score floors must
// stay below it.
const PaddingStart = float64(padStart) / scoreScale

// MaxTarget is the largest batch whose synthetic padding still stays above floor.
// It is zero when floor leaves no room below PaddingStart.
func MaxTarget(floor float64) int {
	return max(padStart-floorUnits(floor), 0)
}

// ValidateBatch reports whether a batch of target records with score floor
// minScore can always be filled by the fallback.
func ValidateBatch(target int, minScore float64) error {
	if minScore < 0 || minScore >= PaddingStart {
		return fmt.Errorf("score floor must be in [0, %.2f), got %v", PaddingStart, minScore)
	}
	if target <= 0 {
		return fmt.Errorf("batch size must be greater than 0, got %d", target)
	}
	if limit := MaxTarget(minScore); target > limit {
		return fmt.Errorf("batch size %d exceeds %d, the most that fit above score floor %v", target, limit, minScore)
	}
	return nil
}

func truncateDescription(desc string) string {
	desc = strings.TrimSpace(desc)
	if desc == "" {
		return descriptionPlaceholder
	}
	runes := []rune(desc)
	if len(runes) <= descriptionLimit {
		return desc
	}
	return strings.TrimSpace(string(runes[:descriptionLimit])) + "..."
}

func prefixQuery(query, description string) string {
	query = strings.TrimSpace(query)
	if query == "" {
		return description
	}
	return query + ": " + description
}

func matchReason(query string, matched []string) string {
	if len(matched) == 0 {
		return fmt.Sprintf("Research related to %q with high semantic similarity.", query)
	}
	shown := matched
	if len(shown) > 2 {
		shown = shown[:2]
	}
	quoted := make([]string, len(shown))
	for i, kw := range shown {
		quoted[i] = fmt.Sprintf("%q", kw)
	}
	return fmt.Sprintf("Research related to %q; matched keywords %s.", query, strings.Join(quoted, ", "))
}
