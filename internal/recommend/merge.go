package recommend

import (
	"math"
	"strings"
	"unicode"
)

// Proxy sub-score offsets below the primary score and their floors.
const (
	lexicalOffset      = 0.10
	lexicalFloor       = 0.55
	crossEncoderOffset = 0.05
	crossEncoderFloor  = 0.60
	recencyOffset      = 0.03
	recencyFloor       = 0.60
)

// Merge combines model and fallback results into the final batch. Model results
// keep priority and the fallback only fills what they leave of target. Entries are re-validated,
// deduplicated by normalized title, truncated to target, filtered to
// score >= minScore and enriched with a DetailedReason and a 1-based ID.
func Merge(llmResults, fallbackResults []Recommendation, target int, minScore float64) []Recommendation {
	candidates := make([]Recommendation, 0, len(llmResults)+len(fallbackResults))
	for _, r := range llmResults {
		if n, ok := normalize(r); ok {
			candidates = append(candidates, n)
		}
	}
	for _, r := range fallbackResults {
		if n, ok := normalize(r); ok {
			candidates = append(candidates, n)
		}
	}

	seen := make(map[string]struct{}, len(candidates))
	merged := make([]Recommendation, 0, target)
	for _, r := range candidates {
		if len(merged) == target {
			break
		}
		key := NormalizeTitle(r.Title)
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		merged = append(merged, r)
	}

	out := make([]Recommendation, 0, len(merged))
	for _, r := range merged {
		if r.Score < minScore {
			continue
		}
		r.ID = len(out) + 1
		r.DetailedReason = detailedReason(r)
		out = append(out, r)
	}
	return out
}

// normalize re-validates a record of untrusted origin.
func normalize(r Recommendation) (Recommendation, bool) {
	r.Title = strings.TrimSpace(r.Title)
	if r.Title == "" {
		return Recommendation{}, false
	}
	r.Description = strings.TrimSpace(r.Description)
	r.URL = strings.TrimSpace(r.URL)
	r.Reason = strings.TrimSpace(r.Reason)
	if r.Year <= 0 {
		r.Year = DefaultYear
	}

	switch r.Type {
	case KindDataset:
		r.PaperInfo = nil
		if r.DatasetInfo == nil {
			r.DatasetInfo = &DatasetInfo{}
		}
	default:
		r.Type = KindPaper
		r.DatasetInfo = nil
		if r.PaperInfo == nil {
			r.PaperInfo = &PaperInfo{}
		}
		if r.PaperInfo.Authors == nil {
			info := *r.PaperInfo
			info.Authors = []string{}
			r.PaperInfo = &info
		}
	}

	r.SetScore(r.Score)
	if r.Keywords == nil {
		r.Keywords = []string{}
	}
	if r.MatchedKeywords == nil {
		r.MatchedKeywords = []string{}
	}
	return r, true
}

func detailedReason(r Recommendation) *DetailedReason {
	s := r.Score
	return &DetailedReason{
		BM25Score:           proxy(s, lexicalOffset, lexicalFloor),
		DenseEmbeddingScore: s,
		CrossEncoderScore:   proxy(s, crossEncoderOffset, crossEncoderFloor),
		RecencyScore:        proxy(s, recencyOffset, recencyFloor),
		Explanation:         r.Reason,
		MatchedKeywords:     r.MatchedKeywords,
		MatchedFields:       r.MatchedFields,
	}
}

func proxy(score, offset, floor float64) float64 {
	return roundScore(math.Min(1, math.Max(floor, score-offset)))
}

// NormalizeTitle lowercases title and collapses everything but letters and
// digits so that punctuation and spacing variants compare equal.
func NormalizeTitle(title string) string {
	var b strings.Builder
	b.Grow(len(title))
	space := false
	for _, r := range strings.ToLower(title) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			if space && b.Len() > 0 {
				b.WriteByte(' ')
			}
			b.WriteRune(r)
			space = false
			continue
		}
		space = true
	}
	return b.String()
}
