// Package recommend builds ranked paper and dataset recommendations from an LLM
// response and a keyword-matched corpus fallback.
package recommend

import "math"

// Kind tags the Recommendation variant.
type Kind string

const (
	KindPaper   Kind = "paper"
	KindDataset Kind = "dataset"
)

// Level is the human-readable relevance tier derived from a score.
type Level string

const (
	LevelMostRecommended Level = "most-recommended"
	LevelRecommended     Level = "recommended"
	LevelReference       Level = "reference"
)

// Level thresholds.
const (
	MostRecommendedThreshold = 0.90
	RecommendedThreshold     = 0.85
)

// LevelFor maps a score to its level.
func LevelFor(score float64) Level {
	switch {
	case score >= MostRecommendedThreshold:
		return LevelMostRecommended
	case score >= RecommendedThreshold:
		return LevelRecommended
	default:
		return LevelReference
	}
}

// PaperInfo holds the fields only papers carry.
type PaperInfo struct {
	Journal       string   `json:"journal"`
	Authors       []string `json:"authors"`
	CitationCount int      `json:"citationCount"`
}

// DatasetInfo holds the fields only datasets carry.
type DatasetInfo struct {
	Publisher string `json:"publisher"`
	DataSize  string `json:"dataSize"`
	Format    string `json:"format"`
}

// MatchedFields records which record fields a query keyword hit.
type MatchedFields struct {
	Title       bool `json:"title"`
	Description bool `json:"description"`
	Keywords    bool `json:"keywords"`
}

// DetailedReason breaks the score into named proxy signals for display.
type DetailedReason struct {
	BM25Score           float64       `json:"bm25Score"`
	DenseEmbeddingScore float64       `json:"denseEmbeddingScore"`
	CrossEncoderScore   float64       `json:"crossEncoderScore"`
	RecencyScore        float64       `json:"recencyScore"`
	Explanation         string        `json:"explanation"`
	MatchedKeywords     []string      `json:"matchedKeywords"`
	MatchedFields       MatchedFields `json:"matchedFields"`
}

// Recommendation is one ranked result. Exactly one of PaperInfo and DatasetInfo
// is set, matching Type; both are embedded so the JSON stays flat.
type Recommendation struct {
	ID              int             `json:"id"`
	Type            Kind            `json:"type"`
	Title           string          `json:"title"`
	Description     string          `json:"description"`
	URL             string          `json:"url"`
	Year            int             `json:"year"`
	Score           float64         `json:"score"`
	Level           Level           `json:"level"`
	Reason          string          `json:"reason"`
	Keywords        []string        `json:"keywords"`
	MatchedKeywords []string        `json:"matchedKeywords"`
	MatchedFields   MatchedFields   `json:"matchedFields"`
	DetailedReason  *DetailedReason `json:"detailedReason,omitempty"`

	*PaperInfo
	*DatasetInfo
}

// NewPaper returns a paper recommendation with level derived from score.
func NewPaper(title, description, url string, year int, score float64, info PaperInfo) Recommendation {
	score = roundScore(score)
	return Recommendation{
		Type:        KindPaper,
		Title:       title,
		Description: description,
		URL:         url,
		Year:        year,
		Score:       score,
		Level:       LevelFor(score),
		PaperInfo:   &info,
	}
}

// NewDataset returns a dataset recommendation with level derived from score.
func NewDataset(title, description, url string, year int, score float64, info DatasetInfo) Recommendation {
	score = roundScore(score)
	return Recommendation{
		Type:        KindDataset,
		Title:       title,
		Description: description,
		URL:         url,
		Year:        year,
		Score:       score,
		Level:       LevelFor(score),
		DatasetInfo: &info,
	}
}

// SetScore clamps score to [0, 1] and updates Level.
func (r *Recommendation) SetScore(score float64) {
	r.Score = roundScore(clamp01(score))
	r.Level = LevelFor(r.Score)
}

func clamp01(v float64) float64 {
	if math.IsNaN(v) || v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// scoreScale is the score resolution. Scores are rounded to it so threshold
// comparisons are not skewed by float noise (0.7+4*0.05 < 0.9 in float64).
const scoreScale = 10000

func roundScore(v float64) float64 {
	return math.Round(v*scoreScale) / scoreScale
}
