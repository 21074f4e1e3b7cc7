package recommend

import (
	"fmt"
	"math/rand/v2"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"paperrec/internal/corpus"
)

func seededRand() *rand.Rand {
	return rand.New(rand.NewPCG(1, 2))
}

func makeCorpus(n int) []corpus.Record {
	records := make([]corpus.Record, n)
	for i := range records {
		records[i] = corpus.Record{
			Title:       fmt.Sprintf("Unrelated study %d", i),
			Description: "Agricultural soil sampling.",
			URL:         fmt.Sprintf("https://example.org/%d", i),
		}
	}
	return records
}

func TestFallback_MatchesRankedFirst(t *testing.T) {
	records := makeCorpus(60)
	records[10] = corpus.Record{Title: "Climate change in coastal cities", Description: "Climate adaptation.", URL: "https://example.org/climate"}
	records[40] = corpus.Record{Title: "Urban heat", Description: "Climate effects on cities.", URL: "https://example.org/heat"}

	out := NewFallback(50, 0.55).Generate("climate change", records, seededRand())

	require.Len(t, out, 50)
	assert.Equal(t, "Climate change in coastal cities", out[0].Title)
	assert.Equal(t, []string{"climate", "change"}, out[0].MatchedKeywords)
	assert.True(t, out[0].MatchedFields.Title)
	assert.Equal(t, "Urban heat", out[1].Title)
	assert.Contains(t, out[0].Reason, `"climate"`)
	assert.Greater(t, out[0].Score, out[1].Score)

	for _, r := range out {
		assert.Equal(t, KindPaper, r.Type)
		assert.Equal(t, LevelFor(r.Score), r.Level)
		require.NotNil(t, r.PaperInfo)
		assert.GreaterOrEqual(t, r.CitationCount, 50)
		assert.Less(t, r.CitationCount, 550)
	}
}

func TestFallback_PaddingDescendsAboveFloor(t *testing.T) {
	records := makeCorpus(80)
	records[3].Title = "Quantum sensing"

	out := NewFallback(50, 0.55).Generate("quantum", records, seededRand())

	require.Len(t, out, 50)
	assert.Equal(t, "Quantum sensing", out[0].Title)

	padded := out[1:]
	for i, r := range padded {
		assert.NotEqual(t, "Quantum sensing", r.Title, "matched record must not be padded again")
		assert.GreaterOrEqual(t, r.Score, 0.55)
		assert.LessOrEqual(t, r.Score, 0.88)
		if i > 0 {
			assert.Less(t, r.Score, padded[i-1].Score, "padded scores must strictly descend")
		}
	}
	assert.Equal(t, 0.88, padded[0].Score)
	assert.Equal(t, "Unrelated study 0", padded[0].Title)
}

func TestFallback_SeedsWhenCorpusEmpty(t *testing.T) {
	out := NewFallback(50, 0.55).Generate("graph theory", nil, seededRand())

	require.Len(t, out, 50)
	datasets := 0
	for i, r := range out {
		assert.Contains(t, r.Title, fmt.Sprintf("Related Study %d", i/5+1))
		assert.True(t, strings.HasPrefix(r.Description, "graph theory: "))
		assert.GreaterOrEqual(t, r.Score, 0.55)
		if i > 0 {
			assert.Less(t, r.Score, out[i-1].Score)
		}
		if r.Type == KindDataset {
			datasets++
			assert.Nil(t, r.PaperInfo)
			require.NotNil(t, r.DatasetInfo)
			assert.NotEmpty(t, r.Publisher)
		} else {
			assert.Nil(t, r.DatasetInfo)
			require.NotNil(t, r.PaperInfo)
		}
	}
	assert.Equal(t, 10, datasets)
	assert.Equal(t, 0.95, out[0].Score)
}

func TestFallback_SmallCorpusTopsUpWithSeeds(t *testing.T) {
	records := makeCorpus(3)

	out := NewFallback(10, 0.55).Generate("soil", records, seededRand())

	require.Len(t, out, 10)
	for i := 0; i < 3; i++ {
		assert.NotContains(t, out[i].Title, "Related Study")
		assert.NotEmpty(t, out[i].MatchedKeywords)
	}
	for i := 3; i < 10; i++ {
		assert.Contains(t, out[i].Title, "Related Study")
	}
}

func TestFallback_Deterministic(t *testing.T) {
	records := makeCorpus(20)
	f := NewFallback(20, 0.55)

	a := f.Generate("soil sampling", records, seededRand())
	b := f.Generate("soil sampling", records, seededRand())

	assert.Equal(t, a, b)
}

func TestFallback_TruncatesDescription(t *testing.T) {
	records := []corpus.Record{
		{Title: "Long soil study", Description: strings.Repeat("x", 300)},
		{Title: "Empty soil study", Description: ""},
	}

	out := NewFallback(2, 0.55).Generate("soil", records, seededRand())

	require.Len(t, out, 2)
	assert.Equal(t, strings.Repeat("x", 200)+"...", out[0].Description)
	assert.Equal(t, descriptionPlaceholder, out[1].Description)
}

func TestStepUnits(t *testing.T) {
	assert.Equal(t, 66, stepUnits(padStart, padStep, 0.55, 50))
	assert.Equal(t, 100, stepUnits(padStart, padStep, 0.55, 10))
	assert.Equal(t, 80, stepUnits(seedStart, seedStep, 0.55, 50))
	assert.Equal(t, 1, stepUnits(padStart, padStep, 0.88, 50))
}

func TestFallback_DuplicateTitlesFilledBySeeds(t *testing.T) {
	records := []corpus.Record{
		{Title: "Climate change impacts", Description: "Coastal", URL: "https://example.org/a"},
		{Title: "Climate Change Impacts!", Description: "Inland", URL: "https://example.org/b"},
		{Title: "climate change impacts", Description: "Polar", URL: "https://example.org/c"},
	}

	out := NewFallback(10, 0.55).Generate("climate change", records, seededRand())

	require.Len(t, out, 10)
	assert.Equal(t, "Climate change impacts", out[0].Title)
	titles := make(map[string]bool, len(out))
	for i, r := range out {
		key := NormalizeTitle(r.Title)
		assert.False(t, titles[key], "duplicate title %q", r.Title)
		titles[key] = true
		if i > 0 {
			assert.Contains(t, r.Title, "Related Study")
		}
	}

	merged := Merge(nil, out, 10, 0.55)
	assert.Len(t, merged, 10)
}

func TestFallback_ExcludesModelTitles(t *testing.T) {
	records := makeCorpus(5)

	out := NewFallback(5, 0.55).Generate("soil", records, seededRand(), "Unrelated Study 0", "unrelated study 3")

	require.Len(t, out, 5)
	for _, r := range out {
		assert.NotEqual(t, "Unrelated study 0", r.Title)
		assert.NotEqual(t, "Unrelated study 3", r.Title)
	}

	llm := []Recommendation{
		NewPaper("Unrelated study 0", "d", "u", 2024, 0.95, PaperInfo{}),
		NewPaper("Unrelated study 3", "d", "u", 2024, 0.93, PaperInfo{}),
	}
	assert.Len(t, Merge(llm, out, 5, 0.55), 5)
}

func TestFallback_SeedsCoverEveryPaper(t *testing.T) {
	out := NewFallback(50, 0.55).Generate("graph theory", nil, seededRand())

	for _, p := range seedPapers {
		found := false
		for _, r := range out {
			if strings.HasPrefix(r.Title, p.title+" - ") {
				found = true
				break
			}
		}
		assert.True(t, found, "seed paper %q never emitted", p.title)
	}
	assert.True(t, strings.HasPrefix(out[1].Title, "Attention Is All You Need"))
}

func TestFallback_MaxTargetStaysAboveFloor(t *testing.T) {
	target := MaxTarget(0.55)
	require.Equal(t, 3300, target)

	out := NewFallback(target, 0.55).Generate("quantum", makeCorpus(target), seededRand())

	require.Len(t, out, target)
	assert.Len(t, Merge(nil, out, target, 0.55), target)
}

func TestValidateBatch(t *testing.T) {
	tests := []struct {
		name     string
		target   int
		minScore float64
		wantErr  bool
	}{
		{name: "defaults", target: 50, minScore: 0.55},
		{name: "largest batch", target: 3300, minScore: 0.55},
		{name: "zero floor", target: 8800, minScore: 0},
		{name: "batch too large", target: 3301, minScore: 0.55, wantErr: true},
		{name: "floor at padding start", target: 1, minScore: 0.88, wantErr: true},
		{name: "negative floor", target: 10, minScore: -0.1, wantErr: true},
		{name: "zero target", target: 0, minScore: 0.55, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateBatch(tt.target, tt.minScore)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
