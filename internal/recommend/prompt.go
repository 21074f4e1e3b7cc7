package recommend

import (
	"fmt"
	"strings"

	"paperrec/internal/corpus"
	"paperrec/internal/llm"
)

// datasetShare is the fraction of requested records that should be datasets.
const datasetShare = 0.3

// mix splits count into papers and datasets, with at least one dataset when count > 1.
func mix(count int) (papers, datasets int) {
	datasets = int(float64(count)*datasetShare + 0.5)
	if datasets == 0 && count > 1 {
		datasets = 1
	}
	return count - datasets, datasets
}

// BuildMessages composes the system and user messages for query.
func BuildMessages(query string, count int) []llm.Message {
	papers, datasets := mix(count)

	language := "English"
	if corpus.DetectLang(query) == "ko" {
		language = "Korean"
	}

	var b strings.Builder
	b.WriteString("You are a research paper and dataset recommendation assistant.\n\n")
	b.WriteString(fmt.Sprintf("User query: %q\n\n", query))
	b.WriteString("Rules:\n")
	b.WriteString("1. Recommend only peer-reviewed academic papers. Exclude blogs, news, informal reports and product docs.\n")
	b.WriteString(fmt.Sprintf("2. At least %d entries must be real, publicly available datasets (Papers with Code, Kaggle, Hugging Face, Google Dataset Search and similar).\n", datasets))
	b.WriteString("3. Every entry must exist and be reachable through a DOI, arXiv or official URL.\n")
	b.WriteString("4. Datasets must relate directly to the query.\n")
	b.WriteString(fmt.Sprintf("5. Scores are between %.2f and 1.00. level is \"%s\" for score >= %.2f, \"%s\" for score >= %.2f, otherwise \"%s\".\n",
		RecommendedThreshold, LevelMostRecommended, MostRecommendedThreshold, LevelRecommended, RecommendedThreshold, LevelReference))
	b.WriteString(fmt.Sprintf("6. Write description and reason in %s, 1-2 sentences each.\n\n", language))
	b.WriteString(fmt.Sprintf("Return exactly %d entries (%d papers + %d datasets) as a JSON array and nothing else.\n\n", count, papers, datasets))
	b.WriteString("Paper shape:\n")
	b.WriteString(`{"type": "paper", "title": "...", "description": "...", "score": 0.92, "level": "most-recommended", "reason": "...", "url": "https://...", "journal": "...", "authors": ["..."], "year": 2024, "citationCount": 100, "keywords": ["...", "..."]}`)
	b.WriteString("\n\nDataset shape:\n")
	b.WriteString(`{"type": "dataset", "title": "...", "description": "...", "score": 0.88, "level": "recommended", "reason": "...", "url": "https://...", "publisher": "...", "year": 2024, "dataSize": "...", "format": "...", "keywords": ["...", "..."]}`)

	user := fmt.Sprintf("Recommend exactly %d items (%d papers + %d datasets) for: %q\n\nOnly include real public datasets directly related to %q.",
		count, papers, datasets, query, query)

	return []llm.Message{
		{Role: "system", Content: b.String()},
		{Role: "user", Content: user},
	}
}
