package main

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"paperrec/internal/corpus"
	"paperrec/internal/recommend"
	"paperrec/internal/service"
)

var recommendCmd = &cobra.Command{
	Use:   "recommend QUERY...",
	Short: "Run the offline fallback path and print the merged batch",
	Long: `Recommend classifies the query and, unless a clarification is needed,
ranks the corpus lexically and prints the batch the service would return when
the model is unavailable. No model call is made.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		source, _ := cmd.Flags().GetString("corpus")
		option, _ := cmd.Flags().GetString("option")
		target, _ := cmd.Flags().GetInt("target")
		minScore, _ := cmd.Flags().GetFloat64("min-score")
		if err := recommend.ValidateBatch(target, minScore); err != nil {
			return fmt.Errorf("--target/--min-score: %w", err)
		}

		classifier, err := loadClassifier(cmd)
		if err != nil {
			return err
		}

		loader, closeCorpus, err := corpus.Open(source, 30*time.Second)
		if err != nil {
			return err
		}
		defer func() {
			_ = closeCorpus()
		}()

		svc := service.NewRecommendService(classifier, loader, offlineRequester{}, service.RecommendConfig{
			TargetCount: target,
			MinScore:    minScore,
		})
		resp, err := svc.Recommend(cmd.Context(), service.RecommendRequest{
			Query:          strings.Join(args, " "),
			SelectedOption: option,
		})
		if err != nil {
			return err
		}

		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		enc.SetEscapeHTML(false)
		if resp.NeedsClarify {
			return enc.Encode(map[string]any{
				"needsClarify": true,
				"question":     resp.Question,
				"options":      resp.Options,
			})
		}
		return enc.Encode(map[string]any{
			"recommendations": resp.Recommendations,
			"clarifiedQuery":  resp.ClarifiedQuery,
		})
	},
}

func init() {
	recommendCmd.Flags().String("corpus", "papers_clean.jsonl", "corpus source: file path, http(s) URL or sqlite://path")
	recommendCmd.Flags().String("option", "", "selected clarification option")
	recommendCmd.Flags().Int("target", 50, "batch size")
	recommendCmd.Flags().Float64("min-score", 0.55, "score floor")
	addClassifierFlags(recommendCmd)

	rootCmd.AddCommand(recommendCmd)
}

// offlineRequester stands in for the model; every request takes the fallback path.
type offlineRequester struct{}

func (offlineRequester) Configured() error { return nil }

func (offlineRequester) Request(context.Context, string) ([]recommend.Recommendation, error) {
	return nil, nil
}
