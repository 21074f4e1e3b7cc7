package service_test

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math/rand/v2"
	"testing"

	"go.uber.org/mock/gomock"

	"paperrec/internal/clarify"
	"paperrec/internal/corpus"
	"paperrec/internal/recommend"
	"paperrec/internal/service"
	"paperrec/internal/service/mocks"
)

func init() {
	// Set default logger to discard output for cleaner test output
	slog.SetDefault(slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func testClassifier(t *testing.T) service.Classifier {
	t.Helper()
	table, err := clarify.BuiltinTable("en")
	if err != nil {
		t.Fatalf("BuiltinTable() error = %v", err)
	}
	c, err := clarify.NewClassifier(table)
	if err != nil {
		t.Fatalf("NewClassifier() error = %v", err)
	}
	return c
}

func testConfig(passthrough bool) service.RecommendConfig {
	return service.RecommendConfig{
		TargetCount:       10,
		MinScore:          0.55,
		PassthroughLimits: passthrough,
		NewRand: func() recommend.Rand {
			return rand.New(rand.NewPCG(1, 2))
		},
	}
}

func testCorpus() []corpus.Record {
	records := []corpus.Record{
		{Title: "Soil erosion under heavy rainfall", Description: "Field study of erosion rates.", URL: "https://example.org/erosion"},
	}
	for i := 0; i < 20; i++ {
		records = append(records, corpus.Record{
			Title:       fmt.Sprintf("Unrelated paper %d", i),
			Description: "Something else entirely.",
			URL:         fmt.Sprintf("https://example.org/%d", i),
		})
	}
	return records
}

func llmPaper(title string, score float64) recommend.Recommendation {
	return recommend.NewPaper(title, "From the model.", "https://doi.org/x", 2022, score, recommend.PaperInfo{Journal: "Nature"})
}

func TestRecommendService_Recommend(t *testing.T) {
	tests := []struct {
		name        string
		req         service.RecommendRequest
		passthrough bool
		mockSetup   func(loader *mocks.MockCorpusLoader, requester *mocks.MockLLMRequester)
		wantErr     error
		check       func(t *testing.T, resp service.RecommendResponse)
	}{
		{
			name: "missing credential",
			req:  service.RecommendRequest{Query: "soil erosion"},
			mockSetup: func(loader *mocks.MockCorpusLoader, requester *mocks.MockLLMRequester) {
				requester.EXPECT().Configured().Return(recommend.ErrNotConfigured)
			},
			wantErr: service.ErrConfiguration,
		},
		{
			name: "ambiguous query asks for clarification",
			req:  service.RecommendRequest{Query: "learning"},
			mockSetup: func(loader *mocks.MockCorpusLoader, requester *mocks.MockLLMRequester) {
				requester.EXPECT().Configured().Return(nil)
			},
			check: func(t *testing.T, resp service.RecommendResponse) {
				if !resp.NeedsClarify {
					t.Fatal("NeedsClarify = false, want true")
				}
				if resp.Question == "" {
					t.Error("Question is empty")
				}
				if n := len(resp.Options); n < 3 || n > 5 {
					t.Errorf("len(Options) = %d, want 3..5", n)
				}
				if resp.Recommendations != nil {
					t.Error("clarification must not carry recommendations")
				}
			},
		},
		{
			name: "selected option skips clarification and prefixes query",
			req:  service.RecommendRequest{Query: "learning", SelectedOption: "Reinforcement learning"},
			mockSetup: func(loader *mocks.MockCorpusLoader, requester *mocks.MockLLMRequester) {
				requester.EXPECT().Configured().Return(nil)
				loader.EXPECT().Load(gomock.Any()).Return(nil)
				requester.EXPECT().
					Request(gomock.Any(), "Reinforcement learning learning").
					Return([]recommend.Recommendation{llmPaper("Playing Atari with Deep RL", 0.95)}, nil)
			},
			check: func(t *testing.T, resp service.RecommendResponse) {
				if resp.NeedsClarify {
					t.Fatal("NeedsClarify = true, want false")
				}
				if resp.ClarifiedQuery != "Reinforcement learning learning" {
					t.Errorf("ClarifiedQuery = %q", resp.ClarifiedQuery)
				}
				if resp.Recommendations[0].Title != "Playing Atari with Deep RL" {
					t.Errorf("first title = %q, want model pick", resp.Recommendations[0].Title)
				}
			},
		},
		{
			name: "model results lead and fallback pads to target",
			req:  service.RecommendRequest{Query: "soil erosion"},
			mockSetup: func(loader *mocks.MockCorpusLoader, requester *mocks.MockLLMRequester) {
				requester.EXPECT().Configured().Return(nil)
				loader.EXPECT().Load(gomock.Any()).Return(testCorpus())
				requester.EXPECT().
					Request(gomock.Any(), "soil erosion").
					Return([]recommend.Recommendation{
						llmPaper("Global soil loss estimates", 0.93),
						llmPaper("Erosion modelling review", 0.88),
					}, nil)
			},
			check: func(t *testing.T, resp service.RecommendResponse) {
				recs := resp.Recommendations
				if len(recs) != 10 {
					t.Fatalf("len(Recommendations) = %d, want 10", len(recs))
				}
				if recs[0].Title != "Global soil loss estimates" || recs[1].Title != "Erosion modelling review" {
					t.Errorf("model picks not first: %q, %q", recs[0].Title, recs[1].Title)
				}
				if recs[2].Title != "Soil erosion under heavy rainfall" {
					t.Errorf("recs[2] = %q, want best corpus match", recs[2].Title)
				}
				for i, r := range recs {
					if r.ID != i+1 {
						t.Errorf("recs[%d].ID = %d", i, r.ID)
					}
					if r.Score < 0.55 || r.Score > 1 {
						t.Errorf("recs[%d].Score = %v out of range", i, r.Score)
					}
					if r.Level != recommend.LevelFor(r.Score) {
						t.Errorf("recs[%d].Level = %q, want %q", i, r.Level, recommend.LevelFor(r.Score))
					}
					if r.DetailedReason == nil {
						t.Errorf("recs[%d].DetailedReason is nil", i)
					}
				}
			},
		},
		{
			name: "upstream failure degrades to fallback",
			req:  service.RecommendRequest{Query: "soil erosion"},
			mockSetup: func(loader *mocks.MockCorpusLoader, requester *mocks.MockLLMRequester) {
				requester.EXPECT().Configured().Return(nil)
				loader.EXPECT().Load(gomock.Any()).Return(testCorpus())
				requester.EXPECT().
					Request(gomock.Any(), gomock.Any()).
					Return(nil, fmt.Errorf("%w: connection reset", recommend.ErrUpstream))
			},
			check: func(t *testing.T, resp service.RecommendResponse) {
				if len(resp.Recommendations) != 10 {
					t.Fatalf("len(Recommendations) = %d, want 10", len(resp.Recommendations))
				}
				if resp.Recommendations[0].Title != "Soil erosion under heavy rainfall" {
					t.Errorf("first title = %q", resp.Recommendations[0].Title)
				}
			},
		},
		{
			name: "empty corpus and unparseable model output still answer with seeds",
			req:  service.RecommendRequest{Query: "soil erosion"},
			mockSetup: func(loader *mocks.MockCorpusLoader, requester *mocks.MockLLMRequester) {
				requester.EXPECT().Configured().Return(nil)
				loader.EXPECT().Load(gomock.Any()).Return(nil)
				requester.EXPECT().Request(gomock.Any(), gomock.Any()).Return(nil, recommend.ErrUnparseable)
			},
			check: func(t *testing.T, resp service.RecommendResponse) {
				if len(resp.Recommendations) != 10 {
					t.Fatalf("len(Recommendations) = %d, want 10", len(resp.Recommendations))
				}
				if resp.Recommendations[0].Type != recommend.KindDataset {
					t.Errorf("first seed type = %q, want dataset", resp.Recommendations[0].Type)
				}
			},
		},
		{
			name: "duplicate corpus titles still fill the batch",
			req:  service.RecommendRequest{Query: "climate change"},
			mockSetup: func(loader *mocks.MockCorpusLoader, requester *mocks.MockLLMRequester) {
				requester.EXPECT().Configured().Return(nil)
				loader.EXPECT().Load(gomock.Any()).Return([]corpus.Record{
					{Title: "Climate change impacts", Description: "a", URL: "https://example.org/a"},
					{Title: "Climate change impacts", Description: "b", URL: "https://example.org/b"},
					{Title: "Climate change impacts", Description: "c", URL: "https://example.org/c"},
				})
				requester.EXPECT().
					Request(gomock.Any(), gomock.Any()).
					Return(nil, fmt.Errorf("%w: status 500", recommend.ErrUpstream))
			},
			check: func(t *testing.T, resp service.RecommendResponse) {
				if len(resp.Recommendations) != 10 {
					t.Fatalf("len(Recommendations) = %d, want 10", len(resp.Recommendations))
				}
			},
		},
		{
			name: "model title repeated in corpus is not double counted",
			req:  service.RecommendRequest{Query: "soil erosion"},
			mockSetup: func(loader *mocks.MockCorpusLoader, requester *mocks.MockLLMRequester) {
				requester.EXPECT().Configured().Return(nil)
				loader.EXPECT().Load(gomock.Any()).Return(testCorpus()[:1])
				requester.EXPECT().
					Request(gomock.Any(), gomock.Any()).
					Return([]recommend.Recommendation{llmPaper("Soil erosion under heavy rainfall", 0.95)}, nil)
			},
			check: func(t *testing.T, resp service.RecommendResponse) {
				recs := resp.Recommendations
				if len(recs) != 10 {
					t.Fatalf("len(Recommendations) = %d, want 10", len(recs))
				}
				if recs[0].Journal != "Nature" {
					t.Errorf("recs[0].Journal = %q, want the model record", recs[0].Journal)
				}
			},
		},
		{
			name: "rate limit answered from fallback by default",
			req:  service.RecommendRequest{Query: "soil erosion"},
			mockSetup: func(loader *mocks.MockCorpusLoader, requester *mocks.MockLLMRequester) {
				requester.EXPECT().Configured().Return(nil)
				loader.EXPECT().Load(gomock.Any()).Return(testCorpus())
				requester.EXPECT().Request(gomock.Any(), gomock.Any()).Return(nil, recommend.ErrRateLimited)
			},
			check: func(t *testing.T, resp service.RecommendResponse) {
				if len(resp.Recommendations) != 10 {
					t.Fatalf("len(Recommendations) = %d, want 10", len(resp.Recommendations))
				}
			},
		},
		{
			name:        "rate limit passed through",
			req:         service.RecommendRequest{Query: "soil erosion"},
			passthrough: true,
			mockSetup: func(loader *mocks.MockCorpusLoader, requester *mocks.MockLLMRequester) {
				requester.EXPECT().Configured().Return(nil)
				loader.EXPECT().Load(gomock.Any()).Return(testCorpus())
				requester.EXPECT().Request(gomock.Any(), gomock.Any()).Return(nil, recommend.ErrRateLimited)
			},
			wantErr: service.ErrRateLimited,
		},
		{
			name:        "quota passed through",
			req:         service.RecommendRequest{Query: "soil erosion"},
			passthrough: true,
			mockSetup: func(loader *mocks.MockCorpusLoader, requester *mocks.MockLLMRequester) {
				requester.EXPECT().Configured().Return(nil)
				loader.EXPECT().Load(gomock.Any()).Return(testCorpus())
				requester.EXPECT().Request(gomock.Any(), gomock.Any()).Return(nil, recommend.ErrQuotaExceeded)
			},
			wantErr: service.ErrQuotaExceeded,
		},
		{
			name: "credential rejected by client",
			req:  service.RecommendRequest{Query: "soil erosion"},
			mockSetup: func(loader *mocks.MockCorpusLoader, requester *mocks.MockLLMRequester) {
				requester.EXPECT().Configured().Return(nil)
				loader.EXPECT().Load(gomock.Any()).Return(nil)
				requester.EXPECT().Request(gomock.Any(), gomock.Any()).Return(nil, recommend.ErrNotConfigured)
			},
			wantErr: service.ErrConfiguration,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			loader := mocks.NewMockCorpusLoader(ctrl)
			requester := mocks.NewMockLLMRequester(ctrl)
			tt.mockSetup(loader, requester)

			svc := service.NewRecommendService(testClassifier(t), loader, requester, testConfig(tt.passthrough))
			resp, err := svc.Recommend(context.Background(), tt.req)

			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("Recommend() error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("Recommend() unexpected error: %v", err)
			}
			tt.check(t, resp)
		})
	}
}

func TestRecommendService_RecoversStagePanic(t *testing.T) {
	ctrl := gomock.NewController(t)
	loader := mocks.NewMockCorpusLoader(ctrl)
	requester := mocks.NewMockLLMRequester(ctrl)

	requester.EXPECT().Configured().Return(nil)
	loader.EXPECT().Load(gomock.Any()).DoAndReturn(func(context.Context) []corpus.Record {
		panic("corrupt snapshot")
	})
	requester.EXPECT().Request(gomock.Any(), gomock.Any()).Return(nil, nil).AnyTimes()

	svc := service.NewRecommendService(testClassifier(t), loader, requester, testConfig(false))
	_, err := svc.Recommend(context.Background(), service.RecommendRequest{Query: "soil erosion"})
	if err == nil {
		t.Fatal("Recommend() expected error after panic, got nil")
	}
}

func TestRecommendService_DefaultRand(t *testing.T) {
	ctrl := gomock.NewController(t)
	loader := mocks.NewMockCorpusLoader(ctrl)
	requester := mocks.NewMockLLMRequester(ctrl)

	requester.EXPECT().Configured().Return(nil)
	loader.EXPECT().Load(gomock.Any()).Return(testCorpus())
	requester.EXPECT().Request(gomock.Any(), gomock.Any()).Return(nil, nil)

	svc := service.NewRecommendService(testClassifier(t), loader, requester, service.RecommendConfig{TargetCount: 5, MinScore: 0.55})
	resp, err := svc.Recommend(context.Background(), service.RecommendRequest{Query: "soil erosion"})
	if err != nil {
		t.Fatalf("Recommend() unexpected error: %v", err)
	}
	if len(resp.Recommendations) != 5 {
		t.Errorf("len(Recommendations) = %d, want 5", len(resp.Recommendations))
	}
}
