// Package metrics holds the Prometheus collectors for the recommendation service.
package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

// Outcome labels for RecommendRequests.
const (
	OutcomeClarify  = "clarify"
	OutcomeLLM      = "llm"
	OutcomeFallback = "fallback"
	OutcomeError    = "error"
)

var (
	// Total recommend requests by outcome
	RecommendRequests = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "paperrec_recommend_requests_total",
		Help: "Total number of recommend requests by outcome",
	}, []string{"outcome"})

	// Latency of a full recommend call
	RecommendDuration = prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "paperrec_recommend_duration_seconds",
		Help:    "Latency of recommend requests",
		Buckets: prometheus.DefBuckets,
	})

	LLMFailures = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "paperrec_llm_failures_total",
		Help: "Total number of LLM calls that failed, by reason",
	}, []string{"reason"})

	// Records in the most recently loaded corpus
	CorpusRecords = prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "paperrec_corpus_records",
		Help: "Number of records in the most recently loaded corpus",
	})
)

var once sync.Once

// Init registers the collectors with the default registry. Safe to call more than once.
func Init() {
	once.Do(func() {
		prometheus.MustRegister(
			RecommendRequests,
			RecommendDuration,
			LLMFailures,
			CorpusRecords,
		)
	})
}
