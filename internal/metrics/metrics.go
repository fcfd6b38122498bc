package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "codepolish"

var (
	analysesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "analyses_total",
		Help:      "Files analyzed, by parse outcome.",
	}, []string{"outcome"})
	analysisDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "analysis_duration_seconds",
		Help:      "Wall-clock time of a full analysis.",
		Buckets:   prometheus.ExponentialBuckets(0.01, 2, 14),
	})
	scores = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "score",
		Help:      "Quality scores of original and refactored sources.",
		Buckets:   prometheus.LinearBuckets(0, 10, 11),
	}, []string{"stage"})
	llmCallsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "llm_calls_total",
		Help:      "Suggestion service calls, by kind and whether the reply was usable.",
	}, []string{"kind", "result"})
	llmCallDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "llm_call_duration_seconds",
		Help:      "Latency of suggestion service calls.",
		Buckets:   prometheus.ExponentialBuckets(0.05, 2, 12),
	}, []string{"kind"})
	cacheLookups = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "refinement_cache_lookups_total",
		Help:      "Refinement cache lookups, by hit or miss.",
	}, []string{"result"})
	cacheEntries = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "refinement_cache_entries",
		Help:      "Entries held by the refinement cache.",
	})
)

const (
	OutcomeParsed      = "parsed"
	OutcomeUnparseable = "unparseable"

	StageOriginal   = "original"
	StageRefactored = "refactored"

	CallSuggest = "suggest"
	CallRewrite = "rewrite"
)

func ObserveAnalysis(outcome string, elapsed time.Duration) {
	analysesTotal.WithLabelValues(outcome).Inc()
	analysisDuration.Observe(elapsed.Seconds())
}

func ObserveScore(stage string, score int) {
	scores.WithLabelValues(stage).Observe(float64(score))
}

// ObserveLLMCall records one outbound call. usable is false when the pipeline
// had to fall back to local output.
func ObserveLLMCall(kind string, usable bool, elapsed time.Duration) {
	result := "usable"
	if !usable {
		result = "fallback"
	}
	llmCallsTotal.WithLabelValues(kind, result).Inc()
	llmCallDuration.WithLabelValues(kind).Observe(elapsed.Seconds())
}

func ObserveCacheLookup(hit bool) {
	if hit {
		cacheLookups.WithLabelValues("hit").Inc()
		return
	}
	cacheLookups.WithLabelValues("miss").Inc()
}

func SetCacheEntries(n int) {
	cacheEntries.Set(float64(n))
}

// Handler serves the default registry in the Prometheus text format.
func Handler() http.Handler {
	return promhttp.Handler()
}
