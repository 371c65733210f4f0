package ai

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	aiRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "record_ai_requests_total",
			Help: "Total number of requests to the AI API.",
		},
		[]string{"model", "status"},
	)
	aiRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "record_ai_request_duration_seconds",
			Help:    "Histogram of AI API request durations.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"model"},
	)
	aiPromptTokens = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "record_ai_prompt_tokens",
			Help:    "Histogram of prompt token counts.",
			Buckets: prometheus.LinearBuckets(100, 100, 20),
		},
		[]string{"model"},
	)
	aiCompletionTokens = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "record_ai_completion_tokens",
			Help:    "Histogram of completion token counts.",
			Buckets: prometheus.LinearBuckets(25, 25, 20),
		},
		[]string{"model"},
	)
	aiRetriesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "record_ai_retries_total",
			Help: "Total number of retried AI requests.",
		},
		[]string{"model"},
	)
)

func observeUsage(model string, usage UsageInfo) {
	if usage.TotalTokens == 0 {
		return
	}
	aiPromptTokens.WithLabelValues(model).Observe(float64(usage.PromptTokens))
	aiCompletionTokens.WithLabelValues(model).Observe(float64(usage.CompletionTokens))
}
