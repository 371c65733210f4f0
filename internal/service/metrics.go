package service

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	kbLookupsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "record_kb_lookups_total",
			Help: "Результаты поиска в справочнике по стратегии.",
		},
		[]string{"genre", "strategy"}, // exact_normalized, exact_original, contains_normalized, contains_original, contained, miss
	)

	promptGenerationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "record_prompt_generations_total",
			Help: "Количество запросов на генерацию описания сцены.",
		},
		[]string{"genre", "status"}, // success, degraded, validation_error, transport_error
	)

	pipelineStageDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "record_pipeline_stage_duration_seconds",
			Help:    "Длительность стадий конвейера.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"stage"}, // resolve, extract, compress
	)

	imageGenerationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "record_image_generations_total",
			Help: "Количество запросов к модели изображений.",
		},
		[]string{"status"},
	)
)
