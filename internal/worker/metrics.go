package worker

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	tasksProcessed = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "record_worker_tasks_processed_total",
			Help: "Total number of image generation tasks processed.",
		},
		[]string{"status"}, // success, failed, requeued, error_unmarshal
	)
	taskDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "record_worker_task_duration_seconds",
		Help:    "Duration of image generation task processing.",
		Buckets: prometheus.ExponentialBuckets(0.5, 2, 8),
	})
	publishResultErrors = promauto.NewCounter(prometheus.CounterOpts{
		Name: "record_worker_publish_result_errors_total",
		Help: "Total number of errors publishing or storing task results.",
	})
)
