package handler

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var imageTasksEnqueued = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "record_image_tasks_enqueued_total",
	Help: "Total number of image generation tasks accepted by the API.",
}, []string{"status"})
