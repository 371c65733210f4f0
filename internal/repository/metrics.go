package repository

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var kbCacheRequestsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "record_kb_cache_requests_total",
		Help: "Количество обращений к кэшу справочника.",
	},
	[]string{"kind", "result"}, // result: hit, miss, error
)
