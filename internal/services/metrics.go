package services

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	searchesTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "carsearch_searches_total",
		Help: "Number of search requests processed.",
	})
	searchErrorsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "carsearch_search_errors_total",
		Help: "Number of search requests that failed.",
	})
	searchDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "carsearch_search_duration_seconds",
		Help:    "End-to-end search latency including dataset load.",
		Buckets: prometheus.DefBuckets,
	})
	datasetRows = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "carsearch_dataset_rows",
		Help: "Rows in the canonical table after cleaning.",
	})
)
