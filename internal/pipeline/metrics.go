package pipeline

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	jobsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "pressdigest_jobs_total",
		Help: "Digest jobs by final status.",
	}, []string{"status"})

	articlesDetected = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "pressdigest_articles_detected",
		Help:    "Articles detected per document.",
		Buckets: []float64{0, 1, 5, 10, 20, 40, 80},
	})

	queueDepth = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "pressdigest_queue_depth",
		Help: "Jobs waiting for a worker.",
	})
)
