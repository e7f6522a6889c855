package summarize

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	summariesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "pressdigest",
		Name:      "summaries_total",
		Help:      "Summarization calls by outcome.",
	}, []string{"outcome"})

	summaryDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Namespace: "pressdigest",
		Name:      "summary_duration_seconds",
		Help:      "Latency of summarization calls.",
		Buckets:   prometheus.ExponentialBuckets(0.25, 2, 8),
	})
)

func observe(d time.Duration, err error) {
	summaryDuration.Observe(d.Seconds())
	switch {
	case err == nil:
		summariesTotal.WithLabelValues("ok").Inc()
	case IsRetryable(err):
		summariesTotal.WithLabelValues("retryable_error").Inc()
	default:
		summariesTotal.WithLabelValues("error").Inc()
	}
}
