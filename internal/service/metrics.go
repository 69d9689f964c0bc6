package service

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics groups the quote counters exposed on /metrics
type Metrics struct {
	QuotesTotal         *prometheus.CounterVec
	PredictionDuration  prometheus.Histogram
	NegativePredictions *prometheus.CounterVec
	ReportsGenerated    prometheus.Counter
}

// NewMetrics registers the quote metrics on reg
func NewMetrics(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		QuotesTotal: f.NewCounterVec(prometheus.CounterOpts{
			Name: "premium_quotes_total",
			Help: "Quote requests by outcome (ok, invalid_input, prediction_failure, error).",
		}, []string{"outcome"}),
		PredictionDuration: f.NewHistogram(prometheus.HistogramOpts{
			Name:    "premium_prediction_duration_seconds",
			Help:    "Time spent in model calls for one quote.",
			Buckets: prometheus.DefBuckets,
		}),
		NegativePredictions: f.NewCounterVec(prometheus.CounterOpts{
			Name: "premium_negative_predictions_total",
			Help: "Negative model outputs by prediction (annual, non_smoker, smoker).",
		}, []string{"prediction"}),
		ReportsGenerated: f.NewCounter(prometheus.CounterOpts{
			Name: "premium_reports_generated_total",
			Help: "PDF reports produced.",
		}),
	}
}
