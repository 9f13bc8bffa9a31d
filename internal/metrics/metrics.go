// Package metrics exposes Prometheus instrumentation for the support
// service: message counters by crisis level, completion outcomes, and a
// collector that reads persisted crisis counts from the store on scrape.
package metrics

import (
	"context"
	"log/slog"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/quietharbor/quietharbor/internal/model"
	"github.com/quietharbor/quietharbor/internal/store"
)

var (
	crisisMessagesDesc = prometheus.NewDesc(
		"quietharbor_crisis_messages_total",
		"Total stored user messages by crisis level",
		[]string{"level"},
		nil,
	)

	// ClassificationsTotal counts classifier runs by resulting level.
	ClassificationsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "quietharbor_classifications_total",
		Help: "Total crisis classifications by level",
	}, []string{"level"})

	// CompletionsTotal counts completion calls by outcome (ok, fallback).
	CompletionsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "quietharbor_completions_total",
		Help: "Total completion calls by outcome",
	}, []string{"outcome"})

	// CompletionDuration observes end-to-end completion latency.
	CompletionDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "quietharbor_completion_duration_seconds",
		Help:    "Completion call latency",
		Buckets: prometheus.DefBuckets,
	})
)

// CrisisCollector reads persisted crisis message counts from the store on
// each scrape.
type CrisisCollector struct {
	store *store.Store
}

// NewCrisisCollector wraps the store for scrape-time collection.
func NewCrisisCollector(s *store.Store) *CrisisCollector {
	return &CrisisCollector{store: s}
}

// Describe sends the metric descriptor to the channel.
func (c *CrisisCollector) Describe(ch chan<- *prometheus.Desc) {
	ch <- crisisMessagesDesc
}

// Collect queries the store for per-level message counts and emits them
// as counters.
func (c *CrisisCollector) Collect(ch chan<- prometheus.Metric) {
	counts, err := c.store.CrisisCounts(context.Background())
	if err != nil {
		slog.Error("failed to collect crisis message metrics", "error", err)
		return
	}
	for level, count := range counts {
		ch <- prometheus.MustNewConstMetric(
			crisisMessagesDesc,
			prometheus.CounterValue,
			float64(count),
			string(level),
		)
	}
}

// RecordClassification bumps the classification counter for a level.
func RecordClassification(level model.Severity) {
	ClassificationsTotal.WithLabelValues(string(level)).Inc()
}

// RecordCompletion bumps the completion counter and observes latency.
func RecordCompletion(fallback bool, seconds float64) {
	outcome := "ok"
	if fallback {
		outcome = "fallback"
	}
	CompletionsTotal.WithLabelValues(outcome).Inc()
	CompletionDuration.Observe(seconds)
}
