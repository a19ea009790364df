package metrics

import (
	"net/http"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	rowsIngested    *prometheus.CounterVec
	scrubbedMatches prometheus.Counter
	rowsRejected    *prometheus.CounterVec
	notesClassified prometheus.Counter
	categoryMatches prometheus.Counter
	pivotRequests   *prometheus.CounterVec
	pivotBuildTime  prometheus.Histogram
)

var initOnce sync.Once

// Init registers the platform metrics. Must be called once at startup;
// recording before Init is a no-op so library tests never need a registry.
func Init() {
	initOnce.Do(func() {
		rowsIngested = prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "carelens_ingestion_rows_total",
			Help: "Mention rows accepted for storage, by upload source.",
		}, []string{"source"})

		scrubbedMatches = prometheus.NewCounter(prometheus.CounterOpts{
			Name: "carelens_ingestion_scrubbed_matches_total",
			Help: "Identifier matches masked out of note text before storage.",
		})

		rowsRejected = prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "carelens_normalizer_rejected_rows_total",
			Help: "Raw rows dropped during normalization, by reason.",
		}, []string{"reason"})

		notesClassified = prometheus.NewCounter(prometheus.CounterOpts{
			Name: "carelens_classifier_notes_total",
			Help: "Notes run through the keyword classifier.",
		})

		categoryMatches = prometheus.NewCounter(prometheus.CounterOpts{
			Name: "carelens_classifier_matches_total",
			Help: "Category matches produced by the keyword classifier.",
		})

		pivotRequests = prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "carelens_pivot_requests_total",
			Help: "Pivot requests served, by kind and cache outcome.",
		}, []string{"kind", "cache"})

		pivotBuildTime = prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "carelens_pivot_build_seconds",
			Help:    "Wall time spent fetching, normalizing and aggregating one pivot.",
			Buckets: prometheus.DefBuckets,
		})

		prometheus.MustRegister(
			rowsIngested,
			scrubbedMatches,
			rowsRejected,
			notesClassified,
			categoryMatches,
			pivotRequests,
			pivotBuildTime,
		)
	})
}

// Handler serves the scrape endpoint.
func Handler() http.Handler {
	return promhttp.Handler()
}

func RecordRowsIngested(source string, count int) {
	if rowsIngested == nil {
		return
	}
	rowsIngested.WithLabelValues(source).Add(float64(count))
}

func RecordScrubbedMatches(count int) {
	if scrubbedMatches == nil || count <= 0 {
		return
	}
	scrubbedMatches.Add(float64(count))
}

func RecordRejectedRows(byReason map[string]int) {
	if rowsRejected == nil {
		return
	}
	for reason, count := range byReason {
		rowsRejected.WithLabelValues(reason).Add(float64(count))
	}
}

func RecordClassification(matchCount int) {
	if notesClassified == nil {
		return
	}
	notesClassified.Inc()
	categoryMatches.Add(float64(matchCount))
}

func RecordPivot(kind string, cacheHit bool, seconds float64) {
	if pivotRequests == nil {
		return
	}
	cache := "miss"
	if cacheHit {
		cache = "hit"
	}
	pivotRequests.WithLabelValues(kind, cache).Inc()
	if !cacheHit {
		pivotBuildTime.Observe(seconds)
	}
}
