// Package observability exposes Prometheus metrics for the collection server.
package observability

import "github.com/prometheus/client_golang/prometheus"

var (
	mutationsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "pustaka",
		Subsystem: "collection",
		Name:      "mutations_total",
		Help:      "Mutations applied to the collection, by action and result.",
	}, []string{"action", "result"})

	fetchesTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "pustaka",
		Subsystem: "collection",
		Name:      "fetches_total",
		Help:      "Full-collection reads served.",
	})

	collectionSizeGauge = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "pustaka",
		Subsystem: "collection",
		Name:      "items",
		Help:      "Number of items in the collection as of the last read.",
	})
)

func init() {
	prometheus.MustRegister(mutationsTotal, fetchesTotal, collectionSizeGauge)
}

// RecordMutation counts one applied or rejected mutation.
func RecordMutation(action string, ok bool) {
	result := "ok"
	if !ok {
		result = "rejected"
	}
	mutationsTotal.WithLabelValues(action, result).Inc()
}

// RecordFetch counts one full-collection read and updates the size gauge.
func RecordFetch(size int) {
	fetchesTotal.Inc()
	collectionSizeGauge.Set(float64(size))
}
