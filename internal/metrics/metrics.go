// Package metrics declares the Prometheus collectors exported on /metrics.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total HTTP requests by method, route and status",
		},
		[]string{"method", "route", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request latency",
			Buckets: []float64{.005, .01, .05, .1, .25, .5, 1, 2.5},
		},
		[]string{"method", "route"},
	)

	ShoppingListGenerated = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "shopping_list_generated_total",
			Help: "Shopping list documents generated by output format",
		},
		[]string{"format"},
	)

	ShoppingListItems = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "shopping_list_items",
			Help:    "Number of aggregated lines per shopping list",
			Buckets: []float64{0, 1, 5, 10, 20, 50, 100},
		},
	)

	MembershipChanges = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "membership_changes_total",
			Help: "Favorite and cart membership changes",
		},
		[]string{"kind", "op"},
	)

	MembershipConflicts = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "membership_conflicts_total",
			Help: "Rejected membership adds because the pair already existed",
		},
		[]string{"kind"},
	)
)

func RecordHTTPRequest(method, route, status string, d time.Duration) {
	HTTPRequestsTotal.WithLabelValues(method, route, status).Inc()
	HTTPRequestDuration.WithLabelValues(method, route).Observe(d.Seconds())
}

func RecordShoppingList(format string, items int) {
	ShoppingListGenerated.WithLabelValues(format).Inc()
	ShoppingListItems.Observe(float64(items))
}

func RecordMembershipChange(kind, op string) {
	MembershipChanges.WithLabelValues(kind, op).Inc()
}

func RecordMembershipConflict(kind string) {
	MembershipConflicts.WithLabelValues(kind).Inc()
}
