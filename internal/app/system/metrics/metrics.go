// internal/app/system/metrics/metrics.go
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Counters for the two fire-and-forget surfaces: cascade row cleanup and
// notification dispatch. Both swallow errors by contract, so these counters
// are the only place those failures stay visible.
var (
	CascadeRowsCleaned = promauto.NewCounter(prometheus.CounterOpts{
		Name: "rosterhub_cascade_rows_cleaned_total",
		Help: "ListUser rows cleaned up by list soft-delete cascades.",
	})
	CascadeRowFailures = promauto.NewCounter(prometheus.CounterOpts{
		Name: "rosterhub_cascade_row_failures_total",
		Help: "ListUser rows whose cascade cleanup failed and was skipped.",
	})
	NotificationsSent = promauto.NewCounter(prometheus.CounterOpts{
		Name: "rosterhub_notifications_sent_total",
		Help: "Manager notifications persisted and emailed.",
	})
	NotificationFailures = promauto.NewCounter(prometheus.CounterOpts{
		Name: "rosterhub_notification_failures_total",
		Help: "Manager notifications dropped after exhausting retries.",
	})
	NotificationsDropped = promauto.NewCounter(prometheus.CounterOpts{
		Name: "rosterhub_notifications_dropped_total",
		Help: "Notification events dropped because the dispatch queue was full.",
	})
)

// Handler serves the Prometheus exposition endpoint.
func Handler() http.Handler {
	return promhttp.Handler()
}
