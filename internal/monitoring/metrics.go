package monitoring

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	ticketsIssued = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "tickets_issued_total",
			Help: "Total ticket images issued",
		},
	)

	redemptions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "ticket_redemptions_total",
			Help: "Total redemption attempts by outcome",
		},
		[]string{"status"},
	)

	httpDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request duration",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "status"},
	)
)

// RecordTicketsIssued counts tickets written during an issuance run.
func RecordTicketsIssued(n int) {
	if n > 0 {
		ticketsIssued.Add(float64(n))
	}
}

// RecordRedemption counts a redemption attempt ("redeemed" or "rejected").
func RecordRedemption(status string) {
	redemptions.WithLabelValues(status).Inc()
}

// ObserveRequest records one HTTP request in the duration histogram.
func ObserveRequest(method string, status int, duration time.Duration) {
	httpDuration.WithLabelValues(method, strconv.Itoa(status)).Observe(duration.Seconds())
}

// Handler exposes the prometheus scrape endpoint.
func Handler() http.Handler {
	return promhttp.Handler()
}
