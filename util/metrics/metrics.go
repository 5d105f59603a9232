// Package metrics defines the Prometheus collectors of the panel. They are
// registered with the default registry on import and served at /metrics.
package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "party_panel"

// HTTPRequestsTotal counts panel requests by route template and status code.
var HTTPRequestsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "http_requests_total",
		Help:      "Total number of panel HTTP requests.",
	},
	[]string{"method", "route", "code"},
)

var HTTPRequestDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "http_request_duration_seconds",
		Help:      "Duration of panel HTTP requests.",
		Buckets:   prometheus.DefBuckets,
	},
	[]string{"method", "route"},
)

// RemoteRequestsTotal counts calls to the party API.
// Labels:
//   - endpoint: logical endpoint name, e.g. "parties.list"
//   - outcome: "ok", "client_error", "server_error" or "unreachable"
var RemoteRequestsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "remote_requests_total",
		Help:      "Total number of requests sent to the party API.",
	},
	[]string{"endpoint", "outcome"},
)

var RemoteRequestDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "remote_request_duration_seconds",
		Help:      "Round trip time of party API requests.",
		Buckets:   prometheus.DefBuckets,
	},
	[]string{"endpoint"},
)

// RemoteUp is 1 while the last health check reached the party API.
var RemoteUp = promauto.NewGauge(
	prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "remote_up",
		Help:      "Whether the party API answered the last health check.",
	},
)

// LoginAttemptsTotal counts login and register attempts by result.
var LoginAttemptsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "login_attempts_total",
		Help:      "Login attempts, labelled by kind (login/register) and result.",
	},
	[]string{"kind", "result"},
)

// PanelActionsTotal counts the actions posted to panel/api.
var PanelActionsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "panel_actions_total",
		Help:      "Panel actions by resource, action and result.",
	},
	[]string{"resource", "action", "result"},
)

// SessionsPurgedTotal counts expired session rows removed by the purge job.
var SessionsPurgedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "sessions_purged_total",
		Help:      "Expired sessions removed from the session database.",
	},
)

// Outcome buckets an HTTP status, or a transport failure when status is 0.
func Outcome(status int) string {
	switch {
	case status == 0:
		return "unreachable"
	case status >= 500:
		return "server_error"
	case status >= 400:
		return "client_error"
	}
	return "ok"
}

// ObserveRemote records one party API call.
func ObserveRemote(endpoint string, status int, elapsed time.Duration) {
	RemoteRequestsTotal.WithLabelValues(endpoint, Outcome(status)).Inc()
	RemoteRequestDuration.WithLabelValues(endpoint).Observe(elapsed.Seconds())
}

// ObserveHTTP records one served panel request.
func ObserveHTTP(method, route string, status int, elapsed time.Duration) {
	HTTPRequestsTotal.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	HTTPRequestDuration.WithLabelValues(method, route).Observe(elapsed.Seconds())
}

func SetRemoteUp(up bool) {
	if up {
		RemoteUp.Set(1)
	} else {
		RemoteUp.Set(0)
	}
}
