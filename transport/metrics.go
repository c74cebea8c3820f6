package transport

import (
	"errors"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// statusTransportError labels requests that produced no response.
const statusTransportError = "error"

// metrics instruments outgoing requests. A nil *metrics records nothing.
type metrics struct {
	requests *prometheus.CounterVec
	latency  *prometheus.HistogramVec
}

// newMetrics registers the collectors with reg, reusing collectors that a
// previous client already registered there.
func newMetrics(reg prometheus.Registerer) (*metrics, error) {
	if reg == nil {
		return nil, nil
	}

	requests := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "tmdb_client_requests_total",
			Help: "Total number of TMDB API requests by method and status.",
		},
		[]string{"method", "status"},
	)
	latency := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "tmdb_client_request_duration_seconds",
			Help:    "Duration of TMDB API requests in seconds.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method"},
	)

	var err error
	if requests, err = register(reg, requests); err != nil {
		return nil, err
	}
	if latency, err = register(reg, latency); err != nil {
		return nil, err
	}

	return &metrics{requests: requests, latency: latency}, nil
}

func register[T prometheus.Collector](reg prometheus.Registerer, c T) (T, error) {
	if err := reg.Register(c); err != nil {
		var are prometheus.AlreadyRegisteredError
		if errors.As(err, &are) {
			if existing, ok := are.ExistingCollector.(T); ok {
				return existing, nil
			}
		}
		return c, err
	}
	return c, nil
}

func (m *metrics) observe(method string, statusCode int, dur time.Duration) {
	if m == nil {
		return
	}
	status := statusTransportError
	if statusCode > 0 {
		status = strconv.Itoa(statusCode)
	}
	m.requests.WithLabelValues(method, status).Inc()
	m.latency.WithLabelValues(method).Observe(dur.Seconds())
}
