package middleware

import (
	"context"

	"github.com/prometheus/client_golang/prometheus"

	"tbv-rpc/message"
)

// Metrics observes round-trip time and failures per request name.
type Metrics struct {
	rt       *prometheus.HistogramVec
	failures *prometheus.CounterVec
}

// NewMetrics registers the collectors on reg and returns the middleware
// holder. Registration errors surface immediately; a duplicate
// registration is a wiring bug, not a runtime condition.
func NewMetrics(reg prometheus.Registerer) (*Metrics, error) {
	m := &Metrics{
		rt: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "tbvrpc",
			Name:      "request_duration_seconds",
			Help:      "Round-trip time per request name.",
			Buckets:   prometheus.ExponentialBuckets(0.0005, 2, 12),
		}, []string{"request"}),
		failures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "tbvrpc",
			Name:      "request_failures_total",
			Help:      "Failed requests per request name.",
		}, []string{"request"}),
	}
	if err := reg.Register(m.rt); err != nil {
		return nil, err
	}
	if err := reg.Register(m.failures); err != nil {
		return nil, err
	}
	return m, nil
}

// Middleware returns the wrapping function recording into the collectors.
func (m *Metrics) Middleware() Middleware {
	return func(next HandlerFunc) HandlerFunc {
		return func(ctx context.Context, req *message.Request) *message.Response {
			resp := next(ctx, req)
			m.rt.WithLabelValues(req.Name).Observe(resp.RT.Seconds())
			if resp.Err != nil {
				m.failures.WithLabelValues(req.Name).Inc()
			}
			return resp
		}
	}
}
