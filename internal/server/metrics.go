package server

import "github.com/prometheus/client_golang/prometheus"

type httpMetrics struct {
	requestsTotal   *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec
}

func newHTTPMetrics(registerer prometheus.Registerer) *httpMetrics {
	m := &httpMetrics{
		requestsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "dqscore_http_requests_total",
			Help: "Total HTTP requests by path and status code",
		}, []string{"path", "status"}),
		requestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "dqscore_http_request_duration_seconds",
			Help:    "HTTP request duration by path",
			Buckets: prometheus.DefBuckets,
		}, []string{"path"}),
	}
	registerer.MustRegister(m.requestsTotal, m.requestDuration)
	return m
}
