package services

import "github.com/prometheus/client_golang/prometheus"

var geminiRequestsTotal = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: "chatrelay",
		Subsystem: "gemini",
		Name:      "requests_total",
		Help:      "Total upstream Gemini API requests by operation and outcome",
	},
	[]string{"operation", "outcome"},
)

func init() {
	prometheus.MustRegister(geminiRequestsTotal)
}

func observeUpstream(operation, outcome string) {
	geminiRequestsTotal.WithLabelValues(operation, outcome).Inc()
}
