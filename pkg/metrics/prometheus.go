package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all prometheus metrics
type Metrics struct {
	APIRequests       *prometheus.CounterVec
	APIRetries        prometheus.Counter
	APIErrors         *prometheus.CounterVec
	APIRequestSeconds prometheus.Histogram
	ClaimsCreated     prometheus.Counter
	DocumentsUploaded prometheus.Counter
}

// NewMetrics creates new prometheus metrics on the default registry
func NewMetrics(namespace string) *Metrics {
	return NewMetricsWith(namespace, prometheus.DefaultRegisterer)
}

// NewMetricsWith creates new prometheus metrics on the given registerer
func NewMetricsWith(namespace string, reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)

	return &Metrics{
		APIRequests: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "api_requests_total",
			Help:      "The total number of requests issued to the claims backend",
		}, []string{"operation"}),
		APIRetries: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "api_retries_total",
			Help:      "The total number of retried backend requests",
		}),
		APIErrors: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "api_errors_total",
			Help:      "The total number of failed backend requests",
		}, []string{"operation"}),
		APIRequestSeconds: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "api_request_seconds",
			Help:      "Time taken by individual backend requests",
			Buckets:   prometheus.DefBuckets,
		}),
		ClaimsCreated: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "claims_created_total",
			Help:      "The total number of claims created",
		}),
		DocumentsUploaded: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "documents_uploaded_total",
			Help:      "The total number of documents uploaded and attached to claims",
		}),
	}
}
