package utils

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

// Collector holds the Prometheus metrics of the service.
type Collector struct {
	Registry *prometheus.Registry

	HTTPRequests *prometheus.CounterVec
	HTTPDuration *prometheus.HistogramVec

	Registrations   prometheus.Counter
	LoginFailures   prometheus.Counter
	FoldersCreated  prometheus.Counter
	CommentsCreated prometheus.Counter
	TreeFailures    *prometheus.CounterVec
}

var (
	metrics     *Collector
	metricsOnce sync.Once
)

// Metrics returns the process-wide collector, registering it on first use.
func Metrics() *Collector {
	metricsOnce.Do(func() {
		metrics = newCollector("linkbook")
	})
	return metrics
}

func newCollector(namespace string) *Collector {
	c := &Collector{
		Registry: prometheus.NewRegistry(),
		HTTPRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "Total number of HTTP requests",
		}, []string{"method", "route", "status"}),
		HTTPDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request duration in seconds",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route"}),
		Registrations: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "registrations_total",
			Help:      "Total number of accounts registered",
		}),
		LoginFailures: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "login_failures_total",
			Help:      "Total number of rejected logins",
		}),
		FoldersCreated: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "folders_created_total",
			Help:      "Total number of folders created",
		}),
		CommentsCreated: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "comments_created_total",
			Help:      "Total number of comments created",
		}),
		TreeFailures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "tree_assembly_failures_total",
			Help:      "Tree assemblies rejected as inconsistent",
		}, []string{"kind"}),
	}
	c.Registry.MustRegister(
		c.HTTPRequests,
		c.HTTPDuration,
		c.Registrations,
		c.LoginFailures,
		c.FoldersCreated,
		c.CommentsCreated,
		c.TreeFailures,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return c
}
