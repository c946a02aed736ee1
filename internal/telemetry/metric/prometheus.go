package metric

import (
	"time"

	"github.com/cockroachdb/errors"
	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "linearcli"

// Registry holds the metrics of one process.
type Registry struct {
	reg *prometheus.Registry

	RequestsTotal    *prometheus.CounterVec
	RequestDuration  *prometheus.HistogramVec
	DownloadsTotal   *prometheus.CounterVec
	DownloadDuration prometheus.Histogram
	LastRun          *prometheus.GaugeVec
}

// NewRegistry creates a registry with all linearcli metrics registered.
func NewRegistry() *Registry {
	r := &Registry{
		reg: prometheus.NewRegistry(),
		RequestsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "graphql_requests_total",
			Help:      "GraphQL requests sent, by operation and outcome.",
		}, []string{"operation", "outcome"}),
		RequestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "graphql_request_duration_seconds",
			Help:      "GraphQL request latency.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"operation"}),
		DownloadsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "avatar_downloads_total",
			Help:      "Avatar downloads, by outcome.",
		}, []string{"outcome"}),
		DownloadDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "avatar_download_duration_seconds",
			Help:      "Avatar download latency.",
			Buckets:   prometheus.DefBuckets,
		}),
		LastRun: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "last_run_timestamp_seconds",
			Help:      "Unix time the command last finished.",
		}, []string{"command"}),
	}
	r.reg.MustRegister(
		r.RequestsTotal,
		r.RequestDuration,
		r.DownloadsTotal,
		r.DownloadDuration,
		r.LastRun,
	)
	return r
}

// ObserveRequest records one GraphQL request.
func (r *Registry) ObserveRequest(operation, outcome string, latency time.Duration) {
	r.RequestsTotal.WithLabelValues(operation, outcome).Inc()
	r.RequestDuration.WithLabelValues(operation).Observe(latency.Seconds())
}

// ObserveDownload records one avatar download.
func (r *Registry) ObserveDownload(outcome string, latency time.Duration) {
	r.DownloadsTotal.WithLabelValues(outcome).Inc()
	r.DownloadDuration.Observe(latency.Seconds())
}

// MarkRun stamps the finish time of a command.
func (r *Registry) MarkRun(command string, at time.Time) {
	r.LastRun.WithLabelValues(command).Set(float64(at.Unix()))
}

// Gatherer exposes the underlying registry.
func (r *Registry) Gatherer() prometheus.Gatherer {
	return r.reg
}

// WriteTextfile writes all metrics to path in the text exposition format.
// The file is replaced atomically.
func (r *Registry) WriteTextfile(path string) error {
	if err := prometheus.WriteToTextfile(path, r.reg); err != nil {
		return errors.Wrapf(err, "write metrics to %s", path)
	}
	return nil
}
