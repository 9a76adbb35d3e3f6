// Package metrics holds the process-wide Prometheus registry and the
// application counters exported on /metrics.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Registry bundles the collectors for export. A single instance is built
// at startup and injected into the components that record metrics.
type Registry struct {
	registry *prometheus.Registry

	clientViews *prometheus.CounterVec
}

// NewRegistry creates a registry with process, Go runtime and
// application collectors registered.
func NewRegistry() *Registry {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		collectors.NewGoCollector(),
	)

	clientViews := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "client_views_total",
			Help: "Total number of views per client",
		},
		[]string{"client_id"},
	)
	reg.MustRegister(clientViews)

	return &Registry{
		registry:    reg,
		clientViews: clientViews,
	}
}

// IncClientViews increments the view counter for a client id.
func (r *Registry) IncClientViews(clientID string) {
	r.clientViews.WithLabelValues(clientID).Inc()
}

// Handler returns the text-format exposition handler for this registry.
func (r *Registry) Handler() http.Handler {
	return promhttp.HandlerFor(r.registry, promhttp.HandlerOpts{})
}
