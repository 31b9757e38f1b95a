// Package metrics exports overlay lifecycle counters to Prometheus.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"debug-overlay/overlay"
)

// Observer is an overlay.Host that records lifecycle events. Register it
// next to the widget host with overlay.Hosts.
type Observer struct {
	reg *prometheus.Registry

	categories        prometheus.Gauge
	graphs            prometheus.Gauge
	categoriesCreated prometheus.Counter
	categoriesRemoved prometheus.Counter
	graphsCreated     *prometheus.CounterVec
	graphsRemoved     prometheus.Counter
	reorders          prometheus.Counter

	entries prometheus.Gauge
	dropped prometheus.Gauge
	cycles  prometheus.Gauge
}

// NewObserver registers the overlay metrics on a fresh registry.
func NewObserver() *Observer {
	reg := prometheus.NewRegistry()
	f := promauto.With(reg)
	return &Observer{
		reg: reg,
		categories: f.NewGauge(prometheus.GaugeOpts{
			Name: "overlay_categories",
			Help: "Live overlay categories",
		}),
		graphs: f.NewGauge(prometheus.GaugeOpts{
			Name: "overlay_graphs",
			Help: "Live overlay graphs across all categories",
		}),
		categoriesCreated: f.NewCounter(prometheus.CounterOpts{
			Name: "overlay_categories_created_total",
			Help: "Categories created",
		}),
		categoriesRemoved: f.NewCounter(prometheus.CounterOpts{
			Name: "overlay_categories_destroyed_total",
			Help: "Categories torn down after a silent cycle",
		}),
		graphsCreated: f.NewCounterVec(prometheus.CounterOpts{
			Name: "overlay_graphs_created_total",
			Help: "Graphs created, by the cadence of the creating point",
		}, []string{"origin"}),
		graphsRemoved: f.NewCounter(prometheus.CounterOpts{
			Name: "overlay_graphs_destroyed_total",
			Help: "Graphs torn down after a silent cycle",
		}),
		reorders: f.NewCounter(prometheus.CounterOpts{
			Name: "overlay_reorders_total",
			Help: "Reorder signals sent to the widget host",
		}),
		entries: f.NewGauge(prometheus.GaugeOpts{
			Name: "overlay_entries",
			Help: "Entries accepted since start",
		}),
		dropped: f.NewGauge(prometheus.GaugeOpts{
			Name: "overlay_dropped_entries",
			Help: "Entries dropped for an empty category or graph id",
		}),
		cycles: f.NewGauge(prometheus.GaugeOpts{
			Name: "overlay_cycles",
			Help: "Completed render phases",
		}),
	}
}

func (o *Observer) CategoryCreated(name string) {
	o.categories.Inc()
	o.categoriesCreated.Inc()
}

func (o *Observer) CategoryDestroyed(name string) {
	o.categories.Dec()
	o.categoriesRemoved.Inc()
}

func (o *Observer) GraphCreated(category string, graph overlay.GraphSnapshot) {
	o.graphs.Inc()
	o.graphsCreated.WithLabelValues(graph.Origin.String()).Inc()
}

func (o *Observer) GraphDestroyed(category, graphID string) {
	o.graphs.Dec()
	o.graphsRemoved.Inc()
}

func (o *Observer) Reorder() { o.reorders.Inc() }

// ObserveStats copies the engine's running totals.
func (o *Observer) ObserveStats(s overlay.Stats) {
	o.entries.Set(float64(s.Entries))
	o.dropped.Set(float64(s.Dropped))
	o.cycles.Set(float64(s.Cycles))
}

func (o *Observer) Registry() *prometheus.Registry { return o.reg }

// Handler serves the observer's registry in the Prometheus text format.
func (o *Observer) Handler() http.Handler {
	return promhttp.HandlerFor(o.reg, promhttp.HandlerOpts{})
}
