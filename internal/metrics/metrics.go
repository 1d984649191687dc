// Package metrics exposes Prometheus collectors for the counter.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/shopspring/decimal"
)

// Metrics holds the collectors. A nil *Metrics is valid and records nothing.
type Metrics struct {
	registry       *prometheus.Registry
	ordersPlaced   prometheus.Counter
	orderRevenue   prometheus.Counter
	qrFailures     prometheus.Counter
	catalogChanges *prometheus.CounterVec
	displayClients prometheus.Gauge
}

// New registers all collectors on a fresh registry.
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		ordersPlaced: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "pos_orders_placed_total",
			Help: "Orders recorded in the transaction history.",
		}),
		orderRevenue: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "pos_order_revenue_total",
			Help: "Sum of recorded order totals.",
		}),
		qrFailures: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "pos_qr_failures_total",
			Help: "Payment QR codes that could not be generated.",
		}),
		catalogChanges: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "pos_catalog_changes_total",
			Help: "Catalog mutations by operation.",
		}, []string{"op"}),
		displayClients: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "pos_display_clients",
			Help: "Connected display websocket clients.",
		}),
	}
	m.registry.MustRegister(
		m.ordersPlaced, m.orderRevenue, m.qrFailures, m.catalogChanges, m.displayClients,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return m
}

func (m *Metrics) OrderPlaced(total decimal.Decimal) {
	if m == nil {
		return
	}
	m.ordersPlaced.Inc()
	m.orderRevenue.Add(total.InexactFloat64())
}

func (m *Metrics) QRFailed() {
	if m == nil {
		return
	}
	m.qrFailures.Inc()
}

// CatalogChanged counts an "add" or "remove".
func (m *Metrics) CatalogChanged(op string) {
	if m == nil {
		return
	}
	m.catalogChanges.WithLabelValues(op).Inc()
}

func (m *Metrics) SetDisplayClients(n int) {
	if m == nil {
		return
	}
	m.displayClients.Set(float64(n))
}

// Handler serves the registry in the Prometheus text format.
// A nil *Metrics serves 404.
func (m *Metrics) Handler() http.Handler {
	if m == nil {
		return http.NotFoundHandler()
	}
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
