// Package metrics holds the Prometheus collectors a playground session
// updates:
//
//	playground_orders_total{symbol,side}       filled orders
//	playground_order_rejections_total{symbol}  orders refused by the ledger
//	playground_open_positions                  symbols with an open position
//	playground_bars_generated_total{symbol}    bars produced by the generator
//	playground_unrealized_pnl{symbol}          PnL of the open position at the mark
//
// Collectors live on their own registry so tests and multiple sessions do
// not collide on the global default registry.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type Metrics struct {
	Registry *prometheus.Registry

	Orders        *prometheus.CounterVec
	Rejections    *prometheus.CounterVec
	OpenPositions prometheus.Gauge
	Bars          *prometheus.CounterVec
	UnrealizedPnL *prometheus.GaugeVec
}

func New() *Metrics {
	m := &Metrics{
		Registry: prometheus.NewRegistry(),
		Orders: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "playground_orders_total",
				Help: "Orders filled by the ledger",
			},
			[]string{"symbol", "side"},
		),
		Rejections: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "playground_order_rejections_total",
				Help: "Order requests rejected as invalid",
			},
			[]string{"symbol"},
		),
		OpenPositions: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Name: "playground_open_positions",
				Help: "Symbols with an open position",
			},
		),
		Bars: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "playground_bars_generated_total",
				Help: "Bars produced by the synthetic generator",
			},
			[]string{"symbol"},
		),
		UnrealizedPnL: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "playground_unrealized_pnl",
				Help: "Unrealized PnL of the open position at the current mark",
			},
			[]string{"symbol"},
		),
	}

	m.Registry.MustRegister(m.Orders, m.Rejections, m.OpenPositions, m.Bars, m.UnrealizedPnL)
	return m
}

// Handler serves the registry in the Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.Registry, promhttp.HandlerOpts{})
}
