// Package metrics exposes Prometheus counters for shop activity, fed by a
// NotificationBus subscriber. Purely observational: nothing in the shop
// depends on these.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/hadilasm31/lamiti/internal/shop"
)

type Registry struct {
	reg *prometheus.Registry

	OrdersCreated  prometheus.Counter
	CartOps        *prometheus.CounterVec
	CatalogOps     *prometheus.CounterVec
	StockClamped   prometheus.Counter
	StatusUpdates  prometheus.Counter
	SessionChanges prometheus.Counter
}

func NewRegistry() *Registry {
	r := prometheus.NewRegistry()

	ordersCreated := prometheus.NewCounter(prometheus.CounterOpts{Name: "shop_orders_created_total"})
	cartOps := prometheus.NewCounterVec(prometheus.CounterOpts{Name: "shop_cart_operations_total"}, []string{"op"})
	catalogOps := prometheus.NewCounterVec(prometheus.CounterOpts{Name: "shop_catalog_operations_total"}, []string{"op"})
	stockClamped := prometheus.NewCounter(prometheus.CounterOpts{Name: "shop_stock_clamped_total"})
	statusUpdates := prometheus.NewCounter(prometheus.CounterOpts{Name: "shop_order_status_updates_total"})
	sessionChanges := prometheus.NewCounter(prometheus.CounterOpts{Name: "shop_admin_session_changes_total"})

	r.MustRegister(ordersCreated, cartOps, catalogOps, stockClamped, statusUpdates, sessionChanges)
	return &Registry{
		reg:            r,
		OrdersCreated:  ordersCreated,
		CartOps:        cartOps,
		CatalogOps:     catalogOps,
		StockClamped:   stockClamped,
		StatusUpdates:  statusUpdates,
		SessionChanges: sessionChanges,
	}
}

// Observe subscribes the registry's counters to bus events.
func (r *Registry) Observe(bus *shop.Bus) {
	bus.Subscribe(func(e shop.Event) {
		switch e.Topic {
		case shop.TopicOrderCreated:
			r.OrdersCreated.Inc()
		case shop.TopicCart:
			r.CartOps.WithLabelValues(e.Detail).Inc()
		case shop.TopicProducts, shop.TopicCategories:
			r.CatalogOps.WithLabelValues(e.Detail).Inc()
		case shop.TopicStockClamped:
			r.StockClamped.Inc()
		case shop.TopicOrders:
			if e.Detail == "status" {
				r.StatusUpdates.Inc()
			}
		case shop.TopicSession:
			r.SessionChanges.Inc()
		}
	})
}

func (r *Registry) Handler() http.Handler {
	return promhttp.HandlerFor(r.reg, promhttp.HandlerOpts{})
}
