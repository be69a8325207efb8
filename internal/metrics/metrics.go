package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Registry methods are safe on a nil receiver so stores can run without metrics.
type Registry struct {
	reg              *prometheus.Registry
	OrdersPlaced     prometheus.Counter
	CheckoutRejected *prometheus.CounterVec
	CartMutations    *prometheus.CounterVec
	StorageErrors    *prometheus.CounterVec
	CartItems        prometheus.Gauge
}

func NewRegistry() *Registry {
	r := prometheus.NewRegistry()
	placed := prometheus.NewCounter(prometheus.CounterOpts{Name: "shopfront_orders_placed_total"})
	rejected := prometheus.NewCounterVec(prometheus.CounterOpts{Name: "shopfront_checkout_rejected_total"}, []string{"reason"})
	mutations := prometheus.NewCounterVec(prometheus.CounterOpts{Name: "shopfront_cart_mutations_total"}, []string{"op"})
	storageErrs := prometheus.NewCounterVec(prometheus.CounterOpts{Name: "shopfront_storage_errors_total"}, []string{"op"})
	cartItems := prometheus.NewGauge(prometheus.GaugeOpts{Name: "shopfront_cart_items"})

	r.MustRegister(placed, rejected, mutations, storageErrs, cartItems)
	return &Registry{
		reg:              r,
		OrdersPlaced:     placed,
		CheckoutRejected: rejected,
		CartMutations:    mutations,
		StorageErrors:    storageErrs,
		CartItems:        cartItems,
	}
}

func (r *Registry) OrderPlaced() {
	if r != nil {
		r.OrdersPlaced.Inc()
	}
}

func (r *Registry) Rejected(reason string) {
	if r != nil {
		r.CheckoutRejected.WithLabelValues(reason).Inc()
	}
}

func (r *Registry) CartMutated(op string, count int) {
	if r != nil {
		r.CartMutations.WithLabelValues(op).Inc()
		r.CartItems.Set(float64(count))
	}
}

func (r *Registry) StorageFailed(op string) {
	if r != nil {
		r.StorageErrors.WithLabelValues(op).Inc()
	}
}

func (r *Registry) Gatherer() prometheus.Gatherer { return r.reg }

func (r *Registry) Handler() http.Handler { return promhttp.HandlerFor(r.Gatherer(), promhttp.HandlerOpts{}) }
