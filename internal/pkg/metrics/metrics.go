// Package metrics exposes the service's Prometheus counters.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// OrdersHeld counts throttle holds by reason.
	OrdersHeld = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "kitchen_orders_held_total",
		Help: "Orders parked by the throttling engine or an operator.",
	}, []string{"reason"})

	// OrdersReleased counts throttle releases by reason.
	OrdersReleased = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "kitchen_orders_released_total",
		Help: "Held orders let back into the kitchen.",
	}, []string{"reason"})

	// StatusTransitions counts accepted lifecycle transitions.
	StatusTransitions = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "kitchen_order_status_transitions_total",
		Help: "Accepted order status transitions.",
	}, []string{"from", "to"})
)
