package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	OrdersCreated = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "storefront",
		Subsystem: "orders",
		Name:      "created_total",
		Help:      "Orders successfully placed.",
	})

	OrderFailures = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "storefront",
		Subsystem: "orders",
		Name:      "failed_total",
		Help:      "Order placements rejected, by reason.",
	}, []string{"reason"})

	PaymentsRecorded = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "storefront",
		Subsystem: "payments",
		Name:      "recorded_total",
		Help:      "Payment attempts recorded, by method.",
	}, []string{"method"})

	PaymentTransitions = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "storefront",
		Subsystem: "payments",
		Name:      "transitions_total",
		Help:      "Payment status transitions applied, by target status.",
	}, []string{"status"})

	StockAdjustments = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "storefront",
		Subsystem: "inventory",
		Name:      "adjustments_total",
		Help:      "Stock adjustments applied, by change type.",
	}, []string{"type"})

	StockRejections = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "storefront",
		Subsystem: "inventory",
		Name:      "rejections_total",
		Help:      "Sales rejected because stock would go negative.",
	})
)
