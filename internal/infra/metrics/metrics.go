package metrics

import (
	"errors"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/lucasbertoncelli/sst2-sub000/internal/domain/stock"
)

var (
	DeliveriesTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "sst_deliveries_total",
		Help: "Committed PPE deliveries.",
	})

	DeliveryErrorsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "sst_delivery_errors_total",
		Help: "Rejected delivery operations by reason.",
	}, []string{"reason"})

	ActiveAlerts = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Name: "sst_active_alerts",
		Help: "Alerts currently raised by the evaluator, by kind.",
	}, []string{"kind"})
)

// Reason maps an engine error to a stable label value.
func Reason(err error) string {
	switch {
	case errors.Is(err, stock.ErrInsufficientStock):
		return "insufficient_stock"
	case errors.Is(err, stock.ErrInvalidQuantity):
		return "invalid_quantity"
	case errors.Is(err, stock.ErrNotFound):
		return "not_found"
	case errors.Is(err, stock.ErrStockInUse):
		return "stock_in_use"
	default:
		return "other"
	}
}
