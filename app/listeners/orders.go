// Package listeners subscribes infrastructure concerns to domain events.
package listeners

import (
	"sync"

	"github.com/shashiranjanraj/backoffice/app/services"
	"github.com/shashiranjanraj/backoffice/pkg/event"
	"github.com/shashiranjanraj/backoffice/pkg/logger"
	"github.com/shashiranjanraj/backoffice/pkg/metrics"
)

var once sync.Once

// Register subscribes the listeners once per process.
func Register() {
	once.Do(func() {
		event.Listen(services.EventOrderPlaced, OrderPlaced)
	})
}

// OrderPlaced counts the order in Prometheus and writes an audit line.
func OrderPlaced(payload interface{}) {
	p, ok := payload.(services.OrderPlaced)
	if !ok || p.Order == nil {
		return
	}

	metrics.RecordOrder(p.Order.TotalAmount)

	logger.WithCtx(p.Ctx).Info("order placed",
		"order_id", p.Order.ID,
		"user_id", p.Order.UserID,
		"total_amount", p.Order.TotalAmount,
	)
}
