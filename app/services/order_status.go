package services

import (
	"context"
	"fmt"
	"time"

	"github.com/shashiranjanraj/storehub/app/models"
	"github.com/shashiranjanraj/storehub/pkg/database"
	"gorm.io/gorm"
)

// UpdateStatus moves an order to status. Only the status column changes:
// items, totals and stock are untouched. Any status may follow any other.
func (s *OrderService) UpdateStatus(ctx context.Context, caller Caller, orderID string, status models.Status) (models.Order, error) {
	start := time.Now()
	order, err := s.transition(ctx, caller, orderID, status)
	s.finish(ctx, "update_status", start, err, order)
	return order, err
}

func (s *OrderService) transition(ctx context.Context, caller Caller, orderID string, status models.Status) (models.Order, error) {
	if !status.Valid() {
		return models.Order{}, fieldError("status", "The selected status is invalid.", nil)
	}

	var order models.Order
	err := database.Transaction(ctx, s.db, func(tx *gorm.DB) error {
		existing, err := s.lockOrder(ctx, tx, caller, orderID)
		if err != nil {
			return err
		}
		if existing.Status == status {
			order = existing
			return nil
		}
		if _, err := s.orders.UpdateHeader(ctx, tx, existing.ID, map[string]interface{}{"status": status}); err != nil {
			return fmt.Errorf("orders: update status: %w", err)
		}
		existing.Status = status
		order = existing
		return nil
	})
	return order, err
}
