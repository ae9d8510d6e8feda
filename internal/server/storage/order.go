package storage

import (
	"context"

	"github.com/iudanet/coffeecloud/internal/models"
)

// OrderStorage defines interface for the order ledger
type OrderStorage interface {
	// PlaceOrder stores the order and all of its lines in one transaction
	// Every line must reference a menu usable by order.UserID
	// Sets order.ID, order.CreatedAt and order.Status
	// Returns ErrMenuNotFound (wrapped with the offending id) and stores nothing
	// if any menu is missing or not usable
	PlaceOrder(ctx context.Context, order *models.Order) error

	// GetOrder retrieves order with its lines, active or obsolete
	// Returns ErrOrderNotFound if order doesn't exist
	GetOrder(ctx context.Context, orderID int64) (*models.Order, error)

	// ListOrders returns the user's orders with the given status, oldest first
	ListOrders(ctx context.Context, userID int64, status models.OrderStatus) ([]*models.Order, error)

	// InvalidateOrder moves the order to obsolete status
	// Invalidating an obsolete order is a no-op
	// Returns ErrOrderNotFound if order doesn't exist
	InvalidateOrder(ctx context.Context, orderID int64) error
}
