package storage

import (
	"context"

	"github.com/iudanet/coffeecloud/internal/models"
)

// SerialStorage defines interface for the serial number link registry
type SerialStorage interface {
	// LinkSerial stores a new link and sets link.ID and link.CreatedAt
	// Returns ErrOrderNotFound if the order doesn't exist,
	// ErrOrderLineNotFound if the order has no line for the menu,
	// ErrSerialAlreadyLinked if the same triple is already stored
	LinkSerial(ctx context.Context, link *models.SerialLink) error

	// GetSerialsByOrder returns all links of an order, oldest first
	GetSerialsByOrder(ctx context.Context, orderID int64) ([]*models.SerialLink, error)

	// FindSerial resolves a serial number to its most recent link
	// Returns ErrSerialNotFound if serial number is unknown
	FindSerial(ctx context.Context, serialNumber string) (*models.SerialLookup, error)
}
