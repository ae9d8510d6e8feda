package storage

import (
	"context"

	"github.com/iudanet/coffeecloud/internal/models"
)

// MenuStorage defines interface for the per-user drink catalog
type MenuStorage interface {
	// CreateMenu stores a new menu and sets menu.ID and menu.CreatedAt
	CreateMenu(ctx context.Context, menu *models.Menu) error

	// UpdateMenu replaces the configuration of a menu owned by ownerID
	// Ownership is part of the update statement
	// Returns ErrMenuNotFound if the menu doesn't exist or belongs to someone else
	UpdateMenu(ctx context.Context, ownerID, menuID int64, cfg models.MenuConfig) error

	// GetMenu retrieves a menu by ID regardless of owner
	// Returns ErrMenuNotFound if menu doesn't exist
	GetMenu(ctx context.Context, menuID int64) (*models.Menu, error)

	// ListMenus returns menus of the owner in creation order
	// Returns empty slice if no menus found
	ListMenus(ctx context.Context, ownerID int64) ([]*models.Menu, error)
}
