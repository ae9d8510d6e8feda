package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/iudanet/coffeecloud/internal/models"
	"github.com/iudanet/coffeecloud/internal/server/storage"
)

const menuColumns = `id, owner_id, name, menu_type, taste_level, water_level, foam_level, grind_size, coffee_option, created_at`

// rowScanner is implemented by *sql.Row and *sql.Rows
type rowScanner interface {
	Scan(dest ...any) error
}

// CreateMenu stores a new menu owned by menu.OwnerID
func (s *Storage) CreateMenu(ctx context.Context, menu *models.Menu) error {
	query := `
		INSERT INTO menus (owner_id, name, menu_type, taste_level, water_level, foam_level, grind_size, coffee_option, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	if menu.CreatedAt.IsZero() {
		menu.CreatedAt = time.Now().UTC()
	}

	result, err := s.db.ExecContext(ctx, query,
		menu.OwnerID,
		menu.Name,
		string(menu.MenuType),
		string(menu.TasteLevel),
		string(menu.WaterLevel),
		string(menu.FoamLevel),
		string(menu.GrindSize),
		string(menu.CoffeeOption),
		menu.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert menu: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get menu id: %w", err)
	}
	menu.ID = id

	return nil
}

// UpdateMenu replaces the configuration of a menu owned by ownerID
// Проверка владельца - часть самого UPDATE, отдельного SELECT нет
func (s *Storage) UpdateMenu(ctx context.Context, ownerID, menuID int64, cfg models.MenuConfig) error {
	query := `
		UPDATE menus
		SET name = ?, menu_type = ?, taste_level = ?, water_level = ?,
		    foam_level = ?, grind_size = ?, coffee_option = ?
		WHERE id = ? AND owner_id = ?
	`

	result, err := s.db.ExecContext(ctx, query,
		cfg.Name,
		string(cfg.MenuType),
		string(cfg.TasteLevel),
		string(cfg.WaterLevel),
		string(cfg.FoamLevel),
		string(cfg.GrindSize),
		string(cfg.CoffeeOption),
		menuID,
		ownerID,
	)
	if err != nil {
		return fmt.Errorf("failed to update menu: %w", err)
	}

	return expectAffected(result, storage.ErrMenuNotFound)
}

// GetMenu retrieves a menu by ID
func (s *Storage) GetMenu(ctx context.Context, menuID int64) (*models.Menu, error) {
	query := `SELECT ` + menuColumns + ` FROM menus WHERE id = ?`

	menu, err := scanMenu(s.db.QueryRowContext(ctx, query, menuID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, storage.ErrMenuNotFound
		}
		return nil, fmt.Errorf("failed to get menu: %w", err)
	}

	return menu, nil
}

// ListMenus returns menus of the owner ordered by id
func (s *Storage) ListMenus(ctx context.Context, ownerID int64) ([]*models.Menu, error) {
	query := `SELECT ` + menuColumns + ` FROM menus WHERE owner_id = ? ORDER BY id`

	rows, err := s.db.QueryContext(ctx, query, ownerID)
	if err != nil {
		return nil, fmt.Errorf("failed to query menus: %w", err)
	}
	defer func() {
		_ = rows.Close()
	}()

	menus := make([]*models.Menu, 0)
	for rows.Next() {
		menu, err := scanMenu(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan menu: %w", err)
		}
		menus = append(menus, menu)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}

	return menus, nil
}

func scanMenu(row rowScanner) (*models.Menu, error) {
	menu := &models.Menu{}
	var menuType, taste, water, foam, grind, option string

	if err := row.Scan(
		&menu.ID,
		&menu.OwnerID,
		&menu.Name,
		&menuType,
		&taste,
		&water,
		&foam,
		&grind,
		&option,
		&menu.CreatedAt,
	); err != nil {
		return nil, err
	}

	menu.MenuType = models.MenuType(menuType)
	menu.TasteLevel = models.TasteLevel(taste)
	menu.WaterLevel = models.WaterLevel(water)
	menu.FoamLevel = models.FoamLevel(foam)
	menu.GrindSize = models.GrindSize(grind)
	menu.CoffeeOption = models.CoffeeOption(option)

	return menu, nil
}
