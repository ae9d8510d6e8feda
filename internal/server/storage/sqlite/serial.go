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

// LinkSerial binds a serial number to an (order, menu) line
// Дубликат тройки отклоняется UNIQUE ограничением таблицы
func (s *Storage) LinkSerial(ctx context.Context, link *models.SerialLink) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer rollback(tx)

	var hasLine bool
	err = tx.QueryRowContext(ctx, `
		SELECT EXISTS (SELECT 1 FROM order_lines WHERE order_id = o.id AND menu_id = ?)
		FROM orders o
		WHERE o.id = ?
	`, link.MenuID, link.OrderID).Scan(&hasLine)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return storage.ErrOrderNotFound
		}
		return fmt.Errorf("failed to check order line: %w", err)
	}
	if !hasLine {
		return storage.ErrOrderLineNotFound
	}

	createdAt := time.Now().UTC()
	result, err := tx.ExecContext(ctx,
		`INSERT INTO serial_numbers (order_id, menu_id, serial_number, created_at) VALUES (?, ?, ?, ?)`,
		link.OrderID, link.MenuID, link.SerialNumber, createdAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return storage.ErrSerialAlreadyLinked
		}
		return fmt.Errorf("failed to insert serial number: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get serial id: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit serial link: %w", err)
	}

	link.ID = id
	link.CreatedAt = createdAt

	return nil
}

// GetSerialsByOrder returns links of the order ordered by id
func (s *Storage) GetSerialsByOrder(ctx context.Context, orderID int64) ([]*models.SerialLink, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, order_id, menu_id, serial_number, created_at
		FROM serial_numbers
		WHERE order_id = ?
		ORDER BY id
	`, orderID)
	if err != nil {
		return nil, fmt.Errorf("failed to query serial numbers: %w", err)
	}
	defer func() {
		_ = rows.Close()
	}()

	links := make([]*models.SerialLink, 0)
	for rows.Next() {
		link := &models.SerialLink{}
		if err := rows.Scan(&link.ID, &link.OrderID, &link.MenuID, &link.SerialNumber, &link.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan serial number: %w", err)
		}
		links = append(links, link)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}

	return links, nil
}

// FindSerial resolves a serial number to the most recent link
func (s *Storage) FindSerial(ctx context.Context, serialNumber string) (*models.SerialLookup, error) {
	lookup := &models.SerialLookup{}

	err := s.db.QueryRowContext(ctx, `
		SELECT sn.order_id, sn.menu_id, o.customized_message
		FROM serial_numbers sn
		JOIN orders o ON o.id = sn.order_id
		WHERE sn.serial_number = ?
		ORDER BY sn.id DESC
		LIMIT 1
	`, serialNumber).Scan(&lookup.OrderID, &lookup.MenuID, &lookup.CustomizedMessage)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, storage.ErrSerialNotFound
		}
		return nil, fmt.Errorf("failed to find serial number: %w", err)
	}

	return lookup, nil
}
