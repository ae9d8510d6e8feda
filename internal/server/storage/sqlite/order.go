package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/iudanet/coffeecloud/internal/models"
	"github.com/iudanet/coffeecloud/internal/server/storage"
)

// PlaceOrder stores the order and its lines in a single transaction
// Строки должны быть уже нормализованы (models.NormalizeLines)
func (s *Storage) PlaceOrder(ctx context.Context, order *models.Order) error {
	if len(order.Lines) == 0 {
		return models.ErrEmptyOrder
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer rollback(tx)

	// Каждый профиль должен существовать и быть доступен пользователю
	for _, line := range order.Lines {
		var (
			ownerID  int64
			menuType string
		)
		err := tx.QueryRowContext(ctx,
			`SELECT owner_id, menu_type FROM menus WHERE id = ?`,
			line.MenuID,
		).Scan(&ownerID, &menuType)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return fmt.Errorf("%w: %d", storage.ErrMenuNotFound, line.MenuID)
			}
			return fmt.Errorf("failed to check menu %d: %w", line.MenuID, err)
		}

		menu := models.Menu{OwnerID: ownerID, MenuConfig: models.MenuConfig{MenuType: models.MenuType(menuType)}}
		if !menu.UsableBy(order.UserID) {
			return fmt.Errorf("%w: %d", storage.ErrMenuNotFound, line.MenuID)
		}
	}

	createdAt := time.Now().UTC()
	result, err := tx.ExecContext(ctx,
		`INSERT INTO orders (user_id, customized_message, status, created_at) VALUES (?, ?, ?, ?)`,
		order.UserID,
		order.CustomizedMessage,
		string(models.OrderActive),
		createdAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert order: %w", err)
	}

	orderID, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get order id: %w", err)
	}

	for _, line := range order.Lines {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO order_lines (order_id, menu_id, counts) VALUES (?, ?, ?)`,
			orderID, line.MenuID, line.Counts,
		); err != nil {
			return fmt.Errorf("failed to insert order line for menu %d: %w", line.MenuID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit order: %w", err)
	}

	order.ID = orderID
	order.CreatedAt = createdAt
	order.Status = models.OrderActive

	return nil
}

// GetOrder retrieves order with its lines
func (s *Storage) GetOrder(ctx context.Context, orderID int64) (*models.Order, error) {
	tx, err := s.db.BeginTx(ctx, &sql.TxOptions{ReadOnly: true})
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer rollback(tx)

	order := &models.Order{}
	var status string

	err = tx.QueryRowContext(ctx,
		`SELECT id, user_id, customized_message, status, created_at FROM orders WHERE id = ?`,
		orderID,
	).Scan(&order.ID, &order.UserID, &order.CustomizedMessage, &status, &order.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, storage.ErrOrderNotFound
		}
		return nil, fmt.Errorf("failed to get order: %w", err)
	}
	order.Status = models.OrderStatus(status)

	lines, err := queryLines(ctx, tx, []int64{orderID})
	if err != nil {
		return nil, err
	}
	order.Lines = lines[orderID]

	return order, nil
}

// ListOrders returns orders of the user with given status, oldest first
// Заказы и их строки читаются в одной транзакции
func (s *Storage) ListOrders(ctx context.Context, userID int64, status models.OrderStatus) ([]*models.Order, error) {
	tx, err := s.db.BeginTx(ctx, &sql.TxOptions{ReadOnly: true})
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer rollback(tx)

	rows, err := tx.QueryContext(ctx, `
		SELECT id, user_id, customized_message, status, created_at
		FROM orders
		WHERE user_id = ? AND status = ?
		ORDER BY id
	`, userID, string(status))
	if err != nil {
		return nil, fmt.Errorf("failed to query orders: %w", err)
	}

	orders := make([]*models.Order, 0)
	ids := make([]int64, 0)
	for rows.Next() {
		order := &models.Order{}
		var st string
		if err := rows.Scan(&order.ID, &order.UserID, &order.CustomizedMessage, &st, &order.CreatedAt); err != nil {
			_ = rows.Close()
			return nil, fmt.Errorf("failed to scan order: %w", err)
		}
		order.Status = models.OrderStatus(st)
		orders = append(orders, order)
		ids = append(ids, order.ID)
	}
	if err := rows.Err(); err != nil {
		_ = rows.Close()
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}
	_ = rows.Close()

	if len(orders) == 0 {
		return orders, nil
	}

	lines, err := queryLines(ctx, tx, ids)
	if err != nil {
		return nil, err
	}

	for _, order := range orders {
		order.Lines = lines[order.ID]
	}

	return orders, nil
}

// InvalidateOrder moves the order to obsolete status
// Переход однонаправленный: obsolete заказ не возвращается в active
func (s *Storage) InvalidateOrder(ctx context.Context, orderID int64) error {
	result, err := s.db.ExecContext(ctx,
		`UPDATE orders SET status = ? WHERE id = ?`,
		string(models.OrderObsolete), orderID,
	)
	if err != nil {
		return fmt.Errorf("failed to invalidate order: %w", err)
	}

	return expectAffected(result, storage.ErrOrderNotFound)
}

// queryLines возвращает строки указанных заказов, сгруппированные по order_id
func queryLines(ctx context.Context, tx *sql.Tx, orderIDs []int64) (map[int64][]models.OrderLine, error) {
	placeholders := strings.TrimSuffix(strings.Repeat("?,", len(orderIDs)), ",")
	args := make([]any, 0, len(orderIDs))
	for _, id := range orderIDs {
		args = append(args, id)
	}

	rows, err := tx.QueryContext(ctx,
		`SELECT order_id, menu_id, counts FROM order_lines WHERE order_id IN (`+placeholders+`) ORDER BY order_id, menu_id`,
		args...,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query order lines: %w", err)
	}
	defer func() {
		_ = rows.Close()
	}()

	lines := make(map[int64][]models.OrderLine, len(orderIDs))
	for rows.Next() {
		var (
			orderID int64
			line    models.OrderLine
		)
		if err := rows.Scan(&orderID, &line.MenuID, &line.Counts); err != nil {
			return nil, fmt.Errorf("failed to scan order line: %w", err)
		}
		lines[orderID] = append(lines[orderID], line)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}

	return lines, nil
}
