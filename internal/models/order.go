package models

import (
	"errors"
	"fmt"
	"sort"
	"time"
)

// OrderStatus is the two-state order lifecycle: active -> obsolete.
// The transition is one-way.
type OrderStatus string

const (
	OrderActive   OrderStatus = "active"
	OrderObsolete OrderStatus = "obsolete"
)

// OrderLine связывает заказ с профилем напитка и количеством
type OrderLine struct {
	MenuID int64 `json:"menu_id"`
	Counts int   `json:"counts"`
}

// Order представляет заказ пользователя
type Order struct {
	CreatedAt         time.Time   `json:"created_at"`
	CustomizedMessage string      `json:"message"`
	Status            OrderStatus `json:"-"`
	Lines             []OrderLine `json:"order_contents"`
	ID                int64       `json:"order_id"`
	UserID            int64       `json:"user_id"`
}

// IsObsolete reports whether the order has been invalidated.
func (o *Order) IsObsolete() bool {
	return o.Status == OrderObsolete
}

// Ошибки валидации строк заказа
var (
	ErrEmptyOrder    = errors.New("order must contain at least one line")
	ErrInvalidCounts = errors.New("counts must be at least 1")
	ErrInvalidMenuID = errors.New("menu_id must be positive")
	ErrTooManyCounts = fmt.Errorf("counts must not exceed %d", MaxCounts)
)

// MaxCounts ограничивает количество одного напитка в заказе, в том числе
// после объединения повторяющихся строк
const MaxCounts = 1000

// NormalizeLines validates order lines and merges repeated menu ids by summing
// their counts, so that every menu appears at most once per order.
// The result is sorted by menu id.
func NormalizeLines(lines []OrderLine) ([]OrderLine, error) {
	if len(lines) == 0 {
		return nil, ErrEmptyOrder
	}

	merged := make(map[int64]int, len(lines))
	for i, l := range lines {
		if l.MenuID <= 0 {
			return nil, fmt.Errorf("line %d: %w", i, ErrInvalidMenuID)
		}
		if l.Counts < 1 {
			return nil, fmt.Errorf("line %d: %w", i, ErrInvalidCounts)
		}
		if l.Counts > MaxCounts {
			return nil, fmt.Errorf("line %d: %w", i, ErrTooManyCounts)
		}
		// оба слагаемых <= MaxCounts, переполнения нет
		merged[l.MenuID] += l.Counts
		if merged[l.MenuID] > MaxCounts {
			return nil, fmt.Errorf("menu %d: %w", l.MenuID, ErrTooManyCounts)
		}
	}

	out := make([]OrderLine, 0, len(merged))
	for id, c := range merged {
		out = append(out, OrderLine{MenuID: id, Counts: c})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].MenuID < out[j].MenuID })

	return out, nil
}
