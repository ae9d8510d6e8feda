package boltdb

import (
	"context"
	"encoding/json"
	"fmt"

	"go.etcd.io/bbolt"

	"github.com/iudanet/coffeecloud/pkg/api"
)

// SaveMenus replaces cached menus of the user
func (s *Storage) SaveMenus(ctx context.Context, username string, menus []api.MenuResponse) error {
	data, err := json.Marshal(menus)
	if err != nil {
		return fmt.Errorf("failed to marshal menus: %w", err)
	}

	return s.update(func(tx *bbolt.Tx) error {
		if err := tx.Bucket(bucketMenus).Put([]byte(username), data); err != nil {
			return fmt.Errorf("failed to save menus: %w", err)
		}
		return nil
	})
}

// GetMenus returns cached menus of the user
func (s *Storage) GetMenus(ctx context.Context, username string) ([]api.MenuResponse, error) {
	menus := make([]api.MenuResponse, 0)

	err := s.view(func(tx *bbolt.Tx) error {
		data := tx.Bucket(bucketMenus).Get([]byte(username))
		if data == nil {
			return nil
		}
		if err := json.Unmarshal(data, &menus); err != nil {
			return fmt.Errorf("failed to unmarshal menus: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return menus, nil
}
