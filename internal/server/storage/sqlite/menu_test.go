package sqlite

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iudanet/coffeecloud/internal/models"
	"github.com/iudanet/coffeecloud/internal/server/storage"
)

func TestMenuStorage_CreateAndGet(t *testing.T) {
	ctx := context.Background()
	s, cleanup := setupTestStorage(t)
	defer cleanup()

	ownerID := createTestUser(t, ctx, s, "owner")

	menu := &models.Menu{
		OwnerID: ownerID,
		MenuConfig: models.MenuConfig{
			Name:         "morning",
			MenuType:     models.MenuTypeCustomized,
			TasteLevel:   models.TasteStrong,
			WaterLevel:   models.WaterLong,
			FoamLevel:    models.FoamNone,
			GrindSize:    models.GrindCoarse,
			CoffeeOption: models.CoffeeTwo,
		},
	}
	require.NoError(t, s.CreateMenu(ctx, menu))
	assert.Positive(t, menu.ID)

	got, err := s.GetMenu(ctx, menu.ID)
	require.NoError(t, err)
	assert.Equal(t, menu.MenuConfig, got.MenuConfig)
	assert.Equal(t, ownerID, got.OwnerID)

	_, err = s.GetMenu(ctx, menu.ID+1)
	assert.ErrorIs(t, err, storage.ErrMenuNotFound)
}

func TestMenuStorage_ListMenus(t *testing.T) {
	ctx := context.Background()
	s, cleanup := setupTestStorage(t)
	defer cleanup()

	alice := createTestUser(t, ctx, s, "alice")
	bob := createTestUser(t, ctx, s, "bob")

	first := createTestMenu(t, ctx, s, alice, models.MenuTypeCustomized)
	createTestMenu(t, ctx, s, bob, models.MenuTypeCustomized)
	second := createTestMenu(t, ctx, s, alice, models.MenuTypeGeneral)

	menus, err := s.ListMenus(ctx, alice)
	require.NoError(t, err)
	require.Len(t, menus, 2)
	// порядок вставки
	assert.Equal(t, first, menus[0].ID)
	assert.Equal(t, second, menus[1].ID)

	menus, err = s.ListMenus(ctx, alice+bob+1)
	require.NoError(t, err)
	assert.NotNil(t, menus)
	assert.Empty(t, menus)
}

func TestMenuStorage_UpdateMenu(t *testing.T) {
	ctx := context.Background()
	s, cleanup := setupTestStorage(t)
	defer cleanup()

	alice := createTestUser(t, ctx, s, "alice")
	mallory := createTestUser(t, ctx, s, "mallory")
	menuID := createTestMenu(t, ctx, s, alice, models.MenuTypeCustomized)

	updated := models.MenuConfig{
		Name:       "evening",
		MenuType:   models.MenuTypeGeneral,
		TasteLevel: models.TasteMild,
		WaterLevel: models.WaterStandard,
		FoamLevel:  models.FoamStandard,
		GrindSize:  models.GrindMedium,
	}

	tests := []struct {
		wantError error
		name      string
		ownerID   int64
		menuID    int64
	}{
		{
			name:      "non-owner cannot update",
			ownerID:   mallory,
			menuID:    menuID,
			wantError: storage.ErrMenuNotFound,
		},
		{
			name:      "missing menu",
			ownerID:   alice,
			menuID:    menuID + 10,
			wantError: storage.ErrMenuNotFound,
		},
		{
			name:    "owner updates",
			ownerID: alice,
			menuID:  menuID,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			before, err := s.GetMenu(ctx, menuID)
			require.NoError(t, err)

			err = s.UpdateMenu(ctx, tt.ownerID, tt.menuID, updated)

			after, getErr := s.GetMenu(ctx, menuID)
			require.NoError(t, getErr)

			if tt.wantError != nil {
				assert.ErrorIs(t, err, tt.wantError)
				// Никаких изменений
				assert.Equal(t, before.MenuConfig, after.MenuConfig)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, updated, after.MenuConfig)
			assert.Equal(t, alice, after.OwnerID)
		})
	}
}
