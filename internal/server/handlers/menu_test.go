package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iudanet/coffeecloud/internal/models"
	"github.com/iudanet/coffeecloud/pkg/api"
)

func validMenuRequest() api.MenuRequest {
	return api.MenuRequest{
		Name:       "morning flat white",
		MenuType:   "customized",
		TasteLevel: "strong",
		WaterLevel: "small",
		FoamLevel:  "thick",
		GrindSize:  "fine",
	}
}

func TestMenuHandler_Create(t *testing.T) {
	tests := []struct {
		name        string
		mutate      func(r *api.MenuRequest)
		wantMessage string
		wantCode    int
	}{
		{
			name:        "valid menu",
			mutate:      func(*api.MenuRequest) {},
			wantCode:    http.StatusCreated,
			wantMessage: "New menu created successfully.",
		},
		{
			name:        "with coffee option",
			mutate:      func(r *api.MenuRequest) { r.CoffeeOption = "coffee_two" },
			wantCode:    http.StatusCreated,
			wantMessage: "New menu created successfully.",
		},
		{
			name:        "blank name",
			mutate:      func(r *api.MenuRequest) { r.Name = "  " },
			wantCode:    http.StatusBadRequest,
			wantMessage: "name is required",
		},
		{
			name:        "bad taste level",
			mutate:      func(r *api.MenuRequest) { r.TasteLevel = "bitter" },
			wantCode:    http.StatusBadRequest,
			wantMessage: `taste_level: "bitter" is not one of [mild standard strong]`,
		},
		{
			name:        "bad coffee option",
			mutate:      func(r *api.MenuRequest) { r.CoffeeOption = "coffee_three" },
			wantCode:    http.StatusBadRequest,
			wantMessage: `coffee_option: "coffee_three" is not one of [coffee_one coffee_two]`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := setupTestStorage(t)
			h := NewMenuHandler(setupTestLogger(), s)
			user := createTestUser(t, s, "barista", "espresso123")

			body := validMenuRequest()
			tt.mutate(&body)

			w := httptest.NewRecorder()
			h.Create(w, newRequest(t, http.MethodPost, "/menu", body,
				testClaims(user.ID, user.Username, models.TokenTypeAccess)))

			assert.Equal(t, tt.wantCode, w.Code)

			if tt.wantCode != http.StatusCreated {
				var errResp api.ErrorResponse
				decodeBody(t, w, &errResp)
				assert.Equal(t, tt.wantMessage, errResp.Message)

				menus, err := s.ListMenus(context.Background(), user.ID)
				require.NoError(t, err)
				assert.Empty(t, menus)
				return
			}

			var resp api.MenuCreatedResponse
			decodeBody(t, w, &resp)
			assert.Equal(t, tt.wantMessage, resp.Message)

			menu, err := s.GetMenu(context.Background(), resp.MenuID)
			require.NoError(t, err)
			assert.Equal(t, user.ID, menu.OwnerID)
			assert.Equal(t, body.Name, menu.Name)
			assert.Equal(t, models.CoffeeOption(body.CoffeeOption), menu.CoffeeOption)
		})
	}
}

func TestMenuHandler_List(t *testing.T) {
	s := setupTestStorage(t)
	h := NewMenuHandler(setupTestLogger(), s)
	alice := createTestUser(t, s, "alice", "espresso123")
	bob := createTestUser(t, s, "bob", "espresso123")

	createTestMenu(t, s, alice.ID, models.MenuTypeCustomized)
	createTestMenu(t, s, alice.ID, models.MenuTypeGeneral)
	createTestMenu(t, s, bob.ID, models.MenuTypeCustomized)

	w := httptest.NewRecorder()
	h.List(w, newRequest(t, http.MethodGet, "/menu", nil,
		testClaims(alice.ID, alice.Username, models.TokenTypeAccess)))

	require.Equal(t, http.StatusOK, w.Code)

	var resp []api.MenuResponse
	decodeBody(t, w, &resp)
	assert.Len(t, resp, 2)
	for _, m := range resp {
		assert.Equal(t, "cortado", m.Name)
	}
}

func TestMenuHandler_List_Empty(t *testing.T) {
	s := setupTestStorage(t)
	h := NewMenuHandler(setupTestLogger(), s)

	w := httptest.NewRecorder()
	h.List(w, newRequest(t, http.MethodGet, "/menu", nil, testClaims(7, "nobody", models.TokenTypeAccess)))

	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, "[]", w.Body.String())
}

func TestMenuHandler_Update(t *testing.T) {
	s := setupTestStorage(t)
	h := NewMenuHandler(setupTestLogger(), s)
	alice := createTestUser(t, s, "alice", "espresso123")
	bob := createTestUser(t, s, "bob", "espresso123")
	menuID := createTestMenu(t, s, alice.ID, models.MenuTypeCustomized)

	tests := []struct {
		claims   *CustomClaims
		name     string
		menuID   int64
		wantCode int
	}{
		{name: "owner updates", claims: testClaims(alice.ID, "alice", models.TokenTypeAccess), menuID: menuID, wantCode: http.StatusOK},
		{name: "another user", claims: testClaims(bob.ID, "bob", models.TokenTypeAccess), menuID: menuID, wantCode: http.StatusNotFound},
		{name: "unknown menu", claims: testClaims(alice.ID, "alice", models.TokenTypeAccess), menuID: 999, wantCode: http.StatusNotFound},
		{name: "missing menu id", claims: testClaims(alice.ID, "alice", models.TokenTypeAccess), menuID: 0, wantCode: http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			body := validMenuRequest()
			body.MenuID = tt.menuID
			body.Name = "updated by " + tt.claims.Username

			w := httptest.NewRecorder()
			h.Update(w, newRequest(t, http.MethodPatch, "/menu", body, tt.claims))

			assert.Equal(t, tt.wantCode, w.Code)
		})
	}

	// Изменение применил только владелец
	menu, err := s.GetMenu(context.Background(), menuID)
	require.NoError(t, err)
	assert.Equal(t, "updated by alice", menu.Name)
	assert.Equal(t, models.FoamThick, menu.FoamLevel)
}
