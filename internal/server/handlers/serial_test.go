package handlers

import (
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iudanet/coffeecloud/internal/events"
	"github.com/iudanet/coffeecloud/internal/models"
	"github.com/iudanet/coffeecloud/pkg/api"
)

func TestSerialHandler_LinkAndGet(t *testing.T) {
	s := setupTestStorage(t)
	pub := &recordingPublisher{}
	orders := NewOrderHandler(setupTestLogger(), s, nil)
	h := NewSerialHandler(setupTestLogger(), s, pub)

	user := createTestUser(t, s, "alice", "espresso123")
	menuID := createTestMenu(t, s, user.ID, models.MenuTypeCustomized)
	otherMenu := createTestMenu(t, s, user.ID, models.MenuTypeCustomized)
	orderID := placeTestOrder(t, orders, testClaims(user.ID, "alice", models.TokenTypeAccess),
		api.OrderLine{MenuID: menuID, Counts: 2})

	tests := []struct {
		name        string
		body        api.SerialLinkRequest
		wantMessage string
		wantCode    int
	}{
		{
			name:        "first link",
			body:        api.SerialLinkRequest{OrderID: orderID, MenuID: menuID, SerialNumber: "CUP-0001"},
			wantCode:    http.StatusCreated,
			wantMessage: "link serial success.",
		},
		{
			name:        "second serial for the same line",
			body:        api.SerialLinkRequest{OrderID: orderID, MenuID: menuID, SerialNumber: " CUP-0002 "},
			wantCode:    http.StatusCreated,
			wantMessage: "link serial success.",
		},
		{
			name:        "duplicate triple",
			body:        api.SerialLinkRequest{OrderID: orderID, MenuID: menuID, SerialNumber: "CUP-0001"},
			wantCode:    http.StatusConflict,
			wantMessage: "serial number already linked to this order and menu",
		},
		{
			name:        "menu not in order",
			body:        api.SerialLinkRequest{OrderID: orderID, MenuID: otherMenu, SerialNumber: "CUP-0003"},
			wantCode:    http.StatusNotFound,
			wantMessage: "menu is not part of the order",
		},
		{
			name:        "unknown order",
			body:        api.SerialLinkRequest{OrderID: 999, MenuID: menuID, SerialNumber: "CUP-0004"},
			wantCode:    http.StatusNotFound,
			wantMessage: "order not found",
		},
		{
			name:        "blank serial",
			body:        api.SerialLinkRequest{OrderID: orderID, MenuID: menuID, SerialNumber: "   "},
			wantCode:    http.StatusBadRequest,
			wantMessage: "serial_number is required",
		},
		{
			name:        "too long serial",
			body:        api.SerialLinkRequest{OrderID: orderID, MenuID: menuID, SerialNumber: strings.Repeat("9", 129)},
			wantCode:    http.StatusBadRequest,
			wantMessage: "serial_number is too long",
		},
		{
			name:        "missing ids",
			body:        api.SerialLinkRequest{SerialNumber: "CUP-0005"},
			wantCode:    http.StatusBadRequest,
			wantMessage: "order_id and menu_id must be positive integers",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			h.Link(w, newRequest(t, http.MethodPost, "/serial_number", tt.body, nil))

			assert.Equal(t, tt.wantCode, w.Code)

			if tt.wantCode == http.StatusCreated {
				var resp api.MessageResponse
				decodeBody(t, w, &resp)
				assert.Equal(t, tt.wantMessage, resp.Message)
				return
			}

			var errResp api.ErrorResponse
			decodeBody(t, w, &errResp)
			assert.Equal(t, tt.wantMessage, errResp.Message)
		})
	}

	assert.Equal(t, []events.Type{events.SerialLinked, events.SerialLinked}, pub.types())

	t.Run("list by order", func(t *testing.T) {
		w := httptest.NewRecorder()
		h.Get(w, newRequest(t, http.MethodGet, "/serial_number?order_id="+strconv.FormatInt(orderID, 10), nil, nil))
		require.Equal(t, http.StatusOK, w.Code)

		var resp []api.SerialLinkResponse
		decodeBody(t, w, &resp)
		assert.Equal(t, []api.SerialLinkResponse{
			{SerialNumber: "CUP-0001", MenuID: menuID},
			{SerialNumber: "CUP-0002", MenuID: menuID},
		}, resp)
	})

	t.Run("lookup by serial", func(t *testing.T) {
		w := httptest.NewRecorder()
		h.Get(w, newRequest(t, http.MethodGet, "/serial_number?serial_number=CUP-0002", nil, nil))
		require.Equal(t, http.StatusOK, w.Code)

		var resp api.SerialLookupResponse
		decodeBody(t, w, &resp)
		assert.Equal(t, orderID, resp.OrderID)
		assert.Equal(t, menuID, resp.MenuID)
		assert.Equal(t, "no sugar", resp.CustomizedMessage)
	})
}

func TestSerialHandler_Get_Errors(t *testing.T) {
	h := NewSerialHandler(setupTestLogger(), setupTestStorage(t), nil)

	tests := []struct {
		name     string
		query    string
		wantCode int
	}{
		{name: "no parameters", query: "", wantCode: http.StatusBadRequest},
		{name: "both parameters", query: "?order_id=1&serial_number=CUP-1", wantCode: http.StatusBadRequest},
		{name: "bad order id", query: "?order_id=abc", wantCode: http.StatusBadRequest},
		{name: "unknown serial", query: "?serial_number=NOPE", wantCode: http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			h.Get(w, newRequest(t, http.MethodGet, "/serial_number"+tt.query, nil, nil))

			assert.Equal(t, tt.wantCode, w.Code)
		})
	}
}

func TestSerialHandler_Get_EmptyOrder(t *testing.T) {
	h := NewSerialHandler(setupTestLogger(), setupTestStorage(t), nil)

	w := httptest.NewRecorder()
	h.Get(w, newRequest(t, http.MethodGet, "/serial_number?order_id=5", nil, nil))

	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, "[]", w.Body.String())
}
