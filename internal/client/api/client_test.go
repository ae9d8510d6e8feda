package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iudanet/coffeecloud/pkg/api"
)

// newTestServer поднимает httptest сервер с одним обработчиком
func newTestServer(t *testing.T, h http.HandlerFunc) *Client {
	t.Helper()

	server := httptest.NewServer(h)
	t.Cleanup(server.Close)

	return NewClient(server.URL)
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

// TestNewClient проверяет создание нового клиента
func TestNewClient(t *testing.T) {
	client := NewClient("http://localhost:8080")

	assert.NotNil(t, client)
	assert.Equal(t, "http://localhost:8080", client.BaseURL())
	assert.Equal(t, 30*time.Second, client.httpClient.Timeout)
}

func TestClient_Register(t *testing.T) {
	client := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/user/registration", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		assert.Empty(t, r.Header.Get("Authorization"))

		var req api.RegisterRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "barista", req.Username)
		assert.Equal(t, "s3cret-pass", req.Password)

		writeJSON(w, http.StatusCreated, api.TokenResponse{
			Message:      "User barista was created",
			AccessToken:  "access",
			RefreshToken: "refresh",
			ExpiresIn:    900,
		})
	})

	resp, err := client.Register(context.Background(), api.RegisterRequest{Username: "barista", Password: "s3cret-pass"})
	require.NoError(t, err)
	assert.Equal(t, "access", resp.AccessToken)
	assert.Equal(t, "refresh", resp.RefreshToken)
	assert.Equal(t, int64(900), resp.ExpiresIn)
}

func TestClient_Errors(t *testing.T) {
	tests := []struct {
		name        string
		body        string
		wantMessage string
		status      int
	}{
		{
			name:        "json error body",
			status:      http.StatusConflict,
			body:        `{"error":"Conflict","message":"user barista already exists"}`,
			wantMessage: "user barista already exists",
		},
		{
			name:        "plain text body",
			status:      http.StatusBadGateway,
			body:        "upstream down\n",
			wantMessage: "upstream down",
		},
		{
			name:        "unauthorized",
			status:      http.StatusUnauthorized,
			body:        `{"error":"Unauthorized","message":"invalid credentials"}`,
			wantMessage: "invalid credentials",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			})

			_, err := client.Login(context.Background(), api.LoginRequest{Username: "barista", Password: "x"})
			require.Error(t, err)

			var apiErr *APIError
			require.ErrorAs(t, err, &apiErr)
			assert.Equal(t, tt.status, apiErr.StatusCode)
			assert.Equal(t, tt.wantMessage, apiErr.Message)
			assert.True(t, IsStatus(err, tt.status))
			assert.Contains(t, err.Error(), "login request failed")
		})
	}
}

func TestClient_BearerTokens(t *testing.T) {
	var (
		mu      sync.Mutex
		gotAuth []string
	)
	client := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		gotAuth = append(gotAuth, r.Method+" "+r.URL.Path+" "+r.Header.Get("Authorization"))
		mu.Unlock()
		switch r.URL.Path {
		case "/token/refresh":
			writeJSON(w, http.StatusOK, api.AccessTokenResponse{AccessToken: "new-access", ExpiresIn: 900})
		default:
			writeJSON(w, http.StatusOK, api.MessageResponse{Message: "ok"})
		}
	})
	ctx := context.Background()

	require.NoError(t, client.LogoutAccess(ctx, "a1"))
	require.NoError(t, client.LogoutRefresh(ctx, "r1"))
	resp, err := client.Refresh(ctx, "r2")
	require.NoError(t, err)
	assert.Equal(t, "new-access", resp.AccessToken)
	_, err = client.ResetPassword(ctx, "a2", api.ResetPasswordRequest{Username: "u", Password: "p", NewPassword: "n"})
	require.NoError(t, err)

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, []string{
		"POST /logout/access Bearer a1",
		"POST /logout/refresh Bearer r1",
		"POST /token/refresh Bearer r2",
		"POST /user/reset_password Bearer a2",
	}, gotAuth)
}

func TestClient_Profile(t *testing.T) {
	client := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer token", r.Header.Get("Authorization"))
		switch r.Method + " " + r.URL.Path {
		case "GET /user_profile":
			writeJSON(w, http.StatusOK, api.ProfileResponse{ID: 1, Username: "barista", Gender: "none"})
		case "POST /user_profile":
			var req api.ProfileUpdateRequest
			require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
			assert.Equal(t, "female", req.Gender)
			assert.Equal(t, "555-0100", req.Phone)
			writeJSON(w, http.StatusOK, api.MessageResponse{Message: "Profile updated"})
		case "GET /user/7":
			writeJSON(w, http.StatusOK, api.ProfileResponse{ID: 7, Username: "guest"})
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	})
	ctx := context.Background()

	p, err := client.GetProfile(ctx, "token")
	require.NoError(t, err)
	assert.Equal(t, "barista", p.Username)

	msg, err := client.UpdateProfile(ctx, "token", api.ProfileUpdateRequest{Gender: "female", Phone: "555-0100"})
	require.NoError(t, err)
	assert.Equal(t, "Profile updated", msg.Message)

	p, err = client.GetUser(ctx, "token", 7)
	require.NoError(t, err)
	assert.Equal(t, "guest", p.Username)
}

func TestClient_Menus(t *testing.T) {
	client := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/menu", r.URL.Path)
		switch r.Method {
		case http.MethodGet:
			writeJSON(w, http.StatusOK, []api.MenuResponse{{MenuID: 1, Name: "flat white"}})
		case http.MethodPost:
			writeJSON(w, http.StatusCreated, api.MenuCreatedResponse{Message: "created", MenuID: 2})
		case http.MethodPatch:
			var req api.MenuRequest
			require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
			if req.MenuID != 2 {
				writeJSON(w, http.StatusNotFound, api.ErrorResponse{Error: "Not Found", Message: "menu not found"})
				return
			}
			writeJSON(w, http.StatusOK, api.MessageResponse{Message: "Menu updated successfully."})
		}
	})
	ctx := context.Background()

	menus, err := client.ListMenus(ctx, "token")
	require.NoError(t, err)
	require.Len(t, menus, 1)
	assert.Equal(t, "flat white", menus[0].Name)

	created, err := client.CreateMenu(ctx, "token", api.MenuRequest{Name: "latte"})
	require.NoError(t, err)
	assert.Equal(t, int64(2), created.MenuID)

	require.NoError(t, client.UpdateMenu(ctx, "token", api.MenuRequest{MenuID: 2}))

	err = client.UpdateMenu(ctx, "token", api.MenuRequest{MenuID: 3})
	assert.True(t, IsStatus(err, http.StatusNotFound))
}

func TestClient_Orders(t *testing.T) {
	client := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.Method + " " + r.URL.Path {
		case "GET /order":
			history := r.URL.Query().Get("history")
			writeJSON(w, http.StatusOK, []api.OrderResponse{{OrderID: 1, IsObsolete: history == "true"}})
		case "POST /order":
			var req api.OrderRequest
			require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
			assert.Len(t, req.Order, 2)
			writeJSON(w, http.StatusCreated, api.OrderCreatedResponse{Message: "ok", OrderID: 5})
		case "GET /order/5":
			writeJSON(w, http.StatusOK, api.OrderResponse{OrderID: 5, Message: "no sugar"})
		case "PATCH /order/5":
			// Устройство выдачи вызывает без токена
			assert.Empty(t, r.Header.Get("Authorization"))
			writeJSON(w, http.StatusOK, api.MessageResponse{Message: "Order 5 is obsolete"})
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	})
	ctx := context.Background()

	active, err := client.ListOrders(ctx, "token", false)
	require.NoError(t, err)
	assert.False(t, active[0].IsObsolete)

	history, err := client.ListOrders(ctx, "token", true)
	require.NoError(t, err)
	assert.True(t, history[0].IsObsolete)

	created, err := client.PlaceOrder(ctx, "token", api.OrderRequest{
		Message: "no sugar",
		Order:   []api.OrderLine{{MenuID: 1, Counts: 1}, {MenuID: 2, Counts: 3}},
	})
	require.NoError(t, err)
	assert.Equal(t, int64(5), created.OrderID)

	order, err := client.GetOrder(ctx, "token", 5)
	require.NoError(t, err)
	assert.Equal(t, "no sugar", order.Message)

	msg, err := client.InvalidateOrder(ctx, 5)
	require.NoError(t, err)
	assert.Equal(t, "Order 5 is obsolete", msg.Message)
}

func TestClient_Serials(t *testing.T) {
	client := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/serial_number", r.URL.Path)
		q := r.URL.Query()
		switch {
		case r.Method == http.MethodPost:
			var req api.SerialLinkRequest
			require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
			assert.Equal(t, "CUP 0001", req.SerialNumber)
			writeJSON(w, http.StatusCreated, api.MessageResponse{Message: "link serial success."})
		case q.Get("order_id") == "5":
			writeJSON(w, http.StatusOK, []api.SerialLinkResponse{{SerialNumber: "CUP 0001", MenuID: 1}})
		case q.Get("serial_number") == "CUP 0001":
			writeJSON(w, http.StatusOK, api.SerialLookupResponse{OrderID: 5, MenuID: 1, CustomizedMessage: "no sugar"})
		default:
			writeJSON(w, http.StatusNotFound, api.ErrorResponse{Error: "Not Found", Message: "serial number not found"})
		}
	})
	ctx := context.Background()

	require.NoError(t, client.LinkSerial(ctx, "token", api.SerialLinkRequest{OrderID: 5, MenuID: 1, SerialNumber: "CUP 0001"}))

	links, err := client.SerialsByOrder(ctx, "token", 5)
	require.NoError(t, err)
	require.Len(t, links, 1)
	assert.Equal(t, "CUP 0001", links[0].SerialNumber)

	lookup, err := client.FindSerial(ctx, "token", "CUP 0001")
	require.NoError(t, err)
	assert.Equal(t, "no sugar", lookup.CustomizedMessage)

	_, err = client.FindSerial(ctx, "token", "CUP 9999")
	assert.True(t, IsStatus(err, http.StatusNotFound))
}

func TestClient_Health(t *testing.T) {
	client := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/health", r.URL.Path)
		writeJSON(w, http.StatusOK, api.HealthResponse{Status: "ok", Version: "1.0.0", Database: "ok"})
	})

	resp, err := client.Health(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "ok", resp.Status)
}

func TestClient_ContextCanceled(t *testing.T) {
	client := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, api.HealthResponse{Status: "ok"})
	})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := client.Health(ctx)
	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestClient_InvalidResponseJSON(t *testing.T) {
	client := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("not json"))
	})

	_, err := client.Health(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to decode response")
}
