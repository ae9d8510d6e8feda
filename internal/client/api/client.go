// Package api implements the HTTP client for the coffeecloud server.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/iudanet/coffeecloud/pkg/api"
)

// APIError is returned for every non-2xx response
type APIError struct {
	Message    string
	StatusCode int
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("server error (%d)", e.StatusCode)
	}
	return fmt.Sprintf("server error (%d): %s", e.StatusCode, e.Message)
}

// IsStatus сообщает, что err является APIError с указанным кодом
func IsStatus(err error, code int) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.StatusCode == code
}

// Client представляет HTTP клиент для взаимодействия с сервером
type Client struct {
	httpClient *http.Client
	baseURL    string
}

// NewClient создает новый API клиент
func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
			CheckRedirect: func(req *http.Request, via []*http.Request) error {
				if len(via) >= 10 {
					return fmt.Errorf("stopped after 10 redirects")
				}
				// Authorization не переносится редиректом по умолчанию
				if len(via) > 0 && via[0].Header.Get("Authorization") != "" {
					req.Header.Set("Authorization", via[0].Header.Get("Authorization"))
				}
				return nil
			},
		},
	}
}

// BaseURL возвращает адрес сервера
func (c *Client) BaseURL() string {
	return c.baseURL
}

// Register регистрирует нового пользователя и возвращает пару токенов
func (c *Client) Register(ctx context.Context, req api.RegisterRequest) (*api.TokenResponse, error) {
	var resp api.TokenResponse
	if err := c.doRequest(ctx, http.MethodPost, "/user/registration", "", req, &resp); err != nil {
		return nil, fmt.Errorf("register request failed: %w", err)
	}
	return &resp, nil
}

// Login выполняет аутентификацию пользователя
func (c *Client) Login(ctx context.Context, req api.LoginRequest) (*api.TokenResponse, error) {
	var resp api.TokenResponse
	if err := c.doRequest(ctx, http.MethodPost, "/login", "", req, &resp); err != nil {
		return nil, fmt.Errorf("login request failed: %w", err)
	}
	return &resp, nil
}

// LogoutAccess отзывает access token
func (c *Client) LogoutAccess(ctx context.Context, accessToken string) error {
	if err := c.doRequest(ctx, http.MethodPost, "/logout/access", accessToken, nil, nil); err != nil {
		return fmt.Errorf("logout access request failed: %w", err)
	}
	return nil
}

// LogoutRefresh отзывает refresh token
func (c *Client) LogoutRefresh(ctx context.Context, refreshToken string) error {
	if err := c.doRequest(ctx, http.MethodPost, "/logout/refresh", refreshToken, nil, nil); err != nil {
		return fmt.Errorf("logout refresh request failed: %w", err)
	}
	return nil
}

// Refresh получает новый access token по refresh token
func (c *Client) Refresh(ctx context.Context, refreshToken string) (*api.AccessTokenResponse, error) {
	var resp api.AccessTokenResponse
	if err := c.doRequest(ctx, http.MethodPost, "/token/refresh", refreshToken, nil, &resp); err != nil {
		return nil, fmt.Errorf("refresh request failed: %w", err)
	}
	return &resp, nil
}

// ResetPassword меняет пароль текущего пользователя
// Сервер отзывает предъявленный access token и выдает новую пару
func (c *Client) ResetPassword(ctx context.Context, accessToken string, req api.ResetPasswordRequest) (*api.TokenResponse, error) {
	var resp api.TokenResponse
	if err := c.doRequest(ctx, http.MethodPost, "/user/reset_password", accessToken, req, &resp); err != nil {
		return nil, fmt.Errorf("reset password request failed: %w", err)
	}
	return &resp, nil
}

// GetProfile возвращает профиль текущего пользователя
func (c *Client) GetProfile(ctx context.Context, accessToken string) (*api.ProfileResponse, error) {
	var resp api.ProfileResponse
	if err := c.doRequest(ctx, http.MethodGet, "/user_profile", accessToken, nil, &resp); err != nil {
		return nil, fmt.Errorf("get profile request failed: %w", err)
	}
	return &resp, nil
}

// UpdateProfile заменяет gender, phone и birthday профиля
func (c *Client) UpdateProfile(ctx context.Context, accessToken string, req api.ProfileUpdateRequest) (*api.MessageResponse, error) {
	var resp api.MessageResponse
	if err := c.doRequest(ctx, http.MethodPost, "/user_profile", accessToken, req, &resp); err != nil {
		return nil, fmt.Errorf("update profile request failed: %w", err)
	}
	return &resp, nil
}

// GetUser возвращает профиль пользователя по id
func (c *Client) GetUser(ctx context.Context, accessToken string, userID int64) (*api.ProfileResponse, error) {
	var resp api.ProfileResponse
	path := "/user/" + strconv.FormatInt(userID, 10)
	if err := c.doRequest(ctx, http.MethodGet, path, accessToken, nil, &resp); err != nil {
		return nil, fmt.Errorf("get user request failed: %w", err)
	}
	return &resp, nil
}

// ListMenus возвращает профили напитков текущего пользователя
func (c *Client) ListMenus(ctx context.Context, accessToken string) ([]api.MenuResponse, error) {
	var resp []api.MenuResponse
	if err := c.doRequest(ctx, http.MethodGet, "/menu", accessToken, nil, &resp); err != nil {
		return nil, fmt.Errorf("list menus request failed: %w", err)
	}
	return resp, nil
}

// CreateMenu сохраняет новый профиль напитка
func (c *Client) CreateMenu(ctx context.Context, accessToken string, req api.MenuRequest) (*api.MenuCreatedResponse, error) {
	var resp api.MenuCreatedResponse
	if err := c.doRequest(ctx, http.MethodPost, "/menu", accessToken, req, &resp); err != nil {
		return nil, fmt.Errorf("create menu request failed: %w", err)
	}
	return &resp, nil
}

// UpdateMenu изменяет профиль напитка с req.MenuID
func (c *Client) UpdateMenu(ctx context.Context, accessToken string, req api.MenuRequest) error {
	if err := c.doRequest(ctx, http.MethodPatch, "/menu", accessToken, req, nil); err != nil {
		return fmt.Errorf("update menu request failed: %w", err)
	}
	return nil
}

// ListOrders возвращает активные заказы или, при history, выданные
func (c *Client) ListOrders(ctx context.Context, accessToken string, history bool) ([]api.OrderResponse, error) {
	var resp []api.OrderResponse
	path := "/order?history=" + strconv.FormatBool(history)
	if err := c.doRequest(ctx, http.MethodGet, path, accessToken, nil, &resp); err != nil {
		return nil, fmt.Errorf("list orders request failed: %w", err)
	}
	return resp, nil
}

// PlaceOrder создает заказ
func (c *Client) PlaceOrder(ctx context.Context, accessToken string, req api.OrderRequest) (*api.OrderCreatedResponse, error) {
	var resp api.OrderCreatedResponse
	if err := c.doRequest(ctx, http.MethodPost, "/order", accessToken, req, &resp); err != nil {
		return nil, fmt.Errorf("place order request failed: %w", err)
	}
	return &resp, nil
}

// GetOrder возвращает заказ текущего пользователя
func (c *Client) GetOrder(ctx context.Context, accessToken string, orderID int64) (*api.OrderResponse, error) {
	var resp api.OrderResponse
	if err := c.doRequest(ctx, http.MethodGet, orderPath(orderID), accessToken, nil, &resp); err != nil {
		return nil, fmt.Errorf("get order request failed: %w", err)
	}
	return &resp, nil
}

// InvalidateOrder помечает заказ выданным. Токен не требуется.
func (c *Client) InvalidateOrder(ctx context.Context, orderID int64) (*api.MessageResponse, error) {
	var resp api.MessageResponse
	if err := c.doRequest(ctx, http.MethodPatch, orderPath(orderID), "", nil, &resp); err != nil {
		return nil, fmt.Errorf("invalidate order request failed: %w", err)
	}
	return &resp, nil
}

// LinkSerial привязывает серийный номер стакана к строке заказа
func (c *Client) LinkSerial(ctx context.Context, accessToken string, req api.SerialLinkRequest) error {
	if err := c.doRequest(ctx, http.MethodPost, "/serial_number", accessToken, req, nil); err != nil {
		return fmt.Errorf("link serial request failed: %w", err)
	}
	return nil
}

// SerialsByOrder возвращает привязки серийных номеров заказа
func (c *Client) SerialsByOrder(ctx context.Context, accessToken string, orderID int64) ([]api.SerialLinkResponse, error) {
	var resp []api.SerialLinkResponse
	q := url.Values{"order_id": {strconv.FormatInt(orderID, 10)}}
	if err := c.doRequest(ctx, http.MethodGet, "/serial_number?"+q.Encode(), accessToken, nil, &resp); err != nil {
		return nil, fmt.Errorf("serials by order request failed: %w", err)
	}
	return resp, nil
}

// FindSerial ищет заказ по серийному номеру
func (c *Client) FindSerial(ctx context.Context, accessToken, serial string) (*api.SerialLookupResponse, error) {
	var resp api.SerialLookupResponse
	q := url.Values{"serial_number": {serial}}
	if err := c.doRequest(ctx, http.MethodGet, "/serial_number?"+q.Encode(), accessToken, nil, &resp); err != nil {
		return nil, fmt.Errorf("find serial request failed: %w", err)
	}
	return &resp, nil
}

// Health проверяет доступность сервера
func (c *Client) Health(ctx context.Context) (*api.HealthResponse, error) {
	var resp api.HealthResponse
	if err := c.doRequest(ctx, http.MethodGet, "/health", "", nil, &resp); err != nil {
		return nil, fmt.Errorf("health request failed: %w", err)
	}
	return &resp, nil
}

func orderPath(orderID int64) string {
	return "/order/" + strconv.FormatInt(orderID, 10)
}

// doRequest выполняет HTTP запрос
// Пустой token означает запрос без Authorization
func (c *Client) doRequest(ctx context.Context, method, path, token string, body, result any) error {
	var bodyReader io.Reader
	if body != nil {
		jsonData, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to marshal request body: %w", err)
		}
		bodyReader = bytes.NewReader(jsonData)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, bodyReader)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		apiErr := &APIError{StatusCode: resp.StatusCode}
		var errResp api.ErrorResponse
		if err := json.Unmarshal(respBody, &errResp); err == nil {
			apiErr.Message = errResp.Message
		} else {
			apiErr.Message = string(bytes.TrimSpace(respBody))
		}
		return apiErr
	}

	if result != nil {
		if err := json.Unmarshal(respBody, result); err != nil {
			return fmt.Errorf("failed to decode response: %w", err)
		}
	}

	return nil
}
