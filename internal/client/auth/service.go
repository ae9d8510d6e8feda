// Package auth manages the coffeectl session: tokens obtained on
// register and login, their automatic refresh and revocation on logout.
package auth

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/iudanet/coffeecloud/internal/client/api"
	"github.com/iudanet/coffeecloud/internal/client/storage"
	"github.com/iudanet/coffeecloud/internal/validation"
	pkgapi "github.com/iudanet/coffeecloud/pkg/api"
)

// ErrNotAuthenticated is returned when no usable session is stored
var ErrNotAuthenticated = errors.New("not authenticated. Please run 'coffeectl login' first")

// refreshLeeway обновляет access token чуть раньше истечения
const refreshLeeway = 30 * time.Second

// Service предоставляет функции авторизации
type Service struct {
	apiClient *api.Client
	authStore storage.AuthStorage
	now       func() time.Time
}

// NewService создает новый сервис авторизации
func NewService(apiClient *api.Client, authStore storage.AuthStorage) *Service {
	return &Service{
		apiClient: apiClient,
		authStore: authStore,
		now:       time.Now,
	}
}

// Register регистрирует пользователя и сохраняет полученную сессию
func (s *Service) Register(ctx context.Context, username, password, email string) (*pkgapi.TokenResponse, error) {
	if err := validation.ValidateUsername(username); err != nil {
		return nil, fmt.Errorf("invalid username: %w", err)
	}
	if err := validation.ValidatePassword(password); err != nil {
		return nil, fmt.Errorf("invalid password: %w", err)
	}
	if err := validation.ValidateEmail(email); err != nil {
		return nil, fmt.Errorf("invalid email: %w", err)
	}

	resp, err := s.apiClient.Register(ctx, pkgapi.RegisterRequest{
		Username: username,
		Password: password,
		Email:    email,
	})
	if err != nil {
		return nil, err
	}

	if err := s.saveSession(ctx, username, resp); err != nil {
		return nil, err
	}
	return resp, nil
}

// Login выполняет аутентификацию и сохраняет сессию
func (s *Service) Login(ctx context.Context, username, password string) (*pkgapi.TokenResponse, error) {
	if username == "" || password == "" {
		return nil, errors.New("username and password are required")
	}

	resp, err := s.apiClient.Login(ctx, pkgapi.LoginRequest{Username: username, Password: password})
	if err != nil {
		return nil, err
	}

	if err := s.saveSession(ctx, username, resp); err != nil {
		return nil, err
	}
	return resp, nil
}

// LogoutResult описывает результат выхода
type LogoutResult struct {
	Username string
	// RevokeErrors содержит ошибки отзыва токенов на сервере
	RevokeErrors []error
}

// Logout отзывает оба токена и удаляет локальную сессию.
// Недоступный сервер не мешает удалить сессию.
// Возвращает storage.ErrAuthNotFound, если сессии нет.
func (s *Service) Logout(ctx context.Context) (*LogoutResult, error) {
	authData, err := s.authStore.GetAuth(ctx)
	if err != nil {
		return nil, err
	}

	result := &LogoutResult{Username: authData.Username}

	// 401 означает, что токен уже истек или отозван
	if authData.AccessToken != "" {
		if err := s.apiClient.LogoutAccess(ctx, authData.AccessToken); err != nil && !api.IsStatus(err, http.StatusUnauthorized) {
			result.RevokeErrors = append(result.RevokeErrors, err)
		}
	}
	if authData.RefreshToken != "" {
		if err := s.apiClient.LogoutRefresh(ctx, authData.RefreshToken); err != nil && !api.IsStatus(err, http.StatusUnauthorized) {
			result.RevokeErrors = append(result.RevokeErrors, err)
		}
	}

	if err := s.authStore.DeleteAuth(ctx); err != nil {
		return nil, fmt.Errorf("failed to delete local auth data: %w", err)
	}

	return result, nil
}

// ResetPassword меняет пароль текущего пользователя.
// Сервер отзывает использованный access token, новая пара сохраняется.
func (s *Service) ResetPassword(ctx context.Context, current, newPassword string) (*pkgapi.TokenResponse, error) {
	if err := validation.ValidatePassword(newPassword); err != nil {
		return nil, fmt.Errorf("invalid password: %w", err)
	}

	session, err := s.Session(ctx)
	if err != nil {
		return nil, err
	}

	var resp *pkgapi.TokenResponse
	_, err = s.WithAccess(ctx, func(token string) error {
		var err error
		resp, err = s.apiClient.ResetPassword(ctx, token, pkgapi.ResetPasswordRequest{
			Username:    session.Username,
			Password:    current,
			NewPassword: newPassword,
		})
		return err
	})
	if err != nil {
		return nil, err
	}

	if err := s.saveSession(ctx, session.Username, resp); err != nil {
		return nil, err
	}
	return resp, nil
}

// Session возвращает сохраненную сессию или ErrNotAuthenticated
func (s *Service) Session(ctx context.Context) (*storage.AuthData, error) {
	authData, err := s.authStore.GetAuth(ctx)
	if err != nil {
		if errors.Is(err, storage.ErrAuthNotFound) {
			return nil, ErrNotAuthenticated
		}
		return nil, fmt.Errorf("failed to get auth data: %w", err)
	}
	if authData.RefreshToken == "" || authData.RefreshExpired(s.now()) {
		return nil, ErrNotAuthenticated
	}
	return authData, nil
}

// RefreshToken получает новый access token и сохраняет его в authData
func (s *Service) RefreshToken(ctx context.Context, authData *storage.AuthData) error {
	resp, err := s.apiClient.Refresh(ctx, authData.RefreshToken)
	if err != nil {
		if api.IsStatus(err, http.StatusUnauthorized) {
			// refresh token отозван или истек на сервере
			return ErrNotAuthenticated
		}
		return err
	}

	authData.AccessToken = resp.AccessToken
	authData.AccessExpiresAt = s.now().Unix() + resp.ExpiresIn

	if err := s.authStore.SaveAuth(ctx, authData); err != nil {
		return fmt.Errorf("failed to save auth data: %w", err)
	}
	return nil
}

// WithAccess вызывает fn с действующим access token.
// Истекший token обновляется заранее; на 401 выполняется одна повторная попытка.
func (s *Service) WithAccess(ctx context.Context, fn func(token string) error) (*storage.AuthData, error) {
	authData, err := s.Session(ctx)
	if err != nil {
		return nil, err
	}

	if authData.AccessToken == "" || authData.AccessExpired(s.now().Add(refreshLeeway)) {
		if err := s.RefreshToken(ctx, authData); err != nil {
			return nil, err
		}
	}

	err = fn(authData.AccessToken)
	if !api.IsStatus(err, http.StatusUnauthorized) {
		return authData, err
	}

	if err := s.RefreshToken(ctx, authData); err != nil {
		return nil, err
	}
	return authData, fn(authData.AccessToken)
}

// saveSession сохраняет пару токенов после register, login и reset-password
func (s *Service) saveSession(ctx context.Context, username string, resp *pkgapi.TokenResponse) error {
	authData := &storage.AuthData{
		Username:         username,
		ServerURL:        s.apiClient.BaseURL(),
		AccessToken:      resp.AccessToken,
		RefreshToken:     resp.RefreshToken,
		AccessExpiresAt:  s.now().Unix() + resp.ExpiresIn,
		RefreshExpiresAt: tokenExpiry(resp.RefreshToken),
	}

	if err := s.authStore.SaveAuth(ctx, authData); err != nil {
		return fmt.Errorf("failed to save auth data: %w", err)
	}
	return nil
}

// tokenExpiry читает exp из JWT без проверки подписи.
// Подпись проверяет сервер, клиенту срок нужен только для status и авто-обновления.
// Возвращает 0, если срок неизвестен.
func tokenExpiry(token string) int64 {
	claims := jwt.RegisteredClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, &claims); err != nil {
		return 0
	}
	if claims.ExpiresAt == nil {
		return 0
	}
	return claims.ExpiresAt.Unix()
}
