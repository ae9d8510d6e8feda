package storage

import (
	"context"
	"time"

	"github.com/iudanet/coffeecloud/pkg/api"
)

// AuthStorage defines interface for storing the CLI session on the client
type AuthStorage interface {
	// SaveAuth stores authentication data, replacing the previous session
	SaveAuth(ctx context.Context, auth *AuthData) error

	// GetAuth retrieves stored authentication data
	// Returns ErrAuthNotFound if no auth data exists
	GetAuth(ctx context.Context) (*AuthData, error)

	// DeleteAuth removes stored authentication data (logout)
	// Returns ErrAuthNotFound if no auth data exists
	DeleteAuth(ctx context.Context) error

	// IsAuthenticated reports whether a session with a usable refresh token exists
	IsAuthenticated(ctx context.Context) (bool, error)
}

// AuthData represents the saved session of the CLI
type AuthData struct {
	Username         string `json:"username"`
	ServerURL        string `json:"server_url"`
	AccessToken      string `json:"access_token"`
	RefreshToken     string `json:"refresh_token"`
	AccessExpiresAt  int64  `json:"access_expires_at"`  // unix seconds
	RefreshExpiresAt int64  `json:"refresh_expires_at"` // unix seconds, 0 = неизвестно
}

// AccessExpired reports whether the access token has to be refreshed at now
func (a *AuthData) AccessExpired(now time.Time) bool {
	return now.Unix() >= a.AccessExpiresAt
}

// RefreshExpired reports whether the refresh token is past its expiry at now
func (a *AuthData) RefreshExpired(now time.Time) bool {
	return a.RefreshExpiresAt != 0 && now.Unix() >= a.RefreshExpiresAt
}

// MenuCache keeps the last fetched drink profiles for offline listing
type MenuCache interface {
	// SaveMenus replaces cached menus of the user
	SaveMenus(ctx context.Context, username string, menus []api.MenuResponse) error

	// GetMenus returns cached menus of the user, empty slice if none
	GetMenus(ctx context.Context, username string) ([]api.MenuResponse, error)
}
