package auth

import (
	"context"

	"github.com/iudanet/coffeecloud/internal/client/storage"
	pkgapi "github.com/iudanet/coffeecloud/pkg/api"
)

//go:generate moq -out session_manager_mock.go . SessionManager

// SessionManager is the session API used by coffeectl commands.
// Service implements it against the server and the local bbolt session.
type SessionManager interface {
	// Register создает пользователя и сохраняет полученные токены
	Register(ctx context.Context, username, password, email string) (*pkgapi.TokenResponse, error)

	// Login выполняет вход и сохраняет полученные токены
	Login(ctx context.Context, username, password string) (*pkgapi.TokenResponse, error)

	// Logout отзывает токены на сервере и удаляет локальную сессию
	Logout(ctx context.Context) (*LogoutResult, error)

	// ResetPassword меняет пароль и сохраняет новую пару токенов
	ResetPassword(ctx context.Context, current, newPassword string) (*pkgapi.TokenResponse, error)

	// Session возвращает сохраненную сессию или ErrNotAuthenticated
	Session(ctx context.Context) (*storage.AuthData, error)

	// WithAccess вызывает fn с действующим access token,
	// при необходимости обновляя его
	WithAccess(ctx context.Context, fn func(token string) error) (*storage.AuthData, error)
}

var _ SessionManager = (*Service)(nil)
