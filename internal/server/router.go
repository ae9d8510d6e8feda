// Package server wires HTTP handlers, middleware and background jobs
// of the coffeecloud API.
package server

import (
	"log/slog"
	"net/http"

	"github.com/iudanet/coffeecloud/internal/crypto"
	"github.com/iudanet/coffeecloud/internal/events"
	"github.com/iudanet/coffeecloud/internal/models"
	"github.com/iudanet/coffeecloud/internal/server/handlers"
	"github.com/iudanet/coffeecloud/internal/server/middleware"
	"github.com/iudanet/coffeecloud/internal/server/storage"
)

// Store is the persistence the API needs
type Store interface {
	storage.UserStorage
	storage.MenuStorage
	storage.OrderStorage
	storage.SerialStorage
	handlers.Pinger
}

// Deps содержит зависимости для построения роутера
type Deps struct {
	Logger      *slog.Logger
	Store       Store
	Blacklist   storage.TokenBlacklist
	Publisher   events.Publisher
	RateLimiter *middleware.RateLimiter
	// PasswordParams переопределяет стоимость argon2id, если задано
	PasswordParams *crypto.Params
	Version        string
	JWT            handlers.JWTConfig
}

// NewRouter собирает http.Handler со всеми маршрутами API
func NewRouter(d Deps) http.Handler {
	authHandler := handlers.NewAuthHandler(d.Logger, d.Store, d.Blacklist, d.JWT)
	if d.PasswordParams != nil {
		authHandler.WithPasswordParams(*d.PasswordParams)
	}
	profileHandler := handlers.NewProfileHandler(d.Logger, d.Store)
	menuHandler := handlers.NewMenuHandler(d.Logger, d.Store)
	orderHandler := handlers.NewOrderHandler(d.Logger, d.Store, d.Publisher)
	serialHandler := handlers.NewSerialHandler(d.Logger, d.Store, d.Publisher)
	healthHandler := handlers.NewHealthHandler(d.Logger, d.Store, d.Version)

	access := middleware.AuthMiddleware(d.Logger, d.JWT, d.Blacklist, models.TokenTypeAccess)
	refresh := middleware.AuthMiddleware(d.Logger, d.JWT, d.Blacklist, models.TokenTypeRefresh)

	mux := http.NewServeMux()

	// Публичные маршруты
	mux.HandleFunc("GET /health", healthHandler.Health)
	mux.HandleFunc("POST /user/registration", authHandler.Register)
	mux.HandleFunc("POST /login", authHandler.Login)
	// Вызывается устройствами выдачи без токена
	mux.HandleFunc("PATCH /order/{id}", orderHandler.Invalidate)

	// Маршруты с refresh token
	mux.Handle("POST /logout/refresh", refresh(http.HandlerFunc(authHandler.LogoutRefresh)))
	mux.Handle("POST /token/refresh", refresh(http.HandlerFunc(authHandler.Refresh)))

	// Маршруты с access token
	protected := map[string]http.HandlerFunc{
		"POST /logout/access":       authHandler.LogoutAccess,
		"POST /user/reset_password": authHandler.ResetPassword,
		"GET /user_profile":         profileHandler.GetProfile,
		"POST /user_profile":        profileHandler.UpdateProfile,
		"GET /user/{id}":            profileHandler.GetUser,
		"GET /menu":                 menuHandler.List,
		"POST /menu":                menuHandler.Create,
		"PATCH /menu":               menuHandler.Update,
		"GET /order":                orderHandler.List,
		"POST /order":               orderHandler.Create,
		"GET /order/{id}":           orderHandler.Get,
		"GET /serial_number":        serialHandler.Get,
		"POST /serial_number":       serialHandler.Link,
	}
	for pattern, h := range protected {
		mux.Handle(pattern, access(h))
	}

	var handler http.Handler = mux
	if d.RateLimiter != nil {
		handler = d.RateLimiter.Middleware(d.Logger)(handler)
	}
	handler = middleware.LoggingMiddleware(d.Logger, "/health")(handler)
	handler = middleware.RecoveryMiddleware(d.Logger)(handler)

	return handler
}
