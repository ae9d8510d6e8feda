package middleware

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"

	"github.com/iudanet/coffeecloud/internal/models"
	"github.com/iudanet/coffeecloud/internal/server/handlers"
	"github.com/iudanet/coffeecloud/internal/server/storage"
	"github.com/iudanet/coffeecloud/pkg/api"
)

// AuthMiddleware создает middleware для проверки JWT токена заданного типа
// Отозванные токены (blacklist) отклоняются так же, как невалидные
func AuthMiddleware(
	logger *slog.Logger,
	jwtConfig handlers.JWTConfig,
	blacklist storage.TokenBlacklist,
	tokenType models.TokenType,
) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()

			tokenString, ok := bearerToken(r)
			if !ok {
				logger.WarnContext(ctx, "missing or malformed Authorization header",
					slog.String("path", r.URL.Path))
				writeError(w, "missing token", http.StatusUnauthorized)
				return
			}

			claims, err := handlers.ValidateToken(jwtConfig, tokenString, tokenType)
			if err != nil {
				logger.WarnContext(ctx, "invalid token",
					slog.String("token_type", string(tokenType)),
					slog.Any("error", err))
				writeError(w, "invalid token", http.StatusUnauthorized)
				return
			}

			if blacklist != nil {
				revoked, err := blacklist.IsTokenRevoked(ctx, claims.ID)
				if err != nil {
					logger.ErrorContext(ctx, "failed to check token blacklist", slog.Any("error", err))
					writeError(w, "internal server error", http.StatusInternalServerError)
					return
				}
				if revoked {
					logger.WarnContext(ctx, "revoked token presented",
						slog.Int64("user_id", claims.UserID),
						slog.String("token_type", string(tokenType)))
					writeError(w, "token has been revoked", http.StatusUnauthorized)
					return
				}
			}

			logger.DebugContext(ctx, "user authenticated",
				slog.Int64("user_id", claims.UserID),
				slog.String("username", claims.Username))

			next.ServeHTTP(w, r.WithContext(handlers.WithClaims(ctx, claims)))
		})
	}
}

// bearerToken извлекает токен из заголовка "Authorization: Bearer <token>"
func bearerToken(r *http.Request) (string, bool) {
	authHeader := r.Header.Get("Authorization")
	if authHeader == "" {
		return "", false
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return "", false
	}

	token := strings.TrimSpace(parts[1])
	return token, token != ""
}

// writeError отправляет ошибку в том же формате, что и handlers
func writeError(w http.ResponseWriter, message string, statusCode int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(api.ErrorResponse{
		Error:   http.StatusText(statusCode),
		Message: message,
	})
}
