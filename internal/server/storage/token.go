package storage

import (
	"context"
	"time"

	"github.com/iudanet/coffeecloud/internal/models"
)

// TokenBlacklist defines interface for revoked token persistence
type TokenBlacklist interface {
	// RevokeToken marks token jti as revoked
	// Revoking an already revoked jti is not an error
	RevokeToken(ctx context.Context, token *models.RevokedToken) error

	// IsTokenRevoked reports whether jti has been revoked
	IsTokenRevoked(ctx context.Context, jti string) (bool, error)

	// DeleteExpiredTokens removes revoked tokens whose natural expiry is before now
	// Returns number of deleted entries
	DeleteExpiredTokens(ctx context.Context, now time.Time) (int, error)
}
