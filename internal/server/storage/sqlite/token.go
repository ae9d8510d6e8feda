package sqlite

import (
	"context"
	"fmt"
	"time"

	"github.com/iudanet/coffeecloud/internal/models"
)

// RevokeToken adds token jti to the blacklist
// Повторный отзыв того же jti не является ошибкой
func (s *Storage) RevokeToken(ctx context.Context, token *models.RevokedToken) error {
	query := `
		INSERT INTO revoked_tokens (jti, token_type, expires_at, revoked_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT (jti) DO NOTHING
	`

	revokedAt := token.RevokedAt
	if revokedAt.IsZero() {
		revokedAt = time.Now()
	}

	_, err := s.db.ExecContext(ctx, query,
		token.JTI,
		string(token.Type),
		token.ExpiresAt.Unix(),
		revokedAt.Unix(),
	)
	if err != nil {
		return fmt.Errorf("failed to revoke token: %w", err)
	}

	return nil
}

// IsTokenRevoked reports whether jti is in the blacklist
func (s *Storage) IsTokenRevoked(ctx context.Context, jti string) (bool, error) {
	var exists bool
	err := s.db.QueryRowContext(ctx,
		`SELECT EXISTS (SELECT 1 FROM revoked_tokens WHERE jti = ?)`,
		jti,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check revoked token: %w", err)
	}

	return exists, nil
}

// DeleteExpiredTokens removes blacklist entries for tokens that expired before now
func (s *Storage) DeleteExpiredTokens(ctx context.Context, now time.Time) (int, error) {
	result, err := s.db.ExecContext(ctx,
		`DELETE FROM revoked_tokens WHERE expires_at < ?`,
		now.Unix(),
	)
	if err != nil {
		return 0, fmt.Errorf("failed to delete expired tokens: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to get rows affected: %w", err)
	}

	return int(rows), nil
}
