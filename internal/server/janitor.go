package server

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/iudanet/coffeecloud/internal/server/storage"
)

// RunBlacklistJanitor периодически удаляет из blacklist записи,
// чей токен уже истек сам по себе. Блокирует до отмены ctx.
func RunBlacklistJanitor(ctx context.Context, logger *slog.Logger, blacklist storage.TokenBlacklist, interval time.Duration) {
	if interval <= 0 {
		logger.InfoContext(ctx, "blacklist janitor disabled")
		return
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			purgeExpired(ctx, logger, blacklist, now)
		}
	}
}

// StartBlacklistJanitor запускает RunBlacklistJanitor в отдельной горутине.
// Возвращаемая stop отменяет очистку и ждет завершения горутины,
// после нее blacklist больше не используется.
func StartBlacklistJanitor(ctx context.Context, logger *slog.Logger, blacklist storage.TokenBlacklist, interval time.Duration) (stop func()) {
	ctx, cancel := context.WithCancel(ctx)

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		RunBlacklistJanitor(ctx, logger, blacklist, interval)
	}()

	return func() {
		cancel()
		wg.Wait()
	}
}

// purgeExpired выполняет один проход очистки
func purgeExpired(ctx context.Context, logger *slog.Logger, blacklist storage.TokenBlacklist, now time.Time) int {
	n, err := blacklist.DeleteExpiredTokens(ctx, now)
	if err != nil {
		logger.ErrorContext(ctx, "failed to purge expired tokens", slog.Any("error", err))
		return 0
	}
	if n > 0 {
		logger.InfoContext(ctx, "expired tokens purged", slog.Int("count", n))
	}
	return n
}
