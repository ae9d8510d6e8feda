package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"

	"github.com/iudanet/coffeecloud/internal/crypto"
	"github.com/iudanet/coffeecloud/internal/events"
	"github.com/iudanet/coffeecloud/internal/models"
	"github.com/iudanet/coffeecloud/internal/server/storage/sqlite"
)

// testHashParams дешевые параметры argon2id для тестов
var testHashParams = crypto.Params{Time: 1, Memory: 1024, Threads: 1}

func setupTestLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{
		Level: slog.LevelError,
	}))
}

func testJWTConfig() JWTConfig {
	return JWTConfig{
		Secret:          []byte("test-secret-key-that-is-long-enough-32"),
		Issuer:          "coffeecloud-test",
		AccessTokenTTL:  15 * time.Minute,
		RefreshTokenTTL: 24 * time.Hour,
	}
}

func setupTestStorage(t *testing.T) *sqlite.Storage {
	t.Helper()

	s, err := sqlite.New(context.Background(), ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })

	return s
}

// createTestUser создает пользователя напрямую в storage
func createTestUser(t *testing.T, s *sqlite.Storage, username, password string) *models.User {
	t.Helper()

	hash, err := crypto.HashPasswordWithParams(password, testHashParams)
	require.NoError(t, err)

	user := &models.User{Username: username, PasswordHash: hash, Gender: models.GenderNone}
	require.NoError(t, s.CreateUser(context.Background(), user))

	return user
}

func createTestMenu(t *testing.T, s *sqlite.Storage, ownerID int64, menuType models.MenuType) int64 {
	t.Helper()

	menu := &models.Menu{
		OwnerID: ownerID,
		MenuConfig: models.MenuConfig{
			Name:       "cortado",
			MenuType:   menuType,
			TasteLevel: models.TasteStrong,
			WaterLevel: models.WaterSmall,
			FoamLevel:  models.FoamStandard,
			GrindSize:  models.GrindFine,
		},
	}
	require.NoError(t, s.CreateMenu(context.Background(), menu))

	return menu.ID
}

// testClaims строит claims, которые AuthMiddleware кладет в контекст
func testClaims(userID int64, username string, tokenType models.TokenType) *CustomClaims {
	claims := &CustomClaims{
		UserID:    userID,
		Username:  username,
		TokenType: tokenType,
	}
	claims.ID = "jti-" + username + "-" + string(tokenType)
	claims.ExpiresAt = jwt.NewNumericDate(time.Now().Add(time.Hour))
	return claims
}

// newRequest создает запрос с JSON телом и, если передан, с claims в контексте
func newRequest(t *testing.T, method, target string, body any, claims *CustomClaims) *http.Request {
	t.Helper()

	var reader io.Reader = http.NoBody
	switch b := body.(type) {
	case nil:
	case string:
		reader = bytes.NewBufferString(b)
	default:
		data, err := json.Marshal(b)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	}

	req := httptest.NewRequest(method, target, reader)
	req.Header.Set("Content-Type", "application/json")
	if claims != nil {
		req = req.WithContext(WithClaims(req.Context(), claims))
	}

	return req
}

// decodeBody декодирует тело ответа recorder'а
func decodeBody(t *testing.T, w *httptest.ResponseRecorder, dst any) {
	t.Helper()
	require.NoError(t, json.NewDecoder(w.Body).Decode(dst))
}

// recordingPublisher запоминает опубликованные события
type recordingPublisher struct {
	err    error
	events []events.Event
	mu     sync.Mutex
}

func (p *recordingPublisher) Publish(_ context.Context, event events.Event) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, event)
	return p.err
}

func (p *recordingPublisher) Close() error { return nil }

func (p *recordingPublisher) types() []events.Type {
	p.mu.Lock()
	defer p.mu.Unlock()

	types := make([]events.Type, 0, len(p.events))
	for _, e := range p.events {
		types = append(types, e.Type)
	}
	return types
}
