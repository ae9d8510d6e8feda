package middleware

import (
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/time/rate"
)

func TestNewRateLimiter(t *testing.T) {
	limiter := NewRateLimiter(10, 20, time.Minute)
	defer limiter.Stop()

	assert.Equal(t, rate.Limit(10), limiter.limit)
	assert.Equal(t, 20, limiter.burst)
	assert.Equal(t, time.Minute, limiter.idleTTL)
	assert.NotNil(t, limiter.clients)

	// Повторный Stop не паникует
	assert.NotPanics(t, limiter.Stop)
}

func TestRateLimiter_Allow(t *testing.T) {
	t.Run("burst is allowed then denied", func(t *testing.T) {
		// Очень низкая частота: после burst токены не успевают восстановиться
		limiter := NewRateLimiter(0.001, 3, time.Minute)
		defer limiter.Stop()

		for i := 0; i < 3; i++ {
			assert.True(t, limiter.Allow("10.0.0.1"), fmt.Sprintf("request %d should be allowed", i+1))
		}
		assert.False(t, limiter.Allow("10.0.0.1"))
	})

	t.Run("keys are independent", func(t *testing.T) {
		limiter := NewRateLimiter(0.001, 1, time.Minute)
		defer limiter.Stop()

		assert.True(t, limiter.Allow("10.0.0.1"))
		assert.False(t, limiter.Allow("10.0.0.1"))
		assert.True(t, limiter.Allow("10.0.0.2"))
	})

	t.Run("tokens refill over time", func(t *testing.T) {
		limiter := NewRateLimiter(1, 1, time.Minute)
		defer limiter.Stop()

		now := time.Now()
		limiter.now = func() time.Time { return now }

		assert.True(t, limiter.Allow("10.0.0.1"))
		assert.False(t, limiter.Allow("10.0.0.1"))

		now = now.Add(1100 * time.Millisecond)
		assert.True(t, limiter.Allow("10.0.0.1"))
	})
}

func TestRateLimiter_RemoveIdle(t *testing.T) {
	limiter := NewRateLimiter(1, 1, time.Minute)
	defer limiter.Stop()

	now := time.Now()
	limiter.now = func() time.Time { return now }

	limiter.Allow("old")
	now = now.Add(50 * time.Second)
	limiter.Allow("recent")

	now = now.Add(20 * time.Second)
	assert.Equal(t, 1, limiter.removeIdle())

	limiter.mu.Lock()
	_, oldExists := limiter.clients["old"]
	_, recentExists := limiter.clients["recent"]
	limiter.mu.Unlock()

	assert.False(t, oldExists)
	assert.True(t, recentExists)
}

func TestRateLimiter_Middleware(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	limiter := NewRateLimiter(0.001, 2, time.Minute)
	defer limiter.Stop()

	handler := limiter.Middleware(logger)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	codes := make([]int, 0, 3)
	for i := 0; i < 3; i++ {
		req := httptest.NewRequest(http.MethodPost, "/login", nil)
		req.RemoteAddr = "192.168.1.10:5555"
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, req)
		codes = append(codes, w.Code)

		if w.Code == http.StatusTooManyRequests {
			assert.Equal(t, "1", w.Header().Get("Retry-After"))
			assert.Contains(t, w.Body.String(), "rate limit exceeded")
		}
	}

	assert.Equal(t, []int{http.StatusOK, http.StatusOK, http.StatusTooManyRequests}, codes)
}

func TestRateLimiter_ClientIP(t *testing.T) {
	trusted, err := ParseTrustedProxies([]string{"10.0.0.0/8", "192.0.2.1"})
	require.NoError(t, err)

	tests := []struct {
		headers    map[string]string
		name       string
		remoteAddr string
		want       string
		trusted    bool
	}{
		{name: "remote addr without port", remoteAddr: "192.168.1.1:12345", want: "192.168.1.1"},
		{name: "remote addr without port part", remoteAddr: "192.168.1.1", want: "192.168.1.1"},
		{
			name:       "headers ignored without trusted proxies",
			remoteAddr: "10.0.0.1:1",
			headers:    map[string]string{"X-Forwarded-For": "203.0.113.5"},
			want:       "10.0.0.1",
		},
		{
			name:       "headers ignored from untrusted peer",
			remoteAddr: "198.51.100.9:1",
			headers:    map[string]string{"X-Forwarded-For": "203.0.113.5", "X-Real-IP": "203.0.113.6"},
			trusted:    true,
			want:       "198.51.100.9",
		},
		{
			name:       "x-forwarded-for behind trusted proxies",
			remoteAddr: "10.0.0.1:1",
			headers:    map[string]string{"X-Forwarded-For": "203.0.113.5, 10.0.0.2"},
			trusted:    true,
			want:       "203.0.113.5",
		},
		{
			name:       "spoofed leftmost hop is skipped",
			remoteAddr: "192.0.2.1:1",
			headers:    map[string]string{"X-Forwarded-For": "1.2.3.4, 203.0.113.5"},
			trusted:    true,
			want:       "203.0.113.5",
		},
		{
			name:       "x-real-ip from trusted proxy",
			remoteAddr: "10.0.0.1:1",
			headers:    map[string]string{"X-Real-IP": "198.51.100.7"},
			trusted:    true,
			want:       "198.51.100.7",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			limiter := NewRateLimiter(1, 1, time.Minute)
			defer limiter.Stop()
			if tt.trusted {
				limiter.WithTrustedProxies(trusted)
			}

			req := httptest.NewRequest(http.MethodGet, "/", nil)
			req.RemoteAddr = tt.remoteAddr
			for k, v := range tt.headers {
				req.Header.Set(k, v)
			}
			assert.Equal(t, tt.want, limiter.clientIP(req))
		})
	}
}

func TestRateLimiter_RotatingForwardedForIsLimited(t *testing.T) {
	limiter := NewRateLimiter(0.001, 1, time.Minute)
	defer limiter.Stop()

	handler := limiter.Middleware(slog.New(slog.NewTextHandler(io.Discard, nil)))(
		http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) { w.WriteHeader(http.StatusOK) }))

	codes := make([]int, 0, 3)
	for i := range 3 {
		req := httptest.NewRequest(http.MethodGet, "/health", nil)
		req.RemoteAddr = "198.51.100.9:4000"
		req.Header.Set("X-Forwarded-For", fmt.Sprintf("203.0.113.%d", i+1))
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, req)
		codes = append(codes, w.Code)
	}

	assert.Equal(t, []int{http.StatusOK, http.StatusTooManyRequests, http.StatusTooManyRequests}, codes)
}

func TestParseTrustedProxies(t *testing.T) {
	prefixes, err := ParseTrustedProxies([]string{"10.0.0.0/8", " 127.0.0.1 ", "", "::1"})
	require.NoError(t, err)
	assert.Len(t, prefixes, 3)

	_, err = ParseTrustedProxies([]string{"not-an-ip"})
	assert.ErrorContains(t, err, "not-an-ip")

	_, err = ParseTrustedProxies([]string{"10.0.0.0/99"})
	assert.Error(t, err)
}
