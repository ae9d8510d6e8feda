package middleware

import (
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"net/netip"
	"strings"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// RateLimiter ограничивает частоту запросов по ключу клиента (IP)
// Для каждого ключа хранится отдельный token bucket из x/time/rate
type RateLimiter struct {
	clients map[string]*client
	trusted []netip.Prefix
	stopC   chan struct{}
	now     func() time.Time
	idleTTL time.Duration
	limit   rate.Limit
	burst   int
	mu      sync.Mutex
	once    sync.Once
}

// client представляет limiter конкретного ключа
type client struct {
	lastSeen time.Time
	limiter  *rate.Limiter
}

// NewRateLimiter создает новый rate limiter
// rps - средняя частота запросов в секунду, burst - допустимый всплеск
// Клиенты без запросов дольше idleTTL удаляются фоновой очисткой
func NewRateLimiter(rps float64, burst int, idleTTL time.Duration) *RateLimiter {
	rl := &RateLimiter{
		clients: make(map[string]*client),
		stopC:   make(chan struct{}),
		now:     time.Now,
		idleTTL: idleTTL,
		limit:   rate.Limit(rps),
		burst:   burst,
	}

	go rl.cleanup()

	return rl
}

// cleanup периодически удаляет неактивных клиентов
func (rl *RateLimiter) cleanup() {
	ticker := time.NewTicker(rl.idleTTL)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			rl.removeIdle()
		case <-rl.stopC:
			return
		}
	}
}

// removeIdle удаляет клиентов, не делавших запросов дольше idleTTL
func (rl *RateLimiter) removeIdle() int {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := rl.now()
	removed := 0
	for key, c := range rl.clients {
		if now.Sub(c.lastSeen) > rl.idleTTL {
			delete(rl.clients, key)
			removed++
		}
	}
	return removed
}

// ParseTrustedProxies разбирает список IP адресов и CIDR подсетей прокси
func ParseTrustedProxies(list []string) ([]netip.Prefix, error) {
	prefixes := make([]netip.Prefix, 0, len(list))
	for _, item := range list {
		item = strings.TrimSpace(item)
		if item == "" {
			continue
		}
		if strings.Contains(item, "/") {
			p, err := netip.ParsePrefix(item)
			if err != nil {
				return nil, fmt.Errorf("trusted proxy %q: %w", item, err)
			}
			prefixes = append(prefixes, p.Masked())
			continue
		}
		addr, err := netip.ParseAddr(item)
		if err != nil {
			return nil, fmt.Errorf("trusted proxy %q: %w", item, err)
		}
		prefixes = append(prefixes, netip.PrefixFrom(addr.Unmap(), addr.Unmap().BitLen()))
	}
	return prefixes, nil
}

// WithTrustedProxies разрешает брать IP клиента из заголовков прокси,
// но только для запросов, пришедших с адресов из prefixes
func (rl *RateLimiter) WithTrustedProxies(prefixes []netip.Prefix) *RateLimiter {
	rl.trusted = prefixes
	return rl
}

// Stop останавливает cleanup goroutine, повторный вызов безопасен
func (rl *RateLimiter) Stop() {
	rl.once.Do(func() { close(rl.stopC) })
}

// Allow проверяет, разрешен ли запрос для данного ключа
func (rl *RateLimiter) Allow(key string) bool {
	rl.mu.Lock()
	c, exists := rl.clients[key]
	if !exists {
		c = &client{limiter: rate.NewLimiter(rl.limit, rl.burst)}
		rl.clients[key] = c
	}
	now := rl.now()
	c.lastSeen = now
	rl.mu.Unlock()

	return c.limiter.AllowN(now, 1)
}

// Middleware возвращает http middleware, отвечающий 429 при превышении лимита
func (rl *RateLimiter) Middleware(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			key := rl.clientIP(r)

			if !rl.Allow(key) {
				logger.WarnContext(r.Context(), "rate limit exceeded",
					slog.String("ip", key),
					slog.String("method", r.Method),
					slog.String("path", r.URL.Path),
				)

				w.Header().Set("Retry-After", "1")
				writeError(w, "rate limit exceeded, please try again later", http.StatusTooManyRequests)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// clientIP извлекает IP адрес клиента из запроса.
// X-Forwarded-For и X-Real-IP учитываются только от доверенного прокси,
// иначе используется RemoteAddr.
func (rl *RateLimiter) clientIP(r *http.Request) string {
	remote := remoteHost(r.RemoteAddr)
	if !rl.isTrusted(remote) {
		return remote
	}

	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		// Идем справа налево, пропуская доверенные прокси
		hops := strings.Split(xff, ",")
		for i := len(hops) - 1; i >= 0; i-- {
			hop := strings.TrimSpace(hops[i])
			if hop == "" {
				continue
			}
			if !rl.isTrusted(hop) {
				return hop
			}
		}
	}

	if xri := strings.TrimSpace(r.Header.Get("X-Real-IP")); xri != "" {
		return xri
	}

	return remote
}

// isTrusted сообщает, входит ли ip в список доверенных прокси
func (rl *RateLimiter) isTrusted(ip string) bool {
	if len(rl.trusted) == 0 {
		return false
	}
	addr, err := netip.ParseAddr(ip)
	if err != nil {
		return false
	}
	addr = addr.Unmap()
	for _, p := range rl.trusted {
		if p.Contains(addr) {
			return true
		}
	}
	return false
}

// remoteHost возвращает RemoteAddr без порта, иначе каждое соединение получит свой bucket
func remoteHost(remoteAddr string) string {
	if host, _, err := net.SplitHostPort(remoteAddr); err == nil {
		return host
	}
	return remoteAddr
}
