package middleware

import (
	"log/slog"
	"net"
	"net/http"
	"strconv"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"github.com/utafrali/artfolio/pkg/httputil"
)

// RateLimitConfig sets a token bucket per client address. RPS <= 0 turns
// limiting off.
type RateLimitConfig struct {
	RPS   float64
	Burst int
	// IdleTTL is how long an address is remembered after its last request.
	IdleTTL time.Duration
}

type visitor struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// visitorStore evicts idle visitors while serving lookups, at most once
// per IdleTTL, so it needs no background goroutine.
type visitorStore struct {
	mu        sync.Mutex
	visitors  map[string]*visitor
	limit     rate.Limit
	burst     int
	ttl       time.Duration
	lastSweep time.Time
	now       func() time.Time
}

func newVisitorStore(cfg RateLimitConfig) *visitorStore {
	if cfg.IdleTTL <= 0 {
		cfg.IdleTTL = 3 * time.Minute
	}
	if cfg.Burst <= 0 {
		cfg.Burst = max(1, int(cfg.RPS))
	}
	return &visitorStore{
		visitors: make(map[string]*visitor),
		limit:    rate.Limit(cfg.RPS),
		burst:    cfg.Burst,
		ttl:      cfg.IdleTTL,
		now:      time.Now,
	}
}

func (s *visitorStore) get(addr string) *rate.Limiter {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	if now.Sub(s.lastSweep) > s.ttl {
		for k, v := range s.visitors {
			if now.Sub(v.lastSeen) > s.ttl {
				delete(s.visitors, k)
			}
		}
		s.lastSweep = now
	}

	v, ok := s.visitors[addr]
	if !ok {
		v = &visitor{limiter: rate.NewLimiter(s.limit, s.burst)}
		s.visitors[addr] = v
	}
	v.lastSeen = now
	return v.limiter
}

func (s *visitorStore) len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.visitors)
}

// RateLimit answers 429 with a Retry-After header once a client address
// exhausts its bucket.
func RateLimit(cfg RateLimitConfig, logger *slog.Logger) func(http.Handler) http.Handler {
	if cfg.RPS <= 0 {
		return func(next http.Handler) http.Handler { return next }
	}
	store := newVisitorStore(cfg)
	return rateLimit(store, logger)
}

func rateLimit(store *visitorStore, logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			addr := remoteHost(r)
			if !store.get(addr).Allow() {
				logger.WarnContext(r.Context(), "rate limit exceeded",
					slog.String("ip", addr),
					slog.String("path", r.URL.Path),
				)
				w.Header().Set("Retry-After", strconv.Itoa(retryAfter(store.limit)))
				httputil.WriteErrorCode(w, r, http.StatusTooManyRequests, "RATE_LIMITED", "too many requests")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// retryAfter is the whole seconds until one token is back.
func retryAfter(limit rate.Limit) int {
	if limit <= 0 {
		return 1
	}
	return max(1, int(1/float64(limit)+0.999))
}

func remoteHost(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
