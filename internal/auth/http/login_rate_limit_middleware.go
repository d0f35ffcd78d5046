package http

import (
	"context"
	"log/slog"
	"math"
	"strconv"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"

	apperrors "github.com/cube/simple/internal/errors"
	"github.com/cube/simple/internal/httputil"
)

const (
	limiterCleanupInterval = 5 * time.Minute
	limiterIdleTTL         = time.Hour
)

// ipRateLimiterStore holds per-IP rate limiters with periodic cleanup.
type ipRateLimiterStore struct {
	limiters sync.Map // map[string]*ipRateLimiterEntry (IP -> limiter)
	rps      float64
	burst    int
}

type ipRateLimiterEntry struct {
	limiter    *rate.Limiter
	lastAccess time.Time
	evicted    bool
	mu         sync.Mutex
}

// LoginRateLimitMiddleware enforces per-IP rate limiting on the login endpoint to
// slow down credential stuffing. Each client IP (c.ClientIP) gets an independent
// token bucket.
//
// Exceeding the limit responds 429 TOO_MANY_REQUESTS with a Retry-After header.
// The cleanup goroutine stops when ctx is cancelled.
func LoginRateLimitMiddleware(
	ctx context.Context,
	rps float64,
	burst int,
	responder *httputil.ErrorResponder,
	logger *slog.Logger,
) gin.HandlerFunc {
	store := &ipRateLimiterStore{
		rps:   rps,
		burst: burst,
	}

	go store.cleanupStale(ctx, limiterCleanupInterval)

	return func(c *gin.Context) {
		clientIP := c.ClientIP()
		limiter := store.getLimiter(clientIP)

		if !limiter.Allow() {
			reservation := limiter.Reserve()
			retryAfter := int(math.Ceil(reservation.Delay().Seconds()))
			reservation.Cancel()

			logger.Debug("login rate limit exceeded",
				slog.String("client_ip", clientIP),
				slog.Int("retry_after", retryAfter))

			c.Header("Retry-After", strconv.Itoa(retryAfter))
			responder.Error(c, apperrors.Wrap(apperrors.ErrTooManyRequests, "login rate limit exceeded"))
			return
		}

		c.Next()
	}
}

// getLimiter returns the bucket for ip. An entry is refreshed and evicted only
// under its own lock, and a caller that finds an evicted entry retries, so a
// client never ends up holding a bucket that is no longer in the map.
func (s *ipRateLimiterStore) getLimiter(ip string) *rate.Limiter {
	for {
		now := time.Now()
		fresh := &ipRateLimiterEntry{
			limiter:    rate.NewLimiter(rate.Limit(s.rps), s.burst),
			lastAccess: now,
		}

		actual, loaded := s.limiters.LoadOrStore(ip, fresh)
		if !loaded {
			return fresh.limiter
		}

		entry := actual.(*ipRateLimiterEntry)
		entry.mu.Lock()
		if entry.evicted {
			entry.mu.Unlock()
			continue
		}
		entry.lastAccess = now
		entry.mu.Unlock()
		return entry.limiter
	}
}

// cleanupStale removes limiters idle for longer than limiterIdleTTL.
func (s *ipRateLimiterStore) cleanupStale(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.evictIdle(time.Now().Add(-limiterIdleTTL))
		}
	}
}

func (s *ipRateLimiterStore) evictIdle(threshold time.Time) {
	s.limiters.Range(func(key, value any) bool {
		entry := value.(*ipRateLimiterEntry)
		entry.mu.Lock()
		defer entry.mu.Unlock()

		if entry.lastAccess.Before(threshold) {
			entry.evicted = true
			s.limiters.CompareAndDelete(key, entry)
		}
		return true
	})
}
