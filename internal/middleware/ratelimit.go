package middleware

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/minjoonc/portfolio-backend/pkg/clientip"
)

const (
	// RateLimitWindow is the fixed window for per-IP counting
	RateLimitWindow = 120 * time.Second
	// RateLimitMaxRequests is the maximum number of requests allowed in the window
	RateLimitMaxRequests = 60
	// RateLimitKeyPrefix is the Redis key prefix for rate limiting
	RateLimitKeyPrefix = "ratelimit:"
)

// RedisRateLimit provides fixed-window per-IP rate limiting backed by Redis.
// Fails open: when Redis is unreachable the request is allowed through.
func RedisRateLimit(client *redis.Client) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ipAddress := clientip.FromRequest(r)
			ctx := r.Context()

			rateLimitKey := RateLimitKeyPrefix + ipAddress

			count, err := client.Incr(ctx, rateLimitKey).Result()
			if err != nil {
				// If Redis fails, allow the request (fail open)
				next.ServeHTTP(w, r)
				return
			}
			if count == 1 {
				client.Expire(ctx, rateLimitKey, RateLimitWindow)
			}

			if count > RateLimitMaxRequests {
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusTooManyRequests)
				fmt.Fprintf(w, `{"success":false,"message":"Rate limit exceeded. Please try again later.","retry_after":%d}`, int(RateLimitWindow.Seconds()))
				return
			}

			remaining := RateLimitMaxRequests - int(count)
			if remaining < 0 {
				remaining = 0
			}
			w.Header().Set("X-RateLimit-Limit", strconv.Itoa(RateLimitMaxRequests))
			w.Header().Set("X-RateLimit-Remaining", strconv.Itoa(remaining))
			w.Header().Set("X-RateLimit-Reset", strconv.FormatInt(time.Now().Add(RateLimitWindow).Unix(), 10))

			next.ServeHTTP(w, r)
		})
	}
}
