package middleware

import (
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/redis/go-redis/v9"
)

// RateLimit enforces a fixed window per client IP using Redis INCR + TTL.
// The window TTL is set on the first hit; once the counter passes the
// limit the request is refused with 429 and a Retry-After hint. Redis
// trouble fails open: reporting an issue matters more than the limiter.
func RateLimit(client *redis.Client, limit int, window time.Duration, logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			key := "ratelimit:issues:" + clientIP(r)

			ctx := r.Context()
			count, err := client.Incr(ctx, key).Result()
			if err != nil {
				logger.Warn("rate limiter unavailable, allowing request", "error", err)
				next.ServeHTTP(w, r)
				return
			}

			if count == 1 {
				if err := client.Expire(ctx, key, window).Err(); err != nil {
					logger.Warn("rate limiter failed to set window", "error", err)
				}
			}

			if count > int64(limit) {
				retryAfter, _ := client.TTL(ctx, key).Result()
				w.Header().Set("Content-Type", "application/json")
				w.Header().Set("Retry-After", fmt.Sprintf("%d", int(retryAfter.Seconds())))
				w.WriteHeader(http.StatusTooManyRequests)
				fmt.Fprintf(w, `{"error": "Too many reports, try again in %d seconds"}`, int(retryAfter.Seconds()))
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

func clientIP(r *http.Request) string {
	if ip := r.Header.Get("X-Forwarded-For"); ip != "" {
		return ip
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
