package middleware

import (
	"log/slog"
	"net/http"

	"github.com/google/uuid"

	"github.com/hszk-dev/vidtube/internal/infrastructure/cache"
	"github.com/hszk-dev/vidtube/internal/infrastructure/metrics"
)

// RateLimit throttles mutating requests per actor. Anonymous writers are
// keyed by remote address. Safe methods are never limited.
// When the limiter itself fails the request is allowed through.
func RateLimit(limiter cache.RateLimiter) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if isSafeMethod(r.Method) {
				next.ServeHTTP(w, r)
				return
			}

			key := "ip:" + r.RemoteAddr
			if actor := ActorFrom(r.Context()); actor != uuid.Nil {
				key = "user:" + actor.String()
			}

			allowed, err := limiter.Allow(r.Context(), key)
			if err != nil {
				slog.Warn("rate limiter unavailable",
					"request_id", GetRequestID(r.Context()),
					"error", err,
				)
				next.ServeHTTP(w, r)
				return
			}
			if !allowed {
				metrics.RateLimitedTotal.Inc()
				writeError(w, http.StatusTooManyRequests, "rate_limited", "Too many requests")
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

func isSafeMethod(method string) bool {
	switch method {
	case http.MethodGet, http.MethodHead, http.MethodOptions:
		return true
	default:
		return false
	}
}
