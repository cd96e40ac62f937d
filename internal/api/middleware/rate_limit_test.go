package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/hszk-dev/vidtube/internal/infrastructure/cache"
)

type failingLimiter struct{}

func (failingLimiter) Allow(ctx context.Context, key string) (bool, error) {
	return false, errors.New("redis down")
}

func newTestLimiter(t *testing.T, limit int) cache.RateLimiter {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	return cache.NewRedisRateLimiter(client, limit, time.Minute)
}

func serve(h http.Handler, method string, actor uuid.UUID) int {
	req := httptest.NewRequest(method, "/v1/tweets", nil)
	req.RemoteAddr = "10.0.0.1:1234"
	if actor != uuid.Nil {
		req = req.WithContext(WithActor(req.Context(), actor))
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec.Code
}

func TestRateLimit(t *testing.T) {
	ok := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	t.Run("writes over the limit are rejected per actor", func(t *testing.T) {
		h := RateLimit(newTestLimiter(t, 2))(ok)
		alice, bob := uuid.New(), uuid.New()

		for i := 0; i < 2; i++ {
			if code := serve(h, http.MethodPost, alice); code != http.StatusOK {
				t.Fatalf("request %d status = %d, want 200", i, code)
			}
		}
		if code := serve(h, http.MethodPost, alice); code != http.StatusTooManyRequests {
			t.Errorf("third write status = %d, want 429", code)
		}
		if code := serve(h, http.MethodPost, bob); code != http.StatusOK {
			t.Errorf("other actor status = %d, want 200", code)
		}
	})

	t.Run("reads are never limited", func(t *testing.T) {
		h := RateLimit(newTestLimiter(t, 1))(ok)
		actor := uuid.New()
		for i := 0; i < 5; i++ {
			if code := serve(h, http.MethodGet, actor); code != http.StatusOK {
				t.Fatalf("read %d status = %d, want 200", i, code)
			}
		}
	})

	t.Run("anonymous writes share the remote address bucket", func(t *testing.T) {
		h := RateLimit(newTestLimiter(t, 1))(ok)
		if code := serve(h, http.MethodDelete, uuid.Nil); code != http.StatusOK {
			t.Fatalf("first status = %d, want 200", code)
		}
		if code := serve(h, http.MethodDelete, uuid.Nil); code != http.StatusTooManyRequests {
			t.Errorf("second status = %d, want 429", code)
		}
	})

	t.Run("limiter failure lets the request through", func(t *testing.T) {
		h := RateLimit(failingLimiter{})(ok)
		if code := serve(h, http.MethodPost, uuid.New()); code != http.StatusOK {
			t.Errorf("status = %d, want 200", code)
		}
	})
}
