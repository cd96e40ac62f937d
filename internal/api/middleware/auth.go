package middleware

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

type actorKey struct{}

// AuthConfig configures bearer token verification.
type AuthConfig struct {
	Secret []byte
	// Issuer is enforced when non-empty.
	Issuer string
}

var errMalformedHeader = errors.New("authorization header must be a bearer token")

// Authenticate resolves the acting user from an HS256 bearer token.
// Requests without an Authorization header continue anonymously.
// A present but invalid token is rejected with 401.
func Authenticate(cfg AuthConfig) func(http.Handler) http.Handler {
	opts := []jwt.ParserOption{jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()})}
	if cfg.Issuer != "" {
		opts = append(opts, jwt.WithIssuer(cfg.Issuer))
	}
	parser := jwt.NewParser(opts...)

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			if header == "" {
				next.ServeHTTP(w, r)
				return
			}

			actor, err := parseActor(parser, cfg.Secret, header)
			if err != nil {
				writeError(w, http.StatusUnauthorized, "unauthenticated", "Invalid or expired token")
				return
			}

			ctx := context.WithValue(r.Context(), actorKey{}, actor)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func parseActor(parser *jwt.Parser, secret []byte, header string) (uuid.UUID, error) {
	raw, ok := strings.CutPrefix(header, "Bearer ")
	if !ok || raw == "" {
		return uuid.Nil, errMalformedHeader
	}

	var claims jwt.RegisteredClaims
	if _, err := parser.ParseWithClaims(raw, &claims, func(*jwt.Token) (any, error) {
		return secret, nil
	}); err != nil {
		return uuid.Nil, err
	}

	actor, err := uuid.Parse(claims.Subject)
	if err != nil || actor == uuid.Nil {
		return uuid.Nil, errors.New("token subject is not a user id")
	}
	return actor, nil
}

// ActorFrom returns the authenticated user, or uuid.Nil for anonymous requests.
func ActorFrom(ctx context.Context) uuid.UUID {
	if id, ok := ctx.Value(actorKey{}).(uuid.UUID); ok {
		return id
	}
	return uuid.Nil
}

// WithActor returns a context carrying actor.
func WithActor(ctx context.Context, actor uuid.UUID) context.Context {
	return context.WithValue(ctx, actorKey{}, actor)
}

func writeError(w http.ResponseWriter, status int, code, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": code, "message": message})
}
