package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"

	"payhub/internal/auth"
	"payhub/internal/transport/http/api"
)

type ctxKey string

const (
	ctxKeyUsername ctxKey = "auth_username"
	ctxKeyAuthErr  ctxKey = "auth_error"
)

// Auth parses a bearer token when present and stashes the authenticated
// username (or the parse failure) in the request context. Route gating is
// done separately by RequireAuth so the login route stays open.
func Auth(secret string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				next.ServeHTTP(w, r)
				return
			}
			parts := strings.Split(authHeader, " ")
			if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
				next.ServeHTTP(w, r)
				return
			}

			claims, err := auth.ParseToken(secret, parts[1])
			if err != nil {
				ctx := context.WithValue(r.Context(), ctxKeyAuthErr, err)
				next.ServeHTTP(w, r.WithContext(ctx))
				return
			}

			ctx := context.WithValue(r.Context(), ctxKeyUsername, claims.Username)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, ok := GetUsername(r.Context()); !ok {
			detail := "Invalid authentication credentials"
			if err, ok := r.Context().Value(ctxKeyAuthErr).(error); ok && errors.Is(err, jwt.ErrTokenExpired) {
				detail = "Token has expired"
			}
			api.Fail(w, http.StatusUnauthorized, detail)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func GetUsername(ctx context.Context) (string, bool) {
	username, ok := ctx.Value(ctxKeyUsername).(string)
	return username, ok
}
