// Package auth provides bearer-token middleware. Transport hands the
// profile service already-authenticated identities; this middleware is the
// only place tokens are inspected.
package auth

import (
	"context"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"

	"worklink/pkg/domain"
)

type contextKey string

// ContextKeyUserID carries the authenticated user's ID.
const ContextKeyUserID contextKey = "auth_user_id"

// ContextKeyActor carries the token subject verbatim, used for
// verified_by/rejected_by attribution on admin actions.
const ContextKeyActor contextKey = "auth_actor"

// Middleware validates HMAC-signed bearer tokens and injects the caller
// identity into the request context.
type Middleware struct {
	signingKey []byte
}

func New(signingKey string) *Middleware {
	return &Middleware{signingKey: []byte(signingKey)}
}

// Require rejects requests without a valid bearer token.
func (m *Middleware) Require(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := bearerToken(r)
		if token == "" {
			unauthorized(w)
			return
		}
		claims := jwt.MapClaims{}
		parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (any, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, jwt.ErrSignatureInvalid
			}
			return m.signingKey, nil
		})
		if err != nil || !parsed.Valid {
			unauthorized(w)
			return
		}
		subject, err := claims.GetSubject()
		if err != nil || subject == "" {
			unauthorized(w)
			return
		}
		userID, err := domain.ParseUserID(subject)
		if err != nil {
			unauthorized(w)
			return
		}

		ctx := context.WithValue(r.Context(), ContextKeyUserID, userID)
		ctx = context.WithValue(ctx, ContextKeyActor, subject)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// UserID extracts the authenticated user from context.
func UserID(ctx context.Context) (domain.UserID, bool) {
	userID, ok := ctx.Value(ContextKeyUserID).(domain.UserID)
	return userID, ok
}

// Actor extracts the raw token subject from context.
func Actor(ctx context.Context) string {
	actor, _ := ctx.Value(ContextKeyActor).(string)
	return actor
}

func bearerToken(r *http.Request) string {
	header := r.Header.Get("Authorization")
	if !strings.HasPrefix(header, "Bearer ") {
		return ""
	}
	return strings.TrimPrefix(header, "Bearer ")
}

func unauthorized(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	_, _ = w.Write([]byte(`{"error":"unauthorized"}`))
}
