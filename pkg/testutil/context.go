package testutil

import (
	"context"
	"net/http"

	id "worklink/pkg/domain"
	authmw "worklink/pkg/platform/middleware/auth"
)

// WithUserID adds a user ID to the request context.
// This simulates what the auth middleware would do for authenticated requests.
// Invalid user IDs are silently ignored.
func WithUserID(req *http.Request, userID string) *http.Request {
	if parsedUserID, err := id.ParseUserID(userID); err == nil {
		ctx := context.WithValue(req.Context(), authmw.ContextKeyUserID, parsedUserID)
		return req.WithContext(ctx)
	}
	return req
}

// WithActor adds an actor name to the request context, as the auth
// middleware does from the token subject.
func WithActor(req *http.Request, actor string) *http.Request {
	ctx := context.WithValue(req.Context(), authmw.ContextKeyActor, actor)
	return req.WithContext(ctx)
}

// WithAuth adds both user ID and actor to the request context.
// This is the typical state for an authenticated request.
// Invalid IDs are silently ignored.
func WithAuth(req *http.Request, userID, actor string) *http.Request {
	ctx := req.Context()
	if userID != "" {
		if parsedUserID, err := id.ParseUserID(userID); err == nil {
			ctx = context.WithValue(ctx, authmw.ContextKeyUserID, parsedUserID)
		}
	}
	if actor != "" {
		ctx = context.WithValue(ctx, authmw.ContextKeyActor, actor)
	}
	return req.WithContext(ctx)
}

// WithContextValue adds an arbitrary key-value pair to the request context.
func WithContextValue(req *http.Request, key, value any) *http.Request {
	ctx := context.WithValue(req.Context(), key, value)
	return req.WithContext(ctx)
}
