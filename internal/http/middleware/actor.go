package middleware

import (
	"context"
	"io"
	"net/http"
	"strings"

	"cargaviva/internal/domain"
	"cargaviva/internal/logx"
)

// Identity headers set by the upstream gateway.
const (
	HeaderUserID   = "X-User-ID"
	HeaderUserRole = "X-User-Role"
)

type actorCtxKey struct{}

// WithActor stores the acting user in ctx.
func WithActor(ctx context.Context, a domain.Actor) context.Context {
	return context.WithValue(ctx, actorCtxKey{}, a)
}

// ActorFrom returns the acting user stored by the Actor middleware.
func ActorFrom(ctx context.Context) (domain.Actor, bool) {
	a, ok := ctx.Value(actorCtxKey{}).(domain.Actor)
	return a, ok
}

// ActorKey is a rate limit key; it is empty for anonymous requests.
func ActorKey(r *http.Request) string {
	if a, ok := ActorFrom(r.Context()); ok {
		return "actor:" + a.ID
	}
	return ""
}

// Actor rejects requests without a valid identity with 401.
func Actor(logger logx.Logger) func(http.Handler) http.Handler {
	if logger == nil {
		logger = logx.Nop()
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id := strings.TrimSpace(r.Header.Get(HeaderUserID))
			role := domain.Role(strings.ToLower(strings.TrimSpace(r.Header.Get(HeaderUserRole))))
			if id == "" || !role.Valid() {
				logger.Warn("unauthenticated request",
					logx.String("method", r.Method),
					logx.String("path", r.URL.Path),
					logx.Bool("has_user_id", id != ""),
					logx.String("role", string(role)),
				)
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusUnauthorized)
				_, _ = io.WriteString(w, `{"error":"missing or invalid identity headers"}`)
				return
			}
			next.ServeHTTP(w, r.WithContext(WithActor(r.Context(), domain.Actor{ID: id, Role: role})))
		})
	}
}
