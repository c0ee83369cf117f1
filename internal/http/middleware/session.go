package middleware

import (
	"context"
	"io"
	"net/http"
	"strings"

	"courier-admin/internal/domain"
	"courier-admin/internal/logx"
)

// TokenVerifier turns a bearer token into the acting user.
type TokenVerifier interface {
	Verify(token string) (domain.Actor, error)
}

type actorKey struct{}

// WithActor returns a copy of ctx carrying actor.
func WithActor(ctx context.Context, actor domain.Actor) context.Context {
	return context.WithValue(ctx, actorKey{}, actor)
}

// ActorFrom returns the actor stored by Session.
func ActorFrom(ctx context.Context) (domain.Actor, bool) {
	a, ok := ctx.Value(actorKey{}).(domain.Actor)
	return a, ok
}

// Session rejects requests without a valid bearer token with 401
// and stores the decoded actor in the request context.
func Session(v TokenVerifier, logger logx.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token, ok := bearer(r.Header.Get("Authorization"))
			if !ok {
				unauthorized(w, logger)
				return
			}
			actor, err := v.Verify(token)
			if err != nil {
				logger.Debug("session rejected",
					logx.String("path", r.URL.Path),
					logx.Err(err),
				)
				unauthorized(w, logger)
				return
			}
			next.ServeHTTP(w, r.WithContext(WithActor(r.Context(), actor)))
		})
	}
}

func bearer(h string) (string, bool) {
	const prefix = "bearer "
	if len(h) <= len(prefix) || !strings.EqualFold(h[:len(prefix)], prefix) {
		return "", false
	}
	token := strings.TrimSpace(h[len(prefix):])
	return token, token != ""
}

func unauthorized(w http.ResponseWriter, logger logx.Logger) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("WWW-Authenticate", `Bearer realm="courier-admin"`)
	w.WriteHeader(http.StatusUnauthorized)
	if _, err := io.WriteString(w, `{"error":"unauthorized"}`); err != nil {
		logger.Debug("unauthorized response write failed", logx.Err(err))
	}
}
