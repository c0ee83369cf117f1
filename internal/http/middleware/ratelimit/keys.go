package ratelimit

import (
	"net"
	"net/http"
	"strconv"

	"courier-admin/internal/http/middleware"
)

// ByActor keys authenticated requests by user id and the rest by client address.
// It must run after middleware.Session to see the actor.
func ByActor(r *http.Request) string {
	if a, ok := middleware.ActorFrom(r.Context()); ok {
		return "user:" + strconv.FormatInt(a.UserID, 10)
	}
	return ByClientIP(r)
}

// ByClientIP keys requests by remote host. chi's RealIP has already rewritten RemoteAddr.
func ByClientIP(r *http.Request) string {
	return "ip:" + clientIP(r)
}

func clientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err == nil && host != "" {
		return host
	}
	if r.RemoteAddr != "" {
		return r.RemoteAddr
	}
	return "unknown"
}
