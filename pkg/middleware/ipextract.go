package middleware

import (
	"context"
	"net/http"

	"github.com/tomasen/realip"
)

type contextKey string

// RealIPKey is the context key for storing the real client IP address
const RealIPKey contextKey = "real-ip"

// StoreRealIP extracts the real client IP and stores it in request context.
// It uses the tomasen/realip library to handle X-Forwarded-For and other proxy headers.
func StoreRealIP(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := context.WithValue(r.Context(), RealIPKey, realip.FromRequest(r))
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// RealIP returns the client IP stored by StoreRealIP, or "" if none was stored.
func RealIP(ctx context.Context) string {
	ip, _ := ctx.Value(RealIPKey).(string)
	return ip
}
