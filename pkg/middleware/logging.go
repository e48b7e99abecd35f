package middleware

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/jh125486/serverversion/pkg/contextlog"
)

// ResponseWriter wraps http.ResponseWriter to capture the status code and body size
type ResponseWriter struct {
	http.ResponseWriter
	Status int
	Bytes  int
}

// WriteHeader captures the status code and writes it to the underlying ResponseWriter
func (rw *ResponseWriter) WriteHeader(code int) {
	rw.Status = code
	rw.ResponseWriter.WriteHeader(code)
}

// Write counts the bytes written to the underlying ResponseWriter
func (rw *ResponseWriter) Write(b []byte) (int, error) {
	n, err := rw.ResponseWriter.Write(b)
	rw.Bytes += n
	return n, err
}

// Unwrap returns the wrapped ResponseWriter for http.ResponseController
func (rw *ResponseWriter) Unwrap() http.ResponseWriter {
	return rw.ResponseWriter
}

// Logging logs HTTP requests with method, path, status, size, duration, and client IP.
// It wraps the ResponseWriter to capture status codes and logs after the request completes.
func Logging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ctx := r.Context()
		logger := contextlog.From(ctx)

		rw := &ResponseWriter{ResponseWriter: w, Status: http.StatusOK}
		next.ServeHTTP(rw, r)

		clientIP := RealIP(ctx)
		if clientIP == "" {
			clientIP = r.RemoteAddr
		}

		logger.InfoContext(ctx, "HTTP request",
			slog.String("method", r.Method),
			slog.String("path", r.URL.Path),
			slog.Int("status", rw.Status),
			slog.Int("bytes", rw.Bytes),
			slog.Duration("duration", time.Since(start)),
			slog.String("client_ip", clientIP),
		)
	})
}
