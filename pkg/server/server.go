package server

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/jh125486/serverversion/pkg/contextlog"
	"github.com/jh125486/serverversion/pkg/middleware"
	"github.com/jh125486/serverversion/pkg/serverversion"
)

const (
	contentTypeHeader = "Content-Type"
	jsonContentType   = "application/json"
	shutdownTimeout   = 5 * time.Second
)

// Config contains the configuration required to start the server.
type Config struct {
	Port     string
	Injector *serverversion.Injector
}

// HealthResponse is the body served on /health.
type HealthResponse struct {
	Status    string `json:"status"`
	Timestamp string `json:"timestamp"`
	Version   string `json:"version,omitempty"`
	Commit    string `json:"commit,omitempty"`
}

// NewHandler returns the example routes wrapped as requestID -> logging -> realIP -> injector.
// Every response, including 404s, carries the injector's headers.
func NewHandler(inj *serverversion.Injector) http.Handler {
	md := inj.Metadata()

	mux := http.NewServeMux()
	mux.HandleFunc("GET /{$}", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, r, http.StatusOK, map[string]string{"hello": "world"})
	})
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, r, http.StatusOK, HealthResponse{
			Status:    "healthy",
			Timestamp: time.Now().Format(time.RFC3339),
			Version:   md.Version,
			Commit:    md.CommitHash,
		})
	})

	return middleware.RequestID(middleware.Logging(middleware.StoreRealIP(inj.Middleware(mux))))
}

func writeJSON(w http.ResponseWriter, r *http.Request, status int, v any) {
	w.Header().Set(contentTypeHeader, jsonContentType)
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		ctx := r.Context()
		contextlog.From(ctx).ErrorContext(ctx, "Failed to encode response", slog.Any("error", err))
	}
}

// Start listens on the configured port and serves NewHandler until ctx is cancelled,
// then shuts down gracefully.
func Start(ctx context.Context, cfg Config) error {
	if cfg.Injector == nil {
		return errors.New("server: injector is required")
	}

	var lc net.ListenConfig
	lis, err := lc.Listen(ctx, "tcp", ":"+cfg.Port)
	if err != nil {
		return err
	}
	return Serve(ctx, lis, cfg.Injector)
}

// Serve runs the server on lis until ctx is cancelled.
func Serve(ctx context.Context, lis net.Listener, inj *serverversion.Injector) error {
	srv := &http.Server{
		Handler:           NewHandler(inj),
		ReadHeaderTimeout: 10 * time.Second, // Prevent Slowloris attacks
		BaseContext:       func(net.Listener) context.Context { return context.WithoutCancel(ctx) },
	}
	md := inj.Metadata()
	contextlog.From(ctx).InfoContext(ctx, "HTTP server listening",
		slog.String("addr", lis.Addr().String()),
		slog.String("server_version", md.Version),
		slog.String("commit_hash", md.CommitHash),
	)

	serveErr := make(chan error, 1)
	go func() {
		serveErr <- srv.Serve(lis)
	}()

	select {
	case err := <-serveErr:
		return err
	case <-ctx.Done():
		// The original context is already cancelled, so shut down on a fresh one.
		shutCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		_ = srv.Shutdown(shutCtx)
		return ctx.Err()
	}
}
