package middleware

import "net/http"

// HeaderHook mutates response headers just before they are sent.
type HeaderHook func(http.Header)

// BeforeSend returns a middleware that runs hook exactly once per response, immediately
// before the final status line is written. If the handler writes nothing, hook runs after
// it returns so the implicit 200 response still carries the headers.
// Informational (1xx) responses pass through without running hook.
func BeforeSend(hook HeaderHook) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			hw := &hookWriter{ResponseWriter: w, hook: hook}
			next.ServeHTTP(hw, r)
			hw.fire()
		})
	}
}

type hookWriter struct {
	http.ResponseWriter
	hook  HeaderHook
	fired bool
}

func (w *hookWriter) fire() {
	if w.fired {
		return
	}
	w.fired = true
	w.hook(w.Header())
}

func (w *hookWriter) WriteHeader(code int) {
	if code >= http.StatusOK {
		w.fire()
	}
	w.ResponseWriter.WriteHeader(code)
}

func (w *hookWriter) Write(b []byte) (int, error) {
	w.fire()
	return w.ResponseWriter.Write(b)
}

func (w *hookWriter) Flush() {
	w.fire()
	if f, ok := w.ResponseWriter.(http.Flusher); ok {
		f.Flush()
	}
}

// Unwrap lets http.ResponseController reach the underlying writer.
func (w *hookWriter) Unwrap() http.ResponseWriter {
	return w.ResponseWriter
}
