package middleware

import (
	"log"
	"net/http"
	"strings"
	"time"
)

var sanitize = strings.NewReplacer("\n", "", "\r", "").Replace

// Logger is a middleware that logs HTTP requests as METHOD PATH STATUS DURATION.
// Refresh requests are tagged since each one costs a completion call.
func Logger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		wrapped := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}
		next.ServeHTTP(wrapped, r)

		suffix := ""
		if r.URL.Query().Get("refresh") == "true" {
			suffix = " refresh"
		}

		// Method and path are user-supplied; CR/LF is stripped to prevent log injection.
		//nolint:gosec // G706: values are sanitized above.
		log.Printf(
			"%s %s %d %s%s",
			sanitize(r.Method),
			sanitize(r.URL.Path),
			wrapped.statusCode,
			time.Since(start),
			suffix,
		)
	})
}

// responseWriter wraps http.ResponseWriter to capture the status code
type responseWriter struct {
	http.ResponseWriter
	statusCode  int
	wroteHeader bool
}

func (rw *responseWriter) WriteHeader(code int) {
	if !rw.wroteHeader {
		rw.statusCode = code
		rw.wroteHeader = true
	}
	rw.ResponseWriter.WriteHeader(code)
}
