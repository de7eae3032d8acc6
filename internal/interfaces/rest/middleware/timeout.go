package middleware

import (
	"context"
	"net/http"
	"time"
)

const timeoutBody = `{"error":"request timed out","code":"REQUEST_TIMEOUT"}`

// jsonTimeoutWriter labels the 503 written by http.TimeoutHandler as JSON.
type jsonTimeoutWriter struct {
	http.ResponseWriter
}

func (w jsonTimeoutWriter) WriteHeader(status int) {
	if status == http.StatusServiceUnavailable && w.Header().Get("Content-Type") == "" {
		w.Header().Set("Content-Type", "application/json")
	}
	w.ResponseWriter.WriteHeader(status)
}

func (w jsonTimeoutWriter) Unwrap() http.ResponseWriter {
	return w.ResponseWriter
}

// Timeout bounds each request. Wrap it inside Logging so the access log sees the
// 503 sent on expiry.
func Timeout(timeout time.Duration) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		if timeout <= 0 {
			return next
		}

		timeoutHandler := http.TimeoutHandler(next, timeout, timeoutBody)

		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx, cancel := context.WithTimeout(r.Context(), timeout)
			defer cancel()

			timeoutHandler.ServeHTTP(jsonTimeoutWriter{ResponseWriter: w}, r.WithContext(ctx))
		})
	}
}
