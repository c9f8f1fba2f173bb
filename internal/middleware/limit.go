package middleware

import (
	"net/http"

	"github.com/mediashare/service/internal/response"
)

// MaxPayload returns middleware that rejects requests whose declared
// Content-Length exceeds limit bytes, before any body parsing happens.
// http.MaxBytesReader is installed as a backstop for requests that lie
// about (or omit) their length.
func MaxPayload(limit int64) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.ContentLength > limit {
				response.PayloadTooLarge(w, "file size too large, maximum allowed is 10MB")
				return
			}
			r.Body = http.MaxBytesReader(w, r.Body, limit)
			next.ServeHTTP(w, r)
		})
	}
}
