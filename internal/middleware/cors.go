package middleware

import (
	"net/http"

	"github.com/go-chi/cors"
)

// CORS returns a CORS handler for the public and admin API. The handler
// sends credentials, so origins are never wildcarded: outside
// development an empty origin list means same-origin only, while in
// development every origin is reflected to keep a local frontend
// working against the backend.
func CORS(allowedOrigins []string, isDev bool) func(http.Handler) http.Handler {
	opts := cors.Options{
		AllowedMethods:   []string{"GET", "HEAD", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Content-Type", "Authorization"},
		AllowCredentials: true,
		MaxAge:           300,
	}

	switch {
	case len(allowedOrigins) > 0:
		opts.AllowedOrigins = allowedOrigins
	case isDev:
		opts.AllowOriginFunc = func(_ *http.Request, _ string) bool { return true }
	default:
		opts.AllowOriginFunc = func(_ *http.Request, _ string) bool { return false }
	}

	return cors.Handler(opts)
}
