package api

import (
	"log/slog"
	"net"
	"net/http"
)

// rateLimitMiddleware limits challenge generation per client IP.
// Limiter failures let the request through.
func (s *Server) rateLimitMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		key := clientIP(r)

		allowed, err := s.limiter.Allow(r.Context(), key)
		if err != nil {
			slog.Error("rate limiter unavailable", "error", err, "client", key)
			next.ServeHTTP(w, r)
			return
		}

		if !allowed {
			slog.Warn("rate limit exceeded", "client", key, "path", r.URL.Path)
			respondError(w, http.StatusTooManyRequests, "rate limit exceeded, try again in a minute")
			return
		}

		next.ServeHTTP(w, r)
	})
}

// clientIP returns the request's remote address without the port.
// middleware.RealIP has already applied proxy headers.
func clientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
