package middleware

import (
	"net"
	"net/http"

	"appointment-booking-api/internal/service"
	"appointment-booking-api/pkg/response"
)

// RateLimitMiddleware throttles the authentication endpoints per client IP.
// The window lives in Redis, so the limit holds across restarts and replicas.
type RateLimitMiddleware struct {
	limiter service.RateLimiter
}

func NewRateLimitMiddleware(limiter service.RateLimiter) *RateLimitMiddleware {
	return &RateLimitMiddleware{limiter: limiter}
}

func (m *RateLimitMiddleware) Limit(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		key := clientIP(r) + ":" + r.URL.Path

		allowed, retryAfter, err := m.limiter.Allow(r.Context(), key)
		if err != nil {
			// Redis being down should not lock everyone out.
			next.ServeHTTP(w, r)
			return
		}
		if !allowed {
			response.TooManyRequests(w, "Too many login attempts. Please try again later.", int(retryAfter.Seconds()))
			return
		}

		next.ServeHTTP(w, r)
	})
}

func clientIP(r *http.Request) string {
	if forwarded := r.Header.Get("X-Forwarded-For"); forwarded != "" {
		return forwarded
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
