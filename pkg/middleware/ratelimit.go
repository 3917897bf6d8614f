package middleware

import (
	"net/http"

	"github.com/go-chi/httprate"
)

// RateLimit returns middleware that limits requests per client IP over a
// sliding window. Requests over the limit receive 429. A config with zero
// requests returns a pass-through middleware.
func RateLimit(cfg *RateLimitConfig) func(http.Handler) http.Handler {
	if cfg.Requests <= 0 {
		return func(next http.Handler) http.Handler {
			return next
		}
	}
	return httprate.LimitByIP(cfg.Requests, cfg.WindowDuration())
}
