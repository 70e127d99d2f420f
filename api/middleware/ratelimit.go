package middleware

import (
	"encoding/json"
	"net"
	"net/http"

	"github.com/prasetyowira/qrforge/constant"
	"github.com/prasetyowira/qrforge/infrastructure/ratelimit"
)

// ClientIP extracts the client address from a request, dropping the port
// when one is present. RealIP middleware has already rewritten RemoteAddr
// for proxied requests.
func ClientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}

// RateLimit is middleware that rejects requests once the caller's daily
// quota is exhausted
func RateLimit(limiter *ratelimit.Limiter) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if err := limiter.Admit(ClientIP(r)); err != nil {
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusTooManyRequests)
				json.NewEncoder(w).Encode(map[string]string{
					"error": constant.ErrRateLimited,
				})
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
