package middlewares

import (
	"fmt"
	"net"
	"net/http"
	"strconv"
	"strings"

	"api/internal/cache"
	"api/internal/helpers"
	"api/internal/models"
)

// RateLimit enforces a per-caller fixed-window limit backed by the cache.
// Authenticated callers are keyed by user id, anonymous ones by client IP.
// A nil cache disables limiting entirely.
func RateLimit(c cache.ICache, trustedProxies []string, requestsPerMinute int) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		fn := func(w http.ResponseWriter, r *http.Request) {
			if c == nil {
				next.ServeHTTP(w, r)
				return
			}

			identifier := callerIdentifier(r, trustedProxies)

			retryAfter, err := c.GetRateLimit(identifier, requestsPerMinute)
			if err != nil {
				// Cache outage must not take the API down with it.
				next.ServeHTTP(w, r)
				return
			}

			if retryAfter > 0 {
				w.Header().Set("Retry-After", strconv.Itoa(retryAfter))
				helpers.RespondWithError(w, 429, []string{"TOO_MANY_REQUESTS"})
				return
			}

			next.ServeHTTP(w, r)
		}
		return http.HandlerFunc(fn)
	}
}

func callerIdentifier(r *http.Request, trustedProxies []string) string {
	if claims, ok := r.Context().Value(models.UserClaimKey{}).(models.UserClaims); ok {
		return fmt.Sprintf("user:%d", claims.UserID)
	}

	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		host = r.RemoteAddr
	}

	if isTrustedProxy(host, trustedProxies) {
		if forwarded := r.Header.Get("X-Forwarded-For"); forwarded != "" {
			parts := strings.Split(forwarded, ",")
			host = strings.TrimSpace(parts[0])
		}
	}

	return "ip:" + host
}

func isTrustedProxy(host string, trustedProxies []string) bool {
	for _, proxy := range trustedProxies {
		if proxy == host {
			return true
		}
	}
	return false
}
