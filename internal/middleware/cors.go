package middleware

import (
	"os"
	"strings"

	"github.com/gin-gonic/gin"
)

// wildcardOrigin is a parsed single-level wildcard pattern like
// "https://*.example.com". Only one wildcard is allowed, it must be the whole
// leftmost label, and the remaining domain needs at least two labels.
type wildcardOrigin struct {
	scheme string // "https://" or "http://"
	suffix string // ".example.com", with the leading dot
}

// parseWildcardOrigin parses a wildcard origin pattern. Returns nil for exact
// origins and anything that doesn't meet the wildcard shape.
func parseWildcardOrigin(pattern string) *wildcardOrigin {
	var scheme string
	switch {
	case strings.HasPrefix(pattern, "https://"):
		scheme = "https://"
	case strings.HasPrefix(pattern, "http://"):
		scheme = "http://"
	default:
		return nil
	}

	rest := strings.TrimPrefix(pattern, scheme)
	if !strings.HasPrefix(rest, "*.") {
		return nil
	}

	suffix := rest[1:] // keep the dot, drop the star
	if strings.Contains(suffix, "*") {
		return nil
	}
	if strings.Count(suffix, ".") < 2 {
		return nil
	}

	return &wildcardOrigin{scheme: scheme, suffix: suffix}
}

// matches reports whether origin is covered by the pattern. Exactly one
// non-empty label may replace the wildcard, which blocks both nested
// subdomains and suffix-injection lookalikes.
func (w *wildcardOrigin) matches(origin string) bool {
	if !strings.HasPrefix(origin, w.scheme) {
		return false
	}
	host := strings.TrimPrefix(origin, w.scheme)
	if !strings.HasSuffix(host, w.suffix) {
		return false
	}
	sub := strings.TrimSuffix(host, w.suffix)
	return sub != "" && !strings.Contains(sub, ".")
}

// CORS middleware to handle cross-origin requests
// Reads CORS_ALLOWED_ORIGINS environment variable to restrict origins;
// entries may be exact origins or single-level wildcards like
// "https://*.example.com". If not set, defaults to "*" (allow all origins).
func CORS() gin.HandlerFunc {
	allowedOriginsStr := os.Getenv("CORS_ALLOWED_ORIGINS")
	allowAll := allowedOriginsStr == ""

	var exactOrigins []string
	var wildcardOrigins []*wildcardOrigin
	if !allowAll {
		for _, entry := range strings.Split(allowedOriginsStr, ",") {
			entry = strings.TrimSpace(entry)
			if wildcard := parseWildcardOrigin(entry); wildcard != nil {
				wildcardOrigins = append(wildcardOrigins, wildcard)
				continue
			}
			exactOrigins = append(exactOrigins, entry)
		}
	}

	originAllowed := func(origin string) bool {
		for _, allowed := range exactOrigins {
			if origin == allowed {
				return true
			}
		}
		for _, wildcard := range wildcardOrigins {
			if wildcard.matches(origin) {
				return true
			}
		}
		return false
	}

	return func(c *gin.Context) {
		origin := c.Request.Header.Get("Origin")

		if allowAll {
			c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		} else if originAllowed(origin) {
			c.Writer.Header().Set("Access-Control-Allow-Origin", origin)
			c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		} else if c.Request.Method == "OPTIONS" {
			// Origin not allowed, reject the preflight outright
			c.AbortWithStatus(403)
			return
		}

		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, X-CSRF-Token, Authorization, accept, origin, Cache-Control, X-Requested-With")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET, PUT, DELETE, PATCH")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	}
}
