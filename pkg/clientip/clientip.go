package clientip

import (
	"net"
	"net/http"
	"strings"
)

// FromRequest returns the client IP for a request that may have passed through
// a proxy: first entry of X-Forwarded-For, then X-Real-IP, then RemoteAddr.
func FromRequest(r *http.Request) string {
	forwarded := r.Header.Get("X-Forwarded-For")
	if forwarded != "" {
		// Take the first IP if there are multiple
		ips := strings.Split(forwarded, ",")
		if len(ips) > 0 && strings.TrimSpace(ips[0]) != "" {
			return strings.TrimSpace(ips[0])
		}
	}

	if realIP := strings.TrimSpace(r.Header.Get("X-Real-IP")); realIP != "" {
		return realIP
	}

	return RealClientIP(r)
}

// RealClientIP returns the client IP from the request.
// Uses r.RemoteAddr only (no proxy headers). Use for rate limiting when
// traffic goes directly to the app.
func RealClientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return strings.TrimSpace(r.RemoteAddr)
	}
	return strings.TrimSpace(host)
}
