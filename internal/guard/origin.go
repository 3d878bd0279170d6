// Package guard decides whether a request may use the generation endpoints.
// Browser calls from the site itself (same host, or a local development
// origin) are let through, as are callers presenting the configured API key.
package guard

import (
	"crypto/subtle"
	"net"
	"net/http"
	"strings"
)

// Denial reasons.
const (
	ReasonDirectCall     = "direct calls not allowed"
	ReasonOriginMismatch = "origin mismatch"
)

// Decision is the outcome of checking one request.
type Decision struct {
	Allowed bool
	Reason  string
}

// Guard checks request origins. The zero value has no API key configured.
type Guard struct {
	apiKey string
}

// New returns a Guard. An empty apiKey disables the key check.
func New(apiKey string) *Guard {
	return &Guard{apiKey: apiKey}
}

// Check runs the ordered rules and returns on the first match.
func (g *Guard) Check(r *http.Request) Decision {
	host := r.Host
	origin := r.Header.Get("Origin")
	referer := r.Header.Get("Referer")

	switch {
	case g.keyMatches(r.Header.Get("X-API-Key")):
		return allow("api key")
	case origin != "" && originMatches(origin, RequestScheme(r)+"://"+host, host):
		return allow("origin")
	case referer != "" && (containsHost(referer, host) || isLocal(referer)):
		return allow("referer")
	case isLocalHost(host):
		return allow("local host")
	case origin == "" && referer == "":
		return Decision{Reason: ReasonDirectCall}
	default:
		return Decision{Reason: ReasonOriginMismatch}
	}
}

func (g *Guard) keyMatches(presented string) bool {
	if g.apiKey == "" || presented == "" {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(presented), []byte(g.apiKey)) == 1
}

func originMatches(origin, self, host string) bool {
	return origin == self || containsHost(origin, host) || isLocal(origin)
}

func containsHost(header, host string) bool {
	return host != "" && strings.Contains(header, host)
}

func isLocal(s string) bool {
	return strings.Contains(s, "localhost") || strings.Contains(s, "127.0.0.1")
}

// isLocalHost reports whether the request's own Host names the loopback
// machine, with or without a port.
func isLocalHost(host string) bool {
	name := host
	if h, _, err := net.SplitHostPort(host); err == nil {
		name = h
	}
	return name == "localhost" || name == "127.0.0.1"
}

// RequestScheme returns the scheme the client used, honouring a forwarding
// proxy's X-Forwarded-Proto.
func RequestScheme(r *http.Request) string {
	if xf := r.Header.Get("X-Forwarded-Proto"); xf != "" {
		return strings.ToLower(strings.TrimSpace(strings.Split(xf, ",")[0]))
	}
	if r.TLS != nil {
		return "https"
	}
	return "http"
}

func allow(reason string) Decision {
	return Decision{Allowed: true, Reason: reason}
}
