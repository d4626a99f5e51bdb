package ratelimit

import (
	"net"
	"net/http"
	"strings"
)

// Anonymous is the identity used when no address can be derived from a request.
const Anonymous = "anonymous"

// ClientID derives the rate limit identity from the request's network address.
// When trustProxy is set, the first X-Forwarded-For entry takes precedence.
func ClientID(r *http.Request, trustProxy bool) string {
	if trustProxy {
		if fwd := r.Header.Get("X-Forwarded-For"); fwd != "" {
			first, _, _ := strings.Cut(fwd, ",")
			if ip := strings.TrimSpace(first); ip != "" {
				return ip
			}
		}
	}

	if r.RemoteAddr == "" {
		return Anonymous
	}

	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	if host == "" {
		return Anonymous
	}
	return host
}

// Guard wraps HTTP handlers so the limiter is consulted before they run.
type Guard struct {
	limiter    Limiter
	trustProxy bool
	onReject   func(w http.ResponseWriter, r *http.Request, clientID string)
	onError    func(w http.ResponseWriter, r *http.Request, err error)
}

// NewGuard creates a Guard. onReject writes the response for a client over
// quota; onError writes the response when the limiter itself fails.
func NewGuard(
	limiter Limiter,
	trustProxy bool,
	onReject func(w http.ResponseWriter, r *http.Request, clientID string),
	onError func(w http.ResponseWriter, r *http.Request, err error),
) *Guard {
	return &Guard{
		limiter:    limiter,
		trustProxy: trustProxy,
		onReject:   onReject,
		onError:    onError,
	}
}

// Wrap returns next guarded by the limiter.
func (g *Guard) Wrap(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := ClientID(r, g.trustProxy)

		allowed, err := g.limiter.CheckAndConsume(r.Context(), id)
		if err != nil {
			g.onError(w, r, err)
			return
		}
		if !allowed {
			g.onReject(w, r, id)
			return
		}

		next(w, r)
	}
}
