package dashboard

import (
	"crypto/sha256"
	"crypto/subtle"
	"net"
	"net/http"
	"strings"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"github.com/lueurxax/auto-news-dashboard/internal/core/errors"
)

const rateLimitWindow = time.Minute

// Credentials is the single username/password pair accepted by the login gate.
type Credentials struct {
	Username string
	Password string
}

// Check compares the submitted pair in constant time.
func (c Credentials) Check(username, password string) error {
	userOK := constantTimeEqual(strings.TrimSpace(username), c.Username)
	passOK := constantTimeEqual(password, c.Password)

	if !userOK || !passOK {
		return errors.ErrInvalidCredentials
	}

	return nil
}

// constantTimeEqual hashes both sides first so that length differences do not leak.
func constantTimeEqual(a, b string) bool {
	ha := sha256.Sum256([]byte(a))
	hb := sha256.Sum256([]byte(b))

	return subtle.ConstantTimeCompare(ha[:], hb[:]) == 1
}

// loginLimiter throttles login attempts per client IP.
type loginLimiter struct {
	limiters map[string]*rate.Limiter
	mu       sync.Mutex
	every    rate.Limit
	burst    int
}

func newLoginLimiter(perMinute, burst int) *loginLimiter {
	return &loginLimiter{
		limiters: make(map[string]*rate.Limiter),
		every:    rate.Every(rateLimitWindow / time.Duration(perMinute)),
		burst:    burst,
	}
}

func (l *loginLimiter) allow(ip string) bool {
	l.mu.Lock()

	limiter, ok := l.limiters[ip]
	if !ok {
		limiter = rate.NewLimiter(l.every, l.burst)
		l.limiters[ip] = limiter
	}

	l.mu.Unlock()

	return limiter.Allow()
}

// prune forgets limiters whose bucket has refilled; they behave like new ones.
func (l *loginLimiter) prune() int {
	l.mu.Lock()
	defer l.mu.Unlock()

	removed := 0

	for ip, limiter := range l.limiters {
		if limiter.Tokens() >= float64(l.burst) {
			delete(l.limiters, ip)
			removed++
		}
	}

	return removed
}

func (l *loginLimiter) size() int {
	l.mu.Lock()
	defer l.mu.Unlock()

	return len(l.limiters)
}

// remoteIP returns the address the login limiter keys on. Proxy headers are
// honored only when trustProxy is set; otherwise the peer host without its port.
func remoteIP(r *http.Request, trustProxy bool) string {
	if trustProxy {
		if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
			first, _, _ := strings.Cut(xff, ",")
			if ip := strings.TrimSpace(first); ip != "" {
				return ip
			}
		}

		if xri := strings.TrimSpace(r.Header.Get("X-Real-IP")); xri != "" {
			return xri
		}
	}

	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}

	return host
}
