package httpx

import (
	"net"
	"net/http"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// RateLimitProfile describes a token-bucket limit.
type RateLimitProfile struct {
	Rate  rate.Limit
	Burst int
}

// Predefined profiles. Credential endpoints get the strict profile so a
// password-guessing loop exhausts its bucket quickly.
var (
	RateLimitStrict  = RateLimitProfile{Rate: rate.Every(time.Second), Burst: 10}
	RateLimitDefault = RateLimitProfile{Rate: rate.Every(100 * time.Millisecond), Burst: 50}
)

// RateLimit applies a per-client-IP token bucket. Stale client entries
// are evicted lazily on lookup.
func RateLimit(profile RateLimitProfile) Middleware {
	rl := &rateLimiter{
		profile: profile,
		clients: make(map[string]*clientLimiter),
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !rl.allow(clientIP(r)) {
				w.Header().Set("Retry-After", "1")
				WriteError(w, http.StatusTooManyRequests, "Too many requests")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

type rateLimiter struct {
	profile RateLimitProfile

	mu      sync.Mutex
	clients map[string]*clientLimiter
}

type clientLimiter struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

const clientIdleEviction = 10 * time.Minute

func (rl *rateLimiter) allow(ip string) bool {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := time.Now()
	cl, ok := rl.clients[ip]
	if !ok {
		cl = &clientLimiter{limiter: rate.NewLimiter(rl.profile.Rate, rl.profile.Burst)}
		rl.clients[ip] = cl
	}
	cl.lastSeen = now

	if len(rl.clients) > 1024 {
		for key, c := range rl.clients {
			if now.Sub(c.lastSeen) > clientIdleEviction {
				delete(rl.clients, key)
			}
		}
	}

	return cl.limiter.Allow()
}

func clientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
