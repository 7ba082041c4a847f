package middleware

import (
	"net/http"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"github.com/minjoonc/portfolio-backend/pkg/clientip"
)

// SecurityHeaders sets security-related response headers.
func SecurityHeaders(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Content-Type-Options", "nosniff")
		w.Header().Set("X-Frame-Options", "DENY")
		w.Header().Set("X-XSS-Protection", "1; mode=block")
		w.Header().Set("Strict-Transport-Security", "max-age=31536000; includeSubDomains")
		next.ServeHTTP(w, r)
	})
}

// --- In-memory per-IP rate limiting (used when Redis is not configured) ---

type limiterEntry struct {
	limiter *rate.Limiter
	lastUse time.Time
}

// MemoryRateLimiter limits each IP with a token bucket held in process memory.
// Stale entries are evicted by a background sweep.
type MemoryRateLimiter struct {
	mu         sync.Mutex
	entries    map[string]*limiterEntry
	rps        rate.Limit
	burst      int
	cleanupRun bool
}

const (
	memoryCleanupInterval = 5 * time.Minute
	memoryLimiterTTL      = 30 * time.Minute
)

func NewMemoryRateLimiter(rps float64, burst int) *MemoryRateLimiter {
	return &MemoryRateLimiter{
		entries: make(map[string]*limiterEntry),
		rps:     rate.Limit(rps),
		burst:   burst,
	}
}

func (m *MemoryRateLimiter) limiterFor(ip string) *rate.Limiter {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.startCleanupOnce()
	e, ok := m.entries[ip]
	if !ok {
		e = &limiterEntry{
			limiter: rate.NewLimiter(m.rps, m.burst),
			lastUse: time.Now(),
		}
		m.entries[ip] = e
	}
	e.lastUse = time.Now()
	return e.limiter
}

func (m *MemoryRateLimiter) startCleanupOnce() {
	if m.cleanupRun {
		return
	}
	m.cleanupRun = true
	go func() {
		ticker := time.NewTicker(memoryCleanupInterval)
		defer ticker.Stop()
		for range ticker.C {
			m.mu.Lock()
			now := time.Now()
			for ip, e := range m.entries {
				if now.Sub(e.lastUse) > memoryLimiterTTL {
					delete(m.entries, ip)
				}
			}
			m.mu.Unlock()
		}
	}()
}

// Middleware returns 429 when the caller's bucket is empty.
func (m *MemoryRateLimiter) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ip := clientip.RealClientIP(r)
		if !m.limiterFor(ip).Allow() {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusTooManyRequests)
			w.Write([]byte(`{"success":false,"message":"Too many requests. Please slow down."}`))
			return
		}
		next.ServeHTTP(w, r)
	})
}
