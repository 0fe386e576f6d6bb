package middleware

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Sarahknupp/controlai-gerenciador-sub000/internal/apierror"
)

// AttemptStore counts requests per key within a sliding window. The memory
// store below is the default; tests inject their own to control the clock,
// and a Redis-backed store can replace it when running more than one node.
type AttemptStore interface {
	// Incr increments the key's counter and returns the new count along
	// with the window expiry. A fresh window starts when the old one ended.
	Incr(key string, window time.Duration) (count int, windowEnd time.Time)
	// PurgeExpired drops entries whose window ended before now.
	PurgeExpired(now time.Time)
}

type memoryEntry struct {
	count     int
	windowEnd time.Time
}

// MemoryStore is an in-process AttemptStore.
type MemoryStore struct {
	mu      sync.Mutex
	entries map[string]*memoryEntry
	now     func() time.Time
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{entries: make(map[string]*memoryEntry), now: time.Now}
}

func (s *MemoryStore) Incr(key string, window time.Duration) (int, time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	entry, ok := s.entries[key]
	if !ok || now.After(entry.windowEnd) {
		entry = &memoryEntry{windowEnd: now.Add(window)}
		s.entries[key] = entry
	}
	entry.count++
	return entry.count, entry.windowEnd
}

func (s *MemoryStore) PurgeExpired(now time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for key, entry := range s.entries {
		if now.After(entry.windowEnd) {
			delete(s.entries, key)
		}
	}
}

// StartPurge removes expired entries periodically so IPs that never return
// do not accumulate. Respects ctx via the ticker goroutine's lifetime.
func (s *MemoryStore) StartPurge(interval time.Duration, stop <-chan struct{}) {
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-stop:
				return
			case <-ticker.C:
				s.PurgeExpired(time.Now())
			}
		}
	}()
}

// RateLimiter returns a sliding-window limiter keyed by client IP.
// Login routes use a tight limit (20/min); the general API a loose one.
func RateLimiter(store AttemptStore, limit int, window time.Duration, message string) gin.HandlerFunc {
	return func(c *gin.Context) {
		count, windowEnd := store.Incr(c.ClientIP(), window)
		if count > limit {
			c.Header("Retry-After", windowEnd.Format(time.RFC1123))
			c.AbortWithStatusJSON(http.StatusTooManyRequests, apierror.New(message))
			return
		}
		c.Next()
	}
}

// LoginRateLimiter limits login attempts to 20 per minute per IP.
func LoginRateLimiter(store AttemptStore) gin.HandlerFunc {
	return RateLimiter(store, 20, time.Minute, "Muitas tentativas de login. Tente novamente em 1 minuto.")
}
