package http

import (
	"sync"
	"time"
)

const (
	// Input edits fire a POST per keystroke-debounce, so the budget is
	// well above what a single user can produce by hand.
	rateLimitMaxRequests    = 120
	rateLimitWindow         = time.Minute
	rateLimitCleanupPeriod  = 5 * time.Minute
	rateLimitEntryRetention = 10 * time.Minute
)

type clientBucket struct {
	count       int
	windowStart time.Time
	lastSeen    time.Time
}

// rateLimiter tracks request counts per client IP over a fixed window.
type rateLimiter struct {
	mu      sync.Mutex
	clients map[string]*clientBucket
	done    chan struct{}
}

func newRateLimiter() *rateLimiter {
	rl := &rateLimiter{
		clients: make(map[string]*clientBucket),
		done:    make(chan struct{}),
	}
	go rl.cleanupLoop()
	return rl
}

func (rl *rateLimiter) allow(clientIP string) bool {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := time.Now()
	b, ok := rl.clients[clientIP]
	if !ok || now.Sub(b.windowStart) >= rateLimitWindow {
		rl.clients[clientIP] = &clientBucket{count: 1, windowStart: now, lastSeen: now}
		return true
	}

	b.lastSeen = now
	if b.count >= rateLimitMaxRequests {
		return false
	}
	b.count++
	return true
}

// cleanupLoop evicts buckets for clients that have gone quiet.
func (rl *rateLimiter) cleanupLoop() {
	ticker := time.NewTicker(rateLimitCleanupPeriod)
	defer ticker.Stop()

	for {
		select {
		case <-rl.done:
			return
		case <-ticker.C:
			cutoff := time.Now().Add(-rateLimitEntryRetention)
			rl.mu.Lock()
			for ip, b := range rl.clients {
				if b.lastSeen.Before(cutoff) {
					delete(rl.clients, ip)
				}
			}
			rl.mu.Unlock()
		}
	}
}

func (rl *rateLimiter) stop() {
	close(rl.done)
}
