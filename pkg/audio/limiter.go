package audio

import (
	"sync"
	"time"

	"github.com/IndieDev99/battleforce/pkg/event"
)

// CueLimiter implements a token bucket per cue type so a burst of identical
// events (a rifle at full auto, a chain of detonations) cannot flood the mixer.
type CueLimiter struct {
	maxCues int
	window  time.Duration
	buckets map[event.Type]*bucket
	now     func() time.Time
	mu      sync.Mutex
}

// bucket tracks the tokens left for one cue type
type bucket struct {
	tokens     int
	lastRefill time.Time
}

// NewCueLimiter allows up to maxCues of each type per window
func NewCueLimiter(maxCues int, window time.Duration) *CueLimiter {
	return &CueLimiter{
		maxCues: maxCues,
		window:  window,
		buckets: make(map[event.Type]*bucket),
		now:     time.Now,
	}
}

// Allow reports whether a cue of the given type may play now
func (l *CueLimiter) Allow(kind event.Type) bool {
	if l.maxCues <= 0 {
		return true
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	b, exists := l.buckets[kind]
	if !exists {
		b = &bucket{tokens: l.maxCues, lastRefill: now}
		l.buckets[kind] = b
	}

	// Refill in proportion to the fraction of the window that has passed
	elapsed := now.Sub(b.lastRefill)
	if elapsed > 0 && b.tokens < l.maxCues {
		refill := int(float64(l.maxCues) * float64(elapsed) / float64(l.window))
		if refill > 0 {
			b.tokens = min(b.tokens+refill, l.maxCues)
			b.lastRefill = now
		}
	}

	if b.tokens > 0 {
		b.tokens--
		return true
	}
	return false
}
