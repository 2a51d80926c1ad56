package services

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// RateLimiter bounds each sender to limit sends per rolling window. It keeps
// the send timestamps still inside the trailing window per sender, prunes on
// every attempt and admits while the remainder is below the limit. State is
// process-local.
type RateLimiter struct {
	mu     sync.Mutex
	limit  int
	window time.Duration
	sends  map[uuid.UUID][]time.Time
	now    func() time.Time
	stop   chan struct{}
	once   sync.Once
}

func NewRateLimiter(limit int, window time.Duration) *RateLimiter {
	rl := &RateLimiter{
		limit:  limit,
		window: window,
		sends:  make(map[uuid.UUID][]time.Time),
		now:    time.Now,
		stop:   make(chan struct{}),
	}
	go rl.janitor()
	return rl
}

// Allow reports whether the sender may send now, recording the attempt when
// admitted.
func (rl *RateLimiter) Allow(senderID uuid.UUID) bool {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := rl.now()
	cutoff := now.Add(-rl.window)

	recent := rl.sends[senderID][:0]
	for _, ts := range rl.sends[senderID] {
		if ts.After(cutoff) {
			recent = append(recent, ts)
		}
	}

	if len(recent) >= rl.limit {
		rl.sends[senderID] = recent
		return false
	}

	rl.sends[senderID] = append(recent, now)
	return true
}

// Stop tears down the janitor goroutine. Safe to call more than once.
func (rl *RateLimiter) Stop() {
	rl.once.Do(func() { close(rl.stop) })
}

// janitor drops senders that have been idle for a full window so the map does
// not grow with every user that ever sent a message.
func (rl *RateLimiter) janitor() {
	ticker := time.NewTicker(rl.window)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			rl.mu.Lock()
			cutoff := rl.now().Add(-rl.window)
			for sender, times := range rl.sends {
				if len(times) == 0 || !times[len(times)-1].After(cutoff) {
					delete(rl.sends, sender)
				}
			}
			rl.mu.Unlock()
		case <-rl.stop:
			return
		}
	}
}
