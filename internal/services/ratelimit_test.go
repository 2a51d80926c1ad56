package services

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

// testLimiter builds a limiter with a controllable clock and no janitor.
func testLimiter(limit int, window time.Duration, now *time.Time) *RateLimiter {
	return &RateLimiter{
		limit:  limit,
		window: window,
		sends:  make(map[uuid.UUID][]time.Time),
		now:    func() time.Time { return *now },
		stop:   make(chan struct{}),
	}
}

func TestRateLimiter_AllowsUpToLimit(t *testing.T) {
	now := time.Now()
	rl := testLimiter(3, time.Minute, &now)
	sender := uuid.New()

	for i := 0; i < 3; i++ {
		assert.True(t, rl.Allow(sender), "send %d should be admitted", i+1)
	}
	assert.False(t, rl.Allow(sender), "send over the limit should be refused")
}

func TestRateLimiter_WindowSlides(t *testing.T) {
	now := time.Now()
	rl := testLimiter(2, time.Minute, &now)
	sender := uuid.New()

	assert.True(t, rl.Allow(sender))

	now = now.Add(30 * time.Second)
	assert.True(t, rl.Allow(sender))
	assert.False(t, rl.Allow(sender))

	// The first send falls out of the trailing window; one slot frees up.
	now = now.Add(31 * time.Second)
	assert.True(t, rl.Allow(sender))
	assert.False(t, rl.Allow(sender))
}

func TestRateLimiter_SendersAreIndependent(t *testing.T) {
	now := time.Now()
	rl := testLimiter(1, time.Minute, &now)
	alice := uuid.New()
	bob := uuid.New()

	assert.True(t, rl.Allow(alice))
	assert.False(t, rl.Allow(alice))
	assert.True(t, rl.Allow(bob))
}

func TestRateLimiter_RefusedAttemptDoesNotCount(t *testing.T) {
	now := time.Now()
	rl := testLimiter(1, time.Minute, &now)
	sender := uuid.New()

	assert.True(t, rl.Allow(sender))
	for i := 0; i < 5; i++ {
		assert.False(t, rl.Allow(sender))
	}

	// Refusals must not extend the lockout past the original send's window.
	now = now.Add(61 * time.Second)
	assert.True(t, rl.Allow(sender))
}

func TestRateLimiter_StopIsIdempotent(t *testing.T) {
	rl := NewRateLimiter(1, time.Minute)
	rl.Stop()
	rl.Stop()
}
