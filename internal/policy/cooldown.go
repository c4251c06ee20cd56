package policy

import (
	"sync"
	"time"
)

// cooldownGate rate-limits AI requests per user. State is process-lifetime
// only and never persisted. Each user has their own lock so the
// check-and-stamp is atomic without serializing unrelated users; the outer
// mutex only guards slot creation.
type cooldownGate struct {
	cooldown time.Duration
	now      func() time.Time

	mu    sync.Mutex
	users map[int64]*userSlot
}

type userSlot struct {
	mu   sync.Mutex
	last time.Time
}

func newCooldownGate(cooldown time.Duration) *cooldownGate {
	return &cooldownGate{
		cooldown: cooldown,
		now:      time.Now,
		users:    make(map[int64]*userSlot),
	}
}

func (g *cooldownGate) tryAcquire(userID int64) bool {
	g.mu.Lock()
	slot := g.users[userID]
	if slot == nil {
		slot = &userSlot{}
		g.users[userID] = slot
	}
	g.mu.Unlock()

	slot.mu.Lock()
	defer slot.mu.Unlock()
	now := g.now()
	if !slot.last.IsZero() && now.Sub(slot.last) < g.cooldown {
		return false
	}
	slot.last = now
	return true
}

// AllowAI grants an AI request when at least AICooldown has elapsed since the
// user's last granted one. Exactly one of two concurrent calls inside the
// window succeeds. Denial carries no message by policy; the blacklist is a
// separate gate callers check first. The caller must not hold any engine
// lock across the AI call itself.
func (e *Engine) AllowAI(userID int64) bool {
	return e.gate.tryAcquire(userID)
}
