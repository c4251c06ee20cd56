package policy

import (
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

func TestAllowAIConcurrentCallsGrantExactlyOne(t *testing.T) {
	t.Parallel()

	engine, _ := newTestEngine(t)

	const callers = 16
	var granted atomic.Int32
	var wg sync.WaitGroup
	start := make(chan struct{})

	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			<-start
			if engine.AllowAI(7) {
				granted.Add(1)
			}
		}()
	}
	close(start)
	wg.Wait()

	if got := granted.Load(); got != 1 {
		t.Fatalf("expected exactly one grant inside the cooldown window, got %d", got)
	}
}

func TestAllowAIGrantsAfterCooldownElapsed(t *testing.T) {
	t.Parallel()

	gate := newCooldownGate(AICooldown)
	now := time.Now()
	gate.now = func() time.Time { return now }

	if !gate.tryAcquire(7) {
		t.Fatalf("first acquire should succeed")
	}
	if gate.tryAcquire(7) {
		t.Fatalf("second acquire inside the window should fail")
	}

	now = now.Add(AICooldown)
	if !gate.tryAcquire(7) {
		t.Fatalf("acquire after the cooldown should succeed")
	}
}

func TestAllowAIIsPerUser(t *testing.T) {
	t.Parallel()

	gate := newCooldownGate(AICooldown)
	if !gate.tryAcquire(7) {
		t.Fatalf("user 7 first acquire should succeed")
	}
	if !gate.tryAcquire(8) {
		t.Fatalf("user 8 is independent of user 7's cooldown")
	}
}
