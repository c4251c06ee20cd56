// Package policy is the moderation state engine: warn ledger, global
// blacklist, banned-word filter, welcome rendering and the AI request gate.
// It owns the persisted Document and is the only writer to it.
package policy

import (
	"sync"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/dresos/guardian/internal/store"
)

const (
	// WarnThreshold is the count at which a warn escalates to a mute.
	WarnThreshold = 3
	// MuteDuration is how long an escalated user stays muted.
	MuteDuration = time.Hour
	// AICooldown is the minimum interval between a user's AI requests.
	AICooldown = 1500 * time.Millisecond
)

// Engine mediates all access to the Document. A single write lock around
// mutate+save keeps concurrent commands from losing updates; reads go through
// the same RW mutex, except blacklist membership which has its own fast path.
type Engine struct {
	mu   sync.RWMutex
	doc  *store.Document
	snap *store.Snapshot

	blmu      sync.RWMutex
	blacklist map[int64]struct{}

	gate *cooldownGate

	logger *log.Entry
}

func NewEngine(snap *store.Snapshot) *Engine {
	doc := snap.Load()
	blacklist := make(map[int64]struct{}, len(doc.Blacklist))
	for _, id := range doc.Blacklist {
		blacklist[id] = struct{}{}
	}
	return &Engine{
		doc:       doc,
		snap:      snap,
		blacklist: blacklist,
		gate:      newCooldownGate(AICooldown),
		logger:    log.WithField("context", "policy"),
	}
}

// persist flushes the Document. Must be called with mu held for writing.
// A failed save is logged and swallowed: in-memory state stays authoritative.
func (e *Engine) persist() {
	if err := e.snap.Save(e.doc); err != nil {
		e.logger.WithError(err).Error("cant save snapshot")
	}
}

// Flush writes the current Document out once more, for shutdown.
func (e *Engine) Flush() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.persist()
}
