package policy

import "github.com/dresos/guardian/internal/store"

// AddWarn increments the warn count for (chat, user) and returns the new
// value. Escalation is the caller's job: a result >= WarnThreshold means the
// subject should be muted for MuteDuration and the ledger reset.
func (e *Engine) AddWarn(chatID, userID int64) int {
	e.mu.Lock()
	defer e.mu.Unlock()
	key := store.WarnKey(chatID, userID)
	e.doc.Warns[key]++
	count := e.doc.Warns[key]
	e.persist()
	return count
}

// RemoveWarn decrements the count; a result of zero or less deletes the entry
// entirely. Removing from an absent entry is a no-op.
func (e *Engine) RemoveWarn(chatID, userID int64) {
	e.mu.Lock()
	defer e.mu.Unlock()
	key := store.WarnKey(chatID, userID)
	count, ok := e.doc.Warns[key]
	if !ok {
		return
	}
	count--
	if count <= 0 {
		delete(e.doc.Warns, key)
	} else {
		e.doc.Warns[key] = count
	}
	e.persist()
}

// WarnCount returns 0 for absent entries.
func (e *Engine) WarnCount(chatID, userID int64) int {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.doc.Warns[store.WarnKey(chatID, userID)]
}

// ResetWarns clears the ledger entry back to absent, used after escalation.
func (e *Engine) ResetWarns(chatID, userID int64) {
	e.mu.Lock()
	defer e.mu.Unlock()
	delete(e.doc.Warns, store.WarnKey(chatID, userID))
	e.persist()
}
