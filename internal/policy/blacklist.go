package policy

import "slices"

// Blacklist adds a user to the global blacklist. Returns false if the user
// was already listed. The in-memory set is the read fast path; the Document
// field is its durable mirror, rewritten wholesale. Set mutation, mirror
// update and persist form one critical section under the engine lock, so a
// concurrent writer cannot overwrite the mirror with a stale snapshot; blmu
// is nested inside solely to fence the fast-path readers.
func (e *Engine) Blacklist(userID int64) bool {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.blmu.Lock()
	if _, ok := e.blacklist[userID]; ok {
		e.blmu.Unlock()
		return false
	}
	e.blacklist[userID] = struct{}{}
	ids := e.blacklistedLocked()
	e.blmu.Unlock()

	e.doc.Blacklist = ids
	e.persist()
	return true
}

// Unblacklist removes a user. Returns false if the user was not listed.
func (e *Engine) Unblacklist(userID int64) bool {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.blmu.Lock()
	if _, ok := e.blacklist[userID]; !ok {
		e.blmu.Unlock()
		return false
	}
	delete(e.blacklist, userID)
	ids := e.blacklistedLocked()
	e.blmu.Unlock()

	e.doc.Blacklist = ids
	e.persist()
	return true
}

// IsBlacklisted is the global cross-chat gate, checked before any AI-facing
// or welcome-rendering operation.
func (e *Engine) IsBlacklisted(userID int64) bool {
	e.blmu.RLock()
	defer e.blmu.RUnlock()
	_, ok := e.blacklist[userID]
	return ok
}

// Blacklisted returns the listed user ids in ascending order.
func (e *Engine) Blacklisted() []int64 {
	e.blmu.RLock()
	defer e.blmu.RUnlock()
	return e.blacklistedLocked()
}

func (e *Engine) blacklistedLocked() []int64 {
	ids := make([]int64, 0, len(e.blacklist))
	for id := range e.blacklist {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	return ids
}
