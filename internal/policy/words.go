package policy

import (
	"slices"
	"strings"

	"github.com/dresos/guardian/internal/store"
)

// AddBannedWord stores a lowercased word for the chat. Duplicate words are
// not re-added; returns whether the set changed.
func (e *Engine) AddBannedWord(chatID int64, word string) bool {
	word = strings.ToLower(strings.TrimSpace(word))
	if word == "" {
		return false
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	key := store.ChatKey(chatID)
	if slices.Contains(e.doc.BannedWords[key], word) {
		return false
	}
	e.doc.BannedWords[key] = append(e.doc.BannedWords[key], word)
	e.persist()
	return true
}

// RemoveBannedWord returns false when the word was not stored for the chat.
func (e *Engine) RemoveBannedWord(chatID int64, word string) bool {
	word = strings.ToLower(strings.TrimSpace(word))
	e.mu.Lock()
	defer e.mu.Unlock()
	key := store.ChatKey(chatID)
	i := slices.Index(e.doc.BannedWords[key], word)
	if i < 0 {
		return false
	}
	e.doc.BannedWords[key] = slices.Delete(e.doc.BannedWords[key], i, i+1)
	e.persist()
	return true
}

// HasBannedWord reports whether any stored word occurs anywhere within the
// text, case-insensitively. Substring containment, not token matching. A hit
// is a signal for the caller to delete the message; the engine deletes
// nothing itself.
func (e *Engine) HasBannedWord(chatID int64, text string) bool {
	e.mu.RLock()
	defer e.mu.RUnlock()
	lowered := strings.ToLower(text)
	for _, word := range e.doc.BannedWords[store.ChatKey(chatID)] {
		if strings.Contains(lowered, word) {
			return true
		}
	}
	return false
}
