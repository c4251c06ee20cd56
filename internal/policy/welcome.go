package policy

import (
	"fmt"
	"html"
	"strconv"
	"strings"

	"github.com/dresos/guardian/internal/store"
)

// Member is the subset of a chat user the welcome renderer needs.
type Member struct {
	ID        int64
	FirstName string
	Username  string
}

// Rendered is a welcome message ready for the transport layer. Media and
// Link are optional; Kind is only meaningful when Media is set.
type Rendered struct {
	Text  string
	Media string
	Kind  store.MediaKind
	Link  string
}

func (e *Engine) SetWelcomeText(chatID int64, text string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.welcomeLocked(chatID).Text = text
	e.persist()
}

func (e *Engine) SetWelcomeMedia(chatID int64, fileID string, kind store.MediaKind) {
	e.mu.Lock()
	defer e.mu.Unlock()
	cfg := e.welcomeLocked(chatID)
	cfg.Media = fileID
	cfg.Kind = kind
	e.persist()
}

// SetWelcomeLink stores the "join channel" button target, prepending a secure
// scheme when the caller omitted one. Returns the link as stored.
func (e *Engine) SetWelcomeLink(chatID int64, link string) string {
	if !strings.HasPrefix(link, "http") {
		link = "https://" + link
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	e.welcomeLocked(chatID).Link = link
	e.persist()
	return link
}

func (e *Engine) ClearWelcome(chatID int64) {
	e.mu.Lock()
	defer e.mu.Unlock()
	delete(e.doc.Welcomes, store.ChatKey(chatID))
	e.persist()
}

// RenderWelcome substitutes the {first}, {mention}, {id} and {username}
// placeholders for one member. Returns nil when no template text is
// configured; media or link alone never produce output. Rendering mutates
// nothing, so simultaneous joiners each get an independent instance.
func (e *Engine) RenderWelcome(chatID int64, m Member) *Rendered {
	e.mu.RLock()
	defer e.mu.RUnlock()
	cfg := e.doc.Welcomes[store.ChatKey(chatID)]
	if cfg == nil || cfg.Text == "" {
		return nil
	}

	first := m.FirstName
	if first == "" {
		first = "User"
	}
	username := first
	if m.Username != "" {
		username = "@" + m.Username
	}
	mention := fmt.Sprintf(`<a href="tg://user?id=%d">%s</a>`, m.ID, html.EscapeString(first))

	text := strings.NewReplacer(
		"{first}", first,
		"{mention}", mention,
		"{id}", strconv.FormatInt(m.ID, 10),
		"{username}", username,
	).Replace(cfg.Text)

	return &Rendered{
		Text:  text,
		Media: cfg.Media,
		Kind:  cfg.Kind,
		Link:  cfg.Link,
	}
}

func (e *Engine) welcomeLocked(chatID int64) *store.WelcomeConfig {
	key := store.ChatKey(chatID)
	cfg := e.doc.Welcomes[key]
	if cfg == nil {
		cfg = &store.WelcomeConfig{}
		e.doc.Welcomes[key] = cfg
	}
	return cfg
}
