// Package store persists the whole engine state as a single JSON document.
//
// The snapshot is the only durable artifact the bot produces. It has exactly
// four top-level fields and is rewritten wholesale on every mutation; readers
// outside this process must tolerate absent fields.
package store

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

// MediaKind tags the welcome media reference. The transport boundary matches
// on it exhaustively when choosing how to send.
type MediaKind string

const (
	MediaPhoto     MediaKind = "photo"
	MediaAnimation MediaKind = "animation"
	MediaVideo     MediaKind = "video"
)

type WelcomeConfig struct {
	Text  string    `json:"text,omitempty"`
	Media string    `json:"media,omitempty"`
	Kind  MediaKind `json:"type,omitempty"`
	Link  string    `json:"link,omitempty"`
}

// Document is the root aggregate. Map keys are decimal chat ids; warn keys
// are "chatID:userID". All four fields are non-nil after Load.
type Document struct {
	Welcomes    map[string]*WelcomeConfig `json:"welcomes"`
	Blacklist   []int64                   `json:"blacklist"`
	BannedWords map[string][]string       `json:"banned_words"`
	Warns       map[string]int            `json:"warns"`
}

func NewDocument() *Document {
	return &Document{
		Welcomes:    map[string]*WelcomeConfig{},
		Blacklist:   []int64{},
		BannedWords: map[string][]string{},
		Warns:       map[string]int{},
	}
}

func (d *Document) normalize() {
	if d.Welcomes == nil {
		d.Welcomes = map[string]*WelcomeConfig{}
	}
	if d.Blacklist == nil {
		d.Blacklist = []int64{}
	}
	if d.BannedWords == nil {
		d.BannedWords = map[string][]string{}
	}
	if d.Warns == nil {
		d.Warns = map[string]int{}
	}
}

func ChatKey(chatID int64) string {
	return strconv.FormatInt(chatID, 10)
}

func WarnKey(chatID, userID int64) string {
	return fmt.Sprintf("%d:%d", chatID, userID)
}

// Snapshot reads and writes the Document at a fixed path.
type Snapshot struct {
	path   string
	logger *log.Entry
}

func NewSnapshot(path string) *Snapshot {
	return &Snapshot{
		path:   path,
		logger: log.WithField("context", "store"),
	}
}

// Load returns the persisted Document, or pure defaults when the snapshot is
// missing or unreadable. Corruption is logged, never propagated: the bot
// starts fresh rather than refusing to start.
func (s *Snapshot) Load() *Document {
	doc := NewDocument()
	raw, err := os.ReadFile(s.path)
	if err != nil {
		if !os.IsNotExist(err) {
			s.logger.WithError(err).Error("cant read snapshot")
		}
		return doc
	}
	if err := json.Unmarshal(raw, doc); err != nil {
		s.logger.WithError(err).Error("corrupt snapshot, starting with defaults")
		return NewDocument()
	}
	doc.normalize()
	return doc
}

// Save rewrites the whole Document. Best effort: the caller logs failures and
// keeps the in-memory Document authoritative for the life of the process.
func (s *Snapshot) Save(doc *Document) error {
	raw, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return errors.Wrap(err, "marshal snapshot")
	}
	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, raw, 0o644); err != nil {
		return errors.Wrap(err, "write snapshot")
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return errors.Wrap(err, "replace snapshot")
	}
	return nil
}
