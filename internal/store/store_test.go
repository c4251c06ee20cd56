package store

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadMissingSnapshotYieldsDefaults(t *testing.T) {
	t.Parallel()

	snap := NewSnapshot(filepath.Join(t.TempDir(), "store.json"))
	doc := snap.Load()

	if doc.Welcomes == nil || doc.Blacklist == nil || doc.BannedWords == nil || doc.Warns == nil {
		t.Fatalf("expected all fields initialized, got %+v", doc)
	}
	if len(doc.Warns) != 0 || len(doc.Blacklist) != 0 {
		t.Fatalf("expected empty defaults, got %+v", doc)
	}
}

func TestLoadCorruptSnapshotYieldsDefaults(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "store.json")
	if err := os.WriteFile(path, []byte("{not json"), 0o644); err != nil {
		t.Fatalf("write corrupt snapshot: %v", err)
	}

	doc := NewSnapshot(path).Load()
	if doc.Welcomes == nil || len(doc.Warns) != 0 {
		t.Fatalf("expected pure defaults after corruption, got %+v", doc)
	}
}

func TestLoadToleratesMissingFields(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "store.json")
	if err := os.WriteFile(path, []byte(`{"blacklist":[42]}`), 0o644); err != nil {
		t.Fatalf("write snapshot: %v", err)
	}

	doc := NewSnapshot(path).Load()
	if len(doc.Blacklist) != 1 || doc.Blacklist[0] != 42 {
		t.Fatalf("expected blacklist [42], got %v", doc.Blacklist)
	}
	if doc.Welcomes == nil || doc.BannedWords == nil || doc.Warns == nil {
		t.Fatalf("expected absent fields defaulted, got %+v", doc)
	}
}

func TestSaveLoadRoundtrip(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "store.json")
	snap := NewSnapshot(path)

	doc := NewDocument()
	doc.Blacklist = []int64{7, 9}
	doc.Warns[WarnKey(100, 7)] = 2
	doc.BannedWords[ChatKey(100)] = []string{"spam"}
	doc.Welcomes[ChatKey(5)] = &WelcomeConfig{Text: "hi {first}", Link: "https://t.me/x", Media: "file-id", Kind: MediaPhoto}

	if err := snap.Save(doc); err != nil {
		t.Fatalf("save: %v", err)
	}

	loaded := snap.Load()
	if loaded.Warns[WarnKey(100, 7)] != 2 {
		t.Fatalf("expected warn count 2, got %d", loaded.Warns[WarnKey(100, 7)])
	}
	if len(loaded.Blacklist) != 2 {
		t.Fatalf("expected 2 blacklisted users, got %v", loaded.Blacklist)
	}
	cfg := loaded.Welcomes[ChatKey(5)]
	if cfg == nil || cfg.Text != "hi {first}" || cfg.Kind != MediaPhoto {
		t.Fatalf("unexpected welcome config: %+v", cfg)
	}
	if got := loaded.BannedWords[ChatKey(100)]; len(got) != 1 || got[0] != "spam" {
		t.Fatalf("unexpected banned words: %v", got)
	}
}

func TestWarnKeyFormat(t *testing.T) {
	t.Parallel()

	if got := WarnKey(-100123, 42); got != "-100123:42" {
		t.Fatalf("unexpected warn key: %s", got)
	}
	if got := ChatKey(-100123); got != "-100123" {
		t.Fatalf("unexpected chat key: %s", got)
	}
}
