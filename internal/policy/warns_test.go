package policy

import (
	"path/filepath"
	"testing"

	"github.com/dresos/guardian/internal/store"
)

func newTestEngine(t *testing.T) (*Engine, *store.Snapshot) {
	t.Helper()
	snap := store.NewSnapshot(filepath.Join(t.TempDir(), "store.json"))
	return NewEngine(snap), snap
}

func TestAddWarnSequenceReachesThreshold(t *testing.T) {
	t.Parallel()

	engine, _ := newTestEngine(t)
	for want := 1; want <= WarnThreshold; want++ {
		if got := engine.AddWarn(100, 7); got != want {
			t.Fatalf("warn %d: got count %d", want, got)
		}
	}

	// the caller escalates and resets after the third warn
	engine.ResetWarns(100, 7)
	if got := engine.WarnCount(100, 7); got != 0 {
		t.Fatalf("expected count reset to 0, got %d", got)
	}
}

func TestRemoveWarnReturnsToPriorValue(t *testing.T) {
	t.Parallel()

	engine, _ := newTestEngine(t)
	engine.AddWarn(100, 7)
	engine.AddWarn(100, 7)
	engine.RemoveWarn(100, 7)
	if got := engine.WarnCount(100, 7); got != 1 {
		t.Fatalf("expected 1 after add-add-remove, got %d", got)
	}
}

func TestRemoveWarnDeletesZeroEntries(t *testing.T) {
	t.Parallel()

	engine, snap := newTestEngine(t)
	engine.AddWarn(100, 7)
	engine.RemoveWarn(100, 7)

	if got := engine.WarnCount(100, 7); got != 0 {
		t.Fatalf("expected 0, got %d", got)
	}
	if _, ok := snap.Load().Warns[store.WarnKey(100, 7)]; ok {
		t.Fatalf("expected entry deleted from snapshot, not stored as 0")
	}
}

func TestRemoveWarnOnAbsentEntryIsNoop(t *testing.T) {
	t.Parallel()

	engine, _ := newTestEngine(t)
	engine.RemoveWarn(100, 7)
	if got := engine.WarnCount(100, 7); got != 0 {
		t.Fatalf("expected 0, got %d", got)
	}
}

func TestWarnsAreScopedPerChatAndUser(t *testing.T) {
	t.Parallel()

	engine, _ := newTestEngine(t)
	engine.AddWarn(100, 7)
	engine.AddWarn(200, 7)
	engine.AddWarn(100, 8)

	if got := engine.WarnCount(100, 7); got != 1 {
		t.Fatalf("chat 100 user 7: got %d", got)
	}
	if got := engine.WarnCount(200, 7); got != 1 {
		t.Fatalf("chat 200 user 7: got %d", got)
	}
	if got := engine.WarnCount(200, 8); got != 0 {
		t.Fatalf("chat 200 user 8: got %d", got)
	}
}

func TestWarnsPersistAcrossReload(t *testing.T) {
	t.Parallel()

	engine, snap := newTestEngine(t)
	engine.AddWarn(100, 7)
	engine.AddWarn(100, 7)

	reloaded := NewEngine(snap)
	if got := reloaded.WarnCount(100, 7); got != 2 {
		t.Fatalf("expected 2 after reload, got %d", got)
	}
}
