package policy

import "testing"

func TestBannedWordSubstringMatching(t *testing.T) {
	t.Parallel()

	engine, _ := newTestEngine(t)
	if !engine.AddBannedWord(100, "BadWord") {
		t.Fatalf("first add should change the set")
	}
	if engine.AddBannedWord(100, "badword") {
		t.Fatalf("duplicate (case-insensitive) should not be re-added")
	}

	if !engine.HasBannedWord(100, "this contains BadWord here") {
		t.Fatalf("expected case-insensitive substring match")
	}
	if !engine.HasBannedWord(100, "xxBADWORDxx") {
		t.Fatalf("containment should match inside other tokens")
	}
	if engine.HasBannedWord(200, "this contains BadWord here") {
		t.Fatalf("words are scoped per chat")
	}

	if !engine.RemoveBannedWord(100, "badword") {
		t.Fatalf("remove should report a change")
	}
	if engine.HasBannedWord(100, "this contains BadWord here") {
		t.Fatalf("removed word should no longer match")
	}
	if engine.RemoveBannedWord(100, "badword") {
		t.Fatalf("second remove should report no change")
	}
}

func TestBannedWordScenario(t *testing.T) {
	t.Parallel()

	engine, _ := newTestEngine(t)
	engine.AddBannedWord(100, "spam")

	if !engine.HasBannedWord(100, "no spam here") {
		t.Fatalf("expected match for 'no spam here'")
	}
	if engine.HasBannedWord(100, "clean text") {
		t.Fatalf("expected no match for 'clean text'")
	}
}
