package search

import (
	"context"
	"strings"
	"testing"
)

func TestSearchBlocksIPQueries(t *testing.T) {
	t.Parallel()

	client := NewClient()
	for _, query := range []string{"what is my ip", "show ip", "my IP address", "ip"} {
		if got := client.Search(context.Background(), query); got != ipBlockedMessage {
			t.Fatalf("query %q should be blocked, got %q", query, got)
		}
	}
}

func TestFormatAnswerPrefersInstantAnswer(t *testing.T) {
	t.Parallel()

	got := formatAnswer(instantAnswer{Answer: "42", AbstractText: "ignored"})
	if got != "<b>Answer:</b>\n42" {
		t.Fatalf("unexpected answer formatting: %q", got)
	}
}

func TestFormatAnswerAbstractWithSource(t *testing.T) {
	t.Parallel()

	got := formatAnswer(instantAnswer{AbstractText: "Quantum physics.", AbstractURL: "https://example.com"})
	if !strings.HasPrefix(got, "Quantum physics.") || !strings.Contains(got, "https://example.com") {
		t.Fatalf("unexpected abstract formatting: %q", got)
	}

	plain := formatAnswer(instantAnswer{AbstractText: "Quantum physics."})
	if plain != "Quantum physics." {
		t.Fatalf("abstract without url should be bare, got %q", plain)
	}
}

func TestFormatAnswerRelatedTopics(t *testing.T) {
	t.Parallel()

	answer := instantAnswer{
		RelatedTopics: []relatedTopic{
			{Text: "a <tag>", FirstURL: "https://a"},
			{Text: "skipped, no url"},
			{Text: "b", FirstURL: "https://b"},
			{Text: "c", FirstURL: "https://c"},
			{Text: "d", FirstURL: "https://d"},
			{Text: "e", FirstURL: "https://e"},
			{Text: "f", FirstURL: "https://f"},
		},
	}
	got := formatAnswer(answer)
	if strings.Contains(got, "<tag>") {
		t.Fatalf("topic text must be escaped: %q", got)
	}
	// first five considered, one of them incomplete: four bullets
	if strings.Count(got, "• ") != 4 {
		t.Fatalf("expected 4 topics, got %q", got)
	}
	if strings.Contains(got, "https://e") || strings.Contains(got, "https://f") {
		t.Fatalf("topics beyond the first %d should never backfill: %q", maxRelatedTopics, got)
	}
}

func TestFormatAnswerEmpty(t *testing.T) {
	t.Parallel()

	if got := formatAnswer(instantAnswer{}); got != noResultsMessage {
		t.Fatalf("expected %q, got %q", noResultsMessage, got)
	}
}
