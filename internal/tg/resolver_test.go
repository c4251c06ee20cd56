package tg

import (
	"context"
	"testing"

	api "github.com/OvyFlash/telegram-bot-api"
)

type fakeResolver struct {
	byHandle map[string]*api.User
	byID     map[int64]*api.User
}

func (f *fakeResolver) ResolveHandle(ctx context.Context, chatID int64, handle string) (*api.User, error) {
	if user, ok := f.byHandle[handle]; ok {
		return user, nil
	}
	return nil, ErrNoHandleLookup
}

func (f *fakeResolver) ResolveID(ctx context.Context, chatID, userID int64) (*api.User, error) {
	if user, ok := f.byID[userID]; ok {
		return user, nil
	}
	return nil, ErrNoHandleLookup
}

func commandMessage(args string) *api.Message {
	return &api.Message{
		Text:     "/warn " + args,
		Entities: []api.MessageEntity{{Type: "bot_command", Offset: 0, Length: 5}},
	}
}

func TestResolveTargetPrefersReplyAuthor(t *testing.T) {
	t.Parallel()

	author := &api.User{ID: 7, FirstName: "Ann"}
	msg := commandMessage("123")
	msg.ReplyToMessage = &api.Message{From: author}

	resolver := &fakeResolver{byID: map[int64]*api.User{123: {ID: 123}}}
	got := ResolveTarget(context.Background(), resolver, 100, msg)
	if got != author {
		t.Fatalf("expected reply author, got %+v", got)
	}
}

func TestResolveTargetHandleArgument(t *testing.T) {
	t.Parallel()

	want := &api.User{ID: 9, UserName: "ann42"}
	resolver := &fakeResolver{byHandle: map[string]*api.User{"ann42": want}}

	got := ResolveTarget(context.Background(), resolver, 100, commandMessage("@ann42"))
	if got != want {
		t.Fatalf("expected handle resolution, got %+v", got)
	}
}

func TestResolveTargetNumericFallback(t *testing.T) {
	t.Parallel()

	want := &api.User{ID: 123}
	resolver := &fakeResolver{byID: map[int64]*api.User{123: want}}

	got := ResolveTarget(context.Background(), resolver, 100, commandMessage("123"))
	if got != want {
		t.Fatalf("expected id resolution, got %+v", got)
	}
}

func TestResolveTargetFailuresFallThroughToNil(t *testing.T) {
	t.Parallel()

	resolver := &fakeResolver{}

	if got := ResolveTarget(context.Background(), resolver, 100, commandMessage("@nobody")); got != nil {
		t.Fatalf("unresolvable handle should yield nil, got %+v", got)
	}
	if got := ResolveTarget(context.Background(), resolver, 100, commandMessage("999")); got != nil {
		t.Fatalf("unknown id should yield nil, got %+v", got)
	}
	if got := ResolveTarget(context.Background(), resolver, 100, commandMessage("")); got != nil {
		t.Fatalf("no argument should yield nil, got %+v", got)
	}
	if got := ResolveTarget(context.Background(), resolver, 100, nil); got != nil {
		t.Fatalf("nil message should yield nil, got %+v", got)
	}
}

func TestGetUN(t *testing.T) {
	t.Parallel()

	if got := GetUN(&api.User{UserName: "ann42"}); got != "ann42" {
		t.Fatalf("expected username, got %s", got)
	}
	if got := GetUN(&api.User{FirstName: "Ann", LastName: "B"}); got != "Ann B" {
		t.Fatalf("expected full name fallback, got %s", got)
	}
	if got := GetUN(nil); got != "" {
		t.Fatalf("expected empty for nil user, got %s", got)
	}
}

func TestMentionHTMLEscapesName(t *testing.T) {
	t.Parallel()

	got := MentionHTML(&api.User{ID: 42, FirstName: "<Ann>"})
	want := `<a href="tg://user?id=42">&lt;Ann&gt;</a>`
	if got != want {
		t.Fatalf("unexpected mention:\ngot  %s\nwant %s", got, want)
	}
}
