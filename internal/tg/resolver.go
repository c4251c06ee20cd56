package tg

import (
	"context"
	"fmt"
	"html"
	"strconv"
	"strings"

	api "github.com/OvyFlash/telegram-bot-api"
)

// MemberResolver is the transport lookup the target resolver depends on.
// Operations implements it; tests substitute fakes.
type MemberResolver interface {
	ResolveHandle(ctx context.Context, chatID int64, handle string) (*api.User, error)
	ResolveID(ctx context.Context, chatID, userID int64) (*api.User, error)
}

// ResolveTarget finds the user a command acts upon. Precedence: the replied-to
// message's author, then the first argument as a handle, then as a numeric id.
// Every lookup failure falls through; nil means no branch matched.
func ResolveTarget(ctx context.Context, r MemberResolver, chatID int64, msg *api.Message) *api.User {
	if msg == nil {
		return nil
	}
	if msg.ReplyToMessage != nil && msg.ReplyToMessage.From != nil {
		return msg.ReplyToMessage.From
	}
	args := strings.Fields(msg.CommandArguments())
	if len(args) == 0 {
		return nil
	}
	arg := args[0]
	if strings.HasPrefix(arg, "@") {
		if user, err := r.ResolveHandle(ctx, chatID, strings.TrimPrefix(arg, "@")); err == nil && user != nil {
			return user
		}
	}
	if id, err := strconv.ParseInt(arg, 10, 64); err == nil {
		if user, err := r.ResolveID(ctx, chatID, id); err == nil && user != nil {
			return user
		}
	}
	return nil
}

// GetUN returns the best short name for a user.
func GetUN(user *api.User) string {
	if user == nil {
		return ""
	}
	userName := user.UserName
	if len(userName) == 0 {
		userName = strings.TrimSpace(user.FirstName + " " + user.LastName)
	}
	return userName
}

// MentionHTML renders an HTML mention link for a user.
func MentionHTML(user *api.User) string {
	if user == nil {
		return ""
	}
	name := user.FirstName
	if name == "" {
		name = GetUN(user)
	}
	return fmt.Sprintf(`<a href="tg://user?id=%d">%s</a>`, user.ID, html.EscapeString(name))
}
