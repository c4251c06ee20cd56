// Package tg wraps the Telegram Bot API calls the bot performs on members
// and messages. Every operation returns an explicit error; whether to log,
// retry or ignore is the caller's decision.
package tg

import (
	"context"
	"time"

	api "github.com/OvyFlash/telegram-bot-api"
	"github.com/pkg/errors"
)

// ErrNoHandleLookup is returned by ResolveHandle: the Bot API offers no
// member-by-handle lookup, so handle arguments always fall through to the
// next resolution branch.
var ErrNoHandleLookup = errors.New("bot api cant resolve members by handle")

type Operations struct {
	bot *api.BotAPI
}

func NewOperations(bot *api.BotAPI) *Operations {
	return &Operations{bot: bot}
}

// IsAdmin reports whether the user is the chat creator or an administrator
// with restriction rights. Lookup failures count as non-admin.
func (o *Operations) IsAdmin(ctx context.Context, chatID, userID int64) bool {
	member, err := o.bot.GetChatMember(api.GetChatMemberConfig{
		ChatConfigWithUser: api.ChatConfigWithUser{
			ChatConfig: api.ChatConfig{ChatID: chatID},
			UserID:     userID,
		},
	})
	if err != nil {
		return false
	}
	return member.IsCreator() || (member.IsAdministrator() && member.CanRestrictMembers)
}

// MuteUser revokes the user's right to send messages until the given time.
func (o *Operations) MuteUser(ctx context.Context, chatID, userID int64, until time.Time) error {
	if _, err := o.bot.Request(api.RestrictChatMemberConfig{
		ChatMemberConfig: api.ChatMemberConfig{
			ChatConfig: api.ChatConfig{ChatID: chatID},
			UserID:     userID,
		},
		UntilDate:   until.Unix(),
		Permissions: &api.ChatPermissions{},
	}); err != nil {
		return errors.WithMessage(err, "cant mute")
	}
	return nil
}

func (o *Operations) UnmuteUser(ctx context.Context, chatID, userID int64) error {
	if _, err := o.bot.Request(api.RestrictChatMemberConfig{
		ChatMemberConfig: api.ChatMemberConfig{
			ChatConfig: api.ChatConfig{ChatID: chatID},
			UserID:     userID,
		},
		Permissions: &api.ChatPermissions{
			CanSendMessages:       true,
			CanSendAudios:         true,
			CanSendDocuments:      true,
			CanSendPhotos:         true,
			CanSendVideos:         true,
			CanSendVideoNotes:     true,
			CanSendVoiceNotes:     true,
			CanSendPolls:          true,
			CanSendOtherMessages:  true,
			CanAddWebPagePreviews: true,
		},
	}); err != nil {
		return errors.WithMessage(err, "cant unmute")
	}
	return nil
}

func (o *Operations) BanUser(ctx context.Context, chatID, userID int64) error {
	if _, err := o.bot.Request(api.BanChatMemberConfig{
		ChatMemberConfig: api.ChatMemberConfig{
			ChatConfig: api.ChatConfig{ChatID: chatID},
			UserID:     userID,
		},
	}); err != nil {
		return errors.WithMessage(err, "cant ban")
	}
	return nil
}

func (o *Operations) UnbanUser(ctx context.Context, chatID, userID int64) error {
	if _, err := o.bot.Request(api.UnbanChatMemberConfig{
		ChatMemberConfig: api.ChatMemberConfig{
			ChatConfig: api.ChatConfig{ChatID: chatID},
			UserID:     userID,
		},
		OnlyIfBanned: false,
	}); err != nil {
		return errors.WithMessage(err, "cant unban")
	}
	return nil
}

// KickUser removes the user without a lasting ban.
func (o *Operations) KickUser(ctx context.Context, chatID, userID int64) error {
	if err := o.BanUser(ctx, chatID, userID); err != nil {
		return err
	}
	return o.UnbanUser(ctx, chatID, userID)
}

func (o *Operations) DeleteMessage(ctx context.Context, chatID int64, messageID int) error {
	if _, err := o.bot.Request(api.NewDeleteMessage(chatID, messageID)); err != nil {
		return errors.WithMessage(err, "cant delete message")
	}
	return nil
}

func (o *Operations) ResolveHandle(ctx context.Context, chatID int64, handle string) (*api.User, error) {
	return nil, ErrNoHandleLookup
}

func (o *Operations) ResolveID(ctx context.Context, chatID, userID int64) (*api.User, error) {
	member, err := o.bot.GetChatMember(api.GetChatMemberConfig{
		ChatConfigWithUser: api.ChatConfigWithUser{
			ChatConfig: api.ChatConfig{ChatID: chatID},
			UserID:     userID,
		},
	})
	if err != nil {
		return nil, errors.WithMessage(err, "cant get chat member")
	}
	return member.User, nil
}
