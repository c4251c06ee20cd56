package handlers

import (
	"context"
	"fmt"
	"strings"
	"time"

	api "github.com/OvyFlash/telegram-bot-api"

	"github.com/dresos/guardian/internal/bot"
	"github.com/dresos/guardian/internal/observability"
	"github.com/dresos/guardian/internal/policy"
	"github.com/dresos/guardian/internal/tg"
)

// Moderation handles the admin command set: warns with escalation, kicks,
// bans, mutes and the per-chat banned-word list.
type Moderation struct {
	baseHandler
}

func NewModeration(s bot.Service) *Moderation {
	return &Moderation{baseHandler: newBaseHandler(s, "moderation")}
}

func (h *Moderation) Handle(ctx context.Context, u *api.Update, chat *api.Chat, user *api.User) (bool, error) {
	if u.Message == nil || chat == nil || user == nil || user.IsBot || !u.Message.IsCommand() {
		return true, nil
	}
	m := u.Message

	switch m.Command() {
	case "warn", "delwarn", "kick", "ban", "unban", "mute", "unmute", "addword", "removeword":
		// Non-admins are ignored silently by policy, not reported.
		if !h.s.GetOps().IsAdmin(ctx, chat.ID, user.ID) {
			return false, nil
		}
	case "warns":
	default:
		return true, nil
	}

	switch m.Command() {
	case "warn":
		h.warn(ctx, m, chat)
	case "delwarn":
		h.delwarn(ctx, m, chat)
	case "warns":
		h.warns(ctx, m, chat, user)
	case "kick":
		h.kick(ctx, m, chat)
	case "ban":
		h.ban(ctx, m, chat)
	case "unban":
		h.unban(ctx, m, chat)
	case "mute":
		h.mute(ctx, m, chat)
	case "unmute":
		h.unmute(ctx, m, chat)
	case "addword":
		h.addWord(m, chat)
	case "removeword":
		h.removeWord(m, chat)
	}
	return false, nil
}

func (h *Moderation) warn(ctx context.Context, m *api.Message, chat *api.Chat) {
	target := tg.ResolveTarget(ctx, h.s.GetOps(), chat.ID, m)
	if target == nil {
		h.reply(chat.ID, m, "Reply or mention user")
		return
	}
	engine := h.s.GetEngine()
	count := engine.AddWarn(chat.ID, target.ID)
	observability.RecordWarnIssued()
	h.replyHTML(chat.ID, m, fmt.Sprintf("Warned %s (%d/%d)", tg.MentionHTML(target), count, policy.WarnThreshold))

	if count < policy.WarnThreshold {
		return
	}
	until := time.Now().Add(policy.MuteDuration)
	if err := h.s.GetOps().MuteUser(ctx, chat.ID, target.ID, until); err != nil {
		h.logger.WithError(err).Error("cant mute user on escalation")
	}
	engine.ResetWarns(chat.ID, target.ID)
	observability.RecordEscalation()
	h.reply(chat.ID, m, fmt.Sprintf("%s auto-muted for 1 hour (%d warns)", target.FirstName, policy.WarnThreshold))
}

func (h *Moderation) delwarn(ctx context.Context, m *api.Message, chat *api.Chat) {
	target := tg.ResolveTarget(ctx, h.s.GetOps(), chat.ID, m)
	if target == nil {
		h.reply(chat.ID, m, "Reply or mention")
		return
	}
	h.s.GetEngine().RemoveWarn(chat.ID, target.ID)
	h.reply(chat.ID, m, fmt.Sprintf("Warn removed from %s", target.FirstName))
}

func (h *Moderation) warns(ctx context.Context, m *api.Message, chat *api.Chat, invoker *api.User) {
	target := tg.ResolveTarget(ctx, h.s.GetOps(), chat.ID, m)
	if target == nil {
		target = invoker
	}
	count := h.s.GetEngine().WarnCount(chat.ID, target.ID)
	h.replyHTML(chat.ID, m, fmt.Sprintf("%s has <b>%d/%d</b> warns", target.FirstName, count, policy.WarnThreshold))
}

func (h *Moderation) kick(ctx context.Context, m *api.Message, chat *api.Chat) {
	target := tg.ResolveTarget(ctx, h.s.GetOps(), chat.ID, m)
	if target == nil {
		h.reply(chat.ID, m, "Reply or mention")
		return
	}
	if err := h.s.GetOps().KickUser(ctx, chat.ID, target.ID); err != nil {
		h.logger.WithError(err).Error("cant kick user")
		return
	}
	h.reply(chat.ID, m, fmt.Sprintf("%s kicked", target.FirstName))
}

func (h *Moderation) ban(ctx context.Context, m *api.Message, chat *api.Chat) {
	target := tg.ResolveTarget(ctx, h.s.GetOps(), chat.ID, m)
	if target == nil {
		h.reply(chat.ID, m, "Reply or mention")
		return
	}
	if err := h.s.GetOps().BanUser(ctx, chat.ID, target.ID); err != nil {
		h.logger.WithError(err).Error("cant ban user")
		return
	}
	h.reply(chat.ID, m, fmt.Sprintf("%s banned", target.FirstName))
}

func (h *Moderation) unban(ctx context.Context, m *api.Message, chat *api.Chat) {
	target := tg.ResolveTarget(ctx, h.s.GetOps(), chat.ID, m)
	if target == nil {
		h.reply(chat.ID, m, "Reply or mention")
		return
	}
	if err := h.s.GetOps().UnbanUser(ctx, chat.ID, target.ID); err != nil {
		h.logger.WithError(err).Error("cant unban user")
		return
	}
	h.reply(chat.ID, m, fmt.Sprintf("%s unbanned", target.FirstName))
}

func (h *Moderation) mute(ctx context.Context, m *api.Message, chat *api.Chat) {
	target := tg.ResolveTarget(ctx, h.s.GetOps(), chat.ID, m)
	if target == nil {
		h.reply(chat.ID, m, "Reply + time (e.g. /mute 10m)")
		return
	}
	span := "1h"
	if args := strings.Fields(m.CommandArguments()); len(args) > 0 {
		span = args[len(args)-1]
	}
	until := time.Now().Add(parseDuration(span))
	if err := h.s.GetOps().MuteUser(ctx, chat.ID, target.ID, until); err != nil {
		h.logger.WithError(err).Error("cant mute user")
		return
	}
	h.reply(chat.ID, m, fmt.Sprintf("%s muted for %s", target.FirstName, span))
}

func (h *Moderation) unmute(ctx context.Context, m *api.Message, chat *api.Chat) {
	target := tg.ResolveTarget(ctx, h.s.GetOps(), chat.ID, m)
	if target == nil {
		h.reply(chat.ID, m, "Reply or mention")
		return
	}
	if err := h.s.GetOps().UnmuteUser(ctx, chat.ID, target.ID); err != nil {
		h.logger.WithError(err).Error("cant unmute user")
		return
	}
	h.reply(chat.ID, m, fmt.Sprintf("%s unmuted", target.FirstName))
}

func (h *Moderation) addWord(m *api.Message, chat *api.Chat) {
	word := strings.ToLower(strings.TrimSpace(m.CommandArguments()))
	if word == "" {
		h.reply(chat.ID, m, "Usage: /addword badword")
		return
	}
	h.s.GetEngine().AddBannedWord(chat.ID, word)
	h.reply(chat.ID, m, fmt.Sprintf("Word '%s' banned in this group", word))
}

func (h *Moderation) removeWord(m *api.Message, chat *api.Chat) {
	word := strings.ToLower(strings.TrimSpace(m.CommandArguments()))
	if word == "" {
		h.reply(chat.ID, m, "Usage: /removeword word")
		return
	}
	if h.s.GetEngine().RemoveBannedWord(chat.ID, word) {
		h.reply(chat.ID, m, "Word unbanned")
	} else {
		h.reply(chat.ID, m, "Word not found")
	}
}
