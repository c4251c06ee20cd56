package handlers

import (
	"context"

	api "github.com/OvyFlash/telegram-bot-api"

	"github.com/dresos/guardian/internal/bot"
	"github.com/dresos/guardian/internal/policy"
	"github.com/dresos/guardian/internal/store"
)

// Greeter renders the configured welcome for every new member, both via the
// legacy new_chat_members service message and chat_member transitions.
type Greeter struct {
	baseHandler
}

func NewGreeter(s bot.Service) *Greeter {
	return &Greeter{baseHandler: newBaseHandler(s, "greeter")}
}

func (h *Greeter) Handle(ctx context.Context, u *api.Update, chat *api.Chat, user *api.User) (bool, error) {
	switch {
	case u.Message != nil && len(u.Message.NewChatMembers) > 0:
		members := make([]api.User, len(u.Message.NewChatMembers))
		copy(members, u.Message.NewChatMembers)
		h.welcomeAll(u.Message.Chat.ID, members)
	case u.ChatMember != nil:
		h.memberUpdate(u.ChatMember)
	}
	return true, nil
}

func (h *Greeter) memberUpdate(cm *api.ChatMemberUpdated) {
	newStatus := cm.NewChatMember.Status
	oldStatus := cm.OldChatMember.Status
	if newStatus != "member" {
		return
	}
	switch oldStatus {
	case "member", "administrator", "creator":
		return
	}
	if cm.NewChatMember.User == nil {
		return
	}
	h.welcomeAll(cm.Chat.ID, []api.User{*cm.NewChatMember.User})
}

func (h *Greeter) welcomeAll(chatID int64, members []api.User) {
	engine := h.s.GetEngine()
	for _, member := range members {
		if member.IsBot || engine.IsBlacklisted(member.ID) {
			continue
		}
		rendered := engine.RenderWelcome(chatID, policy.Member{
			ID:        member.ID,
			FirstName: member.FirstName,
			Username:  member.UserName,
		})
		if rendered == nil {
			return
		}
		if err := h.sendWelcome(chatID, rendered); err != nil {
			h.logger.WithError(err).Error("welcome failed")
		}
	}
}

func (h *Greeter) sendWelcome(chatID int64, rendered *policy.Rendered) error {
	var markup any
	if rendered.Link != "" {
		markup = api.NewInlineKeyboardMarkup(
			api.NewInlineKeyboardRow(
				api.NewInlineKeyboardButtonURL("Join Channel", rendered.Link),
			),
		)
	}

	if rendered.Media == "" {
		msg := api.NewMessage(chatID, rendered.Text)
		msg.ParseMode = api.ModeHTML
		msg.ReplyMarkup = markup
		msg.DisableNotification = true
		msg.ProtectContent = true
		_, err := h.s.GetBot().Send(msg)
		return err
	}

	file := api.FileID(rendered.Media)
	switch rendered.Kind {
	case store.MediaPhoto:
		msg := api.NewPhoto(chatID, file)
		msg.Caption = rendered.Text
		msg.ParseMode = api.ModeHTML
		msg.ReplyMarkup = markup
		msg.ProtectContent = true
		_, err := h.s.GetBot().Send(msg)
		return err
	case store.MediaAnimation:
		msg := api.NewAnimation(chatID, file)
		msg.Caption = rendered.Text
		msg.ParseMode = api.ModeHTML
		msg.ReplyMarkup = markup
		msg.ProtectContent = true
		_, err := h.s.GetBot().Send(msg)
		return err
	case store.MediaVideo:
		msg := api.NewVideo(chatID, file)
		msg.Caption = rendered.Text
		msg.ParseMode = api.ModeHTML
		msg.ReplyMarkup = markup
		msg.ProtectContent = true
		_, err := h.s.GetBot().Send(msg)
		return err
	default:
		h.logger.WithField("kind", rendered.Kind).Warn("unknown media kind, sending text only")
		msg := api.NewMessage(chatID, rendered.Text)
		msg.ParseMode = api.ModeHTML
		msg.ReplyMarkup = markup
		msg.DisableNotification = true
		msg.ProtectContent = true
		_, err := h.s.GetBot().Send(msg)
		return err
	}
}
