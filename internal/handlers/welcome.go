package handlers

import (
	"context"
	"strings"

	api "github.com/OvyFlash/telegram-bot-api"

	"github.com/dresos/guardian/internal/bot"
	"github.com/dresos/guardian/internal/store"
)

// WelcomeSetup handles the admin commands configuring per-chat welcomes.
type WelcomeSetup struct {
	baseHandler
}

func NewWelcomeSetup(s bot.Service) *WelcomeSetup {
	return &WelcomeSetup{baseHandler: newBaseHandler(s, "welcome")}
}

func (h *WelcomeSetup) Handle(ctx context.Context, u *api.Update, chat *api.Chat, user *api.User) (bool, error) {
	if u.Message == nil || chat == nil || user == nil || user.IsBot || !u.Message.IsCommand() {
		return true, nil
	}
	m := u.Message

	switch m.Command() {
	case "setwelcometext", "setmedia", "setchannellink", "clearwelcome":
	default:
		return true, nil
	}
	if !h.s.GetOps().IsAdmin(ctx, chat.ID, user.ID) {
		return false, nil
	}

	switch m.Command() {
	case "setwelcometext":
		h.setText(m, chat)
	case "setmedia":
		h.setMedia(m, chat)
	case "setchannellink":
		h.setLink(m, chat)
	case "clearwelcome":
		h.s.GetEngine().ClearWelcome(chat.ID)
		h.reply(chat.ID, m, "Welcome message cleared")
	}
	return false, nil
}

func (h *WelcomeSetup) setText(m *api.Message, chat *api.Chat) {
	text := strings.TrimSpace(m.CommandArguments())
	if text == "" {
		h.reply(chat.ID, m, "Usage: /setwelcometext Welcome {first}!")
		return
	}
	h.s.GetEngine().SetWelcomeText(chat.ID, text)
	h.reply(chat.ID, m, "Welcome text saved!")
}

func (h *WelcomeSetup) setMedia(m *api.Message, chat *api.Chat) {
	reply := m.ReplyToMessage
	if reply == nil {
		h.reply(chat.ID, m, "Reply to a photo, GIF, or video")
		return
	}
	switch {
	case len(reply.Photo) > 0:
		h.s.GetEngine().SetWelcomeMedia(chat.ID, reply.Photo[len(reply.Photo)-1].FileID, store.MediaPhoto)
	case reply.Animation != nil:
		h.s.GetEngine().SetWelcomeMedia(chat.ID, reply.Animation.FileID, store.MediaAnimation)
	case reply.Video != nil:
		h.s.GetEngine().SetWelcomeMedia(chat.ID, reply.Video.FileID, store.MediaVideo)
	default:
		h.reply(chat.ID, m, "Reply to a photo, GIF, or video")
		return
	}
	h.reply(chat.ID, m, "Welcome media saved!")
}

func (h *WelcomeSetup) setLink(m *api.Message, chat *api.Chat) {
	args := strings.Fields(m.CommandArguments())
	if len(args) == 0 {
		h.reply(chat.ID, m, "Usage: /setchannellink https://t.me/example")
		return
	}
	h.s.GetEngine().SetWelcomeLink(chat.ID, args[0])
	h.reply(chat.ID, m, "Channel link button saved!")
}
