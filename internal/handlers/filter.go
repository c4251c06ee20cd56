package handlers

import (
	"context"

	api "github.com/OvyFlash/telegram-bot-api"

	"github.com/dresos/guardian/internal/bot"
	"github.com/dresos/guardian/internal/observability"
)

// WordFilter deletes messages containing a banned word. Deletion is best
// effort; a failed delete is a transport problem, not a handler error.
type WordFilter struct {
	baseHandler
}

func NewWordFilter(s bot.Service) *WordFilter {
	return &WordFilter{baseHandler: newBaseHandler(s, "filter")}
}

func (h *WordFilter) Handle(ctx context.Context, u *api.Update, chat *api.Chat, user *api.User) (bool, error) {
	if u.Message == nil || u.Message.Text == "" || chat == nil || user == nil {
		return true, nil
	}
	if u.Message.IsCommand() || user.IsBot {
		return true, nil
	}
	engine := h.s.GetEngine()
	if engine.IsBlacklisted(user.ID) {
		return true, nil
	}
	if !engine.HasBannedWord(chat.ID, u.Message.Text) {
		return true, nil
	}

	if err := h.s.GetOps().DeleteMessage(ctx, chat.ID, u.Message.MessageID); err != nil {
		h.logger.WithError(err).Debug("cant delete message")
	}
	observability.RecordFilteredMessage()
	return false, nil
}
