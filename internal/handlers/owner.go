package handlers

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	api "github.com/OvyFlash/telegram-bot-api"

	"github.com/dresos/guardian/internal/bot"
	"github.com/dresos/guardian/internal/tg"
)

// Owner handles the global blacklist commands, restricted to the bot owner.
type Owner struct {
	baseHandler
	ownerID int64
}

func NewOwner(s bot.Service, ownerID int64) *Owner {
	return &Owner{
		baseHandler: newBaseHandler(s, "owner"),
		ownerID:     ownerID,
	}
}

func (h *Owner) Handle(ctx context.Context, u *api.Update, chat *api.Chat, user *api.User) (bool, error) {
	if u.Message == nil || chat == nil || user == nil || !u.Message.IsCommand() {
		return true, nil
	}
	m := u.Message

	switch m.Command() {
	case "blacklist", "unblacklist", "blacklisted":
	default:
		return true, nil
	}
	if user.ID != h.ownerID {
		return false, nil
	}

	switch m.Command() {
	case "blacklist":
		h.blacklist(ctx, m, chat)
	case "unblacklist":
		h.unblacklist(ctx, m, chat)
	case "blacklisted":
		h.listBlacklisted(m, chat)
	}
	return false, nil
}

func (h *Owner) blacklist(ctx context.Context, m *api.Message, chat *api.Chat) {
	target := tg.ResolveTarget(ctx, h.s.GetOps(), chat.ID, m)
	if target == nil {
		h.reply(chat.ID, m, "Reply or mention user")
		return
	}
	if h.s.GetEngine().Blacklist(target.ID) {
		h.reply(chat.ID, m, fmt.Sprintf("Globally blacklisted %d", target.ID))
	} else {
		h.reply(chat.ID, m, "Already blacklisted")
	}
}

func (h *Owner) unblacklist(ctx context.Context, m *api.Message, chat *api.Chat) {
	target := tg.ResolveTarget(ctx, h.s.GetOps(), chat.ID, m)
	if target == nil {
		return
	}
	if h.s.GetEngine().Unblacklist(target.ID) {
		h.reply(chat.ID, m, "Removed from global blacklist")
	}
}

func (h *Owner) listBlacklisted(m *api.Message, chat *api.Chat) {
	ids := h.s.GetEngine().Blacklisted()
	if len(ids) == 0 {
		h.reply(chat.ID, m, "Global Blacklist:\nEmpty")
		return
	}
	lines := make([]string, 0, len(ids))
	for _, id := range ids {
		lines = append(lines, strconv.FormatInt(id, 10))
	}
	h.reply(chat.ID, m, "Global Blacklist:\n"+strings.Join(lines, "\n"))
}
