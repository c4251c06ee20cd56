// Package handlers implements the bot's command surface on top of the policy
// engine. Each handler consumes the updates it recognizes and passes the rest
// down the chain.
package handlers

import (
	api "github.com/OvyFlash/telegram-bot-api"
	log "github.com/sirupsen/logrus"

	"github.com/dresos/guardian/internal/bot"
)

type baseHandler struct {
	s      bot.Service
	logger *log.Entry
}

func newBaseHandler(s bot.Service, name string) baseHandler {
	return baseHandler{
		s:      s,
		logger: log.WithField("handler", name),
	}
}

func (h *baseHandler) reply(chatID int64, replyTo *api.Message, text string) {
	h.send(chatID, replyTo, text, "")
}

func (h *baseHandler) replyHTML(chatID int64, replyTo *api.Message, text string) {
	h.send(chatID, replyTo, text, api.ModeHTML)
}

func (h *baseHandler) send(chatID int64, replyTo *api.Message, text, parseMode string) {
	msg := api.NewMessage(chatID, text)
	msg.ParseMode = parseMode
	msg.DisableNotification = true
	if replyTo != nil {
		msg.ReplyParameters.MessageID = replyTo.MessageID
		msg.ReplyParameters.ChatID = chatID
		msg.ReplyParameters.AllowSendingWithoutReply = true
	}
	if _, err := h.s.GetBot().Send(msg); err != nil {
		h.logger.WithError(err).Debug("cant send reply")
	}
}

func (h *baseHandler) typing(chatID int64) {
	if _, err := h.s.GetBot().Request(api.NewChatAction(chatID, api.ChatTyping)); err != nil {
		h.logger.WithError(err).Trace("cant send chat action")
	}
}
