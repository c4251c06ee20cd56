package handlers

import (
	"context"
	"regexp"
	"strings"

	api "github.com/OvyFlash/telegram-bot-api"

	"github.com/dresos/guardian/internal/adapters"
	"github.com/dresos/guardian/internal/adapters/llm"
	"github.com/dresos/guardian/internal/bot"
	"github.com/dresos/guardian/internal/observability"
	"github.com/dresos/guardian/internal/search"
)

// llmFallback is the fixed reply for any AI backend failure; raw errors
// never reach the chat.
const llmFallback = "Neural core warming up — try again in a moment."

var mentionPrefixes = []string{"guardian", "hey guard", "yo guard"}

// Assistant serves the public command set: /start, /help, /ask, /search, and
// the conversational mention trigger. The blacklist is checked before the
// cooldown gate; the gate itself denies silently.
type Assistant struct {
	baseHandler
	llm    adapters.LLM
	search *search.Client
}

func NewAssistant(s bot.Service, llmClient adapters.LLM, searchClient *search.Client) *Assistant {
	return &Assistant{
		baseHandler: newBaseHandler(s, "assistant"),
		llm:         llmClient,
		search:      searchClient,
	}
}

func (h *Assistant) Handle(ctx context.Context, u *api.Update, chat *api.Chat, user *api.User) (bool, error) {
	if u.Message == nil || chat == nil || user == nil || user.IsBot {
		return true, nil
	}
	m := u.Message

	if m.IsCommand() {
		switch m.Command() {
		case "start":
			h.replyHTML(chat.ID, m, startText)
		case "help":
			h.replyHTML(chat.ID, m, helpText)
		case "ask":
			h.ask(ctx, m, chat, user)
		case "search":
			h.searchCommand(ctx, m, chat)
		default:
			return true, nil
		}
		return false, nil
	}

	if m.Text != "" {
		h.maybeMention(ctx, m, chat, user)
	}
	return true, nil
}

func (h *Assistant) ask(ctx context.Context, m *api.Message, chat *api.Chat, user *api.User) {
	engine := h.s.GetEngine()
	if engine.IsBlacklisted(user.ID) {
		h.reply(chat.ID, m, "Access denied.")
		return
	}
	query := strings.TrimSpace(m.CommandArguments())
	if query == "" {
		h.replyHTML(chat.ID, m, "Use: <code>/ask what is the meaning of life?</code>")
		return
	}
	if !engine.AllowAI(user.ID) {
		observability.RecordAIRequest("denied")
		return
	}
	h.typing(chat.ID)
	h.reply(chat.ID, m, h.complete(ctx, query))
}

func (h *Assistant) searchCommand(ctx context.Context, m *api.Message, chat *api.Chat) {
	query := strings.TrimSpace(m.CommandArguments())
	if query == "" {
		h.replyHTML(chat.ID, m, "Usage: /search <code>what is quantum physics?</code>")
		return
	}
	h.typing(chat.ID)
	h.replyHTML(chat.ID, m, h.search.Search(ctx, query))
}

func (h *Assistant) maybeMention(ctx context.Context, m *api.Message, chat *api.Chat, user *api.User) {
	engine := h.s.GetEngine()
	if engine.IsBlacklisted(user.ID) {
		return
	}
	text := strings.ToLower(strings.TrimSpace(m.Text))
	botName := strings.ToLower(h.s.GetBot().Self.UserName)
	triggered := botName != "" && strings.Contains(text, "@"+botName)
	for _, prefix := range mentionPrefixes {
		if strings.HasPrefix(text, prefix) {
			triggered = true
			break
		}
	}
	if !triggered {
		return
	}

	query := m.Text
	if botName != "" {
		re := regexp.MustCompile(`(?i)@` + regexp.QuoteMeta(botName))
		query = re.ReplaceAllString(query, "")
	}
	query = strings.TrimSpace(query)
	if query == "" {
		return
	}
	if !engine.AllowAI(user.ID) {
		observability.RecordAIRequest("denied")
		return
	}
	h.typing(chat.ID)
	h.reply(chat.ID, m, h.complete(ctx, query))
}

// complete asks the AI backend, swallowing failures into the fallback line.
func (h *Assistant) complete(ctx context.Context, query string) string {
	resp, err := h.llm.ChatCompletion(ctx, []llm.ChatCompletionMessage{
		{Role: llm.RoleUser, Content: query},
	})
	if err != nil || len(resp.Choices) == 0 {
		if err != nil {
			h.logger.WithError(err).Error("llm request failed")
		}
		observability.RecordAIRequest("error")
		return llmFallback
	}
	observability.RecordAIRequest("ok")
	return strings.TrimSpace(resp.Choices[0].Message.Content)
}

const startText = "Guardian — The Ultimate Group Bot\n\n" +
	"Fully encrypted • Zero logs • Zero tracking\n\n" +
	"Features:\n" +
	"• AI powered by Llama 3.3-70b\n" +
	"• Private search via DuckDuckGo with spoofed IP and DNT requests\n" +
	"• All queries anonymized — your real IP never leaves your device\n" +
	"• Full group moderation\n\n" +
	"Forever Free, Forever Private\n\n" +
	"Type /help for full command list"

const helpText = "<b>Guardian Commands</b>\n\n" +
	"<b>AI &amp; Search (Everyone):</b>\n" +
	"• /ask <i>your question</i>\n" +
	"• /search <i>anything</i> — 100% private\n" +
	"<b>Moderation (Admins):</b>\n" +
	"/warn • /delwarn • /warns • /kick • /ban • /unban\n" +
	"/mute 10m • /unmute • /addword • /removeword\n\n" +
	"<b>Welcome Setup:</b>\n" +
	"/setwelcometext • /setmedia (reply photo/GIF/video)\n" +
	"/setchannellink • /clearwelcome\n\n" +
	"<b>Owner Only:</b>\n" +
	"/blacklist • /unblacklist • /blacklisted"
