package adapters

import (
	"context"

	"github.com/dresos/guardian/internal/adapters/llm"
)

// LLM is the black-box completion backend. Failures are recovered by callers
// into a fixed fallback reply, never surfaced to chat users as raw errors.
type LLM interface {
	ChatCompletion(ctx context.Context, messages []llm.ChatCompletionMessage) (llm.ChatCompletionResponse, error)
}
