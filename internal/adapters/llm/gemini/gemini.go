package gemini

import (
	"context"
	"fmt"

	"github.com/google/generative-ai-go/genai"
	log "github.com/sirupsen/logrus"
	"google.golang.org/api/option"

	"github.com/dresos/guardian/internal/adapters"
	"github.com/dresos/guardian/internal/adapters/llm"
)

const DefaultModel = "gemini-2.5-flash-lite"

type API struct {
	client *genai.Client
	model  *genai.GenerativeModel
	logger *log.Entry
}

func NewGemini(apiKey, model string, logger *log.Entry) adapters.LLM {
	client, err := genai.NewClient(context.Background(), option.WithAPIKey(apiKey))
	if err != nil {
		logger.Fatalf("Error creating client: %v", err)
	}
	if model == "" {
		model = DefaultModel
	}
	api := &API{
		client: client,
		model:  client.GenerativeModel(model),
		logger: logger,
	}
	api.withParameters(nil)
	return api
}

func (g *API) withParameters(parameters *llm.GenerationParameters) *API {
	if parameters == nil {
		parameters = &llm.GenerationParameters{
			Temperature:     0.7,
			TopP:            1,
			MaxOutputTokens: 900,
		}
	}
	g.model.SetTemperature(parameters.Temperature)
	g.model.SetTopP(parameters.TopP)
	g.model.SetMaxOutputTokens(parameters.MaxOutputTokens)
	return g
}

func (g *API) ChatCompletion(ctx context.Context, messages []llm.ChatCompletionMessage) (llm.ChatCompletionResponse, error) {
	if len(messages) == 0 {
		return llm.ChatCompletionResponse{}, fmt.Errorf("no messages")
	}

	session := g.model.StartChat()
	last, history := messages[len(messages)-1], messages[:len(messages)-1]
	for _, message := range history {
		if message.Role == llm.RoleSystem {
			g.model.SystemInstruction = &genai.Content{
				Parts: []genai.Part{genai.Text(message.Content)},
			}
			continue
		}
		session.History = append(session.History, &genai.Content{
			Parts: []genai.Part{genai.Text(message.Content)},
		})
	}

	resp, err := session.SendMessage(ctx, genai.Text(last.Content))
	if err != nil {
		return llm.ChatCompletionResponse{}, err
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return llm.ChatCompletionResponse{}, nil
	}

	response := ""
	for _, part := range resp.Candidates[0].Content.Parts {
		response += fmt.Sprintf("%v", part)
	}

	return llm.ChatCompletionResponse{
		Choices: []llm.ChatCompletionChoice{
			{
				Message: llm.ChatCompletionMessage{
					Role:    llm.RoleAssistant,
					Content: response,
				},
			},
		},
	}, nil
}
