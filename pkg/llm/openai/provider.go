package openai

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"nestquest-be/pkg/llm"

	openaigo "github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"
)

// Provider talks to an OpenAI-compatible chat completion endpoint. Retries
// live in the invoker, so the SDK's own retry loop is disabled here to keep
// the attempt count observable.
type Provider struct {
	client openaigo.Client
	model  string
}

var _ llm.Provider = &Provider{}

func New(apiKey, baseURL, model string) *Provider {
	opts := []option.RequestOption{
		option.WithAPIKey(apiKey),
		option.WithMaxRetries(0),
		option.WithHTTPClient(&http.Client{Timeout: 60 * time.Second}),
	}
	if baseURL != "" {
		opts = append(opts, option.WithBaseURL(baseURL))
	}

	return &Provider{
		client: openaigo.NewClient(opts...),
		model:  model,
	}
}

func (p *Provider) Complete(ctx context.Context, history []llm.Message, opts ...llm.Option) (*llm.Completion, error) {
	options := &llm.Options{
		Temperature: 0.7,
	}
	for _, opt := range opts {
		opt(options)
	}

	messages := make([]openaigo.ChatCompletionMessageParamUnion, 0, len(history))
	for _, msg := range history {
		switch msg.Role {
		case "system":
			messages = append(messages, openaigo.SystemMessage(msg.Content))
		case "assistant", "model":
			messages = append(messages, openaigo.AssistantMessage(msg.Content))
		default:
			messages = append(messages, openaigo.UserMessage(msg.Content))
		}
	}

	model := p.model
	if options.Model != "" {
		model = options.Model
	}

	params := openaigo.ChatCompletionNewParams{
		Model:       openaigo.ChatModel(model),
		Messages:    messages,
		Temperature: openaigo.Float(options.Temperature),
	}
	if options.MaxTokens > 0 {
		params.MaxTokens = openaigo.Int(int64(options.MaxTokens))
	}

	resp, err := p.client.Chat.Completions.New(ctx, params)
	if err != nil {
		return nil, fmt.Errorf("openai completion failed: %w", err)
	}
	if len(resp.Choices) == 0 {
		return nil, fmt.Errorf("openai completion returned no choices")
	}

	return &llm.Completion{
		Text:        resp.Choices[0].Message.Content,
		TotalTokens: int(resp.Usage.TotalTokens),
	}, nil
}
