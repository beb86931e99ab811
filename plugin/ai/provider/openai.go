package provider

import (
	"context"
	"net/http"

	"github.com/pkg/errors"
	openai "github.com/sashabaranov/go-openai"
)

// OpenAIConfig configures an OpenAI-compatible chat backend. DeepSeek speaks
// the same wire protocol, so the same adapter serves both; the ID and
// BaseURL decide which backend a given instance talks to.
type OpenAIConfig struct {
	Provider ID
	APIKey   string
	BaseURL  string
	Model    string
}

// OpenAIAdapter calls any OpenAI-compatible chat completion endpoint.
type OpenAIAdapter struct {
	provider ID
	model    string
	client   *openai.Client
}

// NewOpenAIAdapter creates an adapter for an OpenAI-compatible backend.
func NewOpenAIAdapter(config OpenAIConfig) *OpenAIAdapter {
	clientConfig := openai.DefaultConfig(config.APIKey)
	if config.BaseURL != "" {
		clientConfig.BaseURL = config.BaseURL
	}
	return &OpenAIAdapter{
		provider: config.Provider,
		model:    config.Model,
		client:   openai.NewClientWithConfig(clientConfig),
	}
}

func (a *OpenAIAdapter) ID() ID {
	return a.provider
}

func (a *OpenAIAdapter) Send(ctx context.Context, request *Request) (*Reply, error) {
	messages := []openai.ChatCompletionMessage{
		{Role: openai.ChatMessageRoleSystem, Content: SystemInstruction},
	}
	if request.Context != "" {
		messages = append(messages, openai.ChatCompletionMessage{
			Role:    openai.ChatMessageRoleSystem,
			Content: "Patient context:\n" + request.Context,
		})
	}
	messages = append(messages, openai.ChatCompletionMessage{
		Role:    openai.ChatMessageRoleUser,
		Content: request.Content,
	})

	resp, err := a.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:    a.model,
		Messages: messages,
	})
	if err != nil {
		return nil, newError(a.provider, classifyOpenAIError(err), err)
	}
	if len(resp.Choices) == 0 || resp.Choices[0].Message.Content == "" {
		return nil, newError(a.provider, ErrorKindMalformed, errors.New("completion has no content"))
	}

	return &Reply{
		Text: resp.Choices[0].Message.Content,
		Metadata: map[string]any{
			"model":             resp.Model,
			"prompt_tokens":     resp.Usage.PromptTokens,
			"completion_tokens": resp.Usage.CompletionTokens,
		},
	}, nil
}

func classifyOpenAIError(err error) ErrorKind {
	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		switch apiErr.HTTPStatusCode {
		case http.StatusUnauthorized, http.StatusForbidden:
			return ErrorKindAuth
		case http.StatusTooManyRequests:
			return ErrorKindQuota
		case http.StatusBadRequest, http.StatusUnprocessableEntity:
			return ErrorKindMalformed
		}
	}
	return ErrorKindNetwork
}

var _ Adapter = (*OpenAIAdapter)(nil)
