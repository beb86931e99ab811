package provider

import (
	"context"
	"strings"

	"github.com/pkg/errors"
	"google.golang.org/genai"
)

// GeminiConfig configures the Gemini backend.
type GeminiConfig struct {
	APIKey string
	Model  string
}

// GeminiAdapter calls the Gemini API through the Google GenAI SDK.
type GeminiAdapter struct {
	client *genai.Client
	model  string
}

// NewGeminiAdapter creates a Gemini adapter. The ctx only bounds client
// construction, not later Send calls.
func NewGeminiAdapter(ctx context.Context, config GeminiConfig) (*GeminiAdapter, error) {
	if config.APIKey == "" {
		return nil, errors.New("gemini api key is required")
	}
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  config.APIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to create genai client")
	}
	return &GeminiAdapter{client: client, model: config.Model}, nil
}

func (a *GeminiAdapter) ID() ID {
	return ProviderGemini
}

func (a *GeminiAdapter) Send(ctx context.Context, request *Request) (*Reply, error) {
	var prompt []*genai.Content
	if request.Context != "" {
		prompt = append(prompt, &genai.Content{
			Role:  genai.RoleUser,
			Parts: []*genai.Part{{Text: "Patient context:\n" + request.Context}},
		})
	}
	prompt = append(prompt, &genai.Content{
		Role:  genai.RoleUser,
		Parts: []*genai.Part{{Text: request.Content}},
	})

	resp, err := a.client.Models.GenerateContent(ctx, a.model, prompt, &genai.GenerateContentConfig{
		SystemInstruction: &genai.Content{Parts: []*genai.Part{{Text: SystemInstruction}}},
	})
	if err != nil {
		return nil, newError(ProviderGemini, classifyGeminiError(err), err)
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil || len(resp.Candidates[0].Content.Parts) == 0 {
		return nil, newError(ProviderGemini, ErrorKindMalformed, errors.New("response has no candidates"))
	}

	var text strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if part == nil || part.Text == "" {
			continue
		}
		text.WriteString(part.Text)
	}
	if text.Len() == 0 {
		return nil, newError(ProviderGemini, ErrorKindMalformed, errors.New("response candidates carry no text"))
	}

	return &Reply{
		Text: text.String(),
		Metadata: map[string]any{
			"model": a.model,
		},
	}, nil
}

func classifyGeminiError(err error) ErrorKind {
	var apiErr genai.APIError
	if errors.As(err, &apiErr) {
		switch apiErr.Code {
		case 401, 403:
			return ErrorKindAuth
		case 429:
			return ErrorKindQuota
		case 400:
			return ErrorKindMalformed
		}
	}
	return ErrorKindNetwork
}

var _ Adapter = (*GeminiAdapter)(nil)
