package provider

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	goerrors "github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newChatServer(t *testing.T, status int, body string, capture *[]byte) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if capture != nil {
			raw, err := io.ReadAll(r.Body)
			require.NoError(t, err)
			*capture = raw
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
}

func TestOpenAIAdapterSend(t *testing.T) {
	var captured []byte
	server := newChatServer(t, http.StatusOK,
		`{"model":"gpt-4o","choices":[{"message":{"role":"assistant","content":"hello"}}],"usage":{"prompt_tokens":12,"completion_tokens":4}}`,
		&captured)
	defer server.Close()

	adapter := NewOpenAIAdapter(OpenAIConfig{
		Provider: ProviderOpenAI,
		APIKey:   "test-key",
		BaseURL:  server.URL,
		Model:    "gpt-4o",
	})
	require.Equal(t, ProviderOpenAI, adapter.ID())

	reply, err := adapter.Send(context.Background(), &Request{
		Content: "how are you",
		Context: "Patient profile:\nName: Jo",
	})
	require.NoError(t, err)
	assert.Equal(t, "hello", reply.Text)
	assert.Equal(t, "gpt-4o", reply.Metadata["model"])

	var sent struct {
		Messages []struct {
			Role    string `json:"role"`
			Content string `json:"content"`
		} `json:"messages"`
	}
	require.NoError(t, json.Unmarshal(captured, &sent))
	require.Len(t, sent.Messages, 3)
	assert.Equal(t, "system", sent.Messages[0].Role)
	assert.Equal(t, SystemInstruction, sent.Messages[0].Content)
	assert.Contains(t, sent.Messages[1].Content, "Patient context:")
	assert.Equal(t, "user", sent.Messages[2].Role)
}

func TestOpenAIAdapterOmitsEmptyContext(t *testing.T) {
	var captured []byte
	server := newChatServer(t, http.StatusOK,
		`{"choices":[{"message":{"role":"assistant","content":"hi"}}]}`,
		&captured)
	defer server.Close()

	adapter := NewOpenAIAdapter(OpenAIConfig{Provider: ProviderDeepSeek, APIKey: "k", BaseURL: server.URL, Model: "deepseek-chat"})
	_, err := adapter.Send(context.Background(), &Request{Content: "hi"})
	require.NoError(t, err)

	var sent struct {
		Messages []struct {
			Role string `json:"role"`
		} `json:"messages"`
	}
	require.NoError(t, json.Unmarshal(captured, &sent))
	assert.Len(t, sent.Messages, 2)
}

func TestOpenAIAdapterErrorKinds(t *testing.T) {
	tests := []struct {
		name   string
		status int
		want   ErrorKind
	}{
		{"auth", http.StatusUnauthorized, ErrorKindAuth},
		{"quota", http.StatusTooManyRequests, ErrorKindQuota},
		{"malformed request", http.StatusBadRequest, ErrorKindMalformed},
		{"server error counts as network", http.StatusInternalServerError, ErrorKindNetwork},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := newChatServer(t, tt.status, `{"error":{"message":"nope","type":"test"}}`, nil)
			defer server.Close()

			adapter := NewOpenAIAdapter(OpenAIConfig{Provider: ProviderOpenAI, APIKey: "k", BaseURL: server.URL, Model: "gpt-4o"})
			_, err := adapter.Send(context.Background(), &Request{Content: "hi"})
			require.Error(t, err)

			var provErr *Error
			require.True(t, goerrors.As(err, &provErr))
			assert.Equal(t, tt.want, provErr.Kind)
			assert.Equal(t, ProviderOpenAI, provErr.Provider)
		})
	}
}

func TestOpenAIAdapterEmptyChoices(t *testing.T) {
	server := newChatServer(t, http.StatusOK, `{"choices":[]}`, nil)
	defer server.Close()

	adapter := NewOpenAIAdapter(OpenAIConfig{Provider: ProviderOpenAI, APIKey: "k", BaseURL: server.URL, Model: "gpt-4o"})
	_, err := adapter.Send(context.Background(), &Request{Content: "hi"})
	require.Error(t, err)

	var provErr *Error
	require.True(t, goerrors.As(err, &provErr))
	assert.Equal(t, ErrorKindMalformed, provErr.Kind)
}

func TestErrorFormatting(t *testing.T) {
	err := newError(ProviderGemini, ErrorKindQuota, goerrors.New("quota exceeded"))
	assert.Equal(t, "gemini provider quota error: quota exceeded", err.Error())
	assert.Equal(t, "quota exceeded", err.Unwrap().Error())
}

func TestMockAdapter(t *testing.T) {
	mock := NewMockAdapter(ProviderOpenAI, "canned")
	reply, err := mock.Send(context.Background(), &Request{Content: "q"})
	require.NoError(t, err)
	assert.Equal(t, "canned", reply.Text)
	assert.Equal(t, 1, mock.Calls)
	assert.Equal(t, "q", mock.LastSent.Content)

	failing := NewFailingMockAdapter(ProviderGemini, ErrorKindNetwork, goerrors.New("down"))
	_, err = failing.Send(context.Background(), &Request{Content: "q"})
	require.Error(t, err)
}
