// Package provider defines the adapter boundary between the dispatch core
// and concrete LLM backends, plus the adapters themselves.
package provider

import (
	"context"
	"fmt"
)

// ID identifies an LLM backend.
type ID string

const (
	ProviderOpenAI   ID = "openai"
	ProviderGemini   ID = "gemini"
	ProviderDeepSeek ID = "deepseek"
)

// SystemInstruction is the shared safety preamble sent to every backend.
// Adapters must not alter it.
const SystemInstruction = `You are a careful assistant supporting a patient living with a serious illness.
Ground every answer in the patient context when it is provided.
Be accurate, compassionate and concrete. Never invent clinical facts.
You are not a doctor: for diagnosis, dosing or treatment changes, tell the
patient to talk to their care team. Cite sources when you rely on research.`

// Request is the provider-agnostic call payload. Context carries the
// already-formatted patient context; adapters pass it through verbatim.
type Request struct {
	Content string
	Context string
	UserID  int32
}

// Reply is the provider-agnostic response payload.
type Reply struct {
	Text     string
	Metadata map[string]any
}

// Adapter is a single LLM backend. Send is synchronous and must honor
// ctx cancellation; the orchestrator bounds each call with a deadline.
type Adapter interface {
	ID() ID
	Send(ctx context.Context, request *Request) (*Reply, error)
}

// ErrorKind classifies an adapter failure. All kinds are treated the same
// by fallback logic; the kind is kept for logs and operators.
type ErrorKind string

const (
	ErrorKindNetwork   ErrorKind = "network"
	ErrorKindAuth      ErrorKind = "auth"
	ErrorKindQuota     ErrorKind = "quota"
	ErrorKindMalformed ErrorKind = "malformed"
)

// Error is a classified adapter failure.
type Error struct {
	Provider ID
	Kind     ErrorKind
	Err      error
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s provider %s error: %v", e.Provider, e.Kind, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

func newError(provider ID, kind ErrorKind, err error) *Error {
	return &Error{Provider: provider, Kind: kind, Err: err}
}
