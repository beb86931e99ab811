// Package orchestrator is the dispatch core: it classifies the query,
// assembles patient context, routes to a provider and applies single-hop
// fallback, then normalizes the reply.
package orchestrator

import (
	"context"
	"log/slog"
	"strings"
	"time"

	aierrors "github.com/lumenhealth/lumen/internal/errors"
	"github.com/lumenhealth/lumen/internal/observability"
	"github.com/lumenhealth/lumen/plugin/ai/classifier"
	"github.com/lumenhealth/lumen/plugin/ai/metrics"
	"github.com/lumenhealth/lumen/plugin/ai/provider"
	"github.com/lumenhealth/lumen/plugin/ai/routing"
	"github.com/lumenhealth/lumen/plugin/ai/sources"
	"github.com/lumenhealth/lumen/plugin/ai/timeout"
	"github.com/lumenhealth/lumen/plugin/ai/usercontext"
)

// AIQuery is a fully prepared query: classified, with context attached.
type AIQuery struct {
	Content string
	Type    classifier.QueryType
	UserID  int32
	Context string
	// PreferredProvider overrides the routing table's primary when set.
	// Fallback still follows the table, keyed by the provider actually tried.
	PreferredProvider *provider.ID
}

// AIResponse is the normalized result returned to callers.
type AIResponse struct {
	Content      string               `json:"content"`
	QueryType    classifier.QueryType `json:"queryType"`
	ProviderUsed provider.ID          `json:"providerUsed"`
	Sources      []sources.Source     `json:"sources,omitempty"`
	CreatedAt    time.Time            `json:"createdAt"`
	Metadata     map[string]any       `json:"metadata,omitempty"`
}

// ProcessRequest is the raw inbound request. QueryType and Context, when
// set, skip classification and context assembly respectively.
type ProcessRequest struct {
	Content           string
	UserID            int32
	PreferredProvider *provider.ID
	QueryType         *classifier.QueryType
	Context           *string
}

// Service wires the dispatch pipeline together.
type Service struct {
	table      *routing.Table
	adapters   map[provider.ID]provider.Adapter
	assembler  *usercontext.Assembler
	normalizer *sources.Normalizer
	metrics    metrics.Recorder
	logger     *slog.Logger
}

// Config collects Service dependencies. Metrics may be nil; a no-op
// recorder is substituted.
type Config struct {
	Table      *routing.Table
	Adapters   map[provider.ID]provider.Adapter
	Assembler  *usercontext.Assembler
	Normalizer *sources.Normalizer
	Metrics    metrics.Recorder
	Logger     *slog.Logger
}

// NewService creates the dispatch service.
func NewService(config Config) *Service {
	adapters := make(map[provider.ID]provider.Adapter, len(config.Adapters))
	for id, adapter := range config.Adapters {
		adapters[id] = adapter
	}
	recorder := config.Metrics
	if recorder == nil {
		recorder = metrics.NewNopRecorder()
	}
	return &Service{
		table:      config.Table,
		adapters:   adapters,
		assembler:  config.Assembler,
		normalizer: config.Normalizer,
		metrics:    recorder,
		logger:     config.Logger,
	}
}

// ProcessQuery runs the full pipeline for one inbound request.
func (s *Service) ProcessQuery(ctx context.Context, request *ProcessRequest) (*AIResponse, error) {
	if strings.TrimSpace(request.Content) == "" {
		return nil, aierrors.InvalidArgument("query content is empty")
	}

	reqCtx, ok := observability.FromContext(ctx)
	if !ok {
		reqCtx = observability.NewRequestContext(s.logger, request.UserID)
		ctx = observability.WithRequestContext(ctx, reqCtx)
	}

	queryType := classifier.Classify(request.Content)
	if request.QueryType != nil {
		queryType = *request.QueryType
	}
	reqCtx.SetQueryType(string(queryType))

	var formatted string
	if request.Context != nil {
		formatted = *request.Context
	} else {
		uc, err := s.assembler.Assemble(ctx, request.UserID, queryType)
		if err != nil {
			reqCtx.Error("context assembly failed", err)
			return nil, err
		}
		formatted = usercontext.Format(uc)
	}

	return s.Route(ctx, &AIQuery{
		Content:           request.Content,
		Type:              queryType,
		UserID:            request.UserID,
		Context:           formatted,
		PreferredProvider: request.PreferredProvider,
	})
}

// Route dispatches a prepared query: primary attempt, then at most one
// fallback hop. When both fail the returned error carries both failures.
func (s *Service) Route(ctx context.Context, query *AIQuery) (*AIResponse, error) {
	reqCtx, ok := observability.FromContext(ctx)
	if !ok {
		reqCtx = observability.NewRequestContext(s.logger, query.UserID)
		ctx = observability.WithRequestContext(ctx, reqCtx)
	}

	primary := s.table.PrimaryFor(query.Type)
	if query.PreferredProvider != nil {
		primary = *query.PreferredProvider
	}

	reply, primaryErr := s.send(ctx, primary, query)
	if primaryErr == nil {
		return s.respond(ctx, reqCtx, primary, reply, query), nil
	}
	if ctx.Err() != nil {
		return nil, aierrors.ContextCanceled(primaryErr)
	}
	reqCtx.Warn("primary provider failed",
		slog.String(observability.LogFieldProvider, string(primary)),
		slog.String("error", timeout.Truncate(primaryErr.Error())))

	fallback, ok := s.table.FallbackFor(primary)
	if !ok {
		return nil, primaryErr
	}
	s.metrics.RecordFallback(ctx, primary, fallback)

	reply, fallbackErr := s.send(ctx, fallback, query)
	if fallbackErr != nil {
		err := aierrors.FallbackExhausted(primaryErr, fallbackErr).
			WithContext("primary", string(primary)).
			WithContext("fallback", string(fallback))
		reqCtx.Error("all providers exhausted", err,
			slog.Int64(observability.LogFieldDuration, reqCtx.DurationMs()))
		return nil, err
	}

	return s.respond(ctx, reqCtx, fallback, reply, query), nil
}

func (s *Service) send(ctx context.Context, id provider.ID, query *AIQuery) (*provider.Reply, error) {
	adapter, ok := s.adapters[id]
	if !ok {
		return nil, aierrors.ProviderNotConfigured(string(id))
	}
	ctx, cancel := context.WithTimeout(ctx, timeout.ProviderCallTimeout)
	defer cancel()
	started := time.Now()
	reply, err := adapter.Send(ctx, &provider.Request{
		Content: query.Content,
		Context: query.Context,
		UserID:  query.UserID,
	})
	s.metrics.RecordDispatch(ctx, id, time.Since(started), err == nil)
	return reply, err
}

func (s *Service) respond(ctx context.Context, reqCtx *observability.RequestContext, used provider.ID, reply *provider.Reply, query *AIQuery) *AIResponse {
	content, cited := s.normalizer.Normalize(ctx, reply.Text, query.UserID)
	reqCtx.Info("query dispatched",
		slog.String(observability.LogFieldProvider, string(used)),
		slog.Int64(observability.LogFieldDuration, reqCtx.DurationMs()),
		slog.Int("sources", len(cited)))
	return &AIResponse{
		Content:      content,
		QueryType:    query.Type,
		ProviderUsed: used,
		Sources:      cited,
		CreatedAt:    time.Now(),
		Metadata:     reply.Metadata,
	}
}
