package orchestrator

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	aierrors "github.com/lumenhealth/lumen/internal/errors"
	"github.com/lumenhealth/lumen/plugin/ai/classifier"
	"github.com/lumenhealth/lumen/plugin/ai/metrics"
	"github.com/lumenhealth/lumen/plugin/ai/provider"
	"github.com/lumenhealth/lumen/plugin/ai/routing"
	"github.com/lumenhealth/lumen/plugin/ai/sources"
	"github.com/lumenhealth/lumen/plugin/ai/usercontext"
	"github.com/lumenhealth/lumen/store"
	teststore "github.com/lumenhealth/lumen/store/test"
)

const testUserID int32 = 11

func newTestService(records *teststore.Store, adapters map[provider.ID]provider.Adapter) *Service {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewService(Config{
		Table:      routing.Default(),
		Adapters:   adapters,
		Assembler:  usercontext.NewAssembler(records, logger),
		Normalizer: sources.NewNormalizer(records, logger),
		Logger:     logger,
	})
}

func seededRecords() *teststore.Store {
	records := teststore.New()
	records.Profiles[testUserID] = &store.UserProfile{UserID: testUserID, Name: "Jo", Diagnosis: "NSCLC"}
	return records
}

func allAdapters(openaiText, geminiText, deepseekText string) map[provider.ID]provider.Adapter {
	return map[provider.ID]provider.Adapter{
		provider.ProviderOpenAI:   provider.NewMockAdapter(provider.ProviderOpenAI, openaiText),
		provider.ProviderGemini:   provider.NewMockAdapter(provider.ProviderGemini, geminiText),
		provider.ProviderDeepSeek: provider.NewMockAdapter(provider.ProviderDeepSeek, deepseekText),
	}
}

func TestProcessQueryHappyPath(t *testing.T) {
	adapters := allAdapters("openai answer", "gemini answer", "deepseek answer")
	service := newTestService(seededRecords(), adapters)

	response, err := service.ProcessQuery(context.Background(), &ProcessRequest{
		Content: "tell me about my current medication",
		UserID:  testUserID,
	})
	require.NoError(t, err)
	assert.Equal(t, classifier.QueryTypeTreatment, response.QueryType)
	assert.Equal(t, provider.ProviderOpenAI, response.ProviderUsed)
	assert.Equal(t, "openai answer", response.Content)
	assert.False(t, response.CreatedAt.IsZero())

	// The assembled context reaches the adapter.
	mock := adapters[provider.ProviderOpenAI].(*provider.MockAdapter)
	require.NotNil(t, mock.LastSent)
	assert.Contains(t, mock.LastSent.Context, "Patient profile:")
}

func TestProcessQueryEmptyContent(t *testing.T) {
	service := newTestService(seededRecords(), allAdapters("a", "b", "c"))

	_, err := service.ProcessQuery(context.Background(), &ProcessRequest{Content: "  ", UserID: testUserID})
	require.Error(t, err)
	assert.True(t, aierrors.IsCode(err, aierrors.ErrCodeInvalidArgument))
}

func TestProcessQueryMissingProfileIsFatal(t *testing.T) {
	service := newTestService(teststore.New(), allAdapters("a", "b", "c"))

	_, err := service.ProcessQuery(context.Background(), &ProcessRequest{Content: "hello", UserID: testUserID})
	require.Error(t, err)
	assert.True(t, aierrors.IsCode(err, aierrors.ErrCodeContextFetchFailed))
}

func TestProcessQueryExplicitTypeSkipsClassification(t *testing.T) {
	service := newTestService(seededRecords(), allAdapters("a", "b", "c"))

	explicit := classifier.QueryTypeHope
	response, err := service.ProcessQuery(context.Background(), &ProcessRequest{
		Content:   "tell me about my current medication",
		UserID:    testUserID,
		QueryType: &explicit,
	})
	require.NoError(t, err)
	assert.Equal(t, classifier.QueryTypeHope, response.QueryType)
	assert.Equal(t, provider.ProviderGemini, response.ProviderUsed)
}

func TestProcessQueryPrecomputedContextSkipsAssembly(t *testing.T) {
	// No profile seeded: assembly would fail, so success proves it was skipped.
	adapters := allAdapters("a", "b", "c")
	service := newTestService(teststore.New(), adapters)

	precomputed := "Patient profile:\nName: Jo"
	_, err := service.ProcessQuery(context.Background(), &ProcessRequest{
		Content: "hello there",
		UserID:  testUserID,
		Context: &precomputed,
	})
	require.NoError(t, err)

	mock := adapters[provider.ProviderOpenAI].(*provider.MockAdapter)
	require.NotNil(t, mock.LastSent)
	assert.Equal(t, precomputed, mock.LastSent.Context)
}

func TestRouteFallsBackOnce(t *testing.T) {
	adapters := map[provider.ID]provider.Adapter{
		provider.ProviderOpenAI: provider.NewFailingMockAdapter(
			provider.ProviderOpenAI, provider.ErrorKindNetwork, errors.New("connection reset")),
		provider.ProviderGemini: provider.NewMockAdapter(provider.ProviderGemini, "gemini answer"),
	}
	service := newTestService(seededRecords(), adapters)

	response, err := service.ProcessQuery(context.Background(), &ProcessRequest{
		Content: "hello there",
		UserID:  testUserID,
	})
	require.NoError(t, err)
	assert.Equal(t, provider.ProviderGemini, response.ProviderUsed)
	assert.Equal(t, "gemini answer", response.Content)
	assert.Equal(t, 1, adapters[provider.ProviderOpenAI].(*provider.MockAdapter).Calls)
	assert.Equal(t, 1, adapters[provider.ProviderGemini].(*provider.MockAdapter).Calls)
}

func TestRouteExhaustionCarriesBothFailures(t *testing.T) {
	adapters := map[provider.ID]provider.Adapter{
		provider.ProviderOpenAI: provider.NewFailingMockAdapter(
			provider.ProviderOpenAI, provider.ErrorKindNetwork, errors.New("connection reset")),
		provider.ProviderGemini: provider.NewFailingMockAdapter(
			provider.ProviderGemini, provider.ErrorKindQuota, errors.New("quota exceeded")),
	}
	service := newTestService(seededRecords(), adapters)

	_, err := service.ProcessQuery(context.Background(), &ProcessRequest{
		Content: "hello there",
		UserID:  testUserID,
	})
	require.Error(t, err)
	assert.True(t, aierrors.IsCode(err, aierrors.ErrCodeFallbackExhausted))
	assert.Contains(t, err.Error(), "connection reset")
	assert.Contains(t, err.Error(), "quota exceeded")
}

func TestRoutePreferredProviderOverride(t *testing.T) {
	adapters := allAdapters("openai answer", "gemini answer", "deepseek answer")
	service := newTestService(seededRecords(), adapters)

	preferred := provider.ProviderDeepSeek
	response, err := service.ProcessQuery(context.Background(), &ProcessRequest{
		Content:           "hello there",
		UserID:            testUserID,
		PreferredProvider: &preferred,
	})
	require.NoError(t, err)
	assert.Equal(t, provider.ProviderDeepSeek, response.ProviderUsed)
	assert.Equal(t, 0, adapters[provider.ProviderOpenAI].(*provider.MockAdapter).Calls)
}

func TestRoutePreferredProviderFallbackFollowsTable(t *testing.T) {
	// DeepSeek preferred and failing: the table sends DeepSeek traffic to
	// OpenAI, not back to the general primary.
	adapters := map[provider.ID]provider.Adapter{
		provider.ProviderOpenAI: provider.NewMockAdapter(provider.ProviderOpenAI, "openai answer"),
		provider.ProviderDeepSeek: provider.NewFailingMockAdapter(
			provider.ProviderDeepSeek, provider.ErrorKindAuth, errors.New("bad key")),
	}
	service := newTestService(seededRecords(), adapters)

	preferred := provider.ProviderDeepSeek
	response, err := service.ProcessQuery(context.Background(), &ProcessRequest{
		Content:           "hello there",
		UserID:            testUserID,
		PreferredProvider: &preferred,
	})
	require.NoError(t, err)
	assert.Equal(t, provider.ProviderOpenAI, response.ProviderUsed)
}

func TestRouteUnconfiguredProviderTriggersFallback(t *testing.T) {
	// Only Gemini is configured; the general primary (OpenAI) has no
	// adapter, which counts as a primary failure.
	adapters := map[provider.ID]provider.Adapter{
		provider.ProviderGemini: provider.NewMockAdapter(provider.ProviderGemini, "gemini answer"),
	}
	service := newTestService(seededRecords(), adapters)

	response, err := service.ProcessQuery(context.Background(), &ProcessRequest{
		Content: "hello there",
		UserID:  testUserID,
	})
	require.NoError(t, err)
	assert.Equal(t, provider.ProviderGemini, response.ProviderUsed)
}

func TestRouteRecordsMetrics(t *testing.T) {
	records := seededRecords()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	recorder := metrics.NewService()
	service := NewService(Config{
		Table: routing.Default(),
		Adapters: map[provider.ID]provider.Adapter{
			provider.ProviderOpenAI: provider.NewFailingMockAdapter(
				provider.ProviderOpenAI, provider.ErrorKindNetwork, errors.New("down")),
			provider.ProviderGemini: provider.NewMockAdapter(provider.ProviderGemini, "ok"),
		},
		Assembler:  usercontext.NewAssembler(records, logger),
		Normalizer: sources.NewNormalizer(records, logger),
		Metrics:    recorder,
		Logger:     logger,
	})

	_, err := service.ProcessQuery(context.Background(), &ProcessRequest{
		Content: "hello there",
		UserID:  testUserID,
	})
	require.NoError(t, err)

	stats := recorder.Stats(context.Background())
	assert.EqualValues(t, 2, stats.RequestCount)
	assert.EqualValues(t, 1, stats.SuccessCount)
	assert.EqualValues(t, 1, stats.FallbackCount)
	assert.EqualValues(t, 1, stats.Providers[provider.ProviderOpenAI].Count)
	assert.EqualValues(t, 1, stats.Providers[provider.ProviderGemini].Count)
}

func TestSendBoundsProviderCall(t *testing.T) {
	var sawDeadline bool
	mock := &provider.MockAdapter{
		Provider: provider.ProviderOpenAI,
		SendFunc: func(ctx context.Context, _ *provider.Request) (*provider.Reply, error) {
			_, sawDeadline = ctx.Deadline()
			return &provider.Reply{Text: "ok"}, nil
		},
	}
	service := newTestService(seededRecords(), map[provider.ID]provider.Adapter{
		provider.ProviderOpenAI: mock,
	})

	_, err := service.ProcessQuery(context.Background(), &ProcessRequest{
		Content: "hello there",
		UserID:  testUserID,
	})
	require.NoError(t, err)
	assert.True(t, sawDeadline, "provider call runs without a deadline")
}

func TestRouteNormalizesCitations(t *testing.T) {
	records := seededRecords()
	records.Research = append(records.Research, &store.ResearchItem{
		UID: "res-1", UserID: testUserID, Title: "NEJM study on immunotherapy",
	})
	adapters := allAdapters("Outcomes improved [1].", "b", "c")
	service := newTestService(records, adapters)

	response, err := service.ProcessQuery(context.Background(), &ProcessRequest{
		Content: "hello there",
		UserID:  testUserID,
	})
	require.NoError(t, err)
	require.Len(t, response.Sources, 1)
	assert.Equal(t, sources.ConfidenceMatched, response.Sources[0].Confidence)
	assert.Contains(t, response.Content, "Sources:")
}
