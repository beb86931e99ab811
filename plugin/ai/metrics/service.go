package metrics

import (
	"context"
	"sync"
	"time"

	"github.com/lumenhealth/lumen/plugin/ai/provider"
)

// Service is the in-memory Recorder. Aggregates live for the process
// lifetime; there is no persistence.
type Service struct {
	mu sync.Mutex

	requestCount  int64
	successCount  int64
	fallbackCount int64
	providers     map[provider.ID]*providerAgg
}

type providerAgg struct {
	count      int64
	success    int64
	latencySum time.Duration
}

// NewService creates an in-memory metrics recorder.
func NewService() *Service {
	return &Service{
		providers: make(map[provider.ID]*providerAgg),
	}
}

func (s *Service) RecordDispatch(_ context.Context, id provider.ID, latency time.Duration, success bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.requestCount++
	if success {
		s.successCount++
	}

	agg, ok := s.providers[id]
	if !ok {
		agg = &providerAgg{}
		s.providers[id] = agg
	}
	agg.count++
	if success {
		agg.success++
	}
	agg.latencySum += latency
}

func (s *Service) RecordFallback(_ context.Context, _, _ provider.ID) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.fallbackCount++
}

func (s *Service) Stats(_ context.Context) *DispatchMetrics {
	s.mu.Lock()
	defer s.mu.Unlock()

	stats := &DispatchMetrics{
		RequestCount:  s.requestCount,
		SuccessCount:  s.successCount,
		FallbackCount: s.fallbackCount,
		Providers:     make(map[provider.ID]*ProviderStat, len(s.providers)),
	}
	for id, agg := range s.providers {
		stat := &ProviderStat{Count: agg.count}
		if agg.count > 0 {
			stat.SuccessRate = float32(agg.success) / float32(agg.count)
			stat.AvgLatency = agg.latencySum / time.Duration(agg.count)
		}
		stats.Providers[id] = stat
	}
	return stats
}

var _ Recorder = (*Service)(nil)
