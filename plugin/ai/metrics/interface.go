// Package metrics aggregates dispatch metrics per provider.
package metrics

import (
	"context"
	"time"

	"github.com/lumenhealth/lumen/plugin/ai/provider"
)

// Recorder collects dispatch outcomes. Implementations must be safe for
// concurrent use; recording must never block the request path.
type Recorder interface {
	// RecordDispatch records one provider attempt.
	RecordDispatch(ctx context.Context, id provider.ID, latency time.Duration, success bool)

	// RecordFallback records a fallback hop from one provider to another.
	RecordFallback(ctx context.Context, from, to provider.ID)

	// Stats returns a snapshot of the aggregated metrics.
	Stats(ctx context.Context) *DispatchMetrics
}

// DispatchMetrics is an aggregated metrics snapshot.
type DispatchMetrics struct {
	RequestCount  int64                         `json:"request_count"`
	SuccessCount  int64                         `json:"success_count"`
	FallbackCount int64                         `json:"fallback_count"`
	Providers     map[provider.ID]*ProviderStat `json:"providers"`
}

// ProviderStat represents statistics for a single provider.
type ProviderStat struct {
	Count       int64         `json:"count"`
	SuccessRate float32       `json:"success_rate"`
	AvgLatency  time.Duration `json:"avg_latency"`
}
