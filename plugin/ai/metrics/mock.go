package metrics

import (
	"context"
	"time"

	"github.com/lumenhealth/lumen/plugin/ai/provider"
)

// NopRecorder discards every metric. Used where metrics are not wired.
type NopRecorder struct{}

// NewNopRecorder creates a recorder that discards everything.
func NewNopRecorder() *NopRecorder {
	return &NopRecorder{}
}

func (*NopRecorder) RecordDispatch(context.Context, provider.ID, time.Duration, bool) {}

func (*NopRecorder) RecordFallback(context.Context, provider.ID, provider.ID) {}

func (*NopRecorder) Stats(context.Context) *DispatchMetrics {
	return &DispatchMetrics{Providers: map[provider.ID]*ProviderStat{}}
}

var _ Recorder = (*NopRecorder)(nil)
