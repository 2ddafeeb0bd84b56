package observability

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"
)

func collect(t *testing.T, reader *metric.ManualReader) map[string]metricdata.Metrics {
	t.Helper()
	var rm metricdata.ResourceMetrics
	require.NoError(t, reader.Collect(context.Background(), &rm))

	out := map[string]metricdata.Metrics{}
	for _, sm := range rm.ScopeMetrics {
		for _, m := range sm.Metrics {
			out[m.Name] = m
		}
	}
	return out
}

func TestRecordRun(t *testing.T) {
	reader := metric.NewManualReader()
	o, err := NewWithReader("intake-test", reader)
	require.NoError(t, err)
	t.Cleanup(o.Shutdown)

	ctx := context.Background()
	o.RecordRun(ctx, "ingest", "success", 120*time.Millisecond)
	o.RecordRun(ctx, "ingest", "success", 80*time.Millisecond)
	o.RecordRows(ctx, "ingest", "copied", 3)
	o.RecordRows(ctx, "ingest", "duplicate", 0)

	metrics := collect(t, reader)

	runs, ok := metrics["intake.runs"].Data.(metricdata.Sum[int64])
	require.True(t, ok)
	require.Len(t, runs.DataPoints, 1)
	assert.Equal(t, int64(2), runs.DataPoints[0].Value)

	durations, ok := metrics["intake.run.duration"].Data.(metricdata.Histogram[float64])
	require.True(t, ok)
	require.Len(t, durations.DataPoints, 1)
	assert.Equal(t, uint64(2), durations.DataPoints[0].Count)

	rows, ok := metrics["intake.rows"].Data.(metricdata.Sum[int64])
	require.True(t, ok)
	require.Len(t, rows.DataPoints, 1)
	assert.Equal(t, int64(3), rows.DataPoints[0].Value)
}

func TestNilObservabilityIsNoop(t *testing.T) {
	var o *Observability
	assert.NotPanics(t, func() {
		o.RecordRun(context.Background(), "score", "success", time.Second)
		o.RecordRows(context.Background(), "score", "scored", 1)
		o.Shutdown()
	})
}
