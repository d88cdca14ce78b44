package observability

import (
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestStatsCollector_Collect(t *testing.T) {
	req := require.New(t)
	log := slog.New(slog.NewTextHandler(io.Discard, nil))

	collector, err := NewStatsCollector(log)
	req.NoError(err)

	stats := collector.Collect()
	req.NotZero(stats.PID)
	req.Positive(stats.Goroutines)
	req.NotZero(stats.AllocMemMB + uint64(stats.NumGC) + stats.RSSBytes)
}
