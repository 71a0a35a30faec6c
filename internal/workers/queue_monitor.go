package workers

import (
	"context"
	"time"

	"fleet-experiment/tarmac/internal/common"
	"fleet-experiment/tarmac/internal/constants"
	"fleet-experiment/tarmac/internal/logging"
	"fleet-experiment/tarmac/internal/metrics"
)

// QueueMonitor samples the generation stream depth for the metrics endpoint.
type QueueMonitor struct {
	queue      *common.ScenarioQueueService
	metricsReg *metrics.MetricsRegistry
}

// NewQueueMonitor creates a new queue monitor
func NewQueueMonitor(queue *common.ScenarioQueueService, metricsReg *metrics.MetricsRegistry) *QueueMonitor {
	return &QueueMonitor{
		queue:      queue,
		metricsReg: metricsReg,
	}
}

// Start begins monitoring the stream at the given interval.
func (m *QueueMonitor) Start(ctx context.Context, interval time.Duration) {
	logging.Info("Queue monitor starting", "interval", interval.String())

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	// Run immediately on start
	m.check(ctx)

	for {
		select {
		case <-ctx.Done():
			logging.Info("Queue monitor shutting down")
			return
		case <-ticker.C:
			m.check(ctx)
		}
	}
}

func (m *QueueMonitor) check(ctx context.Context) {
	stream := constants.ScenarioStreamName

	length, err := m.queue.QueueLength(ctx, stream)
	if err != nil {
		logging.Warn("Queue length check failed", "stream", stream, "error", err.Error())
		return
	}

	if m.metricsReg != nil {
		m.metricsReg.QueueDepth.WithLabelValues(stream).Set(float64(length))
	}

	if length > 100 {
		logging.Warn("Generation queue backing up", "stream", stream, "depth", length)
	}
}
