package workers

import (
	"context"
	"time"

	"fleet-experiment/tarmac/internal/common"
	"fleet-experiment/tarmac/internal/metrics"
	"fleet-experiment/tarmac/internal/services"
)

type WorkersContainer struct {
	Queue   *QueueWorker
	Monitor *QueueMonitor
}

func InitWorkers(
	scenarioSvc *services.ScenarioService,
	queue *common.ScenarioQueueService,
	metricsReg *metrics.MetricsRegistry,
) *WorkersContainer {
	// Drain the in-process queue for fire-and-forget requests.
	go ScenarioWorker(scenarioSvc)

	qWorker := NewQueueWorker("tarmac", queue, scenarioSvc, metricsReg)
	monitor := NewQueueMonitor(queue, metricsReg)

	go qWorker.Start(context.Background(), 3)
	go monitor.Start(context.Background(), 30*time.Second)

	return &WorkersContainer{
		Queue:   qWorker,
		Monitor: monitor,
	}
}
