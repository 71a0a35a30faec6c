package workers

import (
	"context"
	"fmt"
	"sync"
	"time"

	"fleet-experiment/tarmac/internal/common"
	"fleet-experiment/tarmac/internal/constants"
	"fleet-experiment/tarmac/internal/logging"
	"fleet-experiment/tarmac/internal/metrics"
	"fleet-experiment/tarmac/internal/services"
)

// QueueWorker processes generation jobs from the Redis Stream.
type QueueWorker struct {
	workerID    string
	queue       *common.ScenarioQueueService
	scenarioSvc *services.ScenarioService
	metricsReg  *metrics.MetricsRegistry
}

// NewQueueWorker creates a new queue worker
func NewQueueWorker(
	workerID string,
	queue *common.ScenarioQueueService,
	scenarioSvc *services.ScenarioService,
	metricsReg *metrics.MetricsRegistry,
) *QueueWorker {
	return &QueueWorker{
		workerID:    workerID,
		queue:       queue,
		scenarioSvc: scenarioSvc,
		metricsReg:  metricsReg,
	}
}

// Start begins consuming the generation stream with numWorkers consumers in
// one consumer group.
func (w *QueueWorker) Start(ctx context.Context, numWorkers int) error {
	stream := constants.ScenarioStreamName
	group := constants.ScenarioConsumerGroup

	if err := w.queue.CreateConsumerGroup(ctx, stream, group); err != nil {
		return fmt.Errorf("failed to create consumer group: %w", err)
	}

	logging.Info("Queue worker starting", "stream", stream, "workers", numWorkers)

	var wg sync.WaitGroup
	for i := 0; i < numWorkers; i++ {
		wg.Add(1)
		consumer := fmt.Sprintf("%s-consumer-%d", w.workerID, i)

		go func(consumer string) {
			defer wg.Done()
			w.consume(ctx, stream, group, consumer)
		}(consumer)
	}

	wg.Wait()
	logging.Info("Queue worker stopped", "stream", stream)
	return nil
}

// consume loops on the stream until the context is cancelled.
func (w *QueueWorker) consume(ctx context.Context, stream, group, consumer string) {
	processed := 0
	failed := 0

	for {
		select {
		case <-ctx.Done():
			logging.Info("Queue consumer shutting down",
				"consumer", consumer, "processed", processed, "failed", failed)
			return
		default:
			job, messageID, err := w.queue.Dequeue(ctx, stream, group, consumer, 5*time.Second)
			if err != nil {
				logging.Error("Queue dequeue failed", "consumer", consumer, "error", err.Error())
				time.Sleep(time.Second) // back off before retrying
				continue
			}
			if job == nil {
				continue
			}

			job.Request.Persist = true
			_, _, err = w.scenarioSvc.GenerateAs(ctx, job.RunID, job.Request, "queue")
			if err != nil {
				failed++
				if w.metricsReg != nil {
					w.metricsReg.QueueJobsTotal.WithLabelValues("failed").Inc()
				}
				logging.Error("Queued generation failed",
					"run_id", job.RunID, "message_id", messageID, "error", err.Error())
				// Ack anyway: the job is malformed or storage is down, and
				// redelivering it to another consumer will not fix either.
			} else {
				processed++
				if w.metricsReg != nil {
					w.metricsReg.QueueJobsTotal.WithLabelValues("processed").Inc()
				}
			}

			if err := w.queue.Ack(ctx, stream, group, messageID); err != nil {
				logging.Error("Queue ack failed", "message_id", messageID, "error", err.Error())
			}
		}
	}
}
