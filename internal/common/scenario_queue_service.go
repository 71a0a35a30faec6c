package common

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"fleet-experiment/tarmac/internal/models/dtos"
)

// ScenarioQueueService carries queued generation jobs on a Redis Stream so
// large requests can be accepted immediately and generated out of band.
type ScenarioQueueService struct {
	client *redis.Client
}

// NewScenarioQueueService creates a new queue service on a shared client
func NewScenarioQueueService(client *redis.Client) *ScenarioQueueService {
	return &ScenarioQueueService{
		client: client,
	}
}

// ScenarioJob is one queued generation request plus the run id the caller
// was promised, so the eventual record matches the acknowledgement.
type ScenarioJob struct {
	RunID      string               `json:"run_id"`
	Request    dtos.GenerateRequest `json:"request"`
	EnqueuedAt time.Time            `json:"enqueued_at"`
}

// encodeJob packs a job into the stream's field values.
func encodeJob(job *ScenarioJob) (map[string]interface{}, error) {
	data, err := json.Marshal(job)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal scenario job: %w", err)
	}
	return map[string]interface{}{"data": string(data)}, nil
}

// decodeJob unpacks stream field values back into a job.
func decodeJob(values map[string]interface{}) (*ScenarioJob, error) {
	raw, ok := values["data"].(string)
	if !ok {
		return nil, errors.New("message has no data field")
	}

	var job ScenarioJob
	if err := json.Unmarshal([]byte(raw), &job); err != nil {
		return nil, fmt.Errorf("failed to unmarshal scenario job: %w", err)
	}
	return &job, nil
}

// isGroupExists reports whether err is Redis saying the consumer group is
// already there (BUSYGROUP), which group creation treats as success.
func isGroupExists(err error) bool {
	return err != nil && strings.HasPrefix(err.Error(), "BUSYGROUP")
}

// Enqueue adds a generation job to the stream and returns the message id
func (s *ScenarioQueueService) Enqueue(ctx context.Context, streamName string, job *ScenarioJob) (string, error) {
	values, err := encodeJob(job)
	if err != nil {
		return "", err
	}

	id, err := s.client.XAdd(ctx, &redis.XAddArgs{
		Stream: streamName,
		Values: values,
	}).Result()
	if err != nil {
		return "", fmt.Errorf("failed to add to stream: %w", err)
	}

	return id, nil
}

// CreateConsumerGroup ensures the consumer group exists. An already-exists
// error (BUSYGROUP) is not a failure.
func (s *ScenarioQueueService) CreateConsumerGroup(ctx context.Context, streamName, group string) error {
	err := s.client.XGroupCreateMkStream(ctx, streamName, group, "0").Err()
	if err != nil && !isGroupExists(err) {
		return fmt.Errorf("failed to create consumer group: %w", err)
	}
	return nil
}

// Dequeue blocks for up to block waiting for the next job. A nil job with a
// nil error means the block timed out with nothing to do.
func (s *ScenarioQueueService) Dequeue(ctx context.Context, streamName, group, consumer string, block time.Duration) (*ScenarioJob, string, error) {
	streams, err := s.client.XReadGroup(ctx, &redis.XReadGroupArgs{
		Group:    group,
		Consumer: consumer,
		Streams:  []string{streamName, ">"},
		Count:    1,
		Block:    block,
	}).Result()

	if err == redis.Nil {
		return nil, "", nil
	}
	if err != nil {
		return nil, "", fmt.Errorf("failed to read from stream: %w", err)
	}

	if len(streams) == 0 || len(streams[0].Messages) == 0 {
		return nil, "", nil
	}

	msg := streams[0].Messages[0]
	job, err := decodeJob(msg.Values)
	if err != nil {
		return nil, msg.ID, fmt.Errorf("message %s: %w", msg.ID, err)
	}

	return job, msg.ID, nil
}

// Ack marks a message as processed
func (s *ScenarioQueueService) Ack(ctx context.Context, streamName, group, messageID string) error {
	return s.client.XAck(ctx, streamName, group, messageID).Err()
}

// QueueLength returns the current stream length for monitoring
func (s *ScenarioQueueService) QueueLength(ctx context.Context, streamName string) (int64, error) {
	return s.client.XLen(ctx, streamName).Result()
}
