package service

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/hibiken/asynq"
)

const TypeStageTask = "stage:generate"

// StagePayload carries only the task id; the handler loads the full task
// record from the store so the queue never holds stale stage input.
type StagePayload struct {
	TaskID string `json:"task_id"`
}

type Queue struct {
	client *asynq.Client
}

func NewQueue(redisOpt asynq.RedisClientOpt) *Queue {
	return &Queue{client: asynq.NewClient(redisOpt)}
}

func (q *Queue) EnqueueStageTask(taskID string) error {
	payload, err := json.Marshal(StagePayload{TaskID: taskID})
	if err != nil {
		return fmt.Errorf("marshal stage payload: %w", err)
	}
	_, err = q.client.Enqueue(
		asynq.NewTask(TypeStageTask, payload),
		asynq.MaxRetry(3),
		asynq.Timeout(20*time.Minute),
		asynq.Retention(24*time.Hour),
	)
	if err != nil {
		return fmt.Errorf("enqueue stage task: %w", err)
	}
	return nil
}

func (q *Queue) Close() error {
	return q.client.Close()
}
