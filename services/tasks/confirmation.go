package tasks

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/hibiken/asynq"
)

const TypeBookingConfirmation = "booking:confirmation"

// ConfirmationPayload identifies the booked event to confirm.
type ConfirmationPayload struct {
	EventID string `json:"eventId"`
}

func NewBookingConfirmationTask(payload ConfirmationPayload) (*asynq.Task, []asynq.Option, error) {
	b, err := json.Marshal(payload)
	if err != nil {
		return nil, nil, err
	}
	task := asynq.NewTask(TypeBookingConfirmation, b)
	opts := []asynq.Option{asynq.MaxRetry(5), asynq.Timeout(30 * time.Second)}

	return task, opts, nil
}

// Dispatcher enqueues confirmation tasks onto the Redis-backed queue.
type Dispatcher struct {
	client *asynq.Client
}

func NewDispatcher(redisOpt asynq.RedisClientOpt) *Dispatcher {
	return &Dispatcher{client: asynq.NewClient(redisOpt)}
}

func (d *Dispatcher) EnqueueBookingConfirmation(ctx context.Context, eventID string) error {
	task, opts, err := NewBookingConfirmationTask(ConfirmationPayload{EventID: eventID})
	if err != nil {
		return fmt.Errorf("build confirmation task for %s: %w", eventID, err)
	}
	if _, err := d.client.EnqueueContext(ctx, task, opts...); err != nil {
		return fmt.Errorf("enqueue confirmation for %s: %w", eventID, err)
	}
	return nil
}

func (d *Dispatcher) Close() error {
	return d.client.Close()
}
