package taskqueue

import "context"

//go:generate mockgen -source=task_queue.go -destination=task_queue_mock.go -package=taskqueue

// TaskQueue registers notification tasks with the delivery backend.
type TaskQueue interface {
	RegisterNotification(ctx context.Context, task *NotificationTask) (*TaskResponse, error)
	Close() error
}
