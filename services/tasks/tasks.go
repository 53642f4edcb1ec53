package tasks

import (
	"encoding/json"
	"sync"

	"buskpod/config"
	"buskpod/models"

	"github.com/hibiken/asynq"
)

const (
	// TypeNotificationSend delivers one email or SMS notification.
	TypeNotificationSend = "notification:send"
	// TypeBookingSweep marks confirmed bookings completed once their date has passed.
	TypeBookingSweep = "booking:sweep"
)

var (
	clientOnce sync.Once
	client     *asynq.Client
)

// QueueRedisOpt is the Redis connection shared by the task client and worker.
func QueueRedisOpt() asynq.RedisClientOpt {
	return asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPass,
		DB:       config.AppConfig.RedisQueueDB,
	}
}

// GetClient returns the shared asynq client for enqueueing tasks.
func GetClient() *asynq.Client {
	clientOnce.Do(func() {
		client = asynq.NewClient(QueueRedisOpt())
	})
	return client
}

// NewNotificationTask builds a notification delivery task.
func NewNotificationTask(payload models.NotificationPayload) (*asynq.Task, error) {
	b, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TypeNotificationSend, b, asynq.MaxRetry(3)), nil
}

// NewBookingSweepTask builds the periodic completion sweep task.
func NewBookingSweepTask() *asynq.Task {
	return asynq.NewTask(TypeBookingSweep, nil)
}
