package cron

import (
	"context"
	"encoding/json"
	"time"

	bookingRepo "buskpod/database/repository/booking"
	"buskpod/models"
	"buskpod/services/notification"
	"buskpod/services/tasks"
	"buskpod/utils"

	"github.com/hibiken/asynq"
	"go.uber.org/zap"
)

// Worker runs the background task server: notification delivery and the
// nightly booking completion sweep.
type Worker struct {
	server    *asynq.Server
	scheduler *asynq.Scheduler
	email     notification.Sender
	sms       notification.Sender
	bookings  bookingRepo.BookingRepository
}

func NewWorker(email, sms notification.Sender, bookings bookingRepo.BookingRepository) *Worker {
	redisOpt := tasks.QueueRedisOpt()
	return &Worker{
		server: asynq.NewServer(redisOpt, asynq.Config{
			Concurrency: 10,
			Queues:      map[string]int{"default": 1},
		}),
		scheduler: asynq.NewScheduler(redisOpt, nil),
		email:     email,
		sms:       sms,
		bookings:  bookings,
	}
}

// Start launches the worker and the sweep schedule in the background.
func (w *Worker) Start() {
	logger := utils.GetLogger()

	mux := asynq.NewServeMux()
	mux.HandleFunc(tasks.TypeNotificationSend, w.handleNotification)
	mux.HandleFunc(tasks.TypeBookingSweep, w.handleBookingSweep)

	// Completion sweep shortly after midnight, local server time.
	if _, err := w.scheduler.Register("5 0 * * *", tasks.NewBookingSweepTask()); err != nil {
		logger.Error("failed to register booking sweep schedule", zap.Error(err))
	}

	go func() {
		if err := w.scheduler.Run(); err != nil {
			logger.Error("task scheduler stopped", zap.Error(err))
		}
	}()
	go func() {
		logger.Info("starting background task worker")
		if err := w.server.Run(mux); err != nil {
			logger.Error("task worker stopped", zap.Error(err))
		}
	}()
}

// Shutdown stops the worker and scheduler gracefully.
func (w *Worker) Shutdown() {
	w.scheduler.Shutdown()
	w.server.Shutdown()
}

func (w *Worker) handleNotification(ctx context.Context, task *asynq.Task) error {
	logger := utils.GetLogger()

	var payload models.NotificationPayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		logger.Error("invalid notification payload", zap.Error(err))
		return err
	}

	var err error
	switch payload.Channel {
	case notification.ChannelEmail:
		err = w.email.Send(ctx, payload)
	case notification.ChannelSMS:
		err = w.sms.Send(ctx, payload)
	default:
		logger.Warn("unknown notification channel", zap.String("channel", payload.Channel))
		return nil
	}
	if err != nil {
		logger.Warn("notification delivery failed",
			zap.String("channel", payload.Channel), zap.Error(err))
	}
	return err
}

// handleBookingSweep marks confirmed bookings completed once their date has
// passed. Slot claims stay in place; past dates are never re-booked.
func (w *Worker) handleBookingSweep(ctx context.Context, task *asynq.Task) error {
	logger := utils.GetLogger()

	today := time.Now().Format("2006-01-02")
	due, err := w.bookings.FindConfirmedBefore(today)
	if err != nil {
		logger.Error("booking sweep query failed", zap.Error(err))
		return err
	}

	completed := 0
	for i := range due {
		bk := due[i]
		bk.Status = models.BookingCompleted
		if err := w.bookings.Update(&bk); err != nil {
			logger.Warn("failed to complete booking",
				zap.String("bookingId", bk.ID), zap.Error(err))
			continue
		}
		completed++
	}
	if completed > 0 {
		logger.Info("booking sweep finished", zap.Int("completed", completed))
	}
	return nil
}
